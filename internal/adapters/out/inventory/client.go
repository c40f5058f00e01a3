// Package inventory is the HTTP client of the inventory service.
package inventory

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const (
	serviceName    = "inventory"
	defaultTimeout = 10 * time.Second
	tenantHeader   = "X-Tenant-ID"
)

type stockLine struct {
	ProductID string          `json:"productId"`
	Quantity  decimal.Decimal `json:"quantity"`
}

type stockMovement struct {
	Reference string      `json:"reference"`
	TenantID  string      `json:"tenantId"`
	Items     []stockLine `json:"items"`
}

// Client moves stock through POST {baseURL}/api/v1/stock/{deduct|restore}.
type Client struct {
	baseURL string
	http    *http.Client
}

var _ ports.InventoryClient = (*Client)(nil)

func NewClient(baseURL string) *Client {
	return NewClientWithHTTP(baseURL, &http.Client{
		Timeout:   defaultTimeout,
		Transport: otelhttp.NewTransport(http.DefaultTransport),
	})
}

func NewClientWithHTTP(baseURL string, httpClient *http.Client) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    httpClient,
	}
}

func (c *Client) Deduct(ctx context.Context, lines []ports.StockLine, tenantID kernel.TenantID, reference string) error {
	return c.move(ctx, "deduct", lines, tenantID, reference)
}

func (c *Client) Restore(ctx context.Context, lines []ports.StockLine, tenantID kernel.TenantID, reference string) error {
	return c.move(ctx, "restore", lines, tenantID, reference)
}

func (c *Client) move(ctx context.Context, operation string, lines []ports.StockLine, tenantID kernel.TenantID, reference string) error {
	if len(lines) == 0 {
		return nil
	}

	body := stockMovement{
		Reference: reference,
		TenantID:  tenantID.String(),
		Items:     make([]stockLine, 0, len(lines)),
	}
	for _, line := range lines {
		body.Items = append(body.Items, stockLine{ProductID: line.ProductID, Quantity: line.Quantity})
	}

	if err := c.post(ctx, "/api/v1/stock/"+operation, tenantID, body); err != nil {
		return errs.NewUpstreamServiceError(serviceName, operation, err)
	}
	return nil
}

func (c *Client) post(ctx context.Context, path string, tenantID kernel.TenantID, body any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(tenantHeader, tenantID.String())

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("unexpected status %d: %s", resp.StatusCode, strings.TrimSpace(string(snippet)))
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}
