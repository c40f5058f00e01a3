// Package registry resolves delivery recipients from the customer registry.
package registry

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const (
	serviceName    = "registry"
	defaultTimeout = 10 * time.Second
)

var errNotFound = errors.New("address not found in registry")

type addressResponse struct {
	Name       string `json:"name"`
	Company    string `json:"company"`
	Street     string `json:"street"`
	City       string `json:"city"`
	PostalCode string `json:"postalCode"`
	Country    string `json:"country"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
}

// HTTPResolver reads GET {baseURL}/api/v1/customers/{customerId}/addresses/{addressId}.
type HTTPResolver struct {
	baseURL string
	http    *http.Client
}

var _ ports.RecipientResolver = (*HTTPResolver)(nil)

func NewHTTPResolver(baseURL string) *HTTPResolver {
	return NewHTTPResolverWithClient(baseURL, &http.Client{
		Timeout:   defaultTimeout,
		Transport: otelhttp.NewTransport(http.DefaultTransport),
	})
}

func NewHTTPResolverWithClient(baseURL string, httpClient *http.Client) *HTTPResolver {
	return &HTTPResolver{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    httpClient,
	}
}

func (r *HTTPResolver) Resolve(ctx context.Context, customerID, deliveryAddressID string, tenantID kernel.TenantID) (ports.Recipient, error) {
	address, err := r.fetch(ctx, customerID, deliveryAddressID, tenantID)
	if errors.Is(err, errNotFound) {
		return ports.Recipient{}, errs.NewObjectNotFoundErrorWithCause("deliveryAddressId", deliveryAddressID, err)
	}
	if err != nil {
		return ports.Recipient{}, errs.NewUpstreamServiceError(serviceName, "resolve recipient", err)
	}

	return ports.Recipient{
		Name:       address.Name,
		Company:    address.Company,
		Street:     address.Street,
		City:       address.City,
		PostalCode: address.PostalCode,
		Country:    address.Country,
		Email:      address.Email,
		Phone:      address.Phone,
	}, nil
}

func (r *HTTPResolver) fetch(ctx context.Context, customerID, addressID string, tenantID kernel.TenantID) (addressResponse, error) {
	var address addressResponse

	endpoint := fmt.Sprintf("%s/api/v1/customers/%s/addresses/%s",
		r.baseURL, url.PathEscape(customerID), url.PathEscape(addressID))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return address, err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Tenant-ID", tenantID.String())

	resp, err := r.http.Do(req)
	if err != nil {
		return address, err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return address, errNotFound
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return address, fmt.Errorf("unexpected status %d: %s", resp.StatusCode, strings.TrimSpace(string(snippet)))
	}

	if err = json.NewDecoder(resp.Body).Decode(&address); err != nil {
		return address, fmt.Errorf("decode address: %w", err)
	}
	return address, nil
}

// StaticResolver is used when no registry is configured. Every recipient gets
// the fallback address, addressed to the customer id.
type StaticResolver struct {
	fallback ports.Recipient
}

var _ ports.RecipientResolver = StaticResolver{}

func NewStaticResolver(fallback ports.Recipient) StaticResolver {
	return StaticResolver{fallback: fallback}
}

func (s StaticResolver) Resolve(_ context.Context, customerID, _ string, _ kernel.TenantID) (ports.Recipient, error) {
	recipient := s.fallback
	if recipient.Name == "" {
		recipient.Name = customerID
	}
	return recipient, nil
}
