package carriers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"fulfillment/internal/core/domain/model/carrier"
)

const (
	DefaultTimeout = 30 * time.Second

	// maxErrorBody caps how much of a failed response ends up in the error text.
	maxErrorBody = 512
)

// StatusError is returned for a non-2xx carrier response.
type StatusError struct {
	Method     string
	URL        string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s %s: unexpected status %d: %s", e.Method, e.URL, e.StatusCode, e.Body)
}

// authFunc applies brand specific credentials to an outgoing request.
type authFunc func(req *http.Request, creds carrier.Credentials)

// apiClient performs JSON calls against one carrier endpoint.
type apiClient struct {
	http     *http.Client
	endpoint string
	creds    carrier.Credentials
	auth     authFunc
}

func newAPIClient(httpClient *http.Client, c *carrier.Carrier, auth authFunc) apiClient {
	return apiClient{
		http:     httpClient,
		endpoint: c.APIEndpoint(),
		creds:    c.Credentials(),
		auth:     auth,
	}
}

// do sends body as JSON (when not nil) and decodes a 2xx response into out (when not nil).
func (c apiClient) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	url := c.endpoint + path
	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.auth != nil {
		c.auth(req, c.creds)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &StatusError{
			Method:     method,
			URL:        url,
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(snippet)),
		}
	}

	if out == nil {
		return nil
	}
	// Numbers stay json.Number so long numeric tracking ids keep every digit.
	dec := json.NewDecoder(resp.Body)
	dec.UseNumber()
	if err = dec.Decode(out); err != nil {
		return fmt.Errorf("decode response of %s %s: %w", method, url, err)
	}
	return nil
}

func apiKeyHeader(name string) authFunc {
	return func(req *http.Request, creds carrier.Credentials) {
		if creds.APIKey != "" {
			req.Header.Set(name, creds.APIKey)
		}
	}
}

func bearerToken(req *http.Request, creds carrier.Credentials) {
	if creds.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+creds.APIKey)
	}
}

func basicAuth(req *http.Request, creds carrier.Credentials) {
	if creds.Username != "" {
		req.SetBasicAuth(creds.Username, creds.Password)
	}
}

// anyAuth sends whatever credentials are configured.
func anyAuth(req *http.Request, creds carrier.Credentials) {
	apiKeyHeader("X-API-Key")(req, creds)
	basicAuth(req, creds)
}

// timeLayouts are tried in order when a carrier sends a timestamp.
var timeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"20060102150405",
	"2006-01-02",
	"20060102",
}

func parseTime(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, false
	}
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}

func parseTimePtr(value string) *time.Time {
	t, ok := parseTime(value)
	if !ok {
		return nil
	}
	return &t
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}
