package carriers

import (
	"fmt"
	"net/http"
	"time"

	"fulfillment/internal/core/domain/model/carrier"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/retry"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// Factory builds the integration matching a configured carrier.
type Factory struct {
	http   *http.Client
	policy retry.Policy
}

var _ ports.CarrierIntegrationFactory = (*Factory)(nil)

// Option customizes a Factory.
type Option func(*Factory)

// WithHTTPClient replaces the instrumented default client.
func WithHTTPClient(client *http.Client) Option {
	return func(f *Factory) {
		f.http = client
	}
}

// WithRetryPolicy replaces retry.DefaultPolicy.
func WithRetryPolicy(policy retry.Policy) Option {
	return func(f *Factory) {
		f.policy = policy
	}
}

// NewFactory returns a factory using an otelhttp-instrumented client with a
// 30 second per-attempt timeout and the default retry policy.
func NewFactory(opts ...Option) *Factory {
	f := &Factory{
		http:   NewHTTPClient(DefaultTimeout),
		policy: retry.DefaultPolicy(),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// NewHTTPClient returns a client whose requests are traced.
func NewHTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{
		Timeout:   timeout,
		Transport: otelhttp.NewTransport(http.DefaultTransport),
	}
}

// ForCarrier picks the brand from the carrier's explicit kind, falling back to
// its name: "dhl", then "ups", then "gls", otherwise the generic integration.
func (f *Factory) ForCarrier(c *carrier.Carrier) (ports.CarrierIntegration, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	kind := c.ResolvedKind()
	var api brandAPI
	switch kind {
	case carrier.KindDHL:
		api = newDHLAPI(f.http, c)
	case carrier.KindUPS:
		api = newUPSAPI(f.http, c)
	case carrier.KindGLS:
		api = newGLSAPI(f.http, c)
	case carrier.KindGeneric:
		api = newGenericAPI(f.http, c)
	default:
		return nil, fmt.Errorf("unsupported carrier kind %q", kind)
	}

	return &integration{
		kind:   kind,
		api:    api,
		policy: f.policy,
	}, nil
}
