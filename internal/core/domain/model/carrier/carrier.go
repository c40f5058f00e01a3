package carrier

import (
	"errors"
	"net/url"
	"strings"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

// TrackingNumberPlaceholder is substituted in the tracking URL template.
const TrackingNumberPlaceholder = "{trackingNumber}"

var (
	ErrNameIsRequired            = errs.NewValueIsRequiredError("name")
	ErrAPIEndpointIsRequired     = errs.NewValueIsRequiredError("apiEndpoint")
	ErrCarrierIsNotConstructed   = errors.New("Carrier must be created via NewCarrier constructor")
	ErrTrackingTemplateIsInvalid = errs.NewValueIsInvalidError("trackingUrlTemplate must contain " + TrackingNumberPlaceholder)
)

// Credentials authenticate calls to the carrier API. Every field is optional;
// each integration uses the fields its API understands.
type Credentials struct {
	APIKey        string
	Username      string
	Password      string
	AccountNumber string
}

// IsEmpty reports whether no credential is configured.
func (c Credentials) IsEmpty() bool {
	return c == Credentials{}
}

// Carrier is an external shipping provider configured for one tenant.
//
// Business rules:
//   - Name and API endpoint are required; the endpoint must be an absolute URL
//   - The tracking URL template, when set, must contain {trackingNumber}
//   - Only active carriers accept new shipments
//
// Example:
//
//	dhl, err := carrier.NewCarrier(kernel.NewUUID(), "DHL Express",
//	    "https://api.dhl.example", "https://track.example/{trackingNumber}",
//	    carrier.Credentials{APIKey: key}, carrier.KindAuto, tenant)
type Carrier struct {
	id                  kernel.UUID
	name                string
	apiEndpoint         string
	trackingURLTemplate string
	credentials         Credentials
	kind                Kind
	active              bool
	tenantID            kernel.TenantID
	guard               guard.ConstructorGuard
}

// NewCarrier creates an active carrier.
func NewCarrier(
	id kernel.UUID,
	name, apiEndpoint, trackingURLTemplate string,
	credentials Credentials,
	kind Kind,
	tenantID kernel.TenantID,
) (*Carrier, error) {
	return RestoreCarrier(id, name, apiEndpoint, trackingURLTemplate, credentials, kind, true, tenantID)
}

// RestoreCarrier rebuilds a persisted carrier including its active flag.
func RestoreCarrier(
	id kernel.UUID,
	name, apiEndpoint, trackingURLTemplate string,
	credentials Credentials,
	kind Kind,
	active bool,
	tenantID kernel.TenantID,
) (*Carrier, error) {
	c := &Carrier{
		credentials: credentials,
		active:      active,
		guard:       guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		c.setID(id),
		c.setName(name),
		c.setAPIEndpoint(apiEndpoint),
		c.setTrackingURLTemplate(trackingURLTemplate),
		c.setKind(kind),
		c.setTenant(tenantID),
	); err != nil {
		return nil, err
	}

	return c, nil
}

func (c *Carrier) Validate() error {
	if c == nil {
		return ErrCarrierIsNotConstructed
	}
	return c.guard.Validate(ErrCarrierIsNotConstructed)
}

func (c *Carrier) ID() kernel.UUID {
	return c.id
}

func (c *Carrier) Name() string {
	return c.name
}

func (c *Carrier) APIEndpoint() string {
	return c.apiEndpoint
}

func (c *Carrier) TrackingURLTemplate() string {
	return c.trackingURLTemplate
}

func (c *Carrier) Credentials() Credentials {
	return c.credentials
}

// Kind returns the explicit integration kind, KindAuto when none was configured.
func (c *Carrier) Kind() Kind {
	return c.kind
}

// ResolvedKind returns the explicit kind when set, otherwise the one inferred from the name.
func (c *Carrier) ResolvedKind() Kind {
	if c.kind != KindAuto {
		return c.kind
	}
	return KindFromName(c.name)
}

func (c *Carrier) IsActive() bool {
	return c.active
}

func (c *Carrier) TenantID() kernel.TenantID {
	return c.tenantID
}

func (c *Carrier) Activate() {
	c.active = true
}

func (c *Carrier) Deactivate() {
	c.active = false
}

// TrackingURL renders the public tracking page for a shipment, empty when no template is configured.
func (c *Carrier) TrackingURL(trackingNumber string) string {
	if c.trackingURLTemplate == "" || trackingNumber == "" {
		return ""
	}
	return strings.ReplaceAll(c.trackingURLTemplate, TrackingNumberPlaceholder, url.PathEscape(trackingNumber))
}

func (c *Carrier) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.id = id
	return nil
}

func (c *Carrier) setName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrNameIsRequired
	}
	c.name = name
	return nil
}

func (c *Carrier) setAPIEndpoint(endpoint string) error {
	endpoint = strings.TrimRight(strings.TrimSpace(endpoint), "/")
	if endpoint == "" {
		return ErrAPIEndpointIsRequired
	}
	parsed, err := url.Parse(endpoint)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return errs.NewValueIsInvalidErrorWithCause("apiEndpoint", errors.New("must be an absolute URL"))
	}
	c.apiEndpoint = endpoint
	return nil
}

func (c *Carrier) setTrackingURLTemplate(template string) error {
	template = strings.TrimSpace(template)
	if template != "" && !strings.Contains(template, TrackingNumberPlaceholder) {
		return ErrTrackingTemplateIsInvalid
	}
	c.trackingURLTemplate = template
	return nil
}

func (c *Carrier) setKind(kind Kind) error {
	if err := kind.Validate(); err != nil {
		return err
	}
	c.kind = kind
	return nil
}

func (c *Carrier) setTenant(tenantID kernel.TenantID) error {
	if err := tenantID.Validate(); err != nil {
		return err
	}
	c.tenantID = tenantID
	return nil
}
