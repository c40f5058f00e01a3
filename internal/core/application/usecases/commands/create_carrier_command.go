package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/carrier"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrCreateCarrierCommandIsNotConstructed = errors.New(
	"CreateCarrierCommand must be created via NewCreateCarrierCommand constructor",
)

// CreateCarrierCommand registers a shipping provider for a tenant.
//
// Example:
//
//	cmd, err := NewCreateCarrierCommand("tenant-a", "DHL Express", "https://api.dhl.example",
//	    "https://www.dhl.com/track?id={trackingNumber}", "", carrier.Credentials{APIKey: key})
//	if err != nil {
//	    return fmt.Errorf("invalid carrier data: %w", err)
//	}
//	id, err := handler.Handle(ctx, cmd)
type CreateCarrierCommand struct { //nolint:recvcheck //using for validation
	carrierID           kernel.UUID
	tenantID            kernel.TenantID
	name                string
	apiEndpoint         string
	trackingURLTemplate string
	kind                carrier.Kind
	credentials         carrier.Credentials

	guard guard.ConstructorGuard
}

// NewCreateCarrierCommand generates the carrier ID and validates the tenant and kind.
// Name and endpoint rules are enforced by the carrier aggregate.
func NewCreateCarrierCommand(
	tenantID, name, apiEndpoint, trackingURLTemplate, kind string,
	credentials carrier.Credentials,
) (CreateCarrierCommand, error) {
	command := CreateCarrierCommand{
		carrierID:           kernel.NewUUID(),
		name:                name,
		apiEndpoint:         apiEndpoint,
		trackingURLTemplate: trackingURLTemplate,
		credentials:         credentials,
		guard:               guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setTenantID(tenantID),
		command.setKind(kind),
	); err != nil {
		return CreateCarrierCommand{}, err
	}

	return command, nil
}

func (c CreateCarrierCommand) Validate() error {
	return c.guard.Validate(ErrCreateCarrierCommandIsNotConstructed)
}

func (c CreateCarrierCommand) CarrierID() kernel.UUID {
	return c.carrierID
}

func (c CreateCarrierCommand) TenantID() kernel.TenantID {
	return c.tenantID
}

func (c CreateCarrierCommand) Name() string {
	return c.name
}

func (c CreateCarrierCommand) APIEndpoint() string {
	return c.apiEndpoint
}

func (c CreateCarrierCommand) TrackingURLTemplate() string {
	return c.trackingURLTemplate
}

func (c CreateCarrierCommand) Kind() carrier.Kind {
	return c.kind
}

func (c CreateCarrierCommand) Credentials() carrier.Credentials {
	return c.credentials
}

func (c *CreateCarrierCommand) setTenantID(tenantID string) error {
	tenant, err := kernel.NewTenantID(tenantID)
	if err != nil {
		return err
	}
	c.tenantID = tenant
	return nil
}

func (c *CreateCarrierCommand) setKind(kind string) error {
	parsed, err := carrier.ParseKind(kind)
	if err != nil {
		return err
	}
	c.kind = parsed
	return nil
}
