package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/carrier"
	"fulfillment/internal/core/domain/model/kernel"
)

// CarrierRepository persists carrier configuration per tenant.
type CarrierRepository interface {
	Add(ctx context.Context, c *carrier.Carrier) error

	Update(ctx context.Context, c *carrier.Carrier) error

	// Get returns errs.ObjectNotFoundError for a missing carrier or a tenant mismatch.
	Get(ctx context.Context, id kernel.UUID, tenantID kernel.TenantID) (*carrier.Carrier, error)
}
