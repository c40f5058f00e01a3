package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
)

// RecipientResolver turns the customer and address references of a delivery
// note into a postal recipient, using the customer registry.
type RecipientResolver interface {
	Resolve(ctx context.Context, customerID, deliveryAddressID string, tenantID kernel.TenantID) (Recipient, error)
}
