package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"

	"github.com/shopspring/decimal"
)

// StockLine is a product quantity to move in or out of stock.
type StockLine struct {
	ProductID string
	Quantity  decimal.Decimal
}

// InventoryClient talks to the inventory service. Failures are reported as
// errs.UpstreamServiceError.
type InventoryClient interface {
	// Deduct removes shipped goods from stock. reference identifies the delivery note.
	Deduct(ctx context.Context, lines []StockLine, tenantID kernel.TenantID, reference string) error

	// Restore puts goods back into stock, reversing a Deduct.
	Restore(ctx context.Context, lines []StockLine, tenantID kernel.TenantID, reference string) error
}
