// Package ports defines the contracts between the delivery core and its adapters:
// persistence, carrier APIs, the inventory and registry services and the event bus.
package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/delivery"
	"fulfillment/internal/core/domain/model/kernel"
)

// DeliveryNoteRepository persists delivery note aggregates together with their
// items and events. Every read is keyed by tenant.
type DeliveryNoteRepository interface {
	// Add inserts a new note with its items and pending events.
	Add(ctx context.Context, note *delivery.Note) error

	// Update writes the mutable columns and appends pending events. The write only
	// applies while the stored status still equals note.LoadedStatus(); otherwise an
	// errs.InvalidStateError is returned and nothing is written.
	Update(ctx context.Context, note *delivery.Note) error

	// Get loads a note with items and events. A missing note and a note owned by
	// another tenant both yield errs.ObjectNotFoundError.
	Get(ctx context.Context, id kernel.UUID, tenantID kernel.TenantID) (*delivery.Note, error)

	// ExistsByNumber reports whether a delivery number is taken, across all tenants.
	ExistsByNumber(ctx context.Context, number delivery.Number) (bool, error)

	// ListTrackable returns up to limit notes in DISPATCHED or IN_TRANSIT that have
	// both a carrier and a tracking number, oldest shipment first, across all tenants.
	ListTrackable(ctx context.Context, limit int) ([]*delivery.Note, error)
}
