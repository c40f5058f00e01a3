package queries

import (
	"errors"

	"fulfillment/internal/core/domain/model/carrier"
	"fulfillment/internal/core/domain/model/delivery"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrGetDeliveryNoteQueryIsNotConstructed = errors.New(
	"GetDeliveryNoteQuery must be created via NewGetDeliveryNoteQuery constructor",
)

// GetDeliveryNoteQuery loads one note of a tenant with its items, events and carrier.
type GetDeliveryNoteQuery struct {
	tenantID kernel.TenantID
	id       kernel.UUID
	guard    guard.ConstructorGuard
}

func NewGetDeliveryNoteQuery(tenantID string, id kernel.UUID) (GetDeliveryNoteQuery, error) {
	tenant, err := kernel.NewTenantID(tenantID)
	if err = errors.Join(err, id.Validate()); err != nil {
		return GetDeliveryNoteQuery{}, err
	}

	return GetDeliveryNoteQuery{
		tenantID: tenant,
		id:       id,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (q GetDeliveryNoteQuery) Validate() error {
	return q.guard.Validate(ErrGetDeliveryNoteQueryIsNotConstructed)
}

func (q GetDeliveryNoteQuery) TenantID() kernel.TenantID {
	return q.tenantID
}

func (q GetDeliveryNoteQuery) ID() kernel.UUID {
	return q.id
}

// GetDeliveryNoteQueryResponse carries the note and, once dispatched, its carrier.
type GetDeliveryNoteQueryResponse struct {
	Note    *delivery.Note
	Carrier *carrier.Carrier
}
