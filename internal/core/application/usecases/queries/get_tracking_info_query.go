package queries

import (
	"errors"

	"fulfillment/internal/core/domain/model/delivery"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/guard"
)

var ErrGetTrackingInfoQueryIsNotConstructed = errors.New(
	"GetTrackingInfoQuery must be created via NewGetTrackingInfoQuery constructor",
)

// GetTrackingInfoQuery asks the carrier of a dispatched note for live tracking data.
// Nothing is persisted; the reconciliation job owns status changes.
type GetTrackingInfoQuery struct {
	tenantID kernel.TenantID
	id       kernel.UUID
	guard    guard.ConstructorGuard
}

func NewGetTrackingInfoQuery(tenantID string, id kernel.UUID) (GetTrackingInfoQuery, error) {
	tenant, err := kernel.NewTenantID(tenantID)
	if err = errors.Join(err, id.Validate()); err != nil {
		return GetTrackingInfoQuery{}, err
	}

	return GetTrackingInfoQuery{
		tenantID: tenant,
		id:       id,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (q GetTrackingInfoQuery) Validate() error {
	return q.guard.Validate(ErrGetTrackingInfoQueryIsNotConstructed)
}

func (q GetTrackingInfoQuery) TenantID() kernel.TenantID {
	return q.tenantID
}

func (q GetTrackingInfoQuery) ID() kernel.UUID {
	return q.id
}

// GetTrackingInfoQueryResponse combines the stored shipment with the carrier's view of it.
type GetTrackingInfoQueryResponse struct {
	DeliveryNoteID kernel.UUID
	DeliveryNumber delivery.Number
	Status         delivery.Status
	CarrierName    string
	TrackingNumber string
	TrackingURL    string
	Info           ports.TrackingInfo
}
