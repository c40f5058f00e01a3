package queries

import (
	"context"

	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"
)

type GetTrackingInfoQueryHandler struct {
	uowFactory   ports.UnitOfWorkFactory
	integrations ports.CarrierIntegrationFactory
}

func NewGetTrackingInfoQueryHandler(
	uowFactory ports.UnitOfWorkFactory,
	integrations ports.CarrierIntegrationFactory,
) GetTrackingInfoQueryHandler {
	return GetTrackingInfoQueryHandler{
		uowFactory:   uowFactory,
		integrations: integrations,
	}
}

// Handle fails with errs.InvalidStateError for notes that were never dispatched.
// Carrier failures surface as errs.UpstreamServiceError.
func (h GetTrackingInfoQueryHandler) Handle(
	ctx context.Context,
	query GetTrackingInfoQuery,
) (GetTrackingInfoQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetTrackingInfoQueryResponse{}, err
	}

	uow := h.uowFactory.Create()
	note, err := uow.DeliveryNoteRepository().Get(ctx, query.ID(), query.TenantID())
	if err != nil {
		return GetTrackingInfoQueryResponse{}, err
	}
	if note.CarrierID() == nil || note.TrackingNumber() == "" {
		return GetTrackingInfoQueryResponse{}, errs.NewInvalidStateError(
			"delivery note", note.Status().String(), "no shipment has been created",
		)
	}

	c, err := uow.CarrierRepository().Get(ctx, *note.CarrierID(), query.TenantID())
	if err != nil {
		return GetTrackingInfoQueryResponse{}, err
	}

	integration, err := h.integrations.ForCarrier(c)
	if err != nil {
		return GetTrackingInfoQueryResponse{}, err
	}

	info, err := integration.GetTrackingInfo(ctx, note.TrackingNumber())
	if err != nil {
		return GetTrackingInfoQueryResponse{}, err
	}

	return GetTrackingInfoQueryResponse{
		DeliveryNoteID: note.ID(),
		DeliveryNumber: note.Number(),
		Status:         note.Status(),
		CarrierName:    c.Name(),
		TrackingNumber: note.TrackingNumber(),
		TrackingURL:    c.TrackingURL(note.TrackingNumber()),
		Info:           info,
	}, nil
}
