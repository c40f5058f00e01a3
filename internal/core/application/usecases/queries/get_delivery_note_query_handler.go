package queries

import (
	"context"

	"fulfillment/internal/core/ports"
)

// GetDeliveryNoteQueryHandler reads through the aggregate repositories outside
// of any transaction.
type GetDeliveryNoteQueryHandler struct {
	uowFactory ports.UnitOfWorkFactory
}

func NewGetDeliveryNoteQueryHandler(uowFactory ports.UnitOfWorkFactory) GetDeliveryNoteQueryHandler {
	return GetDeliveryNoteQueryHandler{uowFactory: uowFactory}
}

// Handle returns errs.ObjectNotFoundError when the note does not exist for the tenant.
func (h GetDeliveryNoteQueryHandler) Handle(
	ctx context.Context,
	query GetDeliveryNoteQuery,
) (GetDeliveryNoteQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetDeliveryNoteQueryResponse{}, err
	}

	uow := h.uowFactory.Create()
	note, err := uow.DeliveryNoteRepository().Get(ctx, query.ID(), query.TenantID())
	if err != nil {
		return GetDeliveryNoteQueryResponse{}, err
	}

	response := GetDeliveryNoteQueryResponse{Note: note}
	if carrierID := note.CarrierID(); carrierID != nil {
		c, carrierErr := uow.CarrierRepository().Get(ctx, *carrierID, query.TenantID())
		if carrierErr != nil {
			return GetDeliveryNoteQueryResponse{}, carrierErr
		}
		response.Carrier = c
	}

	return response, nil
}
