package commands

import (
	"context"

	"fulfillment/internal/core/domain/model/delivery"
)

// UpdateDeliveryStatusCommandHandler is the generic status transition primitive.
// Transitions are not checked for direction.
type UpdateDeliveryStatusCommandHandler struct {
	uowFactory DeliveryNoteUoWFactory
}

func NewUpdateDeliveryStatusCommandHandler(uowFactory DeliveryNoteUoWFactory) UpdateDeliveryStatusCommandHandler {
	return UpdateDeliveryStatusCommandHandler{
		uowFactory: uowFactory,
	}
}

func (h UpdateDeliveryStatusCommandHandler) Handle(ctx context.Context, cmd UpdateDeliveryStatusCommand) (*delivery.Note, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.DeliveryNoteRepository()

	note, err := repo.Get(ctx, cmd.DeliveryNoteID(), cmd.TenantID())
	if err != nil {
		return nil, err
	}

	if err = note.ChangeStatus(cmd.Status(), cmd.Metadata()); err != nil {
		return nil, err
	}

	if err = repo.Update(ctx, note); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return note, nil
}
