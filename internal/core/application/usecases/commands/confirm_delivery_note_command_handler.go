package commands

import (
	"context"
	"log/slog"

	"fulfillment/internal/core/domain/model/delivery"
	"fulfillment/internal/core/ports"
)

// ConfirmDeliveryNoteCommandHandler sets a note to DELIVERED and publishes
// delivery.confirmed. Confirming twice yields errs.InvalidStateError.
type ConfirmDeliveryNoteCommandHandler struct {
	uowFactory DeliveryNoteUoWFactory
	publisher  ports.EventPublisher
	logger     *slog.Logger
}

func NewConfirmDeliveryNoteCommandHandler(
	uowFactory DeliveryNoteUoWFactory,
	publisher ports.EventPublisher,
	logger *slog.Logger,
) ConfirmDeliveryNoteCommandHandler {
	return ConfirmDeliveryNoteCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		logger:     logger.With("component", "confirm_delivery_note"),
	}
}

func (h ConfirmDeliveryNoteCommandHandler) Handle(ctx context.Context, cmd ConfirmDeliveryNoteCommand) (*delivery.Note, error) {
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

	if err = note.Confirm(cmd.ProofOfDeliveryURL()); err != nil {
		return nil, err
	}

	if err = repo.Update(ctx, note); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	publishBestEffort(ctx, h.logger, h.publisher, ports.EventDeliveryConfirmed, ports.DeliveryConfirmedPayload{
		DeliveryNoteID:     note.ID().String(),
		OrderID:            note.OrderID(),
		CustomerID:         note.CustomerID(),
		ProofOfDeliveryURL: note.ProofOfDeliveryURL(),
		TenantID:           note.TenantID().String(),
	})

	return note, nil
}
