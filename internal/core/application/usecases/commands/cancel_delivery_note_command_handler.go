package commands

import (
	"context"
	"log/slog"

	"fulfillment/internal/core/domain/model/delivery"
	"fulfillment/internal/core/ports"
)

// CancelDeliveryNoteCommandHandler cancels a note and publishes delivery.canceled.
// When goods had already shipped, stock is restored on a best-effort basis.
type CancelDeliveryNoteCommandHandler struct {
	uowFactory DeliveryNoteUoWFactory
	inventory  ports.InventoryClient
	publisher  ports.EventPublisher
	logger     *slog.Logger
}

func NewCancelDeliveryNoteCommandHandler(
	uowFactory DeliveryNoteUoWFactory,
	inventory ports.InventoryClient,
	publisher ports.EventPublisher,
	logger *slog.Logger,
) CancelDeliveryNoteCommandHandler {
	return CancelDeliveryNoteCommandHandler{
		uowFactory: uowFactory,
		inventory:  inventory,
		publisher:  publisher,
		logger:     logger.With("component", "cancel_delivery_note"),
	}
}

func (h CancelDeliveryNoteCommandHandler) Handle(ctx context.Context, cmd CancelDeliveryNoteCommand) (*delivery.Note, error) {
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

	shipped := note.Status().IsShipped()

	if err = note.Cancel(cmd.Reason()); err != nil {
		return nil, err
	}

	if err = repo.Update(ctx, note); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	if shipped {
		if err = h.inventory.Restore(ctx, stockLines(note), note.TenantID(), note.Number().String()); err != nil {
			h.logger.WarnContext(ctx, "inventory restore failed",
				"delivery_note_id", note.ID().String(),
				"tenant_id", note.TenantID().String(),
				"error", err,
			)
		}
	}

	publishBestEffort(ctx, h.logger, h.publisher, ports.EventDeliveryCanceled, ports.DeliveryCanceledPayload{
		DeliveryNoteID: note.ID().String(),
		OrderID:        note.OrderID(),
		Reason:         cmd.Reason(),
		TenantID:       note.TenantID().String(),
	})

	return note, nil
}
