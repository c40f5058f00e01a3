package commands

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"fulfillment/internal/core/domain/model/delivery"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/ports"
)

// MaxNumberAttempts bounds the generate-and-check loop for delivery numbers.
const MaxNumberAttempts = 10

var ErrDeliveryNumberUnavailable = errors.New("could not allocate a unique delivery number")

// CreateDeliveryNoteCommandHandler allocates a delivery number, stores the note
// with its items and CREATED event in one transaction, then publishes delivery.created.
type CreateDeliveryNoteCommandHandler struct {
	uowFactory DeliveryNoteUoWFactory
	publisher  ports.EventPublisher
	logger     *slog.Logger
}

func NewCreateDeliveryNoteCommandHandler(
	uowFactory DeliveryNoteUoWFactory,
	publisher ports.EventPublisher,
	logger *slog.Logger,
) CreateDeliveryNoteCommandHandler {
	return CreateDeliveryNoteCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		logger:     logger.With("component", "create_delivery_note"),
	}
}

func (h CreateDeliveryNoteCommandHandler) Handle(ctx context.Context, cmd CreateDeliveryNoteCommand) (*delivery.Note, error) {
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

	number, err := h.allocateNumber(ctx, repo)
	if err != nil {
		return nil, err
	}

	note, err := delivery.NewNote(
		kernel.NewUUID(),
		number,
		cmd.OrderID(),
		cmd.CustomerID(),
		cmd.DeliveryAddressID(),
		cmd.Items(),
		cmd.TenantID(),
	)
	if err != nil {
		return nil, err
	}

	if err = repo.Add(ctx, note); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	h.logger.InfoContext(ctx, "delivery note created",
		"delivery_note_id", note.ID().String(),
		"delivery_number", note.Number().String(),
		"order_id", note.OrderID(),
		"tenant_id", note.TenantID().String(),
	)

	publishBestEffort(ctx, h.logger, h.publisher, ports.EventDeliveryCreated, ports.DeliveryCreatedPayload{
		DeliveryNoteID: note.ID().String(),
		OrderID:        note.OrderID(),
		CustomerID:     note.CustomerID(),
		TenantID:       note.TenantID().String(),
	})

	return note, nil
}

func (h CreateDeliveryNoteCommandHandler) allocateNumber(ctx context.Context, repo ports.DeliveryNoteRepository) (delivery.Number, error) {
	for range MaxNumberAttempts {
		number := delivery.GenerateNumber(time.Now())
		exists, err := repo.ExistsByNumber(ctx, number)
		if err != nil {
			return "", err
		}
		if !exists {
			return number, nil
		}
	}
	return "", ErrDeliveryNumberUnavailable
}
