// Package messaging turns upstream order.fulfilled messages into delivery notes.
// The RabbitMQ and Kafka consumers share it, so both transports accept the same
// payloads and create notes the same way.
package messaging

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/delivery"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/metrics"
)

var ErrEmptyMessage = errors.New("message body is empty")

// CreateDeliveryNoteHandler is satisfied by commands.CreateDeliveryNoteCommandHandler.
type CreateDeliveryNoteHandler interface {
	Handle(ctx context.Context, cmd commands.CreateDeliveryNoteCommand) (*delivery.Note, error)
}

// OrderFulfilledHandler creates one PENDING delivery note per order.fulfilled message.
type OrderFulfilledHandler struct {
	create CreateDeliveryNoteHandler
	logger *slog.Logger
}

func NewOrderFulfilledHandler(create CreateDeliveryNoteHandler, logger *slog.Logger) *OrderFulfilledHandler {
	return &OrderFulfilledHandler{
		create: create,
		logger: logger.With("component", "order_fulfilled_handler"),
	}
}

// HandleMessage decodes body and creates the delivery note. A returned error
// means the message was not processed; consumers drop it.
func (h *OrderFulfilledHandler) HandleMessage(ctx context.Context, body []byte) error {
	note, err := h.handle(ctx, body)
	metrics.EventsConsumedTotal.WithLabelValues(metrics.Outcome(err)).Inc()
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to process order fulfilled event", "error", err)
		return err
	}

	h.logger.InfoContext(ctx, "delivery note created from order",
		"order_id", note.OrderID(),
		"delivery_note_id", note.ID().String(),
		"delivery_number", note.Number().String(),
	)
	return nil
}

func (h *OrderFulfilledHandler) handle(ctx context.Context, body []byte) (*delivery.Note, error) {
	event, err := DecodeOrderFulfilled(body)
	if err != nil {
		return nil, err
	}

	cmd, err := NewCreateCommand(event)
	if err != nil {
		return nil, err
	}

	return h.create.Handle(ctx, cmd)
}

// envelope is the wrapper used by services publishing through the shared event bus.
type envelope struct {
	EventType string          `json:"eventType"`
	Payload   json.RawMessage `json:"payload"`
}

// DecodeOrderFulfilled accepts both an enveloped event and a bare payload.
func DecodeOrderFulfilled(body []byte) (ports.OrderFulfilledEvent, error) {
	var event ports.OrderFulfilledEvent

	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		return event, ErrEmptyMessage
	}

	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return event, fmt.Errorf("decode order fulfilled event: %w", err)
	}
	if payload := bytes.TrimSpace(env.Payload); len(payload) > 0 && !bytes.Equal(payload, []byte("null")) {
		body = payload
	}

	if err := json.Unmarshal(body, &event); err != nil {
		return event, fmt.Errorf("decode order fulfilled event: %w", err)
	}
	return event, nil
}

// NewCreateCommand maps an upstream event to a create command. A missing
// description falls back to the item name; the unit defaults to pcs.
func NewCreateCommand(event ports.OrderFulfilledEvent) (commands.CreateDeliveryNoteCommand, error) {
	items := make([]commands.DeliveryItemInput, 0, len(event.Items))
	for _, item := range event.Items {
		description := item.Description
		if description == "" {
			description = item.Name
		}
		unit := item.Unit
		if unit == "" {
			unit = delivery.DefaultUnit
		}
		items = append(items, commands.DeliveryItemInput{
			ProductID:   item.ProductID,
			Description: description,
			Quantity:    item.Quantity,
			Unit:        unit,
		})
	}

	return commands.NewCreateDeliveryNoteCommand(
		event.TenantID,
		event.OrderID,
		event.CustomerID,
		event.DeliveryAddressID,
		items,
	)
}
