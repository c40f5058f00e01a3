package commands

import (
	"context"
	"log/slog"

	"fulfillment/internal/core/domain/model/carrier"
	"fulfillment/internal/core/domain/model/delivery"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"
)

// DispatchDeliveryNoteCommandHandler runs the dispatch procedure:
//
//  1. load the PENDING note and its active carrier
//  2. resolve the recipient address from the registry
//  3. create the carrier shipment (retried by the integration)
//  4. persist the tracking number, guarded on status PENDING
//  5. deduct inventory
//  6. mark DISPATCHED, commit and publish delivery.dispatched
//
// Failures in steps 1 to 4 abort without changing the note and without touching
// inventory. A failed inventory deduction is logged and the dispatch still
// completes: the carrier shipment already exists and cannot be cheaply undone.
//
// Steps 4 to 6 share one transaction. The guarded update in step 4 locks the row,
// so of two concurrent dispatches only one passes it; the other gets
// errs.InvalidStateError before reaching inventory.
type DispatchDeliveryNoteCommandHandler struct {
	uowFactory UoWFactory
	carriers   ports.CarrierIntegrationFactory
	recipients ports.RecipientResolver
	inventory  ports.InventoryClient
	publisher  ports.EventPublisher
	logger     *slog.Logger
}

func NewDispatchDeliveryNoteCommandHandler(
	uowFactory UoWFactory,
	carriers ports.CarrierIntegrationFactory,
	recipients ports.RecipientResolver,
	inventory ports.InventoryClient,
	publisher ports.EventPublisher,
	logger *slog.Logger,
) DispatchDeliveryNoteCommandHandler {
	return DispatchDeliveryNoteCommandHandler{
		uowFactory: uowFactory,
		carriers:   carriers,
		recipients: recipients,
		inventory:  inventory,
		publisher:  publisher,
		logger:     logger.With("component", "dispatch_delivery_note"),
	}
}

func (h DispatchDeliveryNoteCommandHandler) Handle(ctx context.Context, cmd DispatchDeliveryNoteCommand) (*delivery.Note, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()

	note, c, err := h.loadDispatchable(ctx, uow, cmd)
	if err != nil {
		return nil, err
	}

	recipient, err := h.recipients.Resolve(ctx, note.CustomerID(), note.DeliveryAddressID(), note.TenantID())
	if err != nil {
		return nil, err
	}

	integration, err := h.carriers.ForCarrier(c)
	if err != nil {
		return nil, err
	}

	shipment, err := integration.CreateShipment(ctx, shipmentRequest(note, recipient))
	if err != nil {
		h.logger.ErrorContext(ctx, "carrier shipment failed",
			"delivery_note_id", note.ID().String(),
			"carrier", c.Name(),
			"error", err,
		)
		return nil, err
	}

	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.DeliveryNoteRepository()

	if err = note.AssignShipment(c.ID(), shipment.TrackingNumber); err != nil {
		return nil, err
	}
	if err = repo.Update(ctx, note); err != nil {
		return nil, err
	}

	if err = h.inventory.Deduct(ctx, stockLines(note), note.TenantID(), note.Number().String()); err != nil {
		h.logger.WarnContext(ctx, "inventory deduction failed, dispatch continues",
			"delivery_note_id", note.ID().String(),
			"tenant_id", note.TenantID().String(),
			"error", err,
		)
	}

	if err = note.MarkDispatched(); err != nil {
		return nil, err
	}
	if err = repo.Update(ctx, note); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	h.logger.InfoContext(ctx, "delivery note dispatched",
		"delivery_note_id", note.ID().String(),
		"carrier", c.Name(),
		"tracking_number", note.TrackingNumber(),
	)

	publishBestEffort(ctx, h.logger, h.publisher, ports.EventDeliveryDispatched, ports.DeliveryDispatchedPayload{
		DeliveryNoteID: note.ID().String(),
		OrderID:        note.OrderID(),
		Items:          dispatchedItems(note),
		TenantID:       note.TenantID().String(),
	})

	return note, nil
}

func (h DispatchDeliveryNoteCommandHandler) loadDispatchable(
	ctx context.Context,
	uow UoW,
	cmd DispatchDeliveryNoteCommand,
) (*delivery.Note, *carrier.Carrier, error) {
	note, err := uow.DeliveryNoteRepository().Get(ctx, cmd.DeliveryNoteID(), cmd.TenantID())
	if err != nil {
		return nil, nil, err
	}
	if err = note.EnsureDispatchable(); err != nil {
		return nil, nil, err
	}

	c, err := uow.CarrierRepository().Get(ctx, cmd.CarrierID(), cmd.TenantID())
	if err != nil {
		return nil, nil, err
	}
	if !c.IsActive() {
		return nil, nil, errs.NewInvalidStateError("carrier", "INACTIVE", "carrier "+c.Name()+" is not active")
	}

	return note, c, nil
}

func shipmentRequest(note *delivery.Note, recipient ports.Recipient) ports.ShipmentRequest {
	items := make([]ports.ShipmentItem, 0, len(note.Items()))
	for _, item := range note.Items() {
		items = append(items, ports.ShipmentItem{
			ProductID:   item.ProductID(),
			Description: item.Description(),
			Quantity:    item.Quantity(),
			Unit:        item.Unit(),
		})
	}

	return ports.ShipmentRequest{
		Reference: note.Number().String(),
		Recipient: recipient,
		Items:     items,
	}
}

func stockLines(note *delivery.Note) []ports.StockLine {
	lines := make([]ports.StockLine, 0, len(note.Items()))
	for _, item := range note.Items() {
		lines = append(lines, ports.StockLine{
			ProductID: item.ProductID(),
			Quantity:  item.Quantity(),
		})
	}
	return lines
}

func dispatchedItems(note *delivery.Note) []ports.DispatchedItemPayload {
	items := make([]ports.DispatchedItemPayload, 0, len(note.Items()))
	for _, item := range note.Items() {
		items = append(items, ports.DispatchedItemPayload{
			ProductID:   item.ProductID(),
			Description: item.Description(),
			Quantity:    item.Quantity(),
			Unit:        item.Unit(),
		})
	}
	return items
}
