package commands

import (
	"context"
	"log/slog"

	"fulfillment/internal/core/domain/model/delivery"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/core/ports"
)

// StatusUpdater is the status transition primitive driven by reconciliation.
type StatusUpdater interface {
	Handle(ctx context.Context, cmd UpdateDeliveryStatusCommand) (*delivery.Note, error)
}

// ReconcileTrackingCommandHandler polls carriers for active shipments.
//
// For every trackable note it fetches tracking info, maps the carrier text to a
// status and, when that differs, calls the StatusUpdater. It then appends the raw
// tracking snapshot as an IN_TRANSIT event whatever the mapped status was.
// A failure on one note is logged and the run continues with the next.
type ReconcileTrackingCommandHandler struct {
	uowFactory UoWFactory
	carriers   ports.CarrierIntegrationFactory
	updater    StatusUpdater
	resolver   services.TrackingStatusResolver
	logger     *slog.Logger
}

func NewReconcileTrackingCommandHandler(
	uowFactory UoWFactory,
	carriers ports.CarrierIntegrationFactory,
	updater StatusUpdater,
	logger *slog.Logger,
) ReconcileTrackingCommandHandler {
	return ReconcileTrackingCommandHandler{
		uowFactory: uowFactory,
		carriers:   carriers,
		updater:    updater,
		resolver:   services.NewTrackingStatusResolver(),
		logger:     logger.With("component", "tracking_reconciliation"),
	}
}

func (h ReconcileTrackingCommandHandler) Handle(ctx context.Context, cmd ReconcileTrackingCommand) (ReconcileTrackingResult, error) {
	var result ReconcileTrackingResult

	if err := cmd.Validate(); err != nil {
		return result, err
	}

	notes, err := h.uowFactory.Create().DeliveryNoteRepository().ListTrackable(ctx, cmd.BatchSize())
	if err != nil {
		return result, err
	}

	for _, note := range notes {
		if ctx.Err() != nil {
			return result, ctx.Err()
		}

		updated, err := h.reconcile(ctx, note)
		if err != nil {
			result.Failed++
			h.logger.WarnContext(ctx, "tracking reconciliation failed for delivery note",
				"delivery_note_id", note.ID().String(),
				"tracking_number", note.TrackingNumber(),
				"tenant_id", note.TenantID().String(),
				"error", err,
			)
			continue
		}

		result.Processed++
		if updated {
			result.Updated++
		}
	}

	return result, nil
}

func (h ReconcileTrackingCommandHandler) reconcile(ctx context.Context, note *delivery.Note) (bool, error) {
	c, err := h.uowFactory.Create().CarrierRepository().Get(ctx, *note.CarrierID(), note.TenantID())
	if err != nil {
		return false, err
	}

	integration, err := h.carriers.ForCarrier(c)
	if err != nil {
		return false, err
	}

	info, err := integration.GetTrackingInfo(ctx, note.TrackingNumber())
	if err != nil {
		return false, err
	}

	status, changed := h.resolver.Resolve(info.Status, note.Status())
	if changed {
		cmd, cmdErr := NewUpdateDeliveryStatusCommand(note.TenantID(), note.ID(), status, map[string]any{
			"source":          "carrier_tracking",
			"carrierStatus":   info.Status,
			"currentLocation": info.CurrentLocation,
		})
		if cmdErr != nil {
			return false, cmdErr
		}
		if _, err = h.updater.Handle(ctx, cmd); err != nil {
			return false, err
		}
		h.logger.InfoContext(ctx, "delivery status updated from carrier",
			"delivery_note_id", note.ID().String(),
			"from", note.Status().String(),
			"to", status.String(),
		)
	}

	if err = h.recordSnapshot(ctx, note, info); err != nil {
		return changed, err
	}

	return changed, nil
}

func (h ReconcileTrackingCommandHandler) recordSnapshot(ctx context.Context, listed *delivery.Note, info ports.TrackingInfo) error {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.DeliveryNoteRepository()

	note, err := repo.Get(ctx, listed.ID(), listed.TenantID())
	if err != nil {
		return err
	}

	if err = note.RecordTrackingSnapshot(info.Snapshot()); err != nil {
		return err
	}

	if err = repo.Update(ctx, note); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
