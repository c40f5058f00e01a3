package commands

import (
	"errors"

	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

// DefaultTrackingBatchSize caps how many notes one reconciliation run polls.
const DefaultTrackingBatchSize = 100

var ErrReconcileTrackingCommandIsNotConstructed = errors.New(
	"ReconcileTrackingCommand must be created via NewReconcileTrackingCommand constructor",
)

// ReconcileTrackingCommand triggers one tracking reconciliation run over all tenants.
type ReconcileTrackingCommand struct {
	batchSize int

	guard guard.ConstructorGuard
}

// NewReconcileTrackingCommand accepts batch sizes from 1 to DefaultTrackingBatchSize.
func NewReconcileTrackingCommand(batchSize int) (ReconcileTrackingCommand, error) {
	if batchSize < 1 || batchSize > DefaultTrackingBatchSize {
		return ReconcileTrackingCommand{}, errs.NewValueIsOutOfRangeError("batchSize", batchSize, 1, DefaultTrackingBatchSize)
	}
	return ReconcileTrackingCommand{
		batchSize: batchSize,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c *ReconcileTrackingCommand) Validate() error {
	return c.guard.Validate(ErrReconcileTrackingCommandIsNotConstructed)
}

func (c *ReconcileTrackingCommand) BatchSize() int {
	return c.batchSize
}

// ReconcileTrackingResult summarises a run.
type ReconcileTrackingResult struct {
	// Processed counts notes whose snapshot was recorded.
	Processed int
	// Updated counts notes whose status changed.
	Updated int
	// Failed counts notes skipped because of an error.
	Failed int
}
