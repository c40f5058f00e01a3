package jobs

import (
	"context"
	"fmt"
	"log/slog"
)

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	trackingJob *TrackingReconciliationJob
}

// NewJobManager creates a new job manager with all required jobs.
func NewJobManager(
	reconcileHandler ReconcileTrackingHandler,
	trackingSchedule string,
	batchSize int,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		trackingJob: NewTrackingReconciliationJob(reconcileHandler, trackingSchedule, batchSize, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll(ctx context.Context) error {
	if err := jm.trackingJob.Start(ctx); err != nil {
		return fmt.Errorf("failed to start tracking reconciliation job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.trackingJob.Stop()
}
