package jobs

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/pkg/metrics"

	"github.com/robfig/cron/v3"
)

// DefaultTrackingSchedule polls carriers twice an hour.
const DefaultTrackingSchedule = "@every 30m"

// ReconcileTrackingHandler runs one reconciliation pass.
type ReconcileTrackingHandler interface {
	Handle(ctx context.Context, cmd commands.ReconcileTrackingCommand) (commands.ReconcileTrackingResult, error)
}

// TrackingReconciliationJob polls carriers for every trackable delivery note on a schedule.
// A run still in progress when the next one is due causes that next run to be skipped.
type TrackingReconciliationJob struct {
	handler   ReconcileTrackingHandler
	schedule  string
	batchSize int
	cron      *cron.Cron
	logger    *slog.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
}

// NewTrackingReconciliationJob creates the job. An empty schedule selects DefaultTrackingSchedule.
func NewTrackingReconciliationJob(
	handler ReconcileTrackingHandler,
	schedule string,
	batchSize int,
	logger *slog.Logger,
) *TrackingReconciliationJob {
	if schedule == "" {
		schedule = DefaultTrackingSchedule
	}
	logger = logger.With("component", "tracking_reconciliation_job")
	cronLogger := slogCronLogger{logger: logger}

	return &TrackingReconciliationJob{
		handler:   handler,
		schedule:  schedule,
		batchSize: batchSize,
		cron: cron.New(
			cron.WithLogger(cronLogger),
			cron.WithChain(cron.Recover(cronLogger), cron.SkipIfStillRunning(cronLogger)),
		),
		logger: logger,
	}
}

// Start schedules the job. Runs inherit ctx, so canceling it aborts a run in progress.
func (j *TrackingReconciliationJob) Start(ctx context.Context) error {
	runCtx, cancel := context.WithCancel(ctx)
	j.mu.Lock()
	j.cancel = cancel
	j.mu.Unlock()

	_, err := j.cron.AddFunc(j.schedule, func() {
		if _, runErr := j.RunOnce(runCtx); runErr != nil && runCtx.Err() == nil {
			j.logger.ErrorContext(runCtx, "Tracking reconciliation run failed", "error", runErr)
		}
	})
	if err != nil {
		cancel()
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(ctx, "Tracking reconciliation job started", "schedule", j.schedule, "batch_size", j.batchSize)
	return nil
}

// RunOnce performs a single reconciliation pass and records its metrics.
func (j *TrackingReconciliationJob) RunOnce(ctx context.Context) (commands.ReconcileTrackingResult, error) {
	metrics.TrackingReconciliationRunsTotal.Inc()

	cmd, err := commands.NewReconcileTrackingCommand(j.batchSize)
	if err != nil {
		return commands.ReconcileTrackingResult{}, err
	}

	started := time.Now()
	result, err := j.handler.Handle(ctx, cmd)

	metrics.TrackingNotesProcessedTotal.WithLabelValues(metrics.OutcomeUpdated).Add(float64(result.Updated))
	metrics.TrackingNotesProcessedTotal.WithLabelValues(metrics.OutcomeSkipped).Add(float64(result.Processed - result.Updated))
	metrics.TrackingNotesProcessedTotal.WithLabelValues(metrics.OutcomeFailure).Add(float64(result.Failed))

	if err != nil {
		return result, err
	}

	j.logger.InfoContext(ctx, "Tracking reconciliation finished",
		"processed", result.Processed,
		"updated", result.Updated,
		"failed", result.Failed,
		"duration", time.Since(started),
	)
	return result, nil
}

// Stop cancels a run in progress and waits for it to return.
func (j *TrackingReconciliationJob) Stop() {
	j.mu.Lock()
	if j.cancel != nil {
		j.cancel()
	}
	j.mu.Unlock()

	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Tracking reconciliation job stopped")
}

// slogCronLogger adapts slog to the cron.Logger interface.
type slogCronLogger struct {
	logger *slog.Logger
}

func (l slogCronLogger) Info(msg string, keysAndValues ...any) {
	l.logger.Debug(msg, keysAndValues...)
}

func (l slogCronLogger) Error(err error, msg string, keysAndValues ...any) {
	l.logger.Error(msg, append(keysAndValues, "error", err)...)
}
