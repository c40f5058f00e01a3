package jobs_test

import (
	"context"
	"log/slog"
	"testing"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/jobs"
	"fulfillment/internal/pkg/metrics"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockReconcileHandler struct{ mock.Mock }

func (m *mockReconcileHandler) Handle(
	ctx context.Context,
	cmd commands.ReconcileTrackingCommand,
) (commands.ReconcileTrackingResult, error) {
	args := m.Called(ctx, cmd)
	result, _ := args.Get(0).(commands.ReconcileTrackingResult)
	return result, args.Error(1)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func TestRunOnce_RecordsMetrics(t *testing.T) {
	handler := &mockReconcileHandler{}
	handler.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.ReconcileTrackingCommand) bool {
		return cmd.BatchSize() == 50
	})).Return(commands.ReconcileTrackingResult{Processed: 4, Updated: 1, Failed: 2}, nil)

	runsBefore := testutil.ToFloat64(metrics.TrackingReconciliationRunsTotal)
	updatedBefore := testutil.ToFloat64(metrics.TrackingNotesProcessedTotal.WithLabelValues(metrics.OutcomeUpdated))
	unchangedBefore := testutil.ToFloat64(metrics.TrackingNotesProcessedTotal.WithLabelValues(metrics.OutcomeSkipped))
	failedBefore := testutil.ToFloat64(metrics.TrackingNotesProcessedTotal.WithLabelValues(metrics.OutcomeFailure))

	job := jobs.NewTrackingReconciliationJob(handler, "", 50, discardLogger())
	result, err := job.RunOnce(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 4, result.Processed)
	assert.InDelta(t, runsBefore+1, testutil.ToFloat64(metrics.TrackingReconciliationRunsTotal), 0.0001)
	assert.InDelta(t, updatedBefore+1,
		testutil.ToFloat64(metrics.TrackingNotesProcessedTotal.WithLabelValues(metrics.OutcomeUpdated)), 0.0001)
	assert.InDelta(t, unchangedBefore+3,
		testutil.ToFloat64(metrics.TrackingNotesProcessedTotal.WithLabelValues(metrics.OutcomeSkipped)), 0.0001)
	assert.InDelta(t, failedBefore+2,
		testutil.ToFloat64(metrics.TrackingNotesProcessedTotal.WithLabelValues(metrics.OutcomeFailure)), 0.0001)
	handler.AssertExpectations(t)
}

func TestRunOnce_ReturnsHandlerError(t *testing.T) {
	handler := &mockReconcileHandler{}
	handler.On("Handle", mock.Anything, mock.Anything).Return(nil, assert.AnError)

	job := jobs.NewTrackingReconciliationJob(handler, "", commands.DefaultTrackingBatchSize, discardLogger())
	_, err := job.RunOnce(context.Background())

	require.ErrorIs(t, err, assert.AnError)
}

func TestRunOnce_RejectsInvalidBatchSize(t *testing.T) {
	handler := &mockReconcileHandler{}

	job := jobs.NewTrackingReconciliationJob(handler, "", 0, discardLogger())
	_, err := job.RunOnce(context.Background())

	require.Error(t, err)
	handler.AssertNotCalled(t, "Handle", mock.Anything, mock.Anything)
}

func TestStart_RejectsInvalidSchedule(t *testing.T) {
	job := jobs.NewTrackingReconciliationJob(&mockReconcileHandler{}, "not a schedule", 10, discardLogger())

	require.Error(t, job.Start(context.Background()))
}

func TestJobManager_StartAndStop(t *testing.T) {
	manager := jobs.NewJobManager(&mockReconcileHandler{}, "@every 1h", 10, discardLogger())

	require.NoError(t, manager.StartAll(context.Background()))
	assert.NotPanics(t, manager.StopAll)
}
