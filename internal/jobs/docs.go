// Package jobs provides scheduled background tasks for the fulfillment service.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3.
//
// # Available Jobs
//
// TrackingReconciliationJob polls the carrier of every DISPATCHED or IN_TRANSIT
// delivery note, applies the status the carrier reports and records a tracking
// snapshot. The default schedule is "@every 30m" and can be replaced by any
// expression robfig/cron accepts, for example "*/15 * * * *".
//
// # Usage
//
//	jobManager := jobs.NewJobManager(reconcileHandler, "@every 30m", commands.DefaultTrackingBatchSize, logger)
//	if err := jobManager.StartAll(ctx); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// # Error Handling
//
//   - A failing note is logged by the handler and counted; the run goes on
//   - Overlapping runs are skipped rather than queued
//   - An invalid schedule makes StartAll fail
package jobs
