// Package metrics holds the Prometheus collectors of the service.
package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
	OutcomeUpdated = "updated"
	OutcomeSkipped = "unchanged"
)

var (
	HTTPRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"handler", "method", "status"},
	)

	HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"handler", "method"},
	)

	CarrierRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "carrier_requests_total",
			Help: "Total number of carrier API calls, after retries",
		},
		[]string{"carrier", "operation", "outcome"},
	)

	CarrierRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "carrier_request_duration_seconds",
			Help:    "Duration of carrier API calls including retries",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"carrier", "operation"},
	)

	EventsPublishedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "events_published_total",
			Help: "Total number of domain events handed to the broker",
		},
		[]string{"event_type", "outcome"},
	)

	EventsConsumedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "events_consumed_total",
			Help: "Total number of order fulfilled events consumed",
		},
		[]string{"outcome"},
	)

	TrackingReconciliationRunsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "tracking_reconciliation_runs_total",
			Help: "Total number of tracking reconciliation runs",
		},
	)

	TrackingNotesProcessedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tracking_notes_processed_total",
			Help: "Total number of delivery notes checked against their carrier",
		},
		[]string{"outcome"},
	)
)

var registerOnce sync.Once

// Register registers all collectors with the default registry. Safe to call more than once.
func Register() {
	registerOnce.Do(func() {
		prometheus.MustRegister(HTTPRequestsTotal)
		prometheus.MustRegister(HTTPRequestDuration)
		prometheus.MustRegister(CarrierRequestsTotal)
		prometheus.MustRegister(CarrierRequestDuration)
		prometheus.MustRegister(EventsPublishedTotal)
		prometheus.MustRegister(EventsConsumedTotal)
		prometheus.MustRegister(TrackingReconciliationRunsTotal)
		prometheus.MustRegister(TrackingNotesProcessedTotal)
	})
}

// Outcome maps an error to the success/failure label.
func Outcome(err error) string {
	if err != nil {
		return OutcomeFailure
	}
	return OutcomeSuccess
}
