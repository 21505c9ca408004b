// Package metrics exposes Prometheus collectors for the weighing service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metric names as constants for consistency.
const (
	MetricEventsWeighted   = "btag_events_weighted_total"
	MetricJetsWeighted     = "btag_jets_weighted_total"
	MetricDegenerate       = "btag_degenerate_events_total"
	MetricBatchesProcessed = "btag_batches_processed_total"
	MetricBatchErrors      = "btag_batch_errors_total"
	MetricEventWeight      = "btag_event_weight"
)

// Metrics contains Prometheus metrics for the weighing service.
// All operations are thread-safe.
type Metrics struct {
	eventsWeighted   prometheus.Counter
	jetsWeighted     prometheus.Counter
	degenerate       prometheus.Counter
	batchesProcessed prometheus.Counter
	batchErrors      prometheus.Counter
	eventWeight      prometheus.Histogram
}

// NewMetrics creates a Metrics instance with all collectors initialized.
// The metrics are not registered; call Register to register them with a
// registry.
func NewMetrics() *Metrics {
	return &Metrics{
		eventsWeighted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: MetricEventsWeighted,
			Help: "Total number of events weighted",
		}),
		jetsWeighted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: MetricJetsWeighted,
			Help: "Total number of jets entering event weights",
		}),
		degenerate: prometheus.NewCounter(prometheus.CounterOpts{
			Name: MetricDegenerate,
			Help: "Total number of events left at neutral weight because the simulation probability vanished",
		}),
		batchesProcessed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: MetricBatchesProcessed,
			Help: "Total number of batches weighed and persisted",
		}),
		batchErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Name: MetricBatchErrors,
			Help: "Total number of batch requests that failed",
		}),
		eventWeight: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    MetricEventWeight,
			Help:    "Distribution of per-event weights",
			Buckets: prometheus.LinearBuckets(0.0, 0.1, 21),
		}),
	}
}

// Register registers all metrics with the given registry.
func (m *Metrics) Register(reg prometheus.Registerer) error {
	for _, c := range m.Collectors() {
		if err := reg.Register(c); err != nil {
			return err
		}
	}
	return nil
}

// IncEventsWeighted increments the weighted-events counter.
func (m *Metrics) IncEventsWeighted() {
	m.eventsWeighted.Inc()
}

// AddJetsWeighted adds to the weighted-jets counter.
func (m *Metrics) AddJetsWeighted(n int) {
	m.jetsWeighted.Add(float64(n))
}

// IncDegenerate increments the degenerate-events counter.
func (m *Metrics) IncDegenerate() {
	m.degenerate.Inc()
}

// IncBatchesProcessed increments the processed-batches counter.
func (m *Metrics) IncBatchesProcessed() {
	m.batchesProcessed.Inc()
}

// IncBatchErrors increments the failed-batches counter.
func (m *Metrics) IncBatchErrors() {
	m.batchErrors.Inc()
}

// ObserveEventWeight records one event weight.
func (m *Metrics) ObserveEventWeight(w float64) {
	m.eventWeight.Observe(w)
}

// Collectors returns all Prometheus collectors for testing.
func (m *Metrics) Collectors() []prometheus.Collector {
	return []prometheus.Collector{
		m.eventsWeighted,
		m.jetsWeighted,
		m.degenerate,
		m.batchesProcessed,
		m.batchErrors,
		m.eventWeight,
	}
}
