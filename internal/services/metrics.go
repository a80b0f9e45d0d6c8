package services

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Prometheus metric names.
const (
	MetricAnalysesTotal           = "advance_analyses_total"
	MetricAnalysisDurationSeconds = "advance_analysis_duration_seconds"
	MetricRowsProcessedTotal      = "advance_rows_processed_total"
	MetricRowsMatchedTotal        = "advance_rows_matched_total"
	MetricRowsDroppedTotal        = "advance_rows_dropped_total"
)

// Metrics holds the service-level Prometheus instruments.
//
// Thread Safety: Safe for concurrent use by multiple goroutines.
type Metrics struct {
	registry *prometheus.Registry

	analysesTotal    *prometheus.CounterVec
	analysisDuration prometheus.Histogram
	rowsProcessed    prometheus.Counter
	rowsMatched      prometheus.Counter
	rowsDropped      prometheus.Counter
}

// NewMetrics creates and registers the service instruments on a fresh
// registry, alongside the standard Go and process collectors.
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()
	m := &Metrics{
		registry: registry,
		analysesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: MetricAnalysesTotal,
			Help: "Analysis runs by component and outcome.",
		}, []string{"component", "status"}),
		analysisDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    MetricAnalysisDurationSeconds,
			Help:    "Wall time of a full analysis run.",
			Buckets: prometheus.ExponentialBuckets(0.05, 2, 12),
		}),
		rowsProcessed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: MetricRowsProcessedTotal,
			Help: "Current-period rows that completed derivation.",
		}),
		rowsMatched: prometheus.NewCounter(prometheus.CounterOpts{
			Name: MetricRowsMatchedTotal,
			Help: "Rows that joined a prior-period record.",
		}),
		rowsDropped: prometheus.NewCounter(prometheus.CounterOpts{
			Name: MetricRowsDroppedTotal,
			Help: "Input rows dropped during normalization.",
		}),
	}
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.analysesTotal,
		m.analysisDuration,
		m.rowsProcessed,
		m.rowsMatched,
		m.rowsDropped,
	)
	return m
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// ObserveRun records the outcome of one analysis run.
func (m *Metrics) ObserveRun(component, status string, seconds float64, rows, matched, dropped int) {
	m.analysesTotal.WithLabelValues(component, status).Inc()
	m.analysisDuration.Observe(seconds)
	m.rowsProcessed.Add(float64(rows))
	m.rowsMatched.Add(float64(matched))
	m.rowsDropped.Add(float64(dropped))
}
