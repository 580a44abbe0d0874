// Package metrics defines the Prometheus collectors recorded by the search
// index and the dropdown controller.
//
// A nil *Metrics is valid and records nothing, so callers never need to
// guard metric calls.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "docsearch"

// Query outcomes used as the "outcome" label of QueriesTotal.
const (
	OutcomeEmpty = "empty"
	OutcomeHit   = "hit"
	OutcomeMiss  = "miss"
	OutcomeError = "error"
)

// Metrics holds all Prometheus collectors for the widget.
type Metrics struct {
	IndexBuildsTotal  prometheus.Counter
	IndexBuildSeconds prometheus.Histogram
	IndexedDocs       prometheus.Gauge
	QueriesTotal      *prometheus.CounterVec
	QueryResults      prometheus.Histogram
	NavigationTotal   *prometheus.CounterVec
	TransitionsTotal  *prometheus.CounterVec
}

// New creates the collectors and registers them with reg. A nil reg leaves
// the collectors unregistered, which is convenient in tests.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		IndexBuildsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "index_builds_total",
			Help:      "Number of search index builds.",
		}),
		IndexBuildSeconds: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "index_build_seconds",
			Help:      "Time spent building the search index.",
			Buckets:   prometheus.ExponentialBuckets(0.001, 2, 12),
		}),
		IndexedDocs: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "indexed_documents",
			Help:      "Number of documents in the built index.",
		}),
		QueriesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "queries_total",
			Help:      "Search queries by outcome.",
		}, []string{"outcome"}),
		QueryResults: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "query_results",
			Help:      "Number of results returned per query.",
			Buckets:   []float64{0, 1, 2, 5, 10, 20, 50},
		}),
		NavigationTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "navigation_total",
			Help:      "Navigation key presses handled by the dropdown.",
		}, []string{"key"}),
		TransitionsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "dropdown_transitions_total",
			Help:      "Dropdown state transitions by target state.",
		}, []string{"to"}),
	}

	if reg != nil {
		reg.MustRegister(
			m.IndexBuildsTotal,
			m.IndexBuildSeconds,
			m.IndexedDocs,
			m.QueriesTotal,
			m.QueryResults,
			m.NavigationTotal,
			m.TransitionsTotal,
		)
	}
	return m
}

// ObserveBuild records a completed index build.
func (m *Metrics) ObserveBuild(docs int, took time.Duration) {
	if m == nil {
		return
	}
	m.IndexBuildsTotal.Inc()
	m.IndexBuildSeconds.Observe(took.Seconds())
	m.IndexedDocs.Set(float64(docs))
}

// ObserveQuery records a query outcome and its result count.
func (m *Metrics) ObserveQuery(outcome string, results int) {
	if m == nil {
		return
	}
	m.QueriesTotal.WithLabelValues(outcome).Inc()
	if outcome != OutcomeError {
		m.QueryResults.Observe(float64(results))
	}
}

// ObserveNavigation records a handled navigation key.
func (m *Metrics) ObserveNavigation(key string) {
	if m == nil {
		return
	}
	m.NavigationTotal.WithLabelValues(key).Inc()
}

// ObserveTransition records a dropdown state change.
func (m *Metrics) ObserveTransition(to string) {
	if m == nil {
		return
	}
	m.TransitionsTotal.WithLabelValues(to).Inc()
}
