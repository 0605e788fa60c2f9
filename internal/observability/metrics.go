package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "shelter_advisor"

// Metrics holds the Prometheus collectors for recommendations and hazard feeds.
type Metrics struct {
	Recommendations *prometheus.CounterVec
	RankerDuration  prometheus.Histogram
	RankerFailures  *prometheus.CounterVec
	RankerCache     *prometheus.CounterVec

	HazardRefresh *prometheus.CounterVec
	HazardsActive *prometheus.GaugeVec

	BatchDuration prometheus.Histogram
}

func newMetrics() *Metrics {
	return &Metrics{
		// source={ai,fallback}
		Recommendations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "recommendations_total",
			Help:      "Shelter recommendations served, by ranking source.",
		}, []string{"source"}),
		RankerDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "ranker_duration_seconds",
			Help:      "Duration of external ranking calls.",
			Buckets:   []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 15, 30},
		}),
		// reason={error,timeout,parse,empty,invalid}
		RankerFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "ranker_failures_total",
			Help:      "External ranking attempts that fell back to local scoring, by reason.",
		}, []string{"reason"}),
		// result={hit,miss}
		RankerCache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "ranker_cache_total",
			Help:      "Ranking cache lookups by result.",
		}, []string{"result"}),
		// feed={usgs,nws}, outcome={success,error}
		HazardRefresh: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "hazard_refresh_total",
			Help:      "Hazard feed refreshes by feed and outcome.",
		}, []string{"feed", "outcome"}),
		HazardsActive: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "hazards_active",
			Help:      "Hazards in the current snapshot, by kind.",
		}, []string{"kind"}),
		BatchDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "batch_duration_seconds",
			Help:      "Duration of batch recommendation requests.",
			Buckets:   []float64{0.01, 0.1, 0.5, 1, 5, 15, 30, 60},
		}),
	}
}

// NewMetrics creates and registers all metrics with the default Prometheus registry.
func NewMetrics() *Metrics {
	m := newMetrics()
	prometheus.MustRegister(
		m.Recommendations,
		m.RankerDuration,
		m.RankerFailures,
		m.RankerCache,
		m.HazardRefresh,
		m.HazardsActive,
		m.BatchDuration,
	)
	return m
}

// NewMetricsForTesting creates Metrics that are not registered anywhere, so
// tests can build as many as they need without "already registered" panics.
func NewMetricsForTesting() *Metrics {
	return newMetrics()
}
