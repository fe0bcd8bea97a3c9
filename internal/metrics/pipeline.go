package metrics

import "github.com/prometheus/client_golang/prometheus"

// Retrieval pipeline Prometheus metrics.
var (
	ResolveDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "dinewise",
			Name:      "resolve_duration_seconds",
			Help:      "End-to-end query resolution duration in seconds",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"intent", "status"},
	)

	ClassifierDecisionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "dinewise",
			Name:      "classifier_decisions_total",
			Help:      "Intent classification decisions by resolved intent and signal source",
		},
		[]string{"intent", "source"},
	)

	CollectionSearchFailuresTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "dinewise",
			Name:      "collection_search_failures_total",
			Help:      "Per-collection similarity search failures during fan-out",
		},
		[]string{"collection"},
	)

	OracleFailuresTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "dinewise",
			Name:      "oracle_failures_total",
			Help:      "Oracle call failures by operation",
		},
		[]string{"operation"}, // "classify" / "profile"
	)
)

var pipelineMetricsRegistered bool

// RegisterPipelineMetrics registers Prometheus pipeline metrics. Must be called once from main.
func RegisterPipelineMetrics() {
	if pipelineMetricsRegistered {
		return
	}
	prometheus.MustRegister(ResolveDuration)
	prometheus.MustRegister(ClassifierDecisionsTotal)
	prometheus.MustRegister(CollectionSearchFailuresTotal)
	prometheus.MustRegister(OracleFailuresTotal)
	pipelineMetricsRegistered = true
}
