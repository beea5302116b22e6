package analyzer

import "github.com/prometheus/client_golang/prometheus"

var (
	analysesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "grammarbot",
			Subsystem: "analyzer",
			Name:      "analyses_total",
			Help:      "Total number of analyses that reached the models, by result",
		},
		[]string{"result"},
	)

	modelCallDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "grammarbot",
			Subsystem: "analyzer",
			Name:      "model_call_duration_seconds",
			Help:      "Duration of model backend calls in seconds",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		},
		[]string{"task", "backend"},
	)

	errorsDetectedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "grammarbot",
			Subsystem: "analyzer",
			Name:      "errors_detected_total",
			Help:      "Error spans detected, by error type",
		},
		[]string{"error_type"},
	)

	cacheHitsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "grammarbot",
			Subsystem: "analyzer",
			Name:      "cache_hits_total",
			Help:      "Analyses answered from the cache",
		},
	)
)

func init() {
	prometheus.MustRegister(analysesTotal, modelCallDuration, errorsDetectedTotal, cacheHitsTotal)
}
