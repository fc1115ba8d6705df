package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "crmchat"

var (
	queriesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "queries_total",
			Help:      "Total number of answered queries by intent",
		},
		[]string{"intent"},
	)

	cacheLoadsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_loads_total",
			Help:      "Total number of dataset loads by result",
		},
		[]string{"result"},
	)

	cacheLoadDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "cache_load_duration_seconds",
			Help:      "Time spent fetching all CRM collections",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
	)

	sessionsActive = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "sessions_active",
			Help:      "Number of live assistant sessions",
		},
	)
)

func init() {
	prometheus.MustRegister(queriesTotal)
	prometheus.MustRegister(cacheLoadsTotal)
	prometheus.MustRegister(cacheLoadDuration)
	prometheus.MustRegister(sessionsActive)
}

func RecordQuery(intent string) {
	queriesTotal.WithLabelValues(intent).Inc()
}

// RecordCacheLoad records one dataset fetch batch.
func RecordCacheLoad(took time.Duration, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	cacheLoadsTotal.WithLabelValues(result).Inc()
	cacheLoadDuration.Observe(took.Seconds())
}

func SetSessions(n int) {
	sessionsActive.Set(float64(n))
}
