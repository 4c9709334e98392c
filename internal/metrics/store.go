package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "minbar"

// Search store Prometheus metrics.
var (
	StoreRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "store_requests_total",
			Help:      "Total number of search store requests",
		},
		[]string{"operation", "status"},
	)

	StoreRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "store_request_duration_seconds",
			Help:      "Search store request duration in seconds",
			Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
		[]string{"operation"},
	)

	StoreSubQueries = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "store_sub_queries",
			Help:      "Sub-queries sent per multi-search request",
			Buckets:   []float64{1, 2, 4, 6, 8, 12},
		},
		[]string{"operation"},
	)
)

var registerStoreOnce sync.Once

// RegisterStoreMetrics registers the search store metrics. Safe to call more than once.
func RegisterStoreMetrics() {
	registerStoreOnce.Do(func() {
		prometheus.MustRegister(StoreRequestsTotal)
		prometheus.MustRegister(StoreRequestDuration)
		prometheus.MustRegister(StoreSubQueries)
	})
}
