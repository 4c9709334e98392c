package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// Search outcome labels.
const (
	OutcomeOK         = "ok"
	OutcomeEmpty      = "empty"
	OutcomeStoreError = "store_error"
)

// Search service Prometheus metrics.
var (
	SearchRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "search_requests_total",
			Help:      "Total number of search service calls by outcome",
		},
		[]string{"service", "outcome"},
	)

	SearchHitsReturned = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "search_hits_returned",
			Help:      "Hits returned per search service call",
			Buckets:   []float64{0, 1, 6, 12, 24, 51},
		},
		[]string{"service"},
	)

	QueryStatsErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "querystats_errors_total",
			Help:      "Query statistics writes that failed",
		},
		[]string{"operation"},
	)
)

var registerSearchOnce sync.Once

// RegisterSearchMetrics registers the search service metrics. Safe to call more than once.
func RegisterSearchMetrics() {
	registerSearchOnce.Do(func() {
		prometheus.MustRegister(SearchRequestsTotal)
		prometheus.MustRegister(SearchHitsReturned)
		prometheus.MustRegister(QueryStatsErrorsTotal)
	})
}
