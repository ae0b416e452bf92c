// Package metrics exposes Prometheus instrumentation for the recommender.
// Metrics register with the default registry on package init.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "meshi_http_requests_total",
			Help: "Total number of HTTP requests processed",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "meshi_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	RecommendationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "meshi_recommendations_total",
			Help: "Total number of recommendation queries by outcome",
		},
		[]string{"category", "outcome"}, // outcome: ok, empty, error
	)

	RecommendationDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "meshi_recommendation_duration_seconds",
			Help:    "Time spent filtering, scaling and searching per query",
			Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		},
	)

	SubsetSize = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "meshi_filtered_subset_rows",
			Help:    "Catalog rows left after constraint filtering",
			Buckets: prometheus.ExponentialBuckets(1, 4, 10),
		},
	)

	CatalogRows = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "meshi_catalog_rows",
			Help: "Rows in the loaded catalog",
		},
	)
)

// Recorder reports recommendation outcomes to the package metrics.
type Recorder struct{}

// ObserveRecommendation records one finished query.
func (Recorder) ObserveRecommendation(category string, subset, matches int, elapsed time.Duration, err error) {
	if category == "" {
		category = "any"
	}
	outcome := "ok"
	switch {
	case err != nil:
		outcome = "error"
	case matches == 0:
		outcome = "empty"
	}
	RecommendationsTotal.WithLabelValues(category, outcome).Inc()
	if err == nil {
		RecommendationDuration.Observe(elapsed.Seconds())
		SubsetSize.Observe(float64(subset))
	}
}

// RecordHTTPRequest records one served request.
func RecordHTTPRequest(method, path string, status int, elapsed time.Duration) {
	HTTPRequestsTotal.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	HTTPRequestDuration.WithLabelValues(method, path).Observe(elapsed.Seconds())
}
