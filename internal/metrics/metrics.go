// Package metrics defines the Prometheus instruments exported by statify.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	CatalogRowsLoaded = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "statify_catalog_rows_loaded_total",
			Help: "Total number of raw catalog rows read from a source",
		},
		[]string{"source"},
	)

	CatalogLoadDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "statify_catalog_load_duration_seconds",
			Help:    "Time spent loading and normalizing the catalog",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"source"},
	)

	CatalogLoadErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "statify_catalog_load_errors_total",
			Help: "Total number of failed catalog loads",
		},
		[]string{"source"},
	)

	Recommendations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "statify_recommendations_total",
			Help: "Total number of recommendation requests by view",
		},
		[]string{"view"}, // "quiz", "playlist"
	)

	RecommendationResults = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "statify_recommendation_results",
			Help:    "Number of songs returned per recommendation request",
			Buckets: []float64{0, 1, 5, 10, 20, 30, 50},
		},
		[]string{"view"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "statify_http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route", "status"},
	)
)

// RecordCatalogLoad records one catalog load attempt.
func RecordCatalogLoad(source string, rows int, duration time.Duration, err error) {
	CatalogLoadDuration.WithLabelValues(source).Observe(duration.Seconds())
	if err != nil {
		CatalogLoadErrors.WithLabelValues(source).Inc()
		return
	}
	CatalogRowsLoaded.WithLabelValues(source).Add(float64(rows))
}

// RecordRecommendation records a served recommendation view.
func RecordRecommendation(view string, results int) {
	Recommendations.WithLabelValues(view).Inc()
	RecommendationResults.WithLabelValues(view).Observe(float64(results))
}

// RecordHTTPRequest records a finished HTTP request.
func RecordHTTPRequest(method, route string, status int, duration time.Duration) {
	HTTPRequestDuration.WithLabelValues(method, route, strconv.Itoa(status)).Observe(duration.Seconds())
}
