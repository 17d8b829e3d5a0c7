package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// HTTP metrics
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "route"},
	)

	// Listing metrics
	listingsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "listing_operations_total",
			Help: "Total number of listing operations by outcome",
		},
		[]string{"operation", "outcome"},
	)

	storeQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "listing_store_query_duration_seconds",
			Help:    "Duration of store queries issued by listings",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"query"},
	)

	storeQueryFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "listing_store_query_failures_total",
			Help: "Total number of failed store queries",
		},
		[]string{"query"},
	)
)

// RecordHTTPRequest records a served request
func RecordHTTPRequest(method, route string, status int, duration time.Duration) {
	httpRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	httpRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// RecordListing records a finished listing operation
func RecordListing(operation, outcome string) {
	listingsTotal.WithLabelValues(operation, outcome).Inc()
}

// ObserveStoreQuery records a store query and counts it as failed when err != nil
func ObserveStoreQuery(query string, duration time.Duration, err error) {
	storeQueryDuration.WithLabelValues(query).Observe(duration.Seconds())
	if err != nil {
		storeQueryFailures.WithLabelValues(query).Inc()
	}
}

// Handler returns the Prometheus metrics handler
func Handler() http.Handler {
	return promhttp.Handler()
}
