// Package metrics provides Prometheus metrics for the OMIM/MedGen API:
// HTTP request counters, latency histograms, in-flight gauge, rate limiter
// bucket gauge and disease database gauges updated on every rebuild.
package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	HTTPRequestTotals = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_request_total",
			Help: "Total HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
		},
		[]string{"method", "path"},
	)

	HTTPRequestInFlight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_request_in_flight",
			Help: "Current in-flight requests",
		},
	)

	RateLimiterBucketsTotal = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "rate_limiter_buckets_total",
			Help: "Total number of rate limiter buckets (IPs seen recently)",
		},
	)

	DiseaseEntriesTotal = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "disease_entries_total",
			Help: "Disease entries in the current database build",
		},
	)

	DatabaseBuildDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "database_build_duration_seconds",
			Help:    "Time spent rebuilding the disease database",
			Buckets: []float64{.1, .5, 1, 5, 15, 30, 60, 120, 300},
		},
	)
)

func init() {
	prometheus.MustRegister(HTTPRequestTotals)
	prometheus.MustRegister(HTTPRequestDuration)
	prometheus.MustRegister(HTTPRequestInFlight)
	prometheus.MustRegister(RateLimiterBucketsTotal)
	prometheus.MustRegister(DiseaseEntriesTotal)
	prometheus.MustRegister(DatabaseBuildDuration)
}
