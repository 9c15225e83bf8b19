// Package metrics defines the Prometheus collectors for the service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTPRequests counts handled HTTP requests by method, route and status.
	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bokstat_http_requests_total",
		Help: "Total HTTP requests handled, by method, route and status code.",
	}, []string{"method", "route", "status"})

	// HTTPDuration observes request latency by route.
	HTTPDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "bokstat_http_request_duration_seconds",
		Help:    "HTTP request latency in seconds, by route.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"})

	// StatsCacheHits counts overview cache lookups by result.
	StatsCacheHits = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bokstat_stats_cache_lookups_total",
		Help: "Overview cache lookups, by result (hit or miss).",
	}, []string{"result"})

	// StatsQueries counts statistics computations by operation.
	StatsQueries = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bokstat_stats_queries_total",
		Help: "Statistics computations served, by operation.",
	}, []string{"operation"})
)
