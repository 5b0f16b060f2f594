package pms

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	upstreamRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_pms_requests_total",
			Help: "Total PMS requests by endpoint and status",
		},
		[]string{"endpoint", "status"},
	)

	upstreamRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "catalog_pms_request_duration_seconds",
			Help:    "PMS request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"endpoint"},
	)

	responseCacheHitsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "catalog_pms_response_cache_hits_total",
			Help: "Total PMS responses served from the transport cache",
		},
	)

	responseCacheMissesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "catalog_pms_response_cache_misses_total",
			Help: "Total PMS requests that missed the transport cache",
		},
	)
)
