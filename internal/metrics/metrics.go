// Package metrics defines the Prometheus instruments shared by godshot
// components. Instruments register on the default registry via promauto;
// the HTTP server exposes them on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// NamingRequests counts name-generation attempts by entity kind and
	// final outcome (ok, fallback, emergency).
	NamingRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "godshot_naming_requests_total",
			Help: "Total name generation attempts",
		},
		[]string{"kind", "outcome"},
	)

	// NamingDuration tracks end-to-end generation latency per entity kind.
	NamingDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "godshot_naming_duration_seconds",
			Help:    "Duration of name generation in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"kind"},
	)

	// NamingFallbacks counts per-field fallback substitutions.
	NamingFallbacks = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "godshot_naming_fallbacks_total",
			Help: "Total per-field fallback substitutions during naming",
		},
		[]string{"field"},
	)

	// NamingPending gauges the current size of the request-coalescing map.
	NamingPending = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "godshot_naming_pending_requests",
			Help: "In-flight coalesced naming computations",
		},
	)

	// NamingCacheHits and NamingCacheMisses track the three naming caches
	// (barista, bean, bag).
	NamingCacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "godshot_naming_cache_hits_total",
			Help: "Naming cache hits",
		},
		[]string{"cache"},
	)

	NamingCacheMisses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "godshot_naming_cache_misses_total",
			Help: "Naming cache misses",
		},
		[]string{"cache"},
	)

	// HTTPRequestDuration tracks REST endpoint latency.
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "godshot_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route", "status"},
	)

	// DBQueryErrors counts failed named-query executions.
	DBQueryErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "godshot_db_query_errors_total",
			Help: "Total named query failures",
		},
		[]string{"query"},
	)
)
