// Package metrics provides Prometheus metrics for blogfront.
package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// APIRequestsTotal counts calls to the content API.
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "blogfront",
			Name:      "api_requests_total",
			Help:      "Total number of content API requests",
		},
		[]string{"op", "status"},
	)

	// APIRequestDuration measures content API latency.
	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "blogfront",
			Name:      "api_request_duration_seconds",
			Help:      "Duration of content API requests in seconds",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"op"},
	)

	// CacheLookupsTotal counts response cache hits and misses.
	CacheLookupsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "blogfront",
			Name:      "cache_lookups_total",
			Help:      "Total number of response cache lookups",
		},
		[]string{"result"},
	)

	// StaleResultsTotal counts fetch results discarded because a newer
	// query was dispatched.
	StaleResultsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "blogfront",
			Name:      "stale_results_total",
			Help:      "Total number of fetch results discarded as stale",
		},
	)

	// PageRendersTotal counts rendered pages by route and outcome.
	PageRendersTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "blogfront",
			Name:      "page_renders_total",
			Help:      "Total number of rendered pages",
		},
		[]string{"route", "outcome"},
	)
)

// RecordAPIRequest records one content API call. status is the HTTP status,
// or 0 for transport failures.
func RecordAPIRequest(op string, status int, seconds float64) {
	label := "error"
	if status > 0 {
		label = strconv.Itoa(status)
	}
	APIRequestsTotal.WithLabelValues(op, label).Inc()
	APIRequestDuration.WithLabelValues(op).Observe(seconds)
}

// RecordCacheLookup records a cache hit or miss.
func RecordCacheLookup(hit bool) {
	if hit {
		CacheLookupsTotal.WithLabelValues("hit").Inc()
		return
	}
	CacheLookupsTotal.WithLabelValues("miss").Inc()
}

// RecordStale records a discarded fetch result.
func RecordStale() {
	StaleResultsTotal.Inc()
}

// RecordRender records a rendered page.
func RecordRender(route, outcome string) {
	PageRendersTotal.WithLabelValues(route, outcome).Inc()
}
