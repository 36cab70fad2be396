package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Proxy metrics, registered with the default registry.
var (
	// RequestsTotal counts inbound requests by route and status code.
	RequestsTotal *prometheus.CounterVec

	// UpstreamAttemptsTotal counts outbound attempts by operation, target kind and outcome.
	UpstreamAttemptsTotal *prometheus.CounterVec

	// UpstreamLatency observes outbound call duration.
	UpstreamLatency *prometheus.HistogramVec

	// SearchExhaustedTotal counts searches where every upstream failed.
	SearchExhaustedTotal prometheus.Counter
)

func init() {
	RequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "searxng_proxy",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total inbound HTTP requests",
		},
		[]string{"route", "status"},
	)

	UpstreamAttemptsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "searxng_proxy",
			Subsystem: "upstream",
			Name:      "attempts_total",
			Help:      "Outbound calls to upstream SearXNG instances",
		},
		[]string{"operation", "target", "outcome"},
	)

	UpstreamLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "searxng_proxy",
			Subsystem: "upstream",
			Name:      "latency_seconds",
			Help:      "Upstream response time in seconds",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10},
		},
		[]string{"operation", "target"},
	)

	SearchExhaustedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "searxng_proxy",
			Subsystem: "search",
			Name:      "exhausted_total",
			Help:      "Searches where the primary and every fallback failed",
		},
	)

	prometheus.MustRegister(RequestsTotal)
	prometheus.MustRegister(UpstreamAttemptsTotal)
	prometheus.MustRegister(UpstreamLatency)
	prometheus.MustRegister(SearchExhaustedTotal)
}

// RecordRequest records an inbound request.
func RecordRequest(route, status string) {
	if route == "" {
		route = "unmatched"
	}
	RequestsTotal.WithLabelValues(route, status).Inc()
}

// RecordUpstreamAttempt records one outbound call. target is "primary" or "fallback".
func RecordUpstreamAttempt(operation, target string, ok bool, durationSec float64) {
	outcome := "success"
	if !ok {
		outcome = "failure"
	}
	UpstreamAttemptsTotal.WithLabelValues(operation, target, outcome).Inc()
	UpstreamLatency.WithLabelValues(operation, target).Observe(durationSec)
}

// RecordSearchExhausted records a search that ran out of upstreams.
func RecordSearchExhausted() {
	SearchExhaustedTotal.Inc()
}
