// Package metrics exposes Prometheus instrumentation for the service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// SearchesTotal counts dialogue searches by outcome (success, empty, failure).
	SearchesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vasanam_searches_total",
			Help: "Total number of dialogue searches",
		},
		[]string{"outcome"},
	)

	// AdmissionDecisionsTotal counts admission controller decisions by
	// call site (api, page) and decision (allowed, denied).
	AdmissionDecisionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vasanam_admission_decisions_total",
			Help: "Total number of rate-limit admission decisions",
		},
		[]string{"site", "decision"},
	)

	// ResolutionsTotal counts slug resolutions by outcome
	// (exact, fuzzy, not_found, failure).
	ResolutionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vasanam_resolutions_total",
			Help: "Total number of movie slug resolutions",
		},
		[]string{"outcome"},
	)

	// HTTPRequestsTotal counts HTTP requests by method, path, and status.
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vasanam_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	// HTTPRequestDuration observes request latency by method and path.
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "vasanam_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)
)

// ObserveAdmission records one admission decision for a call site.
// Shaped to plug into the rate limiter's observer hook.
func ObserveAdmission(site string, allowed bool) {
	decision := "allowed"
	if !allowed {
		decision = "denied"
	}
	AdmissionDecisionsTotal.WithLabelValues(site, decision).Inc()
}
