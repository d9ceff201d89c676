// Package metrics defines the custom Prometheus metrics of the hospital
// portal gateway. Metric names, labels and help strings live here only.
//
// Every collector is registered with the default registry through promauto,
// so importing the package is enough.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "portal"

// ── Security metrics ──────────────────────────────────────────────────────────

// SecurityViolationsTotal counts inputs rejected by the injection detectors.
// Label:
//   - family: "sql", "xss", "command" or "path_traversal"
var SecurityViolationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "security_violations_total",
		Help:      "Total number of inputs flagged by an injection pattern family.",
	},
	[]string{"family"},
)

// RateLimitedTotal counts requests refused by a rate limiter.
// Label:
//   - scope: the limiter key prefix (e.g. "login", "api")
var RateLimitedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "rate_limited_total",
		Help:      "Total number of requests refused by a sliding-window rate limiter.",
	},
	[]string{"scope"},
)

// AuditQueueDepth tracks pending security events per dispatcher worker.
// Label:
//   - worker_id: numeric worker index
var AuditQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "audit_queue_depth",
		Help:      "Current number of security events pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)

// AuditErrorsTotal counts security events that could not be persisted.
var AuditErrorsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "audit_errors_total",
		Help:      "Total number of security events dropped or failed to persist.",
	},
)

// ── Backend metrics ───────────────────────────────────────────────────────────

// BackendRequestsTotal counts calls to the hospital backend.
// Labels:
//   - method: HTTP method
//   - status: response status code, or "error" when no response arrived
var BackendRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "backend_requests_total",
		Help:      "Total number of hospital backend calls, by method and status.",
	},
	[]string{"method", "status"},
)

// BackendRequestDuration measures backend round trips that produced a response.
var BackendRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "backend_request_duration_seconds",
		Help:      "Duration of hospital backend calls.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"method"},
)

// ── Session metrics ───────────────────────────────────────────────────────────

// SessionsStartedTotal counts successful logins, by normalized role.
var SessionsStartedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sessions_started_total",
		Help:      "Total number of sessions begun, by role.",
	},
	[]string{"role"},
)

// SessionsEndedTotal counts session teardowns.
// Label:
//   - reason: "logout" or "auth_rejected"
var SessionsEndedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sessions_ended_total",
		Help:      "Total number of sessions ended, by reason.",
	},
	[]string{"reason"},
)
