// Package metrics defines and registers the custom Prometheus metrics of the
// car-wash portal. It is the single source of truth for metric names, labels
// and help strings.
//
// All metrics are registered with the default registry through promauto, so
// they appear on /metrics next to the HTTP metrics from echoprometheus.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "carwash"

// ── Gateway metrics ───────────────────────────────────────────────────────────

// GatewayRequestsTotal counts calls to the booking API.
// Labels:
//   - operation: gateway operation (e.g. "create_appointment")
//   - outcome: "ok", "validation", "auth_required", "request_failed" or "network"
var GatewayRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "gateway_requests_total",
		Help:      "Total number of booking API calls, by operation and outcome.",
	},
	[]string{"operation", "outcome"},
)

// GatewayRequestDuration measures booking API round trips.
var GatewayRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "gateway_request_duration_seconds",
		Help:      "Duration of booking API calls.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"operation"},
)

// GatewayBreakerState is 0 when closed, 1 when half-open and 2 when open.
var GatewayBreakerState = promauto.NewGauge(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "gateway_breaker_state",
		Help:      "Circuit breaker state of the booking API client (0 closed, 1 half-open, 2 open).",
	},
)

// ── Booking metrics ───────────────────────────────────────────────────────────

// BookingAttemptsTotal counts submissions of the booking flow.
// Label:
//   - outcome: "confirmed", "rejected" or "failed"
var BookingAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "booking_attempts_total",
		Help:      "Total number of booking submissions, by outcome.",
	},
	[]string{"outcome"},
)

// AuditQueueDepth tracks attempts waiting in each audit worker channel.
var AuditQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "audit_queue_depth",
		Help:      "Current number of booking attempts pending in each audit worker channel.",
	},
	[]string{"worker_id"},
)

// AuditWriteErrorsTotal counts attempts that could not be persisted or were dropped.
// Label:
//   - reason: "insert_failed" or "queue_full"
var AuditWriteErrorsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "audit_write_errors_total",
		Help:      "Total number of booking attempts that were not recorded.",
	},
	[]string{"reason"},
)

// ── Session metrics ───────────────────────────────────────────────────────────

// LoginsTotal counts login attempts.
// Label:
//   - result: "success" or "failure"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)
