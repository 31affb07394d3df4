// Package metrics defines and registers all custom Prometheus metrics for
// the entitlement API. It is the single source of truth for metric names,
// labels, and help strings.
//
// Metrics are registered with the default Prometheus registry at package
// init via promauto; the /metrics route exposes them.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "entitlement"

// ── Auth metrics ──────────────────────────────────────────────────────────────

// AuthAttemptsTotal counts signup and login attempts.
// Labels:
//   - operation: "signup" or "login"
//   - result: "ok", "rejected" (bad credentials / duplicate email) or "error"
var AuthAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_attempts_total",
		Help:      "Total number of signup and login attempts, by operation and result.",
	},
	[]string{"operation", "result"},
)

// ── License metrics ───────────────────────────────────────────────────────────

// LicensesIssuedTotal counts licenses created.
// Label:
//   - source: "admin" (grant endpoint) or "webhook" (payment processor)
var LicensesIssuedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "licenses_issued_total",
		Help:      "Total number of licenses issued, by source.",
	},
	[]string{"source"},
)

// LicenseVerificationsTotal counts verification outcomes.
// Label:
//   - result: "valid", "expired", "license_bound_to_different_email" or "not_found"
var LicenseVerificationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "license_verifications_total",
		Help:      "Total number of license verification requests, by outcome.",
	},
	[]string{"result"},
)

// WebhookEventsTotal counts payment webhook deliveries.
// Label:
//   - result: "accepted" or "invalid_signature"
var WebhookEventsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "webhook_events_total",
		Help:      "Total number of payment webhook deliveries, by result.",
	},
	[]string{"result"},
)

// ── Quota metrics ─────────────────────────────────────────────────────────────

// QuotaDecisionsTotal counts quota check-and-increment decisions.
// Labels:
//   - tool: the metered tool name (e.g. "image", "pdfMerge")
//   - result: "allowed" or "rejected"
var QuotaDecisionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "quota_decisions_total",
		Help:      "Total number of daily quota decisions, by tool and result.",
	},
	[]string{"tool", "result"},
)
