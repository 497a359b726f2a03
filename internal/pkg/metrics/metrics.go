// Package metrics defines and registers all custom Prometheus metrics for
// the ticketing API. It is the single source of truth for metric names,
// labels, and help strings. Metrics register with the default registry at
// init via promauto and are exposed on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "ticketing"

// TicketsCreatedTotal counts tickets successfully opened.
var TicketsCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "tickets_created_total",
		Help:      "Total number of tickets created.",
	},
)

// TicketsProcessedTotal counts tickets transitioned out of pending.
// Label:
//   - status: the terminal status applied ("approved" or "denied")
var TicketsProcessedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "tickets_processed_total",
		Help:      "Total number of tickets processed, labelled by terminal status.",
	},
	[]string{"status"},
)

// TicketConflictsTotal counts update attempts rejected by the claim guard,
// including conditional writes lost to a concurrent claim.
var TicketConflictsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "ticket_conflicts_total",
		Help:      "Total number of ticket updates rejected because the ticket was already processed.",
	},
)

// AuthFailuresTotal counts failed login attempts.
// Label:
//   - reason: "unknown_user" or "bad_password"
var AuthFailuresTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_failures_total",
		Help:      "Total number of failed login attempts, labelled by reason.",
	},
	[]string{"reason"},
)

// LoginThrottledTotal counts logins rejected by the attempt throttle.
var LoginThrottledTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "login_throttled_total",
		Help:      "Total number of logins rejected because the failure throttle was tripped.",
	},
)
