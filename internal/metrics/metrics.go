// Package metrics exposes Prometheus counters for authentication activity.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	gateDecisionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "jobconnect_gate_decisions_total",
			Help: "Page gate decisions by outcome and reason",
		},
		[]string{"outcome", "reason"},
	)

	authEventsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "jobconnect_auth_events_total",
			Help: "Authentication events by type",
		},
		[]string{"event"},
	)

	adminActionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "jobconnect_admin_actions_total",
			Help: "Admin moderation actions by type",
		},
		[]string{"action"},
	)
)

// Auth event names.
const (
	EventRegister     = "register"
	EventLogin        = "login"
	EventLoginFailed  = "login_failed"
	EventLoginBlocked = "login_blocked"
	EventLogout       = "logout"
	EventRefresh      = "refresh"
	EventRateLimited  = "rate_limited"
)

// Admin action names.
const (
	ActionApprove = "approve"
	ActionBlock   = "block"
	ActionUnblock = "unblock"
)

// RecordGateDecision counts one gate decision.
func RecordGateDecision(outcome, reason string) {
	gateDecisionsTotal.WithLabelValues(outcome, reason).Inc()
}

// RecordAuthEvent counts one authentication event.
func RecordAuthEvent(event string) {
	authEventsTotal.WithLabelValues(event).Inc()
}

// RecordAdminAction counts one moderation action.
func RecordAdminAction(action string) {
	adminActionsTotal.WithLabelValues(action).Inc()
}

// Handler serves the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
