// Package metrics defines the Prometheus instruments for the trip service.
// All metrics are registered on the default registry and exposed via
// promhttp on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// TurnsTotal counts orchestrated turns by terminal status.
	TurnsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "voyage_turns_total",
		Help: "Total conversation turns handled, labeled by status.",
	}, []string{"status"})

	// TurnSeconds tracks end-to-end turn latency.
	TurnSeconds = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "voyage_turn_seconds",
		Help:    "Latency of handling one conversation turn.",
		Buckets: prometheus.DefBuckets,
	})

	// ResearchCacheLookups counts research cache reads by result.
	ResearchCacheLookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "voyage_research_cache_lookups_total",
		Help: "Research cache lookups, labeled hit or miss.",
	}, []string{"result"})

	// EstimateSourceTotal counts which rung of the cost parser chain won.
	EstimateSourceTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "voyage_cost_estimate_source_total",
		Help: "Cost estimates produced, labeled by source (extracted, parsed, default).",
	}, []string{"source"})

	// TransportEstimateTotal counts transport estimates by provider rung.
	TransportEstimateTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "voyage_transport_estimate_total",
		Help: "Transport cost estimates, labeled by source (primary, category, none).",
	}, []string{"source"})

	// CollaboratorFailures counts failed calls to external collaborators.
	CollaboratorFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "voyage_collaborator_failures_total",
		Help: "Failed collaborator calls, labeled by collaborator name.",
	}, []string{"collaborator"})

	// OTPSendsTotal counts OTP issuance attempts by outcome.
	OTPSendsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "voyage_otp_sends_total",
		Help: "OTP send attempts, labeled by outcome.",
	}, []string{"outcome"})

	// OTPVerifiesTotal counts OTP verification attempts by outcome.
	OTPVerifiesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "voyage_otp_verifies_total",
		Help: "OTP verification attempts, labeled by outcome.",
	}, []string{"outcome"})

	// NotificationsTotal counts notification deliveries by channel and outcome.
	NotificationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "voyage_notifications_total",
		Help: "Notification deliveries, labeled by channel and outcome.",
	}, []string{"channel", "outcome"})
)
