package api

import (
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/voyagetravel/voyage-backend/internal/api/recovery"
	"github.com/voyagetravel/voyage-backend/internal/events"
	"github.com/voyagetravel/voyage-backend/internal/feedback"
	"github.com/voyagetravel/voyage-backend/internal/otp"
	"github.com/voyagetravel/voyage-backend/internal/store"
)

// Deps carries the wired services the router exposes over HTTP.
type Deps struct {
	Turner   Turner
	Store    store.Store
	OTP      *otp.Service
	Feedback *feedback.Service
	Bus      *events.Bus
	Logger   zerolog.Logger
}

// NewRouter wires all API routes to handlers.
func NewRouter(deps Deps) *mux.Router {
	root := mux.NewRouter()
	root.Use(recovery.Middleware)

	// Conversation turns
	turn := NewTurnHandler(deps.Turner, deps.Store, deps.Logger)
	root.HandleFunc("/api/sessions/{sessionId}/turns", turn.HandleTurn).Methods("POST")
	root.HandleFunc("/api/sessions/{sessionId}", turn.GetSession).Methods("GET")
	root.HandleFunc("/api/sessions/{sessionId}", turn.DeleteSession).Methods("DELETE")

	// OTP verification
	otpHandler := NewOTPHandler(deps.OTP)
	root.HandleFunc("/api/otp/send", otpHandler.Send).Methods("POST")
	root.HandleFunc("/api/otp/verify", otpHandler.Verify).Methods("POST")

	// Trip feedback
	fb := NewFeedbackHandler(deps.Feedback)
	root.HandleFunc("/api/trips/{tripId}/feedback", fb.Submit).Methods("POST")
	root.HandleFunc("/api/trips/{tripId}/feedback", fb.GetByTrip).Methods("GET")
	root.HandleFunc("/api/users/{userId}/feedback", fb.UserHistory).Methods("GET")
	root.HandleFunc("/api/feedback/stats", fb.Stats).Methods("GET")

	// Security alerts
	alert := NewAlertHandler(deps.Bus, deps.Logger)
	root.HandleFunc("/api/alerts/security", alert.Raise).Methods("POST")

	// Health
	healthHandler := NewHealthHandler()
	root.HandleFunc("/api/health", healthHandler.CheckHealth).Methods("GET")

	// Metrics
	root.Handle("/metrics", promhttp.Handler()).Methods("GET")

	return root
}
