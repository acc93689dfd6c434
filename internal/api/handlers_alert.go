package api

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/voyagetravel/voyage-backend/internal/api/respond"
	"github.com/voyagetravel/voyage-backend/internal/events"
	"github.com/voyagetravel/voyage-backend/internal/model"
)

// AlertHandler accepts security alerts and queues them for delivery.
type AlertHandler struct {
	bus *events.Bus
	log zerolog.Logger
}

func NewAlertHandler(bus *events.Bus, logger zerolog.Logger) *AlertHandler {
	return &AlertHandler{bus: bus, log: logger.With().Str("component", "alert_handler").Logger()}
}

// Raise POST /api/alerts/security
func (h *AlertHandler) Raise(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Alert model.SecurityAlert `json:"alert"`
		User  model.UserProfile   `json:"user"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.WriteBadRequest(w, "Invalid JSON")
		return
	}
	if req.Alert.Title == "" || req.Alert.Message == "" {
		respond.WriteBadRequest(w, "alert title and message are required")
		return
	}
	if req.User.UserID == "" {
		respond.WriteBadRequest(w, "user userId is required")
		return
	}

	ok := h.bus.Publish(events.Event{
		Kind:    events.EventSecurityAlertRaised,
		UserID:  req.User.UserID,
		Alert:   &req.Alert,
		Profile: &req.User,
	})
	if !ok {
		h.log.Warn().Str("user_id", req.User.UserID).Msg("alert queue is full, rejecting alert")
		respond.WriteError(w, http.StatusServiceUnavailable, "alert queue is full")
		return
	}
	respond.WriteJSON(w, http.StatusAccepted, map[string]interface{}{"queued": true})
}
