package api

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/voyagetravel/voyage-backend/internal/api/respond"
	"github.com/voyagetravel/voyage-backend/internal/feedback"
	"github.com/voyagetravel/voyage-backend/internal/model"
)

// FeedbackHandler is a thin HTTP transport over the feedback service.
type FeedbackHandler struct {
	svc *feedback.Service
}

func NewFeedbackHandler(svc *feedback.Service) *FeedbackHandler { return &FeedbackHandler{svc: svc} }

// Submit POST /api/trips/{tripId}/feedback
func (h *FeedbackHandler) Submit(w http.ResponseWriter, r *http.Request) {
	tripID := mux.Vars(r)["tripId"]
	var req struct {
		UserID         string   `json:"userId"`
		Rating         int      `json:"rating"`
		Experience     string   `json:"experience"`
		WouldRecommend bool     `json:"wouldRecommend"`
		Highlights     []string `json:"highlights"`
		Improvements   []string `json:"improvements"`
		Comment        *string  `json:"comment"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.WriteBadRequest(w, "Invalid JSON")
		return
	}

	fb := &model.Feedback{
		TripID:         tripID,
		UserID:         req.UserID,
		Rating:         req.Rating,
		Experience:     req.Experience,
		WouldRecommend: req.WouldRecommend,
		Highlights:     req.Highlights,
		Improvements:   req.Improvements,
		Comment:        req.Comment,
	}
	out, err := h.svc.Submit(r.Context(), fb)
	if err != nil {
		respond.WriteServiceError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusCreated, out)
}

// GetByTrip GET /api/trips/{tripId}/feedback
func (h *FeedbackHandler) GetByTrip(w http.ResponseWriter, r *http.Request) {
	out, err := h.svc.TripFeedback(r.Context(), mux.Vars(r)["tripId"])
	if err != nil {
		respond.WriteServiceError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, out)
}

// UserHistory GET /api/users/{userId}/feedback
func (h *FeedbackHandler) UserHistory(w http.ResponseWriter, r *http.Request) {
	history, err := h.svc.UserHistory(r.Context(), mux.Vars(r)["userId"])
	if err != nil {
		respond.WriteServiceError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, map[string]interface{}{"feedback": history, "count": len(history)})
}

// Stats GET /api/feedback/stats
func (h *FeedbackHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.svc.Stats(r.Context())
	if err != nil {
		respond.WriteServiceError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, stats)
}
