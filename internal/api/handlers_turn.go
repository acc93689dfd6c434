package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"github.com/voyagetravel/voyage-backend/internal/api/respond"
	"github.com/voyagetravel/voyage-backend/internal/model"
	"github.com/voyagetravel/voyage-backend/internal/store"
)

// Turner runs one conversational turn against prior slot state.
type Turner interface {
	HandleTurn(ctx context.Context, sessionID, utterance string, prior model.TripSlots) model.TurnResult
}

// TurnHandler is the HTTP transport around the turn pipeline. It owns the
// load-run-persist cycle; the turn pipeline itself never touches the store.
type TurnHandler struct {
	turner Turner
	store  store.Store
	log    zerolog.Logger
}

func NewTurnHandler(turner Turner, st store.Store, log zerolog.Logger) *TurnHandler {
	return &TurnHandler{turner: turner, store: st, log: log}
}

// HandleTurn POST /api/sessions/{sessionId}/turns
func (h *TurnHandler) HandleTurn(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["sessionId"]
	var req struct {
		UserID    string `json:"userId"`
		Utterance string `json:"utterance"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.WriteBadRequest(w, "Invalid JSON")
		return
	}
	if strings.TrimSpace(req.Utterance) == "" {
		respond.WriteBadRequest(w, "utterance is required")
		return
	}

	prior := model.TripSlots{}
	userID := req.UserID
	sess, err := h.store.Sessions().Get(r.Context(), sessionID)
	switch {
	case err == nil:
		prior = sess.Slots
		if userID == "" {
			userID = sess.UserID
		}
	case errors.Is(err, model.ErrNotFound):
		// first turn of a new session
	default:
		respond.WriteInternalError(w, err.Error())
		return
	}

	result := h.turner.HandleTurn(r.Context(), sessionID, req.Utterance, prior)

	if _, err := h.store.Sessions().Put(r.Context(), &model.Session{
		SessionID: sessionID,
		UserID:    userID,
		Slots:     result.Slots,
	}); err != nil {
		h.log.Error().Err(err).Str("session_id", sessionID).Msg("failed to persist session slots")
		respond.WriteInternalError(w, err.Error())
		return
	}

	respond.WriteJSON(w, http.StatusOK, result)
}

// GetSession GET /api/sessions/{sessionId}
func (h *TurnHandler) GetSession(w http.ResponseWriter, r *http.Request) {
	sess, err := h.store.Sessions().Get(r.Context(), mux.Vars(r)["sessionId"])
	if err != nil {
		respond.WriteServiceError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, sess)
}

// DeleteSession DELETE /api/sessions/{sessionId}
func (h *TurnHandler) DeleteSession(w http.ResponseWriter, r *http.Request) {
	if err := h.store.Sessions().Delete(r.Context(), mux.Vars(r)["sessionId"]); err != nil {
		respond.WriteServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
