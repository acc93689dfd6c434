package api

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/voyagetravel/voyage-backend/internal/api/respond"
	"github.com/voyagetravel/voyage-backend/internal/otp"
)

// OTPHandler fronts phone verification.
type OTPHandler struct {
	svc *otp.Service
}

func NewOTPHandler(svc *otp.Service) *OTPHandler { return &OTPHandler{svc: svc} }

// Send POST /api/otp/send
func (h *OTPHandler) Send(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Phone string `json:"phone"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.WriteBadRequest(w, "Invalid JSON")
		return
	}
	if strings.TrimSpace(req.Phone) == "" {
		respond.WriteBadRequest(w, "phone is required")
		return
	}

	msg := h.svc.Send(r.Context(), req.Phone)
	respond.WriteJSON(w, http.StatusOK, map[string]interface{}{"message": msg})
}

// Verify POST /api/otp/verify
func (h *OTPHandler) Verify(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Phone string `json:"phone"`
		Code  string `json:"code"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.WriteBadRequest(w, "Invalid JSON")
		return
	}
	if strings.TrimSpace(req.Phone) == "" || strings.TrimSpace(req.Code) == "" {
		respond.WriteBadRequest(w, "phone and code are required")
		return
	}

	ok, msg := h.svc.Verify(req.Phone, req.Code)
	respond.WriteJSON(w, http.StatusOK, map[string]interface{}{"verified": ok, "message": msg})
}
