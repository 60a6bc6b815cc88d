package handler

import (
	"errors"
	"net/http"

	guestsdomain "invite-app-go/internal/domain/guests"
	"invite-app-go/internal/metrics"
)

type accessCodeRequest struct {
	Code string `json:"code"`
}

type guestResponse struct {
	Code   string `json:"code"`
	Family string `json:"family"`
	Guests int    `json:"guests"`
}

type adminCheckResponse struct {
	Valid bool `json:"valid"`
}

// CheckGuestCode resolves a guest code. A miss is an ordinary answer, so it
// is logged at debug and never counted against the caller.
func (h *Handlers) CheckGuestCode(w http.ResponseWriter, r *http.Request) {
	var req accessCodeRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}

	guest, err := h.Directory.ResolveGuestCode(req.Code)
	if errors.Is(err, guestsdomain.ErrGuestCodeNotFound) {
		h.log.Debug("access.guest: code not found")
		h.metrics.CodeCheck(metrics.CodeKindGuest, metrics.OutcomeRejected)
		writeError(w, http.StatusNotFound, "guest_code_not_found", "guest code not found")
		return
	}

	h.metrics.CodeCheck(metrics.CodeKindGuest, metrics.OutcomeAccepted)
	h.log.Debug("access.guest: code resolved", "code", guest.Code, "family", guest.FamilyName)
	writeJSON(w, http.StatusOK, guestResponse{
		Code:   guest.Code,
		Family: guest.FamilyName,
		Guests: guest.PartySize,
	})
}

// CheckAdminCode compares the submitted code verbatim with the admin secret.
func (h *Handlers) CheckAdminCode(w http.ResponseWriter, r *http.Request) {
	var req accessCodeRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}

	valid := h.Directory.VerifyAdminCode(req.Code)
	outcome := metrics.OutcomeRejected
	if valid {
		outcome = metrics.OutcomeAccepted
	}
	h.metrics.CodeCheck(metrics.CodeKindAdmin, outcome)

	writeJSON(w, http.StatusOK, adminCheckResponse{Valid: valid})
}
