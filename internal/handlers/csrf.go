package handlers

import (
	"net/http"

	"github.com/ashimkarki/inventory-service/internal/logger"
	"github.com/ashimkarki/inventory-service/internal/sessions"
)

// CSRFTokenResponse carries the per-session CSRF token
// swagger:model CSRFTokenResponse
type CSRFTokenResponse struct {
	// Token to send back in the X-CSRF-Token header on mutating requests
	CSRFToken string `json:"csrf_token"`
}

// NewCSRFTokenHandler returns an HTTP handler that hands out the
// session's CSRF token, minting one if the session has none yet.
// Repeated calls return the same token for the same session.
// @Summary Get CSRF token
// @Description Returns the CSRF token bound to the current session.
// @Tags auth
// @Produce json
// @Success 200 {object} handlers.CSRFTokenResponse "Token"
// @Router /csrf [get]
func NewCSRFTokenHandler(sm SessionManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		sess := sessions.FromContext(ctx)
		token, err := sm.TokenFor(ctx, sess)
		if err != nil {
			logger.Log.Errorw("failed to issue csrf token", "err", err)
			writeError(w, http.StatusInternalServerError, "Internal server error")
			return
		}
		writeJSON(w, http.StatusOK, CSRFTokenResponse{CSRFToken: token})
	}
}
