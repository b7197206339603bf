package handlers

import (
	"net/http"

	"github.com/ashimkarki/inventory-service/internal/logger"
	"github.com/ashimkarki/inventory-service/internal/sessions"
)

// NewLogoutHandler returns an HTTP handler that destroys the current
// session server-side and expires the cookie.
// @Summary Log out
// @Description Destroys the server-side session so the old session id can never be replayed.
// @Tags auth
// @Produce json
// @Success 200 {object} handlers.MessageResponse "Logged out"
// @Router /logout [post]
func NewLogoutHandler(sm SessionManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		sess := sessions.FromContext(ctx)
		if err := sm.Logout(ctx, w, sess); err != nil {
			logger.Log.Errorw("failed to destroy session", "err", err)
			writeError(w, http.StatusInternalServerError, "Internal server error")
			return
		}
		writeJSON(w, http.StatusOK, MessageResponse{Message: "You have been logged out."})
	}
}
