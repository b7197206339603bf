package handlers

import (
	"net/http"

	"github.com/ashimkarki/inventory-service/internal/logger"
	"github.com/ashimkarki/inventory-service/internal/sessions"
)

// FlashResponse is a consumed one-shot notice
// swagger:model FlashResponse
type FlashResponse struct {
	// Notice kind, "success" or "error"
	// example: success
	Kind string `json:"kind"`

	// Notice text
	// example: Product added successfully!
	Message string `json:"message"`
}

// NewFlashHandler returns an HTTP handler that consumes the session's
// pending flash notice. The notice is gone after the first read; a
// second call returns 204.
// @Summary Consume flash notice
// @Description Returns and clears the session's one-shot notice set by the last mutating action.
// @Tags auth
// @Produce json
// @Success 200 {object} handlers.FlashResponse "Pending notice"
// @Success 204 "No pending notice"
// @Router /flash [get]
func NewFlashHandler(sm SessionManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		sess := sessions.FromContext(ctx)
		flash, err := sm.TakeFlash(ctx, sess)
		if err != nil {
			logger.Log.Errorw("failed to take flash", "err", err)
			writeError(w, http.StatusInternalServerError, "Internal server error")
			return
		}
		if flash == nil {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		writeJSON(w, http.StatusOK, FlashResponse{Kind: flash.Kind, Message: flash.Message})
	}
}
