package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/ashimkarki/inventory-service/internal/logger"
	"github.com/ashimkarki/inventory-service/internal/sessions"
)

// EmailUpdater defines the interface that the email update service
// must implement.
type EmailUpdater interface {
	UpdateEmail(ctx context.Context, userID int64, email string) error
}

// UpdateEmailRequest represents the JSON body for an email change
// swagger:model UpdateEmailRequest
type UpdateEmailRequest struct {
	// New email address
	// required: true
	// example: john.new@example.com
	Email string `json:"email"`
}

// NewUpdateEmailHandler returns an HTTP handler for changing the
// logged-in user's email address.
// @Summary Update own email
// @Description Replaces the email address of the logged-in user after format and uniqueness checks.
// @Tags profile
// @Accept json
// @Produce json
// @Param updateEmailRequest body handlers.UpdateEmailRequest true "Email change request"
// @Success 200 {object} handlers.MessageResponse "Email updated"
// @Failure 400 {object} handlers.ValidationErrorResponse "Validation messages"
// @Failure 401 {object} handlers.ErrorResponse "Not authenticated"
// @Router /profile/email [put]
func NewUpdateEmailHandler(svc EmailUpdater, sm SessionManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req UpdateEmailRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		ctx := r.Context()
		sess := sessions.FromContext(ctx)
		if err := svc.UpdateEmail(ctx, sess.UserID, req.Email); err != nil {
			writeServiceError(w, err)
			return
		}

		message := "Profile updated successfully!"
		if err := sm.SetFlash(ctx, sess, "success", message); err != nil {
			logger.Log.Errorw("failed to set flash", "err", err)
		}

		writeJSON(w, http.StatusOK, MessageResponse{Message: message})
	}
}
