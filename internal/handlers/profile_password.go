package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/ashimkarki/inventory-service/internal/logger"
	"github.com/ashimkarki/inventory-service/internal/services"
	"github.com/ashimkarki/inventory-service/internal/sessions"
	"github.com/ashimkarki/inventory-service/internal/validation"
)

// PasswordChanger defines the interface that the password change
// service must implement.
type PasswordChanger interface {
	ChangePassword(ctx context.Context, userID int64, current, newPassword, confirm string) error
}

// ChangePasswordRequest represents the JSON body for a password change
// swagger:model ChangePasswordRequest
type ChangePasswordRequest struct {
	// Current password
	// required: true
	CurrentPassword string `json:"current_password"`

	// New password, at least 6 characters
	// required: true
	NewPassword string `json:"new_password"`

	// Confirmation, must equal new_password
	// required: true
	ConfirmPassword string `json:"confirm_password"`
}

// NewChangePasswordHandler returns an HTTP handler for changing the
// logged-in user's password. The current password must verify against
// the stored hash before the new one is accepted.
// @Summary Change own password
// @Description Verifies the current password and replaces the stored bcrypt hash.
// @Tags profile
// @Accept json
// @Produce json
// @Param changePasswordRequest body handlers.ChangePasswordRequest true "Password change request"
// @Success 200 {object} handlers.MessageResponse "Password changed"
// @Failure 400 {object} handlers.ValidationErrorResponse "Validation messages or wrong current password"
// @Failure 401 {object} handlers.ErrorResponse "Not authenticated"
// @Router /profile/password [put]
func NewChangePasswordHandler(svc PasswordChanger, sm SessionManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req ChangePasswordRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		ctx := r.Context()
		sess := sessions.FromContext(ctx)
		err := svc.ChangePassword(ctx, sess.UserID, req.CurrentPassword, req.NewPassword, req.ConfirmPassword)
		if err != nil {
			if errors.Is(err, services.ErrWrongPassword) {
				writeValidationErrors(w, validation.Errors{"Current password is incorrect"})
				return
			}
			writeServiceError(w, err)
			return
		}

		message := "Password changed successfully!"
		if err := sm.SetFlash(ctx, sess, "success", message); err != nil {
			logger.Log.Errorw("failed to set flash", "err", err)
		}

		writeJSON(w, http.StatusOK, MessageResponse{Message: message})
	}
}
