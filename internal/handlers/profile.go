package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/ashimkarki/inventory-service/internal/models"
	"github.com/ashimkarki/inventory-service/internal/services"
	"github.com/ashimkarki/inventory-service/internal/sessions"
)

// ProfileReader defines the interface that the profile service must
// implement.
type ProfileReader interface {
	Profile(ctx context.Context, userID int64) (*models.UserDB, error)
}

// NewProfileHandler returns an HTTP handler for the authenticated
// user's own profile.
// @Summary Get own profile
// @Description Returns the account record of the logged-in user. The password hash is never serialized.
// @Tags profile
// @Produce json
// @Success 200 {object} models.UserDB "Profile"
// @Failure 401 {object} handlers.ErrorResponse "Not authenticated"
// @Failure 404 {object} handlers.ErrorResponse "Account no longer exists"
// @Router /profile [get]
func NewProfileHandler(svc ProfileReader) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		sess := sessions.FromContext(ctx)

		user, err := svc.Profile(ctx, sess.UserID)
		if err != nil {
			if errors.Is(err, services.ErrUserNotFound) {
				writeError(w, http.StatusNotFound, "User not found")
				return
			}
			writeServiceError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, user)
	}
}
