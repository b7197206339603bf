package handlers

import (
	"context"
	"net/http"

	"github.com/ashimkarki/inventory-service/internal/logger"
)

// AvailabilityChecker defines the interface that the availability
// service must implement.
type AvailabilityChecker interface {
	UsernameAvailable(ctx context.Context, username string) (bool, error)
	EmailAvailable(ctx context.Context, email string) (bool, error)
}

// AvailabilityResponse reports whether an identifier is unclaimed
// swagger:model AvailabilityResponse
type AvailabilityResponse struct {
	// Whether the username or email is free to register
	// example: true
	Available bool `json:"available"`
}

// NewAvailabilityHandler returns an HTTP handler backing the live
// registration check. Exactly one of the username and email query
// parameters is expected.
// @Summary Check username or email availability
// @Description Reports whether the given username or email is unclaimed. Empty usernames and malformed emails count as unavailable.
// @Tags auth
// @Produce json
// @Param username query string false "Username to check"
// @Param email query string false "Email to check"
// @Success 200 {object} handlers.AvailabilityResponse "Availability"
// @Failure 400 {object} handlers.ErrorResponse "Neither parameter given"
// @Router /availability [get]
func NewAvailabilityHandler(svc AvailabilityChecker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		q := r.URL.Query()

		var (
			available bool
			err       error
		)
		switch {
		case q.Has("username"):
			available, err = svc.UsernameAvailable(ctx, q.Get("username"))
		case q.Has("email"):
			available, err = svc.EmailAvailable(ctx, q.Get("email"))
		default:
			writeError(w, http.StatusBadRequest, "username or email parameter is required")
			return
		}
		if err != nil {
			logger.Log.Errorw("failed to check availability", "err", err)
			writeError(w, http.StatusInternalServerError, "Internal server error")
			return
		}

		writeJSON(w, http.StatusOK, AvailabilityResponse{Available: available})
	}
}
