package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/ashimkarki/inventory-service/internal/logger"
	"github.com/ashimkarki/inventory-service/internal/models"
	"github.com/ashimkarki/inventory-service/internal/services"
	"github.com/ashimkarki/inventory-service/internal/sessions"
	"github.com/ashimkarki/inventory-service/internal/validation"
)

// Loginer defines the interface that the login service must implement.
type Loginer interface {
	Login(ctx context.Context, username, password string) (*models.UserDB, error)
}

// LoginRequest represents the JSON body for user login
// swagger:model LoginRequest
type LoginRequest struct {
	// Username
	// required: true
	// example: john_doe
	Username string `json:"username"`

	// Password
	// required: true
	// example: secret123
	Password string `json:"password"`
}

// LoginResponse represents a successful login response
// swagger:model LoginResponse
type LoginResponse struct {
	// Success message
	// example: Welcome back, john_doe!
	Message string `json:"message"`

	// CSRF token for the authenticated session
	CSRFToken string `json:"csrf_token"`
}

// NewLoginHandler returns an HTTP handler for user login.
// The session id is rotated on success so a pre-authentication id can
// never be replayed.
// @Summary User login
// @Description Authenticate by username and password and establish a server-side session.
// @Tags auth
// @Accept json
// @Produce json
// @Param loginRequest body handlers.LoginRequest true "Login request"
// @Success 200 {object} handlers.LoginResponse "Session established"
// @Failure 400 {object} handlers.ValidationErrorResponse "Missing fields"
// @Failure 401 {object} handlers.ErrorResponse "Invalid username or password"
// @Router /login [post]
func NewLoginHandler(svc Loginer, sm SessionManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req LoginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		ctx := r.Context()
		user, err := svc.Login(ctx, req.Username, req.Password)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrInvalidCredentials):
				writeError(w, http.StatusUnauthorized, "Invalid username or password")
			default:
				if verrs, ok := validation.AsErrors(err); ok {
					writeValidationErrors(w, verrs)
					return
				}
				logger.Log.Errorw("internal server error", "err", err)
				writeError(w, http.StatusInternalServerError, "Internal server error")
			}
			return
		}

		sess := sessions.FromContext(ctx)
		if err := sm.Login(ctx, w, sess, user.UserID, user.Username); err != nil {
			logger.Log.Errorw("failed to rotate session on login", "err", err)
			writeError(w, http.StatusInternalServerError, "Internal server error")
			return
		}

		message := fmt.Sprintf("Welcome back, %s!", user.Username)
		if err := sm.SetFlash(ctx, sess, "success", message); err != nil {
			logger.Log.Errorw("failed to set flash", "err", err)
		}

		token, err := sm.TokenFor(ctx, sess)
		if err != nil {
			logger.Log.Errorw("failed to issue csrf token", "err", err)
			writeError(w, http.StatusInternalServerError, "Internal server error")
			return
		}

		writeJSON(w, http.StatusOK, LoginResponse{
			Message:   message,
			CSRFToken: token,
		})
	}
}
