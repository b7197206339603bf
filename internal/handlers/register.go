package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/ashimkarki/inventory-service/internal/logger"
	"github.com/ashimkarki/inventory-service/internal/sessions"
	"github.com/ashimkarki/inventory-service/internal/validation"
)

// Registerer defines the interface that the service must implement.
type Registerer interface {
	Register(ctx context.Context, in validation.RegistrationInput) (int64, error)
}

// RegisterRequest represents the JSON body for user registration
// swagger:model RegisterRequest
type RegisterRequest struct {
	// Username
	// required: true
	// example: john_doe
	Username string `json:"username"`

	// Email
	// required: true
	// example: john@example.com
	Email string `json:"email"`

	// Password
	// required: true
	// example: secret123
	Password string `json:"password"`

	// Password confirmation, must equal password
	// required: true
	// example: secret123
	ConfirmPassword string `json:"confirm_password"`
}

// RegisterResponse represents a successful registration response
// swagger:model RegisterResponse
type RegisterResponse struct {
	// Success message
	// example: Registration successful! Welcome, john_doe!
	Message string `json:"message"`

	// CSRF token for the freshly authenticated session
	CSRFToken string `json:"csrf_token"`
}

// NewRegisterHandler returns an HTTP handler for user registration.
// Successful registration logs the new user in, rotating the session id.
// @Summary Register a new user
// @Description Creates a new user account with a unique username and email, stores only a bcrypt hash of the password, and starts an authenticated session.
// @Tags auth
// @Accept json
// @Produce json
// @Param registerRequest body handlers.RegisterRequest true "User registration request"
// @Success 201 {object} handlers.RegisterResponse "User registered and logged in"
// @Failure 400 {object} handlers.ValidationErrorResponse "Validation messages"
// @Router /register [post]
func NewRegisterHandler(svc Registerer, sm SessionManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req RegisterRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		ctx := r.Context()
		userID, err := svc.Register(ctx, validation.RegistrationInput{
			Username:        req.Username,
			Email:           req.Email,
			Password:        req.Password,
			ConfirmPassword: req.ConfirmPassword,
		})
		if err != nil {
			writeServiceError(w, err)
			return
		}

		sess := sessions.FromContext(ctx)
		if err := sm.Login(ctx, w, sess, userID, req.Username); err != nil {
			logger.Log.Errorw("failed to start session after registration", "err", err)
			writeError(w, http.StatusInternalServerError, "Internal server error")
			return
		}

		message := fmt.Sprintf("Registration successful! Welcome, %s!", req.Username)
		if err := sm.SetFlash(ctx, sess, "success", message); err != nil {
			logger.Log.Errorw("failed to set flash", "err", err)
		}

		token, err := sm.TokenFor(ctx, sess)
		if err != nil {
			logger.Log.Errorw("failed to issue csrf token", "err", err)
			writeError(w, http.StatusInternalServerError, "Internal server error")
			return
		}

		writeJSON(w, http.StatusCreated, RegisterResponse{
			Message:   message,
			CSRFToken: token,
		})
	}
}
