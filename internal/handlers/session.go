package handlers

import (
	"context"
	"net/http"

	"github.com/ashimkarki/inventory-service/internal/sessions"
)

// SessionManager is the slice of the session lifecycle the handlers
// drive: identity rotation on login, destruction on logout, one-shot
// flash notices and the per-session CSRF token.
type SessionManager interface {
	Login(ctx context.Context, w http.ResponseWriter, sess *sessions.Session, userID int64, username string) error
	Logout(ctx context.Context, w http.ResponseWriter, sess *sessions.Session) error
	SetFlash(ctx context.Context, sess *sessions.Session, kind, message string) error
	TakeFlash(ctx context.Context, sess *sessions.Session) (*sessions.Flash, error)
	TokenFor(ctx context.Context, sess *sessions.Session) (string, error)
}
