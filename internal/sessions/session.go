package sessions

import (
	"context"
)

// Flash is a one-shot notice carried by a session. It is consumed by
// the first read after it is set.
type Flash struct {
	Kind    string `json:"kind"` // "success" or "error"
	Message string `json:"message"`
}

// Session is the server-side state behind an opaque session id held by
// the client. UserID is zero until login.
type Session struct {
	ID        string `json:"-"`
	UserID    int64  `json:"user_id"`
	Username  string `json:"username"`
	CSRFToken string `json:"csrf_token"`
	Flash     *Flash `json:"flash,omitempty"`
}

// LoggedIn reports whether the session carries an authenticated principal.
func (s *Session) LoggedIn() bool {
	return s != nil && s.UserID != 0
}

// Store persists sessions keyed by their opaque id.
type Store interface {
	// Get returns the session for id, or nil if it does not exist.
	Get(ctx context.Context, id string) (*Session, error)
	// Put creates or overwrites the session under its id.
	Put(ctx context.Context, sess *Session) error
	// Delete removes the session. Deleting an absent id is not an error.
	Delete(ctx context.Context, id string) error
}

type contextKey struct{}

var sessionKey = contextKey{}

// NewContext returns a context carrying sess.
func NewContext(ctx context.Context, sess *Session) context.Context {
	return context.WithValue(ctx, sessionKey, sess)
}

// FromContext returns the session stored in ctx, or nil.
func FromContext(ctx context.Context) *Session {
	sess, _ := ctx.Value(sessionKey).(*Session)
	return sess
}
