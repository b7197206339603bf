package sessions

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"net/http"
)

// CookieName is the name of the session cookie.
const CookieName = "session_id"

const (
	sessionIDBytes = 16
	csrfTokenBytes = 32
)

// Manager binds a Store to the session lifecycle: cookie handling,
// identity rotation on login, destruction on logout, one-shot flash
// messages and the per-session CSRF token.
type Manager struct {
	store  Store
	secure bool
}

// NewManager returns a Manager over store. secure marks the session
// cookie Secure, for deployments behind TLS.
func NewManager(store Store, secure bool) *Manager {
	return &Manager{store: store, secure: secure}
}

// Load returns the session referenced by the request cookie, creating
// and persisting a fresh anonymous session (and setting the cookie)
// when there is none.
func (m *Manager) Load(w http.ResponseWriter, r *http.Request) (*Session, error) {
	if c, err := r.Cookie(CookieName); err == nil && c.Value != "" {
		sess, err := m.store.Get(r.Context(), c.Value)
		if err != nil {
			return nil, err
		}
		if sess != nil {
			return sess, nil
		}
	}

	id, err := randomHex(sessionIDBytes)
	if err != nil {
		return nil, err
	}
	sess := &Session{ID: id}
	if err := m.store.Put(r.Context(), sess); err != nil {
		return nil, err
	}
	m.setCookie(w, id)
	return sess, nil
}

// Login sets the authenticated identity on the session and rotates its
// id, invalidating any pre-authentication id. Session fixation defense.
func (m *Manager) Login(ctx context.Context, w http.ResponseWriter, sess *Session, userID int64, username string) error {
	oldID := sess.ID

	newID, err := randomHex(sessionIDBytes)
	if err != nil {
		return err
	}

	sess.ID = newID
	sess.UserID = userID
	sess.Username = username

	if err := m.store.Put(ctx, sess); err != nil {
		return err
	}
	if oldID != "" {
		if err := m.store.Delete(ctx, oldID); err != nil {
			return err
		}
	}
	m.setCookie(w, newID)
	return nil
}

// Logout destroys the session and expires the cookie.
func (m *Manager) Logout(ctx context.Context, w http.ResponseWriter, sess *Session) error {
	if err := m.store.Delete(ctx, sess.ID); err != nil {
		return err
	}
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// SetFlash stores a one-shot notice on the session.
func (m *Manager) SetFlash(ctx context.Context, sess *Session, kind, message string) error {
	sess.Flash = &Flash{Kind: kind, Message: message}
	return m.store.Put(ctx, sess)
}

// TakeFlash returns the pending flash and clears it; the next call
// returns nil unless a new flash was set in between.
func (m *Manager) TakeFlash(ctx context.Context, sess *Session) (*Flash, error) {
	flash := sess.Flash
	if flash == nil {
		return nil, nil
	}
	sess.Flash = nil
	if err := m.store.Put(ctx, sess); err != nil {
		return nil, err
	}
	return flash, nil
}

// TokenFor returns the session's CSRF token, generating and persisting
// one on first use. Idempotent within a session.
func (m *Manager) TokenFor(ctx context.Context, sess *Session) (string, error) {
	if sess.CSRFToken != "" {
		return sess.CSRFToken, nil
	}

	token, err := randomHex(csrfTokenBytes)
	if err != nil {
		return "", err
	}
	sess.CSRFToken = token
	if err := m.store.Put(ctx, sess); err != nil {
		return "", err
	}
	return token, nil
}

// Verify compares supplied against the session token in constant time.
// A session without a token never verifies.
func (m *Manager) Verify(sess *Session, supplied string) bool {
	if sess == nil || sess.CSRFToken == "" || supplied == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(sess.CSRFToken), []byte(supplied)) == 1
}

func (m *Manager) setCookie(w http.ResponseWriter, id string) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func randomHex(n int) (string, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("rand: %w", err)
	}
	return hex.EncodeToString(b), nil
}
