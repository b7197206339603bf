package middlewares

import (
	"encoding/json"
	"net/http"

	"github.com/ashimkarki/inventory-service/internal/sessions"
)

// CSRFHeader is the request header carrying the per-session token on
// state-changing requests.
const CSRFHeader = "X-CSRF-Token"

// TokenVerifier checks a supplied CSRF token against the session's.
type TokenVerifier interface {
	Verify(sess *sessions.Session, supplied string) bool
}

// RequireCSRF rejects mutating requests whose token does not match the
// session's token. Rejection happens before the handler, so a failed
// check can never reach the datastore.
func RequireCSRF(verifier TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess := sessions.FromContext(r.Context())
			if !verifier.Verify(sess, r.Header.Get(CSRFHeader)) {
				w.WriteHeader(http.StatusBadRequest)
				json.NewEncoder(w).Encode(map[string][]string{"errors": {"Invalid CSRF token"}})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
