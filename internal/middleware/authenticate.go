package middleware

import (
	"net/http"
	"slices"
	"strings"

	"github.com/jobconnect/jobconnect-go/internal/authz"
	"github.com/jobconnect/jobconnect-go/internal/crypto"
	"github.com/jobconnect/jobconnect-go/internal/model"
	"github.com/jobconnect/jobconnect-go/internal/session"
)

// Authenticate returns middleware that requires a valid session token on API
// requests. The session cookie is tried first, then a Bearer Authorization
// header. An invalid cookie is cleared. Failures are JSON errors, never
// redirects.
func Authenticate(v authz.Verifier, ck *session.Cookie) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookieToken, hasCookie := ck.Get(r)
			bearer, hasBearer := bearerToken(r)
			if !hasCookie && !hasBearer {
				writeJSONError(w, http.StatusUnauthorized, "authentication required")
				return
			}

			var claims *crypto.Claims
			if hasCookie {
				c, err := v.Verify(cookieToken)
				if err != nil {
					ck.Clear(w)
				} else {
					claims = c
				}
			}
			if claims == nil && hasBearer {
				if c, err := v.Verify(bearer); err == nil {
					claims = c
				}
			}
			if claims == nil {
				writeJSONError(w, http.StatusUnauthorized, "invalid or expired token")
				return
			}

			if claims.IsBlocked {
				ck.Clear(w)
				writeJSONError(w, http.StatusForbidden, "account blocked")
				return
			}

			next.ServeHTTP(w, r.WithContext(WithClaims(r.Context(), claims)))
		})
	}
}

// RequireRole returns middleware that admits only the given roles. It must run
// after Authenticate.
func RequireRole(roles ...model.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := ClaimsFromContext(r.Context())
			if !ok {
				writeJSONError(w, http.StatusUnauthorized, "authentication required")
				return
			}
			if !slices.Contains(roles, claims.Role) {
				writeJSONError(w, http.StatusForbidden, "insufficient permissions")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func bearerToken(r *http.Request) (string, bool) {
	token, found := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
	if !found || token == "" {
		return "", false
	}
	return token, true
}
