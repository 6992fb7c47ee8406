package middleware

import (
	"log/slog"
	"net/http"

	"github.com/jobconnect/jobconnect-go/internal/authz"
	"github.com/jobconnect/jobconnect-go/internal/metrics"
	"github.com/jobconnect/jobconnect-go/internal/session"
)

// PageGate returns middleware that applies the role gate to page requests.
// Denied requests get a 307 redirect; invalid and blocked sessions also lose
// their cookie. Passing requests carry the claims in their context. Paths
// outside the role areas go straight through.
func PageGate(g *authz.Gate, ck *session.Cookie) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, protected := authz.AreaOf(r.URL.Path); !protected {
				next.ServeHTTP(w, r)
				return
			}

			token, _ := ck.Get(r)
			d := g.Decide(r.Context(), r.URL.Path, token)
			metrics.RecordGateDecision(d.Outcome.String(), d.Reason.String())

			if d.Outcome == authz.Pass {
				if d.Claims != nil {
					r = r.WithContext(WithClaims(r.Context(), d.Claims))
				}
				next.ServeHTTP(w, r)
				return
			}

			userID := ""
			if d.Claims != nil {
				userID = d.Claims.UserID
			}
			slog.Info("gate denied request",
				"reason", d.Reason.String(),
				"path", r.URL.Path,
				"user_id", userID,
				"location", d.Location,
			)

			if d.ClearCookie {
				ck.Clear(w)
			}
			http.Redirect(w, r, d.Location, http.StatusTemporaryRedirect)
		})
	}
}
