// Package authz decides whether a page request may reach a role area.
//
// The decision is a pure function of the request path and the session token,
// optionally overlaid with live account flags from a StatusSource.
package authz

import (
	"context"
	"log/slog"
	"net/url"
	"strings"

	"github.com/jobconnect/jobconnect-go/internal/crypto"
	"github.com/jobconnect/jobconnect-go/internal/model"
)

const (
	LoginPath           = "/login"
	PendingApprovalPath = "/pending-approval"
)

// Outcome is what the gate tells the HTTP layer to do.
type Outcome int

const (
	Pass Outcome = iota
	Redirect
)

func (o Outcome) String() string {
	if o == Pass {
		return "pass"
	}
	return "redirect"
}

// Reason explains a redirect.
type Reason int

const (
	ReasonNone Reason = iota
	ReasonMissingToken
	ReasonInvalidToken
	ReasonBlocked
	ReasonWrongRole
	ReasonUnapproved
)

func (r Reason) String() string {
	switch r {
	case ReasonNone:
		return "none"
	case ReasonMissingToken:
		return "missing_token"
	case ReasonInvalidToken:
		return "invalid_token"
	case ReasonBlocked:
		return "blocked"
	case ReasonWrongRole:
		return "wrong_role"
	case ReasonUnapproved:
		return "unapproved"
	default:
		return "unknown"
	}
}

// Decision is the result of evaluating one request.
type Decision struct {
	Outcome     Outcome
	Reason      Reason
	Location    string
	ClearCookie bool
	// Claims is set whenever the token verified, including role and approval redirects.
	Claims *crypto.Claims
}

// Verifier checks a session token.
type Verifier interface {
	Verify(token string) (*crypto.Claims, error)
}

// Status is the live approval and block state of an account.
type Status struct {
	IsApproved bool
	IsBlocked  bool
}

// StatusSource looks up live account state by user id.
type StatusSource interface {
	Status(ctx context.Context, userID string) (Status, error)
}

// Gate evaluates page requests against the role areas.
type Gate struct {
	verifier Verifier
	live     StatusSource
}

// Option configures a Gate.
type Option func(*Gate)

// WithLiveStatus makes the gate replace the token's approval and block flags
// with the ones reported by src. Lookup failures fall back to the token.
func WithLiveStatus(src StatusSource) Option {
	return func(g *Gate) {
		g.live = src
	}
}

// NewGate creates a Gate.
func NewGate(v Verifier, opts ...Option) *Gate {
	g := &Gate{verifier: v}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Decide evaluates path and token. An empty token means no cookie was sent.
func (g *Gate) Decide(ctx context.Context, path, token string) Decision {
	area, protected := AreaOf(path)
	if !protected {
		return Decision{Outcome: Pass}
	}

	if token == "" {
		q := url.Values{"redirect": {path}}
		return Decision{
			Outcome:  Redirect,
			Reason:   ReasonMissingToken,
			Location: LoginPath + "?" + q.Encode(),
		}
	}

	claims, err := g.verifier.Verify(token)
	if err != nil {
		return Decision{
			Outcome:     Redirect,
			Reason:      ReasonInvalidToken,
			Location:    LoginPath,
			ClearCookie: true,
		}
	}

	approved, blocked := claims.IsApproved, claims.IsBlocked
	if g.live != nil {
		st, err := g.live.Status(ctx, claims.UserID)
		if err != nil {
			slog.Warn("live status lookup failed, using token snapshot", "user_id", claims.UserID, "error", err)
		} else {
			approved, blocked = st.IsApproved, st.IsBlocked
		}
	}

	if blocked {
		return Decision{
			Outcome:     Redirect,
			Reason:      ReasonBlocked,
			Location:    LoginPath + "?error=blocked",
			ClearCookie: true,
			Claims:      claims,
		}
	}

	if area != claims.Role {
		return Decision{
			Outcome:  Redirect,
			Reason:   ReasonWrongRole,
			Location: claims.Role.Home(),
			Claims:   claims,
		}
	}

	if area == model.RoleEmployer && !approved {
		return Decision{
			Outcome:  Redirect,
			Reason:   ReasonUnapproved,
			Location: PendingApprovalPath,
			Claims:   claims,
		}
	}

	return Decision{Outcome: Pass, Claims: claims}
}

// AreaOf reports which role's area path belongs to. A path is inside an area
// when it equals the area's home or continues it with a slash.
func AreaOf(path string) (model.Role, bool) {
	for _, role := range model.Roles {
		if underPrefix(path, role.Home()) {
			return role, true
		}
	}
	return "", false
}

func underPrefix(path, prefix string) bool {
	if !strings.HasPrefix(path, prefix) {
		return false
	}
	return len(path) == len(prefix) || path[len(prefix)] == '/'
}
