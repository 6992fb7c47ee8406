package authz

import (
	"context"
	"errors"
	"net/url"
	"testing"
	"time"

	"github.com/jobconnect/jobconnect-go/internal/crypto"
	"github.com/jobconnect/jobconnect-go/internal/model"
)

const testSecret = "gate-test-secret-gate-test-secret-00"

type fixture struct {
	tokens *crypto.TokenService
	gate   *Gate
}

func newFixture(t *testing.T, opts ...Option) fixture {
	t.Helper()
	ts, err := crypto.NewTokenService(testSecret, crypto.SessionLifetime)
	if err != nil {
		t.Fatalf("NewTokenService() unexpected error: %v", err)
	}
	return fixture{tokens: ts, gate: NewGate(ts, opts...)}
}

func (f fixture) token(t *testing.T, role model.Role, approved, blocked bool) string {
	t.Helper()
	tok, err := f.tokens.Issue(crypto.Claims{
		UserID:     "user-" + string(role),
		Email:      string(role) + "@example.com",
		Role:       role,
		IsApproved: approved,
		IsBlocked:  blocked,
	})
	if err != nil {
		t.Fatalf("Issue() unexpected error: %v", err)
	}
	return tok
}

var protectedPaths = []string{
	"/admin", "/admin/users", "/admin/jobs",
	"/employer", "/employer/post", "/employer/edit/42", "/employer/applicants",
	"/seeker", "/seeker/applications",
}

func TestDecide_UnprotectedPathsPass(t *testing.T) {
	f := newFixture(t)
	tokens := []string{
		"",
		"garbage",
		f.token(t, model.RoleSeeker, true, false),
		f.token(t, model.RoleAdmin, true, true),
	}
	paths := []string{"/", "/jobs", "/jobs/123", "/login", "/pending-approval", "/register", "/seekers", "/administrator", "/api/jobs"}

	for _, p := range paths {
		for _, tok := range tokens {
			d := f.gate.Decide(context.Background(), p, tok)
			if d.Outcome != Pass || d.ClearCookie {
				t.Errorf("Decide(%q) = %+v, want plain Pass", p, d)
			}
		}
	}
}

func TestDecide_MissingTokenRedirectsWithReturnPath(t *testing.T) {
	f := newFixture(t)

	for _, p := range protectedPaths {
		d := f.gate.Decide(context.Background(), p, "")
		if d.Outcome != Redirect || d.Reason != ReasonMissingToken {
			t.Fatalf("Decide(%q) = %+v, want MissingToken redirect", p, d)
		}
		if d.ClearCookie {
			t.Errorf("Decide(%q) clears cookie on missing token", p)
		}
		want := "/login?redirect=" + url.QueryEscape(p)
		if d.Location != want {
			t.Errorf("Decide(%q) Location = %q, want %q", p, d.Location, want)
		}
	}
}

func TestDecide_InvalidTokenClearsCookie(t *testing.T) {
	f := newFixture(t)

	other, err := crypto.NewTokenService("a-completely-different-secret-value", crypto.SessionLifetime)
	if err != nil {
		t.Fatalf("NewTokenService() unexpected error: %v", err)
	}
	foreign, err := other.Issue(crypto.Claims{UserID: "u", Email: "u@x.io", Role: model.RoleAdmin, IsApproved: true})
	if err != nil {
		t.Fatalf("Issue() unexpected error: %v", err)
	}

	for _, tok := range []string{"garbage", foreign} {
		for _, p := range protectedPaths {
			d := f.gate.Decide(context.Background(), p, tok)
			if d.Outcome != Redirect || d.Reason != ReasonInvalidToken || d.Location != "/login" || !d.ClearCookie {
				t.Errorf("Decide(%q) = %+v, want InvalidToken redirect to /login with cookie cleared", p, d)
			}
		}
	}
}

type expiredVerifier struct{}

func (expiredVerifier) Verify(string) (*crypto.Claims, error) {
	return nil, crypto.ErrInvalidToken
}

func TestDecide_ExpiredTokenClearsCookie(t *testing.T) {
	g := NewGate(expiredVerifier{})
	d := g.Decide(context.Background(), "/seeker", "expired")
	if d.Reason != ReasonInvalidToken || !d.ClearCookie || d.Location != "/login" {
		t.Errorf("Decide() = %+v, want InvalidToken", d)
	}
}

func TestDecide_BlockedAlwaysDenied(t *testing.T) {
	f := newFixture(t)

	for _, role := range model.Roles {
		tok := f.token(t, role, true, true)
		for _, p := range protectedPaths {
			d := f.gate.Decide(context.Background(), p, tok)
			if d.Outcome != Redirect || d.Reason != ReasonBlocked || d.Location != "/login?error=blocked" || !d.ClearCookie {
				t.Errorf("role %s Decide(%q) = %+v, want blocked redirect", role, p, d)
			}
		}
	}
}

func TestDecide_WrongRoleRedirectsHome(t *testing.T) {
	f := newFixture(t)

	tests := []struct {
		role model.Role
		path string
		want string
	}{
		{model.RoleSeeker, "/employer", "/seeker"},
		{model.RoleSeeker, "/employer/post", "/seeker"},
		{model.RoleSeeker, "/admin", "/seeker"},
		{model.RoleSeeker, "/admin/users", "/seeker"},
		{model.RoleEmployer, "/seeker", "/employer"},
		{model.RoleEmployer, "/admin/jobs", "/employer"},
		{model.RoleAdmin, "/seeker/applications", "/admin"},
		{model.RoleAdmin, "/employer", "/admin"},
	}

	for _, tt := range tests {
		d := f.gate.Decide(context.Background(), tt.path, f.token(t, tt.role, true, false))
		if d.Outcome != Redirect || d.Reason != ReasonWrongRole || d.Location != tt.want || d.ClearCookie {
			t.Errorf("%s Decide(%q) = %+v, want redirect to %s", tt.role, tt.path, d, tt.want)
		}
	}
}

func TestDecide_UnapprovedEmployer(t *testing.T) {
	f := newFixture(t)
	tok := f.token(t, model.RoleEmployer, false, false)

	for _, p := range []string{"/employer", "/employer/post", "/employer/applicants"} {
		d := f.gate.Decide(context.Background(), p, tok)
		if d.Outcome != Redirect || d.Reason != ReasonUnapproved || d.Location != "/pending-approval" || d.ClearCookie {
			t.Errorf("Decide(%q) = %+v, want pending-approval redirect", p, d)
		}
	}

	// Role mismatch is checked before approval.
	d := f.gate.Decide(context.Background(), "/seeker", tok)
	if d.Reason != ReasonWrongRole || d.Location != "/employer" {
		t.Errorf("Decide(/seeker) = %+v, want redirect to /employer", d)
	}
}

func TestDecide_PassCarriesClaims(t *testing.T) {
	f := newFixture(t)

	tests := []struct {
		role model.Role
		path string
	}{
		{model.RoleSeeker, "/seeker"},
		{model.RoleSeeker, "/seeker/applications"},
		{model.RoleEmployer, "/employer/post"},
		{model.RoleAdmin, "/admin"},
	}

	for _, tt := range tests {
		d := f.gate.Decide(context.Background(), tt.path, f.token(t, tt.role, true, false))
		if d.Outcome != Pass {
			t.Errorf("%s Decide(%q) = %+v, want Pass", tt.role, tt.path, d)
			continue
		}
		if d.Claims == nil || d.Claims.Role != tt.role {
			t.Errorf("%s Decide(%q) claims = %+v", tt.role, tt.path, d.Claims)
		}
	}
}

func TestDecide_UnapprovedNonEmployerPasses(t *testing.T) {
	f := newFixture(t)
	// Approval only gates the employer area.
	d := f.gate.Decide(context.Background(), "/seeker", f.token(t, model.RoleSeeker, false, false))
	if d.Outcome != Pass {
		t.Errorf("Decide() = %+v, want Pass", d)
	}
}

type stubStatus struct {
	st  Status
	err error
}

func (s stubStatus) Status(context.Context, string) (Status, error) {
	return s.st, s.err
}

func TestDecide_LiveStatusOverridesSnapshot(t *testing.T) {
	ts, err := crypto.NewTokenService(testSecret, time.Hour)
	if err != nil {
		t.Fatalf("NewTokenService() unexpected error: %v", err)
	}
	tok, err := ts.Issue(crypto.Claims{UserID: "e1", Email: "e@x.io", Role: model.RoleEmployer})
	if err != nil {
		t.Fatalf("Issue() unexpected error: %v", err)
	}

	approved := NewGate(ts, WithLiveStatus(stubStatus{st: Status{IsApproved: true}}))
	if d := approved.Decide(context.Background(), "/employer", tok); d.Outcome != Pass {
		t.Errorf("approved live status: Decide() = %+v, want Pass", d)
	}

	blocked := NewGate(ts, WithLiveStatus(stubStatus{st: Status{IsApproved: true, IsBlocked: true}}))
	if d := blocked.Decide(context.Background(), "/employer", tok); d.Reason != ReasonBlocked {
		t.Errorf("blocked live status: Decide() = %+v, want Blocked", d)
	}

	failing := NewGate(ts, WithLiveStatus(stubStatus{err: errors.New("redis down")}))
	if d := failing.Decide(context.Background(), "/employer", tok); d.Reason != ReasonUnapproved {
		t.Errorf("failing live status: Decide() = %+v, want snapshot Unapproved", d)
	}
}

func TestAreaOf(t *testing.T) {
	tests := []struct {
		path      string
		want      model.Role
		protected bool
	}{
		{"/admin", model.RoleAdmin, true},
		{"/admin/", model.RoleAdmin, true},
		{"/employer/edit/1", model.RoleEmployer, true},
		{"/seeker", model.RoleSeeker, true},
		{"/seekers", "", false},
		{"/", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		got, ok := AreaOf(tt.path)
		if got != tt.want || ok != tt.protected {
			t.Errorf("AreaOf(%q) = (%q, %v), want (%q, %v)", tt.path, got, ok, tt.want, tt.protected)
		}
	}
}

func TestReasonString(t *testing.T) {
	if ReasonBlocked.String() != "blocked" || ReasonUnapproved.String() != "unapproved" || Reason(99).String() != "unknown" {
		t.Error("unexpected Reason strings")
	}
}

func TestOutcomeString(t *testing.T) {
	if Pass.String() != "pass" || Redirect.String() != "redirect" {
		t.Error("unexpected Outcome strings")
	}
}
