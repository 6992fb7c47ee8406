package session

import (
	"net/http"
	"time"
)

// DefaultCookieName is the name of the session cookie unless configured otherwise.
const DefaultCookieName = "jobconnect_token"

// Cookie binds a session token to the browser via an HTTP-only cookie.
type Cookie struct {
	name   string
	secure bool
	maxAge time.Duration
}

// NewCookie creates a Cookie. secure should be true in production only,
// since browsers drop Secure cookies over plain HTTP.
func NewCookie(name string, secure bool, maxAge time.Duration) *Cookie {
	if name == "" {
		name = DefaultCookieName
	}
	return &Cookie{name: name, secure: secure, maxAge: maxAge}
}

// Name returns the cookie name.
func (c *Cookie) Name() string {
	return c.name
}

// Set stores token on the response.
func (c *Cookie) Set(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     c.name,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   c.secure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(c.maxAge.Seconds()),
	})
}

// Get returns the token carried by the request, if any.
func (c *Cookie) Get(r *http.Request) (string, bool) {
	ck, err := r.Cookie(c.name)
	if err != nil || ck.Value == "" {
		return "", false
	}
	return ck.Value, true
}

// Clear expires the cookie immediately.
func (c *Cookie) Clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     c.name,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   c.secure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})
}
