package middleware

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/jobconnect/jobconnect-go/internal/crypto"
)

type contextKey string

const claimsKey contextKey = "claims"

// WithClaims returns a copy of ctx carrying the session claims.
func WithClaims(ctx context.Context, c *crypto.Claims) context.Context {
	return context.WithValue(ctx, claimsKey, c)
}

// ClaimsFromContext extracts the authenticated session claims from the request context.
func ClaimsFromContext(ctx context.Context) (*crypto.Claims, bool) {
	c, ok := ctx.Value(claimsKey).(*crypto.Claims)
	return c, ok && c != nil
}

func writeJSONError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
