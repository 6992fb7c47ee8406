package crypto

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/jobconnect/jobconnect-go/internal/model"
)

const (
	tokenIssuer   = "jobconnect"
	tokenAudience = "jobconnect-web"

	// SessionLifetime is how long an issued session token stays valid.
	SessionLifetime = 7 * 24 * time.Hour
)

var (
	ErrInvalidToken  = errors.New("invalid or expired token")
	ErrMissingSecret = errors.New("token signing secret is empty")
)

// Claims is the identity snapshot carried by a session token.
// Approval and block flags reflect the user record at issuance time.
type Claims struct {
	jwt.RegisteredClaims
	UserID     string     `json:"userId"`
	Email      string     `json:"email"`
	Role       model.Role `json:"role"`
	IsApproved bool       `json:"isApproved"`
	IsBlocked  bool       `json:"isBlocked"`
}

// ClaimsFor snapshots the token-relevant fields of a user.
func ClaimsFor(u *model.User) Claims {
	return Claims{
		UserID:     u.ID,
		Email:      u.Email,
		Role:       u.Role,
		IsApproved: u.IsApproved,
		IsBlocked:  u.IsBlocked,
	}
}

// TokenService issues and verifies HS256 session tokens.
type TokenService struct {
	secret []byte
	expiry time.Duration
	now    func() time.Time
}

// NewTokenService creates a TokenService. A zero expiry means SessionLifetime.
func NewTokenService(secret string, expiry time.Duration) (*TokenService, error) {
	if secret == "" {
		return nil, ErrMissingSecret
	}
	if expiry <= 0 {
		expiry = SessionLifetime
	}
	return &TokenService{
		secret: []byte(secret),
		expiry: expiry,
		now:    time.Now,
	}, nil
}

// Issue signs a token for the given claims, expiring one lifetime from now.
// Registered claims on the input are overwritten.
func (s *TokenService) Issue(c Claims) (string, error) {
	now := s.now()
	c.RegisteredClaims = jwt.RegisteredClaims{
		Issuer:    tokenIssuer,
		Subject:   c.UserID,
		Audience:  jwt.ClaimStrings{tokenAudience},
		ExpiresAt: jwt.NewNumericDate(now.Add(s.expiry)),
		IssuedAt:  jwt.NewNumericDate(now),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, c)
	return token.SignedString(s.secret)
}

// Verify parses and validates a token string, returning its claims.
// Every failure wraps ErrInvalidToken.
func (s *TokenService) Verify(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(tokenIssuer),
		jwt.WithAudience(tokenAudience),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	if claims.UserID == "" || !claims.Role.Valid() {
		return nil, fmt.Errorf("%w: malformed identity", ErrInvalidToken)
	}

	return claims, nil
}
