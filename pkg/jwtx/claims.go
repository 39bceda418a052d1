package jwtx

import (
	"slices"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Default token lifetimes. Services can override both through config.
const (
	// DefaultAccessTokenTTL is the lifetime of a signed access token.
	DefaultAccessTokenTTL = 60 * time.Minute

	// DefaultRefreshTokenTTL is the lifetime of an opaque refresh token.
	DefaultRefreshTokenTTL = 7 * 24 * time.Hour
)

// Claims are the access-token claims. Subject carries the username.
type Claims struct {
	jwt.RegisteredClaims

	// Role of the principal at the time of issuance ("Admin", "User").
	Role string `json:"role,omitempty"`
}

// NewAccessClaims builds the claim set for a freshly issued access token.
func NewAccessClaims(
	subject, role string,
	issuer, audience string,
	ttl time.Duration,
	now time.Time,
) Claims {
	return Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   subject,
			Audience:  jwt.ClaimStrings{audience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			ID:        NewJTI(),
		},
		Role: role,
	}
}

// NewJTI returns a random UUIDv4 for the "jti" claim.
func NewJTI() string {
	return uuid.NewString()
}

// ValidateIssuer checks if the issuer matches expected value.
func (c *Claims) ValidateIssuer(expected string) error {
	if expected == "" {
		return nil
	}

	if c.Issuer != expected {
		return ErrIssuer
	}

	return nil
}

// ValidateAudience checks if at least one expected audience is present.
func (c *Claims) ValidateAudience(expected []string) error {
	if len(expected) == 0 {
		return nil
	}

	for _, want := range expected {
		if slices.Contains(c.Audience, want) {
			return nil
		}
	}

	return ErrAudience
}

// ValidateExpiry requires an exp claim and that now is strictly before it.
// There is no leeway: a token is dead the instant exp is reached.
func (c *Claims) ValidateExpiry(now time.Time) error {
	if c.ExpiresAt == nil {
		return ErrInvalidClaim
	}

	if !now.Before(c.ExpiresAt.Time) {
		return ErrExpired
	}

	if c.NotBefore != nil && now.Before(c.NotBefore.Time) {
		return ErrNotYetValid
	}

	return nil
}
