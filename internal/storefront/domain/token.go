package domain

import (
	"time"

	"github.com/aussiebroadwan/storefront/pkg/idx"
)

// TokenTypeBearer is the only token type handed out.
const TokenTypeBearer = "Bearer"

// TokenPair is what login and refresh return: a short-lived signed access
// token and an opaque single-use refresh token.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
	TokenType    string
	ExpiresIn    time.Duration // access token lifetime
}

// Session is the server-side record behind one refresh token. The raw token
// value is never kept; stores index sessions by its fingerprint.
type Session struct {
	ID        idx.ID
	Username  string
	ExpiresAt time.Time
	CreatedAt time.Time
}

// Expired reports whether the session is no longer usable at now.
// A session expiring exactly at now counts as expired.
func (s Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}
