package jwtx

import (
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// MinSecretLength is the shortest HMAC secret we accept, in bytes.
const MinSecretLength = 32

// ErrWeakSecret is returned when an HMAC secret is missing or too short.
var ErrWeakSecret = fmt.Errorf("jwtx: signing secret must be at least %d bytes", MinSecretLength)

// Signer is our interface for anything that can sign JWTs.
type Signer interface {
	Alg() string
	Sign(Claims) (string, error)
	Validate() error
}

// HS256Signer signs tokens with HMAC-SHA256 over a shared secret.
type HS256Signer struct {
	secret []byte
}

// NewSignerHS256 copies secret and refuses anything under MinSecretLength.
func NewSignerHS256(secret []byte) (*HS256Signer, error) {
	if len(secret) < MinSecretLength {
		return nil, ErrWeakSecret
	}

	return &HS256Signer{secret: append([]byte(nil), secret...)}, nil
}

func (s *HS256Signer) Alg() string { return jwt.SigningMethodHS256.Alg() }

// Sign turns claims into a compact signed JWT.
func (s *HS256Signer) Sign(claims Claims) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("jwtx: sign: %w", err)
	}

	return signed, nil
}

// Validate reports whether the signer still holds a usable secret. Readiness
// probes call this.
func (s *HS256Signer) Validate() error {
	if s == nil || len(s.secret) < MinSecretLength {
		return ErrWeakSecret
	}
	return nil
}
