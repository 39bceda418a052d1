package cryptox

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
)

// Token sizes in raw bytes, before encoding.
const (
	// TokenSize256 gives 256 bits of entropy (43 chars base64url).
	TokenSize256 = 32
	// TokenSize512 gives 512 bits of entropy (86 chars base64url). Refresh
	// tokens use this size.
	TokenSize512 = 64
)

// GenerateToken returns size bytes from crypto/rand encoded as base64url
// without padding.
func GenerateToken(size int) (string, error) {
	if size <= 0 {
		return "", fmt.Errorf("token size must be positive, got %d", size)
	}

	buf := make([]byte, size)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate random token: %w", err)
	}

	return base64.RawURLEncoding.EncodeToString(buf), nil
}

// FingerprintToken returns the base64url SHA-256 of token. Stores key opaque
// tokens by fingerprint so the raw value never sits in memory longer than the
// request that carried it.
func FingerprintToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return base64.RawURLEncoding.EncodeToString(sum[:])
}

// EqualStrings compares a and b in constant time with respect to their
// contents. Lengths may still leak.
func EqualStrings(a, b string) bool {
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}
