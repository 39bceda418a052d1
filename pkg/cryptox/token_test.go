package cryptox

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGenerateToken(t *testing.T) {
	tests := []struct {
		name    string
		size    int
		wantLen int
	}{
		{"256-bit token", TokenSize256, 43},
		{"512-bit token", TokenSize512, 86},
		{"custom size", 24, 32},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, err := GenerateToken(tt.size)
			require.NoError(t, err)
			require.Len(t, token, tt.wantLen)

			raw, err := base64.RawURLEncoding.DecodeString(token)
			require.NoError(t, err)
			require.Len(t, raw, tt.size)

			token2, err := GenerateToken(tt.size)
			require.NoError(t, err)
			require.NotEqual(t, token, token2, "tokens should be unique")
		})
	}
}

func TestGenerateToken_InvalidSize(t *testing.T) {
	for _, size := range []int{0, -1} {
		token, err := GenerateToken(size)
		require.Error(t, err)
		require.Empty(t, token)
	}
}

func TestFingerprintToken(t *testing.T) {
	fp1a := FingerprintToken("test-token-1")
	fp1b := FingerprintToken("test-token-1")
	fp2 := FingerprintToken("test-token-2")

	require.Equal(t, fp1a, fp1b, "fingerprint should be deterministic")
	require.NotEqual(t, fp1a, fp2)
	require.Len(t, fp1a, 43, "SHA-256 base64url should be 43 chars")
}

func TestEqualStrings(t *testing.T) {
	require.True(t, EqualStrings("admin", "admin"))
	require.False(t, EqualStrings("admin", "Admin"))
	require.False(t, EqualStrings("admin", "admin "))
	require.True(t, EqualStrings("", ""))
}

func TestGenerateToken_NoCollisions(t *testing.T) {
	const count = 100
	seen := make(map[string]struct{}, count)

	for range count {
		token, err := GenerateToken(TokenSize512)
		require.NoError(t, err)
		require.NotContains(t, seen, token, "duplicate token generated")
		seen[token] = struct{}{}
	}
}
