package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/aussiebroadwan/storefront/internal/storefront/domain"
	"github.com/aussiebroadwan/storefront/internal/storefront/store"
	"github.com/aussiebroadwan/storefront/pkg/cryptox"
	"github.com/aussiebroadwan/storefront/pkg/idx"
	"github.com/aussiebroadwan/storefront/pkg/jwtx"
	"github.com/aussiebroadwan/storefront/pkg/slogx"
)

// Rejection reasons. The error text doubles as the reason code in logs and
// metrics.
var (
	ErrBadCredentials     = errors.New("bad_credentials")
	ErrRefreshNotFound    = errors.New("refresh_not_found")
	ErrRefreshExpired     = errors.New("refresh_expired")
	ErrPrincipalGone      = errors.New("principal_gone")
	ErrAccessTokenInvalid = errors.New("access_token_invalid")
)

const (
	opLogin     = "login"
	opRefresh   = "refresh"
	opLogout    = "logout"
	opLogoutAll = "logout_all"
	opValidate  = "validate"
)

// TokenService issues, rotates, validates and revokes token pairs.
//
// Access tokens are stateless HS256 JWTs. Refresh tokens are opaque random
// strings whose fingerprint keys a session in Sessions; each one can be
// exchanged exactly once.
type TokenService struct {
	Signer      jwtx.Signer
	Verifier    jwtx.Verifier
	Credentials *CredentialVerifier
	Principals  PrincipalDirectory
	Sessions    store.Sessions
	Metrics     *AuthMetrics

	Issuer     string
	Audience   string
	AccessTTL  time.Duration
	RefreshTTL time.Duration

	// Now defaults to time.Now.
	Now func() time.Time
}

// Login checks the credentials and issues a fresh pair. Unknown usernames
// and wrong passwords both give ErrBadCredentials.
func (s *TokenService) Login(ctx context.Context, username, password string) (domain.TokenPair, error) {
	p, err := s.Credentials.Verify(username, password)
	if err != nil {
		s.reject(ctx, opLogin, ErrBadCredentials, slog.String("username", username))
		return domain.TokenPair{}, ErrBadCredentials
	}

	pair, err := s.IssueTokenPair(ctx, p)
	if err != nil {
		return domain.TokenPair{}, err
	}

	s.Metrics.observe(opLogin, nil)
	slogx.FromContext(ctx).Info("login succeeded", "username", p.Username, "role", p.Role)
	return pair, nil
}

// IssueTokenPair signs an access token for p and stores a new refresh session.
func (s *TokenService) IssueTokenPair(ctx context.Context, p domain.Principal) (domain.TokenPair, error) {
	now := s.now()

	claims := jwtx.NewAccessClaims(p.Username, p.Role, s.Issuer, s.Audience, s.accessTTL(), now)
	access, err := s.Signer.Sign(claims)
	if err != nil {
		return domain.TokenPair{}, fmt.Errorf("sign access token: %w", err)
	}

	refresh, err := cryptox.GenerateToken(cryptox.TokenSize512)
	if err != nil {
		return domain.TokenPair{}, fmt.Errorf("generate refresh token: %w", err)
	}

	sess := domain.Session{
		ID:        idx.NewAt(now),
		Username:  p.Username,
		CreatedAt: now,
		ExpiresAt: now.Add(s.refreshTTL()),
	}
	if err := s.Sessions.Put(ctx, cryptox.FingerprintToken(refresh), sess); err != nil {
		return domain.TokenPair{}, fmt.Errorf("store refresh session: %w", err)
	}

	return domain.TokenPair{
		AccessToken:  access,
		RefreshToken: refresh,
		TokenType:    domain.TokenTypeBearer,
		ExpiresIn:    s.accessTTL(),
	}, nil
}

// Refresh exchanges a refresh token for a new pair. The presented token is
// consumed whenever it is found, even if the exchange then fails, so it can
// never be used twice.
func (s *TokenService) Refresh(ctx context.Context, refreshToken string) (domain.TokenPair, error) {
	refreshToken = strings.TrimSpace(refreshToken)
	if refreshToken == "" {
		s.reject(ctx, opRefresh, ErrRefreshNotFound)
		return domain.TokenPair{}, ErrRefreshNotFound
	}

	sess, err := s.Sessions.TakeIfValid(ctx, cryptox.FingerprintToken(refreshToken), s.now())
	switch {
	case errors.Is(err, store.ErrNotFound):
		s.reject(ctx, opRefresh, ErrRefreshNotFound)
		return domain.TokenPair{}, ErrRefreshNotFound
	case errors.Is(err, store.ErrExpired):
		s.reject(ctx, opRefresh, ErrRefreshExpired)
		return domain.TokenPair{}, ErrRefreshExpired
	case err != nil:
		return domain.TokenPair{}, fmt.Errorf("take refresh session: %w", err)
	}

	p, ok := s.Principals.FindByUsername(sess.Username)
	if !ok {
		s.reject(ctx, opRefresh, ErrPrincipalGone, slog.String("username", sess.Username))
		return domain.TokenPair{}, ErrPrincipalGone
	}

	pair, err := s.IssueTokenPair(ctx, p)
	if err != nil {
		return domain.TokenPair{}, err
	}

	s.Metrics.observe(opRefresh, nil)
	slogx.FromContext(ctx).Info("refresh token rotated",
		"username", p.Username,
		"session_id", sess.ID.String(),
	)
	return pair, nil
}

// Logout drops the session behind refreshToken if there is one. An empty or
// unknown token is not an error. The caller's access token stays valid until
// it expires.
func (s *TokenService) Logout(ctx context.Context, refreshToken string) error {
	refreshToken = strings.TrimSpace(refreshToken)
	if refreshToken == "" {
		s.Metrics.observe(opLogout, nil)
		return nil
	}

	if err := s.Sessions.Remove(ctx, cryptox.FingerprintToken(refreshToken)); err != nil {
		return fmt.Errorf("remove refresh session: %w", err)
	}
	s.Metrics.observe(opLogout, nil)
	return nil
}

// LogoutAll drops every refresh session owned by username.
func (s *TokenService) LogoutAll(ctx context.Context, username string) (int, error) {
	n, err := s.Sessions.RemoveAllForUser(ctx, username)
	if err != nil {
		return 0, fmt.Errorf("remove user sessions: %w", err)
	}

	s.Metrics.observe(opLogoutAll, nil)
	slogx.FromContext(ctx).Info("all sessions revoked", "username", username, "count", n)
	return n, nil
}

// ValidateAccessToken verifies signature, issuer, audience and expiry in
// that order. Every failure is reported as ErrAccessTokenInvalid; the
// underlying cause is only logged.
func (s *TokenService) ValidateAccessToken(ctx context.Context, token string) (jwtx.Claims, error) {
	claims, err := s.Verifier.Verify(token)
	if err == nil && claims.Subject == "" {
		err = fmt.Errorf("%w: missing sub", jwtx.ErrInvalidClaim)
	}
	if err != nil {
		s.reject(ctx, opValidate, ErrAccessTokenInvalid, slog.String("cause", err.Error()))
		return jwtx.Claims{}, ErrAccessTokenInvalid
	}

	s.Metrics.observe(opValidate, nil)
	return claims, nil
}

// CurrentUser projects validated claims onto the caller's identity.
func (s *TokenService) CurrentUser(claims jwtx.Claims) domain.CurrentUser {
	return domain.CurrentUser{Username: claims.Subject, Role: claims.Role}
}

func (s *TokenService) reject(ctx context.Context, operation string, reason error, attrs ...slog.Attr) {
	s.Metrics.observe(operation, reason)

	args := []any{slog.String("operation", operation), slog.String("reason", reason.Error())}
	for _, a := range attrs {
		args = append(args, a)
	}
	slogx.FromContext(ctx).Info("auth rejected", args...)
}

func (s *TokenService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s *TokenService) accessTTL() time.Duration {
	if s.AccessTTL > 0 {
		return s.AccessTTL
	}
	return jwtx.DefaultAccessTokenTTL
}

func (s *TokenService) refreshTTL() time.Duration {
	if s.RefreshTTL > 0 {
		return s.RefreshTTL
	}
	return jwtx.DefaultRefreshTokenTTL
}
