package storefrontsdk

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"
)

// ErrNoRefreshToken is returned when the access token has expired and the
// session has nothing to refresh it with, for example after Logout.
var ErrNoRefreshToken = errors.New("storefrontsdk: access token expired and no refresh token available")

// Session is an authenticated session. Calls refresh the access token
// automatically shortly before it expires. Refresh tokens are single use, so
// a Session must not be copied between processes once it has refreshed.
type Session struct {
	client *SDKClient

	mu           sync.RWMutex
	accessToken  string
	refreshToken string
	expiresAt    time.Time
}

func newSession(client *SDKClient, tokens *TokenResponse) *Session {
	return &Session{
		client:       client,
		accessToken:  tokens.AccessToken,
		refreshToken: tokens.RefreshToken,
		expiresAt:    expiryFrom(tokens.ExpiresIn),
	}
}

func expiryFrom(expiresIn int) time.Time {
	return time.Now().Add(time.Duration(expiresIn)*time.Second - expiryBuffer)
}

// getValidToken returns the access token, refreshing it first if needed.
func (s *Session) getValidToken(ctx context.Context) (string, error) {
	s.mu.RLock()
	if time.Now().Before(s.expiresAt) {
		token := s.accessToken
		s.mu.RUnlock()
		return token, nil
	}
	s.mu.RUnlock()

	s.mu.Lock()
	defer s.mu.Unlock()

	// Another goroutine may have refreshed while we waited for the lock.
	if time.Now().Before(s.expiresAt) {
		return s.accessToken, nil
	}
	if err := s.refreshLocked(ctx); err != nil {
		return "", err
	}
	return s.accessToken, nil
}

// Refresh rotates the token pair now, regardless of expiry.
func (s *Session) Refresh(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.refreshLocked(ctx)
}

func (s *Session) refreshLocked(ctx context.Context) error {
	if s.refreshToken == "" {
		return ErrNoRefreshToken
	}

	tokens, err := s.client.Refresh(ctx, s.refreshToken)
	if err != nil {
		// The server consumed the token either way.
		s.refreshToken = ""
		return fmt.Errorf("failed to refresh token: %w", err)
	}

	s.accessToken = tokens.AccessToken
	s.refreshToken = tokens.RefreshToken
	s.expiresAt = expiryFrom(tokens.ExpiresIn)
	return nil
}

// AccessToken returns the current access token without checking expiry.
func (s *Session) AccessToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.accessToken
}

// RefreshToken returns the current refresh token.
func (s *Session) RefreshToken() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.refreshToken
}

// Me returns the caller's username and role.
func (s *Session) Me(ctx context.Context) (*MeResponse, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodGet, "/v1/auth/me", nil)
	if err != nil {
		return nil, err
	}

	var me MeResponse
	if err := decodeJSON(resp, &me, http.StatusOK); err != nil {
		return nil, err
	}
	return &me, nil
}

// Logout revokes this session's refresh token. The access token keeps
// working until it expires, but the session can no longer refresh.
func (s *Session) Logout(ctx context.Context) error {
	s.mu.RLock()
	refreshToken := s.refreshToken
	s.mu.RUnlock()

	resp, err := s.doAuthRequest(ctx, http.MethodPost, "/v1/auth/logout", LogoutRequest{RefreshToken: refreshToken})
	if err != nil {
		return err
	}
	if err := checkStatusNoContent(resp); err != nil {
		return err
	}

	s.mu.Lock()
	s.refreshToken = ""
	s.mu.Unlock()
	return nil
}

// LogoutAll revokes every refresh token belonging to the caller, including
// this session's.
func (s *Session) LogoutAll(ctx context.Context) error {
	resp, err := s.doAuthRequest(ctx, http.MethodPost, "/v1/auth/logout-all", nil)
	if err != nil {
		return err
	}
	if err := checkStatusNoContent(resp); err != nil {
		return err
	}

	s.mu.Lock()
	s.refreshToken = ""
	s.mu.Unlock()
	return nil
}
