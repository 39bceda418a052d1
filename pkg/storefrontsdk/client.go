package storefrontsdk

import (
	"context"
	"net/http"
	"strings"
	"time"
)

// expiryBuffer is how long before the access token's expiry a Session
// starts refreshing it.
const expiryBuffer = 30 * time.Second

// SDKClient talks to the storefront API. It covers the public endpoints and
// creates authenticated Sessions.
type SDKClient struct {
	BaseURL    string
	HTTPClient *http.Client
}

func NewSDKClient(baseURL string) *SDKClient {
	return &SDKClient{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// Authenticate logs in and wraps the resulting tokens in a Session.
func (c *SDKClient) Authenticate(ctx context.Context, username, password string) (*Session, error) {
	tokens, err := c.Login(ctx, username, password)
	if err != nil {
		return nil, err
	}
	return newSession(c, tokens), nil
}

// AuthenticateWithRefreshToken exchanges a stored refresh token for a Session.
func (c *SDKClient) AuthenticateWithRefreshToken(ctx context.Context, refreshToken string) (*Session, error) {
	tokens, err := c.Refresh(ctx, refreshToken)
	if err != nil {
		return nil, err
	}
	return newSession(c, tokens), nil
}

// NewSessionFromTokens builds a Session from tokens obtained elsewhere. It
// still auto-refreshes once the access token is near expiry.
func (c *SDKClient) NewSessionFromTokens(accessToken, refreshToken string, expiresIn int) *Session {
	return newSession(c, &TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    expiresIn,
		TokenType:    "Bearer",
	})
}
