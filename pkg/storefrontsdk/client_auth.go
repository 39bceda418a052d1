package storefrontsdk

import (
	"context"
	"net/http"
)

// Login exchanges credentials for a token pair.
func (c *SDKClient) Login(ctx context.Context, username, password string) (*TokenResponse, error) {
	resp, err := c.doRequest(ctx, http.MethodPost, "/v1/auth/login", LoginRequest{
		Username: username,
		Password: password,
	})
	if err != nil {
		return nil, err
	}

	var tokens TokenResponse
	if err := decodeJSON(resp, &tokens, http.StatusOK); err != nil {
		return nil, err
	}
	return &tokens, nil
}

// Refresh rotates a refresh token. The presented token is consumed whether
// or not the call succeeds.
func (c *SDKClient) Refresh(ctx context.Context, refreshToken string) (*TokenResponse, error) {
	resp, err := c.doRequest(ctx, http.MethodPost, "/v1/auth/refresh", RefreshRequest{
		RefreshToken: refreshToken,
	})
	if err != nil {
		return nil, err
	}

	var tokens TokenResponse
	if err := decodeJSON(resp, &tokens, http.StatusOK); err != nil {
		return nil, err
	}
	return &tokens, nil
}
