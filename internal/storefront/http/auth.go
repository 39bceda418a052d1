package http

import (
	"errors"
	"io"
	"net/http"

	"github.com/aussiebroadwan/storefront/internal/storefront/service"
	"github.com/aussiebroadwan/storefront/pkg/httpx"
	"github.com/aussiebroadwan/storefront/pkg/slogx"
	"github.com/aussiebroadwan/storefront/pkg/storefrontsdk"
)

type AuthHandler struct {
	Tokens *service.TokenService
}

// HandleLogin exchanges credentials for a token pair.
//
//	@Summary		Log in
//	@Description	Checks a username/password pair and returns an access token and a single-use refresh token.
//	@Description	Wrong passwords and unknown usernames get the same response.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			body	body		storefrontsdk.LoginRequest		true	"Credentials"
//	@Success		200		{object}	storefrontsdk.TokenResponse
//	@Failure		400		{object}	storefrontsdk.ErrorResponse	"Malformed body"
//	@Failure		401		{object}	storefrontsdk.ErrorResponse	"authentication failed"
//	@Failure		429		{object}	storefrontsdk.ErrorResponse	"Rate limited"
//	@Router			/v1/auth/login [post].
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req storefrontsdk.LoginRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		storefrontsdk.ErrInvalidRequest.WriteError(w)
		return
	}

	pair, err := h.Tokens.Login(r.Context(), req.Username, req.Password)
	switch {
	case errors.Is(err, service.ErrBadCredentials):
		storefrontsdk.ErrAuthenticationFailed.WriteError(w)
		return
	case err != nil:
		slogx.FromContext(r.Context()).Error("login failed", "err", err)
		storefrontsdk.ErrServerError.WriteError(w)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toTokenResponse(pair))
}

// HandleRefresh rotates a refresh token.
//
//	@Summary		Refresh tokens
//	@Description	Exchanges a refresh token for a new pair. The presented token is consumed even when the exchange fails.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			body	body		storefrontsdk.RefreshRequest	true	"Refresh token"
//	@Success		200		{object}	storefrontsdk.TokenResponse
//	@Failure		400		{object}	storefrontsdk.ErrorResponse	"Malformed body"
//	@Failure		401		{object}	storefrontsdk.ErrorResponse	"invalid or revoked, expired, or user no longer exists"
//	@Failure		429		{object}	storefrontsdk.ErrorResponse	"Rate limited"
//	@Router			/v1/auth/refresh [post].
func (h *AuthHandler) HandleRefresh(w http.ResponseWriter, r *http.Request) {
	var req storefrontsdk.RefreshRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil {
		storefrontsdk.ErrInvalidRequest.WriteError(w)
		return
	}

	pair, err := h.Tokens.Refresh(r.Context(), req.RefreshToken)
	switch {
	case errors.Is(err, service.ErrRefreshNotFound):
		storefrontsdk.ErrRefreshInvalid.WriteError(w)
		return
	case errors.Is(err, service.ErrRefreshExpired):
		storefrontsdk.ErrRefreshExpired.WriteError(w)
		return
	case errors.Is(err, service.ErrPrincipalGone):
		storefrontsdk.ErrRefreshUserGone.WriteError(w)
		return
	case err != nil:
		slogx.FromContext(r.Context()).Error("refresh failed", "err", err)
		storefrontsdk.ErrServerError.WriteError(w)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toTokenResponse(pair))
}

// HandleLogout revokes one refresh token.
//
//	@Summary		Log out
//	@Description	Revokes the supplied refresh token if it exists. Always succeeds for an authenticated caller.
//	@Description	The caller's access token stays valid until it expires.
//	@Tags			Auth
//	@Security		BearerAuth
//	@Accept			json
//	@Param			body	body	storefrontsdk.LogoutRequest	false	"Refresh token to revoke"
//	@Success		204
//	@Failure		401	{object}	storefrontsdk.ErrorResponse	"Invalid or missing access token"
//	@Router			/v1/auth/logout [post].
func (h *AuthHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	log := slogx.FromContext(r.Context())

	var req storefrontsdk.LogoutRequest
	if err := httpx.DecodeJSON(w, r, &req); err != nil && !errors.Is(err, io.EOF) {
		log.Debug("ignoring unreadable logout body", "err", err)
	}

	if err := h.Tokens.Logout(r.Context(), req.RefreshToken); err != nil {
		log.Error("logout failed", "err", err)
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleLogoutAll revokes every refresh token owned by the caller.
//
//	@Summary		Log out everywhere
//	@Description	Revokes all refresh tokens belonging to the authenticated user.
//	@Tags			Auth
//	@Security		BearerAuth
//	@Success		204
//	@Failure		401	{object}	storefrontsdk.ErrorResponse	"Invalid or missing access token"
//	@Router			/v1/auth/logout-all [post].
func (h *AuthHandler) HandleLogoutAll(w http.ResponseWriter, r *http.Request) {
	claims, ok := httpx.ClaimsFromContext(r.Context())
	if !ok {
		storefrontsdk.ErrInvalidToken.WriteError(w)
		return
	}

	if _, err := h.Tokens.LogoutAll(r.Context(), claims.Subject); err != nil {
		slogx.FromContext(r.Context()).Error("logout-all failed", "err", err)
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleMe returns the authenticated caller.
//
//	@Summary		Current user
//	@Tags			Auth
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	storefrontsdk.MeResponse
//	@Failure		401	{object}	storefrontsdk.ErrorResponse	"Invalid or missing access token"
//	@Router			/v1/auth/me [get].
func (h *AuthHandler) HandleMe(w http.ResponseWriter, r *http.Request) {
	claims, ok := httpx.ClaimsFromContext(r.Context())
	if !ok {
		storefrontsdk.ErrInvalidToken.WriteError(w)
		return
	}

	u := h.Tokens.CurrentUser(claims)
	httpx.WriteJSON(w, http.StatusOK, storefrontsdk.MeResponse{Username: u.Username, Role: u.Role})
}
