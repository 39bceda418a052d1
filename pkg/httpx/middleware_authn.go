package httpx

import (
	"context"
	"net/http"
	"strings"

	"github.com/aussiebroadwan/storefront/pkg/jwtx"
	"github.com/aussiebroadwan/storefront/pkg/slogx"
)

// AccessTokenValidator turns a raw bearer token into claims or fails.
type AccessTokenValidator interface {
	ValidateAccessToken(ctx context.Context, token string) (jwtx.Claims, error)
}

// AuthnMiddleware requires a valid bearer access token. Every failure gets
// the same 401 so callers cannot tell a bad signature from an expired token;
// the specific cause goes to the log.
func AuthnMiddleware(v AccessTokenValidator) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			log := slogx.FromContext(ctx)

			scheme, raw, _ := strings.Cut(strings.TrimSpace(r.Header.Get("Authorization")), " ")
			if !strings.EqualFold(scheme, "Bearer") {
				log.Info("bearer token missing")
				writeBearerError(w)
				return
			}
			raw = strings.TrimSpace(raw)
			if raw == "" {
				log.Info("bearer token empty")
				writeBearerError(w)
				return
			}

			claims, err := v.ValidateAccessToken(ctx, raw)
			if err != nil {
				writeBearerError(w)
				return
			}

			ctx = contextWithAuth(ctx, claims)
			ctx = slogx.WithContext(ctx, log.With("username", claims.Subject))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RFC 6750-compliant error response for bearer auth.
func writeBearerError(w http.ResponseWriter) {
	w.Header().Set("WWW-Authenticate", `Bearer error="invalid_token"`)
	WriteJSON(w, http.StatusUnauthorized, map[string]string{
		"error":             "invalid_token",
		"error_description": "authentication failed",
	})
}
