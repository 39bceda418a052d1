package httpx

import (
	"net/http"
	"strings"

	"github.com/aussiebroadwan/storefront/pkg/slogx"
)

// RequireAnyRole lets the request through when the caller's role claim is one
// of roles. Comparison ignores case. Must run after AuthnMiddleware.
func RequireAnyRole(roles ...string) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			have := roleFromCtx(r.Context())

			for _, want := range roles {
				if have != "" && strings.EqualFold(have, want) {
					next.ServeHTTP(w, r)
					return
				}
			}

			slogx.FromContext(r.Context()).Info("role not permitted",
				"role", have,
				"required", strings.Join(roles, ","),
			)
			WriteJSON(w, http.StatusForbidden, map[string]string{
				"error":             "forbidden",
				"error_description": "insufficient role",
			})
		})
	}
}
