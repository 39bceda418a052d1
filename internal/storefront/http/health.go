package http

import (
	"net/http"
	"time"

	"github.com/aussiebroadwan/storefront/internal/storefront/store"
	"github.com/aussiebroadwan/storefront/pkg/httpx"
	"github.com/aussiebroadwan/storefront/pkg/jwtx"
	"github.com/aussiebroadwan/storefront/pkg/storefrontsdk"
)

// LivezHandler godoc
//
//	@Summary		Liveness probe
//	@Description	Returns 200 while the process is serving requests.
//	@Tags			Health
//	@Produce		json
//	@Success		200	{object}	storefrontsdk.HealthResponse	"status, uptime, version"
//	@Router			/livez [get].
func LivezHandler(startTime time.Time, version string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		httpx.WriteJSON(w, http.StatusOK, storefrontsdk.HealthResponse{
			Status:  "ok",
			Uptime:  time.Since(startTime).String(),
			Version: version,
		})
	}
}

// ReadyzHandler godoc
//
//	@Summary		Readiness probe
//	@Description	Checks the catalog database and the token signer.
//	@Tags			Health
//	@Produce		json
//	@Success		200	{object}	storefrontsdk.HealthResponse	"status, uptime, version, checks"
//	@Failure		503	{object}	storefrontsdk.HealthResponse	"one or more checks failed"
//	@Router			/readyz [get].
func ReadyzHandler(startTime time.Time, version string, catalog store.Catalog, signer jwtx.Signer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		checks := &storefrontsdk.HealthChecks{Database: "ok", Signer: "ok"}
		status, code := "ok", http.StatusOK

		if err := catalog.Ping(r.Context()); err != nil {
			checks.Database = "error: " + err.Error()
			status, code = "degraded", http.StatusServiceUnavailable
		}
		if err := signer.Validate(); err != nil {
			checks.Signer = "error: " + err.Error()
			status, code = "degraded", http.StatusServiceUnavailable
		}

		httpx.WriteJSON(w, code, storefrontsdk.HealthResponse{
			Status:  status,
			Uptime:  time.Since(startTime).String(),
			Version: version,
			Checks:  checks,
		})
	}
}
