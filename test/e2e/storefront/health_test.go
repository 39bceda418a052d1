package storefront_test

import (
	"io"
	"net/http"
	"testing"

	"github.com/aussiebroadwan/storefront/pkg/storefrontsdk"
	"github.com/stretchr/testify/require"
)

func TestHealthEndpoints(t *testing.T) {
	baseURL := setupStorefrontContainer(t)
	client := storefrontsdk.NewSDKClient(baseURL)

	t.Run("livez", func(t *testing.T) {
		health, err := client.GetLiveness(t.Context())
		assertHealthy(t, health, err)
		require.NotEmpty(t, health.Version)
	})

	t.Run("readyz checks the catalog and signer", func(t *testing.T) {
		health, err := client.GetReadiness(t.Context())
		assertHealthy(t, health, err)
		require.Equal(t, &storefrontsdk.HealthChecks{Database: "ok", Signer: "ok"}, health.Checks)
	})

	t.Run("metrics", func(t *testing.T) {
		resp, err := http.Get(baseURL + "/metrics")
		require.NoError(t, err)
		defer resp.Body.Close()

		body, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		require.Contains(t, string(body), "storefront_http_requests_total")
		require.Contains(t, string(body), "go_goroutines")
	})
}
