package app_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/aussiebroadwan/storefront/internal/storefront/app"
	"github.com/aussiebroadwan/storefront/internal/storefront/domain"
	"github.com/stretchr/testify/require"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func TestLoadConfig(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		t.Setenv("AUTH_SIGNING_SECRET", testSecret)

		cfg, err := app.LoadConfig()
		require.NoError(t, err)
		require.NoError(t, cfg.Validate())

		require.Equal(t, "storefront-api", cfg.Issuer)
		require.Equal(t, "storefront-clients", cfg.Audience)
		require.Equal(t, time.Hour, cfg.AccessTTL())
		require.Equal(t, 7*24*time.Hour, cfg.RefreshTTL())
		require.Equal(t, app.DriverSQLite, cfg.CatalogDriver)
		require.Equal(t, 8080, cfg.Port)
		require.Equal(t, 10*time.Second, cfg.ShutdownGracePeriod)
		require.Equal(t, time.Hour, cfg.HousekeepingInterval)
		require.Equal(t, []domain.Principal{
			{Username: "admin", Password: "admin", Role: "Admin"},
			{Username: "user", Password: "user", Role: "User"},
		}, cfg.Principals)
		require.Positive(t, cfg.RateLimits.Strict.RequestsPerWindow)
	})

	t.Run("environment overrides", func(t *testing.T) {
		t.Setenv("AUTH_SIGNING_SECRET", testSecret)
		t.Setenv("AUTH_PRINCIPALS", "alice:wonderland:Admin")
		t.Setenv("AUTH_ACCESS_TOKEN_MINUTES", "5")
		t.Setenv("PORT", "9090")
		t.Setenv("HOUSEKEEPING_INTERVAL", "5m")
		t.Setenv("RATELIMIT_STRICT_REQUESTS", "50")

		cfg, err := app.LoadConfig()
		require.NoError(t, err)
		require.Equal(t, []domain.Principal{{Username: "alice", Password: "wonderland", Role: "Admin"}}, cfg.Principals)
		require.Equal(t, 5*time.Minute, cfg.AccessTTL())
		require.Equal(t, 9090, cfg.Port)
		require.Equal(t, 5*time.Minute, cfg.HousekeepingInterval)
		require.Equal(t, 50, cfg.RateLimits.Strict.RequestsPerWindow)
	})

	t.Run("yaml file with principals list", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "storefront.yaml")
		require.NoError(t, os.WriteFile(path, []byte(`
auth_signing_secret: `+testSecret+`
auth_issuer: file-issuer
principals:
  - username: carol
    password: s3cret
    role: Admin
  - username: dave
    password: hunter2
    role: User
`), 0o600))
		t.Setenv("CONFIG_FILE", path)

		cfg, err := app.LoadConfig()
		require.NoError(t, err)
		require.NoError(t, cfg.Validate())
		require.Equal(t, "file-issuer", cfg.Issuer)
		require.Equal(t, testSecret, cfg.SigningSecret)
		require.Len(t, cfg.Principals, 2)
		require.Equal(t, "carol", cfg.Principals[0].Username)
		require.Equal(t, "User", cfg.Principals[1].Role)
	})

	t.Run("environment beats the file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "storefront.yaml")
		require.NoError(t, os.WriteFile(path, []byte("auth_issuer: file-issuer\n"), 0o600))
		t.Setenv("CONFIG_FILE", path)
		t.Setenv("AUTH_ISSUER", "env-issuer")

		cfg, err := app.LoadConfig()
		require.NoError(t, err)
		require.Equal(t, "env-issuer", cfg.Issuer)
	})

	t.Run("missing file", func(t *testing.T) {
		t.Setenv("CONFIG_FILE", filepath.Join(t.TempDir(), "nope.yaml"))

		_, err := app.LoadConfig()
		require.Error(t, err)
	})

	t.Run("malformed principals", func(t *testing.T) {
		t.Setenv("AUTH_PRINCIPALS", "admin:admin")

		_, err := app.LoadConfig()
		require.ErrorContains(t, err, "user:pass:role")
	})
}

func TestParsePrincipals(t *testing.T) {
	t.Run("skips blanks and trims", func(t *testing.T) {
		got, err := app.ParsePrincipals(" a:b:Admin , ,c:d:User")
		require.NoError(t, err)
		require.Equal(t, []domain.Principal{
			{Username: "a", Password: "b", Role: "Admin"},
			{Username: "c", Password: "d", Role: "User"},
		}, got)
	})

	t.Run("empty list", func(t *testing.T) {
		got, err := app.ParsePrincipals("")
		require.NoError(t, err)
		require.Empty(t, got)
	})

	for _, bad := range []string{"a:b", "a:b:c:d", ":b:c", "a::c", "a:b:"} {
		t.Run("rejects "+bad, func(t *testing.T) {
			_, err := app.ParsePrincipals(bad)
			require.Error(t, err)
		})
	}
}

func validConfig() app.Config {
	return app.Config{
		SigningSecret:      testSecret,
		Issuer:             "storefront-api",
		Audience:           "storefront-clients",
		AccessTokenMinutes: 60,
		RefreshTokenDays:   7,
		Principals:         []domain.Principal{{Username: "admin", Password: "admin", Role: "Admin"}},
		CatalogDriver:      app.DriverSQLite,
		CatalogDSN:         ":memory:",
		Port:               8080,
	}
}

func TestConfigValidate(t *testing.T) {
	require.NoError(t, validConfig().Validate())

	cases := map[string]struct {
		mutate func(*app.Config)
		want   string
	}{
		"short secret":  {func(c *app.Config) { c.SigningSecret = "short" }, "AUTH_SIGNING_SECRET"},
		"no principals": {func(c *app.Config) { c.Principals = nil }, "principal"},
		"duplicate principals": {func(c *app.Config) {
			c.Principals = append(c.Principals, domain.Principal{Username: "ADMIN", Password: "x", Role: "User"})
		}, "duplicate"},
		"unknown driver": {func(c *app.Config) { c.CatalogDriver = "mysql" }, "CATALOG_DRIVER"},
		"zero ttl":       {func(c *app.Config) { c.AccessTokenMinutes = 0 }, "AUTH_ACCESS_TOKEN_MINUTES"},
		"bad port":       {func(c *app.Config) { c.Port = 70000 }, "PORT"},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			cfg := validConfig()
			tc.mutate(&cfg)
			require.ErrorContains(t, cfg.Validate(), tc.want)
		})
	}

	t.Run("reports every problem", func(t *testing.T) {
		cfg := validConfig()
		cfg.SigningSecret = ""
		cfg.Issuer = ""
		err := cfg.Validate()
		require.ErrorContains(t, err, "AUTH_SIGNING_SECRET")
		require.ErrorContains(t, err, "AUTH_ISSUER")
	})
}

func TestConfigStringMasksSecrets(t *testing.T) {
	cfg := validConfig()
	cfg.CatalogDriver = app.DriverPostgres
	cfg.CatalogDSN = "postgres://app:pw@db:5432/storefront"

	s := cfg.String()
	require.NotContains(t, s, testSecret)
	require.NotContains(t, s, "pw@db")
	require.NotContains(t, s, "Password")
	require.Contains(t, s, "SigningSecret: ********")
	require.Contains(t, s, "admin(Admin)")
}
