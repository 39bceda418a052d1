package app

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/aussiebroadwan/storefront/internal/storefront/domain"
	httpapi "github.com/aussiebroadwan/storefront/internal/storefront/http"
	"github.com/aussiebroadwan/storefront/pkg/httpx"
	"github.com/aussiebroadwan/storefront/pkg/jwtx"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

type Config struct {
	SigningSecret      string `mapstructure:"AUTH_SIGNING_SECRET"`
	Issuer             string `mapstructure:"AUTH_ISSUER"`
	Audience           string `mapstructure:"AUTH_AUDIENCE"`
	AccessTokenMinutes int    `mapstructure:"AUTH_ACCESS_TOKEN_MINUTES"`
	RefreshTokenDays   int    `mapstructure:"AUTH_REFRESH_TOKEN_DAYS"`
	PrincipalList      string `mapstructure:"AUTH_PRINCIPALS"`
	CatalogDriver      string `mapstructure:"CATALOG_DRIVER"`
	CatalogDSN         string `mapstructure:"CATALOG_DSN"`
	Env                string `mapstructure:"ENV"`
	LogLevel           string `mapstructure:"LOG_LEVEL"`
	LogFormat          string `mapstructure:"LOG_FORMAT"`
	Port               int    `mapstructure:"PORT"`

	ShutdownGracePeriod  time.Duration `mapstructure:"SHUTDOWN_GRACE_PERIOD"`
	HousekeepingInterval time.Duration `mapstructure:"HOUSEKEEPING_INTERVAL"`

	// Principals is resolved from PrincipalList or the config file's
	// principals list.
	Principals []domain.Principal `mapstructure:"-"`

	RateLimits httpapi.RateLimits `mapstructure:"-"`
}

var defaults = map[string]any{
	"AUTH_ISSUER":               "storefront-api",
	"AUTH_AUDIENCE":             "storefront-clients",
	"AUTH_ACCESS_TOKEN_MINUTES": 60,
	"AUTH_REFRESH_TOKEN_DAYS":   7,
	"AUTH_PRINCIPALS":           "admin:admin:Admin,user:user:User",
	"CATALOG_DRIVER":            DriverSQLite,
	"CATALOG_DSN":               "file:storefront.db?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)",
	"ENV":                       "dev",
	"LOG_LEVEL":                 "info",
	"LOG_FORMAT":                "json",
	"PORT":                      8080,
	"SHUTDOWN_GRACE_PERIOD":     "10s",
	"HOUSEKEEPING_INTERVAL":     "1h",
}

// LoadConfig reads .env (when present), the optional YAML file named by
// CONFIG_FILE, then the environment. Environment values win.
func LoadConfig() (Config, error) {
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(".env"); err != nil {
			return Config{}, fmt.Errorf("load .env: %w", err)
		}
	}

	v := viper.New()
	for k, val := range defaults {
		v.SetDefault(k, val)
	}
	_ = v.BindEnv("AUTH_SIGNING_SECRET")
	v.AutomaticEnv()

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}

	// An explicit AUTH_PRINCIPALS beats a principals list in the file.
	if _, fromEnv := os.LookupEnv("AUTH_PRINCIPALS"); !fromEnv && v.IsSet("principals") {
		if err := v.UnmarshalKey("principals", &cfg.Principals); err != nil {
			return Config{}, fmt.Errorf("decode principals: %w", err)
		}
	} else {
		ps, err := ParsePrincipals(cfg.PrincipalList)
		if err != nil {
			return Config{}, err
		}
		cfg.Principals = ps
	}

	// RATELIMIT_* overrides are only applied here, after .env is loaded.
	cfg.RateLimits = httpapi.RateLimits{
		Strict:   httpx.ParseRateLimitFromEnv("STRICT", httpx.StrictLimit),
		Moderate: httpx.ParseRateLimitFromEnv("MODERATE", httpx.ModerateLimit),
		Lenient:  httpx.ParseRateLimitFromEnv("LENIENT", httpx.LenientLimit),
		Public:   httpx.ParseRateLimitFromEnv("PUBLIC", httpx.PublicLimit),
	}

	return cfg, nil
}

// ParsePrincipals reads "user:pass:role" entries separated by commas.
// Passwords may not contain ':' or ','.
func ParsePrincipals(list string) ([]domain.Principal, error) {
	var out []domain.Principal
	for entry := range strings.SplitSeq(list, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}

		parts := strings.Split(entry, ":")
		if len(parts) != 3 || parts[0] == "" || parts[1] == "" || parts[2] == "" {
			return nil, fmt.Errorf("principal %q: want user:pass:role", entry)
		}
		out = append(out, domain.Principal{Username: parts[0], Password: parts[1], Role: parts[2]})
	}
	return out, nil
}

func (c Config) AccessTTL() time.Duration {
	return time.Duration(c.AccessTokenMinutes) * time.Minute
}

func (c Config) RefreshTTL() time.Duration {
	return time.Duration(c.RefreshTokenDays) * 24 * time.Hour
}

// Validate reports every problem at once.
func (c Config) Validate() error {
	var errs []error

	if len(c.SigningSecret) < jwtx.MinSecretLength {
		errs = append(errs, fmt.Errorf("AUTH_SIGNING_SECRET must be at least %d bytes", jwtx.MinSecretLength))
	}
	if c.Issuer == "" {
		errs = append(errs, errors.New("AUTH_ISSUER must not be empty"))
	}
	if c.Audience == "" {
		errs = append(errs, errors.New("AUTH_AUDIENCE must not be empty"))
	}
	if c.AccessTokenMinutes <= 0 {
		errs = append(errs, errors.New("AUTH_ACCESS_TOKEN_MINUTES must be positive"))
	}
	if c.RefreshTokenDays <= 0 {
		errs = append(errs, errors.New("AUTH_REFRESH_TOKEN_DAYS must be positive"))
	}
	if len(c.Principals) == 0 {
		errs = append(errs, errors.New("at least one principal is required"))
	}

	seen := map[string]bool{}
	for _, p := range c.Principals {
		key := strings.ToLower(p.Username)
		if seen[key] {
			errs = append(errs, fmt.Errorf("duplicate principal %q", p.Username))
		}
		seen[key] = true
	}

	switch c.CatalogDriver {
	case DriverSQLite, DriverPostgres:
	default:
		errs = append(errs, fmt.Errorf("CATALOG_DRIVER %q: want %s or %s", c.CatalogDriver, DriverSQLite, DriverPostgres))
	}
	if c.CatalogDSN == "" {
		errs = append(errs, errors.New("CATALOG_DSN must not be empty"))
	}
	if c.Port <= 0 || c.Port > 65535 {
		errs = append(errs, fmt.Errorf("PORT %d out of range", c.Port))
	}

	return errors.Join(errs...)
}

// String masks secrets so the config can be logged at startup.
func (c Config) String() string {
	mask := func(s string) string {
		if s == "" {
			return "(empty)"
		}
		return "********"
	}

	names := make([]string, 0, len(c.Principals))
	for _, p := range c.Principals {
		names = append(names, p.Username+"("+p.Role+")")
	}

	dsn := c.CatalogDSN
	if c.CatalogDriver == DriverPostgres {
		dsn = mask(dsn)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "\n  Env: %s\n", c.Env)
	fmt.Fprintf(&sb, "  Port: %d\n", c.Port)
	fmt.Fprintf(&sb, "  Issuer: %s\n", c.Issuer)
	fmt.Fprintf(&sb, "  Audience: %s\n", c.Audience)
	fmt.Fprintf(&sb, "  SigningSecret: %s\n", mask(c.SigningSecret))
	fmt.Fprintf(&sb, "  AccessTTL: %s\n", c.AccessTTL())
	fmt.Fprintf(&sb, "  RefreshTTL: %s\n", c.RefreshTTL())
	fmt.Fprintf(&sb, "  Principals: %s\n", strings.Join(names, ", "))
	fmt.Fprintf(&sb, "  CatalogDriver: %s\n", c.CatalogDriver)
	fmt.Fprintf(&sb, "  CatalogDSN: %s\n", dsn)
	fmt.Fprintf(&sb, "  LogLevel: %s\n", c.LogLevel)
	fmt.Fprintf(&sb, "  LogFormat: %s\n", c.LogFormat)
	return sb.String()
}
