package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"golang.org/x/sync/errgroup"

	httpapi "github.com/aussiebroadwan/storefront/internal/storefront/http"
	"github.com/aussiebroadwan/storefront/internal/storefront/service"
	"github.com/aussiebroadwan/storefront/internal/storefront/store"
	"github.com/aussiebroadwan/storefront/internal/storefront/store/drivers/memory"
	"github.com/aussiebroadwan/storefront/internal/storefront/store/drivers/postgres"
	"github.com/aussiebroadwan/storefront/internal/storefront/store/drivers/sqlite"
	"github.com/aussiebroadwan/storefront/pkg/httpx"
	"github.com/aussiebroadwan/storefront/pkg/jwtx"
	"github.com/aussiebroadwan/storefront/pkg/slogx"
)

// BuildVersion is overridden at build time with -ldflags "-X ...".
var BuildVersion = "v0.1.0"

// Application owns every long-lived dependency of the storefront service.
type Application struct {
	cfg    Config
	logger *slog.Logger

	catalog  store.Catalog
	sessions *memory.Sessions
	signer   *jwtx.HS256Signer
	registry *prometheus.Registry

	tokenService        *service.TokenService
	catalogService      *service.CatalogService
	housekeepingService *service.HousekeepingService

	server *http.Server
	router *httpapi.Router
}

// New validates cfg and wires the application. Nothing listens until Run.
func New(ctx context.Context, cfg Config) (*Application, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "storefront",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
		sessions: memory.NewSessions(),
		registry: prometheus.NewRegistry(),
	}
	app.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	app.logger.Debug("configuration loaded", "config", cfg.String())

	if err := app.initCatalog(ctx); err != nil {
		return nil, err
	}
	if err := app.initServices(); err != nil {
		_ = app.catalog.Close()
		return nil, err
	}
	app.initHTTP()

	return app, nil
}

// Run serves until ctx is cancelled or the listener fails, then drains
// in-flight requests for up to ShutdownGracePeriod.
func (app *Application) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", app.server.Addr)
	if err != nil {
		return fmt.Errorf("listen: %w", err)
	}
	return app.Serve(ctx, ln)
}

// Serve is Run over an existing listener.
func (app *Application) Serve(ctx context.Context, ln net.Listener) error {
	defer func() {
		if err := app.catalog.Close(); err != nil {
			app.logger.Error("error closing catalog", "error", err)
		}
	}()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		app.logger.Info("storefront starting", "addr", ln.Addr().String(), "version", BuildVersion)
		if err := app.server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		return app.housekeepingService.Run(gctx)
	})

	g.Go(func() error {
		<-gctx.Done()
		app.logger.Info("shutting down storefront")

		sctx, cancel := context.WithTimeout(context.WithoutCancel(gctx), app.cfg.ShutdownGracePeriod)
		defer cancel()

		if err := app.server.Shutdown(sctx); err != nil {
			app.logger.Error("graceful server shutdown failed", "error", err)
			_ = app.server.Close()
		}
		return nil
	})

	err := g.Wait()
	app.logger.Info("storefront stopped")
	return err
}

func (app *Application) initCatalog(ctx context.Context) error {
	var (
		cat store.Catalog
		err error
	)
	switch app.cfg.CatalogDriver {
	case DriverPostgres:
		cat, err = postgres.NewStore(ctx, app.cfg.CatalogDSN, app.logger)
	default:
		cat, err = sqlite.NewStore(app.cfg.CatalogDSN)
	}
	if err != nil {
		return fmt.Errorf("failed to open %s catalog: %w", app.cfg.CatalogDriver, err)
	}

	if err := cat.ApplyMigrations(); err != nil {
		_ = cat.Close()
		return fmt.Errorf("failed to apply catalog migrations: %w", err)
	}

	app.catalog = cat
	app.logger.Info("catalog migrations applied", "driver", app.cfg.CatalogDriver)
	return nil
}

func (app *Application) initServices() error {
	signer, err := jwtx.NewSignerHS256([]byte(app.cfg.SigningSecret))
	if err != nil {
		return fmt.Errorf("failed to create signer: %w", err)
	}
	verifier, err := jwtx.NewVerifierHS256([]byte(app.cfg.SigningSecret), jwtx.VerifyOptions{
		Issuer:   app.cfg.Issuer,
		Audience: []string{app.cfg.Audience},
	})
	if err != nil {
		return fmt.Errorf("failed to create verifier: %w", err)
	}
	app.signer = signer

	creds := service.NewCredentialVerifier(app.cfg.Principals)
	app.tokenService = &service.TokenService{
		Signer:      signer,
		Verifier:    verifier,
		Credentials: creds,
		Principals:  creds,
		Sessions:    app.sessions,
		Metrics:     service.NewAuthMetrics(app.registry),
		Issuer:      app.cfg.Issuer,
		Audience:    app.cfg.Audience,
		AccessTTL:   app.cfg.AccessTTL(),
		RefreshTTL:  app.cfg.RefreshTTL(),
	}
	app.catalogService = &service.CatalogService{Catalog: app.catalog}
	app.housekeepingService = service.NewHousekeepingService(
		app.sessions,
		app.logger,
		app.cfg.HousekeepingInterval,
	)

	app.logger.Info("auth configured",
		"principals", len(app.cfg.Principals),
		"access_ttl", app.cfg.AccessTTL(),
		"refresh_ttl", app.cfg.RefreshTTL(),
	)
	return nil
}

func (app *Application) initHTTP() {
	router := httpapi.NewRouter(
		app.signer,
		BuildVersion,
		app.catalog,
		httpx.NewMetrics(app.registry, "storefront"),
		app.logger,
	)
	if app.cfg.RateLimits != (httpapi.RateLimits{}) {
		router.Limits = app.cfg.RateLimits
	}
	router.TokenService = app.tokenService
	router.CatalogService = app.catalogService
	router.ApplyRoutes()

	app.router = router
	app.server = &http.Server{
		Addr:              net.JoinHostPort("", strconv.Itoa(app.cfg.Port)),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
}
