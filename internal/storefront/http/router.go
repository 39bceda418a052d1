package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/aussiebroadwan/storefront/internal/storefront/service"
	"github.com/aussiebroadwan/storefront/internal/storefront/store"
	"github.com/aussiebroadwan/storefront/pkg/httpx"
	"github.com/aussiebroadwan/storefront/pkg/jwtx"
	"github.com/aussiebroadwan/storefront/pkg/slogx"

	_ "github.com/aussiebroadwan/storefront/api/storefront" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// AdminRole may create, update and delete products.
const AdminRole = "Admin"

// RateLimits groups the profiles applied to each class of route.
type RateLimits struct {
	Strict   httpx.RateLimitConfig
	Moderate httpx.RateLimitConfig
	Lenient  httpx.RateLimitConfig
	Public   httpx.RateLimitConfig
}

// DefaultRateLimits returns the built-in httpx profiles. RATELIMIT_*
// overrides are not included; app.LoadConfig applies those.
func DefaultRateLimits() RateLimits {
	return RateLimits{
		Strict:   httpx.StrictLimit,
		Moderate: httpx.ModerateLimit,
		Lenient:  httpx.LenientLimit,
		Public:   httpx.PublicLimit,
	}
}

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	buildVersion string
	startTime    time.Time
	logger       *slog.Logger
	metrics      *httpx.Metrics

	catalog store.Catalog
	signer  jwtx.Signer

	Limits         RateLimits
	TokenService   *service.TokenService
	CatalogService *service.CatalogService
}

func NewRouter(
	signer jwtx.Signer,
	buildVersion string,
	catalog store.Catalog,
	metrics *httpx.Metrics,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		buildVersion: buildVersion,
		startTime:    time.Now(),
		logger:       logger,
		metrics:      metrics,
		catalog:      catalog,
		signer:       signer,
		Limits:       DefaultRateLimits(),
	}

	r.middlewares = []httpx.Middleware{slogx.HTTPMiddleware(r.logger)}
	if metrics != nil {
		// Innermost so r.Pattern is set by the mux before it is read.
		r.middlewares = append(r.middlewares, metrics.Middleware())
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerAuth()
	r.registerProducts()
	r.registerCustomers()
	r.registerOrders()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			Storefront API
//	@version		0.1.0
//	@description	Token-protected read API over a sample storefront dataset of customers, products and orders.
//	@description
//	@description				Access tokens are HS256 JWTs. Refresh tokens are opaque and single use.
//
//	@contact.name				AussieBroadWAN Team
//	@contact.url				https://github.com/aussiebroadwan/storefront
//
//	@license.name				MIT
//	@license.url				https://opensource.org/licenses/MIT
//
//	@host						localhost:8080
//	@BasePath					/
//
//	@schemes					http https
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				JWT access token. Format: "Bearer {token}".
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) authn() httpx.Middleware {
	return httpx.AuthnMiddleware(r.TokenService)
}

func (r *Router) registerAuth() {
	h := &AuthHandler{Tokens: r.TokenService}

	// Login is keyed on IP and username so one address cannot spray a single account.
	r.Mux.Handle("POST /v1/auth/login",
		httpx.Chain(http.HandlerFunc(h.HandleLogin),
			httpx.RateLimitByIPAndJSONField(r.Limits.Strict, "username"),
		),
	)
	r.Mux.Handle("POST /v1/auth/refresh",
		httpx.Chain(http.HandlerFunc(h.HandleRefresh),
			httpx.RateLimitByIP(r.Limits.Strict),
		),
	)

	r.Mux.Handle("POST /v1/auth/logout",
		httpx.Chain(http.HandlerFunc(h.HandleLogout),
			r.authn(),
			httpx.RateLimitByUser(r.Limits.Moderate),
		),
	)
	r.Mux.Handle("POST /v1/auth/logout-all",
		httpx.Chain(http.HandlerFunc(h.HandleLogoutAll),
			r.authn(),
			httpx.RateLimitByUser(r.Limits.Moderate),
		),
	)
	r.Mux.Handle("GET /v1/auth/me",
		httpx.Chain(http.HandlerFunc(h.HandleMe),
			r.authn(),
			httpx.RateLimitByUser(r.Limits.Lenient),
		),
	)
}

func (r *Router) registerProducts() {
	h := &CatalogHandler{Catalog: r.CatalogService}

	public := func(fn http.HandlerFunc) http.Handler {
		return httpx.Chain(fn, httpx.RateLimitByIP(r.Limits.Public))
	}
	admin := func(fn http.HandlerFunc) http.Handler {
		return httpx.Chain(fn,
			r.authn(),
			httpx.RequireAnyRole(AdminRole),
			httpx.RateLimitByUser(r.Limits.Moderate),
		)
	}

	r.Mux.Handle("GET /v1/products", public(h.HandleListProducts))
	r.Mux.Handle("GET /v1/products/{id}", public(h.HandleGetProduct))
	r.Mux.Handle("POST /v1/products", admin(h.HandleCreateProduct))
	r.Mux.Handle("PUT /v1/products/{id}", admin(h.HandleUpdateProduct))
	r.Mux.Handle("DELETE /v1/products/{id}", admin(h.HandleDeleteProduct))
}

func (r *Router) secured(fn http.HandlerFunc) http.Handler {
	return httpx.Chain(fn,
		r.authn(),
		httpx.RateLimitByUser(r.Limits.Lenient),
	)
}

func (r *Router) registerCustomers() {
	h := &CatalogHandler{Catalog: r.CatalogService}

	r.Mux.Handle("GET /v1/customers", r.secured(h.HandleListCustomers))
	r.Mux.Handle("GET /v1/customers/{id}", r.secured(h.HandleGetCustomer))
	r.Mux.Handle("GET /v1/customers/{id}/orders", r.secured(h.HandleListCustomerOrders))
}

func (r *Router) registerOrders() {
	h := &CatalogHandler{Catalog: r.CatalogService}

	r.Mux.Handle("GET /v1/orders", r.secured(h.HandleListOrders))
	r.Mux.Handle("GET /v1/orders/{id}", r.secured(h.HandleGetOrder))
}

func (r *Router) registerSystem() {
	// Monitoring polls these often.
	r.Mux.Handle("GET /livez",
		httpx.Chain(LivezHandler(r.startTime, r.buildVersion),
			httpx.RateLimitByIP(r.Limits.Lenient),
		),
	)
	r.Mux.Handle("GET /readyz",
		httpx.Chain(ReadyzHandler(r.startTime, r.buildVersion, r.catalog, r.signer),
			httpx.RateLimitByIP(r.Limits.Lenient),
		),
	)

	if r.metrics != nil {
		r.Mux.Handle("GET /metrics", r.metrics.Handler())
	}
}
