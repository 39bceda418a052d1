package http_test

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/aussiebroadwan/storefront/internal/storefront/domain"
	storefronthttp "github.com/aussiebroadwan/storefront/internal/storefront/http"
	"github.com/aussiebroadwan/storefront/internal/storefront/service"
	"github.com/aussiebroadwan/storefront/internal/storefront/store/drivers/memory"
	"github.com/aussiebroadwan/storefront/internal/storefront/store/drivers/sqlite"
	"github.com/aussiebroadwan/storefront/pkg/httpx"
	"github.com/aussiebroadwan/storefront/pkg/jwtx"
	"github.com/aussiebroadwan/storefront/pkg/storefrontsdk"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
)

var testSecret = []byte("0123456789abcdef0123456789abcdef")

type testServer struct {
	t        *testing.T
	router   *storefronthttp.Router
	sessions *memory.Sessions
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	catalog, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = catalog.Close() })
	require.NoError(t, catalog.ApplyMigrations())

	signer, err := jwtx.NewSignerHS256(testSecret)
	require.NoError(t, err)
	verifier, err := jwtx.NewVerifierHS256(testSecret, jwtx.VerifyOptions{
		Issuer:   "storefront-api",
		Audience: []string{"storefront-clients"},
	})
	require.NoError(t, err)

	creds := service.NewCredentialVerifier([]domain.Principal{
		{Username: "admin", Password: "admin", Role: "Admin"},
		{Username: "user", Password: "user", Role: "User"},
	})
	sessions := memory.NewSessions()
	reg := prometheus.NewRegistry()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	r := storefronthttp.NewRouter(signer, "test", catalog, httpx.NewMetrics(reg, "storefront"), logger)

	generous := httpx.RateLimitConfig{RequestsPerWindow: 10000, Window: time.Minute, Burst: 10000}
	r.Limits = storefronthttp.RateLimits{Strict: generous, Moderate: generous, Lenient: generous, Public: generous}
	r.TokenService = &service.TokenService{
		Signer:      signer,
		Verifier:    verifier,
		Credentials: creds,
		Principals:  creds,
		Sessions:    sessions,
		Metrics:     service.NewAuthMetrics(reg),
		Issuer:      "storefront-api",
		Audience:    "storefront-clients",
		AccessTTL:   time.Hour,
		RefreshTTL:  24 * time.Hour,
	}
	r.CatalogService = &service.CatalogService{Catalog: catalog}
	r.ApplyRoutes()

	return &testServer{t: t, router: r, sessions: sessions}
}

func (s *testServer) do(method, path, token, body string) *httptest.ResponseRecorder {
	s.t.Helper()

	var rd io.Reader = http.NoBody
	if body != "" {
		rd = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, rd)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func (s *testServer) login(username, password string) storefrontsdk.TokenResponse {
	s.t.Helper()

	rec := s.do(http.MethodPost, "/v1/auth/login", "",
		`{"username":"`+username+`","password":"`+password+`"}`)
	require.Equal(s.t, http.StatusOK, rec.Code, rec.Body.String())

	var tok storefrontsdk.TokenResponse
	decode(s.t, rec, &tok)
	return tok
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), v), rec.Body.String())
}

func errorCode(t *testing.T, rec *httptest.ResponseRecorder) storefrontsdk.ErrorResponse {
	t.Helper()
	var e storefrontsdk.ErrorResponse
	decode(t, rec, &e)
	return e
}

func TestSystemRoutes(t *testing.T) {
	s := newTestServer(t)

	t.Run("livez", func(t *testing.T) {
		rec := s.do(http.MethodGet, "/livez", "", "")
		require.Equal(t, http.StatusOK, rec.Code)

		var h storefrontsdk.HealthResponse
		decode(t, rec, &h)
		require.Equal(t, "ok", h.Status)
		require.Equal(t, "test", h.Version)
		require.Nil(t, h.Checks)
	})

	t.Run("readyz", func(t *testing.T) {
		rec := s.do(http.MethodGet, "/readyz", "", "")
		require.Equal(t, http.StatusOK, rec.Code)

		var h storefrontsdk.HealthResponse
		decode(t, rec, &h)
		require.Equal(t, &storefrontsdk.HealthChecks{Database: "ok", Signer: "ok"}, h.Checks)
	})

	t.Run("metrics exposes http and auth series", func(t *testing.T) {
		s.login("admin", "admin")

		rec := s.do(http.MethodGet, "/metrics", "", "")
		require.Equal(t, http.StatusOK, rec.Code)
		require.Contains(t, rec.Body.String(), `storefront_http_requests_total{method="GET",route="GET /livez",status="200"} 1`)
		require.Contains(t, rec.Body.String(), `storefront_auth_events_total{operation="login",outcome="ok"} 1`)
	})

	t.Run("request id is echoed", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/livez", nil)
		req.Header.Set("X-Request-ID", "abc-123")
		rec := httptest.NewRecorder()
		s.router.ServeHTTP(rec, req)
		require.Equal(t, "abc-123", rec.Header().Get("X-Request-ID"))
	})
}

func TestAuthRoutes(t *testing.T) {
	s := newTestServer(t)

	t.Run("login returns a bearer pair", func(t *testing.T) {
		tok := s.login("admin", "admin")
		require.Equal(t, "Bearer", tok.TokenType)
		require.Equal(t, 3600, tok.ExpiresIn)
		require.NotEmpty(t, tok.AccessToken)
		require.NotEmpty(t, tok.RefreshToken)
	})

	t.Run("bad credentials are indistinguishable", func(t *testing.T) {
		wrongPass := s.do(http.MethodPost, "/v1/auth/login", "", `{"username":"admin","password":"nope"}`)
		unknown := s.do(http.MethodPost, "/v1/auth/login", "", `{"username":"ghost","password":"nope"}`)

		require.Equal(t, http.StatusUnauthorized, wrongPass.Code)
		require.Equal(t, wrongPass.Code, unknown.Code)
		require.Equal(t, wrongPass.Body.String(), unknown.Body.String())
		require.Equal(t, "invalid_credentials", errorCode(t, wrongPass).Error)
	})

	t.Run("malformed login body", func(t *testing.T) {
		rec := s.do(http.MethodPost, "/v1/auth/login", "", `{"username":`)
		require.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("me", func(t *testing.T) {
		tok := s.login("user", "user")
		rec := s.do(http.MethodGet, "/v1/auth/me", tok.AccessToken, "")
		require.Equal(t, http.StatusOK, rec.Code)

		var me storefrontsdk.MeResponse
		decode(t, rec, &me)
		require.Equal(t, storefrontsdk.MeResponse{Username: "user", Role: "User"}, me)
	})

	t.Run("me without token", func(t *testing.T) {
		rec := s.do(http.MethodGet, "/v1/auth/me", "", "")
		require.Equal(t, http.StatusUnauthorized, rec.Code)
		require.Equal(t, `Bearer error="invalid_token"`, rec.Header().Get("WWW-Authenticate"))
	})

	t.Run("refresh rotates and the old token is spent", func(t *testing.T) {
		tok := s.login("user", "user")
		body := `{"refreshToken":"` + tok.RefreshToken + `"}`

		rec := s.do(http.MethodPost, "/v1/auth/refresh", "", body)
		require.Equal(t, http.StatusOK, rec.Code)
		var next storefrontsdk.TokenResponse
		decode(t, rec, &next)
		require.NotEqual(t, tok.RefreshToken, next.RefreshToken)

		again := s.do(http.MethodPost, "/v1/auth/refresh", "", body)
		require.Equal(t, http.StatusUnauthorized, again.Code)
		e := errorCode(t, again)
		require.Equal(t, "invalid_refresh_token", e.Error)
		require.Equal(t, "invalid or revoked", e.ErrorDescription)
	})

	t.Run("logout revokes the refresh token", func(t *testing.T) {
		tok := s.login("user", "user")

		rec := s.do(http.MethodPost, "/v1/auth/logout", tok.AccessToken, `{"refreshToken":"`+tok.RefreshToken+`"}`)
		require.Equal(t, http.StatusNoContent, rec.Code)

		rec = s.do(http.MethodPost, "/v1/auth/refresh", "", `{"refreshToken":"`+tok.RefreshToken+`"}`)
		require.Equal(t, http.StatusUnauthorized, rec.Code)

		// Access tokens stay valid until they expire.
		rec = s.do(http.MethodGet, "/v1/auth/me", tok.AccessToken, "")
		require.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("logout tolerates unknown and missing tokens", func(t *testing.T) {
		tok := s.login("user", "user")

		for _, body := range []string{"", `{"refreshToken":"never-issued"}`, `not json`} {
			rec := s.do(http.MethodPost, "/v1/auth/logout", tok.AccessToken, body)
			require.Equal(t, http.StatusNoContent, rec.Code, body)
		}
	})

	t.Run("logout-all revokes every session for the caller", func(t *testing.T) {
		a := s.login("admin", "admin")
		b := s.login("admin", "admin")
		other := s.login("user", "user")

		rec := s.do(http.MethodPost, "/v1/auth/logout-all", a.AccessToken, "")
		require.Equal(t, http.StatusNoContent, rec.Code)

		for _, tok := range []string{a.RefreshToken, b.RefreshToken} {
			rec := s.do(http.MethodPost, "/v1/auth/refresh", "", `{"refreshToken":"`+tok+`"}`)
			require.Equal(t, http.StatusUnauthorized, rec.Code)
		}
		rec = s.do(http.MethodPost, "/v1/auth/refresh", "", `{"refreshToken":"`+other.RefreshToken+`"}`)
		require.Equal(t, http.StatusOK, rec.Code, "other users keep their sessions")
	})
}

func TestProductRoutes(t *testing.T) {
	s := newTestServer(t)
	admin := s.login("admin", "admin").AccessToken
	user := s.login("user", "user").AccessToken

	t.Run("list is public and filtered", func(t *testing.T) {
		rec := s.do(http.MethodGet, "/v1/products?category=Equipment&minPrice=2000&maxPrice=5000", "", "")
		require.Equal(t, http.StatusOK, rec.Code)

		var page storefrontsdk.Page[storefrontsdk.Product]
		decode(t, rec, &page)
		require.EqualValues(t, 3, page.TotalItems)
		require.Equal(t, 1, page.Page)
		require.Equal(t, 20, page.PageSize)
		for _, p := range page.Items {
			require.Equal(t, "Equipment", p.Category)
		}
	})

	t.Run("bad query values are reported per field", func(t *testing.T) {
		rec := s.do(http.MethodGet, "/v1/products?minPrice=cheap&pageSize=500", "", "")
		require.Equal(t, http.StatusBadRequest, rec.Code)

		var v storefrontsdk.ValidationErrorResponse
		decode(t, rec, &v)
		require.Equal(t, "validation_error", v.Code)
		require.Contains(t, v.Details, "minPrice")
	})

	t.Run("huge page is a validation error", func(t *testing.T) {
		rec := s.do(http.MethodGet, "/v1/products?page=9223372036854775807&pageSize=100", "", "")
		require.Equal(t, http.StatusBadRequest, rec.Code)

		var v storefrontsdk.ValidationErrorResponse
		decode(t, rec, &v)
		require.Equal(t, "validation_error", v.Code)
		require.Contains(t, v.Details, "page")
	})

	t.Run("last allowed page is empty", func(t *testing.T) {
		rec := s.do(http.MethodGet, "/v1/products?page="+strconv.Itoa(service.MaxPage)+"&pageSize=100", "", "")
		require.Equal(t, http.StatusOK, rec.Code)

		var page storefrontsdk.Page[storefrontsdk.Product]
		decode(t, rec, &page)
		require.Empty(t, page.Items)
	})

	t.Run("get", func(t *testing.T) {
		rec := s.do(http.MethodGet, "/v1/products/1", "", "")
		require.Equal(t, http.StatusOK, rec.Code)

		var p storefrontsdk.Product
		decode(t, rec, &p)
		require.Equal(t, "Espresso Beans 1kg", p.Name)
	})

	t.Run("get missing and malformed ids", func(t *testing.T) {
		require.Equal(t, http.StatusNotFound, s.do(http.MethodGet, "/v1/products/999", "", "").Code)
		require.Equal(t, http.StatusBadRequest, s.do(http.MethodGet, "/v1/products/abc", "", "").Code)
	})

	t.Run("writes need the admin role", func(t *testing.T) {
		body := `{"name":"Tamper","category":"Equipment","priceCents":4500,"stock":10}`

		require.Equal(t, http.StatusUnauthorized, s.do(http.MethodPost, "/v1/products", "", body).Code)
		require.Equal(t, http.StatusForbidden, s.do(http.MethodPost, "/v1/products", user, body).Code)
	})

	t.Run("create update delete", func(t *testing.T) {
		rec := s.do(http.MethodPost, "/v1/products", admin,
			`{"name":"Tamper","category":"Equipment","priceCents":4500,"stock":10}`)
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
		var created storefrontsdk.Product
		decode(t, rec, &created)
		require.Positive(t, created.ID)

		path := "/v1/products/" + strconv.FormatInt(created.ID, 10)
		rec = s.do(http.MethodPut, path, admin,
			`{"name":"Tamper 58mm","category":"Equipment","priceCents":4900,"stock":8}`)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		var updated storefrontsdk.Product
		decode(t, rec, &updated)
		require.Equal(t, "Tamper 58mm", updated.Name)
		require.EqualValues(t, 4900, updated.PriceCents)

		require.Equal(t, http.StatusNoContent, s.do(http.MethodDelete, path, admin, "").Code)
		require.Equal(t, http.StatusNotFound, s.do(http.MethodGet, path, "", "").Code)
	})

	t.Run("invalid product input", func(t *testing.T) {
		rec := s.do(http.MethodPost, "/v1/products", admin, `{"name":"","category":"Equipment","priceCents":-1,"stock":1}`)
		require.Equal(t, http.StatusBadRequest, rec.Code)

		var v storefrontsdk.ValidationErrorResponse
		decode(t, rec, &v)
		require.Contains(t, v.Details, "name")
		require.Contains(t, v.Details, "priceCents")
	})

	t.Run("deleting a product on an order conflicts", func(t *testing.T) {
		rec := s.do(http.MethodDelete, "/v1/products/1", admin, "")
		require.Equal(t, http.StatusConflict, rec.Code)
	})
}

func TestCustomerAndOrderRoutes(t *testing.T) {
	s := newTestServer(t)
	tok := s.login("user", "user").AccessToken

	t.Run("require authentication", func(t *testing.T) {
		for _, path := range []string{"/v1/customers", "/v1/customers/1", "/v1/customers/1/orders", "/v1/orders", "/v1/orders/1"} {
			require.Equal(t, http.StatusUnauthorized, s.do(http.MethodGet, path, "", "").Code, path)
		}
	})

	t.Run("customers filtered by country", func(t *testing.T) {
		rec := s.do(http.MethodGet, "/v1/customers?country=Australia", tok, "")
		require.Equal(t, http.StatusOK, rec.Code)

		var page storefrontsdk.Page[storefrontsdk.Customer]
		decode(t, rec, &page)
		require.EqualValues(t, 2, page.TotalItems)
	})

	t.Run("customer lookup", func(t *testing.T) {
		rec := s.do(http.MethodGet, "/v1/customers/6", tok, "")
		require.Equal(t, http.StatusOK, rec.Code)

		var c storefrontsdk.Customer
		decode(t, rec, &c)
		require.Equal(t, "Finn O'Brien", c.Name)

		require.Equal(t, http.StatusNotFound, s.do(http.MethodGet, "/v1/customers/404", tok, "").Code)
	})

	t.Run("customer orders", func(t *testing.T) {
		rec := s.do(http.MethodGet, "/v1/customers/1/orders", tok, "")
		require.Equal(t, http.StatusOK, rec.Code)

		var page storefrontsdk.Page[storefrontsdk.Order]
		decode(t, rec, &page)
		require.EqualValues(t, 2, page.TotalItems)

		require.Equal(t, http.StatusNotFound, s.do(http.MethodGet, "/v1/customers/404/orders", tok, "").Code)
	})

	t.Run("orders filtered by status", func(t *testing.T) {
		rec := s.do(http.MethodGet, "/v1/orders?status=delivered", tok, "")
		require.Equal(t, http.StatusOK, rec.Code)

		var page storefrontsdk.Page[storefrontsdk.Order]
		decode(t, rec, &page)
		require.EqualValues(t, 3, page.TotalItems)

		rec = s.do(http.MethodGet, "/v1/orders?status=lost", tok, "")
		require.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("order with items", func(t *testing.T) {
		rec := s.do(http.MethodGet, "/v1/orders/4", tok, "")
		require.Equal(t, http.StatusOK, rec.Code)

		var o storefrontsdk.Order
		decode(t, rec, &o)
		require.Equal(t, "delivered", o.Status)
		require.Len(t, o.Items, 2)

		var sum int64
		for _, it := range o.Items {
			require.NotEmpty(t, it.ProductName)
			sum += it.UnitPriceCents * it.Quantity
		}
		require.Equal(t, o.TotalCents, sum)
	})
}

func TestLoginRateLimit(t *testing.T) {
	s := newTestServer(t)
	s.router.Limits.Strict = httpx.RateLimitConfig{RequestsPerWindow: 2, Window: time.Minute, Burst: 2}

	// Limits are bound when routes are registered.
	s.router.Mux = http.NewServeMux()
	s.router.ApplyRoutes()

	body := `{"username":"admin","password":"wrong"}`
	require.Equal(t, http.StatusUnauthorized, s.do(http.MethodPost, "/v1/auth/login", "", body).Code)
	require.Equal(t, http.StatusUnauthorized, s.do(http.MethodPost, "/v1/auth/login", "", body).Code)

	rec := s.do(http.MethodPost, "/v1/auth/login", "", body)
	require.Equal(t, http.StatusTooManyRequests, rec.Code)
	require.Equal(t, "rate_limit_exceeded", errorCode(t, rec).Error)
}

func TestDefaultRateLimitsIgnoreEnvironment(t *testing.T) {
	t.Setenv("RATELIMIT_STRICT_REQUESTS", "1")
	t.Setenv("RATELIMIT_PUBLIC_BURST", "1")

	limits := storefronthttp.DefaultRateLimits()
	require.Equal(t, httpx.StrictLimit, limits.Strict)
	require.Equal(t, httpx.PublicLimit, limits.Public)
	require.NotEqual(t, 1, limits.Strict.RequestsPerWindow)
}
