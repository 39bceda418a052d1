package httpx

import (
	"bytes"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/aussiebroadwan/storefront/pkg/slogx"
	"golang.org/x/time/rate"
)

// RateLimitConfig is a token bucket refilled at RequestsPerWindow per Window.
type RateLimitConfig struct {
	RequestsPerWindow int
	Window            time.Duration
	Burst             int
}

func (c RateLimitConfig) limit() rate.Limit {
	if c.Window <= 0 {
		return rate.Inf
	}
	return rate.Limit(float64(c.RequestsPerWindow) / c.Window.Seconds())
}

// Default profiles, strictest first. Overrides are read by
// ParseRateLimitFromEnv at config load.
var (
	// StrictLimit guards login and refresh.
	StrictLimit = RateLimitConfig{RequestsPerWindow: 5, Window: time.Minute, Burst: 5}
	// ModerateLimit covers session management and catalog writes.
	ModerateLimit = RateLimitConfig{RequestsPerWindow: 20, Window: time.Minute, Burst: 20}
	// LenientLimit covers authenticated reads and health probes.
	LenientLimit = RateLimitConfig{RequestsPerWindow: 100, Window: time.Minute, Burst: 100}
	// PublicLimit covers the anonymous product listing.
	PublicLimit = RateLimitConfig{RequestsPerWindow: 1000, Window: time.Minute, Burst: 1000}
)

// ParseRateLimitFromEnv overlays RATELIMIT_{prefix}_{REQUESTS,WINDOW_SEC,BURST}
// onto def. Unparseable or non-positive values are ignored.
func ParseRateLimitFromEnv(prefix string, def RateLimitConfig) RateLimitConfig {
	cfg := def
	if n, ok := positiveEnv("RATELIMIT_" + prefix + "_REQUESTS"); ok {
		cfg.RequestsPerWindow = n
	}
	if n, ok := positiveEnv("RATELIMIT_" + prefix + "_WINDOW_SEC"); ok {
		cfg.Window = time.Duration(n) * time.Second
	}
	if n, ok := positiveEnv("RATELIMIT_" + prefix + "_BURST"); ok {
		cfg.Burst = n
	}
	return cfg
}

func positiveEnv(key string) (int, bool) {
	n, err := strconv.Atoi(os.Getenv(key))
	return n, err == nil && n > 0
}

// KeyExtractor picks the bucket a request is charged to. An empty key
// skips limiting for that request.
type KeyExtractor func(*http.Request) string

// IPKeyExtractor returns the first X-Forwarded-For hop, then X-Real-IP, then
// the host part of RemoteAddr.
func IPKeyExtractor(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		return strings.TrimSpace(first)
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return strings.TrimSpace(xri)
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// UsernameKeyExtractor returns the authenticated username, or "" before
// AuthnMiddleware has run.
func UsernameKeyExtractor(r *http.Request) string {
	if username, ok := r.Context().Value(CtxKeyUsername).(string); ok {
		return strings.ToLower(username)
	}
	return ""
}

// CompositeKeyExtractor joins the non-empty keys of extractors with sep.
func CompositeKeyExtractor(sep string, extractors ...KeyExtractor) KeyExtractor {
	return func(r *http.Request) string {
		parts := make([]string, 0, len(extractors))
		for _, extract := range extractors {
			if key := extract(r); key != "" {
				parts = append(parts, key)
			}
		}
		return strings.Join(parts, sep)
	}
}

// JSONFieldKeyExtractor reads a top level string field from a JSON body and
// puts the body back so the handler can decode it again. Values are
// lowercased so "Alice" and "alice" share a bucket.
func JSONFieldKeyExtractor(field string) KeyExtractor {
	return func(r *http.Request) string {
		if r.Body == nil {
			return ""
		}

		body, err := io.ReadAll(io.LimitReader(r.Body, MaxBodyBytes))
		_ = r.Body.Close()
		r.Body = io.NopCloser(bytes.NewReader(body))
		if err != nil {
			return ""
		}

		var fields map[string]json.RawMessage
		if err := json.Unmarshal(body, &fields); err != nil {
			return ""
		}
		var v string
		if err := json.Unmarshal(fields[field], &v); err != nil {
			return ""
		}
		return strings.ToLower(strings.TrimSpace(v))
	}
}

// idleAfter is how long a bucket may go unused before it is evicted.
const idleAfter = 10 * time.Minute

type bucket struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// limiterSet hands out one token bucket per key and evicts buckets that have
// been idle for idleAfter.
type limiterSet struct {
	cfg RateLimitConfig

	mu        sync.Mutex
	buckets   map[string]*bucket
	lastSweep time.Time
}

func newLimiterSet(cfg RateLimitConfig) *limiterSet {
	return &limiterSet{
		cfg:       cfg,
		buckets:   make(map[string]*bucket),
		lastSweep: time.Now(),
	}
}

func (s *limiterSet) get(key string, now time.Time) *rate.Limiter {
	s.mu.Lock()
	defer s.mu.Unlock()

	if now.Sub(s.lastSweep) >= idleAfter {
		for k, b := range s.buckets {
			if now.Sub(b.lastSeen) >= idleAfter {
				delete(s.buckets, k)
			}
		}
		s.lastSweep = now
	}

	b, ok := s.buckets[key]
	if !ok {
		b = &bucket{limiter: rate.NewLimiter(s.cfg.limit(), s.cfg.Burst)}
		s.buckets[key] = b
	}
	b.lastSeen = now
	return b.limiter
}

// RateLimitMiddleware charges each request to the bucket chosen by extract
// and answers 429 with Retry-After once the bucket is empty.
func RateLimitMiddleware(cfg RateLimitConfig, extract KeyExtractor) Middleware {
	set := newLimiterSet(cfg)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			log := slogx.FromContext(r.Context())

			key := extract(r)
			if key == "" {
				log.Warn("rate limit key unavailable, allowing request")
				next.ServeHTTP(w, r)
				return
			}

			now := time.Now()
			limiter := set.get(key, now)
			if limiter.AllowN(now, 1) {
				next.ServeHTTP(w, r)
				return
			}

			res := limiter.ReserveN(now, 1)
			retryAfter := max(int(res.DelayFrom(now).Round(time.Second)/time.Second), 1)
			res.CancelAt(now)

			w.Header().Set("Retry-After", strconv.Itoa(retryAfter))
			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(cfg.RequestsPerWindow))
			w.Header().Set("X-RateLimit-Window", cfg.Window.String())

			log.Warn("rate limit exceeded",
				"key", key,
				"path", r.URL.Path,
				"retry_after", retryAfter,
			)
			WriteJSON(w, http.StatusTooManyRequests, map[string]string{
				"error":             "rate_limit_exceeded",
				"error_description": "Too many requests. Please try again later.",
			})
		})
	}
}

// RateLimitByIP limits by client address.
func RateLimitByIP(cfg RateLimitConfig) Middleware {
	return RateLimitMiddleware(cfg, IPKeyExtractor)
}

// RateLimitByUser keys buckets by authenticated username plus client address,
// so one user on two addresses gets two buckets. Before authn has run the key
// is the address alone.
func RateLimitByUser(cfg RateLimitConfig) Middleware {
	return RateLimitMiddleware(cfg, CompositeKeyExtractor(":",
		UsernameKeyExtractor,
		IPKeyExtractor,
	))
}

// RateLimitByIPAndJSONField limits by client address plus a JSON body field,
// such as the username on login.
func RateLimitByIPAndJSONField(cfg RateLimitConfig, field string) Middleware {
	return RateLimitMiddleware(cfg, CompositeKeyExtractor(":",
		IPKeyExtractor,
		JSONFieldKeyExtractor(field),
	))
}
