package slogx_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/aussiebroadwan/storefront/pkg/slogx"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	require.Equal(t, slog.LevelDebug, slogx.ParseLevel("DEBUG"))
	require.Equal(t, slog.LevelWarn, slogx.ParseLevel("warning"))
	require.Equal(t, slog.LevelError, slogx.ParseLevel(" error "))
	require.Equal(t, slog.LevelInfo, slogx.ParseLevel("chatty"))
}

func TestHTTPMiddleware(t *testing.T) {
	var buf bytes.Buffer
	base := slog.New(slog.NewJSONHandler(&buf, nil))

	var inner *slog.Logger
	h := slogx.HTTPMiddleware(base)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		inner = slogx.FromContext(r.Context())
		w.WriteHeader(http.StatusTeapot)
	}))

	t.Run("propagates request id", func(t *testing.T) {
		buf.Reset()
		req := httptest.NewRequest(http.MethodGet, "/brew", nil)
		req.Header.Set(slogx.RequestIDHeader, "abc123")
		rec := httptest.NewRecorder()

		h.ServeHTTP(rec, req)
		require.NotNil(t, inner)
		require.Equal(t, "abc123", rec.Header().Get(slogx.RequestIDHeader))

		var line map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
		require.Equal(t, "http_request", line["msg"])
		require.Equal(t, "abc123", line["req_id"])
		require.EqualValues(t, http.StatusTeapot, line["status"])
	})

	t.Run("generates request id", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		require.Len(t, rec.Header().Get(slogx.RequestIDHeader), 26)
	})
}

func TestWith(t *testing.T) {
	var buf bytes.Buffer
	ctx := slogx.WithContext(t.Context(), slog.New(slog.NewTextHandler(&buf, nil)))

	slogx.FromContext(slogx.With(ctx, "username", "admin")).Info("hello")
	require.True(t, strings.Contains(buf.String(), "username=admin"))
}
