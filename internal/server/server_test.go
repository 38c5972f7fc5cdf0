package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/irrigo/dashboard/internal/apiclient"
	"github.com/irrigo/dashboard/internal/domain"
	"github.com/irrigo/dashboard/internal/module"
	"github.com/irrigo/dashboard/internal/modules/models"
	"github.com/irrigo/dashboard/internal/modules/profile"
	"github.com/irrigo/dashboard/internal/modules/scripts"
	"github.com/irrigo/dashboard/internal/pubsub"
	"github.com/irrigo/dashboard/internal/registry"
	"github.com/irrigo/dashboard/internal/rendering"
	"github.com/irrigo/dashboard/internal/testutils"
)

func TestHTTPErrorHandler_WithStackTrace(t *testing.T) {
	e := echo.New()
	e.Renderer = rendering.NewUniversalRenderer()

	var logBuffer bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logBuffer, &slog.HandlerOptions{AddSource: true}))
	originalLogger := slog.Default()
	slog.SetDefault(logger)
	defer slog.SetDefault(originalLogger)

	setupErrorHandling(e)

	e.GET("/test-unhandled-error", func(c echo.Context) error {
		return errors.New("a deliberate unhandled error occurred")
	})

	req := httptest.NewRequest(http.MethodGet, "/test-unhandled-error", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusInternalServerError, rec.Code)

	logOutput := logBuffer.String()
	assert.Contains(t, logOutput, "Internal Server Error (Unhandled)")
	assert.Contains(t, logOutput, "error=\"a deliberate unhandled error occurred\"")
	assert.Contains(t, logOutput, "stack_trace=")
	assert.Contains(t, logOutput, "runtime/debug/stack.go")
	assert.Contains(t, logOutput, "internal/server/server_test.go")
}

type fakeUpstream struct {
	*httptest.Server
	logins int
}

func newFakeUpstream(t *testing.T) *fakeUpstream {
	t.Helper()
	f := &fakeUpstream{}
	mux := http.NewServeMux()
	mux.HandleFunc("/users/u1", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, domain.User{ID: "u1", Name: "Ana Lima", Farm: "Green Acres", JoinedAt: time.Date(2023, 1, 2, 0, 0, 0, 0, time.UTC)})
	})
	mux.HandleFunc("/scripts", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, domain.Page[domain.Script]{
			Items: []domain.Script{{ID: "s1", Name: "North field", Status: domain.ScriptActive}},
			Total: 1,
		})
	})
	mux.HandleFunc("/auth/login", func(w http.ResponseWriter, r *http.Request) {
		f.logins++
		writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "bad credentials"})
	})
	f.Server = httptest.NewServer(mux)
	t.Cleanup(f.Close)
	return f
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func newTestServer(t *testing.T, upstreamURL string) *Server {
	t.Helper()
	cfg := testutils.ConfigForTests(t)

	bus := pubsub.NewWatermillBridge()
	t.Cleanup(func() { _ = bus.Close() })

	reg := registry.New(cfg)
	registry.Set(reg, registry.APIClientKey, apiclient.New(upstreamURL, time.Second))
	registry.Set(reg, registry.BundleKey, testutils.Bundle(t))
	registry.Set[rendering.Renderer](reg, registry.RendererKey, rendering.NewUniversalRenderer())
	registry.Set[pubsub.Publisher](reg, registry.PublisherKey, bus)
	registry.Set[pubsub.Subscriber](reg, registry.SubscriberKey, bus)

	s := New(cfg, reg, []module.Module{
		profile.New(profile.Dependencies{}),
		scripts.New(scripts.Dependencies{}),
		models.New(models.Dependencies{}),
	})
	require.NoError(t, s.RegisterRoutes(context.Background()))
	return s
}

func TestServerRoutes(t *testing.T) {
	upstream := newFakeUpstream(t)
	s := newTestServer(t, upstream.URL)

	t.Run("health", func(t *testing.T) {
		rec := testutils.Do(s.E, http.MethodGet, "/health", nil, nil)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "OK", rec.Body.String())
		assert.NotEmpty(t, rec.Header().Get(echo.HeaderXRequestID))
	})

	t.Run("locale prefix is stripped before routing", func(t *testing.T) {
		rec := testutils.Do(s.E, http.MethodGet, "/es/health", nil, nil)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "es", rec.Header().Get("Content-Language"))
	})

	t.Run("static assets", func(t *testing.T) {
		rec := testutils.Do(s.E, http.MethodGet, "/static/app.css", nil, nil)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("profile module is mounted", func(t *testing.T) {
		rec := testutils.Do(s.E, http.MethodGet, "/pt/profile/u1", nil, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "Ana Lima")
		assert.Contains(t, rec.Body.String(), `href="/pt/profile/u1?tab=activity"`)
	})

	t.Run("scripts module is mounted", func(t *testing.T) {
		rec := testutils.Do(s.E, http.MethodGet, "/scripts", nil, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "North field")
	})

	t.Run("mutations require a session", func(t *testing.T) {
		rec := testutils.Do(s.E, http.MethodGet, "/models/new", nil, nil)
		assert.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, "/login", rec.Header().Get(echo.HeaderLocation))
	})

	t.Run("rejected login redirects back", func(t *testing.T) {
		form := url.Values{"email": {"ana@example.com"}, "password": {"nope"}}
		rec := testutils.Do(s.E, http.MethodPost, "/login", form, nil)
		assert.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, "/login", rec.Header().Get(echo.HeaderLocation))
		assert.Equal(t, 1, upstream.logins)
	})

	t.Run("unknown pages render not found", func(t *testing.T) {
		rec := testutils.Do(s.E, http.MethodGet, "/es/nowhere", nil, nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Contains(t, rec.Body.String(), `href="/es"`)
	})
}

func TestShutdownStopsModules(t *testing.T) {
	s := newTestServer(t, "http://127.0.0.1:9")
	stub := &stubModule{}
	s.modules = append(s.modules, stub)

	require.NoError(t, s.Shutdown(context.Background()))
	assert.True(t, stub.stopped)
}

type stubModule struct {
	module.BaseModule
	stopped bool
}

func (m *stubModule) Name() string { return "stub" }

func (m *stubModule) Shutdown(ctx context.Context) error {
	m.stopped = true
	return nil
}
