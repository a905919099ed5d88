package app

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aipulse/internal/config"
	"aipulse/internal/errors"
	"aipulse/internal/infrastructure"
	"aipulse/internal/services"
)

// newTestApplication builds an application around a default config without
// touching global logger state or the environment.
func newTestApplication(t *testing.T) *Application {
	t.Helper()

	cfg := config.Default()
	cfg.Survey.ResponsesFile = filepath.Join(t.TempDir(), "missing.csv")
	cfg.Security.RateLimit.Enabled = false

	app := &Application{
		Config:  cfg,
		Logger:  slog.New(slog.NewTextHandler(&strings.Builder{}, nil)),
		Metrics: infrastructure.NewMetrics(),
	}
	app.initializeServices()
	app.setupRouter()
	app.createServer()
	return app
}

func TestApplication_Routes(t *testing.T) {
	app := newTestApplication(t)

	tests := []struct {
		name     string
		method   string
		path     string
		wantCode int
	}{
		{name: "health", method: http.MethodGet, path: "/api/health", wantCode: http.StatusOK},
		{name: "readiness", method: http.MethodGet, path: "/api/health/ready", wantCode: http.StatusOK},
		{name: "version", method: http.MethodGet, path: "/api/version", wantCode: http.StatusOK},
		{name: "overview", method: http.MethodGet, path: "/api/survey/overview", wantCode: http.StatusOK},
		{name: "breakdown", method: http.MethodGet, path: "/api/survey/breakdown", wantCode: http.StatusOK},
		{name: "functions", method: http.MethodGet, path: "/api/survey/functions", wantCode: http.StatusOK},
		{name: "status", method: http.MethodGet, path: "/api/survey/status", wantCode: http.StatusOK},
		{name: "metrics", method: http.MethodGet, path: "/metrics", wantCode: http.StatusOK},
		{name: "dashboard", method: http.MethodGet, path: "/", wantCode: http.StatusOK},
		{name: "unknown route", method: http.MethodGet, path: "/api/nope", wantCode: http.StatusNotFound},
		{name: "wrong method", method: http.MethodDelete, path: "/api/survey/overview", wantCode: http.StatusMethodNotAllowed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, nil)
			rec := httptest.NewRecorder()
			app.Router.ServeHTTP(rec, req)
			assert.Equal(t, tt.wantCode, rec.Code)
		})
	}
}

func TestApplication_EmptyTableDegradation(t *testing.T) {
	app := newTestApplication(t)

	// The responses file does not exist; aggregates still answer 200 with
	// zeroed metrics instead of failing.
	req := httptest.NewRequest(http.MethodGet, "/api/survey/overview", nil)
	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var got map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	data := got["data"].(map[string]interface{})
	assert.Equal(t, float64(0), data["total_responses"])
	assert.Nil(t, data["avg_time_percentage"])
}

func TestApplication_NotFoundIsProblemJSON(t *testing.T) {
	app := newTestApplication(t)

	req := httptest.NewRequest(http.MethodGet, "/api/nope", nil)
	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNotFound, rec.Code)

	var got map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, errors.TypeNotFound, got["type"])
}

func TestApplication_RequestIDHeader(t *testing.T) {
	app := newTestApplication(t)

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)

	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}

func TestApplication_VersionPayload(t *testing.T) {
	app := newTestApplication(t)

	req := httptest.NewRequest(http.MethodGet, "/api/version", nil)
	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var got map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, services.Version, got["version"])
}
