package infrastructure

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_ObserveSurveyLoad(t *testing.T) {
	m := NewMetrics()

	m.ObserveSurveyLoad(42, nil)
	m.ObserveSurveyLoad(0, errors.New("read survey file: boom"))

	assert.Equal(t, 2.0, testutil.ToFloat64(m.surveyLoads))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.surveyLoadFails))
	assert.Equal(t, 42.0, testutil.ToFloat64(m.responsesLoaded), "failed load keeps the last good gauge value")
}

func TestMetrics_Handler(t *testing.T) {
	m := NewMetrics()
	m.ObserveRequest("/api/survey/overview", "200", 25*time.Millisecond)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "aipulse_http_requests_total")
	assert.Contains(t, rec.Body.String(), "aipulse_http_request_duration_seconds")
}

func TestMetrics_IsolatedRegistry(t *testing.T) {
	m := NewMetrics()

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, req)

	assert.NotContains(t, rec.Body.String(), "go_goroutines",
		"runtime collectors stay off the custom registry")
}
