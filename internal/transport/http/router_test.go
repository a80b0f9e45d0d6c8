package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"advancecli/internal/config"
	"advancecli/internal/services"
	"advancecli/internal/shared/testutil"
)

func newTestRouter(t *testing.T, metrics *services.Metrics) http.Handler {
	t.Helper()
	svc := services.NewAnalysisService(nil, metrics, testutil.Discard())
	health := services.NewHealthService("test")
	cfg := config.ServerConfig{RateLimit: config.RateLimitConfig{Enabled: false}}
	return NewRouter(svc, health, metrics, cfg, testutil.Discard())
}

func TestRouterHealth(t *testing.T) {
	router := newTestRouter(t, nil)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/health", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))

	var health services.Health
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &health))
	assert.Equal(t, "ok", health.Status)
	assert.Equal(t, "test", health.Version)
	assert.NotEmpty(t, health.GoVersion)
}

func TestRouterMetrics(t *testing.T) {
	router := newTestRouter(t, services.NewMetrics())

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "go_goroutines")
}

func TestRouterAnalysisMethodNotAllowed(t *testing.T) {
	router := newTestRouter(t, nil)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/analysis", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestRouterNotFound(t *testing.T) {
	router := newTestRouter(t, nil)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/nope", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
