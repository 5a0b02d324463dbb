package main

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mps-cell/mps-dashboard/config"
	"github.com/mps-cell/mps-dashboard/services"
	"github.com/mps-cell/mps-dashboard/session"
	"github.com/mps-cell/mps-dashboard/views"
)

func newTestConfig() *config.Config {
	return &config.Config{
		MPSAPIURL:      "http://192.168.0.77:8000/",
		CameraURL:      "http://192.168.0.77:4545/",
		Port:           "8080",
		GoEnv:          "test",
		PiecesPageSize: 8,
		AllowedOrigins: []string{"http://localhost:5173"},
	}
}

func setupTestStack(t *testing.T) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	mps := services.NewMockMPSService()
	mps.SetAsMockForTesting()
	camera := services.NewMockCameraService()
	camera.SetAsMockForTesting()
	session.SetStore(session.NewStore(session.NewMockStorage()))

	views.SetDashboardView(views.NewDashboardView(time.Hour, 8))
	views.SetOrdersView(views.NewOrdersView(time.Hour))
	views.SetMonitoringView(views.NewMonitoringView(time.Hour))
}

func TestHealthCheck(t *testing.T) {
	setupTestStack(t)
	router := setupRouter(newTestConfig())

	req, err := http.NewRequest(http.MethodGet, "/api/v1/health", nil)
	require.NoError(t, err)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "MPS dashboard is running")
}

func TestRouterRegistersAllEndpoints(t *testing.T) {
	setupTestStack(t)
	router := setupRouter(newTestConfig())

	routes := map[string]bool{}
	for _, route := range router.Routes() {
		routes[route.Method+" "+route.Path] = true
	}

	expected := []string{
		"GET /api/v1/health",
		"GET /api/v1/dashboard",
		"POST /api/v1/dashboard/pieces/next-page",
		"POST /api/v1/dashboard/pieces/previous-page",
		"PUT /api/v1/dashboard/pieces/date-filter",
		"DELETE /api/v1/dashboard/pieces/date-filter",
		"GET /api/v1/orders",
		"POST /api/v1/orders",
		"POST /api/v1/orders/login-prompt/dismiss",
		"POST /api/v1/login",
		"POST /api/v1/logout",
		"GET /api/v1/monitoring",
		"GET /api/v1/video-feed",
	}
	for _, route := range expected {
		assert.True(t, routes[route], "missing route %s", route)
	}
}

func TestCORSAllowsConfiguredOrigin(t *testing.T) {
	setupTestStack(t)
	router := setupRouter(newTestConfig())

	req, err := http.NewRequest(http.MethodOptions, "/api/v1/dashboard", nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", "GET")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "http://localhost:5173", w.Header().Get("Access-Control-Allow-Origin"))
}
