package controllers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/mps-cell/mps-dashboard/services"
	"github.com/mps-cell/mps-dashboard/session"
	"github.com/mps-cell/mps-dashboard/views"
)

// testEnv bundles the mocked services available to a controller test
type testEnv struct {
	MPS    *services.MockMPSService
	Camera *services.MockCameraService
	Store  *session.Store
}

// setupTestEnv installs mock services, an in-memory session and fresh
// views for the duration of one controller test
func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	mps := services.NewMockMPSService()
	mps.SetAsMockForTesting()

	camera := services.NewMockCameraService()
	camera.SetAsMockForTesting()

	store := session.NewStore(session.NewMockStorage())
	session.SetStore(store)

	views.SetDashboardView(views.NewDashboardView(time.Hour, 8))
	views.SetOrdersView(views.NewOrdersView(time.Hour))
	views.SetMonitoringView(views.NewMonitoringView(time.Hour))

	return &testEnv{MPS: mps, Camera: camera, Store: store}
}

// performRequest runs one request through a handler and returns the recorder
func performRequest(t *testing.T, method, path string, body any, route string, handler gin.HandlerFunc) *httptest.ResponseRecorder {
	t.Helper()

	router := gin.New()
	router.Handle(method, route, handler)

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, path, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

// decodeBody unmarshals a JSON response body into a generic map
func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

// errorCode extracts error.code from a decoded response body
func errorCode(t *testing.T, body map[string]any) string {
	t.Helper()

	errObj, ok := body["error"].(map[string]any)
	require.True(t, ok, "response must carry an error object")
	code, _ := errObj["code"].(string)
	return code
}
