package integration

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"

	"github.com/mps-cell/mps-dashboard/services"
	"github.com/mps-cell/mps-dashboard/session"
	"github.com/mps-cell/mps-dashboard/tests/testutil"
	"github.com/mps-cell/mps-dashboard/views"
)

// MonitoringIntegrationTestSuite drives the monitoring page through the
// real camera service against a fake camera server
type MonitoringIntegrationTestSuite struct {
	suite.Suite
	router *gin.Engine
	camera *testutil.FakeCameraServer
}

// SetupSuite runs once before all tests
func (suite *MonitoringIntegrationTestSuite) SetupSuite() {
	gin.SetMode(gin.TestMode)
	os.Setenv("GO_ENV", "test")
}

// SetupTest runs before each test
func (suite *MonitoringIntegrationTestSuite) SetupTest() {
	suite.camera = testutil.NewFakeCameraServer()

	session.InitStore(session.NewMockStorage())
	services.InitCameraService(suite.camera.URL())

	mps := services.NewMockMPSService()
	mps.SetAsMockForTesting()

	views.SetDashboardView(views.NewDashboardView(time.Hour, 8))
	views.SetOrdersView(views.NewOrdersView(time.Hour))
	views.SetMonitoringView(views.NewMonitoringView(time.Hour))

	suite.router = testutil.NewRouter()
}

// TearDownTest runs after each test
func (suite *MonitoringIntegrationTestSuite) TearDownTest() {
	suite.camera.Close()
}

// TestMonitoring_OnlineFlagTracksCamera checks the online flag against
// the real status endpoint
func (suite *MonitoringIntegrationTestSuite) TestMonitoring_OnlineFlagTracksCamera() {
	suite.NoError(views.GetMonitoringView().Refresh(context.Background()))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/monitoring", nil)
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusOK, w.Code)
	assert.Contains(suite.T(), w.Body.String(), `"online":true`)

	// Camera closes; the next refresh flips the flag
	suite.camera.SetOpen(false)
	suite.NoError(views.GetMonitoringView().Refresh(context.Background()))

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/api/v1/monitoring", nil)
	suite.router.ServeHTTP(w, req)
	assert.Contains(suite.T(), w.Body.String(), `"online":false`)
}

// TestMonitoring_UnreachableCameraFailsSafe checks that a dead camera
// server marks the feed offline
func (suite *MonitoringIntegrationTestSuite) TestMonitoring_UnreachableCameraFailsSafe() {
	suite.NoError(views.GetMonitoringView().Refresh(context.Background()))
	suite.True(views.GetMonitoringView().Online())

	suite.camera.Close()
	assert.Error(suite.T(), views.GetMonitoringView().Refresh(context.Background()))
	assert.False(suite.T(), views.GetMonitoringView().Online())
}

// TestVideoFeed_PassesStreamThrough checks the feed proxy end to end
func (suite *MonitoringIntegrationTestSuite) TestVideoFeed_PassesStreamThrough() {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/video-feed", nil)
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusOK, w.Code)
	assert.Contains(suite.T(), w.Header().Get("Content-Type"), "multipart/x-mixed-replace")

	body, err := io.ReadAll(w.Body)
	suite.NoError(err)
	assert.Equal(suite.T(), "mjpeg-frame", string(body))
}

// TestVideoFeed_CameraDownReturnsBadGateway checks the feed error path
func (suite *MonitoringIntegrationTestSuite) TestVideoFeed_CameraDownReturnsBadGateway() {
	suite.camera.Close()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/video-feed", nil)
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusBadGateway, w.Code)
	assert.Contains(suite.T(), w.Body.String(), "FEED_UNAVAILABLE")
}

// TestMonitoringIntegrationSuite runs the test suite
func TestMonitoringIntegrationSuite(t *testing.T) {
	suite.Run(t, new(MonitoringIntegrationTestSuite))
}
