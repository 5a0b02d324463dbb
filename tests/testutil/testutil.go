package testutil

import (
	"os"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/mps-cell/mps-dashboard/controllers"
	"github.com/mps-cell/mps-dashboard/middleware"
)

// RequireTestEnvironment ensures that tests are running in the test environment.
// It will fail the test immediately if GO_ENV is not set to "test".
func RequireTestEnvironment(t *testing.T) {
	t.Helper()

	env := os.Getenv("GO_ENV")
	if env != "test" {
		t.Fatalf("SAFETY CHECK FAILED: Tests must run with GO_ENV=test. Current GO_ENV=%q. Set GO_ENV=test before running tests.", env)
	}
}

// MustSetTestEnvironment sets GO_ENV to test and fails if it cannot be set.
// Use this in TestMain or suite setup functions.
func MustSetTestEnvironment(t *testing.T) {
	t.Helper()

	if err := os.Setenv("GO_ENV", "test"); err != nil {
		t.Fatalf("Failed to set GO_ENV=test: %v", err)
	}
}

// NewRouter assembles the API routes the way the server does, without
// CORS or the listening socket, for driving end-to-end tests
func NewRouter() *gin.Engine {
	router := gin.New()
	router.Use(middleware.RequestLogger())
	router.Use(gin.Recovery())

	v1 := router.Group("/api/v1")
	{
		v1.GET("/dashboard", controllers.GetDashboard)
		v1.POST("/dashboard/pieces/next-page", controllers.NextPiecesPage)
		v1.POST("/dashboard/pieces/previous-page", controllers.PreviousPiecesPage)
		v1.PUT("/dashboard/pieces/date-filter", controllers.SetDateFilter)
		v1.DELETE("/dashboard/pieces/date-filter", controllers.ClearDateFilter)

		v1.GET("/orders", controllers.GetOrders)
		v1.POST("/orders", controllers.CreateOrder)
		v1.POST("/orders/login-prompt/dismiss", controllers.DismissLoginPrompt)

		v1.POST("/login", controllers.Login)
		v1.POST("/logout", controllers.Logout)

		v1.GET("/monitoring", controllers.GetMonitoring)
		v1.GET("/video-feed", controllers.GetVideoFeed)
	}

	return router
}
