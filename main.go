package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/mps-cell/mps-dashboard/config"
	"github.com/mps-cell/mps-dashboard/controllers"
	"github.com/mps-cell/mps-dashboard/middleware"
	"github.com/mps-cell/mps-dashboard/services"
	"github.com/mps-cell/mps-dashboard/session"
	"github.com/mps-cell/mps-dashboard/views"
)

func main() {
	// Basic logging
	log.Println("Starting MPS dashboard server...")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Open the persisted session store
	storage, err := session.NewGormStorage(cfg.SessionDBPath)
	if err != nil {
		log.Fatalf("Failed to open session store: %v", err)
	}
	sessions := session.InitStore(storage)

	// Initialize backend services
	services.InitMPSService(cfg.MPSAPIURL, sessions)
	services.InitCameraService(cfg.CameraURL)

	// Initialize the page views
	dashboard := views.InitDashboardView(cfg.DashboardPoll, cfg.PiecesPageSize)
	orders := views.InitOrdersView(cfg.OrdersPoll)
	monitoring := views.InitMonitoringView(cfg.CameraPoll)

	// The signal context bounds every polling schedule
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	dashboard.Mount(ctx)
	orders.Mount(ctx)
	monitoring.Mount(ctx)

	// Initialize the router
	router := setupRouter(cfg)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		log.Printf("Server is running on http://localhost:%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("Shutting down...")

	// Stop every polling schedule before closing the server
	dashboard.Unmount()
	orders.Unmount()
	monitoring.Unmount()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Forced shutdown: %v", err)
	}
	log.Println("Server stopped")
}

// setupRouter creates and configures the gin router with every
// dashboard endpoint
func setupRouter(cfg *config.Config) *gin.Engine {
	router := gin.New()
	router.Use(middleware.RequestLogger())
	router.Use(gin.Recovery())

	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Health check endpoint
		v1.GET("/health", healthCheck)

		// Dashboard page
		v1.GET("/dashboard", controllers.GetDashboard)
		v1.POST("/dashboard/pieces/next-page", controllers.NextPiecesPage)
		v1.POST("/dashboard/pieces/previous-page", controllers.PreviousPiecesPage)
		v1.PUT("/dashboard/pieces/date-filter", controllers.SetDateFilter)
		v1.DELETE("/dashboard/pieces/date-filter", controllers.ClearDateFilter)

		// Orders page
		v1.GET("/orders", controllers.GetOrders)
		v1.POST("/orders", controllers.CreateOrder)
		v1.POST("/orders/login-prompt/dismiss", controllers.DismissLoginPrompt)

		// Session
		v1.POST("/login", controllers.Login)
		v1.POST("/logout", controllers.Logout)

		// Monitoring page
		v1.GET("/monitoring", controllers.GetMonitoring)
		v1.GET("/video-feed", controllers.GetVideoFeed)
	}

	return router
}

// healthCheck handles the health check endpoint
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "MPS dashboard is running",
	})
}
