package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mps-cell/mps-dashboard/services"
	"github.com/mps-cell/mps-dashboard/views"
)

// GetMonitoring handles GET /api/v1/monitoring - returns the camera
// online flag
func GetMonitoring(c *gin.Context) {
	view := views.GetMonitoringView()

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    view.State(),
	})
}

// GetVideoFeed handles GET /api/v1/video-feed - streams the camera
// feed through to the caller
func GetVideoFeed(c *gin.Context) {
	feed, err := services.GetCameraService().Feed(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "FEED_UNAVAILABLE",
				"message": "Câmera indisponível",
			},
		})
		return
	}
	defer feed.Body.Close()

	contentType := feed.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "multipart/x-mixed-replace"
	}

	// The stream has no length; it runs until the viewer disconnects
	c.DataFromReader(http.StatusOK, -1, contentType, feed.Body, nil)
}
