package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mps-cell/mps-dashboard/views"
)

// DateFilterRequest is the request body for setting the pieces date filter
type DateFilterRequest struct {
	DateFilter string `json:"date_filter" binding:"required"`
}

// GetDashboard handles GET /api/v1/dashboard - returns the latest
// dashboard snapshots with display derivations applied
func GetDashboard(c *gin.Context) {
	view := views.GetDashboardView()

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    view.State(),
	})
}

// NextPiecesPage handles POST /api/v1/dashboard/pieces/next-page -
// moves the pieces cursor forward (no-op on the last page)
func NextPiecesPage(c *gin.Context) {
	view := views.GetDashboardView()
	view.NextPage()

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"page":        view.Page(),
			"total_pages": view.TotalPages(),
		},
	})
}

// PreviousPiecesPage handles POST /api/v1/dashboard/pieces/previous-page -
// moves the pieces cursor back (no-op on page 1)
func PreviousPiecesPage(c *gin.Context) {
	view := views.GetDashboardView()
	view.PreviousPage()

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"page":        view.Page(),
			"total_pages": view.TotalPages(),
		},
	})
}

// SetDateFilter handles PUT /api/v1/dashboard/pieces/date-filter -
// sets the pieces date filter and resets the cursor to page 1
func SetDateFilter(c *gin.Context) {
	var req DateFilterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Invalid request data",
				"details": err.Error(),
			},
		})
		return
	}

	view := views.GetDashboardView()
	view.SetDateFilter(req.DateFilter)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"page":        view.Page(),
			"date_filter": view.DateFilter(),
		},
	})
}

// ClearDateFilter handles DELETE /api/v1/dashboard/pieces/date-filter -
// removes the pieces date filter and resets the cursor to page 1
func ClearDateFilter(c *gin.Context) {
	view := views.GetDashboardView()
	view.ClearDateFilter()

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"page":        view.Page(),
			"date_filter": view.DateFilter(),
		},
	})
}
