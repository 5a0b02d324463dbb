package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mps-cell/mps-dashboard/models"
	"github.com/mps-cell/mps-dashboard/services"
	"github.com/mps-cell/mps-dashboard/utils"
	"github.com/mps-cell/mps-dashboard/views"
)

// CreateOrderRequest represents the request body for creating an order
type CreateOrderRequest struct {
	OrderName string `json:"orderName"`
	Color     string `json:"color"`
	Quantity  int    `json:"quantity"`
}

// GetOrders handles GET /api/v1/orders - returns the orders page state
func GetOrders(c *gin.Context) {
	view := views.GetOrdersView()

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    view.State(),
	})
}

// CreateOrder handles POST /api/v1/orders - runs the order submission
// flow: updates the draft with the request body, then submits it
func CreateOrder(c *gin.Context) {
	var req CreateOrderRequest
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

	view := views.GetOrdersView()
	view.UpdateDraft(models.OrderForm{
		OrderName: req.OrderName,
		Color:     req.Color,
		Quantity:  req.Quantity,
	})

	if err := view.Submit(c.Request.Context()); err != nil {
		respondSubmitError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    view.State(),
	})
}

// DismissLoginPrompt handles POST /api/v1/orders/login-prompt/dismiss -
// lowers the login prompt without logging in
func DismissLoginPrompt(c *gin.Context) {
	view := views.GetOrdersView()
	view.DismissLoginPrompt()

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    view.State(),
	})
}

// respondSubmitError maps a submission failure onto the response taxonomy
func respondSubmitError(c *gin.Context, err error) {
	if errors.Is(err, views.ErrLoginRequired) {
		c.JSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "LOGIN_REQUIRED",
				"message": "Autenticação necessária para criar ordens",
			},
		})
		return
	}

	var validation *utils.ValidationError
	if errors.As(err, &validation) {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    validation.Code,
				"message": validation.Message,
			},
		})
		return
	}

	if services.IsSessionExpired(err) {
		c.JSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "SESSION_EXPIRED",
				"message": "Sessão expirada! Faça login novamente.",
			},
		})
		return
	}

	c.JSON(http.StatusBadGateway, gin.H{
		"success": false,
		"error": gin.H{
			"code":    "ORDER_CREATE_FAILED",
			"message": "Erro ao criar ordem. Tente novamente.",
		},
	})
}
