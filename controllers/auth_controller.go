package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mps-cell/mps-dashboard/services"
	"github.com/mps-cell/mps-dashboard/session"
	"github.com/mps-cell/mps-dashboard/views"
)

// LoginRequest represents the request body for logging in
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login handles POST /api/v1/login - authenticates against the MPS
// backend and persists the session on success
func Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Usuário e senha são obrigatórios",
				"details": err.Error(),
			},
		})
		return
	}

	login, err := services.GetMPSService().Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		var server *services.ServerError
		if errors.As(err, &server) && server.StatusCode < 500 {
			message := server.Message
			if message == "" {
				message = "Usuário ou senha inválidos"
			}
			c.JSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "INVALID_CREDENTIALS",
					"message": message,
				},
			})
			return
		}

		c.JSON(http.StatusBadGateway, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "LOGIN_FAILED",
				"message": "Erro ao conectar com o servidor",
			},
		})
		return
	}

	if err := session.GetStore().SetSession(login.AccessToken, login.User); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "SESSION_ERROR",
				"message": "Failed to persist session",
			},
		})
		return
	}

	views.GetOrdersView().HandleLoginSuccess()

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"user": login.User,
		},
	})
}

// Logout handles POST /api/v1/logout - clears the persisted session
func Logout(c *gin.Context) {
	if err := session.GetStore().ClearSession(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "SESSION_ERROR",
				"message": "Failed to clear session",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Logout realizado com sucesso",
	})
}
