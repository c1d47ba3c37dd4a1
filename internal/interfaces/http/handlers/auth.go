// internal/interfaces/http/handlers/auth.go
package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront-backend/internal/config"
	"github.com/your-org/storefront-backend/internal/pkg/auth"
)

// AuthHandler handles the admin login. There are no shopper accounts; the
// storefront is anonymous and only the admin panel authenticates.
type AuthHandler struct {
	jwtManager      *auth.JWTManager
	passwordManager *auth.PasswordManager
	config          *config.Config
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(cfg *config.Config) *AuthHandler {
	return &AuthHandler{
		jwtManager:      auth.NewJWTManager(cfg),
		passwordManager: auth.NewPasswordManager(cfg),
		config:          cfg,
	}
}

// AdminLogin handles POST /admin/login
func (h *AuthHandler) AdminLogin(c *gin.Context) {
	var req struct {
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	if err := h.passwordManager.VerifyAdminPassword(req.Password); err != nil {
		logrus.WithField("client_ip", c.ClientIP()).Warn("failed admin login attempt")
		c.JSON(http.StatusUnauthorized, gin.H{
			"error": "Invalid password",
		})
		return
	}

	token, err := h.jwtManager.GenerateAdminToken()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to generate token",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Login successful",
		"data": gin.H{
			"token":      token,
			"expires_in": int(h.config.JWT.TokenExpiry / time.Second),
		},
	})
}
