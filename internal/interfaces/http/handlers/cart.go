// internal/interfaces/http/handlers/cart.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/your-org/storefront-backend/internal/config"
	"github.com/your-org/storefront-backend/internal/domain/cart"
	"gorm.io/gorm"
)

// CartHandler handles cart endpoints. Carts are keyed by a session cookie;
// no account is needed to shop.
type CartHandler struct {
	cartService *cart.Service
	config      *config.Config
}

// NewCartHandler creates a new cart handler
func NewCartHandler(db *gorm.DB, redisClient *redis.Client, cfg *config.Config) *CartHandler {
	return &CartHandler{
		cartService: cart.NewService(db, redisClient, cfg),
		config:      cfg,
	}
}

// GetCart handles GET /cart
func (h *CartHandler) GetCart(c *gin.Context) {
	sessionID := h.getOrCreateSessionID(c)

	cartResponse, err := h.cartService.GetCart(c.Request.Context(), sessionID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to retrieve cart",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Cart retrieved successfully",
		"data":    cartResponse,
	})
}

// AddToCart handles POST /cart/items
func (h *CartHandler) AddToCart(c *gin.Context) {
	sessionID := h.getOrCreateSessionID(c)

	var req cart.AddToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	cartResponse, err := h.cartService.AddToCart(c.Request.Context(), sessionID, &req)
	if err != nil {
		c.JSON(cartErrorStatus(err), gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Item added to cart successfully",
		"data":    cartResponse,
	})
}

// UpdateCartItem handles PUT /cart/items/:id
func (h *CartHandler) UpdateCartItem(c *gin.Context) {
	sessionID := h.getOrCreateSessionID(c)

	var req cart.UpdateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	cartResponse, err := h.cartService.UpdateItem(c.Request.Context(), sessionID, c.Param("id"), *req.Quantity)
	if err != nil {
		c.JSON(cartErrorStatus(err), gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Cart item updated successfully",
		"data":    cartResponse,
	})
}

// RemoveCartItem handles DELETE /cart/items/:id
func (h *CartHandler) RemoveCartItem(c *gin.Context) {
	sessionID := h.getOrCreateSessionID(c)

	cartResponse, err := h.cartService.RemoveItem(c.Request.Context(), sessionID, c.Param("id"))
	if err != nil {
		c.JSON(cartErrorStatus(err), gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Item removed from cart successfully",
		"data":    cartResponse,
	})
}

// ClearCart handles DELETE /cart
func (h *CartHandler) ClearCart(c *gin.Context) {
	sessionID := h.getOrCreateSessionID(c)

	if err := h.cartService.ClearCart(c.Request.Context(), sessionID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to clear cart",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Cart cleared successfully",
	})
}

// GetCartCount handles GET /cart/count
func (h *CartHandler) GetCartCount(c *gin.Context) {
	sessionID := h.getOrCreateSessionID(c)

	count, err := h.cartService.ItemCount(c.Request.Context(), sessionID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to retrieve cart count",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Cart count retrieved successfully",
		"data": gin.H{
			"count": count,
		},
	})
}

// cartErrorStatus maps cart errors to HTTP status codes. Business-rule
// rejections are client errors; anything else is a server fault.
func cartErrorStatus(err error) int {
	if cart.IsBusinessError(err) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// getOrCreateSessionID gets session ID from cookie or creates a new one
func (h *CartHandler) getOrCreateSessionID(c *gin.Context) string {
	sessionID, err := c.Cookie("session_id")
	if err != nil || sessionID == "" {
		sessionID = uuid.New().String()
		c.SetCookie("session_id", sessionID, int(h.config.Store.CartTTL.Seconds()), "/", "", false, true)
	}

	return sessionID
}
