// internal/interfaces/http/handlers/checkout.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/your-org/storefront-backend/internal/config"
	"github.com/your-org/storefront-backend/internal/domain/cart"
	"github.com/your-org/storefront-backend/internal/domain/checkout"
	"github.com/your-org/storefront-backend/internal/domain/payment"
	"github.com/your-org/storefront-backend/internal/domain/voucher"
	"gorm.io/gorm"
)

// CheckoutHandler handles checkout endpoints
type CheckoutHandler struct {
	checkoutService *checkout.Service
	config          *config.Config
}

// NewCheckoutHandler creates a new checkout handler
func NewCheckoutHandler(db *gorm.DB, redisClient *redis.Client, cfg *config.Config) *CheckoutHandler {
	cartService := cart.NewService(db, redisClient, cfg)
	voucherService := voucher.NewService(db, cfg)
	paymentService := payment.NewService(db, cfg)

	return &CheckoutHandler{
		checkoutService: checkout.NewService(cartService, voucherService, paymentService, redisClient, cfg),
		config:          cfg,
	}
}

// GetShippingMethods handles GET /checkout/shipping-methods
func (h *CheckoutHandler) GetShippingMethods(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "Shipping methods retrieved successfully",
		"data":    checkout.ShippingMethods(),
	})
}

// GetSummary handles GET /checkout/summary
func (h *CheckoutHandler) GetSummary(c *gin.Context) {
	sessionID := h.sessionID(c)

	summary, err := h.checkoutService.GetSummary(c.Request.Context(), sessionID, c.Query("shipping_method"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Checkout summary retrieved successfully",
		"data":    summary,
	})
}

// ValidateCheckout handles POST /checkout/validate
func (h *CheckoutHandler) ValidateCheckout(c *gin.Context) {
	sessionID := h.sessionID(c)

	var req checkout.ValidateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	result, err := h.checkoutService.ValidateCheckout(c.Request.Context(), sessionID, &req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to validate checkout",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Checkout validated",
		"data":    result,
	})
}

// ApplyVoucher handles POST /checkout/voucher
func (h *CheckoutHandler) ApplyVoucher(c *gin.Context) {
	sessionID := h.sessionID(c)

	var req struct {
		Code string `json:"code" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	applied, err := h.checkoutService.ApplyVoucher(c.Request.Context(), sessionID, req.Code)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Voucher applied successfully",
		"data":    applied,
	})
}

// RemoveVoucher handles DELETE /checkout/voucher
func (h *CheckoutHandler) RemoveVoucher(c *gin.Context) {
	sessionID := h.sessionID(c)

	if err := h.checkoutService.RemoveVoucher(c.Request.Context(), sessionID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to remove voucher",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Voucher removed successfully",
	})
}

// sessionID reads the shopper's session cookie, creating one when missing
func (h *CheckoutHandler) sessionID(c *gin.Context) string {
	sessionID, err := c.Cookie("session_id")
	if err != nil || sessionID == "" {
		sessionID = uuid.New().String()
		c.SetCookie("session_id", sessionID, int(h.config.Store.CartTTL.Seconds()), "/", "", false, true)
	}

	return sessionID
}
