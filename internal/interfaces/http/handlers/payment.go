// internal/interfaces/http/handlers/payment.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/your-org/storefront-backend/internal/config"
	"github.com/your-org/storefront-backend/internal/domain/payment"
	"gorm.io/gorm"
)

// PaymentHandler handles payment method endpoints
type PaymentHandler struct {
	paymentService *payment.Service
	config         *config.Config
}

// NewPaymentHandler creates a new payment handler
func NewPaymentHandler(db *gorm.DB, cfg *config.Config) *PaymentHandler {
	return &PaymentHandler{
		paymentService: payment.NewService(db, cfg),
		config:         cfg,
	}
}

// GetPaymentMethods handles GET /payment-methods
func (h *PaymentHandler) GetPaymentMethods(c *gin.Context) {
	methods, err := h.paymentService.GetActiveMethods()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to retrieve payment methods",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Payment methods retrieved successfully",
		"data":    methods,
	})
}

// AdminGetPaymentMethods handles GET /admin/payment-methods
func (h *PaymentHandler) AdminGetPaymentMethods(c *gin.Context) {
	methods, err := h.paymentService.GetMethods()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to retrieve payment methods",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Payment methods retrieved successfully",
		"data":    methods,
	})
}

// AdminCreatePaymentMethod handles POST /admin/payment-methods
func (h *PaymentHandler) AdminCreatePaymentMethod(c *gin.Context) {
	var req payment.CreatePaymentMethodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	method, err := h.paymentService.CreateMethod(&req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Payment method created successfully",
		"data":    method,
	})
}

// AdminUpdatePaymentMethod handles PUT /admin/payment-methods/:id
func (h *PaymentHandler) AdminUpdatePaymentMethod(c *gin.Context) {
	var req payment.UpdatePaymentMethodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	method, err := h.paymentService.UpdateMethod(c.Param("id"), &req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Payment method updated successfully",
		"data":    method,
	})
}

// AdminDeletePaymentMethod handles DELETE /admin/payment-methods/:id
func (h *PaymentHandler) AdminDeletePaymentMethod(c *gin.Context) {
	if err := h.paymentService.DeleteMethod(c.Param("id")); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Payment method deleted successfully",
	})
}
