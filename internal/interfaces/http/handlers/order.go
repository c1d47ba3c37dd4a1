// internal/interfaces/http/handlers/order.go
package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/your-org/storefront-backend/internal/config"
	"github.com/your-org/storefront-backend/internal/domain/cart"
	"github.com/your-org/storefront-backend/internal/domain/checkout"
	"github.com/your-org/storefront-backend/internal/domain/order"
	"github.com/your-org/storefront-backend/internal/domain/payment"
	"github.com/your-org/storefront-backend/internal/domain/voucher"
	"github.com/your-org/storefront-backend/internal/pkg/pdf"
	"gorm.io/gorm"
)

// OrderHandler handles order endpoints
type OrderHandler struct {
	orderService *order.Service
	pdfService   *pdf.Service
	config       *config.Config
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(db *gorm.DB, redisClient *redis.Client, cfg *config.Config) *OrderHandler {
	cartService := cart.NewService(db, redisClient, cfg)
	voucherService := voucher.NewService(db, cfg)
	paymentService := payment.NewService(db, cfg)
	checkoutService := checkout.NewService(cartService, voucherService, paymentService, redisClient, cfg)

	return &OrderHandler{
		orderService: order.NewService(db, cartService, checkoutService, voucherService, paymentService, cfg),
		pdfService:   pdf.NewService(cfg),
		config:       cfg,
	}
}

// PlaceOrder handles POST /orders
func (h *OrderHandler) PlaceOrder(c *gin.Context) {
	sessionID := h.sessionID(c)

	var req order.PlaceOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	result, err := h.orderService.PlaceOrder(c.Request.Context(), sessionID, &req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Order placed successfully",
		"data":    result,
	})
}

// GetOrderByNumber handles GET /orders/:number, the storefront's order
// lookup by the number shown on the handoff message
func (h *OrderHandler) GetOrderByNumber(c *gin.Context) {
	o, err := h.orderService.GetOrderByNumber(c.Param("number"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Order not found",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Order retrieved successfully",
		"data":    o,
	})
}

// AdminGetOrders handles GET /admin/orders
func (h *OrderHandler) AdminGetOrders(c *gin.Context) {
	var req order.OrderListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid query parameters",
			"details": err.Error(),
		})
		return
	}

	orders, pagination, err := h.orderService.GetOrders(&req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to retrieve orders",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Orders retrieved successfully",
		"data": gin.H{
			"orders":     orders,
			"pagination": pagination,
		},
	})
}

// AdminGetOrder handles GET /admin/orders/:id
func (h *OrderHandler) AdminGetOrder(c *gin.Context) {
	o, err := h.orderService.GetOrder(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Order not found",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Order retrieved successfully",
		"data":    o,
	})
}

// AdminUpdateOrderStatus handles PUT /admin/orders/:id/status
func (h *OrderHandler) AdminUpdateOrderStatus(c *gin.Context) {
	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	o, err := h.orderService.UpdateStatus(c.Param("id"), order.Status(req.Status))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Order status updated successfully",
		"data":    o,
	})
}

// AdminDownloadInvoice handles GET /admin/orders/:id/invoice
func (h *OrderHandler) AdminDownloadInvoice(c *gin.Context) {
	o, err := h.orderService.GetOrder(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Order not found",
		})
		return
	}

	buf, err := h.pdfService.GenerateInvoice(o)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to generate invoice",
		})
		return
	}

	filename := fmt.Sprintf("invoice-%s.pdf", o.OrderNumber)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/pdf", buf.Bytes())
}

// sessionID reads the shopper's session cookie, creating one when missing
func (h *OrderHandler) sessionID(c *gin.Context) string {
	sessionID, err := c.Cookie("session_id")
	if err != nil || sessionID == "" {
		sessionID = uuid.New().String()
		c.SetCookie("session_id", sessionID, int(h.config.Store.CartTTL.Seconds()), "/", "", false, true)
	}

	return sessionID
}
