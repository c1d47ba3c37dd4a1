// internal/interfaces/http/handlers/voucher.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/your-org/storefront-backend/internal/config"
	"github.com/your-org/storefront-backend/internal/domain/voucher"
	"gorm.io/gorm"
)

// VoucherHandler handles admin voucher endpoints
type VoucherHandler struct {
	voucherService *voucher.Service
	config         *config.Config
}

// NewVoucherHandler creates a new voucher handler
func NewVoucherHandler(db *gorm.DB, cfg *config.Config) *VoucherHandler {
	return &VoucherHandler{
		voucherService: voucher.NewService(db, cfg),
		config:         cfg,
	}
}

// AdminGetVouchers handles GET /admin/vouchers
func (h *VoucherHandler) AdminGetVouchers(c *gin.Context) {
	vouchers, err := h.voucherService.GetVouchers()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to retrieve vouchers",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Vouchers retrieved successfully",
		"data":    vouchers,
	})
}

// AdminGetVoucher handles GET /admin/vouchers/:id
func (h *VoucherHandler) AdminGetVoucher(c *gin.Context) {
	v, err := h.voucherService.GetVoucher(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Voucher not found",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Voucher retrieved successfully",
		"data":    v,
	})
}

// AdminCreateVoucher handles POST /admin/vouchers
func (h *VoucherHandler) AdminCreateVoucher(c *gin.Context) {
	var req voucher.CreateVoucherRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	v, err := h.voucherService.CreateVoucher(&req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Voucher created successfully",
		"data":    v,
	})
}

// AdminUpdateVoucher handles PUT /admin/vouchers/:id
func (h *VoucherHandler) AdminUpdateVoucher(c *gin.Context) {
	var req voucher.UpdateVoucherRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	v, err := h.voucherService.UpdateVoucher(c.Param("id"), &req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Voucher updated successfully",
		"data":    v,
	})
}

// AdminDeleteVoucher handles DELETE /admin/vouchers/:id
func (h *VoucherHandler) AdminDeleteVoucher(c *gin.Context) {
	if err := h.voucherService.DeleteVoucher(c.Param("id")); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Voucher deleted successfully",
	})
}
