// internal/domain/order/service.go
package order

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront-backend/internal/config"
	"github.com/your-org/storefront-backend/internal/domain/cart"
	"github.com/your-org/storefront-backend/internal/domain/checkout"
	"github.com/your-org/storefront-backend/internal/domain/payment"
	"github.com/your-org/storefront-backend/internal/domain/voucher"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Service places and manages orders
type Service struct {
	db              *gorm.DB
	cartService     *cart.Service
	checkoutService *checkout.Service
	voucherService  *voucher.Service
	paymentService  *payment.Service
	config          *config.Config
}

// NewService creates a new order service
func NewService(
	db *gorm.DB,
	cartService *cart.Service,
	checkoutService *checkout.Service,
	voucherService *voucher.Service,
	paymentService *payment.Service,
	cfg *config.Config,
) *Service {
	return &Service{
		db:              db,
		cartService:     cartService,
		checkoutService: checkoutService,
		voucherService:  voucherService,
		paymentService:  paymentService,
		config:          cfg,
	}
}

// PlaceOrderRequest carries the checkout form
type PlaceOrderRequest struct {
	CustomerName    string `json:"customer_name" binding:"required"`
	ContactNumber   string `json:"contact_number" binding:"required"`
	Email           string `json:"email" binding:"omitempty,email"`
	Street          string `json:"street" binding:"required"`
	City            string `json:"city" binding:"required"`
	Province        string `json:"province" binding:"required"`
	PostalCode      string `json:"postal_code" binding:"required"`
	Country         string `json:"country"`
	ShippingMethod  string `json:"shipping_method" binding:"required"`
	PaymentMethodID string `json:"payment_method_id" binding:"required"`
	Notes           string `json:"notes"`
}

// PlaceOrderResult is what the shopper gets back: the persisted order plus
// the chat handoff link.
type PlaceOrderResult struct {
	Order        *Order `json:"order"`
	Message      string `json:"message"`
	MessengerURL string `json:"messenger_url"`
}

// generateOrderNumber builds a human-quotable order number from the date
// and the clock's trailing digits, e.g. 20260831-4821.
func generateOrderNumber(now time.Time) string {
	return fmt.Sprintf("%s-%04d", now.Format("20060102"), now.UnixMilli()%10000)
}

// PlaceOrder turns the session's cart into a persisted order. The order,
// its items and the voucher redemption commit in one transaction; the cart
// and applied voucher are cleared only after the transaction commits, so a
// failed placement leaves the session able to retry.
func (s *Service) PlaceOrder(ctx context.Context, sessionID string, req *PlaceOrderRequest) (*PlaceOrderResult, error) {
	c, err := s.cartService.GetCart(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if c.IsEmpty() {
		return nil, fmt.Errorf("cart is empty")
	}

	method := checkout.ShippingMethodByID(req.ShippingMethod)
	if method == nil {
		return nil, fmt.Errorf("unknown shipping method")
	}

	paymentMethod, err := s.paymentService.GetActiveMethod(req.PaymentMethodID)
	if err != nil {
		return nil, err
	}

	subtotal := c.TotalPrice()

	var appliedVoucher *voucher.Voucher
	var discount int64
	applied, err := s.checkoutService.AppliedVoucher(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if applied != nil {
		v, d, err := s.voucherService.Apply(applied.Code, subtotal)
		if err != nil {
			return nil, fmt.Errorf("voucher no longer valid: %w", err)
		}
		appliedVoucher = v
		discount = d
	}

	country := req.Country
	if country == "" {
		country = "Philippines"
	}

	o := &Order{
		CustomerName:    req.CustomerName,
		ContactNumber:   req.ContactNumber,
		Email:           req.Email,
		Street:          req.Street,
		City:            req.City,
		Province:        req.Province,
		PostalCode:      req.PostalCode,
		Country:         country,
		ShippingMethod:  method.ID,
		ShippingFee:     method.Fee,
		Subtotal:        subtotal,
		VoucherDiscount: discount,
		TotalAmount:     checkout.OrderTotal(subtotal, discount, method.Fee),
		PaymentMethod:   paymentMethod.Name,
		Notes:           req.Notes,
		Status:          StatusPending,
	}
	if appliedVoucher != nil {
		o.VoucherID = &appliedVoucher.ID
		o.VoucherCode = &appliedVoucher.Code
	}

	items, err := buildOrderItems(c)
	if err != nil {
		return nil, err
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		o.OrderNumber = generateOrderNumber(time.Now().UTC())
		if err := tx.Create(o).Error; err != nil {
			return fmt.Errorf("failed to create order: %w", err)
		}

		for i := range items {
			items[i].OrderID = o.ID
		}
		if err := tx.Create(&items).Error; err != nil {
			return fmt.Errorf("failed to create order items: %w", err)
		}

		if appliedVoucher != nil {
			if err := s.voucherService.Redeem(tx, appliedVoucher.ID); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	o.Items = items

	// Best effort cleanup; a leftover cart expires with its TTL anyway.
	if err := s.cartService.ClearCart(ctx, sessionID); err != nil {
		logrus.WithError(err).WithField("session_id", sessionID).Warn("failed to clear cart after order placement")
	}
	if err := s.checkoutService.RemoveVoucher(ctx, sessionID); err != nil {
		logrus.WithError(err).WithField("session_id", sessionID).Warn("failed to clear applied voucher after order placement")
	}

	message := BuildMessage(s.config.Store.Name, s.config.Store.CurrencySymbol, o)
	return &PlaceOrderResult{
		Order:        o,
		Message:      message,
		MessengerURL: MessengerURL(s.config.Store.MessengerPageID, message),
	}, nil
}

// buildOrderItems freezes cart lines into order items
func buildOrderItems(c *cart.Cart) ([]OrderItem, error) {
	items := make([]OrderItem, 0, len(c.Lines))
	for _, line := range c.Lines {
		item := OrderItem{
			ProductID:          line.Product.ID,
			ProductName:        line.Product.Name,
			ProductDescription: line.Product.Description,
			BasePrice:          line.Product.BasePrice,
			DiscountedPrice:    line.Product.DiscountedPrice,
			Quantity:           line.Quantity,
			ItemTotal:          line.LineTotal,
		}
		if line.SelectedVariation != nil {
			item.VariationID = &line.SelectedVariation.ID
			item.VariationName = &line.SelectedVariation.Name
			item.VariationPrice = line.SelectedVariation.Price
		}
		if len(line.SelectedAddOns) > 0 {
			data, err := json.Marshal(line.SelectedAddOns)
			if err != nil {
				return nil, fmt.Errorf("failed to encode add-ons: %w", err)
			}
			item.AddOns = datatypes.JSON(data)
		}
		items = append(items, item)
	}
	return items, nil
}

// OrderListRequest represents admin order list parameters
type OrderListRequest struct {
	Page   int    `form:"page"`
	Limit  int    `form:"limit"`
	Status string `form:"status"`
	Search string `form:"search"`
}

// Pagination represents pagination metadata
type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
}

// GetOrders returns orders for the admin panel, newest first
func (s *Service) GetOrders(req *OrderListRequest) ([]Order, *Pagination, error) {
	if req.Page < 1 {
		req.Page = 1
	}
	if req.Limit < 1 || req.Limit > 100 {
		req.Limit = 20
	}

	query := s.db.Model(&Order{})
	if req.Status != "" {
		if !Status(req.Status).IsValid() {
			return nil, nil, fmt.Errorf("invalid status filter")
		}
		query = query.Where("status = ?", req.Status)
	}
	if req.Search != "" {
		pattern := "%" + req.Search + "%"
		query = query.Where("order_number ILIKE ? OR customer_name ILIKE ? OR contact_number ILIKE ?", pattern, pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, nil, fmt.Errorf("failed to count orders: %w", err)
	}

	var orders []Order
	offset := (req.Page - 1) * req.Limit
	err := query.Order("created_at DESC").Offset(offset).Limit(req.Limit).Find(&orders).Error
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get orders: %w", err)
	}

	totalPages := int((total + int64(req.Limit) - 1) / int64(req.Limit))
	return orders, &Pagination{
		Page:       req.Page,
		Limit:      req.Limit,
		Total:      total,
		TotalPages: totalPages,
	}, nil
}

// GetOrderByNumber returns an order with its items, looked up by the
// number quoted on the handoff message. This is the storefront's only
// order read; the number is what the shopper holds after checkout.
func (s *Service) GetOrderByNumber(number string) (*Order, error) {
	var o Order
	err := s.db.Preload("Items").Where("order_number = ?", strings.TrimSpace(number)).First(&o).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("order not found")
		}
		return nil, fmt.Errorf("failed to get order: %w", err)
	}
	return &o, nil
}

// GetOrder returns an order with its items
func (s *Service) GetOrder(id string) (*Order, error) {
	var o Order
	err := s.db.Preload("Items").Where("id = ?", id).First(&o).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("order not found")
		}
		return nil, fmt.Errorf("failed to get order: %w", err)
	}
	return &o, nil
}

// UpdateStatus moves an order along its status lifecycle
func (s *Service) UpdateStatus(id string, status Status) (*Order, error) {
	if !status.IsValid() {
		return nil, fmt.Errorf("invalid status")
	}

	o, err := s.GetOrder(id)
	if err != nil {
		return nil, err
	}

	if !o.Status.CanTransitionTo(status) {
		return nil, fmt.Errorf("cannot move order from %s to %s", o.Status, status)
	}

	if err := s.db.Model(o).Update("status", status).Error; err != nil {
		return nil, fmt.Errorf("failed to update order status: %w", err)
	}
	o.Status = status
	return o, nil
}
