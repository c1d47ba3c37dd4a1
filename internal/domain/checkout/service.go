// internal/domain/checkout/service.go
package checkout

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/your-org/storefront-backend/internal/config"
	"github.com/your-org/storefront-backend/internal/domain/cart"
	"github.com/your-org/storefront-backend/internal/domain/payment"
	"github.com/your-org/storefront-backend/internal/domain/voucher"
)

// Service assembles checkout state for a session: the cart, the chosen
// voucher and the shipping options, priced into a summary the storefront
// renders before the shopper places the order.
type Service struct {
	cartService    *cart.Service
	voucherService *voucher.Service
	paymentService *payment.Service
	redisClient    *redis.Client
	config         *config.Config
}

// NewService creates a new checkout service
func NewService(cartService *cart.Service, voucherService *voucher.Service, paymentService *payment.Service, redisClient *redis.Client, cfg *config.Config) *Service {
	return &Service{
		cartService:    cartService,
		voucherService: voucherService,
		paymentService: paymentService,
		redisClient:    redisClient,
		config:         cfg,
	}
}

// AppliedVoucher is the voucher state held per session between applying a
// code and placing the order.
type AppliedVoucher struct {
	VoucherID string `json:"voucher_id"`
	Code      string `json:"code"`
	Discount  int64  `json:"discount"`
}

// Summary is the priced checkout state returned to the storefront
type Summary struct {
	Cart           *cart.Cart      `json:"cart"`
	Subtotal       int64           `json:"subtotal"`
	Voucher        *AppliedVoucher `json:"voucher,omitempty"`
	ShippingMethod *ShippingMethod `json:"shipping_method,omitempty"`
	ShippingFee    int64           `json:"shipping_fee"`
	Total          int64           `json:"total"`
}

func voucherKey(sessionID string) string {
	return fmt.Sprintf("checkout:voucher:%s", sessionID)
}

// OrderTotal computes the amount owed: subtotal less discount plus shipping,
// never below zero.
func OrderTotal(subtotal, discount, shippingFee int64) int64 {
	total := subtotal - discount + shippingFee
	if total < 0 {
		return 0
	}
	return total
}

// ApplyVoucher validates a code against the session's cart subtotal and, on
// success, stores it as the session's applied voucher. Only one voucher can
// be applied at a time; applying a new one replaces the old.
func (s *Service) ApplyVoucher(ctx context.Context, sessionID, code string) (*AppliedVoucher, error) {
	c, err := s.cartService.GetCart(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if c.IsEmpty() {
		return nil, fmt.Errorf("cart is empty")
	}

	v, discount, err := s.voucherService.Apply(code, c.TotalPrice())
	if err != nil {
		return nil, err
	}

	applied := &AppliedVoucher{
		VoucherID: v.ID,
		Code:      v.Code,
		Discount:  discount,
	}
	data, err := json.Marshal(applied)
	if err != nil {
		return nil, fmt.Errorf("failed to encode applied voucher: %w", err)
	}
	if err := s.redisClient.Set(ctx, voucherKey(sessionID), data, s.config.Store.CartTTL).Err(); err != nil {
		return nil, fmt.Errorf("failed to save applied voucher: %w", err)
	}
	return applied, nil
}

// RemoveVoucher clears the session's applied voucher
func (s *Service) RemoveVoucher(ctx context.Context, sessionID string) error {
	if err := s.redisClient.Del(ctx, voucherKey(sessionID)).Err(); err != nil {
		return fmt.Errorf("failed to remove applied voucher: %w", err)
	}
	return nil
}

// AppliedVoucher returns the session's applied voucher, or nil when none
func (s *Service) AppliedVoucher(ctx context.Context, sessionID string) (*AppliedVoucher, error) {
	data, err := s.redisClient.Get(ctx, voucherKey(sessionID)).Result()
	if err == redis.Nil {
		return nil, nil
	} else if err != nil {
		return nil, fmt.Errorf("failed to load applied voucher: %w", err)
	}

	var applied AppliedVoucher
	if err := json.Unmarshal([]byte(data), &applied); err != nil {
		return nil, fmt.Errorf("failed to decode applied voucher: %w", err)
	}
	return &applied, nil
}

// GetSummary prices the session's checkout. The applied voucher is
// revalidated against the current subtotal: a cart edit that drops the
// subtotal below the voucher's floor, or a voucher exhausted in the
// meantime, silently drops the voucher from the summary.
func (s *Service) GetSummary(ctx context.Context, sessionID, shippingMethodID string) (*Summary, error) {
	c, err := s.cartService.GetCart(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	subtotal := c.TotalPrice()
	summary := &Summary{
		Cart:     c,
		Subtotal: subtotal,
	}

	applied, err := s.AppliedVoucher(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if applied != nil {
		v, err := s.voucherService.Lookup(applied.Code)
		if err == nil && v.Validate(subtotal, time.Now().UTC()) == nil {
			applied.Discount = v.Discount(subtotal)
			summary.Voucher = applied
		} else {
			_ = s.RemoveVoucher(ctx, sessionID)
		}
	}

	if shippingMethodID != "" {
		method := ShippingMethodByID(shippingMethodID)
		if method == nil {
			return nil, fmt.Errorf("unknown shipping method")
		}
		summary.ShippingMethod = method
		summary.ShippingFee = method.Fee
	}

	var discount int64
	if summary.Voucher != nil {
		discount = summary.Voucher.Discount
	}
	summary.Total = OrderTotal(subtotal, discount, summary.ShippingFee)
	return summary, nil
}

// ValidateRequest carries the checkout form for pre-flight validation
type ValidateRequest struct {
	CustomerName    string `json:"customer_name"`
	ContactNumber   string `json:"contact_number"`
	Email           string `json:"email"`
	Street          string `json:"street"`
	City            string `json:"city"`
	Province        string `json:"province"`
	PostalCode      string `json:"postal_code"`
	ShippingMethod  string `json:"shipping_method"`
	PaymentMethodID string `json:"payment_method_id"`
}

// ValidationResult reports whether the checkout form would be accepted.
// Errors block placement; warnings are advisory and do not.
type ValidationResult struct {
	Valid    bool     `json:"valid"`
	Errors   []string `json:"errors,omitempty"`
	Warnings []string `json:"warnings,omitempty"`
}

// validateDetails runs the checks that need no collaborators: the cart,
// the form fields, the shipping method and the stock snapshots.
func validateDetails(c *cart.Cart, req *ValidateRequest) *ValidationResult {
	result := &ValidationResult{}

	if c.IsEmpty() {
		result.Errors = append(result.Errors, "cart is empty")
	}

	required := []struct {
		value   string
		message string
	}{
		{req.CustomerName, "customer name is required"},
		{req.ContactNumber, "contact number is required"},
		{req.Street, "street is required"},
		{req.City, "city is required"},
		{req.Province, "province is required"},
		{req.PostalCode, "postal code is required"},
	}
	for _, field := range required {
		if strings.TrimSpace(field.value) == "" {
			result.Errors = append(result.Errors, field.message)
		}
	}

	if req.Email != "" && !strings.Contains(req.Email, "@") {
		result.Errors = append(result.Errors, "email address is invalid")
	}

	if req.ShippingMethod == "" {
		result.Errors = append(result.Errors, "shipping method is required")
	} else if ShippingMethodByID(req.ShippingMethod) == nil {
		result.Errors = append(result.Errors, "unknown shipping method")
	}

	if req.PaymentMethodID == "" {
		result.Errors = append(result.Errors, "payment method is required")
	}

	// Stock checks stay advisory; nothing is reserved until the order lands
	for i := range c.Lines {
		line := &c.Lines[i]
		if available := line.AvailableStock(); line.Quantity > available {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("only %d of %s in stock", available, line.Product.Name))
		}
	}

	return result
}

// ValidateCheckout dry-runs the checkout form against the session's cart
// so the storefront can surface problems before the shopper places the
// order.
func (s *Service) ValidateCheckout(ctx context.Context, sessionID string, req *ValidateRequest) (*ValidationResult, error) {
	c, err := s.cartService.GetCart(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	result := validateDetails(c, req)

	if req.PaymentMethodID != "" {
		if _, err := s.paymentService.GetActiveMethod(req.PaymentMethodID); err != nil {
			result.Errors = append(result.Errors, "payment method not found or inactive")
		}
	}

	result.Valid = len(result.Errors) == 0
	return result, nil
}
