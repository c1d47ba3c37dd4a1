// internal/domain/voucher/service.go
package voucher

import (
	"errors"
	"fmt"
	"time"

	"github.com/your-org/storefront-backend/internal/config"
	"gorm.io/gorm"
)

// Service handles voucher business logic
type Service struct {
	db     *gorm.DB
	config *config.Config
}

// NewService creates a new voucher service
func NewService(db *gorm.DB, cfg *config.Config) *Service {
	return &Service{
		db:     db,
		config: cfg,
	}
}

// CreateVoucherRequest represents a voucher creation request
type CreateVoucherRequest struct {
	Code           string       `json:"code" binding:"required"`
	Description    string       `json:"description"`
	DiscountType   DiscountType `json:"discount_type" binding:"required,oneof=percentage fixed"`
	Value          int64        `json:"value" binding:"required,min=1"`
	MinOrderAmount int64        `json:"min_order_amount" binding:"min=0"`
	MaxUses        *int         `json:"max_uses"`
	ExpiresAt      *time.Time   `json:"expires_at"`
}

// UpdateVoucherRequest represents a voucher update; nil fields are left as is
type UpdateVoucherRequest struct {
	Description    *string      `json:"description"`
	DiscountType   DiscountType `json:"discount_type" binding:"omitempty,oneof=percentage fixed"`
	Value          *int64       `json:"value" binding:"omitempty,min=1"`
	MinOrderAmount *int64       `json:"min_order_amount" binding:"omitempty,min=0"`
	MaxUses        *int         `json:"max_uses"`
	IsActive       *bool        `json:"is_active"`
	ExpiresAt      *time.Time   `json:"expires_at"`
	ClearExpiry    bool         `json:"clear_expiry"`
	ClearMaxUses   bool         `json:"clear_max_uses"`
}

// Lookup loads a voucher by canonical code, including inactive and expired
// ones so validation can report the precise reason.
func (s *Service) Lookup(code string) (*Voucher, error) {
	canonical := CanonicalCode(code)
	if canonical == "" {
		return nil, ErrInvalidCode
	}

	var v Voucher
	if err := s.db.Where("code = ?", canonical).First(&v).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCode
		}
		return nil, fmt.Errorf("failed to look up voucher: %w", err)
	}
	return &v, nil
}

// Apply looks a voucher up by code and validates it against a subtotal,
// returning the voucher and the discount it would grant. A deactivated code
// is indistinguishable from an unknown one here.
func (s *Service) Apply(code string, subtotal int64) (*Voucher, int64, error) {
	canonical := CanonicalCode(code)
	if canonical == "" {
		return nil, 0, ErrInvalidCode
	}

	var v Voucher
	if err := s.db.Where("code = ? AND is_active = ?", canonical, true).First(&v).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, 0, ErrInvalidCode
		}
		return nil, 0, fmt.Errorf("failed to look up voucher: %w", err)
	}
	if err := v.Validate(subtotal, time.Now().UTC()); err != nil {
		return nil, 0, err
	}
	return &v, v.Discount(subtotal), nil
}

// Redeem consumes one use of the voucher inside the caller's transaction.
// The increment is conditional on the usage limit, so two concurrent
// checkouts racing for a voucher's last use cannot both win. A voucher that
// hits its limit is also deactivated.
func (s *Service) Redeem(tx *gorm.DB, voucherID string) error {
	result := tx.Model(&Voucher{}).
		Where("id = ? AND is_active = ? AND (max_uses IS NULL OR used_count < max_uses)", voucherID, true).
		Update("used_count", gorm.Expr("used_count + 1"))
	if result.Error != nil {
		return fmt.Errorf("failed to redeem voucher: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrUsageLimit
	}

	err := tx.Model(&Voucher{}).
		Where("id = ? AND max_uses IS NOT NULL AND used_count >= max_uses", voucherID).
		Update("is_active", false).Error
	if err != nil {
		return fmt.Errorf("failed to deactivate voucher: %w", err)
	}
	return nil
}

// GetVouchers returns all vouchers for the admin panel, newest first
func (s *Service) GetVouchers() ([]Voucher, error) {
	var vouchers []Voucher
	if err := s.db.Order("created_at DESC").Find(&vouchers).Error; err != nil {
		return nil, fmt.Errorf("failed to get vouchers: %w", err)
	}
	return vouchers, nil
}

// GetVoucher returns a voucher by id
func (s *Service) GetVoucher(id string) (*Voucher, error) {
	var v Voucher
	if err := s.db.Where("id = ?", id).First(&v).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("voucher not found")
		}
		return nil, fmt.Errorf("failed to get voucher: %w", err)
	}
	return &v, nil
}

// CreateVoucher creates a voucher from an admin request
func (s *Service) CreateVoucher(req *CreateVoucherRequest) (*Voucher, error) {
	canonical := CanonicalCode(req.Code)
	if canonical == "" {
		return nil, fmt.Errorf("voucher code required")
	}
	if req.DiscountType == DiscountPercentage && req.Value > 100 {
		return nil, fmt.Errorf("percentage value cannot exceed 100")
	}
	if req.MaxUses != nil && *req.MaxUses < 1 {
		return nil, fmt.Errorf("max uses must be at least 1")
	}

	var count int64
	s.db.Model(&Voucher{}).Where("code = ?", canonical).Count(&count)
	if count > 0 {
		return nil, fmt.Errorf("voucher code already exists")
	}

	v := &Voucher{
		Code:           canonical,
		Description:    req.Description,
		DiscountType:   req.DiscountType,
		Value:          req.Value,
		MinOrderAmount: req.MinOrderAmount,
		MaxUses:        req.MaxUses,
		IsActive:       true,
		ExpiresAt:      req.ExpiresAt,
	}
	if err := s.db.Create(v).Error; err != nil {
		return nil, fmt.Errorf("failed to create voucher: %w", err)
	}
	return v, nil
}

// UpdateVoucher applies an admin update. The code itself is immutable once
// created; delete and recreate to rename.
func (s *Service) UpdateVoucher(id string, req *UpdateVoucherRequest) (*Voucher, error) {
	v, err := s.GetVoucher(id)
	if err != nil {
		return nil, err
	}

	if req.Description != nil {
		v.Description = *req.Description
	}
	if req.DiscountType != "" {
		v.DiscountType = req.DiscountType
	}
	if req.Value != nil {
		v.Value = *req.Value
	}
	if v.DiscountType == DiscountPercentage && v.Value > 100 {
		return nil, fmt.Errorf("percentage value cannot exceed 100")
	}
	if req.MinOrderAmount != nil {
		v.MinOrderAmount = *req.MinOrderAmount
	}
	if req.ClearMaxUses {
		v.MaxUses = nil
	} else if req.MaxUses != nil {
		if *req.MaxUses < 1 {
			return nil, fmt.Errorf("max uses must be at least 1")
		}
		v.MaxUses = req.MaxUses
	}
	if req.IsActive != nil {
		v.IsActive = *req.IsActive
	}
	if req.ClearExpiry {
		v.ExpiresAt = nil
	} else if req.ExpiresAt != nil {
		v.ExpiresAt = req.ExpiresAt
	}

	if err := s.db.Save(v).Error; err != nil {
		return nil, fmt.Errorf("failed to update voucher: %w", err)
	}
	return v, nil
}

// DeleteVoucher soft deletes a voucher
func (s *Service) DeleteVoucher(id string) error {
	result := s.db.Where("id = ?", id).Delete(&Voucher{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete voucher: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("voucher not found")
	}
	return nil
}
