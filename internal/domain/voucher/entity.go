// internal/domain/voucher/entity.go
package voucher

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DiscountType enumerates how a voucher's value is interpreted
type DiscountType string

const (
	DiscountPercentage DiscountType = "percentage"
	DiscountFixed      DiscountType = "fixed"
)

// Voucher represents a discount code. Value is a percent for percentage
// vouchers and a minor-unit amount for fixed vouchers. MaxUses nil means
// unlimited; MinOrderAmount zero means no floor.
type Voucher struct {
	ID             string         `json:"id" gorm:"type:varchar(36);primaryKey"`
	Code           string         `json:"code" gorm:"uniqueIndex;not null"`
	Description    string         `json:"description"`
	DiscountType   DiscountType   `json:"discount_type" gorm:"type:varchar(20);not null"`
	Value          int64          `json:"value" gorm:"not null"`
	MinOrderAmount int64          `json:"min_order_amount" gorm:"default:0"`
	MaxUses        *int           `json:"max_uses"`
	UsedCount      int            `json:"used_count" gorm:"default:0"`
	IsActive       bool           `json:"is_active" gorm:"default:true"`
	ExpiresAt      *time.Time     `json:"expires_at"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `json:"-" gorm:"index"`
}

// TableName overrides table name
func (Voucher) TableName() string {
	return "vouchers"
}

// BeforeCreate sets UUID
func (v *Voucher) BeforeCreate(tx *gorm.DB) error {
	if v.ID == "" {
		v.ID = uuid.New().String()
	}
	v.Code = CanonicalCode(v.Code)
	return nil
}

// CanonicalCode normalizes a user-entered code for lookup: trimmed and
// uppercased, so "save10" and " SAVE10 " name the same voucher.
func CanonicalCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// Validation failures, checked in a fixed order so the shopper always sees
// the most specific reason first.
var (
	ErrInvalidCode = errors.New("invalid voucher code")
	ErrExpired     = errors.New("this voucher has expired")
	ErrUsageLimit  = errors.New("this voucher has reached its usage limit")
	ErrNotActive   = errors.New("this voucher is no longer active")
)

// MinOrderError reports an order subtotal below the voucher's floor,
// carrying the shortfall so the caller can tell the shopper how much more
// to add.
type MinOrderError struct {
	Required  int64
	Subtotal  int64
	Shortfall int64
}

func (e *MinOrderError) Error() string {
	return fmt.Sprintf("minimum order amount of %d not met; add %d more to use this voucher", e.Required, e.Shortfall)
}

// Validate checks whether the voucher can be applied to an order with the
// given subtotal at the given time. Checks run in order: expiry, usage
// limit, active flag, minimum order amount.
func (v *Voucher) Validate(subtotal int64, now time.Time) error {
	if v.ExpiresAt != nil && now.After(*v.ExpiresAt) {
		return ErrExpired
	}
	if v.MaxUses != nil && v.UsedCount >= *v.MaxUses {
		return ErrUsageLimit
	}
	if !v.IsActive {
		return ErrNotActive
	}
	if v.MinOrderAmount > 0 && subtotal < v.MinOrderAmount {
		return &MinOrderError{
			Required:  v.MinOrderAmount,
			Subtotal:  subtotal,
			Shortfall: v.MinOrderAmount - subtotal,
		}
	}
	return nil
}

// Discount computes the voucher's discount against a subtotal. Percentage
// vouchers take value percent of the subtotal with integer truncation;
// fixed vouchers take their value capped at the subtotal so the result
// never exceeds what is owed.
func (v *Voucher) Discount(subtotal int64) int64 {
	switch v.DiscountType {
	case DiscountPercentage:
		return subtotal * v.Value / 100
	case DiscountFixed:
		if v.Value > subtotal {
			return subtotal
		}
		return v.Value
	default:
		return 0
	}
}
