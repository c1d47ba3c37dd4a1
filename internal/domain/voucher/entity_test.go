// internal/domain/voucher/entity_test.go
package voucher

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int { return &v }

func TestCanonicalCode(t *testing.T) {
	assert.Equal(t, "SAVE10", CanonicalCode("save10"))
	assert.Equal(t, "SAVE10", CanonicalCode("  Save10  "))
	assert.Equal(t, "", CanonicalCode("   "))
}

func TestValidateOrder(t *testing.T) {
	now := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)
	past := now.Add(-time.Hour)

	// an expired voucher that is also inactive and over its limit still
	// reports expiry first
	v := Voucher{
		Code:         "SAVE10",
		DiscountType: DiscountPercentage,
		Value:        10,
		MaxUses:      intPtr(1),
		UsedCount:    1,
		IsActive:     false,
		ExpiresAt:    &past,
	}
	assert.ErrorIs(t, v.Validate(100000, now), ErrExpired)

	v.ExpiresAt = nil
	assert.ErrorIs(t, v.Validate(100000, now), ErrUsageLimit)

	v.UsedCount = 0
	assert.ErrorIs(t, v.Validate(100000, now), ErrNotActive)

	v.IsActive = true
	v.MinOrderAmount = 150000
	err := v.Validate(100000, now)
	var minErr *MinOrderError
	require.ErrorAs(t, err, &minErr)
	assert.Equal(t, int64(150000), minErr.Required)
	assert.Equal(t, int64(50000), minErr.Shortfall)

	assert.NoError(t, v.Validate(150000, now))
}

func TestValidateExpiryBoundary(t *testing.T) {
	now := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)
	v := Voucher{DiscountType: DiscountFixed, Value: 1000, IsActive: true, ExpiresAt: &now}

	// valid at the exact expiry instant, invalid after
	assert.NoError(t, v.Validate(5000, now))
	assert.ErrorIs(t, v.Validate(5000, now.Add(time.Second)), ErrExpired)
}

func TestValidateSingleUseExhausted(t *testing.T) {
	v := Voucher{
		DiscountType: DiscountFixed,
		Value:        1000,
		MaxUses:      intPtr(1),
		UsedCount:    1,
		IsActive:     true,
	}
	assert.ErrorIs(t, v.Validate(5000, time.Now().UTC()), ErrUsageLimit)
}

func TestValidateUnlimitedUses(t *testing.T) {
	v := Voucher{
		DiscountType: DiscountFixed,
		Value:        1000,
		UsedCount:    99999,
		IsActive:     true,
	}
	assert.NoError(t, v.Validate(5000, time.Now().UTC()))
}

func TestDiscount(t *testing.T) {
	tests := []struct {
		name     string
		voucher  Voucher
		subtotal int64
		expected int64
	}{
		{
			name:     "percentage",
			voucher:  Voucher{DiscountType: DiscountPercentage, Value: 10},
			subtotal: 50000,
			expected: 5000,
		},
		{
			name:     "percentage truncates",
			voucher:  Voucher{DiscountType: DiscountPercentage, Value: 10},
			subtotal: 99,
			expected: 9,
		},
		{
			name:     "fixed",
			voucher:  Voucher{DiscountType: DiscountFixed, Value: 10000},
			subtotal: 50000,
			expected: 10000,
		},
		{
			name:     "fixed capped at subtotal",
			voucher:  Voucher{DiscountType: DiscountFixed, Value: 10000},
			subtotal: 5000,
			expected: 5000,
		},
		{
			name:     "hundred percent",
			voucher:  Voucher{DiscountType: DiscountPercentage, Value: 100},
			subtotal: 50000,
			expected: 50000,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.voucher.Discount(tt.subtotal))
		})
	}
}
