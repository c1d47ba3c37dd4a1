// internal/domain/cart/pricing_test.go
package cart

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func intPtr(v int) *int       { return &v }
func int64Ptr(v int64) *int64 { return &v }

func TestUnitPrice(t *testing.T) {
	tests := []struct {
		name      string
		product   ProductSnapshot
		variation *VariationSnapshot
		addOns    []ChosenAddOn
		expected  int64
	}{
		{
			name:     "base price only",
			product:  ProductSnapshot{ID: "p1", BasePrice: 20000},
			expected: 20000,
		},
		{
			name:     "discounted price used when lower",
			product:  ProductSnapshot{ID: "p1", BasePrice: 20000, DiscountedPrice: int64Ptr(15000)},
			expected: 15000,
		},
		{
			name:     "discount equal to base is ignored",
			product:  ProductSnapshot{ID: "p1", BasePrice: 20000, DiscountedPrice: int64Ptr(20000)},
			expected: 20000,
		},
		{
			name:     "discount above base is ignored",
			product:  ProductSnapshot{ID: "p1", BasePrice: 20000, DiscountedPrice: int64Ptr(25000)},
			expected: 20000,
		},
		{
			name:      "variation delta added on top of discount",
			product:   ProductSnapshot{ID: "p1", BasePrice: 20000, DiscountedPrice: int64Ptr(15000)},
			variation: &VariationSnapshot{ID: "v1", Name: "Large", Price: 5000},
			expected:  20000,
		},
		{
			name:    "add-on price multiplied by quantity",
			product: ProductSnapshot{ID: "p1", BasePrice: 20000},
			addOns: []ChosenAddOn{
				{ID: "a1", Name: "Ribbon", Price: 1000, Quantity: 3},
			},
			expected: 23000,
		},
		{
			name:    "add-on quantity below one counts as one",
			product: ProductSnapshot{ID: "p1", BasePrice: 20000},
			addOns: []ChosenAddOn{
				{ID: "a1", Name: "Ribbon", Price: 1000, Quantity: 0},
			},
			expected: 21000,
		},
		{
			name:      "negative variation delta clamped",
			product:   ProductSnapshot{ID: "p1", BasePrice: 20000},
			variation: &VariationSnapshot{ID: "v1", Name: "Broken", Price: -5000},
			expected:  20000,
		},
		{
			name:    "negative add-on delta clamped",
			product: ProductSnapshot{ID: "p1", BasePrice: 20000},
			addOns: []ChosenAddOn{
				{ID: "a1", Name: "Broken", Price: -1000, Quantity: 2},
			},
			expected: 20000,
		},
		{
			name: "full combination",
			product: ProductSnapshot{
				ID:              "p1",
				BasePrice:       20000,
				DiscountedPrice: int64Ptr(18000),
			},
			variation: &VariationSnapshot{ID: "v1", Name: "500ml", Price: 3000},
			addOns: []ChosenAddOn{
				{ID: "a1", Name: "Pump", Price: 2500, Quantity: 1},
				{ID: "a2", Name: "Sachet", Price: 500, Quantity: 4},
			},
			expected: 25500,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, UnitPrice(tt.product, tt.variation, tt.addOns))
		})
	}
}

func TestUnitPriceNeverNegative(t *testing.T) {
	product := ProductSnapshot{ID: "p1", BasePrice: 0, DiscountedPrice: int64Ptr(-500)}
	assert.Equal(t, int64(0), UnitPrice(product, nil, nil))
}
