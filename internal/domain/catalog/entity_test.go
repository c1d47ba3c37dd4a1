package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func intPtr(v int) *int       { return &v }
func int64Ptr(v int64) *int64 { return &v }

func TestEffectiveBasePrice(t *testing.T) {
	tests := []struct {
		name    string
		product Product
		want    int64
	}{
		{
			name:    "no discount",
			product: Product{BasePrice: 20000},
			want:    20000,
		},
		{
			name:    "discount below base",
			product: Product{BasePrice: 20000, DiscountedPrice: int64Ptr(15000)},
			want:    15000,
		},
		{
			name:    "discount equal to base ignored",
			product: Product{BasePrice: 20000, DiscountedPrice: int64Ptr(20000)},
			want:    20000,
		},
		{
			name:    "discount above base ignored",
			product: Product{BasePrice: 20000, DiscountedPrice: int64Ptr(25000)},
			want:    20000,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.product.EffectiveBasePrice())
		})
	}
}

func TestProductStockOnHand(t *testing.T) {
	assert.Equal(t, 0, (&Product{}).StockOnHand(), "missing stock counts as zero")
	assert.Equal(t, 0, (&Product{Stock: intPtr(0)}).StockOnHand())
	assert.Equal(t, 7, (&Product{Stock: intPtr(7)}).StockOnHand())

	assert.False(t, (&Product{}).IsInStock())
	assert.False(t, (&Product{Stock: intPtr(0)}).IsInStock())
	assert.True(t, (&Product{Stock: intPtr(1)}).IsInStock())
}

func TestVariationStockOnHand(t *testing.T) {
	product := &Product{Stock: intPtr(10)}

	withOwnStock := &Variation{Stock: intPtr(3)}
	assert.Equal(t, 3, withOwnStock.StockOnHand(product), "variation stock overrides product stock")

	zeroOwnStock := &Variation{Stock: intPtr(0)}
	assert.Equal(t, 0, zeroOwnStock.StockOnHand(product), "explicit zero does not fall back")

	noOwnStock := &Variation{}
	assert.Equal(t, 10, noOwnStock.StockOnHand(product), "missing variation stock falls back to the product")

	assert.Equal(t, 0, noOwnStock.StockOnHand(&Product{}), "falls back all the way to zero")
}

func TestSlugify(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"simple", "Hair Care", "hair-care"},
		{"trims whitespace", "  Body Care  ", "body-care"},
		{"collapses separators", "Bath & Body -- Essentials", "bath-body-essentials"},
		{"drops symbols", "50% Off!", "50-off"},
		{"underscores become hyphens", "gift_sets", "gift-sets"},
		{"already clean", "beauty", "beauty"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, slugify(tt.in))
		})
	}
}
