// internal/domain/cart/entity_test.go
package cart

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func shampoo() ProductSnapshot {
	return ProductSnapshot{
		ID:        "prod-shampoo",
		Name:      "Shampoo",
		BasePrice: 20000,
		Stock:     intPtr(5),
	}
}

func TestAddItemNewLine(t *testing.T) {
	c := NewCart("sess-1")

	line, err := c.AddItem(shampoo(), 2, nil, nil)
	require.NoError(t, err)

	assert.Len(t, c.Lines, 1)
	assert.Equal(t, 2, line.Quantity)
	assert.Equal(t, int64(40000), line.LineTotal)
	assert.NotEmpty(t, line.ID)
}

func TestAddItemMergesSameIdentity(t *testing.T) {
	c := NewCart("sess-1")

	first, err := c.AddItem(shampoo(), 2, nil, nil)
	require.NoError(t, err)
	second, err := c.AddItem(shampoo(), 1, nil, nil)
	require.NoError(t, err)

	assert.Len(t, c.Lines, 1)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, 3, second.Quantity)
	assert.Equal(t, int64(60000), second.LineTotal)
}

func TestAddItemStockCeilingOnMerge(t *testing.T) {
	c := NewCart("sess-1")

	_, err := c.AddItem(shampoo(), 4, nil, nil)
	require.NoError(t, err)

	_, err = c.AddItem(shampoo(), 2, nil, nil)
	require.Error(t, err)

	var stockErr *StockLimitError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, 5, stockErr.Available)
	assert.Equal(t, 4, stockErr.InCart)
	assert.Equal(t, 1, stockErr.Remaining())
	assert.Contains(t, err.Error(), "you already have 4 in your cart")

	// rejection leaves the cart untouched
	assert.Equal(t, 4, c.Lines[0].Quantity)
	assert.Equal(t, int64(80000), c.Lines[0].LineTotal)
}

func TestAddItemOutOfStock(t *testing.T) {
	product := shampoo()
	product.Stock = intPtr(0)

	c := NewCart("sess-1")
	_, err := c.AddItem(product, 1, nil, nil)
	assert.ErrorIs(t, err, ErrOutOfStock)
	assert.True(t, c.IsEmpty())
}

func TestAddItemNilStockTreatedAsZero(t *testing.T) {
	product := shampoo()
	product.Stock = nil

	c := NewCart("sess-1")
	_, err := c.AddItem(product, 1, nil, nil)
	assert.ErrorIs(t, err, ErrOutOfStock)
}

func TestVariationStockOverridesProduct(t *testing.T) {
	product := shampoo() // product stock 5
	variation := &VariationSnapshot{ID: "v-large", Name: "Large", Price: 5000, Stock: intPtr(2)}

	c := NewCart("sess-1")
	_, err := c.AddItem(product, 3, variation, nil)
	require.Error(t, err)

	var stockErr *StockLimitError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, 2, stockErr.Available)
}

func TestVariationWithoutStockFallsBackToProduct(t *testing.T) {
	product := shampoo()
	variation := &VariationSnapshot{ID: "v-large", Name: "Large", Price: 5000}

	c := NewCart("sess-1")
	line, err := c.AddItem(product, 5, variation, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(125000), line.LineTotal)
}

func TestAvailableStock(t *testing.T) {
	line := CartLine{Product: shampoo()}
	assert.Equal(t, 5, line.AvailableStock())

	line.SelectedVariation = &VariationSnapshot{ID: "v-large", Stock: intPtr(2)}
	assert.Equal(t, 2, line.AvailableStock())

	line.SelectedVariation = &VariationSnapshot{ID: "v-large"}
	assert.Equal(t, 5, line.AvailableStock())

	line.Product.Stock = nil
	assert.Equal(t, 0, line.AvailableStock())
}

func TestDifferentVariationsAreSeparateLines(t *testing.T) {
	product := shampoo()
	small := &VariationSnapshot{ID: "v-small", Name: "Small", Price: 0}
	large := &VariationSnapshot{ID: "v-large", Name: "Large", Price: 5000}

	c := NewCart("sess-1")
	_, err := c.AddItem(product, 1, small, nil)
	require.NoError(t, err)
	_, err = c.AddItem(product, 1, large, nil)
	require.NoError(t, err)
	_, err = c.AddItem(product, 1, nil, nil)
	require.NoError(t, err)

	assert.Len(t, c.Lines, 3)
}

func TestAddOnIdentityIsUnordered(t *testing.T) {
	product := shampoo()
	ribbon := ChosenAddOn{ID: "a-ribbon", Name: "Ribbon", Price: 1000, Quantity: 1}
	card := ChosenAddOn{ID: "a-card", Name: "Card", Price: 500, Quantity: 2}

	c := NewCart("sess-1")
	_, err := c.AddItem(product, 1, nil, []ChosenAddOn{ribbon, card})
	require.NoError(t, err)
	_, err = c.AddItem(product, 1, nil, []ChosenAddOn{card, ribbon})
	require.NoError(t, err)

	assert.Len(t, c.Lines, 1)
	assert.Equal(t, 2, c.Lines[0].Quantity)
}

func TestAddOnQuantityDistinguishesLines(t *testing.T) {
	product := shampoo()
	one := []ChosenAddOn{{ID: "a-ribbon", Name: "Ribbon", Price: 1000, Quantity: 1}}
	two := []ChosenAddOn{{ID: "a-ribbon", Name: "Ribbon", Price: 1000, Quantity: 2}}

	c := NewCart("sess-1")
	_, err := c.AddItem(product, 1, nil, one)
	require.NoError(t, err)
	_, err = c.AddItem(product, 1, nil, two)
	require.NoError(t, err)

	assert.Len(t, c.Lines, 2)
}

func TestNormalizeAddOnsMergesDuplicates(t *testing.T) {
	normalized := NormalizeAddOns([]ChosenAddOn{
		{ID: "a1", Price: 1000, Quantity: 1},
		{ID: "a2", Price: 500, Quantity: 0},
		{ID: "a1", Price: 1000, Quantity: 2},
	})

	require.Len(t, normalized, 2)
	assert.Equal(t, 3, normalized[0].Quantity)
	assert.Equal(t, 1, normalized[1].Quantity)
}

func TestUpdateQuantity(t *testing.T) {
	c := NewCart("sess-1")
	line, err := c.AddItem(shampoo(), 2, nil, nil)
	require.NoError(t, err)

	require.NoError(t, c.UpdateQuantity(line.ID, 5))
	assert.Equal(t, 5, c.Lines[0].Quantity)
	assert.Equal(t, int64(100000), c.Lines[0].LineTotal)
}

func TestUpdateQuantityZeroRemovesLine(t *testing.T) {
	c := NewCart("sess-1")
	line, err := c.AddItem(shampoo(), 2, nil, nil)
	require.NoError(t, err)

	require.NoError(t, c.UpdateQuantity(line.ID, 0))
	assert.True(t, c.IsEmpty())
}

func TestUpdateQuantityBeyondStockLeavesLineUnchanged(t *testing.T) {
	c := NewCart("sess-1")
	line, err := c.AddItem(shampoo(), 2, nil, nil)
	require.NoError(t, err)

	err = c.UpdateQuantity(line.ID, 6)
	var stockErr *StockLimitError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, 2, c.Lines[0].Quantity)
	assert.Equal(t, int64(40000), c.Lines[0].LineTotal)
}

func TestUpdateQuantityUnknownLine(t *testing.T) {
	c := NewCart("sess-1")
	assert.ErrorIs(t, c.UpdateQuantity("missing", 1), ErrLineNotFound)
}

func TestRemoveLine(t *testing.T) {
	c := NewCart("sess-1")
	line, err := c.AddItem(shampoo(), 2, nil, nil)
	require.NoError(t, err)

	require.NoError(t, c.RemoveLine(line.ID))
	assert.True(t, c.IsEmpty())
	assert.ErrorIs(t, c.RemoveLine(line.ID), ErrLineNotFound)
}

func TestTotals(t *testing.T) {
	other := ProductSnapshot{ID: "prod-soap", Name: "Soap", BasePrice: 8000, Stock: intPtr(10)}

	c := NewCart("sess-1")
	_, err := c.AddItem(shampoo(), 2, nil, nil)
	require.NoError(t, err)
	_, err = c.AddItem(other, 3, nil, nil)
	require.NoError(t, err)

	assert.Equal(t, int64(64000), c.TotalPrice())
	assert.Equal(t, 5, c.TotalItems())

	var sum int64
	for _, line := range c.Lines {
		sum += line.LineTotal
	}
	assert.Equal(t, sum, c.TotalPrice())
}

func TestClear(t *testing.T) {
	c := NewCart("sess-1")
	_, err := c.AddItem(shampoo(), 1, nil, nil)
	require.NoError(t, err)

	c.Clear()
	assert.True(t, c.IsEmpty())
	assert.Equal(t, int64(0), c.TotalPrice())
	assert.Equal(t, 0, c.TotalItems())
}

func TestRepeatedAddsUpToCeiling(t *testing.T) {
	product := ProductSnapshot{ID: "prod-shampoo", Name: "Shampoo", BasePrice: 20000, Stock: intPtr(6)}

	c := NewCart("sess-1")
	_, err := c.AddItem(product, 3, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, 3, c.TotalItems())
	assert.Equal(t, int64(60000), c.TotalPrice())

	_, err = c.AddItem(product, 3, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, 6, c.TotalItems())
	assert.Equal(t, int64(120000), c.TotalPrice())

	_, err = c.AddItem(product, 1, nil, nil)
	require.Error(t, err)
	assert.Equal(t, 6, c.TotalItems())
	assert.Equal(t, int64(120000), c.TotalPrice())
}

func TestIsBusinessError(t *testing.T) {
	assert.True(t, IsBusinessError(ErrOutOfStock))
	assert.True(t, IsBusinessError(ErrLineNotFound))
	assert.True(t, IsBusinessError(&StockLimitError{Available: 1}))
	assert.False(t, IsBusinessError(assert.AnError))
}
