// internal/domain/cart/entity.go
package cart

import (
	"time"

	"github.com/google/uuid"
)

// ProductSnapshot is the slice of product data a cart line carries: enough
// to price and display the line without re-reading the catalog. Stock is the
// last-fetched count; nil means unknown and is treated as zero.
type ProductSnapshot struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	Description     string `json:"description,omitempty"`
	BasePrice       int64  `json:"base_price"`
	DiscountedPrice *int64 `json:"discounted_price,omitempty"`
	ImageURL        string `json:"image_url,omitempty"`
	Stock           *int   `json:"stock,omitempty"`
}

// VariationSnapshot is the chosen variation for a line. Stock, when present,
// overrides the product-level stock ceiling.
type VariationSnapshot struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Price int64  `json:"price"`
	Stock *int   `json:"stock,omitempty"`
}

// ChosenAddOn is one entry of a line's add-on multiset
type ChosenAddOn struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Price    int64  `json:"price"`
	Quantity int    `json:"quantity"`
}

// CartLine is one row of the cart. LineTotal always equals
// UnitPrice(Product, SelectedVariation, SelectedAddOns) × Quantity and is
// recomputed on every mutation.
type CartLine struct {
	ID                string             `json:"id"`
	Product           ProductSnapshot    `json:"product"`
	Quantity          int                `json:"quantity"`
	SelectedVariation *VariationSnapshot `json:"selected_variation,omitempty"`
	SelectedAddOns    []ChosenAddOn      `json:"selected_add_ons,omitempty"`
	LineTotal         int64              `json:"line_total"`
	AddedAt           time.Time          `json:"added_at"`
}

// Cart is the per-session shopping cart: an ordered sequence of lines,
// insertion order preserved for display.
type Cart struct {
	SessionID string     `json:"session_id"`
	Lines     []CartLine `json:"lines"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// NewCart returns an empty cart for a session
func NewCart(sessionID string) *Cart {
	now := time.Now().UTC()
	return &Cart{
		SessionID: sessionID,
		Lines:     []CartLine{},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// availableStock resolves a line's stock ceiling: the variation's own count
// when present, else the product count, else zero.
func availableStock(product ProductSnapshot, variation *VariationSnapshot) int {
	if variation != nil && variation.Stock != nil {
		return *variation.Stock
	}
	if product.Stock != nil {
		return *product.Stock
	}
	return 0
}

// AvailableStock returns the line's stock ceiling from its snapshots
func (l *CartLine) AvailableStock() int {
	return availableStock(l.Product, l.SelectedVariation)
}

// NormalizeAddOns collapses a raw add-on selection into a multiset: entries
// with the same id are merged and their quantities summed. Quantities below
// one count as one.
func NormalizeAddOns(addOns []ChosenAddOn) []ChosenAddOn {
	if len(addOns) == 0 {
		return nil
	}
	var grouped []ChosenAddOn
	for _, addOn := range addOns {
		qty := addOn.Quantity
		if qty < 1 {
			qty = 1
		}
		merged := false
		for i := range grouped {
			if grouped[i].ID == addOn.ID {
				grouped[i].Quantity += qty
				merged = true
				break
			}
		}
		if !merged {
			addOn.Quantity = qty
			grouped = append(grouped, addOn)
		}
	}
	return grouped
}

// sameIdentity reports whether a line matches the (product, variation,
// add-on multiset) identity of a new addition. The add-on comparison is
// unordered, by id and quantity.
func sameIdentity(line *CartLine, productID string, variation *VariationSnapshot, addOns []ChosenAddOn) bool {
	if line.Product.ID != productID {
		return false
	}

	lineVariationID := ""
	if line.SelectedVariation != nil {
		lineVariationID = line.SelectedVariation.ID
	}
	newVariationID := ""
	if variation != nil {
		newVariationID = variation.ID
	}
	if lineVariationID != newVariationID {
		return false
	}

	if len(line.SelectedAddOns) != len(addOns) {
		return false
	}
	for _, existing := range line.SelectedAddOns {
		found := false
		for _, candidate := range addOns {
			if candidate.ID == existing.ID && candidate.Quantity == existing.Quantity {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// AddItem adds quantity units of a product (with optional variation and
// add-on selection) to the cart. An addition matching an existing line's
// identity increments that line instead of appending. Stock-exceeded
// conditions are business-rule rejections that leave the cart unchanged.
func (c *Cart) AddItem(product ProductSnapshot, quantity int, variation *VariationSnapshot, addOns []ChosenAddOn) (*CartLine, error) {
	if quantity < 1 {
		quantity = 1
	}

	stock := availableStock(product, variation)
	if stock <= 0 {
		return nil, ErrOutOfStock
	}

	addOns = NormalizeAddOns(addOns)

	for i := range c.Lines {
		line := &c.Lines[i]
		if !sameIdentity(line, product.ID, variation, addOns) {
			continue
		}

		newQuantity := line.Quantity + quantity
		if newQuantity > stock {
			return nil, &StockLimitError{Available: stock, InCart: line.Quantity}
		}

		// Refresh the snapshot in case price or stock changed since the
		// line was first added, then recompute.
		line.Product = product
		line.SelectedVariation = variation
		line.SelectedAddOns = addOns
		line.Quantity = newQuantity
		line.LineTotal = UnitPrice(product, variation, addOns) * int64(newQuantity)
		c.UpdatedAt = time.Now().UTC()
		return line, nil
	}

	if quantity > stock {
		return nil, &StockLimitError{Available: stock}
	}

	line := CartLine{
		ID:                uuid.New().String(),
		Product:           product,
		Quantity:          quantity,
		SelectedVariation: variation,
		SelectedAddOns:    addOns,
		LineTotal:         UnitPrice(product, variation, addOns) * int64(quantity),
		AddedAt:           time.Now().UTC(),
	}
	c.Lines = append(c.Lines, line)
	c.UpdatedAt = time.Now().UTC()
	return &c.Lines[len(c.Lines)-1], nil
}

// UpdateQuantity sets a line's quantity. A quantity of zero or less removes
// the line. Exceeding the line's own stock ceiling leaves it unchanged.
func (c *Cart) UpdateQuantity(lineID string, quantity int) error {
	if quantity <= 0 {
		return c.RemoveLine(lineID)
	}

	for i := range c.Lines {
		line := &c.Lines[i]
		if line.ID != lineID {
			continue
		}

		stock := availableStock(line.Product, line.SelectedVariation)
		if quantity > stock {
			return &StockLimitError{Available: stock, InCart: line.Quantity}
		}

		line.Quantity = quantity
		line.LineTotal = UnitPrice(line.Product, line.SelectedVariation, line.SelectedAddOns) * int64(quantity)
		c.UpdatedAt = time.Now().UTC()
		return nil
	}

	return ErrLineNotFound
}

// RemoveLine deletes a line unconditionally
func (c *Cart) RemoveLine(lineID string) error {
	for i := range c.Lines {
		if c.Lines[i].ID == lineID {
			c.Lines = append(c.Lines[:i], c.Lines[i+1:]...)
			c.UpdatedAt = time.Now().UTC()
			return nil
		}
	}
	return ErrLineNotFound
}

// Clear empties the cart unconditionally
func (c *Cart) Clear() {
	c.Lines = []CartLine{}
	c.UpdatedAt = time.Now().UTC()
}

// Line returns the line with the given id, or nil
func (c *Cart) Line(lineID string) *CartLine {
	for i := range c.Lines {
		if c.Lines[i].ID == lineID {
			return &c.Lines[i]
		}
	}
	return nil
}

// TotalPrice returns the sum of all line totals
func (c *Cart) TotalPrice() int64 {
	var total int64
	for _, line := range c.Lines {
		total += line.LineTotal
	}
	return total
}

// TotalItems returns the sum of all line quantities
func (c *Cart) TotalItems() int {
	total := 0
	for _, line := range c.Lines {
		total += line.Quantity
	}
	return total
}

// IsEmpty reports whether the cart has no lines
func (c *Cart) IsEmpty() bool {
	return len(c.Lines) == 0
}
