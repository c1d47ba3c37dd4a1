// internal/domain/cart/errors.go
package cart

import (
	"errors"
	"fmt"
)

// ErrOutOfStock is returned when an item has no sellable stock at all
var ErrOutOfStock = errors.New("item is out of stock")

// ErrLineNotFound is returned when a cart line id does not exist
var ErrLineNotFound = errors.New("item not found in cart")

// ErrProductUnavailable is returned when the requested product does not
// exist or is hidden from the storefront
var ErrProductUnavailable = errors.New("product not found or unavailable")

// ErrVariationNotFound is returned when the requested variation does not
// belong to the product
var ErrVariationNotFound = errors.New("variation not found for product")

// ErrAddOnNotFound is returned when a requested add-on does not belong to
// the product
var ErrAddOnNotFound = errors.New("add-on not found for product")

// StockLimitError is a business-rule rejection: the requested quantity would
// exceed the stock ceiling. InCart carries the quantity already held so the
// caller can tell the user how many more would fit.
type StockLimitError struct {
	Available int
	InCart    int
}

func (e *StockLimitError) Error() string {
	if e.InCart > 0 {
		return fmt.Sprintf("only %d items available in stock; you already have %d in your cart", e.Available, e.InCart)
	}
	return fmt.Sprintf("only %d items available in stock", e.Available)
}

// Remaining returns how many more units could still be added
func (e *StockLimitError) Remaining() int {
	if r := e.Available - e.InCart; r > 0 {
		return r
	}
	return 0
}

// IsBusinessError reports whether err is an ordinary business-rule rejection
// rather than a collaborator failure.
func IsBusinessError(err error) bool {
	var stockErr *StockLimitError
	return errors.Is(err, ErrOutOfStock) ||
		errors.Is(err, ErrLineNotFound) ||
		errors.Is(err, ErrProductUnavailable) ||
		errors.Is(err, ErrVariationNotFound) ||
		errors.Is(err, ErrAddOnNotFound) ||
		errors.As(err, &stockErr)
}
