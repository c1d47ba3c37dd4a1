// internal/domain/cart/pricing.go
package cart

import (
	"github.com/sirupsen/logrus"
)

// UnitPrice computes the per-unit price of a line: the product's discounted
// price when one is set below the base price, plus the selected variation's
// price delta, plus each chosen add-on's price times its quantity.
//
// Negative inputs are data errors, not runtime faults: a negative variation
// or add-on delta is clamped to zero, and a negative final result is clamped
// to zero. Both are logged as data-integrity warnings.
func UnitPrice(product ProductSnapshot, variation *VariationSnapshot, addOns []ChosenAddOn) int64 {
	price := product.BasePrice
	if product.DiscountedPrice != nil && *product.DiscountedPrice < product.BasePrice {
		price = *product.DiscountedPrice
	}

	if variation != nil {
		delta := variation.Price
		if delta < 0 {
			logrus.WithFields(logrus.Fields{
				"product_id":   product.ID,
				"variation_id": variation.ID,
				"price":        delta,
			}).Warn("negative variation price clamped to zero")
			delta = 0
		}
		price += delta
	}

	for _, addOn := range addOns {
		delta := addOn.Price
		if delta < 0 {
			logrus.WithFields(logrus.Fields{
				"product_id": product.ID,
				"add_on_id":  addOn.ID,
				"price":      delta,
			}).Warn("negative add-on price clamped to zero")
			delta = 0
		}
		qty := addOn.Quantity
		if qty < 1 {
			qty = 1
		}
		price += delta * int64(qty)
	}

	if price < 0 {
		logrus.WithField("product_id", product.ID).Warn("negative unit price clamped to zero")
		price = 0
	}

	return price
}
