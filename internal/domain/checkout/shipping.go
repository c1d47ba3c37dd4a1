// internal/domain/checkout/shipping.go
package checkout

// ShippingMethod is one of the courier options offered at checkout
type ShippingMethod struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Fee         int64  `json:"fee"`
	ETA         string `json:"eta"`
}

// shippingMethods is the fixed courier menu. Fees are minor units.
var shippingMethods = []ShippingMethod{
	{
		ID:          "lbc-standard",
		Name:        "LBC Standard",
		Description: "Nationwide delivery",
		Fee:         12000,
		ETA:         "3-5 business days",
	},
	{
		ID:          "lbc-express",
		Name:        "LBC Express",
		Description: "Priority nationwide delivery",
		Fee:         20000,
		ETA:         "1-2 business days",
	},
	{
		ID:          "lbc-same-day",
		Name:        "LBC Same Day",
		Description: "Metro Manila only",
		Fee:         35000,
		ETA:         "Same day",
	},
}

// ShippingMethods returns the available shipping options
func ShippingMethods() []ShippingMethod {
	out := make([]ShippingMethod, len(shippingMethods))
	copy(out, shippingMethods)
	return out
}

// ShippingMethodByID returns the shipping method with the given id, or nil
func ShippingMethodByID(id string) *ShippingMethod {
	for i := range shippingMethods {
		if shippingMethods[i].ID == id {
			m := shippingMethods[i]
			return &m
		}
	}
	return nil
}
