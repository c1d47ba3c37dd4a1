// internal/domain/checkout/service_test.go
package checkout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/storefront-backend/internal/domain/cart"
)

func intPtr(v int) *int { return &v }

func stockedCart(quantity, stock int) *cart.Cart {
	c := cart.NewCart("session-test")
	c.Lines = []cart.CartLine{
		{
			ID:       "line-1",
			Product:  cart.ProductSnapshot{ID: "p1", Name: "Herbal Shampoo", BasePrice: 20000, Stock: intPtr(stock)},
			Quantity: quantity,
		},
	}
	return c
}

func validRequest() *ValidateRequest {
	return &ValidateRequest{
		CustomerName:    "Maria Santos",
		ContactNumber:   "09171234567",
		Email:           "maria@example.com",
		Street:          "123 Mabini St",
		City:            "Quezon City",
		Province:        "Metro Manila",
		PostalCode:      "1100",
		ShippingMethod:  "lbc-standard",
		PaymentMethodID: "pm-1",
	}
}

func TestOrderTotal(t *testing.T) {
	tests := []struct {
		name        string
		subtotal    int64
		discount    int64
		shippingFee int64
		expected    int64
	}{
		{"no discount no shipping", 100000, 0, 0, 100000},
		{"ten percent off with shipping", 100000, 10000, 5000, 95000},
		{"discount exceeds subtotal plus shipping", 5000, 20000, 5000, 0},
		{"everything zero", 0, 0, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, OrderTotal(tt.subtotal, tt.discount, tt.shippingFee))
		})
	}
}

func TestShippingMethods(t *testing.T) {
	methods := ShippingMethods()
	require.Len(t, methods, 3)
	assert.Equal(t, "lbc-standard", methods[0].ID)
	assert.Equal(t, int64(12000), methods[0].Fee)
	assert.Equal(t, "lbc-express", methods[1].ID)
	assert.Equal(t, int64(20000), methods[1].Fee)
	assert.Equal(t, "lbc-same-day", methods[2].ID)
	assert.Equal(t, int64(35000), methods[2].Fee)
}

func TestShippingMethodByID(t *testing.T) {
	m := ShippingMethodByID("lbc-express")
	require.NotNil(t, m)
	assert.Equal(t, "LBC Express", m.Name)

	assert.Nil(t, ShippingMethodByID("carrier-pigeon"))
}

func TestValidateDetailsValidForm(t *testing.T) {
	result := validateDetails(stockedCart(2, 10), validRequest())

	assert.Empty(t, result.Errors)
	assert.Empty(t, result.Warnings)
}

func TestValidateDetailsEmptyCart(t *testing.T) {
	result := validateDetails(cart.NewCart("session-test"), validRequest())

	assert.Contains(t, result.Errors, "cart is empty")
}

func TestValidateDetailsRequiredFields(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(*ValidateRequest)
		expected string
	}{
		{"missing name", func(r *ValidateRequest) { r.CustomerName = "" }, "customer name is required"},
		{"blank contact", func(r *ValidateRequest) { r.ContactNumber = "   " }, "contact number is required"},
		{"missing street", func(r *ValidateRequest) { r.Street = "" }, "street is required"},
		{"missing city", func(r *ValidateRequest) { r.City = "" }, "city is required"},
		{"missing province", func(r *ValidateRequest) { r.Province = "" }, "province is required"},
		{"missing postal code", func(r *ValidateRequest) { r.PostalCode = "" }, "postal code is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(req)
			result := validateDetails(stockedCart(1, 10), req)
			assert.Contains(t, result.Errors, tt.expected)
		})
	}
}

func TestValidateDetailsEmail(t *testing.T) {
	req := validRequest()
	req.Email = "not-an-address"
	result := validateDetails(stockedCart(1, 10), req)
	assert.Contains(t, result.Errors, "email address is invalid")

	// Email is optional, so an empty value passes
	req.Email = ""
	result = validateDetails(stockedCart(1, 10), req)
	assert.Empty(t, result.Errors)
}

func TestValidateDetailsShippingMethod(t *testing.T) {
	req := validRequest()
	req.ShippingMethod = ""
	result := validateDetails(stockedCart(1, 10), req)
	assert.Contains(t, result.Errors, "shipping method is required")

	req.ShippingMethod = "carrier-pigeon"
	result = validateDetails(stockedCart(1, 10), req)
	assert.Contains(t, result.Errors, "unknown shipping method")
}

func TestValidateDetailsPaymentMethodRequired(t *testing.T) {
	req := validRequest()
	req.PaymentMethodID = ""
	result := validateDetails(stockedCart(1, 10), req)

	assert.Contains(t, result.Errors, "payment method is required")
}

func TestValidateDetailsStockWarning(t *testing.T) {
	result := validateDetails(stockedCart(5, 3), validRequest())

	assert.Empty(t, result.Errors)
	require.Len(t, result.Warnings, 1)
	assert.Equal(t, "only 3 of Herbal Shampoo in stock", result.Warnings[0])
}

func TestShippingMethodsReturnsCopy(t *testing.T) {
	methods := ShippingMethods()
	methods[0].Fee = 1

	fresh := ShippingMethodByID("lbc-standard")
	require.NotNil(t, fresh)
	assert.Equal(t, int64(12000), fresh.Fee)
}
