// internal/domain/order/message_test.go
package order

import (
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

func strPtr(s string) *string { return &s }

func sampleOrder() *Order {
	return &Order{
		OrderNumber:    "20260831-4821",
		CustomerName:   "Maria Santos",
		ContactNumber:  "09171234567",
		Street:         "123 Rizal St",
		City:           "Quezon City",
		Province:       "Metro Manila",
		PostalCode:     "1100",
		Country:        "Philippines",
		ShippingMethod: "lbc-standard",
		ShippingFee:    12000,
		Subtotal:       100000,
		TotalAmount:    112000,
		PaymentMethod:  "GCash",
		Items: []OrderItem{
			{
				ProductName: "Shampoo",
				Quantity:    2,
				ItemTotal:   40000,
			},
			{
				ProductName:   "Conditioner",
				VariationName: strPtr("500ml"),
				Quantity:      1,
				AddOns:        datatypes.JSON(`[{"name":"Pump","quantity":1},{"name":"Sachet","quantity":3}]`),
				ItemTotal:     60000,
			},
		},
	}
}

func TestBuildMessage(t *testing.T) {
	msg := BuildMessage("H&HBC SHOPPE", "₱", sampleOrder())

	assert.True(t, strings.HasPrefix(msg, "🛍️ H&HBC SHOPPE ORDER"))
	assert.Contains(t, msg, "🧾 Order Number: 20260831-4821")
	assert.Contains(t, msg, "👤 Customer: Maria Santos")
	assert.Contains(t, msg, "📞 Contact: 09171234567")
	assert.Contains(t, msg, "🚚 SHIPPING ADDRESS:\n123 Rizal St\nQuezon City, Metro Manila 1100\nPhilippines")
	assert.Contains(t, msg, "📦 Shipping Method: STANDARD")
	assert.Contains(t, msg, "• Shampoo x2 - ₱400")
	assert.Contains(t, msg, "• Conditioner (500ml) + Pump, Sachet x3 x1 - ₱600")
	assert.Contains(t, msg, "💰 SUBTOTAL: ₱1000")
	assert.Contains(t, msg, "🚚 SHIPPING FEE: ₱120")
	assert.Contains(t, msg, "💰 TOTAL: ₱1120")
	assert.Contains(t, msg, "💳 Payment: GCash")
	assert.Contains(t, msg, "📸 Payment Screenshot")
	assert.NotContains(t, msg, "🎟️")
	assert.NotContains(t, msg, "📝 Notes")
	assert.True(t, strings.HasSuffix(msg, "Thank you for choosing H&HBC SHOPPE! 💄✨"))
}

func TestBuildMessageVoucherAndNotes(t *testing.T) {
	o := sampleOrder()
	o.VoucherCode = strPtr("SAVE10")
	o.VoucherDiscount = 10000
	o.TotalAmount = 102000
	o.Notes = "Please pack as gift"

	msg := BuildMessage("H&HBC SHOPPE", "₱", o)
	assert.Contains(t, msg, "🎟️ VOUCHER (SAVE10): -₱100")
	assert.Contains(t, msg, "💰 TOTAL: ₱1020")
	assert.Contains(t, msg, "📝 Notes: Please pack as gift")
}

func TestFormatAmount(t *testing.T) {
	assert.Equal(t, "₱200", formatAmount("₱", 20000))
	assert.Equal(t, "₱200.50", formatAmount("₱", 20050))
	assert.Equal(t, "₱0", formatAmount("₱", 0))
	assert.Equal(t, "₱0.05", formatAmount("₱", 5))
}

func TestShippingLabel(t *testing.T) {
	assert.Equal(t, "STANDARD", shippingLabel("lbc-standard"))
	assert.Equal(t, "EXPRESS", shippingLabel("lbc-express"))
	assert.Equal(t, "SAME-DAY", shippingLabel("lbc-same-day"))
}

func TestMessengerURL(t *testing.T) {
	link := MessengerURL("100082987099531", "🛍️ ORDER ₱1,000 & more")

	require.True(t, strings.HasPrefix(link, "https://m.me/100082987099531?text="))

	parsed, err := url.Parse(link)
	require.NoError(t, err)
	assert.Equal(t, "🛍️ ORDER ₱1,000 & more", parsed.Query().Get("text"))
}
