// internal/domain/order/message.go
package order

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
)

// messageAddOn mirrors the add-on entries stored on an order item
type messageAddOn struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

// formatAmount renders a minor-unit amount with the store currency symbol.
// Whole amounts drop the decimals, matching how prices are shown in chat.
func formatAmount(symbol string, amount int64) string {
	if amount%100 == 0 {
		return fmt.Sprintf("%s%d", symbol, amount/100)
	}
	return fmt.Sprintf("%s%d.%02d", symbol, amount/100, amount%100)
}

// shippingLabel turns a shipping method id into its chat label, e.g.
// "lbc-same-day" becomes "SAME-DAY".
func shippingLabel(methodID string) string {
	return strings.ToUpper(strings.TrimPrefix(methodID, "lbc-"))
}

// itemLine renders one order item for the chat message
func itemLine(symbol string, item *OrderItem) string {
	var b strings.Builder
	b.WriteString("• ")
	b.WriteString(item.ProductName)
	if item.VariationName != nil && *item.VariationName != "" {
		fmt.Fprintf(&b, " (%s)", *item.VariationName)
	}

	if len(item.AddOns) > 0 {
		var addOns []messageAddOn
		if err := json.Unmarshal(item.AddOns, &addOns); err == nil && len(addOns) > 0 {
			parts := make([]string, 0, len(addOns))
			for _, a := range addOns {
				if a.Quantity > 1 {
					parts = append(parts, fmt.Sprintf("%s x%d", a.Name, a.Quantity))
				} else {
					parts = append(parts, a.Name)
				}
			}
			b.WriteString(" + ")
			b.WriteString(strings.Join(parts, ", "))
		}
	}

	fmt.Fprintf(&b, " x%d - %s", item.Quantity, formatAmount(symbol, item.ItemTotal))
	return b.String()
}

// BuildMessage renders the order into the chat handoff text: the block the
// shopper sends over Messenger for the store to confirm against the order
// record.
func BuildMessage(storeName, currencySymbol string, o *Order) string {
	var b strings.Builder

	fmt.Fprintf(&b, "🛍️ %s ORDER\n\n", strings.ToUpper(storeName))
	fmt.Fprintf(&b, "🧾 Order Number: %s\n\n", o.OrderNumber)
	fmt.Fprintf(&b, "👤 Customer: %s\n", o.CustomerName)
	fmt.Fprintf(&b, "📞 Contact: %s\n\n", o.ContactNumber)

	b.WriteString("🚚 SHIPPING ADDRESS:\n")
	fmt.Fprintf(&b, "%s\n", o.Street)
	fmt.Fprintf(&b, "%s, %s %s\n", o.City, o.Province, o.PostalCode)
	fmt.Fprintf(&b, "%s\n\n", o.Country)

	fmt.Fprintf(&b, "📦 Shipping Method: %s\n\n", shippingLabel(o.ShippingMethod))

	b.WriteString("📋 ORDER DETAILS:\n")
	for i := range o.Items {
		b.WriteString(itemLine(currencySymbol, &o.Items[i]))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	fmt.Fprintf(&b, "💰 SUBTOTAL: %s\n", formatAmount(currencySymbol, o.Subtotal))
	fmt.Fprintf(&b, "🚚 SHIPPING FEE: %s\n", formatAmount(currencySymbol, o.ShippingFee))
	if o.VoucherDiscount > 0 && o.VoucherCode != nil {
		fmt.Fprintf(&b, "🎟️ VOUCHER (%s): -%s\n", *o.VoucherCode, formatAmount(currencySymbol, o.VoucherDiscount))
	}
	fmt.Fprintf(&b, "💰 TOTAL: %s\n\n", formatAmount(currencySymbol, o.TotalAmount))

	fmt.Fprintf(&b, "💳 Payment: %s\n", o.PaymentMethod)
	b.WriteString("📸 Payment Screenshot: Please attach your payment receipt screenshot\n")

	if o.Notes != "" {
		fmt.Fprintf(&b, "\n📝 Notes: %s\n", o.Notes)
	}

	fmt.Fprintf(&b, "\nPlease confirm this order to proceed. Thank you for choosing %s! 💄✨", storeName)
	return b.String()
}

// MessengerURL builds the deep link that opens the store's chat with the
// handoff text prefilled.
func MessengerURL(pageID, message string) string {
	return fmt.Sprintf("https://m.me/%s?text=%s", pageID, url.QueryEscape(message))
}
