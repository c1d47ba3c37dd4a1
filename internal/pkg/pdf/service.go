// internal/pkg/pdf/service.go
package pdf

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html/template"
	"strings"
	"time"

	"github.com/SebastiaanKlippert/go-wkhtmltopdf"
	"github.com/your-org/storefront-backend/internal/config"
	"github.com/your-org/storefront-backend/internal/domain/order"
)

// Service handles PDF generation
type Service struct {
	config *config.Config
}

// NewService creates a new PDF service
func NewService(cfg *config.Config) *Service {
	return &Service{
		config: cfg,
	}
}

// GenerateInvoice generates a PDF invoice for an order
func (s *Service) GenerateInvoice(o *order.Order) (*bytes.Buffer, error) {
	data := invoiceData{
		InvoiceNumber: fmt.Sprintf("INV-%s", o.OrderNumber),
		InvoiceDate:   time.Now().Format("January 2, 2006"),
		StoreName:     s.config.Store.Name,
		Order:         o,
		OrderDate:     o.CreatedAt.Format("January 2, 2006"),
		Status:        strings.ToUpper(string(o.Status)),
		Items:         buildInvoiceItems(s.config.Store.CurrencySymbol, o.Items),
		Subtotal:      amount(s.config.Store.CurrencySymbol, o.Subtotal),
		Discount:      amount(s.config.Store.CurrencySymbol, o.VoucherDiscount),
		ShippingFee:   amount(s.config.Store.CurrencySymbol, o.ShippingFee),
		Total:         amount(s.config.Store.CurrencySymbol, o.TotalAmount),
	}
	if o.VoucherCode != nil {
		data.VoucherCode = *o.VoucherCode
	}

	htmlContent, err := s.generateHTML(data)
	if err != nil {
		return nil, fmt.Errorf("failed to generate HTML: %w", err)
	}

	pdfg, err := wkhtmltopdf.NewPDFGenerator()
	if err != nil {
		return nil, fmt.Errorf("failed to create PDF generator: %w", err)
	}

	pdfg.Dpi.Set(300)
	pdfg.Orientation.Set(wkhtmltopdf.OrientationPortrait)
	pdfg.Grayscale.Set(false)

	page := wkhtmltopdf.NewPageReader(bytes.NewReader([]byte(htmlContent)))
	page.FooterRight.Set("[page]")
	page.FooterFontSize.Set(9)
	page.Zoom.Set(0.95)

	pdfg.AddPage(page)

	if err := pdfg.Create(); err != nil {
		return nil, fmt.Errorf("failed to create PDF: %w", err)
	}

	return bytes.NewBuffer(pdfg.Bytes()), nil
}

// generateHTML generates HTML content from template
func (s *Service) generateHTML(data invoiceData) (string, error) {
	tmpl := template.Must(template.New("invoice").Parse(invoiceTemplate))

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute template: %w", err)
	}

	return buf.String(), nil
}

// amount formats a minor-unit value for print
func amount(symbol string, v int64) string {
	return fmt.Sprintf("%s%d.%02d", symbol, v/100, v%100)
}

// invoiceItem is one rendered line of the invoice table
type invoiceItem struct {
	Name      string
	Variation string
	AddOns    string
	Quantity  int
	UnitPrice string
	Total     string
}

func buildInvoiceItems(symbol string, items []order.OrderItem) []invoiceItem {
	out := make([]invoiceItem, 0, len(items))
	for _, item := range items {
		row := invoiceItem{
			Name:     item.ProductName,
			Quantity: item.Quantity,
			Total:    amount(symbol, item.ItemTotal),
		}
		if item.Quantity > 0 {
			row.UnitPrice = amount(symbol, item.ItemTotal/int64(item.Quantity))
		}
		if item.VariationName != nil {
			row.Variation = *item.VariationName
		}
		if len(item.AddOns) > 0 {
			var addOns []struct {
				Name     string `json:"name"`
				Quantity int    `json:"quantity"`
			}
			if err := json.Unmarshal(item.AddOns, &addOns); err == nil {
				parts := make([]string, 0, len(addOns))
				for _, a := range addOns {
					if a.Quantity > 1 {
						parts = append(parts, fmt.Sprintf("%s x%d", a.Name, a.Quantity))
					} else {
						parts = append(parts, a.Name)
					}
				}
				row.AddOns = strings.Join(parts, ", ")
			}
		}
		out = append(out, row)
	}
	return out
}

// invoiceData represents the data passed to the invoice template
type invoiceData struct {
	InvoiceNumber string
	InvoiceDate   string
	StoreName     string
	Order         *order.Order
	OrderDate     string
	Status        string
	Items         []invoiceItem
	Subtotal      string
	Discount      string
	VoucherCode   string
	ShippingFee   string
	Total         string
}

// Invoice HTML template
const invoiceTemplate = `
<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>Invoice {{.InvoiceNumber}}</title>
    <style>
        body {
            font-family: Arial, sans-serif;
            margin: 0;
            padding: 20px;
            color: #333;
        }
        .header {
            display: flex;
            justify-content: space-between;
            margin-bottom: 30px;
            border-bottom: 2px solid #eee;
            padding-bottom: 20px;
        }
        .invoice-title {
            font-size: 28px;
            font-weight: bold;
            color: #2563eb;
            margin-bottom: 10px;
        }
        .section-title {
            font-size: 16px;
            font-weight: bold;
            margin-bottom: 10px;
            color: #374151;
        }
        .items-table {
            width: 100%;
            border-collapse: collapse;
            margin-bottom: 30px;
        }
        .items-table th,
        .items-table td {
            border: 1px solid #ddd;
            padding: 12px 8px;
            text-align: left;
        }
        .items-table th {
            background-color: #f8f9fa;
            font-weight: bold;
        }
        .items-table .qty-col,
        .items-table .price-col,
        .items-table .total-col {
            text-align: right;
            width: 80px;
        }
        .totals {
            float: right;
            width: 300px;
        }
        .totals table {
            width: 100%;
            border-collapse: collapse;
        }
        .totals td {
            padding: 8px;
            border-bottom: 1px solid #eee;
        }
        .totals .label {
            text-align: right;
            font-weight: bold;
        }
        .totals .amount {
            text-align: right;
            width: 100px;
        }
        .total-row {
            font-size: 18px;
            font-weight: bold;
            border-top: 2px solid #333 !important;
        }
        .footer {
            margin-top: 50px;
            padding-top: 20px;
            border-top: 1px solid #eee;
            text-align: center;
            color: #666;
            font-size: 12px;
        }
        .status-badge {
            display: inline-block;
            padding: 4px 8px;
            border-radius: 4px;
            font-size: 12px;
            font-weight: bold;
            background-color: #fef3c7;
            color: #92400e;
        }
    </style>
</head>
<body>
    <div class="header">
        <div>
            <h1>{{.StoreName}}</h1>
        </div>
        <div style="text-align: right;">
            <div class="invoice-title">INVOICE</div>
            <p><strong>Invoice #:</strong> {{.InvoiceNumber}}</p>
            <p><strong>Invoice Date:</strong> {{.InvoiceDate}}</p>
            <p><strong>Order #:</strong> {{.Order.OrderNumber}}</p>
            <p><strong>Order Date:</strong> {{.OrderDate}}</p>
            <p><span class="status-badge">{{.Status}}</span></p>
        </div>
    </div>

    <div style="margin-bottom: 30px;">
        <div class="section-title">Ship To:</div>
        <p><strong>{{.Order.CustomerName}}</strong></p>
        <p>{{.Order.Street}}</p>
        <p>{{.Order.City}}, {{.Order.Province}} {{.Order.PostalCode}}</p>
        <p>{{.Order.Country}}</p>
        <p>Contact: {{.Order.ContactNumber}}</p>
    </div>

    <table class="items-table">
        <thead>
            <tr>
                <th>Item</th>
                <th class="qty-col">Qty</th>
                <th class="price-col">Price</th>
                <th class="total-col">Total</th>
            </tr>
        </thead>
        <tbody>
            {{range .Items}}
            <tr>
                <td>
                    <strong>{{.Name}}</strong>
                    {{if .Variation}}<br><small>{{.Variation}}</small>{{end}}
                    {{if .AddOns}}<br><small>Add-ons: {{.AddOns}}</small>{{end}}
                </td>
                <td class="qty-col">{{.Quantity}}</td>
                <td class="price-col">{{.UnitPrice}}</td>
                <td class="total-col">{{.Total}}</td>
            </tr>
            {{end}}
        </tbody>
    </table>

    <div class="totals">
        <table>
            <tr>
                <td class="label">Subtotal:</td>
                <td class="amount">{{.Subtotal}}</td>
            </tr>
            {{if .VoucherCode}}
            <tr>
                <td class="label">Voucher ({{.VoucherCode}}):</td>
                <td class="amount">-{{.Discount}}</td>
            </tr>
            {{end}}
            <tr>
                <td class="label">Shipping ({{.Order.ShippingMethod}}):</td>
                <td class="amount">{{.ShippingFee}}</td>
            </tr>
            <tr class="total-row">
                <td class="label">Total:</td>
                <td class="amount">{{.Total}}</td>
            </tr>
        </table>
    </div>

    <div style="clear: both;"></div>

    <div class="footer">
        <p>Thank you for shopping with {{.StoreName}}!</p>
        <p>Payment method: {{.Order.PaymentMethod}}</p>
    </div>
</body>
</html>
`
