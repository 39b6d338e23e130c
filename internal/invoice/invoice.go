// Package invoice builds the printable bill of an order.
package invoice

import (
	"html/template"
	"io"
	"time"

	"github.com/vaishnavisales/storefront/internal/catalog"
	"github.com/vaishnavisales/storefront/internal/domain"
	"github.com/vaishnavisales/storefront/internal/pricing"
)

// Line is one billed item. Unit values are per piece.
type Line struct {
	Name            string
	Size            string
	Quantity        int
	UnitPrice       domain.Money
	UnitMRP         domain.Money
	DiscountPercent int64
	Total           domain.Money
}

type Invoice struct {
	OrderID     string
	Date        string
	Store       domain.StoreInfo
	Lines       []Line
	SubtotalMRP domain.Money
	Savings     domain.Money
	GrandTotal  domain.Money
	IssuedAt    time.Time
}

// FromOrder builds the invoice of order. Orders stored without an MRP take the
// catalog MRP of the product, or failing that the price itself. products may be nil.
func FromOrder(order *domain.Order, store domain.StoreInfo, products *catalog.Catalog, issuedAt time.Time) *Invoice {
	qty := order.Count
	if qty <= 0 {
		qty = 1
	}

	unitPrice := order.Amount / domain.Money(qty)
	subtotalMRP := order.MRP
	unitMRP := order.MRP / domain.Money(qty)
	if order.MRP <= 0 {
		unitMRP = unitPrice
		if products != nil {
			if p, err := products.Get(order.ProductID); err == nil {
				unitMRP = pricing.UnitMRP(p, order.Size)
			}
		}
		subtotalMRP = pricing.LineTotal(unitMRP, qty)
	}

	line := Line{
		Name:            order.ProductName,
		Size:            order.Size,
		Quantity:        qty,
		UnitPrice:       unitPrice,
		UnitMRP:         unitMRP,
		DiscountPercent: pricing.DisplayDiscount(unitMRP, unitPrice),
		Total:           order.Amount,
	}

	return &Invoice{
		OrderID:     order.ID,
		Date:        order.Date,
		Store:       store,
		Lines:       []Line{line},
		SubtotalMRP: subtotalMRP,
		Savings:     pricing.Savings(subtotalMRP, order.Amount),
		GrandTotal:  order.Amount,
		IssuedAt:    issuedAt,
	}
}

var page = template.Must(template.New("invoice").Funcs(template.FuncMap{
	"inr": pricing.FormatINR,
}).Parse(invoiceHTML))

// RenderHTML writes the invoice as a standalone HTML page
func RenderHTML(w io.Writer, inv *Invoice) error {
	return page.Execute(w, inv)
}

const invoiceHTML = `<!DOCTYPE html>
<html>
  <head>
    <meta charset="utf-8" />
    <meta name="viewport" content="width=device-width, initial-scale=1.0" />
    <title>Invoice #{{.OrderID}}</title>
    <style>
      body { font-family: 'Helvetica Neue', Helvetica, Arial, sans-serif; padding: 50px; color: #333; line-height: 1.6; }
      .header { text-align: center; margin-bottom: 50px; border-bottom: 3px solid #007AFF; padding-bottom: 30px; }
      .store-name { font-size: 32px; font-weight: bold; color: #007AFF; margin-bottom: 8px; }
      .store-info { font-size: 15px; color: #555; margin-bottom: 4px; }
      .invoice-title { font-size: 28px; font-weight: bold; margin-top: 25px; text-transform: uppercase; letter-spacing: 2px; }
      .order-meta { margin-bottom: 40px; display: flex; justify-content: space-between; background: #f8f9fa; padding: 15px; }
      table { width: 100%; border-collapse: collapse; margin-bottom: 40px; }
      th { text-align: left; border-bottom: 2px solid #eee; padding: 15px 10px; color: #666; font-size: 13px; text-transform: uppercase; }
      td { padding: 20px 10px; border-bottom: 1px solid #f1f1f1; }
      .mrp { text-align: right; color: #999; text-decoration: line-through; }
      .offer { text-align: right; color: #34C759; font-weight: bold; }
      .total { text-align: right; font-weight: bold; color: #007AFF; }
      .totals { border-top: 2px solid #eee; padding-top: 25px; text-align: right; }
      .savings { color: #34C759; font-weight: bold; }
      .grand-total { font-size: 32px; font-weight: bold; color: #007AFF; }
      .footer { margin-top: 60px; text-align: center; font-size: 13px; color: #888; border-top: 1px solid #eee; padding-top: 30px; }
    </style>
  </head>
  <body>
    <div class="header">
      <div class="store-name">{{.Store.Name}}</div>
      <div class="store-info">{{.Store.Address}}</div>
      <div class="store-info">Phone: {{.Store.Phone}}</div>
      <div class="invoice-title">Invoice</div>
    </div>

    <div class="order-meta">
      <div><strong>Order ID:</strong> #{{.OrderID}}</div>
      <div><strong>Date:</strong> {{.Date}}</div>
    </div>

    <table>
      <thead>
        <tr>
          <th>Item Description</th>
          <th style="text-align: center;">Qty</th>
          <th style="text-align: right;">MRP</th>
          <th style="text-align: right;">Offer (%)</th>
          <th style="text-align: right;">Total</th>
        </tr>
      </thead>
      <tbody>
        {{- range .Lines}}
        <tr>
          <td><strong>{{.Name}}</strong><div>Size: {{.Size}}</div></td>
          <td style="text-align: center;">{{.Quantity}}</td>
          <td class="mrp">{{inr .UnitMRP}}</td>
          <td class="offer">{{.DiscountPercent}}% OFF</td>
          <td class="total">{{inr .Total}}</td>
        </tr>
        {{- end}}
      </tbody>
    </table>

    <div class="totals">
      <div>Subtotal (MRP): {{inr .SubtotalMRP}}</div>
      <div class="savings">Total Savings: - {{inr .Savings}}</div>
      <div>Grand Total: <span class="grand-total">{{inr .GrandTotal}}</span></div>
    </div>

    <div class="footer">
      <p><strong>Thank you for shopping with American Tourister!</strong></p>
      <p>This is a computer-generated invoice and does not require a signature.</p>
      <p>&copy; {{.IssuedAt.Year}} {{.Store.Name}}. All rights reserved.</p>
    </div>
  </body>
</html>
`
