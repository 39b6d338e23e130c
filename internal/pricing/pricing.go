// Package pricing holds the pure price, MRP and discount calculations used by
// the cart, checkout and invoice code.
package pricing

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/vaishnavisales/storefront/internal/domain"
)

var (
	hundred = decimal.NewFromInt(100)
	half    = decimal.New(5, -1)
)

// UnitPrice returns the size-specific price when the product defines one, else the base price
func UnitPrice(p *domain.Product, size string) domain.Money {
	if price, ok := p.SizePrices[size]; ok {
		return price
	}
	return p.Price
}

// UnitMRP returns the size-specific MRP when the product defines one, else the base MRP
func UnitMRP(p *domain.Product, size string) domain.Money {
	if mrp, ok := p.SizeMRPs[size]; ok {
		return mrp
	}
	return p.MRP
}

// DiscountPercent returns floor((mrp-price)/mrp*100 + 0.5), so halves round
// toward +inf for negative discounts too (price above mrp).
// It fails when mrp is not positive.
func DiscountPercent(mrp, price domain.Money) (int64, error) {
	if mrp <= 0 {
		return 0, fmt.Errorf("discount undefined for mrp %d", mrp)
	}
	pct := decimal.NewFromInt(mrp - price).
		Div(decimal.NewFromInt(mrp)).
		Mul(hundred).
		Add(half).
		Floor()
	return pct.IntPart(), nil
}

// DisplayDiscount is the percentage shown next to a crossed-out MRP.
// A missing MRP is treated as equal to the price, giving 0.
func DisplayDiscount(mrp, price domain.Money) int64 {
	if mrp <= 0 {
		mrp = price
	}
	pct, err := DiscountPercent(mrp, price)
	if err != nil {
		return 0
	}
	return pct
}

// LineTotal is unitPrice * quantity
func LineTotal(unitPrice domain.Money, quantity int) domain.Money {
	return unitPrice * domain.Money(quantity)
}

// CartTotal sums price*quantity over all lines; an empty cart totals 0
func CartTotal(lines []domain.CartLine) domain.Money {
	var total domain.Money
	for _, line := range lines {
		total += LineTotal(line.Price, line.Quantity)
	}
	return total
}

// CartMRP sums mrp*quantity over all lines
func CartMRP(lines []domain.CartLine) domain.Money {
	var total domain.Money
	for _, line := range lines {
		total += LineTotal(line.MRP, line.Quantity)
	}
	return total
}

// Savings is the amount saved against MRP, never negative
func Savings(mrpTotal, priceTotal domain.Money) domain.Money {
	if mrpTotal <= priceTotal {
		return 0
	}
	return mrpTotal - priceTotal
}

// FormatINR formats an amount with Indian digit grouping, e.g. 123456 -> "₹1,23,456"
func FormatINR(amount domain.Money) string {
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}
	digits := decimal.NewFromInt(amount).String()
	if len(digits) <= 3 {
		return sign + "₹" + digits
	}
	head, tail := digits[:len(digits)-3], digits[len(digits)-3:]
	out := ""
	for len(head) > 2 {
		out = "," + head[len(head)-2:] + out
		head = head[:len(head)-2]
	}
	return sign + "₹" + head + out + "," + tail
}
