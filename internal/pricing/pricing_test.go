package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vaishnavisales/storefront/internal/domain"
)

func bern() *domain.Product {
	return &domain.Product{
		ID:         "bern",
		Price:      4450,
		MRP:        7400,
		Sizes:      []string{"60cm", "72cm", "84cm"},
		SizePrices: map[string]domain.Money{"60cm": 4450, "72cm": 5250, "84cm": 6100},
		SizeMRPs:   map[string]domain.Money{"72cm": 8750},
	}
}

func TestUnitPrice(t *testing.T) {
	p := bern()
	assert.Equal(t, domain.Money(5250), UnitPrice(p, "72cm"))
	assert.Equal(t, domain.Money(4450), UnitPrice(p, "unknown"))

	p.SizePrices = nil
	assert.Equal(t, domain.Money(4450), UnitPrice(p, "84cm"))
}

func TestUnitMRP(t *testing.T) {
	p := bern()
	assert.Equal(t, domain.Money(8750), UnitMRP(p, "72cm"))
	assert.Equal(t, domain.Money(7400), UnitMRP(p, "60cm"))
}

func TestDiscountPercent(t *testing.T) {
	pct, err := DiscountPercent(5000, 4000)
	require.NoError(t, err)
	assert.Equal(t, int64(20), pct)

	pct, err = DiscountPercent(3, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(33), pct)

	pct, err = DiscountPercent(8, 7)
	require.NoError(t, err)
	assert.Equal(t, int64(13), pct, "12.5 rounds up")

	pct, err = DiscountPercent(4000, 4000)
	require.NoError(t, err)
	assert.Equal(t, int64(0), pct)
}

func TestDiscountPercent_PriceAboveMRP(t *testing.T) {
	pct, err := DiscountPercent(8, 9)
	require.NoError(t, err)
	assert.Equal(t, int64(-12), pct, "-12.5 rounds toward +inf")

	pct, err = DiscountPercent(200, 203)
	require.NoError(t, err)
	assert.Equal(t, int64(-1), pct, "-1.5 rounds toward +inf")

	pct, err = DiscountPercent(100, 110)
	require.NoError(t, err)
	assert.Equal(t, int64(-10), pct)
}

func TestDiscountPercent_InRangeForValidPairs(t *testing.T) {
	for mrp := domain.Money(1); mrp <= 60; mrp++ {
		for price := domain.Money(1); price <= mrp; price++ {
			pct, err := DiscountPercent(mrp, price)
			require.NoError(t, err)
			assert.GreaterOrEqual(t, pct, int64(0))
			assert.LessOrEqual(t, pct, int64(100))
		}
	}
}

func TestDiscountPercent_RejectsNonPositiveMRP(t *testing.T) {
	_, err := DiscountPercent(0, 100)
	assert.Error(t, err)
	_, err = DiscountPercent(-5, 1)
	assert.Error(t, err)
	assert.Equal(t, int64(0), DisplayDiscount(0, 100))
}

func TestCartTotal(t *testing.T) {
	assert.Equal(t, domain.Money(0), CartTotal(nil))

	lines := []domain.CartLine{
		{ProductID: "bern", Size: "60cm", Quantity: 2, Price: 4450, MRP: 7400},
		{ProductID: "segno-4", Size: "34 L", Quantity: 1, Price: 4000, MRP: 5000},
	}
	assert.Equal(t, domain.Money(12900), CartTotal(lines))
	assert.Equal(t, domain.Money(19800), CartMRP(lines))
	assert.Equal(t, domain.Money(6900), Savings(CartMRP(lines), CartTotal(lines)))
	assert.Equal(t, domain.Money(0), Savings(100, 200))
}

func TestFormatINR(t *testing.T) {
	assert.Equal(t, "₹950", FormatINR(950))
	assert.Equal(t, "₹4,450", FormatINR(4450))
	assert.Equal(t, "₹1,23,456", FormatINR(123456))
	assert.Equal(t, "₹12,34,567", FormatINR(1234567))
	assert.Equal(t, "-₹1,000", FormatINR(-1000))
}
