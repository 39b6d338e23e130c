package cart

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vaishnavisales/storefront/internal/domain"
)

func segno() *domain.Product {
	return &domain.Product{
		ID: "segno-4", Name: "Segno 4.0", Category: domain.CategoryBackpacks,
		Price: 4000, MRP: 5000, Sizes: []string{"34 L"},
	}
}

func bern() *domain.Product {
	return &domain.Product{
		ID: "bern", Name: "Bern", Category: domain.CategorySoftLuggage,
		Price: 4450, MRP: 7400, Sizes: []string{"60cm", "72cm"},
		SizePrices: map[string]domain.Money{"60cm": 4450, "72cm": 5250},
	}
}

func TestAdd_SamePairIncrementsQuantity(t *testing.T) {
	c := New()
	c.Add(segno(), "34 L")
	c.Add(segno(), "34 L")

	lines := c.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, 2, lines[0].Quantity)
	assert.Equal(t, domain.Money(4000), lines[0].Price)
}

func TestAdd_DifferentSizesAreSeparateLines(t *testing.T) {
	c := New()
	c.Add(bern(), "60cm")
	c.Add(bern(), "72cm")

	lines := c.Lines()
	require.Len(t, lines, 2)
	assert.Equal(t, domain.Money(4450), lines[0].Price)
	assert.Equal(t, domain.Money(5250), lines[1].Price)
	assert.Equal(t, domain.Money(7400), lines[1].MRP)
}

func TestRemove(t *testing.T) {
	c := New()
	c.Add(bern(), "60cm")
	c.Add(bern(), "60cm")
	c.Add(segno(), "34 L")

	assert.True(t, c.Remove("bern", "60cm"))
	lines := c.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, "segno-4", lines[0].ProductID)
}

func TestRemove_MissingPairIsNoop(t *testing.T) {
	c := New()
	c.Add(segno(), "34 L")
	before := c.Lines()

	assert.False(t, c.Remove("segno-4", "40 L"))
	assert.False(t, c.Remove("nope", "34 L"))
	assert.Equal(t, before, c.Lines())
}

func TestTotals(t *testing.T) {
	c := New()
	assert.Equal(t, domain.Money(0), c.TotalAmount())
	assert.True(t, c.IsEmpty())

	c.Add(bern(), "60cm")
	c.Add(bern(), "60cm")
	c.Add(segno(), "34 L")

	assert.Equal(t, domain.Money(12900), c.TotalAmount())
	assert.Equal(t, domain.Money(19800), c.TotalMRP())
	assert.Equal(t, 3, c.Count())

	c.Remove("segno-4", "34 L")
	assert.Equal(t, domain.Money(8900), c.TotalAmount())
}

func TestClear(t *testing.T) {
	c := New()
	c.Add(segno(), "34 L")
	c.Clear()
	assert.True(t, c.IsEmpty())
	assert.Equal(t, domain.Money(0), c.TotalAmount())
}

func TestSubtract_KeepsItemsAddedAfterSnapshot(t *testing.T) {
	c := New()
	c.Add(bern(), "60cm")
	c.Add(segno(), "34 L")
	ordered := c.Lines()

	c.Add(bern(), "60cm")
	c.Add(bern(), "72cm")
	c.Subtract(ordered)

	lines := c.Lines()
	require.Len(t, lines, 2)
	assert.Equal(t, "bern", lines[0].ProductID)
	assert.Equal(t, "60cm", lines[0].Size)
	assert.Equal(t, 1, lines[0].Quantity)
	assert.Equal(t, "72cm", lines[1].Size)

	c.Subtract(c.Lines())
	assert.True(t, c.IsEmpty())
}

func TestLines_ReturnsSnapshot(t *testing.T) {
	c := New()
	c.Add(segno(), "34 L")
	lines := c.Lines()
	lines[0].Quantity = 99
	assert.Equal(t, 1, c.Lines()[0].Quantity)
}

func TestRegistry(t *testing.T) {
	r := NewRegistry()
	a := r.For("user-a")
	a.Add(segno(), "34 L")

	assert.Same(t, a, r.For("user-a"))
	assert.True(t, r.For("user-b").IsEmpty())

	r.Drop("user-a")
	assert.True(t, r.For("user-a").IsEmpty())
}
