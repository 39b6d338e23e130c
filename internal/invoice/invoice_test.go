package invoice

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vaishnavisales/storefront/internal/catalog"
	"github.com/vaishnavisales/storefront/internal/domain"
)

var store = domain.StoreInfo{Name: "Vaishnavi Sales", Address: "Main Road, Hanamkonda", Phone: "8374200125"}

func TestFromOrder(t *testing.T) {
	order := &domain.Order{
		ID: "o1", ProductID: "bern", ProductName: "Bern", Size: "60cm",
		Count: 2, Amount: 8900, MRP: 14800, Date: "2026-10-16",
	}

	inv := FromOrder(order, store, catalog.Default(), time.Date(2026, 10, 16, 0, 0, 0, 0, time.UTC))
	require.Len(t, inv.Lines, 1)
	line := inv.Lines[0]
	assert.Equal(t, domain.Money(4450), line.UnitPrice)
	assert.Equal(t, domain.Money(7400), line.UnitMRP)
	assert.Equal(t, int64(40), line.DiscountPercent)
	assert.Equal(t, domain.Money(14800), inv.SubtotalMRP)
	assert.Equal(t, domain.Money(5900), inv.Savings)
	assert.Equal(t, domain.Money(8900), inv.GrandTotal)
}

func TestFromOrder_MissingMRPFallsBack(t *testing.T) {
	legacy := &domain.Order{ID: "o2", ProductID: "memory", ProductName: "Memory", Size: "31cm", Count: 1, Amount: 1192}

	inv := FromOrder(legacy, store, catalog.Default(), time.Now())
	assert.Equal(t, domain.Money(1490), inv.Lines[0].UnitMRP)
	assert.Equal(t, domain.Money(298), inv.Savings)

	unknown := &domain.Order{ID: "o3", ProductID: "gone", ProductName: "Old bag", Count: 2, Amount: 1000}
	inv = FromOrder(unknown, store, nil, time.Now())
	assert.Equal(t, domain.Money(500), inv.Lines[0].UnitMRP)
	assert.Equal(t, int64(0), inv.Lines[0].DiscountPercent)
	assert.Equal(t, domain.Money(0), inv.Savings)
}

func TestRenderHTML(t *testing.T) {
	order := &domain.Order{
		ID: "o1", ProductName: "Bern <Cabin>", Size: "60cm",
		Count: 1, Amount: 123456, MRP: 200000, Date: "2026-10-16",
	}
	var buf bytes.Buffer
	require.NoError(t, RenderHTML(&buf, FromOrder(order, store, nil, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))))

	html := buf.String()
	assert.Contains(t, html, "Invoice #o1")
	assert.Contains(t, html, "₹1,23,456")
	assert.Contains(t, html, "Bern &lt;Cabin&gt;")
	assert.Contains(t, html, "38% OFF")
	assert.Contains(t, html, "2026 Vaishnavi Sales")
}
