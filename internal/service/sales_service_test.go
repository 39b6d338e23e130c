package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vaishnavisales/storefront/internal/domain"
	"github.com/vaishnavisales/storefront/internal/storage"
	"github.com/vaishnavisales/storefront/pkg/errors"
)

func TestRecordSale_FromCatalog(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	sale, err := f.sales.RecordSale(ctx, SaleRequest{ProductID: "bern", Size: "84cm"})
	require.NoError(t, err)
	assert.Equal(t, "Bern", sale.ProductName)
	assert.Equal(t, domain.Money(6100), sale.Amount)
	assert.Equal(t, domain.CategorySoftLuggage, sale.Category)
	assert.Equal(t, "#007AFF", sale.Color)
	assert.Equal(t, "2026-10-16", sale.Date)
	assert.Equal(t, "10:30", sale.Time)
}

func TestRecordSale_PrependsNewestFirst(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	first, err := f.sales.RecordSale(ctx, SaleRequest{ProductName: "Repair", Amount: 250})
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultSaleColor, first.Color)
	second, err := f.sales.RecordSale(ctx, SaleRequest{ProductID: "memory", Amount: 1000})
	require.NoError(t, err)

	sales, err := f.sales.List(ctx)
	require.NoError(t, err)
	require.Len(t, sales, 2)
	assert.Equal(t, second.ID, sales[0].ID)
	assert.Equal(t, domain.Money(1250), Total(sales))
}

func TestRecordSale_Validation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	var verr *errors.ErrValidation

	_, err := f.sales.RecordSale(ctx, SaleRequest{Amount: 100})
	assert.ErrorAs(t, err, &verr)
	_, err = f.sales.RecordSale(ctx, SaleRequest{ProductName: "Strap", Amount: -5})
	assert.ErrorAs(t, err, &verr)
	_, err = f.sales.RecordSale(ctx, SaleRequest{ProductID: "ghost"})
	assert.ErrorAs(t, err, &verr)
	_, err = f.sales.RecordSale(ctx, SaleRequest{ProductName: "Strap", Amount: 5, Date: "16/10/2026"})
	assert.ErrorAs(t, err, &verr)
}

func TestClearAllSales_KeepsOrders(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.placeOrder(t, "u1", "bern", "60cm", 1)
	_, err := f.sales.RecordSale(ctx, SaleRequest{ProductID: "bern"})
	require.NoError(t, err)

	require.NoError(t, f.sales.ClearAllSales(ctx))

	sales, err := f.sales.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, sales)
	orders, err := f.orders.ListVisible(ctx, Viewer{IsAdmin: true})
	require.NoError(t, err)
	assert.Len(t, orders, 1)
	assert.Contains(t, f.publisher.types(), domain.EventSalesCleared)
}

func TestClearAllSales_FailureIsSurfaced(t *testing.T) {
	f := newFixture(t)
	f.store.failOn(storage.KeySales, true)

	err := f.sales.ClearAllSales(context.Background())
	var unsaved *errors.ErrUnsaved
	assert.ErrorAs(t, err, &unsaved)
}
