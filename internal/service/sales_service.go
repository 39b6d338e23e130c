package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/vaishnavisales/storefront/internal/catalog"
	"github.com/vaishnavisales/storefront/internal/domain"
	"github.com/vaishnavisales/storefront/internal/events"
	"github.com/vaishnavisales/storefront/internal/pricing"
	"github.com/vaishnavisales/storefront/internal/repository"
	"github.com/vaishnavisales/storefront/pkg/errors"
)

type SalesService struct {
	repos    *repository.Repositories
	catalog  *catalog.Catalog
	recorder *eventRecorder
	logger   *zap.Logger
	now      func() time.Time
}

// NewSalesService creates a new sales service
func NewSalesService(
	repos *repository.Repositories,
	products *catalog.Catalog,
	publisher events.Publisher,
	logger *zap.Logger,
) *SalesService {
	return &SalesService{
		repos:    repos,
		catalog:  products,
		recorder: &eventRecorder{events: repos.OrderEvent, publisher: publisher, logger: logger},
		logger:   logger,
		now:      time.Now,
	}
}

// RecordSale adds a sale entered by hand ahead of the existing ones. A known
// product id fills in the name, category and the size's price when the amount
// is left out.
func (s *SalesService) RecordSale(ctx context.Context, req SaleRequest) (*domain.Sale, error) {
	now := s.now()
	sale := domain.Sale{
		ID:          uuid.NewString(),
		ProductID:   strings.TrimSpace(req.ProductID),
		ProductName: strings.TrimSpace(req.ProductName),
		Size:        req.Size,
		Amount:      req.Amount,
		Date:        req.Date,
		Time:        req.Time,
		Color:       req.Color,
	}

	if sale.ProductID != "" {
		product, err := s.catalog.Get(sale.ProductID)
		if err != nil {
			return nil, &errors.ErrValidation{
				Message: "Unknown product",
				Fields:  map[string]string{"product_id": sale.ProductID},
			}
		}
		if sale.Size == "" && len(product.Sizes) > 0 {
			sale.Size = product.Sizes[0]
		}
		if len(product.Sizes) > 0 && !product.HasSize(sale.Size) {
			return nil, &errors.ErrValidation{Message: "Unknown size", Fields: map[string]string{"size": sale.Size}}
		}
		if sale.ProductName == "" {
			sale.ProductName = product.Name
		}
		sale.ProductImage = product.Image
		sale.Category = product.Category
		if sale.Amount == 0 {
			sale.Amount = pricing.UnitPrice(product, sale.Size)
		}
	}

	if sale.ProductName == "" {
		return nil, &errors.ErrValidation{Message: "Product is required", Fields: map[string]string{"product_name": "required"}}
	}
	if sale.Amount <= 0 {
		return nil, &errors.ErrValidation{Message: "Amount must be positive", Fields: map[string]string{"amount": "must be positive"}}
	}
	if sale.Date == "" {
		sale.Date = now.Format(domain.DateLayout)
	} else if _, err := time.Parse(domain.DateLayout, sale.Date); err != nil {
		return nil, &errors.ErrValidation{Message: "Invalid date", Fields: map[string]string{"date": sale.Date}}
	}
	at, err := pickupTime(now, sale.Time)
	if err != nil {
		return nil, err
	}
	sale.Time = at
	if sale.Color == "" {
		if sale.Category != "" {
			sale.Color = sale.Category.Color()
		} else {
			sale.Color = domain.DefaultSaleColor
		}
	}

	if err := s.repos.Sale.Prepend(ctx, sale); err != nil {
		s.logger.Error("Failed to record sale", zap.Error(err))
		return nil, persistErr("record sale", err)
	}

	s.logger.Info("Sale recorded", zap.String("sale_id", sale.ID), zap.Int64("amount", sale.Amount))
	s.recorder.record(ctx, "", domain.EventSaleRecorded, map[string]interface{}{
		"sale_id": sale.ID,
		"amount":  sale.Amount,
		"source":  "manual",
	})
	return &sale, nil
}

// List returns every sale, newest first
func (s *SalesService) List(ctx context.Context) ([]domain.Sale, error) {
	return s.repos.Sale.List(ctx)
}

// Total sums the amounts of sales
func Total(sales []domain.Sale) domain.Money {
	var total domain.Money
	for _, sale := range sales {
		total += sale.Amount
	}
	return total
}

// ClearAllSales deletes every sale. Orders are kept.
func (s *SalesService) ClearAllSales(ctx context.Context) error {
	if err := s.repos.Sale.Clear(ctx); err != nil {
		return persistErr("clear sales", err)
	}
	s.logger.Info("All sales cleared")
	s.recorder.record(ctx, "", domain.EventSalesCleared, nil)
	return nil
}
