package blob

import (
	"context"

	"go.uber.org/zap"

	"github.com/vaishnavisales/storefront/internal/domain"
	"github.com/vaishnavisales/storefront/internal/storage"
)

type saleRepository struct {
	sales  *storage.Collection[domain.Sale]
	logger *zap.Logger
}

// NewSaleRepository creates a new sale repository
func NewSaleRepository(store storage.Store, logger *zap.Logger) *saleRepository {
	return &saleRepository{
		sales:  storage.NewCollection[domain.Sale](store, storage.KeySales, logger),
		logger: logger,
	}
}

func (r *saleRepository) List(ctx context.Context) ([]domain.Sale, error) {
	sales, err := r.sales.List(ctx)
	if err != nil {
		r.logger.Error("Failed to list sales", zap.Error(err))
		return nil, err
	}
	return sales, nil
}

func (r *saleRepository) Prepend(ctx context.Context, sale domain.Sale) error {
	_, err := r.sales.Mutate(ctx, func(sales []domain.Sale) ([]domain.Sale, error) {
		return append([]domain.Sale{sale}, sales...), nil
	})
	if err != nil {
		r.logger.Error("Failed to store sale", zap.String("sale_id", sale.ID), zap.Error(err))
		return err
	}
	return nil
}

func (r *saleRepository) Remove(ctx context.Context, id string) error {
	_, err := r.sales.Mutate(ctx, func(sales []domain.Sale) ([]domain.Sale, error) {
		kept := sales[:0]
		for _, s := range sales {
			if s.ID != id {
				kept = append(kept, s)
			}
		}
		return kept, nil
	})
	if err != nil {
		r.logger.Error("Failed to remove sale", zap.String("sale_id", id), zap.Error(err))
		return err
	}
	return nil
}

func (r *saleRepository) Clear(ctx context.Context) error {
	if err := r.sales.Replace(ctx, nil); err != nil {
		r.logger.Error("Failed to clear sales", zap.Error(err))
		return err
	}
	return nil
}
