package blob

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/vaishnavisales/storefront/internal/domain"
	"github.com/vaishnavisales/storefront/internal/storage"
	"github.com/vaishnavisales/storefront/pkg/errors"
)

// keys older than this are dropped on the next write
const idempotencyKeyTTL = 24 * time.Hour

type idempotencyKeyRepository struct {
	keys   *storage.Collection[domain.IdempotencyKey]
	logger *zap.Logger
	now    func() time.Time
}

// NewIdempotencyKeyRepository creates a new idempotency key repository
func NewIdempotencyKeyRepository(store storage.Store, logger *zap.Logger) *idempotencyKeyRepository {
	return &idempotencyKeyRepository{
		keys:   storage.NewCollection[domain.IdempotencyKey](store, storage.KeyIdempotency, logger),
		logger: logger,
		now:    time.Now,
	}
}

func (r *idempotencyKeyRepository) GetByKey(ctx context.Context, userID, key string) (*domain.IdempotencyKey, error) {
	keys, err := r.keys.List(ctx)
	if err != nil {
		r.logger.Error("Failed to get idempotency key", zap.Error(err))
		return nil, err
	}
	cutoff := r.now().Add(-idempotencyKeyTTL)
	for i := range keys {
		if keys[i].UserID == userID && keys[i].Key == key && keys[i].CreatedAt.After(cutoff) {
			return &keys[i], nil
		}
	}
	return nil, nil
}

func (r *idempotencyKeyRepository) Create(ctx context.Context, key *domain.IdempotencyKey) error {
	now := r.now()
	if key.CreatedAt.IsZero() {
		key.CreatedAt = now
	}
	cutoff := now.Add(-idempotencyKeyTTL)

	_, err := r.keys.Mutate(ctx, func(keys []domain.IdempotencyKey) ([]domain.IdempotencyKey, error) {
		kept := make([]domain.IdempotencyKey, 0, len(keys)+1)
		for _, k := range keys {
			if !k.CreatedAt.After(cutoff) {
				continue
			}
			if k.UserID == key.UserID && k.Key == key.Key {
				return nil, &errors.ErrConflict{Message: "idempotency key already used"}
			}
			kept = append(kept, k)
		}
		return append(kept, *key), nil
	})
	if err != nil {
		r.logger.Error("Failed to create idempotency key", zap.String("key", key.Key), zap.Error(err))
		return err
	}
	return nil
}
