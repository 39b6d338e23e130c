package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"go.uber.org/zap"
)

// maxAttempts bounds how often Mutate re-reads after a version conflict
const maxAttempts = 3

// Collection is a JSON array persisted whole under one key
type Collection[T any] struct {
	store  Store
	key    string
	logger *zap.Logger
}

// NewCollection binds a collection of T to key in store
func NewCollection[T any](store Store, key string, logger *zap.Logger) *Collection[T] {
	return &Collection[T]{store: store, key: key, logger: logger}
}

// Key returns the storage key
func (c *Collection[T]) Key() string {
	return c.key
}

func (c *Collection[T]) load(ctx context.Context) ([]T, string, error) {
	blob, err := c.store.Load(ctx, c.key)
	if err != nil {
		return nil, "", fmt.Errorf("failed to load %s: %w", c.key, err)
	}
	if !blob.Exists() {
		return []T{}, blob.Version, nil
	}
	items, _, err := DecodeList[T](blob.Data)
	if errors.Is(err, ErrMalformed) {
		c.logger.Warn("Malformed collection blob, treating as empty",
			zap.String("key", c.key), zap.Error(err))
		return []T{}, blob.Version, nil
	}
	if err != nil {
		return nil, "", fmt.Errorf("failed to decode %s: %w", c.key, err)
	}
	return items, blob.Version, nil
}

// List returns every item. A missing or malformed blob is an empty list.
func (c *Collection[T]) List(ctx context.Context) ([]T, error) {
	items, _, err := c.load(ctx)
	return items, err
}

// Mutate loads the collection, applies fn and saves the result. On a version
// conflict the whole read-modify-write is retried, so fn must be free of side
// effects. Errors returned by fn abort without saving and are returned as is.
func (c *Collection[T]) Mutate(ctx context.Context, fn func([]T) ([]T, error)) ([]T, error) {
	for attempt := 1; ; attempt++ {
		items, version, err := c.load(ctx)
		if err != nil {
			return nil, err
		}
		updated, err := fn(items)
		if err != nil {
			return nil, err
		}
		err = c.save(ctx, updated, version)
		if err == nil {
			return updated, nil
		}
		if !errors.Is(err, ErrVersionConflict) || attempt >= maxAttempts {
			return nil, err
		}
		c.logger.Debug("Version conflict, retrying",
			zap.String("key", c.key), zap.Int("attempt", attempt))
	}
}

// Replace overwrites the collection regardless of its current version
func (c *Collection[T]) Replace(ctx context.Context, items []T) error {
	return c.save(ctx, items, AnyVersion)
}

func (c *Collection[T]) save(ctx context.Context, items []T, ifMatch string) error {
	data, err := EncodeList(items)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", c.key, err)
	}
	if _, err := c.store.Save(ctx, c.key, data, ifMatch); err != nil {
		return fmt.Errorf("failed to save %s: %w", c.key, err)
	}
	return nil
}

// Migrate rewrites the blob in the current envelope if it was stored with an
// older schema. It reports whether a rewrite happened.
func (c *Collection[T]) Migrate(ctx context.Context) (bool, error) {
	blob, err := c.store.Load(ctx, c.key)
	if err != nil {
		return false, fmt.Errorf("failed to load %s: %w", c.key, err)
	}
	if !blob.Exists() {
		return false, nil
	}
	items, version, err := DecodeList[T](blob.Data)
	if err != nil {
		return false, fmt.Errorf("failed to decode %s: %w", c.key, err)
	}
	if version == SchemaVersion {
		return false, nil
	}
	if err := c.save(ctx, items, blob.Version); err != nil {
		return false, err
	}
	c.logger.Info("Collection migrated",
		zap.String("key", c.key),
		zap.Int("from_schema", version),
		zap.Int("to_schema", SchemaVersion),
		zap.Int("items", len(items)),
	)
	return true, nil
}

// LoadValue decodes a single JSON value stored under key into dst.
// It reports false when the key is missing or holds malformed JSON.
func LoadValue(ctx context.Context, store Store, key string, dst interface{}) (bool, error) {
	blob, err := store.Load(ctx, key)
	if err != nil {
		return false, fmt.Errorf("failed to load %s: %w", key, err)
	}
	if !blob.Exists() {
		return false, nil
	}
	if err := json.Unmarshal(blob.Data, dst); err != nil {
		return false, nil
	}
	return true, nil
}

// SaveValue stores a single JSON value under key, unconditionally
func SaveValue(ctx context.Context, store Store, key string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}
	if _, err := store.Save(ctx, key, data, AnyVersion); err != nil {
		return fmt.Errorf("failed to save %s: %w", key, err)
	}
	return nil
}
