package storage

import "context"

type prefixedStore struct {
	inner  Store
	prefix string
}

// WithPrefix scopes every key of inner under prefix. Closing the returned
// store does not close inner.
func WithPrefix(inner Store, prefix string) Store {
	return &prefixedStore{inner: inner, prefix: prefix}
}

func (s *prefixedStore) Load(ctx context.Context, key string) (*Blob, error) {
	b, err := s.inner.Load(ctx, s.prefix+key)
	if err != nil {
		return nil, err
	}
	b.Key = key
	return b, nil
}

func (s *prefixedStore) Save(ctx context.Context, key string, data []byte, ifMatch string) (string, error) {
	return s.inner.Save(ctx, s.prefix+key, data, ifMatch)
}

func (s *prefixedStore) Delete(ctx context.Context, key string) error {
	return s.inner.Delete(ctx, s.prefix+key)
}

func (s *prefixedStore) Close() error {
	return nil
}

// UserScope returns the per-user namespace holding session values and the wishlist
func UserScope(inner Store, userID string) Store {
	return WithPrefix(inner, "users/"+userID+"/")
}
