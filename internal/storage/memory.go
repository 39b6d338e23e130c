package storage

import (
	"context"
	"strconv"
	"sync"
)

type memoryEntry struct {
	data    []byte
	version int64
}

// MemoryStore keeps blobs in process memory
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	seq     int64 // versions are never reused, even across Delete
}

// NewMemoryStore creates an empty in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string]memoryEntry)}
}

func (s *MemoryStore) Load(ctx context.Context, key string) (*Blob, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.entries[key]
	if !ok {
		return &Blob{Key: key}, nil
	}
	data := make([]byte, len(e.data))
	copy(data, e.data)
	return &Blob{Key: key, Data: data, Version: strconv.FormatInt(e.version, 10)}, nil
}

func (s *MemoryStore) Save(ctx context.Context, key string, data []byte, ifMatch string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[key]
	current := ""
	if ok {
		current = strconv.FormatInt(e.version, 10)
	}
	if ifMatch != AnyVersion && ifMatch != current {
		return "", ErrVersionConflict
	}

	stored := make([]byte, len(data))
	copy(stored, data)
	s.seq++
	e = memoryEntry{data: stored, version: s.seq}
	s.entries[key] = e
	return strconv.FormatInt(e.version, 10), nil
}

func (s *MemoryStore) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, key)
	return nil
}

func (s *MemoryStore) Close() error {
	return nil
}
