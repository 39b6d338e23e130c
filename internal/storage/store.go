// Package storage is the key/value blob store the storefront persists to.
//
// Every blob carries an opaque version token. Writers pass the version they
// read back to Save; a stale version fails with ErrVersionConflict instead of
// silently overwriting another writer's change.
package storage

import (
	"context"
	"errors"
)

// Fixed keys of the persisted collections and session values
const (
	KeyOrders       = "@orders_data"
	KeySales        = "@sales_data"
	KeyWishlist     = "@wishlist_data"
	KeyUsers        = "@users_list"
	KeyCurrentUser  = "@current_user"
	KeyIsAdmin      = "@is_admin"
	KeySessionID    = "@session_id"
	KeyAdminProfile = "@admin_profile"
	KeyOrderEvents  = "@order_events"
	KeyIdempotency  = "@idempotency_keys"
)

// CollectionKeys lists the keys holding JSON arrays, in migration order
var CollectionKeys = []string{KeyUsers, KeyOrders, KeySales, KeyOrderEvents, KeyIdempotency}

// AnyVersion makes Save skip the version check
const AnyVersion = "*"

// ErrVersionConflict is returned by Save when the stored version differs from the expected one
var ErrVersionConflict = errors.New("storage: version conflict")

// Blob is a stored value. Data is nil and Version is empty when the key was never written.
type Blob struct {
	Key     string
	Data    []byte
	Version string
}

// Exists reports whether the key held a value
func (b *Blob) Exists() bool {
	return b != nil && b.Data != nil
}

// Store is a get/set-blob-by-key persistence backend
type Store interface {
	// Load returns the blob for key. A missing key is not an error.
	Load(ctx context.Context, key string) (*Blob, error)
	// Save writes data if the stored version equals ifMatch ("" = key must not exist,
	// AnyVersion = unconditional) and returns the new version.
	Save(ctx context.Context, key string, data []byte, ifMatch string) (string, error)
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	Close() error
}
