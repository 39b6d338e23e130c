package bootstrap

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"github.com/vaishnavisales/storefront/internal/repository/blob"
	"github.com/vaishnavisales/storefront/internal/session"
	"github.com/vaishnavisales/storefront/internal/storage"
)

// MigrationTargets lists every enveloped collection in store: the shared ones
// plus the wishlist of each registered user and of the administrator.
func MigrationTargets(ctx context.Context, store storage.Store, adminEmail string, logger *zap.Logger) ([]*storage.Collection[json.RawMessage], error) {
	var out []*storage.Collection[json.RawMessage]
	for _, key := range storage.CollectionKeys {
		out = append(out, storage.NewCollection[json.RawMessage](store, key, logger))
	}

	users, err := blob.NewUserRepository(store, logger).List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read users: %w", err)
	}
	admin, err := session.NewManager(store, logger).AdminProfile(ctx, adminEmail)
	if err != nil {
		return nil, fmt.Errorf("failed to read admin profile: %w", err)
	}

	owners := []string{admin.ID}
	if admin.ID != session.DefaultAdminProfile.ID {
		owners = append(owners, session.DefaultAdminProfile.ID)
	}
	for _, u := range users {
		owners = append(owners, u.ID)
	}

	seen := make(map[string]bool, len(owners))
	for _, id := range owners {
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		scoped := storage.UserScope(store, id)
		out = append(out, storage.NewCollection[json.RawMessage](scoped, storage.KeyWishlist, logger))
	}
	return out, nil
}
