package session

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/vaishnavisales/storefront/internal/domain"
	"github.com/vaishnavisales/storefront/internal/storage"
)

func TestManager_BeginStripsPassword(t *testing.T) {
	store := storage.NewMemoryStore()
	m := NewManager(store, zap.NewNop())
	ctx := context.Background()

	require.NoError(t, m.Begin(ctx, domain.User{ID: "u1", Name: "Asha", Password: "hash"}, false, "s1"))

	blob, err := store.Load(ctx, "users/u1/"+storage.KeyCurrentUser)
	require.NoError(t, err)
	assert.NotContains(t, string(blob.Data), "hash")

	user, ok, err := m.Current(ctx, "u1")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "Asha", user.Name)
	assert.Empty(t, user.Password)
}

func TestManager_SessionsAreIsolated(t *testing.T) {
	m := NewManager(storage.NewMemoryStore(), zap.NewNop())
	ctx := context.Background()

	require.NoError(t, m.Begin(ctx, domain.User{ID: "admin"}, true, "s-admin"))
	require.NoError(t, m.Begin(ctx, domain.User{ID: "u1"}, false, "s-u1"))

	on, err := m.IsAdminMode(ctx, "admin")
	require.NoError(t, err)
	assert.True(t, on)

	on, err = m.IsAdminMode(ctx, "u1")
	require.NoError(t, err)
	assert.False(t, on)
}

func TestManager_ToggleAndEnd(t *testing.T) {
	m := NewManager(storage.NewMemoryStore(), zap.NewNop())
	ctx := context.Background()
	require.NoError(t, m.Begin(ctx, domain.User{ID: "admin"}, true, "s-admin"))

	on, err := m.ToggleAdminMode(ctx, "admin")
	require.NoError(t, err)
	assert.False(t, on)

	on, err = m.ToggleAdminMode(ctx, "admin")
	require.NoError(t, err)
	assert.True(t, on)

	require.NoError(t, m.End(ctx, "admin"))
	_, ok, err := m.Current(ctx, "admin")
	require.NoError(t, err)
	assert.False(t, ok)

	on, err = m.IsAdminMode(ctx, "admin")
	require.NoError(t, err)
	assert.False(t, on)
}

func TestManager_ActiveTracksLatestSession(t *testing.T) {
	m := NewManager(storage.NewMemoryStore(), zap.NewNop())
	ctx := context.Background()

	require.NoError(t, m.Begin(ctx, domain.User{ID: "u1"}, false, "first"))
	active, err := m.Active(ctx, "u1", "first")
	require.NoError(t, err)
	assert.True(t, active)

	require.NoError(t, m.Begin(ctx, domain.User{ID: "u1"}, false, "second"))
	active, err = m.Active(ctx, "u1", "first")
	require.NoError(t, err)
	assert.False(t, active)
	active, err = m.Active(ctx, "u1", "second")
	require.NoError(t, err)
	assert.True(t, active)

	require.NoError(t, m.End(ctx, "u1"))
	active, err = m.Active(ctx, "u1", "second")
	require.NoError(t, err)
	assert.False(t, active)

	active, err = m.Active(ctx, "u1", "")
	require.NoError(t, err)
	assert.False(t, active)
}

func TestManager_AdminProfile(t *testing.T) {
	m := NewManager(storage.NewMemoryStore(), zap.NewNop())
	ctx := context.Background()

	profile, err := m.AdminProfile(ctx, "admin@americantourister.com")
	require.NoError(t, err)
	assert.Equal(t, "admin", profile.ID)
	assert.Equal(t, "Admin", profile.Name)
	assert.Equal(t, int64(1734950400000), profile.CreatedAt)
	assert.Equal(t, "admin@americantourister.com", profile.Email)

	profile.Name = "Store Owner"
	require.NoError(t, m.SaveAdminProfile(ctx, profile))

	profile, err = m.AdminProfile(ctx, "admin@americantourister.com")
	require.NoError(t, err)
	assert.Equal(t, "Store Owner", profile.Name)
}
