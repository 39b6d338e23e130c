package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func storeContract(t *testing.T, s Store) {
	ctx := context.Background()

	blob, err := s.Load(ctx, KeyOrders)
	require.NoError(t, err)
	assert.False(t, blob.Exists())
	assert.Empty(t, blob.Version)

	v1, err := s.Save(ctx, KeyOrders, []byte(`[1]`), "")
	require.NoError(t, err)
	assert.NotEmpty(t, v1)

	_, err = s.Save(ctx, KeyOrders, []byte(`[2]`), "")
	assert.ErrorIs(t, err, ErrVersionConflict, "create over existing key")

	v2, err := s.Save(ctx, KeyOrders, []byte(`[1,2]`), v1)
	require.NoError(t, err)
	assert.NotEqual(t, v1, v2)

	_, err = s.Save(ctx, KeyOrders, []byte(`[3]`), v1)
	assert.ErrorIs(t, err, ErrVersionConflict, "stale version")

	blob, err = s.Load(ctx, KeyOrders)
	require.NoError(t, err)
	assert.JSONEq(t, `[1,2]`, string(blob.Data))
	assert.Equal(t, v2, blob.Version)

	_, err = s.Save(ctx, KeyOrders, []byte(`[]`), AnyVersion)
	require.NoError(t, err)

	require.NoError(t, s.Delete(ctx, KeyOrders))
	require.NoError(t, s.Delete(ctx, KeyOrders))
	blob, err = s.Load(ctx, KeyOrders)
	require.NoError(t, err)
	assert.False(t, blob.Exists())
}

func TestMemoryStore(t *testing.T) {
	storeContract(t, NewMemoryStore())
}

func TestFileStore(t *testing.T) {
	dir := t.TempDir()
	s, err := NewFileStore(dir, zap.NewNop())
	require.NoError(t, err)
	storeContract(t, s)
}

func TestFileStore_WritesPlainJSONFiles(t *testing.T) {
	dir := t.TempDir()
	s, err := NewFileStore(dir, zap.NewNop())
	require.NoError(t, err)

	_, err = s.Save(context.Background(), KeySales, []byte(`[]`), AnyVersion)
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, "sales_data.json"))
	require.NoError(t, err)
	assert.Equal(t, `[]`, string(data))
}

func TestFileStore_DetectsExternalEdits(t *testing.T) {
	dir := t.TempDir()
	s, err := NewFileStore(dir, zap.NewNop())
	require.NoError(t, err)
	ctx := context.Background()

	v, err := s.Save(ctx, KeySales, []byte(`[]`), "")
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "sales_data.json"), []byte(`[{"id":"x"}]`), 0o644))

	_, err = s.Save(ctx, KeySales, []byte(`[]`), v)
	assert.ErrorIs(t, err, ErrVersionConflict)
}

func TestWithPrefix(t *testing.T) {
	inner := NewMemoryStore()
	ctx := context.Background()
	scoped := UserScope(inner, "42")

	_, err := scoped.Save(ctx, KeyIsAdmin, []byte(`true`), AnyVersion)
	require.NoError(t, err)

	blob, err := inner.Load(ctx, "users/42/"+KeyIsAdmin)
	require.NoError(t, err)
	assert.Equal(t, `true`, string(blob.Data))

	blob, err = scoped.Load(ctx, KeyIsAdmin)
	require.NoError(t, err)
	assert.Equal(t, KeyIsAdmin, blob.Key)

	blob, err = inner.Load(ctx, KeyIsAdmin)
	require.NoError(t, err)
	assert.False(t, blob.Exists())
}

func TestValues(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	var admin bool
	ok, err := LoadValue(ctx, s, KeyIsAdmin, &admin)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, SaveValue(ctx, s, KeyIsAdmin, true))
	ok, err = LoadValue(ctx, s, KeyIsAdmin, &admin)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.True(t, admin)

	_, err = s.Save(ctx, KeyIsAdmin, []byte(`{not json`), AnyVersion)
	require.NoError(t, err)
	ok, err = LoadValue(ctx, s, KeyIsAdmin, &admin)
	require.NoError(t, err)
	assert.False(t, ok)
}
