package blob

import (
	"context"
	stderrors "errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/vaishnavisales/storefront/internal/domain"
	"github.com/vaishnavisales/storefront/internal/storage"
	"github.com/vaishnavisales/storefront/pkg/errors"
)

func newRepos(t *testing.T) (*storage.MemoryStore, context.Context) {
	t.Helper()
	return storage.NewMemoryStore(), context.Background()
}

func TestOrderRepository_PrependKeepsNewestFirst(t *testing.T) {
	store, ctx := newRepos(t)
	repo := NewOrderRepository(store, zap.NewNop())

	require.NoError(t, repo.Prepend(ctx, domain.Order{ID: "old"}))
	require.NoError(t, repo.Prepend(ctx, domain.Order{ID: "a"}, domain.Order{ID: "b"}))

	orders, err := repo.List(ctx)
	require.NoError(t, err)
	ids := []string{}
	for _, o := range orders {
		ids = append(ids, o.ID)
	}
	assert.Equal(t, []string{"a", "b", "old"}, ids)
}

func TestOrderRepository_Update(t *testing.T) {
	store, ctx := newRepos(t)
	repo := NewOrderRepository(store, zap.NewNop())
	require.NoError(t, repo.Prepend(ctx, domain.Order{ID: "o1", Status: domain.OrderStatusPending}))

	updated, err := repo.Update(ctx, "o1", func(o *domain.Order) error {
		o.Status = domain.OrderStatusPreparing
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusPreparing, updated.Status)

	boom := stderrors.New("boom")
	_, err = repo.Update(ctx, "o1", func(o *domain.Order) error {
		o.Status = domain.OrderStatusReady
		return boom
	})
	assert.Same(t, boom, err)

	stored, err := repo.GetByID(ctx, "o1")
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusPreparing, stored.Status, "aborted update is not saved")

	_, err = repo.Update(ctx, "missing", func(o *domain.Order) error { return nil })
	var nf *errors.ErrNotFound
	assert.ErrorAs(t, err, &nf)
}

func TestOrderRepository_ClearLeavesSales(t *testing.T) {
	store, ctx := newRepos(t)
	repos := NewRepositories(store, zap.NewNop())

	require.NoError(t, repos.Order.Prepend(ctx, domain.Order{ID: "o1"}))
	require.NoError(t, repos.Sale.Prepend(ctx, domain.Sale{ID: "s1"}))
	require.NoError(t, repos.Order.Clear(ctx))

	orders, err := repos.Order.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, orders)

	sales, err := repos.Sale.List(ctx)
	require.NoError(t, err)
	assert.Len(t, sales, 1)
}

func TestOrderRepository_ReadsLegacyArray(t *testing.T) {
	store, ctx := newRepos(t)
	_, err := store.Save(ctx, storage.KeyOrders,
		[]byte(`[{"id":"legacy","userId":"manual","productName":"Bern","count":1,"amount":4450}]`), storage.AnyVersion)
	require.NoError(t, err)

	order, err := NewOrderRepository(store, zap.NewNop()).GetByID(ctx, "legacy")
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusPending, order.CurrentStatus())
}

func TestSaleRepository_Remove(t *testing.T) {
	store, ctx := newRepos(t)
	repo := NewSaleRepository(store, zap.NewNop())

	require.NoError(t, repo.Prepend(ctx, domain.Sale{ID: "s1"}))
	require.NoError(t, repo.Prepend(ctx, domain.Sale{ID: "s2"}))
	require.NoError(t, repo.Remove(ctx, "s2"))

	sales, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, sales, 1)
	assert.Equal(t, "s1", sales[0].ID)
}

func TestUserRepository(t *testing.T) {
	store, ctx := newRepos(t)
	repo := NewUserRepository(store, zap.NewNop())

	require.NoError(t, repo.Create(ctx, domain.User{ID: "u1", Email: "Asha@Example.com"}))
	err := repo.Create(ctx, domain.User{ID: "u2", Email: "asha@example.com"})
	var conflict *errors.ErrConflict
	assert.ErrorAs(t, err, &conflict)

	u, err := repo.GetByEmail(ctx, "ASHA@example.com")
	require.NoError(t, err)
	assert.Equal(t, "u1", u.ID)

	require.NoError(t, repo.Create(ctx, domain.User{ID: "u2", Email: "ravi@example.com"}))
	_, err = repo.Update(ctx, "u2", func(u *domain.User) error {
		u.Email = "asha@example.com"
		return nil
	})
	assert.ErrorAs(t, err, &conflict)

	require.NoError(t, repo.Delete(ctx, "u1"))
	_, err = repo.GetByID(ctx, "u1")
	var nf *errors.ErrNotFound
	assert.ErrorAs(t, err, &nf)
}

func TestWishlistRepository_PerUser(t *testing.T) {
	store, ctx := newRepos(t)
	repo := NewWishlistRepository(store, zap.NewNop())

	added, err := repo.Add(ctx, "u1", domain.Product{ID: "bern"})
	require.NoError(t, err)
	assert.True(t, added)

	added, err = repo.Add(ctx, "u1", domain.Product{ID: "bern"})
	require.NoError(t, err)
	assert.False(t, added)

	other, err := repo.List(ctx, "u2")
	require.NoError(t, err)
	assert.Empty(t, other)

	removed, err := repo.Remove(ctx, "u1", "bern")
	require.NoError(t, err)
	assert.True(t, removed)

	removed, err = repo.Remove(ctx, "u1", "bern")
	require.NoError(t, err)
	assert.False(t, removed)
}

func TestOrderEventRepository(t *testing.T) {
	store, ctx := newRepos(t)
	repo := NewOrderEventRepository(store, zap.NewNop())

	e := &domain.OrderEvent{OrderID: "o1", EventType: domain.EventOrderCreated}
	require.NoError(t, repo.Create(ctx, e))
	assert.NotEmpty(t, e.ID)
	assert.False(t, e.CreatedAt.IsZero())
	require.NoError(t, repo.Create(ctx, &domain.OrderEvent{OrderID: "o2", EventType: domain.EventOrderCreated}))

	events, err := repo.GetByOrderID(ctx, "o1")
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, domain.EventOrderCreated, events[0].EventType)
}

func TestIdempotencyKeyRepository(t *testing.T) {
	store, ctx := newRepos(t)
	repo := NewIdempotencyKeyRepository(store, zap.NewNop())
	now := time.Date(2026, 10, 16, 10, 0, 0, 0, time.UTC)
	repo.now = func() time.Time { return now }

	missing, err := repo.GetByKey(ctx, "u1", "k1")
	require.NoError(t, err)
	assert.Nil(t, missing)

	require.NoError(t, repo.Create(ctx, &domain.IdempotencyKey{Key: "k1", UserID: "u1", RequestHash: "h", OrderIDs: []string{"o1"}}))

	found, err := repo.GetByKey(ctx, "u1", "k1")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, []string{"o1"}, found.OrderIDs)

	other, err := repo.GetByKey(ctx, "u2", "k1")
	require.NoError(t, err)
	assert.Nil(t, other)

	err = repo.Create(ctx, &domain.IdempotencyKey{Key: "k1", UserID: "u1", RequestHash: "h2"})
	var conflict *errors.ErrConflict
	assert.True(t, stderrors.As(err, &conflict))

	now = now.Add(25 * time.Hour)
	expired, err := repo.GetByKey(ctx, "u1", "k1")
	require.NoError(t, err)
	assert.Nil(t, expired)
	require.NoError(t, repo.Create(ctx, &domain.IdempotencyKey{Key: "k1", UserID: "u1", RequestHash: "h3"}))
}
