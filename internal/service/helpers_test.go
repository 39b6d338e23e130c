package service

import (
	"context"
	stderrors "errors"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/vaishnavisales/storefront/internal/auth"
	"github.com/vaishnavisales/storefront/internal/cart"
	"github.com/vaishnavisales/storefront/internal/catalog"
	"github.com/vaishnavisales/storefront/internal/config"
	"github.com/vaishnavisales/storefront/internal/domain"
	"github.com/vaishnavisales/storefront/internal/events"
	"github.com/vaishnavisales/storefront/internal/repository"
	"github.com/vaishnavisales/storefront/internal/repository/blob"
	"github.com/vaishnavisales/storefront/internal/session"
	"github.com/vaishnavisales/storefront/internal/storage"
)

func init() {
	passwordCost = bcrypt.MinCost
}

var errDiskFull = stderrors.New("disk full")

// faultyStore fails writes to the keys listed in failSaves
type faultyStore struct {
	storage.Store
	mu        sync.Mutex
	failSaves map[string]bool
}

func newFaultyStore() *faultyStore {
	return &faultyStore{Store: storage.NewMemoryStore(), failSaves: map[string]bool{}}
}

func (s *faultyStore) failOn(key string, fail bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failSaves[key] = fail
}

func (s *faultyStore) Save(ctx context.Context, key string, data []byte, ifMatch string) (string, error) {
	s.mu.Lock()
	fail := s.failSaves[key]
	s.mu.Unlock()
	if fail {
		return "", errDiskFull
	}
	return s.Store.Save(ctx, key, data, ifMatch)
}

// recordingPublisher keeps every published event
type recordingPublisher struct {
	mu     sync.Mutex
	events []*domain.OrderEvent
}

func (p *recordingPublisher) Publish(ctx context.Context, event *domain.OrderEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return nil
}

func (p *recordingPublisher) Close() error { return nil }

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.EventType)
	}
	return out
}

var _ events.Publisher = (*recordingPublisher)(nil)

var fixedNow = time.Date(2026, 10, 16, 10, 30, 0, 0, time.Local)

const testAdminEmail = "admin@americantourister.com"

type fixture struct {
	store     *faultyStore
	repos     *repository.Repositories
	catalog   *catalog.Catalog
	publisher *recordingPublisher
	orders    *OrderService
	sales     *SalesService
	auth      *AuthService
	wishlist  *WishlistService
	sessions  *session.Manager
	issuer    *auth.Issuer
}

func newFixture(t testing.TB) *fixture {
	t.Helper()
	logger := zap.NewNop()
	store := newFaultyStore()
	repos := blob.NewRepositories(store, logger)
	products := catalog.Default()
	publisher := &recordingPublisher{}
	info := domain.StoreInfo{Name: "Vaishnavi Sales", Address: "Main Road, Hanamkonda", Phone: "8374200125"}

	orders := NewOrderService(repos, products, publisher, info, logger)
	orders.now = func() time.Time { return fixedNow }
	sales := NewSalesService(repos, products, publisher, logger)
	sales.now = func() time.Time { return fixedNow }

	sessions := session.NewManager(store, logger)
	issuer := auth.NewIssuer("test-secret", time.Hour)
	authService, err := NewAuthService(repos, sessions, issuer, config.AuthConfig{
		JWTSecret:     "test-secret",
		TokenTTL:      time.Hour,
		AdminEmail:    testAdminEmail,
		AdminPassword: "admin123",
	}, logger)
	if err != nil {
		t.Fatalf("auth service: %v", err)
	}
	authService.now = func() time.Time { return fixedNow }

	return &fixture{
		store:     store,
		repos:     repos,
		catalog:   products,
		publisher: publisher,
		orders:    orders,
		sales:     sales,
		auth:      authService,
		wishlist:  NewWishlistService(repos, products, logger),
		sessions:  sessions,
		issuer:    issuer,
	}
}

// cartLine resolves a catalog line the way the cart does
func (f *fixture) cartLine(t testing.TB, productID, size string, qty int) domain.CartLine {
	t.Helper()
	p, err := f.catalog.Get(productID)
	if err != nil {
		t.Fatalf("product %s: %v", productID, err)
	}
	c := cart.New()
	var line domain.CartLine
	for i := 0; i < qty; i++ {
		line = c.Add(p, size)
	}
	return line
}

// placeOrder checks out a single line for userID and returns the order
func (f *fixture) placeOrder(t testing.TB, userID, productID, size string, qty int) domain.Order {
	t.Helper()
	orders, err := f.orders.Checkout(context.Background(), userID,
		[]domain.CartLine{f.cartLine(t, productID, size, qty)}, CheckoutRequest{})
	if err != nil {
		t.Fatalf("checkout: %v", err)
	}
	return orders[0]
}
