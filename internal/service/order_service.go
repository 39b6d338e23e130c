package service

import (
	"context"
	stderrors "errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/vaishnavisales/storefront/internal/catalog"
	"github.com/vaishnavisales/storefront/internal/domain"
	"github.com/vaishnavisales/storefront/internal/events"
	"github.com/vaishnavisales/storefront/internal/pricing"
	"github.com/vaishnavisales/storefront/internal/repository"
	"github.com/vaishnavisales/storefront/pkg/errors"
)

// Owner ids for orders placed without a signed-in customer
const (
	GuestUserID  = "guest"
	ManualUserID = "manual"
)

// errUnchanged aborts an update that would not change anything
var errUnchanged = stderrors.New("unchanged")

type OrderService struct {
	repos    *repository.Repositories
	catalog  *catalog.Catalog
	recorder *eventRecorder
	store    domain.StoreInfo
	logger   *zap.Logger
	now      func() time.Time
}

// NewOrderService creates a new order service
func NewOrderService(
	repos *repository.Repositories,
	products *catalog.Catalog,
	publisher events.Publisher,
	store domain.StoreInfo,
	logger *zap.Logger,
) *OrderService {
	return &OrderService{
		repos:    repos,
		catalog:  products,
		recorder: &eventRecorder{events: repos.OrderEvent, publisher: publisher, logger: logger},
		store:    store,
		logger:   logger,
		now:      time.Now,
	}
}

func newOrderID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

// Checkout turns every cart line into its own pending order. All orders of one
// checkout share a checkout id. The cart itself is left to the caller, which
// should clear it only when Checkout succeeds.
func (s *OrderService) Checkout(ctx context.Context, userID string, lines []domain.CartLine, req CheckoutRequest) ([]domain.Order, error) {
	if len(lines) == 0 {
		return nil, &errors.ErrValidation{Message: "Cart is empty"}
	}

	now := s.now()
	date, err := pickupDate(now, req.Schedule)
	if err != nil {
		return nil, err
	}
	at, err := pickupTime(now, req.Time)
	if err != nil {
		return nil, err
	}
	if userID == "" {
		userID = GuestUserID
	}

	checkoutID := uuid.NewString()
	orders := make([]domain.Order, 0, len(lines))
	for _, line := range lines {
		if line.Quantity <= 0 {
			return nil, &errors.ErrValidation{
				Message: "Invalid quantity",
				Fields:  map[string]string{"quantity": line.ProductID},
			}
		}
		orders = append(orders, domain.Order{
			ID:             newOrderID(),
			UserID:         userID,
			CheckoutID:     checkoutID,
			ProductID:      line.ProductID,
			ProductName:    line.Name,
			ProductImage:   line.Image,
			Category:       line.Category,
			Count:          line.Quantity,
			Amount:         pricing.LineTotal(line.Price, line.Quantity),
			MRP:            pricing.LineTotal(line.MRP, line.Quantity),
			Size:           line.Size,
			Date:           date,
			Time:           at,
			Color:          line.Category.Color(),
			PickupLocation: s.store.Address,
			Status:         domain.OrderStatusPending,
		})
	}

	s.logger.Info("Creating orders from cart",
		zap.String("checkout_id", checkoutID),
		zap.String("user_id", userID),
		zap.Int("order_count", len(orders)),
	)
	if err := s.repos.Order.Prepend(ctx, orders...); err != nil {
		s.logger.Error("Failed to save checkout orders", zap.String("checkout_id", checkoutID), zap.Error(err))
		return nil, persistErr("checkout", err)
	}

	for _, o := range orders {
		s.recorder.record(ctx, o.ID, domain.EventOrderCreated, map[string]interface{}{
			"checkout_id": checkoutID,
			"source":      "checkout",
			"amount":      o.Amount,
			"status":      o.Status,
		})
	}
	return orders, nil
}

// CreateManualOrders stores orders entered by the store, for example for walk-in
// or phone customers. Prices are resolved from the catalog for the chosen size.
func (s *OrderService) CreateManualOrders(ctx context.Context, userID string, entries []ManualOrderEntry) ([]domain.Order, error) {
	if len(entries) == 0 {
		return nil, &errors.ErrValidation{Message: "Please add at least one product to the list."}
	}
	if userID == "" {
		userID = ManualUserID
	}

	now := s.now()
	orders := make([]domain.Order, 0, len(entries))
	for i, entry := range entries {
		if entry.Count <= 0 {
			return nil, &errors.ErrValidation{
				Message: "Please enter a valid order count.",
				Fields:  map[string]string{"count": entry.ProductID},
			}
		}
		product, err := s.catalog.Get(entry.ProductID)
		if err != nil {
			return nil, &errors.ErrValidation{
				Message: "Unknown product",
				Fields:  map[string]string{"product_id": entry.ProductID},
			}
		}
		size := entry.Size
		if size == "" && len(product.Sizes) > 0 {
			size = product.Sizes[0]
		}
		if len(product.Sizes) > 0 && !product.HasSize(size) {
			return nil, &errors.ErrValidation{
				Message: "Unknown size",
				Fields:  map[string]string{"size": size},
			}
		}

		date := entry.Date
		if date == "" {
			date = now.Format(domain.DateLayout)
		} else if _, err := time.Parse(domain.DateLayout, date); err != nil {
			return nil, &errors.ErrValidation{Message: "Invalid date", Fields: map[string]string{"date": date}}
		}
		at, err := pickupTime(now, entry.Time)
		if err != nil {
			return nil, err
		}

		orders = append(orders, domain.Order{
			ID:             newOrderID(),
			UserID:         userID,
			ProductID:      product.ID,
			ProductName:    product.Name,
			ProductImage:   product.Image,
			Category:       product.Category,
			Count:          entry.Count,
			Amount:         pricing.LineTotal(pricing.UnitPrice(product, size), entry.Count),
			MRP:            pricing.LineTotal(pricing.UnitMRP(product, size), entry.Count),
			Size:           size,
			Date:           date,
			Time:           at,
			Color:          product.Category.Color(),
			PickupLocation: s.store.Address,
			Status:         domain.OrderStatusPending,
		})
		s.logger.Debug("Manual order line", zap.Int("index", i), zap.String("product_id", product.ID))
	}

	if err := s.repos.Order.Prepend(ctx, orders...); err != nil {
		s.logger.Error("Failed to save manual orders", zap.Error(err))
		return nil, persistErr("create manual orders", err)
	}

	for _, o := range orders {
		s.recorder.record(ctx, o.ID, domain.EventOrderCreated, map[string]interface{}{
			"source": "manual",
			"amount": o.Amount,
			"status": o.Status,
		})
	}
	return orders, nil
}

// AdvanceStatus moves an order to next along the lifecycle (idempotent: the
// current status returns success). Moving to confirmed records the sale.
func (s *OrderService) AdvanceStatus(ctx context.Context, orderID string, next domain.OrderStatus) (*domain.Order, error) {
	if !next.IsValid() {
		return nil, &errors.ErrValidation{
			Message: "Invalid status",
			Fields:  map[string]string{"status": string(next)},
		}
	}
	if next == domain.OrderStatusConfirmed {
		order, _, err := s.ConfirmOrder(ctx, orderID)
		return order, err
	}

	var from domain.OrderStatus
	order, err := s.repos.Order.Update(ctx, orderID, func(o *domain.Order) error {
		from = o.CurrentStatus()
		if from == next {
			return errUnchanged
		}
		if !from.CanTransitionTo(next) {
			return &errors.ErrInvalidStateTransition{From: from, To: next}
		}
		o.Status = next
		return nil
	})
	if stderrors.Is(err, errUnchanged) {
		return s.repos.Order.GetByID(ctx, orderID)
	}
	if err != nil {
		return nil, persistErr("update order status", err)
	}

	s.logger.Info("Order status changed",
		zap.String("order_id", orderID),
		zap.String("from", string(from)),
		zap.String("to", string(next)),
	)
	s.recorder.record(ctx, orderID, domain.EventStatusChange, map[string]interface{}{
		"from": from,
		"to":   next,
	})
	return order, nil
}

// MarkPreparing moves a pending order to preparing
func (s *OrderService) MarkPreparing(ctx context.Context, orderID string) (*domain.Order, error) {
	return s.AdvanceStatus(ctx, orderID, domain.OrderStatusPreparing)
}

// MarkReady moves a preparing order to ready for pickup
func (s *OrderService) MarkReady(ctx context.Context, orderID string) (*domain.Order, error) {
	return s.AdvanceStatus(ctx, orderID, domain.OrderStatusReady)
}

// MarkPickedUp records that the customer collected a ready order
func (s *OrderService) MarkPickedUp(ctx context.Context, orderID string) (*domain.Order, error) {
	return s.AdvanceStatus(ctx, orderID, domain.OrderStatusPickedUp)
}

// MarkNoStock ends a non-terminal order as unavailable
func (s *OrderService) MarkNoStock(ctx context.Context, orderID string) (*domain.Order, error) {
	return s.AdvanceStatus(ctx, orderID, domain.OrderStatusNoStock)
}

// ConfirmOrder confirms a picked up order and records exactly one sale for it
// (idempotent: already confirmed returns success without a second sale).
// The sale is written first; if the order update then fails the sale is
// removed again, so callers never see one effect without the other.
func (s *OrderService) ConfirmOrder(ctx context.Context, orderID string) (*domain.Order, *domain.Sale, error) {
	order, err := s.repos.Order.GetByID(ctx, orderID)
	if err != nil {
		return nil, nil, err
	}

	from := order.CurrentStatus()
	if from == domain.OrderStatusConfirmed {
		order.Status = from
		return order, nil, nil
	}
	if !from.CanTransitionTo(domain.OrderStatusConfirmed) {
		return nil, nil, &errors.ErrInvalidStateTransition{From: from, To: domain.OrderStatusConfirmed}
	}

	sale := saleFromOrder(order, s.now())
	if err := s.repos.Sale.Prepend(ctx, sale); err != nil {
		s.logger.Error("Failed to record sale for order", zap.String("order_id", orderID), zap.Error(err))
		return nil, nil, persistErr("confirm order", err)
	}

	updated, err := s.repos.Order.Update(ctx, orderID, func(o *domain.Order) error {
		current := o.CurrentStatus()
		if current == domain.OrderStatusConfirmed {
			return errUnchanged
		}
		if !current.CanTransitionTo(domain.OrderStatusConfirmed) {
			return &errors.ErrInvalidStateTransition{From: current, To: domain.OrderStatusConfirmed}
		}
		o.Status = domain.OrderStatusConfirmed
		return nil
	})
	if err != nil {
		// Take back the sale written above
		if rbErr := s.repos.Sale.Remove(ctx, sale.ID); rbErr != nil {
			s.logger.Error("Failed to roll back sale after order update failure",
				zap.String("order_id", orderID),
				zap.String("sale_id", sale.ID),
				zap.Error(rbErr),
			)
		}
		if stderrors.Is(err, errUnchanged) {
			// Confirmed concurrently by another request
			current, getErr := s.repos.Order.GetByID(ctx, orderID)
			return current, nil, getErr
		}
		s.logger.Error("Failed to confirm order", zap.String("order_id", orderID), zap.Error(err))
		return nil, nil, persistErr("confirm order", err)
	}

	s.logger.Info("Order confirmed",
		zap.String("order_id", orderID),
		zap.String("sale_id", sale.ID),
		zap.Int64("amount", sale.Amount),
	)
	s.recorder.record(ctx, orderID, domain.EventStatusChange, map[string]interface{}{
		"from": from,
		"to":   domain.OrderStatusConfirmed,
	})
	s.recorder.record(ctx, orderID, domain.EventSaleRecorded, map[string]interface{}{
		"sale_id": sale.ID,
		"amount":  sale.Amount,
	})
	return updated, &sale, nil
}

// ClearAllOrders deletes every order. Sales are kept.
func (s *OrderService) ClearAllOrders(ctx context.Context) error {
	if err := s.repos.Order.Clear(ctx); err != nil {
		return persistErr("clear orders", err)
	}
	s.logger.Info("All orders cleared")
	s.recorder.record(ctx, "", domain.EventOrdersCleared, nil)
	return nil
}

// ListVisible returns the orders viewer may see, newest first: admins see
// every order, customers only their own
func (s *OrderService) ListVisible(ctx context.Context, viewer Viewer) ([]domain.Order, error) {
	orders, err := s.repos.Order.List(ctx)
	if err != nil {
		return nil, err
	}

	visible := make([]domain.Order, 0, len(orders))
	for _, o := range orders {
		if !canSee(viewer, &o) {
			continue
		}
		o.Status = o.CurrentStatus()
		visible = append(visible, o)
	}
	return visible, nil
}

// Get returns one order if viewer may see it
func (s *OrderService) Get(ctx context.Context, viewer Viewer, orderID string) (*domain.Order, error) {
	order, err := s.repos.Order.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !canSee(viewer, order) {
		return nil, &errors.ErrForbidden{Message: "access denied"}
	}
	order.Status = order.CurrentStatus()
	return order, nil
}

// Events returns the audit trail of an order, oldest first
func (s *OrderService) Events(ctx context.Context, viewer Viewer, orderID string) ([]*domain.OrderEvent, error) {
	if _, err := s.Get(ctx, viewer, orderID); err != nil {
		return nil, err
	}
	return s.repos.OrderEvent.GetByOrderID(ctx, orderID)
}

func canSee(viewer Viewer, order *domain.Order) bool {
	return viewer.IsAdmin || (viewer.UserID != "" && order.UserID == viewer.UserID)
}

func saleFromOrder(order *domain.Order, now time.Time) domain.Sale {
	color := order.Color
	if color == "" {
		color = domain.DefaultSaleColor
	}
	return domain.Sale{
		ID:           uuid.NewString(),
		OrderID:      order.ID,
		ProductID:    order.ProductID,
		ProductName:  order.ProductName,
		ProductImage: order.ProductImage,
		Category:     order.Category,
		Amount:       order.Amount,
		Size:         order.Size,
		Date:         now.Format(domain.DateLayout),
		Time:         now.Format(domain.TimeLayout),
		Color:        color,
	}
}

func pickupDate(now time.Time, schedule string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(schedule)) {
	case "", ScheduleToday:
		return now.Format(domain.DateLayout), nil
	case ScheduleTomorrow:
		return now.AddDate(0, 0, 1).Format(domain.DateLayout), nil
	default:
		return "", &errors.ErrValidation{
			Message: "Pickup must be scheduled for today or tomorrow",
			Fields:  map[string]string{"schedule": schedule},
		}
	}
}

func pickupTime(now time.Time, value string) (string, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return now.Format(domain.TimeLayout), nil
	}
	t, err := time.Parse(domain.TimeLayout, value)
	if err != nil {
		return "", &errors.ErrValidation{
			Message: "Pickup time must be HH:MM",
			Fields:  map[string]string{"time": value},
		}
	}
	return t.Format(domain.TimeLayout), nil
}
