package domain

// OrderStatus represents the pickup lifecycle of a storefront order
type OrderStatus string

const (
	// PENDING - Placed by the customer or entered manually, not yet acted on
	OrderStatusPending OrderStatus = "pending"
	// PREPARING - Store is packing the order
	OrderStatusPreparing OrderStatus = "preparing"
	// READY - Waiting at the pickup counter
	OrderStatusReady OrderStatus = "ready"
	// PICKED_UP - Customer collected the order, awaiting confirmation
	OrderStatusPickedUp OrderStatus = "picked_up"
	// CONFIRMED - Pickup confirmed and recorded as a sale
	OrderStatusConfirmed OrderStatus = "confirmed"
	// NO_STOCK - Item unavailable, order will not be fulfilled
	OrderStatusNoStock OrderStatus = "no_stock"
)

// IsValid checks if the order status is valid
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusPending,
		OrderStatusPreparing,
		OrderStatusReady,
		OrderStatusPickedUp,
		OrderStatusConfirmed,
		OrderStatusNoStock:
		return true
	default:
		return false
	}
}

// IsTerminal reports whether no further transitions are allowed
func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusConfirmed || s == OrderStatusNoStock
}

// CanTransitionTo checks if a status transition is valid
func (s OrderStatus) CanTransitionTo(newStatus OrderStatus) bool {
	from := s.Normalize()

	switch from {
	case OrderStatusPending:
		return newStatus == OrderStatusPreparing ||
			newStatus == OrderStatusNoStock
	case OrderStatusPreparing:
		return newStatus == OrderStatusReady ||
			newStatus == OrderStatusNoStock
	case OrderStatusReady:
		return newStatus == OrderStatusPickedUp ||
			newStatus == OrderStatusNoStock
	case OrderStatusPickedUp:
		return newStatus == OrderStatusConfirmed ||
			newStatus == OrderStatusNoStock
	case OrderStatusConfirmed, OrderStatusNoStock:
		return false // Terminal states
	default:
		return false
	}
}

// Normalize maps the empty status of legacy manual entries to pending
func (s OrderStatus) Normalize() OrderStatus {
	if s == "" {
		return OrderStatusPending
	}
	return s
}

// Label is the customer-facing name shown on badges and the progress tracker
func (s OrderStatus) Label() string {
	switch s.Normalize() {
	case OrderStatusPending:
		return "Pending"
	case OrderStatusPreparing:
		return "Preparing"
	case OrderStatusReady:
		return "Ready for Pickup"
	case OrderStatusPickedUp:
		return "Picked Up"
	case OrderStatusConfirmed:
		return "Confirmed"
	case OrderStatusNoStock:
		return "Item Currently Unavailable"
	default:
		return string(s)
	}
}

// Category is one of the fixed catalog categories
type Category string

const (
	CategoryHardLuggage Category = "Hard Luggage"
	CategorySoftLuggage Category = "Soft Luggage"
	CategoryBackpacks   Category = "Backpacks"
	CategoryKids        Category = "Kids"
	CategoryAccessories Category = "Accessories"
	CategoryOffice      Category = "Office"
)

// Categories lists the categories in display order
var Categories = []Category{
	CategoryHardLuggage,
	CategorySoftLuggage,
	CategoryBackpacks,
	CategoryKids,
	CategoryAccessories,
	CategoryOffice,
}

// IsValid checks if the category is one of the fixed categories
func (c Category) IsValid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// Color returns the cosmetic color tag used on orders and sales for this category.
// Unknown categories fall back to the first category's color.
func (c Category) Color() string {
	switch c {
	case CategoryHardLuggage:
		return "#FF3B30"
	case CategorySoftLuggage:
		return "#007AFF"
	case CategoryBackpacks:
		return "#34C759"
	case CategoryKids:
		return "#AF52DE"
	case CategoryAccessories:
		return "#FF9F0A"
	case CategoryOffice:
		return "#5856D6"
	default:
		return "#FF3B30"
	}
}

// DefaultSaleColor is used when an order carries no color tag
const DefaultSaleColor = "#007AFF"
