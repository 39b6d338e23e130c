package domain

import (
	"time"
)

// Money is an amount in the store's base currency unit (whole rupees)
type Money = int64

// Product is immutable catalog reference data
type Product struct {
	ID          string           `json:"id" yaml:"id"`
	Name        string           `json:"name" yaml:"name"`
	Description string           `json:"description,omitempty" yaml:"description"`
	Price       Money            `json:"price" yaml:"price"`
	MRP         Money            `json:"mrp" yaml:"mrp"`
	Image       string           `json:"image,omitempty" yaml:"image"`
	Category    Category         `json:"category" yaml:"category"`
	Rating      float64          `json:"rating" yaml:"rating"`
	Reviews     int              `json:"reviews" yaml:"reviews"`
	Sizes       []string         `json:"sizes" yaml:"sizes"`
	SizePrices  map[string]Money `json:"sizePrices,omitempty" yaml:"size_prices"`
	SizeMRPs    map[string]Money `json:"sizeMrps,omitempty" yaml:"size_mrps"`
	IsFeatured  bool             `json:"isFeatured,omitempty" yaml:"is_featured"`
	IsNew       bool             `json:"isNew,omitempty" yaml:"is_new"`
}

// HasSize reports whether size is one of the product's available sizes
func (p *Product) HasSize(size string) bool {
	for _, s := range p.Sizes {
		if s == size {
			return true
		}
	}
	return false
}

// CartLine is one (product, size, quantity) entry pending checkout.
// Price and MRP are the unit values resolved when the line was first added.
type CartLine struct {
	ProductID string   `json:"productId"`
	Name      string   `json:"name"`
	Image     string   `json:"image,omitempty"`
	Category  Category `json:"category"`
	Size      string   `json:"size"`
	Quantity  int      `json:"quantity"`
	Price     Money    `json:"price"`
	MRP       Money    `json:"mrp"`
}

// Order is a persisted checkout record with a lifecycle status.
// Amount and MRP are line totals frozen at creation.
type Order struct {
	ID             string      `json:"id"`
	UserID         string      `json:"userId"`
	CheckoutID     string      `json:"checkoutId,omitempty"`
	ProductID      string      `json:"productId"`
	ProductName    string      `json:"productName"`
	ProductImage   string      `json:"productImage,omitempty"`
	Category       Category    `json:"category"`
	Count          int         `json:"count"`
	Amount         Money       `json:"amount"`
	MRP            Money       `json:"mrp"`
	Size           string      `json:"size"`
	Date           string      `json:"date"`
	Time           string      `json:"time"`
	Color          string      `json:"color,omitempty"`
	PickupLocation string      `json:"pickupLocation"`
	Status         OrderStatus `json:"status,omitempty"`
}

// CurrentStatus returns the status with legacy empty values read as pending
func (o *Order) CurrentStatus() OrderStatus {
	return o.Status.Normalize()
}

// Sale is an append-only record of a completed transaction
type Sale struct {
	ID           string   `json:"id"`
	OrderID      string   `json:"orderId,omitempty"`
	ProductID    string   `json:"productId"`
	ProductName  string   `json:"productName"`
	ProductImage string   `json:"productImage,omitempty"`
	Category     Category `json:"category"`
	Amount       Money    `json:"amount"`
	Size         string   `json:"size"`
	Date         string   `json:"date"`
	Time         string   `json:"time"`
	Color        string   `json:"color"`
}

// User is a registered customer or the administrator profile
type User struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Password  string `json:"password,omitempty"`
	Avatar    string `json:"avatar,omitempty"`
	CreatedAt int64  `json:"createdAt,omitempty"`
}

// WithoutPassword returns a copy safe to hand to callers
func (u User) WithoutPassword() User {
	u.Password = ""
	return u
}

// OrderEvent represents an audit event for an order
type OrderEvent struct {
	ID        string                 `json:"id"`
	OrderID   string                 `json:"orderId,omitempty"`
	EventType string                 `json:"eventType"`
	EventData map[string]interface{} `json:"eventData,omitempty"`
	CreatedAt time.Time              `json:"createdAt"`
}

// Event types recorded in the audit trail
const (
	EventOrderCreated  = "order_created"
	EventStatusChange  = "status_change"
	EventSaleRecorded  = "sale_recorded"
	EventOrdersCleared = "orders_cleared"
	EventSalesCleared  = "sales_cleared"
)

// IdempotencyKey remembers the orders created by a checkout request so a
// retried request returns them instead of ordering twice
type IdempotencyKey struct {
	Key         string    `json:"key"`
	UserID      string    `json:"userId"`
	RequestHash string    `json:"requestHash"`
	OrderIDs    []string  `json:"orderIds"`
	CreatedAt   time.Time `json:"createdAt"`
}

// StoreInfo identifies the pickup store printed on orders and invoices
type StoreInfo struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
}

// Date and time layouts used on orders and sales
const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)
