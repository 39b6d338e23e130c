package service

// Viewer is the caller an order query is answered for
type Viewer struct {
	UserID  string
	IsAdmin bool
}

// Pickup schedules offered at checkout
const (
	ScheduleToday    = "today"
	ScheduleTomorrow = "tomorrow"
)

// CheckoutRequest represents the checkout payload. Empty fields mean today at the current time.
type CheckoutRequest struct {
	Schedule string `json:"schedule"`
	Time     string `json:"time"`
}

// ManualOrderEntry is one line of an order entered by the store on a customer's behalf
type ManualOrderEntry struct {
	ProductID string `json:"product_id" binding:"required"`
	Size      string `json:"size"`
	Count     int    `json:"count" binding:"required"`
	Date      string `json:"date"`
	Time      string `json:"time"`
}

// SaleRequest represents a sale recorded by hand
type SaleRequest struct {
	ProductID   string `json:"product_id"`
	ProductName string `json:"product_name"`
	Size        string `json:"size"`
	Amount      int64  `json:"amount"`
	Date        string `json:"date"`
	Time        string `json:"time"`
	Color       string `json:"color"`
}

type SignupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email"`
}

type ResetPasswordRequest struct {
	Token    string `json:"token"`
	Password string `json:"password"`
}

// UpdateProfileRequest changes only the fields that are set
type UpdateProfileRequest struct {
	Name     *string `json:"name,omitempty"`
	Email    *string `json:"email,omitempty"`
	Avatar   *string `json:"avatar,omitempty"`
	Password *string `json:"password,omitempty"`
}
