package orders

import "time"

// Order status values. Status is assigned at creation and never updated
// afterwards; there are no lifecycle transitions in this service.
const (
	StatusPending = "pending"
	StatusError   = "error"
)

// Order is the persisted order record.
type Order struct {
	ID          int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID      int64     `gorm:"not null" json:"user_id"`
	ProductName string    `gorm:"not null" json:"product_name"`
	Quantity    int       `gorm:"not null" json:"quantity"`
	Status      string    `gorm:"not null" json:"status"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// CreateOrderRequest carries the caller-supplied order fields.
type CreateOrderRequest struct {
	UserID      int64  `json:"user_id"`
	ProductName string `json:"product_name"`
	Quantity    int    `json:"quantity"`
}

// Validate checks the request preconditions. A violation means the workflow
// never starts: no row is inserted and no downstream call is made.
func (r CreateOrderRequest) Validate() error {
	if r.UserID <= 0 {
		return &ValidationError{Field: "user_id", Reason: "must be a positive integer"}
	}
	if r.ProductName == "" {
		return &ValidationError{Field: "product_name", Reason: "must not be empty"}
	}
	if r.Quantity <= 0 {
		return &ValidationError{Field: "quantity", Reason: "must be a positive integer"}
	}
	return nil
}

// InventoryCheckResult is the outcome of the inventory availability check.
// It lives only for the duration of one create-order request.
type InventoryCheckResult struct {
	Available bool   `json:"available"`
	Message   string `json:"message,omitempty"`
	Error     string `json:"error,omitempty"`
}

// Pricing mirrors the pricing payload returned by the inventory service on a
// successful reservation.
type Pricing struct {
	ProductName string  `json:"product_name"`
	UnitPrice   float64 `json:"unit_price"`
	Quantity    int     `json:"quantity"`
	TotalPrice  float64 `json:"total_price"`
}

// ReservationResult is the outcome of the reservation call.
type ReservationResult struct {
	Reserved bool     `json:"reserved,omitempty"`
	Pricing  *Pricing `json:"pricing,omitempty"`
	Error    string   `json:"error,omitempty"`
}

// NotificationResult is the delivery acknowledgment from the notification
// service, or the captured failure.
type NotificationResult struct {
	Status    string `json:"status,omitempty"`
	Recipient string `json:"recipient,omitempty"`
	Type      string `json:"type,omitempty"`
	Error     string `json:"error,omitempty"`
}

// OrderResult is the composite outcome of one create-order workflow. Failed
// steps degrade only their own field; the workflow itself still completes.
type OrderResult struct {
	OrderID        int64
	Status         string
	InventoryCheck *InventoryCheckResult
	Reservation    *ReservationResult
	Notification   *NotificationResult
}
