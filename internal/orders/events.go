package orders

// OrderCreatedEvent is published after a successful create-order workflow.
// Consumers correlate on OrderID.
type OrderCreatedEvent struct {
	OrderID     string `json:"order_id"`
	UserID      int64  `json:"user_id"`
	ProductName string `json:"product_name"`
	Quantity    int    `json:"quantity"`
	Status      string `json:"status"`
}
