package orders

import "context"

// OrderStore is the durable order record store. Inserts are append-only; the
// store serializes its own writes internally.
type OrderStore interface {
	Insert(ctx context.Context, userID int64, productName string, quantity int, status string) (int64, error)
	ListAll(ctx context.Context) ([]Order, error)
}

// InventoryClient calls the external inventory service. When simulateFailure
// is set, Reserve targets the known-failing variant of the reserve endpoint.
type InventoryClient interface {
	CheckAvailability(ctx context.Context, productName string, quantity int) (*InventoryCheckResult, error)
	Reserve(ctx context.Context, productName string, quantity int, simulateFailure bool) (*ReservationResult, error)
}

// NotificationClient calls the external notification service.
type NotificationClient interface {
	Send(ctx context.Context, recipient, message, channelType string) (*NotificationResult, error)
}

// EventPublisher publishes order lifecycle events for downstream consumers.
type EventPublisher interface {
	PublishOrderCreated(ctx context.Context, event OrderCreatedEvent) error
}
