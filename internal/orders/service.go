package orders

import (
	"context"
	"fmt"
	"strconv"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// Service executes the create-order workflow: persist the order, check
// inventory, conditionally reserve it, notify the user, and fold every
// outcome into one composite result.
//
// Each collaborator call is isolated: its failure degrades only its own
// field of the result. The one exception is the store insert, which aborts
// the whole request.
type Service struct {
	store        OrderStore
	inventory    InventoryClient
	notification NotificationClient
	publisher    EventPublisher // nil when event publishing is not configured
	logger       *zap.Logger
	tracer       trace.Tracer
}

// NewService creates a new order Service instance.
func NewService(store OrderStore, inventory InventoryClient, notification NotificationClient, publisher EventPublisher, logger *zap.Logger, serviceName string) *Service {
	return &Service{
		store:        store,
		inventory:    inventory,
		notification: notification,
		publisher:    publisher,
		logger:       logger,
		tracer:       otel.Tracer(serviceName),
	}
}

// CreateOrder runs the fixed workflow for one order-creation request.
//
// Step order is Insert → Check → (Reserve) → Notify. The reserve step runs
// only when the check reported availability; notification runs
// unconditionally. With simulateFailure set, the persistence step is skipped,
// the reserve call targets the failing endpoint variant, and the result
// status is "error".
//
// The returned error is non-nil only for a *ValidationError or a
// *StorageError; downstream failures are reported inside the result.
func (s *Service) CreateOrder(ctx context.Context, req CreateOrderRequest, simulateFailure bool) (*OrderResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	ctx, span := s.tracer.Start(ctx, "create_order_workflow",
		trace.WithAttributes(
			attribute.Int64("order.user_id", req.UserID),
			attribute.String("order.product_name", req.ProductName),
			attribute.Int("order.quantity", req.Quantity),
			attribute.Bool("order.simulate_failure", simulateFailure),
		),
	)
	defer span.End()

	s.logger.Info("Creating order",
		zap.Int64("user_id", req.UserID),
		zap.String("product_name", req.ProductName),
		zap.Int("quantity", req.Quantity),
		zap.Bool("simulate_failure", simulateFailure),
	)

	result := &OrderResult{Status: StatusPending}
	if simulateFailure {
		result.Status = StatusError
	}

	if !simulateFailure {
		id, err := s.insertOrder(ctx, req)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "order insert failed")
			return nil, err
		}
		result.OrderID = id
	}

	result.InventoryCheck = s.checkInventory(ctx, req)

	if result.InventoryCheck.Available {
		result.Reservation = s.reserveInventory(ctx, req, simulateFailure)
	}

	result.Notification = s.notifyUser(ctx, req, result.OrderID, simulateFailure)

	if !simulateFailure {
		s.publishOrderCreated(ctx, req, result.OrderID)
		s.logger.Info("Order created", zap.Int64("order_id", result.OrderID))
	} else {
		s.logger.Error("Order workflow completed with induced errors")
	}

	return result, nil
}

// ListOrders returns all persisted orders, newest first.
func (s *Service) ListOrders(ctx context.Context) ([]Order, error) {
	list, err := s.store.ListAll(ctx)
	if err != nil {
		return nil, &StorageError{Op: "list", Err: err}
	}
	s.logger.Info("Retrieved orders", zap.Int("count", len(list)))
	return list, nil
}

func (s *Service) insertOrder(ctx context.Context, req CreateOrderRequest) (int64, error) {
	ctx, span := s.tracer.Start(ctx, "order_insert",
		trace.WithAttributes(
			attribute.String("db.operation", "insert"),
			attribute.String("db.table", "orders"),
		),
	)
	defer span.End()

	id, err := s.store.Insert(ctx, req.UserID, req.ProductName, req.Quantity, StatusPending)
	if err != nil {
		s.logger.Error("Failed to insert order", zap.Error(err))
		return 0, &StorageError{Op: "insert", Err: err}
	}

	span.SetAttributes(attribute.Int64("order.id", id))
	return id, nil
}

func (s *Service) checkInventory(ctx context.Context, req CreateOrderRequest) *InventoryCheckResult {
	ctx, span := s.tracer.Start(ctx, "inventory_check",
		trace.WithAttributes(
			attribute.String("product.name", req.ProductName),
			attribute.Int("product.quantity", req.Quantity),
		),
	)
	defer span.End()

	check, err := s.inventory.CheckAvailability(ctx, req.ProductName, req.Quantity)
	if err != nil {
		s.logger.Error("Failed to check inventory", zap.Error(err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "inventory check failed")
		return &InventoryCheckResult{Available: false, Error: err.Error()}
	}

	span.SetAttributes(attribute.Bool("inventory.available", check.Available))
	span.SetStatus(codes.Ok, "inventory checked")
	s.logger.Info("Inventory check result", zap.Bool("available", check.Available))
	return check
}

func (s *Service) reserveInventory(ctx context.Context, req CreateOrderRequest, simulateFailure bool) *ReservationResult {
	ctx, span := s.tracer.Start(ctx, "inventory_reserve",
		trace.WithAttributes(
			attribute.String("product.name", req.ProductName),
			attribute.Int("product.quantity", req.Quantity),
			attribute.Bool("reserve.simulate_failure", simulateFailure),
		),
	)
	defer span.End()

	reservation, err := s.inventory.Reserve(ctx, req.ProductName, req.Quantity, simulateFailure)
	if err != nil {
		s.logger.Error("Failed to reserve inventory", zap.Error(err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "inventory reservation failed")
		return &ReservationResult{Error: err.Error()}
	}

	span.SetStatus(codes.Ok, "inventory reserved")
	s.logger.Info("Inventory reserved", zap.Bool("reserved", reservation.Reserved))
	return reservation
}

func (s *Service) notifyUser(ctx context.Context, req CreateOrderRequest, orderID int64, simulateFailure bool) *NotificationResult {
	ctx, span := s.tracer.Start(ctx, "notification_send",
		trace.WithAttributes(attribute.Int64("order.user_id", req.UserID)),
	)
	defer span.End()

	recipient := fmt.Sprintf("user_%d@example.com", req.UserID)
	message := fmt.Sprintf("Your order #%d for %dx %s has been placed!", orderID, req.Quantity, req.ProductName)
	if simulateFailure {
		message = fmt.Sprintf("Error occurred while processing order for %dx %s", req.Quantity, req.ProductName)
	}

	notification, err := s.notification.Send(ctx, recipient, message, "email")
	if err != nil {
		s.logger.Error("Failed to send notification", zap.Error(err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "notification failed")
		return &NotificationResult{Error: err.Error()}
	}

	span.SetStatus(codes.Ok, "notification sent")
	s.logger.Info("Notification sent", zap.String("recipient", recipient))
	return notification
}

// publishOrderCreated emits the OrderCreated event. Publish failures are
// absorbed like any other collaborator failure and never surface in the
// response.
func (s *Service) publishOrderCreated(ctx context.Context, req CreateOrderRequest, orderID int64) {
	if s.publisher == nil {
		return
	}

	event := OrderCreatedEvent{
		OrderID:     strconv.FormatInt(orderID, 10),
		UserID:      req.UserID,
		ProductName: req.ProductName,
		Quantity:    req.Quantity,
		Status:      StatusPending,
	}
	if err := s.publisher.PublishOrderCreated(ctx, event); err != nil {
		s.logger.Error("Failed to publish OrderCreated event",
			zap.Error(err),
			zap.Int64("order_id", orderID),
		)
		return
	}
	s.logger.Info("Published OrderCreated event", zap.Int64("order_id", orderID))
}
