package orders

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// OrderService defines what the HTTP handler needs from the orchestrator.
type OrderService interface {
	CreateOrder(ctx context.Context, req CreateOrderRequest, simulateFailure bool) (*OrderResult, error)
	ListOrders(ctx context.Context) ([]Order, error)
}

// Handler exposes the order workflow over HTTP.
type Handler struct {
	service OrderService
	logger  *zap.Logger
}

// NewHandler creates a new Handler instance with explicit dependencies.
func NewHandler(service OrderService, logger *zap.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// RegisterRoutes attaches all order-service routes to the router.
func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.GET("/", h.Root)
	r.GET("/health", h.Health)
	r.GET("/error", h.IntentionalError)
	r.POST("/orders", h.CreateOrder)
	r.GET("/orders", h.ListOrders)
	r.POST("/orders/error", h.CreateOrderWithError)
}

type createOrderResponse struct {
	OrderID        int64                 `json:"order_id"`
	Status         string                `json:"status"`
	InventoryCheck *InventoryCheckResult `json:"inventory_check"`
	Pricing        *ReservationResult    `json:"pricing"`
	Notification   *NotificationResult   `json:"notification"`
}

type inducedErrorResponse struct {
	Status         string                `json:"status"`
	InventoryCheck *InventoryCheckResult `json:"inventory_check"`
	PricingError   *ReservationResult    `json:"pricing_error"`
	Notification   *NotificationResult   `json:"notification"`
	Message        string                `json:"message"`
}

// CreateOrder handles POST /orders.
//
// Downstream collaborator failures do not change the status code: the
// response is still 200 and the body carries the per-step error fields.
// Only validation (400) and a failed order insert (500) are non-2xx.
func (h *Handler) CreateOrder(c *gin.Context) {
	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Invalid request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.service.CreateOrder(c.Request.Context(), req, false)
	if err != nil {
		h.writeWorkflowError(c, err)
		return
	}

	c.JSON(http.StatusOK, createOrderResponse{
		OrderID:        result.OrderID,
		Status:         result.Status,
		InventoryCheck: result.InventoryCheck,
		Pricing:        result.Reservation,
		Notification:   result.Notification,
	})
}

// CreateOrderWithError handles POST /orders/error: the induced-failure
// variant of the workflow. Nothing is persisted and the reserve step targets
// the failing endpoint; the composite body is returned with a 500.
func (h *Handler) CreateOrderWithError(c *gin.Context) {
	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Error("Invalid request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.service.CreateOrder(c.Request.Context(), req, true)
	if err != nil {
		h.writeWorkflowError(c, err)
		return
	}

	c.JSON(http.StatusInternalServerError, inducedErrorResponse{
		Status:         result.Status,
		InventoryCheck: result.InventoryCheck,
		PricingError:   result.Reservation,
		Notification:   result.Notification,
		Message:        "This order workflow intentionally includes errors across all services for testing",
	})
}

// ListOrders handles GET /orders.
func (h *Handler) ListOrders(c *gin.Context) {
	list, err := h.service.ListOrders(c.Request.Context())
	if err != nil {
		h.logger.Error("Failed to list orders", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch orders"})
		return
	}
	if list == nil {
		list = []Order{}
	}
	c.JSON(http.StatusOK, gin.H{"orders": list})
}

// Root handles GET /.
func (h *Handler) Root(c *gin.Context) {
	h.logger.Info("Order service root endpoint called")
	c.JSON(http.StatusOK, gin.H{
		"service": "order-service",
		"status":  "running",
	})
}

// Health handles GET /health.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

// IntentionalError handles GET /error: synthetic fault injection for tracing
// the error path end to end.
func (h *Handler) IntentionalError(c *gin.Context) {
	h.logger.Error("Intentional error triggered")
	c.JSON(http.StatusInternalServerError, gin.H{
		"error": "Intentional error for testing",
	})
}

func (h *Handler) writeWorkflowError(c *gin.Context, err error) {
	var verr *ValidationError
	if errors.As(err, &verr) {
		h.logger.Error("Order validation failed", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": verr.Error()})
		return
	}
	h.logger.Error("Order creation failed", zap.Error(err))
	c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create order"})
}
