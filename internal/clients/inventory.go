package clients

import (
	"context"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"github.com/nutslove/otel-instrumentation-demo/internal/orders"
)

type inventoryRequest struct {
	ProductName string `json:"product_name"`
	Quantity    int    `json:"quantity"`
}

// InventoryClient talks to the inventory service's check and reserve
// endpoints.
type InventoryClient struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewInventoryClient creates a client for the inventory service at baseURL.
func NewInventoryClient(baseURL string, httpClient *http.Client, logger *zap.Logger) *InventoryClient {
	return &InventoryClient{
		baseURL:    trimBaseURL(baseURL),
		httpClient: httpClient,
		logger:     logger,
	}
}

// CheckAvailability asks the inventory service whether quantity units of the
// product are in stock.
func (c *InventoryClient) CheckAvailability(ctx context.Context, productName string, quantity int) (*orders.InventoryCheckResult, error) {
	var result orders.InventoryCheckResult
	url := c.baseURL + "/inventory/check"
	if err := postJSON(ctx, c.httpClient, url, inventoryRequest{ProductName: productName, Quantity: quantity}, &result); err != nil {
		return nil, fmt.Errorf("%w: %v", orders.ErrInventoryUnavailable, err)
	}

	c.logger.Info("Inventory check completed",
		zap.String("product_name", productName),
		zap.Bool("available", result.Available),
	)
	return &result, nil
}

// Reserve asks the inventory service to reserve quantity units of the
// product; the response carries the pricing data. With simulateFailure set
// the call targets the failing variant of the endpoint.
func (c *InventoryClient) Reserve(ctx context.Context, productName string, quantity int, simulateFailure bool) (*orders.ReservationResult, error) {
	url := c.baseURL + "/inventory/reserve"
	if simulateFailure {
		url = c.baseURL + "/inventory/reserve/error"
	}

	var result orders.ReservationResult
	if err := postJSON(ctx, c.httpClient, url, inventoryRequest{ProductName: productName, Quantity: quantity}, &result); err != nil {
		return nil, fmt.Errorf("%w: %v", orders.ErrReservationFailed, err)
	}

	c.logger.Info("Inventory reserved",
		zap.String("product_name", productName),
		zap.Bool("reserved", result.Reserved),
	)
	return &result, nil
}
