package orders

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubService struct {
	result  *OrderResult
	err     error
	list    []Order
	listErr error

	gotReq      CreateOrderRequest
	gotSimulate bool
	createCalls int
}

func (s *stubService) CreateOrder(_ context.Context, req CreateOrderRequest, simulateFailure bool) (*OrderResult, error) {
	s.createCalls++
	s.gotReq = req
	s.gotSimulate = simulateFailure
	if s.err != nil {
		return nil, s.err
	}
	return s.result, nil
}

func (s *stubService) ListOrders(_ context.Context) ([]Order, error) {
	if s.listErr != nil {
		return nil, s.listErr
	}
	return s.list, nil
}

func newTestRouter(svc OrderService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	NewHandler(svc, zap.NewNop()).RegisterRoutes(router)
	return router
}

func doRequest(t *testing.T, router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestCreateOrderEndpoint(t *testing.T) {
	svc := &stubService{
		result: &OrderResult{
			OrderID:        7,
			Status:         StatusPending,
			InventoryCheck: &InventoryCheckResult{Available: true},
			Reservation: &ReservationResult{
				Reserved: true,
				Pricing:  &Pricing{ProductName: "Widget", UnitPrice: 9.99, Quantity: 3, TotalPrice: 29.97},
			},
			Notification: &NotificationResult{Status: "sent"},
		},
	}
	router := newTestRouter(svc)

	w := doRequest(t, router, http.MethodPost, "/orders", `{"user_id":42,"product_name":"Widget","quantity":3}`)
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeBody(t, w)
	assert.Equal(t, float64(7), body["order_id"])
	assert.Equal(t, "pending", body["status"])
	assert.Equal(t, true, body["inventory_check"].(map[string]any)["available"])
	assert.Equal(t, 9.99, body["pricing"].(map[string]any)["pricing"].(map[string]any)["unit_price"])
	assert.Equal(t, "sent", body["notification"].(map[string]any)["status"])

	assert.False(t, svc.gotSimulate)
	assert.Equal(t, int64(42), svc.gotReq.UserID)
}

func TestCreateOrderDownstreamFailureStillReturns200(t *testing.T) {
	svc := &stubService{
		result: &OrderResult{
			OrderID:        8,
			Status:         StatusPending,
			InventoryCheck: &InventoryCheckResult{Available: false, Error: "connection refused"},
			Notification:   &NotificationResult{Status: "sent"},
		},
	}
	router := newTestRouter(svc)

	w := doRequest(t, router, http.MethodPost, "/orders", `{"user_id":42,"product_name":"Widget","quantity":3}`)
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeBody(t, w)
	assert.Equal(t, "pending", body["status"])
	assert.Nil(t, body["pricing"], "reservation was skipped, pricing must be null")
	check := body["inventory_check"].(map[string]any)
	assert.Equal(t, false, check["available"])
	assert.NotEmpty(t, check["error"])
}

func TestCreateOrderRejectsMalformedJSON(t *testing.T) {
	svc := &stubService{}
	router := newTestRouter(svc)

	w := doRequest(t, router, http.MethodPost, "/orders", `{"user_id":`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, 0, svc.createCalls)
}

func TestCreateOrderValidationError(t *testing.T) {
	svc := &stubService{err: &ValidationError{Field: "quantity", Reason: "must be a positive integer"}}
	router := newTestRouter(svc)

	w := doRequest(t, router, http.MethodPost, "/orders", `{"user_id":42,"product_name":"Widget","quantity":-1}`)
	require.Equal(t, http.StatusBadRequest, w.Code)

	body := decodeBody(t, w)
	assert.Contains(t, body["error"], "quantity")
}

func TestCreateOrderStorageError(t *testing.T) {
	svc := &stubService{err: &StorageError{Op: "insert", Err: assert.AnError}}
	router := newTestRouter(svc)

	w := doRequest(t, router, http.MethodPost, "/orders", `{"user_id":42,"product_name":"Widget","quantity":3}`)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestCreateOrderWithErrorEndpoint(t *testing.T) {
	svc := &stubService{
		result: &OrderResult{
			Status:         StatusError,
			InventoryCheck: &InventoryCheckResult{Available: true},
			Reservation:    &ReservationResult{Error: "unexpected status 500"},
			Notification:   &NotificationResult{Status: "sent"},
		},
	}
	router := newTestRouter(svc)

	w := doRequest(t, router, http.MethodPost, "/orders/error", `{"user_id":42,"product_name":"Widget","quantity":3}`)
	require.Equal(t, http.StatusInternalServerError, w.Code)
	assert.True(t, svc.gotSimulate, "induced endpoint must run the simulate-failure mode")

	body := decodeBody(t, w)
	assert.Equal(t, "error", body["status"])
	assert.NotEmpty(t, body["pricing_error"].(map[string]any)["error"])
	assert.Contains(t, body["message"], "intentionally")
	_, hasOrderID := body["order_id"]
	assert.False(t, hasOrderID)
}

func TestListOrdersEndpoint(t *testing.T) {
	svc := &stubService{list: []Order{
		{ID: 2, UserID: 42, ProductName: "Widget", Quantity: 3, Status: StatusPending},
		{ID: 1, UserID: 7, ProductName: "Gadget", Quantity: 1, Status: StatusPending},
	}}
	router := newTestRouter(svc)

	w := doRequest(t, router, http.MethodGet, "/orders", "")
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeBody(t, w)
	list := body["orders"].([]any)
	require.Len(t, list, 2)
	assert.Equal(t, float64(2), list[0].(map[string]any)["id"])
}

func TestListOrdersEmptyIsArray(t *testing.T) {
	router := newTestRouter(&stubService{})

	w := doRequest(t, router, http.MethodGet, "/orders", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"orders":[]}`, w.Body.String())
}

func TestListOrdersStorageError(t *testing.T) {
	router := newTestRouter(&stubService{listErr: assert.AnError})

	w := doRequest(t, router, http.MethodGet, "/orders", "")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestRootEndpoint(t *testing.T) {
	router := newTestRouter(&stubService{})

	w := doRequest(t, router, http.MethodGet, "/", "")
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "order-service", body["service"])
	assert.Equal(t, "running", body["status"])
}

func TestHealthEndpoint(t *testing.T) {
	router := newTestRouter(&stubService{})

	w := doRequest(t, router, http.MethodGet, "/health", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"healthy"}`, w.Body.String())
}

func TestIntentionalErrorEndpoint(t *testing.T) {
	router := newTestRouter(&stubService{})

	w := doRequest(t, router, http.MethodGet, "/error", "")
	require.Equal(t, http.StatusInternalServerError, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "Intentional error for testing", body["error"])
}
