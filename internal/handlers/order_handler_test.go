package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/saiindkan/sweets-n-snacks-production/internal/domain"
	"github.com/saiindkan/sweets-n-snacks-production/internal/service"
)

type orderHandlerFixture struct {
	app      *fiber.App
	orders   *memOrderStore
	payments *memPaymentStore
}

func newOrderHandlerFixture() *orderHandlerFixture {
	orders := newMemOrderStore()
	payments := &memPaymentStore{}
	svc := service.NewOrderService(orders, payments, newMemEventLedger(), &memPublisher{})
	handler := NewOrderHandler(svc)

	app := fiber.New()
	app.Post("/update-order-status", handler.UpdateOrderStatus)
	app.Get("/api/v1/orders/:id", handler.GetOrderByID)
	app.Get("/api/v1/orders", handler.GetOrdersByEmail)

	return &orderHandlerFixture{app: app, orders: orders, payments: payments}
}

func postJSON(t *testing.T, app *fiber.App, path string, body interface{}) (*http.Response, map[string]interface{}) {
	t.Helper()

	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)

	return resp, decodeJSON(t, resp)
}

func decodeJSON(t *testing.T, resp *http.Response) map[string]interface{} {
	t.Helper()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &decoded))
	return decoded
}

func TestUpdateOrderStatusCompletesOrder(t *testing.T) {
	fixture := newOrderHandlerFixture()
	order := pendingOrderFixture(38.37)
	fixture.orders.put(order)

	resp, body := postJSON(t, fixture.app, "/update-order-status", UpdateOrderStatusRequest{
		OrderID:         order.ID.String(),
		Status:          "completed",
		PaymentIntentID: "pi_123",
		PaymentStatus:   "succeeded",
	})

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, true, body["transitioned"])

	data := body["data"].(map[string]interface{})
	assert.Equal(t, "completed", data["status"])
	assert.Equal(t, "pi_123", data["payment_intent_id"])
}

func TestUpdateOrderStatusRetryReportsNoTransition(t *testing.T) {
	fixture := newOrderHandlerFixture()
	order := pendingOrderFixture(38.37)
	fixture.orders.put(order)

	request := UpdateOrderStatusRequest{
		OrderID:       order.ID.String(),
		Status:        "completed",
		PaymentStatus: "succeeded",
	}

	resp, body := postJSON(t, fixture.app, "/update-order-status", request)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, true, body["transitioned"])

	// The retry still succeeds but reports it changed nothing.
	resp, body = postJSON(t, fixture.app, "/update-order-status", request)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, false, body["transitioned"])
}

func TestUpdateOrderStatusValidation(t *testing.T) {
	fixture := newOrderHandlerFixture()

	cases := []struct {
		name    string
		request UpdateOrderStatusRequest
	}{
		{"missing order id", UpdateOrderStatusRequest{Status: "completed"}},
		{"missing status", UpdateOrderStatusRequest{OrderID: uuid.New().String()}},
		{"malformed order id", UpdateOrderStatusRequest{OrderID: "not-a-uuid", Status: "completed"}},
		{"unknown status", UpdateOrderStatusRequest{OrderID: uuid.New().String(), Status: "shipped"}},
		{"pending target", UpdateOrderStatusRequest{OrderID: uuid.New().String(), Status: "pending"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp, _ := postJSON(t, fixture.app, "/update-order-status", tc.request)
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		})
	}
}

func TestUpdateOrderStatusUnknownOrderReturns404(t *testing.T) {
	fixture := newOrderHandlerFixture()

	resp, body := postJSON(t, fixture.app, "/update-order-status", UpdateOrderStatusRequest{
		OrderID: uuid.New().String(),
		Status:  "completed",
	})

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "Order not found", body["error"])
}

func TestGetOrderByID(t *testing.T) {
	fixture := newOrderHandlerFixture()
	order := pendingOrderFixture(64.80)
	fixture.orders.put(order)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/orders/"+order.ID.String(), nil)
	resp, err := fixture.app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeJSON(t, resp)
	assert.Equal(t, true, body["success"])
	data := body["data"].(map[string]interface{})
	assert.Equal(t, order.ID.String(), data["id"])
	assert.Equal(t, "pending", data["status"])
	assert.Equal(t, []interface{}{}, data["payments"])
}

func TestGetOrderByIDIncludesPayments(t *testing.T) {
	fixture := newOrderHandlerFixture()
	order := pendingOrderFixture(38.37)
	order.Status = domain.OrderStatusCompleted
	fixture.orders.put(order)
	require.NoError(t, fixture.payments.CreatePayment(
		domain.NewPayment(order.ID, 38.37, domain.PaymentStatusCompleted, "pi_123")))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/orders/"+order.ID.String(), nil)
	resp, err := fixture.app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeJSON(t, resp)
	data := body["data"].(map[string]interface{})
	payments := data["payments"].([]interface{})
	require.Len(t, payments, 1)
	payment := payments[0].(map[string]interface{})
	assert.Equal(t, "pi_123", payment["transaction_id"])
	assert.InDelta(t, 38.37, payment["amount"].(float64), 1e-9)
}

func TestGetOrderByIDNotFound(t *testing.T) {
	fixture := newOrderHandlerFixture()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/orders/"+uuid.New().String(), nil)
	resp, err := fixture.app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestGetOrdersByEmailPagination(t *testing.T) {
	fixture := newOrderHandlerFixture()
	for i := 0; i < 3; i++ {
		fixture.orders.put(pendingOrderFixture(10.00 + float64(i)))
	}

	req := httptest.NewRequest(http.MethodGet,
		"/api/v1/orders?email=customer@example.com&page=1&limit=2", nil)
	resp, err := fixture.app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeJSON(t, resp)
	data := body["data"].(map[string]interface{})
	assert.Len(t, data["orders"], 2)

	pagination := data["pagination"].(map[string]interface{})
	assert.Equal(t, float64(3), pagination["total"])
	assert.Equal(t, true, pagination["has_more"])
}

func TestGetOrdersByEmailRequiresEmail(t *testing.T) {
	fixture := newOrderHandlerFixture()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/orders", nil)
	resp, err := fixture.app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestManualFixSourceHasNoIntentID(t *testing.T) {
	fixture := newOrderHandlerFixture()

	// The webhook already completed the order with its intent id.
	order := pendingOrderFixture(38.37)
	order.Status = domain.OrderStatusCompleted
	order.PaymentIntentID = "pi_original"
	fixture.orders.put(order)

	resp, body := postJSON(t, fixture.app, "/update-order-status", UpdateOrderStatusRequest{
		OrderID:       order.ID.String(),
		Status:        "completed",
		PaymentStatus: "succeeded",
	})

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, false, body["transitioned"])
	data := body["data"].(map[string]interface{})
	assert.Equal(t, "pi_original", data["payment_intent_id"],
		fmt.Sprintf("manual fix must not blank the intent id on order %s", order.ID))
}
