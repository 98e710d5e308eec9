package handlers

import (
	"errors"
	"log"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/saiindkan/sweets-n-snacks-production/internal/domain"
	"github.com/saiindkan/sweets-n-snacks-production/internal/httpx"
	"github.com/saiindkan/sweets-n-snacks-production/internal/repository"
	"github.com/saiindkan/sweets-n-snacks-production/internal/service"
)

type OrderHandler struct {
	orders *service.OrderService
}

func NewOrderHandler(orders *service.OrderService) *OrderHandler {
	return &OrderHandler{orders: orders}
}

// UpdateOrderStatus handles POST /update-order-status, shared by the
// client's post-confirmation callback and the manual fix action on the
// order listing. The reconciler ignores it when the order is already
// final, so retries and stale callbacks are harmless.
func (h *OrderHandler) UpdateOrderStatus(c *fiber.Ctx) error {
	var request UpdateOrderStatusRequest

	if err := c.BodyParser(&request); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if request.OrderID == "" || request.Status == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Missing required fields",
		})
	}

	orderID, err := uuid.Parse(request.OrderID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid order id",
		})
	}

	if !domain.TerminalOrderStatus(request.Status) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Status must be completed or failed",
		})
	}

	source := "client-callback"
	if request.PaymentIntentID == "" {
		// The manual fix action carries no payment intent id.
		source = "manual-fix"
	}

	order, transitioned, err := h.orders.UpdateOrderStatus(orderID, domain.StatusChange{
		Status:          domain.OrderStatus(request.Status),
		PaymentIntentID: request.PaymentIntentID,
		PaymentStatus:   request.PaymentStatus,
	}, source)

	if err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Order not found",
			})
		}
		log.Printf("Error updating order status: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update order status",
		})
	}

	return c.JSON(fiber.Map{
		"success":      true,
		"data":         toOrderResponse(order),
		"transitioned": transitioned,
	})
}

func (h *OrderHandler) GetOrderByID(c *fiber.Ctx) error {
	orderIDStr := c.Params("id")
	orderID, err := uuid.Parse(orderIDStr)
	if err != nil {
		return httpx.BadRequestResponse(c, "Invalid order ID", map[string]interface{}{
			"order_id": orderIDStr,
		})
	}

	order, err := h.orders.GetOrderByID(orderID)
	if err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			return httpx.NotFoundResponse(c, "Order not found")
		}
		return httpx.InternalServerErrorResponse(c, "Order retrieval failed", map[string]interface{}{
			"error": err.Error(),
		})
	}

	payments, err := h.orders.GetOrderPayments(orderID)
	if err != nil {
		return httpx.InternalServerErrorResponse(c, "Order retrieval failed", map[string]interface{}{
			"error": err.Error(),
		})
	}

	return httpx.SuccessResponse(c, "Order retrieved successfully", toOrderDetailResponse(order, payments))
}

func (h *OrderHandler) GetOrdersByEmail(c *fiber.Ctx) error {
	email := c.Query("email")
	if email == "" {
		return httpx.BadRequestResponse(c, "Email query parameter is required", nil)
	}

	page := 1
	limit := 10
	if pageStr := c.Query("page"); pageStr != "" {
		if p, err := strconv.Atoi(pageStr); err == nil && p > 0 {
			page = p
		}
	}
	if limitStr := c.Query("limit"); limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil && l > 0 && l <= 100 {
			limit = l
		}
	}

	orders, err := h.orders.GetOrdersByEmail(email)
	if err != nil {
		return httpx.InternalServerErrorResponse(c, "Orders retrieval failed", map[string]interface{}{
			"error": err.Error(),
		})
	}

	start := (page - 1) * limit
	end := start + limit
	if start > len(orders) {
		start = len(orders)
	}
	if end > len(orders) {
		end = len(orders)
	}

	paginated := orders[start:end]
	responses := make([]OrderResponse, len(paginated))
	for i, order := range paginated {
		responses[i] = toOrderResponse(order)
	}

	return httpx.SuccessResponse(c, "Orders retrieved successfully", map[string]interface{}{
		"orders": responses,
		"pagination": map[string]interface{}{
			"page":     page,
			"limit":    limit,
			"total":    len(orders),
			"has_more": end < len(orders),
		},
	})
}

func (h *OrderHandler) HealthCheck(c *fiber.Ctx) error {
	return httpx.SuccessResponse(c, "Storefront API is healthy", map[string]interface{}{
		"service": "storefront-api",
		"status":  "healthy",
	})
}
