package handlers

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/saiindkan/sweets-n-snacks-production/internal/service"
)

type CheckoutHandler struct {
	checkout *service.CheckoutService
}

func NewCheckoutHandler(checkout *service.CheckoutService) *CheckoutHandler {
	return &CheckoutHandler{checkout: checkout}
}

// CreatePaymentIntent handles POST /create-payment-intent: price the cart,
// create the pending order, open the processor intent, hand the client
// secret back for card confirmation.
func (h *CheckoutHandler) CreatePaymentIntent(c *fiber.Ctx) error {
	var request CreatePaymentIntentRequest

	if err := c.BodyParser(&request); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request body",
		})
	}

	if len(request.Items) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "At least one item is required",
		})
	}
	if request.CustomerInfo.Email == "" || request.CustomerInfo.CardholderName == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Customer email and name are required",
		})
	}
	for _, item := range request.Items {
		if item.Product.ID == uuid.Nil || item.Quantity <= 0 || item.Product.Price < 0 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid item",
			})
		}
	}

	result, err := h.checkout.CreatePaymentIntent(request.CustomerInfo.ToDomain(), toOrderItems(request.Items))
	if err != nil {
		log.Printf("Error creating payment intent: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create payment intent",
		})
	}

	return c.JSON(fiber.Map{
		"clientSecret": result.ClientSecret,
		"orderId":      result.OrderID,
	})
}
