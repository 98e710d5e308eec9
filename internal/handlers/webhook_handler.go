package handlers

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"github.com/saiindkan/sweets-n-snacks-production/internal/gateway"
	"github.com/saiindkan/sweets-n-snacks-production/internal/service"
)

type WebhookHandler struct {
	verifier gateway.WebhookVerifier
	orders   *service.OrderService
}

func NewWebhookHandler(verifier gateway.WebhookVerifier, orders *service.OrderService) *WebhookHandler {
	return &WebhookHandler{
		verifier: verifier,
		orders:   orders,
	}
}

// HandleWebhook handles POST /webhook, the processor-authoritative path.
// Signature verification comes first; a bad signature is rejected with 400
// before anything touches the datastore. A non-2xx makes the processor
// retry delivery, and the event ledger makes those retries no-ops.
func (h *WebhookHandler) HandleWebhook(c *fiber.Ctx) error {
	payload := c.Body()
	signature := c.Get("Stripe-Signature")

	event, err := h.verifier.VerifyEvent(payload, signature)
	if err != nil {
		log.Printf("Webhook signature verification failed: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid signature",
		})
	}

	if err := h.orders.HandleWebhookEvent(event); err != nil {
		log.Printf("Error processing webhook event %s: %v", event.ID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Webhook processing failed",
		})
	}

	return c.JSON(fiber.Map{"received": true})
}
