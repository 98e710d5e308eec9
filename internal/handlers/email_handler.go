package handlers

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"github.com/saiindkan/sweets-n-snacks-production/internal/httpx"
	"github.com/saiindkan/sweets-n-snacks-production/internal/service"
)

type EmailHandler struct {
	notifications *service.NotificationService
}

func NewEmailHandler(notifications *service.NotificationService) *EmailHandler {
	return &EmailHandler{notifications: notifications}
}

// SendEmail handles POST /send-email, a pure relay to the SMTP collaborator.
func (h *EmailHandler) SendEmail(c *fiber.Ctx) error {
	var request SendEmailRequest

	if err := c.BodyParser(&request); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   "Invalid request body",
		})
	}

	if request.To == "" || request.Subject == "" || request.HTML == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   "Missing required fields: to, subject, html",
		})
	}

	messageID, err := h.notifications.Send(request.To, request.Subject, request.HTML, request.Text)
	if err != nil {
		log.Printf("Email sending error: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"error":   err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"success":   true,
		"messageId": messageID,
	})
}

// SendWelcome handles POST /api/v1/notifications/welcome, fired by the
// storefront when a customer account is created.
func (h *EmailHandler) SendWelcome(c *fiber.Ctx) error {
	var request SendWelcomeRequest

	if err := c.BodyParser(&request); err != nil {
		return httpx.BadRequestResponse(c, "Invalid request body", map[string]interface{}{
			"parse_error": err.Error(),
		})
	}

	if request.Email == "" {
		return httpx.BadRequestResponse(c, "Email is required", nil)
	}

	if err := h.notifications.SendWelcome(request.Email, request.Name); err != nil {
		log.Printf("Welcome email error: %v", err)
		return httpx.InternalServerErrorResponse(c, "Welcome email failed", map[string]interface{}{
			"error": err.Error(),
		})
	}

	return httpx.SuccessResponse(c, "Welcome email sent", map[string]interface{}{
		"email": request.Email,
	})
}
