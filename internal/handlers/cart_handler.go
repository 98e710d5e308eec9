package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/saiindkan/sweets-n-snacks-production/internal/cart"
	"github.com/saiindkan/sweets-n-snacks-production/internal/httpx"
)

const cartIDHeader = "X-Cart-ID"

// CartHandler exposes the session cart over HTTP. The session store is an
// explicit dependency; the cart itself is an immutable value that gets
// replaced, never mutated, on every write.
type CartHandler struct {
	sessions *cart.SessionStore
}

func NewCartHandler(sessions *cart.SessionStore) *CartHandler {
	return &CartHandler{sessions: sessions}
}

func (h *CartHandler) GetCart(c *fiber.Ctx) error {
	cartID := h.cartID(c)
	snapshot := h.sessions.Get(cartID)
	return httpx.SuccessResponse(c, "Cart retrieved successfully", toCartResponse(cartID, snapshot))
}

func (h *CartHandler) AddItem(c *fiber.Ctx) error {
	var request AddCartItemRequest

	if err := c.BodyParser(&request); err != nil {
		return httpx.BadRequestResponse(c, "Invalid request body", map[string]interface{}{
			"parse_error": err.Error(),
		})
	}

	if request.ProductID == uuid.Nil {
		return httpx.BadRequestResponse(c, "Product ID is required", nil)
	}
	if request.Quantity <= 0 {
		request.Quantity = 1
	}

	cartID := h.cartID(c)
	snapshot := h.sessions.Get(cartID).Add(request.ProductID, request.ProductName, request.UnitPrice, request.Quantity)
	h.sessions.Save(cartID, snapshot)

	return httpx.SuccessResponse(c, "Item added to cart", toCartResponse(cartID, snapshot))
}

func (h *CartHandler) SetQuantity(c *fiber.Ctx) error {
	productID, err := uuid.Parse(c.Params("product_id"))
	if err != nil {
		return httpx.BadRequestResponse(c, "Invalid product ID", nil)
	}

	var request SetCartQuantityRequest
	if err := c.BodyParser(&request); err != nil {
		return httpx.BadRequestResponse(c, "Invalid request body", map[string]interface{}{
			"parse_error": err.Error(),
		})
	}

	cartID := h.cartID(c)
	snapshot := h.sessions.Get(cartID).SetQuantity(productID, request.Quantity)
	h.sessions.Save(cartID, snapshot)

	return httpx.SuccessResponse(c, "Cart updated", toCartResponse(cartID, snapshot))
}

func (h *CartHandler) RemoveItem(c *fiber.Ctx) error {
	productID, err := uuid.Parse(c.Params("product_id"))
	if err != nil {
		return httpx.BadRequestResponse(c, "Invalid product ID", nil)
	}

	cartID := h.cartID(c)
	snapshot := h.sessions.Get(cartID).Remove(productID)
	h.sessions.Save(cartID, snapshot)

	return httpx.SuccessResponse(c, "Item removed from cart", toCartResponse(cartID, snapshot))
}

func (h *CartHandler) ClearCart(c *fiber.Ctx) error {
	cartID := h.cartID(c)
	h.sessions.Delete(cartID)
	return httpx.SuccessResponse(c, "Cart cleared", toCartResponse(cartID, cart.New()))
}

// cartID reads the session id from the request header, minting a fresh one
// for first-time clients. The id is echoed in the response payload so the
// client can persist it.
func (h *CartHandler) cartID(c *fiber.Ctx) string {
	cartID := c.Get(cartIDHeader)
	if cartID == "" {
		cartID = cart.NewSessionID()
	}
	return cartID
}
