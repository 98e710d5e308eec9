package handlers

import (
	"time"

	"github.com/google/uuid"

	"github.com/saiindkan/sweets-n-snacks-production/internal/cart"
	"github.com/saiindkan/sweets-n-snacks-production/internal/domain"
)

// The four integration endpoints keep the exact JSON shapes the storefront
// client already speaks; everything under /api/v1 uses the envelope.

type CreatePaymentIntentRequest struct {
	Items        []CheckoutItem `json:"items"`
	CustomerInfo CustomerInfo   `json:"customerInfo"`
}

type CheckoutItem struct {
	Product  CheckoutProduct `json:"product"`
	Quantity int             `json:"quantity"`
}

type CheckoutProduct struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Price float64   `json:"price"`
}

type CustomerInfo struct {
	Email          string `json:"email"`
	CardholderName string `json:"cardholderName"`
	Phone          string `json:"phone"`
	Address        string `json:"address"`
	City           string `json:"city"`
	State          string `json:"state"`
	ZipCode        string `json:"zipCode"`
	Country        string `json:"country"`
}

func (c CustomerInfo) ToDomain() domain.CustomerInfo {
	return domain.CustomerInfo{
		Email:          c.Email,
		CardholderName: c.CardholderName,
		Phone:          c.Phone,
		Address:        c.Address,
		City:           c.City,
		State:          c.State,
		ZipCode:        c.ZipCode,
		Country:        c.Country,
	}
}

func toOrderItems(items []CheckoutItem) []domain.OrderItem {
	orderItems := make([]domain.OrderItem, len(items))
	for i, item := range items {
		orderItems[i] = domain.OrderItem{
			ProductID:   item.Product.ID,
			ProductName: item.Product.Name,
			Quantity:    item.Quantity,
			UnitPrice:   item.Product.Price,
			LineTotal:   item.Product.Price * float64(item.Quantity),
		}
	}
	return orderItems
}

type UpdateOrderStatusRequest struct {
	OrderID         string `json:"orderId"`
	Status          string `json:"status"`
	PaymentIntentID string `json:"paymentIntentId"`
	PaymentStatus   string `json:"paymentStatus"`
}

type SendEmailRequest struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	HTML    string `json:"html"`
	Text    string `json:"text"`
}

type OrderResponse struct {
	ID              uuid.UUID             `json:"id"`
	CustomerEmail   string                `json:"customer_email"`
	CustomerName    string                `json:"customer_name"`
	CustomerPhone   string                `json:"customer_phone,omitempty"`
	BillingAddress  domain.BillingAddress `json:"billing_address"`
	Subtotal        float64               `json:"subtotal"`
	Shipping        float64               `json:"shipping"`
	Tax             float64               `json:"tax"`
	Total           float64               `json:"total"`
	Status          string                `json:"status"`
	PaymentIntentID string                `json:"payment_intent_id,omitempty"`
	PaymentStatus   string                `json:"payment_status,omitempty"`
	Items           []domain.OrderItem    `json:"items"`
	CreatedAt       time.Time             `json:"created_at"`
	UpdatedAt       time.Time             `json:"updated_at"`
}

func toOrderResponse(order *domain.Order) OrderResponse {
	return OrderResponse{
		ID:              order.ID,
		CustomerEmail:   order.CustomerEmail,
		CustomerName:    order.CustomerName,
		CustomerPhone:   order.CustomerPhone,
		BillingAddress:  order.BillingAddress,
		Subtotal:        order.Subtotal,
		Shipping:        order.Shipping,
		Tax:             order.Tax,
		Total:           order.Total,
		Status:          string(order.Status),
		PaymentIntentID: order.PaymentIntentID,
		PaymentStatus:   order.PaymentStatus,
		Items:           order.Items,
		CreatedAt:       order.CreatedAt,
		UpdatedAt:       order.UpdatedAt,
	}
}

// OrderDetailResponse is the single-order view: the order plus the
// processor payment records written against it.
type OrderDetailResponse struct {
	OrderResponse
	Payments []*domain.Payment `json:"payments"`
}

func toOrderDetailResponse(order *domain.Order, payments []*domain.Payment) OrderDetailResponse {
	if payments == nil {
		payments = []*domain.Payment{}
	}
	return OrderDetailResponse{
		OrderResponse: toOrderResponse(order),
		Payments:      payments,
	}
}

type SendWelcomeRequest struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

type AddCartItemRequest struct {
	ProductID   uuid.UUID `json:"product_id"`
	ProductName string    `json:"product_name"`
	UnitPrice   float64   `json:"unit_price"`
	Quantity    int       `json:"quantity"`
}

type SetCartQuantityRequest struct {
	Quantity int `json:"quantity"`
}

type CartResponse struct {
	CartID     string      `json:"cart_id"`
	Items      []cart.Item `json:"items"`
	TotalItems int         `json:"total_items"`
	TotalPrice float64     `json:"total_price"`
}

func toCartResponse(cartID string, c cart.Cart) CartResponse {
	items := c.Items()
	if items == nil {
		items = []cart.Item{}
	}
	return CartResponse{
		CartID:     cartID,
		Items:      items,
		TotalItems: c.TotalItems(),
		TotalPrice: c.TotalPrice(),
	}
}
