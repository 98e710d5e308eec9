package domain

import (
	"time"

	"github.com/google/uuid"

	"github.com/saiindkan/sweets-n-snacks-production/internal/pricing"
)

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusCompleted OrderStatus = "completed"
	OrderStatusFailed    OrderStatus = "failed"
)

// TerminalOrderStatus reports whether s names a state an order may be
// reconciled into. Orders are only ever created pending; no trigger can
// set an order back to it, so pending is not a valid target.
func TerminalOrderStatus(s string) bool {
	switch OrderStatus(s) {
	case OrderStatusCompleted, OrderStatusFailed:
		return true
	}
	return false
}

type BillingAddress struct {
	Street  string `json:"street"`
	City    string `json:"city"`
	State   string `json:"state"`
	ZipCode string `json:"zip_code"`
	Country string `json:"country"`
}

// OrderItem is a snapshot of a catalog product at order-creation time.
// Later catalog changes never alter historical orders.
type OrderItem struct {
	ProductID   uuid.UUID `json:"product_id"`
	ProductName string    `json:"product_name"`
	Quantity    int       `json:"quantity"`
	UnitPrice   float64   `json:"unit_price"`
	LineTotal   float64   `json:"line_total"`
}

// Order is the persisted record of one checkout attempt.
type Order struct {
	ID              uuid.UUID      `json:"id"`
	CustomerEmail   string         `json:"customer_email"`
	CustomerName    string         `json:"customer_name"`
	CustomerPhone   string         `json:"customer_phone,omitempty"`
	BillingAddress  BillingAddress `json:"billing_address"`
	Subtotal        float64        `json:"subtotal"`
	Shipping        float64        `json:"shipping"`
	Tax             float64        `json:"tax"`
	Total           float64        `json:"total"`
	Status          OrderStatus    `json:"status"`
	PaymentIntentID string         `json:"payment_intent_id,omitempty"`
	PaymentStatus   string         `json:"payment_status,omitempty"`
	Items           []OrderItem    `json:"items"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
}

type CustomerInfo struct {
	Email          string
	CardholderName string
	Phone          string
	Address        string
	City           string
	State          string
	ZipCode        string
	Country        string
}

// NewOrder builds a pending order from a priced item snapshot. The totals
// are captured as computed; they are not re-validated afterwards.
func NewOrder(customer CustomerInfo, items []OrderItem, totals pricing.Totals) *Order {
	country := customer.Country
	if country == "" {
		country = "US"
	}

	now := time.Now()
	return &Order{
		ID:            uuid.New(),
		CustomerEmail: customer.Email,
		CustomerName:  customer.CardholderName,
		CustomerPhone: customer.Phone,
		BillingAddress: BillingAddress{
			Street:  customer.Address,
			City:    customer.City,
			State:   customer.State,
			ZipCode: customer.ZipCode,
			Country: country,
		},
		Subtotal:  totals.Subtotal,
		Shipping:  totals.Shipping,
		Tax:       totals.Tax,
		Total:     totals.Total,
		Status:    OrderStatusPending,
		Items:     items,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// IsFinal reports whether the order has reached a terminal state.
func (o *Order) IsFinal() bool {
	return o.Status == OrderStatusCompleted || o.Status == OrderStatusFailed
}

// StatusChange is the payload every reconciliation trigger converges on:
// a target status plus optional mirrors of the processor's own vocabulary.
type StatusChange struct {
	Status          OrderStatus
	PaymentIntentID string
	PaymentStatus   string
}
