package service

import (
	"fmt"
	"log"

	"github.com/google/uuid"

	"github.com/saiindkan/sweets-n-snacks-production/internal/domain"
	"github.com/saiindkan/sweets-n-snacks-production/internal/gateway"
	"github.com/saiindkan/sweets-n-snacks-production/internal/pricing"
)

// CheckoutService is the payment intent bridge: it prices the cart, creates
// the pending order, and opens a processor payment intent correlated to it.
type CheckoutService struct {
	orders  OrderStore
	gateway gateway.PaymentGateway
	policy  pricing.Policy
}

func NewCheckoutService(orders OrderStore, paymentGateway gateway.PaymentGateway, policy pricing.Policy) *CheckoutService {
	return &CheckoutService{
		orders:  orders,
		gateway: paymentGateway,
		policy:  policy,
	}
}

type CheckoutResult struct {
	ClientSecret string
	OrderID      uuid.UUID
	Totals       pricing.Totals
}

// CreatePaymentIntent runs the checkout submission. The order insert is a
// precondition for the processor call: if the datastore is down, no intent
// is ever created. A processor failure after the insert leaves the pending
// order behind for the sweeper to resolve.
func (s *CheckoutService) CreatePaymentIntent(customer domain.CustomerInfo, items []domain.OrderItem) (*CheckoutResult, error) {
	if len(items) == 0 {
		return nil, fmt.Errorf("at least one item is required")
	}

	lineItems := make([]pricing.LineItem, len(items))
	for i, item := range items {
		lineItems[i] = pricing.LineItem{UnitPrice: item.UnitPrice, Quantity: item.Quantity}
	}
	totals := pricing.Calculate(lineItems, customer.State, s.policy)

	order := domain.NewOrder(customer, items, totals)
	if err := s.orders.CreateOrder(order); err != nil {
		return nil, fmt.Errorf("order creation error: %v", err)
	}

	intent, err := s.gateway.CreateIntent(gateway.IntentRequest{
		AmountCents:   pricing.MinorUnits(totals.Total),
		Currency:      "usd",
		OrderID:       order.ID.String(),
		CustomerEmail: customer.Email,
		CustomerName:  customer.CardholderName,
	})
	if err != nil {
		// The pending order stays behind with no intent id; the sweeper
		// writes it off once it ages past the abandon cutoff.
		return nil, fmt.Errorf("payment intent creation error: %v", err)
	}

	if err := s.orders.SetPaymentIntent(order.ID, intent.ID); err != nil {
		log.Printf("Payment intent correlation error for order %s: %v", order.ID, err)
	}

	log.Printf("Checkout started: OrderID=%s, Total=%.2f, Intent=%s", order.ID, totals.Total, intent.ID)

	return &CheckoutResult{
		ClientSecret: intent.ClientSecret,
		OrderID:      order.ID,
		Totals:       totals,
	}, nil
}
