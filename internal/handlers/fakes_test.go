package handlers

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/saiindkan/sweets-n-snacks-production/internal/domain"
	"github.com/saiindkan/sweets-n-snacks-production/internal/events"
	"github.com/saiindkan/sweets-n-snacks-production/internal/gateway"
	"github.com/saiindkan/sweets-n-snacks-production/internal/repository"
)

// In-memory doubles for the service interfaces so the handlers can be
// exercised through fiber's test transport without Postgres or Stripe.

type memOrderStore struct {
	mu     sync.Mutex
	orders map[uuid.UUID]*domain.Order
}

func newMemOrderStore() *memOrderStore {
	return &memOrderStore{orders: make(map[uuid.UUID]*domain.Order)}
}

func (m *memOrderStore) put(order *domain.Order) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.orders[order.ID] = order
}

func (m *memOrderStore) CreateOrder(order *domain.Order) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	copied := *order
	m.orders[order.ID] = &copied
	return nil
}

func (m *memOrderStore) GetOrderByID(orderID uuid.UUID) (*domain.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	order, ok := m.orders[orderID]
	if !ok {
		return nil, repository.ErrOrderNotFound
	}
	copied := *order
	return &copied, nil
}

func (m *memOrderStore) GetOrdersByEmail(email string) ([]*domain.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var result []*domain.Order
	for _, order := range m.orders {
		if order.CustomerEmail == email {
			copied := *order
			result = append(result, &copied)
		}
	}
	return result, nil
}

func (m *memOrderStore) SetPaymentIntent(orderID uuid.UUID, intentID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	order, ok := m.orders[orderID]
	if !ok {
		return repository.ErrOrderNotFound
	}
	order.PaymentIntentID = intentID
	return nil
}

func (m *memOrderStore) FinalizeOrder(orderID uuid.UUID, change domain.StatusChange) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	order, ok := m.orders[orderID]
	if !ok {
		return false, repository.ErrOrderNotFound
	}
	if order.Status != domain.OrderStatusPending {
		return false, nil
	}
	order.Status = change.Status
	if change.PaymentIntentID != "" {
		order.PaymentIntentID = change.PaymentIntentID
	}
	order.PaymentStatus = change.PaymentStatus
	order.UpdatedAt = time.Now()
	return true, nil
}

func (m *memOrderStore) ListStalePending(olderThan time.Time) ([]*domain.Order, error) {
	return nil, nil
}

type memPaymentStore struct {
	mu       sync.Mutex
	payments []*domain.Payment
}

func (m *memPaymentStore) CreatePayment(payment *domain.Payment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.payments = append(m.payments, payment)
	return nil
}

func (m *memPaymentStore) GetPaymentsByOrderID(orderID uuid.UUID) ([]*domain.Payment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var result []*domain.Payment
	for _, payment := range m.payments {
		if payment.OrderID == orderID {
			result = append(result, payment)
		}
	}
	return result, nil
}

type memEventLedger struct {
	mu   sync.Mutex
	seen map[string]bool
}

func newMemEventLedger() *memEventLedger {
	return &memEventLedger{seen: make(map[string]bool)}
}

func (m *memEventLedger) MarkProcessed(eventID string, _ uuid.UUID, _ string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.seen[eventID] {
		return false, nil
	}
	m.seen[eventID] = true
	return true, nil
}

func (m *memEventLedger) Forget(eventID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.seen, eventID)
	return nil
}

type memPublisher struct {
	mu     sync.Mutex
	events []events.OrderEvent
}

func (m *memPublisher) PublishOrderEvent(event events.OrderEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, event)
	return nil
}

type stubGateway struct {
	mu       sync.Mutex
	requests []gateway.IntentRequest
	err      error
}

func (s *stubGateway) CreateIntent(req gateway.IntentRequest) (*gateway.Intent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	s.requests = append(s.requests, req)
	return &gateway.Intent{
		ID:           fmt.Sprintf("pi_%d", len(s.requests)),
		ClientSecret: fmt.Sprintf("pi_%d_secret", len(s.requests)),
		Status:       gateway.IntentStatusRequiresPayment,
		AmountCents:  req.AmountCents,
	}, nil
}

func (s *stubGateway) GetIntent(id string) (*gateway.Intent, error) {
	return nil, fmt.Errorf("no such intent: %s", id)
}

type memMail struct {
	to      string
	subject string
	html    string
	text    string
}

type memMailer struct {
	mu   sync.Mutex
	sent []memMail
	err  error
}

func (m *memMailer) Send(to, subject, html, text string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return "", m.err
	}
	m.sent = append(m.sent, memMail{to: to, subject: subject, html: html, text: text})
	return fmt.Sprintf("msg-%d", len(m.sent)), nil
}

// stubVerifier accepts exactly one signature and hands back a canned event.
type stubVerifier struct {
	signature string
	event     *gateway.WebhookEvent
}

func (s *stubVerifier) VerifyEvent(payload []byte, signature string) (*gateway.WebhookEvent, error) {
	if signature != s.signature {
		return nil, fmt.Errorf("signature mismatch")
	}
	return s.event, nil
}

func pendingOrderFixture(total float64) *domain.Order {
	now := time.Now()
	return &domain.Order{
		ID:            uuid.New(),
		CustomerEmail: "customer@example.com",
		CustomerName:  "Asha Patel",
		BillingAddress: domain.BillingAddress{
			Street: "12 Spice Lane", City: "Edison", State: "NJ", ZipCode: "08817", Country: "US",
		},
		Subtotal: total, Total: total,
		Status: domain.OrderStatusPending,
		Items: []domain.OrderItem{
			{ProductID: uuid.New(), ProductName: "Kaju Katli", Quantity: 1, UnitPrice: total, LineTotal: total},
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
}
