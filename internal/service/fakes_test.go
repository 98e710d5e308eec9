package service

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

// fakeOrderStore mirrors the repository's guarded-transition semantics in
// memory so the services can be exercised without Postgres.
type fakeOrderStore struct {
	mu           sync.Mutex
	orders       map[uuid.UUID]*domain.Order
	createErr    error
	setIntentErr error
	finalizeErr  error
}

func newFakeOrderStore() *fakeOrderStore {
	return &fakeOrderStore{orders: make(map[uuid.UUID]*domain.Order)}
}

func (f *fakeOrderStore) CreateOrder(order *domain.Order) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return f.createErr
	}
	copied := *order
	f.orders[order.ID] = &copied
	return nil
}

func (f *fakeOrderStore) GetOrderByID(orderID uuid.UUID) (*domain.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	order, ok := f.orders[orderID]
	if !ok {
		return nil, repository.ErrOrderNotFound
	}
	copied := *order
	return &copied, nil
}

func (f *fakeOrderStore) GetOrdersByEmail(email string) ([]*domain.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var result []*domain.Order
	for _, order := range f.orders {
		if order.CustomerEmail == email {
			copied := *order
			result = append(result, &copied)
		}
	}
	return result, nil
}

func (f *fakeOrderStore) SetPaymentIntent(orderID uuid.UUID, intentID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.setIntentErr != nil {
		return f.setIntentErr
	}
	order, ok := f.orders[orderID]
	if !ok {
		return repository.ErrOrderNotFound
	}
	order.PaymentIntentID = intentID
	order.UpdatedAt = time.Now()
	return nil
}

func (f *fakeOrderStore) FinalizeOrder(orderID uuid.UUID, change domain.StatusChange) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.finalizeErr != nil {
		return false, f.finalizeErr
	}
	order, ok := f.orders[orderID]
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

func (f *fakeOrderStore) ListStalePending(olderThan time.Time) ([]*domain.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var result []*domain.Order
	for _, order := range f.orders {
		if order.Status == domain.OrderStatusPending && order.CreatedAt.Before(olderThan) {
			copied := *order
			result = append(result, &copied)
		}
	}
	return result, nil
}

func (f *fakeOrderStore) put(order *domain.Order) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.orders[order.ID] = order
}

type fakePaymentStore struct {
	mu       sync.Mutex
	payments []*domain.Payment
}

func (f *fakePaymentStore) CreatePayment(payment *domain.Payment) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.payments = append(f.payments, payment)
	return nil
}

func (f *fakePaymentStore) GetPaymentsByOrderID(orderID uuid.UUID) ([]*domain.Payment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var result []*domain.Payment
	for _, payment := range f.payments {
		if payment.OrderID == orderID {
			result = append(result, payment)
		}
	}
	return result, nil
}

type fakeEventLedger struct {
	mu   sync.Mutex
	seen map[string]bool
}

func newFakeEventLedger() *fakeEventLedger {
	return &fakeEventLedger{seen: make(map[string]bool)}
}

func (f *fakeEventLedger) MarkProcessed(eventID string, _ uuid.UUID, _ string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.seen[eventID] {
		return false, nil
	}
	f.seen[eventID] = true
	return true, nil
}

func (f *fakeEventLedger) Forget(eventID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.seen, eventID)
	return nil
}

type fakePublisher struct {
	mu     sync.Mutex
	events []events.OrderEvent
	err    error
}

func (f *fakePublisher) PublishOrderEvent(event events.OrderEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.events = append(f.events, event)
	return nil
}

func (f *fakePublisher) published(eventType events.OrderEventType) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	count := 0
	for _, event := range f.events {
		if event.EventType == eventType {
			count++
		}
	}
	return count
}

type fakeGateway struct {
	mu        sync.Mutex
	requests  []gateway.IntentRequest
	intents   map[string]*gateway.Intent
	createErr error
	getErr    error
}

func newFakeGateway() *fakeGateway {
	return &fakeGateway{intents: make(map[string]*gateway.Intent)}
}

func (f *fakeGateway) CreateIntent(req gateway.IntentRequest) (*gateway.Intent, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.requests = append(f.requests, req)
	intent := &gateway.Intent{
		ID:           fmt.Sprintf("pi_%d", len(f.requests)),
		ClientSecret: fmt.Sprintf("pi_%d_secret", len(f.requests)),
		Status:       gateway.IntentStatusRequiresPayment,
		AmountCents:  req.AmountCents,
	}
	f.intents[intent.ID] = intent
	return intent, nil
}

func (f *fakeGateway) GetIntent(id string) (*gateway.Intent, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return nil, f.getErr
	}
	intent, ok := f.intents[id]
	if !ok {
		return nil, fmt.Errorf("no such intent: %s", id)
	}
	return intent, nil
}

type sentMail struct {
	to      string
	subject string
	html    string
	text    string
}

type fakeMailer struct {
	mu   sync.Mutex
	sent []sentMail
	err  error
}

func (f *fakeMailer) Send(to, subject, html, text string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return "", f.err
	}
	f.sent = append(f.sent, sentMail{to: to, subject: subject, html: html, text: text})
	return fmt.Sprintf("msg-%d", len(f.sent)), nil
}

func pendingOrder(total float64) *domain.Order {
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
