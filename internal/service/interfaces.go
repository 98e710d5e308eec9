package service

import (
	"time"

	"github.com/google/uuid"

	"github.com/saiindkan/sweets-n-snacks-production/internal/domain"
	"github.com/saiindkan/sweets-n-snacks-production/internal/events"
)

// OrderStore is the slice of the order repository the services depend on.
type OrderStore interface {
	CreateOrder(order *domain.Order) error
	GetOrderByID(orderID uuid.UUID) (*domain.Order, error)
	GetOrdersByEmail(email string) ([]*domain.Order, error)
	SetPaymentIntent(orderID uuid.UUID, intentID string) error
	FinalizeOrder(orderID uuid.UUID, change domain.StatusChange) (bool, error)
	ListStalePending(olderThan time.Time) ([]*domain.Order, error)
}

type PaymentStore interface {
	CreatePayment(payment *domain.Payment) error
	GetPaymentsByOrderID(orderID uuid.UUID) ([]*domain.Payment, error)
}

// EventLedger gates webhook processing on first delivery of an event id.
// Forget releases a claim whose side effects failed, so the processor's
// redelivery gets another attempt instead of being silently consumed.
type EventLedger interface {
	MarkProcessed(eventID string, orderID uuid.UUID, eventType string) (bool, error)
	Forget(eventID string) error
}

type EventPublisher interface {
	PublishOrderEvent(event events.OrderEvent) error
}

// Mailer delivers one email and returns the provider message id.
type Mailer interface {
	Send(to, subject, html, text string) (string, error)
}
