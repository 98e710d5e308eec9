package events

import (
	"time"

	"github.com/google/uuid"
)

type OrderEventType string

const (
	// OrderCompletedEvent fires exactly once per order, on the first
	// transition out of pending into completed. The notification worker
	// listens for it.
	OrderCompletedEvent OrderEventType = "order.completed"
	// OrderFailedEvent fires on the first transition into failed.
	OrderFailedEvent OrderEventType = "order.failed"
)

// OrderEvent is the message published to the broker when an order reaches
// a terminal state. It carries ids only; consumers load the order record
// themselves so the email always reflects what was persisted.
type OrderEvent struct {
	ID              uuid.UUID      `json:"id"`
	OrderID         uuid.UUID      `json:"order_id"`
	EventType       OrderEventType `json:"event_type"`
	PaymentIntentID string         `json:"payment_intent_id,omitempty"`
	Source          string         `json:"source"` // which trigger produced it
	Timestamp       time.Time      `json:"timestamp"`
}

func NewOrderEvent(orderID uuid.UUID, eventType OrderEventType, paymentIntentID, source string) OrderEvent {
	return OrderEvent{
		ID:              uuid.New(),
		OrderID:         orderID,
		EventType:       eventType,
		PaymentIntentID: paymentIntentID,
		Source:          source,
		Timestamp:       time.Now(),
	}
}
