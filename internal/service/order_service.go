package service

import (
	"fmt"
	"log"

	"github.com/google/uuid"

	"github.com/saiindkan/sweets-n-snacks-production/internal/domain"
	"github.com/saiindkan/sweets-n-snacks-production/internal/events"
	"github.com/saiindkan/sweets-n-snacks-production/internal/gateway"
)

// OrderService reconciles orders toward a terminal state. Three uncoordinated
// triggers funnel into it: the client's post-confirmation callback, the manual
// fix action, and the processor webhook. The conditional update in the order
// store decides which trigger wins; everything else here keys off that
// outcome, so payment records and confirmation emails happen at most once
// per order no matter how the triggers interleave.
type OrderService struct {
	orders    OrderStore
	payments  PaymentStore
	ledger    EventLedger
	publisher EventPublisher
}

func NewOrderService(orders OrderStore, payments PaymentStore, ledger EventLedger, publisher EventPublisher) *OrderService {
	return &OrderService{
		orders:    orders,
		payments:  payments,
		ledger:    ledger,
		publisher: publisher,
	}
}

func (s *OrderService) GetOrderByID(orderID uuid.UUID) (*domain.Order, error) {
	return s.orders.GetOrderByID(orderID)
}

func (s *OrderService) GetOrdersByEmail(email string) ([]*domain.Order, error) {
	return s.orders.GetOrdersByEmail(email)
}

// GetOrderPayments returns the processor payment records written for an
// order, newest first.
func (s *OrderService) GetOrderPayments(orderID uuid.UUID) ([]*domain.Payment, error) {
	return s.payments.GetPaymentsByOrderID(orderID)
}

// UpdateOrderStatus serves the client callback and the manual fix action.
// When the order is already final the call is a no-op that reports the
// current record back; it never rewrites a terminal state and never creates
// a payment record. Only completed and failed are accepted targets: a
// pending target would match the guard's WHERE clause, count as a
// transition, and fire a confirmation for an order nobody paid for.
func (s *OrderService) UpdateOrderStatus(orderID uuid.UUID, change domain.StatusChange, source string) (*domain.Order, bool, error) {
	if !domain.TerminalOrderStatus(string(change.Status)) {
		return nil, false, fmt.Errorf("non-terminal target status: %s", change.Status)
	}

	transitioned, err := s.orders.FinalizeOrder(orderID, change)
	if err != nil {
		return nil, false, err
	}

	order, err := s.orders.GetOrderByID(orderID)
	if err != nil {
		return nil, false, err
	}

	if !transitioned {
		log.Printf("Order %s already %s, %s trigger ignored", orderID, order.Status, source)
		return order, false, nil
	}

	log.Printf("Order %s -> %s (trigger: %s)", orderID, change.Status, source)
	s.publishLifecycleEvent(order, change)

	return order, true, nil
}

// HandleWebhookEvent serves the processor-authoritative path. The event id
// is claimed in the ledger before any side effect, so redelivered events
// short-circuit; the guarded transition then protects against races with
// the other two triggers.
func (s *OrderService) HandleWebhookEvent(event *gateway.WebhookEvent) error {
	if event.Type == gateway.WebhookIgnored {
		return nil
	}

	if event.OrderID == "" {
		log.Printf("Webhook event %s carries no order id, skipping", event.ID)
		return nil
	}

	orderID, err := uuid.Parse(event.OrderID)
	if err != nil {
		return fmt.Errorf("invalid order id in event metadata: %v", err)
	}

	first, err := s.ledger.MarkProcessed(event.ID, orderID, string(event.Type))
	if err != nil {
		return err
	}
	if !first {
		log.Printf("Webhook event %s already processed, skipping", event.ID)
		return nil
	}

	succeeded := event.Type == gateway.WebhookPaymentSucceeded
	amount := float64(event.AmountCents) / 100

	if _, err := s.applyProcessorOutcome(orderID, succeeded, event.IntentID, amount, "webhook"); err != nil {
		// The claim and the transition are separate statements. Release the
		// claim on failure so the processor's redelivery is not consumed by
		// a ledger row whose side effects never happened.
		if ferr := s.ledger.Forget(event.ID); ferr != nil {
			log.Printf("Event ledger release error for %s: %v", event.ID, ferr)
		}
		return err
	}
	return nil
}

// applyProcessorOutcome records what the processor says happened to a
// payment: the guarded transition first, then a payment record and a
// lifecycle event only when this caller actually performed the transition.
func (s *OrderService) applyProcessorOutcome(orderID uuid.UUID, succeeded bool, intentID string, amount float64, source string) (bool, error) {
	change := domain.StatusChange{
		Status:          domain.OrderStatusCompleted,
		PaymentIntentID: intentID,
		PaymentStatus:   "succeeded",
	}
	paymentStatus := domain.PaymentStatusCompleted
	if !succeeded {
		change.Status = domain.OrderStatusFailed
		change.PaymentStatus = "failed"
		paymentStatus = domain.PaymentStatusFailed
	}

	transitioned, err := s.orders.FinalizeOrder(orderID, change)
	if err != nil {
		return false, err
	}

	if !transitioned {
		log.Printf("Order %s already final, %s outcome ignored", orderID, source)
		return false, nil
	}

	log.Printf("Order %s -> %s (trigger: %s)", orderID, change.Status, source)

	payment := domain.NewPayment(orderID, amount, paymentStatus, intentID)
	if err := s.payments.CreatePayment(payment); err != nil {
		// The order transition already happened; a lost payment record is
		// an audit gap, not a reason to fail the webhook.
		log.Printf("Payment record creation error for order %s: %v", orderID, err)
	}

	order := &domain.Order{ID: orderID}
	s.publishLifecycleEvent(order, change)

	return true, nil
}

// publishLifecycleEvent emits the single notification trigger for a
// completed order. Publish failures are logged and swallowed: the status
// transition is already durable and must not be rolled back over email.
func (s *OrderService) publishLifecycleEvent(order *domain.Order, change domain.StatusChange) {
	var eventType events.OrderEventType
	switch change.Status {
	case domain.OrderStatusCompleted:
		eventType = events.OrderCompletedEvent
	case domain.OrderStatusFailed:
		eventType = events.OrderFailedEvent
	default:
		return
	}

	event := events.NewOrderEvent(order.ID, eventType, change.PaymentIntentID, "order-service")
	if err := s.publisher.PublishOrderEvent(event); err != nil {
		log.Printf("Order event publish error for order %s: %v", order.ID, err)
	}
}
