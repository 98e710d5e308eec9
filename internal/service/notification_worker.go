package service

import (
	"fmt"
	"log"

	"github.com/saiindkan/sweets-n-snacks-production/internal/events"
)

// NotificationWorker turns order lifecycle events from the broker into
// customer email. Because the reconciler publishes order.completed exactly
// once per order, one logical payment completion produces one confirmation
// email.
type NotificationWorker struct {
	orders        OrderStore
	notifications *NotificationService
}

func NewNotificationWorker(orders OrderStore, notifications *NotificationService) *NotificationWorker {
	return &NotificationWorker{
		orders:        orders,
		notifications: notifications,
	}
}

// RoutingKeys the worker's queue binds to.
func (w *NotificationWorker) RoutingKeys() []string {
	return []string{
		fmt.Sprintf("storefront.%s", events.OrderCompletedEvent),
		fmt.Sprintf("storefront.%s", events.OrderFailedEvent),
	}
}

// HandleOrderEvent loads the persisted order so the email always reflects
// what was written, then dispatches the confirmation. Failed orders are
// logged only; the storefront does not email payment failures.
func (w *NotificationWorker) HandleOrderEvent(event events.OrderEvent) error {
	switch event.EventType {
	case events.OrderCompletedEvent:
		order, err := w.orders.GetOrderByID(event.OrderID)
		if err != nil {
			return fmt.Errorf("order lookup for notification failed: %v", err)
		}
		return w.notifications.SendOrderConfirmation(order)

	case events.OrderFailedEvent:
		log.Printf("Order %s failed (%s), no notification sent", event.OrderID, event.Source)
		return nil

	default:
		log.Printf("Unhandled order event type: %s", event.EventType)
		return nil
	}
}
