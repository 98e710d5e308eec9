package service

import (
	"context"
	"log"
	"time"

	"github.com/saiindkan/sweets-n-snacks-production/internal/config"
	"github.com/saiindkan/sweets-n-snacks-production/internal/domain"
	"github.com/saiindkan/sweets-n-snacks-production/internal/gateway"
)

// Sweeper resolves orders stuck in pending: checkouts where the client
// closed the tab, the webhook never landed, and nobody pressed the manual
// fix button. It asks the processor what actually happened and applies the
// same guarded transitions as the live triggers.
type Sweeper struct {
	orders     OrderStore
	gateway    gateway.PaymentGateway
	reconciler *OrderService
	cfg        config.SweeperConfig
}

func NewSweeper(orders OrderStore, paymentGateway gateway.PaymentGateway, reconciler *OrderService, cfg config.SweeperConfig) *Sweeper {
	return &Sweeper{
		orders:     orders,
		gateway:    paymentGateway,
		reconciler: reconciler,
		cfg:        cfg,
	}
}

// Run sweeps on the configured interval until the context is cancelled.
func (s *Sweeper) Run(ctx context.Context) {
	ticker := time.NewTicker(s.cfg.Interval)
	defer ticker.Stop()

	log.Printf("Pending-order sweeper running: interval=%s, max age=%s", s.cfg.Interval, s.cfg.MaxAge)

	for {
		select {
		case <-ticker.C:
			s.SweepOnce()
		case <-ctx.Done():
			log.Println("Pending-order sweeper stopped")
			return
		}
	}
}

// SweepOnce resolves every pending order older than the configured age.
// Per-order failures are logged and skipped so one bad record cannot stall
// the rest of the sweep.
func (s *Sweeper) SweepOnce() {
	cutoff := time.Now().Add(-s.cfg.MaxAge)

	stale, err := s.orders.ListStalePending(cutoff)
	if err != nil {
		log.Printf("Sweeper list error: %v", err)
		return
	}

	for _, order := range stale {
		if err := s.resolve(order); err != nil {
			log.Printf("Sweeper resolve error for order %s: %v", order.ID, err)
		}
	}
}

func (s *Sweeper) resolve(order *domain.Order) error {
	// No intent means the checkout never reached the processor. Nothing to
	// ask Stripe about; write the order off once it is old enough.
	if order.PaymentIntentID == "" {
		if time.Since(order.CreatedAt) < s.cfg.AbandonAge {
			return nil
		}
		_, _, err := s.reconciler.UpdateOrderStatus(order.ID, domain.StatusChange{
			Status:        domain.OrderStatusFailed,
			PaymentStatus: "abandoned",
		}, "sweeper")
		return err
	}

	intent, err := s.gateway.GetIntent(order.PaymentIntentID)
	if err != nil {
		return err
	}

	switch intent.Status {
	case gateway.IntentStatusSucceeded:
		_, err = s.reconciler.applyProcessorOutcome(order.ID, true, intent.ID, float64(intent.AmountCents)/100, "sweeper")
		return err
	case gateway.IntentStatusCanceled:
		_, err = s.reconciler.applyProcessorOutcome(order.ID, false, intent.ID, float64(intent.AmountCents)/100, "sweeper")
		return err
	default:
		// Still in flight at the processor; leave it for the next sweep.
		return nil
	}
}
