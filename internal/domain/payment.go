package domain

import (
	"time"

	"github.com/google/uuid"
)

type PaymentStatus string

const (
	PaymentStatusCompleted PaymentStatus = "completed"
	PaymentStatusFailed    PaymentStatus = "failed"
)

// Payment records a payment outcome observed on the processor-authoritative
// path. Only the webhook (and the sweeper acting on the processor's answer)
// creates these; the manual fix path never does.
type Payment struct {
	ID            uuid.UUID     `json:"id"`
	OrderID       uuid.UUID     `json:"order_id"`
	Amount        float64       `json:"amount"`
	PaymentMethod string        `json:"payment_method"`
	PaymentStatus PaymentStatus `json:"payment_status"`
	TransactionID string        `json:"transaction_id"`
	PaymentDate   time.Time     `json:"payment_date"`
}

func NewPayment(orderID uuid.UUID, amount float64, status PaymentStatus, transactionID string) *Payment {
	return &Payment{
		ID:            uuid.New(),
		OrderID:       orderID,
		Amount:        amount,
		PaymentMethod: "stripe",
		PaymentStatus: status,
		TransactionID: transactionID,
		PaymentDate:   time.Now(),
	}
}
