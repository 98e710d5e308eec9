package repository

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/saiindkan/sweets-n-snacks-production/internal/domain"
)

type PaymentRepository struct {
	db *sql.DB
}

func NewPaymentRepository(db *sql.DB) *PaymentRepository {
	return &PaymentRepository{db: db}
}

func (r *PaymentRepository) CreatePayment(payment *domain.Payment) error {
	query := `
		INSERT INTO payments (
			id, order_id, amount, payment_method,
			payment_status, transaction_id, payment_date
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.db.Exec(
		query,
		payment.ID,
		payment.OrderID,
		payment.Amount,
		payment.PaymentMethod,
		payment.PaymentStatus,
		payment.TransactionID,
		payment.PaymentDate,
	)

	if err != nil {
		return fmt.Errorf("payment creation error: %v", err)
	}

	return nil
}

func (r *PaymentRepository) GetPaymentsByOrderID(orderID uuid.UUID) ([]*domain.Payment, error) {
	query := `
		SELECT id, order_id, amount, payment_method,
			   payment_status, transaction_id, payment_date
		FROM payments
		WHERE order_id = $1
		ORDER BY payment_date DESC
	`

	rows, err := r.db.Query(query, orderID)
	if err != nil {
		return nil, fmt.Errorf("payments fetch error: %v", err)
	}
	defer rows.Close()

	var payments []*domain.Payment
	for rows.Next() {
		payment := &domain.Payment{}
		err := rows.Scan(
			&payment.ID,
			&payment.OrderID,
			&payment.Amount,
			&payment.PaymentMethod,
			&payment.PaymentStatus,
			&payment.TransactionID,
			&payment.PaymentDate,
		)
		if err != nil {
			return nil, fmt.Errorf("payment scan error: %v", err)
		}
		payments = append(payments, payment)
	}

	return payments, rows.Err()
}
