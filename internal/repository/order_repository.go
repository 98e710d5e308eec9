package repository

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/saiindkan/sweets-n-snacks-production/internal/domain"
)

// ErrOrderNotFound is returned when no order row matches the given id.
var ErrOrderNotFound = errors.New("order not found")

type OrderRepository struct {
	db *sql.DB
}

func NewOrderRepository(db *sql.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

func (r *OrderRepository) CreateOrder(order *domain.Order) error {
	itemsJSON, err := json.Marshal(order.Items)
	if err != nil {
		return fmt.Errorf("items serialization error: %v", err)
	}

	addressJSON, err := json.Marshal(order.BillingAddress)
	if err != nil {
		return fmt.Errorf("billing address serialization error: %v", err)
	}

	query := `
		INSERT INTO orders (
			id, customer_email, customer_name, customer_phone, billing_address,
			subtotal, shipping, tax, total, status,
			payment_intent_id, payment_status, items, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	`

	_, err = r.db.Exec(
		query,
		order.ID,
		order.CustomerEmail,
		order.CustomerName,
		order.CustomerPhone,
		addressJSON,
		order.Subtotal,
		order.Shipping,
		order.Tax,
		order.Total,
		order.Status,
		nullString(order.PaymentIntentID),
		nullString(order.PaymentStatus),
		itemsJSON,
		order.CreatedAt,
		order.UpdatedAt,
	)

	if err != nil {
		return fmt.Errorf("order creation error: %v", err)
	}

	return nil
}

// SetPaymentIntent records the processor intent id on a freshly created
// order, correlating the two sides of the checkout.
func (r *OrderRepository) SetPaymentIntent(orderID uuid.UUID, intentID string) error {
	query := `UPDATE orders SET payment_intent_id = $2, updated_at = $3 WHERE id = $1`

	result, err := r.db.Exec(query, orderID, intentID, time.Now())
	if err != nil {
		return fmt.Errorf("payment intent update error: %v", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrOrderNotFound
	}

	return nil
}

// FinalizeOrder moves an order from pending to a terminal state. The update
// is conditioned on the current state, so only the first trigger to land
// wins; everyone else gets transitioned=false and must not repeat side
// effects. A missing payment intent id in the change keeps whatever the
// order already carries.
func (r *OrderRepository) FinalizeOrder(orderID uuid.UUID, change domain.StatusChange) (bool, error) {
	query := `
		UPDATE orders
		SET status = $2,
			payment_intent_id = COALESCE(NULLIF($3, ''), payment_intent_id),
			payment_status = $4,
			updated_at = $5
		WHERE id = $1 AND status = 'pending'
	`

	result, err := r.db.Exec(
		query,
		orderID,
		change.Status,
		change.PaymentIntentID,
		change.PaymentStatus,
		time.Now(),
	)
	if err != nil {
		return false, fmt.Errorf("order status update error: %v", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}

	if rowsAffected == 0 {
		// Either the order does not exist or it is already final.
		if _, err := r.GetOrderByID(orderID); err != nil {
			return false, err
		}
		return false, nil
	}

	return true, nil
}

func (r *OrderRepository) GetOrderByID(orderID uuid.UUID) (*domain.Order, error) {
	query := selectOrderQuery + ` WHERE id = $1`

	row := r.db.QueryRow(query, orderID)
	order, err := scanOrder(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("order fetch error: %v", err)
	}

	return order, nil
}

func (r *OrderRepository) GetOrdersByEmail(email string) ([]*domain.Order, error) {
	query := selectOrderQuery + ` WHERE customer_email = $1 ORDER BY created_at DESC`

	rows, err := r.db.Query(query, email)
	if err != nil {
		return nil, fmt.Errorf("orders fetch error: %v", err)
	}
	defer rows.Close()

	return collectOrders(rows)
}

// ListStalePending returns pending orders created before the cutoff, oldest
// first, for the sweeper to reconcile against the processor.
func (r *OrderRepository) ListStalePending(olderThan time.Time) ([]*domain.Order, error) {
	query := selectOrderQuery + ` WHERE status = 'pending' AND created_at < $1 ORDER BY created_at ASC`

	rows, err := r.db.Query(query, olderThan)
	if err != nil {
		return nil, fmt.Errorf("stale orders fetch error: %v", err)
	}
	defer rows.Close()

	return collectOrders(rows)
}

const selectOrderQuery = `
	SELECT id, customer_email, customer_name, customer_phone, billing_address,
		   subtotal, shipping, tax, total, status,
		   payment_intent_id, payment_status, items, created_at, updated_at
	FROM orders`

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanOrder(row rowScanner) (*domain.Order, error) {
	order := &domain.Order{}
	var addressJSON, itemsJSON []byte
	var phone, intentID, paymentStatus sql.NullString

	err := row.Scan(
		&order.ID,
		&order.CustomerEmail,
		&order.CustomerName,
		&phone,
		&addressJSON,
		&order.Subtotal,
		&order.Shipping,
		&order.Tax,
		&order.Total,
		&order.Status,
		&intentID,
		&paymentStatus,
		&itemsJSON,
		&order.CreatedAt,
		&order.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(addressJSON, &order.BillingAddress); err != nil {
		return nil, fmt.Errorf("billing address deserialization error: %v", err)
	}
	if err := json.Unmarshal(itemsJSON, &order.Items); err != nil {
		return nil, fmt.Errorf("items deserialization error: %v", err)
	}

	order.CustomerPhone = phone.String
	order.PaymentIntentID = intentID.String
	order.PaymentStatus = paymentStatus.String

	return order, nil
}

func collectOrders(rows *sql.Rows) ([]*domain.Order, error) {
	var orders []*domain.Order

	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("order scan error: %v", err)
		}
		orders = append(orders, order)
	}

	return orders, rows.Err()
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
