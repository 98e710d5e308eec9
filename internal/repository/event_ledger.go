package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// EventLedger records processor event ids that have already been handled.
// The webhook path checks in here before doing anything, which makes
// redelivered events no-ops regardless of timing.
type EventLedger struct {
	db *sql.DB
}

func NewEventLedger(db *sql.DB) *EventLedger {
	return &EventLedger{db: db}
}

// MarkProcessed claims an event id. Returns true when this call was the
// first to claim it; false means the event was already handled and the
// caller must skip all side effects.
func (l *EventLedger) MarkProcessed(eventID string, orderID uuid.UUID, eventType string) (bool, error) {
	query := `
		INSERT INTO processed_events (event_id, order_id, event_type, processed_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (event_id) DO NOTHING
	`

	result, err := l.db.Exec(query, eventID, orderID, eventType, time.Now())
	if err != nil {
		return false, fmt.Errorf("event ledger insert error: %v", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}

	return rowsAffected == 1, nil
}

// Forget drops a claim so a redelivery of the same event id can be
// processed. Called when the side effects behind a claim failed.
func (l *EventLedger) Forget(eventID string) error {
	_, err := l.db.Exec(`DELETE FROM processed_events WHERE event_id = $1`, eventID)
	if err != nil {
		return fmt.Errorf("event ledger delete error: %v", err)
	}
	return nil
}
