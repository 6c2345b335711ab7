package repository // repository for per-event seat state updates

import (
	"context"
	"database/sql"
	"strings"
)

// EventSeatRepo persists per-event seat status changes. The session
// engines hold the live truth for connected viewers; this repo writes
// the durable copy new sessions load from.
type EventSeatRepo struct {
	db *sql.DB
}

// NewEventSeatRepo constructs an EventSeatRepo given a DB handle.
func NewEventSeatRepo(db *sql.DB) *EventSeatRepo {
	return &EventSeatRepo{db: db}
}

// BulkUpdateStatus sets the status for every listed seat of an event in
// one statement. Used on checkout success to persist the booked seats
// before the confirmation event is published.
func (r *EventSeatRepo) BulkUpdateStatus(ctx context.Context, eventID uint64, seatIDs []uint64, status string) error {
	if len(seatIDs) == 0 {
		return nil
	}
	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(seatIDs)), ",")
	query := `UPDATE event_seats SET status = ?, hold_by = NULL
              WHERE event_id = ? AND seat_id IN (` + placeholders + `)`
	args := make([]interface{}, 0, len(seatIDs)+2)
	args = append(args, status, eventID)
	for _, id := range seatIDs {
		args = append(args, id)
	}
	_, err := r.db.ExecContext(ctx, query, args...)
	return err
}
