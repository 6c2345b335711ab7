package repository // repository for venue layout persistence

import (
	"context"      // context for managing deadlines
	"database/sql" // sql provides DB interfaces
	"errors"

	"github.com/hessamz/seatmap-session/internal/model"
)

// LayoutRepo loads the venue tree (stage, sections, rows, seats) for a
// layout together with the per-event seat statuses and ticket
// assignments. It is the layout-loader boundary of the system: the seat
// tree it returns is the session's starting truth.
type LayoutRepo struct {
	db *sql.DB
}

// NewLayoutRepo constructs a LayoutRepo given a DB handle.
func NewLayoutRepo(db *sql.DB) *LayoutRepo {
	return &LayoutRepo{db: db}
}

// DB exposes the underlying handle for transaction control.
func (r *LayoutRepo) DB() *sql.DB { return r.db }

// FetchLayout assembles the full layout tree for a layout+event pair.
// Seats with no row in event_seats default to available with no ticket;
// a hold carries its holder identity so the engine can normalize
// self-holds. Statuses stored in the database are trusted as-is.
func (r *LayoutRepo) FetchLayout(ctx context.Context, layoutID, eventID uint64) (*model.Layout, error) {
	stage, err := r.fetchStage(ctx, layoutID)
	if err != nil {
		return nil, err
	}

	sections, byID, err := r.fetchSections(ctx, layoutID)
	if err != nil {
		return nil, err
	}

	rowsByID, err := r.fetchRows(ctx, layoutID, byID)
	if err != nil {
		return nil, err
	}

	if err := r.fetchSeats(ctx, layoutID, eventID, rowsByID); err != nil {
		return nil, err
	}

	return &model.Layout{Stage: *stage, Sections: sections}, nil
}

// fetchStage loads the stage row for a layout. Exactly one stage exists
// per layout; absence means the layout id itself is unknown.
func (r *LayoutRepo) fetchStage(ctx context.Context, layoutID uint64) (*model.Stage, error) {
	const q = `SELECT name, shape, x, y, width, height, COALESCE(curve, 0)
               FROM stages WHERE layout_id = ?`
	var st model.Stage
	err := r.db.QueryRowContext(ctx, q, layoutID).
		Scan(&st.Name, &st.Shape, &st.X, &st.Y, &st.Width, &st.Height, &st.Curve)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrLayoutNotFound
	}
	if err != nil {
		return nil, err
	}
	return &st, nil
}

// fetchSections loads the ordered sections of a layout and returns both
// the slice and an id index for attaching rows.
func (r *LayoutRepo) fetchSections(ctx context.Context, layoutID uint64) ([]*model.Section, map[uint64]*model.Section, error) {
	const q = `SELECT id, name, x, y, width, height
               FROM sections WHERE layout_id = ? ORDER BY position, id`
	rows, err := r.db.QueryContext(ctx, q, layoutID)
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	var out []*model.Section
	byID := make(map[uint64]*model.Section)
	for rows.Next() {
		sec := &model.Section{}
		if err := rows.Scan(&sec.ID, &sec.Name, &sec.X, &sec.Y, &sec.Width, &sec.Height); err != nil {
			return nil, nil, err
		}
		out = append(out, sec)
		byID[sec.ID] = sec
	}
	return out, byID, rows.Err()
}

// fetchRows loads every row of the layout's sections in display order
// and attaches them to their sections.
func (r *LayoutRepo) fetchRows(ctx context.Context, layoutID uint64, sections map[uint64]*model.Section) (map[uint64]*model.Row, error) {
	const q = `SELECT sr.id, sr.section_id, sr.title
               FROM seat_rows sr
               JOIN sections sec ON sec.id = sr.section_id
               WHERE sec.layout_id = ?
               ORDER BY sr.section_id, sr.position, sr.id`
	rows, err := r.db.QueryContext(ctx, q, layoutID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	byID := make(map[uint64]*model.Row)
	for rows.Next() {
		var sectionID uint64
		row := &model.Row{}
		if err := rows.Scan(&row.ID, &sectionID, &row.Title); err != nil {
			return nil, err
		}
		if sec, ok := sections[sectionID]; ok {
			sec.Rows = append(sec.Rows, row)
			byID[row.ID] = row
		}
	}
	return byID, rows.Err()
}

// fetchSeats loads every seat of the layout joined with its per-event
// status and ticket, attaching them to their rows in seat order.
func (r *LayoutRepo) fetchSeats(ctx context.Context, layoutID, eventID uint64, rowsByID map[uint64]*model.Row) error {
	const q = `SELECT s.id, s.row_id, s.number, s.x, s.y, s.radius,
                      COALESCE(es.status, 'available'), COALESCE(es.hold_by, ''),
                      t.id, t.name, t.price_cents
               FROM seats s
               JOIN seat_rows sr ON sr.id = s.row_id
               JOIN sections sec ON sec.id = sr.section_id
               LEFT JOIN event_seats es ON es.seat_id = s.id AND es.event_id = ?
               LEFT JOIN tickets t ON t.id = es.ticket_id
               WHERE sec.layout_id = ?
               ORDER BY s.row_id, s.position, s.id`
	rows, err := r.db.QueryContext(ctx, q, eventID, layoutID)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			rowID       uint64
			seat        model.Seat
			status      string
			ticketID    sql.NullInt64
			ticketName  sql.NullString
			ticketPrice sql.NullInt64
		)
		if err := rows.Scan(&seat.ID, &rowID, &seat.Number, &seat.X, &seat.Y, &seat.Radius,
			&status, &seat.HoldBy, &ticketID, &ticketName, &ticketPrice); err != nil {
			return err
		}
		seat.Status = model.SeatStatus(status)
		if ticketID.Valid {
			seat.Ticket = &model.Ticket{
				ID:         uint64(ticketID.Int64),
				Name:       ticketName.String,
				PriceCents: uint32(ticketPrice.Int64),
			}
		}
		if row, ok := rowsByID[rowID]; ok {
			row.Seats = append(row.Seats, &seat)
		}
	}
	return rows.Err()
}
