// Package layout owns the mutable seat tree for one browsing session.
// The tree is updated copy-on-write: every status change produces a new
// seat plus new owning row and section values, leaving siblings untouched,
// so renderers can use reference equality to skip unchanged subtrees.
// Only the selection engine and the conflict-resolution path call the
// mutating methods.
package layout

import (
	"math"

	"github.com/hessamz/seatmap-session/internal/model"
)

// DefaultSeatRadius replaces missing or non-finite seat radii so a
// damaged layout still renders clickable seats.
const DefaultSeatRadius = 10

// seatRef locates a seat inside the tree by position.  Kept in the flat
// index so corrections touch exactly one path from root to seat.
type seatRef struct {
	section int
	row     int
	seat    int
}

// Store is the seat state store: the nested section→row→seat tree plus a
// flat id→seat index for O(1) lookups during status corrections.
type Store struct {
	stage    model.Stage
	sections []*model.Section
	index    map[uint64]seatRef
}

// New builds a store from a freshly loaded layout.  Geometry is coerced
// to safe defaults, and any seat held by the viewer themselves is
// normalized back to available: a self-hold is not blocking for its own
// holder.  The input layout is not retained; every node is copied.
func New(l *model.Layout, viewerID string) *Store {
	s := &Store{
		stage: l.Stage,
		index: make(map[uint64]seatRef),
	}
	coerceStage(&s.stage)
	s.sections = make([]*model.Section, 0, len(l.Sections))
	for _, src := range l.Sections {
		if src == nil {
			continue
		}
		sec := *src
		coerceSection(&sec)
		sec.Rows = make([]*model.Row, 0, len(src.Rows))
		for _, srcRow := range src.Rows {
			if srcRow == nil {
				continue
			}
			row := *srcRow
			row.Seats = make([]*model.Seat, 0, len(srcRow.Seats))
			for _, srcSeat := range srcRow.Seats {
				if srcSeat == nil {
					continue
				}
				seat := *srcSeat
				coerceSeat(&seat)
				if seat.Status == model.StatusHold && viewerID != "" && seat.HoldBy == viewerID {
					seat.Status = model.StatusAvailable
					seat.HoldBy = ""
				}
				// Refs hold positions in the compacted tree, not the
				// source slices, which may contain nil entries.
				s.index[seat.ID] = seatRef{section: len(s.sections), row: len(sec.Rows), seat: len(row.Seats)}
				row.Seats = append(row.Seats, &seat)
			}
			sec.Rows = append(sec.Rows, &row)
		}
		s.sections = append(s.sections, &sec)
	}
	return s
}

// Stage returns the stage geometry.
func (s *Store) Stage() model.Stage { return s.stage }

// Sections returns the current section slice.  Callers must treat the
// tree as read-only; all writes go through SetStatus/SetStatusBulk.
func (s *Store) Sections() []*model.Section { return s.sections }

// Seat returns the current seat value for an id, or false when the id is
// not part of this layout.
func (s *Store) Seat(id uint64) (*model.Seat, bool) {
	ref, ok := s.index[id]
	if !ok {
		return nil, false
	}
	return s.sections[ref.section].Rows[ref.row].Seats[ref.seat], true
}

// Locate returns the owning section and row ids for a seat.
func (s *Store) Locate(id uint64) (sectionID, rowID uint64, ok bool) {
	ref, found := s.index[id]
	if !found {
		return 0, 0, false
	}
	return s.sections[ref.section].ID, s.sections[ref.section].Rows[ref.row].ID, true
}

// SetStatus transitions one seat to the given status, producing a new
// seat, row and section so untouched siblings keep their identity.  The
// hold owner is cleared on any transition away from hold.  Returns the
// new seat value, or false when the id is unknown.
func (s *Store) SetStatus(id uint64, status model.SeatStatus) (*model.Seat, bool) {
	ref, ok := s.index[id]
	if !ok {
		return nil, false
	}
	return s.replaceSeat(ref, status), true
}

// SetStatusBulk applies one status to every known id in the batch and
// returns the ids that were actually present in this layout.  Applying
// the same batch twice is a no-op the second time apart from allocating
// fresh nodes.
func (s *Store) SetStatusBulk(ids []uint64, status model.SeatStatus) []uint64 {
	applied := make([]uint64, 0, len(ids))
	for _, id := range ids {
		ref, ok := s.index[id]
		if !ok {
			continue
		}
		s.replaceSeat(ref, status)
		applied = append(applied, id)
	}
	return applied
}

// replaceSeat copies the seat with the new status and rebuilds the spine
// (row, section, section slice) above it.
func (s *Store) replaceSeat(ref seatRef, status model.SeatStatus) *model.Seat {
	oldSec := s.sections[ref.section]
	oldRow := oldSec.Rows[ref.row]
	oldSeat := oldRow.Seats[ref.seat]

	seat := *oldSeat
	seat.Status = status
	if status != model.StatusHold {
		seat.HoldBy = ""
	}

	row := *oldRow
	row.Seats = make([]*model.Seat, len(oldRow.Seats))
	copy(row.Seats, oldRow.Seats)
	row.Seats[ref.seat] = &seat

	sec := *oldSec
	sec.Rows = make([]*model.Row, len(oldSec.Rows))
	copy(sec.Rows, oldSec.Rows)
	sec.Rows[ref.row] = &row

	sections := make([]*model.Section, len(s.sections))
	copy(sections, s.sections)
	sections[ref.section] = &sec
	s.sections = sections

	return &seat
}

// finite replaces NaN and ±Inf with a fallback; authoring tools have been
// seen emitting both.
func finite(v, fallback float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fallback
	}
	return v
}

func coerceStage(st *model.Stage) {
	st.X = finite(st.X, 0)
	st.Y = finite(st.Y, 0)
	st.Width = finite(st.Width, 0)
	st.Height = finite(st.Height, 0)
	st.Curve = finite(st.Curve, 0)
}

func coerceSection(sec *model.Section) {
	sec.X = finite(sec.X, 0)
	sec.Y = finite(sec.Y, 0)
	sec.Width = finite(sec.Width, 0)
	sec.Height = finite(sec.Height, 0)
}

func coerceSeat(seat *model.Seat) {
	seat.X = finite(seat.X, 0)
	seat.Y = finite(seat.Y, 0)
	seat.Radius = finite(seat.Radius, DefaultSeatRadius)
	if seat.Radius <= 0 {
		seat.Radius = DefaultSeatRadius
	}
}
