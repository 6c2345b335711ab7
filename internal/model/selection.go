package model

// SelectedSeat identifies one member of a selection line with enough
// context to name it in notices and to locate it again in the tree.
//
// Fields:
//  SeatID    – id of the selected seat.
//  SeatName  – buyer-facing label, e.g. "A5".
//  SectionID – owning section.
//  RowID     – owning row.
type SelectedSeat struct {
	SeatID    uint64 `json:"seat_id"`
	SeatName  string `json:"seat_name"`
	SectionID uint64 `json:"section_id"`
	RowID     uint64 `json:"row_id"`
}

// SelectionLine groups every selected seat of one ticket type together
// with its per-unit price breakdown and the aggregated totals.  Totals
// are always recomputed as per-unit × quantity when the seat set changes;
// they are never adjusted incrementally.
//
// Fields:
//  TicketID             – grouping key; one line per ticket type.
//  TicketName           – display name of the ticket type.
//  Quantity             – number of seats; always equals len(Seats).
//  Seats                – the seats in this line, in selection order.
//  BaseCents            – per-unit base price.
//  FeeCents             – per-unit convenience fee.
//  CentralGSTCents      – per-unit central GST (9% of the fee).
//  StateGSTCents        – per-unit state GST (9% of the fee).
//  FinalCents           – per-unit total: base + fee + both GST parts.
//  TotalBaseCents       – BaseCents × Quantity.
//  TotalFeeCents        – FeeCents × Quantity.
//  TotalCentralGSTCents – CentralGSTCents × Quantity.
//  TotalStateGSTCents   – StateGSTCents × Quantity.
//  TotalFinalCents      – FinalCents × Quantity.
type SelectionLine struct {
	TicketID   uint64         `json:"ticket_id"`
	TicketName string         `json:"ticket_name"`
	Quantity   uint32         `json:"quantity"`
	Seats      []SelectedSeat `json:"seats"`

	BaseCents       uint32 `json:"base"`
	FeeCents        uint32 `json:"convenience_fee"`
	CentralGSTCents uint32 `json:"central_gst"`
	StateGSTCents   uint32 `json:"state_gst"`
	FinalCents      uint32 `json:"final"`

	TotalBaseCents       uint64 `json:"total_base"`
	TotalFeeCents        uint64 `json:"total_convenience_fee"`
	TotalCentralGSTCents uint64 `json:"total_central_gst"`
	TotalStateGSTCents   uint64 `json:"total_state_gst"`
	TotalFinalCents      uint64 `json:"total_final"`
}

// Recompute refreshes Quantity and every aggregated total from the seat
// set and the per-unit breakdown.
func (l *SelectionLine) Recompute() {
	l.Quantity = uint32(len(l.Seats))
	n := uint64(l.Quantity)
	l.TotalBaseCents = uint64(l.BaseCents) * n
	l.TotalFeeCents = uint64(l.FeeCents) * n
	l.TotalCentralGSTCents = uint64(l.CentralGSTCents) * n
	l.TotalStateGSTCents = uint64(l.StateGSTCents) * n
	l.TotalFinalCents = uint64(l.FinalCents) * n
}

// Contains reports whether the line holds the given seat id.
func (l *SelectionLine) Contains(seatID uint64) bool {
	for _, s := range l.Seats {
		if s.SeatID == seatID {
			return true
		}
	}
	return false
}

// HoldTimer tracks the countdown that bounds how long a non-empty
// selection may be kept before it is released back to other buyers.
//
// Fields:
//  RemainingSeconds – seconds left until the selection expires.
//  Active           – true while at least one seat is selected.
type HoldTimer struct {
	RemainingSeconds int  `json:"remaining_seconds"`
	Active           bool `json:"active"`
}
