package selection

import (
	"fmt"

	"github.com/hessamz/seatmap-session/internal/layout"
	"github.com/hessamz/seatmap-session/internal/model"
	"github.com/hessamz/seatmap-session/internal/pricing"
)

// selectionNoticeKey keys the running "N seats selected" toast so each
// update replaces the previous one instead of stacking.
const selectionNoticeKey = "selection-count"

// Notifier receives user-facing notices produced by the engine.  The
// session's notice board implements it.
type Notifier interface {
	Publish(n model.Notice)
}

// Config carries the policy knobs of the engine.
//
// Fields:
//  MaxSeats        – maximum number of seats across all lines.
//  HoldDurationSec – countdown length once a selection exists.
//  Pricing         – convenience-fee policy for price breakdowns.
type Config struct {
	MaxSeats        int
	HoldDurationSec int
	Pricing         pricing.Config
}

// Engine owns the selection state of one browsing session.  It is not
// safe for concurrent use; the owning session serializes every event
// (clicks, ticks, push corrections) before it reaches the engine.
type Engine struct {
	cfg      Config
	store    *layout.Store
	viewerID string
	notifier Notifier

	lines []*model.SelectionLine
	timer model.HoldTimer
}

// New constructs an engine over a freshly loaded seat store.
func New(cfg Config, store *layout.Store, viewerID string, notifier Notifier) *Engine {
	return &Engine{
		cfg:      cfg,
		store:    store,
		viewerID: viewerID,
		notifier: notifier,
		timer:    model.HoldTimer{RemainingSeconds: cfg.HoldDurationSec},
	}
}

// Lines returns the current selection lines in first-selection order.
func (e *Engine) Lines() []*model.SelectionLine { return e.lines }

// Timer returns the current hold countdown state.
func (e *Engine) Timer() model.HoldTimer { return e.timer }

// SelectedCount returns the total number of seats across all lines.
func (e *Engine) SelectedCount() int {
	n := 0
	for _, l := range e.lines {
		n += len(l.Seats)
	}
	return n
}

// TotalFinalCents returns the payable total across all lines.
func (e *Engine) TotalFinalCents() uint64 {
	var total uint64
	for _, l := range e.lines {
		total += l.TotalFinalCents
	}
	return total
}

// SelectedSeatIDs returns every selected seat id across all lines.
func (e *Engine) SelectedSeatIDs() []uint64 {
	ids := make([]uint64, 0, e.SelectedCount())
	for _, l := range e.lines {
		for _, s := range l.Seats {
			ids = append(ids, s.SeatID)
		}
	}
	return ids
}

// HandleSeatClick toggles a seat in or out of the selection.
//
// Unselectable seats (no ticket, booked, disabled, locked, or held by a
// different viewer) are rejected with a sentinel error and zero state
// change.  Selecting past the configured maximum is rejected the same
// way, with a limit notice.  A successful select computes the per-unit
// price breakdown, appends the seat to its ticket's line (creating the
// line on first use) and starts the hold countdown when the selection
// was previously empty.  A successful unselect removes the seat from its
// line, deleting the line when it empties.  The updated seat is
// returned on success.
func (e *Engine) HandleSeatClick(seatID uint64) (*model.Seat, error) {
	seat, ok := e.store.Seat(seatID)
	if !ok {
		return nil, ErrUnknownSeat
	}

	if seat.Status == model.StatusSelected {
		return e.unselect(seat)
	}

	if seat.Ticket == nil {
		return nil, ErrNoTicket
	}
	if seat.Status.Blocking() || seat.Status == model.StatusBlank {
		return nil, ErrSeatUnavailable
	}
	if seat.Status == model.StatusHold && seat.HoldBy != e.viewerID {
		return nil, ErrSeatUnavailable
	}
	if e.SelectedCount() >= e.cfg.MaxSeats {
		e.notify(model.Notice{
			Key:     "selection-limit",
			Kind:    model.NoticeLimit,
			Message: fmt.Sprintf("you can select up to %d seats", e.cfg.MaxSeats),
		})
		return nil, ErrSelectionLimit
	}

	wasEmpty := e.SelectedCount() == 0
	sectionID, rowID, _ := e.store.Locate(seatID)

	line := e.lineFor(seat.Ticket.ID)
	if line == nil {
		bd := pricing.Compute(seat.Ticket.PriceCents, e.cfg.Pricing)
		line = &model.SelectionLine{
			TicketID:        seat.Ticket.ID,
			TicketName:      seat.Ticket.Name,
			BaseCents:       bd.BaseCents,
			FeeCents:        bd.FeeCents,
			CentralGSTCents: bd.CentralGSTCents,
			StateGSTCents:   bd.StateGSTCents,
			FinalCents:      bd.FinalCents,
		}
		e.lines = append(e.lines, line)
	}
	line.Seats = append(line.Seats, model.SelectedSeat{
		SeatID:    seatID,
		SeatName:  seat.Number,
		SectionID: sectionID,
		RowID:     rowID,
	})
	line.Recompute()

	updated, _ := e.store.SetStatus(seatID, model.StatusSelected)
	if wasEmpty {
		e.startTimer()
	}
	e.notifySelectionCount()
	return updated, nil
}

// unselect removes an already selected seat from its line and reverts it
// to available.
func (e *Engine) unselect(seat *model.Seat) (*model.Seat, error) {
	e.removeFromLines([]uint64{seat.ID})
	updated, _ := e.store.SetStatus(seat.ID, model.StatusAvailable)
	if e.SelectedCount() == 0 {
		e.resetTimer()
	}
	e.notifySelectionCount()
	return updated, nil
}

// Tick advances the hold countdown by one second.  When the countdown
// reaches zero the whole selection is cleared, every previously selected
// seat reverts to available, the timer stops and an expiry notice is
// published.  It reports whether the expiry fired on this tick.
func (e *Engine) Tick() bool {
	if !e.timer.Active {
		return false
	}
	e.timer.RemainingSeconds--
	if e.timer.RemainingSeconds > 0 {
		return false
	}
	e.revertSelection()
	e.resetTimer()
	e.notify(model.Notice{
		Kind:    model.NoticeExpired,
		Message: "time expired, your seat selection was released",
	})
	return true
}

// Clear drops the whole selection, reverting every selected seat to
// available and resetting the countdown.  Used for explicit clears and
// for session unmount.
func (e *Engine) Clear() {
	e.revertSelection()
	e.resetTimer()
	e.notifySelectionCount()
}

// UpdateSeatsByIDs is the authoritative correction path.  Every listed
// seat is forced to the given status (booked or locked), overriding any
// local state including selected, and is stripped from whichever line
// contained it.  The returned slice holds the seats that belonged to
// this session's own selection, for the conflict layer to notify about.
// Applying the same batch twice yields the same statuses and the same
// (empty) selection contribution as applying it once.
func (e *Engine) UpdateSeatsByIDs(seatIDs []uint64, status model.SeatStatus) []model.SelectedSeat {
	lost := e.removeFromLines(seatIDs)
	e.store.SetStatusBulk(seatIDs, status)
	if e.SelectedCount() == 0 {
		e.resetTimer()
	}
	if len(lost) > 0 {
		e.notifySelectionCount()
	}
	return lost
}

// MarkSelectedSeatsAsBooked is the success path after checkout: every
// currently selected seat becomes booked, the lines are cleared and the
// countdown resets.  Unlike UpdateSeatsByIDs this represents the
// viewer's own action and never produces a conflict notice.  The booked
// seat ids are returned for downstream event publishing.
func (e *Engine) MarkSelectedSeatsAsBooked() []uint64 {
	ids := e.SelectedSeatIDs()
	e.store.SetStatusBulk(ids, model.StatusBooked)
	e.lines = nil
	e.resetTimer()
	return ids
}

// lineFor finds the line for a ticket id, or nil.
func (e *Engine) lineFor(ticketID uint64) *model.SelectionLine {
	for _, l := range e.lines {
		if l.TicketID == ticketID {
			return l
		}
	}
	return nil
}

// removeFromLines strips the given seat ids from every line, recomputing
// quantities and totals and deleting lines that empty out.  Returns the
// removed members.
func (e *Engine) removeFromLines(seatIDs []uint64) []model.SelectedSeat {
	drop := make(map[uint64]bool, len(seatIDs))
	for _, id := range seatIDs {
		drop[id] = true
	}
	var removed []model.SelectedSeat
	kept := e.lines[:0]
	for _, l := range e.lines {
		seats := l.Seats[:0]
		for _, s := range l.Seats {
			if drop[s.SeatID] {
				removed = append(removed, s)
				continue
			}
			seats = append(seats, s)
		}
		l.Seats = seats
		if len(l.Seats) == 0 {
			continue
		}
		l.Recompute()
		kept = append(kept, l)
	}
	e.lines = kept
	return removed
}

// revertSelection returns every selected seat to available and drops all
// lines.
func (e *Engine) revertSelection() {
	e.store.SetStatusBulk(e.SelectedSeatIDs(), model.StatusAvailable)
	e.lines = nil
}

func (e *Engine) startTimer() {
	e.timer = model.HoldTimer{RemainingSeconds: e.cfg.HoldDurationSec, Active: true}
}

func (e *Engine) resetTimer() {
	e.timer = model.HoldTimer{RemainingSeconds: e.cfg.HoldDurationSec}
}

func (e *Engine) notifySelectionCount() {
	n := e.SelectedCount()
	e.notify(model.Notice{
		Key:     selectionNoticeKey,
		Kind:    model.NoticeSelection,
		Message: fmt.Sprintf("%d seats selected", n),
	})
}

func (e *Engine) notify(n model.Notice) {
	if e.notifier != nil {
		e.notifier.Publish(n)
	}
}
