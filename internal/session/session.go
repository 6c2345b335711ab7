// Package session ties one viewer's seat store, selection engine and
// viewport engine together and serializes every event that can mutate
// them: HTTP requests, the one-second hold tick, and seat-status pushes.
// Inside a session there is exactly one logical sequence of state
// transitions, guarded by the session mutex.
package session

import (
	"context"
	"sync"
	"time"

	"github.com/hessamz/seatmap-session/internal/layout"
	"github.com/hessamz/seatmap-session/internal/model"
	"github.com/hessamz/seatmap-session/internal/selection"
	"github.com/hessamz/seatmap-session/internal/viewcache"
	"github.com/hessamz/seatmap-session/internal/viewport"
)

// Session is the server-side engine state of one browsing session.
type Session struct {
	ID       string
	ViewerID string
	LayoutID uint64
	EventID  uint64

	mu    sync.Mutex
	store *layout.Store
	sel   *selection.Engine
	vp    *viewport.Engine
	board *NoticeBoard
	views viewcache.Store

	now func() time.Time
}

// State is a point-in-time snapshot of a session for rendering.
type State struct {
	SessionID       string                 `json:"session_id"`
	Ready           bool                   `json:"ready"`
	Stage           model.Stage            `json:"stage"`
	Sections        []*model.Section       `json:"sections"`
	VisibleSections []uint64               `json:"visible_sections"`
	Lines           []*model.SelectionLine `json:"lines"`
	Timer           model.HoldTimer        `json:"hold_timer"`
	SelectedSeats   int                    `json:"selected_seats"`
	TotalFinalCents uint64                 `json:"total_final"`
	View            viewport.View          `json:"view"`
}

// ClickResult reports the outcome of a seat toggle.
type ClickResult struct {
	Seat            *model.Seat            `json:"seat"`
	Selected        bool                   `json:"selected"`
	Lines           []*model.SelectionLine `json:"lines"`
	Timer           model.HoldTimer        `json:"hold_timer"`
	TotalFinalCents uint64                 `json:"total_final"`
}

// New builds a session over a freshly loaded layout.  Self-holds are
// normalized and geometry coerced by the layout store; the viewport
// engine stays Uninitialized until InitializeView runs.
func New(id, viewerID string, layoutID, eventID uint64, l *model.Layout, selCfg selection.Config, vpCfg viewport.Config, views viewcache.Store) *Session {
	s := &Session{
		ID:       id,
		ViewerID: viewerID,
		LayoutID: layoutID,
		EventID:  eventID,
		board:    NewNoticeBoard(),
		views:    views,
		now:      time.Now,
	}
	s.store = layout.New(l, viewerID)
	s.sel = selection.New(selCfg, s.store, viewerID, s.board)
	s.vp = viewport.NewEngine(vpCfg, s.store.Stage(), s.store.Sections)
	return s
}

// Board exposes the session's notice board.
func (s *Session) Board() *NoticeBoard { return s.board }

// InitializeView computes the initial camera per the priority order:
// deep link target, saved view (only consulted without a deep link),
// default fit.  The engine becomes interactive only after this returns.
func (s *Session) InitializeView(ctx context.Context, viewportW, viewportH float64, link *viewport.DeepLink) error {
	var saved *viewport.View
	if link == nil && s.views != nil {
		v, err := s.views.Load(ctx, s.ViewerID, s.LayoutID)
		if err == nil {
			saved = v
		}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.vp.Initialize(viewportW, viewportH, link, saved)
}

// Click toggles a seat and, when the toggle selected it, auto-centers
// the view on it with an animated transition.
func (s *Session) Click(seatID uint64) (*ClickResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	seat, err := s.sel.HandleSeatClick(seatID)
	if err != nil {
		return nil, err
	}
	selected := seat.Status == model.StatusSelected
	if selected {
		s.vp.CenterOnSeat(seat, s.now())
	}
	return &ClickResult{
		Seat:            seat,
		Selected:        selected,
		Lines:           s.sel.Lines(),
		Timer:           s.sel.Timer(),
		TotalFinalCents: s.sel.TotalFinalCents(),
	}, nil
}

// Tick advances the hold countdown and flushes any debounced view save.
// Called once per second by the manager's runner.
func (s *Session) Tick(ctx context.Context) {
	s.mu.Lock()
	s.sel.Tick()
	v, due := s.vp.PendingSave(s.now())
	s.mu.Unlock()
	if due && s.views != nil {
		_ = s.views.Save(ctx, s.ViewerID, s.LayoutID, v)
	}
}

// ApplyStatusPush is the authoritative correction entry point.  It
// forces the pushed statuses into the tree, strips the seats from the
// selection, and returns the members this session lost, already applied
// before any notice can be shown.
func (s *Session) ApplyStatusPush(seatIDs []uint64, status model.SeatStatus) []model.SelectedSeat {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sel.UpdateSeatsByIDs(seatIDs, status)
}

// SelectionSummary reports the selected seat ids, their labels and the
// payable total without changing anything.  Checkout reads it first so
// the booked statuses can be written durably before the live state moves.
func (s *Session) SelectionSummary() (ids []uint64, labels []string, totalCents uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, l := range s.sel.Lines() {
		for _, seat := range l.Seats {
			ids = append(ids, seat.SeatID)
			labels = append(labels, seat.SeatName)
		}
	}
	return ids, labels, s.sel.TotalFinalCents()
}

// CheckoutSuccess marks the viewer's own selection as booked.  Callers
// invoke it only after the booked statuses have been persisted; if the
// write fails the selection is left intact so the checkout can be retried.
func (s *Session) CheckoutSuccess() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sel.MarkSelectedSeatsAsBooked()
}

// ClearSelection reverts every selected seat and resets the countdown.
func (s *Session) ClearSelection() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sel.Clear()
}

// Snapshot captures the render state at this instant.
func (s *Session) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	visible := s.vp.VisibleSections(now)
	ids := make([]uint64, 0, len(visible))
	for _, sec := range visible {
		ids = append(ids, sec.ID)
	}
	return State{
		SessionID:       s.ID,
		Ready:           s.vp.Phase() == viewport.Ready,
		Stage:           s.store.Stage(),
		Sections:        s.store.Sections(),
		VisibleSections: ids,
		Lines:           s.sel.Lines(),
		Timer:           s.sel.Timer(),
		SelectedSeats:   s.sel.SelectedCount(),
		TotalFinalCents: s.sel.TotalFinalCents(),
		View:            s.vp.View(now),
	}
}

// PointerDown forwards a press to the gesture recognizer.
func (s *Session) PointerDown(id int, x, y float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.vp.PointerDown(id, x, y, s.now())
}

// PointerMove forwards a pointer move.
func (s *Session) PointerMove(id int, x, y float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.vp.PointerMove(id, x, y, s.now())
}

// PointerUp forwards a release.
func (s *Session) PointerUp(id int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.vp.PointerUp(id, s.now())
}

// Wheel forwards a wheel zoom anchored at the pointer.
func (s *Session) Wheel(x, y, deltaY float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.vp.Wheel(x, y, deltaY, s.now())
}

// HoverSeat forwards a hover-over-seat report.
func (s *Session) HoverSeat(seatID uint64, x, y float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.vp.HoverSeat(seatID, x, y, s.now())
}

// HoverEnd forwards the pointer leaving the hovered seat.
func (s *Session) HoverEnd() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.vp.HoverEnd(s.now())
}

// Tooltip returns the seat whose tooltip should be visible, if any.
func (s *Session) Tooltip() (*model.Seat, float64, float64, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id, x, y, ok := s.vp.TooltipSeat(s.now())
	if !ok {
		return nil, 0, 0, false
	}
	seat, found := s.store.Seat(id)
	if !found {
		return nil, 0, 0, false
	}
	return seat, x, y, true
}

// ZoomIn animates one zoom step in.
func (s *Session) ZoomIn() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.vp.ZoomStep(1, s.now())
}

// ZoomOut animates one zoom step out.
func (s *Session) ZoomOut() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.vp.ZoomStep(-1, s.now())
}

// GoToSection animates the camera over to a section.
func (s *Session) GoToSection(sectionID uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.vp.GoToSection(sectionID, s.now())
}

// ResetView animates back to the default fit view.
func (s *Session) ResetView() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.vp.ResetView(s.now())
}
