// Package conflict translates seat-status pushes from the broker into
// session corrections and user-facing conflict notices.  Corrections are
// applied to every affected session before any notice is surfaced, so
// the viewer can never act against a seat the client already knows is
// gone.
package conflict

import (
	"fmt"
	"strings"

	"github.com/hessamz/seatmap-session/internal/model"
	"github.com/hessamz/seatmap-session/internal/queue"
	"github.com/hessamz/seatmap-session/internal/session"
)

// Resolver subscribes the session registry to the push channel.
type Resolver struct {
	sessions *session.Manager
}

// NewResolver constructs a resolver over the session manager.
func NewResolver(sessions *session.Manager) *Resolver {
	if sessions == nil {
		panic("nil session manager passed to NewResolver")
	}
	return &Resolver{sessions: sessions}
}

// Handle applies one push batch: every session viewing the same
// layout+event gets the forced status correction, and any session whose
// own selection lost seats gets a blocking notice naming them and the
// action taken.  Implements queue.Handler.
func (r *Resolver) Handle(ev queue.SeatStatusEvent) error {
	status := model.SeatStatus(ev.Status)
	if status != model.StatusBooked && status != model.StatusLocked {
		return fmt.Errorf("conflict: unsupported push status %q", ev.Status)
	}
	for _, s := range r.sessions.ForLayoutEvent(ev.LayoutID, ev.EventID) {
		lost := s.ApplyStatusPush(ev.SeatIDs, status)
		if len(lost) == 0 {
			continue
		}
		s.Board().Publish(LostSeatsNotice(lost, status))
	}
	return nil
}

// LostSeatsNotice builds the blocking notice shown when seats leave the
// viewer's selection because another buyer booked or locked them.  Also
// used by the checkout handler when a submission fails on specific seats.
func LostSeatsNotice(lost []model.SelectedSeat, status model.SeatStatus) model.Notice {
	labels := make([]string, 0, len(lost))
	for _, s := range lost {
		labels = append(labels, s.SeatName)
	}
	action := "booked"
	if status == model.StatusLocked {
		action = "locked"
	}
	return model.Notice{
		Kind:     model.NoticeConflict,
		Message:  fmt.Sprintf("seats %s were %s by another buyer and removed from your selection", strings.Join(labels, ", "), action),
		Seats:    labels,
		Blocking: true,
	}
}
