// Package queue defines message payloads exchanged over the message
// broker and the background consumer for seat-status pushes.
package queue

// SeatStatusEvent is the push payload delivered when seats change hands
// elsewhere: another buyer booked or locked them.  The publisher side is
// responsible for never targeting the actor whose own action caused the
// change; a viewer's own successful checkout flows through the checkout
// endpoint, not this channel.
type SeatStatusEvent struct {
	LayoutID uint64   `json:"layout_id"`
	EventID  uint64   `json:"event_id"`
	SeatIDs  []uint64 `json:"seat_ids"`
	Status   string   `json:"status"` // "booked" or "locked"
}

// BookingConfirmedEvent is published when a viewer's checkout succeeds
// and their selection is marked booked.  Downstream consumers fan the
// seat ids back out as SeatStatusEvents to every other viewer.
type BookingConfirmedEvent struct {
	SessionID       string   `json:"session_id"`
	ViewerID        string   `json:"viewer_id"`
	LayoutID        uint64   `json:"layout_id"`
	EventID         uint64   `json:"event_id"`
	SeatIDs         []uint64 `json:"seat_ids"`
	SeatLabels      []string `json:"seats"`
	TotalFinalCents uint64   `json:"total_final_cents"`
	ConfirmedAt     string   `json:"confirmed_at"`
}
