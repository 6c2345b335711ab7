package viewport

import "time"

// hoverState implements tooltip intent timing: the tooltip appears only
// after the pointer has rested on a seat for the show delay, and
// survives a short grace period after the pointer leaves so it can be
// moved onto the tooltip itself.
type hoverState struct {
	seatID    uint64
	x, y      float64
	enteredAt time.Time
	leftAt    time.Time
}

// HoverSeat reports the pointer sitting over a seat.  Moving between
// seats restarts the rest timer for the new seat.
func (e *Engine) HoverSeat(seatID uint64, x, y float64, now time.Time) {
	if e.phase != Ready {
		return
	}
	h := &e.hover
	if h.seatID != seatID {
		h.seatID = seatID
		h.enteredAt = now
	}
	h.x, h.y = x, y
	h.leftAt = time.Time{}
}

// HoverEnd reports the pointer leaving the hovered seat.  The tooltip is
// kept for the hide delay before TooltipSeat stops reporting it.
func (e *Engine) HoverEnd(now time.Time) {
	if e.hover.seatID != 0 && e.hover.leftAt.IsZero() {
		e.hover.leftAt = now
	}
}

// TooltipSeat returns the seat whose info tooltip should currently be
// visible at the recorded pointer position, if any.
func (e *Engine) TooltipSeat(now time.Time) (seatID uint64, x, y float64, ok bool) {
	h := &e.hover
	if h.seatID == 0 {
		return 0, 0, 0, false
	}
	if !h.leftAt.IsZero() && now.Sub(h.leftAt) >= e.cfg.HoverHideDelay {
		h.seatID = 0
		return 0, 0, 0, false
	}
	if now.Sub(h.enteredAt) < e.cfg.HoverShowDelay {
		return 0, 0, 0, false
	}
	return h.seatID, h.x, h.y, true
}
