package viewport

import (
	"math"
	"time"
)

// tapSlop is the max pointer travel, in screen pixels, that still counts
// as a tap rather than a drag.
const tapSlop = 10

// gesturePhase is the explicit state of the recognizer.  Transitions are
// driven purely by touch-point-count changes, which keeps sequencing
// (pan → pinch → pan) testable without ad hoc flags.
type gesturePhase int

const (
	gestureIdle gesturePhase = iota
	gesturePan
	gesturePinch
)

type pointerPos struct{ x, y float64 }

// gestureState carries everything the recognizer needs between events.
type gestureState struct {
	phase    gesturePhase
	pointers map[int]pointerPos
	order    []int // pointer ids in arrival order

	panID        int
	lastX, lastY float64
	downX, downY float64
	moved        bool

	pinchDist float64
	pinchCX   float64
	pinchCY   float64

	lastTapAt time.Time
	secondTap bool
}

// PointerDown feeds a touch/mouse press into the recognizer.  A second
// concurrent pointer explicitly stops any active drag and enters pinch.
// A single-pointer press arriving within the double-tap window of the
// previous tap arms a double-tap; whether it fires is decided on release,
// once the press has proven to be a tap and not the start of a drag.
func (e *Engine) PointerDown(id int, x, y float64, now time.Time) {
	if e.phase != Ready {
		return
	}
	// A touch interrupts any in-flight animation at its current frame.
	e.view = e.View(now)
	e.anim = nil

	g := &e.gesture
	if g.pointers == nil {
		g.pointers = make(map[int]pointerPos)
	}
	if _, exists := g.pointers[id]; !exists {
		g.order = append(g.order, id)
	}
	g.pointers[id] = pointerPos{x: x, y: y}

	switch len(g.pointers) {
	case 1:
		g.secondTap = !g.lastTapAt.IsZero() && now.Sub(g.lastTapAt) <= e.cfg.DoubleTapWindow
		g.phase = gesturePan
		g.panID = id
		g.lastX, g.lastY = x, y
		g.downX, g.downY = x, y
		g.moved = false
	case 2:
		// Second finger lands: dragging stops, pinch begins.
		g.phase = gesturePinch
		g.moved = true
		g.secondTap = false
		e.beginPinch()
	}
}

// PointerMove updates a pointer position, panning or pinching according
// to the current gesture phase.
func (e *Engine) PointerMove(id int, x, y float64, now time.Time) {
	if e.phase != Ready {
		return
	}
	g := &e.gesture
	if _, ok := g.pointers[id]; !ok {
		return
	}
	g.pointers[id] = pointerPos{x: x, y: y}

	switch g.phase {
	case gesturePan:
		if id != g.panID {
			return
		}
		e.view.X += x - g.lastX
		e.view.Y += y - g.lastY
		g.lastX, g.lastY = x, y
		if math.Hypot(x-g.downX, y-g.downY) > tapSlop {
			g.moved = true
		}
	case gesturePinch:
		e.stepPinch()
	}
}

// PointerUp removes a pointer.  Leaving pinch with one finger still down
// falls back to panning with that finger.  Releasing the last pointer is
// where taps are judged: a clean release of an armed second tap resets
// the view to the default fit, a first tap records its timing, and any
// drag arms the debounced view persist instead.
func (e *Engine) PointerUp(id int, now time.Time) {
	if e.phase != Ready {
		return
	}
	g := &e.gesture
	if _, ok := g.pointers[id]; !ok {
		return
	}
	delete(g.pointers, id)
	for i, pid := range g.order {
		if pid == id {
			g.order = append(g.order[:i], g.order[i+1:]...)
			break
		}
	}

	switch len(g.pointers) {
	case 0:
		if g.phase == gesturePan && !g.moved {
			if g.secondTap {
				g.lastTapAt = time.Time{}
				e.ResetView(now)
			} else {
				g.lastTapAt = now
			}
		} else {
			g.lastTapAt = time.Time{}
		}
		g.secondTap = false
		if g.moved {
			e.markDirty(now)
		}
		g.phase = gestureIdle
	case 1:
		remaining := g.order[0]
		pos := g.pointers[remaining]
		g.phase = gesturePan
		g.panID = remaining
		g.lastX, g.lastY = pos.x, pos.y
	default:
		e.beginPinch()
	}
}

// Wheel zooms anchored at the pointer position: the canvas point under
// the cursor stays fixed while the scale steps by the configured factor.
func (e *Engine) Wheel(x, y, deltaY float64, now time.Time) {
	if e.phase != Ready {
		return
	}
	cur := e.View(now)
	e.anim = nil
	factor := e.cfg.WheelStep
	if deltaY > 0 {
		factor = 1 / factor
	}
	target := clampScale(cur.Scale*factor, e.cfg.MinScale, e.cfg.MaxScale)
	e.view = cur.anchoredZoom(target, x, y)
	e.markDirty(now)
}

// beginPinch snapshots the two-pointer distance and centroid that the
// next pinch steps will be measured against.
func (e *Engine) beginPinch() {
	g := &e.gesture
	a := g.pointers[g.order[0]]
	b := g.pointers[g.order[1]]
	g.pinchDist = math.Hypot(b.x-a.x, b.y-a.y)
	g.pinchCX = (a.x + b.x) / 2
	g.pinchCY = (a.y + b.y) / 2
}

// stepPinch applies one frame of simultaneous pinch-zoom and pan: scale
// changes with the distance ratio anchored at the centroid, and the
// centroid's own frame-to-frame delta pans the view.
func (e *Engine) stepPinch() {
	g := &e.gesture
	if len(g.order) < 2 {
		return
	}
	a := g.pointers[g.order[0]]
	b := g.pointers[g.order[1]]
	dist := math.Hypot(b.x-a.x, b.y-a.y)
	cx := (a.x + b.x) / 2
	cy := (a.y + b.y) / 2

	if g.pinchDist > 0 && dist > 0 {
		target := clampScale(e.view.Scale*dist/g.pinchDist, e.cfg.MinScale, e.cfg.MaxScale)
		e.view = e.view.anchoredZoom(target, g.pinchCX, g.pinchCY)
	}
	e.view.X += cx - g.pinchCX
	e.view.Y += cy - g.pinchCY

	g.pinchDist = dist
	g.pinchCX = cx
	g.pinchCY = cy
}
