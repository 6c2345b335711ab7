// Package viewport owns the zoom/pan state of the seat map: gesture
// recognition, animated transitions, initial-view computation (deep
// link, saved view, default fit) and section culling.  All coordinates
// come in two spaces: canvas space (the coordinates seats are authored
// in) and screen space (canvas × scale + pan offset).
package viewport

import "math"

// View is a camera position: the zoom scale plus the pan offset that
// maps canvas coordinates onto the screen.
type View struct {
	Scale float64 `json:"scale"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
}

// Rect is an axis-aligned box in canvas space.
type Rect struct {
	MinX, MinY, MaxX, MaxY float64
}

// Width returns the horizontal extent of the rect.
func (r Rect) Width() float64 { return r.MaxX - r.MinX }

// Height returns the vertical extent of the rect.
func (r Rect) Height() float64 { return r.MaxY - r.MinY }

// union grows the rect to cover other.  An empty receiver adopts other.
func (r Rect) union(other Rect) Rect {
	if r.MaxX <= r.MinX && r.MaxY <= r.MinY {
		return other
	}
	return Rect{
		MinX: math.Min(r.MinX, other.MinX),
		MinY: math.Min(r.MinY, other.MinY),
		MaxX: math.Max(r.MaxX, other.MaxX),
		MaxY: math.Max(r.MaxY, other.MaxY),
	}
}

// intersects reports whether two rects overlap.
func (r Rect) intersects(other Rect) bool {
	return r.MinX < other.MaxX && r.MaxX > other.MinX &&
		r.MinY < other.MaxY && r.MaxY > other.MinY
}

// toCanvas converts a screen-space point to canvas space under the view.
func (v View) toCanvas(screenX, screenY float64) (float64, float64) {
	return (screenX - v.X) / v.Scale, (screenY - v.Y) / v.Scale
}

// anchoredZoom rescales the view so the canvas point currently under the
// given screen position stays put.  This is the shared math behind wheel
// zoom, pinch zoom and the zoom buttons.
func (v View) anchoredZoom(newScale, screenX, screenY float64) View {
	cx, cy := v.toCanvas(screenX, screenY)
	return View{
		Scale: newScale,
		X:     screenX - cx*newScale,
		Y:     screenY - cy*newScale,
	}
}

// visibleCanvasRect returns the canvas-space rect covered by the screen
// viewport expanded by pad screen pixels on every side.
func (v View) visibleCanvasRect(viewportW, viewportH, pad float64) Rect {
	minX, minY := v.toCanvas(-pad, -pad)
	maxX, maxY := v.toCanvas(viewportW+pad, viewportH+pad)
	return Rect{MinX: minX, MinY: minY, MaxX: maxX, MaxY: maxY}
}

// clampScale bounds a scale into [min, max].
func clampScale(s, min, max float64) float64 {
	if s < min {
		return min
	}
	if s > max {
		return max
	}
	return s
}
