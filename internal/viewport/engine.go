package viewport

import (
	"errors"
	"strings"
	"time"

	"github.com/hessamz/seatmap-session/internal/model"
)

// Phase tracks engine readiness.  Seats are non-interactive (and should
// be rendered at zero opacity) until the engine is Ready, which requires
// both the layout data and a chosen initial view.
type Phase int

const (
	Uninitialized Phase = iota
	Initializing
	Ready
)

// ErrDeepLinkTarget is returned when a deep link names a section or row
// that does not exist in the layout.
var ErrDeepLinkTarget = errors.New("deep link target not found")

// DeepLink identifies the section (by id or 0-based index) and optional
// row title the initial view should center on.  Consumed only once, at
// initialization.
type DeepLink struct {
	SectionID    *uint64
	SectionIndex *int
	RowTitle     string
}

// Config carries the interaction tuning of the engine.  Defaults match
// the values the seat map was designed with.
//
// Fields:
//  MinScale, MaxScale – zoom clamp bounds.
//  WheelStep          – multiplicative zoom step per wheel notch.
//  FitPadding         – screen padding around fitted content.
//  CullPadding        – extra screen margin kept renderable around the viewport.
//  AnimDuration       – length of eased view transitions.
//  DoubleTapWindow    – max gap between taps that counts as a double tap.
//  HoverShowDelay     – pointer rest time before the tooltip shows.
//  HoverHideDelay     – grace period before the tooltip hides.
//  PersistDebounce    – quiet time before the view is saved.
type Config struct {
	MinScale        float64
	MaxScale        float64
	WheelStep       float64
	FitPadding      float64
	CullPadding     float64
	AnimDuration    time.Duration
	DoubleTapWindow time.Duration
	HoverShowDelay  time.Duration
	HoverHideDelay  time.Duration
	PersistDebounce time.Duration
}

// DefaultConfig returns the standard tuning.
func DefaultConfig() Config {
	return Config{
		MinScale:        0.5,
		MaxScale:        3.0,
		WheelStep:       1.08,
		FitPadding:      40,
		CullPadding:     100,
		AnimDuration:    280 * time.Millisecond,
		DoubleTapWindow: 300 * time.Millisecond,
		HoverShowDelay:  400 * time.Millisecond,
		HoverHideDelay:  150 * time.Millisecond,
		PersistDebounce: 500 * time.Millisecond,
	}
}

// Engine is the viewport of one browsing session.  Like the selection
// engine it is single-writer: the owning session serializes all calls.
type Engine struct {
	cfg   Config
	phase Phase

	viewportW float64
	viewportH float64

	stage    model.Stage
	sections func() []*model.Section

	view View
	anim *animation

	gesture gestureState
	hover   hoverState

	dirty   bool
	dirtyAt time.Time
}

// NewEngine constructs an engine over the session's seat tree.  The
// sections func re-reads the current tree on every call so culling always
// sees post-correction seat values.
func NewEngine(cfg Config, stage model.Stage, sections func() []*model.Section) *Engine {
	return &Engine{cfg: cfg, stage: stage, sections: sections}
}

// Phase returns the current readiness phase.
func (e *Engine) Phase() Phase { return e.phase }

// View returns the camera at the given instant, advancing any in-flight
// animation.
func (e *Engine) View(now time.Time) View {
	if e.anim != nil {
		e.view = e.anim.at(now)
		if e.anim.done(now) {
			e.anim = nil
		}
	}
	return e.view
}

// Initialize picks the initial view and moves the engine to Ready.  The
// priority order is: deep link target, previously saved view, default
// fit.  A saved view is passed in by the caller when the view cache had
// one for this layout.
func (e *Engine) Initialize(viewportW, viewportH float64, link *DeepLink, saved *View) error {
	e.phase = Initializing
	e.viewportW = viewportW
	e.viewportH = viewportH

	switch {
	case link != nil:
		v, err := e.deepLinkView(link)
		if err != nil {
			return err
		}
		e.view = v
	case saved != nil:
		e.view = *saved
	default:
		e.view = e.fitView()
	}
	e.phase = Ready
	return nil
}

// fitView computes the default view: the bounding box of the stage plus
// all sections, scaled to fit the viewport with padding and top-aligned
// so content starts near the top rather than floating in the middle.
func (e *Engine) fitView() View {
	bounds := e.contentBounds()
	scale := e.fitScale(bounds, e.cfg.MaxScale)
	return View{
		Scale: scale,
		X:     (e.viewportW-bounds.Width()*scale)/2 - bounds.MinX*scale,
		Y:     e.cfg.FitPadding - bounds.MinY*scale,
	}
}

// deepLinkView centers the bounding box of the target row's seats, or
// the whole section when no row title was given, with uniform padding.
func (e *Engine) deepLinkView(link *DeepLink) (View, error) {
	sec, err := e.resolveSection(link)
	if err != nil {
		return View{}, err
	}
	bounds := sectionRect(sec)
	if link.RowTitle != "" {
		row := rowByTitle(sec, link.RowTitle)
		if row == nil {
			return View{}, ErrDeepLinkTarget
		}
		bounds = rowRect(row)
	}
	scale := e.fitScale(bounds, e.cfg.MaxScale)
	return e.centeredOn(bounds, scale), nil
}

// resolveSection finds the deep link's section by id first, then by
// 0-based index.
func (e *Engine) resolveSection(link *DeepLink) (*model.Section, error) {
	secs := e.sections()
	if link.SectionID != nil {
		for _, sec := range secs {
			if sec.ID == *link.SectionID {
				return sec, nil
			}
		}
		return nil, ErrDeepLinkTarget
	}
	if link.SectionIndex != nil {
		i := *link.SectionIndex
		if i < 0 || i >= len(secs) {
			return nil, ErrDeepLinkTarget
		}
		return secs[i], nil
	}
	return nil, ErrDeepLinkTarget
}

// fitScale returns the largest scale at which bounds fits the padded
// viewport, clamped to [MinScale, maxFit].
func (e *Engine) fitScale(bounds Rect, maxFit float64) float64 {
	w, h := bounds.Width(), bounds.Height()
	if w <= 0 || h <= 0 {
		return clampScale(1, e.cfg.MinScale, maxFit)
	}
	sx := (e.viewportW - 2*e.cfg.FitPadding) / w
	sy := (e.viewportH - 2*e.cfg.FitPadding) / h
	s := sx
	if sy < s {
		s = sy
	}
	return clampScale(s, e.cfg.MinScale, maxFit)
}

// centeredOn positions bounds dead-center in the viewport at the scale.
func (e *Engine) centeredOn(bounds Rect, scale float64) View {
	return View{
		Scale: scale,
		X:     (e.viewportW-bounds.Width()*scale)/2 - bounds.MinX*scale,
		Y:     (e.viewportH-bounds.Height()*scale)/2 - bounds.MinY*scale,
	}
}

// contentBounds is the union of the stage box and every section box.
func (e *Engine) contentBounds() Rect {
	var r Rect
	if e.stage.Width > 0 || e.stage.Height > 0 {
		r = Rect{MinX: e.stage.X, MinY: e.stage.Y, MaxX: e.stage.X + e.stage.Width, MaxY: e.stage.Y + e.stage.Height}
	}
	for _, sec := range e.sections() {
		r = r.union(sectionRect(sec))
	}
	return r
}

// VisibleSections returns only the sections whose bounding box
// intersects the current viewport expanded by the cull padding.  All
// other sections are skipped entirely for the frame, which is what keeps
// large venues renderable.
func (e *Engine) VisibleSections(now time.Time) []*model.Section {
	if e.phase != Ready {
		return nil
	}
	visible := e.View(now).visibleCanvasRect(e.viewportW, e.viewportH, e.cfg.CullPadding)
	var out []*model.Section
	for _, sec := range e.sections() {
		if sectionRect(sec).intersects(visible) {
			out = append(out, sec)
		}
	}
	return out
}

// ZoomStep applies one zoom-button step (positive in, negative out),
// anchored at the viewport center and animated.
func (e *Engine) ZoomStep(direction int, now time.Time) {
	cur := e.View(now)
	factor := e.cfg.WheelStep * e.cfg.WheelStep
	target := cur.Scale * factor
	if direction < 0 {
		target = cur.Scale / factor
	}
	target = clampScale(target, e.cfg.MinScale, e.cfg.MaxScale)
	e.animateTo(cur.anchoredZoom(target, e.viewportW/2, e.viewportH/2), now)
}

// GoToSection animates to a view framing the named section.
func (e *Engine) GoToSection(sectionID uint64, now time.Time) error {
	for _, sec := range e.sections() {
		if sec.ID == sectionID {
			bounds := sectionRect(sec)
			e.animateTo(e.centeredOn(bounds, e.fitScale(bounds, e.cfg.MaxScale)), now)
			return nil
		}
	}
	return ErrDeepLinkTarget
}

// CenterOnSeat animates the current scale over to a freshly selected
// seat, keeping zoom untouched so the buyer does not lose context.
func (e *Engine) CenterOnSeat(seat *model.Seat, now time.Time) {
	cur := e.View(now)
	e.animateTo(View{
		Scale: cur.Scale,
		X:     e.viewportW/2 - seat.X*cur.Scale,
		Y:     e.viewportH/2 - seat.Y*cur.Scale,
	}, now)
}

// ResetView animates back to the default fit view.
func (e *Engine) ResetView(now time.Time) {
	e.animateTo(e.fitView(), now)
}

// markDirty arms the debounced view persist.
func (e *Engine) markDirty(now time.Time) {
	e.dirty = true
	e.dirtyAt = now
}

// PendingSave returns the view to persist once the debounce window has
// passed with no further view changes, clearing the dirty flag.
func (e *Engine) PendingSave(now time.Time) (View, bool) {
	if !e.dirty || now.Sub(e.dirtyAt) < e.cfg.PersistDebounce {
		return View{}, false
	}
	e.dirty = false
	return e.View(now), true
}

// sectionRect returns the authored bounding box of a section.
func sectionRect(sec *model.Section) Rect {
	return Rect{MinX: sec.X, MinY: sec.Y, MaxX: sec.X + sec.Width, MaxY: sec.Y + sec.Height}
}

// rowRect returns the bounding box of a row's seats including radii.
func rowRect(row *model.Row) Rect {
	var r Rect
	first := true
	for _, seat := range row.Seats {
		box := Rect{MinX: seat.X - seat.Radius, MinY: seat.Y - seat.Radius, MaxX: seat.X + seat.Radius, MaxY: seat.Y + seat.Radius}
		if first {
			r = box
			first = false
			continue
		}
		r = r.union(box)
	}
	return r
}

// rowByTitle finds a row by case-insensitive title match.
func rowByTitle(sec *model.Section, title string) *model.Row {
	for _, row := range sec.Rows {
		if strings.EqualFold(row.Title, title) {
			return row
		}
	}
	return nil
}
