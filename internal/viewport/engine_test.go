package viewport

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hessamz/seatmap-session/internal/model"
)

var t0 = time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

func testSections() []*model.Section {
	return []*model.Section{
		{
			ID: 10, Name: "Orchestra", X: 0, Y: 100, Width: 400, Height: 200,
			Rows: []*model.Row{
				{
					ID: 100, Title: "A",
					Seats: []*model.Seat{
						{ID: 1, Number: "A1", X: 20, Y: 120, Radius: 10, Status: model.StatusAvailable},
						{ID: 2, Number: "A2", X: 380, Y: 120, Radius: 10, Status: model.StatusAvailable},
					},
				},
			},
		},
		{
			ID: 11, Name: "Balcony", X: 0, Y: 400, Width: 400, Height: 100,
			Rows: []*model.Row{
				{
					ID: 110, Title: "K",
					Seats: []*model.Seat{
						{ID: 3, Number: "K1", X: 20, Y: 420, Radius: 10, Status: model.StatusAvailable},
						{ID: 4, Number: "K2", X: 380, Y: 420, Radius: 10, Status: model.StatusAvailable},
					},
				},
			},
		},
	}
}

func newTestEngine() *Engine {
	sections := testSections()
	stage := model.Stage{X: 0, Y: 0, Width: 400, Height: 60}
	return NewEngine(DefaultConfig(), stage, func() []*model.Section { return sections })
}

func readyEngine(t *testing.T, link *DeepLink, saved *View) *Engine {
	t.Helper()
	e := newTestEngine()
	require.NoError(t, e.Initialize(800, 600, link, saved))
	require.Equal(t, Ready, e.Phase())
	return e
}

func TestInitializeDefaultFit(t *testing.T) {
	e := readyEngine(t, nil, nil)

	// Content spans (0,0)-(400,500); the height limits the fit.
	v := e.View(t0)
	assert.InDelta(t, (600-2*40.0)/500, v.Scale, 1e-9)
	assert.InDelta(t, (800-400*v.Scale)/2, v.X, 1e-9)
	// Top-aligned, not vertically centered.
	assert.InDelta(t, 40, v.Y, 1e-9)
}

func TestInitializePrefersSavedView(t *testing.T) {
	saved := View{Scale: 2, X: -120, Y: -300}
	e := readyEngine(t, nil, &saved)
	assert.Equal(t, saved, e.View(t0))
}

func TestInitializeDeepLinkBeatsSavedView(t *testing.T) {
	secID := uint64(11)
	saved := View{Scale: 2, X: -120, Y: -300}
	e := readyEngine(t, &DeepLink{SectionID: &secID}, &saved)

	// Balcony box is 400x100; width limits the fit, and the section is
	// centered rather than top-aligned.
	v := e.View(t0)
	assert.InDelta(t, (800-2*40.0)/400, v.Scale, 1e-9)
	assert.InDelta(t, (800-400*v.Scale)/2, v.X, 1e-9)
	assert.InDelta(t, (600-100*v.Scale)/2-400*v.Scale, v.Y, 1e-9)
}

func TestInitializeDeepLinkRow(t *testing.T) {
	idx := 1
	e := readyEngine(t, &DeepLink{SectionIndex: &idx, RowTitle: "k"}, nil)

	// Row K spans (10,410)-(390,430) including seat radii.
	v := e.View(t0)
	assert.InDelta(t, (800-2*40.0)/380, v.Scale, 1e-9)
	cx := (10 + 390) / 2.0
	cy := (410 + 430) / 2.0
	gotX, gotY := v.toCanvas(400, 300)
	assert.InDelta(t, cx, gotX, 1e-9)
	assert.InDelta(t, cy, gotY, 1e-9)
}

func TestInitializeDeepLinkMissingTarget(t *testing.T) {
	e := newTestEngine()

	secID := uint64(999)
	assert.ErrorIs(t, e.Initialize(800, 600, &DeepLink{SectionID: &secID}, nil), ErrDeepLinkTarget)

	idx := 5
	assert.ErrorIs(t, e.Initialize(800, 600, &DeepLink{SectionIndex: &idx}, nil), ErrDeepLinkTarget)

	goodID := uint64(10)
	assert.ErrorIs(t, e.Initialize(800, 600, &DeepLink{SectionID: &goodID, RowTitle: "Z"}, nil), ErrDeepLinkTarget)
}

func TestNotReadyIgnoresInput(t *testing.T) {
	e := newTestEngine()
	assert.Equal(t, Uninitialized, e.Phase())

	e.PointerDown(1, 100, 100, t0)
	e.PointerMove(1, 200, 200, t0)
	e.Wheel(100, 100, -1, t0)
	assert.Equal(t, View{}, e.View(t0))
	assert.Nil(t, e.VisibleSections(t0))
}

func TestWheelZoomKeepsAnchorFixed(t *testing.T) {
	saved := View{Scale: 1, X: 0, Y: 0}
	e := readyEngine(t, nil, &saved)

	anchorCX, anchorCY := saved.toCanvas(300, 200)
	e.Wheel(300, 200, -1, t0)

	v := e.View(t0)
	assert.InDelta(t, 1.08, v.Scale, 1e-9)
	gotX, gotY := v.toCanvas(300, 200)
	assert.InDelta(t, anchorCX, gotX, 1e-9)
	assert.InDelta(t, anchorCY, gotY, 1e-9)

	// Scrolling the other way steps back down.
	e.Wheel(300, 200, 1, t0)
	assert.InDelta(t, 1.0, e.View(t0).Scale, 1e-9)
}

func TestWheelZoomClamps(t *testing.T) {
	saved := View{Scale: 2.99, X: 0, Y: 0}
	e := readyEngine(t, nil, &saved)

	e.Wheel(400, 300, -1, t0)
	assert.InDelta(t, 3.0, e.View(t0).Scale, 1e-9)

	low := View{Scale: 0.51, X: 0, Y: 0}
	e2 := readyEngine(t, nil, &low)
	e2.Wheel(400, 300, 1, t0)
	assert.InDelta(t, 0.5, e2.View(t0).Scale, 1e-9)
}

func TestZoomStepAnimatesAtCenter(t *testing.T) {
	saved := View{Scale: 1, X: 0, Y: 0}
	e := readyEngine(t, nil, &saved)

	e.ZoomStep(1, t0)

	// Before any time passes the view has not jumped.
	assert.InDelta(t, 1.0, e.View(t0).Scale, 1e-9)

	settled := e.View(t0.Add(DefaultConfig().AnimDuration))
	assert.InDelta(t, 1.08*1.08, settled.Scale, 1e-9)

	// The canvas point at the viewport center stayed fixed.
	cx, cy := saved.toCanvas(400, 300)
	gotX, gotY := settled.toCanvas(400, 300)
	assert.InDelta(t, cx, gotX, 1e-9)
	assert.InDelta(t, cy, gotY, 1e-9)
}

func TestAnimationEasing(t *testing.T) {
	a := animation{
		from:     View{Scale: 1, X: 0, Y: 0},
		to:       View{Scale: 2, X: 100, Y: -100},
		start:    t0,
		duration: 280 * time.Millisecond,
	}

	assert.Equal(t, a.from, a.at(t0.Add(-time.Second)))
	assert.Equal(t, a.to, a.at(t0.Add(time.Second)))

	// Cubic ease-out: f(0.5) = 1 - 0.5^3 = 0.875.
	mid := a.at(t0.Add(140 * time.Millisecond))
	assert.InDelta(t, 1.875, mid.Scale, 1e-9)
	assert.InDelta(t, 87.5, mid.X, 1e-9)
	assert.InDelta(t, -87.5, mid.Y, 1e-9)
}

func TestAnimationReplacedNotQueued(t *testing.T) {
	saved := View{Scale: 1, X: 0, Y: 0}
	e := readyEngine(t, nil, &saved)

	require.NoError(t, e.GoToSection(10, t0))
	midway := t0.Add(140 * time.Millisecond)
	midView := e.View(midway)

	// A second request midway starts from the in-flight frame.
	require.NoError(t, e.GoToSection(11, midway))
	assert.Equal(t, midView, e.View(midway))

	settled := e.View(midway.Add(DefaultConfig().AnimDuration))
	secID := uint64(11)
	want := readyEngine(t, &DeepLink{SectionID: &secID}, nil).View(t0)
	assert.InDelta(t, want.Scale, settled.Scale, 1e-9)
	assert.InDelta(t, want.X, settled.X, 1e-9)
	assert.InDelta(t, want.Y, settled.Y, 1e-9)
}

func TestGoToSectionUnknown(t *testing.T) {
	e := readyEngine(t, nil, nil)
	assert.ErrorIs(t, e.GoToSection(999, t0), ErrDeepLinkTarget)
}

func TestCenterOnSeatKeepsScale(t *testing.T) {
	saved := View{Scale: 2, X: 0, Y: 0}
	e := readyEngine(t, nil, &saved)

	seat := &model.Seat{ID: 1, X: 380, Y: 120}
	e.CenterOnSeat(seat, t0)

	settled := e.View(t0.Add(DefaultConfig().AnimDuration))
	assert.InDelta(t, 2.0, settled.Scale, 1e-9)
	gotX, gotY := settled.toCanvas(400, 300)
	assert.InDelta(t, seat.X, gotX, 1e-9)
	assert.InDelta(t, seat.Y, gotY, 1e-9)
}

func TestPanFollowsPointer(t *testing.T) {
	saved := View{Scale: 1, X: 0, Y: 0}
	e := readyEngine(t, nil, &saved)

	e.PointerDown(1, 100, 100, t0)
	e.PointerMove(1, 160, 80, t0)
	e.PointerMove(1, 180, 60, t0)
	e.PointerUp(1, t0)

	v := e.View(t0)
	assert.InDelta(t, 80, v.X, 1e-9)
	assert.InDelta(t, -40, v.Y, 1e-9)
}

func TestPinchZoomAndCentroidPan(t *testing.T) {
	saved := View{Scale: 1, X: 0, Y: 0}
	e := readyEngine(t, nil, &saved)

	e.PointerDown(1, 300, 300, t0)
	e.PointerDown(2, 500, 300, t0)
	assert.Equal(t, gesturePinch, e.gesture.phase)

	// Fingers spread symmetrically: distance 200 → 400, centroid fixed.
	e.PointerMove(1, 200, 300, t0)
	e.PointerMove(2, 600, 300, t0)

	v := e.View(t0)
	assert.Greater(t, v.Scale, 1.0)
	assert.LessOrEqual(t, v.Scale, 3.0)

	// Both fingers translate together: pure pan, no scale change.
	before := e.View(t0)
	e.PointerMove(1, 250, 350, t0)
	e.PointerMove(2, 650, 350, t0)
	after := e.View(t0)
	assert.InDelta(t, before.Scale, after.Scale, 1e-6)
	assert.InDelta(t, before.Y+50, after.Y, 1e-6)
}

func TestPinchFallsBackToPan(t *testing.T) {
	saved := View{Scale: 1, X: 0, Y: 0}
	e := readyEngine(t, nil, &saved)

	e.PointerDown(1, 300, 300, t0)
	e.PointerDown(2, 500, 300, t0)
	e.PointerUp(1, t0)
	assert.Equal(t, gesturePan, e.gesture.phase)

	before := e.View(t0)
	e.PointerMove(2, 550, 320, t0)
	after := e.View(t0)
	assert.InDelta(t, before.X+50, after.X, 1e-9)
	assert.InDelta(t, before.Y+20, after.Y, 1e-9)
	assert.InDelta(t, before.Scale, after.Scale, 1e-9)

	e.PointerUp(2, t0)
	assert.Equal(t, gestureIdle, e.gesture.phase)
}

func TestDoubleTapResetsView(t *testing.T) {
	saved := View{Scale: 2.5, X: -500, Y: -200}
	e := readyEngine(t, nil, &saved)
	fit := readyEngine(t, nil, nil).View(t0)

	e.PointerDown(1, 100, 100, t0)
	e.PointerUp(1, t0)
	second := t0.Add(200 * time.Millisecond)
	e.PointerDown(1, 100, 100, second)
	e.PointerUp(1, second)

	settled := e.View(second.Add(DefaultConfig().AnimDuration))
	assert.InDelta(t, fit.Scale, settled.Scale, 1e-9)
	assert.InDelta(t, fit.X, settled.X, 1e-9)
	assert.InDelta(t, fit.Y, settled.Y, 1e-9)
}

func TestSlowSecondTapDoesNotReset(t *testing.T) {
	saved := View{Scale: 2.5, X: -500, Y: -200}
	e := readyEngine(t, nil, &saved)

	e.PointerDown(1, 100, 100, t0)
	e.PointerUp(1, t0)
	second := t0.Add(400 * time.Millisecond)
	e.PointerDown(1, 100, 100, second)
	e.PointerUp(1, second)

	assert.Equal(t, saved, e.View(second.Add(time.Second)))
}

func TestTapThenDragDoesNotReset(t *testing.T) {
	saved := View{Scale: 2.5, X: -500, Y: -200}
	e := readyEngine(t, nil, &saved)

	e.PointerDown(1, 100, 100, t0)
	e.PointerUp(1, t0)

	// A quick press that turns into a drag pans; it must not fire the
	// double-tap reset.
	second := t0.Add(150 * time.Millisecond)
	e.PointerDown(1, 100, 100, second)
	e.PointerMove(1, 160, 130, second)
	e.PointerUp(1, second)

	got := e.View(second.Add(time.Second))
	assert.InDelta(t, saved.Scale, got.Scale, 1e-9)
	assert.InDelta(t, saved.X+60, got.X, 1e-9)
	assert.InDelta(t, saved.Y+30, got.Y, 1e-9)

	// The drag also broke the tap chain for anything that follows.
	assert.True(t, e.gesture.lastTapAt.IsZero())
}

func TestDragWithinSlopCountsAsTap(t *testing.T) {
	saved := View{Scale: 1, X: 0, Y: 0}
	e := readyEngine(t, nil, &saved)

	e.PointerDown(1, 100, 100, t0)
	e.PointerMove(1, 104, 103, t0)
	e.PointerUp(1, t0)

	// Small jitter: still a tap, so no view persist is armed.
	_, ok := e.PendingSave(t0.Add(time.Second))
	assert.False(t, ok)
	assert.Equal(t, t0, e.gesture.lastTapAt)
}

func TestVisibleSectionsCulling(t *testing.T) {
	// Camera parked over the balcony: the orchestra sits more than the
	// cull padding above the viewport and is skipped.
	saved := View{Scale: 1, X: 0, Y: -450}
	e := readyEngine(t, nil, &saved)

	visible := e.VisibleSections(t0)
	require.Len(t, visible, 1)
	assert.Equal(t, uint64(11), visible[0].ID)

	// The default fit shows everything.
	e2 := readyEngine(t, nil, nil)
	assert.Len(t, e2.VisibleSections(t0), 2)
}

func TestHoverTooltipTiming(t *testing.T) {
	e := readyEngine(t, nil, nil)
	cfg := DefaultConfig()

	e.HoverSeat(1, 120, 140, t0)
	_, _, _, ok := e.TooltipSeat(t0.Add(cfg.HoverShowDelay - time.Millisecond))
	assert.False(t, ok, "tooltip must wait out the show delay")

	id, x, y, ok := e.TooltipSeat(t0.Add(cfg.HoverShowDelay))
	require.True(t, ok)
	assert.Equal(t, uint64(1), id)
	assert.Equal(t, 120.0, x)
	assert.Equal(t, 140.0, y)

	left := t0.Add(cfg.HoverShowDelay + time.Second)
	e.HoverEnd(left)
	_, _, _, ok = e.TooltipSeat(left.Add(cfg.HoverHideDelay - time.Millisecond))
	assert.True(t, ok, "tooltip lingers through the hide grace period")
	_, _, _, ok = e.TooltipSeat(left.Add(cfg.HoverHideDelay))
	assert.False(t, ok)
}

func TestHoverSwitchingSeatsRestartsDelay(t *testing.T) {
	e := readyEngine(t, nil, nil)
	cfg := DefaultConfig()

	e.HoverSeat(1, 120, 140, t0)
	halfway := t0.Add(cfg.HoverShowDelay / 2)
	e.HoverSeat(2, 160, 140, halfway)

	_, _, _, ok := e.TooltipSeat(t0.Add(cfg.HoverShowDelay))
	assert.False(t, ok)

	id, _, _, ok := e.TooltipSeat(halfway.Add(cfg.HoverShowDelay))
	require.True(t, ok)
	assert.Equal(t, uint64(2), id)
}

func TestPendingSaveDebounce(t *testing.T) {
	saved := View{Scale: 1, X: 0, Y: 0}
	e := readyEngine(t, nil, &saved)
	cfg := DefaultConfig()

	e.Wheel(400, 300, -1, t0)
	_, ok := e.PendingSave(t0.Add(cfg.PersistDebounce - time.Millisecond))
	assert.False(t, ok)

	// Another change inside the window pushes the save out.
	bump := t0.Add(400 * time.Millisecond)
	e.Wheel(400, 300, -1, bump)
	_, ok = e.PendingSave(t0.Add(cfg.PersistDebounce))
	assert.False(t, ok)

	v, ok := e.PendingSave(bump.Add(cfg.PersistDebounce))
	require.True(t, ok)
	assert.Equal(t, e.View(bump), v)

	// The flag clears after a successful read.
	_, ok = e.PendingSave(bump.Add(cfg.PersistDebounce))
	assert.False(t, ok)
}
