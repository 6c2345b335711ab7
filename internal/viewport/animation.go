package viewport

import "time"

// animation is one eased view transition.  At most one is in flight; a
// new request replaces the current one rather than queueing behind it.
type animation struct {
	from, to View
	start    time.Time
	duration time.Duration
}

// done reports whether the animation has run its full duration.
func (a *animation) done(now time.Time) bool {
	return now.Sub(a.start) >= a.duration
}

// at returns the interpolated view at the given instant using cubic
// ease-out, so transitions start fast and settle gently.
func (a *animation) at(now time.Time) View {
	t := float64(now.Sub(a.start)) / float64(a.duration)
	if t <= 0 {
		return a.from
	}
	if t >= 1 {
		return a.to
	}
	f := 1 - (1-t)*(1-t)*(1-t)
	return View{
		Scale: a.from.Scale + (a.to.Scale-a.from.Scale)*f,
		X:     a.from.X + (a.to.X-a.from.X)*f,
		Y:     a.from.Y + (a.to.Y-a.from.Y)*f,
	}
}

// animateTo starts a transition from the current (possibly mid-flight)
// view to the target, cancelling any animation already running.
func (e *Engine) animateTo(target View, now time.Time) {
	cur := e.View(now)
	e.anim = &animation{from: cur, to: target, start: now, duration: e.cfg.AnimDuration}
	e.markDirty(now)
}
