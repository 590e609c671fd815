package panel

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/grindlemire/go-panel/internal/debug"
)

// GestureKind identifies a step of a drag gesture.
type GestureKind uint8

const (
	GestureBegan GestureKind = iota
	GestureChanged
	GestureEnded
)

func (k GestureKind) String() string {
	switch k {
	case GestureBegan:
		return "began"
	case GestureChanged:
		return "changed"
	case GestureEnded:
		return "ended"
	default:
		return "unknown"
	}
}

// GestureInput is one gesture step as seen by a secondary gesture handler.
type GestureInput struct {
	Kind     GestureKind
	Delta    Vector
	Velocity Vector
	// Translation is the pointer movement since the gesture began.
	Translation Vector
	At          time.Time
}

// BeginGesture starts a drag. A settle in progress stops where it is and the
// panel adopts the settle target as its state.
func (p *Panel) BeginGesture(at time.Time) {
	p.do(func() { p.beginGesture(at) })
}

// UpdateGesture moves the drag by delta, the pointer movement since the
// previous update. Without a preceding BeginGesture it does nothing.
func (p *Panel) UpdateGesture(delta Vector, at time.Time) {
	p.do(func() { p.updateGesture(delta, at) })
}

// EndGesture releases the drag with the given velocity in points per second
// and settles the panel on the resolved target.
func (p *Panel) EndGesture(velocity Vector) {
	p.do(func() { p.endGesture(velocity) })
}

// EndGestureEstimated releases the drag with a velocity estimated from the
// timestamps of its updates.
func (p *Panel) EndGestureEstimated() {
	p.do(func() {
		set := p.anchors.Load()
		if !p.g.active || set == nil {
			debug.Log("EndGestureEstimated: no active gesture, ignoring")
			return
		}
		p.endGesture(set.Position().Vector(p.g.tracker.Velocity()))
	})
}

func (p *Panel) beginGesture(at time.Time) {
	set := p.anchors.Load()
	switch {
	case set == nil:
		debug.Log("BeginGesture: layout not resolved, ignoring")
		return
	case p.g.active:
		debug.Log("BeginGesture: gesture already active, ignoring")
		return
	case p.phase.Get() == PhaseIdle && p.state.Get() == Hidden && !set.Declared(Hidden):
		debug.Log("BeginGesture: already hidden, ignoring")
		return
	case p.phase.Get() == PhaseIdle && p.shouldBegin != nil && !p.shouldBegin(p):
		debug.Log("BeginGesture: rejected by should-begin predicate")
		return
	}

	if s := p.settle; s != nil {
		p.settle = nil
		debug.Log("BeginGesture: interrupting settle to %v at %.1f", s.target, p.offset.Get())
		p.setState(s.target)
		p.events.Emit(SettleEndedEvent{Target: s.target, Finished: false})
	}

	p.g = gesture{
		active: true,
		from:   p.state.Get(),
		base:   p.offset.Get(),
		start:  at,
	}
	if sb := p.scroll; sb != nil {
		if p.atMostExpanded(*set) && !sb.atOrigin(p.scale) {
			p.g.route = routeScroll
			sb.unlock()
		} else {
			sb.lock()
		}
	}
	p.phase.set(PhaseDragging)
	debug.Log("BeginGesture: from %v at %.1f, route %v", p.g.from, p.g.base, p.g.route)

	p.events.Emit(GestureBeganEvent{State: p.g.from, Offset: p.g.base})
	if p.secondary != nil {
		p.secondary(GestureInput{Kind: GestureBegan, At: at})
	}
}

func (p *Panel) updateGesture(delta Vector, at time.Time) {
	if !p.g.active {
		debug.Log("UpdateGesture: no active gesture, ignoring")
		return
	}
	set := *p.anchors.Load()
	d := set.Position().MainLocation(delta)
	p.g.tracker.AddDelta(at.Sub(p.g.start), d)
	p.g.translation = p.g.translation.Add(delta)
	p.drag(set, d)

	if p.secondary != nil {
		p.secondary(GestureInput{Kind: GestureChanged, Delta: delta, Translation: p.g.translation, At: at})
	}
}

// drag routes the delta d to the panel or the scroll view, handing the
// remainder over when one of them reaches its limit.
func (p *Panel) drag(set AnchorSet, d float64) {
	for i := 0; i < 2 && d != 0; i++ {
		switch p.g.route {
		case routePanel:
			d = p.movePanel(set, d)
			if d != 0 {
				debug.Log("drag: handoff to scroll view with %.1f left", d)
				p.g.route = routeScroll
				p.scroll.unlock()
			}
		case routeScroll:
			if p.scroll == nil {
				p.g.route = routePanel
				p.rebase()
				continue
			}
			d = p.scroll.scroll(d)
			if d != 0 {
				debug.Log("drag: handoff to panel with %.1f left", d)
				p.g.route = routePanel
				p.rebase()
				p.scroll.lock()
			}
		}
	}
	if p.g.route == routePanel && p.scroll != nil {
		p.scroll.hold()
	}
}

// movePanel applies d to the panel. With a scrollable tracked scroll view
// the panel stops at its most expanded anchor and the part of d beyond it is
// returned.
func (p *Panel) movePanel(set AnchorSet, d float64) float64 {
	sign := set.Position().expandSign()
	most := set.MostExpanded().Offset
	raw := p.g.base + p.g.travel + d
	if sb := p.scroll; sb != nil && sb.scrollable() && d*sign > 0 && (raw-most)*sign > 0 {
		p.g.travel = most - p.g.base
		p.setOffset(most)
		return raw - most
	}

	p.g.travel += d
	base := set.Position().MainDimension(p.geometry.Size)
	p.setOffset(interactiveOffset(p.g.base+p.g.travel, p.reachable(set), p.behavior, base))
	return 0
}

func (p *Panel) rebase() {
	p.g.base = p.offset.Get()
	p.g.travel = 0
}

func (p *Panel) endGesture(velocity Vector) {
	if !p.g.active {
		debug.Log("EndGesture: no active gesture, ignoring")
		return
	}
	g := p.g
	p.g = gesture{}

	set := *p.anchors.Load()
	v := set.Position().MainLocation(velocity)
	panelV, scrollV := v, 0.0
	if g.route == routeScroll {
		panelV, scrollV = 0, v
	}

	offset := p.offset.Get()
	target := ResolveTarget(offset, panelV, set, g.from, p.behavior)
	if !set.Contains(target) {
		panic(fmt.Sprintf("panel: momentum policy chose %v outside %v", target, set))
	}
	if p.adjust != nil {
		target = p.adjust(velocity, target)
		if !set.Contains(target) {
			panic(fmt.Sprintf("panel: target adjuster chose %v: %v", target, ErrInvalidState))
		}
	}

	removing := false
	if p.removal && g.route == routePanel && p.shouldRemove(set, offset, panelV) {
		debug.Log("EndGesture: removal flick at %.1f with %.1f", offset, panelV)
		target, removing = Hidden, true
	}

	// Layout and geometry changes during the drag apply now, before the settle
	// starts.
	if p.layoutDirty {
		if err := p.resolve(); err != nil {
			debug.Log("EndGesture: deferred layout: %v", err)
			if !errors.Is(err, ErrGeometryUnavailable) && p.resolved != nil {
				p.swapLayout(p.resolved)
				p.layoutDirty = false
			}
		} else {
			set = *p.anchors.Load()
			if !set.Contains(target) {
				target = p.layout.InitialState()
			}
		}
	}

	if p.scroll != nil && target != set.MostExpanded().State {
		p.scroll.lock()
	}

	targetOffset := set.MustOffset(target)
	attract := targetOffset != p.offset.Get()
	debug.Log("EndGesture: %.1f with %.1f -> %v (attract %v)", offset, panelV, target, attract)
	p.events.Emit(GestureEndedEvent{
		Velocity:       velocity,
		Target:         target,
		Attract:        attract,
		ScrollVelocity: scrollV,
	})
	if p.secondary != nil {
		p.secondary(GestureInput{Kind: GestureEnded, Velocity: velocity, Translation: g.translation})
	}

	if !attract {
		p.phase.set(PhaseIdle)
		p.setState(target)
		p.syncScrollLock()
		if removing {
			p.events.Emit(RemovedEvent{})
		}
		return
	}
	p.startSettle(set, target, panelV, nil, removing)
}

// shouldRemove reports whether a release with velocity v at offset is fast
// enough toward the hidden anchor to remove the panel.
func (p *Panel) shouldRemove(set AnchorSet, offset, v float64) bool {
	dist := math.Abs(offset - set.MustOffset(Hidden))
	if dist == 0 {
		return false
	}
	rate := v / dist
	threshold := removalThreshold(p.behavior)
	switch set.Position() {
	case Top, Left:
		return rate <= -threshold
	default:
		return rate >= threshold
	}
}
