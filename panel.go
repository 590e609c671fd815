package panel

import (
	"errors"
	"fmt"
	"math"
	"sync"
	"sync/atomic"
	"time"

	"github.com/grindlemire/go-panel/internal/debug"
	"github.com/grindlemire/go-panel/internal/fling"
)

// Phase is the interaction phase of a Panel.
type Phase uint8

const (
	// PhaseIdle means the panel rests at its State.
	PhaseIdle Phase = iota
	// PhaseDragging means a gesture moves the panel.
	PhaseDragging
	// PhaseSettling means playback carries the panel to a target state.
	PhaseSettling
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseDragging:
		return "dragging"
	case PhaseSettling:
		return "settling"
	default:
		return "unknown"
	}
}

type route uint8

const (
	routePanel route = iota
	routeScroll
)

func (r route) String() string {
	if r == routeScroll {
		return "scroll"
	}
	return "panel"
}

// gesture is the bookkeeping of one live drag.
type gesture struct {
	active bool
	from   State
	route  route
	// base is the panel offset when deltas last started going to the
	// panel; travel accumulates those deltas since.
	base, travel float64
	// translation is the pointer movement since the gesture began.
	translation Vector
	tracker     fling.Tracker
	start       time.Time
}

type settle struct {
	target     State
	onComplete func()
	removing   bool
}

type pendingMove struct {
	state      State
	animated   bool
	onComplete func()
}

// Panel is the interaction state machine of one floating panel. It owns the
// panel offset and the lock of the tracked scroll view.
//
// Operations (gestures, moves, ticks, geometry changes) are serialized: an
// operation submitted while another is running, from a listener or from
// another goroutine, is queued and runs after it. Getters may be called from
// any goroutine.
type Panel struct {
	opMu    sync.Mutex
	running bool
	pending []func()

	layoutMu sync.RWMutex // guards layout for readers outside operations
	layout   Layout
	behavior Behavior
	animator Animator
	provider GeometryProvider
	geometry Geometry
	scale    float64

	shouldBegin func(*Panel) bool
	adjust      TargetAdjuster
	secondary   func(GestureInput)
	removal     bool

	anchors     atomic.Pointer[AnchorSet]
	resolved    Layout // the layout anchors was resolved from
	layoutDirty bool
	pendingMove *pendingMove

	offset *Value[float64]
	state  *Value[State]
	nearby *Value[State]
	alpha  *Value[float64]
	phase  *Value[Phase]
	events *Events[Event]

	g      gesture
	settle *settle
	scroll *scrollBinding
}

// New creates a panel for layout l. Without geometry the anchors stay
// unresolved until SetGeometry or InvalidateLayout provides it.
func New(l Layout, opts ...Option) (*Panel, error) {
	if err := validateLayout(l); err != nil {
		return nil, err
	}

	initial := l.InitialState()
	p := &Panel{
		layout:   l,
		behavior: DefaultBehavior{},
		scale:    2,
		offset:   NewValue(0.0),
		state:    NewValue(initial),
		nearby:   NewValue(initial),
		alpha:    NewValue(0.0),
		phase:    NewValue(PhaseIdle),
		events:   NewEvents[Event](),
	}

	for _, opt := range opts {
		if err := opt(p); err != nil {
			return nil, err
		}
	}

	if p.animator == nil {
		p.animator = NewSpringAnimator(p.behavior, p.scale)
	}
	if p.provider != nil {
		if g, ok := p.provider.Geometry(); ok {
			p.geometry = g
		}
	}
	if err := p.resolve(); err != nil && !errors.Is(err, ErrGeometryUnavailable) {
		return nil, err
	}
	return p, nil
}

func validateLayout(l Layout) error {
	if l == nil {
		return fmt.Errorf("nil layout: %w", ErrNoAnchors)
	}
	decl := l.Anchors()
	if len(decl) == 0 {
		return ErrNoAnchors
	}
	if _, ok := decl[l.InitialState()]; !ok && l.InitialState() != Hidden {
		return fmt.Errorf("%w: %v", ErrInvalidInitialState, l.InitialState())
	}
	return nil
}

// do runs op now, or queues it behind the operation in progress. It reports
// whether op ran before returning.
func (p *Panel) do(op func()) bool {
	p.opMu.Lock()
	if p.running {
		p.pending = append(p.pending, op)
		p.opMu.Unlock()
		return false
	}
	p.running = true
	p.opMu.Unlock()

	defer func() {
		if r := recover(); r != nil {
			p.opMu.Lock()
			p.running = false
			p.pending = nil
			p.opMu.Unlock()
			panic(r)
		}
	}()

	for {
		op()
		p.opMu.Lock()
		if len(p.pending) == 0 {
			p.running = false
			p.opMu.Unlock()
			return true
		}
		op = p.pending[0]
		p.pending = p.pending[1:]
		p.opMu.Unlock()
	}
}

// doErr is do for operations that report an error. A queued operation
// returns nil; its error is logged when it runs.
func (p *Panel) doErr(name string, op func() error) error {
	var err error
	ran := p.do(func() {
		err = op()
		if err != nil {
			debug.Log("Panel.%s: %v", name, err)
		}
	})
	if !ran {
		return nil
	}
	return err
}

// Offset returns the current panel offset along the travel axis.
func (p *Panel) Offset() float64 { return p.offset.Get() }

// State returns the state the panel last came to rest at.
func (p *Panel) State() State { return p.state.Get() }

// NearbyState returns the state whose anchor is closest to the offset.
func (p *Panel) NearbyState() State { return p.nearby.Get() }

// Phase returns the interaction phase.
func (p *Panel) Phase() Phase { return p.phase.Get() }

// BackdropAlpha returns the current backdrop alpha.
func (p *Panel) BackdropAlpha() float64 { return p.alpha.Get() }

// Anchors returns the resolved anchors. ok is false until geometry is known.
func (p *Panel) Anchors() (AnchorSet, bool) {
	set := p.anchors.Load()
	if set == nil {
		return AnchorSet{}, false
	}
	return *set, true
}

// OffsetValue exposes the offset as an observable.
func (p *Panel) OffsetValue() *Value[float64] { return p.offset }

// StateValue exposes the resting state as an observable.
func (p *Panel) StateValue() *Value[State] { return p.state }

// NearbyValue exposes the nearby state as an observable.
func (p *Panel) NearbyValue() *Value[State] { return p.nearby }

// AlphaValue exposes the backdrop alpha as an observable.
func (p *Panel) AlphaValue() *Value[float64] { return p.alpha }

// Layout returns the current layout.
func (p *Panel) Layout() Layout {
	p.layoutMu.RLock()
	defer p.layoutMu.RUnlock()
	return p.layout
}

// Events returns the panel's event stream.
func (p *Panel) Events() *Events[Event] { return p.events }

// SetGeometry updates the container geometry and re-resolves the anchors.
// During a drag the resolution waits for the release.
func (p *Panel) SetGeometry(g Geometry) error {
	return p.doErr("SetGeometry", func() error {
		old := p.geometry
		p.geometry = g
		if err := p.relayout(); err != nil {
			p.geometry = old
			return err
		}
		return nil
	})
}

// InvalidateLayout re-reads the geometry provider, if any, and re-resolves
// the anchors.
func (p *Panel) InvalidateLayout() error {
	return p.doErr("InvalidateLayout", func() error {
		old := p.geometry
		if p.provider != nil {
			if g, ok := p.provider.Geometry(); ok {
				p.geometry = g
			}
		}
		if err := p.relayout(); err != nil {
			p.geometry = old
			return err
		}
		return nil
	})
}

// SetLayout swaps the layout. When the current state is not part of the new
// layout the panel moves to the new initial state. A layout that does not
// resolve against the current geometry is rejected and the old one kept,
// also during a drag.
func (p *Panel) SetLayout(l Layout) error {
	if err := validateLayout(l); err != nil {
		return err
	}
	return p.doErr("SetLayout", func() error {
		old := p.layout
		p.swapLayout(l)
		if err := p.relayout(); err != nil {
			p.swapLayout(old)
			return err
		}
		return nil
	})
}

func (p *Panel) swapLayout(l Layout) {
	p.layoutMu.Lock()
	p.layout = l
	p.layoutMu.Unlock()
	if p.scroll != nil {
		p.scroll.position = l.Position()
	}
}

// TrackScrollView starts coordinating drags with sv, replacing any
// previously tracked scroll view.
func (p *Panel) TrackScrollView(sv ScrollView) {
	p.do(func() {
		if p.scroll != nil {
			p.scroll.unlock()
		}
		p.scroll = newScrollBinding(sv, p.layout.Position())
		if p.g.active {
			p.scroll.lock()
			return
		}
		p.syncScrollLock()
	})
}

// UntrackScrollView stops coordinating with the tracked scroll view. A drag
// in progress continues on the panel alone.
func (p *Panel) UntrackScrollView() {
	p.do(func() {
		if p.scroll == nil {
			return
		}
		p.scroll.unlock()
		p.scroll = nil
		if p.g.active && p.g.route == routeScroll {
			debug.Log("Panel: scroll view removed mid-drag, routing to panel")
			p.g.route = routePanel
			p.rebase()
		}
	})
}

// relayout resolves the anchors. During a drag the layout is only checked
// and the new anchors wait for the release.
func (p *Panel) relayout() error {
	if p.g.active {
		if _, err := Resolve(p.layout, p.geometry); err != nil && !errors.Is(err, ErrGeometryUnavailable) {
			return err
		}
		debug.Log("Panel: layout invalidated during drag, deferring")
		p.layoutDirty = true
		return nil
	}
	if err := p.resolve(); err != nil && !errors.Is(err, ErrGeometryUnavailable) {
		return err
	}
	return nil
}

// resolve recomputes the anchors and moves the panel onto them.
func (p *Panel) resolve() error {
	set, err := Resolve(p.layout, p.geometry)
	if err != nil {
		if errors.Is(err, ErrGeometryUnavailable) {
			debug.Log("Panel: layout deferred: %v", err)
			p.layoutDirty = true
		}
		return err
	}
	p.layoutDirty = false
	p.resolved = p.layout
	p.anchors.Store(&set)
	debug.Log("Panel: resolved %v", set)
	p.events.Emit(LayoutChangedEvent{Anchors: set})

	state := p.state.Get()
	if !set.Contains(state) {
		state = p.layout.InitialState()
	}

	switch p.phase.Get() {
	case PhaseDragging:
		// The offset keeps following the finger.
	case PhaseSettling:
		if !set.Contains(p.settle.target) {
			p.settle.target = state
		}
		p.animator.Start(p.offset.Get(), set.MustOffset(p.settle.target), 0)
	default:
		p.setOffset(set.MustOffset(state))
		p.setState(state)
		p.syncScrollLock()
	}
	p.updateAlpha()

	if pm := p.pendingMove; pm != nil {
		p.pendingMove = nil
		p.moveTo(pm.state, pm.animated, pm.onComplete)
	}
	return nil
}

func (p *Panel) setOffset(off float64) {
	if !p.offset.set(off) {
		return
	}
	nearby := p.reachable(*p.anchors.Load()).Nearest(off)
	p.nearby.set(nearby)
	p.events.Emit(MovedEvent{Offset: off, Nearby: nearby})
	p.updateAlpha()
}

func (p *Panel) setState(s State) {
	prev := p.state.Get()
	if p.state.set(s) {
		debug.Log("Panel: state %v -> %v", prev, s)
		if set := p.anchors.Load(); set != nil {
			p.nearby.set(p.reachable(*set).Nearest(p.offset.Get()))
		}
		p.events.Emit(StateChangedEvent{From: prev, To: s})
		p.updateAlpha()
	}
}

func (p *Panel) updateAlpha() {
	set := p.anchors.Load()
	if set == nil {
		return
	}
	if p.alpha.set(BackdropAlphaAt(p.offset.Get(), p.reachable(*set), p.resolved)) {
		p.events.Emit(BackdropAlphaEvent{Alpha: p.alpha.Get()})
	}
}

// atMostExpanded reports whether the panel is within a pixel of its most
// expanded anchor.
func (p *Panel) atMostExpanded(set AnchorSet) bool {
	return math.Abs(p.offset.Get()-set.MostExpanded().Offset) <= 1/p.scale
}

// syncScrollLock frees the scroll view when the panel rests fully expanded
// and pins it otherwise.
func (p *Panel) syncScrollLock() {
	set := p.anchors.Load()
	if p.scroll == nil || set == nil {
		return
	}
	if p.state.Get() == set.MostExpanded().State && p.atMostExpanded(*set) {
		p.scroll.unlock()
	} else {
		p.scroll.lock()
	}
}

// reachable adds the implicit Hidden anchor to set while the panel rests at,
// settles to, or is dragged from Hidden.
func (p *Panel) reachable(set AnchorSet) AnchorSet {
	if p.state.Get() == Hidden || (p.settle != nil && p.settle.target == Hidden) || (p.g.active && p.g.from == Hidden) {
		return set.withHidden()
	}
	return set
}
