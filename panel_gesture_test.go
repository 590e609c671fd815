package panel

import (
	"math"
	"reflect"
	"testing"
	"time"
)

var t0 = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

// dragBy runs a full drag of deltas along y released at velocity.
func dragBy(p *Panel, velocity float64, deltas ...float64) {
	p.BeginGesture(t0)
	for i, d := range deltas {
		p.UpdateGesture(Vector{Y: d}, t0.Add(time.Duration(i+1)*8*time.Millisecond))
	}
	p.EndGesture(Vector{Y: velocity})
}

// kinds returns the event type names with consecutive repeats collapsed.
func kinds(r *recorder) []string {
	var out []string
	for _, e := range r.events {
		name := reflect.TypeOf(e).Name()
		if len(out) > 0 && out[len(out)-1] == name {
			continue
		}
		out = append(out, name)
	}
	return out
}

func TestGesture_Release(t *testing.T) {
	type tc struct {
		start    State
		deltas   []float64
		velocity float64
		behavior Behavior
		expected State
	}

	tests := map[string]tc{
		"flick down to tip":          {start: Half, deltas: []float64{100}, velocity: 1000, expected: Tip},
		"flick up to full":           {start: Half, deltas: []float64{-40}, velocity: -1000, expected: Full},
		"short drag returns":         {start: Half, deltas: []float64{30}, expected: Half},
		"long drag passes midpoint":  {start: Half, deltas: []float64{60, 60}, expected: Tip},
		"hard flick stops at half":   {start: Full, deltas: []float64{10}, velocity: 3000, expected: Half},
		"hard flick projects to tip": {start: Full, deltas: []float64{10}, velocity: 3000, behavior: ProjectableBehavior{}, expected: Tip},
		"flick against drag":         {start: Half, deltas: []float64{100}, velocity: -800, expected: Half},
		"pulled above full flung up": {start: Full, deltas: []float64{-600}, velocity: -2000, expected: Full},
		"pulled below tip flung up":  {start: Tip, deltas: []float64{400}, velocity: -3000, expected: Half},
		"between half and tip flung": {start: Half, deltas: []float64{10}, velocity: -3000, expected: Half},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			var opts []Option
			if tt.behavior != nil {
				opts = append(opts, WithBehavior(tt.behavior))
			}
			p := newTestPanel(t, opts...)
			p.MoveTo(tt.start, false, nil)

			dragBy(p, tt.velocity, tt.deltas...)
			settleAll(t, p)

			if p.State() != tt.expected {
				t.Errorf("State() = %v, want %v", p.State(), tt.expected)
			}
			set, _ := p.Anchors()
			if p.Offset() != set.MustOffset(tt.expected) {
				t.Errorf("Offset() = %v, want the %v anchor", p.Offset(), tt.expected)
			}
		})
	}
}

func TestGesture_EventOrder(t *testing.T) {
	p := newTestPanel(t)
	r := record(p)

	dragBy(p, 1000, 100)
	settleAll(t, p)

	want := []string{
		"GestureBeganEvent", "MovedEvent", "GestureEndedEvent", "SettleBeganEvent",
		"MovedEvent", "StateChangedEvent", "SettleEndedEvent",
	}
	if got := kinds(r); !reflect.DeepEqual(got, want) {
		t.Errorf("events = %v, want %v", got, want)
	}

	ended := of[GestureEndedEvent](r)
	if len(ended) != 1 || ended[0].Target != Tip || !ended[0].Attract || ended[0].ScrollVelocity != 0 {
		t.Errorf("GestureEndedEvent = %+v", ended)
	}
	if began := of[GestureBeganEvent](r); began[0] != (GestureBeganEvent{State: Half, Offset: 417}) {
		t.Errorf("GestureBeganEvent = %+v", began[0])
	}
}

func TestGesture_ReturnKeepsState(t *testing.T) {
	p := newTestPanel(t)
	r := record(p)

	dragBy(p, 0, 30)
	if p.Phase() != PhaseSettling {
		t.Fatalf("Phase() = %v, want settling", p.Phase())
	}
	settleAll(t, p)

	if p.Offset() != 417 {
		t.Errorf("Offset() = %v, want 417", p.Offset())
	}
	if n := len(of[StateChangedEvent](r)); n != 0 {
		t.Errorf("%d state changes, want none", n)
	}
}

func TestGesture_ReleaseOnAnchor(t *testing.T) {
	p := newTestPanel(t)
	r := record(p)

	dragBy(p, 0, 190)

	if p.Phase() != PhaseIdle {
		t.Errorf("Phase() = %v, want idle", p.Phase())
	}
	if p.State() != Tip {
		t.Errorf("State() = %v, want tip", p.State())
	}
	ended := of[GestureEndedEvent](r)
	if len(ended) != 1 || ended[0].Attract {
		t.Errorf("GestureEndedEvent = %+v, want no attraction", ended)
	}
	if n := len(of[SettleBeganEvent](r)); n != 0 {
		t.Errorf("%d settles started, want none", n)
	}
}

func TestGesture_RubberBand(t *testing.T) {
	type tc struct {
		behavior Behavior
		start    State
		delta    float64
		expected float64
	}

	tests := map[string]tc{
		"past full":              {behavior: DefaultBehavior{}, start: Full, delta: -200, expected: 20 - 94.42728442728443},
		"past tip":               {behavior: DefaultBehavior{}, start: Tip, delta: 200, expected: 607 + 94.42728442728443},
		"past full without band": {behavior: TunableBehavior{NoRubberBand: true}, start: Full, delta: -200, expected: 20},
		"past tip without band":  {behavior: TunableBehavior{NoRubberBand: true}, start: Tip, delta: 200, expected: 607},
		"inside range is linear": {behavior: DefaultBehavior{}, start: Full, delta: 100, expected: 120},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			p := newTestPanel(t, WithBehavior(tt.behavior))
			p.MoveTo(tt.start, false, nil)

			p.BeginGesture(t0)
			p.UpdateGesture(Vector{Y: tt.delta}, t0)

			if got := p.Offset(); math.Abs(got-tt.expected) > 1e-9 {
				t.Errorf("Offset() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestGesture_InterruptSettle(t *testing.T) {
	p := newTestPanel(t)
	r := record(p)

	p.MoveTo(Tip, true, nil)
	p.Tick(time.Second / 60)
	at := p.Offset()

	p.BeginGesture(t0)

	if p.Phase() != PhaseDragging {
		t.Fatalf("Phase() = %v, want dragging", p.Phase())
	}
	if p.State() != Tip {
		t.Errorf("State() = %v, want tip", p.State())
	}
	if p.Offset() != at {
		t.Errorf("Offset() = %v, want %v", p.Offset(), at)
	}
	ended := of[SettleEndedEvent](r)
	if len(ended) != 1 || ended[0] != (SettleEndedEvent{Target: Tip, Finished: false}) {
		t.Errorf("SettleEndedEvent = %+v", ended)
	}
	began := of[GestureBeganEvent](r)
	if len(began) != 1 || began[0].State != Tip || began[0].Offset != at {
		t.Errorf("GestureBeganEvent = %+v", began)
	}

	// A tick after the interruption must not move the panel.
	p.Tick(time.Second / 60)
	if p.Offset() != at {
		t.Errorf("Offset() after tick = %v, want %v", p.Offset(), at)
	}
}

func TestGesture_FromHidden(t *testing.T) {
	p := newTestPanel(t)
	p.MoveTo(Hidden, false, nil)
	r := record(p)

	p.BeginGesture(t0)
	p.UpdateGesture(Vector{Y: -1}, t0)
	p.EndGesture(Vector{})

	if p.Phase() != PhaseIdle || p.State() != Hidden {
		t.Errorf("panel = %v %v, want hidden idle", p.State(), p.Phase())
	}
	if p.Offset() != 767 {
		t.Errorf("Offset() = %v, want 767", p.Offset())
	}
	if len(r.events) != 0 {
		t.Errorf("events = %v, want none", r.events)
	}
}

func TestGesture_InterruptSettleToHidden(t *testing.T) {
	p := newTestPanel(t)

	p.MoveTo(Hidden, true, nil)
	for i := 0; i < 3; i++ {
		p.Tick(time.Second / 60)
	}
	if p.Offset() != 679.5 {
		t.Fatalf("Offset() = %v, want 679.5", p.Offset())
	}

	p.BeginGesture(t0)
	p.UpdateGesture(Vector{Y: -1}, t0)

	if p.Offset() != 678.5 {
		t.Errorf("Offset() after 1 point drag = %v, want 678.5", p.Offset())
	}
	if p.State() != Hidden {
		t.Errorf("State() = %v, want hidden", p.State())
	}
}

func TestGesture_WithoutBegin(t *testing.T) {
	p := newTestPanel(t)
	r := record(p)

	p.UpdateGesture(Vector{Y: 50}, t0)
	p.EndGesture(Vector{Y: 1000})
	p.EndGestureEstimated()

	if len(r.events) != 0 {
		t.Errorf("events = %v, want none", r.events)
	}
	if p.Offset() != 417 || p.Phase() != PhaseIdle {
		t.Errorf("panel moved to %v (%v)", p.Offset(), p.Phase())
	}
}

func TestGesture_ShouldBeginDragging(t *testing.T) {
	allow := false
	p := newTestPanel(t, WithShouldBeginDragging(func(*Panel) bool { return allow }))
	r := record(p)

	dragBy(p, 1000, 100)
	if len(r.events) != 0 || p.Offset() != 417 {
		t.Errorf("rejected gesture moved the panel: %v", r.events)
	}

	allow = true
	dragBy(p, 1000, 100)
	settleAll(t, p)
	if p.State() != Tip {
		t.Errorf("State() = %v, want tip", p.State())
	}
}

func TestGesture_TargetAdjuster(t *testing.T) {
	var gotVelocity Vector
	var gotProposed State
	p := newTestPanel(t, WithTargetAdjuster(func(v Vector, proposed State) State {
		gotVelocity, gotProposed = v, proposed
		return Full
	}))

	dragBy(p, 1000, 100)
	settleAll(t, p)

	if gotProposed != Tip || gotVelocity != (Vector{Y: 1000}) {
		t.Errorf("adjuster saw %v %v, want tip {0 1000}", gotProposed, gotVelocity)
	}
	if p.State() != Full {
		t.Errorf("State() = %v, want full", p.State())
	}
}

func TestGesture_TargetAdjusterInvalid(t *testing.T) {
	p := newTestPanel(t, WithTargetAdjuster(func(Vector, State) State {
		return NewState("elsewhere", 300)
	}))

	defer func() {
		if recover() == nil {
			t.Error("EndGesture() did not panic on an unanchored target")
		}
		// The operation queue is usable after the panic.
		if err := p.MoveTo(Full, false, nil); err != nil || p.State() != Full {
			t.Errorf("MoveTo() after panic: %v, state %v", err, p.State())
		}
	}()
	dragBy(p, 1000, 100)
}

func TestGesture_Removal(t *testing.T) {
	type tc struct {
		enabled  bool
		velocity float64
		expected State
		removed  bool
	}

	tests := map[string]tc{
		"fast flick removes":  {enabled: true, velocity: 3000, expected: Hidden, removed: true},
		"slow flick does not": {enabled: true, velocity: 1000, expected: Tip},
		"disabled":            {enabled: false, velocity: 3000, expected: Tip},
		"flick away does not": {enabled: true, velocity: -3000, expected: Half},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			p := newTestPanel(t, WithRemovalInteraction(tt.enabled))
			r := record(p)

			dragBy(p, tt.velocity, 10)
			settleAll(t, p)

			if p.State() != tt.expected {
				t.Errorf("State() = %v, want %v", p.State(), tt.expected)
			}
			removed := of[RemovedEvent](r)
			if (len(removed) == 1) != tt.removed {
				t.Errorf("removed events = %d, want removed %v", len(removed), tt.removed)
			}
			if tt.removed {
				if p.Offset() != 767 || p.BackdropAlpha() != 0 {
					t.Errorf("removed panel at %v alpha %v", p.Offset(), p.BackdropAlpha())
				}
				if _, ok := r.events[len(r.events)-1].(RemovedEvent); !ok {
					t.Errorf("last event = %T, want RemovedEvent", r.events[len(r.events)-1])
				}
			}
		})
	}
}

func TestGesture_EstimatedVelocity(t *testing.T) {
	p := newTestPanel(t)
	r := record(p)

	p.BeginGesture(t0)
	for i := 1; i <= 10; i++ {
		p.UpdateGesture(Vector{Y: 8}, t0.Add(time.Duration(i)*8*time.Millisecond))
	}
	p.EndGestureEstimated()
	settleAll(t, p)

	ended := of[GestureEndedEvent](r)
	if len(ended) != 1 {
		t.Fatalf("GestureEndedEvent count = %d, want 1", len(ended))
	}
	if v := ended[0].Velocity.Y; math.Abs(v-1000) > 1e-3 {
		t.Errorf("estimated velocity = %v, want 1000", v)
	}
	if p.State() != Tip {
		t.Errorf("State() = %v, want tip", p.State())
	}
}

func TestGesture_SecondaryHandler(t *testing.T) {
	var (
		got   []GestureKind
		moved []float64
	)
	p := newTestPanel(t, WithGestureHandler(func(in GestureInput) {
		got = append(got, in.Kind)
		moved = append(moved, in.Translation.Y)
	}))

	dragBy(p, 0, 10, 10)

	want := []GestureKind{GestureBegan, GestureChanged, GestureChanged, GestureEnded}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("secondary handler saw %v, want %v", got, want)
	}
	if wantMoved := []float64{0, 10, 20, 20}; !reflect.DeepEqual(moved, wantMoved) {
		t.Errorf("translations = %v, want %v", moved, wantMoved)
	}
}

func TestGesture_GeometryChangeDeferred(t *testing.T) {
	p := newTestPanel(t)

	p.BeginGesture(t0)
	p.UpdateGesture(Vector{Y: 20}, t0)

	if err := p.SetGeometry(Geometry{Size: Size{Width: 375, Height: 800}}); err != nil {
		t.Fatalf("SetGeometry() error = %v", err)
	}
	set, _ := p.Anchors()
	if got := set.MustOffset(Half); got != 417 {
		t.Errorf("half anchor during drag = %v, want 417", got)
	}
	if p.Offset() != 437 {
		t.Errorf("Offset() = %v, want 437", p.Offset())
	}

	p.EndGesture(Vector{})
	settleAll(t, p)

	if p.State() != Half || p.Offset() != 550 {
		t.Errorf("after release: %v at %v, want half at 550", p.State(), p.Offset())
	}
}

func TestGesture_MoveToCancelsDrag(t *testing.T) {
	p := newTestPanel(t)
	r := record(p)

	p.BeginGesture(t0)
	p.UpdateGesture(Vector{Y: 50}, t0)
	p.MoveTo(Full, false, nil)

	cancelled := of[GestureCancelledEvent](r)
	if len(cancelled) != 1 || cancelled[0].Offset != 467 {
		t.Errorf("GestureCancelledEvent = %+v, want one at 467", cancelled)
	}
	if p.State() != Full || p.Phase() != PhaseIdle {
		t.Errorf("panel = %v %v, want full idle", p.State(), p.Phase())
	}

	p.UpdateGesture(Vector{Y: 50}, t0)
	if p.Offset() != 20 {
		t.Errorf("update after cancel moved the panel to %v", p.Offset())
	}
}

func TestGesture_HorizontalPanel(t *testing.T) {
	l := NewLayout(Left, Half, map[State]Anchor{
		Full: AbsoluteInset(20, EdgeRight, GuideSuperview),
		Half: FractionalInset(0.5, EdgeLeft, GuideSuperview),
		Tip:  AbsoluteInset(40, EdgeLeft, GuideSuperview),
	})
	p, err := New(l, WithGeometry(Geometry{Size: Size{Width: 400, Height: 800}}), WithAnimator(&stepAnimator{steps: 2}))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if p.Offset() != 200 {
		t.Fatalf("Offset() = %v, want 200", p.Offset())
	}

	p.BeginGesture(t0)
	p.UpdateGesture(Vector{X: 60, Y: -500}, t0)
	if p.Offset() != 260 {
		t.Errorf("Offset() = %v, want 260", p.Offset())
	}
	p.EndGesture(Vector{X: 1000})
	settleAll(t, p)

	if p.State() != Full || p.Offset() != 380 {
		t.Errorf("panel = %v at %v, want full at 380", p.State(), p.Offset())
	}
}
