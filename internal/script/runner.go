package script

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	panel "github.com/grindlemire/go-panel"
	"github.com/grindlemire/go-panel/internal/config"
	"github.com/grindlemire/go-panel/internal/debug"
)

// ErrExpectation is wrapped by the error of a failed expect step.
var ErrExpectation = errors.New("expectation failed")

const (
	defaultInterval  = 8 * time.Millisecond
	defaultTolerance = 0.5
	// maxSettle bounds a settle step in virtual time.
	maxSettle = 30 * time.Second
)

// epoch anchors the virtual clock.
var epoch = time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)

// run is the state of one replay.
type run struct {
	s      *Script
	p      *panel.Panel
	sv     *MemoryScrollView
	states map[string]panel.State
	frame  time.Duration
	now    time.Duration
	trace  *Trace
}

// Run replays s with the tunables of cfg. The trace is returned even when a
// step fails.
func Run(ctx context.Context, s *Script, cfg config.Config) (*Trace, error) {
	l, err := s.layout()
	if err != nil {
		return nil, fmt.Errorf("%s: layout: %w", s.Name, err)
	}

	r := &run{
		s:      s,
		states: states(l),
		frame:  s.Frame,
		trace:  &Trace{Name: s.Name, Position: l.Position()},
	}
	if r.frame == 0 {
		r.frame = cfg.FrameInterval()
	}

	opts := append(cfg.Options(), panel.WithGeometry(s.Geometry.Geometry()))
	if b := behaviors[s.Behavior]; b != nil {
		opts = append(opts, panel.WithBehavior(b))
	}
	if s.Removal {
		opts = append(opts, panel.WithRemovalInteraction(true))
	}
	if s.Scroll != nil {
		r.sv = NewMemoryScrollView(s.Scroll.Content, s.Scroll.Viewport, s.Scroll.Offset)
		opts = append(opts, panel.WithScrollView(r.sv))
	}

	p, err := panel.New(l, opts...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", s.Name, err)
	}
	r.p = p
	p.Events().Subscribe(r.record)
	r.sample()

	for i, st := range s.Steps {
		if err := ctx.Err(); err != nil {
			return r.finish(), err
		}
		if err := r.step(st); err != nil {
			return r.finish(), fmt.Errorf("%s: step %d (%s): %w", s.Name, i+1, st.kind(), err)
		}
	}
	return r.finish(), nil
}

func (r *run) at() time.Time { return epoch.Add(r.now) }

func (r *run) record(e panel.Event) {
	r.trace.Events = append(r.trace.Events, TimedEvent{At: r.now, Event: e})
	switch e.(type) {
	case panel.MovedEvent, panel.StateChangedEvent, panel.BackdropAlphaEvent:
		r.sample()
	case panel.RemovedEvent:
		r.trace.Removed = true
	}
}

func (r *run) sample() {
	smp := Sample{
		At:     r.now,
		Offset: r.p.Offset(),
		State:  r.p.State(),
		Nearby: r.p.NearbyState(),
		Phase:  r.p.Phase(),
		Alpha:  r.p.BackdropAlpha(),
	}
	if r.sv != nil {
		smp.Content = r.sv.ContentOffset()
	}
	r.trace.Samples = append(r.trace.Samples, smp)
}

func (r *run) finish() *Trace {
	r.sample()
	r.trace.Duration = r.now
	if set, ok := r.p.Anchors(); ok {
		r.trace.Anchors = set.Points()
		if !set.Declared(panel.Hidden) {
			h := panel.AnchorPoint{State: panel.Hidden, Offset: set.MustOffset(panel.Hidden)}
			if h.Offset < set.Min() {
				r.trace.Anchors = append([]panel.AnchorPoint{h}, r.trace.Anchors...)
			} else {
				r.trace.Anchors = append(r.trace.Anchors, h)
			}
		}
	}
	return r.trace
}

func (r *run) step(st Step) error {
	switch st.kind() {
	case "drag":
		r.drag(st)
	case "move":
		s, ok := r.states[st.Move]
		if !ok {
			return fmt.Errorf("unknown state %q", st.Move)
		}
		return r.p.MoveTo(s, st.Animated, nil)
	case "wait":
		for elapsed := time.Duration(0); elapsed < st.Wait; elapsed += r.frame {
			r.tick()
		}
	case "settle":
		for start := r.now; r.p.Phase() == panel.PhaseSettling; {
			if r.now-start > maxSettle {
				return fmt.Errorf("panel did not settle within %v", maxSettle)
			}
			r.tick()
		}
	case "resize":
		return r.p.SetGeometry(st.Resize.Geometry())
	case "scroll-to":
		r.sv.SetContentOffset(*st.ScrollTo)
	case "expect":
		return r.expect(*st.Expect)
	}
	return nil
}

func (r *run) tick() {
	r.now += r.frame
	r.p.Tick(r.frame)
}

func (r *run) drag(st Step) {
	interval := st.Interval
	if interval == 0 {
		interval = defaultInterval
	}
	pos := r.trace.Position

	r.p.BeginGesture(r.at())
	for _, d := range st.Drag {
		r.now += interval
		r.p.UpdateGesture(pos.Vector(d), r.at())
	}
	if st.Release == nil {
		debug.Log("script: estimating release velocity")
		r.p.EndGestureEstimated()
		return
	}
	r.p.EndGesture(pos.Vector(*st.Release))
}

func (r *run) expect(e Expectation) error {
	tol := e.Tolerance
	if tol == 0 {
		tol = defaultTolerance
	}
	var failures []string
	check := func(name string, got float64, want *float64) {
		if want != nil && math.Abs(got-*want) > tol {
			failures = append(failures, fmt.Sprintf("%s = %.2f, want %.2f", name, got, *want))
		}
	}

	if e.State != "" {
		want, ok := r.states[e.State]
		switch {
		case !ok:
			failures = append(failures, fmt.Sprintf("unknown state %q", e.State))
		case r.p.State() != want:
			failures = append(failures, fmt.Sprintf("state = %v, want %v", r.p.State(), want))
		}
	}
	check("offset", r.p.Offset(), e.Offset)
	check("alpha", r.p.BackdropAlpha(), e.Alpha)
	if r.sv != nil {
		check("content offset", r.sv.ContentOffset(), e.ContentOffset)
	} else if e.ContentOffset != nil {
		failures = append(failures, "content offset expected without a scroll view")
	}
	if e.Removed != nil && *e.Removed != r.trace.Removed {
		failures = append(failures, fmt.Sprintf("removed = %v, want %v", r.trace.Removed, *e.Removed))
	}

	if len(failures) > 0 {
		return fmt.Errorf("%w: %s", ErrExpectation, strings.Join(failures, "; "))
	}
	return nil
}
