package panel

import (
	"fmt"
	"time"

	"github.com/grindlemire/go-panel/internal/debug"
)

// MoveTo moves the panel to state s, cancelling any drag or settle in
// progress. Animated moves settle through Tick; the others apply at once.
// onComplete, when non-nil, runs once the panel rests at s.
//
// It returns ErrInvalidState when s is not anchored by the layout; the panel
// is left untouched. Before the anchors are resolved the move is kept and
// applied on resolution.
func (p *Panel) MoveTo(s State, animated bool, onComplete func()) error {
	set := p.anchors.Load()
	if (set != nil && !set.Contains(s)) || (set == nil && !p.declares(s)) {
		return fmt.Errorf("move to %v: %w", s, ErrInvalidState)
	}
	p.do(func() { p.moveTo(s, animated, onComplete) })
	return nil
}

// Tick advances an in-flight settle by dt. It does nothing otherwise.
func (p *Panel) Tick(dt time.Duration) {
	p.do(func() { p.tick(dt) })
}

func (p *Panel) moveTo(s State, animated bool, onComplete func()) {
	set := p.anchors.Load()
	if set == nil {
		if !p.declares(s) {
			debug.Log("MoveTo: %v: %v", s, ErrInvalidState)
			return
		}
		debug.Log("MoveTo: layout not resolved, keeping move to %v", s)
		p.pendingMove = &pendingMove{state: s, animated: animated, onComplete: onComplete}
		return
	}
	if !set.Contains(s) {
		// The layout changed since the move was submitted.
		debug.Log("MoveTo: %v: %v", s, ErrInvalidState)
		return
	}

	if p.g.active {
		debug.Log("MoveTo: cancelling drag at %.1f", p.offset.Get())
		p.g = gesture{}
		p.events.Emit(GestureCancelledEvent{Offset: p.offset.Get()})
	}
	if old := p.settle; old != nil {
		p.settle = nil
		p.events.Emit(SettleEndedEvent{Target: old.target, Finished: false})
	}
	if p.scroll != nil && s != set.MostExpanded().State {
		p.scroll.lock()
	}

	target := set.MustOffset(s)
	if animated && target != p.offset.Get() {
		p.startSettle(*set, s, 0, onComplete, false)
		return
	}

	p.phase.set(PhaseIdle)
	p.setOffset(target)
	p.setState(s)
	p.syncScrollLock()
	p.updateAlpha()
	if onComplete != nil {
		onComplete()
	}
}

func (p *Panel) startSettle(set AnchorSet, target State, velocity float64, onComplete func(), removing bool) {
	p.settle = &settle{target: target, onComplete: onComplete, removing: removing}
	p.phase.set(PhaseSettling)
	debug.Log("settle: %.1f -> %v@%.1f with %.1f", p.offset.Get(), target, set.MustOffset(target), velocity)
	p.events.Emit(SettleBeganEvent{Target: target})
	p.animator.Start(p.offset.Get(), set.MustOffset(target), velocity)
	p.updateAlpha()
}

func (p *Panel) tick(dt time.Duration) {
	s := p.settle
	if s == nil || p.phase.Get() != PhaseSettling {
		return
	}
	off, done := p.animator.Step(dt)
	if done {
		off = p.anchors.Load().MustOffset(s.target)
	}
	p.setOffset(off)
	if done {
		p.finishSettle()
	}
}

func (p *Panel) finishSettle() {
	s := p.settle
	p.settle = nil
	p.phase.set(PhaseIdle)
	p.setState(s.target)
	debug.Log("settle: finished at %v", s.target)
	p.events.Emit(SettleEndedEvent{Target: s.target, Finished: true})
	p.syncScrollLock()
	p.updateAlpha()
	if s.removing {
		p.events.Emit(RemovedEvent{})
	}
	if s.onComplete != nil {
		s.onComplete()
	}
}

// declares reports whether the current layout anchors s.
func (p *Panel) declares(s State) bool {
	p.layoutMu.RLock()
	defer p.layoutMu.RUnlock()
	if s == Hidden {
		return true
	}
	_, ok := p.layout.Anchors()[s]
	return ok
}
