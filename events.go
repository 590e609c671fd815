package panel

import "sync"

// Events is a simple event bus. It is generic over the event type T.
type Events[T any] struct {
	mu        sync.RWMutex
	listeners []*listener[T]
}

type listener[T any] struct {
	fn func(T)
}

// NewEvents creates a new event bus.
func NewEvents[T any]() *Events[T] {
	return &Events[T]{}
}

// Emit sends an event to all listeners in subscription order.
func (e *Events[T]) Emit(event T) {
	e.mu.RLock()
	listeners := e.listeners
	e.mu.RUnlock()

	for _, l := range listeners {
		l.fn(event)
	}
}

// Subscribe adds a listener for events. The returned Unbind removes it.
func (e *Events[T]) Subscribe(fn func(T)) Unbind {
	l := &listener[T]{fn: fn}
	e.mu.Lock()
	e.listeners = append(e.listeners, l)
	e.mu.Unlock()

	return func() {
		e.mu.Lock()
		defer e.mu.Unlock()
		kept := make([]*listener[T], 0, len(e.listeners))
		for _, other := range e.listeners {
			if other != l {
				kept = append(kept, other)
			}
		}
		e.listeners = kept
	}
}

// Event is implemented by every notification a Panel emits.
type Event interface {
	isEvent()
}

// MovedEvent is emitted on every change of the panel offset.
type MovedEvent struct {
	Offset float64
	Nearby State
}

// StateChangedEvent is emitted when the panel comes to rest in a different state.
type StateChangedEvent struct {
	From, To State
}

// GestureBeganEvent is emitted when a drag starts moving the panel.
type GestureBeganEvent struct {
	State  State
	Offset float64
}

// GestureEndedEvent is emitted when a drag is released.
type GestureEndedEvent struct {
	// Velocity is the release velocity reported by the input source.
	Velocity Vector
	// Target is the state the panel settles to.
	Target State
	// Attract is false when the panel already rests at Target.
	Attract bool
	// ScrollVelocity is the release velocity attributed to the tracked
	// scroll view when it was receiving the drag at release, zero otherwise.
	ScrollVelocity float64
}

// GestureCancelledEvent is emitted when MoveTo interrupts an active drag.
type GestureCancelledEvent struct {
	Offset float64
}

// SettleBeganEvent is emitted when playback toward Target starts.
type SettleBeganEvent struct {
	Target State
}

// SettleEndedEvent is emitted when playback stops. Finished is false when it
// was interrupted by a gesture or another move.
type SettleEndedEvent struct {
	Target   State
	Finished bool
}

// BackdropAlphaEvent is emitted when the backdrop alpha changes.
type BackdropAlphaEvent struct {
	Alpha float64
}

// LayoutChangedEvent is emitted after the anchors were re-resolved.
type LayoutChangedEvent struct {
	Anchors AnchorSet
}

// RemovedEvent is emitted when a removal flick finished hiding the panel.
type RemovedEvent struct{}

func (MovedEvent) isEvent()            {}
func (StateChangedEvent) isEvent()     {}
func (GestureBeganEvent) isEvent()     {}
func (GestureEndedEvent) isEvent()     {}
func (GestureCancelledEvent) isEvent() {}
func (SettleBeganEvent) isEvent()      {}
func (SettleEndedEvent) isEvent()      {}
func (BackdropAlphaEvent) isEvent()    {}
func (LayoutChangedEvent) isEvent()    {}
func (RemovedEvent) isEvent()          {}
