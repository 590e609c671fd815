package panel

import "fmt"

// State is a named resting position of the panel. Order sorts states along
// the travel axis: a larger order is a more expanded state.
type State struct {
	name  string
	order int
}

// Built-in states.
var (
	Full   = State{name: "full", order: 1000}
	Half   = State{name: "half", order: 500}
	Tip    = State{name: "tip", order: 100}
	Hidden = State{name: "hidden", order: 0}
)

// NewState declares a custom state.
func NewState(name string, order int) State {
	return State{name: name, order: order}
}

// Name returns the state's name.
func (s State) Name() string { return s.name }

// Order returns the state's order.
func (s State) Order() int { return s.order }

// IsZero reports whether s is the zero State.
func (s State) IsZero() bool { return s == State{} }

func (s State) String() string {
	if s.IsZero() {
		return "<none>"
	}
	return s.name
}

// GoString includes the order, which distinguishes custom states sharing a name.
func (s State) GoString() string {
	return fmt.Sprintf("panel.State{%q, %d}", s.name, s.order)
}

// BuiltinStates returns the predefined states from most to least expanded.
func BuiltinStates() []State {
	return []State{Full, Half, Tip, Hidden}
}
