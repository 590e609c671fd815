package panel

import "sync"

// Value wraps a piece of engine state and notifies bindings when it changes.
//
// Get is safe to call from any goroutine. Set is only called by the Panel
// that owns the value, from inside one of its operations.
//
// Example usage:
//
//	p.StateValue().Bind(func(s panel.State) {
//	    fmt.Println("settled at", s)
//	})
type Value[T comparable] struct {
	mu       sync.RWMutex
	value    T
	bindings []*binding[T]
}

// binding represents a registered callback that fires when the value changes.
type binding[T any] struct {
	fn     func(T)
	active bool
}

// Unbind is a handle to remove a binding. Call it to prevent
// future callback invocations for the associated binding.
type Unbind func()

// NewValue creates a value holding initial.
func NewValue[T comparable](initial T) *Value[T] {
	return &Value[T]{value: initial}
}

// Get returns the current value.
func (v *Value[T]) Get() T {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.value
}

// set stores x and runs the bindings when it differs from the previous value.
// It reports whether the value changed.
func (v *Value[T]) set(x T) bool {
	v.mu.Lock()
	if v.value == x {
		v.mu.Unlock()
		return false
	}
	v.value = x
	// Drop inactive bindings while holding the lock.
	active := make([]*binding[T], 0, len(v.bindings))
	for _, b := range v.bindings {
		if b.active {
			active = append(active, b)
		}
	}
	v.bindings = active
	v.mu.Unlock()

	for _, b := range active {
		b.fn(x)
	}
	return true
}

// Bind registers a function to be called when the value changes.
// Returns an Unbind handle to remove the binding.
// Bindings are executed in registration order.
func (v *Value[T]) Bind(fn func(T)) Unbind {
	b := &binding[T]{
		fn:     fn,
		active: true,
	}

	v.mu.Lock()
	v.bindings = append(v.bindings, b)
	v.mu.Unlock()

	return func() {
		v.mu.Lock()
		b.active = false
		v.mu.Unlock()
	}
}
