package script

import (
	"fmt"
	"time"

	panel "github.com/grindlemire/go-panel"
)

// Sample is the panel as seen at one instant of a run.
type Sample struct {
	At      time.Duration
	Offset  float64
	State   panel.State
	Nearby  panel.State
	Phase   panel.Phase
	Alpha   float64
	Content float64
}

// TimedEvent is an event and when it was emitted.
type TimedEvent struct {
	At    time.Duration
	Event panel.Event
}

// Trace is the record of one run.
type Trace struct {
	Name     string
	Position panel.Position
	// Anchors are the anchors at the end of the run, Hidden included.
	Anchors []panel.AnchorPoint
	Samples []Sample
	Events  []TimedEvent
	Removed bool
	// Duration is the virtual time the run took.
	Duration time.Duration
}

// Final returns the last sample.
func (t *Trace) Final() Sample {
	if len(t.Samples) == 0 {
		return Sample{}
	}
	return t.Samples[len(t.Samples)-1]
}

// Count returns how many events of the named kind were emitted.
func (t *Trace) Count(kind string) int {
	n := 0
	for _, e := range t.Events {
		if EventKind(e.Event) == kind {
			n++
		}
	}
	return n
}

// EventKind is a short name for the type of e.
func EventKind(e panel.Event) string {
	switch e.(type) {
	case panel.MovedEvent:
		return "moved"
	case panel.StateChangedEvent:
		return "state-changed"
	case panel.GestureBeganEvent:
		return "gesture-began"
	case panel.GestureEndedEvent:
		return "gesture-ended"
	case panel.GestureCancelledEvent:
		return "gesture-cancelled"
	case panel.SettleBeganEvent:
		return "settle-began"
	case panel.SettleEndedEvent:
		return "settle-ended"
	case panel.BackdropAlphaEvent:
		return "backdrop-alpha"
	case panel.LayoutChangedEvent:
		return "layout-changed"
	case panel.RemovedEvent:
		return "removed"
	default:
		return "unknown"
	}
}

// Describe renders e with its payload.
func Describe(e panel.Event) string {
	switch e := e.(type) {
	case panel.MovedEvent:
		return fmt.Sprintf("moved to %.1f near %v", e.Offset, e.Nearby)
	case panel.StateChangedEvent:
		return fmt.Sprintf("state %v -> %v", e.From, e.To)
	case panel.GestureBeganEvent:
		return fmt.Sprintf("drag began at %v (%.1f)", e.State, e.Offset)
	case panel.GestureEndedEvent:
		s := fmt.Sprintf("drag ended with %.0f toward %v", e.Velocity.X+e.Velocity.Y, e.Target)
		if !e.Attract {
			s += ", in place"
		}
		if e.ScrollVelocity != 0 {
			s += fmt.Sprintf(", content keeps %.0f", e.ScrollVelocity)
		}
		return s
	case panel.GestureCancelledEvent:
		return fmt.Sprintf("drag cancelled at %.1f", e.Offset)
	case panel.SettleBeganEvent:
		return fmt.Sprintf("settling to %v", e.Target)
	case panel.SettleEndedEvent:
		if e.Finished {
			return fmt.Sprintf("settled at %v", e.Target)
		}
		return fmt.Sprintf("settle to %v interrupted", e.Target)
	case panel.BackdropAlphaEvent:
		return fmt.Sprintf("backdrop %.2f", e.Alpha)
	case panel.LayoutChangedEvent:
		return fmt.Sprintf("layout %v", e.Anchors)
	case panel.RemovedEvent:
		return "removed"
	default:
		return fmt.Sprintf("%T", e)
	}
}
