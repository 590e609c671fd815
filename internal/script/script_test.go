package script

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	panel "github.com/grindlemire/go-panel"
	"github.com/grindlemire/go-panel/internal/config"
)

func TestRun_Testdata(t *testing.T) {
	type tc struct {
		file    string
		removed bool
	}

	tests := map[string]tc{
		"flick":       {file: "flick.yaml"},
		"handoff":     {file: "handoff.yaml"},
		"removal":     {file: "removal.yaml", removed: true},
		"side drawer": {file: "side_drawer.yaml"},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			s, err := Load(filepath.Join("testdata", tt.file))
			if err != nil {
				t.Fatalf("Load() error = %v", err)
			}
			trace, err := Run(context.Background(), s, config.Default())
			if err != nil {
				t.Fatalf("Run() error = %v", err)
			}
			if trace.Removed != tt.removed {
				t.Errorf("Removed = %v, want %v", trace.Removed, tt.removed)
			}
			if len(trace.Samples) < 2 {
				t.Errorf("trace has %d samples", len(trace.Samples))
			}
			hidden := false
			for i, a := range trace.Anchors {
				hidden = hidden || a.State == panel.Hidden
				if i > 0 && a.Offset <= trace.Anchors[i-1].Offset {
					t.Errorf("anchors = %v, want increasing offsets", trace.Anchors)
				}
			}
			if !hidden {
				t.Errorf("anchors = %v, want hidden included", trace.Anchors)
			}
		})
	}
}

func TestRun_HandoffTrace(t *testing.T) {
	s, err := Load(filepath.Join("testdata", "handoff.yaml"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	trace, err := Run(context.Background(), s, config.Default())
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	var ended []panel.GestureEndedEvent
	for _, e := range trace.Events {
		if g, ok := e.Event.(panel.GestureEndedEvent); ok {
			ended = append(ended, g)
		}
	}
	if len(ended) != 2 {
		t.Fatalf("gesture ends = %d, want 2", len(ended))
	}
	if ended[0].ScrollVelocity != -800 || ended[0].Attract {
		t.Errorf("first release = %+v, want scroll velocity -800 in place", ended[0])
	}
	if ended[1].ScrollVelocity != 0 || !ended[1].Attract {
		t.Errorf("second release = %+v, want the panel to settle", ended[1])
	}
	if n := trace.Count("state-changed"); n != 1 {
		t.Errorf("state changes = %d, want 1", n)
	}
}

func TestRun_ExpectationFailure(t *testing.T) {
	s, err := Parse([]byte(`
layout: bottom
geometry: {width: 390, height: 844}
steps:
  - move: tip
  - expect: {state: full, offset: 10}
`))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	trace, err := Run(context.Background(), s, config.Default())
	if !errors.Is(err, ErrExpectation) {
		t.Fatalf("Run() error = %v, want %v", err, ErrExpectation)
	}
	if !strings.Contains(err.Error(), "step 2 (expect)") || !strings.Contains(err.Error(), "state = tip, want full") {
		t.Errorf("Run() error = %q", err)
	}
	if trace == nil || trace.Final().State != panel.Tip {
		t.Errorf("trace not returned with the failure")
	}
}

func TestRun_InlineLayout(t *testing.T) {
	s, err := Parse([]byte(`
layout:
  position: top
  initial: tip
  anchors:
    full: {inset: 100, edge: bottom}
    tip: {inset: 80, edge: top}
geometry: {width: 390, height: 600}
steps:
  - expect: {state: tip, offset: 80}
  - move: full
  - expect: {state: full, offset: 500}
  - move: hidden
  - expect: {state: hidden, offset: -100}
`))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if _, err := Run(context.Background(), s, config.Default()); err != nil {
		t.Errorf("Run() error = %v", err)
	}
}

func TestRun_Cancelled(t *testing.T) {
	s, err := Load(filepath.Join("testdata", "flick.yaml"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := Run(ctx, s, config.Default()); !errors.Is(err, context.Canceled) {
		t.Errorf("Run() error = %v, want %v", err, context.Canceled)
	}
}

func TestRun_StepErrors(t *testing.T) {
	type tc struct {
		steps string
		want  string
	}

	tests := map[string]tc{
		"unknown move target":  {steps: "  - move: middle\n", want: `unknown state "middle"`},
		"unknown expected":     {steps: "  - expect: {state: middle}\n", want: `unknown state "middle"`},
		"content without view": {steps: "  - expect: {content-offset: 0}\n", want: "without a scroll view"},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			s, err := Parse([]byte("layout: bottom\ngeometry: {width: 390, height: 844}\nsteps:\n" + tt.steps))
			if err != nil {
				t.Fatalf("Parse() error = %v", err)
			}
			_, err = Run(context.Background(), s, config.Default())
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Run() error = %v, want %q", err, tt.want)
			}
		})
	}
}

func TestParse_Errors(t *testing.T) {
	tests := map[string]string{
		"no layout":           "geometry: {width: 1, height: 1}\n",
		"no geometry":         "layout: bottom\n",
		"bad behavior":        "layout: bottom\ngeometry: {width: 1, height: 1}\nbehavior: bouncy\n",
		"two actions":         "layout: bottom\ngeometry: {width: 1, height: 1}\nsteps:\n  - {move: full, settle: true}\n",
		"empty step":          "layout: bottom\ngeometry: {width: 1, height: 1}\nsteps:\n  - {}\n",
		"scroll without view": "layout: bottom\ngeometry: {width: 1, height: 1}\nsteps:\n  - scroll-to: 10\n",
		"unknown field":       "layout: bottom\ngeometry: {width: 1, height: 1}\nstep: []\n",
		"layout sequence":     "layout: [a, b]\ngeometry: {width: 1, height: 1}\n",
	}

	for name, doc := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := Parse([]byte(doc)); !errors.Is(err, ErrInvalidScript) {
				t.Errorf("Parse() error = %v, want %v", err, ErrInvalidScript)
			}
		})
	}
}

func TestDescribe(t *testing.T) {
	type tc struct {
		event    panel.Event
		expected string
	}

	tests := map[string]tc{
		"state":     {event: panel.StateChangedEvent{From: panel.Half, To: panel.Tip}, expected: "state half -> tip"},
		"in place":  {event: panel.GestureEndedEvent{Velocity: panel.Vector{Y: -800}, Target: panel.Full, ScrollVelocity: -800}, expected: "drag ended with -800 toward full, in place, content keeps -800"},
		"interrupt": {event: panel.SettleEndedEvent{Target: panel.Tip}, expected: "settle to tip interrupted"},
		"removed":   {event: panel.RemovedEvent{}, expected: "removed"},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			if got := Describe(tt.event); got != tt.expected {
				t.Errorf("Describe() = %q, want %q", got, tt.expected)
			}
		})
	}
}
