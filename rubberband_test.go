package panel

import "testing"

func TestRubberBand(t *testing.T) {
	const base = 667
	if got := RubberBand(0, base); got != 0 {
		t.Errorf("RubberBand(0) = %v, want 0", got)
	}
	prev := 0.0
	for buffer := 10.0; buffer <= 5000; buffer += 10 {
		got := RubberBand(buffer, base)
		if got <= prev {
			t.Fatalf("RubberBand(%v) = %v, not increasing from %v", buffer, got, prev)
		}
		if got >= buffer || got >= base {
			t.Fatalf("RubberBand(%v) = %v, want less than buffer and base", buffer, got)
		}
		prev = got
	}
}

func TestInteractiveOffset(t *testing.T) {
	type tc struct {
		raw      float64
		behavior Behavior
		check    func(got float64) bool
	}

	tests := map[string]tc{
		"inside range": {
			raw:      300,
			behavior: DefaultBehavior{},
			check:    func(got float64) bool { return got == 300 },
		},
		"past full rubber bands": {
			raw:      -180,
			behavior: DefaultBehavior{},
			check:    func(got float64) bool { return got < 20 && got > -180 },
		},
		"past tip rubber bands": {
			raw:      807,
			behavior: DefaultBehavior{},
			check:    func(got float64) bool { return got > 607 && got < 807 },
		},
		"past full clamps": {
			raw:      -180,
			behavior: TunableBehavior{NoRubberBand: true},
			check:    func(got float64) bool { return got == 20 },
		},
		"past tip clamps": {
			raw:      807,
			behavior: TunableBehavior{NoRubberBand: true},
			check:    func(got float64) bool { return got == 607 },
		},
	}

	set := testAnchors(t)
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			got := interactiveOffset(tt.raw, set, tt.behavior, 667)
			if !tt.check(got) {
				t.Errorf("interactiveOffset(%v) = %v", tt.raw, got)
			}
		})
	}
}
