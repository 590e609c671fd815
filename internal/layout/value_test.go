package layout

import "testing"

func TestValue_Constructors(t *testing.T) {
	type tc struct {
		value      Value
		isFraction bool
		unit       Unit
		amount     float64
	}

	tests := map[string]tc{
		"Fixed": {
			value:      Fixed(100),
			isFraction: false,
			unit:       UnitFixed,
			amount:     100,
		},
		"Fraction": {
			value:      Fraction(0.5),
			isFraction: true,
			unit:       UnitFraction,
			amount:     0.5,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			if got := tt.value.IsFraction(); got != tt.isFraction {
				t.Errorf("IsFraction() = %v, want %v", got, tt.isFraction)
			}
			if tt.value.Unit != tt.unit {
				t.Errorf("Unit = %v, want %v", tt.value.Unit, tt.unit)
			}
			if tt.value.Amount != tt.amount {
				t.Errorf("Amount = %v, want %v", tt.value.Amount, tt.amount)
			}
		})
	}
}

func TestValue_Resolve(t *testing.T) {
	type tc struct {
		value    Value
		extent   float64
		expected float64
	}

	tests := map[string]tc{
		"fixed ignores extent": {
			value:    Fixed(50),
			extent:   667,
			expected: 50,
		},
		"fixed negative": {
			value:    Fixed(-100),
			extent:   667,
			expected: -100,
		},
		"fraction half": {
			value:    Fraction(0.5),
			extent:   600,
			expected: 300,
		},
		"fraction of zero extent": {
			value:    Fraction(0.5),
			extent:   0,
			expected: 0,
		},
		"fraction over one": {
			value:    Fraction(1.5),
			extent:   100,
			expected: 150,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			if got := tt.value.Resolve(tt.extent); got != tt.expected {
				t.Errorf("Resolve(%v) = %v, want %v", tt.extent, got, tt.expected)
			}
		})
	}
}
