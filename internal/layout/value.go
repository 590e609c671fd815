package layout

// Unit specifies how a Value is interpreted.
type Unit uint8

const (
	UnitFixed    Unit = iota // Absolute points
	UnitFraction             // Fraction of a reference extent (0-1 scale)
)

// Value represents an inset that is either a fixed distance or a fraction
// of some reference extent.
type Value struct {
	Amount float64
	Unit   Unit
}

// Fixed returns a Value representing an absolute number of points.
func Fixed(n float64) Value {
	return Value{Amount: n, Unit: UnitFixed}
}

// Fraction returns a Value representing a fraction of the reference extent.
// The value is on a 0-1 scale (0.5 = half).
func Fraction(f float64) Value {
	return Value{Amount: f, Unit: UnitFraction}
}

// Resolve computes the distance the value stands for given the reference extent.
func (v Value) Resolve(extent float64) float64 {
	switch v.Unit {
	case UnitFraction:
		return extent * v.Amount
	default:
		return v.Amount
	}
}

// IsFraction returns true if this value scales with its reference extent.
func (v Value) IsFraction() bool {
	return v.Unit == UnitFraction
}

func (u Unit) String() string {
	switch u {
	case UnitFixed:
		return "fixed"
	case UnitFraction:
		return "fraction"
	default:
		return "unknown"
	}
}
