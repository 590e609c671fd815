package panel

// Position is the side of the container the panel is attached to.
type Position uint8

const (
	Top Position = iota
	Left
	Bottom
	Right
)

func (p Position) String() string {
	switch p {
	case Top:
		return "top"
	case Left:
		return "left"
	case Bottom:
		return "bottom"
	case Right:
		return "right"
	default:
		return "unknown"
	}
}

// Horizontal reports whether the panel travels along the x axis.
func (p Position) Horizontal() bool {
	return p == Left || p == Right
}

// MainDimension returns the extent of s along the travel axis.
func (p Position) MainDimension(s Size) float64 {
	if p.Horizontal() {
		return s.Width
	}
	return s.Height
}

// MainLocation returns the component of v along the travel axis.
func (p Position) MainLocation(v Vector) float64 {
	if p.Horizontal() {
		return v.X
	}
	return v.Y
}

// Vector builds a vector pointing along the travel axis.
func (p Position) Vector(main float64) Vector {
	if p.Horizontal() {
		return Vector{X: main}
	}
	return Vector{Y: main}
}

// expandSign is the sign of an offset change that expands the panel.
func (p Position) expandSign() float64 {
	if p == Bottom || p == Right {
		return -1
	}
	return 1
}

// minEdge and maxEdge name the container edges at the low and high ends of
// the travel axis.
func (p Position) minEdge() Edge {
	if p.Horizontal() {
		return EdgeLeft
	}
	return EdgeTop
}

func (p Position) maxEdge() Edge {
	if p.Horizontal() {
		return EdgeRight
	}
	return EdgeBottom
}

// inset returns the safe-area inset on the panel's own side.
func (p Position) inset(e Edges) float64 {
	switch p {
	case Top:
		return e.Top
	case Left:
		return e.Left
	case Bottom:
		return e.Bottom
	default:
		return e.Right
	}
}
