package layout

// Size is a width and height pair.
type Size struct {
	Width, Height float64
}

// IsEmpty returns true if either dimension is zero or negative.
func (s Size) IsEmpty() bool {
	return s.Width <= 0 || s.Height <= 0
}

// Bounds returns the rectangle of this size anchored at the origin.
func (s Size) Bounds() Rect {
	return Rect{Width: s.Width, Height: s.Height}
}
