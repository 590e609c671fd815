package panel

import "github.com/grindlemire/go-panel/internal/layout"

// Geometry types re-exported from the layout package.
type (
	Size   = layout.Size
	Edges  = layout.Edges
	Rect   = layout.Rect
	Vector = layout.Point
	Inset  = layout.Value
)

// Geometry describes the container the panel lives in.
type Geometry struct {
	Size     Size
	SafeArea Edges
	// IntrinsicLength is the surface's natural length along the travel axis,
	// used by intrinsic anchors. Zero when unknown.
	IntrinsicLength float64
}

// Valid reports whether the container has been laid out.
func (g Geometry) Valid() bool {
	return !g.Size.IsEmpty()
}

// Bounds returns the container rectangle.
func (g Geometry) Bounds() Rect {
	return g.Size.Bounds()
}

// SafeBounds returns the container rectangle inset by the safe area.
func (g Geometry) SafeBounds() Rect {
	return g.Bounds().Inset(g.SafeArea)
}

// GeometryProvider supplies container geometry on layout invalidation.
// ok is false while the container has not been laid out yet.
type GeometryProvider interface {
	Geometry() (g Geometry, ok bool)
}

// GeometryFunc adapts a function to a GeometryProvider.
type GeometryFunc func() (Geometry, bool)

// Geometry calls f.
func (f GeometryFunc) Geometry() (Geometry, bool) {
	return f()
}
