package panel

import (
	"fmt"

	"github.com/grindlemire/go-panel/internal/layout"
)

// Edge is a container edge an anchor measures from.
type Edge uint8

const (
	EdgeTop Edge = iota
	EdgeLeft
	EdgeBottom
	EdgeRight
)

func (e Edge) String() string {
	switch e {
	case EdgeTop:
		return "top"
	case EdgeLeft:
		return "left"
	case EdgeBottom:
		return "bottom"
	case EdgeRight:
		return "right"
	default:
		return "unknown"
	}
}

func (e Edge) horizontal() bool {
	return e == EdgeLeft || e == EdgeRight
}

// ReferenceGuide selects the rectangle an anchor is measured against.
type ReferenceGuide uint8

const (
	// GuideSuperview measures against the full container bounds.
	GuideSuperview ReferenceGuide = iota
	// GuideSafeArea measures against the container inset by its safe area.
	GuideSafeArea
)

func (g ReferenceGuide) String() string {
	if g == GuideSafeArea {
		return "safe-area"
	}
	return "superview"
}

func (g ReferenceGuide) bounds(geo Geometry) Rect {
	if g == GuideSafeArea {
		return geo.SafeBounds()
	}
	return geo.Bounds()
}

// Anchor is a declarative description of where a state rests.
type Anchor interface {
	// Offset returns the panel offset for the anchor in the given geometry.
	Offset(g Geometry, p Position) (float64, error)
}

// LayoutAnchor pins the panel edge at an inset from a container edge.
type LayoutAnchor struct {
	Inset Inset
	Edge  Edge
	Guide ReferenceGuide
}

// AbsoluteInset anchors the panel edge inset points away from edge.
func AbsoluteInset(inset float64, edge Edge, guide ReferenceGuide) LayoutAnchor {
	return LayoutAnchor{Inset: layout.Fixed(inset), Edge: edge, Guide: guide}
}

// FractionalInset anchors the panel edge at a fraction of the reference
// extent away from edge.
func FractionalInset(fraction float64, edge Edge, guide ReferenceGuide) LayoutAnchor {
	return LayoutAnchor{Inset: layout.Fraction(fraction), Edge: edge, Guide: guide}
}

// Offset implements Anchor.
func (a LayoutAnchor) Offset(g Geometry, p Position) (float64, error) {
	if a.Edge.horizontal() != p.Horizontal() {
		return 0, fmt.Errorf("%w: %s edge for a %s panel", ErrUnsupportedEdge, a.Edge, p)
	}
	ref := a.Guide.bounds(g)
	diff := a.Inset.Resolve(p.MainDimension(Size{Width: ref.Width, Height: ref.Height}))
	switch a.Edge {
	case EdgeTop:
		return ref.MinY() + diff, nil
	case EdgeLeft:
		return ref.MinX() + diff, nil
	case EdgeBottom:
		return ref.MaxY() - diff, nil
	default:
		return ref.MaxX() - diff, nil
	}
}

// IntrinsicAnchor positions the panel relative to where its surface shows
// exactly its intrinsic length. A positive inset hides that much of it.
type IntrinsicAnchor struct {
	Inset Inset
	Guide ReferenceGuide
}

// IntrinsicOffset hides offset points of the intrinsically sized surface.
func IntrinsicOffset(offset float64, guide ReferenceGuide) IntrinsicAnchor {
	return IntrinsicAnchor{Inset: layout.Fixed(offset), Guide: guide}
}

// IntrinsicFraction hides a fraction of the intrinsically sized surface.
func IntrinsicFraction(fraction float64, guide ReferenceGuide) IntrinsicAnchor {
	return IntrinsicAnchor{Inset: layout.Fraction(fraction), Guide: guide}
}

// Offset implements Anchor.
func (a IntrinsicAnchor) Offset(g Geometry, p Position) (float64, error) {
	if g.IntrinsicLength <= 0 {
		return 0, fmt.Errorf("intrinsic length unknown: %w", ErrGeometryUnavailable)
	}
	ref := a.Guide.bounds(g)
	visible := g.IntrinsicLength - a.Inset.Resolve(g.IntrinsicLength)
	switch p {
	case Top:
		return ref.MinY() + visible, nil
	case Left:
		return ref.MinX() + visible, nil
	case Bottom:
		return ref.MaxY() - visible, nil
	default:
		return ref.MaxX() - visible, nil
	}
}

// hiddenAnchor is used for Hidden when the layout does not anchor it: the
// panel edge sits 100 points beyond the container edge on its own side.
func hiddenAnchor(p Position) Anchor {
	edge := EdgeBottom
	switch p {
	case Top:
		edge = EdgeTop
	case Left:
		edge = EdgeLeft
	case Right:
		edge = EdgeRight
	}
	return AbsoluteInset(-100, edge, GuideSuperview)
}
