package panel

import (
	"cmp"
	"fmt"
	"math"
	"slices"
)

// AnchorPoint binds a state to its resolved offset.
type AnchorPoint struct {
	State  State
	Offset float64
}

// AnchorSet holds the resolved anchors of a layout for one container
// geometry, sorted by increasing offset. It is immutable.
type AnchorSet struct {
	position Position
	points   []AnchorPoint
	hidden   float64
}

// Resolve converts the layout's anchors into offsets for geometry g.
//
// It fails with ErrNoAnchors for an empty layout, ErrGeometryUnavailable
// while g is not laid out, and ErrAnchorOrder when the resolved offsets do
// not follow the state order along the travel axis.
func Resolve(l Layout, g Geometry) (AnchorSet, error) {
	decl := l.Anchors()
	if len(decl) == 0 {
		return AnchorSet{}, ErrNoAnchors
	}
	if !g.Valid() {
		return AnchorSet{}, ErrGeometryUnavailable
	}

	pos := l.Position()
	points := make([]AnchorPoint, 0, len(decl))
	for s, a := range decl {
		off, err := a.Offset(g, pos)
		if err != nil {
			return AnchorSet{}, fmt.Errorf("resolve %s anchor: %w", s, err)
		}
		points = append(points, AnchorPoint{State: s, Offset: off})
	}

	// Directional order: offsets must grow along it.
	slices.SortFunc(points, func(a, b AnchorPoint) int {
		c := cmp.Compare(a.State.order, b.State.order)
		if pos == Bottom || pos == Right {
			c = -c
		}
		if c == 0 {
			c = cmp.Compare(a.State.name, b.State.name)
		}
		return c
	})
	for i := 1; i < len(points); i++ {
		if points[i].Offset <= points[i-1].Offset {
			return AnchorSet{}, fmt.Errorf("%w: %s at %.1f must lie beyond %s at %.1f",
				ErrAnchorOrder, points[i].State, points[i].Offset, points[i-1].State, points[i-1].Offset)
		}
	}

	set := AnchorSet{position: pos, points: points}
	if i := set.index(Hidden); i >= 0 {
		set.hidden = points[i].Offset
	} else {
		// The implicit anchor only depends on the container size.
		set.hidden, _ = hiddenAnchor(pos).Offset(g, pos)
	}
	return set, nil
}

// Position returns the panel position the set was resolved for.
func (a AnchorSet) Position() Position { return a.position }

// Len returns the number of declared anchors.
func (a AnchorSet) Len() int { return len(a.points) }

// Points returns a copy of the anchors in increasing offset order.
func (a AnchorSet) Points() []AnchorPoint {
	return slices.Clone(a.points)
}

// States returns the anchored states in increasing offset order.
func (a AnchorSet) States() []State {
	out := make([]State, len(a.points))
	for i, p := range a.points {
		out[i] = p.State
	}
	return out
}

func (a AnchorSet) index(s State) int {
	return slices.IndexFunc(a.points, func(p AnchorPoint) bool { return p.State == s })
}

// Declared reports whether the layout anchors s explicitly.
func (a AnchorSet) Declared(s State) bool {
	return a.index(s) >= 0
}

// Contains reports whether s is a valid destination. Hidden always is.
func (a AnchorSet) Contains(s State) bool {
	return s == Hidden || a.Declared(s)
}

// Offset returns the resolved offset of s.
func (a AnchorSet) Offset(s State) (float64, bool) {
	if i := a.index(s); i >= 0 {
		return a.points[i].Offset, true
	}
	if s == Hidden && len(a.points) > 0 {
		return a.hidden, true
	}
	return 0, false
}

// MustOffset is Offset for states known to be valid. It panics otherwise.
func (a AnchorSet) MustOffset(s State) float64 {
	off, ok := a.Offset(s)
	if !ok {
		panic(fmt.Sprintf("panel: %v is not anchored", s))
	}
	return off
}

// Min and Max return the smallest and largest declared offsets.
func (a AnchorSet) Min() float64 { return a.points[0].Offset }
func (a AnchorSet) Max() float64 { return a.points[len(a.points)-1].Offset }

// MostExpanded returns the anchor showing the largest part of the panel.
func (a AnchorSet) MostExpanded() AnchorPoint {
	if a.position == Bottom || a.position == Right {
		return a.points[0]
	}
	return a.points[len(a.points)-1]
}

// LeastExpanded returns the anchor showing the smallest part of the panel.
func (a AnchorSet) LeastExpanded() AnchorPoint {
	if a.position == Bottom || a.position == Right {
		return a.points[len(a.points)-1]
	}
	return a.points[0]
}

// Nearest returns the state whose anchor is closest to offset. Ties go to
// the more expanded state by order.
func (a AnchorSet) Nearest(offset float64) State {
	best := a.points[0]
	bestDist := math.Abs(offset - best.Offset)
	for _, p := range a.points[1:] {
		d := math.Abs(offset - p.Offset)
		if d < bestDist || (d == bestDist && p.State.order > best.State.order) {
			best, bestDist = p, d
		}
	}
	return best.State
}

// next and pre step one anchor forward or backward, clamped at the ends.
func (a AnchorSet) next(i int) int { return min(i+1, len(a.points)-1) }
func (a AnchorSet) pre(i int) int  { return max(i-1, 0) }

// segment returns the indices of the anchors bracketing pos, -1 standing for
// the open end. Moving forward, an anchor at exactly pos counts as behind;
// moving backward it counts as ahead.
func (a AnchorSet) segment(pos float64, forward bool) (lower, upper int) {
	upper = slices.IndexFunc(a.points, func(p AnchorPoint) bool {
		if forward {
			return pos < p.Offset
		}
		return pos <= p.Offset
	})
	switch {
	case upper == 0:
		return -1, 0
	case upper > 0:
		return upper - 1, upper
	default:
		return len(a.points) - 1, -1
	}
}

// withHidden returns a copy that also anchors Hidden when the layout does
// not, as long as its implicit offset lies beyond every declared anchor.
func (a AnchorSet) withHidden() AnchorSet {
	if a.Declared(Hidden) || len(a.points) == 0 {
		return a
	}
	out := a
	h := AnchorPoint{State: Hidden, Offset: a.hidden}
	switch {
	case a.hidden > a.Max():
		out.points = append(slices.Clone(a.points), h)
	case a.hidden < a.Min():
		out.points = append([]AnchorPoint{h}, a.points...)
	}
	return out
}

func (a AnchorSet) String() string {
	s := a.position.String() + "["
	for i, p := range a.points {
		if i > 0 {
			s += " "
		}
		s += fmt.Sprintf("%s@%.1f", p.State, p.Offset)
	}
	return s + "]"
}
