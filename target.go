package panel

import (
	"math"

	"github.com/grindlemire/go-panel/internal/debug"
)

// Project returns the distance travelled by a motion starting at velocity
// (points per second) that decelerates at rate per millisecond until it stops.
func Project(velocity, rate float64) float64 {
	return (velocity / 1000) * rate / (1 - rate)
}

// ResolveTarget decides where a panel released at offset with velocity
// settles. from is the state the panel rested at before the drag.
//
// The velocity is projected into a stopping offset and the anchors around it
// are found in the direction of travel. Unless b allows momentum projection
// to the proposed state, the projection is trimmed to the segment the panel
// is in, so a single flick moves at most one anchor away. The panel then
// settles on the far anchor of the segment only when the projection passes
// b.RedirectionalProgress of the way there; otherwise it returns to the near
// anchor. Offsets farther beyond an outermost anchor than the length of the
// adjacent segment resolve to that anchor regardless of velocity.
//
// The result is always one of the declared anchors.
func ResolveTarget(offset, velocity float64, anchors AnchorSet, from State, b Behavior) State {
	pts := anchors.points
	switch len(pts) {
	case 0:
		return from
	case 1:
		return pts[0].State
	}

	first, last := pts[0], pts[len(pts)-1]
	if offset < first.Offset-(pts[1].Offset-first.Offset) {
		return first.State
	}
	if offset > last.Offset+(last.Offset-pts[len(pts)-2].Offset) {
		return last.State
	}

	fromOffset, ok := anchors.Offset(from)
	if !ok {
		fromOffset = offset
	}
	distance := offset - fromOffset
	forward := velocity > 0
	if velocity == 0 {
		forward = distance > 0
	}

	projected := offset + Project(velocity, b.MomentumProjectionRate())

	bounds := func(lower, upper int) (int, int) {
		if lower < 0 {
			lower = 0
		}
		if upper < 0 {
			upper = len(pts) - 1
		}
		return lower, upper
	}
	orient := func(lower, upper int) (int, int) {
		if forward {
			return lower, upper
		}
		return upper, lower
	}

	fromIdx, toIdx := orient(bounds(anchors.segment(projected, forward)))

	if !b.ShouldProjectMomentum(pts[toIdx].State) {
		debug.Log("ResolveTarget: trim projection %.1f, distance %.1f", projected, distance)
		lower, upper := bounds(anchors.segment(offset, forward))
		// Outside the outermost anchors use the outermost segment.
		if lower == upper {
			if forward {
				upper = anchors.next(lower)
			} else {
				lower = anchors.pre(lower)
			}
		}
		fromIdx, toIdx = orient(lower, upper)
		if forward {
			projected = max(min(projected, pts[anchors.next(toIdx)].Offset), pts[fromIdx].Offset)
		} else {
			projected = max(min(projected, pts[fromIdx].Offset), pts[anchors.pre(toIdx)].Offset)
		}
	}

	fromPt, toPt := pts[fromIdx], pts[toIdx]
	span := math.Abs(fromPt.Offset - toPt.Offset)
	if fromIdx == toIdx || span == 0 {
		return fromPt.State
	}

	redirect := min(max(b.RedirectionalProgress(fromPt.State, toPt.State), 0), 1)
	progress := math.Abs(projected-fromPt.Offset) / span
	if progress > redirect {
		return toPt.State
	}
	return fromPt.State
}
