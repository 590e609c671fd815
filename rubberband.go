package panel

// RubberBand compresses a distance past a travel limit. base is the
// container extent along the travel axis; the result approaches but never
// reaches base, following the curve of a platform scroll view (c = 0.55).
func RubberBand(buffer, base float64) float64 {
	if base <= 0 || buffer <= 0 {
		return 0
	}
	return (1 - 1/(buffer*0.55/base+1)) * base
}

// interactiveOffset maps the unconstrained drag offset raw to the offset the
// panel is shown at. Past an edge that rubber bands the excess is
// compressed; past any other edge the offset is clamped to the anchors.
func interactiveOffset(raw float64, anchors AnchorSet, b Behavior, base float64) float64 {
	lo, hi := anchors.Min(), anchors.Max()
	pos := anchors.Position()
	out := raw
	if out < lo {
		if b.AllowsRubberBanding(pos.minEdge()) {
			out = lo - RubberBand(lo-out, base)
		} else {
			out = lo
		}
	}
	if out > hi {
		if b.AllowsRubberBanding(pos.maxEdge()) {
			out = hi + RubberBand(out-hi, base)
		} else {
			out = hi
		}
	}
	return out
}
