package panel

import "gonum.org/v1/gonum/interp"

// BackdropAlphaAt returns the backdrop alpha for a panel at offset. Between
// two anchors it interpolates linearly between their resting alphas from l;
// beyond the outermost anchors it holds their alpha.
func BackdropAlphaAt(offset float64, anchors AnchorSet, l Layout) float64 {
	pts := anchors.points
	switch len(pts) {
	case 0:
		return 0
	case 1:
		return l.BackdropAlpha(pts[0].State)
	}

	xs := make([]float64, len(pts))
	ys := make([]float64, len(pts))
	for i, p := range pts {
		xs[i] = p.Offset
		ys[i] = l.BackdropAlpha(p.State)
	}

	// Offsets are strictly increasing by construction of AnchorSet.
	var pl interp.PiecewiseLinear
	if err := pl.Fit(xs, ys); err != nil {
		return ys[0]
	}
	return pl.Predict(offset)
}
