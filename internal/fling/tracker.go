// Package fling estimates release velocity from timestamped drag samples.
//
// The estimate is the slope at the newest sample of a least squares fit of a
// second order polynomial through the recent history, the same method Android's
// VelocityTracker uses. Samples older than MaxAge, or separated from the next
// sample by more than MaxSampleGap, are treated as belonging to an earlier
// movement and ignored.
package fling

import (
	"time"

	"gonum.org/v1/gonum/mat"
)

const (
	degree = 2

	// HistorySize is the number of samples retained.
	HistorySize = 20
	// MaxAge bounds how far back samples take part in an estimate.
	MaxAge = 100 * time.Millisecond
	// MaxSampleGap splits the history when input paused for this long.
	MaxSampleGap = 40 * time.Millisecond
)

type sample struct {
	t time.Duration
	v float64
}

// Tracker accumulates one dimensional position samples.
// The zero value is ready to use.
type Tracker struct {
	samples   [HistorySize]sample
	n         int
	idx       int
	lastValue float64
}

// Reset forgets all samples.
func (tr *Tracker) Reset() {
	*tr = Tracker{}
}

// AddDelta adds a sample relative to the previous one.
func (tr *Tracker) AddDelta(t time.Duration, delta float64) {
	tr.Add(t, tr.lastValue+delta)
}

// Add adds an absolute sample.
func (tr *Tracker) Add(t time.Duration, v float64) {
	tr.lastValue = v
	tr.samples[tr.idx] = sample{t: t, v: v}
	tr.idx = (tr.idx + 1) % HistorySize
	if tr.n < HistorySize {
		tr.n++
	}
}

// Len returns the number of retained samples.
func (tr *Tracker) Len() int {
	return tr.n
}

// get returns the i-th newest sample, get(0) being the latest.
func (tr *Tracker) get(i int) sample {
	return tr.samples[(tr.idx-1-i+2*HistorySize)%HistorySize]
}

// Velocity returns the estimated velocity in units per second, or zero when
// there is not enough recent data.
func (tr *Tracker) Velocity() float64 {
	if tr.n < 2 {
		return 0
	}
	newest := tr.get(0)
	prev := newest.t
	var times, values []float64
	for i := 0; i < tr.n; i++ {
		p := tr.get(i)
		age := newest.t - p.t
		if age >= MaxAge || prev-p.t >= MaxSampleGap {
			break
		}
		prev = p.t
		times = append(times, -age.Seconds())
		values = append(values, p.v-newest.v)
	}

	switch {
	case len(times) <= 1:
		return 0
	case len(times) <= degree:
		dt := times[0] - times[len(times)-1]
		if dt <= 0 {
			return 0
		}
		return (values[0] - values[len(values)-1]) / dt
	}

	coef, ok := polyFit(times, values)
	if !ok {
		return 0
	}
	return coef[1]
}

// polyFit returns the least squares coefficients of a degree-2 polynomial
// through (xs, ys).
func polyFit(xs, ys []float64) ([]float64, bool) {
	a := mat.NewDense(len(xs), degree+1, nil)
	for i, x := range xs {
		a.Set(i, 0, 1)
		for j := 1; j <= degree; j++ {
			a.Set(i, j, a.At(i, j-1)*x)
		}
	}
	b := mat.NewVecDense(len(ys), ys)

	var coef mat.VecDense
	if err := coef.SolveVec(a, b); err != nil {
		return nil, false
	}
	return coef.RawVector().Data, true
}
