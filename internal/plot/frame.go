package plot

import (
	"math"
	"time"

	"github.com/grindlemire/go-panel/internal/script"
)

// Options sizes the chart.
type Options struct {
	Width  int
	Height int
	// Content also draws the tracked content offset.
	Content bool
}

// DefaultOptions returns a chart sized for a terminal screenshot.
func DefaultOptions() Options {
	return Options{Width: 960, Height: 540, Content: true}
}

const (
	margin      = 48
	labelMargin = 72
)

// frame maps trace coordinates to chart pixels.
type frame struct {
	opts     Options
	duration time.Duration
	lo, hi   float64
}

func newFrame(t *script.Trace, opts Options) frame {
	if opts.Width <= 0 || opts.Height <= 0 {
		def := DefaultOptions()
		opts.Width, opts.Height = def.Width, def.Height
	}
	f := frame{opts: opts, duration: t.Duration, lo: math.Inf(1), hi: math.Inf(-1)}
	widen := func(v float64) {
		f.lo = math.Min(f.lo, v)
		f.hi = math.Max(f.hi, v)
	}
	for _, a := range t.Anchors {
		widen(a.Offset)
	}
	for _, s := range t.Samples {
		widen(s.Offset)
	}
	if math.IsInf(f.lo, 1) {
		f.lo, f.hi = 0, 1
	}
	if f.hi-f.lo < 1 {
		f.hi = f.lo + 1
	}
	pad := (f.hi - f.lo) * 0.05
	f.lo -= pad
	f.hi += pad
	if f.duration <= 0 {
		f.duration = time.Second
	}
	return f
}

func (f frame) left() float64   { return labelMargin }
func (f frame) right() float64  { return float64(f.opts.Width - margin) }
func (f frame) top() float64    { return margin }
func (f frame) bottom() float64 { return float64(f.opts.Height - margin) }

// x maps virtual time to a column.
func (f frame) x(at time.Duration) float64 {
	return f.left() + (f.right()-f.left())*float64(at)/float64(f.duration)
}

// y maps an offset to a row. Offsets grow downward like screen rows.
func (f frame) y(offset float64) float64 {
	return f.top() + (f.bottom()-f.top())*(offset-f.lo)/(f.hi-f.lo)
}

// contentY maps a content offset onto the lower band of the chart.
func (f frame) contentY(v, max float64) float64 {
	if max <= 0 {
		return f.bottom()
	}
	band := (f.bottom() - f.top()) / 4
	return f.bottom() - band*v/max
}

func maxContent(t *script.Trace) float64 {
	m := 0.0
	for _, s := range t.Samples {
		m = math.Max(m, s.Content)
	}
	return m
}

// palette is shared by both renderers.
var palette = struct {
	background, axis, anchor, offset, content, text string
}{
	background: "#1e1e2e",
	axis:       "#585b70",
	anchor:     "#f9e2af",
	offset:     "#89b4fa",
	content:    "#a6e3a1",
	text:       "#cdd6f4",
}
