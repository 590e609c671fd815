package plot

import (
	"fmt"
	"io"
	"math"

	svg "github.com/ajstarks/svgo"

	"github.com/grindlemire/go-panel/internal/script"
)

// SVG writes t as an SVG document.
func SVG(w io.Writer, t *script.Trace, opts Options) error {
	f := newFrame(t, opts)
	cw := &errWriter{w: w}
	c := svg.New(cw)

	c.Start(f.opts.Width, f.opts.Height)
	c.Rect(0, 0, f.opts.Width, f.opts.Height, "fill:"+palette.background)
	c.Title(t.Name)

	c.Gstyle("stroke:" + palette.axis + ";stroke-width:1")
	c.Line(px(f.left()), px(f.top()), px(f.left()), px(f.bottom()))
	c.Line(px(f.left()), px(f.bottom()), px(f.right()), px(f.bottom()))
	c.Gend()

	for _, a := range t.Anchors {
		y := px(f.y(a.Offset))
		c.Line(px(f.left()), y, px(f.right()), y, "stroke:"+palette.anchor+";stroke-dasharray:4,4")
		c.Text(4, y+4, fmt.Sprintf("%s %.0f", a.State, a.Offset), "fill:"+palette.text+";font-size:11px;font-family:monospace")
	}

	if len(t.Samples) > 0 {
		xs := make([]int, len(t.Samples))
		ys := make([]int, len(t.Samples))
		for i, s := range t.Samples {
			xs[i], ys[i] = px(f.x(s.At)), px(f.y(s.Offset))
		}
		c.Polyline(xs, ys, "fill:none;stroke-width:2;stroke:"+palette.offset)

		if m := maxContent(t); f.opts.Content && m > 0 {
			cy := make([]int, len(t.Samples))
			for i, s := range t.Samples {
				cy[i] = px(f.contentY(s.Content, m))
			}
			c.Polyline(xs, cy, "fill:none;stroke-width:1;stroke:"+palette.content)
		}
	}

	c.Text(px(f.right()), px(f.bottom())+20, t.Duration.String(), "fill:"+palette.text+";font-size:11px;font-family:monospace;text-anchor:end")
	c.End()
	return cw.err
}

func px(v float64) int { return int(math.Round(v)) }

// errWriter remembers the first write error since svgo drops them.
type errWriter struct {
	w   io.Writer
	err error
}

func (c *errWriter) Write(p []byte) (int, error) {
	if c.err != nil {
		return 0, c.err
	}
	n, err := c.w.Write(p)
	c.err = err
	return n, err
}
