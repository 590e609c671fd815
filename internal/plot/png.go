package plot

import (
	"fmt"
	"io"

	"git.sr.ht/~sbinet/gg"

	"github.com/grindlemire/go-panel/internal/script"
)

// PNG writes t as a PNG image.
func PNG(w io.Writer, t *script.Trace, opts Options) error {
	f := newFrame(t, opts)
	dc := gg.NewContext(f.opts.Width, f.opts.Height)

	dc.SetHexColor(palette.background)
	dc.Clear()

	dc.SetHexColor(palette.axis)
	dc.SetLineWidth(1)
	dc.DrawLine(f.left(), f.top(), f.left(), f.bottom())
	dc.DrawLine(f.left(), f.bottom(), f.right(), f.bottom())
	dc.Stroke()

	for _, a := range t.Anchors {
		y := f.y(a.Offset)
		dc.SetHexColor(palette.anchor)
		dc.SetDash(4, 4)
		dc.DrawLine(f.left(), y, f.right(), y)
		dc.Stroke()
		dc.SetDash()
		dc.SetHexColor(palette.text)
		dc.DrawString(fmt.Sprintf("%s %.0f", a.State, a.Offset), 4, y+4)
	}

	if len(t.Samples) > 0 {
		dc.SetHexColor(palette.offset)
		dc.SetLineWidth(2)
		for i, s := range t.Samples {
			if i == 0 {
				dc.MoveTo(f.x(s.At), f.y(s.Offset))
				continue
			}
			dc.LineTo(f.x(s.At), f.y(s.Offset))
		}
		dc.Stroke()

		if m := maxContent(t); f.opts.Content && m > 0 {
			dc.SetHexColor(palette.content)
			dc.SetLineWidth(1)
			for i, s := range t.Samples {
				if i == 0 {
					dc.MoveTo(f.x(s.At), f.contentY(s.Content, m))
					continue
				}
				dc.LineTo(f.x(s.At), f.contentY(s.Content, m))
			}
			dc.Stroke()
		}
	}

	dc.SetHexColor(palette.text)
	dc.DrawStringAnchored(t.Duration.String(), f.right(), f.bottom()+20, 1, 0)

	if err := dc.EncodePNG(w); err != nil {
		return fmt.Errorf("encoding png: %w", err)
	}
	return nil
}
