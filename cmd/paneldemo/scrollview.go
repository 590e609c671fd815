package main

import (
	"math"

	"github.com/charmbracelet/bubbles/viewport"
)

// viewportScroll adapts a bubbles viewport to panel.ScrollView. The engine
// works in fractional cells; the viewport shows the nearest line.
type viewportScroll struct {
	vp      *viewport.Model
	offset  float64
	enabled bool
}

func newViewportScroll(vp *viewport.Model) *viewportScroll {
	return &viewportScroll{vp: vp, enabled: true}
}

func (s *viewportScroll) ContentOffset() float64 { return s.offset }

func (s *viewportScroll) SetContentOffset(offset float64) {
	s.offset = offset
	s.vp.SetYOffset(int(math.Round(max(offset, 0))))
}

func (s *viewportScroll) ContentLength() float64  { return float64(s.vp.TotalLineCount()) }
func (s *viewportScroll) ViewportLength() float64 { return float64(s.vp.Height) }

func (s *viewportScroll) SetScrollAffordances(enabled bool) {
	s.enabled = enabled
	s.vp.MouseWheelEnabled = enabled
}

// scrollBy scrolls by lines from a mouse wheel, within the content.
func (s *viewportScroll) scrollBy(lines int) {
	if !s.enabled {
		return
	}
	limit := max(s.ContentLength()-s.ViewportLength(), 0)
	s.SetContentOffset(min(max(s.offset+float64(lines), 0), limit))
}
