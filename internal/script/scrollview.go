package script

// MemoryScrollView is an in-memory panel.ScrollView.
type MemoryScrollView struct {
	offset   float64
	content  float64
	viewport float64
	enabled  bool
}

// NewMemoryScrollView creates a scroll view showing viewport of content,
// scrolled to offset.
func NewMemoryScrollView(content, viewport, offset float64) *MemoryScrollView {
	return &MemoryScrollView{offset: offset, content: content, viewport: viewport, enabled: true}
}

func (s *MemoryScrollView) ContentOffset() float64          { return s.offset }
func (s *MemoryScrollView) SetContentOffset(offset float64) { s.offset = offset }
func (s *MemoryScrollView) ContentLength() float64          { return s.content }
func (s *MemoryScrollView) ViewportLength() float64         { return s.viewport }

// SetScrollAffordances records whether bounce and indicator are shown.
func (s *MemoryScrollView) SetScrollAffordances(enabled bool) { s.enabled = enabled }

// Enabled reports the last affordance state set by the panel.
func (s *MemoryScrollView) Enabled() bool { return s.enabled }
