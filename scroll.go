package panel

import (
	"math"

	"github.com/grindlemire/go-panel/internal/debug"
)

// ScrollView is a scrollable region inside the panel whose content the
// engine coordinates with panel drags. All lengths are along the panel's
// travel axis.
type ScrollView interface {
	ContentOffset() float64
	SetContentOffset(offset float64)
	ContentLength() float64
	ViewportLength() float64
	// SetScrollAffordances enables or disables bouncing and the scroll
	// indicator.
	SetScrollAffordances(enabled bool)
}

// scrollBinding is the panel's non-owning handle on a tracked scroll view.
type scrollBinding struct {
	view     ScrollView
	position Position
	locked   bool
	pinned   float64
}

func newScrollBinding(view ScrollView, position Position) *scrollBinding {
	return &scrollBinding{view: view, position: position}
}

// origin is the content offset at which the panel takes over a drag: the
// top of the content for bottom and right panels, its end otherwise.
func (b *scrollBinding) origin() float64 {
	if b.position == Bottom || b.position == Right {
		return 0
	}
	return max(0, b.view.ContentLength()-b.view.ViewportLength())
}

// scrollable reports whether the content is longer than the viewport.
func (b *scrollBinding) scrollable() bool {
	return b.view.ContentLength() > b.view.ViewportLength()
}

// atOrigin reports whether the content rests at its origin within one pixel.
func (b *scrollBinding) atOrigin(scale float64) bool {
	return math.Abs(b.view.ContentOffset()-b.origin()) <= 1/scale
}

// lock pins the content at its current offset and hides bounce and indicator.
func (b *scrollBinding) lock() {
	b.pinned = b.view.ContentOffset()
	if b.locked {
		return
	}
	debug.Log("scrollBinding: lock at %.1f", b.pinned)
	b.locked = true
	b.view.SetScrollAffordances(false)
}

func (b *scrollBinding) unlock() {
	if !b.locked {
		return
	}
	debug.Log("scrollBinding: unlock")
	b.locked = false
	b.view.SetScrollAffordances(true)
}

// hold restores the pinned offset if the content drifted while locked.
func (b *scrollBinding) hold() {
	if b.locked && b.view.ContentOffset() != b.pinned {
		b.view.SetContentOffset(b.pinned)
	}
}

// scroll moves the content by a drag delta d. When the move would carry the
// content past its origin in the collapsing direction, the content stops at
// the origin and the remainder of d is returned for the panel.
func (b *scrollBinding) scroll(d float64) float64 {
	next := b.view.ContentOffset() - d
	origin := b.origin()
	overshoot := next - origin
	if overshoot*b.position.expandSign() > 0 {
		b.view.SetContentOffset(origin)
		return -overshoot
	}
	b.view.SetContentOffset(next)
	return 0
}
