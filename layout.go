package panel

import "maps"

// Layout declares where a panel may rest.
type Layout interface {
	// Position is the container side the panel is attached to.
	Position() Position
	// InitialState is where a new panel starts.
	InitialState() State
	// Anchors maps each reachable state to its anchor. Hidden is always
	// reachable even when absent.
	Anchors() map[State]Anchor
	// BackdropAlpha is the backdrop dimming while resting at s.
	BackdropAlpha(s State) float64
}

// StaticLayout is a Layout built from fixed values.
type StaticLayout struct {
	position Position
	initial  State
	anchors  map[State]Anchor
	alphas   map[State]float64
}

// NewLayout creates a layout. The anchors map is copied.
func NewLayout(position Position, initial State, anchors map[State]Anchor) *StaticLayout {
	return &StaticLayout{
		position: position,
		initial:  initial,
		anchors:  maps.Clone(anchors),
		alphas:   make(map[State]float64),
	}
}

// WithBackdropAlpha sets the resting backdrop alpha of s and returns l.
func (l *StaticLayout) WithBackdropAlpha(s State, alpha float64) *StaticLayout {
	l.alphas[s] = alpha
	return l
}

// Position implements Layout.
func (l *StaticLayout) Position() Position { return l.position }

// InitialState implements Layout.
func (l *StaticLayout) InitialState() State { return l.initial }

// Anchors implements Layout.
func (l *StaticLayout) Anchors() map[State]Anchor { return maps.Clone(l.anchors) }

// BackdropAlpha implements Layout. Hidden is always transparent.
func (l *StaticLayout) BackdropAlpha(s State) float64 {
	if s == Hidden {
		return 0
	}
	return l.alphas[s]
}

// BottomLayout returns the default bottom sheet: full 18 points below the
// top of the safe area, half at the middle of the safe area, tip 69 points
// above its bottom. It starts at half and dims the backdrop at full.
func BottomLayout() *StaticLayout {
	return NewLayout(Bottom, Half, map[State]Anchor{
		Full: AbsoluteInset(18, EdgeTop, GuideSafeArea),
		Half: FractionalInset(0.5, EdgeBottom, GuideSafeArea),
		Tip:  AbsoluteInset(69, EdgeBottom, GuideSafeArea),
	}).WithBackdropAlpha(Full, 0.3)
}
