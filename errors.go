package panel

import "errors"

var (
	// ErrNoAnchors is returned for a layout that declares no anchors.
	ErrNoAnchors = errors.New("panel: layout declares no anchors")
	// ErrInvalidState is returned for a state the current layout does not anchor.
	ErrInvalidState = errors.New("panel: state is not anchored by the layout")
	// ErrInvalidInitialState is returned when the initial state has no anchor.
	ErrInvalidInitialState = errors.New("panel: initial state is not anchored by the layout")
	// ErrAnchorOrder is returned when anchor offsets contradict the state order.
	ErrAnchorOrder = errors.New("panel: anchor offsets do not follow state order")
	// ErrUnsupportedEdge is returned for an anchor edge off the travel axis.
	ErrUnsupportedEdge = errors.New("panel: anchor edge is not on the travel axis")
	// ErrGeometryUnavailable means the container has not been laid out yet.
	ErrGeometryUnavailable = errors.New("panel: container geometry unavailable")
)
