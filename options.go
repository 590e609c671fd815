package panel

import "fmt"

// Option is a functional option for configuring a Panel.
type Option func(*Panel) error

// TargetAdjuster may replace the state a released drag settles to. It must
// return a state of the current layout; anything else panics.
type TargetAdjuster func(velocity Vector, proposed State) State

// WithBehavior sets the momentum and rubber band behavior.
// Default is DefaultBehavior.
func WithBehavior(b Behavior) Option {
	return func(p *Panel) error {
		if b == nil {
			return fmt.Errorf("behavior must not be nil")
		}
		p.behavior = b
		return nil
	}
}

// WithGeometry sets the initial container geometry.
func WithGeometry(g Geometry) Option {
	return func(p *Panel) error {
		p.geometry = g
		return nil
	}
}

// WithGeometryProvider sets the source queried on construction and on every
// InvalidateLayout.
func WithGeometryProvider(gp GeometryProvider) Option {
	return func(p *Panel) error {
		if gp == nil {
			return fmt.Errorf("geometry provider must not be nil")
		}
		p.provider = gp
		return nil
	}
}

// WithScrollView tracks sv from the start.
func WithScrollView(sv ScrollView) Option {
	return func(p *Panel) error {
		if sv == nil {
			return fmt.Errorf("scroll view must not be nil")
		}
		p.scroll = newScrollBinding(sv, p.layout.Position())
		return nil
	}
}

// WithAnimator replaces the settle playback.
// Default is a SpringAnimator tuned by the behavior.
func WithAnimator(a Animator) Option {
	return func(p *Panel) error {
		if a == nil {
			return fmt.Errorf("animator must not be nil")
		}
		p.animator = a
		return nil
	}
}

// WithDisplayScale sets the number of device pixels per point. Default is 2.
func WithDisplayScale(scale float64) Option {
	return func(p *Panel) error {
		if scale <= 0 {
			return fmt.Errorf("display scale must be positive, got %v", scale)
		}
		p.scale = scale
		return nil
	}
}

// WithShouldBeginDragging installs a predicate consulted before a drag
// starts on a resting panel. Returning false ignores the gesture.
func WithShouldBeginDragging(fn func(*Panel) bool) Option {
	return func(p *Panel) error {
		p.shouldBegin = fn
		return nil
	}
}

// WithTargetAdjuster installs a hook that may change the release target.
func WithTargetAdjuster(fn TargetAdjuster) Option {
	return func(p *Panel) error {
		p.adjust = fn
		return nil
	}
}

// WithGestureHandler installs a secondary handler that sees every gesture
// input after the panel has processed it.
func WithGestureHandler(fn func(GestureInput)) Option {
	return func(p *Panel) error {
		p.secondary = fn
		return nil
	}
}

// WithRemovalInteraction lets a fast flick toward the hidden anchor hide the
// panel and emit RemovedEvent.
func WithRemovalInteraction(enabled bool) Option {
	return func(p *Panel) error {
		p.removal = enabled
		return nil
	}
}
