package panel

// Deceleration rates of a platform scroll view, used as momentum projection
// rates.
const (
	DecelerationRateNormal = 0.998
	DecelerationRateFast   = 0.99
)

// Behavior tunes how a released drag is resolved. The projection and
// redirection hooks together form the momentum policy of ResolveTarget.
type Behavior interface {
	// MomentumProjectionRate is the deceleration rate used to project the
	// release velocity into a stopping offset.
	MomentumProjectionRate() float64
	// ShouldProjectMomentum reports whether the projection may carry the
	// panel to proposed even when it lies beyond the neighbor of the
	// current segment.
	ShouldProjectMomentum(proposed State) bool
	// RedirectionalProgress is the fraction of the way from one anchor to
	// the next a projection must pass for the panel to settle on the next.
	RedirectionalProgress(from, to State) float64
	// AllowsRubberBanding reports whether the panel may be pulled past the
	// travel limit at the given container edge.
	AllowsRubberBanding(edge Edge) bool
}

// SpringBehavior optionally tunes the settle spring of SpringAnimator.
type SpringBehavior interface {
	SpringDecelerationRate() float64
	SpringResponseTime() float64
}

// RemovalBehavior optionally tunes the removal interaction.
type RemovalBehavior interface {
	// RemovalVelocityThreshold is the release velocity, in distances to the
	// hidden anchor per second, beyond which a flick removes the panel.
	RemovalVelocityThreshold() float64
}

const (
	defaultRedirectionalProgress = 0.5
	defaultSpringDeceleration    = DecelerationRateFast + 0.001
	defaultSpringResponse        = 0.4
	defaultRemovalThreshold      = 5.5
)

// DefaultBehavior never lets a flick skip an anchor and rubber bands at both
// ends of the travel range.
type DefaultBehavior struct{}

func (DefaultBehavior) MomentumProjectionRate() float64          { return DecelerationRateNormal }
func (DefaultBehavior) ShouldProjectMomentum(State) bool         { return false }
func (DefaultBehavior) RedirectionalProgress(_, _ State) float64 { return defaultRedirectionalProgress }
func (DefaultBehavior) AllowsRubberBanding(Edge) bool            { return true }
func (DefaultBehavior) SpringDecelerationRate() float64          { return defaultSpringDeceleration }
func (DefaultBehavior) SpringResponseTime() float64              { return defaultSpringResponse }
func (DefaultBehavior) RemovalVelocityThreshold() float64        { return defaultRemovalThreshold }

// ProjectableBehavior lets a strong flick carry the panel past intermediate
// anchors.
type ProjectableBehavior struct {
	DefaultBehavior
}

func (ProjectableBehavior) ShouldProjectMomentum(State) bool { return true }

// TunableBehavior is a Behavior assembled from plain values. Zero fields
// fall back to the defaults of DefaultBehavior.
type TunableBehavior struct {
	ProjectionRate     float64
	Redirection        float64
	Projectable        bool
	NoRubberBand       bool
	SpringDeceleration float64
	SpringResponse     float64
	RemovalThreshold   float64
}

func (b TunableBehavior) MomentumProjectionRate() float64 {
	return orDefault(b.ProjectionRate, DecelerationRateNormal)
}

func (b TunableBehavior) ShouldProjectMomentum(State) bool { return b.Projectable }

func (b TunableBehavior) RedirectionalProgress(_, _ State) float64 {
	return orDefault(b.Redirection, defaultRedirectionalProgress)
}

func (b TunableBehavior) AllowsRubberBanding(Edge) bool { return !b.NoRubberBand }

func (b TunableBehavior) SpringDecelerationRate() float64 {
	return orDefault(b.SpringDeceleration, defaultSpringDeceleration)
}

func (b TunableBehavior) SpringResponseTime() float64 {
	return orDefault(b.SpringResponse, defaultSpringResponse)
}

func (b TunableBehavior) RemovalVelocityThreshold() float64 {
	return orDefault(b.RemovalThreshold, defaultRemovalThreshold)
}

func orDefault(v, def float64) float64 {
	if v == 0 {
		return def
	}
	return v
}

// springParams reads the spring tuning of b, falling back to the defaults.
func springParams(b Behavior) (deceleration, response float64) {
	if sb, ok := b.(SpringBehavior); ok {
		return sb.SpringDecelerationRate(), sb.SpringResponseTime()
	}
	return defaultSpringDeceleration, defaultSpringResponse
}

func removalThreshold(b Behavior) float64 {
	if rb, ok := b.(RemovalBehavior); ok {
		return rb.RemovalVelocityThreshold()
	}
	return defaultRemovalThreshold
}
