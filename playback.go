package panel

import (
	"math"
	"time"

	"github.com/charmbracelet/harmonica"
)

// Animator plays back a settle. Start is called once per settle; Step
// advances it by dt and returns the new offset and whether it has arrived.
// Implementations must converge on to.
type Animator interface {
	Start(from, to, velocity float64)
	Step(dt time.Duration) (offset float64, done bool)
}

// SpringAnimator settles with a damped spring. Slow releases are critically
// damped; faster ones use a damping ratio derived from DecelerationRate so
// the panel may overshoot slightly.
type SpringAnimator struct {
	DecelerationRate float64
	ResponseTime     float64
	// DisplayScale is the number of device pixels per point. The spring
	// completes once it is within one pixel of the target and moves less
	// than a pixel per step.
	DisplayScale float64

	x, v, target float64
	omega, zeta  float64
}

// NewSpringAnimator creates a spring tuned by behavior b.
func NewSpringAnimator(b Behavior, displayScale float64) *SpringAnimator {
	rate, response := springParams(b)
	return &SpringAnimator{
		DecelerationRate: rate,
		ResponseTime:     response,
		DisplayScale:     displayScale,
	}
}

// Start implements Animator.
func (s *SpringAnimator) Start(from, to, velocity float64) {
	s.x, s.v, s.target = from, velocity, to

	response := s.ResponseTime
	if response <= 0 {
		response = defaultSpringResponse
	}
	frequency := 1 / response
	s.omega = 2 * math.Pi * frequency
	s.zeta = 1
	if math.Abs(velocity) > 300 {
		rate := s.DecelerationRate
		if rate <= 0 || rate >= 1 {
			rate = defaultSpringDeceleration
		}
		s.zeta = math.Log(rate) / (-2 * math.Pi * frequency * 0.001)
	}
}

// Step implements Animator.
func (s *SpringAnimator) Step(dt time.Duration) (float64, bool) {
	if dt <= 0 {
		return s.x, false
	}
	pre := s.x
	spring := harmonica.NewSpring(dt.Seconds(), s.omega, s.zeta)
	s.x, s.v = spring.Update(s.x, s.v, s.target)

	pixel := 1.0
	if s.DisplayScale > 0 {
		pixel = 1 / s.DisplayScale
	}
	if math.Abs(s.target-s.x) <= pixel && math.Abs(pre-s.x) <= pixel {
		s.x, s.v = s.target, 0
		return s.x, true
	}
	return s.x, false
}

// Velocity returns the current spring velocity in points per second.
func (s *SpringAnimator) Velocity() float64 {
	return s.v
}
