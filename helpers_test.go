package panel

import (
	"testing"
	"time"
)

// testLayout is the reference bottom layout: in a 667 point tall container
// it resolves to full@20, half@417 and tip@607.
func testLayout() *StaticLayout {
	return NewLayout(Bottom, Half, map[State]Anchor{
		Full: AbsoluteInset(20, EdgeTop, GuideSuperview),
		Half: AbsoluteInset(250, EdgeBottom, GuideSuperview),
		Tip:  AbsoluteInset(60, EdgeBottom, GuideSuperview),
	})
}

var testGeometry = Geometry{Size: Size{Width: 375, Height: 667}}

func testAnchors(t *testing.T) AnchorSet {
	t.Helper()
	set, err := Resolve(testLayout(), testGeometry)
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	return set
}

// stepAnimator reaches its target linearly in a fixed number of steps.
type stepAnimator struct {
	steps    int
	n        int
	from, to float64
	velocity float64
}

func (a *stepAnimator) Start(from, to, velocity float64) {
	a.from, a.to, a.velocity, a.n = from, to, velocity, 0
}

func (a *stepAnimator) Step(time.Duration) (float64, bool) {
	a.n++
	if a.n >= a.steps {
		return a.to, true
	}
	return a.from + (a.to-a.from)*float64(a.n)/float64(a.steps), false
}

// fakeScrollView is an in-memory scroll view.
type fakeScrollView struct {
	offset   float64
	content  float64
	viewport float64
	enabled  bool
	toggles  int
}

func newFakeScrollView(content, viewport float64) *fakeScrollView {
	return &fakeScrollView{content: content, viewport: viewport, enabled: true}
}

func (s *fakeScrollView) ContentOffset() float64      { return s.offset }
func (s *fakeScrollView) SetContentOffset(o float64)  { s.offset = o }
func (s *fakeScrollView) ContentLength() float64      { return s.content }
func (s *fakeScrollView) ViewportLength() float64     { return s.viewport }
func (s *fakeScrollView) SetScrollAffordances(e bool) { s.enabled = e; s.toggles++ }

func newTestPanel(t *testing.T, opts ...Option) *Panel {
	t.Helper()
	base := []Option{WithGeometry(testGeometry), WithAnimator(&stepAnimator{steps: 4})}
	p, err := New(testLayout(), append(base, opts...)...)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return p
}

type recorder struct {
	events []Event
}

func record(p *Panel) *recorder {
	r := &recorder{}
	p.Events().Subscribe(func(e Event) { r.events = append(r.events, e) })
	return r
}

// of returns the recorded events of the same type as sample.
func of[T Event](r *recorder) []T {
	var out []T
	for _, e := range r.events {
		if v, ok := e.(T); ok {
			out = append(out, v)
		}
	}
	return out
}

func settleAll(t *testing.T, p *Panel) {
	t.Helper()
	for i := 0; p.Phase() == PhaseSettling; i++ {
		if i > 1000 {
			t.Fatalf("panel did not settle, offset %v", p.Offset())
		}
		p.Tick(time.Second / 60)
	}
}
