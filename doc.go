// Package panel is the position and interaction engine behind a draggable
// floating panel (a bottom, top or side sheet).
//
// A Panel rests at one of several named states declared by a Layout. Drag
// input moves it continuously, with rubber banding past the travel limits,
// and a release settles it on the state chosen by ResolveTarget from the
// release offset and velocity. When a scroll view is tracked, a single drag
// is handed off between moving the panel and scrolling the content without
// a visible jump. The backdrop alpha follows the offset continuously.
//
// The engine does no rendering and captures no input. Hosts feed it gesture
// events and animation ticks and observe the resulting offset and state:
//
//	p, err := panel.New(panel.BottomLayout(), panel.WithGeometry(g))
//	if err != nil {
//	    return err
//	}
//	p.Events().Subscribe(func(e panel.Event) {
//	    if m, ok := e.(panel.MovedEvent); ok {
//	        draw(m.Offset)
//	    }
//	})
//	p.BeginGesture(time.Now())
//	p.UpdateGesture(panel.Vector{Y: -40}, time.Now())
//	p.EndGesture(panel.Vector{Y: -900})
//	for p.Phase() == panel.PhaseSettling {
//	    p.Tick(time.Second / 60)
//	}
package panel
