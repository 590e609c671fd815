// Package script replays scripted gesture sessions against a Panel on a
// virtual clock and records what the panel did.
//
// A script is a YAML document:
//
//	name: flick to tip
//	layout: bottom
//	geometry: {width: 390, height: 844, safe-top: 47, safe-bottom: 34}
//	scroll: {content: 2000, viewport: 700}
//	steps:
//	  - drag: [20, 20, 20]
//	    release: 1200
//	  - settle: true
//	  - expect: {state: tip}
//
// layout is either the name of a built-in layout, the path of a layout
// document relative to the script, or an inline layout document.
package script

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	panel "github.com/grindlemire/go-panel"
	"github.com/grindlemire/go-panel/internal/layoutfile"
)

// ErrInvalidScript is wrapped by every decoding error.
var ErrInvalidScript = errors.New("invalid script")

// Script is a decoded gesture session.
type Script struct {
	Name     string        `yaml:"name"`
	Layout   LayoutRef     `yaml:"layout"`
	Geometry GeometrySpec  `yaml:"geometry"`
	Behavior string        `yaml:"behavior,omitempty"`
	Removal  bool          `yaml:"removal,omitempty"`
	Scroll   *ScrollSpec   `yaml:"scroll,omitempty"`
	Frame    time.Duration `yaml:"frame,omitempty"`
	Steps    []Step        `yaml:"steps"`

	// dir resolves relative layout paths.
	dir string
}

// LayoutRef names a layout or holds one inline.
type LayoutRef struct {
	Name   string
	Inline *layoutfile.Document
}

// UnmarshalYAML accepts a scalar name or an inline document.
func (r *LayoutRef) UnmarshalYAML(n *yaml.Node) error {
	switch n.Kind {
	case yaml.ScalarNode:
		return n.Decode(&r.Name)
	case yaml.MappingNode:
		r.Inline = new(layoutfile.Document)
		return n.Decode(r.Inline)
	default:
		return fmt.Errorf("line %d: layout must be a name or a document", n.Line)
	}
}

// GeometrySpec is the container geometry.
type GeometrySpec struct {
	Width      float64 `yaml:"width"`
	Height     float64 `yaml:"height"`
	SafeTop    float64 `yaml:"safe-top,omitempty"`
	SafeLeft   float64 `yaml:"safe-left,omitempty"`
	SafeBottom float64 `yaml:"safe-bottom,omitempty"`
	SafeRight  float64 `yaml:"safe-right,omitempty"`
	Intrinsic  float64 `yaml:"intrinsic,omitempty"`
}

// Geometry converts the spec.
func (g GeometrySpec) Geometry() panel.Geometry {
	return panel.Geometry{
		Size:            panel.Size{Width: g.Width, Height: g.Height},
		SafeArea:        panel.Edges{Top: g.SafeTop, Right: g.SafeRight, Bottom: g.SafeBottom, Left: g.SafeLeft},
		IntrinsicLength: g.Intrinsic,
	}
}

// ScrollSpec describes the simulated scroll view.
type ScrollSpec struct {
	Content  float64 `yaml:"content"`
	Viewport float64 `yaml:"viewport"`
	Offset   float64 `yaml:"offset,omitempty"`
}

// Step is one action of a script. Exactly one action field is set.
type Step struct {
	// Drag runs a whole gesture with these deltas along the travel axis.
	Drag []float64 `yaml:"drag,omitempty"`
	// Interval separates drag updates. Default 8ms.
	Interval time.Duration `yaml:"interval,omitempty"`
	// Release is the release velocity. Nil estimates it from the updates.
	Release *float64 `yaml:"release,omitempty"`

	// Move calls MoveTo.
	Move     string `yaml:"move,omitempty"`
	Animated bool   `yaml:"animated,omitempty"`

	// Wait advances the clock, ticking any settle.
	Wait time.Duration `yaml:"wait,omitempty"`
	// Settle ticks until the panel is idle.
	Settle bool `yaml:"settle,omitempty"`

	// Resize replaces the container geometry.
	Resize *GeometrySpec `yaml:"resize,omitempty"`
	// ScrollTo sets the content offset as the user would by scrolling.
	ScrollTo *float64 `yaml:"scroll-to,omitempty"`

	Expect *Expectation `yaml:"expect,omitempty"`
}

// Expectation checks the panel between steps.
type Expectation struct {
	State         string   `yaml:"state,omitempty"`
	Offset        *float64 `yaml:"offset,omitempty"`
	ContentOffset *float64 `yaml:"content-offset,omitempty"`
	Alpha         *float64 `yaml:"alpha,omitempty"`
	Removed       *bool    `yaml:"removed,omitempty"`
	// Tolerance applies to the numeric checks. Default 0.5.
	Tolerance float64 `yaml:"tolerance,omitempty"`
}

func (s Step) kind() string {
	var kinds []string
	if len(s.Drag) > 0 {
		kinds = append(kinds, "drag")
	}
	if s.Move != "" {
		kinds = append(kinds, "move")
	}
	if s.Wait > 0 {
		kinds = append(kinds, "wait")
	}
	if s.Settle {
		kinds = append(kinds, "settle")
	}
	if s.Resize != nil {
		kinds = append(kinds, "resize")
	}
	if s.ScrollTo != nil {
		kinds = append(kinds, "scroll-to")
	}
	if s.Expect != nil {
		kinds = append(kinds, "expect")
	}
	if len(kinds) != 1 {
		return ""
	}
	return kinds[0]
}

// Load reads the script at path.
func Load(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading script: %w", err)
	}
	s, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	s.dir = filepath.Dir(path)
	if s.Name == "" {
		s.Name = filepath.Base(path)
	}
	return s, nil
}

// Parse decodes a script.
func Parse(data []byte) (*Script, error) {
	var s Script
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&s); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidScript, err)
	}
	if err := s.validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

func (s *Script) validate() error {
	if s.Layout.Name == "" && s.Layout.Inline == nil {
		return fmt.Errorf("%w: layout is required", ErrInvalidScript)
	}
	if s.Geometry.Width <= 0 || s.Geometry.Height <= 0 {
		return fmt.Errorf("%w: geometry needs a positive width and height", ErrInvalidScript)
	}
	if _, ok := behaviors[s.Behavior]; !ok {
		return fmt.Errorf("%w: unknown behavior %q", ErrInvalidScript, s.Behavior)
	}
	if s.Frame < 0 {
		return fmt.Errorf("%w: negative frame", ErrInvalidScript)
	}
	for i, st := range s.Steps {
		if st.kind() == "" {
			return fmt.Errorf("%w: step %d must have exactly one action", ErrInvalidScript, i+1)
		}
		if st.ScrollTo != nil && s.Scroll == nil {
			return fmt.Errorf("%w: step %d scrolls without a scroll view", ErrInvalidScript, i+1)
		}
	}
	return nil
}

var behaviors = map[string]panel.Behavior{
	"":            nil,
	"default":     panel.DefaultBehavior{},
	"projectable": panel.ProjectableBehavior{},
}

var builtinLayouts = map[string]func() *panel.StaticLayout{
	"bottom": panel.BottomLayout,
}

// layout resolves the script's layout reference.
func (s *Script) layout() (panel.Layout, error) {
	if s.Layout.Inline != nil {
		return s.Layout.Inline.Layout()
	}
	if mk, ok := builtinLayouts[s.Layout.Name]; ok {
		return mk(), nil
	}
	path := s.Layout.Name
	if !filepath.IsAbs(path) {
		path = filepath.Join(s.dir, path)
	}
	return layoutfile.Load(path)
}

// states maps the names the script may use to the layout's states.
func states(l panel.Layout) map[string]panel.State {
	out := map[string]panel.State{panel.Hidden.Name(): panel.Hidden}
	for st := range l.Anchors() {
		out[st.Name()] = st
	}
	return out
}
