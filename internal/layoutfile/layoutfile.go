// Package layoutfile decodes panel layouts from YAML documents.
//
// A document names the panel position, its initial state and one anchor per
// state:
//
//	position: bottom
//	initial: half
//	states:
//	  - name: peek
//	    order: 300
//	anchors:
//	  full: {inset: 18, edge: top, guide: safe-area}
//	  half: {fraction: 0.5, edge: bottom, guide: safe-area}
//	  peek: {intrinsic: 0}
//	  tip:  {inset: 69, edge: bottom, guide: safe-area}
//	backdrop:
//	  full: 0.3
//
// The built-in states full, half, tip and hidden are always known; states
// lists any others.
package layoutfile

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"slices"

	"github.com/agnivade/levenshtein"
	"gopkg.in/yaml.v3"

	panel "github.com/grindlemire/go-panel"
)

// ErrInvalidDocument is wrapped by every decoding error.
var ErrInvalidDocument = errors.New("invalid layout document")

// Error locates a problem in a layout document.
type Error struct {
	Field   string
	Message string
	// Hint is a "did you mean" suggestion, if any.
	Hint string
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("%s: %s", e.Field, e.Message)
	if e.Hint != "" {
		msg += " (did you mean " + e.Hint + "?)"
	}
	return msg
}

func (e *Error) Unwrap() error { return ErrInvalidDocument }

// Document is the YAML form of a layout.
type Document struct {
	Position string                `yaml:"position"`
	Initial  string                `yaml:"initial"`
	States   []StateSpec           `yaml:"states,omitempty"`
	Anchors  map[string]AnchorSpec `yaml:"anchors"`
	Backdrop map[string]float64    `yaml:"backdrop,omitempty"`
}

// StateSpec declares a custom state.
type StateSpec struct {
	Name  string `yaml:"name"`
	Order int    `yaml:"order"`
}

// AnchorSpec is one anchor. Exactly one of Inset, Fraction, Intrinsic and
// IntrinsicFraction must be set.
type AnchorSpec struct {
	Inset             *float64 `yaml:"inset,omitempty"`
	Fraction          *float64 `yaml:"fraction,omitempty"`
	Intrinsic         *float64 `yaml:"intrinsic,omitempty"`
	IntrinsicFraction *float64 `yaml:"intrinsic-fraction,omitempty"`
	Edge              string   `yaml:"edge,omitempty"`
	Guide             string   `yaml:"guide,omitempty"`
}

var positions = map[string]panel.Position{
	"top":    panel.Top,
	"left":   panel.Left,
	"bottom": panel.Bottom,
	"right":  panel.Right,
}

var edges = map[string]panel.Edge{
	"top":    panel.EdgeTop,
	"left":   panel.EdgeLeft,
	"bottom": panel.EdgeBottom,
	"right":  panel.EdgeRight,
}

var guides = map[string]panel.ReferenceGuide{
	"":          panel.GuideSuperview,
	"superview": panel.GuideSuperview,
	"safe-area": panel.GuideSafeArea,
}

// Load reads and decodes the layout document at path.
func Load(path string) (*panel.StaticLayout, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading layout: %w", err)
	}
	l, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return l, nil
}

// Parse decodes a layout document.
func Parse(data []byte) (*panel.StaticLayout, error) {
	var doc Document
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDocument, err)
	}
	return doc.Layout()
}

// Layout converts the document.
func (d Document) Layout() (*panel.StaticLayout, error) {
	pos, ok := positions[d.Position]
	if !ok {
		return nil, unknown("position", d.Position, sortedKeys(positions))
	}

	states, err := d.stateTable()
	if err != nil {
		return nil, err
	}
	lookup := func(field, name string) (panel.State, error) {
		s, ok := states[name]
		if !ok {
			return panel.State{}, unknown(field, name, sortedKeys(states))
		}
		return s, nil
	}

	if len(d.Anchors) == 0 {
		return nil, &Error{Field: "anchors", Message: "at least one anchor is required"}
	}
	anchors := make(map[panel.State]panel.Anchor, len(d.Anchors))
	for _, name := range sortedKeys(d.Anchors) {
		s, err := lookup("anchors", name)
		if err != nil {
			return nil, err
		}
		a, err := d.Anchors[name].anchor("anchors."+name, pos)
		if err != nil {
			return nil, err
		}
		anchors[s] = a
	}

	initial, err := lookup("initial", d.Initial)
	if err != nil {
		return nil, err
	}
	if _, ok := anchors[initial]; !ok && initial != panel.Hidden {
		return nil, &Error{Field: "initial", Message: fmt.Sprintf("state %q has no anchor", d.Initial)}
	}

	l := panel.NewLayout(pos, initial, anchors)
	for _, name := range sortedKeys(d.Backdrop) {
		s, err := lookup("backdrop", name)
		if err != nil {
			return nil, err
		}
		alpha := d.Backdrop[name]
		if alpha < 0 || alpha > 1 {
			return nil, &Error{Field: "backdrop." + name, Message: fmt.Sprintf("alpha %v outside [0, 1]", alpha)}
		}
		l.WithBackdropAlpha(s, alpha)
	}
	return l, nil
}

func (d Document) stateTable() (map[string]panel.State, error) {
	states := make(map[string]panel.State)
	for _, s := range panel.BuiltinStates() {
		states[s.Name()] = s
	}
	for i, spec := range d.States {
		field := fmt.Sprintf("states[%d]", i)
		if spec.Name == "" {
			return nil, &Error{Field: field, Message: "name is required"}
		}
		if _, dup := states[spec.Name]; dup {
			return nil, &Error{Field: field, Message: fmt.Sprintf("state %q already defined", spec.Name)}
		}
		states[spec.Name] = panel.NewState(spec.Name, spec.Order)
	}
	return states, nil
}

func (a AnchorSpec) anchor(field string, pos panel.Position) (panel.Anchor, error) {
	set := 0
	for _, v := range []*float64{a.Inset, a.Fraction, a.Intrinsic, a.IntrinsicFraction} {
		if v != nil {
			set++
		}
	}
	if set != 1 {
		return nil, &Error{Field: field, Message: "exactly one of inset, fraction, intrinsic, intrinsic-fraction is required"}
	}

	guide, ok := guides[a.Guide]
	if !ok {
		return nil, unknown(field+".guide", a.Guide, sortedKeys(guides))
	}

	switch {
	case a.Intrinsic != nil:
		return panel.IntrinsicOffset(*a.Intrinsic, guide), nil
	case a.IntrinsicFraction != nil:
		return panel.IntrinsicFraction(*a.IntrinsicFraction, guide), nil
	}

	edge, ok := edges[a.Edge]
	if !ok {
		return nil, unknown(field+".edge", a.Edge, sortedKeys(edges))
	}
	if pos.Horizontal() != (edge == panel.EdgeLeft || edge == panel.EdgeRight) {
		return nil, &Error{Field: field + ".edge", Message: fmt.Sprintf("%s edge cannot anchor a %s panel", a.Edge, pos)}
	}
	if a.Fraction != nil {
		return panel.FractionalInset(*a.Fraction, edge, guide), nil
	}
	return panel.AbsoluteInset(*a.Inset, edge, guide), nil
}

func unknown(field, name string, known []string) *Error {
	return &Error{
		Field:   field,
		Message: fmt.Sprintf("unknown name %q", name),
		Hint:    suggest(name, known),
	}
}

// suggest returns the known name closest to name, or "" when none is within
// three edits.
func suggest(name string, known []string) string {
	best := ""
	bestDistance := 4
	for _, k := range known {
		if k == "" {
			continue
		}
		if d := levenshtein.ComputeDistance(name, k); d < bestDistance {
			best, bestDistance = k, d
		}
	}
	return best
}

func sortedKeys[V any](m map[string]V) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	slices.Sort(out)
	return out
}
