package main

import (
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	panel "github.com/grindlemire/go-panel"
	"github.com/grindlemire/go-panel/internal/config"
)

var t0 = time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)

// newTestModel returns a model on an 80x20 terminal with a controllable
// clock: full rests at row 1, half at 10 and tip at 16.
func newTestModel(t *testing.T) (*model, *time.Time) {
	t.Helper()
	m, err := newModel(demoLayout(), config.Default())
	if err != nil {
		t.Fatalf("newModel() error = %v", err)
	}
	now := t0
	m.now = func() time.Time { return now }
	m.Update(tea.WindowSizeMsg{Width: 80, Height: 20})
	if m.err != nil {
		t.Fatalf("resize error = %v", m.err)
	}
	return m, &now
}

// settle feeds frames until the panel stops.
func settle(t *testing.T, m *model, now *time.Time) {
	t.Helper()
	for i := 0; i < 500 && m.panel.Phase() == panel.PhaseSettling; i++ {
		*now = now.Add(16 * time.Millisecond)
		m.Update(tickMsg(*now))
	}
	if m.panel.Phase() == panel.PhaseSettling {
		t.Fatalf("panel still settling at %.2f", m.panel.Offset())
	}
	if m.ticking {
		t.Errorf("ticking after the settle ended")
	}
}

func key(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestModel_Resize(t *testing.T) {
	m, _ := newTestModel(t)

	set, ok := m.panel.Anchors()
	if !ok {
		t.Fatalf("anchors unresolved after resize")
	}
	want := map[panel.State]float64{panel.Full: 1, panel.Half: 10, panel.Tip: 16}
	for s, off := range want {
		if got := set.MustOffset(s); got != off {
			t.Errorf("%v offset = %v, want %v", s, got, off)
		}
	}
	if m.vp.Height != 18 {
		t.Errorf("viewport height = %d, want 18", m.vp.Height)
	}
	if m.vp.TotalLineCount() <= m.vp.Height {
		t.Errorf("content of %d lines does not scroll", m.vp.TotalLineCount())
	}

	lines := strings.Split(m.View(), "\n")
	if len(lines) != 20 {
		t.Errorf("View() has %d lines, want 20", len(lines))
	}
	if !strings.Contains(lines[0], "go-panel") {
		t.Errorf("View() first line = %q, want the title", lines[0])
	}
}

func TestModel_Keys(t *testing.T) {
	type tc struct {
		key    string
		state  panel.State
		offset float64
	}

	tests := map[string]tc{
		"full":   {key: "f", state: panel.Full, offset: 1},
		"tip":    {key: "t", state: panel.Tip, offset: 16},
		"hidden": {key: "x", state: panel.Hidden, offset: 120},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			m, now := newTestModel(t)
			_, cmd := m.Update(key(tt.key))
			if cmd == nil {
				t.Fatalf("Update(%q) scheduled no frame", tt.key)
			}
			settle(t, m, now)
			if m.panel.State() != tt.state {
				t.Errorf("State() = %v, want %v", m.panel.State(), tt.state)
			}
			if m.panel.Offset() != tt.offset {
				t.Errorf("Offset() = %v, want %v", m.panel.Offset(), tt.offset)
			}
		})
	}
}

func TestModel_Quit(t *testing.T) {
	m, _ := newTestModel(t)
	_, cmd := m.Update(key("q"))
	if cmd == nil {
		t.Fatalf("Update(q) returned no command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Errorf("Update(q) command is not quit")
	}
}

func TestModel_DragToFull(t *testing.T) {
	m, now := newTestModel(t)

	mouse := func(y int, action tea.MouseAction) {
		*now = now.Add(8 * time.Millisecond)
		m.Update(tea.MouseMsg{X: 40, Y: y, Action: action, Button: tea.MouseButtonLeft})
	}
	mouse(10, tea.MouseActionPress)
	mouse(7, tea.MouseActionMotion)
	mouse(4, tea.MouseActionMotion)
	if m.panel.Offset() != 4 {
		t.Fatalf("Offset() during drag = %v, want 4", m.panel.Offset())
	}
	mouse(4, tea.MouseActionRelease)
	settle(t, m, now)

	if m.panel.State() != panel.Full || m.panel.Offset() != 1 {
		t.Errorf("after flick up: %v at %v, want full at 1", m.panel.State(), m.panel.Offset())
	}
}

func TestModel_PressOnBackdrop(t *testing.T) {
	m, now := newTestModel(t)

	*now = now.Add(8 * time.Millisecond)
	m.Update(tea.MouseMsg{Y: 3, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	m.Update(tea.MouseMsg{Y: 1, Action: tea.MouseActionMotion, Button: tea.MouseButtonLeft})

	if m.dragging || m.panel.Phase() != panel.PhaseIdle || m.panel.Offset() != 10 {
		t.Errorf("press above the sheet moved it to %v (%v)", m.panel.Offset(), m.panel.Phase())
	}
}

func TestModel_WheelScrollsOnlyWhenFull(t *testing.T) {
	m, now := newTestModel(t)

	m.Update(tea.MouseMsg{Y: 15, Button: tea.MouseButtonWheelDown})
	if got := m.scroll.ContentOffset(); got != 0 {
		t.Errorf("ContentOffset() at half = %v, want 0", got)
	}

	m.Update(key("f"))
	settle(t, m, now)
	m.Update(tea.MouseMsg{Y: 15, Button: tea.MouseButtonWheelDown})
	m.Update(tea.MouseMsg{Y: 15, Button: tea.MouseButtonWheelDown})
	if got := m.scroll.ContentOffset(); got != 2 {
		t.Errorf("ContentOffset() at full = %v, want 2", got)
	}
	if m.vp.YOffset != 2 {
		t.Errorf("viewport YOffset = %d, want 2", m.vp.YOffset)
	}
}

func TestModel_RejectsSidePanels(t *testing.T) {
	l := panel.NewLayout(panel.Left, panel.Half, map[panel.State]panel.Anchor{
		panel.Half: panel.FractionalInset(0.5, panel.EdgeLeft, panel.GuideSuperview),
	})
	if _, err := newModel(l, config.Default()); !errors.Is(err, errNotBottom) {
		t.Errorf("newModel() error = %v, want %v", err, errNotBottom)
	}
}

func TestBackdropColor(t *testing.T) {
	tests := map[string]struct {
		alpha float64
		want  string
	}{
		"clear": {alpha: 0, want: "#282a36"},
		"black": {alpha: 1, want: "#000000"},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			if got := string(backdropColor(tt.alpha)); got != tt.want {
				t.Errorf("backdropColor(%v) = %s, want %s", tt.alpha, got, tt.want)
			}
		})
	}
}
