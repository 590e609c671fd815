package main

import (
	_ "embed"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/lucasb-eyer/go-colorful"

	panel "github.com/grindlemire/go-panel"
	"github.com/grindlemire/go-panel/internal/config"
)

//go:embed content.md
var content string

// errNotBottom rejects layouts the demo cannot draw.
var errNotBottom = errors.New("paneldemo draws bottom panels only")

type (
	tickMsg      time.Time
	layoutMsg    struct{}
	reloadErrMsg struct{ err error }
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#BD93F9"))
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6272A4"))
	errStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF5555"))
	handleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#F8F8F2")).Background(lipgloss.Color("#44475A"))
	sheetStyle  = lipgloss.NewStyle().Background(lipgloss.Color("#21222C"))

	backdropBase = colorful.Color{R: 0x28 / 255.0, G: 0x2A / 255.0, B: 0x36 / 255.0}
)

// demoLayout is a bottom sheet measured in terminal cells.
func demoLayout() *panel.StaticLayout {
	return panel.NewLayout(panel.Bottom, panel.Half, map[panel.State]panel.Anchor{
		panel.Full: panel.AbsoluteInset(1, panel.EdgeTop, panel.GuideSuperview),
		panel.Half: panel.FractionalInset(0.5, panel.EdgeBottom, panel.GuideSuperview),
		panel.Tip:  panel.AbsoluteInset(4, panel.EdgeBottom, panel.GuideSuperview),
	}).WithBackdropAlpha(panel.Full, 0.6).WithBackdropAlpha(panel.Half, 0.2)
}

type model struct {
	panel  *panel.Panel
	vp     viewport.Model
	scroll *viewportScroll
	frame  time.Duration
	now    func() time.Time

	width, height int
	rendered      int // width the content was rendered at

	dragging bool
	lastY    int
	ticking  bool
	lastTick time.Time
	err      error
}

func newModel(l panel.Layout, cfg config.Config) (*model, error) {
	if l.Position() != panel.Bottom {
		return nil, errNotBottom
	}
	m := &model{
		vp:    viewport.New(0, 0),
		frame: cfg.FrameInterval(),
		now:   time.Now,
	}
	m.scroll = newViewportScroll(&m.vp)

	p, err := panel.New(l, append(cfg.Options(), panel.WithScrollView(m.scroll))...)
	if err != nil {
		return nil, err
	}
	m.panel = p
	return m, nil
}

func (m *model) Init() tea.Cmd { return nil }

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.err = m.panel.SetGeometry(panel.Geometry{
			Size: panel.Size{Width: float64(msg.Width), Height: float64(msg.Height)},
		})
		m.layoutContent()
		return m, m.startTicking()

	case layoutMsg:
		m.err = nil
		if m.panel.Layout().Position() != panel.Bottom {
			m.err = errNotBottom
		}
		m.layoutContent()
		return m, m.startTicking()

	case reloadErrMsg:
		m.err = msg.err
		return m, nil

	case tea.KeyMsg:
		return m, m.handleKey(msg)

	case tea.MouseMsg:
		return m, m.handleMouse(msg)

	case tickMsg:
		t := time.Time(msg)
		m.panel.Tick(t.Sub(m.lastTick))
		m.lastTick = t
		if m.panel.Phase() != panel.PhaseSettling {
			m.ticking = false
			return m, nil
		}
		return m, m.tick()
	}
	return m, nil
}

func (m *model) handleKey(msg tea.KeyMsg) tea.Cmd {
	targets := map[string]panel.State{
		"f": panel.Full,
		"h": panel.Half,
		"t": panel.Tip,
		"x": panel.Hidden,
	}
	switch key := msg.String(); key {
	case "q", "esc", "ctrl+c":
		return tea.Quit
	default:
		s, ok := targets[key]
		if !ok {
			return nil
		}
		m.err = m.panel.MoveTo(s, true, nil)
		return m.startTicking()
	}
}

func (m *model) handleMouse(msg tea.MouseMsg) tea.Cmd {
	switch {
	case msg.Button == tea.MouseButtonWheelUp:
		m.scroll.scrollBy(-1)
	case msg.Button == tea.MouseButtonWheelDown:
		m.scroll.scrollBy(1)
	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
		top := m.panelTop()
		sheet := panel.Rect{Y: float64(top), Width: float64(m.width), Height: float64(m.height - top)}
		if !sheet.Contains(float64(msg.X), float64(msg.Y)) {
			return nil
		}
		m.dragging = true
		m.lastY = msg.Y
		m.panel.BeginGesture(m.now())
	case msg.Action == tea.MouseActionMotion && m.dragging:
		dy := msg.Y - m.lastY
		m.lastY = msg.Y
		if dy != 0 {
			m.panel.UpdateGesture(panel.Vector{Y: float64(dy)}, m.now())
		}
	case msg.Action == tea.MouseActionRelease && m.dragging:
		m.dragging = false
		m.panel.EndGestureEstimated()
		return m.startTicking()
	}
	return nil
}

// startTicking schedules frames while the panel settles.
func (m *model) startTicking() tea.Cmd {
	if m.ticking || m.panel.Phase() != panel.PhaseSettling {
		return nil
	}
	m.ticking = true
	m.lastTick = m.now()
	return m.tick()
}

func (m *model) tick() tea.Cmd {
	return tea.Tick(m.frame, func(t time.Time) tea.Msg { return tickMsg(t) })
}

// layoutContent sizes the viewport to the sheet at its most expanded anchor
// and renders the content for the current width.
func (m *model) layoutContent() {
	set, ok := m.panel.Anchors()
	if !ok || m.width <= 0 {
		return
	}
	m.vp.Width = m.width
	m.vp.Height = max(m.height-int(math.Ceil(set.MostExpanded().Offset))-1, 1)

	if m.rendered != m.width {
		m.rendered = m.width
		r, err := glamour.NewTermRenderer(
			glamour.WithStandardStyle("dark"),
			glamour.WithWordWrap(max(m.width-4, 20)),
		)
		if err == nil {
			var out string
			if out, err = r.Render(content); err == nil {
				m.vp.SetContent(out)
			}
		}
		if err != nil {
			m.vp.SetContent(content)
		}
	}
	limit := max(m.scroll.ContentLength()-m.scroll.ViewportLength(), 0)
	if m.scroll.ContentOffset() > limit {
		m.scroll.SetContentOffset(limit)
	}
}

// panelTop is the first terminal row covered by the sheet.
func (m *model) panelTop() int {
	return min(max(int(math.Round(m.panel.Offset())), 0), m.height)
}

func backdropColor(alpha float64) lipgloss.Color {
	return lipgloss.Color(backdropBase.BlendRgb(colorful.Color{}, alpha).Clamped().Hex())
}

func (m *model) View() string {
	if m.width <= 0 || m.height <= 0 {
		return ""
	}
	top := m.panelTop()
	backdrop := lipgloss.NewStyle().Width(m.width).Background(backdropColor(m.panel.BackdropAlpha()))
	fit := func(s string) string { return ansi.Truncate(s, m.width, "…") }

	header := []string{
		titleStyle.Render(" go-panel"),
		statusStyle.Render(fmt.Sprintf(" %s  offset %.1f  near %s  %s",
			m.panel.State(), m.panel.Offset(), m.panel.NearbyState(), m.panel.Phase())),
	}
	if m.err != nil {
		header = append(header, errStyle.Render(" "+m.err.Error()))
	}

	rows := make([]string, 0, m.height)
	for y := 0; y < top; y++ {
		line := ""
		if y < len(header) {
			line = header[y]
		}
		rows = append(rows, backdrop.Render(fit(line)))
	}
	if top < m.height {
		grip := strings.Repeat("━", 6)
		pad := max((m.width-ansi.StringWidth(grip))/2, 0)
		rows = append(rows, handleStyle.Width(m.width).Render(fit(strings.Repeat(" ", pad)+grip)))
	}
	body := strings.Split(m.vp.View(), "\n")
	for i := 0; len(rows) < m.height; i++ {
		line := ""
		if i < len(body) {
			line = body[i]
		}
		rows = append(rows, sheetStyle.Width(m.width).Render(fit(line)))
	}
	return strings.Join(rows, "\n")
}
