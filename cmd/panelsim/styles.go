package main

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	panel "github.com/grindlemire/go-panel"
)

var (
	colorMuted  = lipgloss.Color("#6272A4")
	colorAccent = lipgloss.Color("#BD93F9")
	colorPass   = lipgloss.Color("#50FA7B")
	colorFail   = lipgloss.Color("#FF5555")

	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(colorAccent).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	mutedStyle  = lipgloss.NewStyle().Foreground(colorMuted)
	passStyle   = lipgloss.NewStyle().Bold(true).Foreground(colorPass)
	failStyle   = lipgloss.NewStyle().Bold(true).Foreground(colorFail)
)

// anchorTable renders the anchors of set with their backdrop alpha and the
// length of panel left visible. The initial state is marked.
func anchorTable(set panel.AnchorSet, l panel.Layout, g panel.Geometry) string {
	extent := g.Size.Height
	if set.Position().Horizontal() {
		extent = g.Size.Width
	}

	points := set.Points()
	if !set.Declared(panel.Hidden) {
		h := panel.AnchorPoint{State: panel.Hidden, Offset: set.MustOffset(panel.Hidden)}
		if h.Offset < set.Min() {
			points = append([]panel.AnchorPoint{h}, points...)
		} else {
			points = append(points, h)
		}
	}

	rows := make([][]string, 0, len(points))
	for _, p := range points {
		visible := extent - p.Offset
		if set.Position() == panel.Top || set.Position() == panel.Left {
			visible = p.Offset
		}
		name := p.State.Name()
		if p.State == l.InitialState() {
			name += " *"
		}
		rows = append(rows, []string{
			name,
			fmt.Sprint(p.State.Order()),
			fmt.Sprintf("%.1f", p.Offset),
			fmt.Sprintf("%.1f", max(visible, 0)),
			fmt.Sprintf("%.2f", l.BackdropAlpha(p.State)),
		})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(mutedStyle).
		Headers("STATE", "ORDER", "OFFSET", "VISIBLE", "BACKDROP").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
	return t.String()
}
