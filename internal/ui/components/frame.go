package components

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/cfdroid/internal/ui/theme"
)

const (
	frameChrome     = 6 // double border plus horizontal padding
	maxContentWidth = 72
	minContentWidth = 20
)

// ContentWidth is the inner width shared by every panel in a frame of
// frameWidth columns.
func ContentWidth(frameWidth int) int {
	return min(max(frameWidth-frameChrome, minContentWidth), maxContentWidth)
}

// ConsoleFrame draws the droid console: a double border filling the area
// with content centered inside.
func ConsoleFrame(content string, width, height int) string {
	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Primary).
		Width(width-2).
		Height(height-2).
		Align(lipgloss.Center, lipgloss.Center).
		Render(content)
}

func Panel(content string, cw int) string {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Padding(0, 1).
		Width(cw - 2).
		Render(content)
}

// MenuButton renders one menu row. The highlighted row is inverted and
// marked with a caret; disabled rows are dimmed and never highlighted.
func MenuButton(label string, selected, disabled bool, width int) string {
	st := lipgloss.NewStyle().Width(width).Align(lipgloss.Center).Padding(0, 1)
	switch {
	case disabled:
		return st.Foreground(theme.TextDim).Render(label)
	case selected:
		return st.Bold(true).Foreground(theme.BgDark).Background(theme.Primary).Render("▸ " + label)
	default:
		return st.Foreground(theme.Text).Render(label)
	}
}
