package components

import (
	"fmt"
	"image/color"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/cfdroid/internal/ui/theme"
)

const minBarCells = 4

// ProgressBar is a one-line gauge. Percent is a fraction and is clamped
// to [0, 1] when drawn.
type ProgressBar struct {
	Label       string
	Percent     float64
	ShowPercent bool
	Width       int
	Fill        color.Color
}

func NewProgressBar(label string, percent float64, showPercent bool, width int) ProgressBar {
	return ProgressBar{Label: label, Percent: percent, ShowPercent: showPercent, Width: width, Fill: theme.Primary}
}

// WithFill returns a copy drawn in c. Quota gauges use it to switch to
// the warning colors.
func (p ProgressBar) WithFill(c color.Color) ProgressBar {
	p.Fill = c
	return p
}

func (p ProgressBar) View() string {
	var b strings.Builder
	if p.Label != "" {
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Render(p.Label))
		b.WriteString("  ")
	}

	suffix := ""
	pct := min(max(p.Percent, 0), 1)
	if p.ShowPercent {
		suffix = fmt.Sprintf("  %d%%", int(pct*100))
	}

	cells := max(p.Width-lipgloss.Width(b.String())-len(suffix), minBarCells)
	filled := int(float64(cells) * pct)

	fill := p.Fill
	if fill == nil {
		fill = theme.Primary
	}
	b.WriteString(lipgloss.NewStyle().Foreground(fill).Render(strings.Repeat("█", filled)))
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("░", cells-filled)))
	if suffix != "" {
		b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).Render(suffix))
	}
	return b.String()
}
