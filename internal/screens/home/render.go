package home

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/cfdroid/internal/catalog"
	"github.com/abhisek/cfdroid/internal/progress"
	"github.com/abhisek/cfdroid/internal/ui/components"
	"github.com/abhisek/cfdroid/internal/ui/theme"
)

const titleFull = `╔═╗╔═╗  ╔╦╗╦═╗╔═╗╦╔╦╗
║  ╠╣    ║║╠╦╝║ ║║ ║║
╚═╝╚    ═╩╝╩╚═╚═╝╩═╩╝`

const titleCompact = "C F · D R O I D"

// buttonWidth is the fixed width for menu buttons.
const buttonWidth = 24

// renderTitle returns the styled title block or compact fallback.
func renderTitle(cw int, compact bool) string {
	art := titleFull
	if compact {
		art = titleCompact
	}
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Foreground(theme.Primary).
		Bold(true).
		Render(art)
}

// renderStatsBar renders rank, level and coverage in a bordered box.
func renderStatsBar(p progress.Profile, cw int, compact bool) string {
	rankStyle := lipgloss.NewStyle().Foreground(theme.Highlight).Bold(true)
	levelStyle := lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true)
	covStyle := lipgloss.NewStyle().Foreground(theme.Accent).Bold(true)

	var stats string
	if compact {
		stats = fmt.Sprintf("%s %s %s",
			rankStyle.Render(string(p.Rank)),
			levelStyle.Render(fmt.Sprintf("L%d", p.Level)),
			covStyle.Render(fmt.Sprintf("%.0f%%", p.Coverage)),
		)
	} else {
		stats = fmt.Sprintf("%s   %s   %s",
			rankStyle.Render("★ "+strings.ToUpper(string(p.Rank))),
			levelStyle.Render(fmt.Sprintf("LEVEL %d", p.Level)),
			covStyle.Render(fmt.Sprintf("%.0f%% COVERED", p.Coverage)),
		)
	}

	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Secondary).
		Width(cw - 2). // account for border chars
		Align(lipgloss.Center).
		Padding(0, 1).
		Render(stats)
}

// renderRecents renders the last few visited topics on one line.
func renderRecents(cat *catalog.Catalog, recents []string, cw int) string {
	if len(recents) == 0 {
		return ""
	}
	shown := recents[:min(len(recents), 3)]
	names := make([]string, 0, len(shown))
	for _, id := range shown {
		if t, ok := cat.Lookup(id); ok {
			names = append(names, t.Icon.Glyph()+" "+t.Title)
		}
	}
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render("Recent: " + strings.Join(names, "  "))
}

// renderMenu renders each menu item as a fixed-width button.
func renderMenu(m components.Menu, cw int) string {
	var buttons []string
	for i, item := range m.Items {
		buttons = append(buttons, components.MenuButton(item.Label, i == m.Selected, item.Disabled, buttonWidth))
	}

	block := strings.Join(buttons, "\n")
	if item, ok := m.Current(); ok && item.Hint != "" {
		block += "\n\n" + theme.Hint.Render(item.Hint)
	}

	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(block)
}

// renderLLMBanner renders a warning when no assistant is configured.
func renderLLMBanner(cw int) string {
	return lipgloss.NewStyle().
		Foreground(theme.Warning).
		Width(cw).
		Align(lipgloss.Center).
		Render("⚠ Droid is offline. Set an LLM API key to chat (see cfdroid --help)")
}

// renderMascotBox renders the mascot centered at content width.
func renderMascotBox(variant MascotVariant, cw int) string {
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(RenderMascot(variant))
}
