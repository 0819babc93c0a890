// Package placeholder renders a stand-in for a feature that cannot run,
// such as Ask Droid without a configured backend.
package placeholder

import (
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/cfdroid/internal/screen"
	"github.com/abhisek/cfdroid/internal/ui/layout"
	"github.com/abhisek/cfdroid/internal/ui/theme"
)

const defaultMessage = "This feature is not available right now."

type PlaceholderScreen struct {
	title   string
	message string
}

var (
	_ screen.Screen          = (*PlaceholderScreen)(nil)
	_ screen.KeyHintProvider = (*PlaceholderScreen)(nil)
)

// New uses defaultMessage when message is empty.
func New(title, message string) *PlaceholderScreen {
	if message == "" {
		message = defaultMessage
	}
	return &PlaceholderScreen{title: title, message: message}
}

func (p *PlaceholderScreen) Init() tea.Cmd { return nil }

func (p *PlaceholderScreen) Update(tea.Msg) (screen.Screen, tea.Cmd) { return p, nil }

func (p *PlaceholderScreen) Title() string { return p.title }

func (p *PlaceholderScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{{Key: "Esc", Description: "Back"}}
}

func (p *PlaceholderScreen) View(width, height int) string {
	heading := lipgloss.NewStyle().
		Foreground(theme.Warning).
		Bold(true).
		Render("╌╌ " + p.title + " offline ╌╌")
	body := lipgloss.NewStyle().
		Foreground(theme.Text).
		Width(min(width, 60)).
		Align(lipgloss.Center).
		Render(p.message)

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center, heading, "", body))
}
