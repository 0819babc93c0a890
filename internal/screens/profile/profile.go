// Package profile shows rank, level and coverage for the current session.
package profile

import (
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/cfdroid/internal/progress"
	"github.com/abhisek/cfdroid/internal/router"
	"github.com/abhisek/cfdroid/internal/screen"
	"github.com/abhisek/cfdroid/internal/screens"
	"github.com/abhisek/cfdroid/internal/ui/components"
	"github.com/abhisek/cfdroid/internal/ui/layout"
	"github.com/abhisek/cfdroid/internal/ui/theme"
)

// ProfileScreen displays the derived progress profile.
type ProfileScreen struct {
	deps *screens.Deps
}

var _ screen.Screen = (*ProfileScreen)(nil)
var _ screen.KeyHintProvider = (*ProfileScreen)(nil)

// New creates a new ProfileScreen.
func New(deps *screens.Deps) *ProfileScreen {
	return &ProfileScreen{deps: deps}
}

func (s *ProfileScreen) Init() tea.Cmd {
	return nil
}

func (s *ProfileScreen) Title() string {
	return "Profile"
}

func (s *ProfileScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Back"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *ProfileScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok && kmsg.String() == "enter" {
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	}
	return s, nil
}

func (s *ProfileScreen) View(width, height int) string {
	p := s.deps.Tracker.Profile()
	cw := components.ContentWidth(width)

	var b strings.Builder

	b.WriteString(theme.Title.Render(string(p.Rank)))
	b.WriteString("\n")
	b.WriteString(theme.Dim.Render(fmt.Sprintf("Level %d", p.Level)))
	b.WriteString("\n\n")

	b.WriteString(components.NewProgressBar("Coverage", p.Coverage/100, true, cw-4).View())
	b.WriteString("\n")
	if next, req, ok := progress.NextRank(p.Rank); ok {
		b.WriteString(theme.Hint.Render(fmt.Sprintf("Next: %s (%s)", next, req)))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	b.WriteString(theme.Section.Render("Quiz"))
	b.WriteString("\n")
	if p.Quiz == nil {
		b.WriteString(theme.Dim.Render("Not taken yet"))
	} else {
		when := time.UnixMilli(p.Quiz.Timestamp).Format("Jan 02, 2006 15:04")
		b.WriteString(theme.Body.Render(fmt.Sprintf("%d / %d", p.Quiz.Score, p.Quiz.Total)))
		b.WriteString(theme.Dim.Render("  on " + when))
	}
	b.WriteString("\n\n")

	b.WriteString(theme.Section.Render("Recently viewed"))
	b.WriteString("\n")
	if len(p.Recents) == 0 {
		b.WriteString(theme.Dim.Render("Nothing yet. Open a service from the catalog."))
	}
	for i, id := range p.Recents {
		title := id
		if t, ok := s.deps.Catalog.Lookup(id); ok {
			title = t.Icon.Glyph() + " " + t.Title
		}
		style := theme.Body
		if i == 0 {
			style = theme.Selected
		}
		b.WriteString(style.Render(fmt.Sprintf("%2d. %s", i+1, title)))
		b.WriteString("\n")
	}

	panel := components.Panel(strings.TrimRight(b.String(), "\n"), cw)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, panel)
}
