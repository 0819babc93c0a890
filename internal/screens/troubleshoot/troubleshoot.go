// Package troubleshoot shows symptom → cause → fix entries per problem
// area.
package troubleshoot

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/cfdroid/internal/catalog"
	"github.com/abhisek/cfdroid/internal/screen"
	"github.com/abhisek/cfdroid/internal/ui/components"
	"github.com/abhisek/cfdroid/internal/ui/layout"
	"github.com/abhisek/cfdroid/internal/ui/theme"
)

// TroubleshootScreen shows solutions for one trouble area at a time.
type TroubleshootScreen struct {
	areas        []catalog.TroubleArea
	selectedArea int
	scrollOffset int
}

var _ screen.Screen = (*TroubleshootScreen)(nil)
var _ screen.KeyHintProvider = (*TroubleshootScreen)(nil)

// New creates a new TroubleshootScreen.
func New() *TroubleshootScreen {
	return &TroubleshootScreen{areas: catalog.AllTroubleAreas()}
}

func (s *TroubleshootScreen) Init() tea.Cmd {
	return nil
}

func (s *TroubleshootScreen) Title() string {
	return "Troubleshooting"
}

func (s *TroubleshootScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Tab", Description: "Switch area"},
		{Key: "↑↓", Description: "Scroll"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *TroubleshootScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}
	switch kmsg.String() {
	case "tab", "right", "l":
		s.selectedArea = (s.selectedArea + 1) % len(s.areas)
		s.scrollOffset = 0
	case "shift+tab", "left", "h":
		s.selectedArea = (s.selectedArea - 1 + len(s.areas)) % len(s.areas)
		s.scrollOffset = 0
	case "up", "k":
		if s.scrollOffset > 0 {
			s.scrollOffset--
		}
	case "down", "j":
		if s.scrollOffset < len(s.solutions())-1 {
			s.scrollOffset++
		}
	}
	return s, nil
}

// Area returns the selected trouble area.
func (s *TroubleshootScreen) Area() catalog.TroubleArea {
	return s.areas[s.selectedArea]
}

func (s *TroubleshootScreen) solutions() []catalog.Solution {
	return catalog.Troubleshooting(s.Area())
}

func (s *TroubleshootScreen) View(width, height int) string {
	cw := components.ContentWidth(width)
	var b strings.Builder

	var tabs []string
	for i, a := range s.areas {
		label := fmt.Sprintf("%s (%d)", a, len(catalog.Troubleshooting(a)))
		if i == s.selectedArea {
			tabs = append(tabs, theme.Selected.Render(label))
		} else {
			tabs = append(tabs, theme.Dim.Render(label))
		}
	}
	b.WriteString("\n")
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, strings.Join(tabs, "     ")))
	b.WriteString("\n\n")

	sols := s.solutions()
	if len(sols) == 0 {
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			theme.Hint.Render("No known issues in this area")))
		return b.String()
	}

	for _, sol := range sols[s.scrollOffset:] {
		var card strings.Builder
		card.WriteString(theme.Incorrect.Render("✗ " + sol.Symptom))
		card.WriteString("\n")
		card.WriteString(theme.Dim.Render("cause  ") + theme.Body.Render(sol.Cause))
		card.WriteString("\n")
		card.WriteString(theme.Dim.Render("fix    ") + theme.Correct.Render(sol.Fix))
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, components.Panel(card.String(), cw)))
		b.WriteString("\n")
	}

	return b.String()
}
