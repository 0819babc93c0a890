// Package templates lists starter code snippets.
package templates

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/cfdroid/internal/catalog"
	"github.com/abhisek/cfdroid/internal/screen"
	"github.com/abhisek/cfdroid/internal/ui/layout"
	"github.com/abhisek/cfdroid/internal/ui/theme"
)

// listWidth is the width of the template list column.
const listWidth = 26

// TemplatesScreen shows a template list beside the selected snippet.
type TemplatesScreen struct {
	templates []catalog.CodeTemplate
	selected  int
}

var _ screen.Screen = (*TemplatesScreen)(nil)
var _ screen.KeyHintProvider = (*TemplatesScreen)(nil)

// New creates a new TemplatesScreen.
func New() *TemplatesScreen {
	return &TemplatesScreen{templates: catalog.CodeTemplates()}
}

func (s *TemplatesScreen) Init() tea.Cmd {
	return nil
}

func (s *TemplatesScreen) Title() string {
	return "Code Templates"
}

func (s *TemplatesScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *TemplatesScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
		case "down", "j":
			if s.selected < len(s.templates)-1 {
				s.selected++
			}
		}
	}
	return s, nil
}

// Selected returns the highlighted template.
func (s *TemplatesScreen) Selected() (catalog.CodeTemplate, bool) {
	if s.selected < 0 || s.selected >= len(s.templates) {
		return catalog.CodeTemplate{}, false
	}
	return s.templates[s.selected], true
}

func (s *TemplatesScreen) View(width, height int) string {
	if len(s.templates) == 0 {
		return theme.Hint.Render("\n  No templates available.")
	}

	var list strings.Builder
	list.WriteString("\n")
	for i, t := range s.templates {
		if i == s.selected {
			list.WriteString(theme.Selected.Render("▸ "+t.Title) + "\n" + theme.Dim.Render("  "+stackLabel(t)))
		} else {
			list.WriteString(theme.Body.Render("  "+t.Title) + "\n" + theme.Dim.Render("  "+stackLabel(t)))
		}
		list.WriteString("\n\n")
	}

	t := s.templates[s.selected]
	codeWidth := max(width-listWidth-6, 20)
	code := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Foreground(theme.Highlight).
		Width(codeWidth).
		Height(max(height-4, 3)).
		Padding(0, 1).
		Render(t.CodeSnippet)

	right := theme.Section.Render(t.Title) + theme.Dim.Render("  "+stackLabel(t)) + "\n" + code

	left := lipgloss.NewStyle().Width(listWidth).Render(list.String())
	return lipgloss.JoinHorizontal(lipgloss.Top, left, "  ", right)
}

func stackLabel(t catalog.CodeTemplate) string {
	return strings.Join(t.Stack, " · ")
}
