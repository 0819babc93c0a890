// Package activity lists recent assistant requests from the event log.
package activity

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/cfdroid/internal/llm"
	"github.com/abhisek/cfdroid/internal/screen"
	"github.com/abhisek/cfdroid/internal/store"
	"github.com/abhisek/cfdroid/internal/ui/layout"
	"github.com/abhisek/cfdroid/internal/ui/theme"
)

const pageSize = 50

type eventsLoadedMsg struct {
	Events []store.LLMEventRecord
	Err    error
}

// ActivityScreen displays recent LLM requests with token usage.
type ActivityScreen struct {
	eventRepo store.EventRepo
	events    []store.LLMEventRecord
	selected  int
	expanded  map[int]bool
	loaded    bool
	errMsg    string
}

var _ screen.Screen = (*ActivityScreen)(nil)
var _ screen.KeyHintProvider = (*ActivityScreen)(nil)

// New creates a new ActivityScreen.
func New(eventRepo store.EventRepo) *ActivityScreen {
	return &ActivityScreen{
		eventRepo: eventRepo,
		expanded:  make(map[int]bool),
	}
}

func (s *ActivityScreen) Init() tea.Cmd {
	repo := s.eventRepo
	return func() tea.Msg {
		if repo == nil {
			return eventsLoadedMsg{}
		}
		events, err := repo.QueryLLMEvents(context.Background(), store.QueryOpts{Limit: pageSize})
		return eventsLoadedMsg{Events: events, Err: err}
	}
}

func (s *ActivityScreen) Title() string {
	return "Assistant Activity"
}

func (s *ActivityScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Details"},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *ActivityScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case eventsLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.events = msg.Events
		}
		s.loaded = true
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
		case "down", "j":
			if s.selected < len(s.events)-1 {
				s.selected++
			}
		case "enter":
			s.expanded[s.selected] = !s.expanded[s.selected]
		}
	}
	return s, nil
}

func (s *ActivityScreen) View(width, height int) string {
	if s.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Error).
			Render(fmt.Sprintf("\n\nError: %s", s.errMsg))
	}
	if !s.loaded {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n  Loading activity...")
	}
	if len(s.events) == 0 {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
			Render("\n\n  No assistant requests yet. Ask Droid something!")
	}

	var b strings.Builder
	b.WriteString("\n")

	var totalCost float64
	for _, e := range s.events {
		totalCost += cost(e)
	}
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
		theme.Dim.Render(fmt.Sprintf("Last %d requests · est. $%.4f", len(s.events), totalCost))))
	b.WriteString("\n\n")

	// Keep the selected row in view; expanded rows take extra lines.
	start := max(s.selected-(height-4)/2, 0)
	for i := start; i < len(s.events); i++ {
		e := s.events[i]
		prefix := "  "
		if i == s.selected {
			prefix = "> "
		}

		status := "ok "
		if !e.Success {
			status = "err"
		}
		line := fmt.Sprintf("%s%s  %-11s %-26s %5d→%-5d %5dms  %s",
			prefix, e.Timestamp.Format("Jan 02 15:04"), e.Purpose, e.Model,
			e.InputTokens, e.OutputTokens, e.LatencyMs, status)

		style := lipgloss.NewStyle().Foreground(theme.Text)
		switch {
		case i == s.selected:
			style = style.Foreground(theme.Primary).Bold(true)
		case !e.Success:
			style = style.Foreground(theme.Error)
		}
		b.WriteString(style.Render(line))
		b.WriteString("\n")

		if s.expanded[i] {
			b.WriteString(s.renderDetail(e, width))
		}
	}

	return b.String()
}

func (s *ActivityScreen) renderDetail(e store.LLMEventRecord, width int) string {
	detail := lipgloss.NewStyle().Foreground(theme.TextDim).Width(width - 8).PaddingLeft(6)

	var b strings.Builder
	if e.ErrorMessage != "" {
		b.WriteString(detail.Foreground(theme.Error).Render("error: " + e.ErrorMessage))
		b.WriteString("\n")
	}
	if reply := excerpt(e.ResponseBody, 200); reply != "" {
		b.WriteString(detail.Render("reply: " + reply))
		b.WriteString("\n")
	}
	b.WriteString(detail.Render(fmt.Sprintf("provider %s · streamed %t · est. $%.5f", e.Provider, e.Streamed, cost(e))))
	b.WriteString("\n")
	return b.String()
}

func cost(e store.LLMEventRecord) float64 {
	c := llm.LookupCost(e.Model)
	if c == nil {
		return 0
	}
	return c.Cost(e.InputTokens, e.OutputTokens)
}

func excerpt(s string, n int) string {
	s = strings.Join(strings.Fields(s), " ")
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
