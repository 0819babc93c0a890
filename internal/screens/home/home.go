package home

import (
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/cfdroid/internal/progress"
	"github.com/abhisek/cfdroid/internal/router"
	"github.com/abhisek/cfdroid/internal/screen"
	"github.com/abhisek/cfdroid/internal/screens"
	"github.com/abhisek/cfdroid/internal/screens/activity"
	"github.com/abhisek/cfdroid/internal/screens/calculator"
	chatscreen "github.com/abhisek/cfdroid/internal/screens/chat"
	"github.com/abhisek/cfdroid/internal/screens/placeholder"
	"github.com/abhisek/cfdroid/internal/screens/profile"
	quizscreen "github.com/abhisek/cfdroid/internal/screens/quiz"
	"github.com/abhisek/cfdroid/internal/screens/templates"
	"github.com/abhisek/cfdroid/internal/screens/topics"
	"github.com/abhisek/cfdroid/internal/screens/troubleshoot"
	"github.com/abhisek/cfdroid/internal/ui/components"
	"github.com/abhisek/cfdroid/internal/ui/layout"
)

// HomeScreen is the main menu. Its stats are read from the tracker on
// every render so they reflect visits made on other screens.
type HomeScreen struct {
	deps *screens.Deps
	menu components.Menu
}

var _ screen.Screen = (*HomeScreen)(nil)

// New creates a new HomeScreen.
func New(deps *screens.Deps) *HomeScreen {
	push := func(factory func() screen.Screen) func() tea.Cmd {
		return func() tea.Cmd {
			next := factory()
			return func() tea.Msg { return router.PushScreenMsg{Screen: next} }
		}
	}

	items := []components.MenuItem{
		{Label: "EXPLORE", Hint: "Browse every service by category", Action: push(func() screen.Screen {
			return topics.New(deps)
		})},
		{Label: "ASK DROID", Hint: "Chat with the assistant", Action: push(func() screen.Screen {
			if !deps.ChatAvailable() {
				return placeholder.New("Ask Droid", deps.ChatHint)
			}
			return chatscreen.New(deps, "")
		})},
		{Label: "QUIZ", Hint: "Test what you know", Action: push(func() screen.Screen {
			return quizscreen.New(deps)
		})},
		{Label: "PROFILE", Hint: "Rank, level and coverage", Action: push(func() screen.Screen {
			return profile.New(deps)
		})},
		{Label: "QUOTA CALC", Hint: "Check a workload against free-tier limits", Action: push(func() screen.Screen {
			return calculator.New()
		})},
		{Label: "TEMPLATES", Hint: "Starter code", Action: push(func() screen.Screen {
			return templates.New()
		})},
		{Label: "TROUBLESHOOT", Hint: "Common errors and fixes", Action: push(func() screen.Screen {
			return troubleshoot.New()
		})},
		{Label: "ACTIVITY", Hint: "Recent assistant requests", Disabled: deps.Events == nil, Action: push(func() screen.Screen {
			return activity.New(deps.Events)
		})},
		{Label: "EXIT", Action: func() tea.Cmd {
			return tea.Quit
		}},
	}

	return &HomeScreen{
		deps: deps,
		menu: components.NewMenu(items),
	}
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "1-9", Description: "Jump"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func (h *HomeScreen) View(width, height int) string {
	// height is the content area; add back header + footer to
	// estimate the terminal.
	compact := layout.IsCompactHeight(height+layout.HeaderHeight+layout.FooterHeight) ||
		layout.IsCompactWidth(width)

	cw := components.ContentWidth(width)
	p := h.deps.Tracker.Profile()

	var sections []string
	sections = append(sections, renderTitle(cw, compact))
	if !compact {
		sections = append(sections, renderMascotBox(h.mascotVariant(p), cw))
	}
	sections = append(sections, renderStatsBar(p, cw, compact))
	if recents := renderRecents(h.deps.Catalog, p.Recents, cw); recents != "" && !compact {
		sections = append(sections, recents)
	}
	if !h.deps.ChatAvailable() {
		sections = append(sections, renderLLMBanner(cw))
	}
	sections = append(sections, renderMenu(h.menu, cw))

	return components.ConsoleFrame(strings.Join(sections, "\n\n"), width, height)
}

func (h *HomeScreen) mascotVariant(p progress.Profile) MascotVariant {
	switch {
	case !h.deps.ChatAvailable():
		return MascotOffline
	case p.Rank == progress.RankEdgeMaster || p.Rank == progress.RankEdgeGrandmaster:
		return MascotCelebrating
	default:
		return MascotIdle
	}
}

func (h *HomeScreen) Title() string {
	return "Home"
}
