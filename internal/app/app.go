package app

import (
	"fmt"
	"os"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/cfdroid/internal/router"
	"github.com/abhisek/cfdroid/internal/screen"
	"github.com/abhisek/cfdroid/internal/screens"
	"github.com/abhisek/cfdroid/internal/screens/home"
	"github.com/abhisek/cfdroid/internal/screens/welcome"
	"github.com/abhisek/cfdroid/internal/ui/layout"
)

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router *router.Router
	deps   *screens.Deps
	width  int
	height int
}

// newAppModel creates a new AppModel starting at the welcome screen.
func newAppModel(deps *screens.Deps, greeting string) AppModel {
	homeFactory := func() screen.Screen {
		return home.New(deps)
	}
	return AppModel{
		router: router.New(welcome.New(homeFactory, greeting)),
		deps:   deps,
	}
}

func (m AppModel) Init() tea.Cmd {
	if active := m.router.Active(); active != nil {
		return active.Init()
	}
	return nil
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			m.router.CloseAll()
			return m, tea.Quit
		case "esc":
			if c, ok := m.router.Active().(screen.InputCapturer); ok && c.CapturingInput() {
				break
			}
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
			return m, nil
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()
	crumbs := m.router.Breadcrumb()
	if len(crumbs) > 3 {
		crumbs = append([]string{"…"}, crumbs[len(crumbs)-2:]...)
	}
	title := strings.Join(crumbs, " › ")

	var stats layout.HeaderStats
	if m.deps != nil && m.deps.Tracker != nil {
		p := m.deps.Tracker.Profile()
		stats = layout.HeaderStats{Rank: string(p.Rank), Level: p.Level, Coverage: p.Coverage}
	}
	header := layout.RenderHeader(title, stats, m.width)

	var footerHints []layout.KeyHint
	if hp, ok := active.(screen.KeyHintProvider); ok {
		footerHints = hp.KeyHints()
	} else if m.router.Depth() > 1 {
		footerHints = []layout.KeyHint{
			{Key: "Esc", Description: "Back"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	} else {
		footerHints = []layout.KeyHint{
			{Key: "Any key", Description: "Continue"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}

	footer := layout.RenderFooter(footerHints, m.width)

	content := m.router.View(m.width, layout.ContentHeight(m.height))
	frame := layout.RenderFrame(header, content, footer, m.width, m.height)

	v.SetContent(frame)
	return v
}

// Run starts the Bubble Tea program. greeting is shown on the welcome
// screen.
func Run(deps *screens.Deps, greeting string) error {
	m := newAppModel(deps, greeting)
	p := tea.NewProgram(m)
	_, err := p.Run()
	m.router.CloseAll()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
