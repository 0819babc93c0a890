// Package welcome is the boot screen: the droid powers up, prints a short
// boot log and then shows the banner until a key is pressed.
package welcome

import (
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/cfdroid/internal/router"
	"github.com/abhisek/cfdroid/internal/screen"
	"github.com/abhisek/cfdroid/internal/ui/theme"
)

const (
	tickInterval = 100 * time.Millisecond
	bootStart    = 500 * time.Millisecond
	bannerStart  = 1500 * time.Millisecond
	totalDur     = 4500 * time.Millisecond
)

const droidArt = `     ╷   ╷
  ╭──┴───┴──╮
  │  ◉   ◉  │
  │   ───   │
  ├─────────┤
  │ ☁ ⚡ ☁  │
  ╰─┬─────┬─╯
    ╰─╯ ╰─╯`

var bootLog = []string{
	"» warming up edge cache",
	"» loading service catalog",
	"» restoring your progress",
	"» droid ready",
}

// antenna pulse frames, drawn either side of the droid's head
var pulse = []string{"·", "•", "●", "•"}

type tickMsg time.Time

type WelcomeScreen struct {
	homeFactory  func() screen.Screen
	greeting     string
	elapsed      time.Duration
	ticks        int
	transitioned bool
}

var _ screen.Screen = (*WelcomeScreen)(nil)

// New builds the boot screen. homeFactory is called once, on the first key
// press. greeting is shown under the tagline when set.
func New(homeFactory func() screen.Screen, greeting string) *WelcomeScreen {
	return &WelcomeScreen{homeFactory: homeFactory, greeting: greeting}
}

func (w *WelcomeScreen) Title() string { return "" }

func (w *WelcomeScreen) Init() tea.Cmd { return tick() }

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (w *WelcomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg.(type) {
	case tickMsg:
		if w.transitioned {
			return w, nil
		}
		w.elapsed = min(w.elapsed+tickInterval, totalDur)
		w.ticks++
		return w, tick()

	case tea.KeyPressMsg:
		return w, w.transition()
	}
	return w, nil
}

func (w *WelcomeScreen) transition() tea.Cmd {
	if w.transitioned {
		return nil
	}
	w.transitioned = true
	next := w.homeFactory()
	return func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} }
}

func (w *WelcomeScreen) View(width, height int) string {
	sections := []string{w.renderDroid()}

	if w.elapsed >= bootStart && w.elapsed < bannerStart {
		sections = append(sections, "", w.renderBootLog())
	}

	if w.elapsed >= bannerStart {
		sections = append(sections,
			"",
			RenderBanner(width),
			"",
			lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render("Your guide to the edge"),
		)
		if w.greeting != "" {
			sections = append(sections, lipgloss.NewStyle().Foreground(theme.Secondary).Render(w.greeting))
		}
		sections = append(sections, "", theme.Hint.Render("press any key to continue"))
	}

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, strings.Join(sections, "\n"))
}

func (w *WelcomeScreen) renderDroid() string {
	art := lipgloss.NewStyle().Foreground(theme.Primary).Render(droidArt)
	if w.elapsed < bootStart {
		return art
	}

	p := pulse[w.ticks%len(pulse)]
	a := lipgloss.NewStyle().Foreground(theme.Secondary).Render(p)
	b := lipgloss.NewStyle().Foreground(theme.Accent).Render(p)

	lines := strings.Split(art, "\n")
	for _, i := range []int{0, 3, 6} {
		if i < len(lines) {
			lines[i] = a + "  " + lines[i] + "  " + b
		}
		a, b = b, a
	}
	return strings.Join(lines, "\n")
}

// renderBootLog reveals one line per 250ms of the boot phase.
func (w *WelcomeScreen) renderBootLog() string {
	shown := min(int((w.elapsed-bootStart)/(250*time.Millisecond))+1, len(bootLog))
	style := lipgloss.NewStyle().Foreground(theme.TextDim)
	lines := make([]string, shown)
	for i := range shown {
		lines[i] = style.Render(bootLog[i])
	}
	return strings.Join(lines, "\n")
}
