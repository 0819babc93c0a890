package topics

import (
	"context"
	"fmt"
	"slices"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/cfdroid/internal/catalog"
	"github.com/abhisek/cfdroid/internal/router"
	"github.com/abhisek/cfdroid/internal/screen"
	"github.com/abhisek/cfdroid/internal/screens"
	chatscreen "github.com/abhisek/cfdroid/internal/screens/chat"
	"github.com/abhisek/cfdroid/internal/screens/placeholder"
	"github.com/abhisek/cfdroid/internal/ui/layout"
	"github.com/abhisek/cfdroid/internal/ui/theme"
)

type tab int

const (
	tabBrief tab = iota
	tabSetup
	tabSpecs
	tabErrors
	tabCount
)

func (t tab) label() string {
	switch t {
	case tabSetup:
		return "Setup"
	case tabSpecs:
		return "Specs"
	case tabErrors:
		return "Errors"
	default:
		return "Brief"
	}
}

// viewRecordedMsg reports the outcome of persisting the topic visit.
type viewRecordedMsg struct {
	Err error
}

// DetailScreen shows one topic and records the visit on open.
type DetailScreen struct {
	deps    *screens.Deps
	topicID string
	topic   catalog.Topic
	found   bool
	related []catalog.Topic
	tab     tab
	scroll  int
	saveErr error
}

var _ screen.Screen = (*DetailScreen)(nil)
var _ screen.KeyHintProvider = (*DetailScreen)(nil)

// NewDetail creates the detail screen for topicID. Unknown ids render a
// not-found message.
func NewDetail(deps *screens.Deps, topicID string) *DetailScreen {
	d := &DetailScreen{deps: deps, topicID: topicID}
	d.topic, d.found = deps.Catalog.Lookup(topicID)
	if d.found {
		d.related = deps.Catalog.Related(topicID)
	}
	return d
}

func (d *DetailScreen) Init() tea.Cmd {
	if !d.found {
		return nil
	}
	tracker := d.deps.Tracker
	id := d.topicID
	return func() tea.Msg {
		_, err := tracker.RecordView(context.Background(), id)
		return viewRecordedMsg{Err: err}
	}
}

func (d *DetailScreen) Title() string {
	if !d.found {
		return "Not found"
	}
	return d.topic.Title
}

func (d *DetailScreen) KeyHints() []layout.KeyHint {
	hints := []layout.KeyHint{
		{Key: "Tab", Description: "Section"},
		{Key: "↑↓", Description: "Scroll"},
	}
	if len(d.related) > 0 {
		hints = append(hints, layout.KeyHint{Key: fmt.Sprintf("1-%d", len(d.related)), Description: "Related"})
	}
	return append(hints,
		layout.KeyHint{Key: "A", Description: "Ask Droid"},
		layout.KeyHint{Key: "H", Description: "Home"},
		layout.KeyHint{Key: "Esc", Description: "Back"},
	)
}

func (d *DetailScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case viewRecordedMsg:
		d.saveErr = msg.Err
		if msg.Err != nil {
			d.deps.Log().Warn("topic visit not saved", "topic", d.topicID, "err", msg.Err)
		}
		return d, nil

	case tea.KeyMsg:
		key := msg.String()
		switch key {
		case "tab", "right", "l":
			d.tab = (d.tab + 1) % tabCount
			d.scroll = 0
		case "shift+tab", "left", "h":
			d.tab = (d.tab - 1 + tabCount) % tabCount
			d.scroll = 0
		case "down", "j":
			d.scroll++
		case "up", "k":
			if d.scroll > 0 {
				d.scroll--
			}
		case "a", "A":
			return d, d.askDroid()
		case "H":
			return d, func() tea.Msg { return router.PopToRootMsg{} }
		default:
			if len(key) == 1 && key[0] >= '1' && key[0] <= '9' {
				idx := int(key[0] - '1')
				if idx < len(d.related) {
					next := NewDetail(d.deps, d.related[idx].ID)
					return d, func() tea.Msg { return router.PushScreenMsg{Screen: next} }
				}
			}
		}
	}
	return d, nil
}

func (d *DetailScreen) askDroid() tea.Cmd {
	if !d.found {
		return nil
	}
	var next screen.Screen
	if d.deps.ChatAvailable() {
		next = chatscreen.New(d.deps, d.topicID)
	} else {
		next = placeholder.New("Ask Droid", d.deps.ChatHint)
	}
	return func() tea.Msg { return router.PushScreenMsg{Screen: next} }
}

func (d *DetailScreen) View(width, height int) string {
	if !d.found {
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
			theme.ErrorText.Render(fmt.Sprintf("Unknown service %q", d.topicID)))
	}

	contentWidth := min(width-6, 76)
	t := d.topic

	var head strings.Builder
	head.WriteString(lipgloss.NewStyle().
		Foreground(theme.HexColor(t.Color)).
		Bold(true).
		Render(fmt.Sprintf("  %s  %s", t.Icon.Glyph(), t.Title)))
	head.WriteString("\n")
	head.WriteString(theme.Dim.Render(fmt.Sprintf("  %s · %s", t.Category, t.Description)))
	head.WriteString("\n\n")
	head.WriteString("  " + d.renderTabs())
	head.WriteString("\n")
	if d.saveErr != nil {
		head.WriteString(theme.ErrorText.Render("  Progress not saved: " + d.saveErr.Error()))
		head.WriteString("\n")
	}

	headLines := strings.Count(head.String(), "\n")
	footer := d.renderRelated()
	footLines := 0
	if footer != "" {
		footLines = strings.Count(footer, "\n") + 1
	}

	body := strings.Split(d.renderBody(contentWidth), "\n")
	room := max(height-headLines-footLines-1, 1)
	d.scroll = min(d.scroll, max(len(body)-room, 0))
	end := min(d.scroll+room, len(body))
	visible := strings.Join(body[d.scroll:end], "\n")

	out := head.String() + "\n" + visible
	if footer != "" {
		out += "\n" + footer
	}
	return lipgloss.Place(width, height, lipgloss.Left, lipgloss.Top, out)
}

func (d *DetailScreen) renderTabs() string {
	parts := make([]string, 0, tabCount)
	for t := tab(0); t < tabCount; t++ {
		if t == d.tab {
			parts = append(parts, theme.Selected.Render("["+t.label()+"]"))
		} else {
			parts = append(parts, theme.Dim.Render(" "+t.label()+" "))
		}
	}
	return strings.Join(parts, " ")
}

func (d *DetailScreen) renderBody(width int) string {
	t := d.topic
	para := lipgloss.NewStyle().Foreground(theme.Text).Width(width).PaddingLeft(2)

	var b strings.Builder
	switch d.tab {
	case tabBrief:
		b.WriteString(para.Render(t.Overview))
		b.WriteString("\n\n")
		b.WriteString(theme.Section.Render("  Free tier limits"))
		b.WriteString("\n")
		for _, l := range t.Limits {
			b.WriteString(theme.Body.Render("  • " + l))
			b.WriteString("\n")
		}

	case tabSetup:
		for i, step := range t.SetupSteps {
			if catalog.IsCommand(step) {
				b.WriteString(fmt.Sprintf("  %d. ", i+1) + theme.Code.Render(" $ "+step+" "))
			} else {
				b.WriteString(theme.Body.Render(fmt.Sprintf("  %d. %s", i+1, step)))
			}
			b.WriteString("\n")
		}

	case tabSpecs:
		if len(t.Specs) == 0 && len(t.BestPractices) == 0 {
			b.WriteString(theme.Hint.Render("  No extra specs for this service."))
			break
		}
		keys := make([]string, 0, len(t.Specs))
		for k := range t.Specs {
			keys = append(keys, k)
		}
		slices.Sort(keys)
		for _, k := range keys {
			b.WriteString(theme.Dim.Render(fmt.Sprintf("  %-16s", k)) + theme.Body.Render(t.Specs[k]))
			b.WriteString("\n")
		}
		if len(t.BestPractices) > 0 {
			b.WriteString("\n")
			b.WriteString(theme.Section.Render("  Best practices"))
			b.WriteString("\n")
			for _, p := range t.BestPractices {
				b.WriteString(theme.Body.Render("  ✓ " + p))
				b.WriteString("\n")
			}
		}

	case tabErrors:
		if len(t.CommonErrors) == 0 {
			b.WriteString(theme.Hint.Render("  No common errors recorded."))
			break
		}
		for _, e := range t.CommonErrors {
			b.WriteString(theme.Incorrect.Render("  " + e.Code))
			b.WriteString(theme.Body.Render("  " + e.Message))
			b.WriteString("\n")
			b.WriteString(theme.Dim.Render("    fix: " + e.Fix))
			b.WriteString("\n\n")
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

func (d *DetailScreen) renderRelated() string {
	if len(d.related) == 0 {
		return ""
	}
	parts := make([]string, len(d.related))
	for i, r := range d.related {
		parts[i] = fmt.Sprintf("%d %s", i+1, r.Title)
	}
	return theme.Section.Render("  Related ") + theme.Dim.Render(strings.Join(parts, "  ·  "))
}
