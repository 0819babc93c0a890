// Package topics renders the service catalog grouped by category, with
// an inline search box.
package topics

import (
	"fmt"
	"slices"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/cfdroid/internal/catalog"
	"github.com/abhisek/cfdroid/internal/router"
	"github.com/abhisek/cfdroid/internal/screen"
	"github.com/abhisek/cfdroid/internal/screens"
	"github.com/abhisek/cfdroid/internal/ui/components"
	"github.com/abhisek/cfdroid/internal/ui/layout"
	"github.com/abhisek/cfdroid/internal/ui/theme"
)

type rowKind int

const (
	rowCategoryHeader rowKind = iota
	rowTopic
)

type row struct {
	kind     rowKind
	category catalog.Category
	topic    *catalog.Topic
}

// TopicsScreen lists catalog topics organized by category.
type TopicsScreen struct {
	deps         *screens.Deps
	rows         []row
	cursor       int
	scrollOffset int
	search       components.TextInput
	searching    bool
	query        string
}

var _ screen.Screen = (*TopicsScreen)(nil)
var _ screen.KeyHintProvider = (*TopicsScreen)(nil)
var _ screen.InputCapturer = (*TopicsScreen)(nil)

// New creates a new TopicsScreen.
func New(deps *screens.Deps) *TopicsScreen {
	s := &TopicsScreen{
		deps:   deps,
		search: components.NewTextInput("search services", false, 40),
	}
	s.search.Blur()
	s.rebuild()
	return s
}

func (s *TopicsScreen) Init() tea.Cmd {
	return nil
}

func (s *TopicsScreen) Title() string {
	return "Services"
}

// CapturingInput keeps Esc on this screen while the search box has focus.
func (s *TopicsScreen) CapturingInput() bool {
	return s.searching
}

// KeyHints returns the key binding hints for the footer.
func (s *TopicsScreen) KeyHints() []layout.KeyHint {
	if s.searching {
		return []layout.KeyHint{
			{Key: "Enter", Description: "Apply"},
			{Key: "Esc", Description: "Clear"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Tab", Description: "Category"},
		{Key: "/", Description: "Search"},
		{Key: "Enter", Description: "Open"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *TopicsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		if s.searching {
			var cmd tea.Cmd
			s.search, cmd = s.search.Update(msg)
			return s, cmd
		}
		return s, nil
	}

	if s.searching {
		return s.updateSearch(kmsg)
	}

	switch kmsg.String() {
	case "up", "k":
		s.moveCursor(-1)
	case "down", "j":
		s.moveCursor(1)
	case "tab":
		s.nextCategory()
	case "shift+tab":
		s.prevCategory()
	case "/":
		s.searching = true
		return s, s.search.Focus()
	case "enter":
		return s, s.openTopic()
	}
	return s, nil
}

func (s *TopicsScreen) updateSearch(kmsg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	switch kmsg.String() {
	case "esc":
		s.searching = false
		s.search.Reset()
		s.search.Blur()
		s.query = ""
		s.rebuild()
		return s, nil
	case "enter":
		s.searching = false
		s.search.Blur()
		return s, nil
	case "up", "down":
		s.searching = false
		s.search.Blur()
		return s.Update(kmsg)
	}

	var cmd tea.Cmd
	s.search, cmd = s.search.Update(kmsg)
	if q := s.search.Value(); q != s.query {
		s.query = q
		s.rebuild()
	}
	return s, cmd
}

// rebuild regroups the rows for the current query.
func (s *TopicsScreen) rebuild() {
	matches := s.deps.Catalog.Search(s.query)

	var rows []row
	for _, cat := range catalog.AllCategories() {
		var inCat []catalog.Topic
		for _, t := range matches {
			if t.Category == cat {
				inCat = append(inCat, t)
			}
		}
		if len(inCat) == 0 {
			continue
		}
		rows = append(rows, row{kind: rowCategoryHeader, category: cat})
		for i := range inCat {
			rows = append(rows, row{kind: rowTopic, category: cat, topic: &inCat[i]})
		}
	}

	s.rows = rows
	s.scrollOffset = 0
	s.cursor = slices.IndexFunc(rows, func(r row) bool { return r.kind == rowTopic })
}

func (s *TopicsScreen) View(width, height int) string {
	var lines []string

	searchLine := "  " + s.search.View()
	if !s.searching && s.query == "" {
		searchLine = theme.Hint.Render("  press / to search")
	}
	lines = append(lines, searchLine)
	height--

	if s.cursor < 0 {
		lines = append(lines, "", theme.Hint.Render(fmt.Sprintf("  No services match %q", s.query)))
		return strings.Join(lines, "\n")
	}

	s.adjustScroll(height)

	visible := 0
	for i, r := range s.rows {
		if i < s.scrollOffset {
			continue
		}
		if visible >= height {
			break
		}
		switch r.kind {
		case rowCategoryHeader:
			lines = append(lines, renderCategoryHeader(r.category, width))
		case rowTopic:
			lines = append(lines, s.renderTopicRow(r, i == s.cursor, width))
		}
		visible++
	}

	return strings.Join(lines, "\n")
}

// moveCursor moves the cursor by delta, skipping category headers.
func (s *TopicsScreen) moveCursor(delta int) {
	if s.cursor < 0 {
		return
	}
	next := s.cursor + delta
	for next >= 0 && next < len(s.rows) {
		if s.rows[next].kind == rowTopic {
			s.cursor = next
			return
		}
		next += delta
	}
}

// nextCategory jumps to the first topic in the next category, wrapping.
func (s *TopicsScreen) nextCategory() {
	if s.cursor < 0 {
		return
	}
	current := s.rows[s.cursor].category
	for i := s.cursor + 1; i < len(s.rows); i++ {
		if s.rows[i].kind == rowTopic && s.rows[i].category != current {
			s.cursor = i
			return
		}
	}
	s.cursor = slices.IndexFunc(s.rows, func(r row) bool { return r.kind == rowTopic })
}

// prevCategory jumps to the first topic in the previous category.
func (s *TopicsScreen) prevCategory() {
	if s.cursor < 0 {
		return
	}
	current := s.rows[s.cursor].category
	for i := s.cursor - 1; i >= 0; i-- {
		if s.rows[i].kind == rowCategoryHeader && s.rows[i].category != current {
			s.cursor = i + 1
			return
		}
	}
}

// adjustScroll ensures the cursor is visible within the viewport.
func (s *TopicsScreen) adjustScroll(height int) {
	if height <= 0 {
		return
	}
	headerRow := s.cursor
	for headerRow > 0 && s.rows[headerRow-1].kind == rowCategoryHeader {
		headerRow--
	}
	if headerRow < s.scrollOffset {
		s.scrollOffset = headerRow
	}
	if s.cursor >= s.scrollOffset+height {
		s.scrollOffset = s.cursor - height + 1
	}
}

// Selected returns the topic under the cursor.
func (s *TopicsScreen) Selected() (catalog.Topic, bool) {
	if s.cursor < 0 || s.cursor >= len(s.rows) || s.rows[s.cursor].topic == nil {
		return catalog.Topic{}, false
	}
	return *s.rows[s.cursor].topic, true
}

func (s *TopicsScreen) openTopic() tea.Cmd {
	t, ok := s.Selected()
	if !ok {
		return nil
	}
	next := NewDetail(s.deps, t.ID)
	return func() tea.Msg {
		return router.PushScreenMsg{Screen: next}
	}
}

func renderCategoryHeader(cat catalog.Category, width int) string {
	return lipgloss.NewStyle().
		Foreground(theme.Secondary).
		Bold(true).
		Width(width).
		Padding(1, 0, 0, 2).
		Render(strings.ToUpper(string(cat)))
}

func (s *TopicsScreen) renderTopicRow(r row, selected bool, width int) string {
	t := r.topic
	visited := slices.Contains(s.deps.Tracker.Recents(), t.ID)

	nameWidth := 22
	descWidth := max(width-nameWidth-14, 10)

	desc := t.Description
	if len([]rune(desc)) > descWidth {
		desc = string([]rune(desc)[:descWidth-1]) + "…"
	}

	cursor := "  "
	nameStyle := lipgloss.NewStyle().Foreground(theme.Text)
	if selected {
		cursor = "▸ "
		nameStyle = theme.Selected
	}
	mark := " "
	if visited {
		mark = lipgloss.NewStyle().Foreground(theme.Success).Render("●")
	}

	icon := lipgloss.NewStyle().Foreground(theme.HexColor(t.Color)).Render(t.Icon.Glyph())
	return fmt.Sprintf("  %s%s %s %s  %s",
		cursor,
		icon,
		nameStyle.Render(fmt.Sprintf("%-*s", nameWidth, t.Title)),
		mark,
		theme.Dim.Render(desc),
	)
}
