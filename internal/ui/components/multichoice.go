package components

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/cfdroid/internal/ui/theme"
)

// ChoiceMsg is emitted when the user picks an option.
type ChoiceMsg struct {
	Index int
}

// MultiChoice is a multiple-choice selector component. It only renders
// and reports picks; scoring belongs to the caller, which calls Reveal
// once the answer is known.
type MultiChoice struct {
	Question     string
	Options      []string
	Cursor       int
	ChosenIndex  int
	CorrectIndex int
	revealed     bool
}

// NewMultiChoice creates a new multiple-choice component.
func NewMultiChoice(question string, options []string) MultiChoice {
	return MultiChoice{
		Question:     question,
		Options:      options,
		ChosenIndex:  -1,
		CorrectIndex: -1,
	}
}

// Init returns nil.
func (m MultiChoice) Init() tea.Cmd {
	return nil
}

// Update handles navigation. Enter or a number key emits ChoiceMsg.
func (m MultiChoice) Update(msg tea.Msg) (MultiChoice, tea.Cmd) {
	if m.revealed {
		return m, nil
	}

	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	key := kmsg.String()
	switch key {
	case "up", "k":
		if m.Cursor > 0 {
			m.Cursor--
		}
	case "down", "j":
		if m.Cursor < len(m.Options)-1 {
			m.Cursor++
		}
	case "enter":
		return m, choose(m.Cursor)
	default:
		if len(key) == 1 && key[0] >= '1' && key[0] <= '9' {
			idx := int(key[0] - '1')
			if idx < len(m.Options) {
				m.Cursor = idx
				return m, choose(idx)
			}
		}
	}

	return m, nil
}

func choose(idx int) tea.Cmd {
	return func() tea.Msg { return ChoiceMsg{Index: idx} }
}

// Reveal marks chosen and correct options for display and locks input.
func (m *MultiChoice) Reveal(chosen, correct int) {
	m.revealed = true
	m.ChosenIndex = chosen
	m.CorrectIndex = correct
}

// Revealed reports whether feedback is showing.
func (m MultiChoice) Revealed() bool {
	return m.revealed
}

// View renders the question and its options.
func (m MultiChoice) View(width int) string {
	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().
		Foreground(theme.Text).
		Bold(true).
		Width(width).
		Render(m.Question))
	b.WriteString("\n\n")

	for i, opt := range m.Options {
		prefix := "  "
		if i == m.Cursor && !m.revealed {
			prefix = "▸ "
		}
		line := fmt.Sprintf("%s%d)  %s", prefix, i+1, opt)

		var style lipgloss.Style
		switch {
		case m.revealed && i == m.CorrectIndex:
			style = theme.Correct
			line += "  ✓"
		case m.revealed && i == m.ChosenIndex:
			style = theme.Incorrect
			line += "  ✗"
		case m.revealed:
			style = theme.Dim
		case i == m.Cursor:
			style = theme.Selected
		default:
			style = theme.Unselected
		}
		b.WriteString(style.Render(line))
		b.WriteString("\n")
	}

	return b.String()
}

// IsCorrect returns true if the revealed choice was the correct one.
func (m MultiChoice) IsCorrect() bool {
	return m.revealed && m.ChosenIndex == m.CorrectIndex
}
