package components

import (
	"strconv"
	"strings"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/cfdroid/internal/ui/theme"
)

var invalidMark = theme.ErrorText.Render("✗")

// TextInput is a focused single-line input. Value, SetValue, Focus, Blur
// and Focused come from the embedded bubbles model.
type TextInput struct {
	textinput.Model

	// numeric inputs take digits and at most one decimal point
	numeric bool
	invalid bool
}

func NewTextInput(placeholder string, numeric bool, limit int) TextInput {
	m := textinput.New()
	m.Prompt = "› "
	m.Placeholder = placeholder
	m.CharLimit = limit
	m.Focus()
	return TextInput{Model: m, numeric: numeric}
}

func (t TextInput) Init() tea.Cmd { return t.Model.Focus() }

func (t TextInput) Update(msg tea.Msg) (TextInput, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok && t.numeric && !t.allows(k.String()) {
		return t, nil
	}
	var cmd tea.Cmd
	t.Model, cmd = t.Model.Update(msg)
	t.invalid = false
	return t, cmd
}

// allows filters printable keys only; navigation and editing keys pass.
func (t TextInput) allows(key string) bool {
	if len(key) != 1 {
		return true
	}
	switch c := key[0]; {
	case c >= '0' && c <= '9':
		return true
	case c == '.':
		return !strings.Contains(t.Value(), ".")
	}
	return false
}

func (t TextInput) View() string {
	if t.invalid {
		return t.Model.View() + " " + invalidMark
	}
	return t.Model.View()
}

func (t *TextInput) Reset() {
	t.Model.Reset()
	t.invalid = false
}

// FloatValue parses the trimmed value. Blank reads as 0.
func (t TextInput) FloatValue() (float64, error) {
	v := strings.TrimSpace(t.Value())
	if v == "" {
		return 0, nil
	}
	return strconv.ParseFloat(v, 64)
}

// MarkInvalid shows an error marker until the next edit.
func (t *TextInput) MarkInvalid() { t.invalid = true }
