// Package calculator is the free-tier usage calculator screen.
package calculator

import (
	"fmt"
	"strconv"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/cfdroid/internal/quota"
	"github.com/abhisek/cfdroid/internal/screen"
	"github.com/abhisek/cfdroid/internal/ui/components"
	"github.com/abhisek/cfdroid/internal/ui/layout"
	"github.com/abhisek/cfdroid/internal/ui/theme"
)

type field struct {
	label string
	unit  string
	input components.TextInput
}

// CalculatorScreen evaluates planned usage against free-tier limits as the
// user types.
type CalculatorScreen struct {
	fields  []field
	focused int
	report  quota.Report
	errMsg  string
}

var _ screen.Screen = (*CalculatorScreen)(nil)
var _ screen.KeyHintProvider = (*CalculatorScreen)(nil)

// New creates a calculator seeded with quota.DefaultUsage.
func New() *CalculatorScreen {
	u := quota.DefaultUsage()
	s := &CalculatorScreen{
		fields: []field{
			newField("Requests", "/ day", u.Requests),
			newField("Storage", "GB", u.StorageGB),
			newField("AI neurons", "/ day", u.Neurons),
		},
	}
	for i := 1; i < len(s.fields); i++ {
		s.fields[i].input.Blur()
	}
	s.evaluate()
	return s
}

func newField(label, unit string, v float64) field {
	in := components.NewTextInput("0", true, 12)
	in.SetValue(strconv.FormatFloat(v, 'f', -1, 64))
	return field{label: label, unit: unit, input: in}
}

func (s *CalculatorScreen) Init() tea.Cmd {
	return s.fields[s.focused].input.Init()
}

func (s *CalculatorScreen) Title() string {
	return "Quota Calculator"
}

func (s *CalculatorScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Tab", Description: "Next field"},
		{Key: "0-9", Description: "Edit"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *CalculatorScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "tab", "down", "enter":
			return s, s.focus(s.focused + 1)
		case "shift+tab", "up":
			return s, s.focus(s.focused - 1)
		}
	}

	var cmd tea.Cmd
	s.fields[s.focused].input, cmd = s.fields[s.focused].input.Update(msg)
	s.evaluate()
	return s, cmd
}

func (s *CalculatorScreen) focus(i int) tea.Cmd {
	n := len(s.fields)
	s.fields[s.focused].input.Blur()
	s.focused = (i%n + n) % n
	return s.fields[s.focused].input.Focus()
}

// Usage parses the current field values.
func (s *CalculatorScreen) Usage() (quota.Usage, error) {
	vals := make([]float64, len(s.fields))
	for i := range s.fields {
		v, err := s.fields[i].input.FloatValue()
		if err != nil {
			s.fields[i].input.MarkInvalid()
			return quota.Usage{}, fmt.Errorf("%s: not a number", s.fields[i].label)
		}
		vals[i] = v
	}
	return quota.Usage{Requests: vals[0], StorageGB: vals[1], Neurons: vals[2]}, nil
}

func (s *CalculatorScreen) evaluate() {
	u, err := s.Usage()
	if err != nil {
		s.errMsg = err.Error()
		return
	}
	r, err := quota.Evaluate(u)
	if err != nil {
		s.errMsg = err.Error()
		return
	}
	s.errMsg = ""
	s.report = r
}

// Report returns the latest valid evaluation.
func (s *CalculatorScreen) Report() quota.Report {
	return s.report
}

func (s *CalculatorScreen) View(width, height int) string {
	cw := components.ContentWidth(width)
	var b strings.Builder

	b.WriteString(theme.Section.Render("Planned usage"))
	b.WriteString("\n")
	for i, f := range s.fields {
		label := theme.Dim.Render(fmt.Sprintf("%-12s", f.label))
		if i == s.focused {
			label = theme.Selected.Render(fmt.Sprintf("%-12s", f.label))
		}
		b.WriteString(label + f.input.View() + theme.Dim.Render(" "+f.unit))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	b.WriteString(theme.Section.Render("Free tier"))
	b.WriteString("\n")
	for _, l := range s.report.Lines {
		sev := quota.SeverityFor(l.Percent)
		bar := components.NewProgressBar(fmt.Sprintf("%-9s", l.Resource), l.Percent/100, true, cw-16).
			WithFill(theme.SeverityColor(string(sev)))
		tag := lipgloss.NewStyle().Foreground(theme.SeverityColor(string(sev))).Bold(l.Alert()).Render(l.Label)
		b.WriteString(bar.View() + "  " + tag)
		b.WriteString("\n")
	}
	b.WriteString("\n")

	total := lipgloss.NewStyle().
		Foreground(theme.SeverityColor(string(s.report.Severity))).
		Bold(true).
		Render(fmt.Sprintf("Overall load %.1f%% · %s", s.report.Total, strings.ToUpper(string(s.report.Severity))))
	b.WriteString(total)

	if s.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(theme.ErrorText.Render(s.errMsg))
	}

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
		components.Panel(b.String(), cw))
}
