package theme

import (
	"image/color"

	"charm.land/lipgloss/v2"
)

// Palette built around the Cloudflare orange on a dark console background.
var (
	Primary   = lipgloss.Color("#F38020") // Cloudflare orange
	Secondary = lipgloss.Color("#FAAE40") // Amber
	Accent    = lipgloss.Color("#3B82F6") // Link blue
	Highlight = lipgloss.Color("#FDE68A") // Pale gold
	Success   = lipgloss.Color("#22C55E") // Green
	Warning   = lipgloss.Color("#EAB308") // Yellow
	Error     = lipgloss.Color("#EF4444") // Red
	Text      = lipgloss.Color("#F8FAFC") // White
	TextDim   = lipgloss.Color("#94A3B8") // Slate
	BgDark    = lipgloss.Color("#0B1120") // Near black
	BgCard    = lipgloss.Color("#1E293B") // Dark slate
	Border    = lipgloss.Color("#334155") // Slate
)

// Typography
var (
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary)

	Section = lipgloss.NewStyle().
		Bold(true).
		Foreground(Secondary)

	Body = lipgloss.NewStyle().
		Foreground(Text)

	Dim = lipgloss.NewStyle().
		Foreground(TextDim)

	Hint = lipgloss.NewStyle().
		Foreground(TextDim).
		Italic(true)

	Code = lipgloss.NewStyle().
		Foreground(Highlight).
		Background(BgCard)
)

// States
var (
	Selected = lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true)

	Unselected = lipgloss.NewStyle().
			Foreground(Text)

	Correct = lipgloss.NewStyle().
		Foreground(Success).
		Bold(true)

	Incorrect = lipgloss.NewStyle().
			Foreground(Error).
			Bold(true)

	ErrorText = lipgloss.NewStyle().
			Foreground(Error)
)

// Card is the rounded box used for content panels.
var Card = lipgloss.NewStyle().
	Border(lipgloss.RoundedBorder()).
	BorderForeground(Border).
	Padding(0, 1)

// SeverityColor maps a quota severity name to a color.
func SeverityColor(severity string) color.Color {
	switch severity {
	case "critical":
		return Error
	case "warn":
		return Warning
	default:
		return Success
	}
}

// HexColor parses a catalog color, falling back to Primary when empty.
func HexColor(hex string) color.Color {
	if hex == "" {
		return Primary
	}
	return lipgloss.Color(hex)
}
