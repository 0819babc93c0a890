package home

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/cfdroid/internal/ui/theme"
)

// MascotVariant selects which droid art to display.
type MascotVariant int

const (
	MascotIdle        MascotVariant = iota // Default orange
	MascotCelebrating                      // Gold, star eyes: top ranks
	MascotOffline                          // Dim, no assistant configured
)

const mascotIdle = `  ╷   ╷
╭─┴───┴─╮
│ ◉   ◉ │
│  ───  │
╰─┬───┬─╯`

const mascotCelebrating = `  ╷ ★ ╷
╭─┴───┴─╮
│ ★   ★ │
│  ╰─╯  │
╰─┬───┬─╯`

const mascotOffline = `  ╷   ╷
╭─┴───┴─╮
│ -   - │ z
│  ───  │
╰─┬───┬─╯`

// RenderMascot returns the droid art for the given variant.
func RenderMascot(v MascotVariant) string {
	art := mascotIdle
	fg := theme.Primary

	switch v {
	case MascotCelebrating:
		art = mascotCelebrating
		fg = theme.Highlight
	case MascotOffline:
		art = mascotOffline
		fg = theme.TextDim
	}

	return lipgloss.NewStyle().
		Foreground(fg).
		Render(art)
}
