package welcome

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/cfdroid/internal/ui/theme"
)

const bannerArt = `
  ██████╗███████╗    ██████╗ ██████╗  ██████╗ ██╗██████╗
 ██╔════╝██╔════╝    ██╔══██╗██╔══██╗██╔═══██╗██║██╔══██╗
 ██║     █████╗      ██║  ██║██████╔╝██║   ██║██║██║  ██║
 ██║     ██╔══╝      ██║  ██║██╔══██╗██║   ██║██║██║  ██║
 ╚██████╗██║         ██████╔╝██║  ██║╚██████╔╝██║██████╔╝
  ╚═════╝╚═╝         ╚═════╝ ╚═╝  ╚═╝ ╚═════╝ ╚═╝╚═════╝`

const bannerCompact = "C F · D R O I D"

// bannerMinWidth is the narrowest terminal that fits the block banner.
const bannerMinWidth = 60

// RenderBanner returns the CF Droid banner in the primary color.
// Uses a compact fallback for narrow terminals.
func RenderBanner(width int) string {
	style := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true)

	if width < bannerMinWidth {
		return style.Render(bannerCompact)
	}
	return style.Render(bannerArt)
}
