package welcome

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/testlab/internal/ui/theme"
)

const bannerArt = `
▀█▀ █▀▀ █▀▀ ▀█▀   █   ▄▀█ █▄▄
 █  ██▄ ▄▄█  █    █▄▄ █▀█ █▄█`

const bannerCompact = "T E S T   L A B"

// RenderBanner returns the banner in the primary colour, or a compact
// version below 40 columns.
func RenderBanner(width int) string {
	style := lipgloss.NewStyle().
		Foreground(theme.Primary).
		Bold(true)

	if width < 40 {
		return style.Render(bannerCompact)
	}
	return style.Render(bannerArt)
}
