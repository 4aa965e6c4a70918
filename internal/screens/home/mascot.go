package home

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/testlab/internal/ui/theme"
)

// MascotVariant selects which mascot art to display.
type MascotVariant int

const (
	MascotIdle        MascotVariant = iota
	MascotCelebrating               // certified
	MascotCurious                   // nothing earned yet
)

const mascotIdle = `┌─────┐
│ ◉ ◉ │
│  ▽  │
│ ✓✗? │
└─────┘`

const mascotCelebrating = `┌─────┐
│ ★ ★ │
│  ▿  │
│ ✓✓✓ │
└─╥═╥─┘
  ╚═╝`

const mascotCurious = `┌─────┐
│ ◉ ◉ │ ?
│  ▽  │
│ ✓✗? │
└─────┘`

// mascotFor picks the variant for a rating.
func mascotFor(stars int, certified bool) MascotVariant {
	switch {
	case certified:
		return MascotCelebrating
	case stars == 0:
		return MascotCurious
	default:
		return MascotIdle
	}
}

// RenderMascot returns the art for v.
func RenderMascot(v MascotVariant) string {
	art, fg := mascotIdle, theme.Primary
	switch v {
	case MascotCelebrating:
		art, fg = mascotCelebrating, theme.Accent
	case MascotCurious:
		art, fg = mascotCurious, theme.Secondary
	}
	return lipgloss.NewStyle().Foreground(fg).Render(art)
}
