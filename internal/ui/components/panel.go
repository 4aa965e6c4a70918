package components

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/testlab/internal/ui/theme"
)

// ContentWidth is the width every panel on a screen is drawn at, so the
// boxes line up.
func ContentWidth(frameWidth int) int {
	return min(max(frameWidth-6, 20), 72)
}

// Center places content in the middle of a width x height area.
func Center(content string, width, height int) string {
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}

// InnerWidth is the room left for content inside a Panel of width cw.
func InnerWidth(cw int) int {
	return max(cw-theme.Card.GetHorizontalFrameSize(), 1)
}

// Panel wraps content in a rounded card of content width cw.
func Panel(content string, cw int) string {
	return theme.Card.
		Width(cw).
		Render(content)
}

// Heading renders a bold section title.
func Heading(text string) string {
	return theme.Title.Render(text)
}
