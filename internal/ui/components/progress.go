package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/testlab/internal/ui/theme"
)

// ProgressBar is a horizontal bar filled to Percent (0 to 1).
type ProgressBar struct {
	Label   string
	Percent float64

	// Caption replaces the percentage printed after the bar when set.
	Caption string
	Width   int
}

func NewProgressBar(label string, percent float64, width int) ProgressBar {
	return ProgressBar{Label: label, Percent: percent, Width: width}
}

func (p ProgressBar) View() string {
	var result string
	if p.Label != "" {
		result += lipgloss.NewStyle().Foreground(theme.Text).Render(p.Label) + "  "
	}

	caption := p.Caption
	if caption == "" {
		caption = fmt.Sprintf("%d%%", int(p.Percent*100))
	}
	caption = "  " + caption

	barWidth := max(p.Width-lipgloss.Width(result)-lipgloss.Width(caption), 4)
	filled := min(max(int(float64(barWidth)*p.Percent), 0), barWidth)

	result += lipgloss.NewStyle().Background(theme.Secondary).Render(strings.Repeat(" ", filled))
	result += lipgloss.NewStyle().Background(theme.Border).Render(strings.Repeat(" ", barWidth-filled))
	result += lipgloss.NewStyle().Foreground(theme.TextDim).Render(caption)
	return result
}
