package home

import (
	"fmt"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/testlab/internal/rating"
	"github.com/abhisek/testlab/internal/ui/theme"
)

const titleFull = `▀█▀ █▀▀ █▀▀ ▀█▀   █   ▄▀█ █▄▄
 █  ██▄ ▄▄█  █    █▄▄ █▀█ █▄█`

const titleCompact = "T · E · S · T   L · A · B"

func renderTitle(cw int, compact bool) string {
	art := titleFull
	if compact {
		art = titleCompact
	}
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render(art))
}

// renderTagline names the scenario every level is set in.
func renderTagline(cw int) string {
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render("Learn valid, invalid, boundary and erroneous test data\nwith Shropshire Arbor Services")
}

func renderStatsBar(xp, level int, r rating.Rating, cw int) string {
	stats := fmt.Sprintf("%s  %s  %s",
		lipgloss.NewStyle().Foreground(theme.Accent).Bold(true).Render(fmt.Sprintf("XP %d", xp)),
		lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true).Render(fmt.Sprintf("LEVEL %d", level)),
		lipgloss.NewStyle().Foreground(theme.Accent).Render(r.StarText()),
	)
	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Secondary).
		Width(cw).
		Align(lipgloss.Center).
		Render(stats)
}

func renderMascotBox(v MascotVariant, cw int) string {
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(RenderMascot(v))
}

func renderCoachNote(enabled bool, cw int) string {
	text := "Coach: rule-based hints (set llm.api_key for AI explanations)"
	if enabled {
		text = "Coach: AI explanations on"
	}
	return lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Width(cw).
		Align(lipgloss.Center).
		Render(text)
}
