package placeholder

import (
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/testlab/internal/screen"
	"github.com/abhisek/testlab/internal/ui/theme"
)

// Screen stands in for a page whose backing service is unavailable, such
// as History when the lab runs without a database.
type Screen struct {
	title  string
	reason string
}

var _ screen.Screen = (*Screen)(nil)

func New(title, reason string) *Screen {
	return &Screen{title: title, reason: reason}
}

func (p *Screen) Init() tea.Cmd {
	return nil
}

func (p *Screen) Update(tea.Msg) (screen.Screen, tea.Cmd) {
	return p, nil
}

func (p *Screen) View(width, height int) string {
	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center).
		Foreground(theme.TextDim).
		Render("╌╌ " + p.title + " ╌╌\n\n" + p.reason)
}

func (p *Screen) Title() string {
	return p.title
}
