// Package reference shows the worked validator and its test run.
package reference

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/testlab/internal/catalog"
	ref "github.com/abhisek/testlab/internal/reference"
	"github.com/abhisek/testlab/internal/screen"
	"github.com/abhisek/testlab/internal/ui/components"
	"github.com/abhisek/testlab/internal/ui/layout"
	"github.com/abhisek/testlab/internal/ui/theme"
)

type Screen struct {
	results  []ref.Result
	showCode bool
}

var _ screen.Screen = (*Screen)(nil)
var _ screen.KeyHintProvider = (*Screen)(nil)

func New() *Screen {
	return &Screen{results: ref.Run(catalog.ReferenceCases())}
}

func (s *Screen) Init() tea.Cmd {
	return nil
}

func (s *Screen) Title() string {
	return "Reference Tests"
}

func (s *Screen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "C", Description: "Show/hide code"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *Screen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if k, ok := msg.(tea.KeyPressMsg); ok && (k.String() == "c" || k.String() == "C") {
		s.showCode = !s.showCode
	}
	return s, nil
}

func (s *Screen) View(width, height int) string {
	cw := components.ContentWidth(width)
	var b strings.Builder

	b.WriteString(components.Heading("🌳 Running Shropshire Arbor Services Test Suite..."))
	b.WriteString("\n\n")
	for _, r := range s.results {
		style := theme.Correct
		if !r.Pass {
			style = theme.Incorrect
		}
		b.WriteString(style.UnsetBold().Render(r.Line()))
		b.WriteString("\n")
	}

	if s.showCode {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).Render(ref.Source))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(theme.Hint.Render("🎯 This is exactly what professional testers do!"))
	return components.Center(components.Panel(b.String(), cw), width, height)
}
