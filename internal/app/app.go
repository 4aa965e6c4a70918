package app

import (
	"fmt"
	"os"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/testlab/internal/lab"
	"github.com/abhisek/testlab/internal/router"
	"github.com/abhisek/testlab/internal/screen"
	"github.com/abhisek/testlab/internal/screens/home"
	"github.com/abhisek/testlab/internal/screens/welcome"
	"github.com/abhisek/testlab/internal/store"
	"github.com/abhisek/testlab/internal/ui/components"
	"github.com/abhisek/testlab/internal/ui/layout"
)

// maxToasts is how many notices are stacked at once.
const maxToasts = 3

// Options configures the TUI.
type Options struct {
	Lab *lab.Lab

	// Notices must be the notifier the lab was created with for toasts to
	// appear. Nil disables toasts.
	Notices *Notices
	Events  store.EventRepo

	AdvanceDelay   time.Duration
	NoticeDuration time.Duration

	// StartLevel opens level 1, 2 or 3 straight away. Zero shows home.
	StartLevel int

	// Intro plays the welcome screen first.
	Intro bool
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	lab     *lab.Lab
	notices *Notices
	router  *router.Router
	toasts  components.Toasts
	start   tea.Cmd
	width   int
	height  int
}

func newAppModel(opts Options) *AppModel {
	h := home.New(opts.Lab, home.Options{Events: opts.Events, AdvanceDelay: opts.AdvanceDelay})

	var initial screen.Screen = h
	var start tea.Cmd
	switch {
	case opts.StartLevel >= 1 && opts.StartLevel <= 3:
		level := h.Level(opts.StartLevel)
		start = func() tea.Msg { return router.PushScreenMsg{Screen: level} }
	case opts.Intro:
		initial = welcome.New(func() screen.Screen { return h })
	}

	return &AppModel{
		lab:     opts.Lab,
		notices: opts.Notices,
		router:  router.New(initial),
		toasts:  components.NewToasts(opts.NoticeDuration, maxToasts),
		start:   start,
	}
}

func (m *AppModel) Init() tea.Cmd {
	return tea.Batch(m.router.Active().Init(), m.start)
}

func (m *AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case components.ToastExpiredMsg:
		m.toasts.Expire(msg.ID)
		return m, nil

	case tea.KeyPressMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
			return m, nil
		case "q":
			if c, ok := m.router.Active().(screen.InputCapturer); ok && c.CapturingInput() {
				break
			}
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
			return m, tea.Quit
		}
	}

	cmd := m.router.Update(msg)
	return m, tea.Batch(cmd, m.drainNotices())
}

// drainNotices turns whatever the lab reported during this update into
// toasts.
func (m *AppModel) drainNotices() tea.Cmd {
	if m.notices == nil {
		return nil
	}
	var cmds []tea.Cmd
	for _, text := range m.notices.Drain() {
		cmds = append(cmds, m.toasts.Push(text))
	}
	return tea.Batch(cmds...)
}

func (m *AppModel) View() tea.View {
	v := tea.NewView(m.render())
	v.AltScreen = true
	return v
}

func (m *AppModel) render() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	if layout.IsTooSmall(m.width, m.height) {
		return layout.RenderMinSizeMessage(m.width, m.height)
	}

	active := m.router.Active()
	p := m.lab.Progress()
	header := layout.RenderHeader(active.Title(), layout.Stats{
		XP:     p.XP(),
		Level:  p.Level(),
		Streak: p.Streak(),
	}, m.width)
	footer := layout.RenderFooter(m.footerHints(active), m.width)

	contentHeight := layout.ContentHeight(header, footer, m.height)
	content := ""
	if t := m.toasts.View(); t != "" {
		block := lipgloss.PlaceHorizontal(m.width, lipgloss.Right, t)
		contentHeight = max(contentHeight-lipgloss.Height(block), 0)
		content = block + "\n"
	}
	content += m.router.View(m.width, contentHeight)

	return layout.RenderFrame(header, content, footer, m.width, m.height)
}

func (m *AppModel) footerHints(active screen.Screen) []layout.KeyHint {
	if p, ok := active.(screen.KeyHintProvider); ok {
		if hints := p.KeyHints(); len(hints) > 0 {
			return hints
		}
	}
	if m.router.Depth() > 1 {
		return []layout.KeyHint{
			{Key: "Esc", Description: "Back"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "Q", Description: "Quit"},
	}
}

// Run starts the TUI and blocks until it exits.
func Run(opts Options) error {
	p := tea.NewProgram(newAppModel(opts))
	if _, err := p.Run(); err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
