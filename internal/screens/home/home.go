package home

import (
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/testlab/internal/lab"
	"github.com/abhisek/testlab/internal/router"
	"github.com/abhisek/testlab/internal/screen"
	"github.com/abhisek/testlab/internal/screens/architect"
	"github.com/abhisek/testlab/internal/screens/detective"
	"github.com/abhisek/testlab/internal/screens/history"
	"github.com/abhisek/testlab/internal/screens/placeholder"
	"github.com/abhisek/testlab/internal/screens/planner"
	"github.com/abhisek/testlab/internal/screens/reference"
	"github.com/abhisek/testlab/internal/screens/report"
	"github.com/abhisek/testlab/internal/screens/trophies"
	"github.com/abhisek/testlab/internal/store"
	"github.com/abhisek/testlab/internal/ui/components"
)

// Menu positions.
const (
	itemLevel1 = iota
	itemLevel2
	itemLevel3
	itemReport
	itemTrophies
	itemHistory
	itemReference
	itemQuit
)

// Options configures the home screen and the screens it opens.
type Options struct {
	// Events backs History and trophy dates. Nil shows a placeholder.
	Events store.EventRepo

	// AdvanceDelay is how long Level 1 feedback stays up.
	AdvanceDelay time.Duration
}

// HomeScreen is the main menu.
type HomeScreen struct {
	lab  *lab.Lab
	opts Options
	menu components.Menu
}

var _ screen.Screen = (*HomeScreen)(nil)

func New(l *lab.Lab, opts Options) *HomeScreen {
	h := &HomeScreen{lab: l, opts: opts}

	push := func(build func() screen.Screen) func() tea.Cmd {
		return func() tea.Cmd {
			return func() tea.Msg { return router.PushScreenMsg{Screen: build()} }
		}
	}

	items := []components.MenuItem{
		itemLevel1:    {Label: "Level 1 · Data Detective", Action: push(func() screen.Screen { return h.Level(1) })},
		itemLevel2:    {Label: "Level 2 · Test Set Architect", Action: push(func() screen.Screen { return h.Level(2) })},
		itemLevel3:    {Label: "Level 3 · Test Planner", Action: push(func() screen.Screen { return h.Level(3) })},
		itemReport:    {Label: "Progress Report", Action: push(func() screen.Screen { return report.New(l) })},
		itemTrophies:  {Label: "Trophies", Action: push(func() screen.Screen { return trophies.New(l.Progress(), opts.Events) })},
		itemHistory:   {Label: "History", Action: push(h.historyScreen)},
		itemReference: {Label: "Reference Tests", Action: push(func() screen.Screen { return reference.New() })},
		itemQuit:      {Label: "Quit", Action: func() tea.Cmd { return tea.Quit }},
	}
	h.menu = components.NewMenu(items)
	return h
}

// Level returns the screen for level n (1 to 3), or nil.
func (h *HomeScreen) Level(n int) screen.Screen {
	switch n {
	case 1:
		return detective.New(h.lab, h.opts.AdvanceDelay)
	case 2:
		return architect.New(h.lab)
	case 3:
		return planner.New(h.lab)
	}
	return nil
}

func (h *HomeScreen) historyScreen() screen.Screen {
	if h.opts.Events == nil {
		return placeholder.New("History", "History needs the progress database.\nRun without --db=memory to keep a record.")
	}
	return history.New(h.opts.Events)
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

// refreshDetails writes each level's status next to its menu entry.
func (h *HomeScreen) refreshDetails() {
	q := h.lab.Quiz()
	switch {
	case q.Complete():
		h.menu.Items[itemLevel1].Detail = fmt.Sprintf("✓ %d/%d", q.Score(), q.Total())
	case q.Score() > 0:
		h.menu.Items[itemLevel1].Detail = fmt.Sprintf("%d/%d so far", q.Score(), q.Total())
	default:
		h.menu.Items[itemLevel1].Detail = ""
	}
	h.menu.Items[itemLevel2].Detail = tierDetail(h.lab.Level2Tier().String(), h.lab.Level2Tier().Complete())
	h.menu.Items[itemLevel3].Detail = tierDetail(h.lab.Level3Tier().String(), h.lab.Level3Tier().Complete())
	h.menu.Items[itemReport].Detail = h.lab.Rating().StarText()
}

func tierDetail(tier string, done bool) string {
	switch {
	case tier == "none":
		return ""
	case done:
		return "✓ " + tier
	default:
		return tier
	}
}

func (h *HomeScreen) View(width, height int) string {
	h.refreshDetails()

	compact := height < 30 || width < 100
	cw := components.ContentWidth(width)
	r := h.lab.Rating()

	sections := []string{renderTitle(cw, compact)}
	if !compact {
		sections = append(sections, renderTagline(cw), renderMascotBox(mascotFor(r.Stars, r.Certified), cw))
	}
	sections = append(sections,
		renderStatsBar(h.lab.Progress().XP(), h.lab.Progress().Level(), r, cw),
		lipgloss.NewStyle().Width(cw).Render(h.menu.View()),
		renderCoachNote(h.lab.CoachEnabled(), cw),
	)

	return components.Center(strings.Join(sections, "\n\n"), width, height)
}

func (h *HomeScreen) Title() string {
	return "Home"
}
