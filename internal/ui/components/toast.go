package components

import (
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/testlab/internal/ui/theme"
)

// ToastExpiredMsg removes the toast with ID.
type ToastExpiredMsg struct {
	ID int
}

type toast struct {
	id   int
	text string
}

// Toasts is a stack of short-lived notices drawn over the content.
type Toasts struct {
	items  []toast
	nextID int
	ttl    time.Duration
	limit  int
}

// NewToasts keeps each notice for ttl and shows at most limit at once.
func NewToasts(ttl time.Duration, limit int) Toasts {
	return Toasts{ttl: ttl, limit: max(limit, 1)}
}

// Push adds a notice and returns the command that expires it.
func (t *Toasts) Push(text string) tea.Cmd {
	t.nextID++
	id := t.nextID
	t.items = append(t.items, toast{id: id, text: text})
	if len(t.items) > t.limit {
		t.items = t.items[len(t.items)-t.limit:]
	}
	return tea.Tick(t.ttl, func(time.Time) tea.Msg {
		return ToastExpiredMsg{ID: id}
	})
}

// Expire drops the toast with id. Unknown ids are ignored.
func (t *Toasts) Expire(id int) {
	for i, it := range t.items {
		if it.id == id {
			t.items = append(t.items[:i], t.items[i+1:]...)
			return
		}
	}
}

func (t Toasts) Len() int {
	return len(t.items)
}

// Texts returns the visible notices, oldest first.
func (t Toasts) Texts() []string {
	out := make([]string, len(t.items))
	for i, it := range t.items {
		out[i] = it.text
	}
	return out
}

func (t Toasts) View() string {
	if len(t.items) == 0 {
		return ""
	}
	lines := make([]string, len(t.items))
	for i, it := range t.items {
		lines[i] = theme.Toast.Render(it.text)
	}
	return strings.Join(lines, "\n")
}
