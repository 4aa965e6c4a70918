package components

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/testlab/internal/classify"
	"github.com/abhisek/testlab/internal/ui/theme"
)

// KindPicker is a row of the four test data types. Arrows move the
// highlight; enter or a number key picks one.
type KindPicker struct {
	Selected int
}

// Update returns the picked kind, or "" when the key did not pick one.
func (p KindPicker) Update(msg tea.Msg) (KindPicker, classify.Kind) {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return p, ""
	}
	n := len(classify.AllKinds)
	switch key := kmsg.String(); key {
	case "left", "h", "up", "k":
		p.Selected = (p.Selected + n - 1) % n
	case "right", "l", "down", "j":
		p.Selected = (p.Selected + 1) % n
	case "enter":
		return p, classify.AllKinds[p.Selected]
	case "1", "2", "3", "4":
		p.Selected = int(key[0] - '1')
		return p, classify.AllKinds[p.Selected]
	}
	return p, ""
}

func (p KindPicker) View() string {
	parts := make([]string, len(classify.AllKinds))
	for i, k := range classify.AllKinds {
		label := fmt.Sprintf("%d %s", i+1, k.DisplayName())
		if i == p.Selected {
			parts[i] = theme.ButtonActive.Render(label)
		} else {
			parts[i] = theme.KindColor(k).Padding(0, 2).Render(label)
		}
	}
	return strings.Join(parts, " ")
}

// CycleKind steps through "" and the four kinds. delta is +1 or -1.
func CycleKind(k classify.Kind, delta int) classify.Kind {
	opts := append([]classify.Kind{""}, classify.AllKinds...)
	i := 0
	for j, o := range opts {
		if o == k {
			i = j
		}
	}
	n := len(opts)
	return opts[((i+delta)%n+n)%n]
}
