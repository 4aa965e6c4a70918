package app

import (
	"fmt"
	"sync"

	"github.com/abhisek/testlab/internal/progress"
)

// Notices collects progress notifications as toast texts. The lab calls it
// from inside Update; the app drains it right after.
type Notices struct {
	mu      sync.Mutex
	pending []string
}

var _ progress.Notifier = (*Notices)(nil)

func NewNotices() *Notices {
	return &Notices{}
}

func (n *Notices) add(text string) {
	n.mu.Lock()
	n.pending = append(n.pending, text)
	n.mu.Unlock()
}

func (n *Notices) XPGained(amount int, reason string) {
	n.add(fmt.Sprintf("+%d XP · %s", amount, reason))
}

func (n *Notices) AchievementUnlocked(no progress.Notice) {
	text := fmt.Sprintf("%s %s", no.Icon, no.Title)
	if no.Description != "" {
		text += "\n" + no.Description
	}
	n.add(text)
}

func (n *Notices) StreakEffect(streak int) {
	n.add(fmt.Sprintf("🔥 %d in a row!", streak))
}

// LevelChanged is shown through the level_up achievement instead.
func (n *Notices) LevelChanged(int, int) {}

// Drain returns and clears the pending texts.
func (n *Notices) Drain() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := n.pending
	n.pending = nil
	return out
}
