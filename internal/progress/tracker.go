// Package progress implements the learner's experience, level, streak and
// achievement state, its persistence and its notifications.
package progress

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"go.uber.org/zap"

	"github.com/abhisek/testlab/internal/catalog"
)

const (
	// StreakBonusEvery is the streak interval that earns a bonus.
	StreakBonusEvery = 3

	// StreakBonusXP is the bonus awarded at each streak interval.
	StreakBonusXP = 5
)

// Tracker holds the progress state for one session. All methods are safe
// for concurrent use; mutations are serialized and persisted before the
// method returns. Notifications are delivered after the state lock is
// released, in the order they happened.
type Tracker struct {
	mu           sync.Mutex
	xp           int
	level        int
	streak       int
	achievements []string // unlock order
	unlocked     map[string]bool

	store    Store
	notifier Notifier
	logger   *zap.Logger
}

// NewTracker loads the persisted snapshot from store and returns a tracker
// for it. store, notifier and logger may be nil.
func NewTracker(store Store, notifier Notifier, logger *zap.Logger) *Tracker {
	if store == nil {
		store = &MemoryStore{}
	}
	if notifier == nil {
		notifier = NopNotifier{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	snap := store.Load(context.Background())
	t := &Tracker{
		xp:       snap.XP,
		level:    LevelFor(snap.XP),
		streak:   snap.Streak,
		unlocked: make(map[string]bool, len(snap.Achievements)),
		store:    store,
		notifier: notifier,
		logger:   logger.Named("progress"),
	}
	for _, id := range snap.Achievements {
		if !t.unlocked[id] {
			t.unlocked[id] = true
			t.achievements = append(t.achievements, id)
		}
	}
	return t
}

// event is a notification queued while the lock is held.
type event func(Notifier)

// AwardXP adds amount to the experience total and re-derives the level.
// Crossing into a new level unlocks level_up. Non-positive amounts are
// ignored.
func (t *Tracker) AwardXP(amount int, reason string) {
	if amount <= 0 {
		return
	}
	t.mu.Lock()
	events := t.awardLocked(amount, reason, nil)
	t.persistLocked()
	t.mu.Unlock()
	t.dispatch(events)
}

// RegisterStreakHit extends the streak by one. Every StreakBonusEvery hits
// earn StreakBonusXP and a streak effect.
func (t *Tracker) RegisterStreakHit() {
	t.mu.Lock()
	t.streak++
	var events []event
	if t.streak%StreakBonusEvery == 0 {
		events = t.awardLocked(StreakBonusXP, "Streak Bonus!", events)
		streak := t.streak
		events = append(events, func(n Notifier) { n.StreakEffect(streak) })
	}
	t.persistLocked()
	t.mu.Unlock()
	t.dispatch(events)
}

// ResetStreak sets the streak back to zero.
func (t *Tracker) ResetStreak() {
	t.mu.Lock()
	t.streak = 0
	t.persistLocked()
	t.mu.Unlock()
}

// Unlock adds the achievement id. It reports whether the achievement was
// newly unlocked; unlocking an id that is already held is a no-op.
func (t *Tracker) Unlock(id string) bool {
	a, ok := catalog.GetAchievement(id)
	if !ok {
		t.logger.Warn("unlock of unknown achievement ignored", zap.String("id", id))
		return false
	}
	t.mu.Lock()
	events, added := t.unlockLocked(Notice{
		ID:          a.ID,
		Icon:        a.Icon,
		Title:       a.Title,
		Description: a.Notice,
	}, nil)
	if added {
		t.persistLocked()
	}
	t.mu.Unlock()
	t.dispatch(events)
	return added
}

// XP returns the experience total.
func (t *Tracker) XP() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.xp
}

// Level returns the current level.
func (t *Tracker) Level() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.level
}

// Streak returns the current streak.
func (t *Tracker) Streak() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.streak
}

// Has reports whether the achievement id is unlocked.
func (t *Tracker) Has(id string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.unlocked[id]
}

// Achievements returns the unlocked catalog ids in unlock order. Stored ids
// the catalog does not know are persisted but not listed.
func (t *Tracker) Achievements() []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return slices.DeleteFunc(slices.Clone(t.achievements), func(id string) bool {
		_, known := catalog.GetAchievement(id)
		return !known
	})
}

// Snapshot returns the current state in its persisted form.
func (t *Tracker) Snapshot() Snapshot {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.snapshotLocked()
}

// XPIntoLevel returns the experience earned inside the current level and
// the span of a level.
func (t *Tracker) XPIntoLevel() (int, int) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.xp - (t.level-1)*100, 100
}

func (t *Tracker) awardLocked(amount int, reason string, events []event) []event {
	t.xp += amount
	events = append(events, func(n Notifier) { n.XPGained(amount, reason) })

	newLevel := LevelFor(t.xp)
	if newLevel > t.level {
		from := t.level
		t.level = newLevel
		events = append(events, func(n Notifier) { n.LevelChanged(from, newLevel) })
		icon := ""
		if a, ok := catalog.GetAchievement(catalog.LevelUp); ok {
			icon = a.Icon
		}
		events, _ = t.unlockLocked(Notice{
			ID:          catalog.LevelUp,
			Icon:        icon,
			Title:       fmt.Sprintf("Level %d Reached!", newLevel),
			Description: fmt.Sprintf("You've reached level %d!", newLevel),
		}, events)
	}
	return events
}

func (t *Tracker) unlockLocked(notice Notice, events []event) ([]event, bool) {
	if t.unlocked[notice.ID] {
		return events, false
	}
	t.unlocked[notice.ID] = true
	t.achievements = append(t.achievements, notice.ID)
	events = append(events, func(n Notifier) { n.AchievementUnlocked(notice) })
	return events, true
}

func (t *Tracker) snapshotLocked() Snapshot {
	return Snapshot{
		XP:           t.xp,
		Level:        t.level,
		Streak:       t.streak,
		Achievements: append([]string{}, t.achievements...),
	}
}

func (t *Tracker) persistLocked() {
	t.store.Save(context.Background(), t.snapshotLocked())
}

func (t *Tracker) dispatch(events []event) {
	for _, e := range events {
		e(t.notifier)
	}
}
