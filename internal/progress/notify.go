package progress

// Notice describes an achievement unlock for display.
type Notice struct {
	ID          string
	Icon        string
	Title       string
	Description string
}

// Notifier receives the side effects of progress changes. Implementations
// render them (toasts, effects) or record them; they must not block.
type Notifier interface {
	XPGained(amount int, reason string)
	AchievementUnlocked(n Notice)
	StreakEffect(streak int)
	LevelChanged(from, to int)
}

// NopNotifier discards every notification.
type NopNotifier struct{}

func (NopNotifier) XPGained(int, string)        {}
func (NopNotifier) AchievementUnlocked(Notice) {}
func (NopNotifier) StreakEffect(int)           {}
func (NopNotifier) LevelChanged(int, int)      {}

// MultiNotifier fans notifications out to several receivers in order.
type MultiNotifier []Notifier

func (m MultiNotifier) XPGained(amount int, reason string) {
	for _, n := range m {
		n.XPGained(amount, reason)
	}
}

func (m MultiNotifier) AchievementUnlocked(notice Notice) {
	for _, n := range m {
		n.AchievementUnlocked(notice)
	}
}

func (m MultiNotifier) StreakEffect(streak int) {
	for _, n := range m {
		n.StreakEffect(streak)
	}
}

func (m MultiNotifier) LevelChanged(from, to int) {
	for _, n := range m {
		n.LevelChanged(from, to)
	}
}
