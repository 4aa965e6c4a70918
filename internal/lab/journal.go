package lab

import (
	"context"

	"go.uber.org/zap"

	"github.com/abhisek/testlab/internal/progress"
	"github.com/abhisek/testlab/internal/store"
)

// journal is a progress.Notifier that appends XP awards and achievement
// unlocks to the event log. Write failures are logged and dropped.
type journal struct {
	events    store.EventRepo
	sessionID string
	totals    func() (xp, level int)
	logger    *zap.Logger
}

func (j *journal) XPGained(amount int, reason string) {
	xp, level := j.totals()
	err := j.events.AppendXP(context.Background(), store.XPEventData{
		SessionID: j.sessionID,
		Amount:    amount,
		Reason:    reason,
		TotalXP:   xp,
		Level:     level,
	})
	if err != nil {
		j.logger.Warn("record xp event failed", zap.Error(err))
	}
}

func (j *journal) AchievementUnlocked(n progress.Notice) {
	err := j.events.AppendAchievement(context.Background(), store.AchievementEventData{
		SessionID:     j.sessionID,
		AchievementID: n.ID,
		Title:         n.Title,
	})
	if err != nil {
		j.logger.Warn("record achievement event failed", zap.String("achievement", n.ID), zap.Error(err))
	}
}

func (j *journal) StreakEffect(int)      {}
func (j *journal) LevelChanged(int, int) {}
