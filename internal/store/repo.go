package store

import (
	"context"
	"time"
)

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit     int       // max results (0 = unlimited)
	After     int64     // sequence > After
	Before    int64     // sequence < Before
	From      time.Time // timestamp >= From
	To        time.Time // timestamp <= To
	SessionID string    // only events from this session
}

// EventMeta holds the columns every event record shares.
type EventMeta struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	SessionID string
}

// XPEventData captures a single XP award.
type XPEventData struct {
	SessionID string
	Amount    int
	Reason    string
	TotalXP   int
	Level     int
}

// XPEventRecord is a stored XP award.
type XPEventRecord struct {
	EventMeta
	Amount  int
	Reason  string
	TotalXP int
	Level   int
}

// AchievementEventData captures an achievement unlock.
type AchievementEventData struct {
	SessionID     string
	AchievementID string
	Title         string
}

// AchievementEventRecord is a stored achievement unlock.
type AchievementEventRecord struct {
	EventMeta
	AchievementID string
	Title         string
}

// AttemptEventData captures one graded attempt at a level.
type AttemptEventData struct {
	SessionID string
	Level     int
	Outcome   string
	Score     int
	Total     int
	Accuracy  int
	Detail    string
}

// AttemptEventRecord is a stored level attempt.
type AttemptEventRecord struct {
	EventMeta
	Level    int
	Outcome  string
	Score    int
	Total    int
	Accuracy int
	Detail   string
}

// LLMRequestEventData captures the data for a single LLM request event.
type LLMRequestEventData struct {
	SessionID    string
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// LLMRequestEventRecord is a stored LLM request.
type LLMRequestEventRecord struct {
	EventMeta
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// PurposeUsage aggregates LLM token usage for one purpose.
type PurposeUsage struct {
	Purpose      string
	Calls        int
	InputTokens  int
	OutputTokens int
	AvgLatencyMs int64
	Failures     int
}

// ModelUsage aggregates LLM token usage for one model.
type ModelUsage struct {
	Model        string
	Calls        int
	InputTokens  int
	OutputTokens int
}

// EventRepo provides append and query access to domain events.
type EventRepo interface {
	// AppendXP records an XP award.
	AppendXP(ctx context.Context, data XPEventData) error

	// AppendAchievement records an achievement unlock.
	AppendAchievement(ctx context.Context, data AchievementEventData) error

	// AppendAttempt records a graded level attempt.
	AppendAttempt(ctx context.Context, data AttemptEventData) error

	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	// QueryXP returns XP awards, newest first.
	QueryXP(ctx context.Context, opts QueryOpts) ([]XPEventRecord, error)

	// QueryAchievements returns achievement unlocks, newest first.
	QueryAchievements(ctx context.Context, opts QueryOpts) ([]AchievementEventRecord, error)

	// QueryAttempts returns level attempts, newest first.
	QueryAttempts(ctx context.Context, opts QueryOpts) ([]AttemptEventRecord, error)

	// QueryLLMRequests returns LLM request events, newest first.
	QueryLLMRequests(ctx context.Context, opts QueryOpts) ([]LLMRequestEventRecord, error)

	// GetLLMRequest returns a single LLM request by id, or nil if absent.
	GetLLMRequest(ctx context.Context, id int) (*LLMRequestEventRecord, error)

	// LLMUsageByPurpose aggregates token usage grouped by purpose.
	LLMUsageByPurpose(ctx context.Context) ([]PurposeUsage, error)

	// LLMUsageByModel aggregates token usage grouped by model.
	LLMUsageByModel(ctx context.Context) ([]ModelUsage, error)

	// AchievementUnlockTimes maps each achievement id to its first unlock time.
	AchievementUnlockTimes(ctx context.Context) (map[string]time.Time, error)
}
