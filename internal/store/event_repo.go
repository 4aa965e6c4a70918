package store

import (
	"context"
	"fmt"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
)

// eventRepo implements EventRepo with entsql query builders.
type eventRepo struct {
	drv *entsql.Driver
	seq *sequenceCounter
}

var metaColumns = []string{"id", "sequence", "timestamp", "session_id"}

// appendEvent inserts one row into table, stamping it with the next global
// sequence number and the current time.
func (r *eventRepo) appendEvent(ctx context.Context, table, sessionID string, cols []string, vals []any) error {
	seq, err := r.seq.Next(ctx)
	if err != nil {
		return err
	}

	allCols := append([]string{"sequence", "timestamp", "session_id"}, cols...)
	allVals := append([]any{seq, time.Now().UTC(), sessionID}, vals...)

	query, args := entsql.Dialect(dialect.SQLite).
		Insert(table).
		Columns(allCols...).
		Values(allVals...).
		Query()

	if err := r.drv.Exec(ctx, query, args, nil); err != nil {
		return fmt.Errorf("append %s: %w", table, err)
	}
	return nil
}

func (r *eventRepo) AppendXP(ctx context.Context, data XPEventData) error {
	return r.appendEvent(ctx, XPEventsTable.Name, data.SessionID,
		[]string{"amount", "reason", "total_xp", "level"},
		[]any{data.Amount, data.Reason, data.TotalXP, data.Level})
}

func (r *eventRepo) AppendAchievement(ctx context.Context, data AchievementEventData) error {
	return r.appendEvent(ctx, AchievementEventsTable.Name, data.SessionID,
		[]string{"achievement_id", "title"},
		[]any{data.AchievementID, data.Title})
}

func (r *eventRepo) AppendAttempt(ctx context.Context, data AttemptEventData) error {
	return r.appendEvent(ctx, AttemptEventsTable.Name, data.SessionID,
		[]string{"level", "outcome", "score", "total", "accuracy", "detail"},
		[]any{data.Level, data.Outcome, data.Score, data.Total, data.Accuracy, data.Detail})
}

func (r *eventRepo) AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error {
	return r.appendEvent(ctx, LLMRequestEventsTable.Name, data.SessionID,
		[]string{
			"provider", "model", "purpose", "input_tokens", "output_tokens",
			"latency_ms", "success", "error_message", "request_body", "response_body",
		},
		[]any{
			data.Provider, data.Model, data.Purpose, data.InputTokens, data.OutputTokens,
			data.LatencyMs, data.Success, data.ErrorMessage, data.RequestBody, data.ResponseBody,
		})
}

// queryEvents selects meta columns plus cols from table, newest first,
// and hands each row to scan.
func queryEvents[T any](
	ctx context.Context,
	drv *entsql.Driver,
	table string,
	cols []string,
	opts QueryOpts,
	scan func(rows *entsql.Rows) (T, error),
) ([]T, error) {
	sel := entsql.Dialect(dialect.SQLite).
		Select(append(append([]string{}, metaColumns...), cols...)...).
		From(entsql.Table(table))

	if opts.After > 0 {
		sel.Where(entsql.GT("sequence", opts.After))
	}
	if opts.Before > 0 {
		sel.Where(entsql.LT("sequence", opts.Before))
	}
	if !opts.From.IsZero() {
		sel.Where(entsql.GTE("timestamp", opts.From.UTC()))
	}
	if !opts.To.IsZero() {
		sel.Where(entsql.LTE("timestamp", opts.To.UTC()))
	}
	if opts.SessionID != "" {
		sel.Where(entsql.EQ("session_id", opts.SessionID))
	}
	sel.OrderBy(entsql.Desc("sequence"))
	if opts.Limit > 0 {
		sel.Limit(opts.Limit)
	}

	query, args := sel.Query()
	rows := &entsql.Rows{}
	if err := drv.Query(ctx, query, args, rows); err != nil {
		return nil, fmt.Errorf("query %s: %w", table, err)
	}
	defer rows.Close()

	var out []T
	for rows.Next() {
		rec, err := scan(rows)
		if err != nil {
			return nil, fmt.Errorf("scan %s: %w", table, err)
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (r *eventRepo) QueryXP(ctx context.Context, opts QueryOpts) ([]XPEventRecord, error) {
	return queryEvents(ctx, r.drv, XPEventsTable.Name,
		[]string{"amount", "reason", "total_xp", "level"}, opts,
		func(rows *entsql.Rows) (XPEventRecord, error) {
			var rec XPEventRecord
			err := rows.Scan(&rec.ID, &rec.Sequence, &rec.Timestamp, &rec.SessionID,
				&rec.Amount, &rec.Reason, &rec.TotalXP, &rec.Level)
			return rec, err
		})
}

func (r *eventRepo) QueryAchievements(ctx context.Context, opts QueryOpts) ([]AchievementEventRecord, error) {
	return queryEvents(ctx, r.drv, AchievementEventsTable.Name,
		[]string{"achievement_id", "title"}, opts,
		func(rows *entsql.Rows) (AchievementEventRecord, error) {
			var rec AchievementEventRecord
			err := rows.Scan(&rec.ID, &rec.Sequence, &rec.Timestamp, &rec.SessionID,
				&rec.AchievementID, &rec.Title)
			return rec, err
		})
}

func (r *eventRepo) QueryAttempts(ctx context.Context, opts QueryOpts) ([]AttemptEventRecord, error) {
	return queryEvents(ctx, r.drv, AttemptEventsTable.Name,
		[]string{"level", "outcome", "score", "total", "accuracy", "detail"}, opts,
		func(rows *entsql.Rows) (AttemptEventRecord, error) {
			var rec AttemptEventRecord
			err := rows.Scan(&rec.ID, &rec.Sequence, &rec.Timestamp, &rec.SessionID,
				&rec.Level, &rec.Outcome, &rec.Score, &rec.Total, &rec.Accuracy, &rec.Detail)
			return rec, err
		})
}

var llmColumns = []string{
	"provider", "model", "purpose", "input_tokens", "output_tokens",
	"latency_ms", "success", "error_message", "request_body", "response_body",
}

func scanLLMRequest(rows *entsql.Rows) (LLMRequestEventRecord, error) {
	var rec LLMRequestEventRecord
	err := rows.Scan(&rec.ID, &rec.Sequence, &rec.Timestamp, &rec.SessionID,
		&rec.Provider, &rec.Model, &rec.Purpose, &rec.InputTokens, &rec.OutputTokens,
		&rec.LatencyMs, &rec.Success, &rec.ErrorMessage, &rec.RequestBody, &rec.ResponseBody)
	return rec, err
}

func (r *eventRepo) QueryLLMRequests(ctx context.Context, opts QueryOpts) ([]LLMRequestEventRecord, error) {
	return queryEvents(ctx, r.drv, LLMRequestEventsTable.Name, llmColumns, opts, scanLLMRequest)
}

func (r *eventRepo) GetLLMRequest(ctx context.Context, id int) (*LLMRequestEventRecord, error) {
	query, args := entsql.Dialect(dialect.SQLite).
		Select(append(append([]string{}, metaColumns...), llmColumns...)...).
		From(entsql.Table(LLMRequestEventsTable.Name)).
		Where(entsql.EQ("id", id)).
		Query()

	rows := &entsql.Rows{}
	if err := r.drv.Query(ctx, query, args, rows); err != nil {
		return nil, fmt.Errorf("get llm request %d: %w", id, err)
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, rows.Err()
	}
	rec, err := scanLLMRequest(rows)
	if err != nil {
		return nil, fmt.Errorf("scan llm request %d: %w", id, err)
	}
	return &rec, nil
}

func (r *eventRepo) LLMUsageByPurpose(ctx context.Context) ([]PurposeUsage, error) {
	return r.llmUsageBy(ctx, "purpose")
}

func (r *eventRepo) LLMUsageByModel(ctx context.Context) ([]ModelUsage, error) {
	usage, err := r.llmUsageBy(ctx, "model")
	if err != nil {
		return nil, err
	}
	out := make([]ModelUsage, len(usage))
	for i, u := range usage {
		out[i] = ModelUsage{
			Model:        u.Purpose,
			Calls:        u.Calls,
			InputTokens:  u.InputTokens,
			OutputTokens: u.OutputTokens,
		}
	}
	return out, nil
}

// llmUsageBy aggregates LLM request rows grouped by column. The grouping
// value is returned in the Purpose field.
func (r *eventRepo) llmUsageBy(ctx context.Context, column string) ([]PurposeUsage, error) {
	query, args := entsql.Dialect(dialect.SQLite).
		Select(
			column,
			entsql.As(entsql.Count("*"), "calls"),
			entsql.As(entsql.Sum("input_tokens"), "input_total"),
			entsql.As(entsql.Sum("output_tokens"), "output_total"),
			entsql.As(entsql.Avg("latency_ms"), "avg_latency"),
		).
		From(entsql.Table(LLMRequestEventsTable.Name)).
		GroupBy(column).
		OrderBy(column).
		Query()

	rows := &entsql.Rows{}
	if err := r.drv.Query(ctx, query, args, rows); err != nil {
		return nil, fmt.Errorf("llm usage by %s: %w", column, err)
	}

	var out []PurposeUsage
	index := make(map[string]int)
	for rows.Next() {
		var u PurposeUsage
		var avg float64
		if err := rows.Scan(&u.Purpose, &u.Calls, &u.InputTokens, &u.OutputTokens, &avg); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan llm usage: %w", err)
		}
		u.AvgLatencyMs = int64(avg)
		index[u.Purpose] = len(out)
		out = append(out, u)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, err
	}
	rows.Close()

	// The single connection must be released by the first result set
	// before the failure count runs.
	query, args = entsql.Dialect(dialect.SQLite).
		Select(column, entsql.As(entsql.Count("*"), "failures")).
		From(entsql.Table(LLMRequestEventsTable.Name)).
		Where(entsql.EQ("success", false)).
		GroupBy(column).
		Query()

	failRows := &entsql.Rows{}
	if err := r.drv.Query(ctx, query, args, failRows); err != nil {
		return nil, fmt.Errorf("llm failures by %s: %w", column, err)
	}
	defer failRows.Close()

	for failRows.Next() {
		var key string
		var n int
		if err := failRows.Scan(&key, &n); err != nil {
			return nil, fmt.Errorf("scan llm failures: %w", err)
		}
		if i, ok := index[key]; ok {
			out[i].Failures = n
		}
	}
	return out, failRows.Err()
}

func (r *eventRepo) AchievementUnlockTimes(ctx context.Context) (map[string]time.Time, error) {
	query, args := entsql.Dialect(dialect.SQLite).
		Select("achievement_id", "timestamp").
		From(entsql.Table(AchievementEventsTable.Name)).
		OrderBy(entsql.Asc("sequence")).
		Query()

	rows := &entsql.Rows{}
	if err := r.drv.Query(ctx, query, args, rows); err != nil {
		return nil, fmt.Errorf("achievement times: %w", err)
	}
	defer rows.Close()

	out := make(map[string]time.Time)
	for rows.Next() {
		var id string
		var ts time.Time
		if err := rows.Scan(&id, &ts); err != nil {
			return nil, fmt.Errorf("scan achievement time: %w", err)
		}
		if _, seen := out[id]; !seen {
			out[id] = ts
		}
	}
	return out, rows.Err()
}
