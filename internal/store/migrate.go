package store

import (
	"context"
	"fmt"

	"entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"
)

// Table definitions. Every event table carries the shared sequence and
// timestamp columns plus the id of the session that produced it.

var (
	// ProgressColumns holds the columns for the "progress" table.
	ProgressColumns = []*schema.Column{
		{Name: "key", Type: field.TypeString},
		{Name: "value", Type: field.TypeString, Size: 2147483647},
		{Name: "updated_at", Type: field.TypeTime},
	}
	// ProgressTable holds the schema information for the "progress" table.
	ProgressTable = &schema.Table{
		Name:       "progress",
		Columns:    ProgressColumns,
		PrimaryKey: []*schema.Column{ProgressColumns[0]},
	}

	// XPEventsColumns holds the columns for the "xp_events" table.
	XPEventsColumns = append(eventColumns(),
		&schema.Column{Name: "amount", Type: field.TypeInt},
		&schema.Column{Name: "reason", Type: field.TypeString, Default: ""},
		&schema.Column{Name: "total_xp", Type: field.TypeInt},
		&schema.Column{Name: "level", Type: field.TypeInt},
	)
	// XPEventsTable holds the schema information for the "xp_events" table.
	XPEventsTable = eventTable("xp_events", XPEventsColumns)

	// AchievementEventsColumns holds the columns for the "achievement_events" table.
	AchievementEventsColumns = append(eventColumns(),
		&schema.Column{Name: "achievement_id", Type: field.TypeString},
		&schema.Column{Name: "title", Type: field.TypeString, Default: ""},
	)
	// AchievementEventsTable holds the schema information for the "achievement_events" table.
	AchievementEventsTable = eventTable("achievement_events", AchievementEventsColumns)

	// AttemptEventsColumns holds the columns for the "attempt_events" table.
	AttemptEventsColumns = append(eventColumns(),
		&schema.Column{Name: "level", Type: field.TypeInt},
		&schema.Column{Name: "outcome", Type: field.TypeString},
		&schema.Column{Name: "score", Type: field.TypeInt, Default: 0},
		&schema.Column{Name: "total", Type: field.TypeInt, Default: 0},
		&schema.Column{Name: "accuracy", Type: field.TypeInt, Default: 0},
		&schema.Column{Name: "detail", Type: field.TypeString, Size: 2147483647, Default: ""},
	)
	// AttemptEventsTable holds the schema information for the "attempt_events" table.
	AttemptEventsTable = eventTable("attempt_events", AttemptEventsColumns)

	// LLMRequestEventsColumns holds the columns for the "llm_request_events" table.
	LLMRequestEventsColumns = append(eventColumns(),
		&schema.Column{Name: "provider", Type: field.TypeString},
		&schema.Column{Name: "model", Type: field.TypeString},
		&schema.Column{Name: "purpose", Type: field.TypeString},
		&schema.Column{Name: "input_tokens", Type: field.TypeInt, Default: 0},
		&schema.Column{Name: "output_tokens", Type: field.TypeInt, Default: 0},
		&schema.Column{Name: "latency_ms", Type: field.TypeInt64, Default: 0},
		&schema.Column{Name: "success", Type: field.TypeBool},
		&schema.Column{Name: "error_message", Type: field.TypeString, Default: ""},
		&schema.Column{Name: "request_body", Type: field.TypeString, Size: 2147483647, Default: ""},
		&schema.Column{Name: "response_body", Type: field.TypeString, Size: 2147483647, Default: ""},
	)
	// LLMRequestEventsTable holds the schema information for the "llm_request_events" table.
	LLMRequestEventsTable = eventTable("llm_request_events", LLMRequestEventsColumns)

	// Tables holds all the tables in the schema.
	Tables = []*schema.Table{
		ProgressTable,
		XPEventsTable,
		AchievementEventsTable,
		AttemptEventsTable,
		LLMRequestEventsTable,
	}

	// eventTables lists the append-only tables cleared by PurgeEvents.
	eventTables = []*schema.Table{
		XPEventsTable,
		AchievementEventsTable,
		AttemptEventsTable,
		LLMRequestEventsTable,
	}
)

// eventColumns returns the columns shared by every event table.
func eventColumns() []*schema.Column {
	return []*schema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "sequence", Type: field.TypeInt64, Unique: true},
		{Name: "timestamp", Type: field.TypeTime},
		{Name: "session_id", Type: field.TypeString, Default: ""},
	}
}

// eventTable builds an event table keyed by id with sequence, timestamp
// and session indexes.
func eventTable(name string, cols []*schema.Column) *schema.Table {
	return &schema.Table{
		Name:       name,
		Columns:    cols,
		PrimaryKey: []*schema.Column{cols[0]},
		Indexes: []*schema.Index{
			{Name: name + "_timestamp", Columns: []*schema.Column{cols[2]}},
			{Name: name + "_session_id", Columns: []*schema.Column{cols[3]}},
		},
	}
}

// migrate creates or upgrades every table.
func (s *Store) migrate(ctx context.Context) error {
	m, err := schema.NewMigrate(s.drv)
	if err != nil {
		return fmt.Errorf("new migrate: %w", err)
	}
	if err := m.Create(ctx, Tables...); err != nil {
		return fmt.Errorf("create tables: %w", err)
	}
	return nil
}
