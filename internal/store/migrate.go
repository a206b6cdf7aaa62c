package store

import (
	"entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"
)

// Table names.
const (
	attemptEventsTable    = "attempt_events"
	llmRequestEventsTable = "llm_request_events"
	masterySnapshotsTable = "mastery_snapshots"
)

var (
	// AttemptEventsColumns holds the columns for the "attempt_events" table.
	AttemptEventsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "sequence", Type: field.TypeInt64, Unique: true},
		{Name: "timestamp", Type: field.TypeTime},
		{Name: "session_id", Type: field.TypeString},
		{Name: "learner_id", Type: field.TypeString},
		{Name: "equation", Type: field.TypeString},
		{Name: "step_index", Type: field.TypeInt},
		{Name: "step_kind", Type: field.TypeString},
		{Name: "chosen", Type: field.TypeString},
		{Name: "correct", Type: field.TypeBool},
		{Name: "misconception", Type: field.TypeString, Default: ""},
		{Name: "confidence", Type: field.TypeFloat64, Default: 0.0},
		{Name: "severity", Type: field.TypeFloat64, Default: 0.0},
	}
	// AttemptEventsTable holds the schema information for the "attempt_events" table.
	AttemptEventsTable = &schema.Table{
		Name:       attemptEventsTable,
		Columns:    AttemptEventsColumns,
		PrimaryKey: []*schema.Column{AttemptEventsColumns[0]},
		Indexes: []*schema.Index{
			{Name: "attemptevent_learner_id", Columns: []*schema.Column{AttemptEventsColumns[4]}},
			{Name: "attemptevent_misconception", Columns: []*schema.Column{AttemptEventsColumns[10]}},
		},
	}

	// LlmRequestEventsColumns holds the columns for the "llm_request_events" table.
	LlmRequestEventsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "sequence", Type: field.TypeInt64, Unique: true},
		{Name: "timestamp", Type: field.TypeTime},
		{Name: "provider", Type: field.TypeString},
		{Name: "model", Type: field.TypeString},
		{Name: "purpose", Type: field.TypeString},
		{Name: "input_tokens", Type: field.TypeInt, Default: 0},
		{Name: "output_tokens", Type: field.TypeInt, Default: 0},
		{Name: "latency_ms", Type: field.TypeInt64, Default: 0},
		{Name: "success", Type: field.TypeBool},
		{Name: "error_message", Type: field.TypeString, Default: ""},
		{Name: "request_body", Type: field.TypeString, Size: 2147483647, Default: ""},
		{Name: "response_body", Type: field.TypeString, Size: 2147483647, Default: ""},
	}
	// LlmRequestEventsTable holds the schema information for the "llm_request_events" table.
	LlmRequestEventsTable = &schema.Table{
		Name:       llmRequestEventsTable,
		Columns:    LlmRequestEventsColumns,
		PrimaryKey: []*schema.Column{LlmRequestEventsColumns[0]},
		Indexes: []*schema.Index{
			{Name: "llmrequestevent_purpose", Columns: []*schema.Column{LlmRequestEventsColumns[5]}},
			{Name: "llmrequestevent_success", Columns: []*schema.Column{LlmRequestEventsColumns[9]}},
		},
	}

	// MasterySnapshotsColumns holds the columns for the "mastery_snapshots" table.
	MasterySnapshotsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt, Increment: true},
		{Name: "learner_id", Type: field.TypeString},
		{Name: "sequence", Type: field.TypeInt64},
		{Name: "timestamp", Type: field.TypeTime},
		{Name: "data", Type: field.TypeJSON},
	}
	// MasterySnapshotsTable holds the schema information for the "mastery_snapshots" table.
	MasterySnapshotsTable = &schema.Table{
		Name:       masterySnapshotsTable,
		Columns:    MasterySnapshotsColumns,
		PrimaryKey: []*schema.Column{MasterySnapshotsColumns[0]},
		Indexes: []*schema.Index{
			{Name: "masterysnapshot_learner_id_sequence", Columns: []*schema.Column{MasterySnapshotsColumns[1], MasterySnapshotsColumns[2]}},
		},
	}

	// Tables holds all the tables in the journal.
	Tables = []*schema.Table{
		AttemptEventsTable,
		LlmRequestEventsTable,
		MasterySnapshotsTable,
	}
)
