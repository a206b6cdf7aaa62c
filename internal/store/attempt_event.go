package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
)

// eventRepo implements EventRepo with ent's SQL builder and the global
// sequence counter.
type eventRepo struct {
	db  *sql.DB
	seq *sequenceCounter
}

var attemptColumns = []string{
	"sequence", "timestamp", "session_id", "learner_id", "equation",
	"step_index", "step_kind", "chosen", "correct",
	"misconception", "confidence", "severity",
}

func (r *eventRepo) AppendAttempt(ctx context.Context, data AttemptEventData) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	query, args := entsql.Dialect(dialect.SQLite).
		Insert(attemptEventsTable).
		Columns(attemptColumns...).
		Values(
			seqNum, time.Now().UTC(), data.SessionID, data.LearnerID, data.Equation,
			data.StepIndex, data.StepKind, data.Chosen, data.Correct,
			data.Misconception, data.Confidence, data.Severity,
		).
		Query()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("save attempt event: %w", err)
	}
	return nil
}

func (r *eventRepo) RecentAttempts(ctx context.Context, learnerID string, limit int) ([]AttemptEvent, error) {
	return r.QueryAttempts(ctx, QueryOpts{Learner: learnerID, Limit: limit})
}

func (r *eventRepo) QueryAttempts(ctx context.Context, opts QueryOpts) ([]AttemptEvent, error) {
	sel := entsql.Dialect(dialect.SQLite).
		Select(attemptColumns...).
		From(entsql.Table(attemptEventsTable))
	applyOpts(sel, opts)
	if opts.Learner != "" {
		sel.Where(entsql.EQ("learner_id", opts.Learner))
	}

	query, args := sel.Query()
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query attempt events: %w", err)
	}
	defer rows.Close()

	var out []AttemptEvent
	for rows.Next() {
		var e AttemptEvent
		if err := rows.Scan(
			&e.Sequence, &e.Timestamp, &e.SessionID, &e.LearnerID, &e.Equation,
			&e.StepIndex, &e.StepKind, &e.Chosen, &e.Correct,
			&e.Misconception, &e.Confidence, &e.Severity,
		); err != nil {
			return nil, fmt.Errorf("scan attempt event: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (r *eventRepo) MisconceptionCounts(ctx context.Context, learnerID string) ([]MisconceptionCount, error) {
	sel := entsql.Dialect(dialect.SQLite).
		Select("misconception", entsql.As(entsql.Count("*"), "n")).
		From(entsql.Table(attemptEventsTable)).
		Where(entsql.And(
			entsql.EQ("correct", false),
			entsql.NEQ("misconception", ""),
		)).
		GroupBy("misconception").
		OrderBy(entsql.Desc("n"), "misconception")
	if learnerID != "" {
		sel.Where(entsql.EQ("learner_id", learnerID))
	}

	query, args := sel.Query()
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("count misconceptions: %w", err)
	}
	defer rows.Close()

	var out []MisconceptionCount
	for rows.Next() {
		var c MisconceptionCount
		if err := rows.Scan(&c.Misconception, &c.Count); err != nil {
			return nil, fmt.Errorf("scan misconception count: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// applyOpts adds the shared sequence, time and limit filters, newest first.
func applyOpts(sel *entsql.Selector, opts QueryOpts) {
	if opts.After > 0 {
		sel.Where(entsql.GT("sequence", opts.After))
	}
	if opts.Before > 0 {
		sel.Where(entsql.LT("sequence", opts.Before))
	}
	if !opts.From.IsZero() {
		sel.Where(entsql.GTE("timestamp", opts.From))
	}
	if !opts.To.IsZero() {
		sel.Where(entsql.LTE("timestamp", opts.To))
	}
	sel.OrderBy(entsql.Desc("sequence"))
	if opts.Limit > 0 {
		sel.Limit(opts.Limit)
	}
}
