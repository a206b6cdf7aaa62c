package store

import (
	"context"
	"fmt"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
)

func (r *eventRepo) LearnerSummaries(ctx context.Context) ([]LearnerSummary, error) {
	query, args := entsql.Dialect(dialect.SQLite).
		Select(
			"learner_id",
			entsql.As(entsql.Count(entsql.Distinct("session_id")), "sessions"),
			entsql.As(entsql.Count("*"), "attempts"),
			entsql.As(entsql.Sum("correct"), "correct"),
		).
		From(entsql.Table(attemptEventsTable)).
		GroupBy("learner_id").
		OrderBy("learner_id").
		Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("summarize learners: %w", err)
	}
	defer rows.Close()

	var out []LearnerSummary
	for rows.Next() {
		var s LearnerSummary
		if err := rows.Scan(&s.LearnerID, &s.Sessions, &s.Attempts, &s.Correct); err != nil {
			return nil, fmt.Errorf("scan learner summary: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *eventRepo) LLMUsageByModel(ctx context.Context) ([]ModelUsage, error) {
	query, args := entsql.Dialect(dialect.SQLite).
		Select(
			"model",
			entsql.As(entsql.Count("*"), "calls"),
			entsql.As(entsql.Sum("input_tokens"), "input_tokens"),
			entsql.As(entsql.Sum("output_tokens"), "output_tokens"),
			entsql.As(entsql.Avg("latency_ms"), "avg_latency_ms"),
		).
		From(entsql.Table(llmRequestEventsTable)).
		GroupBy("model").
		OrderBy("model").
		Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("aggregate LLM usage: %w", err)
	}
	defer rows.Close()

	var out []ModelUsage
	for rows.Next() {
		var u ModelUsage
		if err := rows.Scan(&u.Model, &u.Calls, &u.InputTokens, &u.OutputTokens, &u.AvgLatencyMs); err != nil {
			return nil, fmt.Errorf("scan model usage: %w", err)
		}
		out = append(out, u)
	}
	return out, rows.Err()
}
