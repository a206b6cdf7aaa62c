package store

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestLearnerSummaries(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	attempts := []AttemptEventData{
		{SessionID: "s1", LearnerID: "bo", Correct: true},
		{SessionID: "s1", LearnerID: "ana", Correct: false, Misconception: "sign_error"},
		{SessionID: "s1", LearnerID: "ana", Correct: true},
		{SessionID: "s2", LearnerID: "ana", Correct: true},
	}
	for _, a := range attempts {
		if err := repo.AppendAttempt(ctx, a); err != nil {
			t.Fatalf("append attempt: %v", err)
		}
	}

	got, err := repo.LearnerSummaries(ctx)
	if err != nil {
		t.Fatalf("summaries: %v", err)
	}
	want := []LearnerSummary{
		{LearnerID: "ana", Sessions: 2, Attempts: 3, Correct: 2},
		{LearnerID: "bo", Sessions: 1, Attempts: 1, Correct: 1},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("summaries mismatch (-want +got):\n%s", diff)
	}
	if acc := got[0].Accuracy(); acc < 0.66 || acc > 0.67 {
		t.Errorf("ana accuracy = %v, want 2/3", acc)
	}
	if (LearnerSummary{}).Accuracy() != 0 {
		t.Error("empty summary accuracy should be 0")
	}
}

func TestLLMUsageByModel(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	for _, e := range []LLMRequestEventData{
		{Model: "gpt-4o-mini", InputTokens: 100, OutputTokens: 20, LatencyMs: 300, Success: true},
		{Model: "gpt-4o-mini", InputTokens: 50, OutputTokens: 10, LatencyMs: 500, Success: true},
		{Model: "claude-haiku", InputTokens: 80, OutputTokens: 30, LatencyMs: 400, Success: true},
	} {
		if err := repo.AppendLLMRequest(ctx, e); err != nil {
			t.Fatalf("append LLM request: %v", err)
		}
	}

	got, err := repo.LLMUsageByModel(ctx)
	if err != nil {
		t.Fatalf("usage: %v", err)
	}
	want := []ModelUsage{
		{Model: "claude-haiku", Calls: 1, InputTokens: 80, OutputTokens: 30, AvgLatencyMs: 400},
		{Model: "gpt-4o-mini", Calls: 2, InputTokens: 150, OutputTokens: 30, AvgLatencyMs: 400},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("usage mismatch (-want +got):\n%s", diff)
	}
}

func TestSummariesEmpty(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()

	learners, err := repo.LearnerSummaries(context.Background())
	if err != nil || len(learners) != 0 {
		t.Errorf("LearnerSummaries = %v, %v; want empty", learners, err)
	}
	usage, err := repo.LLMUsageByModel(context.Background())
	if err != nil || len(usage) != 0 {
		t.Errorf("LLMUsageByModel = %v, %v; want empty", usage, err)
	}
}
