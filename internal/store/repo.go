package store

import (
	"context"
	"time"
)

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit   int       // max results (0 = unlimited)
	After   int64     // sequence > After
	Before  int64     // sequence < Before
	From    time.Time // timestamp >= From
	To      time.Time // timestamp <= To
	Learner string    // attempt events only
	Purpose string    // LLM events only
}

// AttemptEventData is one graded answer.
type AttemptEventData struct {
	SessionID     string
	LearnerID     string
	Equation      string
	StepIndex     int
	StepKind      string
	Chosen        string
	Correct       bool
	Misconception string // top hypothesis, "unknown_error", or empty when correct
	Confidence    float64
	Severity      float64
}

// AttemptEvent is a stored attempt.
type AttemptEvent struct {
	Sequence  int64
	Timestamp time.Time
	AttemptEventData
}

// LLMRequestEventData captures the data for a single LLM request event.
type LLMRequestEventData struct {
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

// LLMRequestEvent is a stored LLM request.
type LLMRequestEvent struct {
	Sequence  int64
	Timestamp time.Time
	LLMRequestEventData
}

// MisconceptionCount is one row of a learner's error breakdown.
type MisconceptionCount struct {
	Misconception string
	Count         int
}

// LearnerSummary is one learner's journal totals.
type LearnerSummary struct {
	LearnerID string
	Sessions  int
	Attempts  int
	Correct   int
}

// Accuracy is the share of correct attempts.
func (s LearnerSummary) Accuracy() float64 {
	if s.Attempts == 0 {
		return 0
	}
	return float64(s.Correct) / float64(s.Attempts)
}

// ModelUsage aggregates LLM requests to one model.
type ModelUsage struct {
	Model        string
	Calls        int
	InputTokens  int
	OutputTokens int
	AvgLatencyMs float64
}

// EventRepo provides append and query access to journal events.
type EventRepo interface {
	// AppendAttempt records a graded answer.
	AppendAttempt(ctx context.Context, data AttemptEventData) error

	// AppendLLMRequest records an LLM API call.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	// RecentAttempts returns a learner's attempts, newest first.
	RecentAttempts(ctx context.Context, learnerID string, limit int) ([]AttemptEvent, error)

	// QueryAttempts returns attempts matching opts, newest first.
	QueryAttempts(ctx context.Context, opts QueryOpts) ([]AttemptEvent, error)

	// MisconceptionCounts tallies a learner's wrong answers by misconception,
	// most frequent first. An empty learner ID tallies everyone.
	MisconceptionCounts(ctx context.Context, learnerID string) ([]MisconceptionCount, error)

	// LearnerSummaries returns per-learner attempt totals ordered by learner.
	LearnerSummaries(ctx context.Context) ([]LearnerSummary, error)

	// QueryLLMEvents returns LLM request events matching opts, newest first.
	QueryLLMEvents(ctx context.Context, opts QueryOpts) ([]LLMRequestEvent, error)

	// LLMUsageByModel aggregates token usage and latency per model.
	LLMUsageByModel(ctx context.Context) ([]ModelUsage, error)
}

// MasterySnapshot is a point-in-time copy of a learner's mastery record.
type MasterySnapshot struct {
	LearnerID string
	Sequence  int64
	Timestamp time.Time
	Data      map[string]any
}

// SnapshotRepo manages mastery snapshots.
type SnapshotRepo interface {
	// Save stores a new snapshot.
	Save(ctx context.Context, snap *MasterySnapshot) error

	// Latest returns the learner's most recent snapshot, or nil if none exist.
	Latest(ctx context.Context, learnerID string) (*MasterySnapshot, error)

	// Prune deletes all but the learner's N most recent snapshots.
	Prune(ctx context.Context, learnerID string, keep int) error
}
