package mastery

// Snapshot is a read-only copy of a learner's mastery, safe to hand to callers.
type Snapshot struct {
	LearnerID          string         `json:"learner_id"`
	Balance            float64        `json:"balance_understanding"`
	Inverse            float64        `json:"inverse_operations"`
	Solving            float64        `json:"equation_solving"`
	Errors             map[string]int `json:"error_patterns"`
	ConsecutiveCorrect int            `json:"consecutive_correct"`
	TotalAttempts      int            `json:"total_attempts"`
}

// Mean is the unweighted mean of the three skill scores.
func (s Snapshot) Mean() float64 {
	return (s.Balance + s.Inverse + s.Solving) / 3
}

// ReadyForNextLevel reports whether the learner has the balance and inverse
// skills in hand and a streak of at least three.
func (s Snapshot) ReadyForNextLevel() bool {
	return s.Balance > 0.7 && s.Inverse > 0.7 && s.ConsecutiveCorrect >= 3
}

// ErrorCount returns how often a tagged error has occurred.
func (s Snapshot) ErrorCount(tag string) int {
	return s.Errors[tag]
}
