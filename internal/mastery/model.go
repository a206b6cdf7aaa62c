package mastery

import "maps"

// Model is the mutable mastery record for a single learner.
// Only the Store hands out access to it, under the learner's lock.
type Model struct {
	LearnerID          string
	Balance            float64
	Inverse            float64
	Solving            float64
	Errors             map[string]int
	ConsecutiveCorrect int
	TotalAttempts      int
}

func newModel(learnerID string) *Model {
	return &Model{
		LearnerID: learnerID,
		Errors:    make(map[string]int),
	}
}

// RecordCorrect applies the success rule and returns the gain that was applied.
func (m *Model) RecordCorrect(focus Focus) float64 {
	m.ConsecutiveCorrect++
	m.TotalAttempts++

	gain := BaseGain
	if m.ConsecutiveCorrect > StreakThreshold {
		gain += StreakBonus
	}

	switch focus {
	case FocusBalance:
		m.Balance = clamp(m.Balance + gain)
	case FocusOperations:
		m.Inverse = clamp(m.Inverse + gain)
		m.Solving = clamp(m.Solving + gain*SolvingFactor)
	}
	return gain
}

// RecordIncorrect applies the error rule. An empty tag only applies the penalty.
func (m *Model) RecordIncorrect(tag string) {
	m.ConsecutiveCorrect = 0
	m.TotalAttempts++
	if tag != "" {
		m.Errors[tag]++
	}
	m.Balance = clamp(m.Balance - ErrorPenalty)
	m.Inverse = clamp(m.Inverse - ErrorPenalty)
	m.Solving = clamp(m.Solving - ErrorPenalty)
}

// Score returns the current value of a skill.
func (m *Model) Score(s Skill) float64 {
	switch s {
	case SkillBalance:
		return m.Balance
	case SkillInverse:
		return m.Inverse
	case SkillSolving:
		return m.Solving
	}
	return 0
}

// Snapshot returns a detached copy of the model.
func (m *Model) Snapshot() Snapshot {
	return Snapshot{
		LearnerID:          m.LearnerID,
		Balance:            m.Balance,
		Inverse:            m.Inverse,
		Solving:            m.Solving,
		Errors:             maps.Clone(m.Errors),
		ConsecutiveCorrect: m.ConsecutiveCorrect,
		TotalAttempts:      m.TotalAttempts,
	}
}

func clamp(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
