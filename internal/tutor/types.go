package tutor

import (
	"github.com/abhisek/algebriz/internal/diagnosis"
	"github.com/abhisek/algebriz/internal/mastery"
	"github.com/abhisek/algebriz/internal/problemgen"
	"github.com/abhisek/algebriz/internal/remediation"
	"github.com/abhisek/algebriz/internal/steps"
)

// Problem is a freshly generated equation with everything needed to present
// it. The caller carries it between turns; the engine keeps no copy.
type Problem struct {
	DisplayText       string               `json:"display_text"`
	Equation          problemgen.Equation  `json:"equation"`
	Sequence          steps.Sequence       `json:"step_sequence"`
	CurrentStep       int                  `json:"current_step"`
	Difficulty        int                  `json:"difficulty"`
	Stage             mastery.Stage        `json:"learning_stage"`
	Level             mastery.ConceptLevel `json:"concept_level"`
	Features          mastery.Features     `json:"adaptive_features"`
	Mastery           mastery.Snapshot     `json:"mastery"`
	ReadyForNextLevel bool                 `json:"ready_for_next_level"`
}

// Outcome is the result of one graded response. Wrong answers are
// outcomes, not errors.
type Outcome struct {
	IsCorrect bool             `json:"is_correct"`
	Feedback  string           `json:"feedback"`
	Mastery   mastery.Snapshot `json:"mastery"`
	NextStep  *int             `json:"next_step"`
	IsSolved  bool             `json:"is_solved"`

	// Set on a correct answer.
	Gain           float64               `json:"gain,omitempty"`
	Transformation *steps.Transformation `json:"transformation,omitempty"`
	Celebration    string                `json:"celebration,omitempty"`

	// Set on a wrong answer. Misconception is nil on a classification miss.
	Unrecognized  bool                   `json:"unrecognized,omitempty"`
	Misconception *diagnosis.Hypothesis  `json:"misconception,omitempty"`
	Hypotheses    []diagnosis.Hypothesis `json:"hypotheses,omitempty"`
	Remediation   *remediation.Payload   `json:"remediation,omitempty"`
}
