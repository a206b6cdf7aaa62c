package steps

import (
	"github.com/abhisek/algebriz/internal/mastery"
	"github.com/abhisek/algebriz/internal/problemgen"
)

// Kind tags the role a step plays in the solution.
type Kind string

const (
	KindConceptIntro   Kind = "concept_intro"
	KindPlanning       Kind = "planning"
	KindExecute        Kind = "execute_operation"
	KindFinalIsolation Kind = "final_isolation"
)

// Focus returns the mastery focus credited when the step is answered correctly.
func (k Kind) Focus() mastery.Focus {
	if k == KindConceptIntro || k == KindPlanning {
		return mastery.FocusBalance
	}
	return mastery.FocusOperations
}

// ErrorTag names the mistake a distractor is built to reveal.
type ErrorTag string

const (
	TagNone              ErrorTag = ""
	TagOppositeOperation ErrorTag = "opposite_operation"
	TagWrongInverse      ErrorTag = "wrong_inverse"
	TagWrongNumber       ErrorTag = "wrong_number"
)

// Option is one selectable operation at a step.
type Option struct {
	Operation   string   `json:"operation"`
	Description string   `json:"description"`
	Correct     bool     `json:"correct"`
	Explanation string   `json:"explanation"`
	ErrorType   ErrorTag `json:"error_type,omitempty"`
}

// Side is one rendering of an equation: left and right of the equals sign.
type Side struct {
	Left  string `json:"left"`
	Right string `json:"right"`
}

// Transformation shows what a step does to the equation.
type Transformation struct {
	Before    Side   `json:"before"`
	Operation string `json:"operation"`
	After     Side   `json:"after"`
}

// Step is one decision point. Steps are immutable once built.
type Step struct {
	Index            int             `json:"index"`
	Kind             Kind            `json:"kind"`
	Title            string          `json:"title"`
	Question         string          `json:"question"`
	CorrectOperation string          `json:"correct_operation,omitempty"`
	Options          []Option        `json:"options,omitempty"`
	Transformation   *Transformation `json:"transformation,omitempty"`
	Explanation      string          `json:"explanation,omitempty"`
	Guidance         string          `json:"guidance,omitempty"`
	Celebration      string          `json:"celebration,omitempty"`
}

// CorrectOption returns the step's correct option.
func (s Step) CorrectOption() (Option, bool) {
	for _, o := range s.Options {
		if o.Correct {
			return o, true
		}
	}
	return Option{}, false
}

// Match finds the option whose operation equals chosen.
func (s Step) Match(chosen string) (Option, bool) {
	for _, o := range s.Options {
		if SameOperation(o.Operation, chosen) {
			return o, true
		}
	}
	return Option{}, false
}

// Sequence is the full step breakdown for one equation. Intro is
// presentational; Steps holds the decision points the cursor walks.
type Sequence struct {
	Equation problemgen.Equation `json:"equation"`
	Stage    mastery.Stage       `json:"stage"`
	Intro    Step                `json:"intro"`
	Steps    []Step              `json:"steps"`
}

// Solved reports whether the equation needs no operations at all.
func (s *Sequence) Solved() bool {
	return len(s.Steps) == 0
}

// Len returns the number of decision steps.
func (s *Sequence) Len() int {
	return len(s.Steps)
}
