package remediation

import "github.com/abhisek/algebriz/internal/diagnosis"

// Style is a learner's inferred learning style.
type Style string

const (
	StyleVisual     Style = "visual"
	StyleProcedural Style = "procedural"
	StyleBalanced   Style = "balanced"
)

var (
	visualLeaning     = []diagnosis.Misconception{diagnosis.BalanceViolation, diagnosis.EquationStatement}
	proceduralLeaning = []diagnosis.Misconception{diagnosis.OperationReversal, diagnosis.ProceduralError}
)

// InferStyle compares the learner's accumulated visual-leaning and
// procedural-leaning error counts. Ties are balanced.
func InferStyle(errors map[string]int) Style {
	visual := sum(errors, visualLeaning)
	procedural := sum(errors, proceduralLeaning)
	switch {
	case visual > procedural:
		return StyleVisual
	case procedural > visual:
		return StyleProcedural
	default:
		return StyleBalanced
	}
}

func sum(errors map[string]int, types []diagnosis.Misconception) int {
	n := 0
	for _, t := range types {
		n += errors[string(t)]
	}
	return n
}

// Profile is what the generator needs to know about the learner.
type Profile struct {
	Style              Style
	TotalAttempts      int
	ConsecutiveCorrect int
}
