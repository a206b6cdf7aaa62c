package steps

import (
	"fmt"
	"math/rand/v2"
	"strconv"
	"sync"

	"github.com/abhisek/algebriz/internal/mastery"
	"github.com/abhisek/algebriz/internal/problemgen"
)

// Sequencer decomposes equations into decision steps.
// It is safe for concurrent use.
type Sequencer struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewSequencer creates a sequencer. The rng drives distractor sampling
// and option order; nil uses a randomly seeded source.
func NewSequencer(rng *rand.Rand) *Sequencer {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &Sequencer{rng: rng}
}

// Build returns the step sequence for eq. The concept level decides whether
// the first decision is framed as planning.
func (s *Sequencer) Build(eq problemgen.Equation, stage mastery.Stage, level mastery.ConceptLevel) Sequence {
	seq := Sequence{
		Equation: eq,
		Stage:    stage,
		Intro:    introStep(eq),
		Steps:    []Step{},
	}

	right := eq.C
	if eq.B != 0 {
		seq.Steps = append(seq.Steps, s.removeConstant(eq, right, stage))
		right -= eq.B
	}
	if eq.A != 1 {
		seq.Steps = append(seq.Steps, s.removeCoefficient(eq, right, stage))
	}

	for i := range seq.Steps {
		seq.Steps[i].Index = i
	}
	if n := len(seq.Steps); n > 0 {
		if level == mastery.LevelBalance {
			first := &seq.Steps[0]
			first.Kind = KindPlanning
			first.Title = "Simplification Strategy"
			first.Guidance = Guidance(stage, KindPlanning)
		}
		seq.Steps[n-1].Celebration = fmt.Sprintf(
			"Well done! You found x = %d. The scales are balanced again!", eq.X)
	}
	return seq
}

func introStep(eq problemgen.Equation) Step {
	left := eq.Left()
	return Step{
		Kind:  KindConceptIntro,
		Title: "The Balance Scales",
		Question: fmt.Sprintf(
			"The left pan holds %s and the right pan holds %d. The scales are balanced.", left, eq.C),
		Explanation: conceptExplanation,
	}
}

func (s *Sequencer) removeConstant(eq problemgen.Equation, right int, stage mastery.Stage) Step {
	correct := Operation{Op: OpSub, Operand: eq.B}
	if eq.B < 0 {
		correct = Operation{Op: OpAdd, Operand: -eq.B}
	}
	after, _ := correct.Apply(right)
	left := eq.Left()
	bare := problemgen.FormatLeft(eq.A, 0)

	return Step{
		Kind:             KindExecute,
		Title:            "Keep the Balance",
		Question:         fmt.Sprintf("What do we do to both sides of %s = %d?", left, right),
		CorrectOperation: correct.String(),
		Options:          s.options(correct, eq.A),
		Transformation: &Transformation{
			Before:    Side{Left: left, Right: strconv.Itoa(right)},
			Operation: correct.Display(),
			After:     Side{Left: bare, Right: strconv.Itoa(after)},
		},
		Explanation: fmt.Sprintf("%s. Left: %s %s = %s. Right: %d %s = %d.",
			describe(correct), left, correct, bare, right, correct, after),
		Guidance: Guidance(stage, KindExecute),
	}
}

func (s *Sequencer) removeCoefficient(eq problemgen.Equation, right int, stage mastery.Stage) Step {
	correct := Operation{Op: OpDiv, Operand: eq.A}
	bare := problemgen.FormatLeft(eq.A, 0)

	return Step{
		Kind:             KindFinalIsolation,
		Title:            "Isolate x",
		Question:         fmt.Sprintf("How do we get just 'x' from '%s'?", bare),
		CorrectOperation: correct.String(),
		Options:          s.options(correct, eq.A),
		Transformation: &Transformation{
			Before:    Side{Left: bare, Right: strconv.Itoa(right)},
			Operation: correct.Display(),
			After:     Side{Left: "x", Right: strconv.Itoa(eq.X)},
		},
		Explanation: fmt.Sprintf("Divide both sides by %d. That leaves x = %d.", eq.A, eq.X),
		Guidance:    Guidance(stage, KindFinalIsolation),
	}
}
