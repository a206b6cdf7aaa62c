package tutor

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/abhisek/algebriz/internal/diagnosis"
	"github.com/abhisek/algebriz/internal/mastery"
	"github.com/abhisek/algebriz/internal/problemgen"
	"github.com/abhisek/algebriz/internal/remediation"
	"github.com/abhisek/algebriz/internal/steps"
	"github.com/abhisek/algebriz/internal/store"
)

// fixedGenerator always returns the same equation.
type fixedGenerator struct {
	eq problemgen.Equation
}

func (g fixedGenerator) Generate(int, *mastery.Snapshot) problemgen.Equation { return g.eq }

// 3x + 4 = 19, x = 5.
var worked = problemgen.NewEquation(3, 4, 5)

func newTestEngine(t *testing.T, eq problemgen.Equation) *Engine {
	t.Helper()
	return NewEngine(Config{
		Generator: fixedGenerator{eq: eq},
		Sequencer: steps.NewSequencer(rand.New(rand.NewPCG(1, 1))),
	})
}

func setScores(t *testing.T, e *Engine, learner string, v float64) {
	t.Helper()
	require.NoError(t, e.Mastery().Update(learner, func(m *mastery.Model) error {
		m.Balance, m.Inverse, m.Solving = v, v, v
		return nil
	}))
}

func TestGenerateProblem_FreshLearner(t *testing.T) {
	e := newTestEngine(t, worked)

	p, err := e.GenerateProblem("ana", 1)
	require.NoError(t, err)

	assert.Equal(t, worked, p.Equation)
	assert.Equal(t, 0, p.CurrentStep)
	assert.Equal(t, mastery.StageGuided, p.Stage)
	assert.Equal(t, mastery.LevelBalance, p.Level)
	assert.Equal(t, mastery.Features{ShowVisualAids: true, ProvideHints: true, ErrorAnalysis: true}, p.Features)
	assert.Contains(t, intros[mastery.LevelBalance], p.DisplayText)
	assert.Equal(t, 2, p.Sequence.Len())
	assert.Equal(t, steps.KindPlanning, p.Sequence.Steps[0].Kind)
	assert.False(t, p.ReadyForNextLevel)
	assert.Equal(t, 1, e.Mastery().Len(), "learner record created on first reference")
}

func TestGenerateProblem_RejectsInvalidEquation(t *testing.T) {
	e := newTestEngine(t, problemgen.Equation{A: 3, B: 4, C: 20, X: 5})
	_, err := e.GenerateProblem("ana", 1)
	assert.Error(t, err)
}

func TestGenerateProblem_AdvancedLearner(t *testing.T) {
	e := NewEngine(Config{Generator: problemgen.NewRandomGenerator(rand.New(rand.NewPCG(7, 7)))})
	setScores(t, e, "ana", 0.9)

	p, err := e.GenerateProblem("ana", 2)
	require.NoError(t, err)
	assert.Equal(t, mastery.StageIndependent, p.Stage)
	assert.Equal(t, mastery.LevelMultiStep, p.Level)
	assert.Equal(t, 3, p.Difficulty, "difficulty shifts up past balance understanding")
	assert.False(t, p.Features.ShowVisualAids)
	assert.Empty(t, p.Sequence.Steps[0].Guidance, "independent learners get no guidance")
}

func TestProcessResponse_WorkedExample(t *testing.T) {
	e := newTestEngine(t, worked)
	ctx := context.Background()

	p, err := e.GenerateProblem("ana", 1)
	require.NoError(t, err)
	seq := &p.Sequence

	out, err := e.ProcessResponse(ctx, "ana", seq, 0, "- 4")
	require.NoError(t, err)
	assert.True(t, out.IsCorrect)
	assert.False(t, out.IsSolved)
	require.NotNil(t, out.NextStep)
	assert.Equal(t, 1, *out.NextStep)
	require.NotNil(t, out.Transformation)
	assert.Equal(t, steps.Side{Left: "3x", Right: "15"}, out.Transformation.After)
	assert.InDelta(t, 0.1, out.Mastery.Balance, 1e-9, "planning step credits balance")

	out, err = e.ProcessResponse(ctx, "ana", seq, 1, "/ 3")
	require.NoError(t, err)
	assert.True(t, out.IsCorrect)
	assert.True(t, out.IsSolved)
	assert.Nil(t, out.NextStep)
	assert.Equal(t, steps.Side{Left: "x", Right: "5"}, out.Transformation.After)
	assert.Contains(t, out.Celebration, "x = 5")
	assert.InDelta(t, 0.1, out.Mastery.Inverse, 1e-9)
	assert.InDelta(t, 0.08, out.Mastery.Solving, 1e-9)
	assert.Equal(t, 2, out.Mastery.ConsecutiveCorrect)
	assert.Equal(t, 2, out.Mastery.TotalAttempts)
}

func TestProcessResponse_AcceptsDisplaySymbols(t *testing.T) {
	e := newTestEngine(t, worked)
	p, err := e.GenerateProblem("ana", 1)
	require.NoError(t, err)

	out, err := e.ProcessResponse(context.Background(), "ana", &p.Sequence, 0, "−4")
	require.NoError(t, err)
	assert.True(t, out.IsCorrect)

	out, err = e.ProcessResponse(context.Background(), "ana", &p.Sequence, 1, "÷ 3")
	require.NoError(t, err)
	assert.True(t, out.IsSolved)
}

func TestProcessResponse_OppositeOperation(t *testing.T) {
	e := newTestEngine(t, worked)
	setScores(t, e, "ana", 0.5)
	p, err := e.GenerateProblem("ana", 1)
	require.NoError(t, err)

	out, err := e.ProcessResponse(context.Background(), "ana", &p.Sequence, 0, "+ 4")
	require.NoError(t, err)

	assert.False(t, out.IsCorrect)
	assert.False(t, out.IsSolved)
	assert.False(t, out.Unrecognized)
	require.NotNil(t, out.NextStep)
	assert.Equal(t, 0, *out.NextStep, "learner retries the same step")

	require.NotNil(t, out.Misconception)
	assert.Equal(t, diagnosis.OperationReversal, out.Misconception.Type)
	assert.Equal(t, 1, out.Mastery.ErrorCount(string(diagnosis.OperationReversal)))

	assert.InDelta(t, 0.48, out.Mastery.Balance, 1e-9)
	assert.InDelta(t, 0.48, out.Mastery.Inverse, 1e-9)
	assert.InDelta(t, 0.48, out.Mastery.Solving, 1e-9)
	assert.Equal(t, 0, out.Mastery.ConsecutiveCorrect)

	require.NotNil(t, out.Remediation)
	assert.Equal(t, diagnosis.OperationReversal, out.Remediation.PrimaryIssue)
	assert.Equal(t, remediation.EncourageFirst, out.Remediation.Encouragement)
	assert.NotEmpty(t, out.Feedback)
}

func TestProcessResponse_PenaltyFloorsAtZero(t *testing.T) {
	e := newTestEngine(t, worked)
	p, err := e.GenerateProblem("ana", 1)
	require.NoError(t, err)

	out, err := e.ProcessResponse(context.Background(), "ana", &p.Sequence, 0, "+ 4")
	require.NoError(t, err)
	assert.Zero(t, out.Mastery.Balance)
	assert.Zero(t, out.Mastery.Inverse)
	assert.Zero(t, out.Mastery.Solving)
}

func TestProcessResponse_RepeatedMistake(t *testing.T) {
	e := newTestEngine(t, worked)
	p, err := e.GenerateProblem("ana", 1)
	require.NoError(t, err)
	tips := remediation.StrategyFor(diagnosis.OperationReversal).PracticeTips

	for i := 1; i <= 4; i++ {
		out, err := e.ProcessResponse(context.Background(), "ana", &p.Sequence, 0, "+ 4")
		require.NoError(t, err)
		require.NotNil(t, out.Misconception)
		assert.Equal(t, diagnosis.OperationReversal, out.Misconception.Type, "attempt %d", i)
		assert.Equal(t, i-1, out.Misconception.Frequency, "attempt %d", i)
		assert.Equal(t, i, out.Mastery.ErrorCount(string(diagnosis.OperationReversal)), "counter grows by exactly one")

		wantTip := tips[0]
		if i-1 >= 3 {
			wantTip = tips[1]
		}
		assert.Equal(t, wantTip, out.Remediation.PracticeTip, "attempt %d", i)
	}
}

func TestProcessResponse_UnrecognizedChoice(t *testing.T) {
	e := newTestEngine(t, worked)
	p, err := e.GenerateProblem("ana", 1)
	require.NoError(t, err)

	out, err := e.ProcessResponse(context.Background(), "ana", &p.Sequence, 0, "banana")
	require.NoError(t, err)
	assert.False(t, out.IsCorrect)
	assert.True(t, out.Unrecognized)
	assert.Equal(t, InvalidChoiceFeedback, out.Feedback)
	assert.Nil(t, out.Misconception, "nothing to classify")
	require.NotNil(t, out.Remediation)
	assert.True(t, out.Remediation.Generic)
	assert.Equal(t, remediation.EncourageEarly, out.Remediation.Encouragement)
	assert.Equal(t, 1, out.Mastery.ErrorCount(mastery.UnknownError))
	assert.Equal(t, 1, out.Mastery.TotalAttempts)
}

func TestProcessResponse_UnlistedOperationStillDiagnosed(t *testing.T) {
	e := newTestEngine(t, worked)
	p, err := e.GenerateProblem("ana", 1)
	require.NoError(t, err)

	// "- 19" is never offered but is a real operation.
	out, err := e.ProcessResponse(context.Background(), "ana", &p.Sequence, 0, "- 19")
	require.NoError(t, err)
	assert.True(t, out.Unrecognized)
	assert.Equal(t, InvalidChoiceFeedback, out.Feedback)
	assert.NotEmpty(t, out.Hypotheses)
}

func TestProcessResponse_InvalidStep(t *testing.T) {
	e := newTestEngine(t, worked)
	p, err := e.GenerateProblem("ana", 1)
	require.NoError(t, err)

	for _, idx := range []int{-1, 2, 10} {
		_, err := e.ProcessResponse(context.Background(), "ana", &p.Sequence, idx, "- 4")
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrInvalidStep))

		var se *StepError
		require.True(t, errors.As(err, &se))
		assert.Equal(t, idx, se.Index)
		assert.Equal(t, 2, se.Count)
	}
	assert.Zero(t, e.Snapshot("ana").TotalAttempts, "no mutation on invalid state")
}

func TestProcessResponse_UsesIndexArgument(t *testing.T) {
	e := newTestEngine(t, worked)
	p, err := e.GenerateProblem("ana", 1)
	require.NoError(t, err)

	// A resent sequence may carry stale step indexes.
	seq := p.Sequence
	seq.Steps = slices.Clone(seq.Steps)
	for i := range seq.Steps {
		seq.Steps[i].Index = 0
	}

	out, err := e.ProcessResponse(context.Background(), "ana", &seq, 1, "- 3")
	require.NoError(t, err)
	require.NotNil(t, out.NextStep)
	assert.Equal(t, 1, *out.NextStep, "retry stays on the step that was answered")
	require.NotNil(t, out.Misconception)
	assert.Equal(t, diagnosis.VariableMisconception, out.Misconception.Type,
		"diagnosed as a coefficient step")
	assert.InDelta(t, 1.0, out.Misconception.Confidence, 1e-9)

	out, err = e.ProcessResponse(context.Background(), "ana", &seq, 1, "/ 3")
	require.NoError(t, err)
	assert.True(t, out.IsCorrect)
	assert.True(t, out.IsSolved)
	assert.Nil(t, out.NextStep)
}

func TestProcessResponse_NilSequence(t *testing.T) {
	e := newTestEngine(t, worked)
	_, err := e.ProcessResponse(context.Background(), "ana", nil, 0, "- 4")
	assert.Error(t, err)
}

func TestProcessResponse_AlreadySolved(t *testing.T) {
	e := newTestEngine(t, worked)
	seq := steps.NewSequencer(nil).Build(problemgen.NewEquation(1, 0, 7), mastery.StageGuided, mastery.LevelBalance)
	require.True(t, seq.Solved())

	for _, idx := range []int{0, 3} {
		out, err := e.ProcessResponse(context.Background(), "ana", &seq, idx, "anything")
		require.NoError(t, err)
		assert.True(t, out.IsCorrect)
		assert.True(t, out.IsSolved)
		assert.Nil(t, out.NextStep)
	}
	assert.Zero(t, e.Snapshot("ana").TotalAttempts)
}

func TestReplayCorrectPath(t *testing.T) {
	e := NewEngine(Config{
		Generator: problemgen.NewRandomGenerator(rand.New(rand.NewPCG(3, 3))),
		Sequencer: steps.NewSequencer(rand.New(rand.NewPCG(4, 4))),
	})

	for i := range 100 {
		learner := fmt.Sprintf("l%d", i%5)
		p, err := e.GenerateProblem(learner, 1+i%6)
		require.NoError(t, err)
		eq := p.Equation
		require.Equal(t, eq.C, eq.A*eq.X+eq.B)

		wantRight := []int{eq.C - eq.B}
		if eq.A != 1 {
			wantRight = append(wantRight, eq.X)
		}
		require.Equal(t, len(wantRight), p.Sequence.Len())

		for idx, step := range p.Sequence.Steps {
			out, err := e.ProcessResponse(context.Background(), learner, &p.Sequence, idx, step.CorrectOperation)
			require.NoError(t, err)
			require.True(t, out.IsCorrect, "%s step %d", eq, idx)
			assert.Equal(t, fmt.Sprint(wantRight[idx]), out.Transformation.After.Right)
			last := idx == p.Sequence.Len()-1
			assert.Equal(t, last, out.IsSolved)
			assert.Equal(t, last, out.NextStep == nil)
		}
	}
}

func TestMasteryMonotonic(t *testing.T) {
	rng := rand.New(rand.NewPCG(11, 11))
	e := NewEngine(Config{
		Generator: problemgen.NewRandomGenerator(rand.New(rand.NewPCG(12, 12))),
		Sequencer: steps.NewSequencer(rand.New(rand.NewPCG(13, 13))),
	})

	prev := e.Snapshot("ana")
	for range 200 {
		p, err := e.GenerateProblem("ana", 1+rng.IntN(5))
		require.NoError(t, err)
		for idx, step := range p.Sequence.Steps {
			choice := step.Options[rng.IntN(len(step.Options))].Operation
			out, err := e.ProcessResponse(context.Background(), "ana", &p.Sequence, idx, choice)
			require.NoError(t, err)

			cur := out.Mastery
			for _, skill := range mastery.Skills() {
				before, after := prev.Score(skill), cur.Score(skill)
				assert.True(t, after >= 0 && after <= 1, "%s out of range: %v", skill, after)
				if out.IsCorrect {
					assert.GreaterOrEqual(t, after, before, "%s decreased on a correct answer", skill)
				} else {
					assert.LessOrEqual(t, after, before, "%s increased on a wrong answer", skill)
				}
			}
			prev = cur
		}
	}
}

func TestAssessmentIsPure(t *testing.T) {
	e := newTestEngine(t, worked)
	setScores(t, e, "ana", 0.65)
	a := mastery.Assess(e.Snapshot("ana"))
	b := mastery.Assess(e.Snapshot("ana"))
	assert.Equal(t, a, b)
}

func TestConcurrentSameLearner(t *testing.T) {
	e := newTestEngine(t, worked)
	p, err := e.GenerateProblem("ana", 1)
	require.NoError(t, err)

	var g errgroup.Group
	for range 50 {
		g.Go(func() error {
			_, err := e.ProcessResponse(context.Background(), "ana", &p.Sequence, 0, "+ 4")
			return err
		})
	}
	require.NoError(t, g.Wait())

	snap := e.Snapshot("ana")
	assert.Equal(t, 50, snap.TotalAttempts)
	total := 0
	for _, n := range snap.Errors {
		total += n
	}
	assert.Equal(t, 50, total, "no lost error-counter updates")
}

func TestJournal(t *testing.T) {
	st, err := store.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name()))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	e := NewEngine(Config{
		Generator: fixedGenerator{eq: worked},
		Events:    st.EventRepo(),
		Snapshots: st.SnapshotRepo(),
		SessionID: "session-1",
	})
	ctx := context.Background()
	p, err := e.GenerateProblem("ana", 1)
	require.NoError(t, err)

	for _, step := range []struct {
		idx    int
		chosen string
	}{{0, "+ 4"}, {0, "banana"}, {0, "- 4"}, {1, "/ 3"}} {
		_, err := e.ProcessResponse(ctx, "ana", &p.Sequence, step.idx, step.chosen)
		require.NoError(t, err)
	}

	attempts, err := st.EventRepo().RecentAttempts(ctx, "ana", 10)
	require.NoError(t, err)
	require.Len(t, attempts, 4)
	assert.Equal(t, "/ 3", attempts[0].Chosen)
	assert.Equal(t, "session-1", attempts[0].SessionID)
	assert.Equal(t, "3x + 4 = 19", attempts[0].Equation)

	counts, err := st.EventRepo().MisconceptionCounts(ctx, "ana")
	require.NoError(t, err)
	got := make([]string, len(counts))
	for i, c := range counts {
		got[i] = c.Misconception
	}
	slices.Sort(got)
	assert.Equal(t, []string{"operation_reversal", "unknown_error"}, got)

	snap, err := st.SnapshotRepo().Latest(ctx, "ana")
	require.NoError(t, err)
	require.NotNil(t, snap, "solving a problem journals mastery")
	assert.EqualValues(t, 4, snap.Sequence)
	assert.Equal(t, "ana", snap.Data["learner_id"])
}
