package steps

import (
	"math/rand/v2"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/abhisek/algebriz/internal/mastery"
	"github.com/abhisek/algebriz/internal/problemgen"
)

func newTestSequencer(seed uint64) *Sequencer {
	return NewSequencer(rand.New(rand.NewPCG(seed, seed)))
}

func TestBuild_WorkedExample(t *testing.T) {
	s := newTestSequencer(1)
	eq := problemgen.NewEquation(3, 4, 5)
	seq := s.Build(eq, mastery.StageGuided, mastery.LevelInverse)

	if seq.Intro.Kind != KindConceptIntro {
		t.Errorf("Intro.Kind = %q, want %q", seq.Intro.Kind, KindConceptIntro)
	}
	if len(seq.Intro.Options) != 0 {
		t.Errorf("intro has %d options, want none", len(seq.Intro.Options))
	}
	if seq.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", seq.Len())
	}

	first, second := seq.Steps[0], seq.Steps[1]
	if first.Index != 0 || second.Index != 1 {
		t.Errorf("indexes = %d, %d", first.Index, second.Index)
	}
	if first.CorrectOperation != "- 4" {
		t.Errorf("step 0 correct = %q, want %q", first.CorrectOperation, "- 4")
	}
	if second.CorrectOperation != "/ 3" {
		t.Errorf("step 1 correct = %q, want %q", second.CorrectOperation, "/ 3")
	}
	if first.Kind != KindExecute || second.Kind != KindFinalIsolation {
		t.Errorf("kinds = %q, %q", first.Kind, second.Kind)
	}

	want := &Transformation{
		Before:    Side{Left: "3x + 4", Right: "19"},
		Operation: "− 4",
		After:     Side{Left: "3x", Right: "15"},
	}
	if diff := cmp.Diff(want, first.Transformation); diff != "" {
		t.Errorf("step 0 transformation mismatch (-want +got):\n%s", diff)
	}
	want = &Transformation{
		Before:    Side{Left: "3x", Right: "15"},
		Operation: "÷ 3",
		After:     Side{Left: "x", Right: "5"},
	}
	if diff := cmp.Diff(want, second.Transformation); diff != "" {
		t.Errorf("step 1 transformation mismatch (-want +got):\n%s", diff)
	}

	if first.Celebration != "" {
		t.Errorf("first step should not celebrate, got %q", first.Celebration)
	}
	if second.Celebration == "" {
		t.Error("last step should carry a celebration")
	}
}

func TestBuild_ReplayReachesSolution(t *testing.T) {
	gen := problemgen.NewRandomGenerator(rand.New(rand.NewPCG(9, 9)))
	s := newTestSequencer(9)

	for level := 1; level <= 8; level++ {
		for i := 0; i < 50; i++ {
			eq := gen.Generate(level, nil)
			seq := s.Build(eq, mastery.StageCollaborative, mastery.LevelSingleStep)

			wantLen := 0
			if eq.B != 0 {
				wantLen++
			}
			if eq.A != 1 {
				wantLen++
			}
			if seq.Len() != wantLen {
				t.Fatalf("%s: Len() = %d, want %d", eq, seq.Len(), wantLen)
			}

			right := eq.C
			for _, st := range seq.Steps {
				op, err := ParseOperation(st.CorrectOperation)
				if err != nil {
					t.Fatalf("%s: bad correct operation %q: %v", eq, st.CorrectOperation, err)
				}
				next, ok := op.Apply(right)
				if !ok {
					t.Fatalf("%s: %d %s does not divide evenly", eq, right, op)
				}
				right = next
			}
			if right != eq.X {
				t.Fatalf("%s: replay ended at %d, want %d", eq, right, eq.X)
			}
		}
	}
}

func TestBuild_AlreadySolved(t *testing.T) {
	seq := newTestSequencer(1).Build(problemgen.NewEquation(1, 0, 7), mastery.StageGuided, mastery.LevelBalance)
	if !seq.Solved() {
		t.Errorf("x = 7 should be solved, got %d steps", seq.Len())
	}
	if seq.Intro.Kind != KindConceptIntro {
		t.Errorf("intro still expected, got %q", seq.Intro.Kind)
	}
}

func TestBuild_SingleStep(t *testing.T) {
	seq := newTestSequencer(1).Build(problemgen.NewEquation(1, -7, 3), mastery.StageGuided, mastery.LevelInverse)
	if seq.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", seq.Len())
	}
	st := seq.Steps[0]
	if st.CorrectOperation != "+ 7" {
		t.Errorf("correct = %q, want %q", st.CorrectOperation, "+ 7")
	}
	if st.Transformation.After.Left != "x" || st.Transformation.After.Right != "3" {
		t.Errorf("after = %+v", st.Transformation.After)
	}
	if st.Celebration == "" {
		t.Error("only step is the last step and should celebrate")
	}
}

func TestBuild_PlanningAtBalanceLevel(t *testing.T) {
	s := newTestSequencer(1)
	eq := problemgen.NewEquation(2, 6, 4)

	seq := s.Build(eq, mastery.StageGuided, mastery.LevelBalance)
	if seq.Steps[0].Kind != KindPlanning {
		t.Errorf("balance level first kind = %q, want %q", seq.Steps[0].Kind, KindPlanning)
	}
	if seq.Steps[0].Kind.Focus() != mastery.FocusBalance {
		t.Error("planning step should credit balance understanding")
	}
	if seq.Steps[1].Kind != KindFinalIsolation {
		t.Errorf("second kind = %q, want %q", seq.Steps[1].Kind, KindFinalIsolation)
	}

	seq = s.Build(eq, mastery.StageGuided, mastery.LevelMultiStep)
	if seq.Steps[0].Kind != KindExecute {
		t.Errorf("multi-step first kind = %q, want %q", seq.Steps[0].Kind, KindExecute)
	}
}

func TestBuild_Options(t *testing.T) {
	s := newTestSequencer(3)
	for i := 0; i < 100; i++ {
		eq := problemgen.NewEquation(2+i%5, []int{-10, -3, 2, 5, 7}[i%5], 1+i%7)
		seq := s.Build(eq, mastery.StageGuided, mastery.LevelInverse)

		for _, st := range seq.Steps {
			correct, err := ParseOperation(st.CorrectOperation)
			if err != nil {
				t.Fatal(err)
			}
			if len(st.Options) != 4 {
				t.Fatalf("%s step %d: %d options, want 4", eq, st.Index, len(st.Options))
			}

			seen := map[string]bool{}
			var nCorrect, nOpposite, nWrong int
			for _, o := range st.Options {
				if seen[o.Operation] {
					t.Fatalf("%s step %d: duplicate option %q", eq, st.Index, o.Operation)
				}
				seen[o.Operation] = true

				op, err := ParseOperation(o.Operation)
				if err != nil {
					t.Fatal(err)
				}
				switch {
				case o.Correct:
					nCorrect++
					if o.Operation != st.CorrectOperation {
						t.Errorf("correct option %q != %q", o.Operation, st.CorrectOperation)
					}
				case o.ErrorType == TagOppositeOperation || o.ErrorType == TagWrongInverse:
					nOpposite++
					if op.Op != correct.Op.Opposite() || op.Operand != correct.Operand {
						t.Errorf("opposite option %q for %q", o.Operation, st.CorrectOperation)
					}
				case o.ErrorType == TagWrongNumber:
					nWrong++
					if op.Operand == correct.Operand || op.Operand == eq.A {
						t.Errorf("wrong-number option %q reuses an equation operand", o.Operation)
					}
				default:
					t.Errorf("untagged wrong option %q", o.Operation)
				}
			}
			if nCorrect != 1 || nOpposite != 1 || nWrong != 2 {
				t.Errorf("%s step %d: correct=%d opposite=%d wrong=%d", eq, st.Index, nCorrect, nOpposite, nWrong)
			}
		}
	}
}

func TestBuild_OppositeTags(t *testing.T) {
	seq := newTestSequencer(5).Build(problemgen.NewEquation(3, 4, 5), mastery.StageGuided, mastery.LevelInverse)

	tagOf := func(st Step, op string) ErrorTag {
		o, ok := st.Match(op)
		if !ok {
			t.Fatalf("option %q missing", op)
		}
		return o.ErrorType
	}
	if got := tagOf(seq.Steps[0], "+4"); got != TagOppositeOperation {
		t.Errorf("+4 tag = %q, want %q", got, TagOppositeOperation)
	}
	if got := tagOf(seq.Steps[1], "*3"); got != TagWrongInverse {
		t.Errorf("*3 tag = %q, want %q", got, TagWrongInverse)
	}
}

func TestGuidance(t *testing.T) {
	if Guidance(mastery.StageIndependent, KindExecute) != "" {
		t.Error("independent stage should get no guidance")
	}
	if Guidance(mastery.StageGuided, KindFinalIsolation) == "" {
		t.Error("guided stage should coach the final step")
	}
	if Guidance(mastery.StageGuided, KindPlanning) == Guidance(mastery.StageCollaborative, KindPlanning) {
		t.Error("guided and collaborative planning lines should differ")
	}
}
