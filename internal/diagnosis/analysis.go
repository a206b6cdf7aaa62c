package diagnosis

import (
	"slices"

	"github.com/abhisek/algebriz/internal/steps"
)

type indicatorSet map[Indicator]struct{}

func (s indicatorSet) add(ind Indicator) { s[ind] = struct{}{} }

func (s indicatorSet) has(ind Indicator) bool {
	_, ok := s[ind]
	return ok
}

// sorted returns the indicators in lexical order.
func (s indicatorSet) sorted() []Indicator {
	out := make([]Indicator, 0, len(s))
	for ind := range s {
		out = append(out, ind)
	}
	slices.Sort(out)
	return out
}

// Indicators runs the operation, context and history analyses and returns
// every indicator that fired, sorted.
func Indicators(correct, chosen string, ctx Context, hist History) []Indicator {
	return extract(correct, chosen, ctx, hist).sorted()
}

func extract(correct, chosen string, ctx Context, hist History) indicatorSet {
	set := indicatorSet{}

	want, wantErr := steps.ParseOperation(correct)
	got, gotErr := steps.ParseOperation(chosen)
	if wantErr == nil && gotErr == nil {
		analyzeOperation(set, want, got)
	}
	if gotErr == nil {
		analyzeContext(set, ctx, want, got)
	}
	analyzeHistory(set, hist)
	return set
}

// analyzeOperation compares operator and operand of the correct and chosen
// operations.
func analyzeOperation(set indicatorSet, want, got steps.Operation) {
	if want.Op != got.Op {
		switch {
		case want.Op.Additive() && got.Op.Additive():
			set.add(IndSignReversal)
		case !want.Op.Additive() && !got.Op.Additive():
			set.add(IndInverseConfusion)
		case (want.Op == steps.OpSub || want.Op == steps.OpDiv) &&
			(got.Op == steps.OpAdd || got.Op == steps.OpMul):
			set.add(IndOperationReversal)
		}
		if want.Op.Additive() != got.Op.Additive() {
			set.add(IndFamilySwitch)
		}
	}
	if want.Operand != got.Operand {
		set.add(IndWrongNumber)
	}
}

// analyzeContext interprets the chosen operation against the role of the
// current step. want may be zero when the correct operation did not parse.
func analyzeContext(set indicatorSet, ctx Context, want, got steps.Operation) {
	switch {
	case ctx.RemovesConstant():
		switch {
		case ctx.B > 0 && got.Op == steps.OpAdd:
			set.add(IndAddsInsteadOfSubtract)
		case ctx.B < 0 && got.Op == steps.OpSub:
			set.add(IndSubtractsNegativeWrong)
			if got.Operand == -ctx.B {
				set.add(IndLosesNegativeSign)
			}
		}
		if got.Op == steps.OpDiv && got.Operand == ctx.A {
			set.add(IndTargetsCoefficientFirst)
		}
		if got.Op.Additive() && got.Operand == ctx.A && ctx.A != abs(ctx.B) {
			set.add(IndUsesCoefficientAsConstant)
		}

	case ctx.RemovesCoefficient():
		switch got.Op {
		case steps.OpAdd, steps.OpSub:
			set.add(IndTreatsCoefficientAsAddend)
			if got.Operand == ctx.A {
				set.add(IndUsesCoefficientAsConstant)
			}
		case steps.OpMul:
			set.add(IndMultipliesInsteadOfDivide)
		case steps.OpDiv:
			if got.Operand != ctx.A {
				set.add(IndDividesByWrongNumber)
			}
		}
	}

	right := ctx.RightValue()
	if got.Operand == right && right != want.Operand && right != ctx.A {
		set.add(IndTargetsRightSideValue)
	}
}

// analyzeHistory flags error types seen at least twice and learners who
// keep missing without a single correct answer in a row.
func analyzeHistory(set indicatorSet, hist History) {
	for errType, count := range hist.Errors {
		if count >= recurringAt {
			set.add(Recurring(errType))
		}
	}
	if hist.ConsecutiveCorrect == 0 && hist.TotalAttempts > persistentAfter {
		set.add(IndPersistentConfusion)
	}
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
