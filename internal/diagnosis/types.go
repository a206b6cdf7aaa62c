package diagnosis

import "github.com/abhisek/algebriz/internal/steps"

// Misconception names a recurring category of conceptual algebra error.
type Misconception string

const (
	EquationStatement     Misconception = "equation_statement"
	OperationReversal     Misconception = "operation_reversal"
	SignError             Misconception = "sign_error"
	CoefficientConfusion  Misconception = "coefficient_confusion"
	BalanceViolation      Misconception = "balance_violation"
	OrderOfOperations     Misconception = "order_operations"
	VariableMisconception Misconception = "variable_misconception"
	ProceduralError       Misconception = "procedural_error"
)

// Indicator is a structural signal extracted from a wrong choice.
type Indicator string

// Operation analysis.
const (
	IndSignReversal      Indicator = "sign_reversal"
	IndInverseConfusion  Indicator = "inverse_confusion"
	IndOperationReversal Indicator = "operation_reversal"
	IndWrongNumber       Indicator = "wrong_number"
	IndFamilySwitch      Indicator = "operator_family_switch"
)

// Context analysis.
const (
	IndAddsInsteadOfSubtract     Indicator = "adds_instead_of_subtract"
	IndSubtractsNegativeWrong    Indicator = "subtracts_negative_wrong"
	IndLosesNegativeSign         Indicator = "loses_negative_sign"
	IndMultipliesInsteadOfDivide Indicator = "multiplies_instead_of_divide"
	IndTreatsCoefficientAsAddend Indicator = "treats_coefficient_as_addend"
	IndDividesByWrongNumber      Indicator = "divides_by_wrong_number"
	IndUsesCoefficientAsConstant Indicator = "uses_coefficient_as_constant"
	IndTargetsCoefficientFirst   Indicator = "targets_coefficient_first"
	IndTargetsRightSideValue     Indicator = "targets_right_side_value"
)

// History analysis.
const (
	IndPersistentConfusion Indicator = "persistent_confusion"
)

// Recurring returns the history indicator for an error type seen at least twice.
func Recurring(errorType string) Indicator {
	return Indicator("recurring_" + errorType)
}

// Context locates the wrong choice within the equation being solved.
type Context struct {
	StepIndex int        `json:"step_index"`
	StepKind  steps.Kind `json:"step_kind,omitempty"`
	A         int        `json:"a"`
	B         int        `json:"b"`
	C         int        `json:"c"`
}

// RemovesConstant reports whether the step at StepIndex clears b.
func (c Context) RemovesConstant() bool {
	return c.B != 0 && c.StepIndex == 0
}

// RemovesCoefficient reports whether the step at StepIndex divides out a.
func (c Context) RemovesCoefficient() bool {
	return !c.RemovesConstant() && c.A != 1
}

// RightValue is the right-hand value the learner sees at this step.
func (c Context) RightValue() int {
	if c.RemovesConstant() || c.B == 0 {
		return c.C
	}
	return c.C - c.B
}

// History is the learner's prior error record, taken before this attempt
// is counted.
type History struct {
	Errors             map[string]int `json:"errors"`
	TotalAttempts      int            `json:"total_attempts"`
	ConsecutiveCorrect int            `json:"consecutive_correct"`
}

// Hypothesis is one ranked explanation for a wrong choice.
type Hypothesis struct {
	Type       Misconception `json:"type"`
	Confidence float64       `json:"confidence"`
	Evidence   []string      `json:"evidence"`
	Frequency  int           `json:"frequency"`
	Severity   float64       `json:"severity"`
}
