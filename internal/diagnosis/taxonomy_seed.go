package diagnosis

// seedTaxonomy is the closed misconception taxonomy. Order breaks
// confidence ties in the detector.
var seedTaxonomy = []Entry{
	{
		Type:        EquationStatement,
		Label:       "Equation as a calculation",
		Description: "Reads the equation as a sum to evaluate rather than a balance between two sides",
		Triggers:    []Indicator{IndTargetsRightSideValue, IndFamilySwitch, IndPersistentConfusion},
		Symptoms: []string{
			"Works with the right-hand value as if it were part of the calculation",
			"Switches to an unrelated kind of operation",
			"Keeps choosing without treating the equation as a balance",
		},
		BaseSeverity: 0.9,
	},
	{
		Type:        OperationReversal,
		Label:       "Operation reversal",
		Description: "Repeats the operation already present instead of applying its inverse",
		Triggers:    []Indicator{IndAddsInsteadOfSubtract, IndMultipliesInsteadOfDivide},
		Symptoms: []string{
			"Adds the constant instead of subtracting it",
			"Multiplies by the coefficient instead of dividing",
		},
		BaseSeverity: 0.7,
	},
	{
		Type:        SignError,
		Label:       "Sign error",
		Description: "Mixes up + and - when moving a term across the equals sign",
		Triggers:    []Indicator{IndSignReversal, IndSubtractsNegativeWrong, IndLosesNegativeSign},
		Symptoms: []string{
			"Confuses + and - when undoing a term",
			"Subtracts a term that is already negative",
			"Drops the negative sign on the constant",
		},
		BaseSeverity: 0.5,
	},
	{
		Type:        CoefficientConfusion,
		Label:       "Coefficient confusion",
		Description: "Treats the coefficient of x as something to add or subtract away",
		Triggers:    []Indicator{IndTreatsCoefficientAsAddend, IndDividesByWrongNumber, IndUsesCoefficientAsConstant},
		Symptoms: []string{
			"Tries to remove the coefficient by adding or subtracting",
			"Divides by a number other than the coefficient",
			"Uses the coefficient as if it were the constant term",
		},
		BaseSeverity: 0.7,
	},
	{
		Type:        BalanceViolation,
		Label:       "Balance violation",
		Description: "Changes one side without keeping the equation balanced",
		Triggers:    []Indicator{IndTargetsRightSideValue, IndPersistentConfusion},
		Symptoms: []string{
			"Operates on the right-hand value alone",
			"Does not check that both sides stay equal",
		},
		BaseSeverity: 0.9,
	},
	{
		Type:        OrderOfOperations,
		Label:       "Order of operations",
		Description: "Undoes the coefficient before the constant term",
		Triggers:    []Indicator{IndTargetsCoefficientFirst, IndFamilySwitch},
		Symptoms: []string{
			"Divides by the coefficient while the constant is still attached",
			"Reaches for multiplication or division where addition or subtraction is needed",
		},
		BaseSeverity: 0.6,
	},
	{
		Type:        VariableMisconception,
		Label:       "Variable misconception",
		Description: "Reads 3x as 3 + x rather than 3 groups of x",
		Triggers:    []Indicator{IndUsesCoefficientAsConstant, IndTreatsCoefficientAsAddend},
		Symptoms: []string{
			"Treats the coefficient as a separate number next to x",
			"Handles the variable term as a sum",
		},
		BaseSeverity: 0.8,
	},
	{
		Type:        ProceduralError,
		Label:       "Procedural slip",
		Description: "Right idea, wrong mechanics: wrong number or a swapped inverse",
		Triggers:    []Indicator{IndWrongNumber, IndInverseConfusion, IndOperationReversal},
		Symptoms: []string{
			"Uses a number that is not in the equation",
			"Swaps multiplication and division",
			"Picks an operation that undoes nothing",
		},
		BaseSeverity: 0.3,
	},
}
