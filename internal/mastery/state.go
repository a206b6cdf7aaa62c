package mastery

// Skill names one of the three tracked algebra skills.
type Skill string

const (
	SkillBalance Skill = "balance_understanding"
	SkillInverse Skill = "inverse_operations"
	SkillSolving Skill = "equation_solving"
)

// Focus selects which skills a correct answer reinforces.
type Focus int

const (
	// FocusBalance is earned on concept-introduction and planning steps.
	FocusBalance Focus = iota
	// FocusOperations is earned on execute and final-isolation steps.
	// Inverse-operations gets the full gain, equation-solving 0.8 of it.
	FocusOperations
)

// Update rule constants.
const (
	BaseGain        = 0.10
	StreakBonus     = 0.05
	StreakThreshold = 3 // bonus applies once the streak exceeds this
	SolvingFactor   = 0.8
	ErrorPenalty    = 0.02
)

// UnknownError is the error bucket used when no misconception was identified.
const UnknownError = "unknown_error"
