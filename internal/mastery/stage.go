package mastery

// Stage is the guidance verbosity shown to a learner.
type Stage string

const (
	StageGuided        Stage = "guided"
	StageCollaborative Stage = "collaborative"
	StageIndependent   Stage = "independent"
)

// ConceptLevel is the lowest skill the learner has not yet mastered.
type ConceptLevel string

const (
	LevelBalance    ConceptLevel = "balance"
	LevelInverse    ConceptLevel = "inverse"
	LevelSingleStep ConceptLevel = "single_step"
	LevelMultiStep  ConceptLevel = "multi_step"
)

// Mastery thresholds used by the assessor.
const (
	BalanceMastered = 0.6
	InverseMastered = 0.6
	SolvingMastered = 0.7

	GuidedBelow        = 0.4
	CollaborativeBelow = 0.7
)

// Assessment pairs a guidance stage with a concept level.
type Assessment struct {
	Stage Stage        `json:"learning_stage"`
	Level ConceptLevel `json:"concept_level"`
}

// Features are the presentation switches implied by a stage.
type Features struct {
	ShowVisualAids bool `json:"show_visual_aids"`
	ProvideHints   bool `json:"provide_hints"`
	ErrorAnalysis  bool `json:"error_analysis"`
}

// Assess maps a snapshot to its stage and concept level.
func Assess(s Snapshot) Assessment {
	return Assessment{
		Stage: StageFor(s.Mean()),
		Level: LevelFor(s),
	}
}

// LevelFor tests skills in fixed priority order and returns the first
// one below its mastery threshold.
func LevelFor(s Snapshot) ConceptLevel {
	switch {
	case s.Balance < BalanceMastered:
		return LevelBalance
	case s.Inverse < InverseMastered:
		return LevelInverse
	case s.Solving < SolvingMastered:
		return LevelSingleStep
	default:
		return LevelMultiStep
	}
}

// StageFor maps a mean mastery score to a guidance stage.
func StageFor(mean float64) Stage {
	switch {
	case mean < GuidedBelow:
		return StageGuided
	case mean < CollaborativeBelow:
		return StageCollaborative
	default:
		return StageIndependent
	}
}

// FeaturesFor returns the presentation switches for a stage.
func FeaturesFor(stage Stage) Features {
	return Features{
		ShowVisualAids: stage != StageIndependent,
		ProvideHints:   stage == StageGuided,
		ErrorAnalysis:  true,
	}
}

// Rank orders concept levels from least to most advanced.
func (l ConceptLevel) Rank() int {
	switch l {
	case LevelBalance:
		return 0
	case LevelInverse:
		return 1
	case LevelSingleStep:
		return 2
	case LevelMultiStep:
		return 3
	}
	return 0
}
