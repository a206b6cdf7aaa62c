package remediation

import "github.com/abhisek/algebriz/internal/diagnosis"

// Default texts.
const (
	DefaultVisualAid   = "step-by-step guide"
	defaultExplanation = "Read the step again carefully and compare both sides of the equation."
	defaultPracticeTip = "Practice with simpler examples first."
	genericMessage     = "Try again, reading the equation carefully."
)

// Encouragement by recurrence count.
const (
	EncourageFirst     = "That's normal: everyone makes mistakes while learning!"
	EncourageOnPath    = "You're on the right path. This mistake will help you understand the idea better."
	EncourageDifferent = "This kind of problem needs more practice. Let's try a different approach."
)

// Encouragement by attempt history, used when no misconception was found.
const (
	EncourageEarly    = "Don't worry, learning takes time. Keep trying!"
	EncourageStruggle = "Maths can be hard, but you're on the right path. Every mistake is a lesson!"
	EncourageSteady   = "Great work! Keep it up."
)

const (
	earlyAttempts    = 3
	struggleAttempts = 5
	detailedTipAt    = 3
)

// Payload is learner-facing help for one wrong choice.
type Payload struct {
	PrimaryIssue  diagnosis.Misconception `json:"primary_issue,omitempty"`
	Confidence    float64                 `json:"confidence"`
	Explanation   string                  `json:"explanation"`
	Analogy       string                  `json:"analogy,omitempty"`
	PracticeTip   string                  `json:"practice_tip,omitempty"`
	VisualAid     string                  `json:"visual_aid,omitempty"`
	Encouragement string                  `json:"encouragement"`
	Generic       bool                    `json:"generic,omitempty"`
}

// Generate builds help for the top-ranked hypothesis. With no hypotheses it
// falls back to Generic.
func Generate(hyps []diagnosis.Hypothesis, profile Profile) Payload {
	if len(hyps) == 0 {
		return Generic(profile)
	}
	top := hyps[0]
	s := StrategyFor(top.Type)
	if s == nil {
		s = &Strategy{}
	}

	return Payload{
		PrimaryIssue:  top.Type,
		Confidence:    top.Confidence,
		Explanation:   explanation(s, profile.Style),
		Analogy:       first(s.Analogies),
		PracticeTip:   practiceTip(s, top.Frequency),
		VisualAid:     visualAid(s),
		Encouragement: Encouragement(top.Frequency),
	}
}

// Generic is the retry payload for a classification miss.
func Generic(profile Profile) Payload {
	return Payload{
		Explanation:   genericMessage,
		VisualAid:     DefaultVisualAid,
		Encouragement: attemptEncouragement(profile),
		Generic:       true,
	}
}

// Encouragement scales with how often the misconception has recurred.
func Encouragement(frequency int) string {
	switch {
	case frequency <= 0:
		return EncourageFirst
	case frequency <= 2:
		return EncourageOnPath
	default:
		return EncourageDifferent
	}
}

func attemptEncouragement(p Profile) string {
	switch {
	case p.TotalAttempts <= earlyAttempts:
		return EncourageEarly
	case p.ConsecutiveCorrect == 0 && p.TotalAttempts > struggleAttempts:
		return EncourageStruggle
	default:
		return EncourageSteady
	}
}

// explanation gives visual learners the first explanation and everyone else
// the second when there is one.
func explanation(s *Strategy, style Style) string {
	switch {
	case len(s.Explanations) == 0:
		return defaultExplanation
	case style == StyleVisual || len(s.Explanations) == 1:
		return s.Explanations[0]
	default:
		return s.Explanations[1]
	}
}

func practiceTip(s *Strategy, frequency int) string {
	switch {
	case frequency >= detailedTipAt && len(s.PracticeTips) > 1:
		return s.PracticeTips[1]
	case len(s.PracticeTips) > 0:
		return s.PracticeTips[0]
	default:
		return defaultPracticeTip
	}
}

func visualAid(s *Strategy) string {
	if s.VisualAid == "" {
		return DefaultVisualAid
	}
	return s.VisualAid
}

func first(list []string) string {
	if len(list) == 0 {
		return ""
	}
	return list[0]
}
