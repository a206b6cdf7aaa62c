package steps

import "github.com/abhisek/algebriz/internal/mastery"

type guidanceKey string

const (
	guidePlanning guidanceKey = "planning"
	guideExecute  guidanceKey = "execute"
	guideFinal    guidanceKey = "final"
)

var stageGuidance = map[mastery.Stage]map[guidanceKey]string{
	mastery.StageGuided: {
		guidePlanning: "Strategy: first clear away everything around x, then isolate x itself.",
		guideExecute:  "Hint: to remove a number, apply the INVERSE operation to BOTH sides.",
		guideFinal:    "Last step: cancel the coefficient of x by dividing by it.",
	},
	mastery.StageCollaborative: {
		guidePlanning: "Think: what is stopping x from standing alone?",
		guideExecute:  "Which operation undoes the one already in the equation?",
		guideFinal:    "How do you turn 'number × x' into just 'x'?",
	},
}

// Guidance returns the coaching line for a step kind at a stage.
// Independent learners get none.
func Guidance(stage mastery.Stage, kind Kind) string {
	key := guideExecute
	switch kind {
	case KindPlanning:
		key = guidePlanning
	case KindFinalIsolation:
		key = guideFinal
	case KindConceptIntro:
		return ""
	}
	return stageGuidance[stage][key]
}

const conceptExplanation = "An equation is like a set of scales. Whatever we add or take away, we do to BOTH pans so the scales stay balanced."
