package tutor

import (
	"github.com/abhisek/algebriz/internal/mastery"
	"github.com/abhisek/algebriz/internal/problemgen"
)

var intros = map[mastery.ConceptLevel][]string{
	mastery.LevelBalance: {
		"Ancient arithmancers solved equations with magic scales. Learn their art!",
		"A secret balancing technique awaits. The magic scales will help you find the unknown number.",
		"The legendary scales are waiting. Discover how to keep them balanced while you hunt for x.",
	},
	mastery.LevelInverse: {
		"Every operation has an opposite. Use the right one to undo what was done to x.",
		"Undo, don't add to. Pick the inverse operation to peel numbers away from x.",
	},
	mastery.LevelSingleStep: {
		"Apply the magic scales technique to solve this equation.",
		"Use the balance principle to find the unknown.",
	},
	mastery.LevelMultiStep: {
		"A tricky equation calls for a master arithmancer. Show your skill!",
		"Multi-step balance magic. Ready for the challenge?",
	},
}

// introFor picks the display text for a concept level. The choice is keyed
// on the equation so the same problem always reads the same way.
func introFor(level mastery.ConceptLevel, eq problemgen.Equation) string {
	lines, ok := intros[level]
	if !ok {
		lines = intros[mastery.LevelBalance]
	}
	i := (eq.A + eq.X) % len(lines)
	if i < 0 {
		i = -i
	}
	return lines[i]
}
