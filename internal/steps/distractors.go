package steps

import "fmt"

// distractorPool holds the plausible-but-wrong operands offered at each step.
var distractorPool = []int{2, 3, 5, 7, 10}

const wrongNumberCount = 2

// options builds the correct option, its opposite, and up to two
// wrong-number distractors, then shuffles them.
func (s *Sequencer) options(correct Operation, a int) []Option {
	opts := []Option{
		{
			Operation:   correct.String(),
			Description: describe(correct),
			Correct:     true,
			Explanation: correctExplanation(correct),
		},
		opposite(correct),
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var pool []int
	for _, d := range distractorPool {
		if d != correct.Operand && d != a {
			pool = append(pool, d)
		}
	}
	s.rng.Shuffle(len(pool), func(i, j int) { pool[i], pool[j] = pool[j], pool[i] })
	for _, d := range pool[:min(wrongNumberCount, len(pool))] {
		wrong := Operation{Op: correct.Op, Operand: d}
		opts = append(opts, Option{
			Operation:   wrong.String(),
			Description: describe(wrong),
			Explanation: "Wrong number. Work with a number that actually appears in the equation.",
			ErrorType:   TagWrongNumber,
		})
	}

	s.rng.Shuffle(len(opts), func(i, j int) { opts[i], opts[j] = opts[j], opts[i] })
	return opts
}

func opposite(correct Operation) Option {
	wrong := Operation{Op: correct.Op.Opposite(), Operand: correct.Operand}
	if correct.Op.Additive() {
		return Option{
			Operation:   wrong.String(),
			Description: describe(wrong),
			Explanation: fmt.Sprintf("That makes the equation harder, not simpler. To REMOVE %d you need the INVERSE operation.", correct.Operand),
			ErrorType:   TagOppositeOperation,
		}
	}
	return Option{
		Operation:   wrong.String(),
		Description: describe(wrong),
		Explanation: fmt.Sprintf("That makes the equation harder. To undo multiplication by %d, DIVIDE by %d.", correct.Operand, correct.Operand),
		ErrorType:   TagWrongInverse,
	}
}

func describe(o Operation) string {
	switch o.Op {
	case OpAdd:
		return fmt.Sprintf("Add %d to both sides", o.Operand)
	case OpSub:
		return fmt.Sprintf("Subtract %d from both sides", o.Operand)
	case OpMul:
		return fmt.Sprintf("Multiply both sides by %d", o.Operand)
	default:
		return fmt.Sprintf("Divide both sides by %d", o.Operand)
	}
}

func correctExplanation(o Operation) string {
	if o.Op.Additive() {
		return "Correct! That cancels the constant and simplifies the left side."
	}
	return fmt.Sprintf("Correct! Dividing by %d cancels the multiplication by %d.", o.Operand, o.Operand)
}
