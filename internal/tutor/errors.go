package tutor

import (
	"errors"
	"fmt"
)

// ErrInvalidStep is returned when a response names a step the sequence
// does not have. It is a caller error; nothing is mutated.
var ErrInvalidStep = errors.New("invalid step index")

// StepError reports an out-of-range step index.
type StepError struct {
	Index int
	Count int
}

func (e *StepError) Error() string {
	return fmt.Sprintf("%v: %d (sequence has %d steps)", ErrInvalidStep, e.Index, e.Count)
}

func (e *StepError) Unwrap() error { return ErrInvalidStep }
