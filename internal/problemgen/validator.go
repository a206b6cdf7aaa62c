package problemgen

import "fmt"

// Validator checks a generated equation.
// Implementations should be stateless and safe for concurrent use.
type Validator interface {
	// Name returns a short identifier for error messages, e.g. "structural".
	Name() string

	// Validate returns nil if the equation passes.
	Validate(eq Equation, band Band) *ValidationError
}

// ValidationError describes why an equation failed validation.
type ValidationError struct {
	Validator string
	Message   string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validator %q: %s", e.Validator, e.Message)
}

// DefaultValidators returns the standard validator chain.
func DefaultValidators() []Validator {
	return []Validator{
		&StructuralValidator{},
		&BalanceValidator{},
	}
}

// Validate runs the validators in order and returns the first failure.
func Validate(eq Equation, band Band, validators []Validator) error {
	for _, v := range validators {
		if verr := v.Validate(eq, band); verr != nil {
			return verr
		}
	}
	return nil
}
