package problemgen

import "fmt"

// BalanceValidator checks that a·x + b = c holds exactly.
type BalanceValidator struct{}

func (v *BalanceValidator) Name() string { return "balance" }

func (v *BalanceValidator) Validate(eq Equation, _ Band) *ValidationError {
	if !eq.Balanced() {
		return &ValidationError{
			Validator: v.Name(),
			Message:   fmt.Sprintf("%d·%d + %d != %d", eq.A, eq.X, eq.B, eq.C),
		}
	}
	return nil
}
