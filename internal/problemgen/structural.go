package problemgen

// StructuralValidator checks that each value sits inside its band.
type StructuralValidator struct{}

func (v *StructuralValidator) Name() string { return "structural" }

func (v *StructuralValidator) Validate(eq Equation, band Band) *ValidationError {
	if eq.A < MinCoefficient || eq.A > MaxCoefficient {
		return &ValidationError{Validator: v.Name(), Message: "coefficient a outside [2,6]"}
	}
	if eq.B == 0 {
		return &ValidationError{Validator: v.Name(), Message: "constant b is zero"}
	}
	mag := eq.B
	if mag < 0 {
		mag = -mag
	}
	if mag < band.MinB || mag > band.MaxB {
		return &ValidationError{Validator: v.Name(), Message: "constant b outside band"}
	}
	if eq.X < band.MinX || eq.X > band.MaxX {
		return &ValidationError{Validator: v.Name(), Message: "solution x outside band"}
	}
	return nil
}
