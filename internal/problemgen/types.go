package problemgen

import (
	"fmt"
	"strings"
)

// Equation is a linear equation a·x + b = c with its intended solution.
// Values are immutable once generated.
type Equation struct {
	A int `json:"a"`
	B int `json:"b"`
	C int `json:"c"`
	X int `json:"x"`
}

// NewEquation builds the equation a·x + b = c for the given solution x.
func NewEquation(a, b, x int) Equation {
	return Equation{A: a, B: b, C: a*x + b, X: x}
}

// Balanced reports whether a·x + b = c holds.
func (e Equation) Balanced() bool {
	return e.A*e.X+e.B == e.C
}

// Left renders the left-hand side, e.g. "3x + 4", "3x - 4", "x".
func (e Equation) Left() string {
	return FormatLeft(e.A, e.B)
}

// Display renders the full equation, e.g. "3x + 4 = 19".
func (e Equation) Display() string {
	return fmt.Sprintf("%s = %d", e.Left(), e.C)
}

func (e Equation) String() string { return e.Display() }

// FormatLeft renders a·x + b with the sign folded into the operator.
func FormatLeft(a, b int) string {
	var sb strings.Builder
	switch a {
	case 1:
		sb.WriteString("x")
	case -1:
		sb.WriteString("-x")
	default:
		fmt.Fprintf(&sb, "%dx", a)
	}
	switch {
	case b > 0:
		fmt.Fprintf(&sb, " + %d", b)
	case b < 0:
		fmt.Fprintf(&sb, " - %d", -b)
	}
	return sb.String()
}
