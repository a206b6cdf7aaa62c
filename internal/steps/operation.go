package steps

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Operator is one of the four arithmetic operations applied to both sides.
type Operator string

const (
	OpAdd Operator = "+"
	OpSub Operator = "-"
	OpMul Operator = "*"
	OpDiv Operator = "/"
)

// ErrBadOperation is returned by ParseOperation for unreadable input.
var ErrBadOperation = errors.New("unrecognized operation")

// Operation is an operator applied to both sides with a non-negative operand.
type Operation struct {
	Op      Operator `json:"op"`
	Operand int      `json:"operand"`
}

// String renders the canonical form, e.g. "- 4".
func (o Operation) String() string {
	return fmt.Sprintf("%s %d", o.Op, o.Operand)
}

// Display renders the operation with typographic symbols, e.g. "÷ 3".
func (o Operation) Display() string {
	return fmt.Sprintf("%s %d", o.Op.Symbol(), o.Operand)
}

// Symbol returns the typographic symbol for the operator.
func (op Operator) Symbol() string {
	switch op {
	case OpSub:
		return "−"
	case OpMul:
		return "×"
	case OpDiv:
		return "÷"
	}
	return string(op)
}

// Opposite swaps + with - and * with /.
func (op Operator) Opposite() Operator {
	switch op {
	case OpAdd:
		return OpSub
	case OpSub:
		return OpAdd
	case OpMul:
		return OpDiv
	default:
		return OpMul
	}
}

// Additive reports whether the operator is + or -.
func (op Operator) Additive() bool {
	return op == OpAdd || op == OpSub
}

// Apply evaluates the operation on a right-hand value. Division that does
// not come out even reports false.
func (o Operation) Apply(v int) (int, bool) {
	switch o.Op {
	case OpAdd:
		return v + o.Operand, true
	case OpSub:
		return v - o.Operand, true
	case OpMul:
		return v * o.Operand, true
	case OpDiv:
		if o.Operand == 0 || v%o.Operand != 0 {
			return 0, false
		}
		return v / o.Operand, true
	}
	return 0, false
}

// ParseOperation reads forms like "-4", "- 4", "/3", "× 3" and "÷ 3".
func ParseOperation(s string) (Operation, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Operation{}, fmt.Errorf("parse %q: %w", s, ErrBadOperation)
	}

	var op Operator
	var rest string
	for sym, o := range operatorSymbols {
		if strings.HasPrefix(s, sym) {
			op, rest = o, s[len(sym):]
			break
		}
	}
	if op == "" {
		return Operation{}, fmt.Errorf("parse %q: %w", s, ErrBadOperation)
	}

	n, err := strconv.Atoi(strings.TrimSpace(rest))
	if err != nil || n < 0 {
		return Operation{}, fmt.Errorf("parse %q: %w", s, ErrBadOperation)
	}
	return Operation{Op: op, Operand: n}, nil
}

var operatorSymbols = map[string]Operator{
	"+": OpAdd,
	"-": OpSub,
	"−": OpSub,
	"*": OpMul,
	"×": OpMul,
	"/": OpDiv,
	"÷": OpDiv,
}

// SameOperation reports whether two operation strings denote the same
// operation. Unparseable strings compare by trimmed text.
func SameOperation(a, b string) bool {
	oa, errA := ParseOperation(a)
	ob, errB := ParseOperation(b)
	if errA != nil || errB != nil {
		return strings.TrimSpace(a) == strings.TrimSpace(b)
	}
	return oa == ob
}
