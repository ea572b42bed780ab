package evaluator

import "strconv"

// Number is Lox's single numeric kind: a double-precision float, per
// spec.md §4.1 (no separate int/float split, unlike the teacher's
// Integer/Float/BigInt/Rational tower).
type Number struct{ Value float64 }

func (n *Number) Type() ObjectType { return NUMBER_OBJ }
func (n *Number) Inspect() string {
	// Lox prints integral doubles without a trailing ".0" (jlox's
	// Interpreter.stringify), e.g. `print 3;` -> "3", not "3.0".
	s := strconv.FormatFloat(n.Value, 'f', -1, 64)
	return s
}

// String is a Lox string value.
type String struct{ Value string }

func (s *String) Type() ObjectType { return STRING_OBJ }
func (s *String) Inspect() string  { return s.Value }
