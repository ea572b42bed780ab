package evaluator

import "github.com/funvibe/funxy/internal/token"

// RuntimeError carries the token where a runtime fault occurred so the
// driver can format it per spec.md §6 (`MESSAGE\n[line L]`) and keep
// interpreting the next top-level statement in a REPL.
type RuntimeError struct {
	Token   token.Token
	Message string
}

func (e *RuntimeError) Error() string { return e.Message }

func newRuntimeError(tok token.Token, message string) *RuntimeError {
	return &RuntimeError{Token: tok, Message: message}
}

// returnSignal unwinds a Lox `return` out of the executing function body
// back to LoxFunction.Call, the same way parser.parseError unwinds a
// broken production back to declaration() (spec.md §9's "dedicated
// unwinding mechanism", realized here with panic/recover rather than a
// sentinel error return, since a return can surface through arbitrarily
// deep statement execution).
type returnSignal struct{ value Object }
