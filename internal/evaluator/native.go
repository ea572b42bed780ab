package evaluator

import "time"

// defineGlobals installs the natives spec.md §4.6 requires directly in
// Lox: clock() returns the number of seconds since the Unix epoch as a
// Lox number, matching jlox's System.currentTimeMillis()/1000.0 native.
func defineGlobals(globals *Environment) {
	globals.Define("clock", &NativeFunction{
		name:  "clock",
		arity: 0,
		fn: func(interp *Interpreter, args []Object) (Object, error) {
			return &Number{Value: float64(time.Now().UnixNano()) / 1e9}, nil
		},
	})
}
