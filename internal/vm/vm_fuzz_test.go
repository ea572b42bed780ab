package vm

import (
	"io"
	"testing"
)

// FuzzInterpret compiles and runs arbitrary source end to end. A
// well-formed but semantically wrong program (e.g. "1 + true") must
// surface as a runtime diagnostic, never a panic or an infinite loop
// under the fuzzer's own timeout.
func FuzzInterpret(f *testing.F) {
	f.Add([]byte(`class Pair { init(a,b) { this.a=a; this.b=b; } } var p = Pair(1,2); print p.a + p.b;`))
	f.Add([]byte(`fun fib(n) { if (n < 2) return n; return fib(n-1) + fib(n-2); } print fib(8);`))
	f.Add([]byte(`1 + true;`))
	f.Add([]byte(`var a = a;`))

	f.Fuzz(func(t *testing.T, data []byte) {
		machine := New(io.Discard)
		_ = machine.Interpret(string(data))
	})
}
