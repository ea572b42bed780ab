package vm

import "testing"

// FuzzCompile feeds arbitrary source through the single-pass bytecode
// compiler. A malformed program must come back as a diagnostics.Bag
// (spec.md §7), never a panic — panicMode/synchronize exists precisely
// to absorb garbage input like this.
func FuzzCompile(f *testing.F) {
	f.Add([]byte("class A < B { init() { this.x = super.y(); } }"))
	f.Add([]byte("fun f(a,b) { return a + b; } print f(1,2);"))
	f.Add([]byte("for (var i = 0; i < 10; i = i + 1) print i;"))
	f.Add([]byte("{{{{{{{{}}}}}}}}"))
	f.Add([]byte(""))

	f.Fuzz(func(t *testing.T, data []byte) {
		_, _ = Compile(string(data), NewTable())
	})
}
