package parser

import (
	"testing"

	"github.com/funvibe/funxy/internal/lexer"
)

// FuzzParse feeds arbitrary token streams through the recursive-descent
// parser. Malformed programs must come back as diagnostics in the
// returned Bag (spec.md §7), never a panic — panic-mode synchronization
// (declaration's recover) is exactly what's meant to absorb garbage
// input like this.
func FuzzParse(f *testing.F) {
	f.Add([]byte("class A < B { init() { this.x = 1; } }"))
	f.Add([]byte("for (;;) { while (true) return; }"))
	f.Add([]byte("1 + ; }{("))
	f.Add([]byte(""))

	f.Fuzz(func(t *testing.T, data []byte) {
		lx := lexer.New(string(data))
		tokens := lx.ScanTokens()

		p := New(tokens)
		_, _ = p.Parse()
	})
}
