package lexer

import "testing"

// FuzzNextToken feeds arbitrary byte sequences through the scanner. The
// only invariant is "never panics, always terminates at EOF" — malformed
// input should surface as an Error token (spec.md §4.1), not a crash.
func FuzzNextToken(f *testing.F) {
	f.Add([]byte("fun main() { print \"hi\" + 1; }"))
	f.Add([]byte("// comment\nvar x = 1.5;"))
	f.Add([]byte("\"unterminated"))
	f.Add([]byte("1.2.3"))
	f.Add([]byte(""))

	f.Fuzz(func(t *testing.T, data []byte) {
		l := New(string(data))
		for i := 0; i < len(data)+1; i++ {
			tok := l.NextToken()
			if tok.Line < 0 {
				t.Fatalf("negative line number: %d", tok.Line)
			}
			if tok.Kind.String() == "EOF" {
				break
			}
		}
	})
}
