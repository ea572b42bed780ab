package lexer

import (
	"testing"

	"github.com/funvibe/funxy/internal/token"
)

func TestNextTokenBasic(t *testing.T) {
	input := `(){},.-+;*/= == ! != < <= > >=`

	tests := []struct {
		kind   token.Kind
		lexeme string
	}{
		{token.LeftParen, "("},
		{token.RightParen, ")"},
		{token.LeftBrace, "{"},
		{token.RightBrace, "}"},
		{token.Comma, ","},
		{token.Dot, "."},
		{token.Minus, "-"},
		{token.Plus, "+"},
		{token.Semicolon, ";"},
		{token.Star, "*"},
		{token.Slash, "/"},
		{token.Equal, "="},
		{token.EqualEqual, "=="},
		{token.Bang, "!"},
		{token.BangEqual, "!="},
		{token.Less, "<"},
		{token.LessEqual, "<="},
		{token.Greater, ">"},
		{token.GreaterEqual, ">="},
		{token.EOF, ""},
	}

	l := New(input)
	for i, tt := range tests {
		tok := l.NextToken()
		if tok.Kind != tt.kind {
			t.Fatalf("tests[%d] - kind wrong. expected=%v, got=%v", i, tt.kind, tok.Kind)
		}
		if tok.Lexeme != tt.lexeme {
			t.Fatalf("tests[%d] - lexeme wrong. expected=%q, got=%q", i, tt.lexeme, tok.Lexeme)
		}
	}
}

func TestKeywordsAndIdentifiers(t *testing.T) {
	input := `var x = 1; fun f() { return x; } class A < B {}`
	l := New(input)
	var kinds []token.Kind
	for {
		tok := l.NextToken()
		kinds = append(kinds, tok.Kind)
		if tok.Kind == token.EOF {
			break
		}
	}
	want := []token.Kind{
		token.Var, token.Identifier, token.Equal, token.Number, token.Semicolon,
		token.Fun, token.Identifier, token.LeftParen, token.RightParen, token.LeftBrace,
		token.Return, token.Identifier, token.Semicolon, token.RightBrace,
		token.Class, token.Identifier, token.Less, token.Identifier, token.LeftBrace, token.RightBrace,
		token.EOF,
	}
	if len(kinds) != len(want) {
		t.Fatalf("token count mismatch: got %d want %d (%v)", len(kinds), len(want), kinds)
	}
	for i := range want {
		if kinds[i] != want[i] {
			t.Fatalf("token %d: got %v want %v", i, kinds[i], want[i])
		}
	}
}

func TestStringLiteral(t *testing.T) {
	l := New(`"hello\nworld"`)
	tok := l.NextToken()
	if tok.Kind != token.String {
		t.Fatalf("expected STRING, got %v", tok.Kind)
	}
	if tok.Literal.Str != `hello\nworld` {
		t.Fatalf("expected literal contents preserved raw, got %q", tok.Literal.Str)
	}
}

func TestUnterminatedString(t *testing.T) {
	l := New(`"abc`)
	tok := l.NextToken()
	if tok.Kind != token.Error {
		t.Fatalf("expected ERROR token, got %v", tok.Kind)
	}
	if tok.Literal.Str != "Unterminated string." {
		t.Fatalf("unexpected message %q", tok.Literal.Str)
	}
}

func TestNumberLiteral(t *testing.T) {
	l := New(`123 45.67`)
	tok := l.NextToken()
	if tok.Kind != token.Number || tok.Literal.Num != 123 {
		t.Fatalf("unexpected token %+v", tok)
	}
	tok = l.NextToken()
	if tok.Kind != token.Number || tok.Literal.Num != 45.67 {
		t.Fatalf("unexpected token %+v", tok)
	}
}

func TestLineComment(t *testing.T) {
	l := New("1 // a comment\n2")
	tok := l.NextToken()
	if tok.Kind != token.Number || tok.Literal.Num != 1 {
		t.Fatalf("unexpected token %+v", tok)
	}
	tok = l.NextToken()
	if tok.Kind != token.Number || tok.Literal.Num != 2 || tok.Line != 2 {
		t.Fatalf("unexpected token %+v", tok)
	}
}

func TestScanTokensTerminatesWithEOF(t *testing.T) {
	tokens := New("var a = 1;").ScanTokens()
	if len(tokens) == 0 || tokens[len(tokens)-1].Kind != token.EOF {
		t.Fatalf("expected final token to be EOF, got %+v", tokens)
	}
}
