// Package parser implements tier A's recursive-descent parser (spec.md
// §4.2), generalizing the teacher's panic-mode-synchronizing Parser
// (internal/parser/expressions_core.go, statements.go) down to the fixed
// precedence grammar jlox uses, grounded directly in
// original_source/jlox-in-cpp/Parser.cpp.
package parser

import (
	"github.com/funvibe/funxy/internal/ast"
	"github.com/funvibe/funxy/internal/diagnostics"
	"github.com/funvibe/funxy/internal/token"
)

// parseError is a sentinel used to unwind out of a broken production and
// into the nearest declaration() call, which synchronizes and continues
// (spec.md §4.2, §7: multiple errors per run, panic-mode synchronization).
type parseError struct{}

// Parser turns a token slice into a statement list, collecting every
// recoverable syntax error into a diagnostics.Bag rather than stopping at
// the first one.
type Parser struct {
	tokens  []token.Token
	current int
	ids     *ast.IDGen
	errs    *diagnostics.Bag
}

// New creates a Parser over a complete token stream (tier A consumes the
// scanner eagerly, spec.md §4.1).
func New(tokens []token.Token) *Parser {
	return &Parser{tokens: tokens, ids: ast.NewIDGen(), errs: diagnostics.NewBag()}
}

// Parse returns the parsed program and the diagnostic bag describing any
// syntax errors encountered. The statement slice is still usable (as far
// as parsing got) even when errors were reported; the driver decides
// whether to proceed based on errs.HasErrors().
func (p *Parser) Parse() ([]ast.Stmt, *diagnostics.Bag) {
	var statements []ast.Stmt
	for !p.isAtEnd() {
		if stmt, ok := p.declaration(); ok {
			statements = append(statements, stmt)
		}
	}
	return statements, p.errs
}

// --- token cursor helpers ---

func (p *Parser) isAtEnd() bool { return p.peek().Kind == token.EOF }

func (p *Parser) peek() token.Token { return p.tokens[p.current] }

func (p *Parser) previous() token.Token { return p.tokens[p.current-1] }

func (p *Parser) advance() token.Token {
	if !p.isAtEnd() {
		p.current++
	}
	return p.previous()
}

func (p *Parser) check(k token.Kind) bool {
	if p.isAtEnd() {
		return k == token.EOF
	}
	return p.peek().Kind == k
}

func (p *Parser) match(kinds ...token.Kind) bool {
	for _, k := range kinds {
		if p.check(k) {
			p.advance()
			return true
		}
	}
	return false
}

// consume advances past a token of kind k, or reports message and panics
// with parseError to unwind to the nearest declaration() synchronization
// point (spec.md §9: "a dedicated unwinding mechanism in the host
// language" — Go's panic/recover plays that role here, mirroring the
// C++ original's ParseError exception in original_source/jlox-in-cpp/Parser.cpp).
func (p *Parser) consume(k token.Kind, message string) token.Token {
	if p.check(k) {
		return p.advance()
	}
	panic(p.errorAt(p.peek(), message))
}

// errorAt reports a compile diagnostic anchored at tok, formatted per
// spec.md §6 ("at end" vs "at '<lexeme>'"), and returns a parseError the
// caller may panic with to unwind the current production.
func (p *Parser) errorAt(tok token.Token, message string) parseError {
	if tok.Kind == token.EOF {
		p.errs.AddCompileAtEnd(tok.Line, message)
	} else {
		p.errs.AddCompile(tok.Line, tok.Lexeme, message)
	}
	return parseError{}
}

// synchronize discards tokens until the next statement boundary: after a
// `;` or before a statement-starting keyword (spec.md §4.2). A keyword the
// error was raised at is kept, so the next declaration starts from it.
func (p *Parser) synchronize() {
	switch p.peek().Kind {
	case token.Class, token.Fun, token.Var, token.For, token.If, token.While, token.Print, token.Return:
		return
	}
	p.advance()
	for !p.isAtEnd() {
		if p.previous().Kind == token.Semicolon {
			return
		}
		switch p.peek().Kind {
		case token.Class, token.Fun, token.Var, token.For, token.If, token.While, token.Print, token.Return:
			return
		}
		p.advance()
	}
}

func (p *Parser) nextID() int { return p.ids.Next() }
