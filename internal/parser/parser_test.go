package parser

import (
	"testing"

	"github.com/funvibe/funxy/internal/ast"
	"github.com/funvibe/funxy/internal/lexer"
)

func parseSource(t *testing.T, source string) []ast.Stmt {
	t.Helper()
	tokens := lexer.New(source).ScanTokens()
	stmts, bag := New(tokens).Parse()
	if bag.HasErrors() {
		t.Fatalf("unexpected parse errors: %v", bag.Entries())
	}
	return stmts
}

func TestParsePrecedence(t *testing.T) {
	stmts := parseSource(t, "print 1 + 2 * 3;")
	if len(stmts) != 1 {
		t.Fatalf("expected 1 statement, got %d", len(stmts))
	}
	printStmt, ok := stmts[0].(*ast.PrintStmt)
	if !ok {
		t.Fatalf("expected *ast.PrintStmt, got %T", stmts[0])
	}
	bin, ok := printStmt.Expression.(*ast.BinaryExpr)
	if !ok || bin.Operator.Lexeme != "+" {
		t.Fatalf("expected top-level + binary, got %#v", printStmt.Expression)
	}
	rhs, ok := bin.Right.(*ast.BinaryExpr)
	if !ok || rhs.Operator.Lexeme != "*" {
		t.Fatalf("expected * to bind tighter than +, got %#v", bin.Right)
	}
}

func TestForDesugarsToWhile(t *testing.T) {
	stmts := parseSource(t, "for (var i = 0; i < 3; i = i + 1) print i;")
	if len(stmts) != 1 {
		t.Fatalf("expected 1 statement, got %d", len(stmts))
	}
	block, ok := stmts[0].(*ast.BlockStmt)
	if !ok || len(block.Statements) != 2 {
		t.Fatalf("expected desugared block with init+while, got %#v", stmts[0])
	}
	if _, ok := block.Statements[0].(*ast.VarStmt); !ok {
		t.Fatalf("expected first statement to be the initializer")
	}
	whileStmt, ok := block.Statements[1].(*ast.WhileStmt)
	if !ok {
		t.Fatalf("expected second statement to be the desugared while, got %#v", block.Statements[1])
	}
	body, ok := whileStmt.Body.(*ast.BlockStmt)
	if !ok || len(body.Statements) != 2 {
		t.Fatalf("expected while body to contain original body + increment")
	}
}

func TestClassWithSuperclassAndMethods(t *testing.T) {
	stmts := parseSource(t, `class B < A { greet() { print "hi"; } }`)
	class, ok := stmts[0].(*ast.ClassStmt)
	if !ok {
		t.Fatalf("expected *ast.ClassStmt, got %T", stmts[0])
	}
	if class.Superclass == nil || class.Superclass.Name.Lexeme != "A" {
		t.Fatalf("expected superclass A, got %#v", class.Superclass)
	}
	if len(class.Methods) != 1 || class.Methods[0].Name.Lexeme != "greet" {
		t.Fatalf("expected one method named greet, got %#v", class.Methods)
	}
}

func TestInvalidAssignmentTargetReportsError(t *testing.T) {
	tokens := lexer.New("1 = 2;").ScanTokens()
	_, bag := New(tokens).Parse()
	if !bag.HasErrors() {
		t.Fatalf("expected an error for an invalid assignment target")
	}
}

func TestSynchronizeRecoversAfterError(t *testing.T) {
	// The missing semicolon after `1` should be reported, but the parser
	// should still recover and parse the second statement.
	tokens := lexer.New("print 1 print 2;").ScanTokens()
	stmts, bag := New(tokens).Parse()
	if !bag.HasErrors() {
		t.Fatalf("expected a missing-semicolon error")
	}
	if len(stmts) == 0 {
		t.Fatalf("expected the parser to recover and still return statements")
	}
}
