package resolver

import (
	"testing"

	"github.com/funvibe/funxy/internal/ast"
	"github.com/funvibe/funxy/internal/lexer"
	"github.com/funvibe/funxy/internal/parser"
)

func resolveSource(t *testing.T, source string) (map[int]int, []ast.Stmt) {
	t.Helper()
	tokens := lexer.New(source).ScanTokens()
	stmts, parseBag := parser.New(tokens).Parse()
	if parseBag.HasErrors() {
		t.Fatalf("unexpected parse errors: %v", parseBag.Entries())
	}
	depths, bag := New().Resolve(stmts)
	if bag.HasErrors() {
		t.Fatalf("unexpected resolve errors: %v", bag.Entries())
	}
	return depths, stmts
}

func TestLocalVariableResolvesToBlockDepth(t *testing.T) {
	depths, stmts := resolveSource(t, `
		var a = "global";
		{
			var a = "inner";
			print a;
		}
	`)
	block := stmts[1].(*ast.BlockStmt)
	printStmt := block.Statements[1].(*ast.PrintStmt)
	variable := printStmt.Expression.(*ast.VariableExpr)
	if d, ok := depths[variable.ExprID()]; !ok || d != 0 {
		t.Fatalf("expected depth 0 for inner `a`, got %d (ok=%v)", d, ok)
	}
}

func TestGlobalReferenceIsNotInDepthTable(t *testing.T) {
	depths, stmts := resolveSource(t, `
		var a = "global";
		print a;
	`)
	printStmt := stmts[1].(*ast.PrintStmt)
	variable := printStmt.Expression.(*ast.VariableExpr)
	if _, ok := depths[variable.ExprID()]; ok {
		t.Fatalf("expected no depth entry for a global reference")
	}
}

func TestSelfReferenceInInitializerIsAnError(t *testing.T) {
	tokens := lexer.New(`{ var a = a; }`).ScanTokens()
	stmts, parseBag := parser.New(tokens).Parse()
	if parseBag.HasErrors() {
		t.Fatalf("unexpected parse errors: %v", parseBag.Entries())
	}
	_, bag := New().Resolve(stmts)
	if !bag.HasErrors() {
		t.Fatalf("expected an error resolving self-reference in initializer")
	}
}

func TestRedeclarationInSameScopeIsAnError(t *testing.T) {
	tokens := lexer.New(`{ var a = 1; var a = 2; }`).ScanTokens()
	stmts, parseBag := parser.New(tokens).Parse()
	if parseBag.HasErrors() {
		t.Fatalf("unexpected parse errors: %v", parseBag.Entries())
	}
	_, bag := New().Resolve(stmts)
	if !bag.HasErrors() {
		t.Fatalf("expected an error for redeclaring `a` in the same scope")
	}
}

func TestReturnOutsideFunctionIsAnError(t *testing.T) {
	tokens := lexer.New(`return 1;`).ScanTokens()
	stmts, parseBag := parser.New(tokens).Parse()
	if parseBag.HasErrors() {
		t.Fatalf("unexpected parse errors: %v", parseBag.Entries())
	}
	_, bag := New().Resolve(stmts)
	if !bag.HasErrors() {
		t.Fatalf("expected an error for return at top level")
	}
}

func TestReturnValueInInitializerIsAnError(t *testing.T) {
	tokens := lexer.New(`
		class Foo {
			init() {
				return 1;
			}
		}
	`).ScanTokens()
	stmts, parseBag := parser.New(tokens).Parse()
	if parseBag.HasErrors() {
		t.Fatalf("unexpected parse errors: %v", parseBag.Entries())
	}
	_, bag := New().Resolve(stmts)
	if !bag.HasErrors() {
		t.Fatalf("expected an error for returning a value from an initializer")
	}
}

func TestThisOutsideClassIsAnError(t *testing.T) {
	tokens := lexer.New(`print this;`).ScanTokens()
	stmts, parseBag := parser.New(tokens).Parse()
	if parseBag.HasErrors() {
		t.Fatalf("unexpected parse errors: %v", parseBag.Entries())
	}
	_, bag := New().Resolve(stmts)
	if !bag.HasErrors() {
		t.Fatalf("expected an error for `this` outside a class")
	}
}

func TestSuperWithNoSuperclassIsAnError(t *testing.T) {
	tokens := lexer.New(`
		class Foo {
			bar() {
				super.bar();
			}
		}
	`).ScanTokens()
	stmts, parseBag := parser.New(tokens).Parse()
	if parseBag.HasErrors() {
		t.Fatalf("unexpected parse errors: %v", parseBag.Entries())
	}
	_, bag := New().Resolve(stmts)
	if !bag.HasErrors() {
		t.Fatalf("expected an error for `super` in a class with no superclass")
	}
}

func TestClassCannotInheritFromItself(t *testing.T) {
	tokens := lexer.New(`class Foo < Foo {}`).ScanTokens()
	stmts, parseBag := parser.New(tokens).Parse()
	if parseBag.HasErrors() {
		t.Fatalf("unexpected parse errors: %v", parseBag.Entries())
	}
	_, bag := New().Resolve(stmts)
	if !bag.HasErrors() {
		t.Fatalf("expected an error for a class inheriting from itself")
	}
}

func TestDuplicateMethodNameIsAnError(t *testing.T) {
	tokens := lexer.New(`
		class Foo {
			bar() {}
			bar() {}
		}
	`).ScanTokens()
	stmts, parseBag := parser.New(tokens).Parse()
	if parseBag.HasErrors() {
		t.Fatalf("unexpected parse errors: %v", parseBag.Entries())
	}
	_, bag := New().Resolve(stmts)
	if !bag.HasErrors() {
		t.Fatalf("expected an error for duplicate method names")
	}
}

func TestValidSubclassUsesSuperAndThisWithoutError(t *testing.T) {
	_, _ = resolveSource(t, `
		class A {
			greet() { print "A"; }
		}
		class B < A {
			greet() {
				super.greet();
				print this;
			}
		}
	`)
}
