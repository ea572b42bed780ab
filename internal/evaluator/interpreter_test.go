package evaluator

import (
	"strings"
	"testing"

	"github.com/funvibe/funxy/internal/lexer"
	"github.com/funvibe/funxy/internal/parser"
	"github.com/funvibe/funxy/internal/resolver"
)

func runSource(t *testing.T, source string) (string, *Interpreter) {
	t.Helper()
	tokens := lexer.New(source).ScanTokens()
	stmts, parseBag := parser.New(tokens).Parse()
	if parseBag.HasErrors() {
		t.Fatalf("unexpected parse errors: %v", parseBag.Entries())
	}
	locals, resolveBag := resolver.New().Resolve(stmts)
	if resolveBag.HasErrors() {
		t.Fatalf("unexpected resolve errors: %v", resolveBag.Entries())
	}
	var out strings.Builder
	interp := New(&out, locals)
	runBag := interp.Interpret(stmts)
	if runBag.HasErrors() {
		t.Fatalf("unexpected runtime errors: %v", runBag.Entries())
	}
	return out.String(), interp
}

func TestArithmeticAndPrint(t *testing.T) {
	out, _ := runSource(t, `print 1 + 2 * 3;`)
	if out != "7\n" {
		t.Fatalf("expected %q, got %q", "7\n", out)
	}
}

func TestStringConcatenation(t *testing.T) {
	out, _ := runSource(t, `print "foo" + "bar";`)
	if out != "foobar\n" {
		t.Fatalf("expected %q, got %q", "foobar\n", out)
	}
}

func TestClosureCapturesEnclosingVariable(t *testing.T) {
	out, _ := runSource(t, `
		fun makeCounter() {
			var i = 0;
			fun count() {
				i = i + 1;
				print i;
			}
			return count;
		}
		var counter = makeCounter();
		counter();
		counter();
	`)
	if out != "1\n2\n" {
		t.Fatalf("expected %q, got %q", "1\n2\n", out)
	}
}

func TestClassWithInitAndMethod(t *testing.T) {
	out, _ := runSource(t, `
		class Greeter {
			init(name) {
				this.name = name;
			}
			greet() {
				print "Hello, " + this.name + "!";
			}
		}
		var g = Greeter("World");
		g.greet();
	`)
	if out != "Hello, World!\n" {
		t.Fatalf("expected %q, got %q", "Hello, World!\n", out)
	}
}

func TestInheritanceAndSuper(t *testing.T) {
	out, _ := runSource(t, `
		class Doughnut {
			cook() {
				print "Fry until golden brown.";
			}
		}
		class BostonCream < Doughnut {
			cook() {
				super.cook();
				print "Pipe full of custard and coat with chocolate.";
			}
		}
		BostonCream().cook();
	`)
	want := "Fry until golden brown.\nPipe full of custard and coat with chocolate.\n"
	if out != want {
		t.Fatalf("expected %q, got %q", want, out)
	}
}

func TestWhileAndForLoops(t *testing.T) {
	out, _ := runSource(t, `
		var sum = 0;
		for (var i = 1; i <= 3; i = i + 1) {
			sum = sum + i;
		}
		print sum;
	`)
	if out != "6\n" {
		t.Fatalf("expected %q, got %q", "6\n", out)
	}
}

func TestUndefinedVariableIsRuntimeError(t *testing.T) {
	tokens := lexer.New(`print undefined_name;`).ScanTokens()
	stmts, parseBag := parser.New(tokens).Parse()
	if parseBag.HasErrors() {
		t.Fatalf("unexpected parse errors: %v", parseBag.Entries())
	}
	locals, resolveBag := resolver.New().Resolve(stmts)
	if resolveBag.HasErrors() {
		t.Fatalf("unexpected resolve errors: %v", resolveBag.Entries())
	}
	var out strings.Builder
	interp := New(&out, locals)
	bag := interp.Interpret(stmts)
	if !bag.HasErrors() {
		t.Fatalf("expected a runtime error for an undefined variable")
	}
}

func TestAddingNumberToStringIsRuntimeError(t *testing.T) {
	tokens := lexer.New(`print "foo" + 1;`).ScanTokens()
	stmts, parseBag := parser.New(tokens).Parse()
	if parseBag.HasErrors() {
		t.Fatalf("unexpected parse errors: %v", parseBag.Entries())
	}
	locals, resolveBag := resolver.New().Resolve(stmts)
	if resolveBag.HasErrors() {
		t.Fatalf("unexpected resolve errors: %v", resolveBag.Entries())
	}
	var out strings.Builder
	interp := New(&out, locals)
	bag := interp.Interpret(stmts)
	if !bag.HasErrors() {
		t.Fatalf("expected a runtime error for string+number")
	}
}
