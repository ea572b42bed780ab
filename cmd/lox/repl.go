package main

import (
	"bufio"
	"fmt"
	"os"

	"github.com/funvibe/funxy/internal/ast"
	"github.com/funvibe/funxy/internal/evaluator"
	"github.com/funvibe/funxy/internal/lexer"
	"github.com/funvibe/funxy/internal/parser"
	"github.com/funvibe/funxy/internal/replconfig"
	"github.com/funvibe/funxy/internal/resolver"
	"github.com/funvibe/funxy/internal/vm"
	"github.com/mattn/go-isatty"
)

// runRepl drives spec.md §6's interactive loop: one line at a time. On
// the tree-walker, a line that is a single expression statement prints
// its value (see evalLineTreeWalk); the VM REPL runs each line as-is and
// prints only what the line's own `print` statements print.
//
// go-isatty tells us whether stdin is a real terminal; when it isn't
// (piped input, a test harness) the prompt is suppressed so captured
// output stays exactly what the program printed, nothing more.
func runRepl(useTreeWalk bool) {
	cfg, err := replconfig.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "lox: %s\n", err)
		cfg = replconfig.Defaults()
	}

	interactive := isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())

	var history *os.File
	if interactive && cfg.HistoryFile != "" {
		if f, err := os.OpenFile(cfg.HistoryFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600); err == nil {
			history = f
			defer f.Close()
		}
	}

	// The tree-walk REPL keeps one Interpreter alive across lines so
	// `var`-declared globals persist, the same scope discipline
	// interpreter_test.go exercises within a single program.
	var interp *evaluator.Interpreter
	var machine *vm.VM
	if useTreeWalk {
		interp = evaluator.New(os.Stdout, nil)
	} else {
		machine = vm.New(os.Stdout)
	}

	scanner := bufio.NewScanner(os.Stdin)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for {
		if interactive {
			fmt.Fprint(os.Stdout, cfg.Prompt)
		}
		if !scanner.Scan() {
			if interactive {
				fmt.Fprintln(os.Stdout)
			}
			return
		}
		line := scanner.Text()
		if line == "" {
			continue
		}
		if history != nil {
			fmt.Fprintln(history, line)
		}
		if !useTreeWalk && cfg.ShowBytecode {
			if fn, bag := vm.Compile(line, vm.NewTable()); !bag.HasErrors() {
				vm.Disassemble(os.Stderr, fn.Chunk, scriptName(fn))
			}
		}
		evalLine(line, useTreeWalk, interp, machine)
	}
}

func evalLine(line string, useTreeWalk bool, interp *evaluator.Interpreter, machine *vm.VM) {
	if useTreeWalk {
		evalLineTreeWalk(line, interp)
		return
	}
	if bag := machine.Interpret(line); bag.HasErrors() {
		bag.Print(os.Stderr)
	}
}

// evalLineTreeWalk auto-prints bare expression statements, the
// ergonomic a REPL adds on top of running a full script (a `print`
// statement is still required outside the REPL).
func evalLineTreeWalk(line string, interp *evaluator.Interpreter) {
	lx := lexer.New(line)
	tokens := lx.ScanTokens()
	p := parser.New(tokens)
	statements, bag := p.Parse()
	if bag.HasErrors() {
		bag.Print(os.Stderr)
		return
	}

	if len(statements) == 1 {
		if exprStmt, ok := statements[0].(*ast.ExpressionStmt); ok {
			statements[0] = &ast.PrintStmt{Token: exprStmt.Token, Expression: exprStmt.Expression}
		}
	}

	res := resolver.New()
	locals, bag := res.Resolve(statements)
	if bag.HasErrors() {
		bag.Print(os.Stderr)
		return
	}
	interp.AddLocals(locals)

	if bag := interp.Interpret(statements); bag.HasErrors() {
		bag.Print(os.Stderr)
	}
}
