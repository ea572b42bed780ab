package main

import (
	"fmt"
	"io"
	"os"

	"github.com/funvibe/funxy/internal/diagnostics"
	"github.com/funvibe/funxy/internal/evaluator"
	"github.com/funvibe/funxy/internal/lexer"
	"github.com/funvibe/funxy/internal/parser"
	"github.com/funvibe/funxy/internal/resolver"
	"github.com/funvibe/funxy/internal/vm"
)

// Exit codes per spec.md §6.
const (
	exitOK           = 0
	exitUsage        = 64
	exitCompileError = 65
	exitRuntimeError = 70
	exitIOError      = 74
)

// bagExitCode maps a diagnostic bag's first entry to the exit code
// spec.md §6 assigns: a compile/parse/resolve failure is 65, a runtime
// fault is 70.
func bagExitCode(bag *diagnostics.Bag) int {
	entries := bag.Entries()
	if len(entries) == 0 {
		return exitOK
	}
	if entries[0].Kind == diagnostics.Runtime {
		return exitRuntimeError
	}
	return exitCompileError
}

// readSource reads a script from path, or from stdin when path is "-".
func readSource(path string) (string, error) {
	if path == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("reading stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", path, err)
	}
	return string(data), nil
}

// runTreeWalk lexes, parses, resolves and tree-walks source, the tier A
// path (spec.md's jlox-style interpreter), grounded in
// internal/evaluator/interpreter_test.go's run helper.
func runTreeWalk(source string) int {
	lx := lexer.New(source)
	tokens := lx.ScanTokens()

	p := parser.New(tokens)
	statements, bag := p.Parse()
	if bag.HasErrors() {
		bag.Print(os.Stderr)
		return bagExitCode(bag)
	}

	res := resolver.New()
	locals, bag := res.Resolve(statements)
	if bag.HasErrors() {
		bag.Print(os.Stderr)
		return bagExitCode(bag)
	}

	interp := evaluator.New(os.Stdout, locals)
	bag = interp.Interpret(statements)
	if bag.HasErrors() {
		bag.Print(os.Stderr)
		return bagExitCode(bag)
	}
	return exitOK
}

// runVM compiles and executes source through the tier B bytecode VM,
// grounded in internal/vm/vm_test.go's runVM helper.
func runVM(source string, showBytecode bool) int {
	machine := vm.New(os.Stdout)
	if showBytecode {
		fn, bag := vm.Compile(source, vm.NewTable())
		if bag.HasErrors() {
			bag.Print(os.Stderr)
			return bagExitCode(bag)
		}
		fmt.Fprintf(os.Stderr, "-- run %s --\n", runID)
		vm.Disassemble(os.Stderr, fn.Chunk, scriptName(fn))
	}
	bag := machine.Interpret(source)
	if bag.HasErrors() {
		bag.Print(os.Stderr)
		return bagExitCode(bag)
	}
	return exitOK
}

func scriptName(fn *vm.ObjFunction) string {
	if fn.Name == "" {
		return "<script>"
	}
	return fn.Name
}

func runSource(source string, useTreeWalk, showBytecode bool) int {
	if useTreeWalk {
		if showBytecode {
			fmt.Fprintln(os.Stderr, "Warning: --bytecode only applies to the VM backend.")
		}
		return runTreeWalk(source)
	}
	return runVM(source, showBytecode)
}
