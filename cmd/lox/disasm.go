package main

import (
	"os"

	"github.com/funvibe/funxy/internal/vm"
)

// dumpDisasm compiles source to bytecode and disassembles the top-level
// chunk (and transitively every function chunk it constants-pool holds),
// the `lox disasm` subcommand, grounded in internal/vm/disasm.go.
func dumpDisasm(source string) bool {
	fn, bag := vm.Compile(source, vm.NewTable())
	if bag.HasErrors() {
		bag.Print(os.Stderr)
		return false
	}
	disassembleRecursive(fn, map[*vm.ObjFunction]bool{})
	return true
}

func disassembleRecursive(fn *vm.ObjFunction, seen map[*vm.ObjFunction]bool) {
	if seen[fn] {
		return
	}
	seen[fn] = true

	vm.Disassemble(os.Stdout, fn.Chunk, scriptName(fn))
	for _, c := range fn.Chunk.Constants {
		if nested, ok := c.Obj.(*vm.ObjFunction); ok {
			disassembleRecursive(nested, seen)
		}
	}
}
