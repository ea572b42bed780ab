package vm

import "time"

// defineNatives installs the built-ins every Lox program starts with
// (spec.md §4.4's clock()), mirroring internal/evaluator/native.go's
// defineGlobals for tier A so both tiers expose the same surface.
func (vm *VM) defineNatives() {
	vm.defineNative("clock", func(args []Value) (Value, error) {
		return NumberValue(float64(time.Now().UnixNano()) / 1e9), nil
	})
}

func (vm *VM) defineNative(name string, fn func(args []Value) (Value, error)) {
	key := internString(vm.strings, name)
	vm.globals.Set(key, ObjValue(&ObjNative{Name: name, Fn: fn}))
}
