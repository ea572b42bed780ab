package vm

import (
	"fmt"
	"io"

	"github.com/funvibe/funxy/internal/diagnostics"
)

const (
	framesMax = 64
	stackMax  = framesMax * 256
)

// CallFrame is one active closure invocation: its own instruction
// pointer into the closure's chunk and a window onto the shared value
// stack (original_source/clox/vm.h's CallFrame, chapter 24).
type CallFrame struct {
	closure   *ObjClosure
	ip        int
	slotsBase int
}

// VM is the bytecode interpreter proper: a fixed-size value stack (so
// ObjUpvalue.Location pointers into it stay valid across pushes) plus a
// frame stack, global table, and the shared string-intern table the
// compiler used while producing the chunk being run (spec.md §4.6).
type VM struct {
	frames   [framesMax]CallFrame
	frameCnt int
	stack    [stackMax]Value
	stackTop int
	globals  *Table
	strings  *Table
	openUps  *ObjUpvalue
	out      io.Writer
}

func New(out io.Writer) *VM {
	vm := &VM{globals: NewTable(), strings: NewTable(), out: out}
	vm.defineNatives()
	return vm
}

// Interpret compiles and runs source, reporting compile or runtime
// diagnostics through the same Bag tier A uses (spec.md §7's shared
// error-reporting contract).
func (vm *VM) Interpret(source string) *diagnostics.Bag {
	fn, errs := Compile(source, vm.strings)
	if errs.HasErrors() {
		return errs
	}

	closure := &ObjClosure{Function: fn}
	vm.push(ObjValue(closure))
	vm.callClosure(closure, 0)

	if err := vm.run(); err != nil {
		bag := diagnostics.NewBag()
		if re, ok := err.(*RuntimeError); ok {
			bag.AddRuntime(re.Line, re.Message)
		} else {
			bag.AddRuntime(0, err.Error())
		}
		return bag
	}
	return diagnostics.NewBag()
}

// RuntimeError is a tier B runtime fault, reported with the line of the
// instruction that raised it (spec.md §4.6's "stack unwound, no
// partial state retained" contract).
type RuntimeError struct {
	Line    int
	Message string
}

func (e *RuntimeError) Error() string { return e.Message }

func (vm *VM) runtimeError(format string, args ...interface{}) *RuntimeError {
	frame := &vm.frames[vm.frameCnt-1]
	line := frame.closure.Function.Chunk.Lines[frame.ip-1]
	vm.resetStack()
	return &RuntimeError{Line: line, Message: fmt.Sprintf(format, args...)}
}

func (vm *VM) resetStack() {
	vm.stackTop = 0
	vm.frameCnt = 0
	vm.openUps = nil
}

func (vm *VM) push(v Value) {
	vm.stack[vm.stackTop] = v
	vm.stackTop++
}

func (vm *VM) pop() Value {
	vm.stackTop--
	return vm.stack[vm.stackTop]
}

func (vm *VM) peek(distance int) Value {
	return vm.stack[vm.stackTop-1-distance]
}

// run is the fetch-decode-dispatch loop, one opcode case per member of
// the Opcode enum (internal/vm/opcodes.go), grounded in
// original_source/clox/vm.c's run().
func (vm *VM) run() error {
	frame := &vm.frames[vm.frameCnt-1]

	readByte := func() byte {
		b := frame.closure.Function.Chunk.Code[frame.ip]
		frame.ip++
		return b
	}
	readShort := func() int {
		hi := int(readByte())
		lo := int(readByte())
		return hi<<8 | lo
	}
	readConstant := func() Value {
		return frame.closure.Function.Chunk.Constants[readByte()]
	}
	readString := func() *ObjString {
		return readConstant().AsString()
	}

	for {
		op := Opcode(readByte())
		switch op {
		case OP_CONSTANT:
			vm.push(readConstant())
		case OP_NIL:
			vm.push(NilValue())
		case OP_TRUE:
			vm.push(BoolValue(true))
		case OP_FALSE:
			vm.push(BoolValue(false))
		case OP_POP:
			vm.pop()
		case OP_GET_LOCAL:
			slot := readByte()
			vm.push(vm.stack[frame.slotsBase+int(slot)])
		case OP_SET_LOCAL:
			slot := readByte()
			vm.stack[frame.slotsBase+int(slot)] = vm.peek(0)
		case OP_GET_GLOBAL:
			name := readString()
			v, ok := vm.globals.Get(name)
			if !ok {
				return vm.runtimeError("Undefined variable '%s'.", name.Chars)
			}
			vm.push(v)
		case OP_DEFINE_GLOBAL:
			name := readString()
			vm.globals.Set(name, vm.peek(0))
			vm.pop()
		case OP_SET_GLOBAL:
			name := readString()
			if vm.globals.Set(name, vm.peek(0)) {
				vm.globals.Delete(name)
				return vm.runtimeError("Undefined variable '%s'.", name.Chars)
			}
		case OP_GET_UPVALUE:
			slot := readByte()
			vm.push(*frame.closure.Upvalues[slot].Location)
		case OP_SET_UPVALUE:
			slot := readByte()
			*frame.closure.Upvalues[slot].Location = vm.peek(0)
		case OP_GET_PROPERTY:
			if !vm.peek(0).IsObj() {
				return vm.runtimeError("Only instances have properties.")
			}
			instance, ok := vm.peek(0).Obj.(*ObjInstance)
			if !ok {
				return vm.runtimeError("Only instances have properties.")
			}
			name := readString()
			if v, ok := instance.Fields.Get(name); ok {
				vm.pop()
				vm.push(v)
				break
			}
			if !vm.bindMethod(instance.Class, name) {
				return vm.runtimeError("Undefined property '%s'.", name.Chars)
			}
		case OP_SET_PROPERTY:
			instance, ok := vm.peek(1).Obj.(*ObjInstance)
			if !ok {
				return vm.runtimeError("Only instances have fields.")
			}
			name := readString()
			instance.Fields.Set(name, vm.peek(0))
			v := vm.pop()
			vm.pop()
			vm.push(v)
		case OP_GET_SUPER:
			name := readString()
			superclass := vm.pop().Obj.(*ObjClass)
			if !vm.bindMethod(superclass, name) {
				return vm.runtimeError("Undefined property '%s'.", name.Chars)
			}
		case OP_EQUAL:
			b := vm.pop()
			a := vm.pop()
			vm.push(BoolValue(ValuesEqual(a, b)))
		case OP_GREATER:
			if err := vm.binaryNumberOp(func(a, b float64) Value { return BoolValue(a > b) }); err != nil {
				return err
			}
		case OP_LESS:
			if err := vm.binaryNumberOp(func(a, b float64) Value { return BoolValue(a < b) }); err != nil {
				return err
			}
		case OP_ADD:
			if err := vm.add(); err != nil {
				return err
			}
		case OP_SUBTRACT:
			if err := vm.binaryNumberOp(func(a, b float64) Value { return NumberValue(a - b) }); err != nil {
				return err
			}
		case OP_MULTIPLY:
			if err := vm.binaryNumberOp(func(a, b float64) Value { return NumberValue(a * b) }); err != nil {
				return err
			}
		case OP_DIVIDE:
			if err := vm.binaryNumberOp(func(a, b float64) Value { return NumberValue(a / b) }); err != nil {
				return err
			}
		case OP_NOT:
			vm.push(BoolValue(vm.pop().IsFalsey()))
		case OP_NEGATE:
			if !vm.peek(0).IsNumber() {
				return vm.runtimeError("Operand must be a number.")
			}
			vm.push(NumberValue(-vm.pop().AsNumber()))
		case OP_PRINT:
			fmt.Fprintln(vm.out, Stringify(vm.pop()))
		case OP_JUMP:
			offset := readShort()
			frame.ip += offset
		case OP_JUMP_IF_FALSE:
			offset := readShort()
			if vm.peek(0).IsFalsey() {
				frame.ip += offset
			}
		case OP_LOOP:
			offset := readShort()
			frame.ip -= offset
		case OP_CALL:
			argCount := int(readByte())
			if err := vm.callValue(vm.peek(argCount), argCount); err != nil {
				return err
			}
			frame = &vm.frames[vm.frameCnt-1]
		case OP_INVOKE:
			method := readString()
			argCount := int(readByte())
			if err := vm.invoke(method, argCount); err != nil {
				return err
			}
			frame = &vm.frames[vm.frameCnt-1]
		case OP_SUPER_INVOKE:
			method := readString()
			argCount := int(readByte())
			superclass := vm.pop().Obj.(*ObjClass)
			if err := vm.invokeFromClass(superclass, method, argCount); err != nil {
				return err
			}
			frame = &vm.frames[vm.frameCnt-1]
		case OP_CLOSURE:
			fn := readConstant().Obj.(*ObjFunction)
			closure := &ObjClosure{Function: fn, Upvalues: make([]*ObjUpvalue, fn.UpvalueCount)}
			for i := 0; i < fn.UpvalueCount; i++ {
				isLocal := readByte()
				index := readByte()
				if isLocal == 1 {
					closure.Upvalues[i] = vm.captureUpvalue(frame.slotsBase + int(index))
				} else {
					closure.Upvalues[i] = frame.closure.Upvalues[index]
				}
			}
			vm.push(ObjValue(closure))
		case OP_CLOSE_UPVALUE:
			vm.closeUpvalues(vm.stackTop - 1)
			vm.pop()
		case OP_RETURN:
			result := vm.pop()
			vm.closeUpvalues(frame.slotsBase)
			vm.frameCnt--
			if vm.frameCnt == 0 {
				vm.pop()
				return nil
			}
			vm.stackTop = frame.slotsBase
			vm.push(result)
			frame = &vm.frames[vm.frameCnt-1]
		case OP_CLASS:
			name := readString()
			vm.push(ObjValue(&ObjClass{Name: name.Chars, Methods: NewTable()}))
		case OP_INHERIT:
			superVal := vm.peek(1)
			superclass, ok := superVal.Obj.(*ObjClass)
			if !ok {
				return vm.runtimeError("Superclass must be a class.")
			}
			subclass := vm.peek(0).Obj.(*ObjClass)
			copyMethods(superclass.Methods, subclass.Methods)
			vm.pop()
		case OP_METHOD:
			name := readString()
			method := vm.peek(0).Obj.(*ObjClosure)
			class := vm.peek(1).Obj.(*ObjClass)
			class.Methods.Set(name, ObjValue(method))
			vm.pop()
		default:
			return vm.runtimeError("Unknown opcode %d.", op)
		}
	}
}

func (vm *VM) binaryNumberOp(f func(a, b float64) Value) error {
	if !vm.peek(0).IsNumber() || !vm.peek(1).IsNumber() {
		return vm.runtimeError("Operands must be numbers.")
	}
	b := vm.pop().AsNumber()
	a := vm.pop().AsNumber()
	vm.push(f(a, b))
	return nil
}

func (vm *VM) add() error {
	switch {
	case vm.peek(0).IsNumber() && vm.peek(1).IsNumber():
		b := vm.pop().AsNumber()
		a := vm.pop().AsNumber()
		vm.push(NumberValue(a + b))
	case vm.peek(0).IsString() && vm.peek(1).IsString():
		b := vm.pop().AsString()
		a := vm.pop().AsString()
		vm.push(ObjValue(internString(vm.strings, a.Chars+b.Chars)))
	default:
		return vm.runtimeError("Operands must be two numbers or two strings.")
	}
	return nil
}

func copyMethods(from, to *Table) {
	for i := 0; i < from.capacity; i++ {
		e := from.entries[i]
		if e.key == nil {
			continue
		}
		to.Set(e.key, e.value)
	}
}

func (vm *VM) bindMethod(class *ObjClass, name *ObjString) bool {
	method, ok := class.Methods.Get(name)
	if !ok {
		return false
	}
	bound := &ObjBoundMethod{Receiver: vm.peek(0), Method: method.Obj.(*ObjClosure)}
	vm.pop()
	vm.push(ObjValue(bound))
	return true
}

// captureUpvalue returns an existing open upvalue pointing at stackSlot
// if one is already tracked, or creates and links a new one, keeping
// vm.openUps sorted by descending slot (clox's captureUpvalue).
func (vm *VM) captureUpvalue(stackSlot int) *ObjUpvalue {
	var prev *ObjUpvalue
	up := vm.openUps
	for up != nil && up.slot > stackSlot {
		prev = up
		up = up.Next
	}
	if up != nil && up.slot == stackSlot {
		return up
	}

	created := &ObjUpvalue{Location: &vm.stack[stackSlot], slot: stackSlot}
	created.Next = up
	if prev == nil {
		vm.openUps = created
	} else {
		prev.Next = created
	}
	return created
}

// closeUpvalues hoists every open upvalue at or above stackSlot into its
// own Closed field, severing it from the stack before that slot is
// reused or popped (clox chapter 25's closeUpvalues).
func (vm *VM) closeUpvalues(stackSlot int) {
	for vm.openUps != nil && vm.openUps.slot >= stackSlot {
		up := vm.openUps
		up.Closed = *up.Location
		up.Location = &up.Closed
		vm.openUps = up.Next
	}
}

func (vm *VM) callValue(callee Value, argCount int) error {
	if callee.IsObj() {
		switch obj := callee.Obj.(type) {
		case *ObjClosure:
			return vm.callClosure(obj, argCount)
		case *ObjNative:
			args := vm.stack[vm.stackTop-argCount : vm.stackTop]
			result, err := obj.Fn(args)
			if err != nil {
				return vm.runtimeError("%s", err.Error())
			}
			vm.stackTop -= argCount + 1
			vm.push(result)
			return nil
		case *ObjClass:
			instance := &ObjInstance{Class: obj, Fields: NewTable()}
			vm.stack[vm.stackTop-argCount-1] = ObjValue(instance)
			if initializer, ok := obj.Methods.Get(internString(vm.strings, "init")); ok {
				return vm.callClosure(initializer.Obj.(*ObjClosure), argCount)
			}
			if argCount != 0 {
				return vm.runtimeError("Expected 0 arguments but got %d.", argCount)
			}
			return nil
		case *ObjBoundMethod:
			vm.stack[vm.stackTop-argCount-1] = obj.Receiver
			return vm.callClosure(obj.Method, argCount)
		}
	}
	return vm.runtimeError("Can only call functions and classes.")
}

func (vm *VM) invoke(name *ObjString, argCount int) error {
	receiver := vm.peek(argCount)
	instance, ok := receiver.Obj.(*ObjInstance)
	if !ok {
		return vm.runtimeError("Only instances have methods.")
	}
	if v, ok := instance.Fields.Get(name); ok {
		vm.stack[vm.stackTop-argCount-1] = v
		return vm.callValue(v, argCount)
	}
	return vm.invokeFromClass(instance.Class, name, argCount)
}

func (vm *VM) invokeFromClass(class *ObjClass, name *ObjString, argCount int) error {
	method, ok := class.Methods.Get(name)
	if !ok {
		return vm.runtimeError("Undefined property '%s'.", name.Chars)
	}
	return vm.callClosure(method.Obj.(*ObjClosure), argCount)
}

func (vm *VM) callClosure(closure *ObjClosure, argCount int) error {
	if argCount != closure.Function.Arity {
		return vm.runtimeError("Expected %d arguments but got %d.", closure.Function.Arity, argCount)
	}
	if vm.frameCnt == framesMax {
		return vm.runtimeError("Stack overflow.")
	}
	frame := &vm.frames[vm.frameCnt]
	frame.closure = closure
	frame.ip = 0
	frame.slotsBase = vm.stackTop - argCount - 1
	vm.frameCnt++
	return nil
}
