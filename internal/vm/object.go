package vm

import "hash/fnv"

// Obj is any heap-allocated tier B object (spec.md §3: "a heap-allocated
// record... each object carries a discriminator tag").
type Obj interface {
	Inspect() string
}

// ObjString is a length-prefixed, hash-precomputed Lox string, grounded
// in spec.md §3's ObjString description and original_source/clox/object.h.
// Two ObjStrings with equal content are always the same pointer: the VM
// only ever constructs them through internString.
type ObjString struct {
	Chars string
	Hash  uint32
}

func (s *ObjString) Inspect() string { return s.Chars }

func hashString(s string) uint32 {
	h := fnv.New32a()
	h.Write([]byte(s))
	return h.Sum32()
}

// ObjFunction is a compiled function body: its own Chunk plus arity and
// name, analogous to clox's ObjFunction (object.h).
type ObjFunction struct {
	Name         string
	Arity        int
	UpvalueCount int
	Chunk        *Chunk
}

func (f *ObjFunction) Inspect() string {
	if f.Name == "" {
		return "<script>"
	}
	return "<fn " + f.Name + ">"
}

// ObjNative wraps a Go function as a callable Lox value (clock()).
type ObjNative struct {
	Name string
	Fn   func(args []Value) (Value, error)
}

func (n *ObjNative) Inspect() string { return "<native fn " + n.Name + ">" }

// ObjUpvalue is an indirection cell pointing at a stack slot until the
// enclosing frame returns, at which point it is "closed" over a copy of
// the value (clox's open/closed upvalue split).
type ObjUpvalue struct {
	Location *Value
	Closed   Value
	Next     *ObjUpvalue

	// slot is the stack index Location currently points at, while open;
	// kept so the VM's open-upvalue list can stay ordered by slot
	// without resorting to pointer arithmetic on the stack array.
	slot int
}

func (u *ObjUpvalue) Inspect() string { return "<upvalue>" }

// ObjClosure pairs a compiled function with the upvalues it captured at
// creation time.
type ObjClosure struct {
	Function *ObjFunction
	Upvalues []*ObjUpvalue
}

func (c *ObjClosure) Inspect() string { return c.Function.Inspect() }

// ObjClass is a runtime class: a name plus its own method table (parent
// method lookup happens through the Go-side inheritance copy performed
// by OP_INHERIT, matching clox's tableAddAll approach).
type ObjClass struct {
	Name    string
	Methods *Table
}

func (c *ObjClass) Inspect() string { return c.Name }

// ObjInstance is a class instance: a field table plus a back-pointer to
// its class for method lookup.
type ObjInstance struct {
	Class  *ObjClass
	Fields *Table
}

func (i *ObjInstance) Inspect() string { return i.Class.Name + " instance" }

// ObjBoundMethod pairs a receiver with one of its class's closures, so
// calling it later still sees the right `this` (bound once, at
// OP_GET_PROPERTY time, rather than resolved on every call).
type ObjBoundMethod struct {
	Receiver Value
	Method   *ObjClosure
}

func (b *ObjBoundMethod) Inspect() string { return b.Method.Inspect() }
