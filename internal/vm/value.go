package vm

import (
	"math"
	"strconv"
)

// ValueType discriminates the tagged union Value carries (spec.md §3's
// runtime Value sum, collapsed from the teacher's Int/Float split into
// one Number variant since Lox has a single numeric kind).
type ValueType uint8

const (
	ValNil ValueType = iota
	ValBool
	ValNumber
	ValObj
)

// Value is a stack-allocated tagged union: primitives live inline in
// Data, heap objects are held via Obj (grounded in
// internal/vm/value.go's Value{Type, Data, Obj} shape).
type Value struct {
	Type ValueType
	Data uint64
	Obj  Obj
}

func NilValue() Value { return Value{Type: ValNil} }
func BoolValue(b bool) Value {
	var d uint64
	if b {
		d = 1
	}
	return Value{Type: ValBool, Data: d}
}
func NumberValue(n float64) Value { return Value{Type: ValNumber, Data: math.Float64bits(n)} }
func ObjValue(o Obj) Value        { return Value{Type: ValObj, Obj: o} }

func (v Value) AsBool() bool      { return v.Data != 0 }
func (v Value) AsNumber() float64 { return math.Float64frombits(v.Data) }

func (v Value) IsNil() bool    { return v.Type == ValNil }
func (v Value) IsBool() bool   { return v.Type == ValBool }
func (v Value) IsNumber() bool { return v.Type == ValNumber }
func (v Value) IsObj() bool    { return v.Type == ValObj }

func (v Value) IsString() bool {
	_, ok := v.Obj.(*ObjString)
	return v.Type == ValObj && ok
}

func (v Value) AsString() *ObjString { return v.Obj.(*ObjString) }

// IsFalsey implements spec.md §3's truthiness: nil and false are
// falsey, everything else (including 0 and "") is truthy.
func (v Value) IsFalsey() bool {
	return v.IsNil() || (v.IsBool() && !v.AsBool())
}

// ValuesEqual implements spec.md §3's same-variant equality, including
// NaN != NaN for numbers.
func ValuesEqual(a, b Value) bool {
	if a.Type != b.Type {
		return false
	}
	switch a.Type {
	case ValNil:
		return true
	case ValBool:
		return a.AsBool() == b.AsBool()
	case ValNumber:
		return a.AsNumber() == b.AsNumber()
	case ValObj:
		if a.IsString() && b.IsString() {
			// tier B interns strings, so content equality reduces to
			// pointer equality (spec.md §3, §8's interning property).
			return a.Obj == b.Obj
		}
		return a.Obj == b.Obj
	}
	return false
}

// Stringify formats a Value for `print`, matching spec.md §6's output
// contract (numbers in shortest round-trippable form, no trailing
// zeros).
func Stringify(v Value) string {
	switch v.Type {
	case ValNil:
		return "nil"
	case ValBool:
		if v.AsBool() {
			return "true"
		}
		return "false"
	case ValNumber:
		return strconv.FormatFloat(v.AsNumber(), 'f', -1, 64)
	case ValObj:
		return v.Obj.Inspect()
	}
	return "<unknown>"
}
