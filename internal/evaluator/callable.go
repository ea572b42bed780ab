package evaluator

import "github.com/funvibe/funxy/internal/ast"

// Callable is anything Lox can invoke with `(args...)`: user functions,
// classes (construction), and native functions like clock().
type Callable interface {
	Object
	Arity() int
	Call(interp *Interpreter, args []Object) (Object, error)
}

// LoxFunction closes over the environment active at its declaration, so
// nested functions and methods see the variables in scope where they
// were defined rather than where they're called (spec.md §4.4).
type LoxFunction struct {
	declaration   *ast.FunctionStmt
	closure       *Environment
	isInitializer bool
}

func (f *LoxFunction) Type() ObjectType { return FUNCTION_OBJ }
func (f *LoxFunction) Inspect() string  { return "<fn " + f.declaration.Name.Lexeme + ">" }
func (f *LoxFunction) Arity() int       { return len(f.declaration.Params) }

// Bind returns a new LoxFunction whose closure has `this` bound to
// instance, one scope above the function's original closure. Used both
// for ordinary method lookup and for `super.method` resolution.
func (f *LoxFunction) Bind(instance *LoxInstance) *LoxFunction {
	env := NewEnclosedEnvironment(f.closure)
	env.Define("this", instance)
	return &LoxFunction{declaration: f.declaration, closure: env, isInitializer: f.isInitializer}
}

func (f *LoxFunction) Call(interp *Interpreter, args []Object) (result Object, err error) {
	env := NewEnclosedEnvironment(f.closure)
	for i, param := range f.declaration.Params {
		env.Define(param.Lexeme, args[i])
	}

	defer func() {
		if r := recover(); r != nil {
			ret, ok := r.(returnSignal)
			if !ok {
				panic(r)
			}
			if f.isInitializer {
				result, _ = f.closure.GetAt(0, "this")
				return
			}
			result = ret.value
		}
	}()

	if execErr := interp.executeBlock(f.declaration.Body, env); execErr != nil {
		return nil, execErr
	}

	if f.isInitializer {
		this, _ := f.closure.GetAt(0, "this")
		return this, nil
	}
	return NilValue, nil
}

// NativeFunction wraps a Go function as a Lox callable (spec.md §4.6's
// clock() native, grounded in jlox's Interpreter.globals.define("clock",
// ...) anonymous LoxCallable).
type NativeFunction struct {
	name  string
	arity int
	fn    func(interp *Interpreter, args []Object) (Object, error)
}

func (n *NativeFunction) Type() ObjectType { return NATIVE_OBJ }
func (n *NativeFunction) Inspect() string  { return "<native fn " + n.name + ">" }
func (n *NativeFunction) Arity() int       { return n.arity }
func (n *NativeFunction) Call(interp *Interpreter, args []Object) (Object, error) {
	return n.fn(interp, args)
}
