// Package evaluator implements tier A's tree-walking interpreter
// (spec.md §4.4): given a resolved AST, it evaluates expressions and
// executes statements directly, without compiling to any intermediate
// form. Dispatch uses a Go type switch over ast.Expr/ast.Stmt variants,
// generalizing the teacher's own Object/Environment machinery
// (internal/evaluator/environment.go, object.go) down to Lox's four
// primitive value kinds plus functions, classes and instances.
package evaluator

import (
	"fmt"
	"io"

	"github.com/funvibe/funxy/internal/ast"
	"github.com/funvibe/funxy/internal/diagnostics"
	"github.com/funvibe/funxy/internal/token"
)

// Interpreter holds the state a single program run needs: the global
// scope, the currently active scope, the resolver's exprID->depth table,
// and where `print` writes.
type Interpreter struct {
	globals *Environment
	env     *Environment
	locals  map[int]int
	out     io.Writer
}

// New creates an Interpreter over a resolved program. locals is the
// table Resolver.Resolve returned for this same parse.
func New(out io.Writer, locals map[int]int) *Interpreter {
	globals := NewEnvironment()
	defineGlobals(globals)
	if locals == nil {
		locals = make(map[int]int)
	}
	return &Interpreter{globals: globals, env: globals, locals: locals, out: out}
}

// AddLocals merges additional exprID->depth entries into the resolver
// table, overwriting any collisions. The REPL resolves and interprets
// one line at a time (evalLineTreeWalk in cmd/lox), and each line's
// parser restarts its expression ID counter at zero, so this is safe:
// a stale entry from an earlier line is always overwritten by the
// current line's Resolve output before it's ever looked up again.
func (in *Interpreter) AddLocals(locals map[int]int) {
	for id, depth := range locals {
		in.locals[id] = depth
	}
}

// Interpret runs every top-level statement in order. A runtime error
// aborts the run (spec.md §4.4: unlike parse errors, a runtime error is
// not recovered from), and is reported into the returned bag in the
// wire format spec.md §6 specifies.
func (in *Interpreter) Interpret(statements []ast.Stmt) *diagnostics.Bag {
	bag := diagnostics.NewBag()
	for _, stmt := range statements {
		if err := in.execute(stmt); err != nil {
			if rerr, ok := err.(*RuntimeError); ok {
				bag.AddRuntime(rerr.Token.Line, rerr.Message)
			} else {
				bag.AddRuntime(0, err.Error())
			}
			return bag
		}
	}
	return bag
}

func (in *Interpreter) execute(stmt ast.Stmt) error {
	switch s := stmt.(type) {
	case *ast.ExpressionStmt:
		_, err := in.evaluate(s.Expression)
		return err

	case *ast.PrintStmt:
		value, err := in.evaluate(s.Expression)
		if err != nil {
			return err
		}
		fmt.Fprintln(in.out, stringify(value))
		return nil

	case *ast.VarStmt:
		var value Object = NilValue
		if s.Initializer != nil {
			v, err := in.evaluate(s.Initializer)
			if err != nil {
				return err
			}
			value = v
		}
		in.env.Define(s.Name.Lexeme, value)
		return nil

	case *ast.BlockStmt:
		return in.executeBlock(s.Statements, NewEnclosedEnvironment(in.env))

	case *ast.IfStmt:
		cond, err := in.evaluate(s.Condition)
		if err != nil {
			return err
		}
		switch {
		case isTruthy(cond):
			return in.execute(s.ThenBranch)
		case s.ElseBranch != nil:
			return in.execute(s.ElseBranch)
		}
		return nil

	case *ast.WhileStmt:
		for {
			cond, err := in.evaluate(s.Condition)
			if err != nil {
				return err
			}
			if !isTruthy(cond) {
				return nil
			}
			if err := in.execute(s.Body); err != nil {
				return err
			}
		}

	case *ast.FunctionStmt:
		fn := &LoxFunction{declaration: s, closure: in.env}
		in.env.Define(s.Name.Lexeme, fn)
		return nil

	case *ast.ReturnStmt:
		var value Object = NilValue
		if s.Value != nil {
			v, err := in.evaluate(s.Value)
			if err != nil {
				return err
			}
			value = v
		}
		panic(returnSignal{value: value})

	case *ast.ClassStmt:
		return in.executeClass(s)

	default:
		return fmt.Errorf("evaluator: unhandled statement type %T", stmt)
	}
}

func (in *Interpreter) executeClass(s *ast.ClassStmt) error {
	var superclass *LoxClass
	if s.Superclass != nil {
		sc, err := in.evaluate(s.Superclass)
		if err != nil {
			return err
		}
		class, ok := sc.(*LoxClass)
		if !ok {
			return newRuntimeError(s.Superclass.Name, "Superclass must be a class.")
		}
		superclass = class
	}

	in.env.Define(s.Name.Lexeme, NilValue)

	classEnv := in.env
	if superclass != nil {
		classEnv = NewEnclosedEnvironment(in.env)
		classEnv.Define("super", superclass)
	}

	methods := make(map[string]*LoxFunction, len(s.Methods))
	for _, method := range s.Methods {
		methods[method.Name.Lexeme] = &LoxFunction{
			declaration:   method,
			closure:       classEnv,
			isInitializer: method.Name.Lexeme == "init",
		}
	}

	class := &LoxClass{Name: s.Name.Lexeme, Superclass: superclass, Methods: methods}
	in.env.Assign(s.Name.Lexeme, class)
	return nil
}

// executeBlock runs statements in env, restoring the interpreter's
// previous scope afterward even if a statement returns an error or a
// `return` panics through it (mirrors jlox's Interpreter.executeBlock's
// try/finally).
func (in *Interpreter) executeBlock(statements []ast.Stmt, env *Environment) error {
	previous := in.env
	in.env = env
	defer func() { in.env = previous }()

	for _, stmt := range statements {
		if err := in.execute(stmt); err != nil {
			return err
		}
	}
	return nil
}

func (in *Interpreter) lookUpVariable(name token.Token, exprID int) (Object, error) {
	if distance, ok := in.locals[exprID]; ok {
		if v, ok := in.env.GetAt(distance, name.Lexeme); ok {
			return v, nil
		}
	}
	if v, ok := in.globals.Get(name.Lexeme); ok {
		return v, nil
	}
	return nil, newRuntimeError(name, "Undefined variable '"+name.Lexeme+"'.")
}

func isTruthy(obj Object) bool {
	switch v := obj.(type) {
	case *Nil:
		return false
	case *Boolean:
		return v.Value
	default:
		return true
	}
}

func isEqual(a, b Object) bool {
	_, aNil := a.(*Nil)
	_, bNil := b.(*Nil)
	if aNil || bNil {
		return aNil && bNil
	}
	switch av := a.(type) {
	case *Number:
		bv, ok := b.(*Number)
		return ok && av.Value == bv.Value
	case *String:
		bv, ok := b.(*String)
		return ok && av.Value == bv.Value
	case *Boolean:
		bv, ok := b.(*Boolean)
		return ok && av.Value == bv.Value
	default:
		return a == b
	}
}

// stringify formats a value for `print`, matching jlox's
// Interpreter.stringify.
func stringify(obj Object) string {
	return obj.Inspect()
}
