// Package resolver implements tier A's static resolution pass (spec.md
// §4.3): a single walk over the parsed tree that binds every variable
// reference to a lexical scope distance before the tree-walk interpreter
// ever runs. It is grounded in original_source/jlox-in-cpp/Resolver.cpp's
// scope-stack algorithm (declare/define/resolveLocal, one map per scope,
// save-and-restore of the enclosing function/class context), extended
// here with the class/this/super/method handling that snapshot predates.
//
// Unlike the C++ original, which calls back into the interpreter
// (interpreter.resolve(expr, distance)) as it walks, this resolver is
// pure: it returns a map[int]int keyed by ast.Expr.ExprID() and a
// diagnostics.Bag, and leaves wiring that table into the interpreter to
// the caller.
package resolver

import (
	"github.com/funvibe/funxy/internal/ast"
	"github.com/funvibe/funxy/internal/diagnostics"
	"github.com/funvibe/funxy/internal/token"
)

type FunctionType int

const (
	FunctionNone FunctionType = iota
	FunctionFunction
	FunctionInitializer
	FunctionMethod
)

type ClassType int

const (
	ClassNone ClassType = iota
	ClassClass
	ClassSubclass
)

// Resolver walks a parsed program once, tracking a stack of lexical
// scopes and the enclosing function/class kind so it can flag misplaced
// `return`, `this`, and `super` at compile time (spec.md §4.3).
type Resolver struct {
	scopes          []map[string]bool
	depths          map[int]int
	currentFunction FunctionType
	currentClass    ClassType
	errs            *diagnostics.Bag
}

func New() *Resolver {
	return &Resolver{depths: make(map[int]int), errs: diagnostics.NewBag()}
}

// Resolve walks every top-level statement and returns the exprID->depth
// table consumed by the interpreter's environment lookups, along with any
// static errors found along the way.
func (r *Resolver) Resolve(statements []ast.Stmt) (map[int]int, *diagnostics.Bag) {
	r.resolveStmts(statements)
	return r.depths, r.errs
}

func (r *Resolver) resolveStmts(statements []ast.Stmt) {
	for _, stmt := range statements {
		r.resolveStmt(stmt)
	}
}

func (r *Resolver) resolveStmt(stmt ast.Stmt) {
	switch s := stmt.(type) {
	case *ast.BlockStmt:
		r.beginScope()
		r.resolveStmts(s.Statements)
		r.endScope()

	case *ast.ClassStmt:
		r.resolveClass(s)

	case *ast.ExpressionStmt:
		r.resolveExpr(s.Expression)

	case *ast.FunctionStmt:
		r.declare(s.Name)
		r.define(s.Name)
		r.resolveFunction(s, FunctionFunction)

	case *ast.IfStmt:
		r.resolveExpr(s.Condition)
		r.resolveStmt(s.ThenBranch)
		if s.ElseBranch != nil {
			r.resolveStmt(s.ElseBranch)
		}

	case *ast.PrintStmt:
		r.resolveExpr(s.Expression)

	case *ast.ReturnStmt:
		if r.currentFunction == FunctionNone {
			r.errs.AddCompile(s.Keyword.Line, s.Keyword.Lexeme, "Can't return from top-level code.")
		}
		if s.Value != nil {
			if r.currentFunction == FunctionInitializer {
				r.errs.AddCompile(s.Keyword.Line, s.Keyword.Lexeme, "Can't return a value from an initializer.")
			}
			r.resolveExpr(s.Value)
		}

	case *ast.VarStmt:
		r.declare(s.Name)
		if s.Initializer != nil {
			r.resolveExpr(s.Initializer)
		}
		r.define(s.Name)

	case *ast.WhileStmt:
		r.resolveExpr(s.Condition)
		r.resolveStmt(s.Body)

	default:
		panic("resolver: unhandled statement type")
	}
}

func (r *Resolver) resolveClass(s *ast.ClassStmt) {
	enclosingClass := r.currentClass
	r.currentClass = ClassClass
	defer func() { r.currentClass = enclosingClass }()

	r.declare(s.Name)
	r.define(s.Name)

	if s.Superclass != nil {
		if s.Superclass.Name.Lexeme == s.Name.Lexeme {
			r.errs.AddCompile(s.Superclass.Name.Line, s.Superclass.Name.Lexeme, "A class can't inherit from itself.")
		}
		r.currentClass = ClassSubclass
		r.resolveExpr(s.Superclass)

		r.beginScope()
		r.scopes[len(r.scopes)-1]["super"] = true
	}

	r.beginScope()
	r.scopes[len(r.scopes)-1]["this"] = true

	seen := make(map[string]bool)
	for _, method := range s.Methods {
		if seen[method.Name.Lexeme] {
			r.errs.AddCompile(method.Name.Line, method.Name.Lexeme, "Already a method with this name in this class.")
		}
		seen[method.Name.Lexeme] = true

		declType := FunctionMethod
		if method.Name.Lexeme == "init" {
			declType = FunctionInitializer
		}
		r.resolveFunction(method, declType)
	}

	r.endScope()
	if s.Superclass != nil {
		r.endScope()
	}
}

func (r *Resolver) resolveFunction(fn *ast.FunctionStmt, kind FunctionType) {
	enclosingFunction := r.currentFunction
	r.currentFunction = kind
	defer func() { r.currentFunction = enclosingFunction }()

	r.beginScope()
	for _, param := range fn.Params {
		r.declare(param)
		r.define(param)
	}
	r.resolveStmts(fn.Body)
	r.endScope()
}

func (r *Resolver) resolveExpr(expr ast.Expr) {
	switch e := expr.(type) {
	case *ast.AssignExpr:
		r.resolveExpr(e.Value)
		r.resolveLocal(e.ExprID(), e.Name)

	case *ast.BinaryExpr:
		r.resolveExpr(e.Left)
		r.resolveExpr(e.Right)

	case *ast.CallExpr:
		r.resolveExpr(e.Callee)
		for _, arg := range e.Args {
			r.resolveExpr(arg)
		}

	case *ast.GetExpr:
		r.resolveExpr(e.Object)

	case *ast.GroupingExpr:
		r.resolveExpr(e.Expression)

	case *ast.LiteralExpr:
		// no subexpressions, no variable reference

	case *ast.LogicalExpr:
		r.resolveExpr(e.Left)
		r.resolveExpr(e.Right)

	case *ast.SetExpr:
		r.resolveExpr(e.Value)
		r.resolveExpr(e.Object)

	case *ast.SuperExpr:
		switch r.currentClass {
		case ClassNone:
			r.errs.AddCompile(e.Keyword.Line, e.Keyword.Lexeme, "Can't use 'super' outside of a class.")
		case ClassClass:
			r.errs.AddCompile(e.Keyword.Line, e.Keyword.Lexeme, "Can't use 'super' in a class with no superclass.")
		}
		r.resolveLocal(e.ExprID(), e.Keyword)

	case *ast.ThisExpr:
		if r.currentClass == ClassNone {
			r.errs.AddCompile(e.Keyword.Line, e.Keyword.Lexeme, "Can't use 'this' outside of a class.")
		}
		r.resolveLocal(e.ExprID(), e.Keyword)

	case *ast.UnaryExpr:
		r.resolveExpr(e.Right)

	case *ast.VariableExpr:
		if len(r.scopes) > 0 {
			if defined, ok := r.scopes[len(r.scopes)-1][e.Name.Lexeme]; ok && !defined {
				r.errs.AddCompile(e.Name.Line, e.Name.Lexeme, "Can't read local variable in its own initializer.")
			}
		}
		r.resolveLocal(e.ExprID(), e.Name)

	default:
		panic("resolver: unhandled expression type")
	}
}

func (r *Resolver) resolveLocal(exprID int, name token.Token) {
	for distance := 0; distance < len(r.scopes); distance++ {
		scope := r.scopes[len(r.scopes)-1-distance]
		if _, ok := scope[name.Lexeme]; ok {
			r.depths[exprID] = distance
			return
		}
	}
	// not found in any scope: treated as global, left out of the table
}

func (r *Resolver) declare(name token.Token) {
	if len(r.scopes) == 0 {
		return
	}
	scope := r.scopes[len(r.scopes)-1]
	if _, exists := scope[name.Lexeme]; exists {
		r.errs.AddCompile(name.Line, name.Lexeme, "Already a variable with this name in this scope.")
	}
	scope[name.Lexeme] = false
}

func (r *Resolver) define(name token.Token) {
	if len(r.scopes) == 0 {
		return
	}
	r.scopes[len(r.scopes)-1][name.Lexeme] = true
}

func (r *Resolver) beginScope() {
	r.scopes = append(r.scopes, make(map[string]bool))
}

func (r *Resolver) endScope() {
	r.scopes = r.scopes[:len(r.scopes)-1]
}
