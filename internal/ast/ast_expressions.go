package ast

import "github.com/funvibe/funxy/internal/token"

// LiteralExpr is a nil/bool/number/string constant baked in at parse time.
type LiteralExpr struct {
	Id    int
	Token token.Token
	Value interface{} // nil, bool, float64, or string
}

func (e *LiteralExpr) GetToken() token.Token { return e.Token }
func (e *LiteralExpr) ExprID() int           { return e.Id }

// VariableExpr reads a variable by name.
type VariableExpr struct {
	Id   int
	Name token.Token
}

func (e *VariableExpr) GetToken() token.Token { return e.Name }
func (e *VariableExpr) ExprID() int           { return e.Id }

// AssignExpr assigns Value to the variable Name.
type AssignExpr struct {
	Id    int
	Name  token.Token
	Value Expr
}

func (e *AssignExpr) GetToken() token.Token { return e.Name }
func (e *AssignExpr) ExprID() int           { return e.Id }

// UnaryExpr is `-x` or `!x`.
type UnaryExpr struct {
	Id       int
	Operator token.Token
	Right    Expr
}

func (e *UnaryExpr) GetToken() token.Token { return e.Operator }
func (e *UnaryExpr) ExprID() int           { return e.Id }

// BinaryExpr is any of the arithmetic/comparison/equality infix operators.
type BinaryExpr struct {
	Id       int
	Left     Expr
	Operator token.Token
	Right    Expr
}

func (e *BinaryExpr) GetToken() token.Token { return e.Operator }
func (e *BinaryExpr) ExprID() int           { return e.Id }

// LogicalExpr is `and`/`or`; kept distinct from BinaryExpr because its
// right operand is not always evaluated (spec.md §4.2, short-circuit).
type LogicalExpr struct {
	Id       int
	Left     Expr
	Operator token.Token
	Right    Expr
}

func (e *LogicalExpr) GetToken() token.Token { return e.Operator }
func (e *LogicalExpr) ExprID() int           { return e.Id }

// GroupingExpr is a parenthesized expression.
type GroupingExpr struct {
	Id         int
	Paren      token.Token
	Expression Expr
}

func (e *GroupingExpr) GetToken() token.Token { return e.Paren }
func (e *GroupingExpr) ExprID() int           { return e.Id }

// CallExpr is `callee(args...)`.
type CallExpr struct {
	Id     int
	Callee Expr
	Paren  token.Token // closing paren, for error line reporting
	Args   []Expr
}

func (e *CallExpr) GetToken() token.Token { return e.Paren }
func (e *CallExpr) ExprID() int           { return e.Id }

// GetExpr is `object.name` property access.
type GetExpr struct {
	Id     int
	Object Expr
	Name   token.Token
}

func (e *GetExpr) GetToken() token.Token { return e.Name }
func (e *GetExpr) ExprID() int           { return e.Id }

// SetExpr is `object.name = value` property assignment.
type SetExpr struct {
	Id     int
	Object Expr
	Name   token.Token
	Value  Expr
}

func (e *SetExpr) GetToken() token.Token { return e.Name }
func (e *SetExpr) ExprID() int           { return e.Id }

// ThisExpr is the `this` keyword inside a method body.
type ThisExpr struct {
	Id      int
	Keyword token.Token
}

func (e *ThisExpr) GetToken() token.Token { return e.Keyword }
func (e *ThisExpr) ExprID() int           { return e.Id }

// SuperExpr is `super.method`.
type SuperExpr struct {
	Id      int
	Keyword token.Token
	Method  token.Token
}

func (e *SuperExpr) GetToken() token.Token { return e.Keyword }
func (e *SuperExpr) ExprID() int           { return e.Id }
