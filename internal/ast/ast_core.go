// Package ast defines the Lox syntax tree produced by internal/parser and
// consumed by internal/resolver and internal/evaluator (tier A only;
// tier B compiles directly from tokens without building a tree, per
// spec.md §4.5).
package ast

import "github.com/funvibe/funxy/internal/token"

// Expr is any expression node. Every expression carries a stable ID
// assigned at parse time so the resolver can key its depth table by
// identity rather than by structural equality (spec.md §9): two syntactically
// identical `x` references in different scopes must resolve independently.
type Expr interface {
	GetToken() token.Token
	ExprID() int
}

// Stmt is any statement node.
type Stmt interface {
	GetToken() token.Token
}

// IDGen hands out increasing expression identities. One Parser owns one
// IDGen for the lifetime of a single parse.
type IDGen struct{ next int }

// NewIDGen returns a fresh generator starting at id 0.
func NewIDGen() *IDGen { return &IDGen{} }

// Next returns the next unused expression id.
func (g *IDGen) Next() int {
	id := g.next
	g.next++
	return id
}
