package ast

import "github.com/funvibe/funxy/internal/token"

// ExpressionStmt evaluates Expression and discards the result.
type ExpressionStmt struct {
	Token      token.Token
	Expression Expr
}

func (s *ExpressionStmt) GetToken() token.Token { return s.Token }

// PrintStmt evaluates Expression and prints it followed by a newline.
type PrintStmt struct {
	Token      token.Token
	Expression Expr
}

func (s *PrintStmt) GetToken() token.Token { return s.Token }

// VarStmt declares a variable, optionally with an initializer.
type VarStmt struct {
	Name        token.Token
	Initializer Expr // nil if not present
}

func (s *VarStmt) GetToken() token.Token { return s.Name }

// BlockStmt introduces a new lexical scope around Statements.
type BlockStmt struct {
	Token      token.Token // opening brace
	Statements []Stmt
}

func (s *BlockStmt) GetToken() token.Token { return s.Token }

// IfStmt is `if (cond) then [else else]`.
type IfStmt struct {
	Token      token.Token
	Condition  Expr
	ThenBranch Stmt
	ElseBranch Stmt // nil if absent
}

func (s *IfStmt) GetToken() token.Token { return s.Token }

// WhileStmt is `while (cond) body`. `for` is desugared into this by the
// parser (spec.md §4.2).
type WhileStmt struct {
	Token     token.Token
	Condition Expr
	Body      Stmt
}

func (s *WhileStmt) GetToken() token.Token { return s.Token }

// FunctionStmt is a named function declaration, also reused by the parser
// for method declarations inside a ClassStmt (methods have no leading
// `fun` keyword, but share this same node shape).
type FunctionStmt struct {
	Name   token.Token
	Params []token.Token
	Body   []Stmt
}

func (s *FunctionStmt) GetToken() token.Token { return s.Name }

// ReturnStmt is `return [value];`.
type ReturnStmt struct {
	Keyword token.Token
	Value   Expr // nil if bare `return;`
}

func (s *ReturnStmt) GetToken() token.Token { return s.Keyword }

// ClassStmt is a class declaration with an optional superclass and zero or
// more methods.
type ClassStmt struct {
	Name       token.Token
	Superclass *VariableExpr // nil if no `< Superclass` clause
	Methods    []*FunctionStmt
}

func (s *ClassStmt) GetToken() token.Token { return s.Name }
