// Package prettyprinter renders a Lox syntax tree as a fully
// parenthesized Lisp-like expression, the same shape original_source's
// AstPrinter.cpp produces via its visitor-per-node-type operator()
// overloads — generalized here to Go's type switch and extended to
// cover every statement kind the parser emits, not just expressions.
package prettyprinter

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/funvibe/funxy/internal/ast"
)

// Print renders a single expression.
func Print(expr ast.Expr) string {
	return printExpr(expr)
}

// PrintProgram renders every statement in order, one per line.
func PrintProgram(statements []ast.Stmt) string {
	var b strings.Builder
	for i, stmt := range statements {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(printStmt(stmt))
	}
	return b.String()
}

func printExpr(expr ast.Expr) string {
	switch e := expr.(type) {
	case *ast.LiteralExpr:
		return literalString(e.Value)
	case *ast.VariableExpr:
		return e.Name.Lexeme
	case *ast.AssignExpr:
		return parenthesize("= "+e.Name.Lexeme, e.Value)
	case *ast.UnaryExpr:
		return parenthesize(e.Operator.Lexeme, e.Right)
	case *ast.BinaryExpr:
		return parenthesize(e.Operator.Lexeme, e.Left, e.Right)
	case *ast.LogicalExpr:
		return parenthesize(e.Operator.Lexeme, e.Left, e.Right)
	case *ast.GroupingExpr:
		return parenthesize("group", e.Expression)
	case *ast.CallExpr:
		parts := make([]string, 0, len(e.Args)+1)
		parts = append(parts, printExpr(e.Callee))
		for _, a := range e.Args {
			parts = append(parts, printExpr(a))
		}
		return "(call " + strings.Join(parts, " ") + ")"
	case *ast.GetExpr:
		return fmt.Sprintf("(. %s %s)", printExpr(e.Object), e.Name.Lexeme)
	case *ast.SetExpr:
		return fmt.Sprintf("(.= %s %s %s)", printExpr(e.Object), e.Name.Lexeme, printExpr(e.Value))
	case *ast.ThisExpr:
		return "this"
	case *ast.SuperExpr:
		return fmt.Sprintf("(super.%s)", e.Method.Lexeme)
	default:
		return "<?expr>"
	}
}

func printStmt(stmt ast.Stmt) string {
	switch s := stmt.(type) {
	case *ast.ExpressionStmt:
		return printExpr(s.Expression) + ";"
	case *ast.PrintStmt:
		return parenthesize("print", s.Expression)
	case *ast.VarStmt:
		if s.Initializer == nil {
			return fmt.Sprintf("(var %s)", s.Name.Lexeme)
		}
		return fmt.Sprintf("(var %s %s)", s.Name.Lexeme, printExpr(s.Initializer))
	case *ast.BlockStmt:
		parts := make([]string, len(s.Statements))
		for i, inner := range s.Statements {
			parts[i] = printStmt(inner)
		}
		return "(block " + strings.Join(parts, " ") + ")"
	case *ast.IfStmt:
		if s.ElseBranch == nil {
			return fmt.Sprintf("(if %s %s)", printExpr(s.Condition), printStmt(s.ThenBranch))
		}
		return fmt.Sprintf("(if %s %s %s)", printExpr(s.Condition), printStmt(s.ThenBranch), printStmt(s.ElseBranch))
	case *ast.WhileStmt:
		return fmt.Sprintf("(while %s %s)", printExpr(s.Condition), printStmt(s.Body))
	case *ast.FunctionStmt:
		names := make([]string, len(s.Params))
		for i, p := range s.Params {
			names[i] = p.Lexeme
		}
		return fmt.Sprintf("(fun %s (%s) ...)", s.Name.Lexeme, strings.Join(names, " "))
	case *ast.ReturnStmt:
		if s.Value == nil {
			return "(return)"
		}
		return parenthesize("return", s.Value)
	case *ast.ClassStmt:
		if s.Superclass == nil {
			return fmt.Sprintf("(class %s)", s.Name.Lexeme)
		}
		return fmt.Sprintf("(class %s < %s)", s.Name.Lexeme, s.Superclass.Name.Lexeme)
	default:
		return "<?stmt>"
	}
}

func parenthesize(name string, exprs ...ast.Expr) string {
	var b strings.Builder
	b.WriteString("(")
	b.WriteString(name)
	for _, e := range exprs {
		b.WriteString(" ")
		b.WriteString(printExpr(e))
	}
	b.WriteString(")")
	return b.String()
}

// literalString matches spec.md §6's stringify rule for number literals
// (shortest round-trippable form), reusing strconv the same way the
// evaluator's Number.Inspect (object_primitives.go) does.
func literalString(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return "nil"
	case bool:
		if val {
			return "true"
		}
		return "false"
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case string:
		return val
	default:
		return fmt.Sprintf("%v", val)
	}
}
