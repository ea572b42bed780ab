package parser

import (
	"github.com/funvibe/funxy/internal/ast"
	"github.com/funvibe/funxy/internal/token"
)

const maxArgs = 255

// expression is the grammar's loosest production; the precedence chain
// below mirrors spec.md §4.2 exactly: assignment -> or -> and -> equality
// -> comparison -> term -> factor -> unary -> call -> primary.
func (p *Parser) expression() ast.Expr {
	return p.assignment()
}

// assignment is right-associative and validates its l-value after the
// fact (parse both sides as expressions first, then check the shape),
// exactly as jlox's Parser::assignment does.
func (p *Parser) assignment() ast.Expr {
	expr := p.or()

	if p.match(token.Equal) {
		equals := p.previous()
		value := p.assignment()

		switch target := expr.(type) {
		case *ast.VariableExpr:
			return &ast.AssignExpr{Id: p.nextID(), Name: target.Name, Value: value}
		case *ast.GetExpr:
			return &ast.SetExpr{Id: p.nextID(), Object: target.Object, Name: target.Name, Value: value}
		default:
			p.errorAt(equals, "Invalid assignment target.")
		}
	}

	return expr
}

func (p *Parser) or() ast.Expr {
	expr := p.and()
	for p.match(token.Or) {
		operator := p.previous()
		right := p.and()
		expr = &ast.LogicalExpr{Id: p.nextID(), Left: expr, Operator: operator, Right: right}
	}
	return expr
}

func (p *Parser) and() ast.Expr {
	expr := p.equality()
	for p.match(token.And) {
		operator := p.previous()
		right := p.equality()
		expr = &ast.LogicalExpr{Id: p.nextID(), Left: expr, Operator: operator, Right: right}
	}
	return expr
}

func (p *Parser) equality() ast.Expr {
	expr := p.comparison()
	for p.match(token.BangEqual, token.EqualEqual) {
		operator := p.previous()
		right := p.comparison()
		expr = &ast.BinaryExpr{Id: p.nextID(), Left: expr, Operator: operator, Right: right}
	}
	return expr
}

func (p *Parser) comparison() ast.Expr {
	expr := p.term()
	for p.match(token.Greater, token.GreaterEqual, token.Less, token.LessEqual) {
		operator := p.previous()
		right := p.term()
		expr = &ast.BinaryExpr{Id: p.nextID(), Left: expr, Operator: operator, Right: right}
	}
	return expr
}

func (p *Parser) term() ast.Expr {
	expr := p.factor()
	for p.match(token.Minus, token.Plus) {
		operator := p.previous()
		right := p.factor()
		expr = &ast.BinaryExpr{Id: p.nextID(), Left: expr, Operator: operator, Right: right}
	}
	return expr
}

func (p *Parser) factor() ast.Expr {
	expr := p.unary()
	for p.match(token.Slash, token.Star) {
		operator := p.previous()
		right := p.unary()
		expr = &ast.BinaryExpr{Id: p.nextID(), Left: expr, Operator: operator, Right: right}
	}
	return expr
}

func (p *Parser) unary() ast.Expr {
	if p.match(token.Bang, token.Minus) {
		operator := p.previous()
		right := p.unary()
		return &ast.UnaryExpr{Id: p.nextID(), Operator: operator, Right: right}
	}
	return p.call()
}

func (p *Parser) call() ast.Expr {
	expr := p.primary()

	for {
		switch {
		case p.match(token.LeftParen):
			expr = p.finishCall(expr)
		case p.match(token.Dot):
			name := p.consume(token.Identifier, "Expect property name after '.'.")
			expr = &ast.GetExpr{Id: p.nextID(), Object: expr, Name: name}
		default:
			return expr
		}
	}
}

func (p *Parser) finishCall(callee ast.Expr) ast.Expr {
	var args []ast.Expr
	if !p.check(token.RightParen) {
		for {
			if len(args) >= maxArgs {
				p.errorAt(p.peek(), "Can't have more than 255 arguments.")
			}
			args = append(args, p.expression())
			if !p.match(token.Comma) {
				break
			}
		}
	}
	paren := p.consume(token.RightParen, "Expect ')' after arguments.")
	return &ast.CallExpr{Id: p.nextID(), Callee: callee, Paren: paren, Args: args}
}

func (p *Parser) primary() ast.Expr {
	tok := p.peek()
	switch {
	case p.match(token.False):
		return &ast.LiteralExpr{Id: p.nextID(), Token: tok, Value: false}
	case p.match(token.True):
		return &ast.LiteralExpr{Id: p.nextID(), Token: tok, Value: true}
	case p.match(token.Nil):
		return &ast.LiteralExpr{Id: p.nextID(), Token: tok, Value: nil}
	case p.match(token.Number):
		return &ast.LiteralExpr{Id: p.nextID(), Token: tok, Value: tok.Literal.Num}
	case p.match(token.String):
		return &ast.LiteralExpr{Id: p.nextID(), Token: tok, Value: tok.Literal.Str}
	case p.match(token.Super):
		keyword := p.previous()
		p.consume(token.Dot, "Expect '.' after 'super'.")
		method := p.consume(token.Identifier, "Expect superclass method name.")
		return &ast.SuperExpr{Id: p.nextID(), Keyword: keyword, Method: method}
	case p.match(token.This):
		return &ast.ThisExpr{Id: p.nextID(), Keyword: p.previous()}
	case p.match(token.Identifier):
		return &ast.VariableExpr{Id: p.nextID(), Name: p.previous()}
	case p.match(token.LeftParen):
		paren := p.previous()
		expr := p.expression()
		p.consume(token.RightParen, "Expect ')' after expression.")
		return &ast.GroupingExpr{Id: p.nextID(), Paren: paren, Expression: expr}
	}

	panic(p.errorAt(p.peek(), "Expect expression."))
}
