package vm

import "github.com/funvibe/funxy/internal/token"

// Precedence mirrors original_source/clox/compiler.c's Precedence enum
// exactly, loosest to tightest (spec.md §4.2's chain, shared by both
// tiers' grammars).
type Precedence int

const (
	PrecNone Precedence = iota
	PrecAssignment
	PrecOr
	PrecAnd
	PrecEquality
	PrecComparison
	PrecTerm
	PrecFactor
	PrecUnary
	PrecCall
	PrecPrimary
)

type parseFn func(c *Compiler, canAssign bool)

type parseRule struct {
	prefix     parseFn
	infix      parseFn
	precedence Precedence
}

var rules map[token.Kind]parseRule

func init() {
	rules = map[token.Kind]parseRule{
		token.LeftParen:    {prefix: grouping, infix: call, precedence: PrecCall},
		token.Dot:          {infix: dot, precedence: PrecCall},
		token.Minus:        {prefix: unary, infix: binary, precedence: PrecTerm},
		token.Plus:         {infix: binary, precedence: PrecTerm},
		token.Slash:        {infix: binary, precedence: PrecFactor},
		token.Star:         {infix: binary, precedence: PrecFactor},
		token.Bang:         {prefix: unary},
		token.BangEqual:    {infix: binary, precedence: PrecEquality},
		token.EqualEqual:   {infix: binary, precedence: PrecEquality},
		token.Greater:      {infix: binary, precedence: PrecComparison},
		token.GreaterEqual: {infix: binary, precedence: PrecComparison},
		token.Less:         {infix: binary, precedence: PrecComparison},
		token.LessEqual:    {infix: binary, precedence: PrecComparison},
		token.Identifier:   {prefix: variable},
		token.String:       {prefix: stringLiteral},
		token.Number:       {prefix: number},
		token.And:          {infix: and_, precedence: PrecAnd},
		token.Or:           {infix: or_, precedence: PrecOr},
		token.False:        {prefix: literal},
		token.Nil:          {prefix: literal},
		token.True:         {prefix: literal},
		token.This:         {prefix: this_},
		token.Super:        {prefix: super_},
	}
}

func getRule(k token.Kind) parseRule {
	if r, ok := rules[k]; ok {
		return r
	}
	return parseRule{}
}

func (c *Compiler) expression() {
	c.parsePrecedence(PrecAssignment)
}

// parsePrecedence is the Pratt loop (original_source/clox/compiler.c):
// consume a prefix rule, then keep consuming infix rules at or above
// the requested precedence.
func (c *Compiler) parsePrecedence(precedence Precedence) {
	c.advance()
	prefixRule := getRule(c.prev.Kind).prefix
	if prefixRule == nil {
		c.error("Expect expression.")
		return
	}

	canAssign := precedence <= PrecAssignment
	prefixRule(c, canAssign)

	for precedence <= getRule(c.current.Kind).precedence {
		c.advance()
		infixRule := getRule(c.prev.Kind).infix
		infixRule(c, canAssign)
	}

	if canAssign && c.match(token.Equal) {
		c.error("Invalid assignment target.")
	}
}

func number(c *Compiler, _ bool) {
	c.emitConstant(NumberValue(c.prev.Literal.Num))
}

func stringLiteral(c *Compiler, _ bool) {
	obj := internString(c.strings, c.prev.Literal.Str)
	c.emitConstant(ObjValue(obj))
}

func literal(c *Compiler, _ bool) {
	switch c.prev.Kind {
	case token.False:
		c.emitOp(OP_FALSE)
	case token.True:
		c.emitOp(OP_TRUE)
	case token.Nil:
		c.emitOp(OP_NIL)
	}
}

func grouping(c *Compiler, _ bool) {
	c.expression()
	c.consume(token.RightParen, "Expect ')' after expression.")
}

func unary(c *Compiler, _ bool) {
	operatorKind := c.prev.Kind
	c.parsePrecedence(PrecUnary)
	switch operatorKind {
	case token.Bang:
		c.emitOp(OP_NOT)
	case token.Minus:
		c.emitOp(OP_NEGATE)
	}
}

func binary(c *Compiler, _ bool) {
	operatorKind := c.prev.Kind
	rule := getRule(operatorKind)
	c.parsePrecedence(rule.precedence + 1)

	switch operatorKind {
	case token.BangEqual:
		c.emitOp(OP_EQUAL)
		c.emitOp(OP_NOT)
	case token.EqualEqual:
		c.emitOp(OP_EQUAL)
	case token.Greater:
		c.emitOp(OP_GREATER)
	case token.GreaterEqual:
		c.emitOp(OP_LESS)
		c.emitOp(OP_NOT)
	case token.Less:
		c.emitOp(OP_LESS)
	case token.LessEqual:
		c.emitOp(OP_GREATER)
		c.emitOp(OP_NOT)
	case token.Plus:
		c.emitOp(OP_ADD)
	case token.Minus:
		c.emitOp(OP_SUBTRACT)
	case token.Star:
		c.emitOp(OP_MULTIPLY)
	case token.Slash:
		c.emitOp(OP_DIVIDE)
	}
}

func and_(c *Compiler, _ bool) {
	endJump := c.emitJump(OP_JUMP_IF_FALSE)
	c.emitOp(OP_POP)
	c.parsePrecedence(PrecAnd)
	c.patchJump(endJump)
}

func or_(c *Compiler, _ bool) {
	elseJump := c.emitJump(OP_JUMP_IF_FALSE)
	endJump := c.emitJump(OP_JUMP)
	c.patchJump(elseJump)
	c.emitOp(OP_POP)
	c.parsePrecedence(PrecOr)
	c.patchJump(endJump)
}

func call(c *Compiler, _ bool) {
	argCount := c.argumentList()
	c.emitOpByte(OP_CALL, argCount)
}

func (c *Compiler) argumentList() byte {
	var count int
	if !c.check(token.RightParen) {
		for {
			c.expression()
			if count == 255 {
				c.error("Can't have more than 255 arguments.")
			}
			count++
			if !c.match(token.Comma) {
				break
			}
		}
	}
	c.consume(token.RightParen, "Expect ')' after arguments.")
	return byte(count)
}

func dot(c *Compiler, canAssign bool) {
	c.consume(token.Identifier, "Expect property name after '.'.")
	name := c.identifierConstant(c.prev)

	switch {
	case canAssign && c.match(token.Equal):
		c.expression()
		c.emitOpByte(OP_SET_PROPERTY, name)
	case c.match(token.LeftParen):
		argCount := c.argumentList()
		c.emitOpByte(OP_INVOKE, name)
		c.emitByte(argCount)
	default:
		c.emitOpByte(OP_GET_PROPERTY, name)
	}
}

func this_(c *Compiler, _ bool) {
	if c.class == nil {
		c.error("Can't use 'this' outside of a class.")
		return
	}
	variableNamed(c, thisToken(), false)
}

func super_(c *Compiler, _ bool) {
	if c.class == nil {
		c.error("Can't use 'super' outside of a class.")
	} else if !c.class.hasSuperclass {
		c.error("Can't use 'super' in a class with no superclass.")
	}

	c.consume(token.Dot, "Expect '.' after 'super'.")
	c.consume(token.Identifier, "Expect superclass method name.")
	name := c.identifierConstant(c.prev)

	variableNamed(c, thisToken(), false)
	if c.match(token.LeftParen) {
		argCount := c.argumentList()
		variableNamed(c, superToken(), false)
		c.emitOpByte(OP_SUPER_INVOKE, name)
		c.emitByte(argCount)
	} else {
		variableNamed(c, superToken(), false)
		c.emitOpByte(OP_GET_SUPER, name)
	}
}

func thisToken() token.Token  { return token.Token{Kind: token.Identifier, Lexeme: "this"} }
func superToken() token.Token { return token.Token{Kind: token.Identifier, Lexeme: "super"} }

func variable(c *Compiler, canAssign bool) {
	variableNamed(c, c.prev, canAssign)
}

func variableNamed(c *Compiler, name token.Token, canAssign bool) {
	var getOp, setOp Opcode
	arg, ok := c.resolveLocal(c.cs, name)
	switch {
	case ok:
		getOp, setOp = OP_GET_LOCAL, OP_SET_LOCAL
	default:
		if idx, found := c.resolveUpvalue(c.cs, name); found {
			arg, getOp, setOp = idx, OP_GET_UPVALUE, OP_SET_UPVALUE
		} else {
			arg = int(c.identifierConstant(name))
			getOp, setOp = OP_GET_GLOBAL, OP_SET_GLOBAL
		}
	}

	if canAssign && c.match(token.Equal) {
		c.expression()
		c.emitOpByte(setOp, byte(arg))
	} else {
		c.emitOpByte(getOp, byte(arg))
	}
}
