package vm

import "github.com/funvibe/funxy/internal/token"

func (c *Compiler) declaration() {
	switch {
	case c.match(token.Class):
		c.classDeclaration()
	case c.match(token.Fun):
		c.funDeclaration()
	case c.match(token.Var):
		c.varDeclaration()
	default:
		c.statement()
	}

	if c.panicMode {
		c.synchronize()
	}
}

func (c *Compiler) classDeclaration() {
	c.consume(token.Identifier, "Expect class name.")
	className := c.prev
	nameConstant := c.identifierConstant(c.prev)
	c.declareVariable()

	c.emitOpByte(OP_CLASS, nameConstant)
	c.defineVariable(nameConstant)

	classCS := &classCompilerState{enclosing: c.class}
	c.class = classCS
	defer func() { c.class = classCS.enclosing }()

	if c.match(token.Less) {
		c.consume(token.Identifier, "Expect superclass name.")
		variable(c, false)
		if identifiersEqual(c.prev, className) {
			c.error("A class can't inherit from itself.")
		}

		c.beginScope()
		c.addLocal(superToken())
		c.defineVariable(0)

		variableNamed(c, className, false)
		c.emitOp(OP_INHERIT)
		classCS.hasSuperclass = true
	}

	variableNamed(c, className, false)
	c.consume(token.LeftBrace, "Expect '{' before class body.")
	for !c.check(token.RightBrace) && !c.check(token.EOF) {
		c.method()
	}
	c.consume(token.RightBrace, "Expect '}' after class body.")
	c.emitOp(OP_POP)

	if classCS.hasSuperclass {
		c.endScope()
	}
}

func (c *Compiler) method() {
	c.consume(token.Identifier, "Expect method name.")
	name := c.prev
	constant := c.identifierConstant(name)

	fnType := TypeMethod
	if name.Lexeme == "init" {
		fnType = TypeInitializer
	}
	c.compileFunction(fnType)
	c.emitOpByte(OP_METHOD, constant)
}

func (c *Compiler) funDeclaration() {
	global := c.parseVariable("Expect function name.")
	c.markInitialized()
	c.compileFunction(TypeFunction)
	c.defineVariable(global)
}

// compileFunction pushes a new compilerState, compiles the parameter
// list and body, and emits an OP_CLOSURE over the result (clox's
// function(), chapter 24/25).
func (c *Compiler) compileFunction(fnType FunctionType) {
	enclosing := c.cs
	fn := &ObjFunction{Name: c.prev.Lexeme, Chunk: NewChunk()}
	c.cs = &compilerState{enclosing: enclosing, function: fn, functionType: fnType}

	implicitName := "this"
	if fnType != TypeFunction {
		c.cs.locals = append(c.cs.locals, local{name: token.Token{Lexeme: implicitName}, depth: 0})
	} else {
		c.cs.locals = append(c.cs.locals, local{name: token.Token{Lexeme: ""}, depth: 0})
	}

	c.beginScope()
	c.consume(token.LeftParen, "Expect '(' after function name.")
	if !c.check(token.RightParen) {
		for {
			c.cs.function.Arity++
			if c.cs.function.Arity > 255 {
				c.errorAtCurrent("Can't have more than 255 parameters.")
			}
			paramConstant := c.parseVariable("Expect parameter name.")
			c.defineVariable(paramConstant)
			if !c.match(token.Comma) {
				break
			}
		}
	}
	c.consume(token.RightParen, "Expect ')' after parameters.")
	c.consume(token.LeftBrace, "Expect '{' before function body.")
	c.block()

	finished := c.cs
	compiled := c.endCompiler()

	constant := c.makeConstant(ObjValue(compiled))
	c.emitOpByte(OP_CLOSURE, constant)
	for _, uv := range finished.upvalues {
		if uv.isLocal {
			c.emitByte(1)
		} else {
			c.emitByte(0)
		}
		c.emitByte(uv.index)
	}
}

func (c *Compiler) varDeclaration() {
	global := c.parseVariable("Expect variable name.")
	if c.match(token.Equal) {
		c.expression()
	} else {
		c.emitOp(OP_NIL)
	}
	c.consume(token.Semicolon, "Expect ';' after variable declaration.")
	c.defineVariable(global)
}

func (c *Compiler) statement() {
	switch {
	case c.match(token.Print):
		c.printStatement()
	case c.match(token.If):
		c.ifStatement()
	case c.match(token.Return):
		c.returnStatement()
	case c.match(token.While):
		c.whileStatement()
	case c.match(token.For):
		c.forStatement()
	case c.match(token.LeftBrace):
		c.beginScope()
		c.block()
		c.endScope()
	default:
		c.expressionStatement()
	}
}

func (c *Compiler) printStatement() {
	c.expression()
	c.consume(token.Semicolon, "Expect ';' after value.")
	c.emitOp(OP_PRINT)
}

func (c *Compiler) returnStatement() {
	if c.cs.functionType == TypeScript {
		c.error("Can't return from top-level code.")
	}
	if c.match(token.Semicolon) {
		c.emitReturn()
		return
	}
	if c.cs.functionType == TypeInitializer {
		c.error("Can't return a value from an initializer.")
	}
	c.expression()
	c.consume(token.Semicolon, "Expect ';' after return value.")
	c.emitOp(OP_RETURN)
}

func (c *Compiler) expressionStatement() {
	c.expression()
	c.consume(token.Semicolon, "Expect ';' after expression.")
	c.emitOp(OP_POP)
}

func (c *Compiler) ifStatement() {
	c.consume(token.LeftParen, "Expect '(' after 'if'.")
	c.expression()
	c.consume(token.RightParen, "Expect ')' after condition.")

	thenJump := c.emitJump(OP_JUMP_IF_FALSE)
	c.emitOp(OP_POP)
	c.statement()

	elseJump := c.emitJump(OP_JUMP)
	c.patchJump(thenJump)
	c.emitOp(OP_POP)

	if c.match(token.Else) {
		c.statement()
	}
	c.patchJump(elseJump)
}

func (c *Compiler) block() {
	for !c.check(token.RightBrace) && !c.check(token.EOF) {
		c.declaration()
	}
	c.consume(token.RightBrace, "Expect '}' after block.")
}
