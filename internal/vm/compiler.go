package vm

import (
	"github.com/funvibe/funxy/internal/diagnostics"
	"github.com/funvibe/funxy/internal/lexer"
	"github.com/funvibe/funxy/internal/token"
)

// FunctionType tags what kind of callable body a compilerState is
// compiling, so `return` and `this` can be checked without a separate
// resolver pass (tier B folds resolution into the single compile pass,
// spec.md §4.5).
type FunctionType int

const (
	TypeFunction FunctionType = iota
	TypeInitializer
	TypeMethod
	TypeScript
)

type local struct {
	name       token.Token
	depth      int // -1 means declared but not yet defined
	isCaptured bool
}

type upvalueRef struct {
	index   byte
	isLocal bool
}

// compilerState is one nested function's compile-time frame: its own
// locals stack, upvalue list, and a link to the enclosing function's
// frame (clox's Compiler struct, chapter 22/25).
type compilerState struct {
	enclosing    *compilerState
	function     *ObjFunction
	functionType FunctionType
	locals       []local
	upvalues     []upvalueRef
	scopeDepth   int
}

type classCompilerState struct {
	enclosing     *classCompilerState
	hasSuperclass bool
}

// Compiler is a single-pass Pratt parser that emits bytecode directly
// (spec.md §4.5), grounded in internal/vm/compiler.go's prefix/infix
// rule table and original_source/clox/compiler.c's Parser/ParseRule
// shape.
type Compiler struct {
	lex     *lexer.Lexer
	current token.Token
	prev    token.Token

	panicMode bool
	errs      *diagnostics.Bag
	strings   *Table

	cs    *compilerState
	class *classCompilerState
}

// Compile compiles a complete program into an implicit top-level
// function (clox's "script" convention: CallFrame handling never needs
// a special case for "no function yet", per SPEC_FULL.md's supplemented
// feature 4). strings is the VM's intern table, shared so that a global
// name compiled here and looked up at runtime are the same *ObjString.
func Compile(source string, strings *Table) (*ObjFunction, *diagnostics.Bag) {
	c := &Compiler{lex: lexer.New(source), errs: diagnostics.NewBag(), strings: strings}
	c.cs = &compilerState{function: &ObjFunction{Name: ""}, functionType: TypeScript}
	c.cs.function.Chunk = NewChunk()
	c.cs.locals = append(c.cs.locals, local{name: token.Token{Lexeme: ""}, depth: 0})

	c.advance()
	for !c.match(token.EOF) {
		c.declaration()
	}
	c.consume(token.EOF, "Expect end of expression.")
	fn := c.endCompiler()
	return fn, c.errs
}

// --- token stream plumbing ---

func (c *Compiler) advance() {
	c.prev = c.current
	for {
		c.current = c.lex.NextToken()
		if c.current.Kind != token.Error {
			break
		}
		c.errorAtCurrent(c.current.Literal.Str)
	}
}

func (c *Compiler) check(k token.Kind) bool { return c.current.Kind == k }

func (c *Compiler) match(k token.Kind) bool {
	if !c.check(k) {
		return false
	}
	c.advance()
	return true
}

func (c *Compiler) consume(k token.Kind, message string) {
	if c.current.Kind == k {
		c.advance()
		return
	}
	c.errorAtCurrent(message)
}

func (c *Compiler) errorAtCurrent(message string) { c.errorAt(c.current, message) }
func (c *Compiler) error(message string)          { c.errorAt(c.prev, message) }

func (c *Compiler) errorAt(tok token.Token, message string) {
	if c.panicMode {
		return
	}
	c.panicMode = true
	if tok.Kind == token.EOF {
		c.errs.AddCompileAtEnd(tok.Line, message)
	} else if tok.Kind == token.Error {
		c.errs.AddCompile(tok.Line, "", message)
	} else {
		c.errs.AddCompile(tok.Line, tok.Lexeme, message)
	}
}

// synchronize discards tokens until the next statement boundary, the
// same recovery points internal/parser.Parser.synchronize uses.
func (c *Compiler) synchronize() {
	c.panicMode = false
	for c.current.Kind != token.EOF {
		if c.prev.Kind == token.Semicolon {
			return
		}
		switch c.current.Kind {
		case token.Class, token.Fun, token.Var, token.For, token.If, token.While, token.Print, token.Return:
			return
		}
		c.advance()
	}
}

// --- emitting bytecode ---

func (c *Compiler) chunk() *Chunk { return c.cs.function.Chunk }

func (c *Compiler) emitByte(b byte) { c.chunk().Write(b, c.prev.Line) }

func (c *Compiler) emitOp(op Opcode) { c.emitByte(byte(op)) }

func (c *Compiler) emitOpByte(op Opcode, operand byte) {
	c.emitOp(op)
	c.emitByte(operand)
}

func (c *Compiler) emitLoop(loopStart int) {
	c.emitOp(OP_LOOP)
	offset := c.chunk().Len() - loopStart + 2
	c.emitByte(byte(offset >> 8))
	c.emitByte(byte(offset))
}

func (c *Compiler) emitJump(op Opcode) int {
	c.emitOp(op)
	c.emitByte(0xff)
	c.emitByte(0xff)
	return c.chunk().Len() - 2
}

func (c *Compiler) patchJump(offset int) {
	jump := c.chunk().Len() - offset - 2
	c.chunk().Code[offset] = byte(jump >> 8)
	c.chunk().Code[offset+1] = byte(jump)
}

func (c *Compiler) emitReturn() {
	if c.cs.functionType == TypeInitializer {
		c.emitOpByte(OP_GET_LOCAL, 0)
	} else {
		c.emitOp(OP_NIL)
	}
	c.emitOp(OP_RETURN)
}

func (c *Compiler) makeConstant(v Value) byte {
	idx, err := c.chunk().AddConstant(v)
	if err != nil {
		c.error(err.Error())
		return 0
	}
	return byte(idx)
}

func (c *Compiler) emitConstant(v Value) {
	c.emitOpByte(OP_CONSTANT, c.makeConstant(v))
}

func (c *Compiler) endCompiler() *ObjFunction {
	c.emitReturn()
	fn := c.cs.function
	c.cs = c.cs.enclosing
	return fn
}

// --- scope handling ---

func (c *Compiler) beginScope() { c.cs.scopeDepth++ }

func (c *Compiler) endScope() {
	c.cs.scopeDepth--
	for len(c.cs.locals) > 0 && c.cs.locals[len(c.cs.locals)-1].depth > c.cs.scopeDepth {
		if c.cs.locals[len(c.cs.locals)-1].isCaptured {
			c.emitOp(OP_CLOSE_UPVALUE)
		} else {
			c.emitOp(OP_POP)
		}
		c.cs.locals = c.cs.locals[:len(c.cs.locals)-1]
	}
}
