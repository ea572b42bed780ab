package vm

import "github.com/funvibe/funxy/internal/token"

func (c *Compiler) identifierConstant(name token.Token) byte {
	return c.makeConstant(ObjValue(internString(c.strings, name.Lexeme)))
}

func identifiersEqual(a, b token.Token) bool { return a.Lexeme == b.Lexeme }

// resolveLocal walks cs's locals back-to-front looking for name,
// matching original_source/clox/compiler.c's resolveLocal (innermost
// shadowing wins). Returns ok=false if name isn't a local in this frame.
func (c *Compiler) resolveLocal(cs *compilerState, name token.Token) (int, bool) {
	for i := len(cs.locals) - 1; i >= 0; i-- {
		if identifiersEqual(cs.locals[i].name, name) {
			if cs.locals[i].depth == -1 {
				c.error("Can't read local variable in its own initializer.")
			}
			return i, true
		}
	}
	return 0, false
}

// resolveUpvalue recursively resolves name in an enclosing function's
// locals (capturing it) or its own upvalues (re-exporting it), the
// closure-capture algorithm from clox chapter 25.
func (c *Compiler) resolveUpvalue(cs *compilerState, name token.Token) (int, bool) {
	if cs.enclosing == nil {
		return 0, false
	}
	if local, ok := c.resolveLocal(cs.enclosing, name); ok {
		cs.enclosing.locals[local].isCaptured = true
		return c.addUpvalue(cs, byte(local), true), true
	}
	if up, ok := c.resolveUpvalue(cs.enclosing, name); ok {
		return c.addUpvalue(cs, byte(up), false), true
	}
	return 0, false
}

func (c *Compiler) addUpvalue(cs *compilerState, index byte, isLocal bool) int {
	for i, uv := range cs.upvalues {
		if uv.index == index && uv.isLocal == isLocal {
			return i
		}
	}
	cs.upvalues = append(cs.upvalues, upvalueRef{index: index, isLocal: isLocal})
	cs.function.UpvalueCount = len(cs.upvalues)
	return len(cs.upvalues) - 1
}

func (c *Compiler) addLocal(name token.Token) {
	if len(c.cs.locals) >= 256 {
		c.error("Too many local variables in function.")
		return
	}
	c.cs.locals = append(c.cs.locals, local{name: name, depth: -1})
}

func (c *Compiler) declareVariable() {
	if c.cs.scopeDepth == 0 {
		return
	}
	name := c.prev
	for i := len(c.cs.locals) - 1; i >= 0; i-- {
		l := c.cs.locals[i]
		if l.depth != -1 && l.depth < c.cs.scopeDepth {
			break
		}
		if identifiersEqual(name, l.name) {
			c.error("Already a variable with this name in this scope.")
		}
	}
	c.addLocal(name)
}

func (c *Compiler) parseVariable(message string) byte {
	c.consume(token.Identifier, message)
	c.declareVariable()
	if c.cs.scopeDepth > 0 {
		return 0
	}
	return c.identifierConstant(c.prev)
}

func (c *Compiler) markInitialized() {
	if c.cs.scopeDepth == 0 {
		return
	}
	c.cs.locals[len(c.cs.locals)-1].depth = c.cs.scopeDepth
}

func (c *Compiler) defineVariable(global byte) {
	if c.cs.scopeDepth > 0 {
		c.markInitialized()
		return
	}
	c.emitOpByte(OP_DEFINE_GLOBAL, global)
}
