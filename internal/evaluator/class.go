package evaluator

import "github.com/funvibe/funxy/internal/token"

// LoxClass is both a callable (invoking it constructs an instance) and a
// method table with optional inheritance, per spec.md §4.4's class
// semantics.
type LoxClass struct {
	Name       string
	Superclass *LoxClass
	Methods    map[string]*LoxFunction
}

func (c *LoxClass) Type() ObjectType { return CLASS_OBJ }
func (c *LoxClass) Inspect() string  { return c.Name }

// FindMethod walks the inheritance chain looking for name, the same walk
// jlox's LoxClass.findMethod does.
func (c *LoxClass) FindMethod(name string) (*LoxFunction, bool) {
	if m, ok := c.Methods[name]; ok {
		return m, true
	}
	if c.Superclass != nil {
		return c.Superclass.FindMethod(name)
	}
	return nil, false
}

func (c *LoxClass) Arity() int {
	if initializer, ok := c.FindMethod("init"); ok {
		return initializer.Arity()
	}
	return 0
}

func (c *LoxClass) Call(interp *Interpreter, args []Object) (Object, error) {
	instance := &LoxInstance{Class: c, Fields: make(map[string]Object)}
	if initializer, ok := c.FindMethod("init"); ok {
		if _, err := initializer.Bind(instance).Call(interp, args); err != nil {
			return nil, err
		}
	}
	return instance, nil
}

// LoxInstance is a class's runtime object: a field table with a fallback
// to the class's methods (spec.md §4.4: fields shadow methods).
type LoxInstance struct {
	Class  *LoxClass
	Fields map[string]Object
}

func (i *LoxInstance) Type() ObjectType { return INSTANCE_OBJ }
func (i *LoxInstance) Inspect() string  { return i.Class.Name + " instance" }

// Get resolves a property access, checking fields before methods, and
// binding a found method to this instance so a later call sees the right
// `this` (spec.md §4.4).
func (i *LoxInstance) Get(name token.Token) (Object, error) {
	if v, ok := i.Fields[name.Lexeme]; ok {
		return v, nil
	}
	if m, ok := i.Class.FindMethod(name.Lexeme); ok {
		return m.Bind(i), nil
	}
	return nil, newRuntimeError(name, "Undefined property '"+name.Lexeme+"'.")
}

func (i *LoxInstance) Set(name token.Token, value Object) {
	i.Fields[name.Lexeme] = value
}
