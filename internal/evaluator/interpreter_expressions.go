package evaluator

import (
	"strconv"

	"github.com/funvibe/funxy/internal/ast"
	"github.com/funvibe/funxy/internal/token"
)

func (in *Interpreter) evaluate(expr ast.Expr) (Object, error) {
	switch e := expr.(type) {
	case *ast.LiteralExpr:
		return literalToObject(e.Value), nil

	case *ast.GroupingExpr:
		return in.evaluate(e.Expression)

	case *ast.VariableExpr:
		return in.lookUpVariable(e.Name, e.ExprID())

	case *ast.AssignExpr:
		value, err := in.evaluate(e.Value)
		if err != nil {
			return nil, err
		}
		if distance, ok := in.locals[e.ExprID()]; ok {
			in.env.AssignAt(distance, e.Name.Lexeme, value)
			return value, nil
		}
		if !in.globals.Assign(e.Name.Lexeme, value) {
			return nil, newRuntimeError(e.Name, "Undefined variable '"+e.Name.Lexeme+"'.")
		}
		return value, nil

	case *ast.UnaryExpr:
		return in.evalUnary(e)

	case *ast.BinaryExpr:
		return in.evalBinary(e)

	case *ast.LogicalExpr:
		return in.evalLogical(e)

	case *ast.CallExpr:
		return in.evalCall(e)

	case *ast.GetExpr:
		obj, err := in.evaluate(e.Object)
		if err != nil {
			return nil, err
		}
		instance, ok := obj.(*LoxInstance)
		if !ok {
			return nil, newRuntimeError(e.Name, "Only instances have properties.")
		}
		return instance.Get(e.Name)

	case *ast.SetExpr:
		obj, err := in.evaluate(e.Object)
		if err != nil {
			return nil, err
		}
		instance, ok := obj.(*LoxInstance)
		if !ok {
			return nil, newRuntimeError(e.Name, "Only instances have fields.")
		}
		value, err := in.evaluate(e.Value)
		if err != nil {
			return nil, err
		}
		instance.Set(e.Name, value)
		return value, nil

	case *ast.ThisExpr:
		return in.lookUpVariable(e.Keyword, e.ExprID())

	case *ast.SuperExpr:
		return in.evalSuper(e)

	default:
		return nil, newRuntimeError(expr.GetToken(), "Unhandled expression.")
	}
}

func literalToObject(value interface{}) Object {
	switch v := value.(type) {
	case nil:
		return NilValue
	case bool:
		return nativeBoolToObject(v)
	case float64:
		return &Number{Value: v}
	case string:
		return &String{Value: v}
	default:
		return NilValue
	}
}

func (in *Interpreter) evalUnary(e *ast.UnaryExpr) (Object, error) {
	right, err := in.evaluate(e.Right)
	if err != nil {
		return nil, err
	}
	switch e.Operator.Kind {
	case token.Minus:
		n, err := checkNumberOperand(e.Operator, right)
		if err != nil {
			return nil, err
		}
		return &Number{Value: -n}, nil
	case token.Bang:
		return nativeBoolToObject(!isTruthy(right)), nil
	}
	return nil, newRuntimeError(e.Operator, "Unknown unary operator.")
}

func (in *Interpreter) evalLogical(e *ast.LogicalExpr) (Object, error) {
	left, err := in.evaluate(e.Left)
	if err != nil {
		return nil, err
	}
	if e.Operator.Kind == token.Or {
		if isTruthy(left) {
			return left, nil
		}
	} else {
		if !isTruthy(left) {
			return left, nil
		}
	}
	return in.evaluate(e.Right)
}

func (in *Interpreter) evalBinary(e *ast.BinaryExpr) (Object, error) {
	left, err := in.evaluate(e.Left)
	if err != nil {
		return nil, err
	}
	right, err := in.evaluate(e.Right)
	if err != nil {
		return nil, err
	}

	switch e.Operator.Kind {
	case token.Minus:
		l, r, err := checkNumberOperands(e.Operator, left, right)
		if err != nil {
			return nil, err
		}
		return &Number{Value: l - r}, nil
	case token.Slash:
		l, r, err := checkNumberOperands(e.Operator, left, right)
		if err != nil {
			return nil, err
		}
		return &Number{Value: l / r}, nil
	case token.Star:
		l, r, err := checkNumberOperands(e.Operator, left, right)
		if err != nil {
			return nil, err
		}
		return &Number{Value: l * r}, nil
	case token.Plus:
		return in.evalPlus(e.Operator, left, right)
	case token.Greater:
		l, r, err := checkNumberOperands(e.Operator, left, right)
		if err != nil {
			return nil, err
		}
		return nativeBoolToObject(l > r), nil
	case token.GreaterEqual:
		l, r, err := checkNumberOperands(e.Operator, left, right)
		if err != nil {
			return nil, err
		}
		return nativeBoolToObject(l >= r), nil
	case token.Less:
		l, r, err := checkNumberOperands(e.Operator, left, right)
		if err != nil {
			return nil, err
		}
		return nativeBoolToObject(l < r), nil
	case token.LessEqual:
		l, r, err := checkNumberOperands(e.Operator, left, right)
		if err != nil {
			return nil, err
		}
		return nativeBoolToObject(l <= r), nil
	case token.BangEqual:
		return nativeBoolToObject(!isEqual(left, right)), nil
	case token.EqualEqual:
		return nativeBoolToObject(isEqual(left, right)), nil
	}
	return nil, newRuntimeError(e.Operator, "Unknown binary operator.")
}

// evalPlus overloads `+` for numbers and strings, and nothing else
// (spec.md §4.4: mixing number and string is a runtime error, jlox's
// "Operands must be two numbers or two strings.").
func (in *Interpreter) evalPlus(operator token.Token, left, right Object) (Object, error) {
	if l, ok := left.(*Number); ok {
		if r, ok := right.(*Number); ok {
			return &Number{Value: l.Value + r.Value}, nil
		}
	}
	if l, ok := left.(*String); ok {
		if r, ok := right.(*String); ok {
			return &String{Value: l.Value + r.Value}, nil
		}
	}
	return nil, newRuntimeError(operator, "Operands must be two numbers or two strings.")
}

func (in *Interpreter) evalCall(e *ast.CallExpr) (Object, error) {
	callee, err := in.evaluate(e.Callee)
	if err != nil {
		return nil, err
	}

	args := make([]Object, 0, len(e.Args))
	for _, argExpr := range e.Args {
		arg, err := in.evaluate(argExpr)
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
	}

	callable, ok := callee.(Callable)
	if !ok {
		return nil, newRuntimeError(e.Paren, "Can only call functions and classes.")
	}
	if len(args) != callable.Arity() {
		return nil, newRuntimeError(e.Paren, "Expected "+strconv.Itoa(callable.Arity())+" arguments but got "+strconv.Itoa(len(args))+".")
	}
	return callable.Call(in, args)
}

func (in *Interpreter) evalSuper(e *ast.SuperExpr) (Object, error) {
	distance := in.locals[e.ExprID()]
	superVal, _ := in.env.GetAt(distance, "super")
	superclass, _ := superVal.(*LoxClass)

	thisVal, _ := in.env.GetAt(distance-1, "this")
	instance, _ := thisVal.(*LoxInstance)

	method, ok := superclass.FindMethod(e.Method.Lexeme)
	if !ok {
		return nil, newRuntimeError(e.Method, "Undefined property '"+e.Method.Lexeme+"'.")
	}
	return method.Bind(instance), nil
}

func checkNumberOperand(operator token.Token, operand Object) (float64, error) {
	if n, ok := operand.(*Number); ok {
		return n.Value, nil
	}
	return 0, newRuntimeError(operator, "Operand must be a number.")
}

func checkNumberOperands(operator token.Token, left, right Object) (float64, float64, error) {
	l, ok := left.(*Number)
	if !ok {
		return 0, 0, newRuntimeError(operator, "Operands must be numbers.")
	}
	r, ok := right.(*Number)
	if !ok {
		return 0, 0, newRuntimeError(operator, "Operands must be numbers.")
	}
	return l.Value, r.Value, nil
}
