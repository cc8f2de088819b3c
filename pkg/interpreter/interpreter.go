// Package interpreter is the tree-walking evaluator. It executes a parsed
// program against a scope stack and an injected output Context, producing the
// value of main or a structured runtime error.
package interpreter

import (
	"fmt"

	"iku/interpreter-go/pkg/ast"
	"iku/interpreter-go/pkg/runtime"
)

// Error is a runtime evaluation failure: an undefined name, a type or arity
// mismatch, a function redefinition, or a zero divisor. Lexical and parse
// errors are reported by their own packages.
type Error struct {
	Message string
}

func (e *Error) Error() string { return e.Message }

func failf(format string, args ...any) error {
	return &Error{Message: fmt.Sprintf(format, args...)}
}

// Interpreter evaluates one program run. Evaluation is a plain recursive
// walk; the scope stack is owned exclusively by the running evaluation.
type Interpreter struct {
	ctx       Context
	scopes    *runtime.Scopes
	functions map[string]*ast.FunctionDefinition
}

// Interpret populates the function table and invokes main with no arguments.
// A duplicate function name aborts the run before any execution begins.
func Interpret(ctx Context, program *ast.Program) (runtime.Value, error) {
	in := &Interpreter{
		ctx:       ctx,
		scopes:    runtime.NewScopes(),
		functions: make(map[string]*ast.FunctionDefinition, len(program.Functions)),
	}
	for _, fn := range program.Functions {
		if _, ok := in.functions[fn.Name]; ok {
			return nil, failf("function %q redefined", fn.Name)
		}
		in.functions[fn.Name] = fn
	}
	return in.call("main", nil)
}

func (in *Interpreter) eval(expr ast.Expression) (runtime.Value, error) {
	switch node := expr.(type) {
	case *ast.StringLiteral:
		return runtime.StringValue{Val: node.Value}, nil
	case *ast.IntegerLiteral:
		return runtime.IntegerValue{Val: node.Value}, nil
	case *ast.BooleanLiteral:
		return runtime.BoolValue{Val: node.Value}, nil
	case *ast.Identifier:
		v, ok := in.scopes.Get(node.Name)
		if !ok {
			return nil, failf("undefined variable %q", node.Name)
		}
		return v, nil
	case *ast.DeclareExpression:
		v, err := in.eval(node.Value)
		if err != nil {
			return nil, err
		}
		in.scopes.Create(node.Name, v)
		return v, nil
	case *ast.AssignExpression:
		v, err := in.eval(node.Value)
		if err != nil {
			return nil, err
		}
		if !in.scopes.Set(node.Name, v) {
			return nil, failf("assignment to undeclared variable %q", node.Name)
		}
		return v, nil
	case *ast.BlockExpression:
		return in.evalBlock(node.Body)
	case *ast.IfExpression:
		return in.evalIf(node)
	case *ast.BinaryExpression:
		return in.evalBinary(node)
	case *ast.LogicalExpression:
		return in.evalLogical(node)
	case *ast.NotExpression:
		v, err := in.eval(node.Operand)
		if err != nil {
			return nil, err
		}
		b, ok := v.(runtime.BoolValue)
		if !ok {
			return nil, failf("operand of ! must be a boolean, got %s", v.Kind())
		}
		return runtime.BoolValue{Val: !b.Val}, nil
	case *ast.TupleExpression:
		elements := make([]runtime.Value, 0, len(node.Elements))
		for _, el := range node.Elements {
			v, err := in.eval(el)
			if err != nil {
				return nil, err
			}
			elements = append(elements, v)
		}
		return &runtime.TupleValue{Elements: elements}, nil
	case *ast.CallExpression:
		args := make([]runtime.Value, 0, len(node.Arguments))
		for _, arg := range node.Arguments {
			v, err := in.eval(arg)
			if err != nil {
				return nil, err
			}
			args = append(args, v)
		}
		return in.call(node.Name, args)
	default:
		return nil, failf("unsupported expression %T", expr)
	}
}

// evalSequence evaluates expressions in order in the current scope. The
// result is the last value, or unit for an empty sequence.
func (in *Interpreter) evalSequence(body []ast.Expression) (runtime.Value, error) {
	result := runtime.Unit
	for _, expr := range body {
		v, err := in.eval(expr)
		if err != nil {
			return nil, err
		}
		result = v
	}
	return result, nil
}

// evalBlock runs a block body in a fresh nested scope. The scope is released
// on every exit path.
func (in *Interpreter) evalBlock(body []ast.Expression) (runtime.Value, error) {
	in.scopes.Enter(true)
	defer in.scopes.Exit()
	return in.evalSequence(body)
}

// evalIf evaluates the chosen branch directly in the current scope. Only an
// explicit block introduces a new scope, so a declaration inside a branch is
// visible after the conditional.
func (in *Interpreter) evalIf(node *ast.IfExpression) (runtime.Value, error) {
	cond, err := in.eval(node.Condition)
	if err != nil {
		return nil, err
	}
	b, ok := cond.(runtime.BoolValue)
	if !ok {
		return nil, failf("if condition must be a boolean, got %s", cond.Kind())
	}
	if b.Val {
		return in.evalSequence(node.Then)
	}
	return in.evalSequence(node.Else)
}

func (in *Interpreter) evalLogical(node *ast.LogicalExpression) (runtime.Value, error) {
	left, err := in.eval(node.Left)
	if err != nil {
		return nil, err
	}
	b, ok := left.(runtime.BoolValue)
	if !ok {
		return nil, failf("left operand of %s must be a boolean, got %s", node.Operator, left.Kind())
	}
	if node.Operator == ast.LogicalAnd && !b.Val {
		return runtime.BoolValue{Val: false}, nil
	}
	if node.Operator == ast.LogicalOr && b.Val {
		return runtime.BoolValue{Val: true}, nil
	}
	return in.eval(node.Right)
}

func (in *Interpreter) evalBinary(node *ast.BinaryExpression) (runtime.Value, error) {
	left, err := in.eval(node.Left)
	if err != nil {
		return nil, err
	}
	right, err := in.eval(node.Right)
	if err != nil {
		return nil, err
	}

	// Equality is structural and applies to any pair of values.
	switch node.Operator {
	case ast.OpEqual:
		return runtime.BoolValue{Val: runtime.Equal(left, right)}, nil
	case ast.OpNotEqual:
		return runtime.BoolValue{Val: !runtime.Equal(left, right)}, nil
	}

	l, lok := left.(runtime.IntegerValue)
	r, rok := right.(runtime.IntegerValue)
	if !lok || !rok {
		return nil, failf("operands of %s must be integers, got %s and %s",
			node.Operator, left.Kind(), right.Kind())
	}
	switch node.Operator {
	case ast.OpLess:
		return runtime.BoolValue{Val: l.Val < r.Val}, nil
	case ast.OpLessEqual:
		return runtime.BoolValue{Val: l.Val <= r.Val}, nil
	case ast.OpGreater:
		return runtime.BoolValue{Val: l.Val > r.Val}, nil
	case ast.OpGreaterEqual:
		return runtime.BoolValue{Val: l.Val >= r.Val}, nil
	case ast.OpAdd:
		return runtime.IntegerValue{Val: l.Val + r.Val}, nil
	case ast.OpSubtract:
		return runtime.IntegerValue{Val: l.Val - r.Val}, nil
	case ast.OpMultiply:
		return runtime.IntegerValue{Val: l.Val * r.Val}, nil
	case ast.OpDivide:
		if r.Val == 0 {
			return nil, failf("division by zero")
		}
		return runtime.IntegerValue{Val: l.Val / r.Val}, nil
	case ast.OpModulo:
		if r.Val == 0 {
			return nil, failf("modulo by zero")
		}
		return runtime.IntegerValue{Val: l.Val % r.Val}, nil
	default:
		return nil, failf("unsupported operator %s", node.Operator)
	}
}

// call runs the call protocol: a fresh detached scope isolates the callee
// from the caller's locals, parameters are bound positionally, and the scope
// is released on every exit path.
func (in *Interpreter) call(name string, args []runtime.Value) (runtime.Value, error) {
	in.scopes.Enter(false)
	defer in.scopes.Exit()

	if name == "print" {
		if len(args) != 1 {
			return nil, failf("not enough arguments to print")
		}
		in.ctx.Print(runtime.Format(args[0]) + "\n")
		return runtime.Unit, nil
	}

	fn, ok := in.functions[name]
	if !ok {
		return nil, failf("call to undefined function %q", name)
	}
	if len(args) != len(fn.Parameters) {
		return nil, failf("function %q expects %d arguments, got %d",
			name, len(fn.Parameters), len(args))
	}
	for i, param := range fn.Parameters {
		in.scopes.Create(param.Name, args[i])
	}
	// The call scope itself hosts the body; no extra nested scope.
	return in.evalSequence(fn.Body)
}
