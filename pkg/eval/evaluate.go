// Package eval implements the mutually recursive Evaluate/Apply pair
// that drives the tree walk. Grounded on the teacher's
// pkg/eval/eval.go (switch over the expression's tag, special-form
// dispatch on the leading symbol, left-to-right recursive operand
// evaluation, closure application by extending the captured
// environment). The teacher's code-generation and control-flow
// extensions (let, letrec, and, or, match, do, try, error, lift, run)
// are replaced with exactly six special forms plus application, and
// errors are returned rather than printed, so that they abort the
// in-flight evaluate call and propagate upward instead of being
// swallowed.
package eval

import (
	"lispwalk/pkg/ast"
	"lispwalk/pkg/env"
	"lispwalk/pkg/ierrors"
	"lispwalk/pkg/syntax"
)

// Evaluate walks the expression tree by classification, first match
// wins: self-evaluating atoms, variable references, and each special
// form are checked in turn before falling back to application.
func Evaluate(expression *ast.Value, environment *env.Environment) (*ast.Value, error) {
	switch {
	case syntax.IsSelfEvaluating(expression):
		return expression, nil

	case syntax.IsVariable(expression):
		return env.Lookup(expression.Str, environment)

	case syntax.IsQuoted(expression):
		return syntax.QuotedDatum(expression), nil

	case syntax.IsAssignment(expression):
		value, err := Evaluate(syntax.AssignmentValue(expression), environment)
		if err != nil {
			return nil, err
		}
		if err := env.Assign(syntax.AssignmentVariable(expression).Str, value, environment); err != nil {
			return nil, err
		}
		return ast.Ok, nil

	case syntax.IsDefinition(expression):
		value, err := Evaluate(syntax.DefinitionValue(expression), environment)
		if err != nil {
			return nil, err
		}
		env.Define(syntax.DefinitionVariable(expression).Str, value, environment)
		return ast.Ok, nil

	case syntax.IsIf(expression):
		predicate, err := Evaluate(syntax.IfPredicate(expression), environment)
		if err != nil {
			return nil, err
		}
		if ast.IsTruthy(predicate) {
			return Evaluate(syntax.IfConsequent(expression), environment)
		}
		return Evaluate(syntax.IfAlternative(expression), environment)

	case syntax.IsLambda(expression):
		return ast.NewCompound(syntax.LambdaParameters(expression), syntax.LambdaBody(expression), environment), nil

	case syntax.IsBegin(expression):
		return evaluateSequence(syntax.BeginActions(expression), environment)

	case syntax.IsApplication(expression):
		procedure, err := Evaluate(syntax.Operator(expression), environment)
		if err != nil {
			return nil, err
		}
		arguments, err := evaluateOperands(syntax.Operands(expression), environment)
		if err != nil {
			return nil, err
		}
		return Apply(procedure, arguments)
	}

	return nil, &ierrors.SyntaxError{Expression: expression}
}

// evaluateOperands evaluates each operand strictly left-to-right,
// producing a Value slice. Fixing the order makes side effects
// observable and testable. A recursive structure, rather than an
// iterative append, keeps that left-to-right order explicit in the
// call order itself.
func evaluateOperands(operands *ast.Value, environment *env.Environment) ([]*ast.Value, error) {
	if ast.IsEmptyList(operands) {
		return nil, nil
	}
	if !ast.IsPair(operands) {
		return nil, &ierrors.SyntaxError{Expression: operands}
	}
	head, err := Evaluate(operands.Car, environment)
	if err != nil {
		return nil, err
	}
	rest, err := evaluateOperands(operands.Cdr, environment)
	if err != nil {
		return nil, err
	}
	return append([]*ast.Value{head}, rest...), nil
}

// evaluateSequence evaluates each action in program order, returning
// the last action's value. An empty sequence is ill-formed.
func evaluateSequence(actions *ast.Value, environment *env.Environment) (*ast.Value, error) {
	if !ast.IsPair(actions) {
		return nil, &ierrors.SyntaxError{Expression: actions}
	}
	for {
		value, err := Evaluate(actions.Car, environment)
		if err != nil {
			return nil, err
		}
		if ast.IsEmptyList(actions.Cdr) {
			return value, nil
		}
		if !ast.IsPair(actions.Cdr) {
			return nil, &ierrors.SyntaxError{Expression: actions}
		}
		actions = actions.Cdr
	}
}

// Apply invokes procedure with the already-evaluated arguments.
func Apply(procedure *ast.Value, arguments []*ast.Value) (*ast.Value, error) {
	switch {
	case ast.IsPrimitive(procedure):
		value, err := procedure.Prim(arguments)
		if err != nil {
			return nil, &ierrors.PrimitiveError{Name: procedure.Name, Message: err.Error()}
		}
		return value, nil

	case ast.IsCompound(procedure):
		captured, _ := procedure.Env.(*env.Environment)
		activation, err := env.Extend(procedure.Params, arguments, captured)
		if err != nil {
			return nil, err
		}
		return evaluateSequence(procedure.Body, activation)

	default:
		return nil, &ierrors.NotAProcedure{Value: procedure}
	}
}
