// Package env implements the lexical environment model: a linked
// chain of frames, each a symbol-to-value-cell mapping, supporting
// lookup, assignment, definition, and extension.
package env

import (
	"lispwalk/pkg/ast"
	"lispwalk/pkg/ierrors"
)

// Frame is one level of bindings. Binding order is irrelevant to
// semantics; a Go map already gives in-place mutation for set! to
// observe through any alias.
type Frame map[string]*ast.Value

// Environment is a non-empty chain of Frames, innermost first.
// A nil *Environment represents the empty-environment terminator:
// lookups and assigns against it always fail.
type Environment struct {
	frame Frame
	outer *Environment
}

// NewGlobal creates a fresh single-frame environment, used as the
// base for make-global-environment.
func NewGlobal() *Environment {
	return &Environment{frame: Frame{}}
}

// Extend creates a fresh frame binding each parameter symbol to the
// corresponding argument value and prepends it to base. parameters is
// a (possibly improper) list of symbols as produced by a lambda form;
// an improper tail binds the remaining arguments as a single
// rest-list, matching the variadic-lambda shape
// `(lambda (a . rest) ...)`.
func Extend(parameters *ast.Value, arguments []*ast.Value, base *Environment) (*Environment, error) {
	frame := Frame{}
	names := make([]string, 0)

	p := parameters
	i := 0
	for ast.IsPair(p) {
		names = append(names, p.Car.Str)
		if i >= len(arguments) {
			return nil, &ierrors.ArityMismatch{
				Parameters: collectNames(parameters),
				Arguments:  len(arguments),
				Direction:  ierrors.TooFew,
			}
		}
		frame[p.Car.Str] = arguments[i]
		i++
		p = p.Cdr
	}

	switch {
	case ast.IsSymbol(p):
		// Improper tail: `(lambda (a . rest) ...)` binds the rest as a
		// single list, so no further arity check applies.
		frame[p.Str] = ast.FromSlice(arguments[i:])
	case ast.IsEmptyList(p):
		if i != len(arguments) {
			return nil, &ierrors.ArityMismatch{
				Parameters: names,
				Arguments:  len(arguments),
				Direction:  ierrors.TooMany,
			}
		}
	default:
		return nil, &ierrors.SyntaxError{Expression: parameters}
	}

	return &Environment{frame: frame, outer: base}, nil
}

func collectNames(parameters *ast.Value) []string {
	var names []string
	for ast.IsPair(parameters) {
		names = append(names, parameters.Car.Str)
		parameters = parameters.Cdr
	}
	return names
}

// Lookup walks frames head-to-tail, returning the bound value for the
// first frame containing symbol. Fails with unbound-variable when no
// frame in the chain has it.
func Lookup(symbol string, e *Environment) (*ast.Value, error) {
	for f := e; f != nil; f = f.outer {
		if v, ok := f.frame[symbol]; ok {
			return v, nil
		}
	}
	return nil, &ierrors.UnboundVariable{Symbol: symbol}
}

// Assign walks frames head-to-tail and mutates the first frame
// containing symbol to hold value. Never creates a new binding; fails
// with unbound-variable when symbol is absent from every frame. This
// is the sole mechanism for mutating a variable captured by an
// enclosing closure.
func Assign(symbol string, value *ast.Value, e *Environment) error {
	for f := e; f != nil; f = f.outer {
		if _, ok := f.frame[symbol]; ok {
			f.frame[symbol] = value
			return nil
		}
	}
	return &ierrors.UnboundVariable{Symbol: symbol}
}

// Define acts only on the head frame: overwrite if symbol is already
// bound there, otherwise add a new binding. Never traverses enclosing
// frames; this is what makes a nested define introduce a binding
// local to the current activation rather than mutating an outer one.
func Define(symbol string, value *ast.Value, e *Environment) {
	e.frame[symbol] = value
}
