// Package syntax classifies a Value viewed as source code and
// projects the sub-expressions out of each recognized form. Since the
// language is homoiconic, classification is just a tag/leading-symbol
// inspection of the same Value tree the evaluator already walks; this
// package makes that inspection and the accompanying accessors
// nameable in one place instead of inlined at each call site (contrast
// the teacher's pkg/eval/eval.go, which checks ast.SymEqStr(op, "if")
// etc. directly inside Eval).
package syntax

import "lispwalk/pkg/ast"

const (
	quoteTag  = "quote"
	setTag    = "set!"
	defineTag = "define"
	ifTag     = "if"
	lambdaTag = "lambda"
	beginTag  = "begin"
)

// IsSelfEvaluating is true for Numbers, Strings, Booleans, and
// Characters, the atoms Evaluate returns unchanged.
func IsSelfEvaluating(v *ast.Value) bool {
	return ast.IsNumber(v) || ast.IsString(v) || ast.IsBoolean(v) || ast.IsCharacter(v)
}

// IsVariable is true for a Symbol reference.
func IsVariable(v *ast.Value) bool {
	return ast.IsSymbol(v)
}

func taggedPair(v *ast.Value, tag string) bool {
	return ast.IsPair(v) && ast.SymbolIs(v.Car, tag)
}

// IsQuoted recognizes `(quote datum)`.
func IsQuoted(v *ast.Value) bool { return taggedPair(v, quoteTag) }

// QuotedDatum returns the unevaluated datum of a quote form.
func QuotedDatum(v *ast.Value) *ast.Value { return v.Cdr.Car }

// IsAssignment recognizes `(set! variable value-expr)`.
func IsAssignment(v *ast.Value) bool { return taggedPair(v, setTag) }

func AssignmentVariable(v *ast.Value) *ast.Value { return v.Cdr.Car }
func AssignmentValue(v *ast.Value) *ast.Value    { return v.Cdr.Cdr.Car }

// IsDefinition recognizes both define shapes:
//   (define name value-expression)
//   (define (name . formals) body...)
func IsDefinition(v *ast.Value) bool { return taggedPair(v, defineTag) }

// DefinitionVariable extracts the name being defined, handling both
// shapes.
func DefinitionVariable(v *ast.Value) *ast.Value {
	target := v.Cdr.Car
	if ast.IsPair(target) {
		return target.Car
	}
	return target
}

// DefinitionValue extracts the expression whose evaluation produces
// the new binding's value. For the sugared procedure-definition shape
// `(define (name . formals) body...)` it synthesizes the equivalent
// `(lambda formals body...)` form.
func DefinitionValue(v *ast.Value) *ast.Value {
	target := v.Cdr.Car
	if ast.IsPair(target) {
		formals := target.Cdr
		body := v.Cdr.Cdr
		return ast.Cons(ast.NewSymbol(lambdaTag), ast.Cons(formals, body))
	}
	return v.Cdr.Cdr.Car
}

// IsIf recognizes `(if predicate consequent alternative?)`.
func IsIf(v *ast.Value) bool { return taggedPair(v, ifTag) }

func IfPredicate(v *ast.Value) *ast.Value  { return v.Cdr.Car }
func IfConsequent(v *ast.Value) *ast.Value { return v.Cdr.Cdr.Car }

// IfAlternative returns the alternative expression, or Boolean False
// if none was written: a false predicate with no alternative yields
// Boolean False.
func IfAlternative(v *ast.Value) *ast.Value {
	rest := v.Cdr.Cdr.Cdr
	if ast.IsPair(rest) {
		return rest.Car
	}
	return ast.False
}

// IsLambda recognizes `(lambda formals body...)`.
func IsLambda(v *ast.Value) bool { return taggedPair(v, lambdaTag) }

func LambdaParameters(v *ast.Value) *ast.Value { return v.Cdr.Car }
func LambdaBody(v *ast.Value) *ast.Value       { return v.Cdr.Cdr }

// IsBegin recognizes `(begin expression...)`.
func IsBegin(v *ast.Value) bool { return taggedPair(v, beginTag) }

func BeginActions(v *ast.Value) *ast.Value { return v.Cdr }

// IsApplication is the catch-all for any pair-form not matching one of
// the special forms above: `(operator operand...)`.
func IsApplication(v *ast.Value) bool { return ast.IsPair(v) }

func Operator(v *ast.Value) *ast.Value { return v.Car }
func Operands(v *ast.Value) *ast.Value { return v.Cdr }
