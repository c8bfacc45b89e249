// Package primitives supplies the primitive table: the host-provided
// operations bound into a fresh frame by SetupEnvironment, plus
// MakeGlobalEnvironment which additionally binds `true`/`false`.
// Grounded on the teacher's pkg/eval/primitives.go (one Go function
// per primitive, small arg-count helpers, one assembly function
// wiring them all into an environment) and, for the primitive surface
// beyond the required core names, on original_source/src/primitives.rs.
package primitives

import (
	"fmt"

	"lispwalk/pkg/ast"
	"lispwalk/pkg/env"
)

// Entry is one (name, host-operation) pair in the ordered primitive
// table.
type Entry struct {
	Name string
	Fn   ast.PrimFn
}

// Table is the standard primitive set: car, cdr, cons, null?, +, -,
// *, /, =, <, >, eq? plus supplemented structural and predicate
// primitives.
var Table = []Entry{
	{"cons", primCons},
	{"car", primCar},
	{"cdr", primCdr},
	{"set-car!", primSetCar},
	{"set-cdr!", primSetCdr},
	{"null?", primNullP},
	{"pair?", primPairP},
	{"list?", primListP},
	{"number?", primNumberP},
	{"symbol?", primSymbolP},
	{"string?", primStringP},
	{"boolean?", primBooleanP},
	{"procedure?", primProcedureP},
	{"char?", primCharP},
	{"char->integer", primCharToInteger},
	{"integer->char", primIntegerToChar},
	{"not", primNot},
	{"list", primList},
	{"length", primLength},
	{"append", primAppend},
	{"reverse", primReverse},
	{"eq?", primEqP},
	{"+", primAdd},
	{"-", primSub},
	{"*", primMul},
	{"/", primDiv},
	{"=", primNumEq},
	{"<", primLt},
	{">", primGt},
}

// SetupEnvironment wraps each entry of table in a Primitive Value and
// binds it to its name in a single fresh frame prepended to base.
func SetupEnvironment(table []Entry, base *env.Environment) *env.Environment {
	extended, err := env.Extend(ast.Nil, nil, base)
	if err != nil {
		// Extend(Nil, nil, base) never mismatches arity: zero
		// parameters, zero arguments.
		panic(err)
	}
	for _, entry := range table {
		env.Define(entry.Name, ast.NewPrimitive(entry.Name, entry.Fn), extended)
	}
	return extended
}

// MakeGlobalEnvironment returns an environment seeded with the
// standard primitive table and the bindings true -> Boolean True,
// false -> Boolean False.
func MakeGlobalEnvironment() *env.Environment {
	global := SetupEnvironment(Table, env.NewGlobal())
	env.Define("true", ast.True, global)
	env.Define("false", ast.False, global)
	return global
}

func arityError(name string, want int, got int) error {
	return fmt.Errorf("%s: want %d argument(s), got %d", name, want, got)
}

func primCons(args []*ast.Value) (*ast.Value, error) {
	if len(args) != 2 {
		return nil, arityError("cons", 2, len(args))
	}
	return ast.NewPair(args[0], args[1]), nil
}

func primCar(args []*ast.Value) (*ast.Value, error) {
	if len(args) != 1 {
		return nil, arityError("car", 1, len(args))
	}
	if !ast.IsPair(args[0]) {
		return nil, fmt.Errorf("car: not a pair: %s", args[0])
	}
	return args[0].Car, nil
}

func primCdr(args []*ast.Value) (*ast.Value, error) {
	if len(args) != 1 {
		return nil, arityError("cdr", 1, len(args))
	}
	if !ast.IsPair(args[0]) {
		return nil, fmt.Errorf("cdr: not a pair: %s", args[0])
	}
	return args[0].Cdr, nil
}

func primSetCar(args []*ast.Value) (*ast.Value, error) {
	if len(args) != 2 {
		return nil, arityError("set-car!", 2, len(args))
	}
	if !ast.IsPair(args[0]) {
		return nil, fmt.Errorf("set-car!: not a pair: %s", args[0])
	}
	args[0].Car = args[1]
	return ast.Ok, nil
}

func primSetCdr(args []*ast.Value) (*ast.Value, error) {
	if len(args) != 2 {
		return nil, arityError("set-cdr!", 2, len(args))
	}
	if !ast.IsPair(args[0]) {
		return nil, fmt.Errorf("set-cdr!: not a pair: %s", args[0])
	}
	args[0].Cdr = args[1]
	return ast.Ok, nil
}

func unaryPredicate(name string, pred func(*ast.Value) bool) ast.PrimFn {
	return func(args []*ast.Value) (*ast.Value, error) {
		if len(args) != 1 {
			return nil, arityError(name, 1, len(args))
		}
		return ast.NewBoolean(pred(args[0])), nil
	}
}

var (
	primNullP      = unaryPredicate("null?", ast.IsEmptyList)
	primPairP      = unaryPredicate("pair?", ast.IsPair)
	primNumberP    = unaryPredicate("number?", ast.IsNumber)
	primSymbolP    = unaryPredicate("symbol?", ast.IsSymbol)
	primStringP    = unaryPredicate("string?", ast.IsString)
	primBooleanP   = unaryPredicate("boolean?", ast.IsBoolean)
	primProcedureP = unaryPredicate("procedure?", ast.IsProcedure)
	primCharP      = unaryPredicate("char?", ast.IsCharacter)
)

func primListP(args []*ast.Value) (*ast.Value, error) {
	if len(args) != 1 {
		return nil, arityError("list?", 1, len(args))
	}
	return ast.NewBoolean(ast.ListLength(args[0]) >= 0), nil
}

func primCharToInteger(args []*ast.Value) (*ast.Value, error) {
	if len(args) != 1 || !ast.IsCharacter(args[0]) {
		return nil, fmt.Errorf("char->integer: want 1 character argument")
	}
	return ast.NewNumber(int64(args[0].Char)), nil
}

func primIntegerToChar(args []*ast.Value) (*ast.Value, error) {
	if len(args) != 1 || !ast.IsNumber(args[0]) {
		return nil, fmt.Errorf("integer->char: want 1 number argument")
	}
	return ast.NewCharacter(rune(args[0].Num)), nil
}

func primNot(args []*ast.Value) (*ast.Value, error) {
	if len(args) != 1 {
		return nil, arityError("not", 1, len(args))
	}
	return ast.NewBoolean(!ast.IsTruthy(args[0])), nil
}

func primList(args []*ast.Value) (*ast.Value, error) {
	return ast.FromSlice(args), nil
}

func primLength(args []*ast.Value) (*ast.Value, error) {
	if len(args) != 1 {
		return nil, arityError("length", 1, len(args))
	}
	n := ast.ListLength(args[0])
	if n < 0 {
		return nil, fmt.Errorf("length: not a proper list: %s", args[0])
	}
	return ast.NewNumber(int64(n)), nil
}

func primAppend(args []*ast.Value) (*ast.Value, error) {
	if len(args) == 0 {
		return ast.Nil, nil
	}
	var items []*ast.Value
	for _, list := range args[:len(args)-1] {
		if ast.ListLength(list) < 0 {
			return nil, fmt.Errorf("append: not a proper list: %s", list)
		}
		items = append(items, ast.ToSlice(list)...)
	}
	result := args[len(args)-1]
	for i := len(items) - 1; i >= 0; i-- {
		result = ast.NewPair(items[i], result)
	}
	return result, nil
}

func primReverse(args []*ast.Value) (*ast.Value, error) {
	if len(args) != 1 {
		return nil, arityError("reverse", 1, len(args))
	}
	items := ast.ToSlice(args[0])
	result := ast.Nil
	for _, item := range items {
		result = ast.NewPair(item, result)
	}
	return result, nil
}

// primEqP implements eq?: identity for Pair/Compound/Primitive (same
// underlying Go pointer), structural equality for Number/String/
// Character, name equality for Symbol, and identity for the shared
// Boolean/EmptyList singletons. Equality on non-Pair atoms is
// structural; pair equality is identity.
func primEqP(args []*ast.Value) (*ast.Value, error) {
	if len(args) != 2 {
		return nil, arityError("eq?", 2, len(args))
	}
	a, b := args[0], args[1]
	if a == b {
		return ast.True, nil
	}
	if a == nil || b == nil || a.Tag != b.Tag {
		return ast.False, nil
	}
	switch a.Tag {
	case ast.Number:
		return ast.NewBoolean(a.Num == b.Num), nil
	case ast.String:
		return ast.NewBoolean(a.Str == b.Str), nil
	case ast.Symbol:
		return ast.NewBoolean(ast.SymbolEq(a, b)), nil
	case ast.Character:
		return ast.NewBoolean(a.Char == b.Char), nil
	default:
		return ast.False, nil
	}
}

func numericArgs(name string, args []*ast.Value) ([]int64, error) {
	nums := make([]int64, len(args))
	for i, v := range args {
		if !ast.IsNumber(v) {
			return nil, fmt.Errorf("%s: not a number: %s", name, v)
		}
		nums[i] = v.Num
	}
	return nums, nil
}

func primAdd(args []*ast.Value) (*ast.Value, error) {
	nums, err := numericArgs("+", args)
	if err != nil {
		return nil, err
	}
	var sum int64
	for _, n := range nums {
		sum += n
	}
	return ast.NewNumber(sum), nil
}

func primMul(args []*ast.Value) (*ast.Value, error) {
	nums, err := numericArgs("*", args)
	if err != nil {
		return nil, err
	}
	product := int64(1)
	for _, n := range nums {
		product *= n
	}
	return ast.NewNumber(product), nil
}

func primSub(args []*ast.Value) (*ast.Value, error) {
	nums, err := numericArgs("-", args)
	if err != nil {
		return nil, err
	}
	if len(nums) == 0 {
		return nil, fmt.Errorf("-: want at least 1 argument, got 0")
	}
	if len(nums) == 1 {
		return ast.NewNumber(-nums[0]), nil
	}
	result := nums[0]
	for _, n := range nums[1:] {
		result -= n
	}
	return ast.NewNumber(result), nil
}

func primDiv(args []*ast.Value) (*ast.Value, error) {
	nums, err := numericArgs("/", args)
	if err != nil {
		return nil, err
	}
	if len(nums) == 0 {
		return nil, fmt.Errorf("/: want at least 1 argument, got 0")
	}
	if len(nums) == 1 {
		if nums[0] == 0 {
			return nil, fmt.Errorf("/: division by zero")
		}
		return ast.NewNumber(1 / nums[0]), nil
	}
	result := nums[0]
	for _, n := range nums[1:] {
		if n == 0 {
			return nil, fmt.Errorf("/: division by zero")
		}
		result /= n
	}
	return ast.NewNumber(result), nil
}

func primNumEq(args []*ast.Value) (*ast.Value, error) {
	nums, err := numericArgs("=", args)
	if err != nil {
		return nil, err
	}
	for i := 1; i < len(nums); i++ {
		if nums[i] != nums[0] {
			return ast.False, nil
		}
	}
	return ast.True, nil
}

func primLt(args []*ast.Value) (*ast.Value, error) {
	nums, err := numericArgs("<", args)
	if err != nil {
		return nil, err
	}
	for i := 1; i < len(nums); i++ {
		if !(nums[i-1] < nums[i]) {
			return ast.False, nil
		}
	}
	return ast.True, nil
}

func primGt(args []*ast.Value) (*ast.Value, error) {
	nums, err := numericArgs(">", args)
	if err != nil {
		return nil, err
	}
	for i := 1; i < len(nums); i++ {
		if !(nums[i-1] > nums[i]) {
			return ast.False, nil
		}
	}
	return ast.True, nil
}
