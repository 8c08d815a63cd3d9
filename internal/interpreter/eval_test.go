package interpreter

import (
	"context"
	"testing"

	"github.com/funvibe/exprlang/internal/ast"
	"github.com/funvibe/exprlang/internal/checker"
	"github.com/funvibe/exprlang/internal/decls"
	"github.com/funvibe/exprlang/internal/functions"
	"github.com/funvibe/exprlang/internal/planner"
	"github.com/funvibe/exprlang/internal/types"
)

// preludeRegistry builds the small slice of builtin overloads these tests
// exercise, grounded the same way pkg/env's full prelude will be: plain
// strict Binary/Unary Impls keyed by the overload ids the checker already
// knows to record for +, *, ==, !, and >.
func preludeRegistry(t *testing.T) *functions.Registry {
	t.Helper()
	r := functions.NewRegistry()
	must := func(err error) {
		if err != nil {
			t.Fatal(err)
		}
	}
	must(r.Add(&functions.Impl{
		OverloadID: "add_int_int", ArgKinds: []types.Kind{types.IntKind, types.IntKind}, Strict: true,
		Binary: func(id int64, lhs, rhs types.Value) types.Value {
			return types.IntValue(lhs.(types.IntValue) + rhs.(types.IntValue))
		},
	}))
	must(r.Add(&functions.Impl{
		OverloadID: "gt_int_int", ArgKinds: []types.Kind{types.IntKind, types.IntKind}, Strict: true,
		Binary: func(id int64, lhs, rhs types.Value) types.Value {
			return types.BoolValue(lhs.(types.IntValue) > rhs.(types.IntValue))
		},
	}))
	must(r.Add(&functions.Impl{
		OverloadID: "mul_int_int", ArgKinds: []types.Kind{types.IntKind, types.IntKind}, Strict: true,
		Binary: func(id int64, lhs, rhs types.Value) types.Value {
			return types.IntValue(lhs.(types.IntValue) * rhs.(types.IntValue))
		},
	}))
	must(r.Add(&functions.Impl{
		OverloadID: "equals", ArgKinds: []types.Kind{functions.AnyKind, functions.AnyKind}, Strict: true,
		Binary: func(id int64, lhs, rhs types.Value) types.Value { return types.Equal(lhs, rhs) },
	}))
	must(r.Add(&functions.Impl{
		OverloadID: "logical_not", ArgKinds: []types.Kind{types.BoolKind}, Strict: true,
		Unary: func(id int64, v types.Value) types.Value { return types.BoolValue(!bool(v.(types.BoolValue))) },
	}))
	return r
}

func planExpr(t *testing.T, env *decls.Env, e *ast.Expr) *planner.Program {
	t.Helper()
	res := checker.Check(e, env)
	if !res.IsValid() {
		t.Fatalf("unexpected check failure: %v", res.Issues)
	}
	return planner.Plan(res.Checked)
}

func TestEvalAddition(t *testing.T) {
	env := decls.NewEnv("")
	if err := env.AddFunction(ast.OpAdd, &decls.Overload{ID: "add_int_int", ArgTypes: []types.Type{types.IntType, types.IntType}, ResultType: types.IntType, Strict: true}); err != nil {
		t.Fatal(err)
	}
	expr := ast.NewCall(1, nil, ast.OpAdd, ast.NewConst(2, types.IntValue(1)), ast.NewConst(3, types.IntValue(2)))
	prog := planExpr(t, env, expr)

	ev := NewEvaluator(preludeRegistry(t))
	res, err := ev.Eval(context.Background(), prog, MapActivation{})
	if err != nil {
		t.Fatalf("unexpected internal error: %v", err)
	}
	if got, ok := res.Value.(types.IntValue); !ok || got != 3 {
		t.Fatalf("expected int(3), got %v", res.Value)
	}
	if res.EvalID == "" {
		t.Fatalf("expected a non-empty EvalID")
	}
}

func TestEvalListExists(t *testing.T) {
	env := decls.NewEnv("")
	if err := env.AddFunction(ast.OpGreater, &decls.Overload{ID: "gt_int_int", ArgTypes: []types.Type{types.IntType, types.IntType}, ResultType: types.BoolType, Strict: true}); err != nil {
		t.Fatal(err)
	}
	if err := env.AddFunction(ast.OpMultiply, &decls.Overload{ID: "mul_int_int", ArgTypes: []types.Type{types.IntType, types.IntType}, ResultType: types.IntType, Strict: true}); err != nil {
		t.Fatal(err)
	}

	// [1,2,3].exists(x, x*x > 3) lowered by hand to its comprehension form
	// (macro expansion is out of scope; this is exactly the shape the
	// parser/macro-expander would hand the checker).
	list := ast.NewList(1, nil,
		ast.NewConst(2, types.IntValue(1)),
		ast.NewConst(3, types.IntValue(2)),
		ast.NewConst(4, types.IntValue(3)),
	)
	accuInit := ast.NewConst(5, types.BoolValue(false))
	loopCond := ast.NewCall(6, nil, ast.OpNot, ast.NewIdent(7, "found"))
	square := ast.NewCall(8, nil, ast.OpMultiply, ast.NewIdent(9, "x"), ast.NewIdent(10, "x"))
	test := ast.NewCall(11, nil, ast.OpGreater, square, ast.NewConst(12, types.IntValue(3)))
	step := ast.NewCall(13, nil, ast.OpLogicalOr, ast.NewIdent(14, "found"), test)
	result := ast.NewIdent(15, "found")
	comp := ast.NewComprehension(16, "x", list, "found", accuInit, loopCond, step, result)

	prog := planExpr(t, env, comp)

	ev := NewEvaluator(preludeRegistry(t))
	res, err := ev.Eval(context.Background(), prog, MapActivation{})
	if err != nil {
		t.Fatalf("unexpected internal error: %v", err)
	}
	if got, ok := res.Value.(types.BoolValue); !ok || !bool(got) {
		t.Fatalf("expected bool(true), got %v", res.Value)
	}
}

func TestEvalSelectMissingMapKeyIsError(t *testing.T) {
	env := decls.NewEnv("")
	if err := env.AddVariable(&decls.Variable{Name: "x", Type: types.MapType{Key: types.StringType, Value: types.IntType}}); err != nil {
		t.Fatal(err)
	}
	expr := ast.NewSelect(1, ast.NewIdent(2, "x"), "z", false)
	prog := planExpr(t, env, expr)

	act := MapActivation{"x": types.NewMap()}
	ev := NewEvaluator(preludeRegistry(t))
	res, err := ev.Eval(context.Background(), prog, act)
	if err != nil {
		t.Fatalf("unexpected internal error: %v", err)
	}
	errVal, ok := res.Value.(*types.ErrorValue)
	if !ok {
		t.Fatalf("expected an error value, got %v", res.Value)
	}
	if !contains(errVal.Message, "z") {
		t.Fatalf("expected the error message to mention %q, got %q", "z", errVal.Message)
	}
}

func contains(s, substr string) bool {
	for i := 0; i+len(substr) <= len(s); i++ {
		if s[i:i+len(substr)] == substr {
			return true
		}
	}
	return false
}

// partialActivation marks a fixed set of names as unknown attributes
// rather than genuinely absent, for scenario 8's partial-evaluation test.
type partialActivation struct {
	unknown map[string]bool
}

func (p partialActivation) Resolve(name string) (types.Value, bool) { return nil, false }
func (p partialActivation) IsUnknownAttribute(name string) bool     { return p.unknown[name] }

func TestEvalPartialLogicalAnd(t *testing.T) {
	env := decls.NewEnv("")
	if err := env.AddVariable(&decls.Variable{Name: "x", Type: types.BoolType}); err != nil {
		t.Fatal(err)
	}
	ev := NewEvaluator(preludeRegistry(t))
	act := partialActivation{unknown: map[string]bool{"x": true}}

	// x && false => bool(false)
	falseExpr := ast.NewCall(1, nil, ast.OpLogicalAnd, ast.NewIdent(2, "x"), ast.NewConst(3, types.BoolValue(false)))
	prog := planExpr(t, env, falseExpr)
	res, err := ev.Eval(context.Background(), prog, act)
	if err != nil {
		t.Fatalf("unexpected internal error: %v", err)
	}
	if got, ok := res.Value.(types.BoolValue); !ok || bool(got) {
		t.Fatalf("expected bool(false) for `x && false`, got %v", res.Value)
	}

	// x && true => unknown({x})
	trueExpr := ast.NewCall(4, nil, ast.OpLogicalAnd, ast.NewIdent(5, "x"), ast.NewConst(6, types.BoolValue(true)))
	prog2 := planExpr(t, env, trueExpr)
	res2, err := ev.Eval(context.Background(), prog2, act)
	if err != nil {
		t.Fatalf("unexpected internal error: %v", err)
	}
	u, ok := res2.Value.(*types.UnknownValue)
	if !ok {
		t.Fatalf("expected an unknown value for `x && true`, got %v", res2.Value)
	}
	if !u.Patterns.Contains("x") {
		t.Fatalf("expected the unknown set to contain %q, got %s", "x", u.Patterns.String())
	}
}

func TestEvalConditionalPropagatesErrorCondition(t *testing.T) {
	env := decls.NewEnv("")
	if err := env.AddVariable(&decls.Variable{Name: "missing", Type: types.DynType}); err != nil {
		t.Fatal(err)
	}
	// "missing" checks fine (declared dyn) but is absent from the
	// activation at evaluation time, so Resolve yields a plain error value
	// for the condition, which ?: must return untouched.
	expr := ast.NewCall(1, nil, ast.OpConditional,
		ast.NewIdent(2, "missing"),
		ast.NewConst(3, types.IntValue(1)),
		ast.NewConst(4, types.IntValue(2)),
	)
	prog := planExpr(t, env, expr)

	ev := NewEvaluator(preludeRegistry(t))
	res, err := ev.Eval(context.Background(), prog, MapActivation{})
	if err != nil {
		t.Fatalf("unexpected internal error: %v", err)
	}
	if _, ok := res.Value.(*types.ErrorValue); !ok {
		t.Fatalf("expected the missing condition's error to propagate untouched, got %v", res.Value)
	}
}

func TestEvalComprehensionIterationBudget(t *testing.T) {
	env := decls.NewEnv("")
	if err := env.AddFunction(ast.OpGreater, &decls.Overload{ID: "gt_int_int", ArgTypes: []types.Type{types.IntType, types.IntType}, ResultType: types.BoolType, Strict: true}); err != nil {
		t.Fatal(err)
	}

	list := ast.NewList(1, nil,
		ast.NewConst(2, types.IntValue(1)),
		ast.NewConst(3, types.IntValue(2)),
		ast.NewConst(4, types.IntValue(3)),
	)
	accuInit := ast.NewConst(5, types.IntValue(0))
	loopCond := ast.NewConst(6, types.BoolValue(true))
	step := ast.NewIdent(7, "found")
	result := ast.NewIdent(8, "found")
	comp := ast.NewComprehension(9, "x", list, "found", accuInit, loopCond, step, result)
	prog := planExpr(t, env, comp)

	ev := NewEvaluator(preludeRegistry(t), WithIterationBudget(2))
	res, err := ev.Eval(context.Background(), prog, MapActivation{})
	if err != nil {
		t.Fatalf("unexpected internal error: %v", err)
	}
	if _, ok := res.Value.(*types.ErrorValue); !ok {
		t.Fatalf("expected an iteration-budget error, got %v", res.Value)
	}
}
