package env

import (
	"context"
	"testing"

	"github.com/funvibe/exprlang/internal/ast"
	"github.com/funvibe/exprlang/internal/decls"
	"github.com/funvibe/exprlang/internal/interpreter"
	"github.com/funvibe/exprlang/internal/types"
)

// checkPlanEval runs the full Check/Plan/Eval pipeline the way a host
// actually would, rather than calling internal packages directly.
func checkPlanEval(t *testing.T, e *Environment, expr *ast.Expr, act interpreter.Activation) types.Value {
	t.Helper()
	result := e.Check(expr)
	if !result.IsValid() {
		t.Fatalf("unexpected check failure: %v", result.Issues)
	}
	prog := e.Plan(result.Checked)
	res, err := e.NewEvaluator().Eval(context.Background(), prog.Program, act)
	if err != nil {
		t.Fatalf("unexpected internal error: %v", err)
	}
	return res.Value
}

// TestCelBindEvaluatesInitOnceAndExposesItToResult exercises the
// cel.bind lazy-local path end to end: a comprehension node whose
// MacroCall names it "bind" lowers to planBind instead of a loop
// (internal/planner/comprehension.go), and AccuVar becomes a name
// Result can reference via ordinary CheckInit-backed resolution.
func TestCelBindEvaluatesInitOnceAndExposesItToResult(t *testing.T) {
	e, err := NewWithPrelude("")
	if err != nil {
		t.Fatal(err)
	}

	result := ast.NewCall(4, nil, ast.OpAdd, ast.NewIdent(2, "y"), ast.NewIdent(3, "y"))
	bind := ast.NewComprehension(1, "", nil, "y", ast.NewConst(5, types.IntValue(21)), nil, nil, result)
	bind.MacroCall = &ast.MacroCall{Name: "bind", ID: 1}

	got := checkPlanEval(t, e, bind, interpreter.MapActivation{})
	iv, ok := got.(types.IntValue)
	if !ok || iv != 42 {
		t.Fatalf("cel.bind(y, 21, y + y) = %v, want int(42)", got)
	}
}

// TestLogicalOrShortCircuitsOnConcreteTrue covers OpOrCombine, the || side
// of the CondJump/AndCombine/OrCombine trio (&& is already covered
// directly in internal/interpreter's tests): `true || x` must yield
// true without needing x at all, even though x has no binding in the
// activation.
func TestLogicalOrShortCircuitsOnConcreteTrue(t *testing.T) {
	e, err := NewWithPrelude("")
	if err != nil {
		t.Fatal(err)
	}
	if err := e.Decls.AddVariable(&decls.Variable{Name: "missing", Type: types.BoolType}); err != nil {
		t.Fatal(err)
	}

	expr := ast.NewCall(1, nil, ast.OpLogicalOr, ast.NewConst(2, types.BoolValue(true)), ast.NewIdent(3, "missing"))
	got := checkPlanEval(t, e, expr, interpreter.MapActivation{})
	if b, ok := got.(types.BoolValue); !ok || !bool(b) {
		t.Fatalf("true || missing = %v, want bool(true) without needing missing", got)
	}
}

// TestMakeMapSplicesAbsentOptionalsAndRejectsDuplicateKeys covers both
// optional-entry splicing and the duplicate-key error path for map
// literals end to end (§4.3).
func TestMakeMapSplicesAbsentOptionalsAndRejectsDuplicateKeys(t *testing.T) {
	e, err := NewWithPrelude("")
	if err != nil {
		t.Fatal(err)
	}

	present := &ast.Entry{ID: 2, Key: ast.NewConst(3, types.StringValue("a")), Value: ast.NewConst(4, types.IntValue(1))}
	absentOptional := &ast.Entry{ID: 5, Key: ast.NewConst(6, types.StringValue("b")), Value: ast.NewConst(7, types.NullValue{}), Optional: true}
	mapExpr := ast.NewMap(1, present, absentOptional)

	got := checkPlanEval(t, e, mapExpr, interpreter.MapActivation{})
	m, ok := got.(*types.MapValue)
	if !ok {
		t.Fatalf("expected a map value, got %v", got)
	}
	if _, found := m.Get(types.StringValue("b")); found {
		t.Fatalf("absent optional entry %q should have been spliced out of %v", "b", m)
	}
	if v, found := m.Get(types.StringValue("a")); !found || v != types.IntValue(1) {
		t.Fatalf("present entry %q missing or wrong from %v", "a", m)
	}

	dupA := &ast.Entry{ID: 9, Key: ast.NewConst(10, types.StringValue("a")), Value: ast.NewConst(11, types.IntValue(1))}
	dupB := &ast.Entry{ID: 12, Key: ast.NewConst(13, types.StringValue("a")), Value: ast.NewConst(14, types.IntValue(2))}
	dupExpr := ast.NewMap(8, dupA, dupB)

	gotDup := checkPlanEval(t, e, dupExpr, interpreter.MapActivation{})
	errVal, ok := gotDup.(*types.ErrorValue)
	if !ok {
		t.Fatalf("expected a duplicate-key error value, got %v", gotDup)
	}
	if !containsSubstring(errVal.Message, "duplicate") {
		t.Fatalf("expected the error to mention duplicate keys, got %q", errVal.Message)
	}
}

func containsSubstring(s, substr string) bool {
	for i := 0; i+len(substr) <= len(s); i++ {
		if s[i:i+len(substr)] == substr {
			return true
		}
	}
	return false
}
