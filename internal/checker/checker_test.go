package checker

import (
	"testing"

	"github.com/funvibe/exprlang/internal/ast"
	"github.com/funvibe/exprlang/internal/decls"
	"github.com/funvibe/exprlang/internal/types"
)

func arithEnv() *decls.Env {
	e := decls.NewEnv("")
	must := func(err error) {
		if err != nil {
			panic(err)
		}
	}
	must(e.AddFunction(ast.OpAdd, &decls.Overload{ID: "add_int_int", ArgTypes: []types.Type{types.IntType, types.IntType}, ResultType: types.IntType, Strict: true}))
	must(e.AddFunction(ast.OpMultiply, &decls.Overload{ID: "mul_int_int", ArgTypes: []types.Type{types.IntType, types.IntType}, ResultType: types.IntType, Strict: true}))
	must(e.AddFunction(ast.OpGreater, &decls.Overload{ID: "gt_int_int", ArgTypes: []types.Type{types.IntType, types.IntType}, ResultType: types.BoolType, Strict: true}))
	return e
}

func TestSimpleArithmeticResolvesSingleOverload(t *testing.T) {
	env := arithEnv()
	expr := ast.NewCall(1, nil, ast.OpAdd, ast.NewConst(2, types.IntValue(1)), ast.NewConst(3, types.IntValue(2)))

	res := Check(expr, env)
	if !res.IsValid() {
		t.Fatalf("expected no issues, got %v", res.Issues)
	}
	if got := res.Checked.TypeOf(1); got.String() != "int" {
		t.Fatalf("result type = %s, want int", got)
	}
	ref, ok := res.Checked.Reference(1)
	if !ok || len(ref.OverloadIDs) != 1 || ref.OverloadIDs[0] != "add_int_int" {
		t.Fatalf("reference = %+v, want single overload add_int_int", ref)
	}
}

func TestUndeclaredReferenceIsError(t *testing.T) {
	env := decls.NewEnv("")
	expr := ast.NewIdent(1, "missing")

	res := Check(expr, env)
	if res.IsValid() {
		t.Fatalf("expected an error issue for an undeclared identifier")
	}
	if res.Checked.TypeOf(1).String() != "dyn" {
		t.Fatalf("undeclared identifier should fall back to dyn, got %s", res.Checked.TypeOf(1))
	}
}

func TestUndeclaredReferenceIssueCarriesChainPath(t *testing.T) {
	env := decls.NewEnv("")
	expr := ast.NewSelect(3, ast.NewSelect(2, ast.NewIdent(1, "request"), "auth", false), "claims", false)

	res := Check(expr, env)
	if res.IsValid() {
		t.Fatalf("expected an error issue for an undeclared chain root")
	}
	if res.Issues[0].Path != "request.auth.claims" {
		t.Fatalf("issue path = %q, want request.auth.claims", res.Issues[0].Path)
	}
}

func TestFieldSelectIssueCarriesChainPath(t *testing.T) {
	env := decls.NewEnv("")
	if err := env.AddVariable(&decls.Variable{Name: "req", Type: types.IntType}); err != nil {
		t.Fatal(err)
	}
	expr := ast.NewSelect(2, ast.NewIdent(1, "req"), "nested", false)

	res := Check(expr, env)
	if res.IsValid() {
		t.Fatalf("expected an error issue selecting a field off an int")
	}
	if res.Issues[0].Path != "req.nested" {
		t.Fatalf("issue path = %q, want req.nested", res.Issues[0].Path)
	}
}

func TestQualifiedVariableWinsOverFieldSelectChain(t *testing.T) {
	env := decls.NewEnv("")
	if err := env.AddVariable(&decls.Variable{Name: "x", Type: types.IntType}); err != nil {
		t.Fatal(err)
	}
	if err := env.AddVariable(&decls.Variable{Name: "x.y", Type: types.MapType{Key: types.StringType, Value: types.IntType}}); err != nil {
		t.Fatal(err)
	}

	// x.y.z: "x.y" (longer candidate) must win over the bare "x" variable,
	// with ".z" applied as a map-value select on top of it (§8 scenario).
	ident := ast.NewIdent(1, "x")
	selY := ast.NewSelect(2, ident, "y", false)
	selZ := ast.NewSelect(3, selY, "z", false)

	res := Check(selZ, env)
	if !res.IsValid() {
		t.Fatalf("expected no issues, got %v", res.Issues)
	}
	ref, ok := res.Checked.Reference(2)
	if !ok || ref.Name != "x.y" {
		t.Fatalf("expected the x.y select node to carry the resolved reference, got %+v (ok=%v)", ref, ok)
	}
	if got := res.Checked.TypeOf(3); got.String() != "int" {
		t.Fatalf("x.y.z type = %s, want int", got)
	}
}

func TestComprehensionExistsOverListOfInts(t *testing.T) {
	env := arithEnv()

	list := ast.NewList(1, nil,
		ast.NewConst(2, types.IntValue(1)),
		ast.NewConst(3, types.IntValue(2)),
		ast.NewConst(4, types.IntValue(3)),
	)
	accuInit := ast.NewConst(5, types.BoolValue(false))
	loopCond := ast.NewCall(6, nil, ast.OpNot, ast.NewIdent(7, "found"))
	square := ast.NewCall(8, nil, ast.OpMultiply, ast.NewIdent(9, "x"), ast.NewIdent(10, "x"))
	test := ast.NewCall(11, nil, ast.OpGreater, square, ast.NewConst(12, types.IntValue(10)))
	step := ast.NewCall(13, nil, ast.OpLogicalOr, ast.NewIdent(14, "found"), test)
	result := ast.NewIdent(15, "found")

	comp := ast.NewComprehension(16, "x", list, "found", accuInit, loopCond, step, result)

	res := Check(comp, env)
	if !res.IsValid() {
		t.Fatalf("expected no issues, got %v", res.Issues)
	}
	if got := res.Checked.TypeOf(16); got.String() != "bool" {
		t.Fatalf("comprehension result type = %s, want bool", got)
	}
}

func TestConditionalWithMismatchedBranchesJoinsToDyn(t *testing.T) {
	env := decls.NewEnv("")
	expr := ast.NewCall(1, nil, ast.OpConditional,
		ast.NewConst(2, types.BoolValue(true)),
		ast.NewConst(3, types.IntValue(1)),
		ast.NewConst(4, types.StringValue("x")),
	)

	res := Check(expr, env)
	if !res.IsValid() {
		t.Fatalf("expected no issues, got %v", res.Issues)
	}
	if got := res.Checked.TypeOf(1); got.String() != "dyn" {
		t.Fatalf("mismatched conditional branches should join to dyn, got %s", got)
	}
}
