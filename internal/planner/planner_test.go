package planner

import (
	"testing"

	"github.com/funvibe/exprlang/internal/ast"
	"github.com/funvibe/exprlang/internal/checker"
	"github.com/funvibe/exprlang/internal/decls"
	"github.com/funvibe/exprlang/internal/types"
)

func TestPlanLogicalAndEmitsSingleCondJump(t *testing.T) {
	expr := ast.NewCall(1, nil, ast.OpLogicalAnd,
		ast.NewConst(2, types.BoolValue(true)),
		ast.NewConst(3, types.BoolValue(false)),
	)
	res := checker.Check(expr, decls.NewEnv(""))
	prog := Plan(res.Checked)

	var jumps, combines int
	for _, s := range prog.Steps {
		if s.Op == OpCondJump {
			jumps++
			if s.JumpWhenTrue {
				t.Errorf("&& should jump on false, not true")
			}
			if s.PopOnTake {
				t.Errorf("&& must leave its short-circuit value on the stack")
			}
			if !s.NoPopOnFallthrough {
				t.Errorf("&& must leave the left value for AndCombine on fallthrough")
			}
		}
		if s.Op == OpAndCombine {
			combines++
		}
	}
	if jumps != 1 {
		t.Fatalf("expected exactly one CondJump for &&, got %d", jumps)
	}
	if combines != 1 {
		t.Fatalf("expected exactly one AndCombine for &&, got %d", combines)
	}
	last := prog.Steps[len(prog.Steps)-1]
	if last.Op != OpAndCombine {
		t.Fatalf("expected AndCombine to be the final step, got %s", last.Op)
	}
}

func TestPlanConditionalHasElseAndEndJumps(t *testing.T) {
	expr := ast.NewCall(1, nil, ast.OpConditional,
		ast.NewConst(2, types.BoolValue(true)),
		ast.NewConst(3, types.IntValue(1)),
		ast.NewConst(4, types.IntValue(2)),
	)
	res := checker.Check(expr, decls.NewEnv(""))
	prog := Plan(res.Checked)

	var condJumps, jumps, propJumps int
	for _, s := range prog.Steps {
		switch s.Op {
		case OpCondJump:
			condJumps++
		case OpJump:
			jumps++
		case OpPropagateJump:
			propJumps++
		}
	}
	if condJumps != 1 || jumps != 1 || propJumps != 1 {
		t.Fatalf("expected 1 PropagateJump + 1 CondJump + 1 Jump for ?:, got %d/%d/%d", propJumps, condJumps, jumps)
	}
}

func TestPlanCallUsesCheckerResolvedOverloadIDs(t *testing.T) {
	env := decls.NewEnv("")
	if err := env.AddFunction(ast.OpAdd, &decls.Overload{ID: "add_int_int", ArgTypes: []types.Type{types.IntType, types.IntType}, ResultType: types.IntType, Strict: true}); err != nil {
		t.Fatal(err)
	}
	expr := ast.NewCall(1, nil, ast.OpAdd, ast.NewConst(2, types.IntValue(1)), ast.NewConst(3, types.IntValue(2)))
	res := checker.Check(expr, env)
	prog := Plan(res.Checked)

	last := prog.Steps[len(prog.Steps)-1]
	if last.Op != OpCall || len(last.OverloadIDs) != 1 || last.OverloadIDs[0] != "add_int_int" {
		t.Fatalf("expected a Call step with [add_int_int], got %+v", last)
	}
}

func TestPlanListEmitsMakeListWithArity(t *testing.T) {
	expr := ast.NewList(1, nil, ast.NewConst(2, types.IntValue(1)), ast.NewConst(3, types.IntValue(2)))
	res := checker.Check(expr, decls.NewEnv(""))
	prog := Plan(res.Checked)

	last := prog.Steps[len(prog.Steps)-1]
	if last.Op != OpMakeList || last.Arity != 2 {
		t.Fatalf("expected MakeList(2), got %+v", last)
	}
}

func TestPlanComprehensionAllocatesThreeSlotsAndClearsThem(t *testing.T) {
	env := decls.NewEnv("")
	if err := env.AddFunction(ast.OpGreater, &decls.Overload{ID: "gt_int_int", ArgTypes: []types.Type{types.IntType, types.IntType}, ResultType: types.BoolType, Strict: true}); err != nil {
		t.Fatal(err)
	}

	list := ast.NewList(1, nil, ast.NewConst(2, types.IntValue(5)))
	accuInit := ast.NewConst(3, types.BoolValue(false))
	loopCond := ast.NewCall(4, nil, ast.OpNot, ast.NewIdent(5, "found"))
	test := ast.NewCall(6, nil, ast.OpGreater, ast.NewIdent(7, "x"), ast.NewConst(8, types.IntValue(1)))
	step := ast.NewCall(9, nil, ast.OpLogicalOr, ast.NewIdent(10, "found"), test)
	result := ast.NewIdent(11, "found")
	comp := ast.NewComprehension(12, "x", list, "found", accuInit, loopCond, step, result)

	res := checker.Check(comp, env)
	if !res.IsValid() {
		t.Fatalf("expected a valid check, got issues: %v", res.Issues)
	}
	prog := Plan(res.Checked)

	if prog.NumSlots != 3 {
		t.Fatalf("expected 3 slots (cursor, iter, accu), got %d", prog.NumSlots)
	}
	var clears, nexts int
	for _, s := range prog.Steps {
		if s.Op == OpClearSlot {
			clears++
		}
		if s.Op == OpComprehensionNext {
			nexts++
		}
	}
	if clears != 2 {
		t.Fatalf("expected 2 ClearSlot steps, got %d", clears)
	}
	if nexts != 1 {
		t.Fatalf("expected 1 ComprehensionNext step, got %d", nexts)
	}
}
