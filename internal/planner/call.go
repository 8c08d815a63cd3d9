package planner

import "github.com/funvibe/exprlang/internal/ast"

// planCall lowers a call node. `&&`, `||`, and `?:` get dedicated
// short-circuit control flow; everything else — including the other
// syntactic operators (`==`, `!=`, `!`, unary `-`, and index `_[_]`),
// which the checker already resolved to fixed builtin overload ids —
// plans as an ordinary strict call: arguments left to right, then a
// Call step carrying the candidate overload set (§4.3 "Strict calls").
func (p *planner) planCall(e *ast.Expr) {
	switch e.Function {
	case ast.OpLogicalAnd, ast.OpLogicalOr:
		p.planLogical(e)
		return
	case ast.OpConditional:
		p.planConditional(e)
		return
	}
	p.planOrdinaryCall(e)
}

// planLogical lowers `&&`/`||` (§3.1, §4.3). The left operand alone
// decides the result in two cases — `false && x` and `true || x` — and
// those short-circuit via CondJump without evaluating the right operand
// at all. In every other case (left is the non-deciding bool, or left is
// itself error/unknown) the right operand must still be evaluated and
// combined with the left, because a concrete false/true on the right can
// still dominate an error/unknown left (§8: `x && false` = false even for
// unknown x). CondJump's NoPopOnFallthrough keeps the left value on the
// stack for that combine step instead of discarding it.
func (p *planner) planLogical(e *ast.Expr) {
	isAnd := e.Function == ast.OpLogicalAnd
	p.plan(e.Args[0])
	jumpIdx := p.emit(Step{
		Op:                 OpCondJump,
		ID:                 e.ID,
		JumpWhenTrue:       !isAnd,
		PopOnTake:          false,
		NoPopOnFallthrough: true,
	})
	p.plan(e.Args[1])
	if isAnd {
		p.emit(Step{Op: OpAndCombine, ID: e.ID})
	} else {
		p.emit(Step{Op: OpOrCombine, ID: e.ID})
	}
	p.patchJump(jumpIdx)
}

// planConditional lowers `c ? t : e` (§3.1, §4.3). An error or unknown
// condition is returned outright, without evaluating either branch
// (§7.3); PropagateJump implements exactly that, jumping straight to the
// very end when TOS is an error or unknown. Otherwise the existing
// CondJump/Jump pair picks one branch in the ordinary way.
func (p *planner) planConditional(e *ast.Expr) {
	p.plan(e.Args[0])
	propIdx := p.emit(Step{Op: OpPropagateJump, ID: e.ID})
	toElse := p.emit(Step{Op: OpCondJump, ID: e.ID, JumpWhenTrue: false, PopOnTake: true})
	p.plan(e.Args[1])
	toEnd := p.emit(Step{Op: OpJump, ID: e.ID})
	p.patchJump(toElse)
	p.plan(e.Args[2])
	p.patchJump(toEnd)
	p.patchJump(propIdx)
}

func (p *planner) planOrdinaryCall(e *ast.Expr) {
	ref, _ := p.checked.Reference(e.ID)

	arity := len(e.Args)
	if ref != nil && ref.Member && e.Target != nil {
		p.plan(e.Target)
		arity++
	}
	for _, a := range e.Args {
		p.plan(a)
	}

	var overloadIDs []string
	if ref != nil {
		overloadIDs = ref.OverloadIDs
	}
	p.emit(Step{Op: OpCall, ID: e.ID, OverloadIDs: overloadIDs, Arity: arity})
}
