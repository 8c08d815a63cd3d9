package planner

import (
	"github.com/funvibe/exprlang/internal/ast"
)

type planner struct {
	checked  *ast.Checked
	steps    []Step
	locals   localStack
	numSlots int
}

// Plan lowers a checked AST to a Program (§3.5, §4.3).
func Plan(checked *ast.Checked) *Program {
	p := &planner{checked: checked}
	p.plan(checked.Expr)
	return &Program{Steps: p.steps, NumSlots: p.numSlots}
}

func (p *planner) emit(s Step) int {
	p.steps = append(p.steps, s)
	return len(p.steps) - 1
}

func (p *planner) allocSlot() int {
	slot := p.numSlots
	p.numSlots++
	return slot
}

// patchJump sets a Jump/CondJump step's Offset so the cursor lands
// exactly at the current end of the step list (the next step to be
// emitted) when the jump is taken.
func (p *planner) patchJump(idx int) {
	p.steps[idx].Offset = len(p.steps) - (idx + 1)
}

// patchDelta sets a CheckInit/ComprehensionNext step's Delta the same
// way, for the steps that use that field name instead of Offset.
func (p *planner) patchDelta(idx int) {
	p.steps[idx].Delta = len(p.steps) - (idx + 1)
}

func (p *planner) plan(e *ast.Expr) {
	switch e.Kind {
	case ast.ConstKind:
		p.emit(Step{Op: OpPushConst, ID: e.ID, Const: e.Const})
	case ast.IdentKind, ast.SelectKind:
		p.planIdentOrSelect(e)
	case ast.CallKind:
		p.planCall(e)
	case ast.ListKind:
		p.planList(e)
	case ast.MapKind:
		p.planMap(e)
	case ast.StructKind:
		p.planStruct(e)
	case ast.ComprehensionKind:
		p.planComprehension(e)
	}
}

// planIdentOrSelect plans a (possibly absorbed-chain) identifier or
// field select. A node the checker resolved to a variable reference
// either names a comprehension-local/bind (read via LoadSlot/CheckInit)
// or a declared environment variable (read via Resolve); a node with no
// reference recorded is a genuine runtime field select on whatever its
// operand evaluates to.
func (p *planner) planIdentOrSelect(e *ast.Expr) {
	if ref, ok := p.checked.Reference(e.ID); ok && ref.IsVariable() {
		if l, found := p.locals.lookup(ref.Name); found {
			p.planLocalRead(e.ID, l)
			return
		}
		p.emit(Step{Op: OpResolve, ID: e.ID, Name: ref.Name})
		return
	}
	if e.Kind == ast.IdentKind {
		// The checker left this unresolved (undeclared reference); plan
		// a best-effort Resolve so the interpreter's own missing-name
		// handling (unknown/error per mode) takes over at run time.
		p.emit(Step{Op: OpResolve, ID: e.ID, Name: e.Name})
		return
	}
	p.plan(e.Operand)
	p.emit(Step{Op: OpSelect, ID: e.ID, Field: e.Field, TestOnly: e.TestOnly})
}

func (p *planner) planLocalRead(id int64, l local) {
	if !l.lazy {
		p.emit(Step{Op: OpLoadSlot, ID: id, Slot: l.slot})
		return
	}
	idx := p.emit(Step{Op: OpCheckInit, ID: id, Slot: l.slot})
	p.plan(l.init)
	p.emit(Step{Op: OpAssignSlot, ID: id, Slot: l.slot})
	p.patchDelta(idx)
}
