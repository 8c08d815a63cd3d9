package planner

import "github.com/funvibe/exprlang/internal/ast"

// planComprehension lowers the single generic loop construct (§4.1,
// §4.3 step list). A `cel.bind` macro call is represented as a
// comprehension whose MacroCall names it "bind" (SPEC_FULL.md §D); it
// lowers to a lazy local instead of the 6-step loop.
func (p *planner) planComprehension(e *ast.Expr) {
	if e.MacroCall != nil && e.MacroCall.Name == "bind" {
		p.planBind(e)
		return
	}

	// 1. push iter-range, then stash it in a cursor slot.
	p.plan(e.IterRange)
	cursorSlot := p.allocSlot()
	p.emit(Step{Op: OpAssignSlotAndPop, ID: e.ID, Slot: cursorSlot})

	iterSlot := p.allocSlot()
	accuSlot := p.allocSlot()

	// 3. accu-init, assigned to the accumulator slot.
	p.plan(e.AccuInit)
	p.emit(Step{Op: OpAssignSlotAndPop, ID: e.ID, Slot: accuSlot})

	headerIdx := len(p.steps)

	p.locals.push(local{name: e.IterVar, slot: iterSlot})
	p.locals.push(local{name: e.AccuVar, slot: accuSlot})

	// 4. loop header: evaluate loop condition; false -> jump to result.
	p.plan(e.LoopCondition)
	condJumpIdx := p.emit(Step{Op: OpCondJump, ID: e.ID, JumpWhenTrue: false, PopOnTake: true})

	// 5. fetch next element (or jump to result on exhaustion), loop step,
	// assign accumulator, jump back to the header.
	nextIdx := p.emit(Step{Op: OpComprehensionNext, ID: e.ID, Slot: cursorSlot})
	p.emit(Step{Op: OpAssignSlotAndPop, ID: e.ID, Slot: iterSlot})
	p.plan(e.LoopStep)
	p.emit(Step{Op: OpAssignSlotAndPop, ID: e.ID, Slot: accuSlot})
	backIdx := p.emit(Step{Op: OpJump, ID: e.ID})
	p.steps[backIdx].Offset = headerIdx - (backIdx + 1)

	p.patchJump(condJumpIdx)
	p.patchDelta(nextIdx)

	// 6. result: load the accumulator slot, clear both slots. Both
	// locals stay in scope for Result (the checker types it under the
	// same pushed scope as the condition and loop step, §4.1), so an
	// expression that references the iteration variable there — not
	// just the accumulator — still resolves.
	p.plan(e.Result)
	p.locals.pop()
	p.locals.pop()

	p.emit(Step{Op: OpClearSlot, ID: e.ID, Slot: iterSlot})
	p.emit(Step{Op: OpClearSlot, ID: e.ID, Slot: accuSlot})

	// Delta2: the iter-range turned out to be an error/unknown value
	// (§9), which ComprehensionNext detected on its first call and left
	// on the stack in place of an element; skip straight past Result and
	// both ClearSlots so that value becomes the comprehension's result
	// instead of being fed through a loop body that never wanted it.
	p.steps[nextIdx].Delta2 = len(p.steps) - (nextIdx + 1)
}

// planBind lowers a `cel.bind(name, init, body)` macro call to a lazy
// local: a slot is reserved and every reference to name within body
// emits its own CheckInit (§4.3 "Lazy bindings"), so init runs at most
// once and not at all if body never references name.
func (p *planner) planBind(e *ast.Expr) {
	slot := p.allocSlot()
	p.locals.push(local{name: e.AccuVar, slot: slot, lazy: true, init: e.AccuInit})
	p.plan(e.Result)
	p.locals.pop()
}
