package interpreter

import (
	"github.com/funvibe/exprlang/internal/planner"
	"github.com/funvibe/exprlang/internal/types"
)

// execCheckInit implements the CheckInit opcode for `cel.bind` lazy
// locals (§4.3 "Lazy bindings", §4.4): an empty slot falls through into
// the planned init subexpression and the following AssignSlot; an
// already-initialized slot pushes the memoized value and jumps straight
// past that subexpression via Delta, so init never runs a second time.
func (e *Evaluator) execCheckInit(fr *frame, s planner.Step) bool {
	raw := fr.slots[s.Slot]
	if raw == nil {
		return false
	}
	fr.push(mustValue(raw))
	fr.ip += s.Delta + 1
	return true
}

// execComprehensionNext implements the ComprehensionNext opcode (§4.1,
// §4.3 steps 2 and 5, §4.4, §9's open question on a non-iterable
// iter-range). The cursor slot starts out holding the raw iter-range
// value; the first call here converts it to a *cursor (or, per §9,
// detects an error/unknown/non-iterable range and short-circuits via
// Delta2 instead of ever entering the loop body).
func (e *Evaluator) execComprehensionNext(fr *frame, s planner.Step, iterUsed *int) bool {
	cur, isCursor := fr.slots[s.Slot].(*cursor)
	if !isCursor {
		raw := mustValue(fr.slots[s.Slot])
		switch raw.(type) {
		case *types.ErrorValue, *types.UnknownValue:
			fr.push(raw)
			fr.ip += s.Delta2 + 1
			return true
		}
		newCur, ok := newCursor(raw)
		if !ok {
			fr.push(types.NewError(s.ID, "comprehension range is not a list or map: %s", raw.String()))
			fr.ip += s.Delta2 + 1
			return true
		}
		cur = newCur
		fr.slots[s.Slot] = cur
	}

	elem, hasNext := cur.next()
	if !hasNext {
		fr.ip += s.Delta + 1
		return true
	}

	*iterUsed++
	if *iterUsed > e.iterationBudget {
		fr.push(types.NewError(s.ID, "comprehension iteration budget exceeded"))
		fr.ip += s.Delta2 + 1
		return true
	}

	fr.push(elem)
	return false
}
