package interpreter

import "github.com/funvibe/exprlang/internal/types"

// cursor is the internal iteration state a comprehension's cursor slot
// holds once ComprehensionNext has consumed the raw iterable it was
// assigned (§4.3 step 2, §4.4 ComprehensionNext). It is never a
// types.Value — slots are plain interface{} cells precisely so this
// runtime-only bookkeeping can live alongside ordinary values without
// adding a value kind the checker or planner would need to know about.
type cursor struct {
	elems []types.Value // list elements, or one entry per map key
	idx   int
}

func (c *cursor) next() (types.Value, bool) {
	if c.idx >= len(c.elems) {
		return nil, false
	}
	v := c.elems[c.idx]
	c.idx++
	return v, true
}

// newCursor builds iteration state from a comprehension's iter-range
// value. ok is false when raw is not list/map shaped — the caller applies
// §9's open-question resolution (error -> error, unknown -> unknown) by
// inspecting raw itself in that case, not this cursor.
func newCursor(raw types.Value) (*cursor, bool) {
	switch v := raw.(type) {
	case *types.ListValue:
		return &cursor{elems: v.Elems}, true
	case *types.MapValue:
		return &cursor{elems: v.Keys()}, true
	default:
		return nil, false
	}
}

// frame is the per-call mutable state (§3.6): a value stack, a slot array
// (each slot: empty | types.Value | *cursor), and a step cursor.
type frame struct {
	stack []types.Value
	slots []interface{}
	ip    int
}

func newFrame(numSlots int) *frame {
	return &frame{slots: make([]interface{}, numSlots)}
}

func (f *frame) push(v types.Value) { f.stack = append(f.stack, v) }

func (f *frame) pop() types.Value {
	if len(f.stack) == 0 {
		panic(errInternal("pop from empty stack"))
	}
	n := len(f.stack) - 1
	v := f.stack[n]
	f.stack = f.stack[:n]
	return v
}

func (f *frame) peek() types.Value {
	if len(f.stack) == 0 {
		panic(errInternal("peek at empty stack"))
	}
	return f.stack[len(f.stack)-1]
}

// popN pops n values, returning them in their original (left-to-right)
// argument order.
func (f *frame) popN(n int) []types.Value {
	if len(f.stack) < n {
		panic(errInternal("stack underflow popping arguments"))
	}
	start := len(f.stack) - n
	out := make([]types.Value, n)
	copy(out, f.stack[start:])
	f.stack = f.stack[:start]
	return out
}

// errInternal signals one of §7's "internal invariants" — a condition
// that must never be reachable from a well-typed, correctly planned
// program. The interpreter recovers it at the Eval boundary and reports it
// as a fatal, non-propagating error rather than a normal *types.ErrorValue
// (§7 item 4: these must never be reachable from a well-typed program, so
// they are a defect in the checker/planner/interpreter, not the script).
type errInternal string

func (e errInternal) Error() string { return string(e) }
