// Package planner lowers a checked AST to a flat step list the
// interpreter executes (§3.5, §4.3), grounded directly on
// other_examples/9e7f2e02_google-cel-go__interpreter-planner.go.go's
// planCall/planComprehension/planCreateList shape, re-expressed as a
// flat emitter in the style of the teacher's bytecode compiler rather
// than a tree of closures.
//
// Five opcodes supplement §4.4's table. MakeStruct, because §6 lists a
// struct literal among the AST node shapes the planner must lower but
// the step table has no construction step for it distinct from
// MakeMap's. LoadSlot, because lowering a comprehension's own
// iter-var/accu-var references (§4.3 step 6 "load the accumulator
// slot") needs a plain, unconditional slot read, which is a strictly
// simpler operation than CheckInit's lazy-init-or-read and reusing
// CheckInit for it would mean padding every read with a dead init
// sub-block that can never run. PropagateJump, AndCombine, and
// OrCombine together implement §3.1's error/unknown propagation rule
// for `?:`, `&&`, and `||` precisely: PropagateJump lets `?:` return an
// error/unknown condition outright without evaluating either branch;
// AndCombine/OrCombine let `&&`/`||` fall through to evaluate the right
// operand (because the left alone didn't decide the result) while still
// combining both sides afterward, so a concrete false/true on either
// side wins even when the other side is error or unknown (§8 scenario:
// `x && false` = false, `x && true` = unknown({x}) for unknown x) —
// a single CondJump followed by an ordinary Call cannot express this,
// since by the time the right operand is known the left operand's
// error/unknown-ness has already been discarded from the stack.
package planner

// OpCode is one of the §4.4 step opcodes.
type OpCode uint8

const (
	OpPushConst OpCode = iota
	OpResolve
	OpSelect
	OpCall
	OpCondJump
	OpJump
	OpMakeList
	OpMakeMap
	OpMakeStruct
	OpCheckInit
	OpLoadSlot
	OpAssignSlot
	OpAssignSlotAndPop
	OpClearSlot
	OpComprehensionNext
	OpPropagateJump
	OpAndCombine
	OpOrCombine
)

func (op OpCode) String() string {
	switch op {
	case OpPushConst:
		return "PushConst"
	case OpResolve:
		return "Resolve"
	case OpSelect:
		return "Select"
	case OpCall:
		return "Call"
	case OpCondJump:
		return "CondJump"
	case OpJump:
		return "Jump"
	case OpMakeList:
		return "MakeList"
	case OpMakeMap:
		return "MakeMap"
	case OpMakeStruct:
		return "MakeStruct"
	case OpCheckInit:
		return "CheckInit"
	case OpLoadSlot:
		return "LoadSlot"
	case OpAssignSlot:
		return "AssignSlot"
	case OpAssignSlotAndPop:
		return "AssignSlotAndPop"
	case OpClearSlot:
		return "ClearSlot"
	case OpComprehensionNext:
		return "ComprehensionNext"
	case OpPropagateJump:
		return "PropagateJump"
	case OpAndCombine:
		return "AndCombine"
	case OpOrCombine:
		return "OrCombine"
	default:
		return "<unknown opcode>"
	}
}
