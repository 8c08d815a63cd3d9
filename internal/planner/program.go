package planner

import "github.com/funvibe/exprlang/internal/types"

// Step is a single instruction of a Program (§4.4, §6 GLOSSARY). Only
// the fields relevant to Op are meaningful; the rest are left zero.
//
// CondJump's contract (shared by &&, ||, ?:, and loop headers): the step
// always inspects TOS against JumpWhenTrue. On the not-taken path, TOS is
// popped and the cursor simply advances to compute a fresh value — unless
// NoPopOnFallthrough is set, in which case TOS is left in place because a
// following AndCombine/OrCombine step still needs it (§3.1: `x && true`
// for unknown x must combine both sides, not discard the left one). On
// the taken path, TOS is popped only if PopOnTake is set; otherwise it is
// left as the expression's short-circuit result — which is exactly what
// && and || need (`false && e` must evaluate to `false`, not discard it)
// and what a plain if/else or loop-header jump does not (the branch taken
// supplies its own result).
//
// PropagateJump is CondJump's dual for error/unknown short-circuiting
// (§3.1, §7.3): it peeks TOS, and if it is an error or unknown value,
// jumps by Offset leaving TOS in place (skipping evaluation of whichever
// branch would otherwise run); otherwise it falls through without
// popping, leaving TOS for the next step to consume as an ordinary bool.
type Step struct {
	Op OpCode
	ID int64 // source AST id, for error attribution (§4.4 "Limits")

	Const types.Value // PushConst

	Name string // Resolve

	Field    string // Select
	TestOnly bool   // Select

	OverloadIDs []string // Call: ordered candidate overload ids

	Offset             int  // Jump / CondJump / PropagateJump: steps to skip, relative to the step after this one
	JumpWhenTrue       bool // CondJump
	PopOnTake          bool // CondJump
	NoPopOnFallthrough bool // CondJump: leave TOS for a following AndCombine/OrCombine

	Arity    int    // Call (args popped, receiver included) / MakeList (element count) / MakeMap (entry count) / MakeStruct (entry count)
	OptMask  []bool // MakeList / MakeMap / MakeStruct: which elements/entries are optional
	TypeName string // MakeStruct: the struct's declared type name

	Slot  int // CheckInit / AssignSlot / AssignSlotAndPop / ClearSlot / ComprehensionNext
	Delta int // CheckInit: steps to skip when already initialized / ComprehensionNext: offset to the loop result
	// Delta2 is ComprehensionNext's second jump target: taken instead of
	// Delta when the iter-range slot holds a value newCursor rejects (an
	// error or unknown value, per §9's open question on non-iterable
	// ranges), jumping past the Result expression entirely so that value
	// becomes the comprehension's own result rather than being discarded.
	Delta2 int
}

// Program is the planner's output (§3.5, §6 "Program output"): a flat
// step list plus the slot count the interpreter must allocate per frame.
type Program struct {
	Steps    []Step
	NumSlots int
}
