package interpreter

import (
	"github.com/funvibe/exprlang/internal/planner"
	"github.com/funvibe/exprlang/internal/types"
)

// execCondJump implements the CondJump opcode shared by &&, ||, ?:, and
// loop headers (§4.4). It peeks TOS: when TOS is a concrete bool equal to
// JumpWhenTrue, the jump is taken (popping TOS only if PopOnTake); a
// non-bool TOS (error/unknown reaching here, e.g. the left operand of
// `&&`/`||` before its combine step) never matches and always falls
// through, because only a decisive concrete bool short-circuits.
func (e *Evaluator) execCondJump(fr *frame, s planner.Step) bool {
	top := fr.peek()
	b, isBool := top.(types.BoolValue)
	taken := isBool && bool(b) == s.JumpWhenTrue

	if taken {
		if s.PopOnTake {
			fr.pop()
		}
		fr.ip += s.Offset + 1
		return true
	}
	if !s.NoPopOnFallthrough {
		fr.pop()
	}
	return false
}

// execPropagateJump implements the PropagateJump opcode (§3.1, §7.3):
// `?:` uses it to return an error/unknown condition outright, without
// evaluating either branch.
func (e *Evaluator) execPropagateJump(fr *frame, s planner.Step) bool {
	switch fr.peek().(type) {
	case *types.ErrorValue, *types.UnknownValue:
		fr.ip += s.Offset + 1
		return true
	}
	return false
}
