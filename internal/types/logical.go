package types

// CombineAnd implements the non-short-circuiting half of `&&` (§3.1): the
// interpreter's CondJump already short-circuits the two cases where the
// left operand alone determines the result (`false && x = false`); this
// combines left and right once both have actually been evaluated (left
// was true, or left was itself error/unknown and the right operand still
// had to be checked for a dominant false). A concrete false on either
// side always wins, even over an error or unknown on the other side,
// matching the commutative "first error wins, else the union of
// unknowns" rule for every other case.
func CombineAnd(left, right Value) Value {
	if isFalse(left) || isFalse(right) {
		return BoolValue(false)
	}
	if v, ok := PropagateStrict(left, right); ok {
		return v
	}
	return BoolValue(true)
}

// CombineOr is CombineAnd's dual for `||`: a concrete true on either side
// wins outright, otherwise the same error/unknown propagation applies.
func CombineOr(left, right Value) Value {
	if isTrue(left) || isTrue(right) {
		return BoolValue(true)
	}
	if v, ok := PropagateStrict(left, right); ok {
		return v
	}
	return BoolValue(false)
}

func isFalse(v Value) bool {
	b, ok := v.(BoolValue)
	return ok && !bool(b)
}

func isTrue(v Value) bool {
	b, ok := v.(BoolValue)
	return ok && bool(b)
}
