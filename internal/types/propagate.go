package types

// PropagateStrict implements the strict-operator propagation rule shared
// by equality, arithmetic, and Call (§3.1, §4.4): if any argument is an
// error, the first one (left to right) is returned; otherwise if any
// argument is unknown, the union of unknowns is returned (a single
// unknown argument is returned as is). ok is false
// when no argument requires propagation, meaning the caller should
// proceed with its normal (strict) semantics.
func PropagateStrict(args ...Value) (result Value, ok bool) {
	for _, a := range args {
		if e, isErr := a.(*ErrorValue); isErr {
			return e, true
		}
	}
	var firstUnknown *UnknownValue
	unknowns := 0
	for _, a := range args {
		if u, isUnk := a.(*UnknownValue); isUnk {
			if firstUnknown == nil {
				firstUnknown = u
			}
			unknowns++
		}
	}
	if unknowns == 1 {
		return firstUnknown, true
	}
	if unknowns > 1 {
		return MergeUnknowns(args...), true
	}
	return nil, false
}
