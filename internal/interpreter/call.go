package interpreter

import (
	"github.com/funvibe/exprlang/internal/planner"
	"github.com/funvibe/exprlang/internal/types"
)

// execCall implements the Call opcode (§4.4, §4.5). `&&`, `||`, and `?:`
// never reach here — they lower to their own dedicated opcodes — so every
// Call step is an ordinary strict-or-lazy function/operator invocation.
//
// Error/unknown propagation is governed by the first candidate overload
// id the registry actually has registered: if it is Strict, the
// propagation check runs once, before any overload is invoked (§4.4
// "Error/unknown propagation at Call"); a Lazy overload receives the raw
// argument values and is responsible for its own propagation, if any
// (§4.5). A call site's alternatives are never a strict/lazy mix in
// practice (every overload of a given function name shares a calling
// convention), so checking the first resolvable candidate is sufficient.
func (e *Evaluator) execCall(fr *frame, s planner.Step) types.Value {
	args := fr.popN(s.Arity)

	strict := true
	for _, oid := range s.OverloadIDs {
		if impl, ok := e.registry.FindByID(oid); ok {
			strict = impl.Strict
			break
		}
	}
	if strict {
		if v, ok := types.PropagateStrict(args...); ok {
			return v
		}
	}

	if v, ok := e.registry.Dispatch(s.ID, s.OverloadIDs, args); ok {
		return v
	}
	return types.NewError(s.ID, "no matching overload among %v for argument kinds %v", s.OverloadIDs, argKinds(args))
}

func argKinds(args []types.Value) []types.Kind {
	ks := make([]types.Kind, len(args))
	for i, a := range args {
		ks[i] = a.Kind()
	}
	return ks
}
