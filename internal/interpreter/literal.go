package interpreter

import (
	"github.com/funvibe/exprlang/internal/planner"
	"github.com/funvibe/exprlang/internal/types"
)

// isAbsentOptional is the convention MakeList/MakeMap/MakeStruct use to
// decide which optional elements/entries to splice out (§4.3 "absent
// optionals are spliced out"): an optional position whose evaluated
// value is the null value is treated as absent, matching §3.2's wrapper
// types already using null as the null-admitting marker for "no value
// present" at the type level.
func isAbsentOptional(optional bool, v types.Value) bool {
	if !optional {
		return false
	}
	_, isNull := v.(types.NullValue)
	return isNull
}

// execMakeList implements the MakeList opcode (§4.3, §4.4).
func execMakeList(fr *frame, s planner.Step) types.Value {
	vals := fr.popN(s.Arity)
	if v, ok := types.PropagateStrict(vals...); ok {
		return v
	}
	elems := make([]types.Value, 0, len(vals))
	for i, v := range vals {
		if i < len(s.OptMask) && isAbsentOptional(s.OptMask[i], v) {
			continue
		}
		elems = append(elems, v)
	}
	return types.NewList(elems...)
}

// execMakeMap implements the MakeMap opcode: keys and values were pushed
// interleaved (key0, value0, key1, value1, ...) by the planner, and a
// duplicate key at evaluation time yields an error value rather than
// silently overwriting (§4.3).
func execMakeMap(fr *frame, s planner.Step) types.Value {
	vals := fr.popN(2 * s.Arity)
	if v, ok := types.PropagateStrict(vals...); ok {
		return v
	}
	m := types.NewMap()
	for i := 0; i < s.Arity; i++ {
		k, v := vals[2*i], vals[2*i+1]
		if i < len(s.OptMask) && isAbsentOptional(s.OptMask[i], v) {
			continue
		}
		if m.Has(k) {
			return types.NewError(s.ID, "duplicate map key: %s", k.String())
		}
		if !m.Put(k, v) {
			return types.NewError(s.ID, "invalid map key type: %s", k.Type().String())
		}
	}
	return m
}

// execMakeStruct implements the MakeStruct opcode (SPEC_FULL.md §C):
// field names and values were pushed interleaved the same way MakeMap's
// entries are, tagged with the struct's declared type name so the
// configured StructBuilder (internal/hoststruct) can construct the host
// value. A program with struct literals but no configured StructBuilder
// is a host wiring mistake, reported as an error value rather than a
// panic since it is detectable only at evaluation time.
func (e *Evaluator) execMakeStruct(fr *frame, s planner.Step) types.Value {
	vals := fr.popN(2 * s.Arity)
	if v, ok := types.PropagateStrict(vals...); ok {
		return v
	}
	if e.structs == nil {
		return types.NewError(s.ID, "no struct builder configured for type %q", s.TypeName)
	}
	fields := make(map[string]types.Value, s.Arity)
	for i := 0; i < s.Arity; i++ {
		name, _ := vals[2*i].(types.StringValue)
		v := vals[2*i+1]
		if i < len(s.OptMask) && isAbsentOptional(s.OptMask[i], v) {
			continue
		}
		fields[string(name)] = v
	}
	return e.structs.NewStruct(s.ID, s.TypeName, fields)
}
