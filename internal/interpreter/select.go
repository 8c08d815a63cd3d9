package interpreter

import (
	"github.com/funvibe/exprlang/internal/planner"
	"github.com/funvibe/exprlang/internal/types"
)

// execSelect implements the Select opcode (§4.3, §4.4): field access on a
// struct or map, or presence testing when TestOnly is set. An operand
// that is itself error/unknown propagates unchanged, ahead of any
// field-presence check (§3.1).
func execSelect(operand types.Value, s planner.Step) types.Value {
	switch v := operand.(type) {
	case *types.ErrorValue, *types.UnknownValue:
		return operand

	case *types.MapValue:
		key := types.StringValue(s.Field)
		val, found := v.Get(key)
		if s.TestOnly {
			return types.BoolValue(found)
		}
		if !found {
			return types.NewError(s.ID, "no such key: %q", s.Field)
		}
		return val

	case *types.StructValue:
		if s.TestOnly {
			return types.BoolValue(v.Ops.HasField(s.Field))
		}
		val, found := v.Ops.Field(s.Field)
		if !found {
			return types.NewError(s.ID, "no such field: %q", s.Field)
		}
		return val

	default:
		if s.TestOnly {
			return types.BoolValue(false)
		}
		return types.NewError(s.ID, "select %q on non-selectable value of kind %s", s.Field, operand.Kind())
	}
}
