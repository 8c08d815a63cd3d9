package types

import "time"

// IsZero implements the §4.2 zero-value test: for containers, emptiness;
// for primitives, the language's default.
func IsZero(v Value) bool {
	switch vv := v.(type) {
	case NullValue:
		return true
	case BoolValue:
		return !bool(vv)
	case IntValue:
		return vv == 0
	case UintValue:
		return vv == 0
	case DoubleValue:
		return vv == 0
	case StringValue:
		return vv == ""
	case BytesValue:
		return len(vv) == 0
	case DurationValue:
		return vv == 0
	case TimestampValue:
		return time.Time(vv).Equal(time.Unix(0, 0).UTC())
	case *ListValue:
		return len(vv.Elems) == 0
	case *MapValue:
		return vv.Len() == 0
	default:
		return false
	}
}
