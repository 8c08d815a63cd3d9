package functions

import (
	"fmt"
	"time"

	"github.com/funvibe/exprlang/internal/types"
)

// ToValue adapts a native host type to the core value sum (§4.5): bool,
// int and int64, uint64, float64, string, []byte, time.Duration,
// time.Time, []interface{} (list), and
// map[interface{}]interface{}/map[string]interface{} (map); a
// types.Value passes through unchanged. Anything else, including a map
// key that is not a permitted key kind, reports an error value rather
// than panicking.
func ToValue(id int64, native interface{}) types.Value {
	switch v := native.(type) {
	case nil:
		return types.Null
	case bool:
		return types.BoolValue(v)
	case int:
		return types.IntValue(v)
	case int64:
		return types.IntValue(v)
	case uint64:
		return types.UintValue(v)
	case float64:
		return types.DoubleValue(v)
	case string:
		return types.StringValue(v)
	case []byte:
		return types.BytesValue(v)
	case time.Duration:
		return types.DurationValue(v)
	case time.Time:
		return types.TimestampValue(v)
	case []interface{}:
		elems := make([]types.Value, len(v))
		for i, e := range v {
			elems[i] = ToValue(id, e)
		}
		return types.NewList(elems...)
	case map[string]interface{}:
		m := types.NewMap()
		for k, val := range v {
			m.Put(types.StringValue(k), ToValue(id, val))
		}
		return m
	case map[interface{}]interface{}:
		m := types.NewMap()
		for k, val := range v {
			if !m.Put(ToValue(id, k), ToValue(id, val)) {
				return types.NewError(id, "functions: cannot adapt host map key of type %T", k)
			}
		}
		return m
	case types.Value:
		return v
	default:
		return types.NewError(id, "functions: cannot adapt host value of type %T", native)
	}
}

// FromValue adapts a core value back to a native Go value for a host
// function's use, reporting an error on a value kind the host function
// did not declare it accepts.
func FromValue(v types.Value) (interface{}, error) {
	switch vv := v.(type) {
	case types.NullValue:
		return nil, nil
	case types.BoolValue:
		return bool(vv), nil
	case types.IntValue:
		return int64(vv), nil
	case types.UintValue:
		return uint64(vv), nil
	case types.DoubleValue:
		return float64(vv), nil
	case types.StringValue:
		return string(vv), nil
	case types.BytesValue:
		return []byte(vv), nil
	case types.DurationValue:
		return time.Duration(vv), nil
	case types.TimestampValue:
		return time.Time(vv), nil
	case *types.ListValue:
		out := make([]interface{}, len(vv.Elems))
		for i, e := range vv.Elems {
			nv, err := FromValue(e)
			if err != nil {
				return nil, err
			}
			out[i] = nv
		}
		return out, nil
	case *types.MapValue:
		out := make(map[string]interface{}, vv.Len())
		for _, k := range vv.Keys() {
			val, _ := vv.Get(k)
			nv, err := FromValue(val)
			if err != nil {
				return nil, err
			}
			out[k.String()] = nv
		}
		return out, nil
	default:
		return nil, fmt.Errorf("functions: cannot adapt core value of kind %s to a host value", v.Kind())
	}
}
