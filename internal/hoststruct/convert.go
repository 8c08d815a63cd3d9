package hoststruct

import (
	"fmt"

	"github.com/jhump/protoreflect/desc"
	"github.com/jhump/protoreflect/dynamic"
	"google.golang.org/protobuf/types/descriptorpb"

	"github.com/funvibe/exprlang/internal/types"
)

// toProtoValue converts a types.Value into whatever representation
// dynamic.Message.SetField expects for fd, mirroring the teacher's
// convertToProtoSingleValue/convertToProtoValue (internal/evaluator/
// builtins_grpc.go) but keyed off this module's Value sum instead of
// Funxy's Object interface. A nil/NullValue leaves the field unset, which
// for a proto3 scalar reads back as that type's zero value and for a
// message field reads back as a missing submessage (§3.2 wrapper rule).
func toProtoValue(v types.Value, fd *desc.FieldDescriptor) (interface{}, error) {
	if _, isNull := v.(types.NullValue); isNull {
		return nil, nil
	}

	if fd.IsMap() {
		m, ok := v.(*types.MapValue)
		if !ok {
			return nil, fmt.Errorf("expected a map value for field %s", fd.GetName())
		}
		valFD := fd.GetMessageType().FindFieldByName("value")
		out := make(map[interface{}]interface{}, len(m.Keys()))
		for _, k := range m.Keys() {
			kv, _ := m.Get(k)
			key, ok := k.(types.StringValue)
			if !ok {
				return nil, fmt.Errorf("map field %s requires string keys", fd.GetName())
			}
			ev, err := toProtoValue(kv, valFD)
			if err != nil {
				return nil, err
			}
			out[string(key)] = ev
		}
		return out, nil
	}

	if fd.IsRepeated() {
		list, ok := v.(*types.ListValue)
		if !ok {
			return nil, fmt.Errorf("expected a list value for field %s", fd.GetName())
		}
		slice := make([]interface{}, 0, len(list.Elems))
		for _, elem := range list.Elems {
			ev, err := toProtoSingleValue(elem, fd)
			if err != nil {
				return nil, err
			}
			slice = append(slice, ev)
		}
		return slice, nil
	}

	return toProtoSingleValue(v, fd)
}

func toProtoSingleValue(v types.Value, fd *desc.FieldDescriptor) (interface{}, error) {
	switch fd.GetType() {
	case descriptorpb.FieldDescriptorProto_TYPE_BOOL:
		if b, ok := v.(types.BoolValue); ok {
			return bool(b), nil
		}
	case descriptorpb.FieldDescriptorProto_TYPE_INT64:
		if i, ok := v.(types.IntValue); ok {
			return int64(i), nil
		}
	case descriptorpb.FieldDescriptorProto_TYPE_UINT64:
		if u, ok := v.(types.UintValue); ok {
			return uint64(u), nil
		}
	case descriptorpb.FieldDescriptorProto_TYPE_DOUBLE:
		if d, ok := v.(types.DoubleValue); ok {
			return float64(d), nil
		}
	case descriptorpb.FieldDescriptorProto_TYPE_STRING:
		if s, ok := v.(types.StringValue); ok {
			return string(s), nil
		}
	case descriptorpb.FieldDescriptorProto_TYPE_BYTES:
		if b, ok := v.(types.BytesValue); ok {
			return []byte(b), nil
		}
	case descriptorpb.FieldDescriptorProto_TYPE_MESSAGE:
		sv, ok := v.(*types.StructValue)
		if !ok {
			return nil, fmt.Errorf("expected a struct value for field %s", fd.GetName())
		}
		nested, ok := sv.Ops.(*structOps)
		if !ok {
			return nil, fmt.Errorf("field %s: nested struct value is not host-backed", fd.GetName())
		}
		return nested.msg, nil
	}
	return nil, fmt.Errorf("field %s: value kind %s does not match proto type %s", fd.GetName(), v.Kind(), fd.GetType())
}

// fromProtoValue is the reverse of toProtoValue, grounded the same way on
// convertFromProtoValue/convertFromProtoSingleValue.
func fromProtoValue(raw interface{}, fd *desc.FieldDescriptor, r *Registry) types.Value {
	if raw == nil {
		return zeroValue(fd)
	}

	if fd.IsMap() {
		m, ok := raw.(map[interface{}]interface{})
		if !ok {
			return types.NewMap()
		}
		valFD := fd.GetMessageType().FindFieldByName("value")
		out := types.NewMap()
		for k, v := range m {
			ks, _ := k.(string)
			out.Put(types.StringValue(ks), fromProtoValue(v, valFD, r))
		}
		return out
	}

	if fd.IsRepeated() {
		slice, ok := raw.([]interface{})
		if !ok {
			return types.NewList()
		}
		elems := make([]types.Value, 0, len(slice))
		for _, v := range slice {
			elems = append(elems, fromProtoSingleValue(v, fd, r))
		}
		return types.NewList(elems...)
	}

	return fromProtoSingleValue(raw, fd, r)
}

func fromProtoSingleValue(raw interface{}, fd *desc.FieldDescriptor, r *Registry) types.Value {
	switch v := raw.(type) {
	case bool:
		return types.BoolValue(v)
	case int32:
		return types.IntValue(v)
	case int64:
		return types.IntValue(v)
	case uint32:
		return types.UintValue(v)
	case uint64:
		return types.UintValue(v)
	case float32:
		return types.DoubleValue(v)
	case float64:
		return types.DoubleValue(v)
	case string:
		return types.StringValue(v)
	case []byte:
		return types.BytesValue(v)
	case *dynamic.Message:
		return &types.StructValue{Ops: &structOps{msg: v, registry: r}}
	}
	return types.NullValue{}
}

func zeroValue(fd *desc.FieldDescriptor) types.Value {
	if fd.IsRepeated() {
		return types.NewList()
	}
	switch fd.GetType() {
	case descriptorpb.FieldDescriptorProto_TYPE_BOOL:
		return types.BoolValue(false)
	case descriptorpb.FieldDescriptorProto_TYPE_INT64:
		return types.IntValue(0)
	case descriptorpb.FieldDescriptorProto_TYPE_UINT64:
		return types.UintValue(0)
	case descriptorpb.FieldDescriptorProto_TYPE_DOUBLE:
		return types.DoubleValue(0)
	case descriptorpb.FieldDescriptorProto_TYPE_STRING:
		return types.StringValue("")
	case descriptorpb.FieldDescriptorProto_TYPE_BYTES:
		return types.BytesValue(nil)
	case descriptorpb.FieldDescriptorProto_TYPE_MESSAGE:
		return types.NullValue{}
	default:
		return types.NullValue{}
	}
}
