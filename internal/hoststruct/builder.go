package hoststruct

import (
	"github.com/jhump/protoreflect/dynamic"

	"github.com/funvibe/exprlang/internal/types"
)

// Builder implements interpreter.StructBuilder (the dependency-injection
// seam internal/interpreter's MakeStruct opcode uses) on top of a Registry
// of host-declared schemas. pkg/env constructs one Builder per Environment
// alongside the Registry it populates from struct declarations.
type Builder struct {
	registry *Registry
}

func NewBuilder(registry *Registry) *Builder {
	return &Builder{registry: registry}
}

// NewStruct builds a struct value of the named type from fields (§4.3
// MakeStruct). An unregistered type name or a field that doesn't match the
// schema's declared type surfaces as an error value rather than a panic,
// since both are only detectable once the planned literal actually runs.
func (b *Builder) NewStruct(id int64, typeName string, fields map[string]types.Value) types.Value {
	md, ok := b.registry.lookup(typeName)
	if !ok {
		return types.NewError(id, "unregistered struct type: %q", typeName)
	}

	msg := dynamic.NewMessage(md)
	for name, v := range fields {
		fd := md.FindFieldByName(name)
		if fd == nil {
			return types.NewError(id, "struct type %q has no field %q", typeName, name)
		}
		pv, err := toProtoValue(v, fd)
		if err != nil {
			return types.NewError(id, "struct type %q field %q: %v", typeName, name, err)
		}
		if pv == nil {
			continue
		}
		if err := msg.TrySetField(fd, pv); err != nil {
			return types.NewError(id, "struct type %q field %q: %v", typeName, name, err)
		}
	}

	return &types.StructValue{Ops: &structOps{msg: msg, registry: b.registry}}
}
