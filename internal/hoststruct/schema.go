// Package hoststruct backs the struct value kind (§3.1) and the host side
// of opaque/wrapper types (§3.2) with protobuf dynamic messages, the way
// the teacher's gRPC builtins back Funxy records with dynamic.Message
// descriptors parsed from .proto files (internal/evaluator/builtins_grpc.go).
// There the descriptors come from a loaded .proto; here they come from
// struct declarations the host registers on pkg/env, so the descriptors are
// built programmatically with protoreflect's desc/builder instead of
// parsed with protoparse.
package hoststruct

import (
	"fmt"
	"sync"

	"github.com/jhump/protoreflect/desc"
	"github.com/jhump/protoreflect/desc/builder"
	"google.golang.org/protobuf/types/descriptorpb"

	"github.com/funvibe/exprlang/internal/types"
)

// FieldSchema declares one field of a struct type (§3.1): its name and
// declared type, used both to build the backing message descriptor and to
// convert values across the types.Value <-> protoreflect boundary.
type FieldSchema struct {
	Name string
	Type types.Type
}

// Schema declares a struct type's backing message shape (SPEC_FULL.md §B).
type Schema struct {
	Name   string
	Fields []FieldSchema
}

// Registry holds the struct schemas a host has declared, keyed by the
// StructType name the checker/planner carry around (§3.2). Building the
// descriptor eagerly at Register time, rather than lazily on first use,
// surfaces a malformed schema (e.g. an unsupported field type) at
// environment-construction time instead of mid-evaluation.
type Registry struct {
	mu    sync.RWMutex
	descs map[string]*desc.MessageDescriptor
}

func NewRegistry() *Registry {
	return &Registry{descs: make(map[string]*desc.MessageDescriptor)}
}

// Register builds and stores the message descriptor for schema. A struct
// field whose type references another struct must name one already
// registered (no forward references), matching how .proto imports resolve
// in the teacher's protoparse-based loader.
func (r *Registry) Register(schema *Schema) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	mb := builder.NewMessage(schema.Name)
	for _, f := range schema.Fields {
		ft, repeated, err := r.fieldType(f.Type)
		if err != nil {
			return fmt.Errorf("hoststruct: field %s.%s: %w", schema.Name, f.Name, err)
		}
		fb := builder.NewField(f.Name, ft)
		if repeated {
			fb = fb.SetRepeated()
		}
		if err := mb.TryAddField(fb); err != nil {
			return fmt.Errorf("hoststruct: field %s.%s: %w", schema.Name, f.Name, err)
		}
	}

	fb := builder.NewFile(schema.Name + ".proto").SetPackageName("hoststruct")
	if err := fb.TryAddMessage(mb); err != nil {
		return fmt.Errorf("hoststruct: schema %s: %w", schema.Name, err)
	}
	fd, err := fb.Build()
	if err != nil {
		return fmt.Errorf("hoststruct: building descriptor for %s: %w", schema.Name, err)
	}
	md := fd.FindMessage("hoststruct." + schema.Name)
	if md == nil {
		return fmt.Errorf("hoststruct: descriptor for %s vanished after build", schema.Name)
	}
	r.descs[schema.Name] = md
	return nil
}

// fieldType maps a declared field Type (§3.2) to the builder.FieldType that
// backs it. list(T) becomes a repeated scalar/message field; map(string, T)
// becomes a native proto map field with a string key; nested struct(s)
// reference the struct's already-registered descriptor.
func (r *Registry) fieldType(t types.Type) (*builder.FieldType, bool, error) {
	switch tt := t.(type) {
	case types.Primitive:
		ft, err := scalarFieldType(tt)
		return ft, false, err
	case types.WrapperType:
		ft, err := scalarFieldType(tt.Primitive)
		return ft, false, err
	case types.ListType:
		ft, _, err := r.fieldType(tt.Elem)
		return ft, true, err
	case types.MapType:
		if tt.Key != types.StringType {
			return nil, false, fmt.Errorf("map field keys must be string, got %s", tt.Key.String())
		}
		valFT, _, err := r.fieldType(tt.Value)
		if err != nil {
			return nil, false, err
		}
		return builder.FieldTypeMap(builder.FieldTypeString(), valFT), false, nil
	case types.StructType:
		md, ok := r.descs[tt.Name]
		if !ok {
			return nil, false, fmt.Errorf("nested struct type %q is not registered", tt.Name)
		}
		return builder.FieldTypeImportedMessage(md), false, nil
	default:
		return nil, false, fmt.Errorf("unsupported field type %s", t.String())
	}
}

func scalarFieldType(p types.Primitive) (*builder.FieldType, error) {
	switch p.Tag() {
	case types.BoolTag:
		return builder.FieldTypeBool(), nil
	case types.IntTag:
		return builder.FieldTypeScalar(descriptorpb.FieldDescriptorProto_TYPE_INT64), nil
	case types.UintTag:
		return builder.FieldTypeScalar(descriptorpb.FieldDescriptorProto_TYPE_UINT64), nil
	case types.DoubleTag:
		return builder.FieldTypeDouble(), nil
	case types.StringTag:
		return builder.FieldTypeString(), nil
	case types.BytesTag:
		return builder.FieldTypeBytes(), nil
	case types.DurationTag, types.TimestampTag:
		// Declared as a plain int64 field. The int64 conversion in
		// convert.go accepts only int values and reads back an int, so a
		// duration or timestamp value is not accepted for such a field.
		return builder.FieldTypeScalar(descriptorpb.FieldDescriptorProto_TYPE_INT64), nil
	default:
		return nil, fmt.Errorf("no scalar proto encoding for %s", p.String())
	}
}

func (r *Registry) lookup(typeName string) (*desc.MessageDescriptor, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	md, ok := r.descs[typeName]
	return md, ok
}
