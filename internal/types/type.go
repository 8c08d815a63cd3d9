package types

import (
	"fmt"
	"strings"
)

// TypeTag discriminates the Type sum (§3.2).
type TypeTag uint8

const (
	NullTypeTag TypeTag = iota
	BoolTag
	IntTag
	UintTag
	DoubleTag
	StringTag
	BytesTag
	DurationTag
	TimestampTag
	ListTag
	MapTag
	OpaqueTag
	FunctionTag
	TypeParamTag
	StructTag
	WrapperTag
	DynTag
	TypeTag_ // the type of a first-class type witness ("type" as a type)
)

// Type is the interface implemented by every member of the type sum.
// Implementations are immutable and comparable by value where practical
// (primitives), or by structural String() comparison for composites.
type Type interface {
	Tag() TypeTag
	// String renders the type's canonical, stable name, e.g. "list(int)".
	String() string
}

// Primitive is a simple, argument-less type (null_type, bool, int, uint,
// double, string, bytes, duration, timestamp, dyn, and the meta "type").
type Primitive struct {
	tag  TypeTag
	name string
}

func (p Primitive) Tag() TypeTag  { return p.tag }
func (p Primitive) String() string { return p.name }

var (
	NullType      = Primitive{NullTypeTag, "null_type"}
	BoolType      = Primitive{BoolTag, "bool"}
	IntType       = Primitive{IntTag, "int"}
	UintType      = Primitive{UintTag, "uint"}
	DoubleType    = Primitive{DoubleTag, "double"}
	StringType    = Primitive{StringTag, "string"}
	BytesType     = Primitive{BytesTag, "bytes"}
	DurationType  = Primitive{DurationTag, "duration"}
	TimestampType = Primitive{TimestampTag, "timestamp"}
	DynType       = Primitive{DynTag, "dyn"}
	MetaTypeType  = Primitive{TypeTag_, "type"}
)

// ListType is list(Elem).
type ListType struct {
	Elem Type
}

func (t ListType) Tag() TypeTag { return ListTag }
func (t ListType) String() string {
	return fmt.Sprintf("list(%s)", t.Elem.String())
}

// MapType is map(Key, Value).
type MapType struct {
	Key   Type
	Value Type
}

func (t MapType) Tag() TypeTag { return MapTag }
func (t MapType) String() string {
	return fmt.Sprintf("map(%s, %s)", t.Key.String(), t.Value.String())
}

// OpaqueType is a host-defined parameterized type, e.g. an optional or a
// proto wrapper registered by the host (§3.2, Design Notes opaque kind).
type OpaqueType struct {
	Name   string
	Params []Type
}

func (t OpaqueType) Tag() TypeTag { return OpaqueTag }
func (t OpaqueType) String() string {
	if len(t.Params) == 0 {
		return t.Name
	}
	parts := make([]string, len(t.Params))
	for i, p := range t.Params {
		parts[i] = p.String()
	}
	return fmt.Sprintf("%s(%s)", t.Name, strings.Join(parts, ", "))
}

// FunctionType is function(result, args...), used to type-check overloads
// and first-class function values (Design Notes: dispatch O(overloads)).
type FunctionType struct {
	Result Type
	Args   []Type
}

func (t FunctionType) Tag() TypeTag { return FunctionTag }
func (t FunctionType) String() string {
	parts := make([]string, len(t.Args))
	for i, a := range t.Args {
		parts[i] = a.String()
	}
	return fmt.Sprintf("(%s) -> %s", strings.Join(parts, ", "), t.Result.String())
}

// TypeParamType is an unbound type parameter occurring in an overload
// signature (§3.2 rule 5, §3.3).
type TypeParamType struct {
	Name string
}

func (t TypeParamType) Tag() TypeTag  { return TypeParamTag }
func (t TypeParamType) String() string { return t.Name }

// StructType names a host-declared struct/message type, opaque to the core
// beyond field access (§3.1 struct value, Design Notes).
type StructType struct {
	Name string
}

func (t StructType) Tag() TypeTag  { return StructTag }
func (t StructType) String() string { return t.Name }

// WrapperType is a null-admitting wrapper around a primitive (§3.2 rule 3),
// e.g. the nullable counterpart of int or string.
type WrapperType struct {
	Primitive Type
}

func (t WrapperType) Tag() TypeTag { return WrapperTag }
func (t WrapperType) String() string {
	return fmt.Sprintf("wrapper(%s)", t.Primitive.String())
}

// ParamNames returns every distinct type-parameter name reachable in t's
// structure (§4.2 "parameter extraction").
func ParamNames(t Type) []string {
	seen := map[string]bool{}
	var order []string
	var walk func(Type)
	walk = func(t Type) {
		switch tt := t.(type) {
		case TypeParamType:
			if !seen[tt.Name] {
				seen[tt.Name] = true
				order = append(order, tt.Name)
			}
		case ListType:
			walk(tt.Elem)
		case MapType:
			walk(tt.Key)
			walk(tt.Value)
		case OpaqueType:
			for _, p := range tt.Params {
				walk(p)
			}
		case FunctionType:
			walk(tt.Result)
			for _, a := range tt.Args {
				walk(a)
			}
		case WrapperType:
			walk(tt.Primitive)
		}
	}
	walk(t)
	return order
}
