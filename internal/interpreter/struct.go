package interpreter

import "github.com/funvibe/exprlang/internal/types"

// StructBuilder constructs a struct value (§3.1, §4.3 MakeStruct) from a
// declared type name and its field/value entries. internal/hoststruct
// implements this on top of jhump/protoreflect dynamic messages; a program with
// no struct literals never needs one.
type StructBuilder interface {
	NewStruct(id int64, typeName string, fields map[string]types.Value) types.Value
}
