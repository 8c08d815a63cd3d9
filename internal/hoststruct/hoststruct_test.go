package hoststruct

import (
	"testing"

	"github.com/funvibe/exprlang/internal/types"
)

func personRegistry(t *testing.T) *Registry {
	t.Helper()
	r := NewRegistry()
	if err := r.Register(&Schema{
		Name: "Person",
		Fields: []FieldSchema{
			{Name: "name", Type: types.StringType},
			{Name: "age", Type: types.IntType},
			{Name: "tags", Type: types.ListType{Elem: types.StringType}},
		},
	}); err != nil {
		t.Fatalf("registering schema: %v", err)
	}
	return r
}

func TestBuilderRoundTripsScalarAndListFields(t *testing.T) {
	r := personRegistry(t)
	b := NewBuilder(r)

	v := b.NewStruct(1, "Person", map[string]types.Value{
		"name": types.StringValue("Ada"),
		"age":  types.IntValue(36),
		"tags": types.NewList(types.StringValue("math"), types.StringValue("computing")),
	})

	sv, ok := v.(*types.StructValue)
	if !ok {
		t.Fatalf("expected a struct value, got %v (%T)", v, v)
	}
	if sv.Ops.TypeName() != "Person" {
		t.Fatalf("expected type name %q, got %q", "Person", sv.Ops.TypeName())
	}

	name, ok := sv.Ops.Field("name")
	if !ok {
		t.Fatalf("expected field %q to be present", "name")
	}
	if got, ok := name.(types.StringValue); !ok || got != "Ada" {
		t.Fatalf("expected name %q, got %v", "Ada", name)
	}

	age, ok := sv.Ops.Field("age")
	if !ok || age.(types.IntValue) != 36 {
		t.Fatalf("expected age 36, got %v", age)
	}

	tags, ok := sv.Ops.Field("tags")
	if !ok {
		t.Fatalf("expected field %q to be present", "tags")
	}
	tagList, ok := tags.(*types.ListValue)
	if !ok || len(tagList.Elems) != 2 {
		t.Fatalf("expected a 2-element list, got %v", tags)
	}
}

func TestBuilderUnsetFieldReadsAsZeroValueButHasFieldIsFalse(t *testing.T) {
	r := personRegistry(t)
	b := NewBuilder(r)

	v := b.NewStruct(1, "Person", map[string]types.Value{
		"name": types.StringValue("Grace"),
	})
	sv := v.(*types.StructValue)

	if sv.Ops.HasField("age") {
		t.Fatalf("expected age to be unset")
	}
	age, ok := sv.Ops.Field("age")
	if !ok {
		t.Fatalf("expected Field to still report true for an unset scalar field")
	}
	if got, ok := age.(types.IntValue); !ok || got != 0 {
		t.Fatalf("expected the proto3 zero value 0, got %v", age)
	}
}

func TestBuilderRejectsUnregisteredType(t *testing.T) {
	r := NewRegistry()
	b := NewBuilder(r)

	v := b.NewStruct(1, "Nonexistent", nil)
	if _, ok := v.(*types.ErrorValue); !ok {
		t.Fatalf("expected an error value for an unregistered type, got %v", v)
	}
}

func TestBuilderRejectsUnknownField(t *testing.T) {
	r := personRegistry(t)
	b := NewBuilder(r)

	v := b.NewStruct(1, "Person", map[string]types.Value{"nickname": types.StringValue("x")})
	if _, ok := v.(*types.ErrorValue); !ok {
		t.Fatalf("expected an error value for an unknown field, got %v", v)
	}
}

func TestStructEqualityComparesFieldValuesNotIdentity(t *testing.T) {
	r := personRegistry(t)
	b := NewBuilder(r)

	a := b.NewStruct(1, "Person", map[string]types.Value{"name": types.StringValue("Ada"), "age": types.IntValue(36)})
	c := b.NewStruct(2, "Person", map[string]types.Value{"name": types.StringValue("Ada"), "age": types.IntValue(36)})
	d := b.NewStruct(3, "Person", map[string]types.Value{"name": types.StringValue("Ada"), "age": types.IntValue(37)})

	if !types.Equal(a, c).(types.BoolValue) {
		t.Fatalf("expected two structurally-equal Person values to compare equal")
	}
	if types.Equal(a, d).(types.BoolValue) {
		t.Fatalf("expected Person values with differing ages to compare unequal")
	}
}

func TestNestedStructField(t *testing.T) {
	r := NewRegistry()
	if err := r.Register(&Schema{
		Name:   "Address",
		Fields: []FieldSchema{{Name: "city", Type: types.StringType}},
	}); err != nil {
		t.Fatalf("registering Address: %v", err)
	}
	if err := r.Register(&Schema{
		Name: "Employee",
		Fields: []FieldSchema{
			{Name: "name", Type: types.StringType},
			{Name: "address", Type: types.StructType{Name: "Address"}},
		},
	}); err != nil {
		t.Fatalf("registering Employee: %v", err)
	}

	b := NewBuilder(r)
	addr := b.NewStruct(1, "Address", map[string]types.Value{"city": types.StringValue("London")})
	emp := b.NewStruct(2, "Employee", map[string]types.Value{
		"name":    types.StringValue("Lovelace"),
		"address": addr,
	})

	sv, ok := emp.(*types.StructValue)
	if !ok {
		t.Fatalf("expected a struct value, got %v", emp)
	}
	addrField, ok := sv.Ops.Field("address")
	if !ok {
		t.Fatalf("expected field %q to be present", "address")
	}
	nested, ok := addrField.(*types.StructValue)
	if !ok {
		t.Fatalf("expected a nested struct value, got %v (%T)", addrField, addrField)
	}
	city, ok := nested.Ops.Field("city")
	if !ok || city.(types.StringValue) != "London" {
		t.Fatalf("expected nested city %q, got %v", "London", city)
	}
}
