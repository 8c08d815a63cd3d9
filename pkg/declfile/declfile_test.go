package declfile

import (
	"testing"

	"github.com/funvibe/exprlang/internal/types"
)

func TestParseTypeScalarsAndComposites(t *testing.T) {
	cases := map[string]types.Type{
		"int":                types.IntType,
		"string":             types.StringType,
		"list(string)":       types.ListType{Elem: types.StringType},
		"map(string, int)":   types.MapType{Key: types.StringType, Value: types.IntType},
		"wrapper(int)":       types.WrapperType{Primitive: types.IntType},
		"map(string, list(int))": types.MapType{Key: types.StringType, Value: types.ListType{Elem: types.IntType}},
		"Person":             types.StructType{Name: "Person"},
	}
	for in, want := range cases {
		got, err := parseType(in)
		if err != nil {
			t.Fatalf("parseType(%q): %v", in, err)
		}
		if got.String() != want.String() {
			t.Fatalf("parseType(%q) = %s, want %s", in, got.String(), want.String())
		}
	}
}

func TestParseLoadsVariablesAndStructs(t *testing.T) {
	yamlSrc := `
container: demo
variables:
  - name: x
    type: int
  - name: who
    type: Person
structs:
  - name: Person
    fields:
      - name: name
        type: string
      - name: age
        type: int
`
	e, err := Parse([]byte(yamlSrc))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	v, ok := e.Decls.LookupVariable("x")
	if !ok || v.Type.String() != "int" {
		t.Fatalf("expected variable x: int, got %+v, %v", v, ok)
	}
	who, ok := e.Decls.LookupVariable("who")
	if !ok || who.Type.String() != "Person" {
		t.Fatalf("expected variable who: Person, got %+v, %v", who, ok)
	}
	// The prelude's add_int_int overload must still be present.
	if _, ok := e.Decls.LookupFunction("_+_"); !ok {
		t.Fatalf("expected the prelude's arithmetic overloads to be registered")
	}
}

func TestParseRejectsUnknownType(t *testing.T) {
	_, err := Parse([]byte("variables:\n  - name: x\n    type: not-a-type!!\n"))
	if err == nil {
		t.Fatalf("expected an error for an unrecognized type string")
	}
}
