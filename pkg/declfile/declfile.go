// Package declfile loads a YAML declaration-environment file (variables,
// struct schemas, and type-parameter names; function signatures are not
// part of the format) into a pkg/env.Environment, so
// a host — or cmd/exprlang — can describe what names an expression may
// reference without writing Go. Grounded on the teacher's
// internal/evaluator/builtins_yaml.go (yaml.v3 Unmarshal into an
// inferred/generic shape); here the target shape is a fixed declaration
// schema instead of an arbitrary value, so Unmarshal decodes straight
// into typed structs rather than through a generic interface{} inference
// pass.
package declfile

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/funvibe/exprlang/internal/decls"
	"github.com/funvibe/exprlang/internal/hoststruct"
	"github.com/funvibe/exprlang/pkg/env"
)

// File is the on-disk shape of a decls.yaml.
type File struct {
	Container string         `yaml:"container"`
	Variables []VariableDecl `yaml:"variables"`
	Structs   []StructDecl   `yaml:"structs"`
	TypeParams []string      `yaml:"typeParams"`
}

type VariableDecl struct {
	Name string `yaml:"name"`
	Type string `yaml:"type"`
}

type StructDecl struct {
	Name   string       `yaml:"name"`
	Fields []FieldDecl  `yaml:"fields"`
}

type FieldDecl struct {
	Name string `yaml:"name"`
	Type string `yaml:"type"`
}

// Load reads path and builds a pkg/env.Environment with the language
// prelude already registered, then applies every declaration in the file
// on top of it. Struct declarations are registered before variables so a
// variable's type string may reference a struct declared earlier in the
// same file (and, per internal/hoststruct's Registry, a struct field may
// reference any struct registered before it).
func Load(path string) (*env.Environment, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("declfile: reading %s: %w", path, err)
	}
	return Parse(raw)
}

// Parse decodes YAML content directly, for hosts that already have the
// bytes (e.g. embedded in a config bundle) rather than a standalone file.
func Parse(content []byte) (*env.Environment, error) {
	var f File
	if err := yaml.Unmarshal(content, &f); err != nil {
		return nil, fmt.Errorf("declfile: parsing YAML: %w", err)
	}

	e, err := env.NewWithPrelude(f.Container)
	if err != nil {
		return nil, fmt.Errorf("declfile: building prelude: %w", err)
	}

	for _, name := range f.TypeParams {
		e.AcceptTypeParam(name)
	}

	for _, sd := range f.Structs {
		schema := &hoststruct.Schema{Name: sd.Name}
		for _, fd := range sd.Fields {
			t, err := parseType(fd.Type)
			if err != nil {
				return nil, fmt.Errorf("declfile: struct %s field %s: %w", sd.Name, fd.Name, err)
			}
			schema.Fields = append(schema.Fields, hoststruct.FieldSchema{Name: fd.Name, Type: t})
		}
		if err := e.AddStruct(schema); err != nil {
			return nil, fmt.Errorf("declfile: struct %s: %w", sd.Name, err)
		}
	}

	for _, vd := range f.Variables {
		t, err := parseType(vd.Type)
		if err != nil {
			return nil, fmt.Errorf("declfile: variable %s: %w", vd.Name, err)
		}
		if err := e.Decls.AddVariable(&decls.Variable{Name: vd.Name, Type: t}); err != nil {
			return nil, fmt.Errorf("declfile: variable %s: %w", vd.Name, err)
		}
	}

	return e, nil
}
