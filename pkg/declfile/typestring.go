package declfile

import (
	"fmt"
	"strings"

	"github.com/funvibe/exprlang/internal/types"
)

// parseType parses a type's canonical string rendering (types.Type's own
// String() format, e.g. "int", "list(string)", "map(string, int)",
// "wrapper(int)", or a bare struct type name) back into a types.Type, so
// a decls.yaml can name a type the same way diagnostics and debug
// rendering already print it.
func parseType(s string) (types.Type, error) {
	s = strings.TrimSpace(s)
	switch s {
	case "null_type":
		return types.NullType, nil
	case "bool":
		return types.BoolType, nil
	case "int":
		return types.IntType, nil
	case "uint":
		return types.UintType, nil
	case "double":
		return types.DoubleType, nil
	case "string":
		return types.StringType, nil
	case "bytes":
		return types.BytesType, nil
	case "duration":
		return types.DurationType, nil
	case "timestamp":
		return types.TimestampType, nil
	case "dyn":
		return types.DynType, nil
	}

	if inner, ok := unwrap(s, "list("); ok {
		elem, err := parseType(inner)
		if err != nil {
			return nil, err
		}
		return types.ListType{Elem: elem}, nil
	}
	if inner, ok := unwrap(s, "map("); ok {
		parts, err := splitTopLevel(inner)
		if err != nil {
			return nil, err
		}
		if len(parts) != 2 {
			return nil, fmt.Errorf("map( requires exactly 2 comma-separated type arguments, got %d in %q", len(parts), s)
		}
		key, err := parseType(parts[0])
		if err != nil {
			return nil, err
		}
		val, err := parseType(parts[1])
		if err != nil {
			return nil, err
		}
		return types.MapType{Key: key, Value: val}, nil
	}
	if inner, ok := unwrap(s, "wrapper("); ok {
		prim, err := parseType(inner)
		if err != nil {
			return nil, err
		}
		return types.WrapperType{Primitive: prim}, nil
	}

	if isIdentifier(s) {
		return types.StructType{Name: s}, nil
	}
	return nil, fmt.Errorf("unrecognized type string %q", s)
}

func unwrap(s, prefix string) (string, bool) {
	if !strings.HasPrefix(s, prefix) || !strings.HasSuffix(s, ")") {
		return "", false
	}
	return s[len(prefix) : len(s)-1], true
}

// splitTopLevel splits s on commas that are not nested inside parens, so
// "string, map(string, int)" splits into exactly 2 parts rather than 3.
func splitTopLevel(s string) ([]string, error) {
	var parts []string
	depth := 0
	start := 0
	for i, r := range s {
		switch r {
		case '(':
			depth++
		case ')':
			depth--
			if depth < 0 {
				return nil, fmt.Errorf("unbalanced parens in %q", s)
			}
		case ',':
			if depth == 0 {
				parts = append(parts, strings.TrimSpace(s[start:i]))
				start = i + 1
			}
		}
	}
	if depth != 0 {
		return nil, fmt.Errorf("unbalanced parens in %q", s)
	}
	parts = append(parts, strings.TrimSpace(s[start:]))
	return parts, nil
}

func isIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		ok := r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (i > 0 && r >= '0' && r <= '9')
		if !ok {
			return false
		}
	}
	return true
}
