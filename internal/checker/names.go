package checker

import (
	"github.com/funvibe/exprlang/internal/ast"
)

// flattenChain recognizes e as a pure dotted-identifier chain (an Ident,
// or a non-test-only Select whose operand is itself such a chain) and
// returns its parts root-first, e.g. "a.b.c" -> ["a","b","c"]. Any other
// shape (a call, a literal, a test-only select) is not a chain.
func flattenChain(e *ast.Expr) ([]string, bool) {
	switch e.Kind {
	case ast.IdentKind:
		return splitDots(e.Name), true
	case ast.SelectKind:
		if e.TestOnly {
			return nil, false
		}
		base, ok := flattenChain(e.Operand)
		if !ok {
			return nil, false
		}
		return append(base, e.Field), true
	default:
		return nil, false
	}
}

// pathOf returns e's dotted select-chain path, or "" if e isn't one
// (e.g. a select whose operand is a call result rather than a name).
func pathOf(e *ast.Expr) string {
	parts, ok := flattenChain(e)
	if !ok {
		return ""
	}
	return joinDots(parts)
}

func splitDots(name string) []string {
	var parts []string
	start := 0
	for i := 0; i < len(name); i++ {
		if name[i] == '.' {
			parts = append(parts, name[start:i])
			start = i + 1
		}
	}
	parts = append(parts, name[start:])
	return parts
}

func joinDots(parts []string) string {
	out := parts[0]
	for _, p := range parts[1:] {
		out += "." + p
	}
	return out
}

// chainNodes returns the nodes making up a flattened chain, root (the
// Ident leaf) first and e (the outermost Select, or the Ident itself for
// a bare identifier) last.
func chainNodes(e *ast.Expr) []*ast.Expr {
	if e.Kind == ast.IdentKind {
		return []*ast.Expr{e}
	}
	return append(chainNodes(e.Operand), e)
}
