// Package decls implements the declaration environment (§3.3): variable
// declarations, function declarations with overload sets, and the
// container/namespace candidate-name resolution the type checker uses.
package decls

import "github.com/funvibe/exprlang/internal/types"

// Variable is a (possibly dotted) name bound to a type (§3.3).
type Variable struct {
	Name string
	Type types.Type
}

// Overload is one concrete signature of a function name (§3.3, GLOSSARY).
type Overload struct {
	ID         string
	Receiver   bool // member-style x.f(y) vs global f(x, y)
	ArgTypes   []types.Type
	ResultType types.Type
	TypeParams []string // type parameters occurring in this signature

	// Strict selects error/unknown propagation before invocation;
	// !Strict ("lazy") overloads receive raw argument values (§4.5).
	Strict bool
}

// Function is a name bound to a non-empty set of overloads (§3.3).
type Function struct {
	Name      string
	Overloads []*Overload
}
