// Package interpreter executes a planner.Program against an Activation and
// a function registry (§4.4): a single mutable Frame — value stack, slot
// array, cursor — walking the flat step list until it runs off the end,
// leaving exactly one value on the stack.
package interpreter

import "github.com/funvibe/exprlang/internal/types"

// Activation is a per-evaluation lookup from free-variable names to values
// (§3.6, §6). A concrete Activation decides for itself whether an
// attribute it cannot resolve is an UnknownValue (partial evaluation,
// scenario 8) or simply absent; the interpreter only distinguishes found
// from not-found.
type Activation interface {
	Resolve(name string) (types.Value, bool)
}

// MapActivation is the simplest Activation: a flat name->value map,
// grounded on the common host-embedding case (a struct of request fields).
type MapActivation map[string]types.Value

func (m MapActivation) Resolve(name string) (types.Value, bool) {
	v, ok := m[name]
	return v, ok
}

// PartialActivation is an Activation that additionally knows which of its
// missing names are deliberately-unresolved attribute patterns rather than
// genuinely absent ones (§3.1 scenario 8, §6 "also supplies the set of
// unknown attribute patterns for partial evaluation"). The Resolve opcode
// checks this only when the plain lookup misses.
type PartialActivation interface {
	Activation
	IsUnknownAttribute(name string) bool
}
