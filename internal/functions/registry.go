// Package functions implements the function registry and host-value
// adapters (§4.5): implementations are indexed by overload id only, and
// a call is dispatched over the overload ids the checker recorded for
// it; the registry has no lookup by function name, receiver, or arity.
// Strict overloads are invoked only after error/unknown propagation,
// lazy overloads receive raw argument values.
package functions

import (
	"fmt"

	"github.com/funvibe/exprlang/internal/types"
)

// AnyKind is a dispatch-only sentinel meaning "this argument position
// accepts any value kind" (used for dyn- or type-parameter-typed
// positions), so the evaluator's runtime overload dispatch can still be
// O(overloads) kind-matching rather than general assignability (Design
// Notes §9 "Overload selection at runtime").
const AnyKind types.Kind = 255

// UnaryOp, BinaryOp, and VarArgOp mirror the three calling conventions an
// overload may implement (§4.5), named after the roles cel-go's
// functions.Overload documents for Unary/Binary/Function (see
// other_examples/9e7f2e02_google-cel-go__interpreter-planner.go.go's
// planCallUnary/planCallBinary/planCallVarArgs).
type UnaryOp func(id int64, arg types.Value) types.Value
type BinaryOp func(id int64, lhs, rhs types.Value) types.Value
type VarArgOp func(id int64, args []types.Value) types.Value

// Impl is one registered, invocable overload implementation.
type Impl struct {
	OverloadID string
	Receiver   bool
	// ArgKinds drives runtime dispatch when the checker left multiple
	// candidate overloads unresolved (§4.1 "several apply... at runtime
	// the evaluator picks the first whose concrete values fit"). Use
	// AnyKind for a position that accepts any value kind.
	ArgKinds []types.Kind
	// Strict selects error/unknown propagation before invocation; a lazy
	// (!Strict) overload receives raw argument values, including errors
	// and unknowns, and is responsible for its own propagation if any.
	Strict bool

	Unary    UnaryOp
	Binary   BinaryOp
	Function VarArgOp
}

// Arity returns the implementation's fixed arity, or -1 for a var-arg
// Function implementation.
func (impl *Impl) Arity() int {
	switch {
	case impl.Unary != nil:
		return 1
	case impl.Binary != nil:
		return 2
	default:
		return -1
	}
}

// Fits reports whether impl can be invoked with the given argument kinds
// (runtime kind-matching dispatch, Design Notes §9).
func (impl *Impl) Fits(argKinds []types.Kind) bool {
	if len(impl.ArgKinds) != len(argKinds) {
		return false
	}
	for i, k := range impl.ArgKinds {
		if k != AnyKind && k != argKinds[i] {
			return false
		}
	}
	return true
}

// Registry indexes function overload implementations by overload id.
type Registry struct {
	byID map[string]*Impl
}

func NewRegistry() *Registry {
	return &Registry{byID: map[string]*Impl{}}
}

// Add registers impl, rejecting a second registration under the same
// overload id.
func (r *Registry) Add(impl *Impl) error {
	if _, exists := r.byID[impl.OverloadID]; exists {
		return fmt.Errorf("functions: overload id %q already registered", impl.OverloadID)
	}
	r.byID[impl.OverloadID] = impl
	return nil
}

// FindByID looks up a registered implementation by overload id.
func (r *Registry) FindByID(id string) (*Impl, bool) {
	impl, ok := r.byID[id]
	return impl, ok
}

// Dispatch tries each candidate overload id in order and invokes the
// first whose Impl exists and whose ArgKinds fit the concrete argument
// kinds (§4.4 Call opcode semantics, Design Notes §9). Strict
// error/unknown propagation is the caller's responsibility (the
// interpreter's Call opcode performs it once, before Dispatch, per
// §4.4); Dispatch itself only invokes.
func (r *Registry) Dispatch(id int64, overloadIDs []string, args []types.Value) (types.Value, bool) {
	argKinds := make([]types.Kind, len(args))
	for i, a := range args {
		argKinds[i] = a.Kind()
	}
	for _, oid := range overloadIDs {
		impl, ok := r.byID[oid]
		if !ok || !impl.Fits(argKinds) {
			continue
		}
		return invoke(impl, id, args), true
	}
	return nil, false
}

func invoke(impl *Impl, id int64, args []types.Value) types.Value {
	switch {
	case impl.Unary != nil:
		return impl.Unary(id, args[0])
	case impl.Binary != nil:
		return impl.Binary(id, args[0], args[1])
	case impl.Function != nil:
		return impl.Function(id, args)
	default:
		return types.NewError(id, "functions: overload %q has no implementation", impl.OverloadID)
	}
}
