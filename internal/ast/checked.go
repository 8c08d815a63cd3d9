package ast

import "github.com/funvibe/exprlang/internal/types"

// Reference is what an identifier or call node resolved to (§3.4): either
// a variable's fully-qualified name, or one or more candidate overload
// ids for a call (more than one only when overload resolution could not
// disambiguate and left alternatives, §4.1).
type Reference struct {
	// Name is set when this reference names a variable (possibly
	// qualified, e.g. "request.auth").
	Name string
	// OverloadIDs is set when this reference names a function call; a
	// single entry is the common case, multiple only when several
	// overloads all type-checked and were left as runtime alternatives.
	OverloadIDs []string
	// Value is set when the identifier resolved to a compile-time
	// constant (e.g. an enum value) rather than a variable lookup.
	Value types.Value

	// Member records, for a CallKind reference, whether the call's
	// Target (if any) is a genuine receiver expression to evaluate and
	// pass as the first argument (true), as opposed to a namespace
	// prefix the checker absorbed into a qualified, non-member function
	// name (false) — so the planner does not need to re-derive
	// resolveFunctionName's decision (§4.1 "a namespaced-function call").
	Member bool
}

func (r *Reference) IsVariable() bool { return r != nil && r.Name != "" && r.Value == nil }
func (r *Reference) IsFunction() bool { return r != nil && len(r.OverloadIDs) > 0 }
func (r *Reference) IsConstant() bool { return r != nil && r.Value != nil }

// Checked is the output of the type checker (§3.4, §6): the input AST plus
// two id-keyed maps that are complete for every id participating in
// evaluation.
type Checked struct {
	Expr *Expr

	refs  map[int64]*Reference
	types map[int64]types.Type
}

func NewChecked(root *Expr) *Checked {
	return &Checked{Expr: root, refs: map[int64]*Reference{}, types: map[int64]types.Type{}}
}

func (c *Checked) SetReference(id int64, ref *Reference) { c.refs[id] = ref }
func (c *Checked) SetType(id int64, t types.Type)         { c.types[id] = t }

func (c *Checked) Reference(id int64) (*Reference, bool) {
	r, ok := c.refs[id]
	return r, ok
}

func (c *Checked) TypeOf(id int64) types.Type {
	if t, ok := c.types[id]; ok {
		return t
	}
	return types.DynType
}

// ReferenceMap and TypeMap expose the raw maps for planner consumption
// (§3.5 "A planner input is a checked AST whose reference and type maps
// are complete for every id that participates in evaluation").
func (c *Checked) ReferenceMap() map[int64]*Reference { return c.refs }
func (c *Checked) TypeMap() map[int64]types.Type       { return c.types }
