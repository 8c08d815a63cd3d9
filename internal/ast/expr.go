// Package ast defines the checked-AST node shapes the core consumes from
// the (out of scope) parser, per spec §3.4 and §6.
package ast

import "github.com/funvibe/exprlang/internal/types"

// ExprKind discriminates the expression node sum (§6).
type ExprKind uint8

const (
	ConstKind ExprKind = iota
	IdentKind
	SelectKind
	CallKind
	ListKind
	MapKind
	StructKind
	ComprehensionKind
)

// Expr is a single node in the AST the core consumes. Every node carries
// a stable integer id assigned by the (out of scope) parser (§3.4); the
// checker and planner key their side-tables off this id.
type Expr struct {
	ID   int64
	Kind ExprKind

	// ConstKind
	Const types.Value

	// IdentKind: a (possibly dotted) name as written, e.g. "a.b.c".
	Name string

	// SelectKind
	Operand  *Expr
	Field    string
	TestOnly bool

	// CallKind
	Target   *Expr // nil for a non-member (global) call
	Function string
	Args     []*Expr

	// ListKind
	Elements        []*Expr
	OptionalIndices []int // indices into Elements that are optional (§4.3)

	// MapKind / StructKind
	Entries  []*Entry
	TypeName string // StructKind only: the struct's declared type name

	// ComprehensionKind (§4.1, §6: seven subfields)
	IterVar       string
	IterRange     *Expr
	AccuVar       string
	AccuInit      *Expr
	LoopCondition *Expr
	LoopStep      *Expr
	Result        *Expr
	// MacroCall records which higher-order macro (all/exists/map/filter/
	// exists_one/bind) this comprehension was expanded from, and the AST
	// id of the macro call site (SPEC_FULL.md §D). For most macro names
	// it is bookkeeping only: nothing in this module reads it, and checker
	// issue messages do not mention the macro; Name == "bind"
	// is the one exception with semantic weight, since it is the
	// planner's only signal (internal/planner/comprehension.go) to lower
	// this node as a lazy `cel.bind` local instead of the six-step loop —
	// a `cel.bind` has no genuine iteration to plan (AccuInit is the
	// bound value, Result is the body, IterVar/IterRange/LoopCondition/
	// LoopStep are unused), so nothing short of this name distinguishes
	// it from an ordinary comprehension at the planner's level.
	MacroCall *MacroCall
}

// MacroCall records which higher-order macro a comprehension was expanded
// from (SPEC_FULL.md §D).
type MacroCall struct {
	Name string // "all", "exists", "map", "filter", "exists_one", "bind"
	ID   int64  // AST id of the macro call site
}

// Entry is one key/value (map) or field/value (struct) literal entry.
type Entry struct {
	ID       int64
	Key      *Expr  // MapKind: the key expression
	Field    string // StructKind: the declared field name
	Value    *Expr
	Optional bool // §4.3: a `?` optional entry
}

// NewConst builds a constant-literal node.
func NewConst(id int64, v types.Value) *Expr {
	return &Expr{ID: id, Kind: ConstKind, Const: v}
}

// NewIdent builds an identifier node.
func NewIdent(id int64, name string) *Expr {
	return &Expr{ID: id, Kind: IdentKind, Name: name}
}

// NewSelect builds a field-select node.
func NewSelect(id int64, operand *Expr, field string, testOnly bool) *Expr {
	return &Expr{ID: id, Kind: SelectKind, Operand: operand, Field: field, TestOnly: testOnly}
}

// NewCall builds a call node; target is nil for a global function call.
func NewCall(id int64, target *Expr, function string, args ...*Expr) *Expr {
	return &Expr{ID: id, Kind: CallKind, Target: target, Function: function, Args: args}
}

// NewList builds a list-literal node.
func NewList(id int64, optionalIndices []int, elements ...*Expr) *Expr {
	return &Expr{ID: id, Kind: ListKind, Elements: elements, OptionalIndices: optionalIndices}
}

// NewMap builds a map-literal node.
func NewMap(id int64, entries ...*Entry) *Expr {
	return &Expr{ID: id, Kind: MapKind, Entries: entries}
}

// NewStruct builds a struct-literal node.
func NewStruct(id int64, typeName string, entries ...*Entry) *Expr {
	return &Expr{ID: id, Kind: StructKind, TypeName: typeName, Entries: entries}
}

// NewComprehension builds a comprehension node (§4.1).
func NewComprehension(id int64, iterVar string, iterRange *Expr, accuVar string, accuInit, loopCond, loopStep, result *Expr) *Expr {
	return &Expr{
		ID:            id,
		Kind:          ComprehensionKind,
		IterVar:       iterVar,
		IterRange:     iterRange,
		AccuVar:       accuVar,
		AccuInit:      accuInit,
		LoopCondition: loopCond,
		LoopStep:      loopStep,
		Result:        result,
	}
}
