package planner

import (
	"github.com/funvibe/exprlang/internal/ast"
	"github.com/funvibe/exprlang/internal/types"
)

func optMask(n int, optional []int) []bool {
	mask := make([]bool, n)
	for _, i := range optional {
		if i >= 0 && i < n {
			mask[i] = true
		}
	}
	return mask
}

// planList lowers a list literal: element steps then a MakeList step
// carrying the arity and which positions are optional so the
// interpreter can splice out absent optionals (§4.3).
func (p *planner) planList(e *ast.Expr) {
	for _, el := range e.Elements {
		p.plan(el)
	}
	p.emit(Step{
		Op:      OpMakeList,
		ID:      e.ID,
		Arity:   len(e.Elements),
		OptMask: optMask(len(e.Elements), e.OptionalIndices),
	})
}

// planMap lowers a map literal: key/value steps interleaved, then a
// MakeMap step (§4.3).
func (p *planner) planMap(e *ast.Expr) {
	mask := make([]bool, len(e.Entries))
	for _, entry := range e.Entries {
		p.plan(entry.Key)
		p.plan(entry.Value)
	}
	for i, entry := range e.Entries {
		mask[i] = entry.Optional
	}
	p.emit(Step{Op: OpMakeMap, ID: e.ID, Arity: len(e.Entries), OptMask: mask})
}

// planStruct lowers a struct literal (§6) the same way MakeMap lowers a
// map literal, tagged with the struct's declared type name so the
// interpreter can hand the field/value pairs to the host's struct
// constructor (internal/hoststruct) instead of building a MapValue.
func (p *planner) planStruct(e *ast.Expr) {
	mask := make([]bool, len(e.Entries))
	for i, entry := range e.Entries {
		p.emit(Step{Op: OpPushConst, ID: entry.ID, Const: types.StringValue(entry.Field)})
		p.plan(entry.Value)
		mask[i] = entry.Optional
	}
	p.emit(Step{Op: OpMakeStruct, ID: e.ID, Arity: len(e.Entries), OptMask: mask, TypeName: e.TypeName})
}
