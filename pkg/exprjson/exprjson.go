// Package exprjson is the wire format cmd/exprlang and cmd/exprserver use
// to carry an expression in and a value out, since the expression parser
// is explicitly out of scope (§1 Non-goals): hosts construct the checked-
// AST-consumable ast.Expr tree as JSON directly instead of writing source
// text for this module to parse.
package exprjson

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"time"

	"github.com/funvibe/exprlang/internal/ast"
	"github.com/funvibe/exprlang/internal/types"
)

// Expr is the on-disk shape of one expression node. Every field mirrors
// ast.Expr directly; Kind selects which of the others are meaningful,
// exactly like ast.Expr's own ExprKind tag.
type Expr struct {
	Kind string `json:"kind"`
	ID   int64  `json:"id"`

	Const *Value `json:"const,omitempty"`

	Name string `json:"name,omitempty"`

	Operand  *Expr `json:"operand,omitempty"`
	Field    string `json:"field,omitempty"`
	TestOnly bool   `json:"testOnly,omitempty"`

	Target   *Expr   `json:"target,omitempty"`
	Function string  `json:"function,omitempty"`
	Args     []*Expr `json:"args,omitempty"`

	Elements        []*Expr `json:"elements,omitempty"`
	OptionalIndices []int   `json:"optionalIndices,omitempty"`

	Entries  []*Entry `json:"entries,omitempty"`
	TypeName string    `json:"typeName,omitempty"`

	IterVar       string `json:"iterVar,omitempty"`
	IterRange     *Expr  `json:"iterRange,omitempty"`
	AccuVar       string `json:"accuVar,omitempty"`
	AccuInit      *Expr  `json:"accuInit,omitempty"`
	LoopCondition *Expr  `json:"loopCondition,omitempty"`
	LoopStep      *Expr  `json:"loopStep,omitempty"`
	Result        *Expr  `json:"result,omitempty"`
}

// Entry is one key/value (map) or field/value (struct) literal entry.
type Entry struct {
	ID       int64  `json:"id"`
	Key      *Expr  `json:"key,omitempty"`
	Field    string `json:"field,omitempty"`
	Value    *Expr  `json:"value"`
	Optional bool   `json:"optional,omitempty"`
}

// Value encodes a types.Value constant. Type names match types.Primitive's
// canonical String() spellings except that null is spelled "null" (not
// "null_type"), with "bytes" base64-encoded, "duration" a number of
// seconds, and "timestamp" RFC3339.
type Value struct {
	Type  string          `json:"type"`
	Value json.RawMessage `json:"value"`
}

// DecodeExpr parses data into an ast.Expr tree the checker can consume.
func DecodeExpr(data []byte) (*ast.Expr, error) {
	var e Expr
	if err := json.Unmarshal(data, &e); err != nil {
		return nil, err
	}
	return e.toAST()
}

// DecodeValue parses data into a single types.Value (e.g. one activation
// variable's binding).
func DecodeValue(data []byte) (types.Value, error) {
	var v Value
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, err
	}
	return v.ToValue()
}

func (e *Expr) toAST() (*ast.Expr, error) {
	if e == nil {
		return nil, nil
	}
	switch e.Kind {
	case "const":
		v, err := e.Const.ToValue()
		if err != nil {
			return nil, fmt.Errorf("id %d: %w", e.ID, err)
		}
		return ast.NewConst(e.ID, v), nil
	case "ident":
		return ast.NewIdent(e.ID, e.Name), nil
	case "select":
		operand, err := e.Operand.toAST()
		if err != nil {
			return nil, err
		}
		return ast.NewSelect(e.ID, operand, e.Field, e.TestOnly), nil
	case "call":
		target, err := e.Target.toAST()
		if err != nil {
			return nil, err
		}
		args, err := toASTSlice(e.Args)
		if err != nil {
			return nil, err
		}
		return ast.NewCall(e.ID, target, e.Function, args...), nil
	case "list":
		elems, err := toASTSlice(e.Elements)
		if err != nil {
			return nil, err
		}
		return ast.NewList(e.ID, e.OptionalIndices, elems...), nil
	case "map":
		entries, err := toEntrySlice(e.Entries)
		if err != nil {
			return nil, err
		}
		return ast.NewMap(e.ID, entries...), nil
	case "struct":
		entries, err := toEntrySlice(e.Entries)
		if err != nil {
			return nil, err
		}
		return ast.NewStruct(e.ID, e.TypeName, entries...), nil
	case "comprehension":
		iterRange, err := e.IterRange.toAST()
		if err != nil {
			return nil, err
		}
		accuInit, err := e.AccuInit.toAST()
		if err != nil {
			return nil, err
		}
		loopCond, err := e.LoopCondition.toAST()
		if err != nil {
			return nil, err
		}
		loopStep, err := e.LoopStep.toAST()
		if err != nil {
			return nil, err
		}
		result, err := e.Result.toAST()
		if err != nil {
			return nil, err
		}
		return ast.NewComprehension(e.ID, e.IterVar, iterRange, e.AccuVar, accuInit, loopCond, loopStep, result), nil
	default:
		return nil, fmt.Errorf("id %d: unrecognized expression kind %q", e.ID, e.Kind)
	}
}

func toASTSlice(in []*Expr) ([]*ast.Expr, error) {
	out := make([]*ast.Expr, len(in))
	for i, e := range in {
		a, err := e.toAST()
		if err != nil {
			return nil, err
		}
		out[i] = a
	}
	return out, nil
}

func toEntrySlice(in []*Entry) ([]*ast.Entry, error) {
	out := make([]*ast.Entry, len(in))
	for i, en := range in {
		key, err := en.Key.toAST()
		if err != nil {
			return nil, err
		}
		val, err := en.Value.toAST()
		if err != nil {
			return nil, err
		}
		out[i] = &ast.Entry{ID: en.ID, Key: key, Field: en.Field, Value: val, Optional: en.Optional}
	}
	return out, nil
}

// ToValue decodes v into a types.Value.
func (v *Value) ToValue() (types.Value, error) {
	if v == nil {
		return types.NullValue{}, nil
	}
	switch v.Type {
	case "null":
		return types.NullValue{}, nil
	case "bool":
		var b bool
		if err := json.Unmarshal(v.Value, &b); err != nil {
			return nil, err
		}
		return types.BoolValue(b), nil
	case "int":
		var i int64
		if err := json.Unmarshal(v.Value, &i); err != nil {
			return nil, err
		}
		return types.IntValue(i), nil
	case "uint":
		var u uint64
		if err := json.Unmarshal(v.Value, &u); err != nil {
			return nil, err
		}
		return types.UintValue(u), nil
	case "double":
		var f float64
		if err := json.Unmarshal(v.Value, &f); err != nil {
			return nil, err
		}
		return types.DoubleValue(f), nil
	case "string":
		var s string
		if err := json.Unmarshal(v.Value, &s); err != nil {
			return nil, err
		}
		return types.StringValue(s), nil
	case "bytes":
		var s string
		if err := json.Unmarshal(v.Value, &s); err != nil {
			return nil, err
		}
		b, err := base64.StdEncoding.DecodeString(s)
		if err != nil {
			return nil, fmt.Errorf("bytes value must be base64: %w", err)
		}
		return types.BytesValue(b), nil
	case "duration":
		var secs float64
		if err := json.Unmarshal(v.Value, &secs); err != nil {
			return nil, err
		}
		return types.DurationValue(time.Duration(secs * float64(time.Second))), nil
	case "timestamp":
		var s string
		if err := json.Unmarshal(v.Value, &s); err != nil {
			return nil, err
		}
		t, err := time.Parse(time.RFC3339Nano, s)
		if err != nil {
			return nil, fmt.Errorf("timestamp value must be RFC3339: %w", err)
		}
		return types.TimestampValue(t), nil
	default:
		return nil, fmt.Errorf("unrecognized constant type %q", v.Type)
	}
}
