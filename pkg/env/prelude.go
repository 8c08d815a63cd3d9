package env

import (
	"strings"
	"time"

	"github.com/funvibe/exprlang/internal/ast"
	"github.com/funvibe/exprlang/internal/decls"
	"github.com/funvibe/exprlang/internal/functions"
	"github.com/funvibe/exprlang/internal/types"
)

// registerPrelude declares and implements the built-in overloads every
// Environment needs to run §8's testable scenarios: int/double arithmetic
// and comparison, string concatenation, the special-cased operators the
// checker/planner hardcode by overload id (equals, not_equals,
// logical_not, negate_int/double, index_list/map), and the string member
// functions and duration constructor §8 scenarios 5-7 exercise.
func registerPrelude(e *Environment) error {
	for _, reg := range specialOverloads() {
		if err := e.Funcs.Add(reg); err != nil {
			return err
		}
	}
	for _, reg := range ordinaryOverloads() {
		if err := e.AddFunction(reg.op, reg.decl, reg.impl); err != nil {
			return err
		}
	}
	return nil
}

// specialOverloads are the impls backing the overload ids the checker
// hardcodes directly onto a Reference (visitCall in internal/checker/
// call.go) rather than resolving through the declaration environment —
// these are never declared via decls.AddFunction, only registered here.
func specialOverloads() []*functions.Impl {
	return []*functions.Impl{
		{
			OverloadID: "equals", Receiver: false,
			ArgKinds: []types.Kind{functions.AnyKind, functions.AnyKind},
			// types.Equal already implements PropagateStrict internally, so
			// this overload is lazy: marking it Strict here would just make
			// the interpreter redo the same check before ever calling in.
			Strict: false,
			Binary: func(id int64, lhs, rhs types.Value) types.Value { return types.Equal(lhs, rhs) },
		},
		{
			OverloadID: "not_equals", Receiver: false,
			ArgKinds: []types.Kind{functions.AnyKind, functions.AnyKind},
			Strict:   false,
			Binary: func(id int64, lhs, rhs types.Value) types.Value {
				v := types.Equal(lhs, rhs)
				if b, ok := v.(types.BoolValue); ok {
					return types.BoolValue(!bool(b))
				}
				return v
			},
		},
		{
			OverloadID: "logical_not", Receiver: false,
			ArgKinds: []types.Kind{types.BoolKind}, Strict: true,
			Unary: func(id int64, arg types.Value) types.Value {
				return types.BoolValue(!bool(arg.(types.BoolValue)))
			},
		},
		{
			OverloadID: "negate_int", Receiver: false,
			ArgKinds: []types.Kind{types.IntKind}, Strict: true,
			Unary: func(id int64, arg types.Value) types.Value {
				return types.IntValue(-int64(arg.(types.IntValue)))
			},
		},
		{
			OverloadID: "negate_double", Receiver: false,
			ArgKinds: []types.Kind{types.DoubleKind}, Strict: true,
			Unary: func(id int64, arg types.Value) types.Value {
				return types.DoubleValue(-float64(arg.(types.DoubleValue)))
			},
		},
		{
			OverloadID: "index_list", Receiver: false,
			ArgKinds: []types.Kind{types.ListKind, functions.AnyKind}, Strict: true,
			Binary: func(id int64, lhs, rhs types.Value) types.Value {
				list := lhs.(*types.ListValue)
				idx, ok := asInt(rhs)
				if !ok {
					return types.NewError(id, "list index must be numeric, got %s", rhs.Kind())
				}
				if idx < 0 || idx >= int64(len(list.Elems)) {
					return types.NewError(id, "index %d out of range for list of length %d", idx, len(list.Elems))
				}
				return list.Elems[idx]
			},
		},
		{
			OverloadID: "index_map", Receiver: false,
			ArgKinds: []types.Kind{types.MapKind, functions.AnyKind}, Strict: true,
			Binary: func(id int64, lhs, rhs types.Value) types.Value {
				m := lhs.(*types.MapValue)
				v, found := m.Get(rhs)
				if !found {
					return types.NewError(id, "no such key: %s", rhs.String())
				}
				return v
			},
		},
	}
}

func asInt(v types.Value) (int64, bool) {
	switch n := v.(type) {
	case types.IntValue:
		return int64(n), true
	case types.UintValue:
		return int64(n), true
	default:
		return 0, false
	}
}

type overloadReg struct {
	op   string
	decl *decls.Overload
	impl *functions.Impl
}

// ordinaryOverloads are declared through Environment.AddFunction, so they
// go through ordinary §4.1 name-resolution/overload-selection rather than
// being hardcoded by the checker.
func ordinaryOverloads() []overloadReg {
	var regs []overloadReg

	arith := []struct {
		name string
		op   string
		fn   func(a, b float64) float64
		ifn  func(a, b int64) int64
	}{
		{"add", ast.OpAdd, func(a, b float64) float64 { return a + b }, func(a, b int64) int64 { return a + b }},
		{"subtract", ast.OpSubtract, func(a, b float64) float64 { return a - b }, func(a, b int64) int64 { return a - b }},
		{"multiply", ast.OpMultiply, func(a, b float64) float64 { return a * b }, func(a, b int64) int64 { return a * b }},
	}
	for _, a := range arith {
		a := a
		regs = append(regs,
			overloadReg{a.op,
				&decls.Overload{ID: a.name + "_int_int", ArgTypes: []types.Type{types.IntType, types.IntType}, ResultType: types.IntType, Strict: true},
				&functions.Impl{OverloadID: a.name + "_int_int", ArgKinds: []types.Kind{types.IntKind, types.IntKind}, Strict: true,
					Binary: func(id int64, lhs, rhs types.Value) types.Value {
						return types.IntValue(a.ifn(int64(lhs.(types.IntValue)), int64(rhs.(types.IntValue))))
					}},
			},
			overloadReg{a.op,
				&decls.Overload{ID: a.name + "_double_double", ArgTypes: []types.Type{types.DoubleType, types.DoubleType}, ResultType: types.DoubleType, Strict: true},
				&functions.Impl{OverloadID: a.name + "_double_double", ArgKinds: []types.Kind{types.DoubleKind, types.DoubleKind}, Strict: true,
					Binary: func(id int64, lhs, rhs types.Value) types.Value {
						return types.DoubleValue(a.fn(float64(lhs.(types.DoubleValue)), float64(rhs.(types.DoubleValue))))
					}},
			},
		)
	}

	regs = append(regs,
		overloadReg{ast.OpAdd,
			&decls.Overload{ID: "add_string_string", ArgTypes: []types.Type{types.StringType, types.StringType}, ResultType: types.StringType, Strict: true},
			&functions.Impl{OverloadID: "add_string_string", ArgKinds: []types.Kind{types.StringKind, types.StringKind}, Strict: true,
				Binary: func(id int64, lhs, rhs types.Value) types.Value {
					return types.StringValue(string(lhs.(types.StringValue)) + string(rhs.(types.StringValue)))
				}},
		},
		overloadReg{ast.OpDivide,
			&decls.Overload{ID: "divide_int_int", ArgTypes: []types.Type{types.IntType, types.IntType}, ResultType: types.IntType, Strict: true},
			&functions.Impl{OverloadID: "divide_int_int", ArgKinds: []types.Kind{types.IntKind, types.IntKind}, Strict: true,
				Binary: func(id int64, lhs, rhs types.Value) types.Value {
					r := int64(rhs.(types.IntValue))
					if r == 0 {
						return types.NewError(id, "division by zero")
					}
					return types.IntValue(int64(lhs.(types.IntValue)) / r)
				}},
		},
		overloadReg{ast.OpDivide,
			&decls.Overload{ID: "divide_double_double", ArgTypes: []types.Type{types.DoubleType, types.DoubleType}, ResultType: types.DoubleType, Strict: true},
			&functions.Impl{OverloadID: "divide_double_double", ArgKinds: []types.Kind{types.DoubleKind, types.DoubleKind}, Strict: true,
				Binary: func(id int64, lhs, rhs types.Value) types.Value {
					return types.DoubleValue(float64(lhs.(types.DoubleValue)) / float64(rhs.(types.DoubleValue)))
				}},
		},
		overloadReg{ast.OpModulo,
			&decls.Overload{ID: "modulo_int_int", ArgTypes: []types.Type{types.IntType, types.IntType}, ResultType: types.IntType, Strict: true},
			&functions.Impl{OverloadID: "modulo_int_int", ArgKinds: []types.Kind{types.IntKind, types.IntKind}, Strict: true,
				Binary: func(id int64, lhs, rhs types.Value) types.Value {
					r := int64(rhs.(types.IntValue))
					if r == 0 {
						return types.NewError(id, "modulo by zero")
					}
					return types.IntValue(int64(lhs.(types.IntValue)) % r)
				}},
		},
	)

	cmp := []struct {
		name string
		op   string
		ifn  func(a, b int64) bool
		ffn  func(a, b float64) bool
	}{
		{"less", ast.OpLess, func(a, b int64) bool { return a < b }, func(a, b float64) bool { return a < b }},
		{"less_equals", ast.OpLessOrEqual, func(a, b int64) bool { return a <= b }, func(a, b float64) bool { return a <= b }},
		{"greater", ast.OpGreater, func(a, b int64) bool { return a > b }, func(a, b float64) bool { return a > b }},
		{"greater_equals", ast.OpGreaterOrEqual, func(a, b int64) bool { return a >= b }, func(a, b float64) bool { return a >= b }},
	}
	for _, c := range cmp {
		c := c
		regs = append(regs,
			overloadReg{c.op,
				&decls.Overload{ID: c.name + "_int_int", ArgTypes: []types.Type{types.IntType, types.IntType}, ResultType: types.BoolType, Strict: true},
				&functions.Impl{OverloadID: c.name + "_int_int", ArgKinds: []types.Kind{types.IntKind, types.IntKind}, Strict: true,
					Binary: func(id int64, lhs, rhs types.Value) types.Value {
						return types.BoolValue(c.ifn(int64(lhs.(types.IntValue)), int64(rhs.(types.IntValue))))
					}},
			},
			overloadReg{c.op,
				&decls.Overload{ID: c.name + "_double_double", ArgTypes: []types.Type{types.DoubleType, types.DoubleType}, ResultType: types.BoolType, Strict: true},
				&functions.Impl{OverloadID: c.name + "_double_double", ArgKinds: []types.Kind{types.DoubleKind, types.DoubleKind}, Strict: true,
					Binary: func(id int64, lhs, rhs types.Value) types.Value {
						return types.BoolValue(c.ffn(float64(lhs.(types.DoubleValue)), float64(rhs.(types.DoubleValue))))
					}},
			},
		)
	}

	// String member functions (§8 scenarios 5-6).
	regs = append(regs,
		overloadReg{"lowerAscii",
			&decls.Overload{ID: "string_lowerAscii", Receiver: true, ArgTypes: []types.Type{types.StringType}, ResultType: types.StringType, Strict: true},
			&functions.Impl{OverloadID: "string_lowerAscii", Receiver: true, ArgKinds: []types.Kind{types.StringKind}, Strict: true,
				Unary: func(id int64, arg types.Value) types.Value {
					return types.StringValue(lowerASCII(string(arg.(types.StringValue))))
				}},
		},
		overloadReg{"split",
			&decls.Overload{ID: "string_split", Receiver: true, ArgTypes: []types.Type{types.StringType, types.StringType}, ResultType: types.ListType{Elem: types.StringType}, Strict: true},
			&functions.Impl{OverloadID: "string_split", Receiver: true, ArgKinds: []types.Kind{types.StringKind, types.StringKind}, Strict: true,
				Binary: func(id int64, lhs, rhs types.Value) types.Value {
					parts := strings.Split(string(lhs.(types.StringValue)), string(rhs.(types.StringValue)))
					elems := make([]types.Value, len(parts))
					for i, p := range parts {
						elems[i] = types.StringValue(p)
					}
					return types.NewList(elems...)
				}},
		},
		// duration_value(seconds: double) -> duration (§8 scenario 7).
		overloadReg{"duration_value",
			&decls.Overload{ID: "duration_value_double", ArgTypes: []types.Type{types.DoubleType}, ResultType: types.DurationType, Strict: true},
			&functions.Impl{OverloadID: "duration_value_double", ArgKinds: []types.Kind{types.DoubleKind}, Strict: true,
				Unary: func(id int64, arg types.Value) types.Value {
					seconds := float64(arg.(types.DoubleValue))
					return types.DurationValue(time.Duration(seconds * float64(time.Second)))
				}},
		},
	)

	return regs
}

// lowerASCII lowers only the ASCII A-Z range, leaving every other byte
// untouched (CEL's lowerAscii is explicitly ASCII-only, not Unicode
// case-folding).
func lowerASCII(s string) string {
	b := []byte(s)
	for i, c := range b {
		if c >= 'A' && c <= 'Z' {
			b[i] = c - 'A' + 'a'
		}
	}
	return string(b)
}
