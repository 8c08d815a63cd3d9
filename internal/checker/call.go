package checker

import (
	"github.com/funvibe/exprlang/internal/ast"
	"github.com/funvibe/exprlang/internal/types"
)

// visitCall types a call node, special-casing the syntactic operators
// the planner also special-cases (§4.1, §4.3; grounded on cel-go's
// planCall switch in
// other_examples/9e7f2e02_google-cel-go__interpreter-planner.go.go)
// before falling back to ordinary overload resolution.
func (c *checker) visitCall(e *ast.Expr) types.Type {
	switch e.Function {
	case ast.OpLogicalAnd, ast.OpLogicalOr:
		return c.visitLogical(e)
	case ast.OpConditional:
		return c.visitConditional(e)
	case ast.OpEquals:
		for _, a := range e.Args {
			c.visit(a)
		}
		c.checked.SetReference(e.ID, &ast.Reference{OverloadIDs: []string{"equals"}})
		return types.BoolType
	case ast.OpNotEquals:
		for _, a := range e.Args {
			c.visit(a)
		}
		c.checked.SetReference(e.ID, &ast.Reference{OverloadIDs: []string{"not_equals"}})
		return types.BoolType
	case ast.OpIndex:
		return c.visitIndex(e)
	case ast.OpNot:
		argType := c.visit(e.Args[0])
		if !types.Assignable(types.BoolType, argType) && argType.Tag() != types.DynTag {
			c.addIssue(e.ID, SeverityError, "operator ! requires bool, got %s", argType)
		}
		c.checked.SetReference(e.ID, &ast.Reference{OverloadIDs: []string{"logical_not"}})
		return types.BoolType
	case ast.OpNegate:
		argType := c.visit(e.Args[0])
		if !isNumericType(argType) && argType.Tag() != types.DynTag {
			c.addIssue(e.ID, SeverityError, "unary - requires a numeric type, got %s", argType)
			c.checked.SetReference(e.ID, &ast.Reference{OverloadIDs: []string{"negate_int", "negate_double"}})
			return types.DynType
		}
		c.checked.SetReference(e.ID, &ast.Reference{OverloadIDs: []string{"negate_int", "negate_double"}})
		return argType
	}
	return c.visitOrdinaryCall(e)
}

func (c *checker) visitLogical(e *ast.Expr) types.Type {
	for _, a := range e.Args {
		t := c.visit(a)
		if !types.Assignable(types.BoolType, t) && t.Tag() != types.DynTag {
			c.addIssue(a.ID, SeverityError, "operand of %s must be bool, got %s", e.Function, t)
		}
	}
	return types.BoolType
}

func (c *checker) visitConditional(e *ast.Expr) types.Type {
	condType := c.visit(e.Args[0])
	if !types.Assignable(types.BoolType, condType) && condType.Tag() != types.DynTag {
		c.addIssue(e.Args[0].ID, SeverityError, "conditional's test must be bool, got %s", condType)
	}
	thenType := c.visit(e.Args[1])
	elseType := c.visit(e.Args[2])
	if thenType.String() == elseType.String() {
		return thenType
	}
	return types.DynType
}

// indexOverloadIDs names the two builtin overloads the prelude registers
// for "_[_]" (pkg/env's default environment); the planner plans an index
// expression as an ordinary Call against these ids, so the checker
// records them here even though it also does its own precise typing for
// better diagnostics.
var indexOverloadIDs = []string{"index_list", "index_map"}

func (c *checker) visitIndex(e *ast.Expr) types.Type {
	collType := c.visit(e.Args[0])
	keyType := c.visit(e.Args[1])
	c.checked.SetReference(e.ID, &ast.Reference{OverloadIDs: indexOverloadIDs})

	switch t := collType.(type) {
	case types.ListType:
		if !isNumericType(keyType) && keyType.Tag() != types.DynTag {
			c.addIssue(e.ID, SeverityError, "list index must be numeric, got %s", keyType)
		}
		return t.Elem
	case types.MapType:
		if !types.Assignable(t.Key, keyType) && keyType.Tag() != types.DynTag {
			c.addIssue(e.ID, SeverityError, "map index type %s does not match key type %s", keyType, t.Key)
		}
		return t.Value
	default:
		if collType.Tag() == types.DynTag {
			return types.DynType
		}
		c.addIssue(e.ID, SeverityError, "cannot index into type %s", collType)
		return types.DynType
	}
}

func (c *checker) visitOrdinaryCall(e *ast.Expr) types.Type {
	fnName, isMember, receiver := resolveFunctionName(c.env, e)

	var argTypes []types.Type
	if isMember {
		argTypes = append(argTypes, c.visit(receiver))
	}
	for _, a := range e.Args {
		argTypes = append(argTypes, c.visit(a))
	}

	fn, ok := c.env.LookupFunction(fnName)
	if !ok {
		c.addIssue(e.ID, SeverityError, "undeclared reference to function %q", fnName)
		return types.DynType
	}

	resultType, overloadIDs, matched := resolveOverloads(fn, isMember, argTypes)
	if !matched {
		c.addIssue(e.ID, SeverityError, "no matching overload for %q", fnName)
		return types.DynType
	}
	c.checked.SetReference(e.ID, &ast.Reference{OverloadIDs: overloadIDs, Member: isMember})
	return resultType
}

func isNumericType(t types.Type) bool {
	switch t.Tag() {
	case types.IntTag, types.UintTag, types.DoubleTag:
		return true
	default:
		return false
	}
}
