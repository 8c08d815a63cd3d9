package checker

import (
	"github.com/funvibe/exprlang/internal/ast"
	"github.com/funvibe/exprlang/internal/config"
	"github.com/funvibe/exprlang/internal/decls"
	"github.com/funvibe/exprlang/internal/types"
)

// Result is the output of Check (§3.4, §6): the checked AST plus every
// issue surfaced along the way.
type Result struct {
	Checked *ast.Checked
	Issues  []Issue
}

// IsValid reports whether checking produced no error-severity issue.
func (r *Result) IsValid() bool {
	for _, iss := range r.Issues {
		if iss.Severity == SeverityError {
			return false
		}
	}
	return true
}

type checker struct {
	env     *decls.Env
	checked *ast.Checked
	issues  []Issue
	scopes  scopeStack

	nodeCount int
	limitHit  bool
}

// Check type-checks root against env, annotating a fresh Checked AST and
// collecting every issue rather than stopping at the first (§4.1
// "Failure semantics").
func Check(root *ast.Expr, env *decls.Env) *Result {
	c := &checker{env: env, checked: ast.NewChecked(root)}
	c.visit(root)
	return &Result{Checked: c.checked, Issues: c.issues}
}

func (c *checker) addIssue(id int64, sev Severity, format string, args ...interface{}) {
	c.issues = append(c.issues, newIssue(id, sev, format, args...))
}

// addIssueAt is addIssue plus a best-effort dotted path (§D "Issue source
// locations"), for diagnostics anchored on a node that is, or sits inside,
// a select chain.
func (c *checker) addIssueAt(id int64, path string, sev Severity, format string, args ...interface{}) {
	c.issues = append(c.issues, newIssueAt(id, path, sev, format, args...))
}

func (c *checker) visit(e *ast.Expr) types.Type {
	if e == nil {
		return types.DynType
	}
	c.nodeCount++
	if c.nodeCount > config.DefaultComplexityLimit {
		if !c.limitHit {
			c.limitHit = true
			c.addIssue(e.ID, SeverityError, "expression exceeds the configured complexity limit (%d nodes)", config.DefaultComplexityLimit)
		}
		c.checked.SetType(e.ID, types.DynType)
		return types.DynType
	}

	var t types.Type
	switch e.Kind {
	case ast.ConstKind:
		t = c.visitConst(e)
	case ast.IdentKind:
		t = c.checkChain(e)
		return t // checkChain already records e's type/reference.
	case ast.SelectKind:
		t = c.visitSelect(e)
		return t // visitSelect (via checkChain or directly) records e's type.
	case ast.CallKind:
		t = c.visitCall(e)
	case ast.ListKind:
		t = c.visitList(e)
	case ast.MapKind:
		t = c.visitMap(e)
	case ast.StructKind:
		t = c.visitStruct(e)
	case ast.ComprehensionKind:
		t = c.visitComprehension(e)
	default:
		t = types.DynType
	}
	c.checked.SetType(e.ID, t)
	return t
}

func (c *checker) visitConst(e *ast.Expr) types.Type {
	if e.Const == nil {
		return types.DynType
	}
	return e.Const.Type()
}

func (c *checker) visitSelect(e *ast.Expr) types.Type {
	if e.TestOnly {
		operandType := c.visit(e.Operand)
		c.selectField(e, operandType, true)
		c.checked.SetType(e.ID, types.BoolType)
		return types.BoolType
	}
	if _, ok := flattenChain(e); ok {
		return c.checkChain(e)
	}
	operandType := c.visit(e.Operand)
	result := c.selectField(e, operandType, false)
	c.checked.SetType(e.ID, result)
	return result
}

func (c *checker) visitList(e *ast.Expr) types.Type {
	var elemType types.Type
	for _, el := range e.Elements {
		t := c.visit(el)
		elemType = joinType(elemType, t)
	}
	if elemType == nil {
		elemType = types.DynType
	}
	return types.ListType{Elem: elemType}
}

func (c *checker) visitMap(e *ast.Expr) types.Type {
	var keyType, valType types.Type
	for _, entry := range e.Entries {
		kt := c.visit(entry.Key)
		vt := c.visit(entry.Value)
		keyType = joinType(keyType, kt)
		valType = joinType(valType, vt)
	}
	if keyType == nil {
		keyType = types.DynType
	}
	if valType == nil {
		valType = types.DynType
	}
	return types.MapType{Key: keyType, Value: valType}
}

func (c *checker) visitStruct(e *ast.Expr) types.Type {
	for _, entry := range e.Entries {
		c.visit(entry.Value)
	}
	return types.StructType{Name: e.TypeName}
}

func (c *checker) visitComprehension(e *ast.Expr) types.Type {
	rangeType := c.visit(e.IterRange)
	var iterType types.Type = types.DynType
	switch rt := rangeType.(type) {
	case types.ListType:
		iterType = rt.Elem
	case types.MapType:
		iterType = rt.Key
	default:
		if rangeType.Tag() != types.DynTag {
			c.addIssue(e.ID, SeverityError, "comprehension range must be a list or map, got %s", rangeType)
		}
	}

	accuType := c.visit(e.AccuInit)

	c.scopes.push(map[string]types.Type{
		e.IterVar: iterType,
		e.AccuVar: accuType,
	})

	condType := c.visit(e.LoopCondition)
	if !types.Assignable(types.BoolType, condType) && condType.Tag() != types.DynTag {
		c.addIssue(e.LoopCondition.ID, SeverityError, "comprehension loop condition must be bool, got %s", condType)
	}
	c.visit(e.LoopStep)
	resultType := c.visit(e.Result)

	c.scopes.pop()
	return resultType
}

// joinType merges two element/key/value types seen across a composite
// literal's entries: equal types stay precise, anything else collapses
// to dyn (§3.2, no implicit widening beyond dyn).
func joinType(a, b types.Type) types.Type {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}
	if a.String() == b.String() {
		return a
	}
	return types.DynType
}
