package checker

import (
	"github.com/funvibe/exprlang/internal/ast"
	"github.com/funvibe/exprlang/internal/types"
)

// resolveVariable tries every candidate name generated by truncating
// parts from the right, longest first, each under every container-path
// suffix (§4.1 "treating a chain a.b.c.d as a candidate list"). The first
// declared variable found wins; its matched name and the count of parts
// it consumed are returned.
func (c *checker) resolveVariable(parts []string) (name string, consumed int, t types.Type, ok bool) {
	suffixes := c.env.ContainerSuffixes()
	for truncate := len(parts); truncate >= 1; truncate-- {
		base := joinDots(parts[:truncate])
		for _, ns := range suffixes {
			candidate := base
			if ns != "" {
				candidate = ns + "." + base
			}
			if v, found := c.env.LookupVariable(candidate); found {
				return candidate, truncate, v.Type, true
			}
		}
	}
	return "", 0, nil, false
}

// checkChain resolves an Ident/Select chain against declared variables
// and against the innermost enclosing comprehension-local binding named
// by the chain's first segment. The local wins when no declared variable
// matches or when the declared match consumes only that one segment; a
// declared qualified name consuming more segments wins over a same-named
// local (§8 "Name resolution priority"). A fully consumed chain annotates only e, the outermost node,
// since the absorbed intermediate nodes are never independently
// evaluated; a partial match annotates each remaining field-select node
// as its own runtime step.
func (c *checker) checkChain(e *ast.Expr) types.Type {
	nodes := chainNodes(e)
	parts, _ := flattenChain(e)
	identPartCount := len(splitDots(nodes[0].Name))

	varName, consumed, vt, ok := c.resolveVariable(parts)
	if t, found := c.scopes.lookup(parts[0]); found && (!ok || consumed == 1) {
		varName, consumed, vt, ok = parts[0], 1, t, true
	}
	if !ok {
		path := joinDots(parts)
		c.addIssueAt(e.ID, path, SeverityError, "undeclared reference to %q", path)
		c.checked.SetType(e.ID, types.DynType)
		return types.DynType
	}

	if consumed == len(parts) {
		c.checked.SetReference(e.ID, &ast.Reference{Name: varName})
		c.checked.SetType(e.ID, vt)
		return vt
	}
	if consumed < identPartCount {
		// The unmatched suffix lives inside a single compressed
		// identifier node with no select node of its own to carry it.
		c.checked.SetReference(e.ID, &ast.Reference{Name: varName})
		c.checked.SetType(e.ID, types.DynType)
		return types.DynType
	}

	selectNodes := nodes[1:]
	matchedSelects := consumed - identPartCount
	matchNode := nodes[matchedSelects]
	c.checked.SetReference(matchNode.ID, &ast.Reference{Name: varName})
	c.checked.SetType(matchNode.ID, vt)

	cur := vt
	for i := matchedSelects; i < len(selectNodes); i++ {
		sn := selectNodes[i]
		cur = c.selectField(sn, cur, false)
		c.checked.SetType(sn.ID, cur)
	}
	return cur
}

// selectField types a single field-select step (§4.3). A struct's field
// types are known only to the host's StructOps at runtime, so selecting
// into a struct or a dyn value yields dyn; selecting into a map treats
// the field name as a string key. testOnly (has()) always yields bool,
// but the operand is still validated as something fields can be selected
// from.
func (c *checker) selectField(sn *ast.Expr, operand types.Type, testOnly bool) types.Type {
	var result types.Type
	switch t := operand.(type) {
	case types.MapType:
		if !types.Assignable(t.Key, types.StringType) && t.Key.Tag() != types.DynTag {
			c.addIssueAt(sn.ID, pathOf(sn), SeverityError, "cannot select field %q: map key type is %s, not string", sn.Field, t.Key)
			result = types.DynType
		} else {
			result = t.Value
		}
	case types.StructType:
		result = types.DynType
	default:
		if operand.Tag() == types.DynTag {
			result = types.DynType
		} else {
			c.addIssueAt(sn.ID, pathOf(sn), SeverityError, "cannot select field %q from type %s", sn.Field, operand)
			result = types.DynType
		}
	}
	if testOnly {
		return types.BoolType
	}
	return result
}
