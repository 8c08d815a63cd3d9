package checker

import (
	"github.com/funvibe/exprlang/internal/ast"
	"github.com/funvibe/exprlang/internal/decls"
	"github.com/funvibe/exprlang/internal/types"
)

// resolveFunctionName decides, for a call node, whether its target (if
// any) is itself a namespace prefix naming a global function rather than
// a receiver expression (§4.1 "a candidate matches a function ... becomes
// a namespaced-function call"), mirroring cel-go's resolveFunction /
// toQualifiedName shape (other_examples/9e7f2e02_google-cel-go__interpreter-planner.go.go).
// It returns the function name to look up, whether the call is
// member-style (receiver present), and the expression (if any) to check
// and prepend as the receiver argument.
func resolveFunctionName(env *decls.Env, call *ast.Expr) (fnName string, isMember bool, receiver *ast.Expr) {
	if call.Target == nil {
		for _, candidate := range env.ResolveCandidateNames(call.Function) {
			if _, ok := env.LookupFunction(candidate); ok {
				return candidate, false, nil
			}
		}
		return call.Function, false, nil
	}

	if chain, ok := flattenChain(call.Target); ok {
		// The target is a pure chain; if chain isn't itself a declared
		// variable at any truncation, try it as a function namespace.
		isVar := false
		for _, c := range env.CandidateNames(chain) {
			if _, ok := env.LookupVariable(c); ok {
				isVar = true
				break
			}
		}
		if !isVar {
			qualified := joinDots(chain) + "." + call.Function
			for _, candidate := range env.ResolveCandidateNames(qualified) {
				if _, ok := env.LookupFunction(candidate); ok {
					return candidate, false, nil
				}
			}
		}
	}

	return call.Function, true, call.Target
}

// resolveOverloads performs §4.1's overload resolution: every overload
// with matching receiver-style and arity is a candidate; a candidate
// applies if its (type-parameter-instantiated) arg types accept the
// concrete argTypes. Zero candidates is an unresolved call; one or more
// is resolved, with the result type being the common result type if all
// applicable overloads agree, else dyn.
func resolveOverloads(fn *decls.Function, isMember bool, argTypes []types.Type) (resultType types.Type, overloadIDs []string, matched bool) {
	var results []types.Type
	for _, o := range fn.Overloads {
		if o.Receiver != isMember || len(o.ArgTypes) != len(argTypes) {
			continue
		}
		s := types.Subst{}
		applies := true
		for i, declared := range o.ArgTypes {
			if !types.UnifyArg(declared, argTypes[i], s) {
				applies = false
				break
			}
		}
		if !applies {
			continue
		}
		overloadIDs = append(overloadIDs, o.ID)
		results = append(results, types.Apply(o.ResultType, s))
	}
	if len(overloadIDs) == 0 {
		return types.DynType, nil, false
	}
	resultType = results[0]
	for _, r := range results[1:] {
		if r.String() != resultType.String() {
			resultType = types.DynType
			break
		}
	}
	return resultType, overloadIDs, true
}
