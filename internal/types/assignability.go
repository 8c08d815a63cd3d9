package types

// Subst maps a type-parameter name to its inferred type. It plays the same
// role as the teacher's typesystem.Subst, but resolution here is a single
// pass per call site rather than full Hindley-Milner generalization: a
// Subst is built fresh for one overload-instantiation attempt and never
// escapes it (§3.2 rule 5, §4.1 "fresh instantiation of its type parameters").
type Subst map[string]Type

// Apply substitutes every TypeParamType occurrence in t per s, leaving
// unbound parameters as-is.
func Apply(t Type, s Subst) Type {
	switch tt := t.(type) {
	case TypeParamType:
		if bound, ok := s[tt.Name]; ok {
			return bound
		}
		return tt
	case ListType:
		return ListType{Elem: Apply(tt.Elem, s)}
	case MapType:
		return MapType{Key: Apply(tt.Key, s), Value: Apply(tt.Value, s)}
	case OpaqueType:
		params := make([]Type, len(tt.Params))
		for i, p := range tt.Params {
			params[i] = Apply(p, s)
		}
		return OpaqueType{Name: tt.Name, Params: params}
	case FunctionType:
		args := make([]Type, len(tt.Args))
		for i, a := range tt.Args {
			args[i] = Apply(a, s)
		}
		return FunctionType{Result: Apply(tt.Result, s), Args: args}
	case WrapperType:
		return WrapperType{Primitive: Apply(tt.Primitive, s)}
	default:
		return t
	}
}

// Assignable implements the §3.2 assignability relation `to <- from`.
func Assignable(to, from Type) bool {
	return assignableWith(to, from, nil)
}

// assignableWith is Assignable but additionally unifies any TypeParamType
// occurring in `to` against the corresponding structural position of
// `from`, recording the binding into s so callers can recover the
// instantiation (used by overload resolution, §4.1).
func assignableWith(to, from Type, s Subst) bool {
	if to == nil || from == nil {
		return false
	}

	// Rule 5: a type_param unifies with anything; record/enforce binding.
	if tp, ok := to.(TypeParamType); ok {
		if s == nil {
			return true
		}
		if bound, found := s[tp.Name]; found {
			return typeEqual(bound, from) || assignableWith(bound, from, s)
		}
		s[tp.Name] = from
		return true
	}

	// Rule 2: dyn accepts anything; anything is assignable to dyn.
	if to.Tag() == DynTag || from.Tag() == DynTag {
		return true
	}

	// Rule 1: equal types are assignable.
	if typeEqual(to, from) {
		return true
	}

	// Rule 3: wrapper(P) accepts null_type and whatever P accepts.
	if w, ok := to.(WrapperType); ok {
		if from.Tag() == NullTypeTag {
			return true
		}
		return assignableWith(w.Primitive, from, s)
	}
	// A bare primitive P is also accepted where wrapper(P) is required in
	// the reverse direction is NOT implied; wrapper is only ever the
	// accepting side per §3.2 rule 3.

	// Rule 4: parameterized types assignable when name/kind/arity match
	// and parameters are assignable componentwise (invariant).
	switch toT := to.(type) {
	case ListType:
		fromT, ok := from.(ListType)
		return ok && assignableWith(toT.Elem, fromT.Elem, s)
	case MapType:
		fromT, ok := from.(MapType)
		return ok && assignableWith(toT.Key, fromT.Key, s) && assignableWith(toT.Value, fromT.Value, s)
	case OpaqueType:
		fromT, ok := from.(OpaqueType)
		if !ok || toT.Name != fromT.Name || len(toT.Params) != len(fromT.Params) {
			return false
		}
		for i := range toT.Params {
			if !assignableWith(toT.Params[i], fromT.Params[i], s) {
				return false
			}
		}
		return true
	case FunctionType:
		fromT, ok := from.(FunctionType)
		if !ok || len(toT.Args) != len(fromT.Args) {
			return false
		}
		if !assignableWith(toT.Result, fromT.Result, s) {
			return false
		}
		for i := range toT.Args {
			if !assignableWith(toT.Args[i], fromT.Args[i], s) {
				return false
			}
		}
		return true
	}

	return false
}

// UnifyArg attempts to unify a single declared argument type (possibly
// containing type parameters) against a concrete argument type, recording
// bindings into s. Returns false if the argument does not fit.
func UnifyArg(declared, actual Type, s Subst) bool {
	return assignableWith(declared, actual, s)
}

// typeEqual is structural equality of two concrete types (no unification).
func typeEqual(a, b Type) bool {
	if a.Tag() != b.Tag() {
		return false
	}
	return a.String() == b.String()
}
