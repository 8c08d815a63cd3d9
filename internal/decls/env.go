package decls

import (
	"fmt"
	"strings"
)

// Env is the declaration environment: variable decls, function decls with
// overload sets, the current container namespace, and the set of accepted
// type-parameter names (§4.1 "Contract: ... a declaration environment
// (variables, functions, container path, and a set of accepted
// type-parameter names)").
type Env struct {
	container      string
	variables      map[string]*Variable
	functions      map[string]*Function
	typeParamNames map[string]bool
}

// NewEnv builds an environment rooted at the given container namespace
// (may be "").
func NewEnv(container string) *Env {
	return &Env{
		container:      container,
		variables:      map[string]*Variable{},
		functions:      map[string]*Function{},
		typeParamNames: map[string]bool{},
	}
}

func (e *Env) Container() string { return e.container }

// AcceptTypeParam registers name as an accepted type-parameter name, so
// the checker may bind it rather than treating it as an undeclared type.
func (e *Env) AcceptTypeParam(name string) { e.typeParamNames[name] = true }

func (e *Env) AcceptsTypeParam(name string) bool { return e.typeParamNames[name] }

// AddVariable declares a variable, possibly dotted (§3.3). Redeclaring the
// same name with the same type is a no-op; redeclaring with a different
// type is a build error (§7.1).
func (e *Env) AddVariable(v *Variable) error {
	if existing, ok := e.variables[v.Name]; ok {
		if existing.Type.String() != v.Type.String() {
			return fmt.Errorf("decls: variable %q already declared with type %s, cannot redeclare as %s", v.Name, existing.Type, v.Type)
		}
		return nil
	}
	e.variables[v.Name] = v
	return nil
}

// AddFunction declares one overload of a function, checking for
// collisions against any overloads already declared for that name
// (§3.3, §7.1).
func (e *Env) AddFunction(name string, o *Overload) error {
	fn, ok := e.functions[name]
	if !ok {
		fn = &Function{Name: name}
		e.functions[name] = fn
	}
	if err := checkCollision(fn.Overloads, o); err != nil {
		return fmt.Errorf("decls: function %q: %w", name, err)
	}
	fn.Overloads = append(fn.Overloads, o)
	return nil
}

// LookupVariable resolves an exact (already-qualified) variable name.
func (e *Env) LookupVariable(name string) (*Variable, bool) {
	v, ok := e.variables[name]
	return v, ok
}

// LookupFunction resolves an exact (already-qualified) function name.
func (e *Env) LookupFunction(name string) (*Function, bool) {
	f, ok := e.functions[name]
	return f, ok
}

// ContainerSuffixes returns every suffix of the container path, most
// specific (the full container) first, ending with the empty namespace.
// E.g. container "a.b.c" yields ["a.b.c", "b.c", "c", ""].
func (e *Env) ContainerSuffixes() []string {
	return containerSuffixes(e.container)
}

func containerSuffixes(container string) []string {
	if container == "" {
		return []string{""}
	}
	parts := strings.Split(container, ".")
	out := make([]string, 0, len(parts)+1)
	for i := range parts {
		out = append(out, strings.Join(parts[i:], "."))
	}
	out = append(out, "")
	return out
}

// CandidateNames implements the §4.1 name-resolution candidate list:
// treating a chain "a.b.c.d" as a candidate list of qualified names,
// longest first, each prefixed by each suffix of the container path. For
// a single bare name (no select chain) this degenerates to the container
// suffix list ResolveCandidateNames(name) alone.
func (e *Env) CandidateNames(chainParts []string) []string {
	suffixes := e.ContainerSuffixes()
	var out []string
	for truncate := len(chainParts); truncate >= 1; truncate-- {
		chain := strings.Join(chainParts[:truncate], ".")
		for _, ns := range suffixes {
			if ns == "" {
				out = append(out, chain)
			} else {
				out = append(out, ns+"."+chain)
			}
		}
	}
	return out
}

// ResolveCandidateNames resolves a single already-dotted name (no
// select-chain truncation) against the container namespace, longest
// (most specific) namespace first — used for resolving function names at
// a call site where the target, if any, is not itself a variable.
func (e *Env) ResolveCandidateNames(name string) []string {
	suffixes := e.ContainerSuffixes()
	out := make([]string, 0, len(suffixes))
	for _, ns := range suffixes {
		if ns == "" {
			out = append(out, name)
		} else {
			out = append(out, ns+"."+name)
		}
	}
	return out
}
