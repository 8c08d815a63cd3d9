// Package env is the host-facing entry point (§6): build an Environment,
// declare variables/functions/struct schemas against it, then Check, Plan,
// and Eval an expression. It is the thin façade wiring internal/decls,
// internal/checker, internal/planner, internal/interpreter, and
// internal/hoststruct together the way the teacher's internal/pipeline
// wires parse/typecheck/codegen stages into one Run call — here there is
// no single linear Run, since a host plans once and evaluates the same
// Program repeatedly against many activations, but the stage order and
// the "keep going to collect every diagnostic" posture (checker.Result
// carries every issue, not just the first) are the same idea.
package env

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/funvibe/exprlang/internal/ast"
	"github.com/funvibe/exprlang/internal/checker"
	"github.com/funvibe/exprlang/internal/decls"
	"github.com/funvibe/exprlang/internal/functions"
	"github.com/funvibe/exprlang/internal/hoststruct"
	"github.com/funvibe/exprlang/internal/interpreter"
	"github.com/funvibe/exprlang/internal/planner"
)

// Environment couples a declaration environment (what the checker sees)
// with the function registry and struct registry backing its overloads
// and struct types (what the interpreter sees) — kept as one object
// specifically so AddFunction and AddStruct can never let the two drift
// out of sync with each other.
type Environment struct {
	Decls   *decls.Env
	Funcs   *functions.Registry
	Structs *hoststruct.Registry
	builder *hoststruct.Builder
}

// New builds an empty Environment rooted at the given container namespace
// (§3.3). Most hosts want NewWithPrelude instead.
func New(container string) *Environment {
	structs := hoststruct.NewRegistry()
	return &Environment{
		Decls:   decls.NewEnv(container),
		Funcs:   functions.NewRegistry(),
		Structs: structs,
		builder: hoststruct.NewBuilder(structs),
	}
}

// NewWithPrelude builds an Environment with the language's built-in
// operator overloads already declared and registered (§8 scenarios 1,
// 2, 5, 6), so a host only needs to add its own domain variables,
// functions, and struct schemas.
func NewWithPrelude(container string) (*Environment, error) {
	e := New(container)
	if err := registerPrelude(e); err != nil {
		return nil, err
	}
	return e, nil
}

// AcceptTypeParam registers name as a checker-bindable type parameter.
func (e *Environment) AcceptTypeParam(name string) { e.Decls.AcceptTypeParam(name) }

// AddFunction declares one overload both to the checker (decl) and to the
// interpreter (impl), rejecting a call that only supplies one side: a
// declared-but-unimplemented overload would check fine and then fail
// every evaluation with "no matching overload", and an implemented-but-
// undeclared one could never be referenced by a checked AST in the first
// place.
func (e *Environment) AddFunction(name string, decl *decls.Overload, impl *functions.Impl) error {
	if decl.ID != impl.OverloadID {
		return fmt.Errorf("env: overload id mismatch: decl %q vs impl %q", decl.ID, impl.OverloadID)
	}
	if err := e.Decls.AddFunction(name, decl); err != nil {
		return err
	}
	return e.Funcs.Add(impl)
}

// AddStruct registers a struct type's backing schema (SPEC_FULL.md §B).
func (e *Environment) AddStruct(schema *hoststruct.Schema) error {
	return e.Structs.Register(schema)
}

// Check type-checks expr against the declaration environment (§4.1).
func (e *Environment) Check(expr *ast.Expr) *checker.Result {
	return checker.Check(expr, e.Decls)
}

// Program is a planned Program stamped with a correlation id (SPEC_FULL.md
// §B), so a host can log "plan abc123 evaluated for request xyz" across
// many Eval calls sharing the same compiled Program.
type Program struct {
	ID string
	*planner.Program
}

// Plan lowers a checked AST to a Program (§3.5, §4.3).
func (e *Environment) Plan(checked *ast.Checked) *Program {
	return &Program{ID: uuid.NewString(), Program: planner.Plan(checked)}
}

// NewEvaluator builds an Evaluator wired to this Environment's function
// registry and struct builder, ready to Eval any Program this Environment
// produced.
func (e *Environment) NewEvaluator(opts ...interpreter.Option) *interpreter.Evaluator {
	allOpts := append([]interpreter.Option{interpreter.WithStructBuilder(e.builder)}, opts...)
	return interpreter.NewEvaluator(e.Funcs, allOpts...)
}
