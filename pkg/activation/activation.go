// Package activation supplies richer interpreter.Activation
// implementations than internal/interpreter's bare MapActivation: a
// thread-safe mutable activation, a partial activation carrying an
// explicit unknown-attribute set, and a layered activation chaining one
// activation in front of another. Grounded on the teacher's
// internal/evaluator/environment.go Environment (sync.RWMutex-guarded map
// + outer-chain lookup) — adapted from a mutable, nested lexical
// environment (Get/Set/Update against an outer chain) down to the spec's
// read-only, single-level-per-call activation, since comprehension/lazy-
// binding scoping here is the planner's slot mechanism, not the
// activation's: Layered replaces "outer" chaining for the one case an
// Activation still composes (host base values overlaid by per-request
// overrides), and nothing here ever mutates a value once evaluation has
// started.
package activation

import (
	"sync"

	"github.com/funvibe/exprlang/internal/interpreter"
	"github.com/funvibe/exprlang/internal/types"
)

// Map is a thread-safe name->value activation, for hosts that build an
// activation once and reuse it (read-mostly) across concurrent
// evaluations of the same Program (§5 "each single evaluation... may
// still run concurrently with other, independent evaluations").
type Map struct {
	mu     sync.RWMutex
	values map[string]types.Value
}

func NewMap() *Map {
	return &Map{values: make(map[string]types.Value)}
}

func (m *Map) Set(name string, v types.Value) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[name] = v
}

func (m *Map) Resolve(name string) (types.Value, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.values[name]
	return v, ok
}

var _ interpreter.Activation = (*Map)(nil)

// Layered resolves against Over first, falling back to Under — the
// composition a host needing "request fields overlaid on defaults" wants,
// without needing a mutable nested environment (§3.6).
type Layered struct {
	Over, Under interpreter.Activation
}

func (l Layered) Resolve(name string) (types.Value, bool) {
	if v, ok := l.Over.Resolve(name); ok {
		return v, true
	}
	return l.Under.Resolve(name)
}

var _ interpreter.Activation = Layered{}

// Partial wraps a base Activation with an explicit set of attribute names
// that should read as unknown (rather than absent) on a Resolve miss (§3.1
// scenario 8, §6). Names not present in Base and not in Unknown still
// surface as a plain "no such attribute" error value, exactly like a bare
// MapActivation.
type Partial struct {
	Base    interpreter.Activation
	Unknown map[string]bool
}

func (p Partial) Resolve(name string) (types.Value, bool) {
	return p.Base.Resolve(name)
}

func (p Partial) IsUnknownAttribute(name string) bool {
	return p.Unknown[name]
}

var (
	_ interpreter.Activation        = Partial{}
	_ interpreter.PartialActivation = Partial{}
)
