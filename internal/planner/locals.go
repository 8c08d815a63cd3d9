package planner

import "github.com/funvibe/exprlang/internal/ast"

// local is one comprehension loop variable or lazy binding currently in
// scope during planning. Plain locals (a comprehension's iter/accu
// vars) are read with a simple LoadSlot, since the loop machinery
// guarantees the slot is assigned before any reference; lazy locals
// (`cel.bind`) are read with CheckInit, re-running Init only the first
// time (§4.3 "Lazy bindings").
type local struct {
	name string
	slot int
	lazy bool
	init *ast.Expr
}

// localStack tracks nested comprehensions/binds innermost-last, mirroring
// the checker's scopeStack so planning agrees with checking on which
// declaration a bare name refers to.
type localStack struct {
	frames []local
}

func (s *localStack) push(l local) { s.frames = append(s.frames, l) }
func (s *localStack) pop()         { s.frames = s.frames[:len(s.frames)-1] }

func (s *localStack) lookup(name string) (local, bool) {
	for i := len(s.frames) - 1; i >= 0; i-- {
		if s.frames[i].name == name {
			return s.frames[i], true
		}
	}
	return local{}, false
}
