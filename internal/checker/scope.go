package checker

import "github.com/funvibe/exprlang/internal/types"

// scope is a single comprehension's local bindings (iteration and
// accumulator variables, §4.1). A local shadows a declared variable that
// matches only the chain's first segment; a declared qualified (dotted)
// name that consumes more segments wins over a same-named local (§8
// "Name resolution priority").
type scope struct {
	names map[string]types.Type
}

// scopeStack tracks nested comprehensions innermost-last.
type scopeStack struct {
	frames []scope
}

func (s *scopeStack) push(names map[string]types.Type) {
	s.frames = append(s.frames, scope{names: names})
}

func (s *scopeStack) pop() {
	s.frames = s.frames[:len(s.frames)-1]
}

// lookup finds name in the innermost scope outward, per normal lexical
// shadowing among nested comprehensions.
func (s *scopeStack) lookup(name string) (types.Type, bool) {
	for i := len(s.frames) - 1; i >= 0; i-- {
		if t, ok := s.frames[i].names[name]; ok {
			return t, true
		}
	}
	return nil, false
}
