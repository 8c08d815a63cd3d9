package types

import "strings"

// AttributePattern names one unresolved attribute path, e.g.
// "request.auth.claims", used by UnknownValue for partial evaluation
// (§3.1, §6 "also supplies the set of unknown attribute patterns").
type AttributePattern string

// AttributeSet is an unordered, deduplicated set of AttributePatterns.
// The zero value is an empty set.
type AttributeSet struct {
	patterns map[AttributePattern]bool
	order    []AttributePattern
}

// NewAttributeSet builds a set from the given patterns.
func NewAttributeSet(patterns ...AttributePattern) AttributeSet {
	s := AttributeSet{patterns: map[AttributePattern]bool{}}
	for _, p := range patterns {
		s.add(p)
	}
	return s
}

func (s *AttributeSet) add(p AttributePattern) {
	if s.patterns == nil {
		s.patterns = map[AttributePattern]bool{}
	}
	if !s.patterns[p] {
		s.patterns[p] = true
		s.order = append(s.order, p)
	}
}

// Union returns the set union of a and b (§3.1 "the union of unknowns").
func (a AttributeSet) Union(b AttributeSet) AttributeSet {
	out := NewAttributeSet()
	for _, p := range a.order {
		out.add(p)
	}
	for _, p := range b.order {
		out.add(p)
	}
	return out
}

// Patterns returns the set's members in first-seen order.
func (a AttributeSet) Patterns() []AttributePattern {
	return append([]AttributePattern(nil), a.order...)
}

// Contains reports whether pattern is an exact member of the set, or is
// related to a member by dotted-path containment in either direction: a
// set containing "request.auth" contains "request.auth.claims", and a set
// containing "request.auth.claims" contains "request.auth".
func (a AttributeSet) Contains(pattern string) bool {
	for _, p := range a.order {
		ps := string(p)
		if ps == pattern || strings.HasPrefix(pattern, ps+".") || strings.HasPrefix(ps, pattern+".") {
			return true
		}
	}
	return false
}

func (a AttributeSet) String() string {
	parts := make([]string, len(a.order))
	for i, p := range a.order {
		parts[i] = string(p)
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

// MergeUnknowns unions the UnknownValue(s) found among vs (callers have
// already established at least one is present); error dominates unknown
// on the left-hand side and is handled by callers before reaching here
// (§3.1, §4.4 "Error/unknown propagation at Call").
func MergeUnknowns(vs ...Value) *UnknownValue {
	out := NewAttributeSet()
	for _, v := range vs {
		if u, ok := v.(*UnknownValue); ok {
			out = out.Union(u.Patterns)
		}
	}
	return &UnknownValue{Patterns: out}
}
