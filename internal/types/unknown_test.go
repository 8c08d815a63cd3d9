package types

import "testing"

func TestAttributeSetContainsExactAndPrefix(t *testing.T) {
	s := NewAttributeSet("request.auth")

	if !s.Contains("request.auth") {
		t.Fatalf("expected exact match to be contained")
	}
	if !s.Contains("request.auth.claims") {
		t.Fatalf("expected a longer path under a known prefix to be contained")
	}
	if s.Contains("request.headers") {
		t.Fatalf("did not expect an unrelated sibling path to be contained")
	}
}

func TestAttributeSetUnionDeduplicates(t *testing.T) {
	a := NewAttributeSet("x", "y")
	b := NewAttributeSet("y", "z")

	union := a.Union(b)
	got := union.Patterns()
	if len(got) != 3 {
		t.Fatalf("union = %v, want 3 deduplicated patterns", got)
	}
	for _, want := range []AttributePattern{"x", "y", "z"} {
		if !union.Contains(string(want)) {
			t.Fatalf("union %v missing %s", got, want)
		}
	}
}

func TestMergeUnknownsUnionsAllUnknownValues(t *testing.T) {
	a := &UnknownValue{Patterns: NewAttributeSet("a")}
	b := &UnknownValue{Patterns: NewAttributeSet("b")}
	notUnknown := IntValue(1)

	merged := MergeUnknowns(a, notUnknown, b)
	if !merged.Patterns.Contains("a") || !merged.Patterns.Contains("b") {
		t.Fatalf("merged patterns = %v, want both a and b", merged.Patterns.Patterns())
	}
}
