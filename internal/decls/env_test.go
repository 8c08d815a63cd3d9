package decls

import (
	"testing"

	"github.com/funvibe/exprlang/internal/types"
)

func TestOverloadCollisionDetection(t *testing.T) {
	e := NewEnv("")
	if err := e.AddFunction("f", &Overload{ID: "f_int", ArgTypes: []types.Type{types.IntType}, ResultType: types.IntType}); err != nil {
		t.Fatalf("unexpected error on first overload: %v", err)
	}
	// Same receiver flag, pairwise mutually assignable arg list (int <-> int) must collide.
	err := e.AddFunction("f", &Overload{ID: "f_int_dup", ArgTypes: []types.Type{types.IntType}, ResultType: types.StringType})
	if err == nil {
		t.Fatalf("expected collision error, got nil")
	}

	// Different arg type must not collide.
	if err := e.AddFunction("f", &Overload{ID: "f_string", ArgTypes: []types.Type{types.StringType}, ResultType: types.IntType}); err != nil {
		t.Fatalf("unexpected collision for distinct arg type: %v", err)
	}

	// Different receiver flag must not collide even with same arg types.
	if err := e.AddFunction("f", &Overload{ID: "f_int_member", Receiver: true, ArgTypes: []types.Type{types.IntType}, ResultType: types.IntType}); err != nil {
		t.Fatalf("unexpected collision across receiver flags: %v", err)
	}
}

func TestDuplicateOverloadIDDifferentSignatureIsError(t *testing.T) {
	e := NewEnv("")
	if err := e.AddFunction("f", &Overload{ID: "f_x", ArgTypes: []types.Type{types.IntType}, ResultType: types.IntType}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := e.AddFunction("f", &Overload{ID: "f_x", ArgTypes: []types.Type{types.StringType}, ResultType: types.IntType}); err == nil {
		t.Fatalf("expected error reusing overload id for a different signature")
	}
}

func TestCandidateNamesLongestFirstWithContainerSuffixes(t *testing.T) {
	e := NewEnv("a.b")
	got := e.CandidateNames([]string{"x", "y", "z"})
	want := []string{
		"a.b.x.y.z", "b.x.y.z", "x.y.z",
		"a.b.x.y", "b.x.y", "x.y",
		"a.b.x", "b.x", "x",
	}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("candidate[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}
