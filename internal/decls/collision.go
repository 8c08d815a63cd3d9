package decls

import (
	"fmt"

	"github.com/funvibe/exprlang/internal/types"
)

// collides implements the §3.3 overload-collision rule: two overloads of
// the same function collide when they share a receiver flag and their
// argument lists are pairwise mutually assignable.
func collides(a, b *Overload) bool {
	if a.Receiver != b.Receiver {
		return false
	}
	if len(a.ArgTypes) != len(b.ArgTypes) {
		return false
	}
	for i := range a.ArgTypes {
		if !mutuallyAssignable(a.ArgTypes[i], b.ArgTypes[i]) {
			return false
		}
	}
	return true
}

func mutuallyAssignable(x, y types.Type) bool {
	return types.Assignable(x, y) && types.Assignable(y, x)
}

// checkCollision returns an error describing the first existing overload
// that collides with candidate, per §3.3 and §8 "Overload collision
// detection". A duplicate overload id for what is structurally the same
// signature is also rejected ("Different overload ids for the same
// signature are errors" reads the other direction: the same id must not
// be reused for a different signature).
func checkCollision(existing []*Overload, candidate *Overload) error {
	for _, o := range existing {
		if o.ID == candidate.ID && !sameSignature(o, candidate) {
			return fmt.Errorf("decls: overload id %q already registered with a different signature", candidate.ID)
		}
		if o.ID != candidate.ID && collides(o, candidate) {
			return fmt.Errorf("decls: overload %q collides with existing overload %q (same receiver flag, pairwise mutually assignable arguments)", candidate.ID, o.ID)
		}
	}
	return nil
}

func sameSignature(a, b *Overload) bool {
	if a.Receiver != b.Receiver || len(a.ArgTypes) != len(b.ArgTypes) {
		return false
	}
	for i := range a.ArgTypes {
		if a.ArgTypes[i].String() != b.ArgTypes[i].String() {
			return false
		}
	}
	return a.ResultType.String() == b.ResultType.String()
}
