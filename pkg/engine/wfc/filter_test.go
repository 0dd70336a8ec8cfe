package wfc

import (
	"testing"

	"github.com/zyedidia/generic/mapset"

	"wavemap/pkg/engine/world"
)

func setOf(states ...world.State) mapset.Set[world.State] {
	s := mapset.New[world.State]()
	for _, st := range states {
		s.Put(st)
	}
	return s
}

func TestNewFilter(t *testing.T) {
	f := NewFilter(0, 2)

	if f.Size() != 2 {
		t.Errorf("Size() = %d, want 2", f.Size())
	}
	if !f.Includes(0) || !f.Includes(2) {
		t.Error("filter missing a listed state")
	}
	if f.Includes(1) {
		t.Error("filter includes an unlisted state")
	}
}

func TestFilterOf_CopiesInput(t *testing.T) {
	src := setOf(0, 1)
	f := FilterOf(src)

	src.Put(2)
	if f.Includes(2) {
		t.Error("filter aliases its source set")
	}
	if f.Size() != 2 {
		t.Errorf("Size() = %d, want 2", f.Size())
	}
}

func TestUnion(t *testing.T) {
	f := Union(
		[]world.State{0, 1},
		[]world.State{1, 2},
		nil,
	)

	if f.Size() != 3 {
		t.Fatalf("Size() = %d, want 3", f.Size())
	}
	for _, s := range []world.State{0, 1, 2} {
		if !f.Includes(s) {
			t.Errorf("union missing state %d", s)
		}
	}

	if empty := Union(); empty.Size() != 0 {
		t.Errorf("Union() = %d states, want 0", empty.Size())
	}
}

func TestIntersect(t *testing.T) {
	a := NewFilter(0, 1, 2)
	b := NewFilter(1, 2, 3)
	c := NewFilter(2, 3)

	got := Intersect([]Filter{a, b, c})
	if got.Size() != 1 || !got.Includes(2) {
		t.Errorf("intersect = %v, want {2}", got.States())
	}

	if empty := Intersect(nil); empty.Size() != 0 {
		t.Errorf("Intersect(nil) = %d states, want 0", empty.Size())
	}

	if single := Intersect([]Filter{a}); !single.Equals(a) {
		t.Error("intersecting a single filter changed it")
	}
}

// The combination of accumulated filters must not depend on the order the
// exploration paths delivered them.
func TestIntersect_OrderIndependent(t *testing.T) {
	a := NewFilter(0, 1, 2)
	b := NewFilter(1, 2, 3)
	c := NewFilter(0, 2, 3)

	orders := [][]Filter{
		{a, b, c},
		{c, b, a},
		{b, a, c},
		{c, a, b},
	}

	want := Intersect(orders[0])
	for i, order := range orders[1:] {
		if got := Intersect(order); !got.Equals(want) {
			t.Errorf("order %d produced %v, want %v", i+1, got.States(), want.States())
		}
	}
}

func TestIntersect_Idempotent(t *testing.T) {
	f := NewFilter(1, 3)
	if got := Intersect([]Filter{f, f, f}); !got.Equals(f) {
		t.Errorf("Intersect(f,f,f) = %v, want %v", got.States(), f.States())
	}
}

func TestIntersect_DisjointIsEmpty(t *testing.T) {
	got := Intersect([]Filter{NewFilter(0, 1), NewFilter(2, 3)})
	if got.Size() != 0 {
		t.Errorf("disjoint intersect has %d states, want 0", got.Size())
	}
}

func TestFilterEquals(t *testing.T) {
	if !NewFilter(0, 1).Equals(NewFilter(1, 0)) {
		t.Error("same membership, different build order: Equals = false")
	}
	if NewFilter(0, 1).Equals(NewFilter(0, 2)) {
		t.Error("different membership: Equals = true")
	}
	if NewFilter(0).Equals(NewFilter(0, 1)) {
		t.Error("different sizes: Equals = true")
	}
}

func TestFilterIsFull(t *testing.T) {
	f := NewFilter(0, 1, 2)
	if !f.IsFull(3) {
		t.Error("filter of 3 states against catalog size 3: IsFull = false")
	}
	if f.IsFull(4) {
		t.Error("filter of 3 states against catalog size 4: IsFull = true")
	}
}

func TestFilterApply(t *testing.T) {
	f := NewFilter(1, 2)
	candidates := setOf(0, 1, 2, 3)

	narrowed := f.Apply(candidates)

	if narrowed.Size() != 2 || !narrowed.Has(1) || !narrowed.Has(2) {
		t.Errorf("Apply produced a set of size %d, want {1,2}", narrowed.Size())
	}
	if candidates.Size() != 4 {
		t.Error("Apply mutated the candidate set")
	}

	// Full overlap and no overlap.
	if NewFilter(0, 1, 2, 3).Apply(candidates).Size() != 4 {
		t.Error("full filter dropped candidates")
	}
	if NewFilter(9).Apply(candidates).Size() != 0 {
		t.Error("disjoint filter kept candidates")
	}
}
