package wfc

import (
	"errors"
	"math/rand"
	"testing"

	"wavemap/pkg/engine/world"
)

func newTestCollapser(t *testing.T, cat *world.Catalog, w, h int, seed int64) *Collapser {
	t.Helper()
	g, err := world.NewGrid(w, h, cat)
	if err != nil {
		t.Fatalf("NewGrid failed: %v", err)
	}
	return NewCollapser(g, rand.New(rand.NewSource(seed)))
}

func TestStep_CollapsesTheLeastCertainCell(t *testing.T) {
	cat := coastCatalog(t)
	e := newTestCollapser(t, cat, 2, 1, 1)

	// Narrow the right cell by hand so it is strictly the least certain.
	right := cellAt(t, e.Grid(), 1, 0)
	right.Restrict(setOf(mustState(t, cat, "water"), mustState(t, cat, "beach")))

	if err := e.Step(); err != nil {
		t.Fatalf("Step failed: %v", err)
	}

	collapsed, ok := e.Grid().Get(1, 0).(*world.CollapsedCell)
	if !ok {
		t.Fatal("the minimum-entropy cell was not the one collapsed")
	}
	name := cat.Name(collapsed.State)
	if name != "water" && name != "beach" {
		t.Errorf("collapsed to %q, outside the candidate set", name)
	}
	if e.Steps() != 1 {
		t.Errorf("Steps() = %d, want 1", e.Steps())
	}
}

func TestStep_TieBreakIsNotScanOrder(t *testing.T) {
	cat := freeCatalog(t, "a", "b")

	// All cells start tied; across seeds the first pick must vary.
	firstPicks := make(map[[2]int]bool)
	for seed := int64(0); seed < 20; seed++ {
		e := newTestCollapser(t, cat, 4, 4, seed)
		if err := e.Step(); err != nil {
			t.Fatalf("Step failed: %v", err)
		}
		e.Grid().ForEachTile(func(x, y int, tile world.Tile) {
			if tile.IsCollapsed() {
				firstPicks[[2]int{x, y}] = true
			}
		})
	}

	if len(firstPicks) < 2 {
		t.Errorf("first pick landed on the same cell for 20 seeds: %v", firstPicks)
	}
}

func TestStep_EntropyDropsEveryStep(t *testing.T) {
	e := newTestCollapser(t, freeCatalog(t, "a", "b", "c"), 4, 3, 11)

	for e.CanStep() {
		before := e.TotalEntropy()
		if err := e.Step(); err != nil {
			t.Fatalf("Step failed: %v", err)
		}
		after := e.TotalEntropy()
		if after > before-1 {
			t.Fatalf("entropy went from %d to %d; want a drop of at least 1", before, after)
		}
	}
}

func TestStep_RunsToCompletion(t *testing.T) {
	e := newTestCollapser(t, freeCatalog(t, "a", "b"), 3, 3, 2)

	steps := 0
	for e.CanStep() {
		if err := e.Step(); err != nil {
			t.Fatalf("Step failed: %v", err)
		}
		steps++
		if steps > 9 {
			t.Fatal("more steps than cells")
		}
	}

	if steps != 9 {
		t.Errorf("completed in %d steps, want 9", steps)
	}
	if e.CollapsedCount() != 9 {
		t.Errorf("CollapsedCount() = %d, want 9", e.CollapsedCount())
	}
	if e.TotalEntropy() != 0 {
		t.Errorf("TotalEntropy() = %d on a complete grid, want 0", e.TotalEntropy())
	}
	if e.Phase() != Terminal {
		t.Errorf("Phase() = %s, want Terminal", e.Phase())
	}
}

func TestStep_SingleCellGrid(t *testing.T) {
	cat := coastCatalog(t)
	e := newTestCollapser(t, cat, 1, 1, 8)

	if err := e.Step(); err != nil {
		t.Fatalf("Step failed: %v", err)
	}

	if !e.Grid().Get(0, 0).IsCollapsed() {
		t.Error("sole cell not collapsed after one step")
	}
	if e.CanStep() {
		t.Error("CanStep() = true on a fully collapsed 1x1 grid")
	}
	if e.Phase() != Terminal {
		t.Errorf("Phase() = %s, want Terminal", e.Phase())
	}
}

func TestStep_NoOpWhenComplete(t *testing.T) {
	e := newTestCollapser(t, freeCatalog(t, "a"), 2, 2, 3)

	if err := e.Run(0, nil); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	steps := e.Steps()

	if err := e.Step(); err != nil {
		t.Fatalf("Step on a complete grid failed: %v", err)
	}
	if e.Steps() != steps {
		t.Errorf("Steps() advanced from %d to %d on a complete grid", steps, e.Steps())
	}
	if e.Phase() != Terminal {
		t.Errorf("Phase() = %s, want Terminal", e.Phase())
	}
}

func TestRun_InvokesObserverPerStep(t *testing.T) {
	e := newTestCollapser(t, freeCatalog(t, "a", "b"), 2, 2, 4)

	calls := 0
	if err := e.Run(0, func() { calls++ }); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if calls != 4 {
		t.Errorf("observer called %d times, want 4", calls)
	}
}

func TestRun_StopsOnContradiction(t *testing.T) {
	cat := splitCatalog(t)
	e := newTestCollapser(t, cat, 2, 1, 5)

	// Pre-narrow the two cells to incompatible singletons: whichever collapses
	// first contradicts the other.
	cellAt(t, e.Grid(), 0, 0).Restrict(setOf(mustState(t, cat, "a")))
	cellAt(t, e.Grid(), 1, 0).Restrict(setOf(mustState(t, cat, "b")))

	err := e.Run(0, nil)
	if err == nil {
		t.Fatal("Run succeeded over an unsatisfiable grid")
	}
	if !errors.Is(err, world.ErrContradiction) {
		t.Errorf("error %v is not ErrContradiction", err)
	}
	if e.Phase() != Terminal {
		t.Errorf("Phase() = %s after contradiction, want Terminal", e.Phase())
	}
}

func TestReset_RestoresFullEntropy(t *testing.T) {
	cat := freeCatalog(t, "a", "b", "c")
	e := newTestCollapser(t, cat, 3, 2, 6)

	if err := e.Run(0, nil); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if err := e.Reset(); err != nil {
		t.Fatalf("Reset failed: %v", err)
	}

	if e.Steps() != 0 {
		t.Errorf("Steps() = %d after reset, want 0", e.Steps())
	}
	if e.Phase() != Idle {
		t.Errorf("Phase() = %s after reset, want Idle", e.Phase())
	}
	if !e.CanStep() {
		t.Error("CanStep() = false after reset")
	}
	if want := 3 * 2 * cat.Size(); e.TotalEntropy() != want {
		t.Errorf("TotalEntropy() = %d after reset, want %d", e.TotalEntropy(), want)
	}
}

func TestGatherBias_SumsCollapsedNeighbourWeights(t *testing.T) {
	cat, err := world.NewCatalog([]world.StateSpec{
		{Name: "water", Neighbors: []world.NeighborSpec{{Name: "water", Weight: 3}, world.Adj("beach")}},
		{Name: "beach", Neighbors: []world.NeighborSpec{world.Adj("water"), world.Adj("beach")}},
	})
	if err != nil {
		t.Fatalf("NewCatalog failed: %v", err)
	}
	e := newTestCollapser(t, cat, 3, 1, 7)

	water := mustState(t, cat, "water")
	beach := mustState(t, cat, "beach")

	// Only collapsed neighbours contribute.
	bias := e.gatherBias(1, 0)
	if len(bias) != 0 {
		t.Errorf("bias from uncollapsed neighbours = %v, want empty", bias)
	}

	collapseAt(e.Grid(), 0, 0, water)
	bias = e.gatherBias(1, 0)
	if bias[water] != 3 || bias[beach] != 1 {
		t.Errorf("bias = %v, want water:3 beach:1", bias)
	}

	// A second collapsed neighbour stacks its weights on top.
	collapseAt(e.Grid(), 2, 0, water)
	bias = e.gatherBias(1, 0)
	if bias[water] != 6 || bias[beach] != 2 {
		t.Errorf("bias = %v, want water:6 beach:2", bias)
	}
}

func TestRun_SameSeedSameMap(t *testing.T) {
	cat := freeCatalog(t, "a", "b", "c")

	render := func(seed int64) []world.State {
		e := newTestCollapser(t, cat, 5, 4, seed)
		if err := e.Run(0, nil); err != nil {
			t.Fatalf("Run failed: %v", err)
		}
		var states []world.State
		e.Grid().ForEachTile(func(x, y int, tile world.Tile) {
			states = append(states, tile.(*world.CollapsedCell).State)
		})
		return states
	}

	first := render(42)
	second := render(42)
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("maps diverge at index %d despite identical seeds", i)
		}
	}
}
