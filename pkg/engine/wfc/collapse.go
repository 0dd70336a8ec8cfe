package wfc

import (
	"math/rand"
	"time"

	"wavemap/pkg/engine/world"
)

// Phase is the driver's lifecycle state.
type Phase int

// Driver phases
const (
	// Idle means the driver is between steps and uncollapsed cells remain.
	Idle Phase = iota
	// Stepping means a step is executing.
	Stepping
	// Terminal means every grid position holds a CollapsedCell.
	Terminal
)

// String returns the string representation of a phase
func (p Phase) String() string {
	switch p {
	case Idle:
		return "Idle"
	case Stepping:
		return "Stepping"
	case Terminal:
		return "Terminal"
	default:
		return "Unknown"
	}
}

// Collapser is the stepwise generation driver: it picks the least-certain
// cell, fixes it to one concrete state, and propagates the consequences. It
// holds an exclusive reference to one grid; callers must serialize all
// mutating calls (single-writer model, no internal locking).
type Collapser struct {
	grid       *world.Grid
	propagator *Propagator
	rng        *rand.Rand
	phase      Phase
	steps      int
}

// NewCollapser creates a driver for the given grid using the given random
// source for tie-breaking and weighted draws.
func NewCollapser(grid *world.Grid, rng *rand.Rand) *Collapser {
	return &Collapser{
		grid:       grid,
		propagator: NewPropagator(grid),
		rng:        rng,
	}
}

// Grid returns the grid the driver operates on.
func (e *Collapser) Grid() *world.Grid {
	return e.grid
}

// Phase returns the driver's current lifecycle phase.
func (e *Collapser) Phase() Phase {
	return e.phase
}

// Steps returns the number of successful steps since the last reset.
func (e *Collapser) Steps() int {
	return e.steps
}

// CanStep reports whether at least one uncollapsed cell remains.
func (e *Collapser) CanStep() bool {
	remaining := false
	e.grid.ForEachTile(func(x, y int, t world.Tile) {
		if !t.IsCollapsed() {
			remaining = true
		}
	})
	return remaining
}

// CollapsedCount returns the number of finalized positions.
func (e *Collapser) CollapsedCount() int {
	count := 0
	e.grid.ForEachTile(func(x, y int, t world.Tile) {
		if t.IsCollapsed() {
			count++
		}
	})
	return count
}

// TotalEntropy returns the sum of candidate-set sizes over all uncollapsed
// cells. It is non-increasing across steps and drops by at least one per
// successful step.
func (e *Collapser) TotalEntropy() int {
	total := 0
	e.grid.ForEachTile(func(x, y int, t world.Tile) {
		if cell, ok := t.(*world.Cell); ok {
			total += cell.Entropy()
		}
	})
	return total
}

// Step collapses one minimum-entropy cell and propagates the result. Ties
// are broken uniformly at random, never by scan order. A no-op when no
// uncollapsed cell remains. Returns a contradiction error when propagation
// empties a candidate set; subsequent steps keep failing until Reset, and a
// draw over zero candidates never happens.
func (e *Collapser) Step() error {
	target := e.pickMinEntropyCell()
	if target == nil {
		e.phase = Terminal
		return nil
	}

	e.phase = Stepping

	bias := e.gatherBias(target.X, target.Y)

	collapsed, err := target.Collapse(e.grid.Catalog(), bias, e.rng)
	if err != nil {
		e.phase = Terminal
		return err
	}

	e.grid.Set(collapsed.X, collapsed.Y, collapsed)
	e.steps++

	if err := e.propagator.Propagate(collapsed); err != nil {
		e.phase = Terminal
		return err
	}

	if e.CanStep() {
		e.phase = Idle
	} else {
		e.phase = Terminal
	}
	return nil
}

// pickMinEntropyCell scans for the minimum entropy among uncollapsed cells,
// collects every cell tied at that minimum, and picks one uniformly at
// random. Returns nil when the grid is fully collapsed.
func (e *Collapser) pickMinEntropyCell() *world.Cell {
	minEntropy := -1
	var tied []*world.Cell

	e.grid.ForEachTile(func(x, y int, t world.Tile) {
		cell, ok := t.(*world.Cell)
		if !ok {
			return
		}
		entropy := cell.Entropy()
		switch {
		case minEntropy < 0 || entropy < minEntropy:
			minEntropy = entropy
			tied = tied[:0]
			tied = append(tied, cell)
		case entropy == minEntropy:
			tied = append(tied, cell)
		}
	})

	if len(tied) == 0 {
		return nil
	}
	return tied[e.rng.Intn(len(tied))]
}

// gatherBias accumulates collapse bias from the collapsed orthogonal
// neighbors of a position: each collapsed neighbor contributes its rule's
// (state, weight) pairs, and weights from multiple neighbors sum per state.
func (e *Collapser) gatherBias(x, y int) map[world.State]int {
	bias := make(map[world.State]int)
	for _, neighbour := range e.grid.Neighbours(x, y) {
		collapsed, ok := neighbour.(*world.CollapsedCell)
		if !ok {
			continue
		}
		for _, nw := range e.grid.Catalog().Rule(collapsed.State).Neighbors {
			bias[nw.State] += nw.Weight
		}
	}
	return bias
}

// Run steps repeatedly until the grid is fully collapsed or a step fails.
// After each step the onStep callback (if any) is invoked so the host can
// observe intermediate state, then the driver sleeps for pause. The pause is
// advisory render pacing, not a correctness mechanism; cancellation is the
// host's business — it simply stops being called once Run returns.
func (e *Collapser) Run(pause time.Duration, onStep func()) error {
	for e.CanStep() {
		if err := e.Step(); err != nil {
			return err
		}
		if onStep != nil {
			onStep()
		}
		if pause > 0 {
			time.Sleep(pause)
		}
	}
	e.phase = Terminal
	return nil
}

// Reset discards all progress, reinitializing the grid at its current
// dimensions.
func (e *Collapser) Reset() error {
	if err := e.grid.Resize(e.grid.Width(), e.grid.Height()); err != nil {
		return err
	}
	e.phase = Idle
	e.steps = 0
	return nil
}
