package world

import (
	"fmt"
	"math/rand"

	"github.com/zyedidia/generic/mapset"
)

// Tile is the content of one grid position: either an uncollapsed Cell
// carrying a candidate state set, or a CollapsedCell fixed to one state.
type Tile interface {
	// Position returns the tile's grid coordinates.
	Position() (x, y int)
	// IsCollapsed reports whether the tile has been fixed to one state.
	IsCollapsed() bool
}

// Cell is a grid position that has not been finalized yet. It holds the set
// of states still possible at that position. The grid owns its cells; the
// engines narrow candidate sets through Restrict, and renderers must treat
// cells as read-only.
type Cell struct {
	X, Y int

	candidates mapset.Set[State]
}

// NewCell creates a cell at the given position holding the given candidate
// set. The cell takes ownership of the set.
func NewCell(x, y int, candidates mapset.Set[State]) *Cell {
	return &Cell{X: x, Y: y, candidates: candidates}
}

// Position returns the cell's grid coordinates.
func (c *Cell) Position() (int, int) {
	return c.X, c.Y
}

// IsCollapsed always reports false for an uncollapsed cell.
func (c *Cell) IsCollapsed() bool {
	return false
}

// Entropy returns the number of remaining candidate states. Lower means more
// constrained.
func (c *Cell) Entropy() int {
	return c.candidates.Size()
}

// Has reports whether the state is still a candidate.
func (c *Cell) Has(s State) bool {
	return c.candidates.Has(s)
}

// Candidates returns a copy of the candidate set.
func (c *Cell) Candidates() mapset.Set[State] {
	copied := mapset.New[State]()
	c.candidates.Each(func(s State) {
		copied.Put(s)
	})
	return copied
}

// Restrict replaces the candidate set. The cell takes ownership of the set.
func (c *Cell) Restrict(candidates mapset.Set[State]) {
	c.candidates = candidates
}

// Collapse draws one concrete state from the candidates and returns the
// resulting CollapsedCell. Each candidate's effective weight is 1 plus its
// entry in bias (bias may be nil); the draw walks the catalog in enumeration
// order subtracting weights from a random value, so membership order never
// matters. A cell with no candidates cannot be drawn from and is reported as
// an error rather than a silent default.
func (c *Cell) Collapse(cat *Catalog, bias map[State]int, rng *rand.Rand) (*CollapsedCell, error) {
	total := 0
	for _, s := range cat.States() {
		if !c.candidates.Has(s) {
			continue
		}
		total += 1 + bias[s]
	}
	if total <= 0 {
		return nil, fmt.Errorf("%w at (%d,%d): no candidate states to draw from", ErrContradiction, c.X, c.Y)
	}

	remaining := rng.Intn(total)
	for _, s := range cat.States() {
		if !c.candidates.Has(s) {
			continue
		}
		remaining -= 1 + bias[s]
		if remaining < 0 {
			return &CollapsedCell{X: c.X, Y: c.Y, State: s}, nil
		}
	}

	// Unreachable: the weights summed to total above.
	return nil, fmt.Errorf("%w at (%d,%d): weighted draw exhausted", ErrContradiction, c.X, c.Y)
}

// CollapsedCell is a grid position fixed to exactly one state. It replaces a
// Cell at the same coordinate and is never modified afterwards.
type CollapsedCell struct {
	X, Y  int
	State State
}

// Position returns the collapsed cell's grid coordinates.
func (c *CollapsedCell) Position() (int, int) {
	return c.X, c.Y
}

// IsCollapsed always reports true for a collapsed cell.
func (c *CollapsedCell) IsCollapsed() bool {
	return true
}
