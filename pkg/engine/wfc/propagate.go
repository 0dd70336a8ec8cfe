package wfc

import (
	"fmt"

	"wavemap/pkg/engine/world"
)

// point keys accumulated propagation evidence by grid coordinate.
type point struct {
	x, y int
}

// frame is one pending exploration branch: a target position, the filter
// arriving along this branch, and the branch's own snapshot of positions
// already visited on the path that led here. Snapshots are per branch, so
// distinct paths may revisit the same cell and deposit independent evidence
// while a single path can never loop.
type frame struct {
	x, y    int
	inbound Filter
	visited map[point]bool
}

// Propagator narrows neighboring cells' candidate sets after a collapse so
// the grid stays consistent with the adjacency rules.
type Propagator struct {
	grid *world.Grid
}

// NewPropagator creates a propagator operating on the given grid.
func NewPropagator(grid *world.Grid) *Propagator {
	return &Propagator{grid: grid}
}

// Propagate floods outward from a freshly collapsed cell, accumulating one
// filter per exploration path per reached position, then commits the
// intersection of each position's filters to its live cell. Accumulating
// before applying makes the outcome independent of traversal order: no path
// can win by writing first, and no path can under-constrain a cell reached
// by a stricter path later.
//
// A cell narrowed to an empty candidate set is a contradiction and is
// returned as an error naming the offending coordinate; the grid is left
// with the narrowing applied so the caller can inspect it.
func (p *Propagator) Propagate(from *world.CollapsedCell) error {
	catalog := p.grid.Catalog()
	seed := NewFilter(catalog.Rule(from.State).States()...)

	results := make(map[point][]Filter)

	stack := make([]frame, 0, 4)
	for _, dir := range world.AllDirections() {
		dx, dy := dir.Delta()
		stack = append(stack, frame{
			x:       from.X + dx,
			y:       from.Y + dy,
			inbound: seed,
			visited: map[point]bool{},
		})
	}

	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		// A full filter cannot constrain anything.
		if f.inbound.IsFull(catalog.Size()) {
			continue
		}

		cell, ok := p.grid.Get(f.x, f.y).(*world.Cell)
		if !ok {
			// Off the grid, or already collapsed.
			continue
		}

		pos := point{f.x, f.y}
		if f.visited[pos] {
			continue
		}

		current := FilterOf(cell.Candidates())

		// Fixed point: intersecting would be a no-op, so nothing further
		// down this path can change.
		if current.Equals(f.inbound) {
			continue
		}

		narrowed := f.inbound.Apply(cell.Candidates())
		results[pos] = append(results[pos], FilterOf(narrowed))

		outboundLists := make([][]world.State, 0, narrowed.Size())
		narrowed.Each(func(s world.State) {
			outboundLists = append(outboundLists, catalog.Rule(s).States())
		})
		outbound := Union(outboundLists...)

		for _, dir := range world.AllDirections() {
			dx, dy := dir.Delta()
			branchVisited := make(map[point]bool, len(f.visited)+1)
			for v := range f.visited {
				branchVisited[v] = true
			}
			branchVisited[pos] = true
			stack = append(stack, frame{
				x:       f.x + dx,
				y:       f.y + dy,
				inbound: outbound,
				visited: branchVisited,
			})
		}
	}

	return p.commit(results)
}

// commit intersects every position's accumulated filters and applies the
// result to the live cell, mutating the authoritative grid state. Every
// position is committed even when a contradiction shows up, so the grid
// reflects all gathered evidence when the error is reported.
func (p *Propagator) commit(results map[point][]Filter) error {
	var contradiction error
	for pos, filters := range results {
		cell, ok := p.grid.Get(pos.x, pos.y).(*world.Cell)
		if !ok {
			continue
		}

		combined := Intersect(filters)
		narrowed := combined.Apply(cell.Candidates())
		cell.Restrict(narrowed)

		if narrowed.Size() == 0 && contradiction == nil {
			contradiction = fmt.Errorf("%w at (%d,%d): candidate set narrowed to empty", world.ErrContradiction, pos.x, pos.y)
		}
	}
	return contradiction
}
