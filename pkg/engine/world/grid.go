package world

import (
	"errors"
	"fmt"
)

// ErrConfiguration is returned when a grid is constructed or resized with
// invalid dimensions.
var ErrConfiguration = errors.New("world: invalid grid configuration")

// ErrContradiction is returned when a cell's candidate set has been narrowed
// to empty: the configuration is unsatisfiable and further collapsing is
// undefined.
var ErrContradiction = errors.New("world: contradiction")

// Grid represents the generation map with encapsulated tile storage. Each
// position holds exactly one Tile (Cell or CollapsedCell); the grid owns all
// of them exclusively.
type Grid struct {
	tiles   [][]Tile
	width   int
	height  int
	catalog *Catalog
}

// NewGrid creates a grid of the given dimensions where every position starts
// as a fresh Cell holding the full candidate set of the catalog.
func NewGrid(width, height int, catalog *Catalog) (*Grid, error) {
	g := &Grid{catalog: catalog}
	if err := g.Resize(width, height); err != nil {
		return nil, err
	}
	return g, nil
}

// Width returns the number of columns in the grid
func (g *Grid) Width() int {
	return g.width
}

// Height returns the number of rows in the grid
func (g *Grid) Height() int {
	return g.height
}

// Catalog returns the state catalog the grid was built against.
func (g *Grid) Catalog() *Catalog {
	return g.catalog
}

// IsValidPosition checks if an x/y position is within grid bounds
func (g *Grid) IsValidPosition(x, y int) bool {
	return x >= 0 && x < g.width && y >= 0 && y < g.height
}

// Get returns the tile at the given position, or nil if out of bounds.
// Out-of-range access is not an error: propagation and bias gathering treat
// grid edges uniformly through the nil marker.
func (g *Grid) Get(x, y int) Tile {
	if !g.IsValidPosition(x, y) {
		return nil
	}
	return g.tiles[y][x]
}

// Set replaces the tile at the given position. Used to install a
// CollapsedCell after a collapse. Out-of-range positions are ignored.
func (g *Grid) Set(x, y int, t Tile) {
	if !g.IsValidPosition(x, y) {
		return
	}
	g.tiles[y][x] = t
}

// Neighbours returns the four orthogonal neighbors of a position in fixed
// order (+x, -x, +y, -y). Out-of-range entries are nil.
func (g *Grid) Neighbours(x, y int) [4]Tile {
	var neighbours [4]Tile
	for i, dir := range AllDirections() {
		dx, dy := dir.Delta()
		neighbours[i] = g.Get(x+dx, y+dy)
	}
	return neighbours
}

// Resize reinitializes the grid at the given dimensions, discarding all
// progress: every position becomes a fresh Cell with the full candidate set.
// Both dimensions must be positive.
func (g *Grid) Resize(width, height int) error {
	if width <= 0 {
		return fmt.Errorf("%w: width %d must be positive", ErrConfiguration, width)
	}
	if height <= 0 {
		return fmt.Errorf("%w: height %d must be positive", ErrConfiguration, height)
	}

	g.width = width
	g.height = height

	g.tiles = make([][]Tile, height)
	for y := 0; y < height; y++ {
		g.tiles[y] = make([]Tile, width)
		for x := 0; x < width; x++ {
			g.tiles[y][x] = NewCell(x, y, g.catalog.FullSet())
		}
	}

	return nil
}

// ForEachTile iterates over all tiles in the grid, calling the provided
// function for each. Callers must not mutate tiles.
func (g *Grid) ForEachTile(fn func(x, y int, t Tile)) {
	for y := 0; y < g.height; y++ {
		for x := 0; x < g.width; x++ {
			fn(x, y, g.tiles[y][x])
		}
	}
}
