// Package terrain defines the fixed terrain catalog used for map
// generation: seven categories ordered from deep ocean to snow caps, each
// listing the categories legal next to it and how strongly a settled
// neighbor pulls a random collapse toward each of them.
package terrain

import (
	"wavemap/pkg/engine/world"
)

// Terrain category names, in catalog enumeration order.
const (
	Deep     = "deep"
	Water    = "water"
	Beach    = "beach"
	Grass    = "grass"
	Trees    = "trees"
	Mountain = "mountain"
	Snow     = "snow"
)

// defaultCatalog is built once at startup. Adjacency is a band model: each
// category touches itself and the bands directly above and below it, with a
// self weight above 1 so regions clump instead of dithering.
var defaultCatalog *world.Catalog

func init() {
	catalog, err := world.NewCatalog([]world.StateSpec{
		{Name: Deep, Neighbors: []world.NeighborSpec{
			{Name: Deep, Weight: 3},
			world.Adj(Water),
		}},
		{Name: Water, Neighbors: []world.NeighborSpec{
			world.Adj(Deep),
			{Name: Water, Weight: 2},
			world.Adj(Beach),
		}},
		{Name: Beach, Neighbors: []world.NeighborSpec{
			world.Adj(Water),
			{Name: Beach, Weight: 2},
			world.Adj(Grass),
		}},
		{Name: Grass, Neighbors: []world.NeighborSpec{
			world.Adj(Beach),
			{Name: Grass, Weight: 3},
			world.Adj(Trees),
		}},
		{Name: Trees, Neighbors: []world.NeighborSpec{
			world.Adj(Grass),
			{Name: Trees, Weight: 2},
			world.Adj(Mountain),
		}},
		{Name: Mountain, Neighbors: []world.NeighborSpec{
			world.Adj(Trees),
			{Name: Mountain, Weight: 2},
			world.Adj(Snow),
		}},
		{Name: Snow, Neighbors: []world.NeighborSpec{
			world.Adj(Mountain),
			{Name: Snow, Weight: 2},
		}},
	})
	if err != nil {
		panic("terrain: default catalog is invalid: " + err.Error())
	}
	defaultCatalog = catalog
}

// DefaultCatalog returns the fixed terrain catalog. The catalog is immutable
// and safe to share.
func DefaultCatalog() *world.Catalog {
	return defaultCatalog
}
