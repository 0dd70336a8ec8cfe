// Package devtools provides developer tools for testing and debugging.
package devtools

import (
	"fmt"
	"os"
	"path/filepath"

	"wavemap/pkg/engine/world"
	"wavemap/pkg/game/state"
)

const mapDumpFilename = "map.txt"

// tileSymbol returns the single-character symbol for a grid position: the
// first letter of the terrain name once collapsed, '?' while candidates
// remain, '!' for a contradicted cell.
func tileSymbol(catalog *world.Catalog, t world.Tile) rune {
	switch tile := t.(type) {
	case *world.CollapsedCell:
		name := catalog.Name(tile.State)
		if name == "" || name == "unknown" {
			return '?'
		}
		return rune(name[0])
	case *world.Cell:
		if tile.Entropy() == 0 {
			return '!'
		}
		return '?'
	default:
		return ' '
	}
}

// DumpMapToFile writes a full debug dump to map.txt: metadata, legend, the
// map itself, and per-terrain counts. Format is human- and LLM-readable
// (sections, key: value, consistent structure).
func DumpMapToFile(s *state.Session) (string, error) {
	absPath, err := filepath.Abs(mapDumpFilename)
	if err != nil {
		return "", err
	}

	f, err := os.Create(absPath)
	if err != nil {
		return "", err
	}
	defer f.Close()

	catalog := s.Catalog

	// --- Metadata ---
	fmt.Fprintln(f, "=== MAP DUMP DEBUG (terrain layout, generation state) ===")
	fmt.Fprintln(f, "")
	fmt.Fprintln(f, "--- Metadata ---")
	fmt.Fprintf(f, "width: %d\n", s.Width())
	fmt.Fprintf(f, "height: %d\n", s.Height())
	fmt.Fprintf(f, "seed: %d\n", s.Seed)
	fmt.Fprintf(f, "phase: %s\n", s.Phase())
	fmt.Fprintf(f, "steps: %d\n", s.Steps())
	fmt.Fprintf(f, "collapsed: %d of %d\n", s.CollapsedCount(), s.Width()*s.Height())
	fmt.Fprintf(f, "total_entropy: %d\n", s.TotalEntropy())
	fmt.Fprintf(f, "coordinate_system: x,y (0-based, x=horizontal, y=vertical/down)\n")
	fmt.Fprintln(f, "")

	// --- Legend ---
	fmt.Fprintln(f, "--- Legend (cell symbols) ---")
	for _, st := range catalog.States() {
		name := catalog.Name(st)
		fmt.Fprintf(f, "%c = %s  ", name[0], name)
	}
	fmt.Fprintln(f, "? = uncollapsed  ! = contradiction")
	fmt.Fprintln(f, "")

	// --- Map ---
	fmt.Fprintln(f, "--- Map ---")
	for y := 0; y < s.Height(); y++ {
		for x := 0; x < s.Width(); x++ {
			fmt.Fprintf(f, "%c", tileSymbol(catalog, s.Get(x, y)))
		}
		fmt.Fprintln(f)
	}
	fmt.Fprintln(f, "")

	// --- Counts per terrain ---
	counts := make(map[world.State]int)
	uncollapsed := 0
	s.ForEachTile(func(x, y int, t world.Tile) {
		if collapsed, ok := t.(*world.CollapsedCell); ok {
			counts[collapsed.State]++
		} else {
			uncollapsed++
		}
	})
	fmt.Fprintln(f, "--- Counts ---")
	for _, st := range catalog.States() {
		fmt.Fprintf(f, "%s: %d\n", catalog.Name(st), counts[st])
	}
	fmt.Fprintf(f, "uncollapsed: %d\n", uncollapsed)
	fmt.Fprintln(f, "")

	fmt.Fprintln(f, "=== END MAP DUMP ===")

	if err := f.Sync(); err != nil {
		return absPath, err
	}
	return absPath, nil
}
