// Package state holds the host-facing generation session: the boundary
// surface the renderer and input loop talk to. The renderer only reads grid
// state through it; all mutation flows through the request methods, and the
// caller serializes them (single-writer model).
package state

import (
	"math/rand"
	"time"

	"wavemap/pkg/engine/wfc"
	"wavemap/pkg/engine/world"
)

// maxMessages bounds the session message log.
const maxMessages = 5

// Session owns one grid and its collapse driver for the lifetime of the
// host.
type Session struct {
	Catalog *world.Catalog

	Seed int64

	Messages []string

	grid      *world.Grid
	collapser *wfc.Collapser
}

// NewSession creates a session with a fresh full-candidate grid of the
// given dimensions. The seed feeds the driver's random source so runs are
// reproducible.
func NewSession(width, height int, catalog *world.Catalog, seed int64) (*Session, error) {
	grid, err := world.NewGrid(width, height, catalog)
	if err != nil {
		return nil, err
	}

	return &Session{
		Catalog:   catalog,
		Seed:      seed,
		grid:      grid,
		collapser: wfc.NewCollapser(grid, rand.New(rand.NewSource(seed))),
	}, nil
}

// Width returns the grid width.
func (s *Session) Width() int {
	return s.grid.Width()
}

// Height returns the grid height.
func (s *Session) Height() int {
	return s.grid.Height()
}

// SetWidth resizes the grid to the new width, discarding all progress.
// Returns ErrConfiguration for a non-positive width.
func (s *Session) SetWidth(width int) error {
	return s.Resize(width, s.grid.Height())
}

// SetHeight resizes the grid to the new height, discarding all progress.
// Returns ErrConfiguration for a non-positive height.
func (s *Session) SetHeight(height int) error {
	return s.Resize(s.grid.Width(), height)
}

// Resize reinitializes the grid at the given dimensions, then resets the
// driver. Destructive: every position becomes a fresh full-candidate cell.
func (s *Session) Resize(width, height int) error {
	if err := s.grid.Resize(width, height); err != nil {
		return err
	}
	return s.collapser.Reset()
}

// Get returns the tile at the given position, or nil if out of range.
func (s *Session) Get(x, y int) world.Tile {
	return s.grid.Get(x, y)
}

// Set replaces the tile at the given position.
func (s *Session) Set(x, y int, t world.Tile) {
	s.grid.Set(x, y, t)
}

// Neighbours returns the four orthogonal neighbors in fixed order
// (+x, -x, +y, -y), nil for out-of-range entries.
func (s *Session) Neighbours(x, y int) [4]world.Tile {
	return s.grid.Neighbours(x, y)
}

// ForEachTile iterates over all grid positions for rendering. Tiles must be
// treated as read-only by callers.
func (s *Session) ForEachTile(fn func(x, y int, t world.Tile)) {
	s.grid.ForEachTile(fn)
}

// CanStep reports whether at least one uncollapsed cell remains.
func (s *Session) CanStep() bool {
	return s.collapser.CanStep()
}

// Phase returns the driver's lifecycle phase.
func (s *Session) Phase() wfc.Phase {
	return s.collapser.Phase()
}

// Steps returns the number of successful steps since the last reset.
func (s *Session) Steps() int {
	return s.collapser.Steps()
}

// CollapsedCount returns the number of finalized positions.
func (s *Session) CollapsedCount() int {
	return s.collapser.CollapsedCount()
}

// TotalEntropy returns the summed entropy of all uncollapsed cells.
func (s *Session) TotalEntropy() int {
	return s.collapser.TotalEntropy()
}

// RequestStep performs one collapse-and-propagate step.
func (s *Session) RequestStep() error {
	return s.collapser.Step()
}

// RequestGenerate runs the driver to completion, resetting first when the
// previous run already finished. The onStep callback lets the host render
// intermediate state between steps.
func (s *Session) RequestGenerate(pause time.Duration, onStep func()) error {
	if !s.collapser.CanStep() {
		if err := s.collapser.Reset(); err != nil {
			return err
		}
	}
	return s.collapser.Run(pause, onStep)
}

// RequestReset discards all progress at the current dimensions.
func (s *Session) RequestReset() error {
	return s.collapser.Reset()
}

// AddMessage adds a message to the session's message log
func (s *Session) AddMessage(msg string) {
	s.Messages = append(s.Messages, msg)

	// Keep only the last maxMessages
	if len(s.Messages) > maxMessages {
		s.Messages = s.Messages[len(s.Messages)-maxMessages:]
	}
}

// ClearMessages clears all messages
func (s *Session) ClearMessages() {
	s.Messages = make([]string, 0)
}
