// Package gamestate implements the minimal game-state collaborator
// spec.md §6 specifies only at its interface with the solver: it holds
// the tile list and the grid built from placing them, and it answers
// its own win-check independently of whatever the solver claims,
// because spec.md §6 requires the two to concur rather than the
// collaborator simply trusting the solver's success flag.
//
// Rendering, animation, scoring, persistence, onboarding and dice-roll
// concerns are explicitly out of scope here; this package only tracks
// enough state to drive and verify one solve's placements.
package gamestate

import (
	"fmt"

	"github.com/snakezilla/qless-game/pkg/dictionary"
	"github.com/snakezilla/qless-game/pkg/grid"
	"github.com/snakezilla/qless-game/pkg/puzzle"
)

// State is one game's tile rack and board. It is not safe for
// concurrent use by multiple goroutines without external locking.
type State struct {
	dict  *dictionary.Dictionary
	grid  grid.Grid
	chars map[string]byte
	cells map[string]grid.Cell
}

// New builds an empty board for the given tile set, each tile
// unplaced. dict is consulted by WinCheck, never mutated.
func New(dict *dictionary.Dictionary, tiles []puzzle.Tile) *State {
	chars := make(map[string]byte, len(tiles))
	for _, t := range tiles {
		chars[t.ID] = t.Char
	}
	return &State{dict: dict, chars: chars, cells: make(map[string]grid.Cell, len(tiles))}
}

// PlaceLetter puts tileID's letter at (row, col). It fails if tileID is
// unknown, already placed, the cell is out of bounds, or the cell is
// already occupied — it does not otherwise judge whether the placement
// is a good idea; that's what WinCheck and the solver are for.
func (s *State) PlaceLetter(tileID string, row, col int) error {
	ch, known := s.chars[tileID]
	if !known {
		return fmt.Errorf("gamestate: unknown tile %q", tileID)
	}
	if _, placed := s.cells[tileID]; placed {
		return fmt.Errorf("gamestate: tile %q is already placed", tileID)
	}
	if !grid.InBounds(row, col) {
		return fmt.Errorf("gamestate: cell (%d,%d) is out of bounds", row, col)
	}
	if s.grid.Get(row, col) != grid.Empty {
		return fmt.Errorf("gamestate: cell (%d,%d) is already occupied", row, col)
	}
	s.grid = s.grid.Set(row, col, ch)
	s.cells[tileID] = grid.Cell{Row: row, Col: col}
	return nil
}

// RemoveLetter takes tileID back off the board, freeing its cell.
func (s *State) RemoveLetter(tileID string) error {
	cell, placed := s.cells[tileID]
	if !placed {
		return fmt.Errorf("gamestate: tile %q is not on the board", tileID)
	}
	s.grid = s.grid.Set(cell.Row, cell.Col, grid.Empty)
	delete(s.cells, tileID)
	return nil
}

// Grid exposes the board built so far, for callers that want to render
// or inspect it. The caller gets a copy, since Grid is a value type.
func (s *State) Grid() grid.Grid { return s.grid }

// WinCheck reports whether every tile is on the board, the board is a
// valid grid, it is 4-connected, and every letter is part of some
// run of length three or more — independently re-derived from the
// board, not read off a flag the solver set.
func (s *State) WinCheck() bool {
	if len(s.cells) != len(s.chars) {
		return false
	}
	if !grid.IsValidGrid(s.grid, s.dict) {
		return false
	}
	if !s.grid.Connected4() {
		return false
	}
	for cell := range s.cells {
		c := s.cells[cell]
		if !partOfLongRun(s.grid, c.Row, c.Col) {
			return false
		}
	}
	return true
}

// partOfLongRun reports whether (row, col) belongs to a horizontal or
// vertical run of three or more filled cells.
func partOfLongRun(g grid.Grid, row, col int) bool {
	return runLength(g, row, col, 0, 1) >= 3 || runLength(g, row, col, 1, 0) >= 3
}

func runLength(g grid.Grid, row, col, dRow, dCol int) int {
	r, c := row, col
	for grid.InBounds(r-dRow, c-dCol) && g.Get(r-dRow, c-dCol) != grid.Empty {
		r, c = r-dRow, c-dCol
	}
	length := 0
	for grid.InBounds(r, c) && g.Get(r, c) != grid.Empty {
		length++
		r, c = r+dRow, c+dCol
	}
	return length
}
