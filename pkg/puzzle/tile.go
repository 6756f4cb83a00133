// Package puzzle holds the handful of types the solver's public surface
// and its Placement Reifier must share (spec.md §3's Tile and
// TilePlacement). They live below both qless and pkg/reify so neither
// package has to import the other just to talk about a tile.
package puzzle

import "github.com/snakezilla/qless-game/pkg/grid"

// Tile is one physical letter unit handed to the solver. Identity is
// stable for the life of a game; Char is immutable; Position is owned
// by the surrounding game state, not by the solver, so the solver never
// reads or writes it.
type Tile struct {
	ID   string
	Char byte
}

// TilePlacement assigns a tile (by ID) to a grid cell. The Placement
// Reifier produces a row-major-ordered slice of these from a solved
// grid; a game-state collaborator applies them in that order.
type TilePlacement struct {
	TileID string
	Cell   grid.Cell
}
