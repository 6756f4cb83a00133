// Package reify implements the Placement Reifier (spec.md §4.5): it
// turns a solved character grid back into concrete tile assignments by
// matching each filled cell to an unused input tile bearing the same
// letter, scanning the grid in row-major order.
package reify

import (
	"fmt"

	"github.com/snakezilla/qless-game/pkg/grid"
	"github.com/snakezilla/qless-game/pkg/puzzle"
)

// Reify converts g into a row-major-ordered list of tile placements,
// drawing from tiles. Two tiles sharing a letter are interchangeable;
// which one is picked for a given cell is arbitrary but deterministic
// given tiles' order and g's scan order.
//
// Reify never returns a partial or inconsistent result: if some filled
// cell has no remaining unused tile of its letter, that means the
// search produced a grid the multiset can't actually pay for, which is
// a programmer error in the solver, not a caller mistake — Reify panics
// rather than silently dropping or miscounting placements (spec.md §7).
func Reify(g grid.Grid, tiles []puzzle.Tile) []puzzle.TilePlacement {
	used := make([]bool, len(tiles))
	placements := make([]puzzle.TilePlacement, 0, len(tiles))

	for r := 0; r < grid.Size; r++ {
		for c := 0; c < grid.Size; c++ {
			ch := g.Get(r, c)
			if ch == grid.Empty {
				continue
			}

			idx := -1
			for i, t := range tiles {
				if !used[i] && t.Char == ch {
					idx = i
					break
				}
			}
			if idx == -1 {
				panic(invariantViolation("reify: no unused tile for letter %q at (%d,%d)", ch, r, c))
			}

			used[idx] = true
			placements = append(placements, puzzle.TilePlacement{
				TileID: tiles[idx].ID,
				Cell:   grid.Cell{Row: r, Col: c},
			})
		}
	}

	want := len(tiles)
	if len(placements) != want {
		panic(invariantViolation("reify: produced %d placements, want %d (one per tile)", len(placements), want))
	}
	return placements
}

func invariantViolation(format string, args ...any) string {
	return fmt.Sprintf(format, args...)
}
