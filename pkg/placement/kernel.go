// Package placement is the decisional kernel of the solver: given a
// grid, a candidate word, a starting cell and a direction, it decides
// whether the word can be placed there and reports what it would
// consume. It never mutates its inputs (spec.md §4.3) — the search
// engine applies an accepted Option by cloning its own grid and
// multiset.
package placement

import (
	"github.com/snakezilla/qless-game/pkg/dictionary"
	"github.com/snakezilla/qless-game/pkg/grid"
	"github.com/snakezilla/qless-game/pkg/tileset"
)

// Option is a feasible placement: a word, a start cell, a direction, the
// letters it would newly consume from the tile pool, and how many
// existing cells it intersects.
type Option struct {
	Word              string
	Start             grid.Cell
	Direction         grid.Direction
	NewLetters        []byte
	IntersectionCount int
}

// deltas returns the per-cell (row, col) offsets the word occupies.
func deltas(start grid.Cell, dir grid.Direction, length int) []grid.Cell {
	cells := make([]grid.Cell, length)
	for i := 0; i < length; i++ {
		if dir == grid.Horizontal {
			cells[i] = grid.Cell{Row: start.Row, Col: start.Col + i}
		} else {
			cells[i] = grid.Cell{Row: start.Row + i, Col: start.Col}
		}
	}
	return cells
}

// TryPlace decides whether word can be placed at start in direction dir
// on g, given the letters still available in remaining. On success it
// returns a populated Option and true; on failure it returns the zero
// Option and false. TryPlace performs no mutation of g or remaining.
func TryPlace(g grid.Grid, word string, start grid.Cell, dir grid.Direction, remaining tileset.Multiset, dict *dictionary.Dictionary) (Option, bool) {
	cells := deltas(start, dir, len(word))

	// 1. Bounds.
	for _, c := range cells {
		if !grid.InBounds(c.Row, c.Col) {
			return Option{}, false
		}
	}

	// 2. No-extension: the cell immediately before/after the word must be
	// empty or off-board.
	before := grid.Cell{Row: start.Row, Col: start.Col}
	after := cells[len(cells)-1]
	if dir == grid.Horizontal {
		before.Col--
		after.Col++
	} else {
		before.Row--
		after.Row++
	}
	if grid.InBounds(before.Row, before.Col) && g.Get(before.Row, before.Col) != grid.Empty {
		return Option{}, false
	}
	if grid.InBounds(after.Row, after.Col) && g.Get(after.Row, after.Col) != grid.Empty {
		return Option{}, false
	}

	// 3 & 4. Cell compatibility and letter budget.
	avail := remaining
	var newLetters []byte
	intersections := 0
	for i, c := range cells {
		want := word[i]
		existing := g.Get(c.Row, c.Col)
		switch existing {
		case grid.Empty:
			var ok bool
			avail, ok = avail.Remove(want)
			if !ok {
				return Option{}, false
			}
			newLetters = append(newLetters, want)
		case want:
			intersections++
		default:
			return Option{}, false
		}
	}

	// 5. Crossing requirement: a non-seed placement must touch the
	// existing grid at least once.
	if !g.IsEmpty() && intersections == 0 {
		return Option{}, false
	}

	// 6. Global legality: write tentatively and re-validate the whole grid.
	tentative := g
	for i, c := range cells {
		tentative = tentative.Set(c.Row, c.Col, word[i])
	}
	if !grid.IsValidGrid(tentative, dict) {
		return Option{}, false
	}

	return Option{
		Word:              word,
		Start:             start,
		Direction:         dir,
		NewLetters:        newLetters,
		IntersectionCount: intersections,
	}, true
}

// SeedStart returns the canonical starting cell for the first word
// placed into an empty grid: a horizontal run on row Size/2 (row 4),
// centered across the columns. Any cell passing every
// other check would do; this one keeps the eventual grid away from the
// board's edges as long as possible.
func SeedStart(wordLen int) grid.Cell {
	col := (grid.Size - wordLen) / 2
	if col < 0 {
		col = 0
	}
	return grid.Cell{Row: grid.Size / 2, Col: col}
}
