package gamestate

import (
	"iter"
	"testing"

	"github.com/snakezilla/qless-game/pkg/dictionary"
	"github.com/snakezilla/qless-game/pkg/grid"
	"github.com/snakezilla/qless-game/pkg/puzzle"
	"github.com/snakezilla/qless-game/pkg/reify"
)

func testDict(t *testing.T, words ...string) *dictionary.Dictionary {
	t.Helper()
	d, err := dictionary.LoadDictionary(iter.Seq[string](func(yield func(string) bool) {
		for _, w := range words {
			if !yield(w) {
				return
			}
		}
	}))
	if err != nil {
		t.Fatalf("LoadDictionary() error = %v", err)
	}
	return d
}

// catAntGrid builds the hand-verified CAT (horizontal) / ANT (vertical,
// crossing on the shared 'a') solution used throughout this package's
// sibling tests.
func catAntGrid() grid.Grid {
	var g grid.Grid
	g = g.Set(4, 2, 'c')
	g = g.Set(4, 3, 'a')
	g = g.Set(4, 4, 't')
	g = g.Set(5, 3, 'n')
	g = g.Set(6, 3, 't')
	return g
}

func catAntTiles() []puzzle.Tile {
	return []puzzle.Tile{
		{ID: "t1", Char: 'c'},
		{ID: "t2", Char: 'a'},
		{ID: "t3", Char: 't'},
		{ID: "t4", Char: 'n'},
		{ID: "t5", Char: 't'},
	}
}

func TestPlaceLetter_Errors(t *testing.T) {
	dict := testDict(t, "cat")
	s := New(dict, catAntTiles())

	if err := s.PlaceLetter("nope", 0, 0); err == nil {
		t.Error("expected an error for an unknown tile")
	}
	if err := s.PlaceLetter("t1", 0, 0); err != nil {
		t.Fatalf("PlaceLetter() error = %v", err)
	}
	if err := s.PlaceLetter("t1", 1, 1); err == nil {
		t.Error("expected an error placing an already-placed tile")
	}
	if err := s.PlaceLetter("t2", 0, 0); err == nil {
		t.Error("expected an error placing onto an occupied cell")
	}
	if err := s.PlaceLetter("t3", 100, 100); err == nil {
		t.Error("expected an error placing out of bounds")
	}
}

func TestRemoveLetter_RoundTrip(t *testing.T) {
	dict := testDict(t, "cat")
	s := New(dict, catAntTiles())

	if err := s.PlaceLetter("t1", 0, 0); err != nil {
		t.Fatalf("PlaceLetter() error = %v", err)
	}
	if err := s.RemoveLetter("t1"); err != nil {
		t.Fatalf("RemoveLetter() error = %v", err)
	}
	if s.Grid().Get(0, 0) != grid.Empty {
		t.Error("expected the cell to be empty again after removal")
	}
	if err := s.RemoveLetter("t1"); err == nil {
		t.Error("expected an error removing a tile that isn't on the board")
	}
}

func TestWinCheck_RoundTripThroughReify(t *testing.T) {
	dict := testDict(t, "cat", "ant")
	tiles := catAntTiles()
	g := catAntGrid()

	placements := reify.Reify(g, tiles)
	if len(placements) != len(tiles) {
		t.Fatalf("len(placements) = %d, want %d", len(placements), len(tiles))
	}

	s := New(dict, tiles)
	for _, p := range placements {
		if err := s.PlaceLetter(p.TileID, p.Cell.Row, p.Cell.Col); err != nil {
			t.Fatalf("PlaceLetter(%q) error = %v", p.TileID, err)
		}
	}

	if !s.WinCheck() {
		t.Error("expected WinCheck to concur with the independently-built solved grid")
	}
}

func TestWinCheck_FalseWhileIncomplete(t *testing.T) {
	dict := testDict(t, "cat", "ant")
	s := New(dict, catAntTiles())
	if s.WinCheck() {
		t.Error("expected WinCheck to be false before any tile is placed")
	}

	if err := s.PlaceLetter("t1", 0, 0); err != nil {
		t.Fatalf("PlaceLetter() error = %v", err)
	}
	if s.WinCheck() {
		t.Error("expected WinCheck to be false with only one isolated tile placed")
	}
}
