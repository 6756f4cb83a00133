package grid

import (
	"iter"
	"testing"

	"github.com/snakezilla/qless-game/pkg/dictionary"
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

func TestIsValidGrid_EmptyGridIsValid(t *testing.T) {
	d := testDict(t, "cat", "dog")
	var g Grid
	if !IsValidGrid(g, d) {
		t.Error("an empty grid must be valid")
	}
}

func TestIsValidGrid_RunOfTwoAlwaysIllegal(t *testing.T) {
	d := testDict(t, "cat", "dog", "ox")
	var g Grid
	g[0][0], g[0][1] = 'o', 'x' // the loader drops "ox" (under three letters); a length-2 run is illegal either way
	if IsValidGrid(g, d) {
		t.Error("a run of length 2 must always be rejected, even if it's a dictionary word")
	}
}

func TestIsValidGrid_RunOfThreeMustBeAWord(t *testing.T) {
	d := testDict(t, "cat")
	var g Grid
	g[0][0], g[0][1], g[0][2] = 'c', 'a', 't'
	if !IsValidGrid(g, d) {
		t.Error("\"cat\" is in the dictionary and should be valid")
	}

	g2 := Grid{}
	g2[0][0], g2[0][1], g2[0][2] = 'z', 'z', 'z'
	if IsValidGrid(g2, d) {
		t.Error("\"zzz\" is not in the dictionary and should be rejected")
	}
}

func TestIsValidGrid_CrossingSingleLetterIsLegal(t *testing.T) {
	d := testDict(t, "cat", "ant")
	var g Grid
	// A simple cross: CAT horizontally across row 0, ANT vertically down
	// column 1 through the 'a'.
	g[0][0], g[0][1], g[0][2] = 'c', 'a', 't'
	g[1][1], g[2][1] = 'n', 't'
	// column 1 now reads "a","n","t" = "ant" (length 3, a word); row 1 and
	// row 2 each have a single filled cell: a legal length-1 crossing run.
	if !IsValidGrid(g, d) {
		t.Error("expected a valid cross of two dictionary words")
	}
}

func TestIsValidGrid_BoundaryActsAsSentinel(t *testing.T) {
	d := testDict(t, "cat", "go") // the loader drops "go"; "cat" keeps the dictionary non-empty
	var g Grid
	g[0][6], g[0][7] = 'g', 'o' // run abuts the right edge of the board
	if IsValidGrid(g, d) {
		t.Error("a length-2 run abutting the boundary is still illegal")
	}
}
