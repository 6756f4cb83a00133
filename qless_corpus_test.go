package qless

import (
	"math/rand/v2"
	"testing"

	"github.com/snakezilla/qless-game/pkg/search"
)

// canonicalDice is a reconstruction of the Q-Less dice set (spec.md's
// glossary defers the exact face values to "a property of the
// game-state collaborator, not of the solver," so no canonical table
// ships with spec.md itself). The first six dice carry mostly vowel
// faces and the last six none, so the vowel-floor-of-2 rule below
// rarely has to reroll.
var canonicalDice = [12][6]byte{
	{'a', 'e', 'i', 'o', 'u', 'l'},
	{'a', 'e', 'i', 'o', 'u', 'n'},
	{'a', 'e', 'i', 'o', 'u', 'r'},
	{'a', 'e', 'i', 'o', 'u', 's'},
	{'a', 'e', 'o', 'u', 't', 'd'},
	{'a', 'e', 'i', 'o', 'g', 'm'},
	{'b', 'c', 'd', 'f', 'g', 'h'},
	{'j', 'k', 'l', 'm', 'n', 'p'},
	{'p', 'q', 'r', 's', 't', 'v'},
	{'w', 'x', 'y', 'z', 'c', 'h'},
	{'n', 'r', 's', 't', 'l', 'd'},
	{'c', 'm', 'p', 'b', 'g', 'f'},
}

func isVowel(c byte) bool {
	switch c {
	case 'a', 'e', 'i', 'o', 'u':
		return true
	default:
		return false
	}
}

// rollCanonicalDice rolls all twelve dice once per die, rerolling the
// whole set if the vowel-floor-of-2 rule (spec.md §8 scenario 6) isn't
// met, deterministically driven by rnd so a given seed always produces
// the same rack.
func rollCanonicalDice(rnd *rand.Rand) []Tile {
	for {
		faces := make([]byte, len(canonicalDice))
		vowels := 0
		for i, die := range canonicalDice {
			face := die[rnd.IntN(len(die))]
			faces[i] = face
			if isVowel(face) {
				vowels++
			}
		}
		if vowels >= 2 {
			tiles := make([]Tile, len(faces))
			for i, c := range faces {
				tiles[i] = Tile{ID: string(rune('a' + i)), Char: c}
			}
			return tiles
		}
	}
}

// TestSolve_AggregateSuccessOverCanonicalRolls is the randomized
// regression test spec.md §8 scenario 6 and §9's Open Questions call
// for: 25 racks drawn from the canonical dice with the vowel floor
// applied, solved against the real word corpus, with an aggregate
// success rate of at least 80% and at least one Phase-B (11-letter)
// success among them. Grounded on the teacher's own randomized-corpus
// idiom (generator_test.go's fixed-PCG-seed runs against a real word
// list), generalized from "run once and print the grid" to "run N
// times and assert an aggregate rate."
func TestSolve_AggregateSuccessOverCanonicalRolls(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping 25-puzzle corpus regression in short mode")
	}

	dict, err := LoadFromFile("testdata/words.txt")
	if err != nil {
		t.Fatalf("LoadFromFile() error = %v", err)
	}
	solver := NewSolver(dict, search.DefaultConfig())

	const puzzles = 25
	const wantRate = 0.80

	successes := 0
	phaseBSuccesses := 0
	for i := range puzzles {
		rnd := rand.New(rand.NewPCG(uint64(i), 0x9E3779B97F4A7C15^uint64(i)))
		tiles := rollCanonicalDice(rnd)

		res, err := solver.Solve(tiles, 15000, int64(i))
		if err != nil {
			t.Fatalf("Solve() error on puzzle %d = %v", i, err)
		}
		if res.Success {
			successes++
			if res.RemovedLetter != "" {
				phaseBSuccesses++
			}
		}
	}

	rate := float64(successes) / float64(puzzles)
	if rate < wantRate {
		t.Errorf("aggregate success rate = %.2f (%d/%d), want >= %.2f", rate, successes, puzzles, wantRate)
	}
	if phaseBSuccesses == 0 {
		t.Error("expected at least one Phase-B (11-letter) success among the 25 puzzles")
	}
}
