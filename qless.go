// Package qless is the solver's sole public surface: given a tile
// rack, it searches for a valid 8x8 Q-Less grid that places every
// tile, falling back to an 11-letter grid with one letter dropped if
// the full rack has no solution within budget.
//
// Everything else — the dictionary, the grid validator, the placement
// kernel, the backtracking search, the reifier — is an implementation
// detail reachable through this package's re-exports for callers (the
// CLI, the HTTP server, the Cloud Function) that need to construct one.
package qless

import (
	"context"
	"fmt"
	"iter"
	"math/rand/v2"
	"sort"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/snakezilla/qless-game/internal/rarity"
	"github.com/snakezilla/qless-game/pkg/dictionary"
	"github.com/snakezilla/qless-game/pkg/grid"
	"github.com/snakezilla/qless-game/pkg/puzzle"
	"github.com/snakezilla/qless-game/pkg/reify"
	"github.com/snakezilla/qless-game/pkg/search"
	"github.com/snakezilla/qless-game/pkg/tileset"
)

// Tile, Cell and TilePlacement are re-exported from pkg/puzzle so every
// caller-facing type lives under this one import. Stats is re-exported
// from pkg/search for the same reason.
type (
	Tile          = puzzle.Tile
	Cell          = grid.Cell
	TilePlacement = puzzle.TilePlacement
	Stats         = search.Stats
	Dictionary    = dictionary.Dictionary
)

// LoadDictionary builds a Dictionary from an iterator of candidate
// words, rejecting anything that isn't a lowercase a-z word of length
// three or more (spec.md §6).
func LoadDictionary(words iter.Seq[string]) (*Dictionary, error) {
	return dictionary.LoadDictionary(words)
}

// LoadFromFile is the file-backed convenience spec.md leaves
// unspecified: one lowercase word per line, blank lines and
// '#'-prefixed comments ignored.
func LoadFromFile(path string) (*Dictionary, error) {
	return dictionary.LoadFromFile(path)
}

// SolveResult is the solver's output: the tile placements forming a
// solved grid, whether the search succeeded, the letter dropped in
// phase 2 (empty in phase 1), and diagnostic stats.
type SolveResult struct {
	Placements    []TilePlacement `json:"placements"`
	Success       bool            `json:"success"`
	RemovedLetter string          `json:"removed_letter,omitempty"`
	Stats         Stats           `json:"stats"`
}

// Solver binds one Dictionary and one search.Config to repeated Solve
// calls. It is safe for concurrent use: the Dictionary is read-only and
// each Solve builds its own search state from scratch (spec.md §5).
type Solver struct {
	dict *Dictionary
	cfg  search.Config
	log  *logrus.Logger
}

// NewSolver builds a Solver that logs through logrus's standard logger;
// WithLogger returns a copy that logs elsewhere.
func NewSolver(dict *Dictionary, cfg search.Config) *Solver {
	return &Solver{dict: dict, cfg: cfg, log: logrus.StandardLogger()}
}

// WithLogger returns a copy of s logging through log instead of the
// standard logger, for callers (cmd/qless-server) that want requests
// tagged with their own fields.
func (s *Solver) WithLogger(log *logrus.Logger) *Solver {
	cp := *s
	cp.log = log
	return &cp
}

// Solve runs the two-phase search spec.md §4.4 describes: up to
// PhaseAFraction of deadlineMs attempting a full 12-tile grid, then, if
// that fails, one 11-tile attempt per distinct letter (rarest first)
// sharing what's left of the budget. seed drives tie-breaking only; the
// same seed against the same tiles always yields the same result
// (modulo Stats).
func (s *Solver) Solve(tiles []Tile, deadlineMs int, seed int64) (SolveResult, error) {
	if err := validateTiles(tiles); err != nil {
		return SolveResult{}, err
	}
	if deadlineMs < 0 {
		return SolveResult{}, inputErrorf("deadline-ms must not be negative, got %d", deadlineMs)
	}

	log := s.log.WithFields(logrus.Fields{"tiles": len(tiles), "deadline_ms": deadlineMs, "seed": seed})

	if deadlineMs == 0 {
		log.Debug("solve: zero-length deadline, returning immediately")
		return SolveResult{Success: false}, nil
	}

	full := tileset.Multiset{}
	for _, t := range tiles {
		full = full.Add(t.Char)
	}

	engine := search.NewEngine(s.dict, s.cfg, s.log)
	start := time.Now()
	overallDeadline := start.Add(time.Duration(deadlineMs) * time.Millisecond)

	phaseAEnd := start.Add(time.Duration(float64(deadlineMs)*s.cfg.PhaseAFraction) * time.Millisecond)
	if phaseAEnd.After(overallDeadline) {
		phaseAEnd = overallDeadline
	}

	rnd := rand.New(rand.NewPCG(uint64(seed), uint64(seed)^0x9E3779B97F4A7C15))

	ctxA, cancelA := context.WithDeadline(context.Background(), phaseAEnd)
	g, stats, ok := engine.Attempt(ctxA, full, rnd)
	cancelA()
	if ok {
		log.WithField("phase", "A").Debug("solve: succeeded")
		return SolveResult{
			Placements: reify.Reify(g, tiles),
			Success:    true,
			Stats:      stats,
		}, nil
	}

	if !time.Now().Before(overallDeadline) {
		log.WithField("phase", "A").Debug("solve: deadline exhausted in phase A")
		return SolveResult{Success: false, Stats: stats}, nil
	}

	letters := full.Letters()
	sort.SliceStable(letters, func(i, j int) bool { return rarity.Weight(letters[i]) > rarity.Weight(letters[j]) })

	remaining := time.Until(overallDeadline)
	if len(letters) == 0 {
		return SolveResult{Success: false, Stats: stats}, nil
	}
	perAttempt := remaining / time.Duration(len(letters))

	for _, letter := range letters {
		if !time.Now().Before(overallDeadline) {
			break
		}
		ms, removed := full.Remove(letter)
		if !removed {
			continue
		}

		attemptEnd := time.Now().Add(perAttempt)
		if attemptEnd.After(overallDeadline) {
			attemptEnd = overallDeadline
		}

		ctxB, cancelB := context.WithDeadline(context.Background(), attemptEnd)
		g, bStats, ok := engine.Attempt(ctxB, ms, rnd)
		cancelB()
		stats.Attempts += bStats.Attempts
		stats.CombosChecked += bStats.CombosChecked
		stats.Ms = time.Since(start).Milliseconds()

		if ok {
			remainingTiles, err := dropOneTile(tiles, letter)
			if err != nil {
				panic(invariantViolationf("solve: %v", err))
			}
			log.WithFields(logrus.Fields{"phase": "B", "removed_letter": string(letter)}).Debug("solve: succeeded")
			return SolveResult{
				Placements:    reify.Reify(g, remainingTiles),
				Success:       true,
				RemovedLetter: string(letter),
				Stats:         stats,
			}, nil
		}
	}

	log.WithField("phase", "B").Debug("solve: exhausted all phase-B attempts")
	return SolveResult{Success: false, Stats: stats}, nil
}

// dropOneTile returns a copy of tiles with the first tile bearing
// letter removed. It is an invariant violation for no such tile to
// exist, since letter came from full's own letter list.
func dropOneTile(tiles []Tile, letter byte) ([]Tile, error) {
	out := make([]Tile, 0, len(tiles)-1)
	dropped := false
	for _, t := range tiles {
		if !dropped && t.Char == letter {
			dropped = true
			continue
		}
		out = append(out, t)
	}
	if !dropped {
		return nil, fmt.Errorf("no tile bearing %q found to drop", letter)
	}
	return out, nil
}

func invariantViolationf(format string, args ...any) string {
	return fmt.Sprintf(format, args...)
}

func validateTiles(tiles []Tile) error {
	if len(tiles) < 11 || len(tiles) > 12 {
		return inputErrorf("tiles must number 11 or 12, got %d", len(tiles))
	}
	seen := make(map[string]bool, len(tiles))
	for _, t := range tiles {
		if t.Char < 'a' || t.Char > 'z' {
			return inputErrorf("tile %q has non-lowercase-letter char %q", t.ID, t.Char)
		}
		if t.ID == "" {
			return inputErrorf("tile has an empty id")
		}
		if seen[t.ID] {
			return inputErrorf("duplicate tile id %q", t.ID)
		}
		seen[t.ID] = true
	}
	return nil
}
