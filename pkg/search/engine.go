// Package search implements the depth-first, branch-limited backtracking
// engine described in spec.md §4.4: it alternates selecting a candidate
// word and a placement for it, guided by rarity and progress heuristics,
// respecting a wall-clock deadline and per-depth branching caps.
//
// The recursive shape is grounded directly on the teacher's generator.go
// (possibleGridsAtRoot / iterateAllPossibleGrids): mutually-recursive
// closures returning a Go 1.23 iter.Seq, value-copying the grid on every
// branch, checking ctx.Err() at the top of every frame. What changed is
// the domain: the teacher propagates whole-line constraints over a dense
// rectangular grid; this engine places whole words one at a time onto a
// partially-filled 8x8 board built from a fixed tile multiset.
package search

import (
	"context"
	"iter"
	"math/rand/v2"
	"sort"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/snakezilla/qless-game/internal/rarity"
	"github.com/snakezilla/qless-game/pkg/dictionary"
	"github.com/snakezilla/qless-game/pkg/grid"
	"github.com/snakezilla/qless-game/pkg/placement"
	"github.com/snakezilla/qless-game/pkg/tileset"
)

// Stats reports how much work an Attempt did, for diagnostics and the
// solve result's optional stats block (spec.md §3).
type Stats struct {
	Attempts      int
	CombosChecked int
	Ms            int64
}

// Engine drives one backtracking search over one Dictionary.
type Engine struct {
	Dict   *dictionary.Dictionary
	Config Config
	Log    *logrus.Logger
}

// NewEngine builds an Engine. A nil logger falls back to logrus's
// standard logger.
func NewEngine(dict *dictionary.Dictionary, cfg Config, log *logrus.Logger) *Engine {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Engine{Dict: dict, Config: cfg, Log: log}
}

// frame is the state threaded through recursion: the grid built so far,
// the letters not yet placed, and the current depth. Passed by value so
// that sibling branches never see each other's writes (spec.md §9).
type frame struct {
	grid      grid.Grid
	remaining tileset.Multiset
	depth     int
}

// Attempt runs one backtracking search to place every letter of ms onto
// an empty 8x8 grid, stopping at the first complete solution it finds or
// at ctx's deadline, whichever comes first. rnd breaks ties between
// equal-priority candidates/placements; pass a seeded source for
// reproducible runs (spec.md §5).
func (e *Engine) Attempt(ctx context.Context, ms tileset.Multiset, rnd *rand.Rand) (grid.Grid, Stats, bool) {
	start := time.Now()
	stats := &Stats{}

	shared := e.Dict.WordsFormableFrom(ms)
	root := frame{grid: grid.Grid{}, remaining: ms, depth: 0}

	for g := range e.solutions(ctx, root, shared, stats, rnd) {
		stats.Ms = time.Since(start).Milliseconds()
		e.Log.WithFields(logrus.Fields{
			"attempts":       stats.Attempts,
			"combos_checked": stats.CombosChecked,
			"ms":             stats.Ms,
		}).Debug("search: attempt succeeded")
		return g, *stats, true
	}

	stats.Ms = time.Since(start).Milliseconds()
	e.Log.WithFields(logrus.Fields{
		"attempts":       stats.Attempts,
		"combos_checked": stats.CombosChecked,
		"ms":             stats.Ms,
		"deadline_hit":   ctx.Err() != nil,
	}).Debug("search: attempt failed")
	return grid.Grid{}, *stats, false
}

// solutions is the per-frame recursive step, mirroring the teacher's
// possibleGridsAtRoot. It yields at most the solutions its caller asks
// for before stopping (range-over-func's early break via yield
// returning false), which in practice is exactly one: spec.md's "one
// solution per call" non-goal.
func (e *Engine) solutions(ctx context.Context, f frame, shared []string, stats *Stats, rnd *rand.Rand) iter.Seq[grid.Grid] {
	return func(yield func(grid.Grid) bool) {
		if ctx.Err() != nil {
			return
		}

		if f.remaining.IsEmpty() {
			yield(f.grid)
			return
		}

		// Step 1: prune if no word at all is formable from what's left
		// and we still need a non-trivial amount of progress.
		if f.remaining.Total() >= 3 && !anyFormable(shared, f.remaining) {
			return
		}

		candidates := e.frameCandidates(f, shared)
		candidates = orderWords(candidates, f.remaining, rnd)

		wCap, pCap := e.Config.Wd, e.Config.Pd
		if f.depth == 0 {
			wCap, pCap = e.Config.W0, e.Config.P0
		}
		if wCap < len(candidates) {
			candidates = candidates[:wCap]
		}

		for _, word := range candidates {
			if ctx.Err() != nil {
				return
			}
			stats.Attempts++

			options := e.enumeratePlacements(f, word)
			options = orderOptions(options, rnd)
			if pCap < len(options) {
				options = options[:pCap]
			}

			for _, opt := range options {
				if ctx.Err() != nil {
					return
				}
				stats.CombosChecked++

				next := applyOption(f, opt)
				for sol := range e.solutions(ctx, next, shared, stats, rnd) {
					if !yield(sol) {
						return
					}
				}
			}
		}
	}
}

// frameCandidates filters the shared root word list down to what this
// frame may legally try: a fully-formable word for the seed (empty
// grid), or a word that draws at least one letter from what's left
// otherwise (spec.md §4.4 step 2 — later words may draw the rest from
// an intersection with the existing grid).
func (e *Engine) frameCandidates(f frame, shared []string) []string {
	out := make([]string, 0, len(shared))
	for _, w := range shared {
		if f.grid.IsEmpty() {
			if f.remaining.DominatesWord(w) {
				out = append(out, w)
			}
			continue
		}
		if f.remaining.Overlap(w) > 0 {
			out = append(out, w)
		}
	}
	return out
}

func anyFormable(shared []string, remaining tileset.Multiset) bool {
	for _, w := range shared {
		if remaining.DominatesWord(w) {
			return true
		}
	}
	return false
}

// orderWords sorts candidates by rarity score descending, then length
// descending, shuffling ties first so the result is reproducible given
// rnd's seed but not always the same word among equals (spec.md §4.4
// step 3, §5).
func orderWords(words []string, remaining tileset.Multiset, rnd *rand.Rand) []string {
	rnd.Shuffle(len(words), func(i, j int) { words[i], words[j] = words[j], words[i] })
	sort.SliceStable(words, func(i, j int) bool {
		si, sj := rarity.ScoreWord(words[i], remaining), rarity.ScoreWord(words[j], remaining)
		if si != sj {
			return si > sj
		}
		return len(words[i]) > len(words[j])
	})
	return words
}

// orderOptions sorts placements by rarity score descending, then
// new-letter count descending (more progress first), then intersection
// count descending (spec.md §4.4 step 6).
func orderOptions(options []placement.Option, rnd *rand.Rand) []placement.Option {
	rnd.Shuffle(len(options), func(i, j int) { options[i], options[j] = options[j], options[i] })
	sort.SliceStable(options, func(i, j int) bool {
		si, sj := rarity.ScoreNewLetters(options[i].NewLetters), rarity.ScoreNewLetters(options[j].NewLetters)
		if si != sj {
			return si > sj
		}
		if len(options[i].NewLetters) != len(options[j].NewLetters) {
			return len(options[i].NewLetters) > len(options[j].NewLetters)
		}
		return options[i].IntersectionCount > options[j].IntersectionCount
	})
	return options
}

// enumeratePlacements finds every placement of word on f.grid, per
// spec.md §4.4 step 5: on an empty grid, the kernel's canonical seed
// start; otherwise every (direction, start) implied by aligning some
// letter of word with a matching already-filled cell, deduplicated.
func (e *Engine) enumeratePlacements(f frame, word string) []placement.Option {
	if f.grid.IsEmpty() {
		if opt, ok := placement.TryPlace(f.grid, word, placement.SeedStart(len(word)), grid.Horizontal, f.remaining, e.Dict); ok {
			return []placement.Option{opt}
		}
		return nil
	}

	type key struct {
		dir      grid.Direction
		row, col int
	}
	seen := make(map[key]bool)
	var out []placement.Option

	tryStart := func(start grid.Cell, dir grid.Direction) {
		k := key{dir, start.Row, start.Col}
		if seen[k] {
			return
		}
		seen[k] = true
		if opt, ok := placement.TryPlace(f.grid, word, start, dir, f.remaining, e.Dict); ok {
			out = append(out, opt)
		}
	}

	for r := 0; r < grid.Size; r++ {
		for c := 0; c < grid.Size; c++ {
			cell := f.grid.Get(r, c)
			if cell == grid.Empty {
				continue
			}
			for i := 0; i < len(word); i++ {
				if word[i] != cell {
					continue
				}
				tryStart(grid.Cell{Row: r, Col: c - i}, grid.Horizontal)
				tryStart(grid.Cell{Row: r - i, Col: c}, grid.Vertical)
			}
		}
	}
	return out
}

// applyOption writes opt into f.grid and removes its new letters from
// f.remaining, returning the next frame. Both the grid and the multiset
// are value types, so this is the "clone on descent" spec.md §9 allows.
func applyOption(f frame, opt placement.Option) frame {
	g := f.grid
	remaining := f.remaining
	for i := 0; i < len(opt.Word); i++ {
		var row, col int
		if opt.Direction == grid.Horizontal {
			row, col = opt.Start.Row, opt.Start.Col+i
		} else {
			row, col = opt.Start.Row+i, opt.Start.Col
		}
		g = g.Set(row, col, opt.Word[i])
	}
	for _, c := range opt.NewLetters {
		remaining, _ = remaining.Remove(c)
	}
	return frame{grid: g, remaining: remaining, depth: f.depth + 1}
}
