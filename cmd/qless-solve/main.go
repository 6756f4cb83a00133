// Command qless-solve is the CLI test harness spec.md §6 calls for: it
// accepts a single letter rack, runs the solver once, and reports
// success/failure and timing. Flag layout follows the teacher's
// cmd/xwcli/main.go (-file, -timeout, -profile/-profile-file).
package main

import (
	"flag"
	"fmt"
	"os"
	"runtime/pprof"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/snakezilla/qless-game"
	"github.com/snakezilla/qless-game/pkg/dictionary"
	"github.com/snakezilla/qless-game/pkg/search"
)

func main() {
	os.Exit(run())
}

// run carries every exit-worthy path through a single return instead of
// os.Exit so that, once -profile starts the CPU profiler, its deferred
// pprof.StopCPUProfile always fires before the process exits — the
// teacher's cmd/xwcli/main.go never calls os.Exit after starting its
// own profiler for the same reason.
func run() int {
	dictFile := flag.String("dict", "testdata/words.txt", "The file to load the dictionary from")
	deadline := flag.Duration("deadline", 10*time.Second, "Wall-clock budget for the solve")
	seed := flag.Int64("seed", 0, "Seed for tie-breaking randomness")

	profile := flag.Bool("profile", false, "Profile the solve")
	profileFile := flag.String("profile-file", "cpu.pprof", "The file to write the CPU profile to")

	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: qless-solve [flags] <11-or-12-letter rack>")
		return 1
	}
	rack := strings.ToLower(flag.Arg(0))

	dict, err := dictionary.LoadFromFile(*dictFile)
	if err != nil {
		fmt.Fprintln(os.Stderr, "loading dictionary:", err)
		return 1
	}
	fmt.Fprintf(os.Stderr, "dictionary: %d words\n", dict.Size())

	tiles := make([]qless.Tile, len(rack))
	for i := 0; i < len(rack); i++ {
		tiles[i] = qless.Tile{ID: fmt.Sprintf("t%d", i), Char: rack[i]}
	}

	if *profile {
		f, err := os.Create(*profileFile)
		if err != nil {
			fmt.Fprintln(os.Stderr, "creating profile file:", err)
			return 1
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			fmt.Fprintln(os.Stderr, "starting CPU profile:", err)
			return 1
		}
		defer pprof.StopCPUProfile()
	}

	solver := qless.NewSolver(dict, search.DefaultConfig())

	start := time.Now()
	result, err := solver.Solve(tiles, int(deadline.Milliseconds()), *seed)
	elapsed := time.Since(start)
	if err != nil {
		fmt.Fprintln(os.Stderr, "solve rejected:", err)
		return 1
	}

	logrus.WithFields(logrus.Fields{
		"success":        result.Success,
		"removed_letter": result.RemovedLetter,
		"elapsed":        elapsed,
		"attempts":       result.Stats.Attempts,
		"combos_checked": result.Stats.CombosChecked,
	}).Info("qless-solve: done")

	if !result.Success {
		fmt.Println("no solution found")
		return 1
	}

	fmt.Printf("solved in %v (removed letter: %q)\n", elapsed, result.RemovedLetter)
	for _, p := range result.Placements {
		fmt.Printf("  %-3s -> (%d,%d)\n", p.TileID, p.Cell.Row, p.Cell.Col)
	}
	return 0
}
