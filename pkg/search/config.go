package search

// Config collects every tuning knob the search engine uses, per the
// design note in spec.md §9: "heuristic knobs scattered as module-level
// constants must be collected into a single SearchConfig value type...
// passed into the solver. This is the only legitimate configuration
// surface." It is loaded (with these as defaults) by internal/config.
type Config struct {
	// W0/P0 are the candidate-word and placement branching caps at
	// depth 0 (the seed word). Wd/Pd apply at every deeper depth.
	W0, P0 int
	Wd, Pd int

	// PhaseAFraction is the share of the total deadline spent on the
	// 12-letter attempt before falling back to 11-letter attempts.
	PhaseAFraction float64
}

// DefaultConfig returns the defaults spec.md §4.4 calls out as having
// been observed to work.
func DefaultConfig() Config {
	return Config{
		W0: 60, P0: 8,
		Wd: 30, Pd: 4,
		PhaseAFraction: 0.7,
	}
}
