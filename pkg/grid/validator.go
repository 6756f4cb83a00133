package grid

import "github.com/snakezilla/qless-game/pkg/dictionary"

// IsValidGrid reports whether g is locally consistent: scanning every
// row left-to-right and every column top-to-bottom, each maximal run of
// consecutive filled cells is either length 1 (a crossing letter) or
// length >= 3 and a dictionary word. Runs of length 2 are always
// illegal. The function is pure, side-effect free, and safe to call on
// arbitrary partial grids (spec.md §4.2).
func IsValidGrid(g Grid, dict *dictionary.Dictionary) bool {
	for r := 0; r < Size; r++ {
		if !runsValid(rowRunes(g, r), dict) {
			return false
		}
	}
	for c := 0; c < Size; c++ {
		if !runsValid(colRunes(g, c), dict) {
			return false
		}
	}
	return true
}

func rowRunes(g Grid, r int) []byte {
	line := make([]byte, Size)
	for c := 0; c < Size; c++ {
		line[c] = g[r][c]
	}
	return line
}

func colRunes(g Grid, c int) []byte {
	line := make([]byte, Size)
	for r := 0; r < Size; r++ {
		line[r] = g[r][c]
	}
	return line
}

// runsValid scans a single line (row or column, boundary acting as an
// empty sentinel) and checks every maximal run of non-empty cells.
func runsValid(line []byte, dict *dictionary.Dictionary) bool {
	n := len(line)
	i := 0
	for i < n {
		if line[i] == Empty {
			i++
			continue
		}
		j := i
		for j < n && line[j] != Empty {
			j++
		}
		runLen := j - i
		switch {
		case runLen == 2:
			return false
		case runLen >= 3:
			if !dict.IsWord(string(line[i:j])) {
				return false
			}
		}
		i = j
	}
	return true
}
