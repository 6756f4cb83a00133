// Package dictionary provides the one legal-word oracle the solver core
// consults. Per the design note in spec.md §9, there is deliberately no
// second "Scrabble-legal" layer inside the core — a player-facing
// validator may exist at the UI boundary, but it must never be consulted
// by the grid validator or the search engine.
package dictionary

import (
	"bufio"
	"fmt"
	"iter"
	"os"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/snakezilla/qless-game/pkg/tileset"
)

// Dictionary is an immutable, case-insensitive set of lowercase words,
// built once and shared read-only across every solver call (spec.md §5).
type Dictionary struct {
	words      map[string]struct{}
	byLength   map[int][]string
	rejected   int
}

// LoadDictionary builds a Dictionary from a sequence of candidate words.
// Entries that are empty, contain characters outside a-z (after
// lower-casing), or are shorter than 3 runes are rejected rather than
// causing the whole load to fail — a malformed line in a multi-thousand
// word corpus should not take the solver down.
func LoadDictionary(words iter.Seq[string]) (*Dictionary, error) {
	d := &Dictionary{
		words:    make(map[string]struct{}),
		byLength: make(map[int][]string),
	}

	for raw := range words {
		w := strings.ToLower(strings.TrimSpace(raw))
		if !isConforming(w) {
			d.rejected++
			continue
		}
		if _, ok := d.words[w]; ok {
			continue
		}
		d.words[w] = struct{}{}
		d.byLength[len(w)] = append(d.byLength[len(w)], w)
	}

	if len(d.words) == 0 {
		return nil, fmt.Errorf("dictionary: no conforming words loaded (%d rejected)", d.rejected)
	}

	for _, bucket := range d.byLength {
		sort.Strings(bucket)
	}

	if d.rejected > 0 {
		logrus.WithFields(logrus.Fields{
			"loaded":   len(d.words),
			"rejected": d.rejected,
		}).Debug("dictionary: finished loading word list")
	}

	return d, nil
}

// LoadFromFile loads a line-delimited word list, one word per line,
// blank lines and lines starting with '#' ignored. Grounded on the
// teacher's cmd/xwcli loadFromFile helper and redbo-scrabble's
// bufio.Reader dictionary loader.
func LoadFromFile(path string) (*Dictionary, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("dictionary: opening %s: %w", path, err)
	}
	defer f.Close()

	return LoadDictionary(func(yield func(string) bool) {
		scanner := bufio.NewScanner(f)
		for scanner.Scan() {
			line := strings.TrimSpace(scanner.Text())
			if line == "" || strings.HasPrefix(line, "#") {
				continue
			}
			if !yield(line) {
				return
			}
		}
	})
}

func isConforming(w string) bool {
	if len(w) < 3 {
		return false
	}
	for i := 0; i < len(w); i++ {
		if w[i] < 'a' || w[i] > 'z' {
			return false
		}
	}
	return true
}

// IsWord reports whether s is in the dictionary, case-insensitively.
func (d *Dictionary) IsWord(s string) bool {
	_, ok := d.words[strings.ToLower(s)]
	return ok
}

// Size returns the number of distinct words loaded.
func (d *Dictionary) Size() int {
	return len(d.words)
}

// WordsFormableFrom returns every dictionary word of length [3, 12] whose
// letter-count vector is dominated by ms, in implementation-defined order
// (callers re-sort, per spec.md §4.1).
func (d *Dictionary) WordsFormableFrom(ms tileset.Multiset) []string {
	var out []string
	maxLen := ms.Total()
	if maxLen > 12 {
		maxLen = 12
	}
	for length := 3; length <= maxLen; length++ {
		for _, w := range d.byLength[length] {
			if ms.DominatesWord(w) {
				out = append(out, w)
			}
		}
	}
	return out
}
