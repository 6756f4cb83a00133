// Package tileset represents letter multisets: unordered inventories of
// a-z tiles in which a letter may repeat.
//
// Multiset is adapted from the teacher's pkg/primitives.CharSet, which
// only tracked presence of a character. Q-Less needs multiplicity (a
// roll can carry three copies of the same letter), so counts replace
// the boolean availability array.
package tileset

import "fmt"

// Multiset counts occurrences of each lowercase letter a-z.
type Multiset struct {
	counts [26]int8
}

// New builds a Multiset from a string of lowercase letters. It returns
// an error if any rune is outside a-z.
func New(letters string) (Multiset, error) {
	var m Multiset
	for _, r := range letters {
		if r < 'a' || r > 'z' {
			return Multiset{}, fmt.Errorf("tileset: character %q is not a lowercase letter", r)
		}
		m.counts[r-'a']++
	}
	return m, nil
}

// Count returns how many copies of c the multiset holds.
func (m Multiset) Count(c byte) int8 {
	if c < 'a' || c > 'z' {
		return 0
	}
	return m.counts[c-'a']
}

// Total returns the number of tiles in the multiset.
func (m Multiset) Total() int {
	total := 0
	for _, c := range m.counts {
		total += int(c)
	}
	return total
}

// Add returns a copy of m with one more copy of c.
func (m Multiset) Add(c byte) Multiset {
	if c < 'a' || c > 'z' {
		return m
	}
	m.counts[c-'a']++
	return m
}

// Remove returns a copy of m with one fewer copy of c, and false if c was
// not available to remove.
func (m Multiset) Remove(c byte) (Multiset, bool) {
	if c < 'a' || c > 'z' || m.counts[c-'a'] == 0 {
		return m, false
	}
	m.counts[c-'a']--
	return m, true
}

// Dominates reports whether m holds at least as many of every letter as
// other requires — i.e. other's letter-count vector is dominated by m's.
func (m Multiset) Dominates(other Multiset) bool {
	for i := range m.counts {
		if other.counts[i] > m.counts[i] {
			return false
		}
	}
	return true
}

// DominatesWord reports whether every letter in word can be drawn from m.
func (m Multiset) DominatesWord(word string) bool {
	var need [26]int8
	for i := 0; i < len(word); i++ {
		c := word[i]
		if c < 'a' || c > 'z' {
			return false
		}
		need[c-'a']++
		if need[c-'a'] > m.counts[c-'a'] {
			return false
		}
	}
	return true
}

// Overlap returns, for each letter of word, min(word's need, m's count) —
// the number of letter-instances word could draw from m. The search
// engine uses it to keep, once a seed word is down, only candidates that
// draw at least one letter from m.
func (m Multiset) Overlap(word string) int {
	var need [26]int8
	overlap := 0
	for i := 0; i < len(word); i++ {
		c := word[i]
		if c < 'a' || c > 'z' {
			continue
		}
		idx := c - 'a'
		need[idx]++
		if need[idx] <= m.counts[idx] {
			overlap++
		}
	}
	return overlap
}

// Letters returns the distinct letters present in m, in a-z order.
func (m Multiset) Letters() []byte {
	var out []byte
	for i, c := range m.counts {
		if c > 0 {
			out = append(out, byte('a'+i))
		}
	}
	return out
}

// IsEmpty reports whether the multiset holds no tiles.
func (m Multiset) IsEmpty() bool {
	return m.Total() == 0
}

// String renders the multiset as a sorted run-length letter string, e.g. "aabcz".
func (m Multiset) String() string {
	buf := make([]byte, 0, m.Total())
	for i, c := range m.counts {
		for n := int8(0); n < c; n++ {
			buf = append(buf, byte('a'+i))
		}
	}
	return string(buf)
}
