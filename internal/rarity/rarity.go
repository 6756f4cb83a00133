// Package rarity holds the per-letter difficulty weights the search
// engine uses to order candidate words and placements (spec.md §4.4):
// placing rare letters early has been observed to cut backtracking
// sharply.
package rarity

import "github.com/snakezilla/qless-game/pkg/tileset"

// Weights maps a-z to its rarity weight. Higher means rarer/harder to place.
var Weights = map[byte]int{
	'q': 10, 'z': 10,
	'x': 9,
	'j': 8,
	'k': 7,
	'v': 6,
	'w': 5, 'y': 5,
	'f': 4, 'b': 4, 'h': 4, 'm': 4, 'p': 4,
	'g': 3, 'c': 3, 'd': 3, 'u': 3,
	'l': 2, 'n': 2, 'r': 2, 't': 2, 's': 2, 'o': 2,
	'i': 1, 'a': 1, 'e': 1,
}

// Weight returns the rarity weight of a single letter.
func Weight(c byte) int {
	return Weights[c]
}

// ScoreNewLetters sums the rarity weight of each byte in letters — used
// to score a placement option over the letters it newly consumes.
func ScoreNewLetters(letters []byte) int {
	score := 0
	for _, c := range letters {
		score += Weights[c]
	}
	return score
}

// ScoreWord sums the rarity weight of each letter-instance of word that
// would actually be drawn from remaining, i.e. it ignores the tail of
// repeated letters beyond what remaining can supply. This mirrors
// spec.md §4.4's candidate ordering: "sum of per-letter rarity weights
// over letters the word draws from the remaining multiset".
func ScoreWord(word string, remaining tileset.Multiset) int {
	var drawn [26]int8
	score := 0
	for i := 0; i < len(word); i++ {
		c := word[i]
		if c < 'a' || c > 'z' {
			continue
		}
		idx := c - 'a'
		drawn[idx]++
		if drawn[idx] <= remaining.Count(c) {
			score += Weights[c]
		}
	}
	return score
}
