package gaddag

import (
	"github.com/tidwall/btree"

	"github.com/milden6/gaddag/alphabet"
)

// ScoringPattern projects a word onto the score classes of its letters.
// Words whose letters score alike share a pattern.
func ScoringPattern(a *alphabet.Alphabet, word alphabet.Word) alphabet.Word {
	pattern := make(alphabet.Word, len(word))
	for i, l := range word {
		pattern[i] = a.ScoreClass(l)
	}
	return pattern
}

// ScoringPatterns is an ordered set of scoring patterns. Adding the same
// pattern twice leaves the set unchanged.
type ScoringPatterns struct {
	set *btree.BTreeG[string]
}

// NewScoringPatterns creates an empty set.
func NewScoringPatterns() *ScoringPatterns {
	return &ScoringPatterns{
		set: btree.NewBTreeG(func(a, b string) bool { return a < b }),
	}
}

// Add inserts a pattern. It reports whether the pattern was new.
func (p *ScoringPatterns) Add(pattern alphabet.Word) bool {
	_, replaced := p.set.Set(string(pattern))
	return !replaced
}

// Len returns the number of distinct patterns.
func (p *ScoringPatterns) Len() int {
	return p.set.Len()
}

// Each calls fn for every pattern in ascending order.
func (p *ScoringPatterns) Each(fn func(pattern alphabet.Word)) {
	p.set.Scan(func(key string) bool {
		fn(alphabet.Word(key))
		return true
	})
}

// Gaddagize expands every pattern into its arcs. The patterns come out of
// the set in order, but the arcs of different patterns interleave, so the
// result still has to be sorted.
func (p *ScoringPatterns) Gaddagize(separator alphabet.Letter) []alphabet.Word {
	var arcs []alphabet.Word
	p.Each(func(pattern alphabet.Word) {
		arcs = append(arcs, Gaddagize(pattern, separator)...)
	})
	return arcs
}
