package gaddag

import (
	"slices"

	"github.com/milden6/gaddag/alphabet"
)

// Gaddagize expands a word of n letters into its n arcs. Arc i holds the
// first i+1 letters reversed, then the separator, then the remaining
// letters. The last arc is the whole word reversed and carries no
// separator.
//
// A word that already contains the separator is a programming error and
// panics with ErrInternalInvariant.
func Gaddagize(word alphabet.Word, separator alphabet.Letter) []alphabet.Word {
	if slices.Contains(word, separator) {
		panic(invariantf("separator %d inside word %v", separator, word))
	}

	n := len(word)
	arcs := make([]alphabet.Word, 0, n)
	for i := 0; i < n; i++ {
		arc := make(alphabet.Word, 0, n+1)
		for j := i; j >= 0; j-- {
			arc = append(arc, word[j])
		}
		if i < n-1 {
			arc = append(arc, separator)
			arc = append(arc, word[i+1:]...)
		}
		arcs = append(arcs, arc)
	}
	return arcs
}

// Ungaddagize recovers the word an arc was made from.
func Ungaddagize(arc alphabet.Word, separator alphabet.Letter) alphabet.Word {
	pivot := slices.Index(arc, separator)
	if pivot < 0 {
		pivot = len(arc)
	}

	word := make(alphabet.Word, 0, len(arc))
	for j := pivot - 1; j >= 0; j-- {
		word = append(word, arc[j])
	}
	if pivot < len(arc) {
		word = append(word, arc[pivot+1:]...)
	}
	return word
}
