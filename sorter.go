package gaddag

import (
	"slices"

	"github.com/milden6/gaddag/alphabet"
)

// CompareSequences orders letter sequences by code, letter by letter, with a
// sequence sorting before every longer sequence it is a prefix of. The
// separator code is one past the last letter, so it sorts after every
// letter.
func CompareSequences(a, b alphabet.Word) int {
	return slices.Compare(a, b)
}

// SortSequences sorts seqs in place so that shared prefixes are adjacent,
// as the Builder requires.
func SortSequences(seqs []alphabet.Word) {
	slices.SortFunc(seqs, CompareSequences)
}

// IsSorted reports whether seqs is in the order SortSequences produces.
func IsSorted(seqs []alphabet.Word) bool {
	return slices.IsSortedFunc(seqs, CompareSequences)
}
