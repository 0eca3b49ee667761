/*
Package alphabet maps the letters of a word game onto small integer codes.

Letter i of an alphabet has code i. The code one past the last letter is
reserved as the separator used by GADDAG arcs, so it sorts after every
letter. A letter may be spelled with more than one character ("CH", "LL");
encoding always takes the longest letter that matches.
*/
package alphabet

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// Letter is the code of a single letter.
type Letter uint8

// Word is a sequence of letter codes.
type Word []Letter

// MaxLetters is the largest number of letters an alphabet can hold. One code
// is always left over for the separator.
const MaxLetters = 255

var (
	// ErrNoLetter is returned by Encode when part of the text matches no letter.
	ErrNoLetter = errors.New("no letter matches")

	// ErrInvalidAlphabet is returned when a definition cannot form an alphabet.
	ErrInvalidAlphabet = errors.New("invalid alphabet")
)

// Definition describes one letter.
type Definition struct {
	Text      string
	Alternate string
	Score     int
}

// Alphabet is an immutable letter <-> code mapping.
type Alphabet struct {
	name       string
	letters    []Definition
	lookup     map[string]Letter
	maxTextLen int
	classes    []Letter
	numClasses int
}

// New creates an alphabet from the given letter definitions. The order of
// defs decides the codes.
func New(name string, defs []Definition) (*Alphabet, error) {
	if len(defs) == 0 {
		return nil, fmt.Errorf("%w %q: no letters", ErrInvalidAlphabet, name)
	}
	if len(defs) > MaxLetters {
		return nil, fmt.Errorf("%w %q: %d letters, at most %d allowed",
			ErrInvalidAlphabet, name, len(defs), MaxLetters)
	}

	a := &Alphabet{
		name:    name,
		letters: slices.Clone(defs),
		lookup:  make(map[string]Letter, 2*len(defs)),
	}

	for i, def := range defs {
		if def.Text == "" {
			return nil, fmt.Errorf("%w %q: letter %d has no text", ErrInvalidAlphabet, name, i)
		}
		for _, text := range []string{def.Text, def.Alternate} {
			if text == "" {
				continue
			}
			if prev, ok := a.lookup[text]; ok && int(prev) != i {
				return nil, fmt.Errorf("%w %q: %q defined twice", ErrInvalidAlphabet, name, text)
			}
			a.lookup[text] = Letter(i)
			a.maxTextLen = max(a.maxTextLen, len(text))
		}
	}

	a.buildScoreClasses()
	return a, nil
}

// buildScoreClasses numbers the distinct letter scores in ascending order.
func (a *Alphabet) buildScoreClasses() {
	scores := make([]int, 0, len(a.letters))
	for _, def := range a.letters {
		scores = append(scores, def.Score)
	}
	slices.Sort(scores)
	scores = slices.Compact(scores)

	a.numClasses = len(scores)
	a.classes = make([]Letter, len(a.letters))
	for i, def := range a.letters {
		class, _ := slices.BinarySearch(scores, def.Score)
		a.classes[i] = Letter(class)
	}
}

// Name returns the name the alphabet was created with.
func (a *Alphabet) Name() string {
	return a.name
}

// Size returns the number of letters.
func (a *Alphabet) Size() int {
	return len(a.letters)
}

// Separator returns the reserved separator code.
func (a *Alphabet) Separator() Letter {
	return Letter(len(a.letters))
}

// Text returns the display text of a letter. The separator is shown as "^".
func (a *Alphabet) Text(l Letter) string {
	switch {
	case l == a.Separator():
		return "^"
	case int(l) < len(a.letters):
		return a.letters[l].Text
	default:
		return fmt.Sprintf("<%d>", l)
	}
}

// Score returns the score of a letter, or 0 for codes outside the alphabet.
func (a *Alphabet) Score(l Letter) int {
	if int(l) >= len(a.letters) {
		return 0
	}
	return a.letters[l].Score
}

// ScoreClass returns the rank of the letter's score among the distinct
// scores of the alphabet, lowest first.
func (a *Alphabet) ScoreClass(l Letter) Letter {
	return a.classes[l]
}

// NumScoreClasses returns the number of distinct letter scores.
func (a *Alphabet) NumScoreClasses() int {
	return a.numClasses
}

// Encode converts text to letter codes. The longest letter spelling is
// tried first at every position. Text that leaves anything unmatched fails
// with ErrNoLetter.
func (a *Alphabet) Encode(text string) (Word, error) {
	word := make(Word, 0, len(text))
	for pos := 0; pos < len(text); {
		l, n := a.match(text[pos:])
		if n == 0 {
			return nil, fmt.Errorf("%w at offset %d of %q", ErrNoLetter, pos, text)
		}
		word = append(word, l)
		pos += n
	}
	return word, nil
}

func (a *Alphabet) match(text string) (Letter, int) {
	for n := min(a.maxTextLen, len(text)); n > 0; n-- {
		if l, ok := a.lookup[text[:n]]; ok {
			return l, n
		}
	}
	return 0, 0
}

// Decode converts letter codes back to text.
func (a *Alphabet) Decode(word Word) string {
	var sb strings.Builder
	for _, l := range word {
		sb.WriteString(a.Text(l))
	}
	return sb.String()
}
