package gaddag_test

import (
	"errors"
	"slices"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/milden6/gaddag"
	"github.com/milden6/gaddag/alphabet"
)

func encode(t *testing.T, a *alphabet.Alphabet, text string) alphabet.Word {
	t.Helper()
	word, err := a.Encode(text)
	if err != nil {
		t.Fatalf("Encode(%q): %v", text, err)
	}
	return word
}

func TestGaddagizeCat(t *testing.T) {
	a := alphabet.English()
	arcs := gaddag.Gaddagize(encode(t, a, "CAT"), a.Separator())

	var got []string
	for _, arc := range arcs {
		got = append(got, a.Decode(arc))
	}

	want := []string{"C^AT", "AC^T", "TAC"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("arcs mismatch (-want +got):\n%s", diff)
	}
}

func TestArcCountLaw(t *testing.T) {
	a := alphabet.English()
	sep := a.Separator()

	for _, text := range []string{"A", "AB", "QUIZ", "SYZYGY", "ABRACADABRA"} {
		word := encode(t, a, text)
		arcs := gaddag.Gaddagize(word, sep)

		if len(arcs) != len(word) {
			t.Errorf("%s: %d arcs, expected %d", text, len(arcs), len(word))
		}

		noSeparator := 0
		for _, arc := range arcs {
			if !slices.Contains(arc, sep) {
				noSeparator++
				reversed := slices.Clone(word)
				slices.Reverse(reversed)
				if !slices.Equal(arc, reversed) {
					t.Errorf("%s: arc without separator is %s", text, a.Decode(arc))
				}
			}
			if got := gaddag.Ungaddagize(arc, sep); !slices.Equal(got, word) {
				t.Errorf("%s: Ungaddagize(%s) = %s", text, a.Decode(arc), a.Decode(got))
			}
		}
		if noSeparator != 1 {
			t.Errorf("%s: %d arcs without separator", text, noSeparator)
		}
	}
}

func TestGaddagizePanicsOnSeparator(t *testing.T) {
	a := alphabet.English()

	defer func() {
		r := recover()
		err, ok := r.(error)
		if !ok || !errors.Is(err, gaddag.ErrInternalInvariant) {
			t.Errorf("expected ErrInternalInvariant panic, got %v", r)
		}
	}()

	gaddag.Gaddagize(alphabet.Word{0, a.Separator(), 1}, a.Separator())
}

func TestSeparatorSortsAfterLetters(t *testing.T) {
	a := alphabet.English()
	sep := a.Separator()

	seqs := []alphabet.Word{
		{0, sep, 1},
		{0, 25},
		{0},
		{0, 1},
	}
	gaddag.SortSequences(seqs)

	want := []alphabet.Word{{0}, {0, 1}, {0, 25}, {0, sep, 1}}
	if diff := cmp.Diff(want, seqs); diff != "" {
		t.Errorf("sort mismatch (-want +got):\n%s", diff)
	}
	if !gaddag.IsSorted(seqs) {
		t.Error("IsSorted returned false after SortSequences")
	}
}
