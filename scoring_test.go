package gaddag_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/milden6/gaddag"
	"github.com/milden6/gaddag/alphabet"
)

func TestScoringPattern(t *testing.T) {
	a := alphabet.English()

	// E, A, I, O, N, R, T, L, S, U all score 1
	if diff := cmp.Diff(
		gaddag.ScoringPattern(a, encode(t, a, "TEA")),
		gaddag.ScoringPattern(a, encode(t, a, "SUN")),
	); diff != "" {
		t.Errorf("TEA and SUN should share a pattern:\n%s", diff)
	}

	if cmp.Equal(
		gaddag.ScoringPattern(a, encode(t, a, "TEA")),
		gaddag.ScoringPattern(a, encode(t, a, "ZEA")),
	) {
		t.Error("TEA and ZEA should not share a pattern")
	}

	pattern := gaddag.ScoringPattern(a, encode(t, a, "QUIZ"))
	for _, l := range pattern {
		if int(l) >= a.NumScoreClasses() {
			t.Errorf("class %d out of range", l)
		}
	}
}

func TestScoringPatternsDedup(t *testing.T) {
	p := gaddag.NewScoringPatterns()

	if !p.Add(alphabet.Word{1, 0}) {
		t.Error("first Add reported the pattern as present")
	}
	if p.Add(alphabet.Word{1, 0}) {
		t.Error("second Add reported the pattern as new")
	}
	p.Add(alphabet.Word{0, 2})
	p.Add(alphabet.Word{0})

	if p.Len() != 3 {
		t.Errorf("Len() = %d, expected 3", p.Len())
	}

	var got []alphabet.Word
	p.Each(func(pattern alphabet.Word) {
		got = append(got, pattern)
	})
	want := []alphabet.Word{{0}, {0, 2}, {1, 0}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("patterns out of order (-want +got):\n%s", diff)
	}
}

func TestScoringPatternsGaddagize(t *testing.T) {
	p := gaddag.NewScoringPatterns()
	p.Add(alphabet.Word{0, 1})
	p.Add(alphabet.Word{1})

	const sep = 7
	arcs := p.Gaddagize(sep)
	want := []alphabet.Word{{0, sep, 1}, {1, 0}, {1}}
	if diff := cmp.Diff(want, arcs); diff != "" {
		t.Errorf("arcs mismatch (-want +got):\n%s", diff)
	}

	gaddag.SortSequences(arcs)
	if !gaddag.IsSorted(arcs) {
		t.Error("arcs not sorted")
	}
}
