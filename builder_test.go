package gaddag_test

import (
	"fmt"
	"slices"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/milden6/gaddag"
	"github.com/milden6/gaddag/alphabet"
)

func testWords() []string {
	return []string{
		"CAT", "CATS", "BAT", "BATS", "RAT", "RATS",
		"CAR", "CARS", "ART", "ARTS", "TAR", "TARS", "STAR",
		"CAT", // repeated on purpose
	}
}

// arcsOf returns the sorted arcs of all words.
func arcsOf(t *testing.T, a *alphabet.Alphabet, words []string) []alphabet.Word {
	t.Helper()
	var arcs []alphabet.Word
	for _, w := range words {
		arcs = append(arcs, gaddag.Gaddagize(encode(t, a, w), a.Separator())...)
	}
	gaddag.SortSequences(arcs)
	return arcs
}

// checkMinimal fails if two nodes share a terminal flag and edge set.
func checkMinimal(t *testing.T, g *gaddag.Graph) {
	t.Helper()
	seen := make(map[string]int)
	for id, node := range g.Nodes() {
		sig := fmt.Sprint(node.Terminal, node.Edges)
		if prev, ok := seen[sig]; ok {
			t.Errorf("nodes %d and %d are equivalent: %s", prev, id, sig)
		}
		seen[sig] = id
	}
}

func TestBuildAcceptsExactlyTheArcs(t *testing.T) {
	a := alphabet.English()
	arcs := arcsOf(t, a, testWords())
	g := gaddag.Build(arcs)

	want := slices.CompactFunc(slices.Clone(arcs), slices.Equal[alphabet.Word])
	if diff := cmp.Diff(want, g.Sequences()); diff != "" {
		t.Errorf("accepted sequences mismatch (-want +got):\n%s", diff)
	}
	if g.NumAdded() != len(arcs) {
		t.Errorf("NumAdded() = %d, expected %d", g.NumAdded(), len(arcs))
	}
	checkMinimal(t, g)
}

func TestRoundTripReachability(t *testing.T) {
	a := alphabet.English()
	words := testWords()
	g := gaddag.Build(arcsOf(t, a, words))

	for _, w := range words {
		word := encode(t, a, w)
		reversed := slices.Clone(word)
		slices.Reverse(reversed)
		if !g.Accepts(reversed) {
			t.Errorf("reversed %s not accepted", w)
		}
		for _, arc := range gaddag.Gaddagize(word, a.Separator()) {
			if !g.Accepts(arc) {
				t.Errorf("arc %s of %s not accepted", a.Decode(arc), w)
			}
		}
	}

	// every accepted sequence leads back to an input word
	inputs := make(map[string]bool)
	for _, w := range words {
		inputs[w] = true
	}
	for _, seq := range g.Sequences() {
		w := a.Decode(gaddag.Ungaddagize(seq, a.Separator()))
		if !inputs[w] {
			t.Errorf("accepted %s decodes to unknown word %s", a.Decode(seq), w)
		}
	}

	if g.Accepts(encode(t, a, "GOD")) {
		t.Error("DOG was never added but its reversed arc is accepted")
	}
}

func TestBuildSharesSuffixes(t *testing.T) {
	a := alphabet.English()
	seqs := []alphabet.Word{
		encode(t, a, "BAT"),
		encode(t, a, "CAT"),
		encode(t, a, "RAT"),
	}
	g := gaddag.Build(seqs)

	// root, one shared "A" node, one shared "T" node, the final node
	if g.NumNodes() != 4 {
		t.Errorf("NumNodes() = %d, expected 4", g.NumNodes())
	}
	if g.NumEdges() != 5 {
		t.Errorf("NumEdges() = %d, expected 5", g.NumEdges())
	}
	checkMinimal(t, g)
}

func TestBuildIsDeterministic(t *testing.T) {
	a := alphabet.English()
	g1 := gaddag.Build(arcsOf(t, a, testWords()))

	words := testWords()
	slices.Reverse(words)
	g2 := gaddag.Build(arcsOf(t, a, words))

	if !g1.Equal(g2) {
		t.Error("graphs built from the same words differ")
	}
}

func TestEmptyBuilder(t *testing.T) {
	g := gaddag.NewBuilder().Finish()

	if g.NumNodes() != 1 || g.NumEdges() != 0 {
		t.Errorf("empty graph has %d nodes, %d edges", g.NumNodes(), g.NumEdges())
	}
	if g.Node(0).Terminal {
		t.Error("empty graph root is terminal")
	}
	if len(g.Sequences()) != 0 {
		t.Errorf("empty graph accepts %v", g.Sequences())
	}
}

func TestUnsortedInputBreaksTheGraph(t *testing.T) {
	a := alphabet.English()
	ax, bx, ay := encode(t, a, "AX"), encode(t, a, "BX"), encode(t, a, "AY")

	b := gaddag.NewBuilder()
	for _, seq := range []alphabet.Word{ax, bx, ay} {
		b.Add(seq)
	}
	g := b.Finish()

	// AY replaced the A edge of the root, so AX is gone
	if g.Accepts(ax) {
		t.Error("unsorted build unexpectedly kept AX")
	}
	if !g.Accepts(ay) || !g.Accepts(bx) {
		t.Error("unsorted build lost the last sequences")
	}

	sorted := gaddag.Build([]alphabet.Word{ax, ay, bx})
	for _, seq := range []alphabet.Word{ax, bx, ay} {
		if !sorted.Accepts(seq) {
			t.Errorf("sorted build lost %s", a.Decode(seq))
		}
	}
	checkMinimal(t, sorted)
}

func TestCanAdd(t *testing.T) {
	a := alphabet.English()
	b := gaddag.NewBuilder()

	b.Add(encode(t, a, "CAT"))
	if !b.CanAdd(encode(t, a, "CAT")) {
		t.Error("repeating a sequence should be allowed")
	}
	if !b.CanAdd(encode(t, a, "CATS")) {
		t.Error("CATS after CAT should be allowed")
	}
	if b.CanAdd(encode(t, a, "BAT")) {
		t.Error("BAT after CAT should not be allowed")
	}

	b.Finish()
	if b.CanAdd(encode(t, a, "DOG")) {
		t.Error("adding to a finished builder should not be allowed")
	}
}

func TestEnumerateSkipAndStop(t *testing.T) {
	a := alphabet.English()
	g := gaddag.Build([]alphabet.Word{
		encode(t, a, "AB"),
		encode(t, a, "AC"),
		encode(t, a, "B"),
		encode(t, a, "CA"),
	})

	var visited []string
	g.Enumerate(func(seq alphabet.Word, terminal bool) gaddag.EnumerationResult {
		visited = append(visited, a.Decode(seq))
		switch a.Decode(seq) {
		case "A":
			return gaddag.Skip
		case "B":
			return gaddag.Stop
		}
		return gaddag.Continue
	})

	want := []string{"", "A", "B"}
	if diff := cmp.Diff(want, visited); diff != "" {
		t.Errorf("enumeration mismatch (-want +got):\n%s", diff)
	}
}
