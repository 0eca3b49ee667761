package metrics

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/milden6/gaddag"
)

func TestObserveAndWrite(t *testing.T) {
	m := New()
	m.Observe(gaddag.Report{
		EncodableWords:            2,
		UnencodableWords:          1,
		ScoringPatterns:           2,
		GaddagizedScoringPatterns: 6,
		WordNodes:                 9,
		WordEdges:                 11,
		ScoringNodes:              7,
		ScoringEdges:              8,
		WordIndexBytes:            40,
		ScoringIndexBytes:         30,
	}, 1500*time.Millisecond)

	path := filepath.Join(t.TempDir(), "gaddag.prom")
	if err := m.WriteTextfile(path); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	for _, want := range []string{
		"gaddag_words_encodable 2",
		"gaddag_words_unencodable 1",
		"gaddag_scoring_patterns 2",
		"gaddag_scoring_patterns_gaddagized 6",
		`gaddag_nodes{index="words"} 9`,
		`gaddag_edges{index="scoring"} 8`,
		`gaddag_index_bytes{index="words"} 40`,
		"gaddag_build_duration_seconds 1.5",
	} {
		if !strings.Contains(string(data), want) {
			t.Errorf("textfile does not contain %q:\n%s", want, data)
		}
	}
}

func TestRegistriesAreIndependent(t *testing.T) {
	a, b := New(), New()
	a.WordsEncodable.Set(3)

	families, err := b.Registry().Gather()
	if err != nil {
		t.Fatal(err)
	}
	for _, f := range families {
		if f.GetName() != "gaddag_words_encodable" {
			continue
		}
		if v := f.GetMetric()[0].GetGauge().GetValue(); v != 0 {
			t.Errorf("second registry sees %v", v)
		}
	}
}
