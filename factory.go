package gaddag

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/milden6/gaddag/alphabet"
)

// Option configures a Factory.
type Option func(*Factory)

// WithLogger sets the logger. The default is slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(f *Factory) { f.log = l }
}

// WithRunID overrides the random id attached to log records and the Report.
func WithRunID(id string) Option {
	return func(f *Factory) { f.runID = id }
}

// WithParallel makes GenerateAll build the word and scoring graphs at the
// same time. Each build has its own Builder, so nothing is shared.
func WithParallel(parallel bool) Option {
	return func(f *Factory) { f.parallel = parallel }
}

// Factory runs the index construction pipeline. Its methods are called in
// order: words are pushed, scoring patterns gaddagized and sorted, words
// sorted, both graphs generated and finally written. Calling a stage before
// the one it depends on returns ErrInternalInvariant.
//
// A Factory is not safe for concurrent use.
type Factory struct {
	alphabet *alphabet.Alphabet
	log      *slog.Logger
	runID    string
	parallel bool

	encodable   int
	unencodable int

	arcs     []alphabet.Word
	wordArcs int

	scoring           *ScoringPatterns
	gaddagizedScoring []alphabet.Word
	gaddagizedCount   int

	scoringGaddagized bool
	scoringSorted     bool
	wordsSorted       bool

	wordGraph    *Graph
	scoringGraph *Graph

	version           int
	wordIndexBytes    int64
	scoringIndexBytes int64
	digest            Digest
}

// NewFactory creates a Factory encoding words with a.
func NewFactory(a *alphabet.Alphabet, opts ...Option) *Factory {
	f := &Factory{
		alphabet: a,
		log:      slog.Default(),
		scoring:  NewScoringPatterns(),
	}
	for _, opt := range opts {
		opt(f)
	}
	if f.runID == "" {
		f.runID = uuid.NewString()
	}
	f.log = f.log.With("component", "factory", "run_id", f.runID)
	return f
}

// Alphabet returns the alphabet words are encoded with.
func (f *Factory) Alphabet() *alphabet.Alphabet {
	return f.alphabet
}

// RunID returns the id of this build.
func (f *Factory) RunID() string {
	return f.runID
}

func (f *Factory) encode(token string) (alphabet.Word, error) {
	word, err := f.alphabet.Encode(token)
	if err != nil {
		return nil, &UnencodableWordError{Word: token, Err: err}
	}
	return word, nil
}

// PushWord encodes token and adds its arcs to the word set. An empty token
// is ignored. A token outside the alphabet is counted and returned as an
// *UnencodableWordError; the Factory stays usable.
func (f *Factory) PushWord(token string) error {
	if token == "" {
		return nil
	}
	if f.wordsSorted {
		return invariantf("word %q pushed after sorting", token)
	}

	word, err := f.encode(token)
	if err != nil {
		f.unencodable++
		return err
	}

	f.encodable++
	f.arcs = append(f.arcs, Gaddagize(word, f.alphabet.Separator())...)
	f.wordArcs += len(word)
	return nil
}

// AddScoringPatterns adds the scoring pattern of token. Adding the same
// word again has no effect.
func (f *Factory) AddScoringPatterns(token string) error {
	if token == "" {
		return nil
	}
	if f.scoringGaddagized {
		return invariantf("scoring pattern for %q added after gaddagizing", token)
	}

	word, err := f.encode(token)
	if err != nil {
		return err
	}

	f.scoring.Add(ScoringPattern(f.alphabet, word))
	return nil
}

// AddWord pushes token and adds its scoring patterns.
func (f *Factory) AddWord(token string) error {
	if err := f.PushWord(token); err != nil {
		return err
	}
	return f.AddScoringPatterns(token)
}

// Ingest adds every whitespace separated token of r. Unencodable tokens are
// logged and skipped.
func (f *Factory) Ingest(r io.Reader) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	scanner.Split(bufio.ScanWords)

	for scanner.Scan() {
		token := scanner.Text()
		err := f.AddWord(token)
		if errors.Is(err, ErrUnencodableWord) {
			f.log.Warn("not encodable without leftover", "word", token, "error", err)
			continue
		}
		if err != nil {
			return err
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("reading words: %w", err)
	}
	return nil
}

// EncodableWords returns the number of words pushed successfully.
func (f *Factory) EncodableWords() int {
	return f.encodable
}

// UnencodableWords returns the number of words rejected by PushWord.
func (f *Factory) UnencodableWords() int {
	return f.unencodable
}

// WordCount returns the number of word arcs.
func (f *Factory) WordCount() int {
	return f.wordArcs
}

// ScoringPatternCount returns the number of distinct scoring patterns.
func (f *Factory) ScoringPatternCount() int {
	return f.scoring.Len()
}

// GaddagizedScoringPatternCount returns the number of scoring arcs.
func (f *Factory) GaddagizedScoringPatternCount() int {
	return f.gaddagizedCount
}

// GaddagizeScoringPatterns expands every scoring pattern into its arcs.
func (f *Factory) GaddagizeScoringPatterns() error {
	if f.scoringGaddagized {
		return nil
	}

	f.log.Info("gaddagizing scoring patterns", "count", f.ScoringPatternCount())
	f.gaddagizedScoring = f.scoring.Gaddagize(f.alphabet.Separator())
	f.gaddagizedCount = len(f.gaddagizedScoring)
	f.scoringGaddagized = true
	return nil
}

// SortGaddagizedScoringPatterns sorts the scoring arcs.
func (f *Factory) SortGaddagizedScoringPatterns() error {
	if !f.scoringGaddagized {
		return invariantf("scoring patterns sorted before gaddagizing")
	}

	f.log.Info("sorting scoring patterns", "count", f.gaddagizedCount)
	SortSequences(f.gaddagizedScoring)
	f.scoringSorted = true
	return nil
}

// SortWords sorts the word arcs. No more words can be pushed afterwards.
func (f *Factory) SortWords() error {
	f.log.Info("sorting word patterns", "count", f.wordArcs)
	SortSequences(f.arcs)
	f.wordsSorted = true
	return nil
}

// Generate builds the word graph.
func (f *Factory) Generate() error {
	if !f.wordsSorted {
		return invariantf("words generated before sorting")
	}
	if f.wordGraph != nil {
		return nil
	}

	g, err := f.build("words", f.arcs)
	if err != nil {
		return err
	}
	f.wordGraph = g
	f.arcs = nil
	return nil
}

// GenerateScoring builds the scoring graph.
func (f *Factory) GenerateScoring() error {
	if !f.scoringSorted {
		return invariantf("scoring patterns generated before sorting")
	}
	if f.scoringGraph != nil {
		return nil
	}

	g, err := f.build("scoring", f.gaddagizedScoring)
	if err != nil {
		return err
	}
	f.scoringGraph = g
	f.gaddagizedScoring = nil
	return nil
}

// GenerateAll builds both graphs, concurrently when the Factory was created
// WithParallel.
func (f *Factory) GenerateAll(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if !f.parallel {
		if err := f.Generate(); err != nil {
			return err
		}
		return f.GenerateScoring()
	}

	var g errgroup.Group
	g.Go(f.Generate)
	g.Go(f.GenerateScoring)
	return g.Wait()
}

func (f *Factory) build(name string, seqs []alphabet.Word) (*Graph, error) {
	if !IsSorted(seqs) {
		return nil, invariantf("%s sequences are not sorted", name)
	}

	f.log.Info("generating nodes", "index", name, "sequences", len(seqs))
	g := Build(seqs)
	f.log.Debug("generated nodes", "index", name, "nodes", g.NumNodes(), "edges", g.NumEdges())
	return g, nil
}

// WordGraph returns the word graph, or nil before Generate.
func (f *Factory) WordGraph() *Graph {
	return f.wordGraph
}

// ScoringGraph returns the scoring graph, or nil before GenerateScoring.
func (f *Factory) ScoringGraph() *Graph {
	return f.scoringGraph
}

// WriteIndices serializes the word graph to w and the scoring graph to
// scoring and records the digest of the word index.
func (f *Factory) WriteIndices(w, scoring io.Writer, version int) error {
	if f.wordGraph == nil || f.scoringGraph == nil {
		return invariantf("indices written before generating")
	}
	enc, err := EncoderFor(version)
	if err != nil {
		return err
	}

	f.log.Info("writing indices", "version", version)

	var buf bytes.Buffer
	if _, err := enc.Encode(&buf, f.wordGraph); err != nil {
		return fmt.Errorf("encoding word index: %w", err)
	}
	digest := ComputeDigest(buf.Bytes())
	wordBytes, err := buf.WriteTo(w)
	if err != nil {
		return fmt.Errorf("writing word index: %w", err)
	}

	scoringBytes, err := Write(scoring, f.scoringGraph, version)
	if err != nil {
		return fmt.Errorf("writing scoring index: %w", err)
	}

	f.version = version
	f.digest = digest
	f.wordIndexBytes = wordBytes
	f.scoringIndexBytes = scoringBytes
	return nil
}

// WriteIndexFiles is WriteIndices to two files. Each file is replaced only
// once its new content is complete.
func (f *Factory) WriteIndexFiles(wordPath, scoringPath string, version int) error {
	var word, scoring bytes.Buffer
	if err := f.WriteIndices(&word, &scoring, version); err != nil {
		return err
	}
	if _, err := writeAtomic(wordPath, word.WriteTo); err != nil {
		return err
	}
	if _, err := writeAtomic(scoringPath, scoring.WriteTo); err != nil {
		return err
	}
	return nil
}

// HashBytes returns the digest of the word index, zero before writing.
func (f *Factory) HashBytes() Digest {
	return f.digest
}

// Report summarizes a build.
type Report struct {
	RunID    string
	Alphabet string
	Version  int

	EncodableWords   int
	UnencodableWords int
	WordArcs         int

	ScoringPatterns           int
	GaddagizedScoringPatterns int

	WordNodes    int
	WordEdges    int
	ScoringNodes int
	ScoringEdges int

	WordIndexBytes    int64
	ScoringIndexBytes int64
	Digest            Digest
}

// Report returns the counters collected so far.
func (f *Factory) Report() Report {
	r := Report{
		RunID:                     f.runID,
		Alphabet:                  f.alphabet.Name(),
		Version:                   f.version,
		EncodableWords:            f.encodable,
		UnencodableWords:          f.unencodable,
		WordArcs:                  f.wordArcs,
		ScoringPatterns:           f.scoring.Len(),
		GaddagizedScoringPatterns: f.gaddagizedCount,
		WordIndexBytes:            f.wordIndexBytes,
		ScoringIndexBytes:         f.scoringIndexBytes,
		Digest:                    f.digest,
	}
	if f.wordGraph != nil {
		r.WordNodes = f.wordGraph.NumNodes()
		r.WordEdges = f.wordGraph.NumEdges()
	}
	if f.scoringGraph != nil {
		r.ScoringNodes = f.scoringGraph.NumNodes()
		r.ScoringEdges = f.scoringGraph.NumEdges()
	}
	return r
}
