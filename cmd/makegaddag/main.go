package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/milden6/gaddag"
	"github.com/milden6/gaddag/alphabet"
	"github.com/milden6/gaddag/internal/cli"
	"github.com/milden6/gaddag/internal/config"
	"github.com/milden6/gaddag/internal/logger"
	"github.com/milden6/gaddag/internal/metrics"
)

// main is the entrypoint for makegaddag.
func main() {
	// Use a minimal logger until the full one is configured.
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})))

	// The real main function handles errors and exit codes.
	if err := run(os.Stdout, os.Args[1:]); err != nil {
		var exitErr *cli.ExitError
		if errors.As(err, &exitErr) {
			fmt.Fprintln(os.Stderr, exitErr.Message)
			os.Exit(exitErr.Code)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// run encapsulates the main application logic for easier testing and error handling.
func run(outW io.Writer, args []string) (err error) {
	cfg, shouldExit, err := cli.Parse(args, outW)
	if err != nil {
		return err
	}
	if shouldExit {
		return nil
	}

	// a broken invariant inside the pipeline panics; report it as a failed run
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("makegaddag panicked: %v", r)
		}
	}()

	log := logger.Setup(outW, cfg.Logging.Level, cfg.Logging.Format)
	return build(context.Background(), cfg, log)
}

func build(ctx context.Context, cfg *config.Config, log *slog.Logger) error {
	start := time.Now()

	a, err := alphabet.Resolve(cfg.Alphabet, cfg.AlphabetDir)
	if err != nil {
		return cli.Exit(1, err, "loading alphabet: %v", err)
	}
	log.Info("Using alphabet", "alphabet", a.Name(), "letters", a.Size())

	input, err := os.Open(cfg.Input)
	if err != nil {
		err = fmt.Errorf("%w: %v", gaddag.ErrInputUnavailable, err)
		return cli.Exit(1, err, "Input dictionary %s does not exist", cfg.Input)
	}
	defer input.Close()

	f := gaddag.NewFactory(a,
		gaddag.WithLogger(log),
		gaddag.WithParallel(cfg.Parallel),
	)
	log = log.With("run_id", f.RunID())

	log.Info("Reading words", "input", cfg.Input)
	if err := f.Ingest(input); err != nil {
		return fmt.Errorf("%w: %v", gaddag.ErrInputUnavailable, err)
	}

	stages := []func() error{
		f.GaddagizeScoringPatterns,
		f.SortGaddagizedScoringPatterns,
		f.SortWords,
		func() error { return f.GenerateAll(ctx) },
		func() error { return f.WriteIndexFiles(cfg.Output, cfg.ScoringOutput, cfg.Version) },
	}
	for _, stage := range stages {
		if err := stage(); err != nil {
			return err
		}
	}

	log.Info("Wrote words",
		"words", f.EncodableWords(),
		"output", cfg.Output,
		"scoring_output", cfg.ScoringOutput,
		"version", cfg.Version)
	log.Info("Hash", "digest", f.HashBytes().String())
	if n := f.UnencodableWords(); n > 0 {
		log.Warn("There were words left out", "count", n)
	}

	report := f.Report()
	if cfg.Verify {
		if err := verify(cfg, report); err != nil {
			return err
		}
		log.Info("Verified indices", "output", cfg.Output, "scoring_output", cfg.ScoringOutput)
	}

	if cfg.MetricsFile != "" {
		m := metrics.New()
		m.Observe(report, time.Since(start))
		if err := m.WriteTextfile(cfg.MetricsFile); err != nil {
			return fmt.Errorf("writing metrics: %w", err)
		}
		log.Debug("Wrote metrics", "file", cfg.MetricsFile)
	}
	return nil
}

// verify reloads both written indices and compares them with the build.
func verify(cfg *config.Config, report gaddag.Report) error {
	words, err := gaddag.Load(cfg.Output)
	if err != nil {
		return fmt.Errorf("verifying: %w", err)
	}
	if words.Digest != report.Digest {
		return fmt.Errorf("verifying %s: digest %s, expected %s", cfg.Output, words.Digest, report.Digest)
	}
	if words.Graph.NumNodes() != report.WordNodes || words.Graph.NumEdges() != report.WordEdges {
		return fmt.Errorf("verifying %s: %d nodes and %d edges, expected %d and %d", cfg.Output,
			words.Graph.NumNodes(), words.Graph.NumEdges(), report.WordNodes, report.WordEdges)
	}

	scoring, err := gaddag.Load(cfg.ScoringOutput)
	if err != nil {
		return fmt.Errorf("verifying: %w", err)
	}
	if scoring.Graph.NumNodes() != report.ScoringNodes || scoring.Graph.NumEdges() != report.ScoringEdges {
		return fmt.Errorf("verifying %s: %d nodes and %d edges, expected %d and %d", cfg.ScoringOutput,
			scoring.Graph.NumNodes(), scoring.Graph.NumEdges(), report.ScoringNodes, report.ScoringEdges)
	}
	return nil
}
