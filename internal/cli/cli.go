// Package cli parses the makegaddag command line into a config.Config and
// carries process exit codes back to main.
package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"

	"github.com/milden6/gaddag/internal/config"
)

// ExitError is an error that carries the process exit code.
type ExitError struct {
	Code    int
	Message string
	Err     error
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// Exit wraps err with an exit code and message.
func Exit(code int, err error, format string, args ...any) *ExitError {
	return &ExitError{Code: code, Message: fmt.Sprintf(format, args...), Err: err}
}

// Parse processes command-line arguments on top of the configuration file
// named by -config and the environment. It returns the configuration, a
// boolean telling the caller to exit cleanly (after -h), or an ExitError.
func Parse(args []string, output io.Writer) (*config.Config, bool, error) {
	slog.Debug("CLI parser started.")
	flagSet := flag.NewFlagSet("makegaddag", flag.ContinueOnError)
	flagSet.SetOutput(output)

	flagSet.Usage = func() {
		fmt.Fprint(output, `
makegaddag - builds the word and scoring GADDAG indices from a word list.

Usage:
  makegaddag [options]

Options:
`)
		flagSet.PrintDefaults()
	}

	defaults := config.Default()
	configFlag := flagSet.String("config", "", "Path to a YAML configuration file.")

	var inputPath, outputPath, scoringPath, alphabetName string
	var version int
	flagSet.StringVar(&inputPath, "input", defaults.Input, "Word list, whitespace separated.")
	flagSet.StringVar(&inputPath, "f", defaults.Input, "Word list (shorthand).")
	flagSet.StringVar(&outputPath, "output", defaults.Output, "Word index file.")
	flagSet.StringVar(&outputPath, "o", defaults.Output, "Word index file (shorthand).")
	flagSet.StringVar(&scoringPath, "scoring", defaults.ScoringOutput, "Scoring pattern index file.")
	flagSet.StringVar(&scoringPath, "s", defaults.ScoringOutput, "Scoring pattern index file (shorthand).")
	flagSet.StringVar(&alphabetName, "alphabet", defaults.Alphabet, "Alphabet name.")
	flagSet.StringVar(&alphabetName, "a", defaults.Alphabet, "Alphabet name (shorthand).")
	flagSet.IntVar(&version, "version", defaults.Version, "Index format version, 1 or 2.")
	flagSet.IntVar(&version, "v", defaults.Version, "Index format version (shorthand).")
	alphabetDir := flagSet.String("alphabet-dir", "", "Directory of .quackle_alphabet files. Empty means built-in alphabets only.")
	parallel := flagSet.Bool("parallel", false, "Build the word and scoring indices concurrently.")
	verify := flagSet.Bool("verify", false, "Reload the written word index and check it.")
	metricsFile := flagSet.String("metrics-file", "", "Write build metrics to this Prometheus textfile.")
	logLevel := flagSet.String("log-level", defaults.Logging.Level, "Logging level. Options: 'debug', 'info', 'warn', 'error'.")
	logFormat := flagSet.String("log-format", defaults.Logging.Format, "Log output format. Options: 'text' or 'json'.")

	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, true, nil
		}
		return nil, false, Exit(1, err, "%v", err)
	}
	if flagSet.NArg() > 0 {
		return nil, false, Exit(1, nil, "unexpected argument %q", flagSet.Arg(0))
	}

	cfg, err := config.Load(*configFlag)
	if err != nil {
		return nil, false, Exit(1, err, "%v", err)
	}

	// flags given on the command line win over the file and environment
	flagSet.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "input", "f":
			cfg.Input = inputPath
		case "output", "o":
			cfg.Output = outputPath
		case "scoring", "s":
			cfg.ScoringOutput = scoringPath
		case "alphabet", "a":
			cfg.Alphabet = alphabetName
		case "version", "v":
			cfg.Version = version
		case "alphabet-dir":
			cfg.AlphabetDir = *alphabetDir
		case "parallel":
			cfg.Parallel = *parallel
		case "verify":
			cfg.Verify = *verify
		case "metrics-file":
			cfg.MetricsFile = *metricsFile
		case "log-level":
			cfg.Logging.Level = *logLevel
		case "log-format":
			cfg.Logging.Format = *logFormat
		}
	})

	if err := cfg.Validate(); err != nil {
		return nil, false, Exit(1, err, "invalid configuration: %v", err)
	}

	slog.Debug("CLI parser finished successfully.", "config", cfg)
	return cfg, false, nil
}
