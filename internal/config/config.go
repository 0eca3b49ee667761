// Package config loads the makegaddag configuration from an optional YAML
// file with GADDAG_* environment-variable overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/milden6/gaddag"
	"github.com/milden6/gaddag/internal/logger"
)

// Config is the build configuration.
type Config struct {
	// Alphabet names the letter set, a built-in or a file in AlphabetDir.
	Alphabet    string `yaml:"alphabet"`
	AlphabetDir string `yaml:"alphabetDir"`

	Input         string `yaml:"input"`
	Output        string `yaml:"output"`
	ScoringOutput string `yaml:"scoringOutput"`

	// Version is the index format version, 1 or 2.
	Version  int  `yaml:"version"`
	Parallel bool `yaml:"parallel"`
	Verify   bool `yaml:"verify"`

	// MetricsFile receives the build gauges in the Prometheus text format.
	// Empty disables it.
	MetricsFile string `yaml:"metricsFile"`

	Logging LoggingConfig `yaml:"logging"`
}

// LoggingConfig controls structured logging level and output format.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Load reads a YAML config file (if provided) and applies environment-variable
// overrides on top of the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file %s: %w", path, err)
		}
	}
	if err := applyEnvOverrides(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Default returns the configuration of a run without a file or environment.
func Default() *Config {
	return &Config{
		Alphabet:      "english",
		Input:         "gaddaginput.raw",
		Output:        "output.gaddag",
		ScoringOutput: "scoring.gaddag",
		Version:       gaddag.DefaultVersion,
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// applyEnvOverrides reads GADDAG_* environment variables and overrides the
// corresponding config fields.
func applyEnvOverrides(cfg *Config) error {
	strs := map[string]*string{
		"GADDAG_ALPHABET":       &cfg.Alphabet,
		"GADDAG_ALPHABET_DIR":   &cfg.AlphabetDir,
		"GADDAG_INPUT":          &cfg.Input,
		"GADDAG_OUTPUT":         &cfg.Output,
		"GADDAG_SCORING_OUTPUT": &cfg.ScoringOutput,
		"GADDAG_METRICS_FILE":   &cfg.MetricsFile,
		"GADDAG_LOGGING_LEVEL":  &cfg.Logging.Level,
		"GADDAG_LOGGING_FORMAT": &cfg.Logging.Format,
	}
	for name, field := range strs {
		if v := os.Getenv(name); v != "" {
			*field = v
		}
	}

	if v := os.Getenv("GADDAG_VERSION"); v != "" {
		version, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("GADDAG_VERSION: %w", err)
		}
		cfg.Version = version
	}

	bools := map[string]*bool{
		"GADDAG_PARALLEL": &cfg.Parallel,
		"GADDAG_VERIFY":   &cfg.Verify,
	}
	for name, field := range bools {
		if v := os.Getenv(name); v != "" {
			b, err := strconv.ParseBool(v)
			if err != nil {
				return fmt.Errorf("%s: %w", name, err)
			}
			*field = b
		}
	}
	return nil
}

// Validate checks the values no later stage can recover from.
func (c *Config) Validate() error {
	var errs []error
	if _, err := gaddag.EncoderFor(c.Version); err != nil {
		errs = append(errs, err)
	}
	if c.Alphabet == "" {
		errs = append(errs, errors.New("alphabet must not be empty"))
	}
	if c.Output == "" || c.ScoringOutput == "" {
		errs = append(errs, errors.New("output paths must not be empty"))
	}
	if c.Output != "" && c.Output == c.ScoringOutput {
		errs = append(errs, fmt.Errorf("word and scoring indices both go to %s", c.Output))
	}
	if !logger.ValidLevel(c.Logging.Level) {
		errs = append(errs, fmt.Errorf("invalid log level %q: must be debug, info, warn or error", c.Logging.Level))
	}
	if !logger.ValidFormat(c.Logging.Format) {
		errs = append(errs, fmt.Errorf("invalid log format %q: must be text or json", c.Logging.Format))
	}
	return errors.Join(errs...)
}
