package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/milden6/gaddag"
	"github.com/milden6/gaddag/internal/cli"
)

// writeWords creates a word list in a fresh directory and returns the
// directory and the list's path.
func writeWords(t *testing.T, words string) (string, string) {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "gaddaginput.raw")
	err := os.WriteFile(path, []byte(words), 0600)
	require.NoError(t, err, "failed to set up word list")
	return dir, path
}

func TestRun_BuildsBothIndices(t *testing.T) {
	// --- Arrange ---
	dir, input := writeWords(t, "CAT CATS\nDOG\nQ9Z\n")
	output := filepath.Join(dir, "output.gaddag")
	scoring := filepath.Join(dir, "scoring.gaddag")
	metricsFile := filepath.Join(dir, "gaddag.prom")
	args := []string{"-f", input, "-o", output, "-s", scoring, "-verify", "-metrics-file", metricsFile}
	out := &bytes.Buffer{}

	// --- Act ---
	err := run(out, args)

	// --- Assert ---
	// an unencodable word is a warning, not a failure
	require.NoError(t, err, "run() failed:\n%s", out.String())
	require.Contains(t, out.String(), "Using alphabet")
	require.Contains(t, out.String(), "words left out")

	words, err := gaddag.Load(output)
	require.NoError(t, err)
	require.Equal(t, gaddag.DefaultVersion, words.Version)
	require.Contains(t, out.String(), words.Digest.String(), "the logged hash should be the digest of the word index")

	_, err = gaddag.Load(scoring)
	require.NoError(t, err)

	prom, err := os.ReadFile(metricsFile)
	require.NoError(t, err)
	require.Contains(t, string(prom), "gaddag_words_unencodable 1")
}

func TestRun_LegacyVersion(t *testing.T) {
	dir, input := writeWords(t, "ZA\n")
	output := filepath.Join(dir, "output.gaddag")
	args := []string{"-input", input, "-output", output, "-scoring", filepath.Join(dir, "scoring.gaddag"), "-version", "1"}

	err := run(&bytes.Buffer{}, args)
	require.NoError(t, err)

	words, err := gaddag.Load(output)
	require.NoError(t, err)
	require.Equal(t, gaddag.VersionLegacy, words.Version)
}

func TestRun_MissingInput(t *testing.T) {
	dir := t.TempDir()
	args := []string{"-f", filepath.Join(dir, "missing.raw"), "-o", filepath.Join(dir, "output.gaddag")}

	err := run(&bytes.Buffer{}, args)

	var exitErr *cli.ExitError
	require.True(t, errors.As(err, &exitErr), "expected an ExitError, got %v", err)
	require.Equal(t, 1, exitErr.Code)
	require.ErrorIs(t, err, gaddag.ErrInputUnavailable)
	require.Contains(t, exitErr.Message, "does not exist")

	_, statErr := os.Stat(filepath.Join(dir, "output.gaddag"))
	require.True(t, os.IsNotExist(statErr), "no index should be written")
}

func TestRun_UnknownAlphabet(t *testing.T) {
	_, input := writeWords(t, "CAT\n")

	err := run(&bytes.Buffer{}, []string{"-f", input, "-a", "klingon"})

	var exitErr *cli.ExitError
	require.True(t, errors.As(err, &exitErr), "expected an ExitError, got %v", err)
	require.Equal(t, 1, exitErr.Code)
}

func TestRun_ShouldExit(t *testing.T) {
	// The "-h" (help) flag should cause cli.Parse to return `shouldExit=true`.
	out := &bytes.Buffer{}

	err := run(out, []string{"-h"})

	require.NoError(t, err, "run() should return a nil error when shouldExit is true")
	require.Contains(t, out.String(), "Usage:", "Expected help text to be printed to the output buffer")
}
