package alphabet

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// FileExtension is appended to an alphabet name to find its definition file.
const FileExtension = ".quackle_alphabet"

// ErrUnknownAlphabet is returned by Resolve for a name with no definition.
var ErrUnknownAlphabet = errors.New("unknown alphabet")

var englishScores = [26]int{
	1, 3, 3, 2, 1, 4, 2, 4, 1, 8, 5, 1, 3,
	1, 1, 3, 10, 1, 1, 1, 1, 4, 4, 8, 4, 10,
}

// English returns the built-in A-Z alphabet with standard tile scores.
// Lowercase letters encode to the same codes as uppercase.
func English() *Alphabet {
	defs := make([]Definition, 0, len(englishScores))
	for i, score := range englishScores {
		ch := rune('A' + i)
		defs = append(defs, Definition{
			Text:      string(ch),
			Alternate: strings.ToLower(string(ch)),
			Score:     score,
		})
	}
	a, err := New("english", defs)
	if err != nil {
		panic(err)
	}
	return a
}

var builtins = map[string]func() *Alphabet{
	"english": English,
}

// Resolve finds an alphabet by name. When dir is set the definition is read
// from dir/<name>.quackle_alphabet, otherwise only built-in alphabets are
// known.
func Resolve(name, dir string) (*Alphabet, error) {
	if dir != "" {
		return LoadFile(name, filepath.Join(dir, name+FileExtension))
	}
	if builtin, ok := builtins[name]; ok {
		return builtin(), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownAlphabet, name)
}

// LoadFile reads an alphabet definition file.
func LoadFile(name, path string) (*Alphabet, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening alphabet file: %w", err)
	}
	defer f.Close()

	return Parse(name, f)
}

// Parse reads an alphabet definition. Each line holds the whitespace
// separated fields
//
//	<text> <alternate> <score> [extra fields...]
//
// Lines starting with '#' and empty lines are ignored, as is a line whose
// text is "blank" (the blank tile is not a letter).
func Parse(name string, r io.Reader) (*Alphabet, error) {
	var defs []Definition

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.Fields(line)
		if strings.EqualFold(fields[0], "blank") {
			continue
		}

		def := Definition{Text: fields[0]}
		if len(fields) > 1 {
			def.Alternate = fields[1]
		}
		if len(fields) > 2 {
			score, err := strconv.Atoi(fields[2])
			if err != nil {
				return nil, fmt.Errorf("%w %q: line %d: bad score %q",
					ErrInvalidAlphabet, name, lineNo, fields[2])
			}
			def.Score = score
		}
		defs = append(defs, def)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading alphabet %q: %w", name, err)
	}

	return New(name, defs)
}
