// Command gaddagdump prints an index built by makegaddag: its header, digest
// and every node with its edges.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/milden6/gaddag"
	"github.com/milden6/gaddag/alphabet"
	"github.com/milden6/gaddag/internal/cli"
)

func main() {
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

func run(outW io.Writer, args []string) error {
	flagSet := flag.NewFlagSet("gaddagdump", flag.ContinueOnError)
	flagSet.SetOutput(outW)
	flagSet.Usage = func() {
		fmt.Fprint(outW, "Usage:\n  gaddagdump [options] INDEX\n\nOptions:\n")
		flagSet.PrintDefaults()
	}

	alphabetName := flagSet.String("alphabet", "english", "Alphabet used to print edge labels. Empty prints codes.")
	alphabetDir := flagSet.String("alphabet-dir", "", "Directory of .quackle_alphabet files.")
	scoring := flagSet.Bool("scoring", false, "The index holds scoring patterns; print codes.")

	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return cli.Exit(2, err, "%v", err)
	}
	if flagSet.NArg() != 1 {
		flagSet.Usage()
		return cli.Exit(2, nil, "expected exactly one index file")
	}

	var a *alphabet.Alphabet
	if *alphabetName != "" && !*scoring {
		var err error
		if a, err = alphabet.Resolve(*alphabetName, *alphabetDir); err != nil {
			return cli.Exit(1, err, "loading alphabet: %v", err)
		}
	}

	idx, err := gaddag.Load(flagSet.Arg(0))
	if err != nil {
		return cli.Exit(1, err, "%v", err)
	}
	return gaddag.Dump(outW, idx, a)
}
