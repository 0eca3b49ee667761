/*
Package gaddag compiles a word list into the two automata a crossword game
move generator searches: a GADDAG of the words and a second GADDAG of the
words' scoring patterns.

A GADDAG stores every word once per letter. For a word c0 c1 ... cn-1 the
arc for letter i is ci ... c0, a separator, then ci+1 ... cn-1; the arc for
the last letter is the whole word reversed, with no separator. Starting
from any letter already on the board the generator can walk left and then,
after the separator, right.

Building an index goes through a Factory:

	f := gaddag.NewFactory(alphabet.English())
	f.Ingest(words)
	f.GaddagizeScoringPatterns()
	f.SortGaddagizedScoringPatterns()
	f.SortWords()
	f.GenerateAll(ctx)
	f.WriteIndexFiles("output.gaddag", "scoring.gaddag", gaddag.DefaultVersion)
	fmt.Println(f.HashBytes())

The graphs are built with the incremental algorithm for minimal acyclic
automata: sequences must arrive sorted, and every finished state is looked
up in a registry of states already seen so that equivalent suffixes are
stored once. Two binary layouts are supported; a summary of both is at the
top of disk.go. The digest of a build is the MD5 of its word index.
*/
package gaddag
