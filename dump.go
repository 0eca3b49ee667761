package gaddag

import (
	"fmt"
	"io"
	"strconv"

	"github.com/milden6/gaddag/alphabet"
)

// Dump prints an index: the header, then every node with its edges. Codes
// are printed as letters when a is not nil.
func Dump(w io.Writer, idx *Index, a *alphabet.Alphabet) error {
	letter := func(code alphabet.Letter) string {
		if a == nil {
			return strconv.Itoa(int(code))
		}
		return a.Text(code)
	}

	g := idx.Graph
	fmt.Fprintf(w, "Version=%d\n", idx.Version)
	fmt.Fprintf(w, "Size=%d bytes\n", idx.Size)
	fmt.Fprintf(w, "Digest=%s\n", idx.Digest)
	fmt.Fprintf(w, "NodeCount=%d\n", g.NumNodes())
	fmt.Fprintf(w, "EdgeCount=%d\n", g.NumEdges())

	for id, node := range g.Nodes() {
		final := 0
		if node.Terminal {
			final = 1
		}
		if _, err := fmt.Fprintf(w, "[%08d] Node final=%d has %d edges\n", id, final, len(node.Edges)); err != nil {
			return err
		}
		for _, e := range node.Edges {
			if _, err := fmt.Fprintf(w, "           '%s' goto <%08d>\n", letter(e.Code), e.Child); err != nil {
				return err
			}
		}
	}
	return nil
}
