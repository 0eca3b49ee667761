package gaddag

import (
	"slices"

	"github.com/milden6/gaddag/alphabet"
)

// Edge is a labelled transition to a child node.
type Edge struct {
	Code  alphabet.Letter
	Child int
}

// Node is a state of a finished graph. Edges are sorted by code.
type Node struct {
	Terminal bool
	Edges    []Edge
}

// Graph is a finished, minimized automaton. Node 0 is the root and node ids
// are assigned breadth first, so two graphs accepting the same sequences
// are identical.
type Graph struct {
	nodes    []Node
	numEdges int
	numAdded int
}

// NewGraph creates a graph from nodes; nodes[0] is the root. It is used
// by index readers and does not minimize.
func NewGraph(nodes []Node) *Graph {
	g := &Graph{nodes: nodes}
	for _, n := range nodes {
		g.numEdges += len(n.Edges)
	}
	return g
}

// EnumFn is called by Enumerate for every path from the root.
type EnumFn = func(seq alphabet.Word, terminal bool) EnumerationResult

// EnumerationResult is returned by the enumeration function to indicate whether
// enumeration should continue below this depth or to stop altogether
type EnumerationResult = int

const (
	// Continue enumerating all sequences with this prefix
	Continue EnumerationResult = iota

	// Skip will skip all sequences with this prefix
	Skip

	// Stop will immediately stop enumerating
	Stop
)

// NumNodes returns the number of nodes, the root included.
func (g *Graph) NumNodes() int {
	return len(g.nodes)
}

// NumEdges returns the number of edges.
func (g *Graph) NumEdges() int {
	return g.numEdges
}

// NumAdded returns how many sequences went into the Builder, repeats
// included. It is zero for graphs read from an index.
func (g *Graph) NumAdded() int {
	return g.numAdded
}

// Node returns node id.
func (g *Graph) Node(id int) Node {
	return g.nodes[id]
}

// Nodes returns all nodes in id order. The slice must not be modified.
func (g *Graph) Nodes() []Node {
	return g.nodes
}

// Child follows the edge labelled code out of node id.
func (g *Graph) Child(id int, code alphabet.Letter) (int, bool) {
	edges := g.nodes[id].Edges
	i, ok := slices.BinarySearchFunc(edges, code, func(e Edge, c alphabet.Letter) int {
		return int(e.Code) - int(c)
	})
	if !ok {
		return 0, false
	}
	return edges[i].Child, true
}

// Walk follows seq from the root and returns the node it ends on.
func (g *Graph) Walk(seq alphabet.Word) (int, bool) {
	node := rootNode
	for _, code := range seq {
		var ok bool
		if node, ok = g.Child(node, code); !ok {
			return 0, false
		}
	}
	return node, true
}

// Accepts reports whether seq ends on a terminal node.
func (g *Graph) Accepts(seq alphabet.Word) bool {
	node, ok := g.Walk(seq)
	return ok && g.nodes[node].Terminal
}

// Enumerate will call the given method, passing it every path from the root
// in ascending order. Return Continue to continue enumeration, Skip to skip
// this branch, or Stop to stop enumeration.
func (g *Graph) Enumerate(fn EnumFn) {
	g.enumerate(rootNode, nil, fn)
}

func (g *Graph) enumerate(id int, seq alphabet.Word, fn EnumFn) EnumerationResult {
	node := g.nodes[id]

	result := fn(seq, node.Terminal)
	if result != Continue {
		return result
	}

	l := len(seq)
	seq = append(seq, 0)

	for _, e := range node.Edges {
		seq[l] = e.Code
		result = g.enumerate(e.Child, seq, fn)
		if result == Stop {
			break
		}
	}

	return result
}

// Sequences returns every accepted sequence in ascending order.
func (g *Graph) Sequences() []alphabet.Word {
	var out []alphabet.Word
	g.Enumerate(func(seq alphabet.Word, terminal bool) EnumerationResult {
		if terminal {
			out = append(out, slices.Clone(seq))
		}
		return Continue
	})
	return out
}

// Equal reports whether two graphs have the same nodes in the same order.
func (g *Graph) Equal(other *Graph) bool {
	return slices.EqualFunc(g.nodes, other.nodes, func(a, b Node) bool {
		return a.Terminal == b.Terminal && slices.Equal(a.Edges, b.Edges)
	})
}

// MaxCode returns the largest edge label, or 0 for a graph without edges.
func (g *Graph) MaxCode() alphabet.Letter {
	var maxCode alphabet.Letter
	for _, n := range g.nodes {
		for _, e := range n.Edges {
			maxCode = max(maxCode, e.Code)
		}
	}
	return maxCode
}
