package gaddag

import (
	"errors"
	"strconv"
	"strings"

	"github.com/milden6/gaddag/alphabet"
)

const rootNode = 0

type edge struct {
	code  alphabet.Letter
	child int
}

type buildNode struct {
	terminal bool
	edges    []edge // ascending by code
}

type uncheckedNode struct {
	parent int
	code   alphabet.Letter
	child  int
}

// Builder constructs a minimal acyclic automaton from sequences added in
// sorted order (see SortSequences). Repeated sequences are allowed.
//
// The Builder does not check the order. Unsorted input silently produces a
// wrong graph: edges get overwritten and states that should be shared are
// not. Use CanAdd when the order is not already guaranteed.
type Builder struct {
	// these are erased after we finish building
	previous       alphabet.Word
	nodes          []buildNode
	free           []int
	uncheckedNodes []uncheckedNode
	minimizedNodes map[string]int

	numAdded int
	finished bool
	graph    *Graph
}

// NewBuilder creates an empty Builder.
func NewBuilder() *Builder {
	return &Builder{
		nodes:          []buildNode{{}},
		minimizedNodes: make(map[string]int),
	}
}

// CanAdd reports whether seq may be added next without breaking the sort order.
func (b *Builder) CanAdd(seq alphabet.Word) bool {
	return !b.finished && (b.numAdded == 0 || CompareSequences(seq, b.previous) >= 0)
}

// Add adds a sequence. Adding to a finished Builder panics.
func (b *Builder) Add(seq alphabet.Word) {
	if b.finished {
		panic(errors.New("Builder.Add(): tried to add to a finished Builder"))
	}

	// find common prefix between seq and the previous one
	commonPrefix := 0
	for i := 0; i < min(len(seq), len(b.previous)); i++ {
		if seq[i] != b.previous[i] {
			break
		}
		commonPrefix++
	}

	// freeze the unchecked nodes below the common prefix, deepest first
	b.minimize(commonPrefix)

	// add the suffix, starting from the correct node mid-way through the
	// graph
	node := rootNode
	if len(b.uncheckedNodes) > 0 {
		node = b.uncheckedNodes[len(b.uncheckedNodes)-1].child
	}

	for _, code := range seq[commonPrefix:] {
		next := b.newNode()
		b.setChild(node, code, next)
		b.uncheckedNodes = append(b.uncheckedNodes, uncheckedNode{node, code, next})
		node = next
	}

	b.nodes[node].terminal = true
	b.previous = append(b.previous[:0], seq...)
	b.numAdded++
}

// NumAdded returns the number of sequences added, repeats included.
func (b *Builder) NumAdded() int {
	return b.numAdded
}

// Finish freezes the remaining nodes and returns the finished graph. Later
// calls return the same graph.
func (b *Builder) Finish() *Graph {
	if b.finished {
		return b.graph
	}
	b.finished = true

	b.minimize(0)
	b.graph = b.renumber()

	// no longer needed
	b.nodes = nil
	b.free = nil
	b.uncheckedNodes = nil
	b.minimizedNodes = nil
	b.previous = nil

	return b.graph
}

func (b *Builder) minimize(downTo int) {
	// proceed from the leaf up to a certain point
	for i := len(b.uncheckedNodes) - 1; i >= downTo; i-- {
		u := b.uncheckedNodes[i]
		name := b.nameOf(u.child)
		if node, ok := b.minimizedNodes[name]; ok {
			// replace the child with the previously encountered one
			b.setChild(u.parent, u.code, node)
			b.release(u.child)
		} else {
			b.minimizedNodes[name] = u.child
		}
	}

	b.uncheckedNodes = b.uncheckedNodes[:downTo]
}

// nameOf is the canonical signature of a node: its terminal flag followed by
// code:child for each edge. All children are already minimized, so two
// nodes with the same name accept the same sequences.
func (b *Builder) nameOf(node int) string {
	n := &b.nodes[node]

	var sb strings.Builder
	if n.terminal {
		sb.WriteByte('!')
	}
	for _, e := range n.edges {
		sb.WriteByte('_')
		sb.WriteString(strconv.Itoa(int(e.code)))
		sb.WriteByte(':')
		sb.WriteString(strconv.Itoa(e.child))
	}
	return sb.String()
}

func (b *Builder) newNode() int {
	if n := len(b.free); n > 0 {
		id := b.free[n-1]
		b.free = b.free[:n-1]
		return id
	}
	b.nodes = append(b.nodes, buildNode{})
	return len(b.nodes) - 1
}

// release recycles a node that was merged away. It was never registered,
// so nothing refers to its id any more.
func (b *Builder) release(node int) {
	b.nodes[node] = buildNode{edges: b.nodes[node].edges[:0]}
	b.free = append(b.free, node)
}

// setChild points the parent's edge for code at child, adding the edge if
// the parent has none for that code.
func (b *Builder) setChild(parent int, code alphabet.Letter, child int) {
	edges := b.nodes[parent].edges
	i := len(edges)
	for i > 0 && edges[i-1].code >= code {
		i--
	}
	if i < len(edges) && edges[i].code == code {
		edges[i].child = child
		return
	}
	edges = append(edges, edge{})
	copy(edges[i+1:], edges[i:])
	edges[i] = edge{code, child}
	b.nodes[parent].edges = edges
}

func (b *Builder) renumber() *Graph {
	// after minimization, nodes have been removed so there are gaps in the
	// node IDs. Renumber them breadth first from the root.
	remap := make([]int, len(b.nodes))
	for i := range remap {
		remap[i] = -1
	}
	remap[rootNode] = 0
	order := []int{rootNode}

	for i := 0; i < len(order); i++ {
		for _, e := range b.nodes[order[i]].edges {
			if remap[e.child] < 0 {
				remap[e.child] = len(order)
				order = append(order, e.child)
			}
		}
	}

	g := &Graph{
		nodes:    make([]Node, len(order)),
		numAdded: b.numAdded,
	}
	for newID, oldID := range order {
		old := b.nodes[oldID]
		node := Node{Terminal: old.terminal}
		if len(old.edges) > 0 {
			node.Edges = make([]Edge, len(old.edges))
			for j, e := range old.edges {
				node.Edges[j] = Edge{Code: e.code, Child: remap[e.child]}
			}
		}
		g.nodes[newID] = node
		g.numEdges += len(node.Edges)
	}
	return g
}

// Build adds seqs, which must already be sorted, to a new Builder and
// returns the finished graph.
func Build(seqs []alphabet.Word) *Graph {
	b := NewBuilder()
	for _, seq := range seqs {
		b.Add(seq)
	}
	return b.Finish()
}
