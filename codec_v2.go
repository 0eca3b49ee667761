package gaddag

import (
	"fmt"
	"io"
	"math/bits"

	"github.com/milden6/gaddag/alphabet"
)

// packedCodec is format version 2. Codes and node ids use just as many bits
// as the largest value needs, and a node with one edge skips its edge count.
type packedCodec struct{}

func (packedCodec) Version() int {
	return VersionPacked
}

func (c packedCodec) Encode(wIn io.Writer, g *Graph) (int64, error) {
	w := newBitWriter(wIn)

	cbits := bits.Len(uint(g.MaxCode()))
	ibits := bits.Len(uint(g.NumNodes() - 1))

	w.WriteBits(uint64(magic), 32)
	w.WriteBits(uint64(c.Version()), 8)
	w.WriteBits(uint64(cbits), 8)
	w.WriteBits(uint64(ibits), 8)

	writeUnsigned(w, uint64(g.NumNodes()))
	writeUnsigned(w, uint64(g.NumEdges()))
	writeUnsigned(w, rootNode)

	for _, node := range g.Nodes() {
		if node.Terminal {
			w.WriteBits(1, 1)
		} else {
			w.WriteBits(0, 1)
		}

		if len(node.Edges) == 1 {
			w.WriteBits(1, 1)
		} else {
			w.WriteBits(0, 1)
			writeUnsigned(w, uint64(len(node.Edges)))
		}

		for _, e := range node.Edges {
			w.WriteBits(uint64(e.Code), cbits)
			w.WriteBits(uint64(e.Child), ibits)
		}
	}

	err := w.Flush()
	return w.Written(), err
}

func (c packedCodec) decode(f io.ReaderAt) (*Graph, int64, error) {
	r := newBitSeeker(f)

	r.Seek(32+8, io.SeekStart)
	cbits := int64(r.ReadBits(8))
	ibits := int64(r.ReadBits(8))
	numNodes := readUnsigned(r)
	numEdges := readUnsigned(r)
	root := readUnsigned(r)
	if err := r.Err(); err != nil {
		return nil, 0, err
	}

	if cbits > 8 || ibits > 63 || numNodes == 0 || root != rootNode {
		return nil, 0, fmt.Errorf("%w: cbits=%d ibits=%d nodes=%d root=%d",
			ErrCorruptIndex, cbits, ibits, numNodes, root)
	}

	// every node takes at least 2 bits and every edge cbits+ibits; make sure
	// that much data exists before allocating for it
	minBits := uint64(r.Tell()) + 2*numNodes + numEdges*uint64(cbits+ibits)
	if minBits/8 > 1<<40 {
		return nil, 0, fmt.Errorf("%w: %d nodes, %d edges", ErrCorruptIndex, numNodes, numEdges)
	}
	probe := newBitSeeker(f)
	probe.Seek(int64(minBits-1)&^7, io.SeekStart)
	probe.ReadBits(8)
	if err := probe.Err(); err != nil {
		return nil, 0, err
	}

	nodes := make([]Node, numNodes)
	edgesSeen := uint64(0)
	for i := range nodes {
		nodes[i].Terminal = r.ReadBits(1) == 1

		count := uint64(1)
		if r.ReadBits(1) == 0 {
			count = readUnsigned(r)
		}
		if err := r.Err(); err != nil {
			return nil, 0, err
		}
		edgesSeen += count
		if edgesSeen > numEdges {
			return nil, 0, fmt.Errorf("%w: node %d overflows %d edges", ErrCorruptIndex, i, numEdges)
		}
		if count == 0 {
			continue
		}

		nodes[i].Edges = make([]Edge, count)
		for j := range nodes[i].Edges {
			code := r.ReadBits(cbits)
			child := r.ReadBits(ibits)
			if child >= numNodes {
				return nil, 0, fmt.Errorf("%w: node %d edge %d -> %d", ErrCorruptIndex, i, code, child)
			}
			nodes[i].Edges[j] = Edge{Code: alphabet.Letter(code), Child: int(child)}
		}
	}
	if err := r.Err(); err != nil {
		return nil, 0, err
	}
	if edgesSeen != numEdges {
		return nil, 0, fmt.Errorf("%w: header says %d edges, found %d", ErrCorruptIndex, numEdges, edgesSeen)
	}

	return NewGraph(nodes), (r.Tell() + 7) / 8, nil
}
