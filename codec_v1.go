package gaddag

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"

	"github.com/milden6/gaddag/alphabet"
)

const (
	legacyHeaderLength = 4 * 5
	legacyTerminalBit  = 1 << 31
)

// legacyCodec is format version 1: fixed-width big-endian uint32 words.
type legacyCodec struct{}

func (legacyCodec) Version() int {
	return VersionLegacy
}

type wordWriter struct {
	w   io.Writer
	buf [4]byte
	n   int64
	err error
}

func (w *wordWriter) writeInt32(v uint32) {
	if w.err != nil {
		return
	}
	binary.BigEndian.PutUint32(w.buf[:], v)
	_, w.err = w.w.Write(w.buf[:])
	w.n += 4
}

func (c legacyCodec) Encode(wIn io.Writer, g *Graph) (int64, error) {
	if g.NumNodes() > math.MaxInt32 || g.NumEdges() > math.MaxInt32 {
		return 0, fmt.Errorf("graph with %d nodes, %d edges is too large for version %d",
			g.NumNodes(), g.NumEdges(), c.Version())
	}

	w := &wordWriter{w: wIn}
	w.writeInt32(magic)
	w.writeInt32(uint32(c.Version()))
	w.writeInt32(uint32(g.NumNodes()))
	w.writeInt32(uint32(g.NumEdges()))
	w.writeInt32(rootNode)

	for _, node := range g.Nodes() {
		header := uint32(len(node.Edges))
		if node.Terminal {
			header |= legacyTerminalBit
		}
		w.writeInt32(header)
		for _, e := range node.Edges {
			w.writeInt32(uint32(e.Code))
			w.writeInt32(uint32(e.Child))
		}
	}

	return w.n, w.err
}

func (c legacyCodec) decode(r io.ReaderAt) (*Graph, int64, error) {
	header := make([]byte, legacyHeaderLength)
	if _, err := r.ReadAt(header, 0); err != nil {
		return nil, 0, fmt.Errorf("%w: reading header: %v", ErrCorruptIndex, err)
	}
	numNodes := int64(binary.BigEndian.Uint32(header[8:]))
	numEdges := int64(binary.BigEndian.Uint32(header[12:]))
	root := binary.BigEndian.Uint32(header[16:])
	if numNodes == 0 || root != rootNode {
		return nil, 0, fmt.Errorf("%w: %d nodes, root node %d", ErrCorruptIndex, numNodes, root)
	}

	// probe the last byte before allocating, so a bogus header fails
	// instead of asking for gigabytes
	size := legacyHeaderLength + 4*numNodes + 8*numEdges
	if _, err := r.ReadAt(make([]byte, 1), size-1); err != nil {
		return nil, 0, fmt.Errorf("%w: expected %d bytes: %v", ErrCorruptIndex, size, err)
	}
	body := make([]byte, size-legacyHeaderLength)
	if _, err := r.ReadAt(body, legacyHeaderLength); err != nil {
		return nil, 0, fmt.Errorf("%w: reading %d nodes: %v", ErrCorruptIndex, numNodes, err)
	}

	nodes := make([]Node, numNodes)
	pos := 0
	edgesSeen := int64(0)
	for i := range nodes {
		word := binary.BigEndian.Uint32(body[pos:])
		pos += 4

		count := int64(word &^ legacyTerminalBit)
		nodes[i].Terminal = word&legacyTerminalBit != 0
		edgesSeen += count
		if edgesSeen > numEdges {
			return nil, 0, fmt.Errorf("%w: node %d overflows %d edges", ErrCorruptIndex, i, numEdges)
		}
		if count == 0 {
			continue
		}

		nodes[i].Edges = make([]Edge, count)
		for j := range nodes[i].Edges {
			code := binary.BigEndian.Uint32(body[pos:])
			child := binary.BigEndian.Uint32(body[pos+4:])
			pos += 8
			if code > alphabet.MaxLetters || int64(child) >= numNodes {
				return nil, 0, fmt.Errorf("%w: node %d edge %d -> %d", ErrCorruptIndex, i, code, child)
			}
			nodes[i].Edges[j] = Edge{Code: alphabet.Letter(code), Child: int(child)}
		}
	}
	if edgesSeen != numEdges {
		return nil, 0, fmt.Errorf("%w: header says %d edges, found %d", ErrCorruptIndex, numEdges, edgesSeen)
	}

	return NewGraph(nodes), size, nil
}
