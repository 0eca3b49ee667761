package gaddag

import (
	"bufio"
	"crypto/md5"
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"golang.org/x/exp/mmap"
)

/* FILE FORMATS

Both versions start with the 4 magic bytes "GDDG". Nodes are written in id
order, the root is node 0 and edges are in ascending code order.

Version 1 (legacy), big-endian uint32 words:
- magic
- version (1)
- number of nodes
- number of edges
- root node id
- for each node:
	- (terminal << 31) | number of edges
	- for each edge: code, child node id

Version 2, bit-packed, see codec_v2.go:
- magic (32 bits)
- 8 bits: version (2)
- 8 bits: cbits, bits per code
- 8 bits: ibits, bits per node id
- 7code: number of nodes
- 7code: number of edges
- 7code: root node id
- for each node:
	- 1 bit: terminal?
	- 1 bit: single edge?
	- if not single edge: 7code number of edges
	- for each edge: cbits code, ibits child node id
- zero padding to a byte boundary

We define 7code to be an unsigned that can be read the following way:

result = 0
for {
	data = next 8 bits
	result = result << 7 | data & 0x7f
	if data & 0x80 == 0 break
}
*/

const magic uint32 = 0x47444447 // "GDDG"

// Supported format versions.
const (
	VersionLegacy = 1
	VersionPacked = 2

	// DefaultVersion is written when no version is asked for.
	DefaultVersion = VersionPacked
)

// Encoder writes a graph in one index format.
type Encoder interface {
	Version() int
	Encode(w io.Writer, g *Graph) (int64, error)
}

type decoder interface {
	decode(r io.ReaderAt) (*Graph, int64, error)
}

type codec interface {
	Encoder
	decoder
}

var codecs = map[int]codec{
	VersionLegacy: legacyCodec{},
	VersionPacked: packedCodec{},
}

// EncoderFor returns the encoder for a format version.
func EncoderFor(version int) (Encoder, error) {
	c, ok := codecs[version]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedVersion, version)
	}
	return c, nil
}

// Write writes g to w in the given format version. Returns the number of bytes written
func Write(w io.Writer, g *Graph, version int) (int64, error) {
	enc, err := EncoderFor(version)
	if err != nil {
		return 0, err
	}

	bw := bufio.NewWriter(w)
	n, err := enc.Encode(bw, g)
	if err != nil {
		return n, err
	}
	return n, bw.Flush()
}

// Save writes g to filename. Returns the number of bytes written
func Save(filename string, g *Graph, version int) (int64, error) {
	return writeAtomic(filename, func(w io.Writer) (int64, error) {
		return Write(w, g, version)
	})
}

// writeAtomic writes to a temporary file next to filename and renames it
// into place once fn succeeds.
func writeAtomic(filename string, fn func(w io.Writer) (int64, error)) (int64, error) {
	tmp, err := os.CreateTemp(filepath.Dir(filename), filepath.Base(filename)+".*.tmp")
	if err != nil {
		return 0, fmt.Errorf("creating temp file for %s: %w", filename, err)
	}
	defer os.Remove(tmp.Name())
	defer tmp.Close()

	n, err := fn(tmp)
	if err != nil {
		return n, fmt.Errorf("writing %s: %w", filename, err)
	}
	if err := tmp.Close(); err != nil {
		return n, fmt.Errorf("closing %s: %w", filename, err)
	}
	if err := os.Rename(tmp.Name(), filename); err != nil {
		return n, fmt.Errorf("renaming %s: %w", filename, err)
	}
	return n, nil
}

// Index is a decoded index.
type Index struct {
	Version int
	Size    int64
	Digest  Digest
	Graph   *Graph
}

// Read decodes an index of either version. The digest covers the Size
// bytes the index occupies.
func Read(r io.ReaderAt) (*Index, error) {
	header := make([]byte, 5)
	if _, err := r.ReadAt(header, 0); err != nil {
		return nil, fmt.Errorf("%w: reading header: %v", ErrCorruptIndex, err)
	}
	if binary.BigEndian.Uint32(header) != magic {
		return nil, fmt.Errorf("%w: %x", ErrBadMagic, header[:4])
	}

	// the legacy version word is big-endian, so byte 4 is 0 there
	version := int(header[4])
	if version == 0 {
		version = int(readUint32(r, 4))
	}

	c, ok := codecs[version]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedVersion, version)
	}

	g, size, err := c.decode(r)
	if err != nil {
		return nil, err
	}

	h := md5.New()
	if _, err := io.Copy(h, io.NewSectionReader(r, 0, size)); err != nil {
		return nil, fmt.Errorf("%w: hashing: %v", ErrCorruptIndex, err)
	}

	idx := &Index{Version: version, Size: size, Graph: g}
	copy(idx.Digest[:], h.Sum(nil))
	return idx, nil
}

// Load maps filename into memory and decodes it.
func Load(filename string) (*Index, error) {
	f, err := mmap.Open(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	idx, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", filename, err)
	}
	if idx.Size != int64(f.Len()) {
		return nil, fmt.Errorf("loading %s: %w: %d trailing bytes",
			filename, ErrCorruptIndex, int64(f.Len())-idx.Size)
	}
	return idx, nil
}

func readUint32(r io.ReaderAt, at int64) uint32 {
	data := make([]byte, 4)
	if _, err := r.ReadAt(data, at); err != nil {
		return 0
	}
	return binary.BigEndian.Uint32(data)
}
