package gaddag

import (
	"fmt"
	"io"
)

type bitWriter struct {
	io.Writer
	cache   uint8
	used    int
	written int64
	err     error
}

// newBitWriter creates a new bitWriter from an io writer.
func newBitWriter(w io.Writer) *bitWriter {
	return &bitWriter{Writer: w}
}

// WriteBits writes the low n bits of data, most significant first. After
// the first failed write every call is a no-op and Err returns the failure.
func (w *bitWriter) WriteBits(data uint64, n int) {
	var mask uint8
	for n > 0 && w.err == nil {
		written := n
		if written+w.used > 8 {
			written = 8 - w.used
		}

		mask = uint8(uint16(1<<(written)) - 1)
		w.used += written
		w.cache = (w.cache << written) | byte(data>>(n-written))&mask

		if w.used == 8 {
			w.emit()
		}

		n -= written
	}
}

func (w *bitWriter) emit() {
	_, w.err = w.Write([]byte{w.cache})
	w.written++
	w.cache = 0
	w.used = 0
}

// Flush pads the last partial byte with zero bits and writes it.
func (w *bitWriter) Flush() error {
	if w.used > 0 && w.err == nil {
		w.cache <<= 8 - w.used
		w.emit()
	}
	return w.err
}

// Written returns the number of whole bytes written so far.
func (w *bitWriter) Written() int64 {
	return w.written
}

func (w *bitWriter) Err() error {
	return w.err
}

// writeUnsigned writes n as a 7code: big-endian groups of 7 bits, the high
// bit of every byte but the last set.
func writeUnsigned(w *bitWriter, n uint64) {
	shift := 7 * (unsignedLength(n) - 1)
	for shift > 0 {
		w.WriteBits((n>>shift)&0x7f|0x80, 8)
		shift -= 7
	}
	w.WriteBits(n&0x7f, 8)
}

func unsignedLength(n uint64) uint64 {
	length := uint64(1)
	for n >>= 7; n > 0; n >>= 7 {
		length++
	}
	return length
}

var maskTop = []byte{
	0xff,
	0x7f,
	0x3f,
	0x1f,
	0x0f,
	0x07,
	0x03,
	0x01,
	0x00,
}

// bitSeeker reads bits from a given offset in bits
type bitSeeker struct {
	io.ReaderAt
	p      int64
	buffer []byte
	err    error
}

// newBitSeeker creates a new bitSeeker
func newBitSeeker(r io.ReaderAt) *bitSeeker {
	return &bitSeeker{ReaderAt: r, buffer: make([]byte, 1)}
}

func (r *bitSeeker) nextByte() byte {
	if r.err != nil {
		return 0
	}
	if _, err := r.ReadAt(r.buffer, r.p>>3); err != nil {
		r.err = fmt.Errorf("%w: reading byte %d: %v", ErrCorruptIndex, r.p>>3, err)
		return 0
	}
	return r.buffer[0]
}

// ReadBits reads n bits, most significant first. Reads past the end of the
// data return zero bits and set Err.
func (r *bitSeeker) ReadBits(n int64) uint64 {
	if n == 0 {
		return 0
	}

	if r.p&7+n <= 8 {
		ret := uint64((r.nextByte() & maskTop[r.p&7]) >> (8 - r.p&7 - n))
		r.p += n
		return ret
	}

	// case 2: bits lie incompletely in the given byte
	var result uint64
	result = uint64((r.nextByte() & maskTop[r.p&7]))

	l := 8 - r.p&7
	r.p += l
	n -= l

	for n >= 8 {
		result = (result << 8) | uint64(r.nextByte())
		r.p += 8
		n -= 8
	}

	if n > 0 {
		result = (result << n) | uint64(r.nextByte()>>(8-n))
		r.p += n
	}

	return result
}

func (r *bitSeeker) Seek(offset int64, whence int) (int64, error) {
	switch whence {
	case io.SeekStart:
		r.p = offset
	case io.SeekCurrent:
		r.p += offset
	default:
		return r.p, fmt.Errorf("bitSeeker: whence=%d not supported", whence)
	}
	return r.p, nil
}

func (r *bitSeeker) Tell() int64 {
	return r.p
}

func (r *bitSeeker) Err() error {
	return r.err
}

// readUnsigned reads a 7code written by writeUnsigned.
func readUnsigned(r *bitSeeker) uint64 {
	var result uint64
	for i := 0; i < 10; i++ {
		d := r.ReadBits(8)
		result = (result << 7) | d&0x7f
		if d&0x80 == 0 {
			return result
		}
	}
	if r.err == nil {
		r.err = fmt.Errorf("%w: 7code longer than 10 bytes at bit %d", ErrCorruptIndex, r.p)
	}
	return 0
}
