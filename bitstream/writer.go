package bitstream

import (
	"github.com/ranforge/asn1per/errors"
)

// Writer appends bits MSB first to a growable byte buffer.
// Unused bits of the final byte are always zero.
type Writer struct {
	buf   []byte
	nbits int
}

// NewWriter creates a Writer that appends after the bytes already in dst.
// Pass nil to start with an empty buffer.
func NewWriter(dst []byte) *Writer {
	return &Writer{buf: dst, nbits: len(dst) * 8}
}

// Bytes returns the written bytes, including a partially filled final byte.
func (w *Writer) Bytes() []byte {
	return w.buf
}

// BitLen returns the number of bits written.
func (w *Writer) BitLen() int {
	return w.nbits
}

// Len returns the number of bytes touched by the written bits.
func (w *Writer) Len() int {
	return len(w.buf)
}

// Aligned reports whether the next bit starts a new byte.
func (w *Writer) Aligned() bool {
	return w.nbits&7 == 0
}

// Reset discards all written bits but keeps the allocated capacity.
func (w *Writer) Reset() {
	w.buf = w.buf[:0]
	w.nbits = 0
}

// WriteBits appends the n low-order bits of v, most significant first.
func (w *Writer) WriteBits(v uint64, n int) error {
	if n < 0 || n > 64 {
		return errors.InvalidArgument(errors.PhaseEncode, "bit count %d outside 0..64", n)
	}
	if n < 64 {
		v &= (1 << uint(n)) - 1
	}
	for n > 0 {
		used := w.nbits & 7
		if used == 0 {
			w.buf = append(w.buf, 0)
		}
		free := 8 - used
		take := min(n, free)
		chunk := byte(v>>uint(n-take)) & byte((1<<uint(take))-1)
		w.buf[len(w.buf)-1] |= chunk << uint(free-take)
		w.nbits += take
		n -= take
	}
	return nil
}

// WriteBool appends a single bit.
func (w *Writer) WriteBool(b bool) {
	var v uint64
	if b {
		v = 1
	}
	// one bit never fails
	_ = w.WriteBits(v, 1)
}

// WriteBytes appends whole octets from the current bit offset.
// It does not align first.
func (w *Writer) WriteBytes(data []byte) {
	if w.Aligned() {
		w.buf = append(w.buf, data...)
		w.nbits += len(data) * 8
		return
	}
	for _, b := range data {
		_ = w.WriteBits(uint64(b), 8)
	}
}

// WriteBitsFrom appends the first n bits of src, MSB first.
func (w *Writer) WriteBitsFrom(src []byte, n int) error {
	if n < 0 || n > len(src)*8 {
		return errors.InvalidArgument(errors.PhaseEncode, "bit count %d exceeds %d source bytes", n, len(src))
	}
	whole := n / 8
	w.WriteBytes(src[:whole])
	if rem := n & 7; rem > 0 {
		return w.WriteBits(uint64(src[whole]>>uint(8-rem)), rem)
	}
	return nil
}

// Align pads with zero bits up to the next byte boundary and returns the
// number of bits added.
func (w *Writer) Align() int {
	pad := (8 - w.nbits&7) & 7
	w.nbits += pad
	return pad
}
