package bitstream

import (
	"github.com/ranforge/asn1per/errors"
)

// DefaultMaxDepth bounds how many nested Descend calls a Reader accepts.
const DefaultMaxDepth = 128

// Reader reads bits MSB first from an immutable byte slice.
// A failed read leaves the position unchanged.
type Reader struct {
	data     []byte
	pos      int
	limit    int
	depth    int
	maxDepth int
}

// NewReader creates a Reader over data starting at bit 0.
func NewReader(data []byte) *Reader {
	return &Reader{
		data:     data,
		limit:    len(data) * 8,
		maxDepth: DefaultMaxDepth,
	}
}

// Child creates a Reader over data that shares this reader's nesting depth
// and depth limit. Used for the contents of open types.
func (r *Reader) Child(data []byte) *Reader {
	c := NewReader(data)
	c.depth = r.depth
	c.maxDepth = r.maxDepth
	return c
}

// Pos returns the current offset in bits.
func (r *Reader) Pos() int {
	return r.pos
}

// Len returns the total number of readable bits.
func (r *Reader) Len() int {
	return r.limit
}

// Remaining returns the number of unread bits.
func (r *Reader) Remaining() int {
	return r.limit - r.pos
}

// Aligned reports whether the next bit starts a byte.
func (r *Reader) Aligned() bool {
	return r.pos&7 == 0
}

// Require fails with an underflow error unless n more bits are available.
func (r *Reader) Require(n int) error {
	if n < 0 || n > r.Remaining() {
		return errors.Underflow(r.pos, n, r.Remaining())
	}
	return nil
}

// ReadBits reads n bits (0..64) and returns them right-aligned.
func (r *Reader) ReadBits(n int) (uint64, error) {
	if n < 0 || n > 64 {
		return 0, errors.InvalidArgument(errors.PhaseDecode, "bit count %d outside 0..64", n)
	}
	if n > r.Remaining() {
		return 0, errors.Underflow(r.pos, n, r.Remaining())
	}
	var v uint64
	for n > 0 {
		off := r.pos & 7
		avail := 8 - off
		take := min(n, avail)
		b := (r.data[r.pos>>3] >> uint(avail-take)) & byte((1<<uint(take))-1)
		v = v<<uint(take) | uint64(b)
		r.pos += take
		n -= take
	}
	return v, nil
}

// ReadBool reads a single bit.
func (r *Reader) ReadBool() (bool, error) {
	v, err := r.ReadBits(1)
	return v == 1, err
}

// ReadBytes reads n whole octets from the current bit offset.
// When the reader is byte aligned the result aliases the input slice and
// must not be modified.
func (r *Reader) ReadBytes(n int) ([]byte, error) {
	if n < 0 || n > r.Remaining()/8 {
		return nil, errors.Underflow(r.pos, n*8, r.Remaining())
	}
	if r.Aligned() {
		start := r.pos >> 3
		r.pos += n * 8
		return r.data[start : start+n : start+n], nil
	}
	out := make([]byte, n)
	for i := range out {
		v, _ := r.ReadBits(8)
		out[i] = byte(v)
	}
	return out, nil
}

// ReadBitsInto reads n bits into a fresh MSB-first byte slice. Unused bits of
// the final byte are zero.
func (r *Reader) ReadBitsInto(n int) ([]byte, error) {
	if err := r.Require(n); err != nil {
		return nil, err
	}
	out := make([]byte, (n+7)/8)
	for i := 0; n > 0; i++ {
		take := min(n, 8)
		v, _ := r.ReadBits(take)
		out[i] = byte(v << uint(8-take))
		n -= take
	}
	return out, nil
}

// SkipBits advances the offset by n bits.
func (r *Reader) SkipBits(n int) error {
	if err := r.Require(n); err != nil {
		return err
	}
	r.pos += n
	return nil
}

// Align skips to the next byte boundary and returns the bits skipped.
func (r *Reader) Align() int {
	pad := (8 - r.pos&7) & 7
	if pad > r.Remaining() {
		pad = r.Remaining()
	}
	r.pos += pad
	return pad
}

// Depth returns the current nesting depth.
func (r *Reader) Depth() int {
	return r.depth
}

// SetMaxDepth sets the nesting limit enforced by Descend.
func (r *Reader) SetMaxDepth(n int) {
	r.maxDepth = n
}

// Descend enters one nesting level, failing once the limit is reached.
// Every successful Descend must be paired with Ascend.
func (r *Reader) Descend() error {
	if r.depth >= r.maxDepth {
		return errors.DepthExceeded(r.maxDepth)
	}
	r.depth++
	return nil
}

// Ascend leaves one nesting level.
func (r *Reader) Ascend() {
	if r.depth > 0 {
		r.depth--
	}
}
