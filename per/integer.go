package per

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ranforge/asn1per/bitstream"
	"github.com/ranforge/asn1per/errors"
	"github.com/ranforge/asn1per/per/internal/bound"
)

// IntRange is the PER-visible constraint of an INTEGER.
type IntRange struct {
	Lb, Ub       int64
	HasLb, HasUb bool
	Extensible   bool
}

// Constrained returns INTEGER (lb..ub).
func Constrained(lb, ub int64) IntRange {
	return IntRange{Lb: lb, Ub: ub, HasLb: true, HasUb: true}
}

// SemiConstrained returns INTEGER (lb..MAX).
func SemiConstrained(lb int64) IntRange {
	return IntRange{Lb: lb, HasLb: true}
}

// Unconstrained returns INTEGER with no PER-visible bounds.
func Unconstrained() IntRange {
	return IntRange{}
}

// Extend marks the root range as extensible: (lb..ub, ...).
func (c IntRange) Extend() IntRange {
	c.Extensible = true
	return c
}

// Contains reports whether v lies in the root range.
func (c IntRange) Contains(v int64) bool {
	if c.HasLb && v < c.Lb {
		return false
	}
	if c.HasUb && v > c.Ub {
		return false
	}
	return true
}

func (c IntRange) String() string {
	var b strings.Builder
	b.WriteString("INTEGER")
	if !c.HasLb && !c.HasUb {
		return b.String()
	}
	b.WriteString(" (")
	if c.HasLb {
		b.WriteString(strconv.FormatInt(c.Lb, 10))
	} else {
		b.WriteString("MIN")
	}
	b.WriteString("..")
	if c.HasUb {
		b.WriteString(strconv.FormatInt(c.Ub, 10))
	} else {
		b.WriteString("MAX")
	}
	if c.Extensible {
		b.WriteString(", ...")
	}
	b.WriteByte(')')
	return b.String()
}

// WriteConstrainedWholeNumber writes v-lb in the minimum number of bits that
// spans lb..ub (X.691 10.5, unaligned).
func WriteConstrainedWholeNumber(w *bitstream.Writer, v, lb, ub int64) error {
	if lb > ub {
		return errors.InvalidArgument(errors.PhaseEncode, "empty range %d..%d", lb, ub)
	}
	if v < lb || v > ub {
		return errors.OutOfRange(errors.PhaseEncode, v, lb, ub)
	}
	return w.WriteBits(uint64(v)-uint64(lb), bound.Width(bound.Span(lb, ub)))
}

// ReadConstrainedWholeNumber is the inverse of WriteConstrainedWholeNumber.
// Bit patterns above ub are rejected.
func ReadConstrainedWholeNumber(r *bitstream.Reader, lb, ub int64) (int64, error) {
	if lb > ub {
		return 0, errors.InvalidArgument(errors.PhaseDecode, "empty range %d..%d", lb, ub)
	}
	span := bound.Span(lb, ub)
	pos := r.Pos()
	raw, err := r.ReadBits(bound.Width(span))
	if err != nil {
		return 0, err
	}
	if raw > span {
		e := errors.OutOfRange(errors.PhaseDecode, fmt.Sprintf("%d+%d", lb, raw), lb, ub)
		e.BitPos = pos
		return 0, e
	}
	return int64(uint64(lb) + raw), nil
}

// writeNonNegativeOctets writes v as a length-prefixed minimal unsigned
// integer, the semi-constrained form.
func writeNonNegativeOctets(w *bitstream.Writer, v uint64) error {
	n := bound.UnsignedOctets(v)
	if err := WriteLengthDeterminant(w, n); err != nil {
		return err
	}
	return w.WriteBits(v, n*8)
}

func readNonNegativeOctets(r *bitstream.Reader) (uint64, error) {
	pos := r.Pos()
	n, err := ReadLengthDeterminant(r)
	if err != nil {
		return 0, err
	}
	if n == 0 {
		e := errors.InvalidData(errors.PhaseDecode, "zero-length integer")
		e.BitPos = pos
		return 0, e
	}
	if n > 8 {
		e := errors.Overflow(errors.PhaseDecode, fmt.Sprintf("%d octets", n), "uint64")
		e.BitPos = pos
		return 0, e
	}
	return r.ReadBits(n * 8)
}

// WriteSemiConstrainedWholeNumber writes v-lb as a length-prefixed minimal
// unsigned integer (X.691 10.7).
func WriteSemiConstrainedWholeNumber(w *bitstream.Writer, v, lb int64) error {
	if v < lb {
		return errors.OutOfRange(errors.PhaseEncode, v, lb, "MAX")
	}
	return writeNonNegativeOctets(w, uint64(v)-uint64(lb))
}

// ReadSemiConstrainedWholeNumber is the inverse of
// WriteSemiConstrainedWholeNumber.
func ReadSemiConstrainedWholeNumber(r *bitstream.Reader, lb int64) (int64, error) {
	pos := r.Pos()
	raw, err := readNonNegativeOctets(r)
	if err != nil {
		return 0, err
	}
	if raw > bound.MaxAbove(lb) {
		e := errors.Overflow(errors.PhaseDecode, fmt.Sprintf("%d+%d", lb, raw), "int64")
		e.BitPos = pos
		return 0, e
	}
	return int64(uint64(lb) + raw), nil
}

// WriteUnconstrainedWholeNumber writes v as a length-prefixed minimal two's
// complement integer (X.691 10.8).
func WriteUnconstrainedWholeNumber(w *bitstream.Writer, v int64) error {
	n := bound.SignedOctets(v)
	if err := WriteLengthDeterminant(w, n); err != nil {
		return err
	}
	return w.WriteBits(uint64(v), n*8)
}

// ReadUnconstrainedWholeNumber is the inverse of WriteUnconstrainedWholeNumber.
func ReadUnconstrainedWholeNumber(r *bitstream.Reader) (int64, error) {
	pos := r.Pos()
	n, err := ReadLengthDeterminant(r)
	if err != nil {
		return 0, err
	}
	if n == 0 {
		e := errors.InvalidData(errors.PhaseDecode, "zero-length integer")
		e.BitPos = pos
		return 0, e
	}
	if n > 8 {
		e := errors.Overflow(errors.PhaseDecode, fmt.Sprintf("%d octets", n), "int64")
		e.BitPos = pos
		return 0, e
	}
	raw, err := r.ReadBits(n * 8)
	if err != nil {
		return 0, err
	}
	// sign-extend from n octets
	shift := uint(64 - n*8)
	return int64(raw<<shift) >> shift, nil
}

// WriteInteger encodes v under constraint c.
func WriteInteger(w *bitstream.Writer, v int64, c IntRange) error {
	if c.Extensible {
		if !c.Contains(v) {
			w.WriteBool(true)
			return WriteUnconstrainedWholeNumber(w, v)
		}
		w.WriteBool(false)
	}
	switch {
	case c.HasLb && c.HasUb:
		return WriteConstrainedWholeNumber(w, v, c.Lb, c.Ub)
	case c.HasLb:
		return WriteSemiConstrainedWholeNumber(w, v, c.Lb)
	case c.HasUb && v > c.Ub:
		return errors.OutOfRange(errors.PhaseEncode, v, "MIN", c.Ub)
	default:
		return WriteUnconstrainedWholeNumber(w, v)
	}
}

// ReadInteger decodes an INTEGER under constraint c. Values decoded from the
// extension form of an extensible constraint are returned without range
// checks.
func ReadInteger(r *bitstream.Reader, c IntRange) (int64, error) {
	if c.Extensible {
		ext, err := r.ReadBool()
		if err != nil {
			return 0, err
		}
		if ext {
			return ReadUnconstrainedWholeNumber(r)
		}
	}
	switch {
	case c.HasLb && c.HasUb:
		return ReadConstrainedWholeNumber(r, c.Lb, c.Ub)
	case c.HasLb:
		return ReadSemiConstrainedWholeNumber(r, c.Lb)
	default:
		pos := r.Pos()
		v, err := ReadUnconstrainedWholeNumber(r)
		if err != nil {
			return 0, err
		}
		if c.HasUb && v > c.Ub {
			e := errors.OutOfRange(errors.PhaseDecode, v, "MIN", c.Ub)
			e.BitPos = pos
			return 0, e
		}
		return v, nil
	}
}

// WriteBool writes a BOOLEAN as one bit.
func WriteBool(w *bitstream.Writer, b bool) {
	w.WriteBool(b)
}

// ReadBool reads a BOOLEAN.
func ReadBool(r *bitstream.Reader) (bool, error) {
	return r.ReadBool()
}

// WriteNull writes a NULL, which occupies no bits.
func WriteNull(*bitstream.Writer) {}

// ReadNull reads a NULL.
func ReadNull(*bitstream.Reader) error { return nil }

// WriteNormallySmall writes a normally small non-negative whole number
// (X.691 10.6), used for extension indices.
func WriteNormallySmall(w *bitstream.Writer, n uint64) error {
	if n <= 63 {
		w.WriteBool(false)
		return w.WriteBits(n, 6)
	}
	w.WriteBool(true)
	return writeNonNegativeOctets(w, n)
}

// ReadNormallySmall is the inverse of WriteNormallySmall.
func ReadNormallySmall(r *bitstream.Reader) (uint64, error) {
	large, err := r.ReadBool()
	if err != nil {
		return 0, err
	}
	if !large {
		return r.ReadBits(6)
	}
	return readNonNegativeOctets(r)
}
