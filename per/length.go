package per

import (
	"strconv"

	"github.com/ranforge/asn1per/bitstream"
	"github.com/ranforge/asn1per/errors"
)

// Length determinant limits (X.691 10.9). Counts of 16K and above need
// fragmentation, which this package does not produce or accept.
const (
	maxShortLength = 127
	maxLongLength  = 16383

	// sizes with an upper bound at or above this use the general length form
	constrainedLengthLimit = 65536
)

// SizeRange is the PER-visible SIZE constraint of a string or SEQUENCE OF.
type SizeRange struct {
	Lb, Ub     int
	HasUb      bool
	Extensible bool
}

// FixedSize returns SIZE (n).
func FixedSize(n int) SizeRange {
	return SizeRange{Lb: n, Ub: n, HasUb: true}
}

// SizeBetween returns SIZE (lb..ub).
func SizeBetween(lb, ub int) SizeRange {
	return SizeRange{Lb: lb, Ub: ub, HasUb: true}
}

// SizeAtLeast returns SIZE (lb..MAX); SizeAtLeast(0) is an unconstrained size.
func SizeAtLeast(lb int) SizeRange {
	return SizeRange{Lb: lb}
}

// Extend marks the size constraint as extensible: SIZE (lb..ub, ...).
func (s SizeRange) Extend() SizeRange {
	s.Extensible = true
	return s
}

// Contains reports whether n is inside the root size range.
func (s SizeRange) Contains(n int) bool {
	return n >= s.Lb && (!s.HasUb || n <= s.Ub)
}

// Fixed reports whether the size is a single value encoded without a length.
func (s SizeRange) Fixed() bool {
	return s.HasUb && s.Lb == s.Ub && s.Ub < constrainedLengthLimit
}

func (s SizeRange) ubString() string {
	if !s.HasUb {
		return "MAX"
	}
	return strconv.Itoa(s.Ub)
}

// WriteLengthDeterminant writes an unconstrained length (X.691 10.9.3.6-7):
// one octet below 128, two octets below 16K.
func WriteLengthDeterminant(w *bitstream.Writer, n int) error {
	switch {
	case n < 0:
		return errors.InvalidArgument(errors.PhaseEncode, "negative length %d", n)
	case n <= maxShortLength:
		return w.WriteBits(uint64(n), 8)
	case n <= maxLongLength:
		return w.WriteBits(0x8000|uint64(n), 16)
	default:
		return errors.Unsupported(errors.PhaseEncode, "length "+strconv.Itoa(n)+" requires fragmentation")
	}
}

// ReadLengthDeterminant is the inverse of WriteLengthDeterminant.
func ReadLengthDeterminant(r *bitstream.Reader) (int, error) {
	pos := r.Pos()
	long, err := r.ReadBool()
	if err != nil {
		return 0, err
	}
	if !long {
		v, err := r.ReadBits(7)
		if err != nil {
			return 0, err
		}
		return int(v), nil
	}
	frag, err := r.ReadBool()
	if err != nil {
		return 0, err
	}
	if frag {
		e := errors.Unsupported(errors.PhaseDecode, "fragmented length")
		e.BitPos = pos
		return 0, e
	}
	v, err := r.ReadBits(14)
	if err != nil {
		return 0, err
	}
	return int(v), nil
}

// WriteNormallySmallLength writes a normally small length (X.691 10.9.3.4),
// used for the extension addition bitmap. n must be at least 1.
func WriteNormallySmallLength(w *bitstream.Writer, n int) error {
	if n < 1 {
		return errors.InvalidArgument(errors.PhaseEncode, "normally small length %d", n)
	}
	if n <= 64 {
		w.WriteBool(false)
		return w.WriteBits(uint64(n-1), 6)
	}
	w.WriteBool(true)
	return WriteLengthDeterminant(w, n)
}

// ReadNormallySmallLength is the inverse of WriteNormallySmallLength.
func ReadNormallySmallLength(r *bitstream.Reader) (int, error) {
	large, err := r.ReadBool()
	if err != nil {
		return 0, err
	}
	if !large {
		v, err := r.ReadBits(6)
		if err != nil {
			return 0, err
		}
		return int(v) + 1, nil
	}
	pos := r.Pos()
	n, err := ReadLengthDeterminant(r)
	if err != nil {
		return 0, err
	}
	if n < 1 {
		e := errors.InvalidData(errors.PhaseDecode, "zero normally small length")
		e.BitPos = pos
		return 0, e
	}
	return n, nil
}

// WriteLength writes the length of a string or SEQUENCE OF under s.
func WriteLength(w *bitstream.Writer, n int, s SizeRange) error {
	if s.Extensible {
		if !s.Contains(n) {
			w.WriteBool(true)
			return WriteLengthDeterminant(w, n)
		}
		w.WriteBool(false)
	} else if !s.Contains(n) {
		return errors.SizeBound(errors.PhaseEncode, n, s.Lb, s.ubString())
	}
	if s.HasUb && s.Ub < constrainedLengthLimit {
		if s.Lb == s.Ub {
			return nil
		}
		return WriteConstrainedWholeNumber(w, int64(n), int64(s.Lb), int64(s.Ub))
	}
	return WriteLengthDeterminant(w, n)
}

// ReadLength reads a length written by WriteLength. Lengths outside the root
// range are rejected unless they arrive in the extension form.
func ReadLength(r *bitstream.Reader, s SizeRange) (int, error) {
	if s.Extensible {
		ext, err := r.ReadBool()
		if err != nil {
			return 0, err
		}
		if ext {
			return ReadLengthDeterminant(r)
		}
	}
	pos := r.Pos()
	if s.HasUb && s.Ub < constrainedLengthLimit {
		if s.Lb == s.Ub {
			return s.Lb, nil
		}
		v, err := ReadConstrainedWholeNumber(r, int64(s.Lb), int64(s.Ub))
		if err != nil {
			if errors.KindOf(err) == errors.KindOutOfRange {
				e := errors.SizeBound(errors.PhaseDecode, s.Ub+1, s.Lb, s.ubString())
				e.BitPos = pos
				e.Detail = "length field exceeds " + s.ubString()
				return 0, e
			}
			return 0, err
		}
		return int(v), nil
	}
	n, err := ReadLengthDeterminant(r)
	if err != nil {
		return 0, err
	}
	if !s.Contains(n) {
		e := errors.SizeBound(errors.PhaseDecode, n, s.Lb, s.ubString())
		e.BitPos = pos
		return 0, e
	}
	return n, nil
}
