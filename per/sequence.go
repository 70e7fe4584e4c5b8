package per

import (
	"github.com/ranforge/asn1per/bitstream"
	"github.com/ranforge/asn1per/errors"
)

// Sequence describes the PER-visible shape of a SEQUENCE header.
type Sequence struct {
	Extensible bool
}

// Preamble is the decoded header of a SEQUENCE: the extension bit and one
// presence flag per OPTIONAL or DEFAULT field in declaration order.
type Preamble struct {
	Extended bool
	present  []bool
}

// Present reports whether optional field i was encoded.
func (p Preamble) Present(i int) bool {
	return i >= 0 && i < len(p.present) && p.present[i]
}

// EncodePreamble writes the extension bit, if the sequence is extensible, and
// one presence bit per optional field. ext must come from the extension
// builder so the bit matches the additions written later.
func (s Sequence) EncodePreamble(w *bitstream.Writer, ext bool, present ...bool) error {
	if s.Extensible {
		w.WriteBool(ext)
	} else if ext {
		return errors.InvalidArgument(errors.PhaseEncode, "extension additions on a non-extensible sequence")
	}
	for _, p := range present {
		w.WriteBool(p)
	}
	return nil
}

// DecodePreamble reads the header written by EncodePreamble.
func (s Sequence) DecodePreamble(r *bitstream.Reader, optional int) (Preamble, error) {
	var p Preamble
	need := optional
	if s.Extensible {
		need++
	}
	if err := r.Require(need); err != nil {
		return p, err
	}
	if s.Extensible {
		p.Extended, _ = r.ReadBool()
	}
	if optional > 0 {
		p.present = make([]bool, optional)
		for i := range p.present {
			p.present[i], _ = r.ReadBool()
		}
	}
	return p, nil
}
