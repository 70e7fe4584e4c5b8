package per

import (
	"bytes"
	"unicode/utf8"

	"github.com/ranforge/asn1per/bitstream"
	"github.com/ranforge/asn1per/errors"
)

// BitString is a BIT STRING value. Bits are stored MSB first in Bytes; bits
// past BitLength are ignored on encode and zero after decode.
type BitString struct {
	Bytes     []byte
	BitLength int
}

// WriteBitString writes b under size constraint s (counted in bits).
func WriteBitString(w *bitstream.Writer, b BitString, s SizeRange) error {
	if b.BitLength < 0 || b.BitLength > len(b.Bytes)*8 {
		return errors.InvalidArgument(errors.PhaseEncode, "bit length %d with %d bytes", b.BitLength, len(b.Bytes))
	}
	if err := WriteLength(w, b.BitLength, s); err != nil {
		return err
	}
	return w.WriteBitsFrom(b.Bytes, b.BitLength)
}

// ReadBitString reads a BIT STRING under size constraint s.
func ReadBitString(r *bitstream.Reader, s SizeRange) (BitString, error) {
	n, err := ReadLength(r, s)
	if err != nil {
		return BitString{}, err
	}
	data, err := r.ReadBitsInto(n)
	if err != nil {
		return BitString{}, err
	}
	return BitString{Bytes: data, BitLength: n}, nil
}

// WriteOctetString writes an OCTET STRING under size constraint s.
func WriteOctetString(w *bitstream.Writer, data []byte, s SizeRange) error {
	if err := WriteLength(w, len(data), s); err != nil {
		return err
	}
	w.WriteBytes(data)
	return nil
}

// ReadOctetString reads an OCTET STRING under size constraint s. The result
// does not alias the input.
func ReadOctetString(r *bitstream.Reader, s SizeRange) ([]byte, error) {
	n, err := ReadLength(r, s)
	if err != nil {
		return nil, err
	}
	data, err := r.ReadBytes(n)
	if err != nil {
		return nil, err
	}
	if r.Aligned() {
		return bytes.Clone(data), nil
	}
	return data, nil
}

// Alphabet is the character set of a known-multiplier string type. In the
// unaligned variant every character of these types fits 7 bits and is
// encoded as its own code, without re-indexing.
type Alphabet struct {
	name  string
	valid func(c byte) bool
}

const charBits = 7

var (
	// PrintableAlphabet is the PrintableString character set.
	PrintableAlphabet = Alphabet{name: "PrintableString", valid: isPrintable}
	// VisibleAlphabet is the VisibleString (ISO646String) character set.
	VisibleAlphabet = Alphabet{name: "VisibleString", valid: func(c byte) bool { return c >= 0x20 && c <= 0x7e }}
	// IA5Alphabet is the IA5String character set.
	IA5Alphabet = Alphabet{name: "IA5String", valid: func(c byte) bool { return c <= 0x7f }}
)

func isPrintable(c byte) bool {
	switch {
	case c >= 'A' && c <= 'Z', c >= 'a' && c <= 'z', c >= '0' && c <= '9':
		return true
	}
	switch c {
	case ' ', '\'', '(', ')', '+', ',', '-', '.', '/', ':', '=', '?':
		return true
	}
	return false
}

// Validate checks that every character of s belongs to the alphabet.
func (a Alphabet) Validate(phase errors.Phase, s string) error {
	for i := 0; i < len(s); i++ {
		if !a.valid(s[i]) {
			c, _ := utf8.DecodeRuneInString(s[i:])
			return errors.InvalidChar(phase, a.name, c, i)
		}
	}
	return nil
}

// WriteKnownMultiplierString writes s as a string of alphabet a under size
// constraint sz (counted in characters).
func WriteKnownMultiplierString(w *bitstream.Writer, s string, a Alphabet, sz SizeRange) error {
	if err := a.Validate(errors.PhaseEncode, s); err != nil {
		return err
	}
	if err := WriteLength(w, len(s), sz); err != nil {
		return err
	}
	for i := 0; i < len(s); i++ {
		if err := w.WriteBits(uint64(s[i]), charBits); err != nil {
			return err
		}
	}
	return nil
}

// ReadKnownMultiplierString reads a string written by
// WriteKnownMultiplierString and rejects characters outside a.
func ReadKnownMultiplierString(r *bitstream.Reader, a Alphabet, sz SizeRange) (string, error) {
	n, err := ReadLength(r, sz)
	if err != nil {
		return "", err
	}
	if n > r.Remaining()/charBits {
		return "", errors.Underflow(r.Pos(), n*charBits, r.Remaining())
	}
	buf := make([]byte, n)
	for i := range buf {
		pos := r.Pos()
		v, _ := r.ReadBits(charBits)
		c := byte(v)
		if !a.valid(c) {
			e := errors.InvalidChar(errors.PhaseDecode, a.name, rune(c), i)
			e.BitPos = pos
			return "", e
		}
		buf[i] = c
	}
	return string(buf), nil
}

// WritePrintableString writes a PrintableString.
func WritePrintableString(w *bitstream.Writer, s string, sz SizeRange) error {
	return WriteKnownMultiplierString(w, s, PrintableAlphabet, sz)
}

// ReadPrintableString reads a PrintableString.
func ReadPrintableString(r *bitstream.Reader, sz SizeRange) (string, error) {
	return ReadKnownMultiplierString(r, PrintableAlphabet, sz)
}

// WriteVisibleString writes a VisibleString.
func WriteVisibleString(w *bitstream.Writer, s string, sz SizeRange) error {
	return WriteKnownMultiplierString(w, s, VisibleAlphabet, sz)
}

// ReadVisibleString reads a VisibleString.
func ReadVisibleString(r *bitstream.Reader, sz SizeRange) (string, error) {
	return ReadKnownMultiplierString(r, VisibleAlphabet, sz)
}

// WriteIA5String writes an IA5String.
func WriteIA5String(w *bitstream.Writer, s string, sz SizeRange) error {
	return WriteKnownMultiplierString(w, s, IA5Alphabet, sz)
}

// ReadIA5String reads an IA5String.
func ReadIA5String(r *bitstream.Reader, sz SizeRange) (string, error) {
	return ReadKnownMultiplierString(r, IA5Alphabet, sz)
}

// WriteUTF8String writes a UTF8String. Its size constraint is not PER-visible,
// so the octet count always uses the unconstrained length form.
func WriteUTF8String(w *bitstream.Writer, s string) error {
	if !utf8.ValidString(s) {
		return errors.InvalidData(errors.PhaseEncode, "invalid UTF-8 in UTF8String")
	}
	if err := WriteLengthDeterminant(w, len(s)); err != nil {
		return err
	}
	w.WriteBytes([]byte(s))
	return nil
}

// ReadUTF8String reads a UTF8String.
func ReadUTF8String(r *bitstream.Reader) (string, error) {
	pos := r.Pos()
	n, err := ReadLengthDeterminant(r)
	if err != nil {
		return "", err
	}
	data, err := r.ReadBytes(n)
	if err != nil {
		return "", err
	}
	if !utf8.Valid(data) {
		e := errors.InvalidData(errors.PhaseDecode, "invalid UTF-8 in UTF8String")
		e.BitPos = pos
		return "", e
	}
	return string(data), nil
}
