package per

import (
	"github.com/ranforge/asn1per/bitstream"
)

// EncodeFunc writes one value's bits.
type EncodeFunc func(w *bitstream.Writer) error

// DecodeFunc reads one value's bits.
type DecodeFunc func(r *bitstream.Reader) error

// WriteOpenType encodes body into its own octet-aligned buffer and writes it
// as a length-prefixed octet string (X.691 11.2). An empty body becomes a
// single zero octet.
func WriteOpenType(w *bitstream.Writer, body EncodeFunc) error {
	sub := bitstream.NewWriter(nil)
	if body != nil {
		if err := body(sub); err != nil {
			return err
		}
	}
	if sub.BitLen() == 0 {
		sub.WriteBytes([]byte{0})
	}
	sub.Align()
	return WriteOpenTypeBytes(w, sub.Bytes())
}

// WriteOpenTypeBytes writes an already encoded open type payload.
func WriteOpenTypeBytes(w *bitstream.Writer, payload []byte) error {
	if err := WriteLengthDeterminant(w, len(payload)); err != nil {
		return err
	}
	w.WriteBytes(payload)
	return nil
}

// ReadOpenType returns the payload octets of an open type. The result may
// alias the reader's input.
func ReadOpenType(r *bitstream.Reader) ([]byte, error) {
	n, err := ReadLengthDeterminant(r)
	if err != nil {
		return nil, err
	}
	return r.ReadBytes(n)
}

// SkipOpenType skips an open type and returns its payload size in octets.
func SkipOpenType(r *bitstream.Reader) (int, error) {
	n, err := ReadLengthDeterminant(r)
	if err != nil {
		return 0, err
	}
	if err := r.SkipBits(n * 8); err != nil {
		return 0, err
	}
	return n, nil
}

// DecodeOpenType decodes an open type's payload with body, using a child
// reader bounded to the payload octets.
func DecodeOpenType(r *bitstream.Reader, body DecodeFunc) error {
	payload, err := ReadOpenType(r)
	if err != nil {
		return err
	}
	return body(r.Child(payload))
}
