package per

import (
	"github.com/ranforge/asn1per/bitstream"
	"github.com/ranforge/asn1per/errors"
)

// Marshaler is implemented by schema types that encode themselves.
type Marshaler interface {
	EncodePER(w *bitstream.Writer) error
}

// Unmarshaler is implemented by schema types that decode themselves.
type Unmarshaler interface {
	DecodePER(r *bitstream.Reader) error
}

// Message is a schema type usable as a complete encoding.
type Message interface {
	Marshaler
	Unmarshaler
}

// Marshal returns the complete encoding of v: its bits padded with zeros to
// a whole octet, or a single zero octet when v encodes to no bits.
func Marshal(v Marshaler) ([]byte, error) {
	return AppendMarshal(nil, v)
}

// AppendMarshal appends the complete encoding of v to dst.
func AppendMarshal(dst []byte, v Marshaler) ([]byte, error) {
	if v == nil {
		return nil, errors.NotInitialized("message")
	}
	w := bitstream.NewWriter(dst)
	start := w.BitLen()
	if err := v.EncodePER(w); err != nil {
		return nil, err
	}
	if w.BitLen() == start {
		w.WriteBytes([]byte{0})
	}
	w.Align()
	return w.Bytes(), nil
}

// DecodeOption configures Unmarshal and Decode.
type DecodeOption func(*decodeConfig)

type decodeConfig struct {
	maxDepth int
	strict   bool
}

// WithMaxDepth limits how deeply choices, lists and boxes may nest.
func WithMaxDepth(n int) DecodeOption {
	return func(c *decodeConfig) {
		c.maxDepth = n
	}
}

// WithStrictTrailing rejects input that continues past the octet holding the
// last decoded bit, or whose padding bits are not zero.
func WithStrictTrailing() DecodeOption {
	return func(c *decodeConfig) {
		c.strict = true
	}
}

// Unmarshal decodes data into v. On error v may hold a partially decoded
// value and must not be used.
func Unmarshal(data []byte, v Unmarshaler, opts ...DecodeOption) error {
	if v == nil {
		return errors.New(errors.PhaseDecode, errors.KindNotInitialized).
			Type("message").
			Detail("nil target").
			Build()
	}
	cfg := decodeConfig{maxDepth: bitstream.DefaultMaxDepth}
	for _, opt := range opts {
		opt(&cfg)
	}

	r := bitstream.NewReader(data)
	r.SetMaxDepth(cfg.maxDepth)
	if err := v.DecodePER(r); err != nil {
		return err
	}
	if cfg.strict {
		return checkTrailing(r)
	}
	return nil
}

// Decode decodes data into a fresh value. It returns nil on error, so a
// half-built value never escapes.
func Decode[T any, PT interface {
	*T
	Unmarshaler
}](data []byte, opts ...DecodeOption) (*T, error) {
	v := PT(new(T))
	if err := Unmarshal(data, v, opts...); err != nil {
		return nil, err
	}
	return (*T)(v), nil
}

func checkTrailing(r *bitstream.Reader) error {
	// the single zero octet of an empty encoding
	if r.Pos() == 0 && r.Len() == 8 && r.Remaining() == 8 {
		if v, _ := r.ReadBits(8); v == 0 {
			return nil
		}
		return errors.New(errors.PhaseDecode, errors.KindTrailingData).
			At(0).
			Detail("non-zero octet after empty message").
			Build()
	}
	pos := r.Pos()
	pad := (8 - pos&7) & 7
	if pad > r.Remaining() {
		pad = r.Remaining()
	}
	if v, _ := r.ReadBits(pad); v != 0 {
		return errors.New(errors.PhaseDecode, errors.KindTrailingData).
			At(pos).
			Detail("non-zero padding bits").
			Build()
	}
	if r.Remaining() > 0 {
		return errors.New(errors.PhaseDecode, errors.KindTrailingData).
			At(r.Pos()).
			Detail("%d octets after message end", (r.Remaining()+7)/8).
			Build()
	}
	return nil
}
