package per

import (
	"bytes"

	"go.uber.org/zap"

	"github.com/ranforge/asn1per/bitstream"
	"github.com/ranforge/asn1per/errors"
)

// Choice describes the tag space of a CHOICE: Root alternatives before the
// extension marker and, when Extensible, Extensions alternatives after it
// that this schema knows.
type Choice struct {
	Root       int
	Extensions int
	Extensible bool
}

// UnknownAlternative holds an extension alternative that the running schema
// does not define. Index is the absolute alternative index (Root plus the
// extension index) and Payload the open type octets. Re-encoding it with
// EncodeUnknownAlternative reproduces the original bits.
type UnknownAlternative struct {
	Index   int
	Payload []byte
}

// EncodeChoice writes the index of the active alternative followed by its
// body. Root alternatives are encoded inline; extension alternatives are
// wrapped in an open type. A nil body encodes a NULL alternative.
func EncodeChoice(w *bitstream.Writer, c Choice, index int, body EncodeFunc) error {
	if c.Root < 1 {
		return errors.InvalidArgument(errors.PhaseEncode, "choice with %d root alternatives", c.Root)
	}
	if index < 0 {
		return errors.InvalidChoice(errors.PhaseEncode, index, c.Root+c.Extensions)
	}
	if index < c.Root {
		if c.Extensible {
			w.WriteBool(false)
		}
		if err := WriteConstrainedWholeNumber(w, int64(index), 0, int64(c.Root-1)); err != nil {
			return err
		}
		if body == nil {
			return nil
		}
		return body(w)
	}
	if !c.Extensible {
		return errors.InvalidChoice(errors.PhaseEncode, index, c.Root)
	}
	w.WriteBool(true)
	if err := WriteNormallySmall(w, uint64(index-c.Root)); err != nil {
		return err
	}
	return WriteOpenType(w, body)
}

// EncodeUnknownAlternative re-encodes an alternative captured by DecodeChoice.
func EncodeUnknownAlternative(w *bitstream.Writer, c Choice, u *UnknownAlternative) error {
	if u == nil {
		return errors.NotInitialized("CHOICE")
	}
	if !c.Extensible || u.Index < c.Root {
		return errors.InvalidChoice(errors.PhaseEncode, u.Index, c.Root)
	}
	w.WriteBool(true)
	if err := WriteNormallySmall(w, uint64(u.Index-c.Root)); err != nil {
		return err
	}
	return WriteOpenTypeBytes(w, u.Payload)
}

// DecodeChoice reads a CHOICE index and calls body with the index of a known
// alternative. Extension alternatives reach body through a reader bounded to
// their open type payload.
//
// An extension index this schema does not know is not an error: its payload
// is skipped and returned as an UnknownAlternative, and body is not called.
// An out-of-range root index is always an error.
func DecodeChoice(r *bitstream.Reader, c Choice, body func(index int, r *bitstream.Reader) error) (*UnknownAlternative, error) {
	if c.Root < 1 {
		return nil, errors.InvalidArgument(errors.PhaseDecode, "choice with %d root alternatives", c.Root)
	}
	if err := r.Descend(); err != nil {
		return nil, err
	}
	defer r.Ascend()

	ext := false
	if c.Extensible {
		var err error
		if ext, err = r.ReadBool(); err != nil {
			return nil, err
		}
	}

	pos := r.Pos()
	if !ext {
		idx, err := ReadConstrainedWholeNumber(r, 0, int64(c.Root-1))
		if err != nil {
			if errors.KindOf(err) == errors.KindOutOfRange {
				e := errors.InvalidChoice(errors.PhaseDecode, c.Root, c.Root)
				e.BitPos = pos
				e.Detail = "index beyond closed alternative list"
				return nil, e
			}
			return nil, err
		}
		return nil, body(int(idx), r)
	}

	extIdx, err := ReadNormallySmall(r)
	if err != nil {
		return nil, err
	}
	if extIdx > uint64(maxOrdinal-c.Root) {
		e := errors.Overflow(errors.PhaseDecode, extIdx, "CHOICE index")
		e.BitPos = pos
		return nil, e
	}
	index := c.Root + int(extIdx)

	payload, err := ReadOpenType(r)
	if err != nil {
		return nil, err
	}
	if int(extIdx) < c.Extensions {
		return nil, body(index, r.Child(payload))
	}

	if debugEnabled() {
		Logger().Debug("skipped unknown choice alternative",
			zap.Int("index", index),
			zap.Int("octets", len(payload)))
	}
	return &UnknownAlternative{Index: index, Payload: bytes.Clone(payload)}, nil
}
