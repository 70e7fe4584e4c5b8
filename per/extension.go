package per

import (
	"strconv"

	"go.uber.org/zap"

	"github.com/ranforge/asn1per/bitstream"
	"github.com/ranforge/asn1per/errors"
)

// ExtensionGroup is one extension addition group of a SEQUENCE: the fields
// added by one protocol revision.
type ExtensionGroup struct {
	Present bool
	Encode  EncodeFunc
}

// Extensions collects the extension groups of a SEQUENCE value in declaration
// order. Build it from the field data first, pass Any to EncodePreamble, then
// call Encode after the root fields.
type Extensions []ExtensionGroup

// Any reports whether at least one group is present.
func (e Extensions) Any() bool {
	for _, g := range e {
		if g.Present {
			return true
		}
	}
	return false
}

// Encode writes the extension addition count, the presence bitmap and each
// present group as an open type. Trailing absent groups are not counted.
func (e Extensions) Encode(w *bitstream.Writer) error {
	last := -1
	for i, g := range e {
		if g.Present {
			last = i
		}
	}
	if last < 0 {
		return errors.InvalidArgument(errors.PhaseEncode, "no extension group present")
	}
	n := last + 1
	if err := WriteNormallySmallLength(w, n); err != nil {
		return err
	}
	for _, g := range e[:n] {
		w.WriteBool(g.Present)
	}
	for i, g := range e[:n] {
		if !g.Present {
			continue
		}
		if err := WriteOpenType(w, g.Encode); err != nil {
			return errors.WithField(err, groupName(i))
		}
	}
	return nil
}

// DecodeExtensions reads an extension region. known[i] decodes group i from a
// reader bounded to that group's octets; a nil entry, or any group beyond
// len(known), is skipped by its length so the stream stays in sync with
// whatever follows.
func DecodeExtensions(r *bitstream.Reader, known ...DecodeFunc) error {
	n, err := ReadNormallySmallLength(r)
	if err != nil {
		return err
	}
	if err := r.Require(n); err != nil {
		return err
	}
	present := make([]bool, n)
	for i := range present {
		present[i], _ = r.ReadBool()
	}
	for i, ok := range present {
		if !ok {
			continue
		}
		if i < len(known) && known[i] != nil {
			if err := DecodeOpenType(r, known[i]); err != nil {
				return errors.WithField(err, groupName(i))
			}
			continue
		}
		octets, err := SkipOpenType(r)
		if err != nil {
			return errors.WithField(err, groupName(i))
		}
		if debugEnabled() {
			Logger().Debug("skipped unknown extension group",
				zap.Int("index", i),
				zap.Int("octets", octets))
		}
	}
	return nil
}

func groupName(i int) string {
	return "ext" + strconv.Itoa(i+1)
}
