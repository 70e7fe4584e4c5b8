package per

import (
	"go.uber.org/zap"

	"github.com/ranforge/asn1per/bitstream"
	"github.com/ranforge/asn1per/errors"
)

// Enumerated describes an ENUMERATED type: Root options in the root list and,
// when Extensible, Extensions options known after the marker.
type Enumerated struct {
	Root       int
	Extensions int
	Extensible bool
}

// Known reports whether ordinal v names an option this schema declares.
// Decoding an extensible enumeration can yield ordinals beyond that set.
func (e Enumerated) Known(v int) bool {
	if v < 0 {
		return false
	}
	if v < e.Root {
		return true
	}
	return e.Extensible && v < e.Root+e.Extensions
}

// WriteEnumerated writes ordinal v. Root ordinals use a constrained whole
// number over 0..Root-1; extension ordinals use a normally small index.
func WriteEnumerated(w *bitstream.Writer, v int, e Enumerated) error {
	if e.Root < 1 {
		return errors.InvalidArgument(errors.PhaseEncode, "enumeration with %d root options", e.Root)
	}
	if v < 0 {
		return errors.OutOfRange(errors.PhaseEncode, v, 0, e.Root-1)
	}
	if e.Extensible {
		if v >= e.Root {
			w.WriteBool(true)
			return WriteNormallySmall(w, uint64(v-e.Root))
		}
		w.WriteBool(false)
	}
	return WriteConstrainedWholeNumber(w, int64(v), 0, int64(e.Root-1))
}

// ReadEnumerated reads an ordinal written by WriteEnumerated. For an
// extensible enumeration an unknown extension ordinal is returned as is;
// check it with Known.
func ReadEnumerated(r *bitstream.Reader, e Enumerated) (int, error) {
	if e.Root < 1 {
		return 0, errors.InvalidArgument(errors.PhaseDecode, "enumeration with %d root options", e.Root)
	}
	if e.Extensible {
		ext, err := r.ReadBool()
		if err != nil {
			return 0, err
		}
		if ext {
			pos := r.Pos()
			idx, err := ReadNormallySmall(r)
			if err != nil {
				return 0, err
			}
			if idx > uint64(maxOrdinal-e.Root) {
				ee := errors.Overflow(errors.PhaseDecode, idx, "ENUMERATED")
				ee.BitPos = pos
				return 0, ee
			}
			v := e.Root + int(idx)
			if !e.Known(v) && debugEnabled() {
				Logger().Debug("unknown enumerated extension",
					zap.Int("ordinal", v),
					zap.Int("known", e.Root+e.Extensions))
			}
			return v, nil
		}
	}
	v, err := ReadConstrainedWholeNumber(r, 0, int64(e.Root-1))
	return int(v), err
}

const maxOrdinal = 1<<31 - 1
