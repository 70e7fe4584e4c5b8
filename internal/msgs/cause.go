package msgs

import (
	"encoding/hex"

	"github.com/ranforge/asn1per/bitstream"
	"github.com/ranforge/asn1per/errors"
	"github.com/ranforge/asn1per/per"
)

// Cause is the CHOICE of failure causes. Its implementations are
// CauseRadioNetwork, CauseTransport, CauseMisc and UnknownCause.
type Cause interface {
	causeIndex() int
	causeName() string
	encodeCause(w *bitstream.Writer) error
}

var causeChoice = per.Choice{Root: 2, Extensions: 1, Extensible: true}

const (
	causeRadioNetwork = iota
	causeTransport
	causeMisc
)

func (CauseRadioNetwork) causeIndex() int { return causeRadioNetwork }
func (CauseTransport) causeIndex() int    { return causeTransport }
func (CauseMisc) causeIndex() int         { return causeMisc }

func (CauseRadioNetwork) causeName() string { return "radioNetwork" }
func (CauseTransport) causeName() string    { return "transport" }
func (CauseMisc) causeName() string         { return "misc" }

func (c CauseRadioNetwork) encodeCause(w *bitstream.Writer) error {
	return per.WriteEnumerated(w, int(c), radioNetworkEnum)
}

func (c CauseTransport) encodeCause(w *bitstream.Writer) error {
	return per.WriteEnumerated(w, int(c), transportEnum)
}

func (c CauseMisc) encodeCause(w *bitstream.Writer) error {
	return per.WriteEnumerated(w, int(c), miscEnum)
}

// UnknownCause is a Cause alternative added by a later revision. It
// re-encodes to the bits it was decoded from.
type UnknownCause struct {
	per.UnknownAlternative
}

func (u UnknownCause) causeIndex() int   { return u.Index }
func (u UnknownCause) causeName() string { return "unknown" }

func (u UnknownCause) encodeCause(*bitstream.Writer) error {
	return errors.InvalidChoice(errors.PhaseEncode, u.Index, causeChoice.Root+causeChoice.Extensions)
}

func (u UnknownCause) MarshalYAML() (any, error) {
	return map[string]any{
		"index":   u.Index,
		"payload": hex.EncodeToString(u.Payload),
	}, nil
}

// EncodeCause writes c as a Cause CHOICE.
func EncodeCause(w *bitstream.Writer, c Cause) error {
	switch v := c.(type) {
	case nil:
		return errors.NotInitialized("Cause")
	case UnknownCause:
		return per.EncodeUnknownAlternative(w, causeChoice, &v.UnknownAlternative)
	case *UnknownCause:
		return per.EncodeUnknownAlternative(w, causeChoice, &v.UnknownAlternative)
	}
	if err := per.EncodeChoice(w, causeChoice, c.causeIndex(), c.encodeCause); err != nil {
		return errors.WithField(err, c.causeName())
	}
	return nil
}

// DecodeCause reads a Cause CHOICE.
func DecodeCause(r *bitstream.Reader) (Cause, error) {
	var c Cause
	u, err := per.DecodeChoice(r, causeChoice, func(index int, r *bitstream.Reader) error {
		switch index {
		case causeRadioNetwork:
			v, err := per.ReadEnumerated(r, radioNetworkEnum)
			c = CauseRadioNetwork(v)
			return errors.WithField(err, "radioNetwork")
		case causeTransport:
			v, err := per.ReadEnumerated(r, transportEnum)
			c = CauseTransport(v)
			return errors.WithField(err, "transport")
		case causeMisc:
			v, err := per.ReadEnumerated(r, miscEnum)
			c = CauseMisc(v)
			return errors.WithField(err, "misc")
		}
		return errors.InvalidChoice(errors.PhaseDecode, index, causeChoice.Root+causeChoice.Extensions)
	})
	if err != nil {
		return nil, err
	}
	if u != nil {
		return UnknownCause{*u}, nil
	}
	return c, nil
}

// causeYAML renders c with its alternative name as the key.
func causeYAML(c Cause) any {
	if u, ok := c.(UnknownCause); ok {
		y, _ := u.MarshalYAML()
		return map[string]any{"unknown": y}
	}
	return map[string]any{c.causeName(): c}
}
