package msgs

import (
	"github.com/ranforge/asn1per/bitstream"
	"github.com/ranforge/asn1per/errors"
	"github.com/ranforge/asn1per/per"
)

const maxNeighbours = 16

var (
	servedCellSeq   = per.Sequence{Extensible: true}
	cellNameSize    = per.SizeBetween(1, 150)
	tacSize         = per.FixedSize(3)
	bandRange       = per.Constrained(1, 1024)
	barringGroupSeq = per.Sequence{}
	neighboursSize  = per.SizeBetween(1, maxNeighbours)
)

// ServedCell describes one cell served by a node.
type ServedCell struct {
	PLMN   PLMNIdentity   `yaml:"plmn"`
	CellID NRCellIdentity `yaml:"cellId"`
	TAC    *TAC           `yaml:"tac,omitempty"`
	Name   string         `yaml:"name,omitempty"` // empty when absent

	// first extension group
	Band *int64 `yaml:"band,omitempty"`

	// second extension group
	Barring *CellBarring `yaml:"barring,omitempty"`
}

// CellBarring is the second extension group of ServedCell.
type CellBarring struct {
	Barred     bool             `yaml:"barred"`
	Neighbours []NRCellIdentity `yaml:"neighbours,omitempty"`
}

func (c *ServedCell) extensions() per.Extensions {
	return per.Extensions{
		{Present: c.Band != nil, Encode: func(w *bitstream.Writer) error {
			return errors.WithField(per.WriteInteger(w, *c.Band, bandRange), "band")
		}},
		{Present: c.Barring != nil, Encode: c.Barring.encode},
	}
}

// EncodePER implements per.Marshaler.
func (c *ServedCell) EncodePER(w *bitstream.Writer) error {
	ext := c.extensions()
	if err := servedCellSeq.EncodePreamble(w, ext.Any(), c.TAC != nil, c.Name != ""); err != nil {
		return err
	}
	if err := c.PLMN.encode(w); err != nil {
		return errors.WithField(err, "plmn")
	}
	if err := c.CellID.encode(w); err != nil {
		return errors.WithField(err, "cellId")
	}
	if c.TAC != nil {
		if err := per.WriteOctetString(w, c.TAC[:], tacSize); err != nil {
			return errors.WithField(err, "tac")
		}
	}
	if c.Name != "" {
		if err := per.WritePrintableString(w, c.Name, cellNameSize); err != nil {
			return errors.WithField(err, "name")
		}
	}
	if ext.Any() {
		return ext.Encode(w)
	}
	return nil
}

// DecodePER implements per.Unmarshaler.
func (c *ServedCell) DecodePER(r *bitstream.Reader) error {
	*c = ServedCell{}
	pre, err := servedCellSeq.DecodePreamble(r, 2)
	if err != nil {
		return err
	}
	if c.PLMN, err = decodePLMNIdentity(r); err != nil {
		return errors.WithField(err, "plmn")
	}
	if c.CellID, err = decodeNRCellIdentity(r); err != nil {
		return errors.WithField(err, "cellId")
	}
	if pre.Present(0) {
		b, err := per.ReadOctetString(r, tacSize)
		if err != nil {
			return errors.WithField(err, "tac")
		}
		c.TAC = new(TAC)
		copy(c.TAC[:], b)
	}
	if pre.Present(1) {
		if c.Name, err = per.ReadPrintableString(r, cellNameSize); err != nil {
			return errors.WithField(err, "name")
		}
	}
	if !pre.Extended {
		return nil
	}
	return per.DecodeExtensions(r,
		func(r *bitstream.Reader) error {
			v, err := per.ReadInteger(r, bandRange)
			if err != nil {
				return errors.WithField(err, "band")
			}
			c.Band = &v
			return nil
		},
		func(r *bitstream.Reader) error {
			c.Barring = new(CellBarring)
			return c.Barring.decode(r)
		},
	)
}

func (b *CellBarring) encode(w *bitstream.Writer) error {
	if err := barringGroupSeq.EncodePreamble(w, false, len(b.Neighbours) > 0); err != nil {
		return err
	}
	per.WriteBool(w, b.Barred)
	if len(b.Neighbours) > 0 {
		err := per.WriteSequenceOf(w, b.Neighbours, neighboursSize, func(w *bitstream.Writer, id NRCellIdentity) error {
			return id.encode(w)
		})
		if err != nil {
			return errors.WithField(err, "neighbours")
		}
	}
	return nil
}

func (b *CellBarring) decode(r *bitstream.Reader) error {
	pre, err := barringGroupSeq.DecodePreamble(r, 1)
	if err != nil {
		return err
	}
	if b.Barred, err = per.ReadBool(r); err != nil {
		return errors.WithField(err, "barred")
	}
	if pre.Present(0) {
		b.Neighbours, err = per.ReadSequenceOf(r, neighboursSize, nrCellIdentityBits, decodeNRCellIdentity)
		if err != nil {
			return errors.WithField(err, "neighbours")
		}
	}
	return nil
}
