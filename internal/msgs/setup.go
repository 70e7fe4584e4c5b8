package msgs

import (
	"github.com/ranforge/asn1per/bitstream"
	"github.com/ranforge/asn1per/errors"
	"github.com/ranforge/asn1per/per"
)

const maxCells = 16

var (
	setupSeq         = per.Sequence{Extensible: true}
	transactionRange = per.Constrained(0, 255)
	nodeIDRange      = per.Constrained(0, 1<<32-1)
	servedCellsSize  = per.SizeBetween(1, maxCells)

	// preamble, PLMN, cell identity
	minServedCellBits = 3 + 24 + nrCellIdentityBits
)

// SetupRequest is sent by a node to announce itself and its cells.
type SetupRequest struct {
	TransactionID int64        `yaml:"transactionId"`
	NodeID        uint32       `yaml:"nodeId"`
	NodeName      string       `yaml:"nodeName,omitempty"`
	ServedCells   []ServedCell `yaml:"servedCells"`
	Criticality   Criticality  `yaml:"criticality"` // DEFAULT reject
}

// EncodePER implements per.Marshaler. Criticality is omitted when it equals
// its default.
func (m *SetupRequest) EncodePER(w *bitstream.Writer) error {
	if err := setupSeq.EncodePreamble(w, false, m.NodeName != "", m.Criticality != CriticalityReject); err != nil {
		return err
	}
	if err := per.WriteInteger(w, m.TransactionID, transactionRange); err != nil {
		return errors.WithField(err, "transactionId")
	}
	if err := per.WriteInteger(w, int64(m.NodeID), nodeIDRange); err != nil {
		return errors.WithField(err, "nodeId")
	}
	if m.NodeName != "" {
		if err := per.WriteUTF8String(w, m.NodeName); err != nil {
			return errors.WithField(err, "nodeName")
		}
	}
	err := per.WriteSequenceOf(w, m.ServedCells, servedCellsSize, func(w *bitstream.Writer, c ServedCell) error {
		return c.EncodePER(w)
	})
	if err != nil {
		return errors.WithField(err, "servedCells")
	}
	if m.Criticality != CriticalityReject {
		if err := m.Criticality.encode(w); err != nil {
			return errors.WithField(err, "criticality")
		}
	}
	return nil
}

// DecodePER implements per.Unmarshaler.
func (m *SetupRequest) DecodePER(r *bitstream.Reader) error {
	*m = SetupRequest{}
	pre, err := setupSeq.DecodePreamble(r, 2)
	if err != nil {
		return err
	}
	if m.TransactionID, err = per.ReadInteger(r, transactionRange); err != nil {
		return errors.WithField(err, "transactionId")
	}
	id, err := per.ReadInteger(r, nodeIDRange)
	if err != nil {
		return errors.WithField(err, "nodeId")
	}
	m.NodeID = uint32(id)
	if pre.Present(0) {
		if m.NodeName, err = per.ReadUTF8String(r); err != nil {
			return errors.WithField(err, "nodeName")
		}
	}
	m.ServedCells, err = per.ReadSequenceOf(r, servedCellsSize, minServedCellBits, func(r *bitstream.Reader) (ServedCell, error) {
		var c ServedCell
		err := c.DecodePER(r)
		return c, err
	})
	if err != nil {
		return errors.WithField(err, "servedCells")
	}
	if pre.Present(1) {
		if m.Criticality, err = decodeCriticality(r); err != nil {
			return errors.WithField(err, "criticality")
		}
	}
	if pre.Extended {
		return per.DecodeExtensions(r)
	}
	return nil
}

var errorIndicationSeq = per.Sequence{Extensible: true}

// ErrorIndication reports a failure to process a received message.
type ErrorIndication struct {
	TransactionID *int64
	Cause         Cause
	Criticality   *Criticality
}

// EncodePER implements per.Marshaler.
func (m *ErrorIndication) EncodePER(w *bitstream.Writer) error {
	err := errorIndicationSeq.EncodePreamble(w, false,
		m.TransactionID != nil, m.Cause != nil, m.Criticality != nil)
	if err != nil {
		return err
	}
	if m.TransactionID != nil {
		if err := per.WriteInteger(w, *m.TransactionID, transactionRange); err != nil {
			return errors.WithField(err, "transactionId")
		}
	}
	if m.Cause != nil {
		if err := EncodeCause(w, m.Cause); err != nil {
			return errors.WithField(err, "cause")
		}
	}
	if m.Criticality != nil {
		if err := m.Criticality.encode(w); err != nil {
			return errors.WithField(err, "criticality")
		}
	}
	return nil
}

// DecodePER implements per.Unmarshaler.
func (m *ErrorIndication) DecodePER(r *bitstream.Reader) error {
	*m = ErrorIndication{}
	pre, err := errorIndicationSeq.DecodePreamble(r, 3)
	if err != nil {
		return err
	}
	if pre.Present(0) {
		v, err := per.ReadInteger(r, transactionRange)
		if err != nil {
			return errors.WithField(err, "transactionId")
		}
		m.TransactionID = &v
	}
	if pre.Present(1) {
		if m.Cause, err = DecodeCause(r); err != nil {
			return errors.WithField(err, "cause")
		}
	}
	if pre.Present(2) {
		c, err := decodeCriticality(r)
		if err != nil {
			return errors.WithField(err, "criticality")
		}
		m.Criticality = &c
	}
	if pre.Extended {
		return per.DecodeExtensions(r)
	}
	return nil
}

func (m *ErrorIndication) MarshalYAML() (any, error) {
	out := map[string]any{}
	if m.TransactionID != nil {
		out["transactionId"] = *m.TransactionID
	}
	if m.Cause != nil {
		out["cause"] = causeYAML(m.Cause)
	}
	if m.Criticality != nil {
		out["criticality"] = m.Criticality.String()
	}
	return out, nil
}
