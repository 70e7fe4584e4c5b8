package msgs

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/ranforge/asn1per/bitstream"
	"github.com/ranforge/asn1per/errors"
	"github.com/ranforge/asn1per/per"
)

// PLMNIdentity ::= OCTET STRING (SIZE (3)), the MCC and MNC digits in
// TBCD: MCC2 MCC1 | MNC3 MCC3 | MNC2 MNC1, with MNC3 = 0xF for two-digit
// MNCs.
type PLMNIdentity [3]byte

var plmnSize = per.FixedSize(3)

// NewPLMNIdentity packs a three-digit MCC and a two- or three-digit MNC.
func NewPLMNIdentity(mcc, mnc string) (PLMNIdentity, error) {
	var p PLMNIdentity
	if len(mcc) != 3 || !isDigits(mcc) {
		return p, errors.InvalidArgument(errors.PhaseValidate, "MCC %q is not three digits", mcc)
	}
	if (len(mnc) != 2 && len(mnc) != 3) || !isDigits(mnc) {
		return p, errors.InvalidArgument(errors.PhaseValidate, "MNC %q is not two or three digits", mnc)
	}
	mnc3 := byte(0xf)
	if len(mnc) == 3 {
		mnc3 = mnc[2] - '0'
	}
	p[0] = (mcc[1]-'0')<<4 | (mcc[0] - '0')
	p[1] = mnc3<<4 | (mcc[2] - '0')
	p[2] = (mnc[1]-'0')<<4 | (mnc[0] - '0')
	return p, nil
}

func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// MCC returns the mobile country code digits.
func (p PLMNIdentity) MCC() string {
	return string([]byte{digit(p[0] & 0xf), digit(p[0] >> 4), digit(p[1] & 0xf)})
}

// MNC returns the mobile network code digits.
func (p PLMNIdentity) MNC() string {
	mnc := []byte{digit(p[2] & 0xf), digit(p[2] >> 4)}
	if p[1]>>4 != 0xf {
		mnc = append(mnc, digit(p[1]>>4))
	}
	return string(mnc)
}

func digit(b byte) byte {
	if b > 9 {
		return '?'
	}
	return '0' + b
}

func (p PLMNIdentity) String() string { return p.MCC() + "-" + p.MNC() }

func (p PLMNIdentity) MarshalYAML() (any, error) { return p.String(), nil }

func (p PLMNIdentity) encode(w *bitstream.Writer) error {
	return per.WriteOctetString(w, p[:], plmnSize)
}

func decodePLMNIdentity(r *bitstream.Reader) (PLMNIdentity, error) {
	var p PLMNIdentity
	b, err := per.ReadOctetString(r, plmnSize)
	if err != nil {
		return p, err
	}
	copy(p[:], b)
	return p, nil
}

// TAC ::= OCTET STRING (SIZE (3)), the tracking area code.
type TAC [3]byte

func (t TAC) String() string { return hex.EncodeToString(t[:]) }

func (t TAC) MarshalYAML() (any, error) { return t.String(), nil }

// NRCellIdentity ::= BIT STRING (SIZE (36)). The value is kept in the low
// 36 bits.
type NRCellIdentity uint64

const nrCellIdentityBits = 36

var nrCellIdentitySize = per.FixedSize(nrCellIdentityBits)

// NewNRCellIdentity combines a gNB ID of gnbBits (22..32) bits with a local
// cell ID filling the remaining bits.
func NewNRCellIdentity(gnbID uint32, gnbBits int, cellID uint32) (NRCellIdentity, error) {
	if gnbBits < 22 || gnbBits > 32 {
		return 0, errors.InvalidArgument(errors.PhaseValidate, "gNB ID length %d outside 22..32", gnbBits)
	}
	cellBits := nrCellIdentityBits - gnbBits
	if uint64(gnbID) >= 1<<uint(gnbBits) || uint64(cellID) >= 1<<uint(cellBits) {
		return 0, errors.InvalidArgument(errors.PhaseValidate, "gNB ID %d or cell ID %d too wide", gnbID, cellID)
	}
	return NRCellIdentity(uint64(gnbID)<<uint(cellBits) | uint64(cellID)), nil
}

func (id NRCellIdentity) String() string { return fmt.Sprintf("%09x", uint64(id)) }

func (id NRCellIdentity) MarshalYAML() (any, error) { return id.String(), nil }

// BitString returns the identity as a 36-bit BIT STRING.
func (id NRCellIdentity) BitString() per.BitString {
	v := uint64(id) << (64 - nrCellIdentityBits)
	b := make([]byte, 5)
	for i := range b {
		b[i] = byte(v >> (56 - 8*uint(i)))
	}
	return per.BitString{Bytes: b, BitLength: nrCellIdentityBits}
}

func (id NRCellIdentity) encode(w *bitstream.Writer) error {
	if uint64(id) >= 1<<nrCellIdentityBits {
		return errors.OutOfRange(errors.PhaseEncode, uint64(id), 0, uint64(1)<<nrCellIdentityBits-1)
	}
	return per.WriteBitString(w, id.BitString(), nrCellIdentitySize)
}

func decodeNRCellIdentity(r *bitstream.Reader) (NRCellIdentity, error) {
	bs, err := per.ReadBitString(r, nrCellIdentitySize)
	if err != nil {
		return 0, err
	}
	var v uint64
	for _, b := range bs.Bytes {
		v = v<<8 | uint64(b)
	}
	return NRCellIdentity(v >> (8*uint(len(bs.Bytes)) - nrCellIdentityBits)), nil
}

// ParseNRCellIdentity parses the hexadecimal form printed by String.
func ParseNRCellIdentity(s string) (NRCellIdentity, error) {
	s = strings.TrimPrefix(strings.ToLower(s), "0x")
	var v uint64
	if _, err := fmt.Sscanf(s, "%x", &v); err != nil {
		return 0, errors.InvalidArgument(errors.PhaseValidate, "cell identity %q: %v", s, err)
	}
	if v >= 1<<nrCellIdentityBits {
		return 0, errors.OutOfRange(errors.PhaseValidate, v, 0, uint64(1)<<nrCellIdentityBits-1)
	}
	return NRCellIdentity(v), nil
}
