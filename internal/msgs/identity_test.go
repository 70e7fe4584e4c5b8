package msgs

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ranforge/asn1per/bitstream"
	"github.com/ranforge/asn1per/errors"
)

func TestPLMNIdentity(t *testing.T) {
	tests := []struct {
		mcc, mnc string
		want     PLMNIdentity
	}{
		{"001", "01", PLMNIdentity{0x00, 0xf1, 0x10}},
		{"310", "410", PLMNIdentity{0x13, 0x00, 0x14}},
		{"208", "93", PLMNIdentity{0x02, 0xf8, 0x39}},
	}

	for _, tt := range tests {
		t.Run(tt.mcc+"-"+tt.mnc, func(t *testing.T) {
			p, err := NewPLMNIdentity(tt.mcc, tt.mnc)
			require.NoError(t, err)
			require.Equal(t, tt.want, p)
			require.Equal(t, tt.mcc, p.MCC())
			require.Equal(t, tt.mnc, p.MNC())
			require.Equal(t, tt.mcc+"-"+tt.mnc, p.String())
		})
	}

	for _, bad := range [][2]string{{"01", "01"}, {"001", "1"}, {"0a1", "01"}, {"001", "0101"}} {
		_, err := NewPLMNIdentity(bad[0], bad[1])
		require.Equal(t, errors.KindInvalidArgument, errors.KindOf(err), "%v", bad)
	}
}

func TestNRCellIdentity(t *testing.T) {
	id, err := NewNRCellIdentity(0x12345, 22, 3)
	require.NoError(t, err)
	require.Equal(t, NRCellIdentity(0x12345<<14|3), id)
	require.Equal(t, "048d14003", id.String())

	back, err := ParseNRCellIdentity(id.String())
	require.NoError(t, err)
	require.Equal(t, id, back)

	w := bitstream.NewWriter(nil)
	require.NoError(t, id.encode(w))
	require.Equal(t, 36, w.BitLen())
	dec, err := decodeNRCellIdentity(bitstream.NewReader(w.Bytes()))
	require.NoError(t, err)
	require.Equal(t, id, dec)

	_, err = NewNRCellIdentity(1<<22, 22, 0)
	require.Error(t, err)
	_, err = NewNRCellIdentity(1, 21, 0)
	require.Error(t, err)
	_, err = ParseNRCellIdentity("0x1000000000")
	require.Equal(t, errors.KindOutOfRange, errors.KindOf(err))
	require.Equal(t, errors.KindOutOfRange, errors.KindOf(NRCellIdentity(1<<36).encode(bitstream.NewWriter(nil))))
}
