package msgs

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/ranforge/asn1per/bitstream"
	"github.com/ranforge/asn1per/errors"
	"github.com/ranforge/asn1per/per"
)

func testPLMN(t *testing.T) PLMNIdentity {
	t.Helper()
	p, err := NewPLMNIdentity("001", "01")
	require.NoError(t, err)
	return p
}

func ptr[T any](v T) *T { return &v }

func fullCell(t *testing.T) *ServedCell {
	return &ServedCell{
		PLMN:   testPLMN(t),
		CellID: 0x123456789,
		TAC:    &TAC{0x00, 0x00, 0x01},
		Name:   "Cell A-1",
		Band:   ptr[int64](78),
		Barring: &CellBarring{
			Barred:     true,
			Neighbours: []NRCellIdentity{0x1, 0xfffffffff},
		},
	}
}

func TestServedCellMinimal(t *testing.T) {
	c := &ServedCell{PLMN: testPLMN(t)}
	data, err := per.Marshal(c)
	require.NoError(t, err)
	// preamble 000, plmn 00f110, 36 zero bits
	require.Equal(t, []byte{0x00, 0x1e, 0x22, 0x00, 0x00, 0x00, 0x00, 0x00}, data)

	back, err := per.Decode[ServedCell](data, per.WithStrictTrailing())
	require.NoError(t, err)
	if diff := cmp.Diff(c, back); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestServedCellRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		cell func(*ServedCell)
	}{
		{"full", func(*ServedCell) {}},
		{"no first group", func(c *ServedCell) { c.Band = nil }},
		{"no second group", func(c *ServedCell) { c.Barring = nil }},
		{"no neighbours", func(c *ServedCell) { c.Barring.Neighbours = nil }},
		{"root only", func(c *ServedCell) { c.Band, c.Barring, c.TAC, c.Name = nil, nil, nil, "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := fullCell(t)
			tt.cell(c)
			data, err := per.Marshal(c)
			require.NoError(t, err)

			back, err := per.Decode[ServedCell](data, per.WithStrictTrailing())
			require.NoError(t, err)
			if diff := cmp.Diff(c, back); diff != "" {
				t.Errorf("round trip mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

// servedCellR1 is ServedCell as defined before the second extension group
// was added.
type servedCellR1 struct {
	PLMN   PLMNIdentity
	CellID NRCellIdentity
	TAC    *TAC
	Name   string
	Band   *int64
}

func (c *servedCellR1) DecodePER(r *bitstream.Reader) error {
	pre, err := servedCellSeq.DecodePreamble(r, 2)
	if err != nil {
		return err
	}
	if c.PLMN, err = decodePLMNIdentity(r); err != nil {
		return err
	}
	if c.CellID, err = decodeNRCellIdentity(r); err != nil {
		return err
	}
	if pre.Present(0) {
		b, err := per.ReadOctetString(r, tacSize)
		if err != nil {
			return err
		}
		c.TAC = new(TAC)
		copy(c.TAC[:], b)
	}
	if pre.Present(1) {
		if c.Name, err = per.ReadPrintableString(r, cellNameSize); err != nil {
			return err
		}
	}
	if !pre.Extended {
		return nil
	}
	return per.DecodeExtensions(r, func(r *bitstream.Reader) error {
		v, err := per.ReadInteger(r, bandRange)
		c.Band = &v
		return err
	})
}

func TestServedCellForwardCompatibility(t *testing.T) {
	// two cells in a list so the older decoder has to stay in sync after
	// skipping the unknown group of the first one
	req := &SetupRequest{
		TransactionID: 7,
		NodeID:        42,
		ServedCells:   []ServedCell{*fullCell(t), *fullCell(t)},
	}
	req.ServedCells[1].Name = "Cell B"
	data, err := per.Marshal(req)
	require.NoError(t, err)

	r := bitstream.NewReader(data)
	pre, err := setupSeq.DecodePreamble(r, 2)
	require.NoError(t, err)
	_, err = per.ReadInteger(r, transactionRange)
	require.NoError(t, err)
	_, err = per.ReadInteger(r, nodeIDRange)
	require.NoError(t, err)
	require.False(t, pre.Present(0))

	cells, err := per.ReadSequenceOf(r, servedCellsSize, minServedCellBits, func(r *bitstream.Reader) (servedCellR1, error) {
		var c servedCellR1
		err := c.DecodePER(r)
		return c, err
	})
	require.NoError(t, err)
	require.Len(t, cells, 2)
	require.Equal(t, "Cell A-1", cells[0].Name)
	require.Equal(t, "Cell B", cells[1].Name)
	require.Equal(t, int64(78), *cells[1].Band)
	require.Equal(t, NRCellIdentity(0x123456789), cells[1].CellID)
	require.Less(t, r.Remaining(), 8)
}

func TestServedCellTruncation(t *testing.T) {
	data, err := per.Marshal(fullCell(t))
	require.NoError(t, err)
	for n := 0; n < len(data); n++ {
		_, err := per.Decode[ServedCell](data[:n])
		require.Error(t, err, "prefix of %d octets", n)
	}
}

func TestServedCellEncodeErrors(t *testing.T) {
	tests := []struct {
		name string
		edit func(*ServedCell)
		kind errors.Kind
		path []string
	}{
		{"name alphabet", func(c *ServedCell) { c.Name = "cell_1" }, errors.KindInvalidChar, []string{"name"}},
		{"name too long", func(c *ServedCell) { c.Name = strings.Repeat("a", 151) }, errors.KindSizeBound, []string{"name"}},
		{"band range", func(c *ServedCell) { c.Band = ptr[int64](0) }, errors.KindOutOfRange, []string{"ext1", "band"}},
		{"too many neighbours", func(c *ServedCell) {
			c.Barring.Neighbours = make([]NRCellIdentity, maxNeighbours+1)
		}, errors.KindSizeBound, []string{"ext2", "neighbours"}},
		{"cell identity width", func(c *ServedCell) { c.CellID = 1 << 36 }, errors.KindOutOfRange, []string{"cellId"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := fullCell(t)
			tt.edit(c)
			_, err := per.Marshal(c)
			require.Equal(t, tt.kind, errors.KindOf(err), "%v", err)
			var e *errors.Error
			require.ErrorAs(t, err, &e)
			require.Equal(t, tt.path, e.Path)
		})
	}
}
