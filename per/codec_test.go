package per

import (
	"bytes"
	"testing"

	"github.com/ranforge/asn1per/bitstream"
	"github.com/ranforge/asn1per/errors"
)

// empty is a SEQUENCE with no fields.
type empty struct{}

func (empty) EncodePER(*bitstream.Writer) error  { return nil }
func (*empty) DecodePER(*bitstream.Reader) error { return nil }

func TestMarshalEmptyEncoding(t *testing.T) {
	data, err := Marshal(empty{})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if !bytes.Equal(data, []byte{0x00}) {
		t.Errorf("Marshal: got %x, want 00", data)
	}
	if err := Unmarshal(data, &empty{}, WithStrictTrailing()); err != nil {
		t.Errorf("Unmarshal strict: %v", err)
	}
}

func TestMarshalNil(t *testing.T) {
	_, err := Marshal(nil)
	checkKind(t, err, errors.KindNotInitialized)

	err = Unmarshal([]byte{0}, nil)
	checkKind(t, err, errors.KindNotInitialized)
	var e *errors.Error
	if asError(err, &e) && e.Phase != errors.PhaseDecode {
		t.Errorf("Unmarshal(nil) phase: got %s, want decode", e.Phase)
	}
}

func TestAppendMarshal(t *testing.T) {
	data, err := AppendMarshal([]byte{0xff}, &pair{A: ptr[int64](5)})
	if err != nil {
		t.Fatalf("AppendMarshal: %v", err)
	}
	if !bytes.Equal(data, []byte{0xff, 0xa8}) {
		t.Errorf("AppendMarshal: got %x, want ffa8", data)
	}
}

func TestDecodeReturnsNilOnError(t *testing.T) {
	v, err := Decode[pair](nil)
	checkKind(t, err, errors.KindUnderflow)
	if v != nil {
		t.Errorf("Decode returned %+v with an error", v)
	}

	v, err = Decode[pair]([]byte{0xa8})
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if v.A == nil || *v.A != 5 || v.B != nil {
		t.Errorf("Decode: got %+v", v)
	}
}

func TestStrictTrailing(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		ok   bool
	}{
		{"exact", []byte{0xa8}, true},
		{"non-zero padding", []byte{0xa9}, false},
		{"extra octet", []byte{0xa8, 0x00}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var v pair
			if err := Unmarshal(tt.data, &v); err != nil {
				t.Fatalf("lenient Unmarshal: %v", err)
			}
			err := Unmarshal(tt.data, &v, WithStrictTrailing())
			if tt.ok {
				if err != nil {
					t.Errorf("strict Unmarshal: %v", err)
				}
				return
			}
			checkKind(t, err, errors.KindTrailingData)
		})
	}

	checkKind(t, Unmarshal([]byte{0x01}, &empty{}, WithStrictTrailing()), errors.KindTrailingData)
}

func TestTruncationEveryPrefix(t *testing.T) {
	v := buildChain(6)
	data, err := Marshal(&v)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	for n := 0; n < len(data); n++ {
		if _, err := Decode[chain](data[:n]); err == nil {
			t.Errorf("prefix of %d octets decoded without error", n)
		}
	}
}
