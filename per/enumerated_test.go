package per

import (
	"testing"

	"github.com/ranforge/asn1per/bitstream"
	"github.com/ranforge/asn1per/errors"
)

func TestEnumerated(t *testing.T) {
	closed := Enumerated{Root: 3}
	open := Enumerated{Root: 3, Extensions: 1, Extensible: true}

	tests := []struct {
		name string
		v    int
		e    Enumerated
		want []byte
		bits int
	}{
		{"closed first", 0, closed, []byte{0x00}, 2},
		{"closed last", 2, closed, []byte{0x80}, 2},
		{"single option", 0, Enumerated{Root: 1}, nil, 0},
		{"extensible root", 1, open, []byte{0x20}, 3},
		{"extension option", 3, open, []byte{0x80}, 8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, bits := encode(t, func(w *bitstream.Writer) error {
				return WriteEnumerated(w, tt.v, tt.e)
			})
			checkBits(t, got, bits, tt.want, tt.bits)

			v, err := ReadEnumerated(bitstream.NewReader(got), tt.e)
			if err != nil {
				t.Fatalf("read: %v", err)
			}
			if v != tt.v {
				t.Errorf("read: got %d, want %d", v, tt.v)
			}
			if !tt.e.Known(v) {
				t.Errorf("Known(%d) = false", v)
			}
		})
	}
}

func TestEnumeratedUnknownExtension(t *testing.T) {
	newer := Enumerated{Root: 3, Extensions: 3, Extensible: true}
	older := Enumerated{Root: 3, Extensions: 1, Extensible: true}

	got, _ := encode(t, func(w *bitstream.Writer) error {
		return WriteEnumerated(w, 5, newer)
	})
	v, err := ReadEnumerated(bitstream.NewReader(got), older)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if v != 5 {
		t.Errorf("ordinal: got %d, want 5", v)
	}
	if older.Known(v) {
		t.Error("Known reported an ordinal the older schema lacks")
	}
}

func TestEnumeratedRejects(t *testing.T) {
	w := bitstream.NewWriter(nil)
	checkKind(t, WriteEnumerated(w, 3, Enumerated{Root: 3}), errors.KindOutOfRange)
	checkKind(t, WriteEnumerated(w, -1, Enumerated{Root: 3}), errors.KindOutOfRange)
	checkKind(t, WriteEnumerated(w, 0, Enumerated{}), errors.KindInvalidArgument)

	_, err := ReadEnumerated(bitstream.NewReader([]byte{0xc0}), Enumerated{Root: 3})
	checkKind(t, err, errors.KindOutOfRange)
}
