package per

import (
	"bytes"
	stderrors "errors"
	"testing"

	"github.com/ranforge/asn1per/bitstream"
	"github.com/ranforge/asn1per/errors"
)

// encode runs fn on a fresh writer and returns its bytes and bit length.
func encode(t *testing.T, fn func(w *bitstream.Writer) error) ([]byte, int) {
	t.Helper()
	w := bitstream.NewWriter(nil)
	if err := fn(w); err != nil {
		t.Fatalf("encode: %v", err)
	}
	return w.Bytes(), w.BitLen()
}

func checkBits(t *testing.T, got []byte, gotBits int, want []byte, wantBits int) {
	t.Helper()
	if gotBits != wantBits {
		t.Errorf("bit length: got %d, want %d", gotBits, wantBits)
	}
	if !bytes.Equal(got, want) {
		t.Errorf("bytes: got %x, want %x", got, want)
	}
}

func checkKind(t *testing.T, err error, want errors.Kind) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %s error, got nil", want)
	}
	if got := errors.KindOf(err); got != want {
		t.Fatalf("error kind: got %q, want %q (%v)", got, want, err)
	}
}

func asError(err error, target **errors.Error) bool {
	return stderrors.As(err, target)
}
