package bitstream

import (
	"bytes"
	stderrors "errors"
	"testing"

	"github.com/kaitai-io/kaitai_struct_go_runtime/kaitai"

	"github.com/ranforge/asn1per/errors"
)

var bitSequence = []struct {
	value uint64
	count int
}{
	{0b1, 1},
	{0b01, 2},
	{0b10110, 5},
	{0x3ff, 10},
	{0, 3},
	{0xabcd, 16},
	{0b1, 1},
	{0x123456789, 36},
	{0xffffffffffffffff, 64},
	{0b0110, 4},
}

func TestWriterPacksMSBFirst(t *testing.T) {
	tests := []struct {
		name   string
		writes [][2]uint64
		want   []byte
		bits   int
	}{
		{"single bit", [][2]uint64{{1, 1}}, []byte{0x80}, 1},
		{"three then five", [][2]uint64{{0b101, 3}, {0b11, 2}}, []byte{0xb8}, 5},
		{"cross byte", [][2]uint64{{0b1, 1}, {0xff, 8}}, []byte{0xff, 0x80}, 9},
		{"excess high bits masked", [][2]uint64{{0xff, 3}}, []byte{0xe0}, 3},
		{"zero width", [][2]uint64{{0xff, 0}}, nil, 0},
		{"full word", [][2]uint64{{0x0102030405060708, 64}}, []byte{1, 2, 3, 4, 5, 6, 7, 8}, 64},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := NewWriter(nil)
			for _, wr := range tt.writes {
				if err := w.WriteBits(wr[0], int(wr[1])); err != nil {
					t.Fatalf("WriteBits(%#x, %d): %v", wr[0], wr[1], err)
				}
			}
			if !bytes.Equal(w.Bytes(), tt.want) {
				t.Errorf("Bytes: got %x, want %x", w.Bytes(), tt.want)
			}
			if w.BitLen() != tt.bits {
				t.Errorf("BitLen: got %d, want %d", w.BitLen(), tt.bits)
			}
		})
	}
}

func TestWriterRejectsBadCount(t *testing.T) {
	w := NewWriter(nil)
	for _, n := range []int{-1, 65} {
		err := w.WriteBits(0, n)
		if errors.KindOf(err) != errors.KindInvalidArgument {
			t.Errorf("WriteBits(0, %d): got %v, want invalid_argument", n, err)
		}
	}
	if w.BitLen() != 0 {
		t.Errorf("failed writes changed BitLen to %d", w.BitLen())
	}
}

func TestWriterAlign(t *testing.T) {
	w := NewWriter(nil)
	if pad := w.Align(); pad != 0 {
		t.Errorf("Align on empty writer: got %d, want 0", pad)
	}
	_ = w.WriteBits(0b11, 2)
	if pad := w.Align(); pad != 6 {
		t.Errorf("Align: got %d, want 6", pad)
	}
	_ = w.WriteBits(0b1, 1)
	if !bytes.Equal(w.Bytes(), []byte{0xc0, 0x80}) {
		t.Errorf("Bytes: got %x, want c080", w.Bytes())
	}
}

func TestWriterWriteBytesUnaligned(t *testing.T) {
	w := NewWriter(nil)
	w.WriteBool(true)
	w.WriteBytes([]byte{0xff, 0x00})
	want := []byte{0xff, 0x80, 0x00}
	if !bytes.Equal(w.Bytes(), want) {
		t.Errorf("Bytes: got %x, want %x", w.Bytes(), want)
	}
	if w.BitLen() != 17 {
		t.Errorf("BitLen: got %d, want 17", w.BitLen())
	}
}

func TestWriterWriteBitsFrom(t *testing.T) {
	w := NewWriter(nil)
	w.WriteBool(false)
	if err := w.WriteBitsFrom([]byte{0xab, 0xc0}, 12); err != nil {
		t.Fatalf("WriteBitsFrom: %v", err)
	}
	// 0 1010 1011 1100 -> 0101 0101 1110 0000
	if !bytes.Equal(w.Bytes(), []byte{0x55, 0xe0}) {
		t.Errorf("Bytes: got %x, want 55e0", w.Bytes())
	}
	if err := w.WriteBitsFrom([]byte{0x01}, 9); err == nil {
		t.Error("expected error for bit count beyond source")
	}
}

func TestWriterAppendsToExisting(t *testing.T) {
	w := NewWriter([]byte{0x01})
	_ = w.WriteBits(0b1, 1)
	if !bytes.Equal(w.Bytes(), []byte{0x01, 0x80}) {
		t.Errorf("Bytes: got %x", w.Bytes())
	}
	w.Reset()
	if w.BitLen() != 0 || w.Len() != 0 {
		t.Errorf("Reset: BitLen=%d Len=%d", w.BitLen(), w.Len())
	}
}

func TestRoundTripSequence(t *testing.T) {
	w := NewWriter(nil)
	total := 0
	for _, s := range bitSequence {
		if err := w.WriteBits(s.value, s.count); err != nil {
			t.Fatalf("WriteBits: %v", err)
		}
		total += s.count
	}
	if w.BitLen() != total {
		t.Fatalf("BitLen: got %d, want %d", w.BitLen(), total)
	}

	r := NewReader(w.Bytes())
	for i, s := range bitSequence {
		got, err := r.ReadBits(s.count)
		if err != nil {
			t.Fatalf("ReadBits %d: %v", i, err)
		}
		want := s.value
		if s.count < 64 {
			want &= (1 << uint(s.count)) - 1
		}
		if got != want {
			t.Errorf("ReadBits %d: got %#x, want %#x", i, got, want)
		}
	}
	if r.Pos() != total {
		t.Errorf("Pos: got %d, want %d", r.Pos(), total)
	}
}

// The kaitai runtime has its own big-endian bit reader; agreeing with it pins
// the bit order independently of our Reader.
func TestWriterMatchesKaitaiBitReader(t *testing.T) {
	seq := bitSequence[:7]
	w := NewWriter(nil)
	for _, s := range seq {
		_ = w.WriteBits(s.value, s.count)
	}

	ks := kaitai.NewStream(bytes.NewReader(w.Bytes()))
	for i, s := range seq {
		got, err := ks.ReadBitsIntBe(s.count)
		if err != nil {
			t.Fatalf("kaitai ReadBitsIntBe %d: %v", i, err)
		}
		want := s.value
		if s.count < 64 {
			want &= (1 << uint(s.count)) - 1
		}
		if got != want {
			t.Errorf("kaitai ReadBitsIntBe %d: got %#x, want %#x", i, got, want)
		}
	}
}

func TestReaderUnderflow(t *testing.T) {
	r := NewReader([]byte{0xff})
	if _, err := r.ReadBits(5); err != nil {
		t.Fatalf("ReadBits(5): %v", err)
	}
	_, err := r.ReadBits(4)
	if !stderrors.Is(err, &errors.Error{Phase: errors.PhaseDecode, Kind: errors.KindUnderflow}) {
		t.Fatalf("ReadBits(4): got %v, want underflow", err)
	}
	var e *errors.Error
	if stderrors.As(err, &e) && e.BitPos != 5 {
		t.Errorf("BitPos: got %d, want 5", e.BitPos)
	}
	if r.Pos() != 5 {
		t.Errorf("failed read moved position to %d", r.Pos())
	}
	if v, err := r.ReadBits(3); err != nil || v != 0b111 {
		t.Errorf("ReadBits(3) after failure: got %v, %v", v, err)
	}
	if _, err := r.ReadBool(); err == nil {
		t.Error("expected underflow at end of input")
	}
}

func TestReaderEmptyInput(t *testing.T) {
	r := NewReader(nil)
	if v, err := r.ReadBits(0); err != nil || v != 0 {
		t.Errorf("ReadBits(0): got %v, %v", v, err)
	}
	if _, err := r.ReadBits(1); err == nil {
		t.Error("expected underflow")
	}
	if _, err := r.ReadBytes(1); err == nil {
		t.Error("expected underflow")
	}
	if got, err := r.ReadBytes(0); err != nil || len(got) != 0 {
		t.Errorf("ReadBytes(0): got %v, %v", got, err)
	}
}

func TestReaderReadBytes(t *testing.T) {
	data := []byte{0x12, 0x34, 0x56}

	r := NewReader(data)
	got, err := r.ReadBytes(2)
	if err != nil {
		t.Fatalf("ReadBytes aligned: %v", err)
	}
	if !bytes.Equal(got, []byte{0x12, 0x34}) {
		t.Errorf("ReadBytes aligned: got %x", got)
	}
	if &got[0] != &data[0] {
		t.Error("aligned ReadBytes should alias the input")
	}

	r = NewReader(data)
	_, _ = r.ReadBits(4)
	got, err = r.ReadBytes(2)
	if err != nil {
		t.Fatalf("ReadBytes unaligned: %v", err)
	}
	if !bytes.Equal(got, []byte{0x23, 0x45}) {
		t.Errorf("ReadBytes unaligned: got %x, want 2345", got)
	}
	if _, err := r.ReadBytes(1); err == nil {
		t.Error("expected underflow with 4 bits left")
	}
	if _, err := r.ReadBytes(-1); err == nil {
		t.Error("expected error for negative count")
	}
}

func TestReaderReadBitsInto(t *testing.T) {
	r := NewReader([]byte{0x55, 0xe0})
	_, _ = r.ReadBits(1)
	got, err := r.ReadBitsInto(12)
	if err != nil {
		t.Fatalf("ReadBitsInto: %v", err)
	}
	if !bytes.Equal(got, []byte{0xab, 0xc0}) {
		t.Errorf("ReadBitsInto: got %x, want abc0", got)
	}
}

func TestReaderSkipAndAlign(t *testing.T) {
	r := NewReader([]byte{0x00, 0xf0})
	if err := r.SkipBits(3); err != nil {
		t.Fatalf("SkipBits: %v", err)
	}
	if pad := r.Align(); pad != 5 {
		t.Errorf("Align: got %d, want 5", pad)
	}
	if v, _ := r.ReadBits(4); v != 0xf {
		t.Errorf("ReadBits after align: got %#x", v)
	}
	if err := r.SkipBits(5); err == nil {
		t.Error("expected underflow skipping past end")
	}
	if r.Remaining() != 4 {
		t.Errorf("Remaining: got %d, want 4", r.Remaining())
	}
}

func TestReaderDepth(t *testing.T) {
	r := NewReader(nil)
	r.SetMaxDepth(2)
	if err := r.Descend(); err != nil {
		t.Fatalf("Descend 1: %v", err)
	}
	c := r.Child([]byte{0})
	if c.Depth() != 1 {
		t.Errorf("child depth: got %d, want 1", c.Depth())
	}
	if err := c.Descend(); err != nil {
		t.Fatalf("child Descend: %v", err)
	}
	if err := c.Descend(); errors.KindOf(err) != errors.KindDepthExceeded {
		t.Errorf("child Descend past limit: got %v", err)
	}
	r.Ascend()
	r.Ascend()
	if r.Depth() != 0 {
		t.Errorf("Ascend below zero: depth %d", r.Depth())
	}
}
