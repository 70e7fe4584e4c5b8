package per

import (
	"github.com/ranforge/asn1per/bitstream"
)

// Cloner is implemented by values that can produce an independent deep copy.
type Cloner[T any] interface {
	Clone() T
}

// Box is an optional, exclusively owned heap value. It lets a type reach
// another instance of itself through a field without having infinite size.
// The zero Box is absent and allocates nothing.
type Box[T Cloner[T]] struct {
	v *T
}

// NewBox returns a present Box holding v.
func NewBox[T Cloner[T]](v T) Box[T] {
	return Box[T]{v: &v}
}

// Present reports whether the box holds a value.
func (b Box[T]) Present() bool {
	return b.v != nil
}

// Get returns the held value, or nil when absent.
func (b Box[T]) Get() *T {
	return b.v
}

// Set replaces the held value.
func (b *Box[T]) Set(v T) {
	b.v = &v
}

// Clear drops the held value.
func (b *Box[T]) Clear() {
	b.v = nil
}

// Clone returns a Box holding a deep copy of the value.
func (b Box[T]) Clone() Box[T] {
	if b.v == nil {
		return Box[T]{}
	}
	c := (*b.v).Clone()
	return Box[T]{v: &c}
}

// DecodeWith decodes a fresh value with dec and stores it only on success.
// Each level counts against the reader's depth limit.
func (b *Box[T]) DecodeWith(r *bitstream.Reader, dec func(*T, *bitstream.Reader) error) error {
	if err := r.Descend(); err != nil {
		return err
	}
	defer r.Ascend()

	var v T
	if err := dec(&v, r); err != nil {
		return err
	}
	b.v = &v
	return nil
}
