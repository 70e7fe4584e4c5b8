package per

import (
	"strconv"

	"github.com/ranforge/asn1per/bitstream"
	"github.com/ranforge/asn1per/errors"
	"github.com/ranforge/asn1per/per/internal/bound"
)

// WriteSequenceOf writes a SEQUENCE OF: the count under s, then each element.
func WriteSequenceOf[T any](w *bitstream.Writer, items []T, s SizeRange, enc func(*bitstream.Writer, T) error) error {
	if err := WriteLength(w, len(items), s); err != nil {
		return err
	}
	for i, item := range items {
		if err := enc(w, item); err != nil {
			return errors.WithField(err, "["+strconv.Itoa(i)+"]")
		}
	}
	return nil
}

// ReadSequenceOf reads a SEQUENCE OF. minElemBits is the smallest encoding of
// one element; a count that the remaining input cannot hold is rejected
// before anything is allocated.
func ReadSequenceOf[T any](r *bitstream.Reader, s SizeRange, minElemBits int, dec func(*bitstream.Reader) (T, error)) ([]T, error) {
	pos := r.Pos()
	n, err := ReadLength(r, s)
	if err != nil {
		return nil, err
	}
	if minElemBits > 0 {
		need, ok := bound.SafeMulInt(n, minElemBits)
		if !ok || need > r.Remaining() {
			e := errors.Underflow(pos, need, r.Remaining())
			e.Detail = strconv.Itoa(n) + " elements cannot fit the remaining input"
			return nil, e
		}
	}
	if err := r.Descend(); err != nil {
		return nil, err
	}
	defer r.Ascend()

	items := make([]T, 0, n)
	for i := 0; i < n; i++ {
		item, err := dec(r)
		if err != nil {
			return nil, errors.WithField(err, "["+strconv.Itoa(i)+"]")
		}
		items = append(items, item)
	}
	return items, nil
}
