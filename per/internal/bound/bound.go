package bound

import (
	"math"
	"math/bits"
)

// Span returns ub-lb as an unsigned distance. Callers guarantee lb <= ub.
func Span(lb, ub int64) uint64 {
	return uint64(ub) - uint64(lb)
}

// Width returns the number of bits a constrained whole number needs when its
// range covers span+1 values. A single-value range needs no bits.
func Width(span uint64) int {
	return bits.Len64(span)
}

// UnsignedOctets returns the minimal number of octets holding v, at least 1.
func UnsignedOctets(v uint64) int {
	if v == 0 {
		return 1
	}
	return (bits.Len64(v) + 7) / 8
}

// SignedOctets returns the minimal number of octets holding v in two's
// complement, at least 1.
func SignedOctets(v int64) int {
	n := 1
	for n < 8 {
		lo := int64(-1) << uint(8*n-1)
		hi := -lo - 1
		if v >= lo && v <= hi {
			break
		}
		n++
	}
	return n
}

// MaxAbove returns how far v may grow before passing math.MaxInt64.
func MaxAbove(v int64) uint64 {
	return uint64(math.MaxInt64) - uint64(v)
}

func SafeMulInt(a, b int) (int, bool) {
	if a < 0 || b < 0 {
		return 0, false
	}
	if b != 0 && a > math.MaxInt/b {
		return 0, false
	}
	return a * b, true
}
