// Package bitstream provides the bit-level Writer and Reader that every PER
// construct is built on.
//
// Bits are packed most significant first within each byte, so writing 3 bits
// 0b101 followed by 2 bits 0b11 yields the byte 0b10111000. Nothing is aligned
// unless the caller asks for it with Align.
//
// Both types fail instead of running past their buffer: a Reader returns an
// underflow error from the errors package and keeps its offset, so callers can
// report the exact bit where a truncated message ended.
//
// Neither type is safe for concurrent use.
package bitstream
