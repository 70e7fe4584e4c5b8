package main

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/kaitai-io/kaitai_struct_go_runtime/kaitai"
)

const bitsPerRow = 32

// dumpBits writes the first n bits of data as binary, eight bits per group,
// each row prefixed with its bit offset.
func dumpBits(w io.Writer, data []byte, n int) error {
	n = min(n, len(data)*8)
	ks := kaitai.NewStream(bytes.NewReader(data))

	var row strings.Builder
	for off := 0; off < n; off += bitsPerRow {
		row.Reset()
		fmt.Fprintf(&row, "%5d:", off)
		for g := off; g < min(off+bitsPerRow, n); g += 8 {
			take := min(8, n-g)
			v, err := ks.ReadBitsIntBe(take)
			if err != nil {
				return err
			}
			fmt.Fprintf(&row, " %0*b", take, v)
		}
		row.WriteByte('\n')
		if _, err := io.WriteString(w, row.String()); err != nil {
			return err
		}
	}
	return nil
}
