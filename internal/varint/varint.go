// Package varint encodes unsigned integers in the LEB128 layout used by the
// string table frame.
package varint

import "errors"

// MaxLen is the longest encoding of a uint64.
const MaxLen = 10

var (
	ErrTruncated = errors.New("varint: truncated")
	ErrOverflow  = errors.New("varint: overflows uint64")
)

// Append appends x to dst using a stack scratch buffer. The strtab frame
// writes its raw and payload lengths with it; Read is the matching decoder.
func Append(dst []byte, x uint64) []byte {
	var scratch [MaxLen]byte
	i := 0
	for x >= 0x80 {
		scratch[i] = byte(x) | 0x80
		x >>= 7
		i++
	}
	scratch[i] = byte(x)
	return append(dst, scratch[:i+1]...)
}

// Read decodes a value from the front of b and reports how many bytes it
// used.
func Read(b []byte) (uint64, int, error) {
	var x uint64
	var s uint
	for i, c := range b {
		if i == MaxLen-1 && c > 1 {
			return 0, 0, ErrOverflow
		}
		x |= uint64(c&0x7f) << s
		if c&0x80 == 0 {
			return x, i + 1, nil
		}
		s += 7
	}
	return 0, 0, ErrTruncated
}
