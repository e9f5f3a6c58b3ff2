package cstr

import (
	"unicode/utf8"
	"unsafe"
)

// validateUTF8 returns nil if b is valid UTF-8, otherwise the position and
// length of the first invalid sequence.
func validateUTF8(b []byte) *Utf8Error {
	if utf8.Valid(b) {
		return nil
	}
	i := 0
	for i < len(b) {
		if b[i] < utf8.RuneSelf {
			i++
			continue
		}
		r, size := utf8.DecodeRune(b[i:])
		if r == utf8.RuneError && size == 1 {
			n := invalidLen(b[i:])
			if n == 0 {
				return &Utf8Error{validUpTo: i}
			}
			return &Utf8Error{validUpTo: i, errorLen: n}
		}
		i += size
	}
	return nil
}

// invalidLen measures the maximal ill-formed prefix of b, which must start
// with a byte utf8.DecodeRune rejected. It returns 0 when b is a truncated
// but otherwise well-formed sequence.
func invalidLen(b []byte) int {
	first := b[0]
	var width int
	lo, hi := byte(0x80), byte(0xbf)
	switch {
	case first >= 0xc2 && first <= 0xdf:
		width = 2
	case first == 0xe0:
		width, lo = 3, 0xa0
	case first >= 0xe1 && first <= 0xec, first == 0xee, first == 0xef:
		width = 3
	case first == 0xed:
		width, hi = 3, 0x9f
	case first == 0xf0:
		width, lo = 4, 0x90
	case first >= 0xf1 && first <= 0xf3:
		width = 4
	case first == 0xf4:
		width, hi = 4, 0x8f
	default:
		return 1
	}
	for k := 1; k < width; k++ {
		if k >= len(b) {
			return 0
		}
		c := b[k]
		if k == 1 {
			if c < lo || c > hi {
				return 1
			}
		} else if c < 0x80 || c > 0xbf {
			return k
		}
	}
	// DecodeRune only rejects a complete sequence if one of the checks
	// above fails, so this is not reached for well-formed input.
	return width
}

// lossy returns b as a string, replacing every maximal invalid subsequence
// with utf8.RuneError. Valid input is returned without copying.
func lossy(b []byte) string {
	if utf8.Valid(b) {
		return unsafe.String(unsafe.SliceData(b), len(b))
	}
	out := make([]byte, 0, len(b)+utf8.UTFMax)
	for len(b) > 0 {
		if b[0] < utf8.RuneSelf {
			out = append(out, b[0])
			b = b[1:]
			continue
		}
		r, size := utf8.DecodeRune(b)
		if r == utf8.RuneError && size == 1 {
			n := invalidLen(b)
			if n == 0 {
				n = len(b)
			}
			out = utf8.AppendRune(out, utf8.RuneError)
			b = b[n:]
			continue
		}
		out = append(out, b[:size]...)
		b = b[size:]
	}
	return string(out)
}
