package cstr

import "iter"

const hexDigits = "0123456789abcdef"

// EscapeDefault yields the printable escape of a single byte.
//
// It is a small value type: copying it restarts iteration from the copy's
// current position, and Len always reports the exact number of bytes left.
type EscapeDefault struct {
	data       [4]byte
	start, end uint8
}

// Escape returns the escape sequence for c. Tab, carriage return, line feed,
// backslash and both quote characters get a backslash escape, bytes in
// 0x20..0x7e are returned as is and everything else becomes \xHH.
func Escape(c byte) EscapeDefault {
	var e EscapeDefault
	switch c {
	case '\t':
		e.data, e.end = [4]byte{'\\', 't'}, 2
	case '\r':
		e.data, e.end = [4]byte{'\\', 'r'}, 2
	case '\n':
		e.data, e.end = [4]byte{'\\', 'n'}, 2
	case '\\':
		e.data, e.end = [4]byte{'\\', '\\'}, 2
	case '\'':
		e.data, e.end = [4]byte{'\\', '\''}, 2
	case '"':
		e.data, e.end = [4]byte{'\\', '"'}, 2
	default:
		if c >= 0x20 && c <= 0x7e {
			e.data, e.end = [4]byte{c}, 1
		} else {
			e.data, e.end = [4]byte{'\\', 'x', hexDigits[c>>4], hexDigits[c&0xf]}, 4
		}
	}
	return e
}

// Next returns the next byte from the front.
func (e *EscapeDefault) Next() (byte, bool) {
	if e.start == e.end {
		return 0, false
	}
	b := e.data[e.start]
	e.start++
	return b, true
}

// NextBack returns the next byte from the back.
func (e *EscapeDefault) NextBack() (byte, bool) {
	if e.start == e.end {
		return 0, false
	}
	e.end--
	return e.data[e.end], true
}

// Len reports how many bytes are left.
func (e EscapeDefault) Len() int { return int(e.end - e.start) }

// All iterates the remaining bytes front to back without consuming e.
func (e EscapeDefault) All() iter.Seq[byte] {
	return func(yield func(byte) bool) {
		for i := e.start; i < e.end; i++ {
			if !yield(e.data[i]) {
				return
			}
		}
	}
}

// Backward iterates the remaining bytes back to front without consuming e.
func (e EscapeDefault) Backward() iter.Seq[byte] {
	return func(yield func(byte) bool) {
		for i := e.end; i > e.start; i-- {
			if !yield(e.data[i-1]) {
				return
			}
		}
	}
}

// AppendTo appends the remaining bytes to dst.
func (e EscapeDefault) AppendTo(dst []byte) []byte {
	return append(dst, e.data[e.start:e.end]...)
}

func (e EscapeDefault) String() string {
	return string(e.data[e.start:e.end])
}

// appendQuoted renders b between double quotes with every byte escaped.
func appendQuoted(dst, b []byte) []byte {
	dst = append(dst, '"')
	for _, c := range b {
		dst = Escape(c).AppendTo(dst)
	}
	return append(dst, '"')
}
