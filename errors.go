package cstr

import (
	"errors"
	"fmt"
)

var (
	ErrInteriorNul      = errors.New("interior nul byte")
	ErrNotNulTerminated = errors.New("not nul terminated")
	ErrInvalidUTF8      = errors.New("invalid utf-8")
)

// NulError is returned by New when the input holds a zero byte. It keeps the
// rejected bytes so the caller can reuse them.
type NulError struct {
	pos   int
	bytes []byte
}

// NulPosition returns the offset of the first zero byte.
func (e *NulError) NulPosition() int { return e.pos }

// IntoBytes hands back the bytes that were passed to New, unmodified.
func (e *NulError) IntoBytes() []byte { return e.bytes }

func (e *NulError) Error() string {
	return fmt.Sprintf("nul byte found in provided data at position: %d", e.pos)
}

func (e *NulError) Is(target error) bool { return target == ErrInteriorNul }

type fromBytesKind uint8

const (
	kindInteriorNul fromBytesKind = iota
	kindNotNulTerminated
)

// FromBytesWithNulError reports why a byte slice is not a valid C string:
// either a zero byte occurs before the end, or there is none at all.
type FromBytesWithNulError struct {
	kind fromBytesKind
	pos  int
}

func interiorNul(pos int) *FromBytesWithNulError {
	return &FromBytesWithNulError{kind: kindInteriorNul, pos: pos}
}

func notNulTerminated() *FromBytesWithNulError {
	return &FromBytesWithNulError{kind: kindNotNulTerminated}
}

// InteriorNul returns the offset of the premature zero byte, if that was the
// defect.
func (e *FromBytesWithNulError) InteriorNul() (int, bool) {
	return e.pos, e.kind == kindInteriorNul
}

// NotNulTerminated reports whether the input held no zero byte.
func (e *FromBytesWithNulError) NotNulTerminated() bool {
	return e.kind == kindNotNulTerminated
}

func (e *FromBytesWithNulError) Error() string {
	if e.kind == kindInteriorNul {
		return fmt.Sprintf("data provided contains an interior nul byte at byte pos %d", e.pos)
	}
	return "data provided is not nul terminated"
}

func (e *FromBytesWithNulError) Is(target error) bool {
	switch e.kind {
	case kindInteriorNul:
		return target == ErrInteriorNul
	default:
		return target == ErrNotNulTerminated
	}
}

// Utf8Error describes the first invalid UTF-8 sequence in a payload.
type Utf8Error struct {
	validUpTo int
	errorLen  int
}

// ValidUpTo is the offset of the first invalid sequence; every byte before it
// is valid UTF-8.
func (e *Utf8Error) ValidUpTo() int { return e.validUpTo }

// ErrorLen is the length of the invalid sequence, or 0 when the input ended
// in the middle of an otherwise valid sequence.
func (e *Utf8Error) ErrorLen() int { return e.errorLen }

func (e *Utf8Error) Error() string {
	if e.errorLen == 0 {
		return fmt.Sprintf("incomplete utf-8 byte sequence from index %d", e.validUpTo)
	}
	return fmt.Sprintf("invalid utf-8 sequence of %d bytes from index %d", e.errorLen, e.validUpTo)
}

func (e *Utf8Error) Is(target error) bool { return target == ErrInvalidUTF8 }

// IntoStringError is returned by CString.IntoString. The CString it was
// called on is kept intact and can be recovered with IntoCString.
type IntoStringError struct {
	inner *CString
	err   *Utf8Error
}

// IntoCString returns the original buffer.
func (e *IntoStringError) IntoCString() *CString { return e.inner }

// Utf8Error returns the decode failure.
func (e *IntoStringError) Utf8Error() *Utf8Error { return e.err }

func (e *IntoStringError) Error() string { return "C string contained non-utf8 bytes" }

func (e *IntoStringError) Unwrap() error { return e.err }
