package cstr

import (
	"bytes"
	"strings"
	"unsafe"
)

// CString is an owned C string: a heap buffer whose last byte is its only
// zero byte. The zero value is the empty string.
//
// A CString has one owner. Methods named Into* consume it, after which it
// reads as the empty string; the same holds after Release.
type CString struct {
	// inner is nil or ends with a zero byte. Strings built with NewUnchecked
	// may also hold earlier zero bytes.
	inner []byte
}

// New builds a CString from b, taking ownership of b. Ownership covers the
// whole of cap(b): when b has spare capacity the terminator is written at
// b[len(b)] in place, as with bytes.NewBuffer. If b contains a zero byte New
// returns a *NulError that gives b back untouched.
func New(b []byte) (*CString, error) {
	if i := bytes.IndexByte(b, 0); i >= 0 {
		return nil, &NulError{pos: i, bytes: b}
	}
	return NewUnchecked(b), nil
}

// NewString is New for a string; the bytes are copied.
func NewString(s string) (*CString, error) {
	return New([]byte(s))
}

// NewUnchecked appends the terminator to b without scanning it, taking
// ownership of b the same way New does. The caller
// guarantees b holds no zero byte; if it does, readers that scan for the
// terminator will see a shorter string than Bytes reports.
func NewUnchecked(b []byte) *CString {
	var inner []byte
	if cap(b) > len(b) {
		inner = append(b, 0)
	} else {
		inner = make([]byte, len(b)+1)
		copy(inner, b)
	}
	return &CString{inner: inner}
}

// FromRaw takes back ownership of a pointer returned by IntoRaw. The length
// is recomputed by scanning for the terminator, so foreign code may shorten
// the string in place by writing a zero byte.
//
// SAFETY: p must come from IntoRaw and be reclaimed exactly once. Passing any
// other pointer, such as one allocated by C or one already reclaimed, breaks
// the contract; FromRaw panics when it can tell.
func FromRaw(p unsafe.Pointer) *CString {
	return &CString{inner: exports.take(p)}
}

// IntoRaw consumes s and returns a pointer to its zero-terminated bytes for
// foreign code. The buffer is pinned and stays alive until the pointer is
// passed to FromRaw; a pointer that never comes back is leaked. Foreign code
// must not free it or write past the terminator.
func (s *CString) IntoRaw() unsafe.Pointer {
	buf := s.inner
	if len(buf) == 0 {
		buf = []byte{0}
	}
	s.inner = nil
	return exports.put(buf)
}

// IntoString consumes s and returns its contents as a string without
// copying. s no longer refers to the buffer, so the string cannot change. If they are not valid UTF-8 it returns an *IntoStringError and s
// is left as it was.
func (s *CString) IntoString() (string, error) {
	b := s.Bytes()
	if err := validateUTF8(b); err != nil {
		return "", &IntoStringError{inner: s, err: err}
	}
	s.inner = nil
	return unsafe.String(unsafe.SliceData(b), len(b)), nil
}

// IntoBytes consumes s and returns its contents without the terminator.
func (s *CString) IntoBytes() []byte {
	b := s.Bytes()
	s.inner = nil
	return b
}

// IntoBytesWithNul consumes s and returns its contents with the terminator.
func (s *CString) IntoBytesWithNul() []byte {
	b := s.BytesWithNul()
	if len(s.inner) == 0 {
		b = []byte{0}
	}
	s.inner = nil
	return b
}

// Release drops the buffer. The first byte is zeroed first so that a stale
// view or foreign pointer reads an empty string rather than old contents.
// It does not stop writes through such pointers.
func (s *CString) Release() {
	if len(s.inner) > 0 {
		s.inner[0] = 0
	}
	s.inner = nil
}

// AsCStr borrows s. The view is valid until s is consumed or released.
func (s *CString) AsCStr() CStr {
	if s == nil {
		return CStr{}
	}
	return CStr{inner: s.inner}
}

func (s *CString) Bytes() []byte        { return s.AsCStr().Bytes() }
func (s *CString) BytesWithNul() []byte { return s.AsCStr().BytesWithNul() }
func (s *CString) Len() int             { return s.AsCStr().Len() }
func (s *CString) IsEmpty() bool        { return s.AsCStr().IsEmpty() }

// Clone returns an independent copy of s.
func (s *CString) Clone() *CString {
	return s.AsCStr().ToOwned()
}

func (s *CString) Equal(o CStr) bool  { return s.AsCStr().Equal(o) }
func (s *CString) Compare(o CStr) int { return s.AsCStr().Compare(o) }
func (s *CString) Hash() uint64       { return s.AsCStr().Hash() }
func (s *CString) GoString() string   { return s.AsCStr().GoString() }
func (s *CString) String() string     { return s.AsCStr().String() }

// Str returns a copy of the contents if they are valid UTF-8. Unlike
// CStr.Str it copies, since s still owns the buffer and Release writes to it.
func (s *CString) Str() (string, error) {
	str, err := s.AsCStr().Str()
	if err != nil {
		return "", err
	}
	return strings.Clone(str), nil
}
