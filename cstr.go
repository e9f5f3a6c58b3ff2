// Package cstr provides owned and borrowed C strings: byte sequences that end
// in exactly one zero byte, for handing text to and from foreign code.
//
// CString owns its buffer. CStr is a read-only view over bytes that live
// somewhere else, in a CString, a Go slice or memory owned by foreign code.
// FromPtr, FromRaw and IntoRaw are the only points where raw pointers cross
// into or out of the package; their preconditions are documented and not
// checked.
package cstr

import (
	"bytes"
	"unicode/utf8"
	"unsafe"

	"github.com/cespare/xxhash/v2"
)

// emptyNul backs the zero CStr and CString.
var emptyNul = []byte{0}

// CStr is a borrowed C string. The zero value is the empty string.
//
// A CStr never outlives the memory it points at; nothing enforces that.
// Two views are equal, ordered and hashed by their bytes without the
// terminator, so a CStr and a CString with the same content compare equal.
type CStr struct {
	// inner ends with a zero byte that is its only zero byte.
	inner []byte
}

// FromPtr wraps the C string starting at p without copying it.
//
// SAFETY: p must point to a zero-terminated byte sequence that stays valid
// and unmodified for as long as the returned CStr, or anything derived from
// it without copying, is in use. The length is found by scanning for the
// terminator; if there is none the scan reads past the allocation. A nil p
// yields the empty string.
func FromPtr(p unsafe.Pointer) CStr {
	if p == nil {
		return CStr{}
	}
	n := strlen(p)
	return CStr{inner: unsafe.Slice((*byte)(p), n+1)}
}

// FromBytesWithNul borrows b as a C string. b must end in a zero byte and
// contain no other.
func FromBytesWithNul(b []byte) (CStr, error) {
	i := bytes.IndexByte(b, 0)
	if i < 0 {
		return CStr{}, notNulTerminated()
	}
	if i+1 != len(b) {
		return CStr{}, interiorNul(i)
	}
	return CStr{inner: b}, nil
}

// FromBytesWithNulUnchecked borrows b as a C string without looking at it.
// The caller guarantees that b ends in its only zero byte.
func FromBytesWithNulUnchecked(b []byte) CStr {
	return CStr{inner: b}
}

// FromBytesUntilNul borrows the C string at the start of b, ignoring
// everything after the first zero byte.
func FromBytesUntilNul(b []byte) (CStr, error) {
	i := bytes.IndexByte(b, 0)
	if i < 0 {
		return CStr{}, notNulTerminated()
	}
	return CStr{inner: b[: i+1 : i+1]}, nil
}

func (c CStr) withNul() []byte {
	if len(c.inner) == 0 {
		return emptyNul
	}
	return c.inner
}

// Ptr returns the address of the first byte, for passing to foreign code.
// It is valid only while the backing memory is.
func (c CStr) Ptr() unsafe.Pointer {
	return unsafe.Pointer(unsafe.SliceData(c.withNul()))
}

// Bytes returns the contents without the terminator. The slice aliases the
// view and must not be modified.
func (c CStr) Bytes() []byte {
	b := c.withNul()
	return b[: len(b)-1 : len(b)-1]
}

// BytesWithNul returns the contents including the terminator.
func (c CStr) BytesWithNul() []byte {
	return c.withNul()
}

// Len is the number of bytes before the terminator.
func (c CStr) Len() int { return len(c.withNul()) - 1 }

func (c CStr) IsEmpty() bool { return c.Len() == 0 }

// Str returns the contents as a string if they are valid UTF-8. The string
// shares memory with the view; copy it with strings.Clone to keep it past
// the lifetime of the backing bytes.
func (c CStr) Str() (string, error) {
	b := c.Bytes()
	if err := validateUTF8(b); err != nil {
		return "", err
	}
	return unsafe.String(unsafe.SliceData(b), len(b)), nil
}

// ToStringLossy decodes the contents as UTF-8, replacing invalid sequences
// with U+FFFD. When nothing needs replacing the result shares memory with
// the view, as with Str.
func (c CStr) ToStringLossy() string {
	return lossy(c.Bytes())
}

// ToOwned copies the view into a new CString.
func (c CStr) ToOwned() *CString {
	return &CString{inner: bytes.Clone(c.withNul())}
}

func (c CStr) Equal(o CStr) bool { return bytes.Equal(c.Bytes(), o.Bytes()) }

// Compare orders views bytewise, like bytes.Compare.
func (c CStr) Compare(o CStr) int { return bytes.Compare(c.Bytes(), o.Bytes()) }

// Hash returns the xxhash64 of the contents.
func (c CStr) Hash() uint64 { return xxhash.Sum64(c.Bytes()) }

// GoString renders the contents quoted, with every byte outside printable
// ASCII escaped. It backs the %#v verb.
func (c CStr) GoString() string {
	b := c.Bytes()
	return string(appendQuoted(make([]byte, 0, len(b)+2), b))
}

// String returns a lossy UTF-8 copy of the contents.
func (c CStr) String() string {
	b := c.Bytes()
	if utf8.Valid(b) {
		return string(b)
	}
	return lossy(b)
}
