// Package strtab builds and reads string tables: runs of C strings packed
// back to back and addressed by byte offset, as in an ELF .strtab section.
// Offset 0 always holds the empty string.
package strtab

import (
	"bytes"
	"errors"
	"fmt"
	"iter"
	"math"

	"github.com/rawbytedev/cstr"
)

var (
	ErrOffsetRange = errors.New("strtab: offset out of range")
	ErrTableFull   = errors.New("strtab: table exceeds 4GiB")
	ErrMalformed   = errors.New("strtab: malformed table")
)

// Table is a string table. Adding a string that is already present returns
// the existing offset.
type Table struct {
	// data starts and ends with a zero byte.
	data  []byte
	index map[string]uint32
	count int
}

// New returns a table holding only the empty string.
func New() *Table {
	return &Table{
		data:  []byte{0},
		index: map[string]uint32{"": 0},
	}
}

// Parse wraps data, which must begin and end with a zero byte, as a table.
// The table keeps using data.
func Parse(data []byte) (*Table, error) {
	if len(data) == 0 || data[0] != 0 {
		return nil, fmt.Errorf("%w: missing leading nul", ErrMalformed)
	}
	if data[len(data)-1] != 0 {
		return nil, fmt.Errorf("%w: %w", ErrMalformed, cstr.ErrNotNulTerminated)
	}
	if uint64(len(data)) > math.MaxUint32 {
		return nil, ErrTableFull
	}
	t := &Table{data: data, index: map[string]uint32{"": 0}}
	for off, s := range t.All() {
		if _, ok := t.index[string(s.Bytes())]; !ok {
			t.index[string(s.Bytes())] = off
		}
		t.count++
	}
	return t, nil
}

// Add copies b into the table and returns its offset. b must not contain a
// zero byte; if it does the *cstr.NulError from cstr.New is returned.
func (t *Table) Add(b []byte) (uint32, error) {
	s, err := cstr.New(bytes.Clone(b))
	if err != nil {
		return 0, err
	}
	return t.AddCStr(s.AsCStr())
}

// AddCStr copies s into the table and returns its offset.
func (t *Table) AddCStr(s cstr.CStr) (uint32, error) {
	if off, ok := t.index[string(s.Bytes())]; ok {
		return off, nil
	}
	if uint64(len(t.data))+uint64(len(s.BytesWithNul())) > math.MaxUint32 {
		return 0, ErrTableFull
	}
	off := uint32(len(t.data))
	t.data = append(t.data, s.BytesWithNul()...)
	t.index[string(s.Bytes())] = off
	t.count++
	return off, nil
}

// Lookup returns a view of the string at off. The view aliases the table
// and is invalidated by the next Add.
func (t *Table) Lookup(off uint32) (cstr.CStr, error) {
	if int64(off) >= int64(len(t.data)) {
		return cstr.CStr{}, fmt.Errorf("%w: %d >= %d", ErrOffsetRange, off, len(t.data))
	}
	return cstr.FromBytesUntilNul(t.data[off:])
}

// Offset returns the offset of b if the table holds it.
func (t *Table) Offset(b []byte) (uint32, bool) {
	off, ok := t.index[string(b)]
	return off, ok
}

// All yields every string after the leading empty one with its offset, in
// table order.
func (t *Table) All() iter.Seq2[uint32, cstr.CStr] {
	return func(yield func(uint32, cstr.CStr) bool) {
		off := 1
		for off < len(t.data) {
			s, err := cstr.FromBytesUntilNul(t.data[off:])
			if err != nil {
				return
			}
			if !yield(uint32(off), s) {
				return
			}
			off += s.Len() + 1
		}
	}
}

// Len is the number of strings added, not counting the leading empty one.
func (t *Table) Len() int { return t.count }

// Size is the table size in bytes.
func (t *Table) Size() int { return len(t.data) }

// Bytes returns the raw table. It must not be modified.
func (t *Table) Bytes() []byte { return t.data }
