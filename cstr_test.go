package cstr

import (
	"errors"
	"fmt"
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var sink string

func TestFromPtr(t *testing.T) {
	data := []byte("123\x00")
	c := FromPtr(unsafe.Pointer(&data[0]))
	require.Equal(t, []byte("123"), c.Bytes())
	require.Equal(t, []byte("123\x00"), c.BytesWithNul())
	require.Equal(t, 3, c.Len())
	require.Equal(t, unsafe.Pointer(&data[0]), c.Ptr())
}

func TestFromPtrStopsAtFirstNul(t *testing.T) {
	data := []byte("12\x00trailing\x00")
	c := FromPtr(unsafe.Pointer(&data[0]))
	require.Equal(t, []byte("12"), c.Bytes())
	require.Equal(t, []byte("12\x00"), c.BytesWithNul())
}

func TestFromPtrNil(t *testing.T) {
	c := FromPtr(nil)
	require.True(t, c.IsEmpty())
	require.Equal(t, []byte{0}, c.BytesWithNul())
}

func TestZeroCStr(t *testing.T) {
	var c CStr
	require.Empty(t, c.Bytes())
	require.Equal(t, []byte{0}, c.BytesWithNul())
	require.NotNil(t, c.Ptr())
	require.Equal(t, byte(0), *(*byte)(c.Ptr()))
	require.Equal(t, `""`, c.GoString())
	require.True(t, c.Equal(FromPtr(nil)))
}

func TestFromBytesWithNul(t *testing.T) {
	data := []byte("123\x00")
	c, err := FromBytesWithNul(data)
	require.NoError(t, err)
	require.Equal(t, []byte("123"), c.Bytes())
	require.Equal(t, data, c.BytesWithNul())
	require.True(t, c.Equal(FromBytesWithNulUnchecked(data)))
}

func TestFromBytesWithNulUnterminated(t *testing.T) {
	_, err := FromBytesWithNul([]byte("123"))
	require.Error(t, err)
	require.ErrorIs(t, err, ErrNotNulTerminated)

	var fe *FromBytesWithNulError
	require.True(t, errors.As(err, &fe))
	require.True(t, fe.NotNulTerminated())
	_, interior := fe.InteriorNul()
	require.False(t, interior)
	require.Equal(t, "data provided is not nul terminated", err.Error())

	_, err = FromBytesWithNul(nil)
	require.ErrorIs(t, err, ErrNotNulTerminated)
}

func TestFromBytesWithNulInterior(t *testing.T) {
	_, err := FromBytesWithNul([]byte("1\x0023\x00"))
	require.ErrorIs(t, err, ErrInteriorNul)

	var fe *FromBytesWithNulError
	require.True(t, errors.As(err, &fe))
	pos, ok := fe.InteriorNul()
	require.True(t, ok)
	require.Equal(t, 1, pos)
	require.False(t, fe.NotNulTerminated())
	require.Equal(t, "data provided contains an interior nul byte at byte pos 1", err.Error())
}

func TestFromBytesWithNulOnlyTerminator(t *testing.T) {
	c, err := FromBytesWithNul([]byte{0})
	require.NoError(t, err)
	require.True(t, c.IsEmpty())
}

func TestFromBytesUntilNul(t *testing.T) {
	c, err := FromBytesUntilNul([]byte("ab\x00cd\x00"))
	require.NoError(t, err)
	require.Equal(t, []byte("ab\x00"), c.BytesWithNul())
	require.Equal(t, 3, cap(c.BytesWithNul()))

	_, err = FromBytesUntilNul([]byte("abc"))
	require.ErrorIs(t, err, ErrNotNulTerminated)
}

func TestStr(t *testing.T) {
	data := []byte("123\xe2\x80\xa6\x00")
	c := FromPtr(unsafe.Pointer(&data[0]))
	s, err := c.Str()
	require.NoError(t, err)
	require.Equal(t, "123…", s)
	require.Equal(t, "123…", c.ToStringLossy())

	data = []byte("123\xe2\x00")
	c = FromPtr(unsafe.Pointer(&data[0]))
	_, err = c.Str()
	require.ErrorIs(t, err, ErrInvalidUTF8)
	var ue *Utf8Error
	require.True(t, errors.As(err, &ue))
	require.Equal(t, 3, ue.ValidUpTo())
	require.Equal(t, "123�", c.ToStringLossy())
	require.Equal(t, "123�", c.String())
}

func TestToStringLossySingleInvalidByte(t *testing.T) {
	c, err := FromBytesWithNul([]byte("ab\xffcd\x00"))
	require.NoError(t, err)
	require.Equal(t, "ab�cd", c.ToStringLossy())
}

func TestToStringLossyValidDoesNotAllocate(t *testing.T) {
	data := []byte("hello, world…\x00")
	c, err := FromBytesWithNul(data)
	require.NoError(t, err)

	allocs := testing.AllocsPerRun(100, func() {
		sink = c.ToStringLossy()
	})
	require.Zero(t, allocs)
	require.Equal(t, unsafe.SliceData(data), unsafe.StringData(sink))
}

func TestToOwned(t *testing.T) {
	data := []byte("123\x00")
	owned := FromPtr(unsafe.Pointer(&data[0])).ToOwned()
	require.Equal(t, data, owned.BytesWithNul())

	data[0] = 'x'
	require.Equal(t, []byte("123"), owned.Bytes())
}

func TestCompare(t *testing.T) {
	a, _ := FromBytesWithNul([]byte("abc\x00"))
	b, _ := FromBytesWithNul([]byte("abd\x00"))
	ab, _ := FromBytesWithNul([]byte("ab\x00"))
	assert.Equal(t, -1, a.Compare(b))
	assert.Equal(t, 1, b.Compare(a))
	assert.Equal(t, 1, a.Compare(ab))
	assert.Equal(t, 0, a.Compare(a))
	assert.False(t, a.Equal(ab))
}

func TestEqualHash(t *testing.T) {
	data := []byte("123\xe2\xfa\xa6\x00")
	c := FromPtr(unsafe.Pointer(&data[0]))
	owned, err := New(append([]byte(nil), data[:len(data)-1]...))
	require.NoError(t, err)

	require.True(t, c.Equal(owned.AsCStr()))
	require.True(t, owned.Equal(c))
	require.Equal(t, c.Hash(), owned.Hash())
	require.Zero(t, owned.Compare(c))
}

func TestGoString(t *testing.T) {
	c, err := FromBytesWithNul([]byte("tab\there \"q\"\x7f\x00"))
	require.NoError(t, err)
	require.Equal(t, `"tab\there \"q\"\x7f"`, fmt.Sprintf("%#v", c))
}
