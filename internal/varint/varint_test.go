package varint

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRoundTrip(t *testing.T) {
	for _, x := range []uint64{0, 1, 127, 128, 300, 1 << 32, math.MaxUint64} {
		b := Append(nil, x)
		got, n, err := Read(b)
		require.NoError(t, err)
		require.Equal(t, len(b), n)
		require.Equal(t, x, got)
	}
	require.Len(t, Append(nil, math.MaxUint64), MaxLen)
}

func TestReadErrors(t *testing.T) {
	_, _, err := Read(nil)
	require.ErrorIs(t, err, ErrTruncated)

	_, _, err = Read([]byte{0x80, 0x80})
	require.ErrorIs(t, err, ErrTruncated)

	over := []byte{0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0x02}
	_, _, err = Read(over)
	require.ErrorIs(t, err, ErrOverflow)
}

func TestReadStopsAtFirstByte(t *testing.T) {
	x, n, err := Read([]byte{0x05, 0xff})
	require.NoError(t, err)
	require.Equal(t, uint64(5), x)
	require.Equal(t, 1, n)
}
