package strtab

import (
	"encoding/binary"
	"errors"
	"fmt"
	"hash/crc32"

	"github.com/klauspost/compress/zstd"
	"github.com/rawbytedev/cstr/internal/varint"
)

// Frame layout:
//
//	magic   "CST1"
//	flags   1 byte, bit 0 set when the payload is zstd compressed
//	rawLen  varint, table size before compression
//	payLen  varint, payload size
//	payload payLen bytes
//	crc     uint32 LE, IEEE over flags..payload
const (
	magic     = "CST1"
	flagZstd  = 0x01
	crcSize   = 4
	minFrame  = len(magic) + 1 + 1 + 1 + crcSize
	knownFlag = flagZstd

	// MaxFrameTable is the largest table Decode will rebuild. The header
	// length is checked against it before anything is allocated.
	MaxFrameTable = 64 << 20
)

var (
	ErrBadMagic  = errors.New("strtab: bad frame magic")
	ErrChecksum  = errors.New("strtab: crc mismatch")
	ErrTruncated = errors.New("strtab: truncated frame")
)

// Options control Encode.
type Options struct {
	Compress bool
	// Level is the zstd level; zero means zstd.SpeedDefault.
	Level zstd.EncoderLevel
}

// Encode serializes the table into a checksummed frame.
func (t *Table) Encode(opts Options) ([]byte, error) {
	if len(t.data) > MaxFrameTable {
		return nil, fmt.Errorf("%w: %d bytes exceeds frame limit", ErrTableFull, len(t.data))
	}
	var flags byte
	payload := t.data
	if opts.Compress {
		level := opts.Level
		if level == 0 {
			level = zstd.SpeedDefault
		}
		enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(level))
		if err != nil {
			return nil, fmt.Errorf("strtab: zstd writer: %w", err)
		}
		payload = enc.EncodeAll(t.data, nil)
		if err := enc.Close(); err != nil {
			return nil, fmt.Errorf("strtab: zstd close: %w", err)
		}
		flags |= flagZstd
	}

	out := make([]byte, 0, minFrame+2*varint.MaxLen+len(payload))
	out = append(out, magic...)
	out = append(out, flags)
	out = varint.Append(out, uint64(len(t.data)))
	out = varint.Append(out, uint64(len(payload)))
	out = append(out, payload...)
	out = binary.LittleEndian.AppendUint32(out, crc32.ChecksumIEEE(out[len(magic):]))
	return out, nil
}

// Decode parses a frame written by Encode.
func Decode(frame []byte) (*Table, error) {
	if len(frame) < minFrame {
		return nil, ErrTruncated
	}
	if string(frame[:len(magic)]) != magic {
		return nil, ErrBadMagic
	}
	body := frame[len(magic) : len(frame)-crcSize]
	if crc32.ChecksumIEEE(body) != binary.LittleEndian.Uint32(frame[len(frame)-crcSize:]) {
		return nil, ErrChecksum
	}

	flags := body[0]
	if flags&^knownFlag != 0 {
		return nil, fmt.Errorf("%w: unknown flags %#x", ErrMalformed, flags)
	}
	cursor := 1
	rawLen, n, err := varint.Read(body[cursor:])
	if err != nil {
		return nil, fmt.Errorf("strtab: raw length: %w", err)
	}
	cursor += n
	payLen, n, err := varint.Read(body[cursor:])
	if err != nil {
		return nil, fmt.Errorf("strtab: payload length: %w", err)
	}
	cursor += n
	if payLen != uint64(len(body)-cursor) {
		return nil, fmt.Errorf("%w: length mismatch", ErrMalformed)
	}
	if rawLen > MaxFrameTable {
		return nil, fmt.Errorf("%w: header says %d bytes, limit is %d", ErrMalformed, rawLen, MaxFrameTable)
	}
	payload := body[cursor:]

	var data []byte
	if flags&flagZstd != 0 {
		dec, err := zstd.NewReader(nil,
			zstd.WithDecoderConcurrency(1),
			zstd.WithDecoderMaxMemory(MaxFrameTable))
		if err != nil {
			return nil, fmt.Errorf("strtab: zstd reader: %w", err)
		}
		defer dec.Close()
		data, err = dec.DecodeAll(payload, nil)
		if err != nil {
			return nil, fmt.Errorf("strtab: decompress: %w", err)
		}
	} else {
		if payLen != rawLen {
			return nil, fmt.Errorf("%w: table is %d bytes, header says %d", ErrMalformed, payLen, rawLen)
		}
		data = append([]byte(nil), payload...)
	}
	if uint64(len(data)) != rawLen {
		return nil, fmt.Errorf("%w: table is %d bytes, header says %d", ErrMalformed, len(data), rawLen)
	}
	return Parse(data)
}

// MarshalBinary encodes the table with zstd compression.
func (t *Table) MarshalBinary() ([]byte, error) {
	return t.Encode(Options{Compress: true})
}

func (t *Table) UnmarshalBinary(data []byte) error {
	d, err := Decode(data)
	if err != nil {
		return err
	}
	*t = *d
	return nil
}
