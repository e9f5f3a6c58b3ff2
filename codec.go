package cstr

import (
	"bytes"

	"github.com/vmihailenco/msgpack/v5"
)

var (
	_ msgpack.CustomEncoder = (*CString)(nil)
	_ msgpack.CustomDecoder = (*CString)(nil)
)

// MarshalText returns the contents if they are valid UTF-8.
func (c CStr) MarshalText() ([]byte, error) {
	b := c.Bytes()
	if err := validateUTF8(b); err != nil {
		return nil, err
	}
	return b, nil
}

func (s *CString) MarshalText() ([]byte, error) {
	return s.AsCStr().MarshalText()
}

// UnmarshalText replaces s with a copy of text. Text holding a zero byte is
// rejected with a *NulError.
func (s *CString) UnmarshalText(text []byte) error {
	n, err := New(bytes.Clone(text))
	if err != nil {
		return err
	}
	s.inner = n.inner
	return nil
}

// EncodeMsgpack writes the contents as a msgpack bin value, so payloads that
// are not UTF-8 survive the round trip.
func (s *CString) EncodeMsgpack(enc *msgpack.Encoder) error {
	return enc.EncodeBytes(s.Bytes())
}

func (s *CString) DecodeMsgpack(dec *msgpack.Decoder) error {
	b, err := dec.DecodeBytes()
	if err != nil {
		return err
	}
	n, err := New(b)
	if err != nil {
		return err
	}
	s.inner = n.inner
	return nil
}
