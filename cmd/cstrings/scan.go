package main

import (
	"fmt"
	"io"

	"github.com/rawbytedev/cstr"
)

type match struct {
	off int
	s   cstr.CStr
}

// scan finds the zero-terminated runs in data that pass the config filters.
// Trailing bytes with no terminator are not a C string and are skipped.
func scan(data []byte, cfg config) []match {
	var out []match
	off := 0
	for off < len(data) {
		s, err := cstr.FromBytesUntilNul(data[off:])
		if err != nil {
			break
		}
		if s.Len() >= cfg.MinLen && (!cfg.Printable || printable(s.Bytes())) {
			out = append(out, match{off: off, s: s})
		}
		off += s.Len() + 1
	}
	return out
}

func printable(b []byte) bool {
	for _, c := range b {
		if (c < 0x20 || c > 0x7e) && c != '\t' {
			return false
		}
	}
	return true
}

func render(s cstr.CStr, escape bool) string {
	if escape {
		return s.GoString()
	}
	return s.String()
}

func writeMatches(w io.Writer, matches []match, escape bool) error {
	for _, m := range matches {
		if _, err := fmt.Fprintf(w, "%#x\t%s\n", m.off, render(m.s, escape)); err != nil {
			return err
		}
	}
	return nil
}
