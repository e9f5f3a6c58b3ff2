package main

import (
	"bufio"
	"fmt"
	"io"

	"github.com/rawbytedev/cstr/pkg/strtab"
)

// packLines adds every line of r to tab. name labels errors.
func packLines(tab *strtab.Table, r io.Reader, name string) error {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	line := 0
	for sc.Scan() {
		line++
		if _, err := tab.Add(sc.Bytes()); err != nil {
			return fmt.Errorf("%s:%d: %w", name, line, err)
		}
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	return nil
}

type dumpEntry struct {
	Offset  uint32 `json:"offset"`
	Value   string `json:"value"`
	Escaped string `json:"escaped"`
}
