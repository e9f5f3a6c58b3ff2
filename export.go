package cstr

import (
	"bytes"
	"fmt"
	"runtime"
	"sync"
	"unsafe"
)

// exported is a buffer handed out by IntoRaw. The pinner keeps the backing
// array at a fixed address while foreign code holds it, and the table entry
// keeps it reachable for the collector.
type exported struct {
	buf []byte
	pin runtime.Pinner
}

type exportTable struct {
	mu       sync.Mutex
	entries  map[unsafe.Pointer]*exported
	bytes    int
	exports  uint64
	reclaims uint64
}

var exports = exportTable{entries: make(map[unsafe.Pointer]*exported)}

// ExportStats is a snapshot of the buffers currently held by foreign code.
type ExportStats struct {
	Outstanding      int    // pointers returned by IntoRaw and not yet reclaimed
	OutstandingBytes int    // their total size, terminators included
	Exports          uint64 // IntoRaw calls since start
	Reclaims         uint64 // FromRaw calls since start
}

// Stats returns the current export counters. A growing Outstanding count
// means pointers are leaking on the foreign side.
func Stats() ExportStats {
	exports.mu.Lock()
	defer exports.mu.Unlock()
	return ExportStats{
		Outstanding:      len(exports.entries),
		OutstandingBytes: exports.bytes,
		Exports:          exports.exports,
		Reclaims:         exports.reclaims,
	}
}

func (t *exportTable) put(buf []byte) unsafe.Pointer {
	p := unsafe.Pointer(unsafe.SliceData(buf))
	e := &exported{buf: buf}
	e.pin.Pin(p)

	t.mu.Lock()
	t.entries[p] = e
	t.bytes += len(buf)
	t.exports++
	t.mu.Unlock()

	log().Trace().Uint64("addr", uint64(uintptr(p))).Int("len", len(buf)).Msg("cstr: exported buffer")
	return p
}

func (t *exportTable) take(p unsafe.Pointer) []byte {
	t.mu.Lock()
	e, ok := t.entries[p]
	if ok {
		delete(t.entries, p)
		t.bytes -= len(e.buf)
		t.reclaims++
	}
	t.mu.Unlock()

	if !ok {
		log().Error().Uint64("addr", uint64(uintptr(p))).Msg("cstr: FromRaw on pointer not owned by IntoRaw")
		panic(fmt.Sprintf("cstr: FromRaw(%#x): pointer was not returned by IntoRaw or was already reclaimed", uintptr(p)))
	}
	e.pin.Unpin()

	// The foreign side may have shortened the string in place; the length
	// is whatever precedes the first zero now.
	n := bytes.IndexByte(e.buf, 0)
	if n < 0 {
		log().Error().Uint64("addr", uint64(uintptr(p))).Int("len", len(e.buf)).Msg("cstr: terminator overwritten")
		panic(fmt.Sprintf("cstr: FromRaw(%#x): terminator was overwritten by foreign code", uintptr(p)))
	}
	log().Trace().Uint64("addr", uint64(uintptr(p))).Int("len", n+1).Msg("cstr: reclaimed buffer")
	return e.buf[: n+1 : n+1]
}
