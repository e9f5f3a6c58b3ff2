package cstr

import "unsafe"

// strlen counts the bytes preceding the first zero byte at p.
//
// SAFETY: p must point to readable memory that contains a zero byte at or
// after p, and nothing may write to that range during the scan. Neither is
// checked; reading past the allocation is undefined behavior.
func strlen(p unsafe.Pointer) int {
	n := 0
	for *(*byte)(unsafe.Add(p, n)) != 0 {
		n++
	}
	return n
}
