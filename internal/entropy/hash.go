// Package entropy turns build context into per-site seeds.
package entropy

import "unsafe"

// Hash computes the case-insensitive diffusion hash of s.
//
// ASCII upper-case letters are folded to lower case before mixing, so
// "Main.go" and "main.go" hash identically.
func Hash(s string) uint64 {
	var h uint64
	for i := 0; i < len(s); i++ {
		h = step(h, s[i])
	}
	return finalize(h)
}

// HashBytes is Hash over a byte slice.
func HashBytes(b []byte) uint64 {
	var h uint64
	for _, c := range b {
		h = step(h, c)
	}
	return finalize(h)
}

// HashCString hashes the NUL-terminated buffer starting at p. The length is
// found by scanning for the terminator before any mixing happens. A nil p
// hashes as the empty input.
func HashCString(p *byte) uint64 {
	if p == nil {
		return finalize(0)
	}

	n := 0
	for *(*byte)(unsafe.Add(unsafe.Pointer(p), n)) != 0 {
		n++
	}

	return HashBytes(unsafe.Slice(p, n))
}

func step(h uint64, c byte) uint64 {
	if c >= 'A' && c <= 'Z' {
		c += 'a' - 'A'
	}
	h += uint64(c)
	h += h << 8
	h ^= h >> 11
	return h
}

func finalize(h uint64) uint64 {
	h += h << 5
	h ^= h >> 13
	h += h << 10
	return h
}
