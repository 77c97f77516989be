// Package cipher implements the word cipher that hides literal values.
//
// Encrypt is a plain XTEA-family cascade and is meant to run inside the
// generator. Decrypt computes the exact inverse, but every half-word update
// goes through a vector kernel and every half-round round-trips its state
// through memory, so the routine does not look like a textbook decrypt loop
// and the recovered value never sits in a single register for long.
package cipher

import (
	"math/bits"

	"github.com/hengadev/obfx/internal/schedule"
)

// Engine encrypts and decrypts 64-bit words under one schedule. It is
// immutable once built and safe for concurrent use.
type Engine struct {
	s       schedule.Schedule
	profile schedule.Profile

	// Compact profile whitening rotations.
	rotIn  int
	rotOut int
}

// New returns an engine for s using the given profile.
func New(s schedule.Schedule, profile schedule.Profile) *Engine {
	return &Engine{
		s:       s,
		profile: profile,
		rotIn:   int(s.Subkeys[2]&63) | 1,
		rotOut:  int((s.Subkeys[3]>>8)&63) | 1,
	}
}

// Schedule returns a copy of the engine's key schedule.
func (e *Engine) Schedule() schedule.Schedule {
	return e.s
}

// Profile returns the cipher shape in use.
func (e *Engine) Profile() schedule.Profile {
	return e.profile
}

// Encrypt transforms a plaintext word into ciphertext.
func (e *Engine) Encrypt(w uint64) uint64 {
	if e.profile != schedule.Compact {
		return e.encryptCascade(w)
	}

	if e.s.Level == schedule.Low {
		return bits.RotateLeft64(w^e.s.Subkeys[0], e.rotIn) ^ e.s.Subkeys[1]
	}

	w = bits.RotateLeft64(w, e.rotIn) ^ e.s.Subkeys[4]
	w = e.encryptCascade(w)
	return bits.RotateLeft64(w, e.rotOut) ^ e.s.Subkeys[5]
}

// Decrypt recovers the plaintext word. Decrypt(Encrypt(w)) == w for every w.
func (e *Engine) Decrypt(w uint64) uint64 {
	var f fence
	w = f.word(w)

	if e.profile != schedule.Compact {
		return e.decryptCascade(&f, w)
	}

	if e.s.Level == schedule.Low {
		w = unxorWord(&f, w, e.s.Subkeys[1])
		w = bits.RotateLeft64(w, -e.rotIn)
		return unxorWord(&f, w, e.s.Subkeys[0])
	}

	w = bits.RotateLeft64(w^e.s.Subkeys[5], -e.rotOut)
	w = e.decryptCascade(&f, w)
	return bits.RotateLeft64(w^e.s.Subkeys[4], -e.rotIn)
}

func (e *Engine) encryptCascade(w uint64) uint64 {
	v0, v1 := uint32(w), uint32(w>>32)
	delta := e.s.Delta
	var sum uint32

	for i := uint32(0); i < e.s.Rounds; i++ {
		v0 += mix(v1) ^ (sum + e.s.Key32(sum&3))
		sum += delta
		v1 += mix(v0) ^ (sum + e.s.Key32((sum>>11)&3))
	}

	return uint64(v1)<<32 | uint64(v0)
}

func (e *Engine) decryptCascade(f *fence, w uint64) uint64 {
	v0, v1 := uint32(w), uint32(w>>32)
	delta := e.s.Delta
	sum := delta * e.s.Rounds

	for i := uint32(0); i < e.s.Rounds; i++ {
		v0, v1, sum = f.pass(v0, v1, sum)
		v1 = unmix(v0, v1, sum+e.s.Key32((sum>>11)&3))
		sum -= delta

		v0, v1, sum = f.pass(v0, v1, sum)
		v0 = unmix(v1, v0, sum+e.s.Key32(sum&3))
	}

	return f.word(uint64(v1)<<32 | uint64(v0))
}

// unxorWord removes a whitening key one half-word at a time on the vector
// kernel.
func unxorWord(f *fence, w, key uint64) uint64 {
	lo, hi := f.halves(uint32(w), uint32(w>>32))
	lo, hi = f.halves(unxor(lo, uint32(key)), unxor(hi, uint32(key>>32)))
	return f.word(uint64(hi)<<32 | uint64(lo))
}

// mix is the XTEA round function.
func mix(x uint32) uint32 {
	return ((x << 4) ^ (x >> 5)) + x
}
