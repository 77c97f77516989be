package obfx

import (
	"unicode/utf16"
	"unsafe"
)

// Chars is an obfuscated character buffer. It stores one encrypted word per
// character plus an encrypted NUL terminator, so a string of n characters
// has Len n+1.
type Chars[C Char] struct {
	Array[C]
}

// NewChars encrypts chars followed by a terminator.
func NewChars[C Char](key *Key, chars []C) Chars[C] {
	buf := make([]C, len(chars)+1)
	copy(buf, chars)
	// Cannot fail: the size always matches the input.
	a, _ := NewArrayFrom(key, buf)
	return Chars[C]{Array: a}
}

// NewText encrypts the bytes of s.
func NewText(key *Key, s string) Chars[byte] {
	return NewChars(key, []byte(s))
}

// NewWideText encrypts the runes of s.
func NewWideText(key *Key, s string) Chars[rune] {
	return NewChars(key, []rune(s))
}

// NewUTF16Text encrypts s as UTF-16 code units.
func NewUTF16Text(key *Key, s string) Chars[uint16] {
	return NewChars(key, utf16.Encode([]rune(s)))
}

// RestoreChars wraps words sealed ahead of time. The last word is expected
// to be the encrypted terminator.
func RestoreChars[C Char](key *Key, words ...uint64) Chars[C] {
	return Chars[C]{Array: RestoreArray[C](key, words...)}
}

// View decrypts the whole buffer, terminator included, into a fresh slice
// owned by the caller.
func (c *Chars[C]) View() []C {
	out := make([]C, c.Len())
	c.CopyTo(out)
	return out
}

// String decrypts the buffer and decodes it up to the first NUL.
func (c *Chars[C]) String() string {
	view := c.View()
	n := 0
	for n < len(view) && view[n] != 0 {
		n++
	}
	view = view[:n]

	var zero C
	switch unsafe.Sizeof(zero) {
	case 1:
		b := make([]byte, n)
		for i, ch := range view {
			b[i] = byte(ch)
		}
		return string(b)
	case 2:
		u := make([]uint16, n)
		for i, ch := range view {
			u[i] = uint16(ch)
		}
		return string(utf16.Decode(u))
	default:
		r := make([]rune, n)
		for i, ch := range view {
			r[i] = rune(ch)
		}
		return string(r)
	}
}

// Equal compares the decrypted buffers character by character.
func (c *Chars[C]) Equal(o *Chars[C]) bool {
	return c.Array.Equal(&o.Array)
}
