package obfx

import (
	"cmp"
	"sync/atomic"

	"github.com/hengadev/obfx/internal/codec"
)

// Value holds one obfuscated scalar. Only the encrypted word is stored; every
// read decrypts it and every write re-encrypts.
//
// A Value has no internal locking. Concurrent Set and Get on the same Value
// is a data race, exactly as for a plain variable. On 32-bit platforms a
// Value must be 64-bit aligned (package-level variables and the first field
// of an allocated struct are).
//
// Build Values with New or Restore. The zero Value has no key: Get returns
// the zero T and Set panics.
type Value[T Number] struct {
	word uint64
	key  *Key
}

// New encrypts v under key.
func New[T Number](key *Key, v T) Value[T] {
	return Value[T]{word: key.Seal(codec.ToRaw(v)), key: key}
}

// Restore wraps a word that was sealed ahead of time, typically by obfx-gen.
func Restore[T Number](key *Key, word uint64) Value[T] {
	return Value[T]{word: word, key: key}
}

// Get decrypts and returns the value.
func (v *Value[T]) Get() T {
	if v.key == nil {
		var zero T
		return zero
	}
	return codec.FromRaw[T](v.key.Open(atomic.LoadUint64(&v.word)))
}

// Set re-encrypts x and replaces the stored word.
func (v *Value[T]) Set(x T) {
	if v.key == nil {
		panic("obfx: Set on a Value built without a key")
	}
	atomic.StoreUint64(&v.word, v.key.Seal(codec.ToRaw(x)))
}

// Sealed returns the stored ciphertext word.
func (v *Value[T]) Sealed() uint64 {
	return atomic.LoadUint64(&v.word)
}

// Key returns the key v was built with.
func (v *Value[T]) Key() *Key {
	return v.key
}

func (v *Value[T]) Equal(o *Value[T]) bool {
	return v.Get() == o.Get()
}

func (v *Value[T]) NotEqual(o *Value[T]) bool {
	return !v.Equal(o)
}

func (v *Value[T]) Less(o *Value[T]) bool {
	return v.Get() < o.Get()
}

func (v *Value[T]) LessEqual(o *Value[T]) bool {
	return v.Get() <= o.Get()
}

func (v *Value[T]) Greater(o *Value[T]) bool {
	return v.Get() > o.Get()
}

func (v *Value[T]) GreaterEqual(o *Value[T]) bool {
	return v.Get() >= o.Get()
}

// Compare returns -1, 0 or +1 following cmp.Compare, which orders NaN
// before every other float.
func (v *Value[T]) Compare(o *Value[T]) int {
	return cmp.Compare(v.Get(), o.Get())
}

func (v *Value[T]) Add(o *Value[T]) T {
	return v.Get() + o.Get()
}

func (v *Value[T]) Sub(o *Value[T]) T {
	return v.Get() - o.Get()
}

func (v *Value[T]) Mul(o *Value[T]) T {
	return v.Get() * o.Get()
}

// Div divides the decrypted values. Integer division by zero panics as it
// would on plain integers.
func (v *Value[T]) Div(o *Value[T]) T {
	return v.Get() / o.Get()
}

// AddAssign stores v + o in v.
func (v *Value[T]) AddAssign(o *Value[T]) {
	v.Set(v.Add(o))
}

// SubAssign stores v - o in v.
func (v *Value[T]) SubAssign(o *Value[T]) {
	v.Set(v.Sub(o))
}
