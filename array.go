package obfx

import (
	"iter"
	"sync/atomic"

	"github.com/hengadev/obfx/internal/codec"
	"github.com/hengadev/obfx/internal/obfxerr"
)

// Array holds a fixed number of obfuscated scalars, each encrypted as its
// own word. The length is set at construction and never changes.
//
// Copies of an Array share storage, like slices; use Clone for an
// independent copy. Like Value, an Array has no internal locking.
type Array[T Number] struct {
	key   *Key
	words []uint64
}

// NewArray builds an array of size elements from values. Elements past
// len(values) hold an encrypted zero. Supplying more values than size
// returns a *CapacityError and no array.
func NewArray[T Number](key *Key, size int, values ...T) (Array[T], error) {
	if size < 1 || len(values) > size {
		return Array[T]{}, obfxerr.NewCapacityError(obfxerr.Construct, len(values), size)
	}

	a := Array[T]{key: key, words: make([]uint64, size)}
	var zero T
	for i := range a.words {
		x := zero
		if i < len(values) {
			x = values[i]
		}
		a.words[i] = key.Seal(codec.ToRaw(x))
	}

	return a, nil
}

// NewArrayFrom builds an array sized to values.
func NewArrayFrom[T Number](key *Key, values []T) (Array[T], error) {
	return NewArray(key, len(values), values...)
}

// RestoreArray wraps words sealed ahead of time, typically by obfx-gen.
func RestoreArray[T Number](key *Key, words ...uint64) Array[T] {
	return Array[T]{key: key, words: append([]uint64(nil), words...)}
}

// Len returns the number of elements.
func (a *Array[T]) Len() int {
	return len(a.words)
}

// Get decrypts element i.
func (a *Array[T]) Get(i int) (T, error) {
	if i < 0 || i >= len(a.words) {
		var zero T
		return zero, obfxerr.NewBoundsError(obfxerr.Get, i, len(a.words))
	}
	return a.open(i), nil
}

// At decrypts element i and panics with a *BoundsError when i is out of
// range, mirroring slice indexing.
func (a *Array[T]) At(i int) T {
	v, err := a.Get(i)
	if err != nil {
		panic(err)
	}
	return v
}

// Set re-encrypts x into element i.
func (a *Array[T]) Set(i int, x T) error {
	if i < 0 || i >= len(a.words) {
		return obfxerr.NewBoundsError(obfxerr.Set, i, len(a.words))
	}
	a.seal(i, x)
	return nil
}

// Assign overwrites the first len(values) elements. Elements past the input
// keep their previous contents. More values than Len returns a
// *CapacityError and leaves the array untouched.
func (a *Array[T]) Assign(values ...T) error {
	if len(values) > len(a.words) {
		return obfxerr.NewCapacityError(obfxerr.Assign, len(values), len(a.words))
	}
	for i, x := range values {
		a.seal(i, x)
	}
	return nil
}

// CopyTo decrypts min(len(dst), Len()) elements into dst and returns the
// number copied.
func (a *Array[T]) CopyTo(dst []T) int {
	n := min(len(dst), len(a.words))
	for i := 0; i < n; i++ {
		dst[i] = a.open(i)
	}
	return n
}

// Equal compares element-wise in index order and stops at the first
// mismatch. Arrays of different length are never equal.
func (a *Array[T]) Equal(o *Array[T]) bool {
	if len(a.words) != len(o.words) {
		return false
	}
	for i := range a.words {
		if a.open(i) != o.open(i) {
			return false
		}
	}
	return true
}

func (a *Array[T]) NotEqual(o *Array[T]) bool {
	return !a.Equal(o)
}

// All yields index/value pairs in order, decrypting lazily. The sequence can
// be ranged over any number of times.
func (a *Array[T]) All() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		for i := 0; i < len(a.words); i++ {
			if !yield(i, a.open(i)) {
				return
			}
		}
	}
}

// Values yields the decrypted elements in order.
func (a *Array[T]) Values() iter.Seq[T] {
	return func(yield func(T) bool) {
		for i := 0; i < len(a.words); i++ {
			if !yield(a.open(i)) {
				return
			}
		}
	}
}

// Sealed returns the ciphertext word of element i.
func (a *Array[T]) Sealed(i int) (uint64, error) {
	if i < 0 || i >= len(a.words) {
		return 0, obfxerr.NewBoundsError(obfxerr.Get, i, len(a.words))
	}
	return atomic.LoadUint64(&a.words[i]), nil
}

// Clone returns an array with its own copy of the encrypted words.
func (a *Array[T]) Clone() Array[T] {
	return RestoreArray[T](a.key, a.snapshot()...)
}

// Key returns the key a was built with.
func (a *Array[T]) Key() *Key {
	return a.key
}

func (a *Array[T]) snapshot() []uint64 {
	out := make([]uint64, len(a.words))
	for i := range a.words {
		out[i] = atomic.LoadUint64(&a.words[i])
	}
	return out
}

func (a *Array[T]) open(i int) T {
	return codec.FromRaw[T](a.key.Open(atomic.LoadUint64(&a.words[i])))
}

func (a *Array[T]) seal(i int, x T) {
	atomic.StoreUint64(&a.words[i], a.key.Seal(codec.ToRaw(x)))
}
