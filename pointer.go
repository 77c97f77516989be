package obfx

import (
	"sync/atomic"
	"unsafe"
)

// Pointer hides the address held by a *T. Only the pointer value is
// obfuscated, not the pointee.
//
// The garbage collector cannot see through the encrypted word, so the caller
// must keep the pointee reachable by other means for as long as the Pointer
// is used. Pointer has no ordering and no arithmetic.
//
// Build Pointers with NewPointer or RestorePointer. The zero Pointer has no
// key: Get returns nil and Set panics.
type Pointer[T any] struct {
	word uint64
	key  *Key
}

// NewPointer encrypts the address p.
func NewPointer[T any](key *Key, p *T) Pointer[T] {
	return Pointer[T]{word: key.Seal(addrOf(p)), key: key}
}

// RestorePointer wraps a word sealed ahead of time.
func RestorePointer[T any](key *Key, word uint64) Pointer[T] {
	return Pointer[T]{word: word, key: key}
}

// Get decrypts the address. No validation is performed.
func (p *Pointer[T]) Get() *T {
	if p.key == nil {
		return nil
	}
	addr := uintptr(p.key.Open(atomic.LoadUint64(&p.word)))
	return (*T)(*(*unsafe.Pointer)(unsafe.Pointer(&addr)))
}

// Set re-encrypts x and replaces the stored address.
func (p *Pointer[T]) Set(x *T) {
	if p.key == nil {
		panic("obfx: Set on a Pointer built without a key")
	}
	atomic.StoreUint64(&p.word, p.key.Seal(addrOf(x)))
}

// Sealed returns the stored ciphertext word.
func (p *Pointer[T]) Sealed() uint64 {
	return atomic.LoadUint64(&p.word)
}

func (p *Pointer[T]) IsNil() bool {
	return p.Get() == nil
}

func (p *Pointer[T]) Equal(o *Pointer[T]) bool {
	return p.Get() == o.Get()
}

func (p *Pointer[T]) NotEqual(o *Pointer[T]) bool {
	return !p.Equal(o)
}

func addrOf[T any](p *T) uint64 {
	return uint64(uintptr(unsafe.Pointer(p)))
}
