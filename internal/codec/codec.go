// Package codec converts Go scalars to and from the 64-bit words the cipher
// operates on. Conversions are bit-exact: floats are reinterpreted, never
// converted numerically.
package codec

import (
	"math"
	"reflect"
)

type Signed interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64
}

type Unsigned interface {
	~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uintptr
}

type Integer interface {
	Signed | Unsigned
}

type Float interface {
	~float32 | ~float64
}

// Number is every scalar a container can hold.
type Number interface {
	Integer | Float
}

// Char is the set of character element types: narrow bytes, UTF-16 code
// units and runes.
type Char interface {
	~uint8 | ~uint16 | ~int32
}

// ToRaw widens v to 64 bits. Signed integers are sign-extended, unsigned
// integers zero-extended, float32 bits are zero-extended and float64 bits
// are copied.
func ToRaw[T Number](v T) uint64 {
	switch reflect.TypeFor[T]().Kind() {
	case reflect.Float32:
		return uint64(math.Float32bits(float32(v)))
	case reflect.Float64:
		return math.Float64bits(float64(v))
	default:
		return uint64(v)
	}
}

// FromRaw narrows w back to T, truncating integers and reinterpreting float
// bit patterns.
func FromRaw[T Number](w uint64) T {
	switch reflect.TypeFor[T]().Kind() {
	case reflect.Float32:
		return T(math.Float32frombits(uint32(w)))
	case reflect.Float64:
		return T(math.Float64frombits(w))
	default:
		return T(w)
	}
}
