package obfx

import (
	"errors"

	"github.com/hengadev/obfx/internal/obfxerr"
)

var (
	// Container errors
	ErrBounds   = obfxerr.ErrBounds
	ErrCapacity = obfxerr.ErrCapacity

	// Generator errors
	ErrInvalidLiteral   = obfxerr.ErrInvalidLiteral
	ErrUnsupportedType  = obfxerr.ErrUnsupportedType
	ErrInvalidLevel     = obfxerr.ErrInvalidLevel
	ErrDuplicateLiteral = obfxerr.ErrDuplicateLiteral
	ErrUnguardedSource  = obfxerr.ErrUnguardedSource
	ErrOutputClash      = obfxerr.ErrOutputClash
)

// BoundsError is returned for an element access outside [0, Len).
type BoundsError = obfxerr.BoundsError

// CapacityError is returned when more elements are supplied than an array
// holds.
type CapacityError = obfxerr.CapacityError

// IsBoundsError returns true if the error reports an out-of-range index.
func IsBoundsError(err error) bool {
	return errors.Is(err, ErrBounds)
}

// IsCapacityError returns true if the error reports too many elements.
func IsCapacityError(err error) bool {
	return errors.Is(err, ErrCapacity)
}

// IsGenerationError returns true if the error comes from literal validation
// or sealing in the generator.
func IsGenerationError(err error) bool {
	return errors.Is(err, ErrInvalidLiteral) ||
		errors.Is(err, ErrUnsupportedType) ||
		errors.Is(err, ErrInvalidLevel) ||
		errors.Is(err, ErrDuplicateLiteral) ||
		errors.Is(err, ErrUnguardedSource) ||
		errors.Is(err, ErrOutputClash)
}
