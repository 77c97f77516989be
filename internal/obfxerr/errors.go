package obfxerr

import (
	"errors"
	"fmt"
)

var (
	// Container errors
	ErrBounds   = errors.New("index out of range")
	ErrCapacity = errors.New("too many elements for container")

	// Generator errors
	ErrInvalidLiteral   = errors.New("invalid literal")
	ErrUnsupportedType  = errors.New("unsupported literal type")
	ErrInvalidLevel     = errors.New("invalid obfuscation level")
	ErrDuplicateLiteral = errors.New("duplicate literal name")
	ErrUnguardedSource  = errors.New("literal source compiled into the binary")
	ErrOutputClash      = errors.New("sources share a generated file")
)

// BoundsError reports an element access outside [0, Len).
type BoundsError struct {
	Op    Op
	Index int
	Len   int
}

func (e *BoundsError) Error() string {
	return fmt.Sprintf("%s: %s index %d with length %d", ErrBounds, e.Op, e.Index, e.Len)
}

func (e *BoundsError) Is(target error) bool {
	return target == ErrBounds
}

// CapacityError reports more input elements than a container holds.
type CapacityError struct {
	Op       Op
	Got      int
	Capacity int
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf("%s: %s with %d elements, capacity %d", ErrCapacity, e.Op, e.Got, e.Capacity)
}

func (e *CapacityError) Is(target error) bool {
	return target == ErrCapacity
}

func NewBoundsError(op Op, index, length int) error {
	return &BoundsError{Op: op, Index: index, Len: length}
}

func NewCapacityError(op Op, got, capacity int) error {
	return &CapacityError{Op: op, Got: got, Capacity: capacity}
}

func NewInvalidLiteralError(name string, details string) error {
	return fmt.Errorf("%w: '%s': %s", ErrInvalidLiteral, name, details)
}

func NewUnsupportedTypeError(name string, typeName string) error {
	return fmt.Errorf("%w: literal '%s' has type %s", ErrUnsupportedType, name, typeName)
}

func NewInvalidLevelError(name string, level string) error {
	return fmt.Errorf("%w: literal '%s' asks for level %q", ErrInvalidLevel, name, level)
}

func NewDuplicateLiteralError(name string, first, second string) error {
	return fmt.Errorf("%w: '%s' declared at %s and %s", ErrDuplicateLiteral, name, first, second)
}

func NewUnguardedSourceError(file string) error {
	return fmt.Errorf("%w: %s has //obfx:literal directives but no //go:build constraint", ErrUnguardedSource, file)
}

func NewOutputClashError(output, first, second string) error {
	return fmt.Errorf("%w: %s and %s both generate %s", ErrOutputClash, first, second, output)
}
