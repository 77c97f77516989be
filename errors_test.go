package obfx

import (
	"errors"
	"fmt"
	"testing"

	"github.com/hengadev/obfx/internal/obfxerr"
)

func TestSentinelErrors(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected error
	}{
		{"Bounds", ErrBounds, ErrBounds},
		{"Capacity", ErrCapacity, ErrCapacity},
		{"Invalid Literal", ErrInvalidLiteral, ErrInvalidLiteral},
		{"Unsupported Type", ErrUnsupportedType, ErrUnsupportedType},
		{"Invalid Level", ErrInvalidLevel, ErrInvalidLevel},
		{"Duplicate Literal", ErrDuplicateLiteral, ErrDuplicateLiteral},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wrapped := fmt.Errorf("context: %w", tt.err)
			if !errors.Is(wrapped, tt.expected) {
				t.Errorf("Expected errors.Is(wrapped, %v) to be true", tt.expected)
			}
		})
	}
}

func TestErrorClassification(t *testing.T) {
	tests := []struct {
		name         string
		err          error
		isBounds     bool
		isCapacity   bool
		isGeneration bool
	}{
		{
			name:     "Bounds Error",
			err:      obfxerr.NewBoundsError(obfxerr.Get, 4, 4),
			isBounds: true,
		},
		{
			name:       "Capacity Error",
			err:        fmt.Errorf("test: %w", obfxerr.NewCapacityError(obfxerr.Construct, 5, 4)),
			isCapacity: true,
		},
		{
			name:         "Invalid Literal",
			err:          obfxerr.NewInvalidLiteralError("Port", "bad value"),
			isGeneration: true,
		},
		{
			name:         "Unguarded Source",
			err:          obfxerr.NewUnguardedSourceError("secrets.go"),
			isGeneration: true,
		},
		{
			name:         "Output Clash",
			err:          obfxerr.NewOutputClashError("secrets_obfx.go", "secrets.go", "secrets.obfx.yaml"),
			isGeneration: true,
		},
		{
			name: "Unrelated Error",
			err:  errors.New("boom"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsBoundsError(tt.err); got != tt.isBounds {
				t.Errorf("IsBoundsError() = %v, want %v", got, tt.isBounds)
			}
			if got := IsCapacityError(tt.err); got != tt.isCapacity {
				t.Errorf("IsCapacityError() = %v, want %v", got, tt.isCapacity)
			}
			if got := IsGenerationError(tt.err); got != tt.isGeneration {
				t.Errorf("IsGenerationError() = %v, want %v", got, tt.isGeneration)
			}
		})
	}
}
