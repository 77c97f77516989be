package codegen

import (
	"fmt"
	"go/token"

	"github.com/hengadev/errsx"
	"github.com/hengadev/obfx/internal/obfxerr"
	"github.com/hengadev/obfx/internal/schedule"
)

// LiteralValidator checks literals before they are sealed.
type LiteralValidator struct {
	requireGuard bool
}

// NewLiteralValidator creates a validator. Go sources must carry a build
// constraint unless allowUnguarded is set.
func NewLiteralValidator(allowUnguarded bool) *LiteralValidator {
	return &LiteralValidator{requireGuard: !allowUnguarded}
}

// ValidateSource validates every literal of a source and returns an
// errsx.Map keyed by literal name, or nil.
func (lv *LiteralValidator) ValidateSource(src SourceInfo) error {
	var errs errsx.Map

	if lv.requireGuard && !src.Guarded {
		errs.Set(src.SourceFile, obfxerr.NewUnguardedSourceError(src.SourceFile))
	}

	seen := make(map[string]string, len(src.Literals))
	for _, lit := range src.Literals {
		if first, ok := seen[lit.Name]; ok {
			errs.Set(lit.Name, obfxerr.NewDuplicateLiteralError(lit.Name, first, lit.Location))
			continue
		}
		seen[lit.Name] = lit.Location

		if err := lv.ValidateLiteral(lit); err != nil {
			errs.Set(lit.Name, err)
		}
	}

	if errs.IsEmpty() {
		return nil
	}
	return errs.AsError()
}

// ValidateSources validates a whole package. Literal names must be unique
// across all of its sources, since they share one namespace.
func (lv *LiteralValidator) ValidateSources(sources []SourceInfo) error {
	var errs errsx.Map

	seen := make(map[string]string)
	for _, src := range sources {
		if err := lv.ValidateSource(src); err != nil {
			errs.Set(src.SourceFile, err)
		}
		for _, lit := range src.Literals {
			if first, ok := seen[lit.Name]; ok && first != lit.Location {
				errs.Set(lit.Name, obfxerr.NewDuplicateLiteralError(lit.Name, first, lit.Location))
				continue
			}
			seen[lit.Name] = lit.Location
		}
	}

	if errs.IsEmpty() {
		return nil
	}
	return errs.AsError()
}

// ValidateOutputs rejects sources that would be generated into the same
// file, such as "secrets.go" next to "secrets.obfx.yaml".
func (lv *LiteralValidator) ValidateOutputs(sources []SourceInfo, suffix string) error {
	owners := make(map[string]string, len(sources))
	for _, src := range sources {
		output := OutputFileName(src.SourceFile, suffix)
		if first, ok := owners[output]; ok {
			return obfxerr.NewOutputClashError(output, first, src.SourceFile)
		}
		owners[output] = src.SourceFile
	}
	return nil
}

// ValidateLiteral checks a single literal: its name, type, options and that
// every value parses for its type.
func (lv *LiteralValidator) ValidateLiteral(lit Literal) error {
	if !token.IsIdentifier(lit.Name) || lit.Name == "_" {
		return obfxerr.NewInvalidLiteralError(lit.Name, "name is not a valid Go identifier")
	}

	ti, ok := LookupType(lit.Type)
	if !ok {
		return obfxerr.NewUnsupportedTypeError(lit.Name, lit.Type)
	}

	if lit.Level != "" {
		if _, err := schedule.ParseLevel(lit.Level); err != nil {
			return obfxerr.NewInvalidLevelError(lit.Name, lit.Level)
		}
	}
	if _, err := schedule.ParseProfile(lit.Profile); err != nil {
		return obfxerr.NewInvalidLiteralError(lit.Name, fmt.Sprintf("unknown profile %q", lit.Profile))
	}

	switch ti.Shape {
	case ShapeScalar:
		if len(lit.Values) > 0 || lit.Size != 0 {
			return obfxerr.NewInvalidLiteralError(lit.Name, "scalar literal takes value, not values or size")
		}
		if _, err := ti.ParseRaw(lit.Value); err != nil {
			return obfxerr.NewInvalidLiteralError(lit.Name, err.Error())
		}

	case ShapeArray:
		if lit.Value != "" {
			return obfxerr.NewInvalidLiteralError(lit.Name, "array literal takes values, not value")
		}
		if lit.Size < 0 {
			return obfxerr.NewInvalidLiteralError(lit.Name, "size must not be negative")
		}
		if lit.Size == 0 && len(lit.Values) == 0 {
			return obfxerr.NewInvalidLiteralError(lit.Name, "array literal needs values or a size")
		}
		if lit.Size > 0 && len(lit.Values) > lit.Size {
			return obfxerr.NewInvalidLiteralError(lit.Name,
				fmt.Sprintf("%d values exceed size %d", len(lit.Values), lit.Size))
		}
		for i, v := range lit.Values {
			if _, err := ti.ParseRaw(v); err != nil {
				return obfxerr.NewInvalidLiteralError(lit.Name, fmt.Sprintf("element %d: %v", i, err))
			}
		}

	case ShapeText:
		if len(lit.Values) > 0 || lit.Size != 0 {
			return obfxerr.NewInvalidLiteralError(lit.Name, "text literal takes value, not values or size")
		}
		if ti.Bits == 8 {
			for i := 0; i < len(lit.Value); i++ {
				if lit.Value[i] == 0 {
					return obfxerr.NewInvalidLiteralError(lit.Name, "text contains a NUL byte")
				}
			}
		} else {
			for _, r := range lit.Value {
				if r == 0 {
					return obfxerr.NewInvalidLiteralError(lit.Name, "text contains a NUL character")
				}
			}
		}
	}

	return nil
}
