package codegen

import (
	"fmt"

	"github.com/hengadev/obfx/internal/cipher"
	"github.com/hengadev/obfx/internal/entropy"
	"github.com/hengadev/obfx/internal/obfxerr"
	"github.com/hengadev/obfx/internal/schedule"
)

// BuildContext carries the per-run inputs of seed derivation.
type BuildContext struct {
	Time           string // HH:MM:SS, ignored in kernel mode
	Kernel         bool
	Ordinal        uint64 // ordinal of the literal being sealed
	DefaultLevel   schedule.Level
	DefaultProfile schedule.Profile
}

// SealedLiteral is a literal together with the key material and
// ciphertext words written into the generated file.
type SealedLiteral struct {
	Literal
	TypeInfo TypeInfo
	Seed     uint64
	Level    schedule.Level
	Profile  schedule.Profile
	Words    []uint64
}

// Seal derives the literal's seed from its location, the build time and
// ctx.Ordinal, then encrypts every element.
func Seal(lit Literal, ctx BuildContext) (SealedLiteral, error) {
	ti, ok := LookupType(lit.Type)
	if !ok {
		return SealedLiteral{}, obfxerr.NewUnsupportedTypeError(lit.Name, lit.Type)
	}

	level := ctx.DefaultLevel
	if lit.Level != "" {
		l, err := schedule.ParseLevel(lit.Level)
		if err != nil {
			return SealedLiteral{}, obfxerr.NewInvalidLevelError(lit.Name, lit.Level)
		}
		level = l
	}
	if !level.Valid() {
		return SealedLiteral{}, obfxerr.NewInvalidLevelError(lit.Name, level.String())
	}

	profile := ctx.DefaultProfile
	if lit.Profile != "" {
		p, err := schedule.ParseProfile(lit.Profile)
		if err != nil {
			return SealedLiteral{}, obfxerr.NewInvalidLiteralError(lit.Name, fmt.Sprintf("unknown profile %q", lit.Profile))
		}
		profile = p
	}

	raw, err := rawWords(lit, ti)
	if err != nil {
		return SealedLiteral{}, obfxerr.NewInvalidLiteralError(lit.Name, err.Error())
	}

	var seed uint64
	if ctx.Kernel {
		seed = entropy.DeriveSeedKernel(lit.Location, ctx.Ordinal)
	} else {
		seed = entropy.DeriveSeed(lit.Location, ctx.Time, ctx.Ordinal)
	}

	engine := cipher.New(schedule.Build(seed, level), profile)
	words := make([]uint64, len(raw))
	for i, w := range raw {
		words[i] = engine.Encrypt(w)
	}

	return SealedLiteral{
		Literal:  lit,
		TypeInfo: ti,
		Seed:     seed,
		Level:    level,
		Profile:  profile,
		Words:    words,
	}, nil
}

// Sealer seals a sequence of literals with increasing ordinals.
type Sealer struct {
	ctx BuildContext
}

// NewSealer starts numbering at ctx.Ordinal, or 1 when it is zero.
func NewSealer(ctx BuildContext) *Sealer {
	if ctx.Ordinal == 0 {
		ctx.Ordinal = 1
	}
	return &Sealer{ctx: ctx}
}

// Seal seals lit and advances the ordinal.
func (s *Sealer) Seal(lit Literal) (SealedLiteral, error) {
	sealed, err := Seal(lit, s.ctx)
	s.ctx.Ordinal++
	return sealed, err
}

// Ordinal is the ordinal the next literal will be sealed with.
func (s *Sealer) Ordinal() uint64 {
	return s.ctx.Ordinal
}

// rawWords encodes a literal into plaintext words. Arrays are padded with
// zeros up to their size and text gets a NUL terminator.
func rawWords(lit Literal, ti TypeInfo) ([]uint64, error) {
	switch ti.Shape {
	case ShapeText:
		return ti.textUnits(lit.Value), nil

	case ShapeArray:
		size := max(lit.Size, len(lit.Values))
		words := make([]uint64, size)
		for i, v := range lit.Values {
			w, err := ti.ParseRaw(v)
			if err != nil {
				return nil, fmt.Errorf("element %d: %w", i, err)
			}
			words[i] = w
		}
		return words, nil

	default:
		w, err := ti.ParseRaw(lit.Value)
		if err != nil {
			return nil, err
		}
		return []uint64{w}, nil
	}
}
