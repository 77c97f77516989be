package obfx

import (
	"github.com/hengadev/obfx/internal/codec"
	"github.com/hengadev/obfx/internal/schedule"
)

// Level selects the cipher round count. At High the count also varies with
// the seed, so different sites do not share one decrypt shape.
type Level = schedule.Level

const (
	Low    = schedule.Low
	Medium = schedule.Medium
	High   = schedule.High
)

// Profile selects the cipher shape.
type Profile = schedule.Profile

const (
	Standard = schedule.Standard
	Compact  = schedule.Compact
)

// Number is the set of scalar element types Value and Array accept.
type Number = codec.Number

// Char is the set of character element types Chars accepts.
type Char = codec.Char

// ParseLevel parses "low", "medium" or "high".
func ParseLevel(s string) (Level, error) {
	return schedule.ParseLevel(s)
}

// ParseProfile parses "standard" or "compact". The empty string is Standard.
func ParseProfile(s string) (Profile, error) {
	return schedule.ParseProfile(s)
}
