package schedule

import (
	"fmt"
	"strings"
)

// Level selects how much work the cipher does per word.
type Level uint8

const (
	Low Level = iota
	Medium
	High
)

var levelNames = map[Level]string{
	Low:    "low",
	Medium: "medium",
	High:   "high",
}

func (l Level) String() string {
	if s, ok := levelNames[l]; ok {
		return s
	}
	return fmt.Sprintf("level(%d)", uint8(l))
}

// Valid reports whether l is one of the declared levels.
func (l Level) Valid() bool {
	return l <= High
}

// ParseLevel parses low, medium or high, ignoring case and surrounding space.
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "low":
		return Low, nil
	case "medium":
		return Medium, nil
	case "high":
		return High, nil
	}
	return Low, fmt.Errorf("unknown obfuscation level %q", s)
}

// Profile selects the shape of the cipher.
type Profile uint8

const (
	// Standard runs the XTEA cascade with a round count chosen by Level.
	Standard Profile = iota
	// Compact is the reduced variant: a single XOR-rotate pass at Low and a
	// rotate-wrapped cascade otherwise.
	Compact
)

func (p Profile) String() string {
	switch p {
	case Standard:
		return "standard"
	case Compact:
		return "compact"
	}
	return fmt.Sprintf("profile(%d)", uint8(p))
}

// Valid reports whether p is one of the declared profiles.
func (p Profile) Valid() bool {
	return p <= Compact
}

// ParseProfile parses standard or compact, ignoring case.
func ParseProfile(s string) (Profile, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "standard", "":
		return Standard, nil
	case "compact":
		return Compact, nil
	}
	return Standard, fmt.Errorf("unknown cipher profile %q", s)
}
