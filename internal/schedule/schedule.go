// Package schedule expands a seed into the subkeys and round parameters the
// cipher runs with.
package schedule

import "math/bits"

// Size is the number of subkeys in a schedule.
const Size = 8

const baseDelta uint32 = 0x9E3779B9

var iv = [Size]uint64{
	0xcbf43b227a01fe5a,
	0x32703be7aaa7c38f,
	0xb589959b3d854bbc,
	0x73b3ef5578a97c8a,
	0x92afafd27c6e16e9,
	0xee8291ae3070720a,
	0xe2c0d70f73d6c4a0,
	0x82742897b912855b,
}

// Rotation applied to the seed for each slot. Even slots rotate left, odd
// slots rotate right.
var rotations = [Size]int{0, 13, 29, 41, 7, 53, 19, 37}

// Schedule is the immutable key material derived from one seed.
type Schedule struct {
	Seed    uint64
	Level   Level
	Subkeys [Size]uint64
	// Index is the seed-selected slot that feeds Delta and, at High, the
	// round count.
	Index  uint32
	Rounds uint32
	Delta  uint32
}

// Build derives the schedule for seed at the given level.
func Build(seed uint64, level Level) Schedule {
	s := Schedule{
		Seed:  seed,
		Level: level,
		Index: uint32(seed & (Size - 1)),
	}

	for i := range s.Subkeys {
		s.Subkeys[i] = iv[i] ^ rotate(seed, i)
	}

	s.Rounds = RoundsFor(level, s.Index)
	s.Delta = (baseDelta ^ uint32(s.Subkeys[s.Index])) | 1

	return s
}

// RoundsFor returns the round count for level. At High the count depends on
// the seed-selected index, so sites do not all share one unrolled shape.
func RoundsFor(level Level, index uint32) uint32 {
	switch level {
	case Low:
		return 2
	case Medium:
		return 6
	default:
		return 6 + (index&7)*2
	}
}

// Key32 returns the low half of subkey i, as used inside the round function.
func (s *Schedule) Key32(i uint32) uint32 {
	return uint32(s.Subkeys[i&(Size-1)])
}

func rotate(seed uint64, slot int) uint64 {
	if slot%2 == 0 {
		return bits.RotateLeft64(seed, rotations[slot])
	}
	return bits.RotateLeft64(seed, -rotations[slot])
}
