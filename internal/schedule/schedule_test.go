package schedule

import (
	"math/bits"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuild_Subkeys(t *testing.T) {
	seed := uint64(0x0123456789abcdef)
	s := Build(seed, Medium)

	want := [Size]uint64{
		0xcbf43b227a01fe5a ^ seed,
		0x32703be7aaa7c38f ^ bits.RotateLeft64(seed, -13),
		0xb589959b3d854bbc ^ bits.RotateLeft64(seed, 29),
		0x73b3ef5578a97c8a ^ bits.RotateLeft64(seed, -41),
		0x92afafd27c6e16e9 ^ bits.RotateLeft64(seed, 7),
		0xee8291ae3070720a ^ bits.RotateLeft64(seed, -53),
		0xe2c0d70f73d6c4a0 ^ bits.RotateLeft64(seed, 19),
		0x82742897b912855b ^ bits.RotateLeft64(seed, -37),
	}
	assert.Equal(t, want, s.Subkeys)
	assert.Equal(t, seed, s.Seed)
	assert.Equal(t, uint32(seed&7), s.Index)
}

func TestBuild_Rounds(t *testing.T) {
	tests := []struct {
		name  string
		level Level
		seed  uint64
		want  uint32
	}{
		{"low", Low, 0xffff, 2},
		{"medium", Medium, 0xffff, 6},
		{"high index 0", High, 0x10, 6},
		{"high index 3", High, 0x13, 12},
		{"high index 7", High, 0x17, 20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Build(tt.seed, tt.level).Rounds)
		})
	}
}

func TestBuild_HighRoundsVaryWithSeed(t *testing.T) {
	seen := make(map[uint32]bool)
	for seed := uint64(0); seed < 64; seed++ {
		r := Build(seed, High).Rounds
		require.GreaterOrEqual(t, r, uint32(6))
		require.LessOrEqual(t, r, uint32(20))
		require.Zero(t, r%2)
		seen[r] = true
	}
	assert.Len(t, seen, 8)
}

func TestBuild_DeltaAlwaysOdd(t *testing.T) {
	for seed := uint64(0); seed < 4096; seed += 7 {
		s := Build(seed*0x9e3779b97f4a7c15, High)
		require.Equal(t, uint32(1), s.Delta&1, "seed %#x", seed)
	}
}

func TestBuild_Delta(t *testing.T) {
	s := Build(0x5, Low)
	want := (uint32(0x9E3779B9) ^ uint32(s.Subkeys[5])) | 1
	assert.Equal(t, want, s.Delta)
}

func TestBuild_Deterministic(t *testing.T) {
	assert.Equal(t, Build(42, High), Build(42, High))
	assert.NotEqual(t, Build(42, High).Subkeys, Build(43, High).Subkeys)
}

func TestKey32(t *testing.T) {
	s := Build(0xdeadbeefcafef00d, Low)
	for i := uint32(0); i < 16; i++ {
		assert.Equal(t, uint32(s.Subkeys[i%Size]), s.Key32(i))
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    Level
		wantErr bool
	}{
		{"low", Low, false},
		{" Medium ", Medium, false},
		{"HIGH", High, false},
		{"extreme", Low, true},
		{"", Low, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLevel(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.True(t, got.Valid())
		})
	}
}

func TestLevelString(t *testing.T) {
	assert.Equal(t, "low", Low.String())
	assert.Equal(t, "medium", Medium.String())
	assert.Equal(t, "high", High.String())
	assert.Equal(t, "level(9)", Level(9).String())
	assert.False(t, Level(9).Valid())
}

func TestParseProfile(t *testing.T) {
	p, err := ParseProfile("Compact")
	require.NoError(t, err)
	assert.Equal(t, Compact, p)

	p, err = ParseProfile("")
	require.NoError(t, err)
	assert.Equal(t, Standard, p)

	_, err = ParseProfile("tiny")
	assert.Error(t, err)

	assert.Equal(t, "standard", Standard.String())
	assert.Equal(t, "compact", Compact.String())
	assert.False(t, Profile(7).Valid())
}
