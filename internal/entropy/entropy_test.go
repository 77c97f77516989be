package entropy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHash_CaseInsensitive(t *testing.T) {
	tests := []struct {
		name string
		a, b string
	}{
		{"paths", "C:/Src/Main.go", "c:/src/main.go"},
		{"identifiers", "APIPort", "apiport"},
		{"mixed digits", "Site42:Line7", "SITE42:LINE7"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, Hash(tt.a), Hash(tt.b))
		})
	}
}

func TestHash_Distinguishes(t *testing.T) {
	assert.NotEqual(t, Hash("main.go:10"), Hash("main.go:11"))
	assert.NotEqual(t, Hash("a"), Hash(""))
	// Only ASCII letters fold.
	assert.NotEqual(t, Hash("["), Hash("{"))
}

func TestHash_Empty(t *testing.T) {
	assert.Equal(t, uint64(0), Hash(""))
	assert.Equal(t, uint64(0), HashBytes(nil))
	assert.Equal(t, uint64(0), HashCString(nil))
}

func TestHash_SingleByte(t *testing.T) {
	assert.Equal(t, uint64(0x324a3369), Hash("a"))
	assert.Equal(t, Hash("a"), Hash("A"))
}

func TestHashBytes_MatchesHash(t *testing.T) {
	for _, s := range []string{"", "x", "obfx/site.go:128", "15:04:05"} {
		assert.Equal(t, Hash(s), HashBytes([]byte(s)), s)
	}
}

func TestHashCString_MatchesHash(t *testing.T) {
	for _, s := range []string{"", "main.go", "Internal/Cipher/ENGINE.go"} {
		buf := append([]byte(s), 0, 'z', 'z')
		assert.Equal(t, Hash(s), HashCString(&buf[0]), s)
	}
}

func TestSplitmix64(t *testing.T) {
	assert.Equal(t, uint64(0), Splitmix64(0))
	assert.NotEqual(t, Splitmix64(1), Splitmix64(2))
	assert.Equal(t, Splitmix64(12345), Splitmix64(12345))
}

func TestDeriveSeed_Deterministic(t *testing.T) {
	a := DeriveSeed("pkg/secrets.obfx.yaml:4", "12:30:00", 1)
	b := DeriveSeed("pkg/secrets.obfx.yaml:4", "12:30:00", 1)
	assert.Equal(t, a, b)
}

func TestDeriveSeed_DistinctInputs(t *testing.T) {
	base := DeriveSeed("secrets.go:10", "12:30:00", 1)

	seen := map[uint64]string{base: "base"}
	variants := map[string]uint64{
		"ordinal":  DeriveSeed("secrets.go:10", "12:30:00", 2),
		"location": DeriveSeed("secrets.go:11", "12:30:00", 1),
		"time":     DeriveSeed("secrets.go:10", "12:30:01", 1),
	}
	for name, seed := range variants {
		prev, dup := seen[seed]
		require.False(t, dup, "%s collides with %s", name, prev)
		seen[seed] = name
	}
}

func TestDeriveSeed_NearbyOrdinalsSpread(t *testing.T) {
	seeds := make(map[uint64]struct{})
	for i := uint64(0); i < 1024; i++ {
		seeds[DeriveSeed("loop.go:1", "00:00:00", i)&0xffff] = struct{}{}
	}
	// The low 16 bits of 1024 consecutive ordinals should barely collide.
	assert.Greater(t, len(seeds), 1000)
}

func TestDeriveSeedKernel(t *testing.T) {
	a := DeriveSeedKernel("driver.c", 3)
	assert.Equal(t, a, DeriveSeedKernel("DRIVER.C", 3))
	assert.NotEqual(t, a, DeriveSeedKernel("driver.c", 4))
	assert.NotEqual(t, a, DeriveSeed("driver.c", "", 3))
}
