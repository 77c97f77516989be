package obfx

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChars_Narrow(t *testing.T) {
	s := NewText(testKey(Low), "str")

	assert.Equal(t, 4, s.Len(), "three characters plus terminator")
	assert.Equal(t, "str", s.String())
	assert.Equal(t, []byte{'s', 't', 'r', 0}, s.View())
}

func TestChars_Wide(t *testing.T) {
	s := NewWideText(testKey(Medium), "wstr ✓")

	assert.Equal(t, 7, s.Len())
	assert.Equal(t, "wstr ✓", s.String())
	assert.Equal(t, rune(0), s.View()[6])
}

func TestChars_UTF16(t *testing.T) {
	s := NewUTF16Text(testKey(High), "héllo 😀")

	// The emoji needs a surrogate pair.
	assert.Equal(t, 9, s.Len())
	assert.Equal(t, "héllo 😀", s.String())
}

func TestChars_Empty(t *testing.T) {
	s := NewText(testKey(Low), "")

	assert.Equal(t, 1, s.Len())
	assert.Equal(t, "", s.String())
}

func TestChars_StopsAtFirstNUL(t *testing.T) {
	s := NewText(testKey(Low), "ab")
	require.NoError(t, s.Set(1, 0))

	assert.Equal(t, "a", s.String())
}

func TestChars_EachCharacterEncrypted(t *testing.T) {
	s := NewText(testKey(Medium), "aaaa")

	seen := make(map[uint64]bool)
	for i := 0; i < 4; i++ {
		w, err := s.Sealed(i)
		require.NoError(t, err)
		assert.NotEqual(t, uint64('a'), w)
		seen[w] = true
	}
	// Same key, same plaintext: identical words, which is why per-site keys
	// matter.
	assert.Len(t, seen, 1)
}

func TestChars_ViewIsACopy(t *testing.T) {
	s := NewText(testKey(Low), "key")

	v := s.View()
	v[0] = 'K'
	assert.Equal(t, "key", s.String())
}

func TestChars_RestoreAndEqual(t *testing.T) {
	key := testKey(High, WithProfile(Compact))
	s := NewText(key, "endpoint")

	words := make([]uint64, s.Len())
	for i := range words {
		w, err := s.Sealed(i)
		require.NoError(t, err)
		words[i] = w
	}

	r := RestoreChars[byte](key, words...)
	assert.Equal(t, "endpoint", r.String())
	assert.True(t, r.Equal(&s))

	other := NewText(key, "endpoinT")
	assert.False(t, r.Equal(&other))
}

func TestChars_Iteration(t *testing.T) {
	s := NewText(testKey(Low), "go")

	var got []byte
	for c := range s.Values() {
		got = append(got, c)
	}
	assert.Equal(t, []byte{'g', 'o', 0}, got)
}
