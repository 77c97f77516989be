package obfx

import (
	"github.com/hengadev/obfx/internal/cipher"
	"github.com/hengadev/obfx/internal/schedule"
)

// Key is the immutable key material for one site. Every container built for
// that site shares the same Key; it is safe for concurrent use.
type Key struct {
	seed    uint64
	level   Level
	profile Profile
	engine  *cipher.Engine
}

type keyConfig struct {
	profile Profile
}

// KeyOption customises key construction.
type KeyOption func(*keyConfig)

// WithProfile selects the cipher shape. The default is Standard.
func WithProfile(p Profile) KeyOption {
	return func(c *keyConfig) {
		c.profile = p
	}
}

// NewKey derives the key for site at level.
func NewKey(site Site, level Level, opts ...KeyOption) *Key {
	return KeyFromSeed(site.Seed(), level, opts...)
}

// KeyFromSeed builds a key from an already derived seed. Generated code uses
// it so that only the seed, never the site text, reaches the binary.
func KeyFromSeed(seed uint64, level Level, opts ...KeyOption) *Key {
	cfg := keyConfig{profile: Standard}
	for _, opt := range opts {
		opt(&cfg)
	}

	return &Key{
		seed:    seed,
		level:   level,
		profile: cfg.profile,
		engine:  cipher.New(schedule.Build(seed, level), cfg.profile),
	}
}

func (k *Key) Seed() uint64 {
	return k.seed
}

func (k *Key) Level() Level {
	return k.level
}

func (k *Key) Profile() Profile {
	return k.profile
}

// Rounds reports the cascade round count of the key schedule.
func (k *Key) Rounds() int {
	return int(k.engine.Schedule().Rounds)
}

// Seal encrypts a raw word under k.
func (k *Key) Seal(raw uint64) uint64 {
	return k.engine.Encrypt(raw)
}

// Open decrypts a sealed word under k through the padded decrypt path.
func (k *Key) Open(word uint64) uint64 {
	return k.engine.Decrypt(word)
}
