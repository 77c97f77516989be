package entropy

import "math/bits"

const (
	ordinalMultiplier = 0x9e3779b97f4a7c15
	kernelFileMul     = 0x517cc1b727220a95
	kernelLineMul     = 0xff51afd7ed558ccd
)

// Splitmix64 is the splitmix finalizer. It removes linear correlation between
// nearby inputs.
func Splitmix64(x uint64) uint64 {
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb
	return x ^ (x >> 31)
}

// DeriveSeed combines a source location, a build time and a per-call
// ordinal into a 64-bit seed. Identical inputs always produce the same seed.
func DeriveSeed(location, buildTime string, ordinal uint64) uint64 {
	return Splitmix64(
		Hash(location) +
			ordinal*ordinalMultiplier +
			(Hash(buildTime) ^ (ordinal << 32)),
	)
}

// DeriveSeedKernel is the variant used where no build time is available. It
// weights the location hash and rotates the ordinal instead of mixing in a
// timestamp.
func DeriveSeedKernel(location string, ordinal uint64) uint64 {
	return Splitmix64(
		Hash(location)*kernelFileMul +
			ordinal*ordinalMultiplier +
			(bits.RotateLeft64(ordinal, 37) ^ (ordinal * kernelLineMul)),
	)
}
