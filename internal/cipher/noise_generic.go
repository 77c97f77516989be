//go:build !amd64 || purego

package cipher

func unmix(x, y, key uint32) uint32 {
	return unmixLanes(x, y, key)
}

func unxor(x, key uint32) uint32 {
	return unxorLanes(x, key)
}

// Kernel names the vector kernel the decrypt path runs on.
func Kernel() string {
	return "lanes"
}
