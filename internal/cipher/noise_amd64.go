//go:build amd64 && !purego

package cipher

import "golang.org/x/sys/cpu"

var useSSE2 = cpu.X86.HasSSE2

// unmixSSE2 is unmixLanes on XMM registers.
//
//go:noescape
func unmixSSE2(x, y, key uint32) uint32

// unxorSSE2 is unxorLanes on XMM registers.
//
//go:noescape
func unxorSSE2(x, key uint32) uint32

func unmix(x, y, key uint32) uint32 {
	if useSSE2 {
		return unmixSSE2(x, y, key)
	}
	return unmixLanes(x, y, key)
}

func unxor(x, key uint32) uint32 {
	if useSSE2 {
		return unxorSSE2(x, key)
	}
	return unxorLanes(x, key)
}

// Kernel names the vector kernel the decrypt path runs on.
func Kernel() string {
	if useSSE2 {
		return "sse2"
	}
	return "lanes"
}
