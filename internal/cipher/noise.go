package cipher

import "sync/atomic"

// fence forces decrypt state through memory between half-rounds. Atomic
// accesses cannot be merged or dropped by the compiler, which keeps the
// loads and stores in the emitted code.
type fence struct {
	w    atomic.Uint64
	slot [3]atomic.Uint32
}

func (f *fence) word(w uint64) uint64 {
	f.w.Store(w)
	return f.w.Load()
}

func (f *fence) halves(lo, hi uint32) (uint32, uint32) {
	f.slot[0].Store(lo)
	f.slot[1].Store(hi)
	return f.slot[0].Load(), f.slot[1].Load()
}

func (f *fence) pass(v0, v1, sum uint32) (uint32, uint32, uint32) {
	f.slot[0].Store(v0)
	f.slot[1].Store(v1)
	f.slot[2].Store(sum)
	return f.slot[0].Load(), f.slot[1].Load(), f.slot[2].Load()
}

// lanes is a four-wide software vector. It stands in for SIMD registers on
// targets without an assembly kernel.
type lanes [4]uint32

func splat(x uint32) lanes {
	return lanes{x, x, x, x}
}

func (a lanes) shl(n uint) lanes {
	for i := range a {
		a[i] <<= n
	}
	return a
}

func (a lanes) shr(n uint) lanes {
	for i := range a {
		a[i] >>= n
	}
	return a
}

func (a lanes) xor(b lanes) lanes {
	for i := range a {
		a[i] ^= b[i]
	}
	return a
}

func (a lanes) add(b lanes) lanes {
	for i := range a {
		a[i] += b[i]
	}
	return a
}

func (a lanes) sub(b lanes) lanes {
	for i := range a {
		a[i] -= b[i]
	}
	return a
}

// unmixLanes returns y - (mix(x) ^ key), computed on broadcast lanes and
// narrowed back from lane 0.
func unmixLanes(x, y, key uint32) uint32 {
	vx := splat(x)
	t := vx.shl(4).xor(vx.shr(5)).add(vx).xor(splat(key))
	return splat(y).sub(t)[0]
}

// unxorLanes returns x ^ key on broadcast lanes.
func unxorLanes(x, key uint32) uint32 {
	return splat(x).xor(splat(key))[0]
}
