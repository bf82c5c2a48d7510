package core

// Random is a small deterministic pseudo random generator, a Mersenne-style
// initializer feeding an xor-shift tempering chain. Sequences are fully
// determined by the seed, which is part of the render reproducibility
// contract.
type Random struct {
	seed uint32
}

// NewRandom creates a generator with the given seed
func NewRandom(seed uint32) *Random {
	return &Random{seed: seed}
}

// PixelSeed derives the per-pixel seed so every pixel renders identically
// regardless of which worker processes it.
func PixelSeed(x, y int) uint32 {
	return uint32(x+1)*0x1337 + uint32(y+1)*0xBEEF
}

// Uint32 returns the next raw 32-bit value
func (r *Random) Uint32() uint32 {
	return r.next()
}

// Float64 returns a uniform value in [0,1]
func (r *Random) Float64() float64 {
	return float64(r.next()) / 4294967295.0
}

func (r *Random) next() uint32 {
	r.seed = 1812433253*(r.seed^(r.seed>>30)) + 1
	x := r.seed
	x ^= x >> 11
	x ^= (x << 7) & 0x9D2C5680
	x ^= (x << 15) & 0xEFC60000
	return x ^ (x >> 18)
}
