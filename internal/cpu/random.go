package cpu

import "math/rand/v2"

// RandomSource provides the bytes used by the random instruction.
type RandomSource interface {
	NextByte() uint8
}

type randomSource struct {
	rnd *rand.Rand
}

// NewRandomSource returns a uniform random source. A zero seed selects a
// randomly seeded generator, any other seed produces a reproducible sequence.
func NewRandomSource(seed uint64) RandomSource {
	if seed == 0 {
		seed = rand.Uint64()
	}
	return &randomSource{
		rnd: rand.New(rand.NewPCG(seed, seed^0x9E3779B97F4A7C15)),
	}
}

func (r *randomSource) NextByte() uint8 {
	return uint8(r.rnd.UintN(256))
}
