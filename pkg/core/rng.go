package core

import "unicode/utf16"

// Source yields uniformly distributed floats in [0, 1).
type Source interface {
	Float64() float64
}

// Alea is the seedable generator used by every stage of the pipeline. It is
// Baquero's Alea with 32-bit Mash hashing, so a seed string always
// reproduces the same map.
type Alea struct {
	s0, s1, s2 float64
	c          float64
}

// NewAlea creates a generator seeded from the provided string.
func NewAlea(seed string) *Alea {
	a := &Alea{}
	a.Reset(seed)
	return a
}

// Reset reinitialises the generator state from seed.
func (a *Alea) Reset(seed string) {
	var m mash
	m.init()
	a.s0 = m.hash(" ")
	a.s1 = m.hash(" ")
	a.s2 = m.hash(" ")

	a.s0 -= m.hash(seed)
	if a.s0 < 0 {
		a.s0++
	}
	a.s1 -= m.hash(seed)
	if a.s1 < 0 {
		a.s1++
	}
	a.s2 -= m.hash(seed)
	if a.s2 < 0 {
		a.s2++
	}
	a.c = 1
}

// Float64 returns the next value in [0, 1).
func (a *Alea) Float64() float64 {
	t := 2091639*a.s0 + a.c*twoPowMinus32
	a.s0 = a.s1
	a.s1 = a.s2
	a.c = float64(uint32(t))
	a.s2 = t - a.c
	return a.s2
}

const twoPowMinus32 = 2.3283064365386963e-10

// mash keeps its 32-bit accumulator across calls; the three warm-up hashes
// and the seed hashes all share it.
type mash struct {
	n uint32
}

func (m *mash) init() { m.n = 0xefc8249d }

func (m *mash) hash(data string) float64 {
	for _, code := range utf16.Encode([]rune(data)) {
		m.n += uint32(code)
		h := 0.02519603282416938 * float64(m.n)
		m.n = uint32(h)
		h -= float64(m.n)
		h *= float64(m.n)
		m.n = uint32(h)
		h -= float64(m.n)
		m.n += uint32(h * 4294967296)
	}
	return float64(m.n) * twoPowMinus32
}
