package conifer

import (
	"fmt"
	"math"
	"math/rand/v2"
)

// Algorithm names accepted by NewStream.
const (
	AlgorithmXorwow = "xorwow"
	AlgorithmPCG    = "pcg"
)

// source produces uniform doubles in [0, 1).
type source interface {
	Float64() float64
}

// Stream is a seeded source of uniform doubles. It is not safe for concurrent
// use; each generator owns its own Stream.
type Stream struct {
	seed      int64
	algorithm string
	src       source
	draws     uint64
}

// NewStream returns a stream for the given seed and algorithm. An empty
// algorithm selects xorwow.
func NewStream(seed int64, algorithm string) (*Stream, error) {
	if algorithm == "" {
		algorithm = AlgorithmXorwow
	}
	switch algorithm {
	case AlgorithmXorwow, AlgorithmPCG:
	default:
		return nil, fmt.Errorf("unknown rng algorithm %q", algorithm)
	}
	s := &Stream{seed: seed, algorithm: algorithm}
	s.Reseed()
	return s, nil
}

// Seed returns the seed the stream resets to.
func (s *Stream) Seed() int64 { return s.seed }

// Algorithm returns the generator name.
func (s *Stream) Algorithm() string { return s.algorithm }

// Draws returns how many values were drawn since the last reseed.
func (s *Stream) Draws() uint64 { return s.draws }

// SetSeed changes the seed and resets the stream to it.
func (s *Stream) SetSeed(seed int64) {
	s.seed = seed
	s.Reseed()
}

// Reseed restores the stream to its initial state. Two passes that start with
// Reseed observe identical sequences.
func (s *Stream) Reseed() {
	s.draws = 0
	switch s.algorithm {
	case AlgorithmPCG:
		s.src = rand.New(rand.NewPCG(uint64(s.seed), 0))
	default:
		s.src = newXorwow(s.seed)
	}
}

// NextDouble returns a uniform value in [low, high). It panics if low > high.
// When low == high one draw is still consumed and low is returned.
func (s *Stream) NextDouble(low, high float64) float64 {
	if low > high {
		panic(fmt.Sprintf("conifer: NextDouble low %v > high %v", low, high))
	}
	s.draws++
	r := low + s.src.Float64()*(high-low)
	if r >= high {
		if low == high {
			return low
		}
		// Rounding can land on the open bound.
		return math.Nextafter(high, math.Inf(-1))
	}
	return r
}

// xorwow is Marsaglia's xorwow generator. The seeding schedule and the
// 26+27 bit double assembly are part of the image format: changing either
// changes every rendered tree.
type xorwow struct {
	x, y, z, w, v, addend uint32
}

// newXorwow splits the 64-bit seed into two words. For seeds in int32 range the
// high word is the sign extension of the low one.
func newXorwow(seed int64) *xorwow {
	seed1 := uint32(seed)
	seed2 := uint32(seed >> 32)
	g := &xorwow{
		x:      seed1,
		y:      seed2,
		z:      0,
		w:      0,
		v:      ^seed1,
		addend: (seed1 << 10) ^ (seed2 >> 4),
	}
	for range 64 {
		g.next()
	}
	return g
}

func (g *xorwow) next() uint32 {
	t := g.x
	t ^= t >> 2
	g.x = g.y
	g.y = g.z
	g.z = g.w
	v0 := g.v
	g.w = v0
	t = (t ^ (t << 1)) ^ v0 ^ (v0 << 4)
	g.v = t
	g.addend += 362437
	return t + g.addend
}

func (g *xorwow) bits(n uint) uint32 {
	return g.next() >> (32 - n)
}

// Float64 assembles 53 bits from a 26-bit and a 27-bit draw.
func (g *xorwow) Float64() float64 {
	hi := uint64(g.bits(26))
	lo := uint64(g.bits(27))
	return float64(hi<<27+lo) / (1 << 53)
}
