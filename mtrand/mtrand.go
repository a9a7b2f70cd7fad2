// Package mtrand implements the 32-bit Mersenne Twister (MT19937).
//
// The generator twists one state word per call instead of the whole state
// at once, so every call costs the same. The output sequence is the standard
// one: seeded with 5489, the first two values are 3499211612 and 581869302.
package mtrand

const (
	n         = 624
	m         = 397
	matrixA   = 0x9908b0df
	upperMask = 0x80000000
	lowerMask = 0x7fffffff

	// DefaultSeed is the seed of the reference implementation.
	DefaultSeed = 5489
)

// Source is an MT19937 generator. It also implements math/rand.Source, so it
// can back a *rand.Rand.
//
// Source is not safe for concurrent use.
type Source struct {
	state [n]uint32
	index int
}

// New creates a generator seeded with seed.
func New(seed uint32) *Source {
	s := &Source{}
	s.seed(seed)
	return s
}

func (s *Source) seed(seed uint32) {
	s.state[0] = seed
	for i := 1; i < n; i++ {
		prev := s.state[i-1]
		s.state[i] = 1812433253*(prev^(prev>>30)) + uint32(i)
	}
	s.index = 0
}

// Uint32 returns the next 32 bits.
func (s *Source) Uint32() uint32 {
	k := s.index

	next := k + 1
	if next >= n {
		next = 0
	}

	x := (s.state[k] & upperMask) | (s.state[next] & lowerMask)
	xA := x >> 1
	if x&1 != 0 {
		xA ^= matrixA
	}

	far := k + m
	if far >= n {
		far -= n
	}

	x = s.state[far] ^ xA
	s.state[k] = x
	s.index = next

	y := x ^ (x >> 11)
	y ^= (y << 7) & 0x9d2c5680
	y ^= (y << 15) & 0xefc60000
	return y ^ (y >> 18)
}

// Next returns the next value as a signed 32-bit integer; it's Uint32 with
// the bits reinterpreted, so it may be negative.
func (s *Source) Next() int32 {
	return int32(s.Uint32())
}

// Intn returns a value in [0, n). It panics if n <= 0, like math/rand.
func (s *Source) Intn(n int) int {
	if n <= 0 {
		panic("mtrand: invalid argument to Intn")
	}

	return int(uint64(s.Uint32()) % uint64(n))
}

// Int63 implements math/rand.Source.
func (s *Source) Int63() int64 {
	hi := uint64(s.Uint32())
	lo := uint64(s.Uint32())
	return int64((hi<<32 | lo) >> 1)
}

// Seed implements math/rand.Source; only the low 32 bits are used.
func (s *Source) Seed(seed int64) {
	s.seed(uint32(seed))
}
