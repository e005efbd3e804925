package grass

import "sync/atomic"

// Source is the random stream placement draws from. Rand and
// AtomicRand both satisfy it.
type Source interface {
	NextU64() uint64
	Float32() float32
}

// splitmix64 is a fast, high-quality 64-bit mixer. It spreads small
// user seeds over the whole state space.
func splitmix64(x uint64) uint64 {
	x += 0x9E3779B97F4A7C15
	z := x
	z = (z ^ (z >> 30)) * 0xBF58476D1CE4E5B9
	z = (z ^ (z >> 27)) * 0x94D049BB133111EB
	return z ^ (z >> 31)
}

// seedState mixes a user seed into a valid xorshift state. The state
// must never be zero.
func seedState(seed uint64) uint64 {
	s := splitmix64(seed)
	if s == 0 {
		s = 1
	}
	return s
}

// Rand is a tiny deterministic RNG (xorshift64*). Not safe for
// concurrent use; scope one per engine for reproducible placement.
type Rand struct {
	s uint64
}

func NewRand(seed uint64) *Rand {
	return &Rand{s: seedState(seed)}
}

func (r *Rand) NextU64() uint64 {
	x := r.s
	x ^= x >> 12
	x ^= x << 25
	x ^= x >> 27
	r.s = x
	return x * 2685821657736338717
}

// Float32 returns a uniform value in [0, 1).
func (r *Rand) Float32() float32 {
	return float32(r.NextU64()>>40) * (1.0 / (1 << 24))
}

// Float64 returns a uniform value in [0, 1).
func (r *Rand) Float64() float64 {
	return float64(r.NextU64()>>11) * (1.0 / (1 << 53))
}

func (r *Rand) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	return int(r.NextU64() % uint64(n))
}

// RangeF returns a uniform value in [min, max).
func (r *Rand) RangeF(min, max float32) float32 {
	if max <= min {
		return min
	}
	return min + (max-min)*r.Float32()
}

// AtomicRand is the process-wide variant of Rand. Steps are lock-free
// compare-and-swap, so concurrent callers never block or corrupt the
// state; under contention a retry re-reads the fresh state.
type AtomicRand struct {
	s atomic.Uint64
}

func NewAtomicRand(seed uint64) *AtomicRand {
	r := &AtomicRand{}
	r.s.Store(seedState(seed))
	return r
}

func (r *AtomicRand) NextU64() uint64 {
	for {
		old := r.s.Load()
		x := old
		x ^= x >> 12
		x ^= x << 25
		x ^= x >> 27
		if r.s.CompareAndSwap(old, x) {
			return x * 2685821657736338717
		}
	}
}

// Float32 returns a uniform value in [0, 1).
func (r *AtomicRand) Float32() float32 {
	return float32(r.NextU64()>>40) * (1.0 / (1 << 24))
}
