package aesctr

import "math/bits"

// Rand derives bounded integers, floats, booleans, shuffles and byte fills
// from the raw 128-bit stream of a Source. Every method is defined purely in
// terms of Source.Next, so two Rand instances over identically seeded
// sources produce identical values.
//
// A Rand is not safe for concurrent use unless its Source is.
type Rand struct {
	src Source
}

// NewRand returns a Rand drawing from src.
func NewRand(src Source) *Rand {
	return &Rand{src: src}
}

// Uint128 returns the next raw 128-bit value.
func (r *Rand) Uint128() Uint128 {
	return r.src.Next()
}

// Uint64 returns a uniform random uint64.
func (r *Rand) Uint64() uint64 {
	return r.src.Next().Lo
}

// Uint32 returns a uniform random uint32.
func (r *Rand) Uint32() uint32 {
	return uint32(r.src.Next().Lo)
}

// Uint64N returns a random uint64 in [0,n) without modulo bias.
// Panics if n == 0.
func (r *Rand) Uint64N(n uint64) uint64 {
	if n == 0 {
		panic("aesctr: invalid argument to Uint64N")
	}
	if n&(n-1) == 0 { // power of two, can mask
		return r.Uint64() & (n - 1)
	}

	// Scale a full-width word into [0,n) by taking the high half of a
	// double-width multiply, rejecting the few samples that would bias the
	// result. See Lemire, "Fast Random Integer Generation in an Interval"
	// (https://arxiv.org/abs/1805.10941). The rejection loop almost never
	// runs: the threshold is below n, which is normally far below 2^64.
	hi, lo := bits.Mul64(r.Uint64(), n)
	if lo < n {
		thresh := -n % n
		for lo < thresh {
			hi, lo = bits.Mul64(r.Uint64(), n)
		}
	}
	return hi
}

// Uint32N returns a random uint32 in [0,n) without modulo bias.
// Panics if n == 0.
func (r *Rand) Uint32N(n uint32) uint32 {
	if n == 0 {
		panic("aesctr: invalid argument to Uint32N")
	}
	return uint32(r.Uint64N(uint64(n)))
}

// Int64 returns a random 63-bit non-negative integer as an int64.
func (r *Rand) Int64() int64 {
	return int64(r.Uint64() & 0x7FFFFFFF_FFFFFFFF)
}

// Int64N returns, as an int64, a random non-negative integer in [0,n)
// without modulo bias.
// Panics if n <= 0.
func (r *Rand) Int64N(n int64) int64 {
	if n <= 0 {
		panic("aesctr: invalid argument to Int64N")
	}
	return int64(r.Uint64N(uint64(n)))
}

// Int32 returns a random 31-bit non-negative integer as an int32.
func (r *Rand) Int32() int32 {
	return int32(r.Uint32() & 0x7FFFFFFF)
}

// Int32N returns, as an int32, a random non-negative integer in [0,n)
// without modulo bias.
// Panics if n <= 0.
func (r *Rand) Int32N(n int32) int32 {
	if n <= 0 {
		panic("aesctr: invalid argument to Int32N")
	}
	return int32(r.Uint64N(uint64(n)))
}

// IntN returns, as an int, a random non-negative integer in [0,n) without
// modulo bias.
// Panics if n <= 0.
func (r *Rand) IntN(n int) int {
	if n <= 0 {
		panic("aesctr: invalid argument to IntN")
	}
	return int(r.Uint64N(uint64(n)))
}

// Bool returns a random boolean.
func (r *Rand) Bool() bool {
	return r.src.Next().Lo&1 == 0
}

// Float32 returns a random float32 in [0,1).
func (r *Rand) Float32() float32 {
	return float32(r.Uint32()>>8) / (1 << 24)
}

// Float64 returns a random float64 in [0,1).
func (r *Rand) Float64() float64 {
	return float64(r.Uint64()>>11) / (1 << 53)
}

// FillBytes fills p with random bytes. Full 16-byte chunks receive whole
// little-endian output words, so the filled buffer reproduces the exact
// sequence Next would have returned; any remainder consumes one output word
// per byte.
func (r *Rand) FillBytes(p []byte) {
	for len(p) >= 16 {
		b := r.src.Next().Bytes()
		copy(p, b[:])
		p = p[16:]
	}
	for i := range p {
		p[i] = byte(r.src.Next().Lo)
	}
}

// Shuffle randomizes the order of n elements by swapping the elements at
// indexes i and j.
// Panics if n < 0.
func (r *Rand) Shuffle(n int, swap func(i, j int)) {
	if n < 0 {
		panic("aesctr: invalid argument to Shuffle")
	}
	// Fisher-Yates.
	for i := n - 1; i > 0; i-- {
		j := int(r.Uint64N(uint64(i + 1)))
		swap(i, j)
	}
}

// Perm returns a random permutation of the integers [0,n).
func (r *Rand) Perm(n int) []int {
	p := make([]int, n)
	for i := range p {
		p[i] = i
	}
	r.Shuffle(n, func(i, j int) { p[i], p[j] = p[j], p[i] })
	return p
}
