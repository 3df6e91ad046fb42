package aesctr

import "sync"

// The process-wide generator backing the package-level convenience
// functions. It is seeded lazily from OS entropy on first use so programs
// that construct their own generators pay nothing for it. All access is
// serialized; callers needing throughput should construct their own
// generator per goroutine.
var globalRand struct {
	sync.Mutex
	r    *Rand
	once sync.Once
}

func global() *Rand {
	globalRand.once.Do(func() {
		globalRand.r = NewRand(NewAes256Ctr128FromEntropy())
	})
	return globalRand.r
}

// Read fills p with random bytes from the process-wide generator.
//
// It never errors, but keeps the familiar io.Reader-style signature so it
// can substitute for entropy readers in existing code.
func Read(p []byte) (int, error) {
	globalRand.Lock()
	defer globalRand.Unlock()
	global().FillBytes(p)
	return len(p), nil
}

// Uint128Value returns a random Uint128 from the process-wide generator.
// The name avoids colliding with the Uint128 type.
func Uint128Value() Uint128 {
	globalRand.Lock()
	defer globalRand.Unlock()
	return global().Uint128()
}

// Uint64 returns a random uint64 from the process-wide generator.
func Uint64() uint64 {
	globalRand.Lock()
	defer globalRand.Unlock()
	return global().Uint64()
}

// Uint32 returns a random uint32 from the process-wide generator.
func Uint32() uint32 {
	globalRand.Lock()
	defer globalRand.Unlock()
	return global().Uint32()
}

// Uint64N returns a random uint64 in [0,n) from the process-wide generator
// without modulo bias.
// Panics if n == 0.
func Uint64N(n uint64) uint64 {
	globalRand.Lock()
	defer globalRand.Unlock()
	return global().Uint64N(n)
}

// Uint32N returns a random uint32 in [0,n) from the process-wide generator
// without modulo bias.
// Panics if n == 0.
func Uint32N(n uint32) uint32 {
	globalRand.Lock()
	defer globalRand.Unlock()
	return global().Uint32N(n)
}

// IntN returns a random non-negative int in [0,n) from the process-wide
// generator without modulo bias.
// Panics if n <= 0.
func IntN(n int) int {
	globalRand.Lock()
	defer globalRand.Unlock()
	return global().IntN(n)
}

// Float64 returns a random float64 in [0,1) from the process-wide generator.
func Float64() float64 {
	globalRand.Lock()
	defer globalRand.Unlock()
	return global().Float64()
}

// Bool returns a random boolean from the process-wide generator.
func Bool() bool {
	globalRand.Lock()
	defer globalRand.Unlock()
	return global().Bool()
}

// Shuffle randomizes the order of n elements using the process-wide
// generator by swapping the elements at indexes i and j.
// Panics if n < 0.
func Shuffle(n int, swap func(i, j int)) {
	globalRand.Lock()
	defer globalRand.Unlock()
	global().Shuffle(n, swap)
}

// Perm returns a random permutation of the integers [0,n) using the
// process-wide generator.
func Perm(n int) []int {
	globalRand.Lock()
	defer globalRand.Unlock()
	return global().Perm(n)
}
