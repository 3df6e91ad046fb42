package aesctr

import (
	"github.com/opd-ai/go-aesctr/internal/hardware"
	"github.com/opd-ai/go-aesctr/internal/softaes"
)

// Aes128Ctr128 is a pseudo-random number generator based on the AES-128
// block cipher running in CTR mode with a full 128-bit counter, which
// enables the Jump and LongJump stream-partitioning operations. The full 10
// rounds of encryption are used.
//
// Exactly one backend is active, selected at construction: the hardware
// cipher on CPUs with AES instructions, the bitsliced software cipher
// everywhere else. Both produce identical output for identical seeds.
//
// An Aes128Ctr128 is not safe for concurrent use.
type Aes128Ctr128 struct {
	hw   *hardware.Ctr128
	soft *softaes.Ctr128
}

// NewAes128Ctr128 returns a generator initialized with seed.
func NewAes128Ctr128(seed Seed128Ctr128) *Aes128Ctr128 {
	ctr := uint128FromBlock([16]byte(seed[16:32]))
	if hasAESSupport() {
		return &Aes128Ctr128{hw: hardware.NewCtr128(seed[0:16], ctr.Lo, ctr.Hi)}
	}
	var key [16]byte
	copy(key[:], seed[0:16])
	return &Aes128Ctr128{soft: softaes.NewCtr128(softaes.ExpandKey128(&key), ctr.Lo, ctr.Hi)}
}

// NewAes128Ctr128FromEntropy returns a generator seeded from the OS entropy
// source. It panics if the OS source is unavailable.
func NewAes128Ctr128FromEntropy() *Aes128Ctr128 {
	return NewAes128Ctr128(Seed128Ctr128FromEntropy())
}

// Seed reseeds the generator in place, discarding the previous key and
// counter.
func (g *Aes128Ctr128) Seed(seed Seed128Ctr128) {
	ctr := uint128FromBlock([16]byte(seed[16:32]))
	if g.hw != nil {
		g.hw.Reseed(seed[0:16], ctr.Lo, ctr.Hi)
		return
	}
	var key [16]byte
	copy(key[:], seed[0:16])
	g.soft.Reseed(softaes.ExpandKey128(&key), ctr.Lo, ctr.Hi)
}

// SeedFromEntropy reseeds the generator from the OS entropy source. It
// panics if the OS source is unavailable.
func (g *Aes128Ctr128) SeedFromEntropy() {
	g.Seed(Seed128Ctr128FromEntropy())
}

// Next returns the next 128-bit value of the stream. The counter wraps
// silently at 2^128.
func (g *Aes128Ctr128) Next() Uint128 {
	if g.hw != nil {
		return uint128FromBlock(g.hw.Next())
	}
	return uint128FromBlock(g.soft.Next())
}

// Uint64 returns the low 64 bits of Next, satisfying the Source interface of
// math/rand/v2.
func (g *Aes128Ctr128) Uint64() uint64 {
	return g.Next().Lo
}

// Counter returns the current position of the stream. Treat the value as
// confidential: it reveals how much output has been consumed.
func (g *Aes128Ctr128) Counter() Uint128 {
	if g.hw != nil {
		lo, hi := g.hw.Counter()
		return Uint128{Lo: lo, Hi: hi}
	}
	lo, hi := g.soft.Counter()
	return Uint128{Lo: lo, Hi: hi}
}

// Jump returns a snapshot of the generator and advances the generator itself
// by 2^64 steps, as if 2^64 values had been generated. Repeated jumps carve
// the stream into up to 2^64 non-overlapping subsequences for parallel use.
func (g *Aes128Ctr128) Jump() *Aes128Ctr128 {
	return g.advance(1)
}

// LongJump returns a snapshot of the generator and advances the generator
// itself by 2^96 steps, carving the stream into up to 2^32 non-overlapping
// subsequences with a far larger separation than Jump.
func (g *Aes128Ctr128) LongJump() *Aes128Ctr128 {
	return g.advance(1 << 32)
}

func (g *Aes128Ctr128) advance(hiDelta uint64) *Aes128Ctr128 {
	if g.hw != nil {
		snap := &Aes128Ctr128{hw: g.hw.Clone()}
		g.hw.Advance(hiDelta)
		return snap
	}
	snap := &Aes128Ctr128{soft: g.soft.Clone()}
	g.soft.Advance(hiDelta)
	return snap
}

// IsHardwareAccelerated reports whether the hardware backend is active.
func (g *Aes128Ctr128) IsHardwareAccelerated() bool {
	return g.hw != nil
}

// Close overwrites the generator's key and counter state with zeros. This is
// best-effort hygiene against later memory disclosure, not a security
// boundary. The generator must not be used afterwards.
func (g *Aes128Ctr128) Close() error {
	if g.hw != nil {
		g.hw.Zeroize()
	} else {
		g.soft.Zeroize()
	}
	return nil
}
