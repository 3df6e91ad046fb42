package aesctr

import (
	"github.com/opd-ai/go-aesctr/internal/hardware"
	"github.com/opd-ai/go-aesctr/internal/softaes"
)

// Aes256Ctr128 is a pseudo-random number generator based on the AES-256
// block cipher running in CTR mode with a full 128-bit counter, which
// enables the Jump and LongJump stream-partitioning operations. The full 14
// rounds of encryption are used.
//
// An Aes256Ctr128 is not safe for concurrent use.
type Aes256Ctr128 struct {
	hw   *hardware.Ctr128
	soft *softaes.Ctr128
}

// NewAes256Ctr128 returns a generator initialized with seed.
func NewAes256Ctr128(seed Seed256Ctr128) *Aes256Ctr128 {
	ctr := uint128FromBlock([16]byte(seed[32:48]))
	if hasAESSupport() {
		return &Aes256Ctr128{hw: hardware.NewCtr128(seed[0:32], ctr.Lo, ctr.Hi)}
	}
	var key [32]byte
	copy(key[:], seed[0:32])
	return &Aes256Ctr128{soft: softaes.NewCtr128(softaes.ExpandKey256(&key), ctr.Lo, ctr.Hi)}
}

// NewAes256Ctr128FromEntropy returns a generator seeded from the OS entropy
// source. It panics if the OS source is unavailable.
func NewAes256Ctr128FromEntropy() *Aes256Ctr128 {
	return NewAes256Ctr128(Seed256Ctr128FromEntropy())
}

// Seed reseeds the generator in place, discarding the previous key and
// counter.
func (g *Aes256Ctr128) Seed(seed Seed256Ctr128) {
	ctr := uint128FromBlock([16]byte(seed[32:48]))
	if g.hw != nil {
		g.hw.Reseed(seed[0:32], ctr.Lo, ctr.Hi)
		return
	}
	var key [32]byte
	copy(key[:], seed[0:32])
	g.soft.Reseed(softaes.ExpandKey256(&key), ctr.Lo, ctr.Hi)
}

// SeedFromEntropy reseeds the generator from the OS entropy source. It
// panics if the OS source is unavailable.
func (g *Aes256Ctr128) SeedFromEntropy() {
	g.Seed(Seed256Ctr128FromEntropy())
}

// Next returns the next 128-bit value of the stream. The counter wraps
// silently at 2^128.
func (g *Aes256Ctr128) Next() Uint128 {
	if g.hw != nil {
		return uint128FromBlock(g.hw.Next())
	}
	return uint128FromBlock(g.soft.Next())
}

// Uint64 returns the low 64 bits of Next, satisfying the Source interface of
// math/rand/v2.
func (g *Aes256Ctr128) Uint64() uint64 {
	return g.Next().Lo
}

// Counter returns the current position of the stream. Treat the value as
// confidential: it reveals how much output has been consumed.
func (g *Aes256Ctr128) Counter() Uint128 {
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
func (g *Aes256Ctr128) Jump() *Aes256Ctr128 {
	return g.advance(1)
}

// LongJump returns a snapshot of the generator and advances the generator
// itself by 2^96 steps, carving the stream into up to 2^32 non-overlapping
// subsequences with a far larger separation than Jump.
func (g *Aes256Ctr128) LongJump() *Aes256Ctr128 {
	return g.advance(1 << 32)
}

func (g *Aes256Ctr128) advance(hiDelta uint64) *Aes256Ctr128 {
	if g.hw != nil {
		snap := &Aes256Ctr128{hw: g.hw.Clone()}
		g.hw.Advance(hiDelta)
		return snap
	}
	snap := &Aes256Ctr128{soft: g.soft.Clone()}
	g.soft.Advance(hiDelta)
	return snap
}

// IsHardwareAccelerated reports whether the hardware backend is active.
func (g *Aes256Ctr128) IsHardwareAccelerated() bool {
	return g.hw != nil
}

// Close overwrites the generator's key and counter state with zeros. This is
// best-effort hygiene against later memory disclosure, not a security
// boundary. The generator must not be used afterwards.
func (g *Aes256Ctr128) Close() error {
	if g.hw != nil {
		g.hw.Zeroize()
	} else {
		g.soft.Zeroize()
	}
	return nil
}
